package storage

import (
	"context"

	"github.com/stephenafamo/bob"

	"github.com/carson-networks/finance-ledger/internal/storage/account"
	"github.com/carson-networks/finance-ledger/internal/storage/category"
	"github.com/carson-networks/finance-ledger/internal/storage/memory"
	"github.com/carson-networks/finance-ledger/internal/storage/transaction"
	"github.com/carson-networks/finance-ledger/internal/storage/user"
)

// Writer exposes the tables inside one storage transaction. Every change made
// through it becomes visible on Commit or is discarded on Rollback.
type Writer struct {
	Account     account.IAccountWriter
	Transaction transaction.ITransactionWriter
	Category    category.ICategoryReader
	User        user.IUserReader

	commit   func() error
	rollback func() error
}

func NewWriter(tx bob.Tx) *Writer {
	return &Writer{
		Account:     account.NewWriter(tx),
		Transaction: transaction.NewWriter(tx),
		Category:    category.NewReader(tx),
		User:        user.NewReader(tx),
		commit: func() error {
			return tx.Commit(context.Background())
		},
		rollback: func() error {
			return tx.Rollback(context.Background())
		},
	}
}

func newMemoryWriter(tx *memory.Tx) *Writer {
	return &Writer{
		Account:     tx.Accounts(),
		Transaction: tx.Transactions(),
		Category:    tx.Categories(),
		User:        tx.Users(),
		commit:      tx.Commit,
		rollback:    tx.Rollback,
	}
}

func (w *Writer) Commit() error {
	return w.commit()
}

func (w *Writer) Rollback() error {
	return w.rollback()
}
