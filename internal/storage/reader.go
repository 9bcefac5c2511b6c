package storage

import (
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/finance-ledger/internal/storage/account"
	"github.com/carson-networks/finance-ledger/internal/storage/category"
	"github.com/carson-networks/finance-ledger/internal/storage/memory"
	"github.com/carson-networks/finance-ledger/internal/storage/transaction"
	"github.com/carson-networks/finance-ledger/internal/storage/user"
)

// Reader groups the read-only table accessors used outside of write actions.
type Reader struct {
	Accounts     account.IAccountReader
	Transactions transaction.ITransactionReader
	Categories   category.ICategoryReader
	Users        user.IUserReader
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{
		Accounts:     account.NewReader(exec),
		Transactions: transaction.NewReader(exec),
		Categories:   category.NewReader(exec),
		Users:        user.NewReader(exec),
	}
}

func newMemoryReader(store *memory.Store) *Reader {
	return &Reader{
		Accounts:     store.Accounts(),
		Transactions: store.Transactions(),
		Categories:   store.Categories(),
		Users:        store.Users(),
	}
}
