package service

import (
	"context"
	"time"

	"github.com/carson-networks/finance-ledger/internal/operator/actions"
	"github.com/carson-networks/finance-ledger/internal/storage"
)

// actionProcessor runs a write action inside a storage transaction.
type actionProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// Service holds all business logic services.
type Service struct {
	User        *UserService
	Account     *AccountService
	Transaction *TransactionService
	Summary     *SummaryService
	Category    *CategoryService
}

// NewService creates a new Service. Reads go to the store directly and
// writes are handed to the operator.
func NewService(store *storage.Storage, op actionProcessor) *Service {
	users := NewUserService(store)
	return &Service{
		User:        users,
		Account:     NewAccountService(store, op, users),
		Transaction: NewTransactionService(store, op, users),
		Summary:     NewSummaryService(store),
		Category:    NewCategoryService(store),
	}
}

// SetClock replaces the clock used for date defaults in every service.
func (s *Service) SetClock(now func() time.Time) {
	s.Transaction.now = now
	s.Summary.now = now
}
