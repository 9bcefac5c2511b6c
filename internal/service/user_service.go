package service

import (
	"context"

	"github.com/carson-networks/finance-ledger/internal/storage"
	"github.com/carson-networks/finance-ledger/internal/storage/user"
)

// UserService resolves the acting user.
type UserService struct {
	storage *storage.Storage
}

func NewUserService(store *storage.Storage) *UserService {
	return &UserService{storage: store}
}

// FindOne returns the user or an errs.ErrNotFound error.
func (s *UserService) FindOne(ctx context.Context, id int64) (*user.User, error) {
	return s.storage.Reader.Users.FindByID(ctx, id)
}
