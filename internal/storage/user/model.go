package user

import (
	"context"
	"time"

	"github.com/carson-networks/finance-ledger/internal/storage/status"
)

// User is the owner of accounts and transactions.
type User struct {
	ID                 int64
	FirstName          string
	LastName           string
	Email              string
	CurrencyPreference string
	Status             status.Status
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// IUserReader is the user directory lookup.
type IUserReader interface {
	FindByID(ctx context.Context, id int64) (*User, error)
}
