package memory

import (
	"errors"
	"sync"
	"time"

	"github.com/carson-networks/finance-ledger/internal/storage/account"
	"github.com/carson-networks/finance-ledger/internal/storage/category"
	"github.com/carson-networks/finance-ledger/internal/storage/transaction"
	"github.com/carson-networks/finance-ledger/internal/storage/user"
)

var ErrTxDone = errors.New("memory: transaction already committed or rolled back")

type dataset struct {
	users         map[int64]*user.User
	types         map[int64]*category.CategoryType
	categories    map[int64]*category.Category
	subcategories map[int64]*category.Subcategory
	accounts      map[int64]*account.Account
	transactions  map[int64]*transaction.Transaction

	nextAccountID     int64
	nextTransactionID int64
}

func newDataset() *dataset {
	return &dataset{
		users:             map[int64]*user.User{},
		types:             map[int64]*category.CategoryType{},
		categories:        map[int64]*category.Category{},
		subcategories:     map[int64]*category.Subcategory{},
		accounts:          map[int64]*account.Account{},
		transactions:      map[int64]*transaction.Transaction{},
		nextAccountID:     1,
		nextTransactionID: 1,
	}
}

// clone copies the mutable tables. Reference data (users and the category
// hierarchy) is never written through a transaction and is shared.
func (d *dataset) clone() *dataset {
	c := *d
	c.accounts = make(map[int64]*account.Account, len(d.accounts))
	for id, a := range d.accounts {
		cp := *a
		c.accounts[id] = &cp
	}
	c.transactions = make(map[int64]*transaction.Transaction, len(d.transactions))
	for id, t := range d.transactions {
		cp := *t
		c.transactions[id] = &cp
	}
	return &c
}

// view runs fn against a consistent dataset.
type view interface {
	with(fn func(d *dataset) error) error
}

// Store is an in-process stand-in for the Postgres schema. Reads take the
// read lock per call; a write transaction holds the write lock from Begin
// until Commit or Rollback.
type Store struct {
	mu   sync.RWMutex
	data *dataset
	now  func() time.Time
}

func NewStore() *Store {
	return &Store{
		data: newDataset(),
		now:  time.Now,
	}
}

// SetClock replaces the source of created_at/updated_at timestamps.
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}

func (s *Store) with(fn func(d *dataset) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.data)
}

func (s *Store) Accounts() *Accounts {
	return &Accounts{v: s, now: s.now}
}

func (s *Store) Transactions() *Transactions {
	return &Transactions{v: s, now: s.now}
}

func (s *Store) Categories() *Categories {
	return &Categories{v: s}
}

func (s *Store) Users() *Users {
	return &Users{v: s}
}

// Begin opens a write transaction working on a copy of the dataset.
func (s *Store) Begin() *Tx {
	s.mu.Lock()
	return &Tx{store: s, data: s.data.clone()}
}

type Tx struct {
	store *Store
	data  *dataset
	done  bool
}

func (t *Tx) with(fn func(d *dataset) error) error {
	if t.done {
		return ErrTxDone
	}
	return fn(t.data)
}

func (t *Tx) Accounts() *Accounts {
	return &Accounts{v: t, now: t.store.now}
}

func (t *Tx) Transactions() *Transactions {
	return &Transactions{v: t, now: t.store.now}
}

func (t *Tx) Categories() *Categories {
	return &Categories{v: t}
}

func (t *Tx) Users() *Users {
	return &Users{v: t}
}

func (t *Tx) Commit() error {
	if t.done {
		return ErrTxDone
	}
	t.done = true
	t.store.data = t.data
	t.store.mu.Unlock()
	return nil
}

func (t *Tx) Rollback() error {
	if t.done {
		return ErrTxDone
	}
	t.done = true
	t.store.mu.Unlock()
	return nil
}
