package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/finance-ledger/internal/config"
	"github.com/carson-networks/finance-ledger/internal/storage/memory"
)

// Storage is the store of record. Reads go through Reader; writes go through
// a Writer obtained from Write.
type Storage struct {
	DB     *sql.DB
	Reader *Reader

	begin func(ctx context.Context) (*Writer, error)
}

// NewStorage opens the backend selected by the config.
func NewStorage(env *config.Config) (*Storage, error) {
	switch env.DataBackend {
	case config.BackendMemory:
		store := memory.NewStore()
		memory.Seed(store)
		return NewMemoryStorage(store), nil
	case config.BackendPostgres:
		db, err := sql.Open("postgres", env.PostgresDSN())
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		return NewPostgresStorage(db), nil
	default:
		return nil, fmt.Errorf("unknown data backend %q", env.DataBackend)
	}
}

func NewPostgresStorage(db *sql.DB) *Storage {
	bobDB := bob.NewDB(db)
	return &Storage{
		DB:     db,
		Reader: NewReader(bobDB),
		begin: func(ctx context.Context) (*Writer, error) {
			tx, err := bobDB.BeginTx(ctx, nil)
			if err != nil {
				return nil, err
			}
			return NewWriter(tx), nil
		},
	}
}

func NewMemoryStorage(store *memory.Store) *Storage {
	return &Storage{
		Reader: newMemoryReader(store),
		begin: func(ctx context.Context) (*Writer, error) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			return newMemoryWriter(store.Begin()), nil
		},
	}
}

// Write opens a storage transaction. The caller must Commit or Rollback it.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	return s.begin(ctx)
}

// Ping checks that the backend is reachable.
func (s *Storage) Ping(ctx context.Context) error {
	if s.DB == nil {
		return nil
	}
	return s.DB.PingContext(ctx)
}

func (s *Storage) Close() error {
	if s.DB == nil {
		return nil
	}
	return s.DB.Close()
}
