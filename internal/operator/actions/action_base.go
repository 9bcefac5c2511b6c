package actions

import (
	"context"
	"sort"

	"github.com/carson-networks/finance-ledger/internal/storage"
	"github.com/carson-networks/finance-ledger/internal/storage/account"
)

// IAction is a unit of work run by the operator inside one storage
// transaction. Returning an error rolls the whole unit back.
type IAction interface {
	Perform(ctx context.Context, writer *storage.Writer) error
}

// lockAccounts locks the given accounts of one user in ascending id order so
// concurrent actions touching the same pair cannot deadlock.
func lockAccounts(ctx context.Context, writer *storage.Writer, userID int64, ids ...int64) (map[int64]*account.Account, error) {
	unique := make([]int64, 0, len(ids))
	seen := make(map[int64]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}
	sort.Slice(unique, func(i, j int) bool { return unique[i] < unique[j] })

	locked := make(map[int64]*account.Account, len(unique))
	for _, id := range unique {
		acc, err := writer.Account.FindOwnedForUpdate(ctx, id, userID)
		if err != nil {
			return nil, err
		}
		locked[id] = acc
	}
	return locked, nil
}
