// Package registry holds the CRUD collections of the dashboard: tables,
// menu, customers, grocery inventory, staff and the restaurant profile.
// Each registry hydrates its collection from the document store at startup
// and mirrors the full collection back after every mutation, so the store
// always holds a complete array per key.
package registry

import (
	"context"

	"tasty-table/internal/storage"
)

func load[T any](ctx context.Context, st storage.Store, key string) ([]T, error) {
	var items []T
	if err := storage.LoadJSON(ctx, st, key, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func persist[T any](ctx context.Context, st storage.Store, key string, items []T) error {
	return storage.SaveJSON(ctx, st, key, items)
}
