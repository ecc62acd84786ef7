// Package storage defines the key-value persistence port the registries and
// services write through. Each key holds one JSON document (usually an array
// of records), mirroring the original dashboard's storage layout.
package storage

import (
	"context"
	"errors"
)

// Keys of the persisted collections.
const (
	KeyUsers        = "tasty_table_users"
	KeyTables       = "tasty_table_tables"
	KeyMenuItems    = "tasty_table_menu_items"
	KeyCustomers    = "tasty_table_customers"
	KeyGroceryItems = "tasty_table_grocery_items"
	KeyOrders       = "tasty_table_orders"
	KeyBills        = "tasty_table_bills"
	KeyRestaurant   = "tasty_table_restaurant"
)

// ErrNoKey is returned by Load when the key has never been written.
var ErrNoKey = errors.New("storage: key not set")

type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
}
