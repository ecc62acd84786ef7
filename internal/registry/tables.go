package registry

import (
	"context"
	"sync"

	"tasty-table/internal/domain"
	"tasty-table/internal/storage"
)

type Tables struct {
	mu     sync.Mutex
	store  storage.Store
	tables []domain.Table
}

func NewTables(ctx context.Context, st storage.Store) (*Tables, error) {
	tables, err := load[domain.Table](ctx, st, storage.KeyTables)
	if err != nil {
		return nil, err
	}
	return &Tables{store: st, tables: tables}, nil
}

func (t *Tables) List(_ context.Context) []domain.Table {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]domain.Table, len(t.tables))
	copy(out, t.tables)
	return out
}

func (t *Tables) Get(_ context.Context, id string) (domain.Table, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, tb := range t.tables {
		if tb.ID == id {
			return tb, nil
		}
	}
	return domain.Table{}, domain.NotFoundf("table %s", id)
}

// UpdateStatus replaces the table's status and occupant fields. Any caller
// may force any seating transition; the occupant and waiter are overwritten
// with whatever the caller passes, so freeing a table also clears them.
func (t *Tables) UpdateStatus(ctx context.Context, id string, status domain.TableStatus, customerID, waiterID string) (domain.Table, error) {
	if !status.Valid() {
		return domain.Table{}, domain.Validationf("unknown table status %q", status)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := range t.tables {
		if t.tables[i].ID != id {
			continue
		}
		t.tables[i].Status = status
		t.tables[i].CurrentCustomerID = customerID
		t.tables[i].WaiterID = waiterID
		if err := persist(ctx, t.store, storage.KeyTables, t.tables); err != nil {
			return domain.Table{}, err
		}
		return t.tables[i], nil
	}
	return domain.Table{}, domain.NotFoundf("table %s", id)
}
