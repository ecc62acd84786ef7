package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasty-table/internal/domain"
	"tasty-table/internal/storage"
	"tasty-table/internal/storage/memory"
)

func newTables(t *testing.T) *Tables {
	t.Helper()
	ctx := context.Background()
	st := memory.New()
	seed := []domain.Table{
		{ID: "t1", Number: 1, Capacity: 2, Status: domain.TableAvailable},
		{ID: "t2", Number: 2, Capacity: 4, Status: domain.TableOccupied, CurrentCustomerID: "c1", WaiterID: "w1"},
	}
	require.NoError(t, storage.SaveJSON(ctx, st, storage.KeyTables, seed))
	tables, err := NewTables(ctx, st)
	require.NoError(t, err)
	return tables
}

func TestUpdateTableStatus(t *testing.T) {
	ctx := context.Background()
	tables := newTables(t)

	tb, err := tables.UpdateStatus(ctx, "t1", domain.TableOccupied, "c9", "w9")
	require.NoError(t, err)
	assert.Equal(t, domain.TableOccupied, tb.Status)
	assert.Equal(t, "c9", tb.CurrentCustomerID)
	assert.Equal(t, "w9", tb.WaiterID)
}

func TestUpdateTableStatusClearsOccupant(t *testing.T) {
	ctx := context.Background()
	tables := newTables(t)

	tb, err := tables.UpdateStatus(ctx, "t2", domain.TableAvailable, "", "")
	require.NoError(t, err)
	assert.Equal(t, domain.TableAvailable, tb.Status)
	assert.Empty(t, tb.CurrentCustomerID)
	assert.Empty(t, tb.WaiterID)
}

func TestUpdateUnknownTable(t *testing.T) {
	tables := newTables(t)
	_, err := tables.UpdateStatus(context.Background(), "ghost", domain.TableAvailable, "", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateTableRejectsUnknownStatus(t *testing.T) {
	tables := newTables(t)
	_, err := tables.UpdateStatus(context.Background(), "t1", "parked", "", "")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestGetTable(t *testing.T) {
	ctx := context.Background()
	tables := newTables(t)

	tb, err := tables.Get(ctx, "t2")
	require.NoError(t, err)
	assert.Equal(t, 4, tb.Capacity)

	_, err = tables.Get(ctx, "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
