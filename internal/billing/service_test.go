package billing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasty-table/internal/domain"
	"tasty-table/internal/order"
	"tasty-table/internal/registry"
	"tasty-table/internal/storage"
	"tasty-table/internal/storage/memory"
)

type fixture struct {
	store   *memory.Store
	tables  *registry.Tables
	orders  *order.Service
	billing *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	st := memory.New()
	require.NoError(t, storage.SaveJSON(ctx, st, storage.KeyTables, []domain.Table{
		{ID: "t1", Number: 1, Capacity: 4, Status: domain.TableOccupied, CurrentCustomerID: "c1", WaiterID: "w1"},
	}))
	require.NoError(t, storage.SaveJSON(ctx, st, storage.KeyMenuItems, []domain.MenuItem{
		{ID: "m1", Name: "Classic Burger", Price: 1299, IsAvailable: true},
		{ID: "m2", Name: "Caesar Salad", Price: 999, IsAvailable: true},
	}))
	tables, err := registry.NewTables(ctx, st)
	require.NoError(t, err)
	menu, err := registry.NewMenu(ctx, st)
	require.NoError(t, err)
	orders, err := order.NewService(ctx, st, tables, menu, nil)
	require.NoError(t, err)
	bills, err := NewService(ctx, st, orders, tables, nil)
	require.NoError(t, err)
	return &fixture{store: st, tables: tables, orders: orders, billing: bills}
}

// placeOrder puts 2x12.99 + 1x9.99 on table t1.
func (f *fixture) placeOrder(t *testing.T) domain.Order {
	t.Helper()
	ord, err := f.orders.Create(context.Background(), domain.CreateOrderRequest{
		TableID:    "t1",
		WaiterID:   "w1",
		CustomerID: "c1",
		Items: []domain.CreateOrderItem{
			{MenuItemID: "m1", Quantity: 2},
			{MenuItemID: "m2", Quantity: 1},
		},
	})
	require.NoError(t, err)
	return ord
}

func TestGenerateBillTotals(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ord := f.placeOrder(t)

	bill, err := f.billing.Generate(ctx, ord.ID, "", 0)
	require.NoError(t, err)

	// 2 x 12.99 + 9.99 = 35.97; 10% tax rounds to 3.60.
	assert.Equal(t, domain.Money(3597), bill.Subtotal)
	assert.Equal(t, domain.Money(360), bill.Tax)
	assert.Equal(t, domain.Money(3957), bill.Total)
	assert.Equal(t, "cash", bill.PaymentMethod)
	assert.Equal(t, domain.PaymentPending, bill.PaymentStatus)
	assert.Equal(t, ord.TableID, bill.TableID)
	assert.Equal(t, ord.CustomerID, bill.CustomerID)
}

func TestGenerateBillDoesNotTouchOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ord := f.placeOrder(t)

	_, err := f.billing.Generate(ctx, ord.ID, "card", 0)
	require.NoError(t, err)

	got, err := f.orders.Get(ctx, ord.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderActive, got.Status)
	assert.Equal(t, ord.UpdatedAt, got.UpdatedAt)
}

func TestBillSnapshotsOrderItems(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ord := f.placeOrder(t)

	bill, err := f.billing.Generate(ctx, ord.ID, "", 0)
	require.NoError(t, err)

	// Editing the order after generation must not change the bill.
	_, err = f.orders.SetItemStatus(ctx, ord.ID, ord.Items[0].ID, domain.ItemCancelled)
	require.NoError(t, err)

	got, err := f.billing.Get(ctx, bill.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ItemPending, got.Items[0].Status)
	assert.Equal(t, domain.Money(3597), got.Subtotal)
}

func TestGenerateBillUnknownOrder(t *testing.T) {
	f := newFixture(t)
	_, err := f.billing.Generate(context.Background(), "ghost", "", 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGenerateBillRejectsSecondLiveBill(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ord := f.placeOrder(t)

	_, err := f.billing.Generate(ctx, ord.ID, "", 0)
	require.NoError(t, err)
	_, err = f.billing.Generate(ctx, ord.ID, "", 0)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestGenerateBillWithDiscount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ord := f.placeOrder(t)

	bill, err := f.billing.Generate(ctx, ord.ID, "", 500)
	require.NoError(t, err)
	assert.Equal(t, domain.Money(500), bill.Discount)
	assert.Equal(t, domain.Money(3457), bill.Total)

	_, err = f.billing.Generate(ctx, ord.ID, "", -1)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestPaymentCompletedCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ord := f.placeOrder(t)
	bill, err := f.billing.Generate(ctx, ord.ID, "", 0)
	require.NoError(t, err)

	paid, err := f.billing.SetPaymentStatus(ctx, bill.ID, domain.PaymentCompleted)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentCompleted, paid.PaymentStatus)

	tb, err := f.tables.Get(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, domain.TableAvailable, tb.Status)
	assert.Empty(t, tb.CurrentCustomerID)

	got, err := f.orders.Get(ctx, ord.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderCompleted, got.Status)
}

func TestPaymentCompletedIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ord := f.placeOrder(t)
	bill, err := f.billing.Generate(ctx, ord.ID, "", 0)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := f.billing.SetPaymentStatus(ctx, bill.ID, domain.PaymentCompleted)
		require.NoError(t, err)
	}

	tb, err := f.tables.Get(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, domain.TableAvailable, tb.Status)
	got, err := f.orders.Get(ctx, ord.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderCompleted, got.Status)
}

func TestPaymentFailedLeavesEverythingAlone(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ord := f.placeOrder(t)
	bill, err := f.billing.Generate(ctx, ord.ID, "", 0)
	require.NoError(t, err)

	failed, err := f.billing.SetPaymentStatus(ctx, bill.ID, domain.PaymentFailed)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentFailed, failed.PaymentStatus)

	tb, err := f.tables.Get(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, domain.TableOccupied, tb.Status)
	got, err := f.orders.Get(ctx, ord.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderActive, got.Status)

	// A failed bill frees the order for rebilling.
	_, err = f.billing.Generate(ctx, ord.ID, "", 0)
	assert.NoError(t, err)
}

func TestPaymentStatusTransitionsEnforced(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ord := f.placeOrder(t)
	bill, err := f.billing.Generate(ctx, ord.ID, "", 0)
	require.NoError(t, err)

	_, err = f.billing.SetPaymentStatus(ctx, bill.ID, domain.PaymentFailed)
	require.NoError(t, err)

	// Failed is terminal.
	_, err = f.billing.SetPaymentStatus(ctx, bill.ID, domain.PaymentCompleted)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	_, err = f.billing.SetPaymentStatus(ctx, bill.ID, domain.PaymentPending)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestSetPaymentStatusUnknownBill(t *testing.T) {
	f := newFixture(t)
	_, err := f.billing.SetPaymentStatus(context.Background(), "ghost", domain.PaymentCompleted)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
