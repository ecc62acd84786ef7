package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasty-table/internal/billing"
	"tasty-table/internal/domain"
	"tasty-table/internal/logger"
	"tasty-table/internal/order"
	"tasty-table/internal/registry"
	"tasty-table/internal/seed"
	"tasty-table/internal/storage/memory"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ctx := context.Background()
	st := memory.New()
	require.NoError(t, seed.Ensure(ctx, st, logger.New("test")))

	tables, err := registry.NewTables(ctx, st)
	require.NoError(t, err)
	menu, err := registry.NewMenu(ctx, st)
	require.NoError(t, err)
	customers, err := registry.NewCustomers(ctx, st)
	require.NoError(t, err)
	grocery, err := registry.NewGrocery(ctx, st)
	require.NoError(t, err)
	staff, err := registry.NewStaff(ctx, st)
	require.NoError(t, err)
	restaurant, err := registry.NewRestaurantProfile(ctx, st)
	require.NoError(t, err)
	orders, err := order.NewService(ctx, st, tables, menu, nil)
	require.NoError(t, err)
	bills, err := billing.NewService(ctx, st, orders, tables, nil)
	require.NoError(t, err)

	h := NewHandler(tables, menu, customers, grocery, staff, restaurant, orders, bills)
	srv := httptest.NewServer(NewRouter(h))
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeInto(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestListTablesSeeded(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/tables")
	require.NoError(t, err)
	var tables []domain.Table
	decodeInto(t, resp, &tables)
	assert.Len(t, tables, 6)
}

func TestOrderBillPaymentFlow(t *testing.T) {
	srv := newTestServer(t)

	// Place an order on an available table: 2x12.99 + 1x9.99.
	resp := doJSON(t, http.MethodPost, srv.URL+"/orders", domain.CreateOrderRequest{
		TableID:  "table001",
		WaiterID: "user002",
		Items: []domain.CreateOrderItem{
			{MenuItemID: "item001", Quantity: 2},
			{MenuItemID: "item002", Quantity: 1},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var ord domain.Order
	decodeInto(t, resp, &ord)

	// Seat the party.
	resp = doJSON(t, http.MethodPatch, srv.URL+"/tables/table001/status", updateTableStatusRequest{
		Status: domain.TableOccupied, WaiterID: "user002",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Generate the bill.
	resp = doJSON(t, http.MethodPost, srv.URL+"/orders/"+ord.ID+"/bill", generateBillRequest{PaymentMethod: "card"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var bill domain.Bill
	decodeInto(t, resp, &bill)
	assert.Equal(t, domain.Money(3597), bill.Subtotal)
	assert.Equal(t, domain.Money(360), bill.Tax)
	assert.Equal(t, domain.Money(3957), bill.Total)

	// A second bill for the same order conflicts.
	resp = doJSON(t, http.MethodPost, srv.URL+"/orders/"+ord.ID+"/bill", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// Complete the payment; the cascade frees the table and closes the order.
	resp = doJSON(t, http.MethodPatch, srv.URL+"/bills/"+bill.ID+"/payment", paymentStatusRequest{Status: domain.PaymentCompleted})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp, err := http.Get(srv.URL + "/orders/" + ord.ID)
	require.NoError(t, err)
	var closed domain.Order
	decodeInto(t, resp, &closed)
	assert.Equal(t, domain.OrderCompleted, closed.Status)

	resp, err = http.Get(srv.URL + "/tables")
	require.NoError(t, err)
	var tables []domain.Table
	decodeInto(t, resp, &tables)
	for _, tb := range tables {
		if tb.ID == "table001" {
			assert.Equal(t, domain.TableAvailable, tb.Status)
		}
	}
}

func TestErrorMapping(t *testing.T) {
	srv := newTestServer(t)

	// Unknown order -> 404.
	resp := doJSON(t, http.MethodPost, srv.URL+"/orders/ghost/bill", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// Missing name -> 400.
	resp = doJSON(t, http.MethodPost, srv.URL+"/customers", domain.CustomerInput{Phone: "555"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Illegal item move -> 422.
	var orders []domain.Order
	getResp, err := http.Get(srv.URL + "/orders")
	require.NoError(t, err)
	decodeInto(t, getResp, &orders)
	require.NotEmpty(t, orders)
	ord := orders[0] // seeded order: items already served
	resp = doJSON(t, http.MethodPatch, srv.URL+"/orders/"+ord.ID+"/items/"+ord.Items[0].ID+"/status",
		itemStatusRequest{Status: domain.ItemPending})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	resp.Body.Close()

	// Unknown customer delete -> 404.
	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/customers/ghost", nil)
	require.NoError(t, err)
	delResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, delResp.StatusCode)
	delResp.Body.Close()

	// Bad JSON -> 400.
	badResp, err := http.Post(srv.URL+"/customers", "application/json", bytes.NewBufferString("{"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, badResp.StatusCode)
	badResp.Body.Close()
}

func TestCustomerLifecycleOverHTTP(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/customers", domain.CustomerInput{Name: "Alice"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var alice domain.Customer
	decodeInto(t, resp, &alice)
	assert.Equal(t, 1, alice.Visits)

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/customers/"+alice.ID, nil)
	require.NoError(t, err)
	delResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, delResp.StatusCode)
	delResp.Body.Close()
}

func TestRestaurantProfile(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/restaurant")
	require.NoError(t, err)
	var profile domain.Restaurant
	decodeInto(t, resp, &profile)
	assert.Equal(t, "Tasty Table", profile.Name)

	profile.Name = "Tasty Table II"
	resp = doJSON(t, http.MethodPut, srv.URL+"/restaurant", profile)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated domain.Restaurant
	decodeInto(t, resp, &updated)
	assert.Equal(t, "Tasty Table II", updated.Name)
}

func TestGroceryEndpoints(t *testing.T) {
	srv := newTestServer(t)

	stock := 12
	resp := doJSON(t, http.MethodPatch, srv.URL+"/grocery/groc001/stock", stockRequest{Stock: &stock})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var item domain.GroceryItem
	decodeInto(t, resp, &item)
	assert.Equal(t, 12, item.Stock)

	// Missing stock field -> 400.
	resp = doJSON(t, http.MethodPatch, srv.URL+"/grocery/groc001/stock", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestMenuAvailabilityToggle(t *testing.T) {
	srv := newTestServer(t)

	off := false
	resp := doJSON(t, http.MethodPatch, srv.URL+"/menu/item001/availability", availabilityRequest{IsAvailable: &off})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var item domain.MenuItem
	decodeInto(t, resp, &item)
	assert.False(t, item.IsAvailable)

	// Ordering the now-unavailable item is rejected.
	resp = doJSON(t, http.MethodPost, srv.URL+"/orders", domain.CreateOrderRequest{
		TableID:  "table001",
		WaiterID: "user002",
		Items:    []domain.CreateOrderItem{{MenuItemID: "item001", Quantity: 1}},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}
