package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"tasty-table/internal/billing"
	"tasty-table/internal/domain"
	"tasty-table/internal/logger"
	"tasty-table/internal/order"
	"tasty-table/internal/registry"
)

type Handler struct {
	tables     *registry.Tables
	menu       *registry.Menu
	customers  *registry.Customers
	grocery    *registry.Grocery
	staff      *registry.Staff
	restaurant *registry.RestaurantProfile
	orders     *order.Service
	billing    *billing.Service
	log        *logger.Logger
}

func NewHandler(
	tables *registry.Tables,
	menu *registry.Menu,
	customers *registry.Customers,
	grocery *registry.Grocery,
	staff *registry.Staff,
	restaurant *registry.RestaurantProfile,
	orders *order.Service,
	bills *billing.Service,
) *Handler {
	return &Handler{
		tables:     tables,
		menu:       menu,
		customers:  customers,
		grocery:    grocery,
		staff:      staff,
		restaurant: restaurant,
		orders:     orders,
		billing:    bills,
		log:        logger.New("http-api"),
	}
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// --- tables ---

func (h *Handler) listTables(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.tables.List(r.Context()))
}

func (h *Handler) updateTableStatus(w http.ResponseWriter, r *http.Request) {
	var req updateTableStatusRequest
	if !decodeBody(w, r, &req) {
		return
	}
	tb, err := h.tables.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status, req.CustomerID, req.WaiterID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tb)
}

// --- menu ---

func (h *Handler) listMenu(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.menu.List(r.Context()))
}

func (h *Handler) addMenuItem(w http.ResponseWriter, r *http.Request) {
	var input domain.MenuItemInput
	if !decodeBody(w, r, &input) {
		return
	}
	item, err := h.menu.Add(r.Context(), input)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *Handler) setMenuItemAvailability(w http.ResponseWriter, r *http.Request) {
	var req availabilityRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.IsAvailable == nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "isAvailable is required")
		return
	}
	item, err := h.menu.SetAvailability(r.Context(), chi.URLParam(r, "id"), *req.IsAvailable)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// --- customers ---

func (h *Handler) listCustomers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.customers.List(r.Context()))
}

func (h *Handler) addCustomer(w http.ResponseWriter, r *http.Request) {
	var input domain.CustomerInput
	if !decodeBody(w, r, &input) {
		return
	}
	customer, err := h.customers.Add(r.Context(), input)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, customer)
}

func (h *Handler) deleteCustomer(w http.ResponseWriter, r *http.Request) {
	if err := h.customers.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- grocery ---

func (h *Handler) listGrocery(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.grocery.List(r.Context()))
}

func (h *Handler) addGroceryItem(w http.ResponseWriter, r *http.Request) {
	var input domain.GroceryItemInput
	if !decodeBody(w, r, &input) {
		return
	}
	item, err := h.grocery.Add(r.Context(), input)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *Handler) deleteGroceryItem(w http.ResponseWriter, r *http.Request) {
	if err := h.grocery.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) setGroceryStock(w http.ResponseWriter, r *http.Request) {
	var req stockRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Stock == nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "stock is required")
		return
	}
	item, err := h.grocery.SetStock(r.Context(), chi.URLParam(r, "id"), *req.Stock)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) setGroceryAvailability(w http.ResponseWriter, r *http.Request) {
	var req availabilityRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.IsAvailable == nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "isAvailable is required")
		return
	}
	item, err := h.grocery.SetAvailability(r.Context(), chi.URLParam(r, "id"), *req.IsAvailable)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// --- staff ---

func (h *Handler) listStaff(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.staff.List(r.Context()))
}

func (h *Handler) addUser(w http.ResponseWriter, r *http.Request) {
	var input domain.UserInput
	if !decodeBody(w, r, &input) {
		return
	}
	user, err := h.staff.Add(r.Context(), input)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.staff.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- restaurant profile ---

func (h *Handler) getRestaurant(w http.ResponseWriter, r *http.Request) {
	profile, err := h.restaurant.Get(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *Handler) updateRestaurant(w http.ResponseWriter, r *http.Request) {
	var profile domain.Restaurant
	if !decodeBody(w, r, &profile) {
		return
	}
	updated, err := h.restaurant.Update(r.Context(), profile)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// --- orders ---

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateOrderRequest
	if !decodeBody(w, r, &req) {
		return
	}
	ord, err := h.orders.Create(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, ord)
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	if tableID := r.URL.Query().Get("table"); tableID != "" {
		writeJSON(w, http.StatusOK, h.orders.ListByTable(r.Context(), tableID))
		return
	}
	writeJSON(w, http.StatusOK, h.orders.List(r.Context()))
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	ord, err := h.orders.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ord)
}

func (h *Handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req orderStatusRequest
	if !decodeBody(w, r, &req) {
		return
	}
	ord, err := h.orders.SetStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ord)
}

func (h *Handler) updateOrderItemStatus(w http.ResponseWriter, r *http.Request) {
	var req itemStatusRequest
	if !decodeBody(w, r, &req) {
		return
	}
	ord, err := h.orders.SetItemStatus(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "itemID"), req.Status)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ord)
}

// --- billing ---

func (h *Handler) generateBill(w http.ResponseWriter, r *http.Request) {
	var req generateBillRequest
	if r.ContentLength > 0 && !decodeBody(w, r, &req) {
		return
	}
	bill, err := h.billing.Generate(r.Context(), chi.URLParam(r, "id"), req.PaymentMethod, req.Discount)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, bill)
}

func (h *Handler) listBills(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.billing.List(r.Context()))
}

func (h *Handler) getBill(w http.ResponseWriter, r *http.Request) {
	bill, err := h.billing.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bill)
}

func (h *Handler) updatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	var req paymentStatusRequest
	if !decodeBody(w, r, &req) {
		return
	}
	bill, err := h.billing.SetPaymentStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bill)
}

// --- helpers ---

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, domain.ErrInvalidTransition):
		writeError(w, http.StatusUnprocessableEntity, "invalid_transition", err.Error())
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, "conflict", err.Error())
	default:
		h.log.Error("request_failed", err, map[string]any{"path": r.URL.Path})
		writeError(w, http.StatusInternalServerError, "internal_error", "")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, errorResponse{Error: code, Message: msg})
}
