package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", h.health)

	r.Get("/tables", h.listTables)
	r.Patch("/tables/{id}/status", h.updateTableStatus)

	r.Get("/menu", h.listMenu)
	r.Post("/menu", h.addMenuItem)
	r.Patch("/menu/{id}/availability", h.setMenuItemAvailability)

	r.Get("/customers", h.listCustomers)
	r.Post("/customers", h.addCustomer)
	r.Delete("/customers/{id}", h.deleteCustomer)

	r.Get("/grocery", h.listGrocery)
	r.Post("/grocery", h.addGroceryItem)
	r.Delete("/grocery/{id}", h.deleteGroceryItem)
	r.Patch("/grocery/{id}/stock", h.setGroceryStock)
	r.Patch("/grocery/{id}/availability", h.setGroceryAvailability)

	r.Get("/staff", h.listStaff)
	r.Post("/staff", h.addUser)
	r.Delete("/staff/{id}", h.deleteUser)

	r.Get("/restaurant", h.getRestaurant)
	r.Put("/restaurant", h.updateRestaurant)

	r.Post("/orders", h.createOrder)
	r.Get("/orders", h.listOrders)
	r.Get("/orders/{id}", h.getOrder)
	r.Patch("/orders/{id}/status", h.updateOrderStatus)
	r.Patch("/orders/{id}/items/{itemID}/status", h.updateOrderItemStatus)
	r.Post("/orders/{id}/bill", h.generateBill)

	r.Get("/bills", h.listBills)
	r.Get("/bills/{id}", h.getBill)
	r.Patch("/bills/{id}/payment", h.updatePaymentStatus)

	return r
}
