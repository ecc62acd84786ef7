package httpapi

import "tasty-table/internal/domain"

type updateTableStatusRequest struct {
	Status     domain.TableStatus `json:"status"`
	CustomerID string             `json:"customerId,omitempty"`
	WaiterID   string             `json:"waiterId,omitempty"`
}

type availabilityRequest struct {
	IsAvailable *bool `json:"isAvailable"`
}

type stockRequest struct {
	Stock *int `json:"stock"`
}

type orderStatusRequest struct {
	Status domain.OrderStatus `json:"status"`
}

type itemStatusRequest struct {
	Status domain.ItemStatus `json:"status"`
}

type generateBillRequest struct {
	PaymentMethod string       `json:"paymentMethod,omitempty"`
	Discount      domain.Money `json:"discount,omitempty"`
}

type paymentStatusRequest struct {
	Status domain.PaymentStatus `json:"status"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
