package domain

import "time"

// Routing keys on the restaurant_events topic exchange.
const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
	EventBillGenerated      = "bill.generated"
	EventBillPaid           = "bill.paid"
	EventBillFailed         = "bill.failed"
)

type OrderCreatedEvent struct {
	OrderID   string    `json:"order_id"`
	TableID   string    `json:"table_id"`
	WaiterID  string    `json:"waiter_id"`
	ItemCount int       `json:"item_count"`
	CreatedAt time.Time `json:"created_at"`
}

type OrderStatusEvent struct {
	OrderID string      `json:"order_id"`
	Status  OrderStatus `json:"status"`
}

type BillEvent struct {
	BillID        string        `json:"bill_id"`
	OrderID       string        `json:"order_id"`
	TableID       string        `json:"table_id"`
	Total         Money         `json:"total"`
	PaymentStatus PaymentStatus `json:"payment_status"`
}
