package domain

import "time"

type TableStatus string

const (
	TableAvailable TableStatus = "available"
	TableOccupied  TableStatus = "occupied"
	TableReserved  TableStatus = "reserved"
)

func (s TableStatus) Valid() bool {
	switch s {
	case TableAvailable, TableOccupied, TableReserved:
		return true
	}
	return false
}

type OrderStatus string

const (
	OrderActive    OrderStatus = "active"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderActive, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether the order status change is legal.
// Active is the only non-terminal state; repeating the current status
// is allowed so that cascade callers stay idempotent.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s == next {
		return true
	}
	return s == OrderActive && (next == OrderCompleted || next == OrderCancelled)
}

type ItemStatus string

const (
	ItemPending   ItemStatus = "pending"
	ItemPreparing ItemStatus = "preparing"
	ItemReady     ItemStatus = "ready"
	ItemServed    ItemStatus = "served"
	ItemCancelled ItemStatus = "cancelled"
)

func (s ItemStatus) Valid() bool {
	switch s {
	case ItemPending, ItemPreparing, ItemReady, ItemServed, ItemCancelled:
		return true
	}
	return false
}

// CanTransitionTo enforces the kitchen progression
// pending -> preparing -> ready -> served, forward-only.
// Cancellation is possible until the item reaches the pass.
func (s ItemStatus) CanTransitionTo(next ItemStatus) bool {
	if s == next {
		return true
	}
	switch s {
	case ItemPending:
		return next == ItemPreparing || next == ItemCancelled
	case ItemPreparing:
		return next == ItemReady || next == ItemCancelled
	case ItemReady:
		return next == ItemServed
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentCompleted, PaymentFailed:
		return true
	}
	return false
}

func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	if s == next {
		return true
	}
	return s == PaymentPending && (next == PaymentCompleted || next == PaymentFailed)
}

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleWaiter Role = "waiter"
)

func (r Role) Valid() bool { return r == RoleAdmin || r == RoleWaiter }

type Table struct {
	ID                string      `json:"id"`
	Number            int         `json:"number"`
	Capacity          int         `json:"capacity"`
	Status            TableStatus `json:"status"`
	CurrentCustomerID string      `json:"currentCustomerId,omitempty"`
	WaiterID          string      `json:"waiter,omitempty"`
}

type MenuItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       Money  `json:"price"`
	Category    string `json:"category"`
	Cuisine     string `json:"cuisine,omitempty"`
	Veg         bool   `json:"veg,omitempty"`
	IsAvailable bool   `json:"isAvailable"`
}

type Customer struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Phone        string `json:"phone,omitempty"`
	Email        string `json:"email,omitempty"`
	Visits       int    `json:"visits"`
	MembershipID string `json:"membershipId,omitempty"`
	Feedback     string `json:"feedback,omitempty"`
}

type GroceryItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Price       Money  `json:"price"`
	Unit        string `json:"unit"`
	Stock       int    `json:"stock"`
	IsAvailable bool   `json:"isAvailable"`
	ExpiryDate  string `json:"expiryDate,omitempty"`
}

// OrderItem carries a snapshot of the menu item's name and price taken at
// order-creation time; later menu edits never change an existing order.
type OrderItem struct {
	ID         string     `json:"id"`
	MenuItemID string     `json:"menuItemId"`
	Name       string     `json:"name"`
	Price      Money      `json:"price"`
	Quantity   int        `json:"quantity"`
	Status     ItemStatus `json:"status"`
	Notes      string     `json:"notes,omitempty"`
}

type Order struct {
	ID         string      `json:"id"`
	TableID    string      `json:"tableId"`
	CustomerID string      `json:"customerId,omitempty"`
	WaiterID   string      `json:"waiterId"`
	Items      []OrderItem `json:"items"`
	Status     OrderStatus `json:"status"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}

// Bill is a financial snapshot of an order. Items are copied at generation
// time so that editing the order afterwards cannot change the bill.
type Bill struct {
	ID            string        `json:"id"`
	OrderID       string        `json:"orderId"`
	TableID       string        `json:"tableId"`
	CustomerID    string        `json:"customerId,omitempty"`
	WaiterID      string        `json:"waiterId,omitempty"`
	Items         []OrderItem   `json:"items"`
	Subtotal      Money         `json:"subtotal"`
	Tax           Money         `json:"tax"`
	Discount      Money         `json:"discount,omitempty"`
	Total         Money         `json:"total"`
	PaymentMethod string        `json:"paymentMethod,omitempty"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
	CreatedAt     time.Time     `json:"createdAt"`
}

type User struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Role    Role   `json:"role"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	Salary  Money  `json:"salary,omitempty"`
}

type Restaurant struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Location     string `json:"location"`
	Phone        string `json:"phone"`
	Email        string `json:"email,omitempty"`
	Description  string `json:"description,omitempty"`
	OpeningHours string `json:"openingHours,omitempty"`
}
