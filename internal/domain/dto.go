package domain

// Service-facing inputs. HTTP request/response shapes live in httpapi.

type CreateOrderItem struct {
	MenuItemID string `json:"menuItemId"`
	Quantity   int    `json:"quantity"`
	Notes      string `json:"notes,omitempty"`
}

type CreateOrderRequest struct {
	TableID    string            `json:"tableId"`
	WaiterID   string            `json:"waiterId"`
	CustomerID string            `json:"customerId,omitempty"`
	Items      []CreateOrderItem `json:"items"`
}

type MenuItemInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       Money  `json:"price"`
	Category    string `json:"category"`
	Cuisine     string `json:"cuisine,omitempty"`
	Veg         bool   `json:"veg,omitempty"`
	IsAvailable bool   `json:"isAvailable"`
}

type CustomerInput struct {
	Name         string `json:"name"`
	Phone        string `json:"phone,omitempty"`
	Email        string `json:"email,omitempty"`
	MembershipID string `json:"membershipId,omitempty"`
	Feedback     string `json:"feedback,omitempty"`
}

type GroceryItemInput struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Price       Money  `json:"price"`
	Unit        string `json:"unit"`
	Stock       int    `json:"stock"`
	IsAvailable bool   `json:"isAvailable"`
	ExpiryDate  string `json:"expiryDate,omitempty"`
}

type UserInput struct {
	Name    string `json:"name"`
	Role    Role   `json:"role"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	Salary  Money  `json:"salary,omitempty"`
}
