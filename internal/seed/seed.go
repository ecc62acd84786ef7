// Package seed writes the default dataset into any collection key that has
// never been written, leaving existing data alone.
package seed

import (
	"context"
	"errors"
	"time"

	"tasty-table/internal/domain"
	"tasty-table/internal/logger"
	"tasty-table/internal/storage"
)

// Ensure populates missing keys with the default dataset. Existing keys are
// never overwritten, so running seed twice is harmless.
func Ensure(ctx context.Context, st storage.Store, lg *logger.Logger) error {
	seeds := []struct {
		key   string
		value any
	}{
		{storage.KeyRestaurant, restaurant()},
		{storage.KeyUsers, users()},
		{storage.KeyTables, tables()},
		{storage.KeyMenuItems, menuItems()},
		{storage.KeyCustomers, customers()},
		{storage.KeyGroceryItems, groceryItems()},
		{storage.KeyOrders, orders()},
		{storage.KeyBills, []domain.Bill{}},
	}
	for _, s := range seeds {
		if _, err := st.Load(ctx, s.key); err == nil {
			continue
		} else if !errors.Is(err, storage.ErrNoKey) {
			return err
		}
		if err := storage.SaveJSON(ctx, st, s.key, s.value); err != nil {
			return err
		}
		lg.Info("seeded", map[string]any{"key": s.key})
	}
	return nil
}

func restaurant() domain.Restaurant {
	return domain.Restaurant{
		ID:           "rest001",
		Name:         "Tasty Table",
		Location:     "123 Culinary Street, Foodville",
		Phone:        "+1 (555) 123-4567",
		Email:        "info@tastytable.com",
		Description:  "A premium dining experience with a focus on fresh, local ingredients",
		OpeningHours: "Mon-Sun: 11:00 AM - 10:00 PM",
	}
}

func users() []domain.User {
	return []domain.User{
		{ID: "user001", Name: "John Doe", Role: domain.RoleAdmin, Email: "admin@tastytable.com", Phone: "+1 (555) 111-2222", Address: "456 Admin Ave, Foodville", Salary: 6500000},
		{ID: "user002", Name: "Jane Smith", Role: domain.RoleWaiter, Email: "jane@tastytable.com", Phone: "+1 (555) 222-3333", Address: "789 Server Lane, Foodville", Salary: 4200000},
		{ID: "user003", Name: "Mike Johnson", Role: domain.RoleWaiter, Email: "mike@tastytable.com", Phone: "+1 (555) 333-4444", Address: "101 Culinary Blvd, Foodville", Salary: 5800000},
		{ID: "user004", Name: "Sarah Williams", Role: domain.RoleWaiter, Email: "sarah@tastytable.com", Phone: "+1 (555) 444-5555", Address: "202 Waitstaff Way, Foodville", Salary: 4000000},
	}
}

func tables() []domain.Table {
	return []domain.Table{
		{ID: "table001", Number: 1, Capacity: 2, Status: domain.TableAvailable},
		{ID: "table002", Number: 2, Capacity: 4, Status: domain.TableOccupied, CurrentCustomerID: "cust002", WaiterID: "user002"},
		{ID: "table003", Number: 3, Capacity: 6, Status: domain.TableReserved},
		{ID: "table004", Number: 4, Capacity: 4, Status: domain.TableAvailable},
		{ID: "table005", Number: 5, Capacity: 8, Status: domain.TableAvailable},
		{ID: "table006", Number: 6, Capacity: 2, Status: domain.TableOccupied, CurrentCustomerID: "cust003", WaiterID: "user004"},
	}
}

func menuItems() []domain.MenuItem {
	return []domain.MenuItem{
		{ID: "item001", Name: "Classic Burger", Description: "Juicy beef patty with lettuce, tomato, and special sauce", Price: 1299, Category: "Main Course", Cuisine: "American", IsAvailable: true},
		{ID: "item002", Name: "Caesar Salad", Description: "Crisp romaine lettuce with Caesar dressing, croutons, and parmesan", Price: 999, Category: "Starters", Cuisine: "Italian", Veg: true, IsAvailable: true},
		{ID: "item003", Name: "Margherita Pizza", Description: "Classic pizza with tomato sauce, fresh mozzarella, and basil", Price: 1499, Category: "Main Course", Cuisine: "Italian", Veg: true, IsAvailable: true},
		{ID: "item004", Name: "Chocolate Lava Cake", Description: "Warm chocolate cake with a melted chocolate center", Price: 899, Category: "Dessert", Cuisine: "International", Veg: true, IsAvailable: true},
		{ID: "item005", Name: "Seafood Paella", Description: "Spanish rice dish with assorted seafood and saffron", Price: 2299, Category: "Main Course", Cuisine: "Spanish", IsAvailable: false},
		{ID: "item006", Name: "Chicken Wings", Description: "Crispy chicken wings tossed in your choice of sauce", Price: 1199, Category: "Appetizers", Cuisine: "American", IsAvailable: true},
		{ID: "item007", Name: "Vegetable Stir Fry", Description: "Mixed vegetables stir-fried in a savory sauce", Price: 1399, Category: "Main Course", Cuisine: "Asian", Veg: true, IsAvailable: true},
		{ID: "item008", Name: "Fresh Fruit Tart", Description: "Buttery pastry shell filled with custard and topped with fresh fruits", Price: 799, Category: "Dessert", Cuisine: "French", Veg: true, IsAvailable: true},
	}
}

func customers() []domain.Customer {
	return []domain.Customer{
		{ID: "cust001", Name: "Alice Brown", Phone: "+1 (555) 666-7777", Email: "alice@example.com", Visits: 5},
		{ID: "cust002", Name: "Bob Green", Phone: "+1 (555) 777-8888", Email: "bob@example.com", Visits: 3, MembershipID: "MEM001"},
		{ID: "cust003", Name: "Carol White", Phone: "+1 (555) 888-9999", Email: "carol@example.com", Visits: 7, MembershipID: "MEM002", Feedback: "Great service and food!"},
	}
}

func groceryItems() []domain.GroceryItem {
	return []domain.GroceryItem{
		{ID: "groc001", Name: "Fresh Milk", Category: "Dairy", Price: 399, Unit: "gallon", Stock: 24, IsAvailable: true},
		{ID: "groc002", Name: "Organic Eggs", Category: "Dairy", Price: 549, Unit: "dozen", Stock: 36, IsAvailable: true},
		{ID: "groc003", Name: "Whole Wheat Bread", Category: "Bakery", Price: 299, Unit: "loaf", Stock: 18, IsAvailable: true},
		{ID: "groc004", Name: "Ripe Bananas", Category: "Produce", Price: 79, Unit: "lb", Stock: 40, IsAvailable: true},
		{ID: "groc005", Name: "Chicken Breast", Category: "Meat", Price: 899, Unit: "lb", Stock: 15, IsAvailable: true},
	}
}

func orders() []domain.Order {
	return []domain.Order{
		{
			ID: "order001", TableID: "table002", CustomerID: "cust002", WaiterID: "user002",
			Items: []domain.OrderItem{
				{ID: "orderitem001", MenuItemID: "item001", Name: "Classic Burger", Price: 1299, Quantity: 2, Status: domain.ItemServed},
				{ID: "orderitem002", MenuItemID: "item002", Name: "Caesar Salad", Price: 999, Quantity: 1, Status: domain.ItemServed},
			},
			Status:    domain.OrderActive,
			CreatedAt: time.Date(2023, 6, 1, 12, 30, 0, 0, time.UTC),
			UpdatedAt: time.Date(2023, 6, 1, 12, 45, 0, 0, time.UTC),
		},
		{
			ID: "order002", TableID: "table006", CustomerID: "cust003", WaiterID: "user004",
			Items: []domain.OrderItem{
				{ID: "orderitem003", MenuItemID: "item003", Name: "Margherita Pizza", Price: 1499, Quantity: 1, Status: domain.ItemReady},
				{ID: "orderitem004", MenuItemID: "item006", Name: "Chicken Wings", Price: 1199, Quantity: 1, Status: domain.ItemPreparing},
			},
			Status:    domain.OrderActive,
			CreatedAt: time.Date(2023, 6, 1, 13, 15, 0, 0, time.UTC),
			UpdatedAt: time.Date(2023, 6, 1, 13, 25, 0, 0, time.UTC),
		},
	}
}
