package registry

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"tasty-table/internal/domain"
	"tasty-table/internal/storage"
)

type Grocery struct {
	mu    sync.Mutex
	store storage.Store
	items []domain.GroceryItem
}

func NewGrocery(ctx context.Context, st storage.Store) (*Grocery, error) {
	items, err := load[domain.GroceryItem](ctx, st, storage.KeyGroceryItems)
	if err != nil {
		return nil, err
	}
	return &Grocery{store: st, items: items}, nil
}

func (g *Grocery) List(_ context.Context) []domain.GroceryItem {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]domain.GroceryItem, len(g.items))
	copy(out, g.items)
	return out
}

func (g *Grocery) Get(_ context.Context, id string) (domain.GroceryItem, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, it := range g.items {
		if it.ID == id {
			return it, nil
		}
	}
	return domain.GroceryItem{}, domain.NotFoundf("grocery item %s", id)
}

func (g *Grocery) Add(ctx context.Context, input domain.GroceryItemInput) (domain.GroceryItem, error) {
	if input.Name == "" {
		return domain.GroceryItem{}, domain.Validationf("grocery item name is required")
	}
	if input.Price < 0 {
		return domain.GroceryItem{}, domain.Validationf("grocery item price must not be negative")
	}
	if input.Stock < 0 {
		return domain.GroceryItem{}, domain.Validationf("grocery item stock must not be negative")
	}
	item := domain.GroceryItem{
		ID:          uuid.NewString(),
		Name:        input.Name,
		Category:    input.Category,
		Price:       input.Price,
		Unit:        input.Unit,
		Stock:       input.Stock,
		IsAvailable: input.IsAvailable,
		ExpiryDate:  input.ExpiryDate,
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.items = append(g.items, item)
	if err := persist(ctx, g.store, storage.KeyGroceryItems, g.items); err != nil {
		return domain.GroceryItem{}, err
	}
	return item, nil
}

func (g *Grocery) Delete(ctx context.Context, id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	for i := range g.items {
		if g.items[i].ID != id {
			continue
		}
		g.items = append(g.items[:i], g.items[i+1:]...)
		return persist(ctx, g.store, storage.KeyGroceryItems, g.items)
	}
	return domain.NotFoundf("grocery item %s", id)
}

func (g *Grocery) SetStock(ctx context.Context, id string, stock int) (domain.GroceryItem, error) {
	if stock < 0 {
		return domain.GroceryItem{}, domain.Validationf("stock must not be negative")
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	for i := range g.items {
		if g.items[i].ID != id {
			continue
		}
		g.items[i].Stock = stock
		if err := persist(ctx, g.store, storage.KeyGroceryItems, g.items); err != nil {
			return domain.GroceryItem{}, err
		}
		return g.items[i], nil
	}
	return domain.GroceryItem{}, domain.NotFoundf("grocery item %s", id)
}

func (g *Grocery) SetAvailability(ctx context.Context, id string, available bool) (domain.GroceryItem, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for i := range g.items {
		if g.items[i].ID != id {
			continue
		}
		g.items[i].IsAvailable = available
		if err := persist(ctx, g.store, storage.KeyGroceryItems, g.items); err != nil {
			return domain.GroceryItem{}, err
		}
		return g.items[i], nil
	}
	return domain.GroceryItem{}, domain.NotFoundf("grocery item %s", id)
}
