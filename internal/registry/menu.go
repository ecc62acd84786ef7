package registry

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"tasty-table/internal/domain"
	"tasty-table/internal/storage"
)

type Menu struct {
	mu    sync.Mutex
	store storage.Store
	items []domain.MenuItem
}

func NewMenu(ctx context.Context, st storage.Store) (*Menu, error) {
	items, err := load[domain.MenuItem](ctx, st, storage.KeyMenuItems)
	if err != nil {
		return nil, err
	}
	return &Menu{store: st, items: items}, nil
}

func (m *Menu) List(_ context.Context) []domain.MenuItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.MenuItem, len(m.items))
	copy(out, m.items)
	return out
}

func (m *Menu) Get(_ context.Context, id string) (domain.MenuItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, it := range m.items {
		if it.ID == id {
			return it, nil
		}
	}
	return domain.MenuItem{}, domain.NotFoundf("menu item %s", id)
}

func (m *Menu) Add(ctx context.Context, input domain.MenuItemInput) (domain.MenuItem, error) {
	if input.Name == "" {
		return domain.MenuItem{}, domain.Validationf("menu item name is required")
	}
	if input.Price < 0 {
		return domain.MenuItem{}, domain.Validationf("menu item price must not be negative")
	}
	item := domain.MenuItem{
		ID:          uuid.NewString(),
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Category:    input.Category,
		Cuisine:     input.Cuisine,
		Veg:         input.Veg,
		IsAvailable: input.IsAvailable,
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append(m.items, item)
	if err := persist(ctx, m.store, storage.KeyMenuItems, m.items); err != nil {
		return domain.MenuItem{}, err
	}
	return item, nil
}

func (m *Menu) SetAvailability(ctx context.Context, id string, available bool) (domain.MenuItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].ID != id {
			continue
		}
		m.items[i].IsAvailable = available
		if err := persist(ctx, m.store, storage.KeyMenuItems, m.items); err != nil {
			return domain.MenuItem{}, err
		}
		return m.items[i], nil
	}
	return domain.MenuItem{}, domain.NotFoundf("menu item %s", id)
}
