// Package order implements the order lifecycle: creation against a table,
// per-item kitchen progression and the overall order state machine.
package order

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"tasty-table/internal/domain"
	"tasty-table/internal/events"
	"tasty-table/internal/logger"
	"tasty-table/internal/storage"
)

// TableDirectory is the slice of the table registry the lifecycle needs.
type TableDirectory interface {
	Get(ctx context.Context, id string) (domain.Table, error)
}

// MenuDirectory resolves menu items when snapshotting line items.
type MenuDirectory interface {
	Get(ctx context.Context, id string) (domain.MenuItem, error)
}

type Service struct {
	mu     sync.Mutex
	store  storage.Store
	orders []domain.Order

	tables TableDirectory
	menu   MenuDirectory
	pub    events.Publisher
	log    *logger.Logger
}

func NewService(ctx context.Context, st storage.Store, tables TableDirectory, menu MenuDirectory, pub events.Publisher) (*Service, error) {
	var orders []domain.Order
	if err := storage.LoadJSON(ctx, st, storage.KeyOrders, &orders); err != nil {
		return nil, err
	}
	return &Service{
		store:  st,
		orders: orders,
		tables: tables,
		menu:   menu,
		pub:    pub,
		log:    logger.New("order-service"),
	}, nil
}

// Create places an order for a table. The table must exist but its seating
// state is not re-checked; seating is the caller's call. Each line item
// snapshots the menu item's current name and price.
func (s *Service) Create(ctx context.Context, req domain.CreateOrderRequest) (domain.Order, error) {
	if req.TableID == "" {
		return domain.Order{}, domain.Validationf("table id is required")
	}
	if req.WaiterID == "" {
		return domain.Order{}, domain.Validationf("waiter id is required")
	}
	if len(req.Items) == 0 {
		return domain.Order{}, domain.Validationf("at least one item is required")
	}
	if _, err := s.tables.Get(ctx, req.TableID); err != nil {
		return domain.Order{}, err
	}

	items := make([]domain.OrderItem, 0, len(req.Items))
	for _, in := range req.Items {
		if in.Quantity < 1 {
			return domain.Order{}, domain.Validationf("quantity must be at least 1 for menu item %s", in.MenuItemID)
		}
		mi, err := s.menu.Get(ctx, in.MenuItemID)
		if err != nil {
			return domain.Order{}, err
		}
		if !mi.IsAvailable {
			return domain.Order{}, domain.Validationf("menu item %s is not available", mi.Name)
		}
		items = append(items, domain.OrderItem{
			ID:         uuid.NewString(),
			MenuItemID: mi.ID,
			Name:       mi.Name,
			Price:      mi.Price,
			Quantity:   in.Quantity,
			Status:     domain.ItemPending,
			Notes:      in.Notes,
		})
	}

	now := time.Now().UTC()
	ord := domain.Order{
		ID:         uuid.NewString(),
		TableID:    req.TableID,
		CustomerID: req.CustomerID,
		WaiterID:   req.WaiterID,
		Items:      items,
		Status:     domain.OrderActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = append(s.orders, ord)
	if err := s.persist(ctx); err != nil {
		s.orders = s.orders[:len(s.orders)-1]
		return domain.Order{}, err
	}

	s.publish(ctx, domain.EventOrderCreated, domain.OrderCreatedEvent{
		OrderID:   ord.ID,
		TableID:   ord.TableID,
		WaiterID:  ord.WaiterID,
		ItemCount: len(ord.Items),
		CreatedAt: ord.CreatedAt,
	})
	s.log.Info("order_created", map[string]any{"order_id": ord.ID, "table_id": ord.TableID, "items": len(ord.Items)})
	return ord, nil
}

func (s *Service) List(_ context.Context) []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Order, len(s.orders))
	copy(out, s.orders)
	return out
}

func (s *Service) ListByTable(_ context.Context, tableID string) []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Order
	for _, o := range s.orders {
		if o.TableID == tableID {
			out = append(out, o)
		}
	}
	return out
}

func (s *Service) Get(_ context.Context, id string) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, _, err := s.find(id)
	return o, err
}

// SetStatus moves the order through its state machine. Completed and
// cancelled are terminal; repeating the current status is a no-op so the
// payment cascade can be retried safely.
func (s *Service) SetStatus(ctx context.Context, id string, status domain.OrderStatus) (domain.Order, error) {
	if !status.Valid() {
		return domain.Order{}, domain.Validationf("unknown order status %q", status)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, i, err := s.find(id)
	if err != nil {
		return domain.Order{}, err
	}
	if s.orders[i].Status == status {
		return s.orders[i], nil
	}
	if !s.orders[i].Status.CanTransitionTo(status) {
		return domain.Order{}, domain.InvalidTransitionf("order %s: %s -> %s", id, s.orders[i].Status, status)
	}
	prev := s.orders[i]
	s.orders[i].Status = status
	s.orders[i].UpdatedAt = time.Now().UTC()
	if err := s.persist(ctx); err != nil {
		s.orders[i] = prev
		return domain.Order{}, err
	}

	s.publish(ctx, domain.EventOrderStatusChanged, domain.OrderStatusEvent{OrderID: id, Status: status})
	s.log.Info("order_status_changed", map[string]any{"order_id": id, "status": string(status)})
	return s.orders[i], nil
}

// SetItemStatus advances one line item through the kitchen stages and
// refreshes the order's updatedAt.
func (s *Service) SetItemStatus(ctx context.Context, orderID, itemID string, status domain.ItemStatus) (domain.Order, error) {
	if !status.Valid() {
		return domain.Order{}, domain.Validationf("unknown item status %q", status)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, i, err := s.find(orderID)
	if err != nil {
		return domain.Order{}, err
	}
	for j := range s.orders[i].Items {
		item := &s.orders[i].Items[j]
		if item.ID != itemID {
			continue
		}
		if item.Status == status {
			return s.orders[i], nil
		}
		if !item.Status.CanTransitionTo(status) {
			return domain.Order{}, domain.InvalidTransitionf("order item %s: %s -> %s", itemID, item.Status, status)
		}
		prevStatus, prevUpdated := item.Status, s.orders[i].UpdatedAt
		item.Status = status
		s.orders[i].UpdatedAt = time.Now().UTC()
		if err := s.persist(ctx); err != nil {
			item.Status, s.orders[i].UpdatedAt = prevStatus, prevUpdated
			return domain.Order{}, err
		}
		s.log.Info("order_item_status_changed", map[string]any{"order_id": orderID, "item_id": itemID, "status": string(status)})
		return s.orders[i], nil
	}
	return domain.Order{}, domain.NotFoundf("order item %s", itemID)
}

// find expects s.mu held.
func (s *Service) find(id string) (domain.Order, int, error) {
	for i, o := range s.orders {
		if o.ID == id {
			return o, i, nil
		}
	}
	return domain.Order{}, -1, domain.NotFoundf("order %s", id)
}

func (s *Service) persist(ctx context.Context) error {
	return storage.SaveJSON(ctx, s.store, storage.KeyOrders, s.orders)
}

func (s *Service) publish(ctx context.Context, key string, payload any) {
	if s.pub == nil {
		return
	}
	if err := s.pub.Publish(ctx, key, payload); err != nil {
		s.log.Error("event_publish_failed", err, map[string]any{"routing_key": key})
	}
}
