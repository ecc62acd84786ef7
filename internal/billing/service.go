// Package billing derives bills from orders and drives payment resolution.
// A completed payment cascades: the table is freed and the order is closed.
package billing

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

// TaxRatePercent is applied to every bill's subtotal.
const TaxRatePercent = 10

const defaultPaymentMethod = "cash"

// OrderDirectory is the slice of the order lifecycle the engine needs.
type OrderDirectory interface {
	Get(ctx context.Context, id string) (domain.Order, error)
	SetStatus(ctx context.Context, id string, status domain.OrderStatus) (domain.Order, error)
}

// TableSeating frees tables on payment completion.
type TableSeating interface {
	UpdateStatus(ctx context.Context, id string, status domain.TableStatus, customerID, waiterID string) (domain.Table, error)
}

type Service struct {
	mu    sync.Mutex
	store storage.Store
	bills []domain.Bill

	orders OrderDirectory
	tables TableSeating
	pub    events.Publisher
	log    *logger.Logger
}

func NewService(ctx context.Context, st storage.Store, orders OrderDirectory, tables TableSeating, pub events.Publisher) (*Service, error) {
	var bills []domain.Bill
	if err := storage.LoadJSON(ctx, st, storage.KeyBills, &bills); err != nil {
		return nil, err
	}
	return &Service{
		store:  st,
		bills:  bills,
		orders: orders,
		tables: tables,
		pub:    pub,
		log:    logger.New("billing-service"),
	}, nil
}

// Generate creates the bill for an order from a snapshot of its current
// items. The order itself is left untouched: it stays active until the
// payment completes, even though a bill now exists for it. An order can
// carry at most one live (pending or completed) bill; a failed bill frees
// the order for rebilling.
func (s *Service) Generate(ctx context.Context, orderID, paymentMethod string, discount domain.Money) (domain.Bill, error) {
	if paymentMethod == "" {
		paymentMethod = defaultPaymentMethod
	}
	if discount < 0 {
		return domain.Bill{}, domain.Validationf("discount must not be negative")
	}

	ord, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return domain.Bill{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.bills {
		if b.OrderID == orderID && b.PaymentStatus != domain.PaymentFailed {
			return domain.Bill{}, domain.Conflictf("order %s already has a %s bill (%s)", orderID, b.PaymentStatus, b.ID)
		}
	}

	items := make([]domain.OrderItem, len(ord.Items))
	copy(items, ord.Items)

	var subtotal domain.Money
	for _, it := range items {
		subtotal += it.Price.Mul(it.Quantity)
	}
	tax := subtotal.Percent(TaxRatePercent)
	total := subtotal + tax - discount
	if total < 0 {
		return domain.Bill{}, domain.Validationf("discount exceeds the bill total")
	}

	bill := domain.Bill{
		ID:            uuid.NewString(),
		OrderID:       ord.ID,
		TableID:       ord.TableID,
		CustomerID:    ord.CustomerID,
		WaiterID:      ord.WaiterID,
		Items:         items,
		Subtotal:      subtotal,
		Tax:           tax,
		Discount:      discount,
		Total:         total,
		PaymentMethod: paymentMethod,
		PaymentStatus: domain.PaymentPending,
		CreatedAt:     time.Now().UTC(),
	}

	s.bills = append(s.bills, bill)
	if err := s.persist(ctx); err != nil {
		s.bills = s.bills[:len(s.bills)-1]
		return domain.Bill{}, err
	}

	s.publish(ctx, domain.EventBillGenerated, domain.BillEvent{
		BillID: bill.ID, OrderID: bill.OrderID, TableID: bill.TableID,
		Total: bill.Total, PaymentStatus: bill.PaymentStatus,
	})
	s.log.Info("bill_generated", map[string]any{"bill_id": bill.ID, "order_id": orderID, "total": bill.Total.String()})
	return bill, nil
}

func (s *Service) List(_ context.Context) []domain.Bill {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Bill, len(s.bills))
	copy(out, s.bills)
	return out
}

func (s *Service) Get(_ context.Context, id string) (domain.Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, err := s.find(id)
	if err != nil {
		return domain.Bill{}, err
	}
	return s.bills[i], nil
}

// SetPaymentStatus resolves a payment. Completing it cascades synchronously:
// the table becomes available (occupant cleared) and the order completes.
// Repeating "completed" re-runs the cascade, so the end state holds no
// matter how many times the caller retries. A failed payment touches
// nothing beyond the bill, leaving the order rebillable.
func (s *Service) SetPaymentStatus(ctx context.Context, billID string, status domain.PaymentStatus) (domain.Bill, error) {
	if !status.Valid() {
		return domain.Bill{}, domain.Validationf("unknown payment status %q", status)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i, err := s.find(billID)
	if err != nil {
		return domain.Bill{}, err
	}

	bill := s.bills[i]
	if !bill.PaymentStatus.CanTransitionTo(status) {
		return domain.Bill{}, domain.InvalidTransitionf("bill %s: %s -> %s", billID, bill.PaymentStatus, status)
	}

	if bill.PaymentStatus != status {
		prev := bill.PaymentStatus
		s.bills[i].PaymentStatus = status
		if err := s.persist(ctx); err != nil {
			s.bills[i].PaymentStatus = prev
			return domain.Bill{}, err
		}
		s.log.Info("payment_status_updated", map[string]any{"bill_id": billID, "status": string(status)})
	}

	switch status {
	case domain.PaymentCompleted:
		if err := s.cascade(ctx, s.bills[i]); err != nil {
			return domain.Bill{}, err
		}
		s.publish(ctx, domain.EventBillPaid, domain.BillEvent{
			BillID: billID, OrderID: s.bills[i].OrderID, TableID: s.bills[i].TableID,
			Total: s.bills[i].Total, PaymentStatus: status,
		})
	case domain.PaymentFailed:
		s.publish(ctx, domain.EventBillFailed, domain.BillEvent{
			BillID: billID, OrderID: s.bills[i].OrderID, TableID: s.bills[i].TableID,
			Total: s.bills[i].Total, PaymentStatus: status,
		})
	}
	return s.bills[i], nil
}

func (s *Service) cascade(ctx context.Context, bill domain.Bill) error {
	if _, err := s.tables.UpdateStatus(ctx, bill.TableID, domain.TableAvailable, "", ""); err != nil {
		return err
	}
	if _, err := s.orders.SetStatus(ctx, bill.OrderID, domain.OrderCompleted); err != nil {
		return err
	}
	s.log.Info("payment_cascade_applied", map[string]any{"bill_id": bill.ID, "order_id": bill.OrderID, "table_id": bill.TableID})
	return nil
}

// find expects s.mu held.
func (s *Service) find(id string) (int, error) {
	for i := range s.bills {
		if s.bills[i].ID == id {
			return i, nil
		}
	}
	return -1, domain.NotFoundf("bill %s", id)
}

func (s *Service) persist(ctx context.Context) error {
	return storage.SaveJSON(ctx, s.store, storage.KeyBills, s.bills)
}

func (s *Service) publish(ctx context.Context, key string, payload any) {
	if s.pub == nil {
		return
	}
	if err := s.pub.Publish(ctx, key, payload); err != nil {
		s.log.Error("event_publish_failed", err, map[string]any{"routing_key": key})
	}
}
