package registry

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"tasty-table/internal/domain"
	"tasty-table/internal/storage"
)

type Customers struct {
	mu        sync.Mutex
	store     storage.Store
	customers []domain.Customer
}

func NewCustomers(ctx context.Context, st storage.Store) (*Customers, error) {
	customers, err := load[domain.Customer](ctx, st, storage.KeyCustomers)
	if err != nil {
		return nil, err
	}
	return &Customers{store: st, customers: customers}, nil
}

func (c *Customers) List(_ context.Context) []domain.Customer {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.Customer, len(c.customers))
	copy(out, c.customers)
	return out
}

func (c *Customers) Get(_ context.Context, id string) (domain.Customer, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, cu := range c.customers {
		if cu.ID == id {
			return cu, nil
		}
	}
	return domain.Customer{}, domain.NotFoundf("customer %s", id)
}

// Add registers a new customer with a first visit on the counter.
func (c *Customers) Add(ctx context.Context, input domain.CustomerInput) (domain.Customer, error) {
	if input.Name == "" {
		return domain.Customer{}, domain.Validationf("customer name is required")
	}
	customer := domain.Customer{
		ID:           uuid.NewString(),
		Name:         input.Name,
		Phone:        input.Phone,
		Email:        input.Email,
		Visits:       1,
		MembershipID: input.MembershipID,
		Feedback:     input.Feedback,
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.customers = append(c.customers, customer)
	if err := persist(ctx, c.store, storage.KeyCustomers, c.customers); err != nil {
		return domain.Customer{}, err
	}
	return customer, nil
}

// Delete removes the customer. Orders and bills keep any reference to the
// deleted id; the field is optional everywhere it appears.
func (c *Customers) Delete(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.customers {
		if c.customers[i].ID != id {
			continue
		}
		c.customers = append(c.customers[:i], c.customers[i+1:]...)
		return persist(ctx, c.store, storage.KeyCustomers, c.customers)
	}
	return domain.NotFoundf("customer %s", id)
}

// RecordVisit bumps the visit counter for a returning customer.
func (c *Customers) RecordVisit(ctx context.Context, id string) (domain.Customer, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.customers {
		if c.customers[i].ID != id {
			continue
		}
		c.customers[i].Visits++
		if err := persist(ctx, c.store, storage.KeyCustomers, c.customers); err != nil {
			return domain.Customer{}, err
		}
		return c.customers[i], nil
	}
	return domain.Customer{}, domain.NotFoundf("customer %s", id)
}
