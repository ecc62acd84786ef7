package registry

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"tasty-table/internal/domain"
	"tasty-table/internal/storage"
)

// Staff tracks the restaurant's users (admins and waiters) for the settings
// surface. No credentials are stored here.
type Staff struct {
	mu    sync.Mutex
	store storage.Store
	users []domain.User
}

func NewStaff(ctx context.Context, st storage.Store) (*Staff, error) {
	users, err := load[domain.User](ctx, st, storage.KeyUsers)
	if err != nil {
		return nil, err
	}
	return &Staff{store: st, users: users}, nil
}

func (s *Staff) List(_ context.Context) []domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.User, len(s.users))
	copy(out, s.users)
	return out
}

func (s *Staff) Get(_ context.Context, id string) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return domain.User{}, domain.NotFoundf("user %s", id)
}

func (s *Staff) Add(ctx context.Context, input domain.UserInput) (domain.User, error) {
	if input.Name == "" {
		return domain.User{}, domain.Validationf("user name is required")
	}
	if input.Email == "" {
		return domain.User{}, domain.Validationf("user email is required")
	}
	if !input.Role.Valid() {
		return domain.User{}, domain.Validationf("unknown role %q", input.Role)
	}
	user := domain.User{
		ID:      uuid.NewString(),
		Name:    input.Name,
		Role:    input.Role,
		Email:   input.Email,
		Phone:   input.Phone,
		Address: input.Address,
		Salary:  input.Salary,
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = append(s.users, user)
	if err := persist(ctx, s.store, storage.KeyUsers, s.users); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

func (s *Staff) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID != id {
			continue
		}
		s.users = append(s.users[:i], s.users[i+1:]...)
		return persist(ctx, s.store, storage.KeyUsers, s.users)
	}
	return domain.NotFoundf("user %s", id)
}
