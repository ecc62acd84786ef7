package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"tasty-table/internal/domain"
	"tasty-table/internal/storage"
)

// RestaurantProfile holds the single restaurant record, persisted as one
// JSON object rather than an array.
type RestaurantProfile struct {
	mu      sync.Mutex
	store   storage.Store
	profile domain.Restaurant
	set     bool
}

func NewRestaurantProfile(ctx context.Context, st storage.Store) (*RestaurantProfile, error) {
	r := &RestaurantProfile{store: st}
	raw, err := st.Load(ctx, storage.KeyRestaurant)
	if errors.Is(err, storage.ErrNoKey) {
		return r, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", storage.KeyRestaurant, err)
	}
	if err := json.Unmarshal(raw, &r.profile); err != nil {
		return nil, fmt.Errorf("decode %s: %w", storage.KeyRestaurant, err)
	}
	r.set = true
	return r, nil
}

func (r *RestaurantProfile) Get(_ context.Context) (domain.Restaurant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.set {
		return domain.Restaurant{}, domain.NotFoundf("restaurant profile")
	}
	return r.profile, nil
}

func (r *RestaurantProfile) Update(ctx context.Context, profile domain.Restaurant) (domain.Restaurant, error) {
	if profile.Name == "" {
		return domain.Restaurant{}, domain.Validationf("restaurant name is required")
	}
	if profile.Location == "" {
		return domain.Restaurant{}, domain.Validationf("restaurant location is required")
	}
	if profile.Phone == "" {
		return domain.Restaurant{}, domain.Validationf("restaurant phone is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if profile.ID == "" {
		profile.ID = r.profile.ID
	}
	raw, err := json.Marshal(profile)
	if err != nil {
		return domain.Restaurant{}, fmt.Errorf("encode %s: %w", storage.KeyRestaurant, err)
	}
	if err := r.store.Save(ctx, storage.KeyRestaurant, raw); err != nil {
		return domain.Restaurant{}, fmt.Errorf("persist %s: %w", storage.KeyRestaurant, err)
	}
	r.profile = profile
	r.set = true
	return profile, nil
}
