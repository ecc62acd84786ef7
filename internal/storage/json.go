package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// LoadJSON decodes the document at key into v. A key that has never been
// written leaves v untouched and returns nil.
func LoadJSON(ctx context.Context, s Store, key string, v any) error {
	raw, err := s.Load(ctx, key)
	if errors.Is(err, ErrNoKey) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

// SaveJSON encodes v and stores it under key.
func SaveJSON(ctx context.Context, s Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.Save(ctx, key, raw); err != nil {
		return fmt.Errorf("persist %s: %w", key, err)
	}
	return nil
}
