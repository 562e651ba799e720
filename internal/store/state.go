package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Well-known keys of the persisted client state.
const (
	KeySession        = "auth-storage"
	KeyTheme          = "theme-storage"
	KeyOnboardingSeen = "onboarding_seen"
)

// StateStore keeps small JSON blobs that must survive restarts.
type StateStore struct {
	db *sql.DB
}

func NewStateStore(db *sql.DB) *StateStore {
	return &StateStore{db: db}
}

// Record is one stored value. Sealed values are ciphertext the caller must
// open before decoding.
type Record struct {
	Value     string
	Sealed    bool
	UpdatedAt time.Time
}

// Get returns nil when key is absent.
func (s *StateStore) Get(ctx context.Context, key string) (*Record, error) {
	var r Record
	err := s.db.QueryRowContext(ctx,
		`SELECT value, sealed, updated_at FROM client_state WHERE key = ?`, key,
	).Scan(&r.Value, &r.Sealed, &r.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get state %q: %w", key, err)
	}
	return &r, nil
}

func (s *StateStore) Put(ctx context.Context, key, value string, sealed bool) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO client_state (key, value, sealed, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, sealed = excluded.sealed, updated_at = excluded.updated_at`,
		key, value, sealed, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("put state %q: %w", key, err)
	}
	return nil
}

func (s *StateStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM client_state WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete state %q: %w", key, err)
	}
	return nil
}

// GetJSON decodes the plain value under key into dst. found is false when
// the key is absent.
func (s *StateStore) GetJSON(ctx context.Context, key string, dst any) (found bool, err error) {
	r, err := s.Get(ctx, key)
	if err != nil || r == nil {
		return false, err
	}
	if r.Sealed {
		return false, fmt.Errorf("state %q is sealed", key)
	}
	if err := json.Unmarshal([]byte(r.Value), dst); err != nil {
		return false, fmt.Errorf("decode state %q: %w", key, err)
	}
	return true, nil
}

func (s *StateStore) SetJSON(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode state %q: %w", key, err)
	}
	return s.Put(ctx, key, string(b), false)
}
