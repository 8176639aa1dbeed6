package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/mriscan/internal/common"
)

// LoadJSON decodes the record stored under key into a T. A missing record
// yields the zero T and ok=false. A record that is present but cannot be
// decoded is reported as common.ErrStorage.
func LoadJSON[T any](ctx context.Context, repo Repository, key string) (T, bool, error) {
	raw, ok, err := repo.Get(ctx, key)
	if err != nil {
		var zero T
		return zero, false, err
	}
	return decode[T](key, raw, ok)
}

// SaveJSON replaces the whole record under key with v.
func SaveJSON[T any](ctx context.Context, repo Repository, key string, v T) error {
	raw, err := encode(key, v)
	if err != nil {
		return err
	}
	return repo.Set(ctx, key, raw)
}

func decode[T any](key string, raw []byte, ok bool) (T, bool, error) {
	var v T
	if !ok {
		return v, false, nil
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, false, fmt.Errorf("%w: record %q is corrupt: %v", common.ErrStorage, key, err)
	}
	return v, true, nil
}

func encode[T any](key string, v T) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode record %q: %w", key, err)
	}
	return raw, nil
}

// Record is a typed JSON view of one key. Writers are ordered by a mutex
// within the process; Update relies on Repository.Update for atomicity
// against the store.
type Record[T any] struct {
	mu   sync.Mutex
	repo Repository
	key  string
}

func NewRecord[T any](repo Repository, key string) *Record[T] {
	return &Record[T]{repo: repo, key: key}
}

// Load reads the current value.
func (r *Record[T]) Load(ctx context.Context) (T, bool, error) {
	return LoadJSON[T](ctx, r.repo, r.key)
}

// Update reads the record, passes it to fn and writes back what fn returns
// as one atomic step. If fn fails nothing is written.
func (r *Record[T]) Update(ctx context.Context, fn func(cur T, ok bool) (T, error)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.repo.Update(ctx, r.key, func(raw []byte, ok bool) ([]byte, error) {
		cur, ok, err := decode[T](r.key, raw, ok)
		if err != nil {
			return nil, err
		}
		next, err := fn(cur, ok)
		if err != nil {
			return nil, err
		}
		return encode(r.key, next)
	})
}

// Save replaces the record with v.
func (r *Record[T]) Save(ctx context.Context, v T) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return SaveJSON(ctx, r.repo, r.key, v)
}

// Delete removes the record.
func (r *Record[T]) Delete(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.repo.Delete(ctx, r.key)
}
