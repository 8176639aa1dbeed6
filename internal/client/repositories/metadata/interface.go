// Package metadata is the key/value store of the local profile. Each key
// holds one whole JSON record (session snapshot, registered accounts,
// reports).
package metadata

import (
	"context"
)

// Well-known record keys.
const (
	KeySessionUser     = "sessionUser"
	KeyRegisteredUsers = "registeredUsers"
	KeyReports         = "reports"
)

// UpdateFunc receives the current value of a key (ok=false when unset) and
// returns the value to store.
type UpdateFunc func(cur []byte, ok bool) ([]byte, error)

// Repository stores opaque values by key. Get reports ok=false for a key
// that was never set. Update is an atomic read-modify-write of one key:
// if fn fails nothing is written.
type Repository interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Update(ctx context.Context, key string, fn UpdateFunc) error
}
