// Package storage provides the key-value stores board snapshots are
// persisted to.
package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("key not found")

// KV is the persistence collaborator. Get returns ErrNotFound for keys
// that were never set.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}
