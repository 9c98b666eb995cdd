package resource

import (
	"context"
	"errors"
)

// Backend is the single capability interface every entity accessor is built
// on. The REST client and the direct database store both implement it; which
// one serves a given accessor is decided once, at composition time.
type Backend[T any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id uint) (T, error)
	Create(ctx context.Context, payload T) (T, error)
	Update(ctx context.Context, id uint, payload T) (T, error)
	Remove(ctx context.Context, id uint) error
}

// ErrMissingID is the precondition error for update/delete without an
// identifier. It is returned before any backend call is made.
var ErrMissingID = errors.New("resource: missing record identifier")
