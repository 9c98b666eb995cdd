package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/salonware/salon-manager/internal/resource"
)

// Resource adapts one REST collection (e.g. /api/clients) to the generic
// backend interface.
type Resource[T any] struct {
	client *Client
	path   string
}

func NewResource[T any](client *Client, path string) *Resource[T] {
	return &Resource[T]{client: client, path: path}
}

func (r *Resource[T]) itemPath(id uint) string {
	return fmt.Sprintf("%s/%d", r.path, id)
}

func (r *Resource[T]) List(ctx context.Context) ([]T, error) {
	var out []T
	if err := r.client.Do(ctx, http.MethodGet, r.path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Resource[T]) Get(ctx context.Context, id uint) (T, error) {
	var out T
	if err := r.client.Do(ctx, http.MethodGet, r.itemPath(id), nil, &out); err != nil {
		return out, err
	}
	return out, nil
}

func (r *Resource[T]) Create(ctx context.Context, payload T) (T, error) {
	var out T
	if err := r.client.Do(ctx, http.MethodPost, r.path, payload, &out); err != nil {
		return out, err
	}
	return out, nil
}

func (r *Resource[T]) Update(ctx context.Context, id uint, payload T) (T, error) {
	var out T
	if err := r.client.Do(ctx, http.MethodPut, r.itemPath(id), payload, &out); err != nil {
		return out, err
	}
	return out, nil
}

func (r *Resource[T]) Remove(ctx context.Context, id uint) error {
	return r.client.Do(ctx, http.MethodDelete, r.itemPath(id), nil, nil)
}

var _ resource.Backend[struct{}] = (*Resource[struct{}])(nil)
