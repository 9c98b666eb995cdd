package gormstore

import (
	"context"

	"gorm.io/gorm"

	"github.com/salonware/salon-manager/internal/resource"
)

// Resource is the direct-database backend path: the same capability
// interface as the REST client, served straight from gorm. Row filtering
// beyond the tenant scope is the database's concern, not this layer's.
type Resource[T any] struct {
	db       *gorm.DB
	scopeCol string
	scopeVal any
}

func New[T any](db *gorm.DB) *Resource[T] {
	return &Resource[T]{db: db}
}

// Scoped restricts reads, updates and deletes to rows whose column matches
// value (the tenant column). Payloads for Create must already carry the
// scope value; this layer does not rewrite them.
func (r *Resource[T]) Scoped(column string, value any) *Resource[T] {
	return &Resource[T]{db: r.db, scopeCol: column, scopeVal: value}
}

func (r *Resource[T]) scoped(ctx context.Context) *gorm.DB {
	q := r.db.WithContext(ctx)
	if r.scopeCol != "" {
		q = q.Where(r.scopeCol+" = ?", r.scopeVal)
	}
	return q
}

func (r *Resource[T]) List(ctx context.Context) ([]T, error) {
	var items []T
	if err := r.scoped(ctx).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *Resource[T]) Get(ctx context.Context, id uint) (T, error) {
	var item T
	if err := r.scoped(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return item, err
	}
	return item, nil
}

func (r *Resource[T]) Create(ctx context.Context, payload T) (T, error) {
	if err := r.db.WithContext(ctx).Create(&payload).Error; err != nil {
		return payload, err
	}
	return payload, nil
}

func (r *Resource[T]) Update(ctx context.Context, id uint, payload T) (T, error) {
	var existing T
	if err := r.scoped(ctx).Where("id = ?", id).First(&existing).Error; err != nil {
		return existing, err
	}

	// Updates with a struct skips zero-valued fields, so absent optional
	// fields never clobber stored values.
	if err := r.db.WithContext(ctx).Model(&existing).Updates(payload).Error; err != nil {
		return existing, err
	}

	if err := r.scoped(ctx).Where("id = ?", id).First(&existing).Error; err != nil {
		return existing, err
	}
	return existing, nil
}

func (r *Resource[T]) Remove(ctx context.Context, id uint) error {
	var model T
	res := r.scoped(ctx).Where("id = ?", id).Delete(&model)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

var _ resource.Backend[struct{}] = (*Resource[struct{}])(nil)
