// Package table renders a query accessor's value as a row model with
// edit/delete affordances. It owns no data: rows come from the query, edits
// open a pre-populated form payload, deletes go through the delete mutation.
package table

import (
	"context"

	"github.com/salonware/salon-manager/internal/resource"
)

const DefaultEmptyMessage = "No records found."

type Row[T any] struct {
	ID    uint
	Value T
}

// Model is one renderable snapshot of the table.
type Model[T any] struct {
	Loading bool
	Err     error
	Rows    []Row[T]

	// EmptyMessage is set only when the fetch succeeded with zero rows.
	EmptyMessage string
}

type Table[T any] struct {
	accessor     *resource.Accessor[T]
	id           func(T) uint
	emptyMessage string
}

// New builds a table over an entity accessor. id extracts the row
// identifier used by the edit/delete actions.
func New[T any](accessor *resource.Accessor[T], id func(T) uint, emptyMessage string) *Table[T] {
	if emptyMessage == "" {
		emptyMessage = DefaultEmptyMessage
	}
	return &Table[T]{
		accessor:     accessor,
		id:           id,
		emptyMessage: emptyMessage,
	}
}

// Load fetches (or reuses) the collection and returns the row model.
func (t *Table[T]) Load(ctx context.Context) Model[T] {
	items, err := t.accessor.List(ctx)
	if err != nil {
		return Model[T]{Err: err}
	}

	rows := make([]Row[T], 0, len(items))
	for _, item := range items {
		rows = append(rows, Row[T]{ID: t.id(item), Value: item})
	}

	m := Model[T]{Rows: rows}
	if len(rows) == 0 {
		m.EmptyMessage = t.emptyMessage
	}
	return m
}

// Snapshot reports the list query's current status without fetching, for
// rendering a loading placeholder while a fetch is in flight elsewhere.
func (t *Table[T]) Snapshot() Model[T] {
	st := t.accessor.ListQuery().State()
	return Model[T]{Loading: st.Loading, Err: st.Err}
}

// Edit returns the row's current value for pre-populating a form.
func (t *Table[T]) Edit(ctx context.Context, id uint) (T, error) {
	return t.accessor.GetByID(ctx, id)
}

// Delete invokes the delete mutation for the row.
func (t *Table[T]) Delete(ctx context.Context, id uint) error {
	return t.accessor.Delete(ctx, id)
}
