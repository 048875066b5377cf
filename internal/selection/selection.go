// Package selection tracks a single choice out of a fixed catalog list.
package selection

import (
	"errors"
	"fmt"
)

// All is the filter value that shows every item.
const All = "all"

// ErrUnknownItem is returned when selecting an id that is not in the registry.
var ErrUnknownItem = errors.New("unknown item")

// Item is anything with a stable identifier.
type Item interface {
	ItemID() string
}

// Registry holds a read-only item list, at most one selected id and an
// optional category filter. The selection survives filter changes.
type Registry[T Item] struct {
	items      []T
	categoryOf func(T) string
	selected   string
	filter     string
}

// New creates a registry over items. categoryOf may be nil when the list
// has no categories; filtering is then a no-op.
func New[T Item](items []T, categoryOf func(T) string) *Registry[T] {
	return &Registry[T]{
		items:      items,
		categoryOf: categoryOf,
		filter:     All,
	}
}

// Items returns every item regardless of filter.
func (r *Registry[T]) Items() []T { return r.items }

// Select marks id as the selection, replacing any previous one.
// Selecting the current id again is a no-op.
func (r *Registry[T]) Select(id string) error {
	if _, ok := r.find(id); !ok {
		return fmt.Errorf("select %q: %w", id, ErrUnknownItem)
	}
	r.selected = id
	return nil
}

// IsSelected reports whether id is the current selection.
func (r *Registry[T]) IsSelected(id string) bool {
	return r.selected != "" && r.selected == id
}

// Selected returns the selected item.
func (r *Registry[T]) Selected() (T, bool) {
	return r.find(r.selected)
}

// SelectedID returns the selected id, empty when nothing is selected.
func (r *Registry[T]) SelectedID() string { return r.selected }

// CanContinue reports whether the user may move on.
func (r *Registry[T]) CanContinue() bool { return r.selected != "" }

// Clear drops the selection.
func (r *Registry[T]) Clear() { r.selected = "" }

// SetFilter restricts Visible to one category. Empty means All.
func (r *Registry[T]) SetFilter(category string) {
	if category == "" {
		category = All
	}
	r.filter = category
}

// Filter returns the active category filter.
func (r *Registry[T]) Filter() string { return r.filter }

// Visible returns the items matching the active filter, in catalog order.
func (r *Registry[T]) Visible() []T {
	if r.filter == All || r.categoryOf == nil {
		return r.items
	}
	visible := make([]T, 0, len(r.items))
	for _, item := range r.items {
		if r.categoryOf(item) == r.filter {
			visible = append(visible, item)
		}
	}
	return visible
}

func (r *Registry[T]) find(id string) (T, bool) {
	var zero T
	if id == "" {
		return zero, false
	}
	for _, item := range r.items {
		if item.ItemID() == id {
			return item, true
		}
	}
	return zero, false
}
