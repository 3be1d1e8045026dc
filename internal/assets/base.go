package assets

import (
	"go.uber.org/zap"

	"github.com/Faultbox/cubetac/internal/logger"
)

// Base keeps loaded resources of one kind by name. Lookups of unknown names
// fall back to the first resource added.
type Base[T any] struct {
	kind  string
	order []string
	items map[string]T
}

// NewBase creates an empty base. kind names the resources in log messages.
func NewBase[T any](kind string) *Base[T] {
	return &Base[T]{
		kind:  kind,
		items: make(map[string]T),
	}
}

// Add registers item under name, replacing any previous item of that name.
func (b *Base[T]) Add(name string, item T) {
	if _, ok := b.items[name]; !ok {
		b.order = append(b.order, name)
	}
	b.items[name] = item
}

// Get returns the item registered under name. An unknown name logs a warning
// and yields the first registered item. ok is false only when the base is
// empty.
func (b *Base[T]) Get(name string) (item T, ok bool) {
	if it, found := b.items[name]; found {
		return it, true
	}
	if len(b.order) == 0 {
		return item, false
	}
	fallback := b.order[0]
	logger.Named("assets").Warn("unknown asset, using default",
		zap.String("kind", b.kind),
		zap.String("name", name),
		zap.String("default", fallback),
	)
	return b.items[fallback], true
}

// Has reports whether name is registered.
func (b *Base[T]) Has(name string) bool {
	_, ok := b.items[name]
	return ok
}

// Names returns the registered names in insertion order.
func (b *Base[T]) Names() []string {
	return append([]string(nil), b.order...)
}

// Len returns the number of registered items.
func (b *Base[T]) Len() int {
	return len(b.order)
}

// Each calls fn for every item in insertion order.
func (b *Base[T]) Each(fn func(name string, item T)) {
	for _, name := range b.order {
		fn(name, b.items[name])
	}
}
