package domain

import "slices"

// Collection is an id-keyed set of entities that remembers insertion order.
// Replacing an existing id keeps its original position.
//
// Collections reachable from a committed Snapshot must be treated as read-only;
// writers Clone first.
type Collection[T any] struct {
	order []string
	items map[string]T
}

// NewCollection returns an empty collection.
func NewCollection[T any]() *Collection[T] {
	return &Collection[T]{items: make(map[string]T)}
}

// Len returns the number of entities.
func (c *Collection[T]) Len() int {
	if c == nil {
		return 0
	}
	return len(c.items)
}

// Get looks up an entity by id.
func (c *Collection[T]) Get(id string) (T, bool) {
	if c == nil {
		var zero T
		return zero, false
	}
	v, ok := c.items[id]
	return v, ok
}

// Has reports whether id is present.
func (c *Collection[T]) Has(id string) bool {
	_, ok := c.Get(id)
	return ok
}

// Keys returns ids in insertion order.
func (c *Collection[T]) Keys() []string {
	if c == nil {
		return nil
	}
	return slices.Clone(c.order)
}

// Values returns entities in insertion order.
func (c *Collection[T]) Values() []T {
	if c == nil {
		return nil
	}
	out := make([]T, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.items[id])
	}
	return out
}

// Each visits entities in insertion order until fn returns false.
func (c *Collection[T]) Each(fn func(id string, v T) bool) {
	if c == nil {
		return
	}
	for _, id := range c.order {
		if !fn(id, c.items[id]) {
			return
		}
	}
}

// Put inserts or replaces the entity stored under id.
func (c *Collection[T]) Put(id string, v T) {
	if _, exists := c.items[id]; !exists {
		c.order = append(c.order, id)
	}
	c.items[id] = v
}

// Delete removes id and reports whether it was present.
func (c *Collection[T]) Delete(id string) bool {
	if _, exists := c.items[id]; !exists {
		return false
	}
	delete(c.items, id)
	if i := slices.Index(c.order, id); i >= 0 {
		c.order = slices.Delete(c.order, i, i+1)
	}
	return true
}

// DeleteMany removes every listed id in one pass over the ordering and returns
// how many were present.
func (c *Collection[T]) DeleteMany(ids []string) int {
	doomed := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, exists := c.items[id]; exists {
			doomed[id] = struct{}{}
			delete(c.items, id)
		}
	}
	if len(doomed) == 0 {
		return 0
	}
	c.order = slices.DeleteFunc(c.order, func(id string) bool {
		_, gone := doomed[id]
		return gone
	})
	return len(doomed)
}

// Clone returns an independent copy with the same ordering.
func (c *Collection[T]) Clone() *Collection[T] {
	if c == nil {
		return NewCollection[T]()
	}
	items := make(map[string]T, len(c.items))
	for k, v := range c.items {
		items[k] = v
	}
	return &Collection[T]{order: slices.Clone(c.order), items: items}
}
