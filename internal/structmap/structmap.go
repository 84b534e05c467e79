// Package structmap provides an insertion-ordered map keyed by value
// equality rather than identity.
//
// Keys are reduced to a canonical comparable value before lookup. For
// comparable key types (bitmask modifier sets, plain structs, strings) the
// key is its own canonical form, so two modifier sets built in a different
// order address the same entry. Non-comparable keys, such as slices used as
// sets, supply a canonicalizer through NewFunc.
//
// Iteration always follows insertion order. Overwriting a key keeps its
// position and deleting a key leaves the relative order of the survivors
// untouched.
package structmap

import (
	"iter"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Entry is a key/value pair stored in a Map.
type Entry[K, V any] struct {
	Key   K
	Value V
}

// Map is an ordered associative container with structural key equality.
//
// The zero value is an empty map ready for use with comparable key types.
// Maps with non-comparable keys must be created with NewFunc.
//
// Map is not safe for concurrent mutation. Concurrent readers are fine once
// the map is no longer written.
type Map[K, V any] struct {
	canon func(K) any
	items *orderedmap.OrderedMap[any, Entry[K, V]]
}

// New creates an empty map whose keys compare with ==.
func New[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{
		canon: identity[K],
		items: orderedmap.New[any, Entry[K, V]](),
	}
}

// NewFunc creates an empty map that compares keys by canon(key).
// canon must return a comparable value and must be deterministic.
func NewFunc[K, V any](canon func(K) any) *Map[K, V] {
	if canon == nil {
		panic("structmap: nil canonicalizer")
	}
	return &Map[K, V]{
		canon: canon,
		items: orderedmap.New[any, Entry[K, V]](),
	}
}

// From creates a map with comparable keys from the given entries.
// Later entries overwrite earlier ones with an equal key.
func From[K comparable, V any](entries ...Entry[K, V]) *Map[K, V] {
	m := New[K, V]()
	for _, e := range entries {
		m.Set(e.Key, e.Value)
	}
	return m
}

func identity[K any](k K) any {
	return k
}

func (m *Map[K, V]) init() {
	if m.items == nil {
		m.items = orderedmap.New[any, Entry[K, V]]()
	}
	if m.canon == nil {
		m.canon = identity[K]
	}
}

// Get returns the value stored under a key structurally equal to k.
func (m *Map[K, V]) Get(k K) (V, bool) {
	if m == nil || m.items == nil {
		var zero V
		return zero, false
	}
	e, ok := m.items.Get(m.canon(k))
	return e.Value, ok
}

// Set stores v under k. If a structurally equal key is already present its
// value is replaced in place and the original key is kept.
func (m *Map[K, V]) Set(k K, v V) {
	m.init()
	c := m.canon(k)
	if e, ok := m.items.Get(c); ok {
		e.Value = v
		m.items.Set(c, e)
		return
	}
	m.items.Set(c, Entry[K, V]{Key: k, Value: v})
}

// Has reports whether a key structurally equal to k is present.
func (m *Map[K, V]) Has(k K) bool {
	_, ok := m.Get(k)
	return ok
}

// Delete removes k and reports whether it was present.
func (m *Map[K, V]) Delete(k K) bool {
	if m == nil || m.items == nil {
		return false
	}
	_, ok := m.items.Delete(m.canon(k))
	return ok
}

// Len returns the number of entries.
func (m *Map[K, V]) Len() int {
	if m == nil || m.items == nil {
		return 0
	}
	return m.items.Len()
}

// Clear removes all entries.
func (m *Map[K, V]) Clear() {
	if m == nil || m.items == nil {
		return
	}
	m.items = orderedmap.New[any, Entry[K, V]]()
}

// All iterates over entries in insertion order.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		if m == nil || m.items == nil {
			return
		}
		for p := m.items.Oldest(); p != nil; p = p.Next() {
			if !yield(p.Value.Key, p.Value.Value) {
				return
			}
		}
	}
}

// Keys iterates over keys in insertion order.
func (m *Map[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for k := range m.All() {
			if !yield(k) {
				return
			}
		}
	}
}

// Values iterates over values in insertion order.
func (m *Map[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, v := range m.All() {
			if !yield(v) {
				return
			}
		}
	}
}

// Entries returns a snapshot of all entries in insertion order.
func (m *Map[K, V]) Entries() []Entry[K, V] {
	out := make([]Entry[K, V], 0, m.Len())
	for k, v := range m.All() {
		out = append(out, Entry[K, V]{Key: k, Value: v})
	}
	return out
}

// Clone returns a shallow copy: entries are copied, values are not deep
// copied.
func (m *Map[K, V]) Clone() *Map[K, V] {
	c := &Map[K, V]{items: orderedmap.New[any, Entry[K, V]]()}
	if m == nil {
		c.canon = identity[K]
		return c
	}
	m.init()
	c.canon = m.canon
	for p := m.items.Oldest(); p != nil; p = p.Next() {
		c.items.Set(p.Key, p.Value)
	}
	return c
}

// Equal reports whether both maps hold structurally equal keys with values
// equal under eq. Order is not compared.
func (m *Map[K, V]) Equal(other *Map[K, V], eq func(a, b V) bool) bool {
	if m.Len() != other.Len() {
		return false
	}
	for k, v := range m.All() {
		ov, ok := other.Get(k)
		if !ok || !eq(v, ov) {
			return false
		}
	}
	return true
}

// GroupBy groups items by keyFn(item). Groups appear in first-seen order and
// each group keeps the input order of its items.
func GroupBy[T any, K comparable](items []T, keyFn func(T) K) *Map[K, []T] {
	return groupInto(New[K, []T](), items, keyFn)
}

// GroupByFunc is GroupBy for keys compared through canon.
func GroupByFunc[T, K any](items []T, keyFn func(T) K, canon func(K) any) *Map[K, []T] {
	return groupInto(NewFunc[K, []T](canon), items, keyFn)
}

func groupInto[T, K any](m *Map[K, []T], items []T, keyFn func(T) K) *Map[K, []T] {
	for _, item := range items {
		k := keyFn(item)
		group, _ := m.Get(k)
		m.Set(k, append(group, item))
	}
	return m
}
