package structmap

import (
	"slices"
	"sort"
	"strings"
	"testing"
)

type point struct {
	X, Y int
}

// setKey canonicalizes a string slice used as an unordered set.
func setKey(s []string) any {
	c := slices.Clone(s)
	sort.Strings(c)
	return strings.Join(c, "\x00")
}

func TestMapStructKeys(t *testing.T) {
	m := New[point, string]()
	m.Set(point{1, 2}, "a")
	m.Set(point{3, 4}, "b")

	if v, ok := m.Get(point{1, 2}); !ok || v != "a" {
		t.Errorf("Get({1 2}) = %q, %v; want \"a\", true", v, ok)
	}
	if !m.Has(point{3, 4}) {
		t.Error("Has({3 4}) = false, want true")
	}
	if m.Has(point{5, 6}) {
		t.Error("Has({5 6}) = true, want false")
	}
	if m.Len() != 2 {
		t.Errorf("Len() = %d, want 2", m.Len())
	}
}

func TestMapGetAbsent(t *testing.T) {
	m := New[string, int]()
	if v, ok := m.Get("missing"); ok || v != 0 {
		t.Errorf("Get(missing) = %d, %v; want 0, false", v, ok)
	}

	var nilMap *Map[string, int]
	if _, ok := nilMap.Get("missing"); ok {
		t.Error("nil map Get should report absence")
	}
	if nilMap.Len() != 0 {
		t.Errorf("nil map Len() = %d, want 0", nilMap.Len())
	}
	if nilMap.Delete("missing") {
		t.Error("nil map Delete should return false")
	}
}

func TestMapZeroValue(t *testing.T) {
	var m Map[string, int]
	m.Set("a", 1)
	if v, ok := m.Get("a"); !ok || v != 1 {
		t.Errorf("Get(a) = %d, %v; want 1, true", v, ok)
	}
}

func TestMapSetOverwritesInPlace(t *testing.T) {
	m := New[string, int]()
	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("c", 3)
	m.Set("a", 10)

	if got := slices.Collect(m.Keys()); !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Errorf("Keys() = %v, want [a b c]", got)
	}
	if got := slices.Collect(m.Values()); !slices.Equal(got, []int{10, 2, 3}) {
		t.Errorf("Values() = %v, want [10 2 3]", got)
	}
	if m.Len() != 3 {
		t.Errorf("Len() = %d, want 3", m.Len())
	}
}

func TestMapDeleteKeepsOrder(t *testing.T) {
	m := From(
		Entry[string, int]{"a", 1},
		Entry[string, int]{"b", 2},
		Entry[string, int]{"c", 3},
		Entry[string, int]{"d", 4},
	)

	if !m.Delete("b") {
		t.Error("Delete(b) = false, want true")
	}
	if m.Delete("b") {
		t.Error("second Delete(b) = true, want false")
	}
	if got := slices.Collect(m.Keys()); !slices.Equal(got, []string{"a", "c", "d"}) {
		t.Errorf("Keys() after Delete = %v, want [a c d]", got)
	}

	m.Set("b", 5)
	if got := slices.Collect(m.Keys()); !slices.Equal(got, []string{"a", "c", "d", "b"}) {
		t.Errorf("Keys() after re-Set = %v, want [a c d b]", got)
	}
}

func TestMapFuncCanonicalSets(t *testing.T) {
	m := NewFunc[[]string, string](setKey)
	m.Set([]string{"Shift", "Control"}, "first")

	if v, ok := m.Get([]string{"Control", "Shift"}); !ok || v != "first" {
		t.Fatalf("Get([Control Shift]) = %q, %v; want \"first\", true", v, ok)
	}

	m.Set([]string{"Control", "Shift"}, "second")
	if m.Len() != 1 {
		t.Errorf("Len() = %d, want 1", m.Len())
	}

	// The key as first inserted is kept.
	entries := m.Entries()
	if len(entries) != 1 {
		t.Fatalf("Entries() has %d entries, want 1", len(entries))
	}
	if !slices.Equal(entries[0].Key, []string{"Shift", "Control"}) {
		t.Errorf("entry key = %v, want [Shift Control]", entries[0].Key)
	}
	if entries[0].Value != "second" {
		t.Errorf("entry value = %q, want \"second\"", entries[0].Value)
	}
}

func TestNewFuncNilPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewFunc(nil) should panic")
		}
	}()
	NewFunc[[]string, int](nil)
}

func TestMapAllStopsEarly(t *testing.T) {
	m := From(
		Entry[int, int]{1, 1},
		Entry[int, int]{2, 2},
		Entry[int, int]{3, 3},
	)
	var seen []int
	for k := range m.All() {
		seen = append(seen, k)
		if k == 2 {
			break
		}
	}
	if !slices.Equal(seen, []int{1, 2}) {
		t.Errorf("seen = %v, want [1 2]", seen)
	}
}

func TestMapClear(t *testing.T) {
	m := From(Entry[string, int]{"a", 1})
	m.Clear()
	if m.Len() != 0 || len(m.Entries()) != 0 {
		t.Errorf("after Clear: Len() = %d, Entries() = %v", m.Len(), m.Entries())
	}
	m.Set("b", 2)
	if m.Len() != 1 {
		t.Errorf("Len() after Set = %d, want 1", m.Len())
	}
}

func TestMapClone(t *testing.T) {
	m := NewFunc[[]string, int](setKey)
	m.Set([]string{"a", "b"}, 1)

	c := m.Clone()
	c.Set([]string{"b", "a"}, 2)
	c.Set([]string{"c"}, 3)

	if v, _ := m.Get([]string{"a", "b"}); v != 1 || m.Len() != 1 {
		t.Errorf("original changed: value %d, Len() %d; want 1, 1", v, m.Len())
	}
	if v, _ := c.Get([]string{"a", "b"}); v != 2 || c.Len() != 2 {
		t.Errorf("clone: value %d, Len() %d; want 2, 2", v, c.Len())
	}
}

func TestMapEqual(t *testing.T) {
	eq := func(a, b int) bool { return a == b }
	a := From(Entry[string, int]{"x", 1}, Entry[string, int]{"y", 2})

	tests := []struct {
		name  string
		other *Map[string, int]
		want  bool
	}{
		{"reordered", From(Entry[string, int]{"y", 2}, Entry[string, int]{"x", 1}), true},
		{"different value", From(Entry[string, int]{"x", 1}, Entry[string, int]{"y", 3}), false},
		{"empty", New[string, int](), false},
	}

	for _, tt := range tests {
		if got := a.Equal(tt.other, eq); got != tt.want {
			t.Errorf("%s: Equal() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestGroupBy(t *testing.T) {
	type pair struct {
		key   point
		value int
	}
	items := []pair{
		{point{1, 1}, 1},
		{point{2, 2}, 2},
		{point{1, 1}, 3},
		{point{1, 1}, 4},
	}

	groups := GroupBy(items, func(p pair) point { return p.key })

	if got := slices.Collect(groups.Keys()); !slices.Equal(got, []point{{1, 1}, {2, 2}}) {
		t.Fatalf("group keys = %v, want [{1 1} {2 2}]", got)
	}

	first, _ := groups.Get(point{1, 1})
	if want := []pair{items[0], items[2], items[3]}; !slices.Equal(first, want) {
		t.Errorf("group {1 1} = %v, want %v", first, want)
	}
	second, _ := groups.Get(point{2, 2})
	if want := []pair{items[1]}; !slices.Equal(second, want) {
		t.Errorf("group {2 2} = %v, want %v", second, want)
	}
}

func TestGroupByFunc(t *testing.T) {
	items := [][]string{{"a", "b"}, {"c"}, {"b", "a"}}
	groups := GroupByFunc(items, func(s []string) []string { return s }, setKey)

	if groups.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", groups.Len())
	}
	g, ok := groups.Get([]string{"b", "a"})
	if !ok || len(g) != 2 {
		t.Errorf("group [a b] = %v, %v; want 2 members", g, ok)
	}
}
