package layout

import (
	"iter"

	"github.com/dshills/keybind/internal/input/key"
	"github.com/dshills/keybind/internal/structmap"
)

// Layout maps key codes to key caps.
type Layout struct {
	Name string
	caps *structmap.Map[key.Code, *KeyCap]
}

// New creates an empty layout.
func New(name string) *Layout {
	return &Layout{
		Name: name,
		caps: structmap.New[key.Code, *KeyCap](),
	}
}

// Get returns the key cap for code. A missing code is not an error; the
// key is simply inert.
func (l *Layout) Get(code key.Code) (*KeyCap, bool) {
	if l == nil {
		return nil, false
	}
	return l.caps.Get(code)
}

// Set assigns the key cap for code, replacing any previous one.
func (l *Layout) Set(code key.Code, c *KeyCap) *Layout {
	if l.caps == nil {
		l.caps = structmap.New[key.Code, *KeyCap]()
	}
	l.caps.Set(code, c)
	return l
}

// Cap returns the key cap for code, creating an empty one if needed.
func (l *Layout) Cap(code key.Code) *KeyCap {
	if c, ok := l.Get(code); ok && c != nil {
		return c
	}
	c := NewKeyCap("")
	l.Set(code, c)
	return c
}

// Len returns the number of key caps.
func (l *Layout) Len() int {
	if l == nil {
		return 0
	}
	return l.caps.Len()
}

// All iterates over the key caps in insertion order.
func (l *Layout) All() iter.Seq2[key.Code, *KeyCap] {
	if l == nil {
		return func(func(key.Code, *KeyCap) bool) {}
	}
	return l.caps.All()
}

// Clone returns a deep copy of the layout.
func (l *Layout) Clone() *Layout {
	if l == nil {
		return nil
	}
	out := New(l.Name)
	for code, c := range l.All() {
		out.Set(code, c.Clone())
	}
	return out
}
