package key

import (
	"fmt"
	"math/bits"
	"strings"
)

// Modifier represents a single keyboard modifier key.
// Bits are assigned in display order, lowest first.
type Modifier uint8

const (
	// Control indicates the Control key.
	Control Modifier = 1 << iota

	// Alt indicates the Alt key (Option on macOS).
	Alt

	// Shift indicates the Shift key.
	Shift

	// Win indicates the Windows logo key.
	Win

	// Super indicates the Super key.
	Super

	// Meta indicates the Meta key (Cmd on macOS).
	Meta

	// Hyper indicates the Hyper key.
	Hyper

	// NumLock indicates the NumLock state acting as a modifier.
	NumLock
)

// AllModifiers lists every modifier in display order.
var AllModifiers = []Modifier{Control, Alt, Shift, Win, Super, Meta, Hyper, NumLock}

// String returns the modifier name, e.g. "Control".
func (m Modifier) String() string {
	switch m {
	case Control:
		return "Control"
	case Alt:
		return "Alt"
	case Shift:
		return "Shift"
	case Win:
		return "Win"
	case Super:
		return "Super"
	case Meta:
		return "Meta"
	case Hyper:
		return "Hyper"
	case NumLock:
		return "NumLock"
	default:
		return fmt.Sprintf("Modifier(%d)", uint8(m))
	}
}

// Short returns the compact display form of the modifier.
func (m Modifier) Short() string {
	switch m {
	case Control:
		return "C"
	case Alt:
		return "A"
	case Shift:
		return "⇧"
	case Win:
		return "Win"
	case Super:
		return "s"
	case Meta:
		return "M"
	case Hyper:
		return "H"
	case NumLock:
		return "NumLock"
	default:
		return "?"
	}
}

// Modifiers is an unordered set of modifier keys.
type Modifiers uint8

// None is the empty modifier set.
const None Modifiers = 0

// NewModifiers returns the set containing mods.
func NewModifiers(mods ...Modifier) Modifiers {
	var s Modifiers
	for _, m := range mods {
		s |= Modifiers(m)
	}
	return s
}

// Has returns true if s contains mod.
func (s Modifiers) Has(mod Modifier) bool {
	return s&Modifiers(mod) != 0
}

// With returns a new set with mod added.
func (s Modifiers) With(mod Modifier) Modifiers {
	return s | Modifiers(mod)
}

// Without returns a new set with mod removed.
func (s Modifiers) Without(mod Modifier) Modifiers {
	return s &^ Modifiers(mod)
}

// Union returns the modifiers present in either set.
func (s Modifiers) Union(other Modifiers) Modifiers {
	return s | other
}

// Intersect returns the modifiers present in both sets.
func (s Modifiers) Intersect(other Modifiers) Modifiers {
	return s & other
}

// Intersects returns true if the sets share at least one modifier.
func (s Modifiers) Intersects(other Modifiers) bool {
	return s&other != 0
}

// Len returns the number of modifiers in the set.
func (s Modifiers) Len() int {
	return bits.OnesCount8(uint8(s))
}

// IsEmpty returns true if no modifiers are set.
func (s Modifiers) IsEmpty() bool {
	return s == None
}

// List returns the modifiers in display order.
func (s Modifiers) List() []Modifier {
	out := make([]Modifier, 0, s.Len())
	for _, m := range AllModifiers {
		if s.Has(m) {
			out = append(out, m)
		}
	}
	return out
}

// String returns a readable representation like "Control+Shift".
func (s Modifiers) String() string {
	return s.join("+", Modifier.String)
}

// Short returns a compact representation like "C-⇧".
func (s Modifiers) Short() string {
	return s.join("-", Modifier.Short)
}

// Spec returns the Emacs style prefix used in key specifications, e.g.
// "C-S-" for Control+Shift. The empty set yields "".
func (s Modifiers) Spec() string {
	var sb strings.Builder
	for _, m := range s.List() {
		sb.WriteString(specPrefix[m])
		sb.WriteByte('-')
	}
	return sb.String()
}

func (s Modifiers) join(sep string, name func(Modifier) string) string {
	if s == None {
		return ""
	}
	list := s.List()
	parts := make([]string, len(list))
	for i, m := range list {
		parts[i] = name(m)
	}
	return strings.Join(parts, sep)
}

// Compare orders sets by size, then by the display order of their members.
// It returns a negative number when s sorts before other.
func (s Modifiers) Compare(other Modifiers) int {
	if d := s.Len() - other.Len(); d != 0 {
		return d
	}
	return int(s) - int(other)
}

// MarshalText implements encoding.TextMarshaler.
func (s Modifiers) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Modifiers) UnmarshalText(text []byte) error {
	mods, err := ParseModifiers(string(text))
	if err != nil {
		return err
	}
	*s = mods
	return nil
}

// specPrefix is the single letter form of each modifier.
var specPrefix = map[Modifier]string{
	Control: "C",
	Alt:     "A",
	Shift:   "S",
	Win:     "W",
	Super:   "s",
	Meta:    "M",
	Hyper:   "H",
	NumLock: "N",
}

// shortNameMap holds case sensitive single letter names.
var shortNameMap = map[string]Modifier{
	"C": Control,
	"A": Alt,
	"S": Shift,
	"W": Win,
	"s": Super,
	"M": Meta,
	"H": Hyper,
	"N": NumLock,
	"D": Meta, // Vim uses D for command/meta
}

// modifierNameMap maps modifier names (lowercase) to Modifier values.
var modifierNameMap = map[string]Modifier{
	"ctrl":    Control,
	"control": Control,
	"alt":     Alt,
	"option":  Alt,
	"opt":     Alt,
	"shift":   Shift,
	"win":     Win,
	"windows": Win,
	"super":   Super,
	"meta":    Meta,
	"cmd":     Meta,
	"command": Meta,
	"hyper":   Hyper,
	"numlock": NumLock,
}

// ModifierFromName returns the Modifier for a given name.
// Single letters are case sensitive, full names are not.
func ModifierFromName(name string) (Modifier, bool) {
	name = strings.TrimSpace(name)
	if m, ok := shortNameMap[name]; ok {
		return m, true
	}
	m, ok := modifierNameMap[strings.ToLower(name)]
	return m, ok
}

// ParseModifiers parses a modifier set like "Ctrl+Alt", "C-A" or "Shift".
// The empty string and "none" yield the empty set.
func ParseModifiers(s string) (Modifiers, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "none") {
		return None, nil
	}

	var parts []string
	switch {
	case strings.Contains(s, "+"):
		parts = strings.Split(s, "+")
	case strings.Contains(s, "-"):
		parts = strings.Split(s, "-")
	default:
		parts = []string{s}
	}

	var result Modifiers
	for _, part := range parts {
		mod, ok := ModifierFromName(part)
		if !ok {
			return None, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, part)
		}
		result = result.With(mod)
	}
	return result, nil
}

// MustParseModifiers parses a modifier set and panics on error.
// Use only for known-valid specs in initialization code.
func MustParseModifiers(s string) Modifiers {
	mods, err := ParseModifiers(s)
	if err != nil {
		panic("invalid modifier specification: " + s + ": " + err.Error())
	}
	return mods
}
