package keymap

import (
	"fmt"
	"maps"
)

// Kind discriminates the variants of a binding.
type Kind uint8

const (
	// KindCommand is a binding that runs a named command.
	KindCommand Kind = iota + 1

	// KindPrefix is a binding that leads to a nested key map.
	KindPrefix
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindCommand:
		return "command"
	case KindPrefix:
		return "prefix"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Binding is the target of a key: a command or a nested key map.
type Binding struct {
	command string
	prefix  *KeyMap
}

// Command returns a binding that runs the named command.
func Command(name string) Binding {
	return Binding{command: name}
}

// Prefix returns a binding that leads to m. It panics if m is nil.
func Prefix(m *KeyMap) Binding {
	if m == nil {
		panic("keymap: nil prefix map")
	}
	return Binding{prefix: m}
}

// Kind returns the variant of the binding.
func (b Binding) Kind() Kind {
	if b.prefix != nil {
		return KindPrefix
	}
	return KindCommand
}

// Command returns the command name if b is a command binding.
func (b Binding) Command() (string, bool) {
	return b.command, b.prefix == nil
}

// Prefix returns the nested map if b is a prefix binding.
func (b Binding) Prefix() (*KeyMap, bool) {
	return b.prefix, b.prefix != nil
}

// String returns the command name, or a description of the prefix map.
func (b Binding) String() string {
	if b.prefix != nil {
		return fmt.Sprintf("prefix(%s)", b.prefix.Name)
	}
	return b.command
}

// Labels maps command names to display labels.
type Labels map[string]string

// Label returns the label for command, or the command itself.
func (l Labels) Label(command string) string {
	if s, ok := l[command]; ok {
		return s
	}
	return command
}

// Clone returns a copy of the labels.
func (l Labels) Clone() Labels {
	return maps.Clone(l)
}
