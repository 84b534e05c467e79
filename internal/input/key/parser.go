package key

import (
	"errors"
	"fmt"
	"strings"
)

// Parse errors
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// eventAliases maps lowercase names to canonical event names.
var eventAliases = map[string]Event{
	"esc":       "Escape",
	"escape":    "Escape",
	"cr":        "Enter",
	"ret":       "Enter",
	"return":    "Enter",
	"enter":     "Enter",
	"tab":       "Tab",
	"bs":        "Backspace",
	"backspace": "Backspace",
	"del":       "Delete",
	"delete":    "Delete",
	"ins":       "Insert",
	"insert":    "Insert",
	"pgup":      "PageUp",
	"pageup":    "PageUp",
	"pgdn":      "PageDown",
	"pagedown":  "PageDown",
	"spc":       " ",
	"space":     " ",
	"lt":        "<",
	"gt":        ">",
}

// Spec returns the event as written in a key specification.
// The space event is written as "Space".
func (e Event) Spec() string {
	if e == " " {
		return "Space"
	}
	return string(e)
}

// Parse parses a key specification string into a ModdedEvent.
//
// Supported formats:
//   - Single event: "a", "@", "PageUp", "-"
//   - Emacs/Vim style: "C-x", "C-S-a", "M-%", "C--"
//   - Angle brackets: "<C-x>", "<CR>", "<Esc>"
//   - Readable: "Ctrl+S", "Alt+F4", "Ctrl++"
//   - Aliases: "Esc", "CR", "RET", "SPC", "PgUp" and friends
func Parse(spec string) (ModdedEvent, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return ModdedEvent{}, ErrEmptySpec
	}

	if len(spec) > 2 && strings.HasPrefix(spec, "<") && strings.HasSuffix(spec, ">") {
		spec = strings.TrimSpace(spec[1 : len(spec)-1])
		if spec == "" {
			return ModdedEvent{}, ErrInvalidSpec
		}
	}

	sep, ok := separator(spec)
	if !ok {
		return ModdedEvent{Event: normalizeEvent(spec)}, nil
	}

	// The last separator that is not the final character splits modifiers
	// from the event, so "C--" is Control+"-".
	i := strings.LastIndexByte(spec[:len(spec)-1], sep)
	modPart, eventPart := spec[:i], spec[i+1:]
	if modPart == "" {
		return ModdedEvent{}, fmt.Errorf("%w: missing modifier in %q", ErrInvalidSpec, spec)
	}

	var mods Modifiers
	for _, p := range strings.Split(modPart, string(sep)) {
		mod, ok := ModifierFromName(p)
		if !ok {
			return ModdedEvent{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
		}
		mods = mods.With(mod)
	}

	return ModdedEvent{Event: normalizeEvent(eventPart), Modifiers: mods}, nil
}

// separator picks the modifier separator of spec, if it has modifiers.
func separator(spec string) (byte, bool) {
	if len(spec) < 2 {
		return 0, false
	}
	head := spec[:len(spec)-1]
	switch {
	case strings.Contains(head, "+"):
		return '+', true
	case strings.Contains(head, "-"):
		return '-', true
	}
	return 0, false
}

func normalizeEvent(s string) Event {
	if len(s) > 1 {
		if ev, ok := eventAliases[strings.ToLower(s)]; ok {
			return ev
		}
	}
	return Event(s)
}

// MustParse parses a key specification and panics on error.
// Use only for known-valid specs in initialization code.
func MustParse(spec string) ModdedEvent {
	ev, err := Parse(spec)
	if err != nil {
		panic("invalid key specification: " + spec + ": " + err.Error())
	}
	return ev
}

// ParseSequence parses a whitespace separated sequence like "C-x C-s".
func ParseSequence(spec string) (Sequence, error) {
	fields := strings.Fields(spec)
	if len(fields) == 0 {
		return nil, ErrEmptySpec
	}

	seq := make(Sequence, 0, len(fields))
	for _, f := range fields {
		ev, err := Parse(f)
		if err != nil {
			return nil, fmt.Errorf("parsing %q: %w", f, err)
		}
		seq = append(seq, ev)
	}
	return seq, nil
}

// MustParseSequence parses a sequence and panics on error.
func MustParseSequence(spec string) Sequence {
	seq, err := ParseSequence(spec)
	if err != nil {
		panic("invalid key sequence: " + spec + ": " + err.Error())
	}
	return seq
}

// NormalizeSpec parses and re-formats a key specification to its canonical form.
func NormalizeSpec(spec string) (string, error) {
	ev, err := Parse(spec)
	if err != nil {
		return "", err
	}
	return ev.String(), nil
}
