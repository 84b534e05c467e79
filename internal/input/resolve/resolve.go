package resolve

import (
	"strings"

	"github.com/dshills/keybind/internal/input/key"
	"github.com/dshills/keybind/internal/input/keymap"
	"github.com/dshills/keybind/internal/input/layout"
	"github.com/dshills/keybind/internal/structmap"
)

// DefaultSubMapLabel labels prefix bindings when Options.SubMapLabel is empty.
const DefaultSubMapLabel = "sub-map"

// Candidate is one way of reaching a binding from a physical key.
type Candidate struct {
	// Physical is the modifier set used to produce Event on the key cap.
	Physical key.Modifiers

	Event      key.Event
	EventLabel string

	// EventModifiers is the modifier set the binding is registered under.
	EventModifiers key.Modifiers

	Binding      keymap.EventBinding
	BindingLabel string
}

// Full returns the complete modifier set held to reach the candidate.
func (c Candidate) Full() key.Modifiers {
	return c.Physical.Union(c.EventModifiers)
}

// Bound returns the modded event the binding is registered under.
func (c Candidate) Bound() key.ModdedEvent {
	return key.ModdedEvent{Event: c.Event, Modifiers: c.EventModifiers}
}

// Binding is the outcome for one full modifier set: a single candidate or
// several equally direct, conflicting ones.
type Binding struct {
	candidates []Candidate
}

// Single returns the candidate if the binding is not conflicting.
func (b Binding) Single() (Candidate, bool) {
	if len(b.candidates) != 1 {
		return Candidate{}, false
	}
	return b.candidates[0], true
}

// Conflicting reports whether several candidates tie.
func (b Binding) Conflicting() bool {
	return len(b.candidates) > 1
}

// Candidates returns the surviving candidates in emission order.
func (b Binding) Candidates() []Candidate {
	return append([]Candidate(nil), b.candidates...)
}

// String returns the binding label, or all labels joined by " | " when
// conflicting.
func (b Binding) String() string {
	labels := make([]string, len(b.candidates))
	for i, c := range b.candidates {
		labels[i] = c.BindingLabel
	}
	return strings.Join(labels, " | ")
}

// Options supplies display labels.
type Options struct {
	Labels      keymap.Labels
	EventLabels layout.EventLabels

	// SubMapLabel labels prefix bindings. Defaults to DefaultSubMapLabel.
	SubMapLabel string
}

func (o Options) bindingLabel(b keymap.EventBinding) string {
	if cmd, ok := b.Command(); ok {
		return o.Labels.Label(cmd)
	}
	if o.SubMapLabel != "" {
		return o.SubMapLabel
	}
	return DefaultSubMapLabel
}

// Emit lists every candidate of a key cap before grouping, ordered by the
// key cap's modifier sets and then by the event's bound modifier sets.
// Candidates whose binding modifiers overlap the physical modifiers are
// left out.
func Emit(c *layout.KeyCap, byEvent *keymap.ByEvent, opts Options) []Candidate {
	if c == nil {
		return nil
	}

	var out []Candidate
	for physical, ev := range c.Events.All() {
		bound, ok := byEvent.Lookup(ev)
		if !ok {
			continue
		}
		for mods, b := range bound.All() {
			if physical.Intersects(mods) {
				continue
			}
			out = append(out, Candidate{
				Physical:       physical,
				Event:          ev,
				EventLabel:     opts.EventLabels.Label(ev),
				EventModifiers: mods,
				Binding:        b,
				BindingLabel:   opts.bindingLabel(b),
			})
		}
	}
	return out
}

// KeyCap resolves a key cap against byEvent. The result maps each
// reachable full modifier set to its binding; unreachable sets are absent
// and an empty result is valid.
func KeyCap(c *layout.KeyCap, byEvent *keymap.ByEvent, opts Options) *structmap.Map[key.Modifiers, Binding] {
	groups := structmap.GroupBy(Emit(c, byEvent, opts), Candidate.Full)

	out := structmap.New[key.Modifiers, Binding]()
	for full, cands := range groups.All() {
		out.Set(full, choose(cands))
	}
	return out
}

// choose keeps the candidates with the smallest binding modifier set.
func choose(cands []Candidate) Binding {
	if len(cands) == 1 {
		return Binding{candidates: cands}
	}

	best := cands[0].EventModifiers.Len()
	for _, c := range cands[1:] {
		best = min(best, c.EventModifiers.Len())
	}

	kept := make([]Candidate, 0, len(cands))
	for _, c := range cands {
		if c.EventModifiers.Len() == best {
			kept = append(kept, c)
		}
	}
	return Binding{candidates: kept}
}
