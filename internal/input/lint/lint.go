// Package lint reports key bindings that can never be typed and binding
// combinations that conflict.
//
// Every binding of the key map, including those inside prefix maps, is
// classified against a geometry and layout:
//
//   - Reachable: some key and modifier combination selects it.
//   - Shadowed: some combination reaches it, but a more direct binding
//     always wins there.
//   - Unreachable: no key produces its event without consuming one of its
//     modifiers.
//
// A binding inside a prefix map that is not reachable is itself
// unreachable.
package lint

import (
	"fmt"
	"sort"

	"github.com/gobwas/glob"

	"github.com/dshills/keybind/internal/input/key"
	"github.com/dshills/keybind/internal/input/keyboard"
	"github.com/dshills/keybind/internal/input/keymap"
	"github.com/dshills/keybind/internal/input/resolve"
)

// Status classifies a binding.
type Status int

const (
	// Reachable is a binding selected on at least one key.
	Reachable Status = iota

	// Shadowed is a binding that is emitted but always loses to a more
	// direct candidate.
	Shadowed

	// Unreachable is a binding no key ever emits.
	Unreachable
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case Reachable:
		return "reachable"
	case Shadowed:
		return "shadowed"
	case Unreachable:
		return "unreachable"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Location is a key and full modifier set.
type Location struct {
	Code      key.Code
	Modifiers key.Modifiers
}

func (l Location) String() string {
	return l.Modifiers.Spec() + "[" + string(l.Code) + "]"
}

// Finding is the classification of one binding.
type Finding struct {
	Sequence key.Sequence
	Kind     keymap.Kind

	// Command is empty for prefix bindings.
	Command string
	Status  Status

	// Keys lists where a reachable binding is selected.
	Keys []Location

	// ShadowedBy lists the bindings that win where a shadowed binding is
	// reached.
	ShadowedBy []string
}

// Conflict is a location where several bindings tie.
type Conflict struct {
	Prefix   key.Sequence
	Location Location

	// Bindings are the tied bindings as key specifications.
	Bindings []string
}

// Report is the result of Run.
type Report struct {
	Findings  []Finding
	Conflicts []Conflict
}

// Count returns the number of findings with status s.
func (r *Report) Count(s Status) int {
	n := 0
	for _, f := range r.Findings {
		if f.Status == s {
			n++
		}
	}
	return n
}

// Options configures Run.
type Options struct {
	// Filter is a glob over command names, e.g. "*-buffer". Prefix
	// bindings are only reported when Filter is empty.
	Filter string
}

// Run classifies every binding of in.
func Run(in keyboard.Inputs, opts Options) (*Report, error) {
	var match glob.Glob
	if opts.Filter != "" {
		g, err := glob.Compile(opts.Filter)
		if err != nil {
			return nil, fmt.Errorf("filter %q: %w", opts.Filter, err)
		}
		match = g
	}

	if err := in.Validate(); err != nil {
		return nil, err
	}
	byEvent, err := keymap.NewByEvent(in.KeyMap)
	if err != nil {
		return nil, err
	}

	r := &runner{
		in:     in,
		opts:   in.Options(),
		levels: make(map[*keymap.ByEvent]*level),
		match:  match,
		report: &Report{},
	}
	r.walk(byEvent, nil, true)

	sort.SliceStable(r.report.Findings, func(i, j int) bool {
		return r.report.Findings[i].Sequence.String() < r.report.Findings[j].Sequence.String()
	})
	sort.SliceStable(r.report.Conflicts, func(i, j int) bool {
		return r.report.Conflicts[i].Prefix.String() < r.report.Conflicts[j].Prefix.String()
	})
	return r.report, nil
}

type runner struct {
	in     keyboard.Inputs
	opts   resolve.Options
	levels map[*keymap.ByEvent]*level
	match  glob.Glob
	report *Report
}

// level is the analysis of one ByEvent, independent of the prefix that
// leads to it.
type level struct {
	emitted   map[key.ModdedEvent]bool
	winners   map[key.ModdedEvent][]Location
	losers    map[key.ModdedEvent][]string
	conflicts []Conflict
}

func (r *runner) analyze(byEvent *keymap.ByEvent) *level {
	if lv, ok := r.levels[byEvent]; ok {
		return lv
	}

	lv := &level{
		emitted: make(map[key.ModdedEvent]bool),
		winners: make(map[key.ModdedEvent][]Location),
		losers:  make(map[key.ModdedEvent][]string),
	}

	kb := keyboard.Assemble(r.in.Geometry, r.in.Layout, byEvent, r.opts)
	for k := range kb.Keys() {
		for full, b := range k.Bindings.All() {
			loc := Location{Code: k.Code, Modifiers: full}
			for _, c := range b.Candidates() {
				lv.winners[c.Bound()] = append(lv.winners[c.Bound()], loc)
			}
			if b.Conflicting() {
				lv.conflicts = append(lv.conflicts, Conflict{Location: loc, Bindings: specs(b)})
			}
		}

		kc, _ := r.in.Layout.Get(k.Code)
		for _, c := range resolve.Emit(kc, byEvent, r.opts) {
			lv.emitted[c.Bound()] = true
			if b, _ := k.Binding(c.Full()); !wins(b, c) {
				lv.losers[c.Bound()] = append(lv.losers[c.Bound()], specs(b)...)
			}
		}
	}

	r.levels[byEvent] = lv
	return lv
}

func specs(b resolve.Binding) []string {
	cands := b.Candidates()
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.Bound().String()
	}
	return out
}

func wins(b resolve.Binding, c resolve.Candidate) bool {
	for _, w := range b.Candidates() {
		if w.Physical == c.Physical && w.Bound() == c.Bound() {
			return true
		}
	}
	return false
}

func (r *runner) walk(byEvent *keymap.ByEvent, prefix key.Sequence, reachable bool) {
	lv := r.analyze(byEvent)

	if reachable {
		for _, c := range lv.conflicts {
			c.Prefix = prefix
			r.report.Conflicts = append(r.report.Conflicts, c)
		}
	}

	for ev, mods := range byEvent.All() {
		for m, eb := range mods.All() {
			me := key.ModdedEvent{Event: ev, Modifiers: m}
			f := Finding{Sequence: prefix.Append(me), Kind: eb.Kind()}
			f.Command, _ = eb.Command()

			switch {
			case !reachable || !lv.emitted[me]:
				f.Status = Unreachable
			case len(lv.winners[me]) > 0:
				f.Status = Reachable
				f.Keys = lv.winners[me]
			default:
				f.Status = Shadowed
				f.ShadowedBy = dedupe(lv.losers[me])
			}

			if r.keep(f) {
				r.report.Findings = append(r.report.Findings, f)
			}
			if sub, ok := eb.Sub(); ok {
				r.walk(sub, f.Sequence, f.Status == Reachable)
			}
		}
	}
}

func (r *runner) keep(f Finding) bool {
	if r.match == nil {
		return true
	}
	return f.Kind == keymap.KindCommand && r.match.Match(f.Command)
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	var out []string
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
