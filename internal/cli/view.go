package cli

import (
	"github.com/dshills/keybind/internal/input/key"
	"github.com/dshills/keybind/internal/input/keyboard"
	"github.com/dshills/keybind/internal/input/keymap"
	"github.com/dshills/keybind/internal/input/lint"
	"github.com/dshills/keybind/internal/input/resolve"
)

// JSON views of the resolved keyboard and the lint report.

type keyboardView struct {
	Name      string         `json:"name"`
	Snapshot  string         `json:"snapshot,omitempty"`
	Source    string         `json:"source,omitempty"`
	Prefix    string         `json:"prefix,omitempty"`
	Rows      []rowView      `json:"rows"`
	Conflicts []conflictView `json:"conflicts"`
}

type rowView struct {
	MarginBottom float64   `json:"margin_bottom"`
	Keys         []keyView `json:"keys"`
}

type keyView struct {
	Code       string        `json:"code"`
	Label      string        `json:"label"`
	Width      float64       `json:"width"`
	MarginLeft float64       `json:"margin_left"`
	Events     []eventView   `json:"events"`
	Bindings   []bindingView `json:"bindings"`
}

type eventView struct {
	Modifiers key.Modifiers `json:"modifiers"`
	Event     string        `json:"event"`
	Label     string        `json:"label"`
}

type bindingView struct {
	Modifiers   key.Modifiers   `json:"modifiers"`
	Conflicting bool            `json:"conflicting,omitempty"`
	Candidates  []candidateView `json:"candidates"`
}

type candidateView struct {
	Key     string `json:"key"`
	Command string `json:"command,omitempty"`
	SubMap  bool   `json:"sub_map,omitempty"`
	Label   string `json:"label"`
}

type conflictView struct {
	Code      string        `json:"code"`
	Modifiers key.Modifiers `json:"modifiers"`
	Bindings  []string      `json:"bindings"`
}

func newKeyboardView(kb *keyboard.Keyboard, snap *keyboard.Snapshot) keyboardView {
	v := keyboardView{
		Name:      kb.Name,
		Prefix:    kb.Prefix.String(),
		Rows:      make([]rowView, len(kb.Rows)),
		Conflicts: []conflictView{},
	}
	if snap != nil {
		v.Snapshot = snap.ID
		v.Source = snap.Source
	}

	for i, row := range kb.Rows {
		rv := rowView{MarginBottom: row.RelativeMarginBottom, Keys: make([]keyView, len(row.Keys))}
		for j, k := range row.Keys {
			rv.Keys[j] = newKeyView(k)
		}
		v.Rows[i] = rv
	}

	for _, c := range kb.Conflicts() {
		cv := conflictView{Code: string(c.Code), Modifiers: c.Modifiers}
		for _, cand := range c.Candidates {
			cv.Bindings = append(cv.Bindings, cand.Bound().String())
		}
		v.Conflicts = append(v.Conflicts, cv)
	}
	return v
}

func newKeyView(k keyboard.Key) keyView {
	kv := keyView{
		Code:       string(k.Code),
		Label:      k.Label,
		Width:      k.RelativeWidth,
		MarginLeft: k.RelativeMarginLeft,
		Events:     []eventView{},
		Bindings:   []bindingView{},
	}
	for mods, ev := range k.Events.All() {
		kv.Events = append(kv.Events, eventView{Modifiers: mods, Event: string(ev.Event), Label: ev.Label})
	}
	for mods, b := range k.Bindings.All() {
		kv.Bindings = append(kv.Bindings, newBindingView(mods, b))
	}
	return kv
}

func newBindingView(mods key.Modifiers, b resolve.Binding) bindingView {
	bv := bindingView{Modifiers: mods, Conflicting: b.Conflicting()}
	for _, c := range b.Candidates() {
		cv := candidateView{Key: c.Bound().String(), Label: c.BindingLabel}
		if cmd, ok := c.Binding.Command(); ok {
			cv.Command = cmd
		} else {
			cv.SubMap = c.Binding.Kind() == keymap.KindPrefix
		}
		bv.Candidates = append(bv.Candidates, cv)
	}
	return bv
}

type reportView struct {
	Summary   map[string]int       `json:"summary"`
	Findings  []findingView        `json:"findings"`
	Conflicts []reportConflictView `json:"conflicts"`
}

type findingView struct {
	Keys       string   `json:"keys"`
	Kind       string   `json:"kind"`
	Command    string   `json:"command,omitempty"`
	Status     string   `json:"status"`
	Locations  []string `json:"locations,omitempty"`
	ShadowedBy []string `json:"shadowed_by,omitempty"`
}

type reportConflictView struct {
	Prefix   string   `json:"prefix,omitempty"`
	Location string   `json:"location"`
	Bindings []string `json:"bindings"`
}

func newReportView(r *lint.Report) reportView {
	v := reportView{
		Summary: map[string]int{
			lint.Reachable.String():   r.Count(lint.Reachable),
			lint.Shadowed.String():    r.Count(lint.Shadowed),
			lint.Unreachable.String(): r.Count(lint.Unreachable),
			"conflicts":               len(r.Conflicts),
		},
		Findings:  make([]findingView, len(r.Findings)),
		Conflicts: make([]reportConflictView, len(r.Conflicts)),
	}
	for i, f := range r.Findings {
		fv := findingView{
			Keys:       f.Sequence.String(),
			Kind:       f.Kind.String(),
			Command:    f.Command,
			Status:     f.Status.String(),
			ShadowedBy: f.ShadowedBy,
		}
		for _, loc := range f.Keys {
			fv.Locations = append(fv.Locations, loc.String())
		}
		v.Findings[i] = fv
	}
	for i, c := range r.Conflicts {
		v.Conflicts[i] = reportConflictView{
			Prefix:   c.Prefix.String(),
			Location: c.Location.String(),
			Bindings: c.Bindings,
		}
	}
	return v
}
