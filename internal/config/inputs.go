package config

import (
	"errors"
	"fmt"
	"sort"

	"github.com/dshills/keybind/internal/input/key"
	"github.com/dshills/keybind/internal/input/keyboard"
	"github.com/dshills/keybind/internal/input/keymap"
	"github.com/dshills/keybind/internal/input/layout"
)

// Inputs converts the document into keyboard inputs. Sections the document
// does not define come from keyboard.DefaultInputs; labels merge over the
// default labels.
func (d *Document) Inputs() (keyboard.Inputs, error) {
	in := keyboard.DefaultInputs()
	if d == nil {
		return in, nil
	}

	var errs []error
	if d.Geometry != nil {
		in.Geometry = d.Geometry.build()
	}
	if d.Layout != nil {
		l, labels, err := d.Layout.build()
		if err != nil {
			errs = append(errs, err)
		}
		in.Layout = l
		in.EventLabels = labels
	}
	if d.KeyMap != nil {
		km, err := d.KeyMap.build()
		if err != nil {
			errs = append(errs, err)
		}
		in.KeyMap = km
	}
	for cmd, label := range d.Labels {
		in.Labels[cmd] = label
	}

	if err := errors.Join(errs...); err != nil {
		return keyboard.Inputs{}, fmt.Errorf("%s: %w: %w", d.Source, ErrInvalidDocument, err)
	}
	return in, nil
}

func (g *GeometryDoc) build() layout.Geometry {
	out := layout.Geometry{Name: g.Name, Rows: make([]layout.Row, len(g.Rows))}
	for i, r := range g.Rows {
		row := layout.Row{MarginBottom: r.MarginBottom, Keys: make([]layout.VirtualKey, len(r.Keys))}
		for j, k := range r.Keys {
			row.Keys[j] = layout.VirtualKey{
				Code:       key.Code(k.Code),
				Width:      k.Width,
				MarginLeft: k.MarginLeft,
			}
		}
		out.Rows[i] = row
	}
	return out
}

// build creates the layout. Key codes are added in sorted order and each
// key cap's events in modifier set order, since document maps are
// unordered.
func (d *LayoutDoc) build() (*layout.Layout, layout.EventLabels, error) {
	l := layout.New(d.Name)
	var errs []error

	codes := make([]string, 0, len(d.Keys))
	for code := range d.Keys {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	for _, code := range codes {
		kd := d.Keys[code]
		type event struct {
			mods key.Modifiers
			ev   key.Event
		}
		specs := make([]string, 0, len(kd.Events))
		for spec := range kd.Events {
			specs = append(specs, spec)
		}
		sort.Strings(specs)

		events := make([]event, 0, len(specs))
		seen := make(map[key.Modifiers]string, len(specs))
		for _, spec := range specs {
			mods, err := key.ParseModifiers(spec)
			if err != nil {
				errs = append(errs, fmt.Errorf("layout key %s: %w", code, err))
				continue
			}
			if prev, ok := seen[mods]; ok {
				errs = append(errs, fmt.Errorf("layout key %s: %w: %q and %q", code, ErrDuplicateModifiers, prev, spec))
				continue
			}
			seen[mods] = spec
			events = append(events, event{mods: mods, ev: key.Event(kd.Events[spec])})
		}
		sort.Slice(events, func(i, j int) bool {
			return events[i].mods.Compare(events[j].mods) < 0
		})

		kc := layout.NewKeyCap(kd.Label)
		for _, e := range events {
			kc.Bind(e.mods, e.ev)
		}
		l.Set(key.Code(code), kc)
	}

	var labels layout.EventLabels
	if len(d.EventLabels) > 0 {
		labels = make(layout.EventLabels, len(d.EventLabels))
		for ev, label := range d.EventLabels {
			labels[key.Event(ev)] = label
		}
	}
	return l, labels, errors.Join(errs...)
}

func (d *KeyMapDoc) build() (*keymap.KeyMap, error) {
	name := d.Name
	if name == "" {
		name = "global"
	}
	km := keymap.New(name)

	var errs []error
	for i, b := range d.Bindings {
		if err := km.BindCommand(b.Keys, b.Command); err != nil {
			errs = append(errs, fmt.Errorf("binding %d (%s): %w", i, b.Keys, err))
		}
	}
	return km, errors.Join(errs...)
}
