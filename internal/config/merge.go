package config

import (
	"maps"
	"strings"
)

// Merge combines documents in order. Later documents win:
//   - geometry is replaced as a whole;
//   - layout key caps and event labels merge per key;
//   - keymap bindings append, so a later binding of the same keys wins
//     (binding a prefix over an earlier command is still a conflict);
//   - labels merge per command.
func Merge(docs ...*Document) *Document {
	out := &Document{}
	var sources []string

	for _, d := range docs {
		if d == nil {
			continue
		}
		if d.Source != "" {
			sources = append(sources, d.Source)
		}
		if d.FormatVersion != "" {
			out.FormatVersion = d.FormatVersion
		}
		if d.Geometry != nil {
			g := *d.Geometry
			out.Geometry = &g
		}
		if d.Layout != nil {
			out.Layout = mergeLayout(out.Layout, d.Layout)
		}
		if d.KeyMap != nil {
			out.KeyMap = mergeKeyMap(out.KeyMap, d.KeyMap)
		}
		if d.Labels != nil {
			if out.Labels == nil {
				out.Labels = make(map[string]string)
			}
			maps.Copy(out.Labels, d.Labels)
		}
	}

	out.Source = strings.Join(sources, ",")
	return out
}

func mergeLayout(dst, src *LayoutDoc) *LayoutDoc {
	if dst == nil {
		dst = &LayoutDoc{}
	}
	if src.Name != "" {
		dst.Name = src.Name
	}
	if src.Keys != nil {
		if dst.Keys == nil {
			dst.Keys = make(map[string]KeyCapDoc)
		}
		maps.Copy(dst.Keys, src.Keys)
	}
	if src.EventLabels != nil {
		if dst.EventLabels == nil {
			dst.EventLabels = make(map[string]string)
		}
		maps.Copy(dst.EventLabels, src.EventLabels)
	}
	return dst
}

func mergeKeyMap(dst, src *KeyMapDoc) *KeyMapDoc {
	if dst == nil {
		dst = &KeyMapDoc{}
	}
	if src.Name != "" {
		dst.Name = src.Name
	}
	dst.Bindings = append(dst.Bindings, src.Bindings...)
	return dst
}
