package renderer

import (
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/dshills/keybind/internal/input/key"
	"github.com/dshills/keybind/internal/input/keyboard"
	"github.com/dshills/keybind/internal/input/resolve"
)

// DefaultWidth is the number of columns given to the widest row.
const DefaultWidth = 120

// minKeyWidth fits both borders and one cell of content.
const minKeyWidth = 3

// Options configures a Renderer.
type Options struct {
	// Width is the number of columns the widest row spans.
	Width int

	// Modifiers selects which bindings are drawn on the keys.
	Modifiers key.Modifiers
}

// Renderer draws assembled keyboards as text.
type Renderer struct {
	theme Theme
	opts  Options
}

// New creates a renderer for output written to w. Colors are only emitted
// when w is a terminal that supports them.
func New(w io.Writer, opts Options) *Renderer {
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	return &Renderer{
		theme: DefaultTheme(lipgloss.NewRenderer(w)),
		opts:  opts,
	}
}

// Keyboard draws kb row by row. Key widths and left margins are
// proportional to their relative sizes, and each key shows its label above
// the binding reached with the configured modifiers. Conflicting bindings
// are prefixed with "!".
func (r *Renderer) Keyboard(kb *keyboard.Keyboard) string {
	blocks := []string{r.theme.Title.Render(r.title(kb))}

	for _, row := range kb.Rows {
		boxes := make([]string, 0, len(row.Keys))
		for _, k := range row.Keys {
			boxes = append(boxes, r.key(k))
		}
		blocks = append(blocks, lipgloss.JoinHorizontal(lipgloss.Top, boxes...))
		if row.RelativeMarginBottom > 0 {
			blocks = append(blocks, "")
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

func (r *Renderer) title(kb *keyboard.Keyboard) string {
	var sb strings.Builder
	sb.WriteString(kb.Name)
	if len(kb.Prefix) > 0 {
		sb.WriteString(" after ")
		sb.WriteString(kb.Prefix.String())
	}
	if !r.opts.Modifiers.IsEmpty() {
		sb.WriteString(" with ")
		sb.WriteString(r.opts.Modifiers.String())
	}
	return sb.String()
}

func (r *Renderer) key(k keyboard.Key) string {
	width := max(r.cells(k.RelativeWidth), minKeyWidth)
	inner := width - 2

	style := r.theme.Unbound
	text := ""
	if b, ok := k.Binding(r.opts.Modifiers); ok {
		text = BindingText(b)
		style = r.theme.Key
		if b.Conflicting() {
			style = r.theme.Conflict
		}
	}

	content := r.theme.Label.Render(truncate(k.Label, inner)) + "\n" +
		r.theme.Binding.Render(truncate(text, inner))

	return style.
		Width(inner).
		MarginLeft(r.cells(k.RelativeMarginLeft)).
		Render(content)
}

func (r *Renderer) cells(frac float64) int {
	return int(math.Round(frac * float64(r.opts.Width)))
}

// BindingText is the short form of b drawn on a key.
func BindingText(b resolve.Binding) string {
	if b.Conflicting() {
		return "!" + b.String()
	}
	return b.String()
}

// Bindings lists every reachable binding of kb as a table with one row per
// key and modifier set.
func (r *Renderer) Bindings(kb *keyboard.Keyboard) string {
	var rows [][]string
	for k := range kb.Keys() {
		for mods, b := range k.Bindings.All() {
			rows = append(rows, []string{
				string(k.Code),
				modifierCell(mods),
				eventCell(b),
				BindingText(b),
			})
		}
	}

	header := r.theme.Header
	cell := header.UnsetBold()
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.theme.Grid).
		Headers("KEY", "MODIFIERS", "EVENT", "BINDING").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})

	return r.theme.Title.Render(r.title(kb)) + "\n" + t.String()
}

func modifierCell(mods key.Modifiers) string {
	if mods.IsEmpty() {
		return "-"
	}
	return mods.String()
}

func eventCell(b resolve.Binding) string {
	cands := b.Candidates()
	parts := make([]string, len(cands))
	for i, c := range cands {
		parts[i] = c.Bound().String()
	}
	return strings.Join(parts, " | ")
}

// truncate shortens s to at most n cells, marking the cut with "…".
func truncate(s string, n int) string {
	if lipgloss.Width(s) <= n {
		return s
	}
	if n <= 1 {
		return strings.Repeat("…", n)
	}

	var sb strings.Builder
	w := 0
	for _, r := range s {
		rw := lipgloss.Width(string(r))
		if w+rw > n-1 {
			break
		}
		sb.WriteRune(r)
		w += rw
	}
	sb.WriteString("…")
	return sb.String()
}
