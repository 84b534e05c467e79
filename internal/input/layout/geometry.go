package layout

import (
	"errors"
	"fmt"

	"github.com/dshills/keybind/internal/input/key"
)

// Geometry validation errors
var (
	ErrEmptyGeometry = errors.New("geometry has no keys")
	ErrDuplicateCode = errors.New("duplicate key code")
	ErrInvalidWidth  = errors.New("key width must be positive")
	ErrInvalidMargin = errors.New("key margin must not be negative")
)

// VirtualKey is a physical key slot.
type VirtualKey struct {
	Code       key.Code
	Width      float64
	MarginLeft float64
}

// Row is a horizontal row of keys.
type Row struct {
	Keys []VirtualKey

	// MarginBottom is the gap below the row, in the same unit as widths.
	MarginBottom float64
}

// Width returns the total extent of the row including left margins.
func (r Row) Width() float64 {
	var w float64
	for _, k := range r.Keys {
		w += k.Width + k.MarginLeft
	}
	return w
}

// Geometry is the physical arrangement of keys on a keyboard.
type Geometry struct {
	Name string
	Rows []Row
}

// MaxRowWidth returns the width of the widest row, or 0 for an empty geometry.
func (g Geometry) MaxRowWidth() float64 {
	var maxWidth float64
	for _, r := range g.Rows {
		maxWidth = max(maxWidth, r.Width())
	}
	return maxWidth
}

// Codes returns every key code in row order.
func (g Geometry) Codes() []key.Code {
	var codes []key.Code
	for _, r := range g.Rows {
		for _, k := range r.Keys {
			codes = append(codes, k.Code)
		}
	}
	return codes
}

// Clone returns a deep copy of the geometry.
func (g Geometry) Clone() Geometry {
	out := Geometry{Name: g.Name, Rows: make([]Row, len(g.Rows))}
	for i, r := range g.Rows {
		out.Rows[i] = Row{
			Keys:         append([]VirtualKey(nil), r.Keys...),
			MarginBottom: r.MarginBottom,
		}
	}
	return out
}

// Validate reports configuration defects. Resolution never calls it; a
// geometry with duplicate codes still resolves, each slot looking up the
// same key cap.
func (g Geometry) Validate() error {
	var errs []error
	seen := make(map[key.Code]bool)
	count := 0

	for ri, r := range g.Rows {
		if r.MarginBottom < 0 {
			errs = append(errs, fmt.Errorf("row %d: bottom margin %v: %w", ri, r.MarginBottom, ErrInvalidMargin))
		}
		for _, k := range r.Keys {
			count++
			if seen[k.Code] {
				errs = append(errs, fmt.Errorf("row %d: %q: %w", ri, k.Code, ErrDuplicateCode))
			}
			seen[k.Code] = true
			if k.Width <= 0 {
				errs = append(errs, fmt.Errorf("row %d: %q: width %v: %w", ri, k.Code, k.Width, ErrInvalidWidth))
			}
			if k.MarginLeft < 0 {
				errs = append(errs, fmt.Errorf("row %d: %q: margin %v: %w", ri, k.Code, k.MarginLeft, ErrInvalidMargin))
			}
		}
	}

	if count == 0 {
		errs = append(errs, ErrEmptyGeometry)
	}
	return errors.Join(errs...)
}

// RenderKey is a key slot with its extent relative to the widest row.
type RenderKey struct {
	Code               key.Code
	RelativeWidth      float64
	RelativeMarginLeft float64
}

// RenderRow is a row of render keys.
type RenderRow struct {
	Keys                 []RenderKey
	RelativeMarginBottom float64
}

// Normalize divides every width and margin by the widest row's width.
// A geometry whose widest row is 0 wide normalizes to all zero fractions.
func (g Geometry) Normalize() []RenderRow {
	maxWidth := g.MaxRowWidth()
	rel := func(v float64) float64 {
		if maxWidth == 0 {
			return 0
		}
		return v / maxWidth
	}

	rows := make([]RenderRow, len(g.Rows))
	for i, r := range g.Rows {
		keys := make([]RenderKey, len(r.Keys))
		for j, k := range r.Keys {
			keys[j] = RenderKey{
				Code:               k.Code,
				RelativeWidth:      rel(k.Width),
				RelativeMarginLeft: rel(k.MarginLeft),
			}
		}
		rows[i] = RenderRow{Keys: keys, RelativeMarginBottom: rel(r.MarginBottom)}
	}
	return rows
}
