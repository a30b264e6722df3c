package capture

import (
	"fmt"
	"sort"
	"strings"
)

// PageConfig controls how [Browser.PrintPDF] and the other print
// methods lay out the generated document. The zero value is usable:
// unset fields resolve to A4 portrait, 1 cm margins, scale 1.0 and
// printed backgrounds, which suits report output.
type PageConfig struct {
	// Size is the paper size. Unset resolves to A4.
	Size PageSize

	// Orientation selects portrait or landscape paper.
	Orientation Orientation

	// Margin is the page margin in centimeters. Unset resolves to a
	// uniform 1 cm.
	Margin Margin

	// Scale multiplies the rendered page size, 0.1 to 2.0. Unset
	// resolves to 1.0.
	Scale float64

	// PrintBackground includes background colors and images. The
	// default config enables it; heatmap reports depend on it.
	PrintBackground bool

	// DisplayHeaderFooter turns on Chrome's print header and footer.
	DisplayHeaderFooter bool

	// HeaderTemplate and FooterTemplate are HTML snippets in Chrome's
	// print-template format (span classes date, title, url, pageNumber,
	// totalPages). Empty keeps Chrome's defaults.
	HeaderTemplate string
	FooterTemplate string

	// PreferCSSPageSize lets a CSS @page rule in the document override
	// Size, which the bundled report stylesheet makes use of.
	PreferCSSPageSize bool
}

// DefaultPageConfig returns the page setup used when callers pass a nil
// or zero config.
func DefaultPageConfig() PageConfig {
	return PageConfig{
		Size:            A4,
		Orientation:     Portrait,
		Margin:          UniformMargin(1.0),
		Scale:           1.0,
		PrintBackground: true,
	}
}

// resolved fills unset fields with their defaults. A nil receiver is
// the full default config. An explicit PrintBackground=false survives
// resolution; only the default config switches it on.
func (p *PageConfig) resolved() PageConfig {
	d := DefaultPageConfig()
	if p == nil {
		return d
	}
	r := *p
	if r.Size == (PageSize{}) {
		r.Size = d.Size
	}
	if r.Margin == (Margin{}) {
		r.Margin = d.Margin
	}
	if r.Scale <= 0 {
		r.Scale = d.Scale
	}
	return r
}

// PageSize is a paper format in centimeters.
type PageSize struct {
	Width  float64
	Height float64
}

// Standard paper sizes accepted by [ParsePageSize].
var (
	A3      = PageSize{Width: 29.7, Height: 42.0}
	A4      = PageSize{Width: 21.0, Height: 29.7}
	A5      = PageSize{Width: 14.8, Height: 21.0}
	Letter  = PageSize{Width: 21.59, Height: 27.94}
	Legal   = PageSize{Width: 21.59, Height: 35.56}
	Tabloid = PageSize{Width: 27.94, Height: 43.18}
)

var paperSizes = map[string]PageSize{
	"a3":      A3,
	"a4":      A4,
	"a5":      A5,
	"letter":  Letter,
	"legal":   Legal,
	"tabloid": Tabloid,
}

// ParsePageSize maps a paper format name such as "A4" or "letter" to
// its size, case-insensitively. Unknown names return an error listing
// the accepted formats.
func ParsePageSize(name string) (PageSize, error) {
	s, ok := paperSizes[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		known := make([]string, 0, len(paperSizes))
		for k := range paperSizes {
			known = append(known, k)
		}
		sort.Strings(known)
		return PageSize{}, fmt.Errorf("capture: unknown paper size %q (accepted: %s)", name, strings.Join(known, ", "))
	}
	return s, nil
}

// inches returns the printable paper dimensions, swapping the sides for
// landscape paper. Chrome's print protocol takes inches.
func (s PageSize) inches(o Orientation) (width, height float64) {
	w, h := cmToInches(s.Width), cmToInches(s.Height)
	if o == Landscape {
		return h, w
	}
	return w, h
}

// Orientation selects which way the paper is turned.
type Orientation int

const (
	Portrait Orientation = iota
	Landscape
)

// Margin is the page margin in centimeters, one value per side.
type Margin struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// UniformMargin returns a margin of cm on every side.
func UniformMargin(cm float64) Margin {
	return Margin{Top: cm, Right: cm, Bottom: cm, Left: cm}
}

// inches converts all four sides for the print protocol.
func (m Margin) inches() (top, right, bottom, left float64) {
	return cmToInches(m.Top), cmToInches(m.Right), cmToInches(m.Bottom), cmToInches(m.Left)
}

func cmToInches(cm float64) float64 {
	return cm / 2.54
}
