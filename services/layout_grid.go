package services

// PageFormat is a page size in millimetres.
type PageFormat struct {
	Name   string
	Width  float64
	Height float64
}

// PageA4Portrait is the only format quotations are printed in today.
var PageA4Portrait = PageFormat{Name: "A4", Width: 210, Height: 297}

// pageMargin is the left/right margin, and the top/bottom reserve used when
// deciding whether a block still fits on the current page.
const pageMargin = 14

// pageTop is where the cursor restarts after a page break.
const pageTop = 15

// LayoutGrid holds the fixed page geometry shared by every renderer of a
// document. It is computed once and never mutated.
type LayoutGrid struct {
	PageWidth    float64
	PageHeight   float64
	Margin       float64
	ContentWidth float64
	HalfWidth    float64
}

// NewLayoutGrid derives the content area from a page format and margin.
func NewLayoutGrid(format PageFormat, margin float64) LayoutGrid {
	content := format.Width - margin*2
	return LayoutGrid{
		PageWidth:    format.Width,
		PageHeight:   format.Height,
		Margin:       margin,
		ContentWidth: content,
		HalfWidth:    content / 2,
	}
}

// Top is the cursor position at the start of a continuation page.
func (g LayoutGrid) Top() float64 { return pageTop }

// Bottom is the lowest Y a block may reach before a page break is needed.
func (g LayoutGrid) Bottom() float64 { return g.PageHeight - pageTop }

// RightX is the right edge of the content area.
func (g LayoutGrid) RightX() float64 { return g.PageWidth - g.Margin }

// Fits reports whether a block of height h starting at y stays above Bottom.
func (g LayoutGrid) Fits(y, h float64) bool { return y+h <= g.Bottom() }
