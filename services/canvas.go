package services

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/phpdave11/gofpdf"
)

// ptToMM converts a font size in points to millimetres.
const ptToMM = 25.4 / 72

// FontStyle selects the weight of a text run.
type FontStyle string

const (
	FontNormal FontStyle = ""
	FontBold   FontStyle = "B"
)

// Color is an RGB triple in the 0-255 range.
type Color struct {
	R, G, B int
}

var (
	colorBlack = Color{}
	colorWhite = Color{R: 255, G: 255, B: 255}
)

// Font describes a text run. All text uses the Helvetica core font.
type Font struct {
	Style FontStyle
	Size  float64
	Color Color
}

// Box is a rectangle in page coordinates (millimetres, origin top-left).
type Box struct {
	X, Y, W, H float64
}

// Right returns the X coordinate of the right edge.
func (b Box) Right() float64 { return b.X + b.W }

// Bottom returns the Y coordinate of the bottom edge.
func (b Box) Bottom() float64 { return b.Y + b.H }

// RectStyle controls how a rectangle is painted.
type RectStyle struct {
	Fill      *Color
	Border    bool
	LineWidth float64
	LineColor Color
}

// Measurer reports the rendered width of a string in a given font.
type Measurer interface {
	StringWidth(s string, f Font) float64
}

// Canvas is the drawing surface the quotation compositor paints on.
// Coordinates are millimetres; Text places the baseline at y.
type Canvas interface {
	Measurer
	AddPage()
	PageCount() int
	Text(x, y float64, s string, f Font)
	Rect(b Box, st RectStyle)
	Image(img []byte, b Box) error
}

// pdfCanvas implements Canvas on top of gofpdf with manual pagination.
type pdfCanvas struct {
	pdf    *gofpdf.Fpdf
	tr     func(string) string
	images int
}

// newPDFCanvas creates an empty portrait document of the given page format.
// Automatic page breaks are disabled: the compositor decides where pages end.
func newPDFCanvas(format PageFormat) *pdfCanvas {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: format.Width, Ht: format.Height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetFont("Helvetica", "", 10)
	pdf.AliasNbPages("{nb}")

	c := &pdfCanvas{
		pdf: pdf,
		tr:  pdf.UnicodeTranslatorFromDescriptor(""),
	}
	pdf.SetFooterFunc(c.footer)
	return c
}

// footer prints "Page N of M" in the bottom-right corner of every page.
func (c *pdfCanvas) footer() {
	w, h := c.pdf.GetPageSize()
	c.setFont(Font{Size: 7, Color: Color{R: 120, G: 120, B: 120}})
	c.pdf.SetXY(0, h-10)
	c.pdf.CellFormat(w-pageMargin, 4, fmt.Sprintf("Page %d of {nb}", c.pdf.PageNo()), "", 0, "R", false, 0, "")
}

func (c *pdfCanvas) setFont(f Font) {
	c.pdf.SetFont("Helvetica", string(f.Style), f.Size)
	c.pdf.SetTextColor(f.Color.R, f.Color.G, f.Color.B)
}

func (c *pdfCanvas) StringWidth(s string, f Font) float64 {
	c.pdf.SetFont("Helvetica", string(f.Style), f.Size)
	return c.pdf.GetStringWidth(c.tr(s))
}

func (c *pdfCanvas) AddPage() { c.pdf.AddPage() }

func (c *pdfCanvas) PageCount() int { return c.pdf.PageCount() }

func (c *pdfCanvas) Text(x, y float64, s string, f Font) {
	if s == "" {
		return
	}
	c.setFont(f)
	c.pdf.Text(x, y, c.tr(s))
}

func (c *pdfCanvas) Rect(b Box, st RectStyle) {
	style := ""
	if st.Fill != nil {
		c.pdf.SetFillColor(st.Fill.R, st.Fill.G, st.Fill.B)
		style += "F"
	}
	if st.Border {
		c.pdf.SetLineWidth(st.LineWidth)
		c.pdf.SetDrawColor(st.LineColor.R, st.LineColor.G, st.LineColor.B)
		style += "D"
	}
	if style == "" {
		return
	}
	c.pdf.Rect(b.X, b.Y, b.W, b.H, style)
}

// Image draws a PNG or JPEG. A decode failure is returned and cleared so the
// document stays usable for fallback rendering.
func (c *pdfCanvas) Image(img []byte, b Box) error {
	imageType, err := detectImageType(img)
	if err != nil {
		return err
	}
	c.images++
	name := fmt.Sprintf("img%d", c.images)
	opts := gofpdf.ImageOptions{ImageType: imageType, ReadDpi: false}
	c.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(img))
	if err := c.pdf.Error(); err != nil {
		c.pdf.ClearError()
		return fmt.Errorf("register image: %w", err)
	}
	c.pdf.ImageOptions(name, b.X, b.Y, b.W, b.H, false, opts, 0, "")
	if err := c.pdf.Error(); err != nil {
		c.pdf.ClearError()
		return fmt.Errorf("place image: %w", err)
	}
	return nil
}

// Output serializes the document.
func (c *pdfCanvas) Output(w io.Writer) error {
	return c.pdf.Output(w)
}

var errUnsupportedImage = errors.New("unsupported image type")

func detectImageType(img []byte) (string, error) {
	switch http.DetectContentType(img) {
	case "image/png":
		return "PNG", nil
	case "image/jpeg":
		return "JPG", nil
	case "image/gif":
		return "GIF", nil
	}
	return "", errUnsupportedImage
}
