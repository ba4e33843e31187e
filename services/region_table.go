package services

import "math"

// Align is the horizontal placement of text inside a cell.
// AlignDefault defers to the column's alignment.
type Align int

const (
	AlignDefault Align = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// lineHeightFactor matches the 1.15 leading used for table text.
const lineHeightFactor = 1.15

// TableColumn fixes a column's width and default alignment.
type TableColumn struct {
	Width float64
	Align Align
}

// TableCell is one cell of a row. ColSpan < 2 means a single column.
type TableCell struct {
	Text    string
	Align   Align
	Bold    bool
	ColSpan int
}

// TableRow is a row of cells. A positive Height overrides the content-driven
// auto height; it is how blank cells reserve space for manual drawing.
type TableRow struct {
	Cells  []TableCell
	Height float64
}

// TableStyle holds the visual parameters shared by every cell.
type TableStyle struct {
	FontSize      float64
	Padding       float64
	LineWidth     float64
	LineColor     Color
	TextColor     Color
	HeadFill      *Color
	HeadTextColor Color
	HeadAlign     Align
}

// Table is a bordered grid with an optional header row.
type Table struct {
	Columns []TableColumn
	Head    *TableRow
	Body    []TableRow
	Style   TableStyle
}

// CellBox is the computed geometry and content of one rendered cell.
type CellBox struct {
	Box
	Row   int // body row index, -1 for the header
	Col   int
	Head  bool
	Lines []string
	Align Align
	Font  Font
}

// TableLayout is the pure geometry of a table placed at a given position.
type TableLayout struct {
	X          float64
	StartY     float64
	Cells      []CellBox
	RowHeights []float64
	FinalY     float64
	Style      TableStyle
}

// Cell returns the box of the body cell starting at column col of row.
func (l TableLayout) Cell(row, col int) (CellBox, bool) {
	for _, c := range l.Cells {
		if !c.Head && c.Row == row && c.Col == col {
			return c, true
		}
	}
	return CellBox{}, false
}

func (s TableStyle) lineHeight() float64 {
	return s.FontSize * lineHeightFactor * ptToMM
}

// LayoutTable computes cell geometry for t with its top-left corner at
// (x, startY). It performs no drawing. Rows are never split across pages.
func LayoutTable(m Measurer, t Table, x, startY float64) TableLayout {
	l := TableLayout{X: x, StartY: startY, Style: t.Style}
	y := startY

	if t.Head != nil {
		h := layoutRow(m, t, *t.Head, -1, x, y, &l)
		y += h
	}
	for i, r := range t.Body {
		h := layoutRow(m, t, r, i, x, y, &l)
		y += h
	}

	l.FinalY = y
	return l
}

func layoutRow(m Measurer, t Table, r TableRow, index int, x, y float64, l *TableLayout) float64 {
	head := index < 0
	lh := t.Style.lineHeight()

	first := len(l.Cells)
	col := 0
	cx := x
	var auto float64
	for _, cell := range r.Cells {
		if col >= len(t.Columns) {
			break
		}
		span := cell.ColSpan
		if span < 1 {
			span = 1
		}
		if col+span > len(t.Columns) {
			span = len(t.Columns) - col
		}

		var w float64
		for _, c := range t.Columns[col : col+span] {
			w += c.Width
		}

		f := Font{Size: t.Style.FontSize, Color: t.Style.TextColor}
		align := cell.Align
		if head {
			f.Style = FontBold
			f.Color = t.Style.HeadTextColor
			if align == AlignDefault {
				align = t.Style.HeadAlign
			}
		} else if cell.Bold {
			f.Style = FontBold
		}
		if align == AlignDefault {
			align = t.Columns[col].Align
		}
		if align == AlignDefault {
			align = AlignLeft
		}

		lines := WrapText(m, f, cell.Text, w-2*t.Style.Padding)
		n := math.Max(float64(len(lines)), 1)
		auto = math.Max(auto, n*lh+2*t.Style.Padding)

		l.Cells = append(l.Cells, CellBox{
			Box:   Box{X: cx, Y: y, W: w},
			Row:   index,
			Col:   col,
			Head:  head,
			Lines: lines,
			Align: align,
			Font:  f,
		})
		cx += w
		col += span
	}

	h := auto
	if r.Height > 0 {
		h = r.Height
	}
	for i := first; i < len(l.Cells); i++ {
		l.Cells[i].H = h
	}
	l.RowHeights = append(l.RowHeights, h)
	return h
}

// DrawTable paints a laid-out table: header fill, borders, and cell text.
func DrawTable(c Canvas, l TableLayout) {
	lh := l.Style.lineHeight()
	ascent := l.Style.FontSize * ptToMM * 0.75

	for _, cell := range l.Cells {
		st := RectStyle{Border: true, LineWidth: l.Style.LineWidth, LineColor: l.Style.LineColor}
		if cell.Head && l.Style.HeadFill != nil {
			st.Fill = l.Style.HeadFill
		}
		c.Rect(cell.Box, st)

		for i, line := range cell.Lines {
			baseline := cell.Y + l.Style.Padding + ascent + float64(i)*lh
			c.Text(alignedX(c, cell, line, l.Style.Padding), baseline, line, cell.Font)
		}
	}
}

func alignedX(m Measurer, cell CellBox, line string, padding float64) float64 {
	switch cell.Align {
	case AlignRight:
		return cell.Right() - padding - m.StringWidth(line, cell.Font)
	case AlignCenter:
		return cell.X + (cell.W-m.StringWidth(line, cell.Font))/2
	}
	return cell.X + padding
}

// RenderTable lays out and draws t at (x, startY) on the current page and
// returns the Y immediately below the last row border. The whole table is
// always drawn on the current page; breaking between tables is the caller's job.
func RenderTable(c Canvas, t Table, x, startY float64) float64 {
	l := LayoutTable(c, t, x, startY)
	DrawTable(c, l)
	return l.FinalY
}
