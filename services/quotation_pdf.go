package services

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// QuotationOptions are the per-call inputs of the compositor besides the record.
type QuotationOptions struct {
	Now             time.Time
	Format          PageFormat
	Logo            LogoSource
	LogoTimeout     time.Duration
	IssuerName      string
	IssuerAddress   string
	Currency        CurrencyFormatter
	IncludeSchedule bool
}

// StageMark records where a compositor stage started and ended.
type StageMark struct {
	Stage  string
	StartY float64
	EndY   float64
	Page   int
}

// Composition summarizes a finished layout.
type Composition struct {
	Pages     int
	FinalY    float64
	LogoDrawn bool
	Stages    []StageMark
}

// QuotationDocument is the emitted file.
type QuotationDocument struct {
	Filename string
	Bytes    []byte
	Pages    int
}

// Fixed geometry of the quotation, in millimetres.
const (
	headerBottom       = 35.0
	logoTop            = 10.0
	logoWidth          = 50.0
	logoHeight         = 15.0
	identityRowHeight  = 36.0
	proposalRowHeight  = 15.0
	identityPadding    = 3.0
	identityLineHeight = 5.0
	headingAdvance     = 5.0
	sectionGap         = 8.0
	noteLineAdvance    = 3.5
	noteFitLineHeight  = 4.0
	noteGap            = 1.5
)

var (
	headingFont  = Font{Style: FontBold, Size: 12}
	noteFont     = Font{Size: 8}
	tableHeadBg  = Color{R: 80, G: 80, B: 80}
	summaryWidth = []float64{15, 65, 35, 25, 42}
	scheduleCols = []float64{15, 125, 42}
)

// GenerateQuotationPDF composes rec onto a fresh A4 PDF and returns the bytes
// together with the download filename.
func GenerateQuotationPDF(ctx context.Context, rec QuotationRecord, opts QuotationOptions) (*QuotationDocument, error) {
	if opts.Format.Width == 0 {
		opts.Format = PageA4Portrait
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	c := newPDFCanvas(opts.Format)
	c.pdf.SetCreationDate(opts.Now)

	comp, err := ComposeQuotation(ctx, c, rec, opts)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := c.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate quotation PDF: %w", err)
	}

	filename := QuotationFilename(rec.Proposal.Number, opts.Now)
	log.Printf("quotation: generated %s (%d page(s), %s)", filename, comp.Pages, humanize.Bytes(uint64(buf.Len())))

	return &QuotationDocument{
		Filename: filename,
		Bytes:    buf.Bytes(),
		Pages:    comp.Pages,
	}, nil
}

// ComposeQuotation runs the fixed stage sequence on c:
// header, identity, summary, optional schedule, notes.
// The cursor is threaded explicitly from stage to stage.
func ComposeQuotation(ctx context.Context, c Canvas, rec QuotationRecord, opts QuotationOptions) (Composition, error) {
	if err := ctx.Err(); err != nil {
		return Composition{}, err
	}
	if opts.Format.Width == 0 {
		opts.Format = PageA4Portrait
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	g := NewLayoutGrid(opts.Format, pageMargin)
	rec = rec.Normalized(opts.Now)

	// The header is never drawn before the logo has resolved or failed.
	logo, err := loadLogo(ctx, opts.Logo, opts.LogoTimeout)
	if err != nil {
		log.Printf("quotation: logo unavailable, using text header: %v", err)
	}

	var comp Composition
	mark := func(stage string, start, end float64) {
		comp.Stages = append(comp.Stages, StageMark{Stage: stage, StartY: start, EndY: end, Page: c.PageCount()})
	}

	c.AddPage()
	y, logoDrawn := headerStage(c, g, logo, opts)
	mark("header", 0, y)

	start := y
	y = identityStage(c, g, y, rec.withPlaceholders())
	mark("identity", start, y)

	start = y
	y = summaryStage(c, g, y, rec.LineItems, opts.Currency)
	mark("summary", start, y)

	section := 2
	if opts.IncludeSchedule {
		start = y
		y = scheduleStage(c, g, y, rec.Schedule())
		mark("schedule", start, y)
		section++
	}

	start = y
	y = notesStage(c, g, y, section, rec.NoteLines())
	mark("notes", start, y)

	comp.Pages = c.PageCount()
	comp.FinalY = y
	comp.LogoDrawn = logoDrawn
	return comp, nil
}

// headerStage draws the logo (or a bold fallback title) and the right-aligned
// issuer name and address. It returns the fixed cursor below the header.
func headerStage(c Canvas, g LayoutGrid, logo []byte, opts QuotationOptions) (float64, bool) {
	issuer := orPlaceholder(opts.IssuerName, placeholderPreparerName)

	drawn := false
	if logo != nil {
		if err := c.Image(logo, Box{X: g.Margin, Y: logoTop, W: logoWidth, H: logoHeight}); err != nil {
			log.Printf("quotation: could not draw logo, using text header: %v", err)
		} else {
			drawn = true
		}
	}
	if !drawn {
		c.Text(g.Margin, 20, strings.ToUpper(issuer), Font{Style: FontBold, Size: 16})
	}

	nameFont := Font{Style: FontBold, Size: 10}
	c.Text(g.RightX()-c.StringWidth(issuer, nameFont), 15, issuer, nameFont)
	if opts.IssuerAddress != "" {
		addrFont := Font{Size: 9}
		c.Text(g.RightX()-c.StringWidth(opts.IssuerAddress, addrFont), 20, opts.IssuerAddress, addrFont)
	}

	return headerBottom, drawn
}

// identityTable is the 2x2 grid whose blank cells are filled by paintIdentity.
func identityTable(g LayoutGrid) Table {
	blank := []TableCell{{}, {}}
	return Table{
		Columns: []TableColumn{{Width: g.HalfWidth}, {Width: g.HalfWidth}},
		Body: []TableRow{
			{Cells: blank, Height: identityRowHeight},
			{Cells: blank, Height: proposalRowHeight},
		},
		Style: TableStyle{FontSize: 9, Padding: identityPadding, LineWidth: 0.1},
	}
}

// reserveIdentity computes the identity block geometry without drawing.
func reserveIdentity(m Measurer, g LayoutGrid, y float64) TableLayout {
	return LayoutTable(m, identityTable(g), g.Margin, y)
}

// paintIdentity draws the label/value stacks into the reserved cells.
func paintIdentity(c Canvas, l TableLayout, rec QuotationRecord) {
	if to, ok := l.Cell(0, 0); ok {
		paintParty(c, to.Box, "To", rec.Client.Name, rec.Client.PointOfContact, rec.Client.Email, rec.Client.Phone)
	}
	if by, ok := l.Cell(0, 1); ok {
		paintParty(c, by.Box, "Prepared By", rec.Preparer.CompanyName, rec.Preparer.PointOfContact, rec.Preparer.Email, rec.Preparer.Phone)
	}

	if prop, ok := l.Cell(1, 0); ok {
		x := prop.X + identityPadding
		y := prop.Y + 4
		DrawLabelValue(c, x, y, "Proposal No:", rec.Proposal.Number, true)
		DrawLabelValue(c, x, y+identityLineHeight, "Project:", rec.Proposal.ProjectName, true)
	}
	if dates, ok := l.Cell(1, 1); ok {
		rightX := dates.Right() - identityPadding
		y := dates.Y + 4
		DrawLabelValueRight(c, rightX, y, "Proposal Date:", rec.Proposal.Date)
		DrawLabelValueRight(c, rightX, y+identityLineHeight, "Valid Until:", rec.Proposal.ValidThrough)
	}
}

func paintParty(c Canvas, b Box, title, name, poc, email, phone string) {
	x := b.X + identityPadding
	y := b.Y + identityPadding

	c.Text(x, y, title, identityLabelFont)
	y += identityLineHeight
	c.Text(x, y, name, identityValueFont)
	y += identityLineHeight
	DrawLabelValue(c, x, y, "POC:", poc, true)
	y += identityLineHeight
	DrawLabelValue(c, x, y, "Email:", email, true)
	y += identityLineHeight
	DrawLabelValue(c, x, y, "Phone:", phone, true)
}

func identityStage(c Canvas, g LayoutGrid, y float64, rec QuotationRecord) float64 {
	l := reserveIdentity(c, g, y)
	DrawTable(c, l)
	paintIdentity(c, l, rec)
	return l.FinalY + sectionGap
}

// scaledColumns stretches reference widths so they sum to the content width.
func scaledColumns(g LayoutGrid, widths []float64, aligns ...Align) []TableColumn {
	var sum float64
	for _, w := range widths {
		sum += w
	}
	cols := make([]TableColumn, len(widths))
	for i, w := range widths {
		cols[i].Width = w * g.ContentWidth / sum
		if i < len(aligns) {
			cols[i].Align = aligns[i]
		}
	}
	return cols
}

func itemTableStyle() TableStyle {
	return TableStyle{
		FontSize:      9,
		Padding:       2.5,
		LineWidth:     0.3,
		HeadFill:      &tableHeadBg,
		HeadTextColor: colorWhite,
		HeadAlign:     AlignCenter,
	}
}

// summaryTable builds the line-item table with its Grand Total row.
func summaryTable(g LayoutGrid, items []LineItem, money CurrencyFormatter) Table {
	body := make([]TableRow, 0, len(items)+1)
	var total float64
	for i, item := range items {
		desc := item.Description
		if desc == "" {
			desc = fmt.Sprintf("Item - %d", i+1)
		}
		body = append(body, TableRow{Cells: []TableCell{
			{Text: fmt.Sprintf("%d", i+1)},
			{Text: desc},
			{Text: money.Format(item.UnitPrice)},
			{Text: formatQuantity(item.Quantity)},
			{Text: money.Format(item.TotalPrice)},
		}})
		total += item.TotalPrice
	}
	body = append(body, TableRow{Cells: []TableCell{
		{Text: "Grand Total", ColSpan: 4, Bold: true, Align: AlignLeft},
		{Text: money.Format(total), Bold: true},
	}})

	return Table{
		Columns: scaledColumns(g, summaryWidth, AlignCenter, AlignLeft, AlignRight, AlignCenter, AlignRight),
		Head: &TableRow{Cells: []TableCell{
			{Text: "#"}, {Text: "Description"}, {Text: "Unit Price"}, {Text: "Quantity"}, {Text: "Total Price"},
		}},
		Body:  body,
		Style: itemTableStyle(),
	}
}

func scheduleTable(g LayoutGrid, entries []ScheduleEntry) Table {
	body := make([]TableRow, len(entries))
	for i, e := range entries {
		body[i] = TableRow{Cells: []TableCell{
			{Text: fmt.Sprintf("%d", i+1)},
			{Text: e.Description},
			{Text: e.Date},
		}}
	}
	return Table{
		Columns: scaledColumns(g, scheduleCols, AlignCenter, AlignLeft, AlignCenter),
		Head:    &TableRow{Cells: []TableCell{{Text: "S.No"}, {Text: "Description"}, {Text: "Date"}}},
		Body:    body,
		Style:   itemTableStyle(),
	}
}

// breakBefore starts a new page when a block of height h does not fit below
// y but would fit on an empty page.
func breakBefore(c Canvas, g LayoutGrid, y, h float64) float64 {
	if g.Fits(y, h) || !g.Fits(g.Top(), h) {
		return y
	}
	c.AddPage()
	return g.Top()
}

func heading(c Canvas, g LayoutGrid, y float64, title string) float64 {
	c.Text(g.Margin, y, title, headingFont)
	return y + headingAdvance
}

// tableSection draws a heading followed by a table, moving both to a new
// page together when needed.
func tableSection(c Canvas, g LayoutGrid, y float64, title string, t Table) float64 {
	h := LayoutTable(c, t, g.Margin, 0).FinalY
	y = breakBefore(c, g, y, headingAdvance+h)
	y = heading(c, g, y, title)
	return RenderTable(c, t, g.Margin, y) + sectionGap
}

func summaryStage(c Canvas, g LayoutGrid, y float64, items []LineItem, money CurrencyFormatter) float64 {
	return tableSection(c, g, y, "1. Summary :", summaryTable(g, items, money))
}

func scheduleStage(c Canvas, g LayoutGrid, y float64, entries []ScheduleEntry) float64 {
	return tableSection(c, g, y, "2. Project Schedule & Commercial Notes", scheduleTable(g, entries))
}

// notesStage prints each note word-wrapped to the content width. A note that
// does not fit in the remaining space moves whole to the next page. A note
// taller than a full page is carried across pages line by line instead.
func notesStage(c Canvas, g LayoutGrid, y float64, section int, notes []string) float64 {
	wrapped := make([][]string, 0, len(notes))
	for _, n := range notes {
		if lines := WrapText(c, noteFont, n, g.ContentWidth); len(lines) > 0 {
			wrapped = append(wrapped, lines)
		}
	}

	if len(wrapped) > 0 {
		first := noteBlockHeight(wrapped[0])
		if !g.Fits(g.Top(), headingAdvance+first) {
			first = noteFitLineHeight
		}
		y = breakBefore(c, g, y, headingAdvance+first)
	}
	y = heading(c, g, y, fmt.Sprintf("%d. Notes:", section))

	for _, lines := range wrapped {
		if !g.Fits(g.Top(), noteBlockHeight(lines)) {
			y = drawNoteLines(c, g, y, lines)
			continue
		}
		if !g.Fits(y, noteBlockHeight(lines)) {
			c.AddPage()
			y = g.Top()
		}
		for i, line := range lines {
			c.Text(g.Margin, y+float64(i)*noteLineAdvance, line, noteFont)
		}
		y += float64(len(lines))*noteLineAdvance + noteGap
	}
	return y
}

// drawNoteLines prints lines one at a time, breaking the page before any
// line that would cross the bottom margin.
func drawNoteLines(c Canvas, g LayoutGrid, y float64, lines []string) float64 {
	for _, line := range lines {
		if !g.Fits(y, noteFitLineHeight) {
			c.AddPage()
			y = g.Top()
		}
		c.Text(g.Margin, y, line, noteFont)
		y += noteLineAdvance
	}
	return y + noteGap
}

func noteBlockHeight(lines []string) float64 {
	return float64(len(lines)) * noteFitLineHeight
}
