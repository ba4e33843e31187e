package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// WorkOrderData holds everything printed on a work order.
type WorkOrderData struct {
	Issuer       Issuer
	Number       string
	CustomerPONo string
	QuotationNo  string
	Date         string
	DeliveryTime string
	ClientName   string
	ProjectName  string
	Revision     string
	ShipTo       string
	Parts        []Part
	Note         string
}

// WorkOrderFilename returns "WorkOrder_<no|Draft>_<YYYY-MM-DD>.pdf".
func WorkOrderFilename(number string, generated time.Time) string {
	return documentFilename("WorkOrder", number, generated)
}

var (
	mutedColor     = &props.Color{Red: 100, Green: 100, Blue: 100}
	darkHeaderBg   = &props.Color{Red: 80, Green: 80, Blue: 80}
	stripeBg       = &props.Color{Red: 248, Green: 249, Blue: 250}
	sectionLabel   = props.Text{Size: 7, Style: fontstyle.Bold, Align: align.Left, Color: mutedColor}
	fieldLabel     = props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Left}
	fieldValue     = props.Text{Size: 8, Align: align.Left}
	tableHeadText  = props.Text{Size: 7, Style: fontstyle.Bold, Align: align.Center, Color: &props.Color{Red: 255, Green: 255, Blue: 255}}
	tableBodyText  = props.Text{Size: 7, Align: align.Left}
	tableBodyRight = props.Text{Size: 7, Align: align.Right}
)

// newDocument builds the A4 maroto document shared by the work order and the
// certificate.
func newDocument() core.Maroto {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(pageMargin).
		WithTopMargin(10).
		WithRightMargin(pageMargin).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()
	return maroto.New(cfg)
}

// GenerateWorkOrderPDF renders a work order and returns the PDF bytes.
func GenerateWorkOrderPDF(data WorkOrderData) ([]byte, error) {
	m := newDocument()

	addDocumentHeader(m, data.Issuer, "WORK ORDER", fmt.Sprintf("WO #: %s", orPlaceholder(data.Number, "Draft")))
	addWorkOrderDetails(m, data)
	addWorkOrderParts(m, data.Parts)
	addNoteBlock(m, "NOTE", data.Note)
	addSignatures(m, "Prepared By", "Approved By")

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate work order PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

// addDocumentHeader prints the issuer on the left and the document title and
// number on the right.
func addDocumentHeader(m core.Maroto, issuer Issuer, title, number string) {
	m.AddRows(
		row.New(10).Add(
			col.New(6).Add(text.New(orPlaceholder(issuer.Name, placeholderPreparerName), props.Text{
				Size:  14,
				Style: fontstyle.Bold,
				Align: align.Left,
			})),
			col.New(6).Add(text.New(title, props.Text{
				Size:  13,
				Style: fontstyle.Bold,
				Align: align.Right,
			})),
		),
	)

	m.AddRows(
		row.New(8).Add(
			col.New(6).Add(text.New(joinNonEmpty([]string{issuer.Address, issuer.Email, issuer.Phone}, " | "), props.Text{
				Size:  8,
				Align: align.Left,
				Color: mutedColor,
			})),
			col.New(6).Add(text.New(number, props.Text{
				Size:  10,
				Style: fontstyle.Bold,
				Align: align.Right,
			})),
		),
	)

	m.AddRows(row.New(3))
}

// addFieldPairs prints label/value pairs two per row.
func addFieldPairs(m core.Maroto, pairs [][2]string) {
	for i := 0; i < len(pairs); i += 2 {
		cols := []core.Col{
			col.New(2).Add(text.New(pairs[i][0], fieldLabel)),
			col.New(4).Add(text.New(pairs[i][1], fieldValue)),
		}
		if i+1 < len(pairs) {
			cols = append(cols,
				col.New(2).Add(text.New(pairs[i+1][0], fieldLabel)),
				col.New(4).Add(text.New(pairs[i+1][1], fieldValue)),
			)
		} else {
			cols = append(cols, col.New(6))
		}
		m.AddRows(row.New(6).Add(cols...))
	}
	m.AddRows(row.New(3))
}

func addWorkOrderDetails(m core.Maroto, data WorkOrderData) {
	m.AddRows(row.New(6).Add(col.New(12).Add(text.New("ORDER DETAILS", sectionLabel))))
	addFieldPairs(m, [][2]string{
		{"Client:", data.ClientName},
		{"Date:", data.Date},
		{"Project:", data.ProjectName},
		{"Customer PO:", data.CustomerPONo},
		{"Revision:", data.Revision},
		{"Quotation No:", data.QuotationNo},
		{"Ship To:", data.ShipTo},
		{"Delivery:", data.DeliveryTime},
	})
}

// headCol is one header cell of a maroto table.
func headCol(size int, label string) core.Col {
	return col.New(size).Add(text.New(label, tableHeadText)).WithStyle(&props.Cell{BackgroundColor: darkHeaderBg})
}

// stripe shades every other body row.
func stripe(i int, cols ...core.Col) []core.Col {
	if i%2 == 1 {
		for j := range cols {
			cols[j] = cols[j].WithStyle(&props.Cell{BackgroundColor: stripeBg})
		}
	}
	return cols
}

func addWorkOrderParts(m core.Maroto, parts []Part) {
	m.AddRows(row.New(6).Add(col.New(12).Add(text.New("PARTS", sectionLabel))))
	m.AddRows(
		row.New(8).Add(
			headCol(1, "#"),
			headCol(3, "Description"),
			headCol(2, "Material"),
			headCol(1, "Grade"),
			headCol(2, "Drawing / Part No"),
			headCol(1, "Heat No"),
			headCol(1, "RM By"),
			headCol(1, "Qty"),
		),
	)

	for i, p := range parts {
		desc := p.JobDescription
		if desc == "" {
			desc = fmt.Sprintf("Item - %d", i+1)
		}
		material := p.Material
		if p.RawMaterialDimension != "" {
			material = joinNonEmpty([]string{p.Material, p.RawMaterialDimension}, ", ")
		}
		m.AddRows(row.New(7).Add(stripe(i,
			col.New(1).Add(text.New(fmt.Sprintf("%d", i+1), tableBodyText)),
			col.New(3).Add(text.New(desc, tableBodyText)),
			col.New(2).Add(text.New(material, tableBodyText)),
			col.New(1).Add(text.New(p.MaterialGrade, tableBodyText)),
			col.New(2).Add(text.New(p.DrawingPartNo, tableBodyText)),
			col.New(1).Add(text.New(p.HeatNumber, tableBodyText)),
			col.New(1).Add(text.New(p.RawMaterialSuppliedBy, tableBodyText)),
			col.New(1).Add(text.New(formatQuantity(p.Qty()), tableBodyRight)),
		)...))
	}

	m.AddRows(row.New(4))
}

// addNoteBlock prints a titled free-text block, one row per line.
func addNoteBlock(m core.Maroto, title, note string) {
	lines := strings.Split(strings.ReplaceAll(note, "\r\n", "\n"), "\n")
	var body []string
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			body = append(body, l)
		}
	}
	if len(body) == 0 {
		return
	}

	m.AddRows(row.New(6).Add(col.New(12).Add(text.New(title, sectionLabel))))
	for _, l := range body {
		// Long lines wrap inside the column; give them room.
		h := 5.0
		if len(l) > 110 {
			h = 5.0 * float64(len(l)/110+1)
		}
		m.AddRows(row.New(h).Add(col.New(12).Add(text.New(l, fieldValue))))
	}
	m.AddRows(row.New(4))
}

// addSignatures adds a spacer and two signature captions.
func addSignatures(m core.Maroto, left, right string) {
	m.AddRows(row.New(15))
	caption := props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Center}
	m.AddRows(
		row.New(5).Add(
			col.New(4).Add(text.New("____________________", caption)),
			col.New(4),
			col.New(4).Add(text.New("____________________", caption)),
		),
		row.New(5).Add(
			col.New(4).Add(text.New(left, caption)),
			col.New(4),
			col.New(4).Add(text.New(right, caption)),
		),
	)
}

func joinNonEmpty(parts []string, sep string) string {
	var nonEmpty []string
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, sep)
}
