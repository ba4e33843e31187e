package services

import (
	"fmt"
	"time"

	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// CertificateData holds everything printed on a certificate of conformance.
type CertificateData struct {
	Issuer       Issuer
	WorkOrderNo  string
	CustomerPONo string
	Date         string
	ClientName   string
	ProjectName  string
	Parts        []Part
	Checks       []CertCheck
	Note         string
	PreparedBy   string
}

// CertificateFilename returns "Certificate_<no|Draft>_<YYYY-MM-DD>.pdf".
func CertificateFilename(workOrderNo string, generated time.Time) string {
	return documentFilename("Certificate", workOrderNo, generated)
}

// GenerateCertificatePDF renders a certificate of conformance.
func GenerateCertificatePDF(data CertificateData) ([]byte, error) {
	m := newDocument()

	addDocumentHeader(m, data.Issuer, "CERTIFICATE OF CONFORMANCE", fmt.Sprintf("WO #: %s", orPlaceholder(data.WorkOrderNo, "Draft")))

	m.AddRows(row.New(6).Add(col.New(12).Add(text.New("CUSTOMER", sectionLabel))))
	addFieldPairs(m, [][2]string{
		{"Customer:", data.ClientName},
		{"Date:", data.Date},
		{"Project:", data.ProjectName},
		{"Customer PO:", data.CustomerPONo},
	})

	addCertificateParts(m, data.Parts)
	addInspectionChecks(m, data.Checks)
	addNoteBlock(m, "CERTIFICATION", data.Note)

	prepared := "Quality Inspector"
	if data.PreparedBy != "" {
		prepared = data.PreparedBy
	}
	addSignatures(m, prepared, "Authorized Signatory")

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate certificate PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

func addCertificateParts(m core.Maroto, parts []Part) {
	m.AddRows(row.New(6).Add(col.New(12).Add(text.New("PARTS", sectionLabel))))
	m.AddRows(
		row.New(8).Add(
			headCol(1, "#"),
			headCol(5, "Description"),
			headCol(3, "Drawing / Part No"),
			headCol(2, "Heat No"),
			headCol(1, "Qty"),
		),
	)
	for i, p := range parts {
		desc := p.JobDescription
		if desc == "" {
			desc = fmt.Sprintf("Item - %d", i+1)
		}
		m.AddRows(row.New(7).Add(stripe(i,
			col.New(1).Add(text.New(fmt.Sprintf("%d", i+1), tableBodyText)),
			col.New(5).Add(text.New(desc, tableBodyText)),
			col.New(3).Add(text.New(p.DrawingPartNo, tableBodyText)),
			col.New(2).Add(text.New(p.HeatNumber, tableBodyText)),
			col.New(1).Add(text.New(formatQuantity(p.Qty()), tableBodyRight)),
		)...))
	}
	m.AddRows(row.New(4))
}

func addInspectionChecks(m core.Maroto, checks []CertCheck) {
	if len(checks) == 0 {
		return
	}
	m.AddRows(row.New(6).Add(col.New(12).Add(text.New("INSPECTION", sectionLabel))))
	m.AddRows(row.New(8).Add(headCol(9, "Check"), headCol(3, "Result")))

	for i, c := range checks {
		result := props.Text{Size: 7, Style: fontstyle.Bold, Align: align.Center}
		if c.Value != "Yes" {
			result.Style = fontstyle.Normal
			result.Color = mutedColor
		}
		m.AddRows(row.New(7).Add(stripe(i,
			col.New(9).Add(text.New(c.Label, tableBodyText)),
			col.New(3).Add(text.New(orPlaceholder(c.Value, "No"), result)),
		)...))
	}
	m.AddRows(row.New(4))
}
