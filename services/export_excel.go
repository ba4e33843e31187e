package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// quotationSheet is the only sheet of the quotation workbook.
const quotationSheet = "Quotation"

// QuotationExcelFilename returns "Quotation_<proposalNo|Draft>_<YYYY-MM-DD>.xlsx".
func QuotationExcelFilename(proposalNo string, generated time.Time) string {
	return strings.TrimSuffix(QuotationFilename(proposalNo, generated), ".pdf") + ".xlsx"
}

// GenerateQuotationExcel writes the quotation as a single-sheet workbook with
// the same rows as the PDF summary table and returns the file contents.
func GenerateQuotationExcel(rec QuotationRecord, issuerName string, money CurrencyFormatter, now time.Time) ([]byte, error) {
	rec = rec.Normalized(now).withPlaceholders()

	f := excelize.NewFile()
	defer f.Close()

	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, quotationSheet); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}
	sheet := quotationSheet

	columns := []string{"A", "B", "C", "D", "E"}
	lastCol := columns[len(columns)-1]

	widths := []float64{6, 50, 18, 10, 20}
	for i, col := range columns {
		if err := f.SetColWidth(sheet, col, col, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	// ── Styles ──────────────────────────────────────────────────────────

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}

	labelStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
	})
	if err != nil {
		return nil, fmt.Errorf("create label style: %w", err)
	}

	// Column header style: bold, white text, dark grey background, centered.
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:  true,
			Color: "#FFFFFF",
			Size:  11,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#505050"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	bodyStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create body style: %w", err)
	}

	totalStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Border:    thinBorders(),
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return nil, fmt.Errorf("create total style: %w", err)
	}

	// ── Identity rows (1-7) ─────────────────────────────────────────────

	if err := f.MergeCell(sheet, "A1", lastCol+"1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheet, "A1", sanitizeExcelCell(orPlaceholder(issuerName, placeholderPreparerName)+" Quotation"))
	f.SetCellStyle(sheet, "A1", lastCol+"1", titleStyle)

	identity := [][2]string{
		{"Proposal No:", rec.Proposal.Number},
		{"Proposal Date:", rec.Proposal.Date},
		{"Valid Until:", rec.Proposal.ValidThrough},
		{"Project:", rec.Proposal.ProjectName},
		{"To:", rec.Client.Name},
		{"Prepared By:", rec.Preparer.PointOfContact},
	}
	for i, kv := range identity {
		r := fmt.Sprintf("%d", i+2)
		f.SetCellValue(sheet, "A"+r, kv[0])
		f.SetCellStyle(sheet, "A"+r, "A"+r, labelStyle)
		if err := f.MergeCell(sheet, "B"+r, lastCol+r); err != nil {
			return nil, fmt.Errorf("merge identity row %s: %w", r, err)
		}
		f.SetCellValue(sheet, "B"+r, sanitizeExcelCell(kv[1]))
	}

	// ── Column headers ──────────────────────────────────────────────────

	headerRow := len(identity) + 3
	headers := []string{"#", "Description", "Unit Price", "Quantity", "Total Price"}
	for i, h := range headers {
		f.SetCellValue(sheet, fmt.Sprintf("%s%d", columns[i], headerRow), h)
	}
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", headerRow), fmt.Sprintf("%s%d", lastCol, headerRow), headerStyle)

	// ── Line items ──────────────────────────────────────────────────────

	row := headerRow + 1
	for i, item := range rec.LineItems {
		r := fmt.Sprintf("%d", row)
		desc := item.Description
		if desc == "" {
			desc = fmt.Sprintf("Item - %d", i+1)
		}
		f.SetCellValue(sheet, "A"+r, i+1)
		f.SetCellValue(sheet, "B"+r, sanitizeExcelCell(desc))
		f.SetCellValue(sheet, "C"+r, money.Format(item.UnitPrice))
		f.SetCellValue(sheet, "D"+r, item.Quantity)
		f.SetCellValue(sheet, "E"+r, money.Format(item.TotalPrice))
		f.SetCellStyle(sheet, "A"+r, lastCol+r, bodyStyle)
		row++
	}

	// ── Grand total ─────────────────────────────────────────────────────

	r := fmt.Sprintf("%d", row)
	if err := f.MergeCell(sheet, "A"+r, "D"+r); err != nil {
		return nil, fmt.Errorf("merge total: %w", err)
	}
	f.SetCellValue(sheet, "A"+r, "Grand Total")
	f.SetCellValue(sheet, "E"+r, money.Format(rec.GrandTotal()))
	f.SetCellStyle(sheet, "A"+r, lastCol+r, totalStyle)
	row += 2

	// ── Notes ───────────────────────────────────────────────────────────

	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Notes:")
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), labelStyle)
	row++
	for _, n := range rec.NoteLines() {
		r := fmt.Sprintf("%d", row)
		if err := f.MergeCell(sheet, "A"+r, lastCol+r); err != nil {
			return nil, fmt.Errorf("merge note: %w", err)
		}
		f.SetCellValue(sheet, "A"+r, sanitizeExcelCell(n))
		row++
	}

	// ── Write to buffer ─────────────────────────────────────────────────

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}

	return buf.Bytes(), nil
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote. Excel interprets cells starting with =, +, -,
// @, \t or \r as formulas, which can be abused for code execution or data theft.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns a slice of excelize.Border for thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1, // thin
		}
	}
	return borders
}
