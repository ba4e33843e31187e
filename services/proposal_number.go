package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase/core"
)

// formatProposalNumber constructs "TPS_<yy><seq>" with a 3-digit sequence.
func formatProposalNumber(year, sequence int) string {
	return fmt.Sprintf("TPS_%02d%03d", year%100, sequence)
}

// formatWorkOrderNumber constructs "WO-<yyyy>-<seq>" with a 3-digit sequence.
func formatWorkOrderNumber(year, sequence int) string {
	return fmt.Sprintf("WO-%04d-%03d", year, sequence)
}

// GenerateProposalNumber returns the next quotation number for the calendar
// year of now. The sequence restarts every year and continues after the
// highest number already stored with the same prefix, so gaps left by deleted
// estimations are never reused. Call it inside the transaction that saves the
// number.
func GenerateProposalNumber(app core.App, now time.Time) (string, error) {
	prefix := fmt.Sprintf("TPS_%02d", now.Year()%100)
	n, err := highestSequence(app, "quotation_no", prefix)
	if err != nil {
		return "", err
	}
	return formatProposalNumber(now.Year(), n+1), nil
}

// GenerateWorkOrderNumber returns the next work order number for the year of now.
func GenerateWorkOrderNumber(app core.App, now time.Time) (string, error) {
	prefix := fmt.Sprintf("WO-%04d-", now.Year())
	n, err := highestSequence(app, "work_order_no", prefix)
	if err != nil {
		return "", err
	}
	return formatWorkOrderNumber(now.Year(), n+1), nil
}

// highestSequence returns the largest numeric suffix among field values that
// start with prefix, or 0 when there are none.
func highestSequence(app core.App, field, prefix string) (int, error) {
	col, err := app.FindCollectionByNameOrId("estimations")
	if err != nil {
		return 0, fmt.Errorf("estimations collection not found: %w", err)
	}

	existing, err := app.FindRecordsByFilter(
		col,
		field+" ~ {:prefix}",
		"",
		0,
		0,
		map[string]any{"prefix": prefix + "%"},
	)
	if err != nil {
		// No matching records yet, start at 1
		existing = nil
	}

	highest := 0
	for _, r := range existing {
		v := r.GetString(field)
		if !strings.HasPrefix(v, prefix) {
			continue
		}
		seq, err := strconv.Atoi(strings.TrimPrefix(v, prefix))
		if err != nil {
			continue
		}
		highest = max(highest, seq)
	}
	return highest, nil
}
