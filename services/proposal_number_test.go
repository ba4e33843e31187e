package services

import (
	"testing"
	"time"

	"forgeestimates/testhelpers"
)

func TestFormatProposalNumber(t *testing.T) {
	tests := []struct {
		year, seq int
		want      string
	}{
		{2026, 1, "TPS_26001"},
		{2026, 42, "TPS_26042"},
		{2030, 999, "TPS_30999"},
	}
	for _, tt := range tests {
		if got := formatProposalNumber(tt.year, tt.seq); got != tt.want {
			t.Errorf("formatProposalNumber(%d, %d) = %q, want %q", tt.year, tt.seq, got, tt.want)
		}
	}
}

func TestFormatWorkOrderNumber(t *testing.T) {
	if got := formatWorkOrderNumber(2026, 4); got != "WO-2026-004" {
		t.Errorf("formatWorkOrderNumber = %q, want WO-2026-004", got)
	}
}

func TestGenerateProposalNumber_Sequence(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	now := time.Date(2026, time.October, 18, 0, 0, 0, 0, time.UTC)

	first, err := GenerateProposalNumber(app, now)
	if err != nil {
		t.Fatalf("GenerateProposalNumber() error = %v", err)
	}
	if first != "TPS_26001" {
		t.Errorf("first number = %q, want TPS_26001", first)
	}

	est := testhelpers.CreateTestEstimation(t, app, "Skid Brackets", "Gulf Coast Compressors")
	est.Set("quotation_no", first)
	if err := app.Save(est); err != nil {
		t.Fatalf("save estimation: %v", err)
	}
	old := testhelpers.CreateTestEstimation(t, app, "Old Job", "Gulf Coast Compressors")
	old.Set("quotation_no", "TPS_25017")
	if err := app.Save(old); err != nil {
		t.Fatalf("save estimation: %v", err)
	}

	second, err := GenerateProposalNumber(app, now)
	if err != nil {
		t.Fatalf("GenerateProposalNumber() error = %v", err)
	}
	if second != "TPS_26002" {
		t.Errorf("second number = %q, want TPS_26002", second)
	}

	nextYear, _ := GenerateProposalNumber(app, now.AddDate(1, 0, 0))
	if nextYear != "TPS_27001" {
		t.Errorf("next year number = %q, want TPS_27001", nextYear)
	}
}

func TestGenerateWorkOrderNumber_Sequence(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	now := time.Date(2026, time.October, 18, 0, 0, 0, 0, time.UTC)

	est := testhelpers.CreateTestEstimation(t, app, "Skid Brackets", "Gulf Coast Compressors")
	est.Set("work_order_no", "WO-2026-001")
	if err := app.Save(est); err != nil {
		t.Fatalf("save estimation: %v", err)
	}

	got, err := GenerateWorkOrderNumber(app, now)
	if err != nil {
		t.Fatalf("GenerateWorkOrderNumber() error = %v", err)
	}
	if got != "WO-2026-002" {
		t.Errorf("GenerateWorkOrderNumber() = %q, want WO-2026-002", got)
	}
}

func TestGenerateProposalNumber_SkipsGaps(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	now := time.Date(2026, time.October, 18, 0, 0, 0, 0, time.UTC)

	// TPS_26002 belonged to an estimation that was deleted.
	for _, n := range []string{"TPS_26001", "TPS_26003"} {
		est := testhelpers.CreateTestEstimation(t, app, "Job "+n, "Gulf Coast Compressors")
		est.Set("quotation_no", n)
		if err := app.Save(est); err != nil {
			t.Fatalf("save estimation: %v", err)
		}
	}

	got, err := GenerateProposalNumber(app, now)
	if err != nil {
		t.Fatalf("GenerateProposalNumber() error = %v", err)
	}
	if got != "TPS_26004" {
		t.Errorf("GenerateProposalNumber() = %q, want TPS_26004", got)
	}
}
