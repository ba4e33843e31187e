package services

import (
	"testing"
	"time"
)

func TestFormatCurrency_Values(t *testing.T) {
	tests := []struct {
		name   string
		input  float64
		expect string
	}{
		{"zero", 0, "$ 0.00"},
		{"small integer", 5, "$ 5.00"},
		{"with decimals", 42.50, "$ 42.50"},
		{"hundreds", 999.99, "$ 999.99"},
		{"thousands", 1234.5, "$ 1,234.50"},
		{"ten thousands", 12345.00, "$ 12,345.00"},
		{"hundred thousands", 123456.78, "$ 123,456.78"},
		{"millions", 1234567.89, "$ 1,234,567.89"},
		{"exact thousands boundary", 1000, "$ 1,000.00"},
		{"rounds to two digits", 12.3456, "$ 12.35"},
		{"exact tie rounds to even", 0.125, "$ 0.12"},
		{"binary value below tie", 1.005, "$ 1.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatCurrency(tt.input)
			if got != tt.expect {
				t.Errorf("FormatCurrency(%v) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}

func TestCurrencyFormatter_Symbol(t *testing.T) {
	tests := []struct {
		name   string
		symbol string
		expect string
	}{
		{"default when empty", "", "$ 1,500.00"},
		{"explicit dollar", "$", "$ 1,500.00"},
		{"other symbol", "USD", "USD 1,500.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CurrencyFormatter{Symbol: tt.symbol}.Format(1500)
			if got != tt.expect {
				t.Errorf("Format(1500) = %q, want %q", got, tt.expect)
			}
		})
	}
}

func TestFormatProposalDate(t *testing.T) {
	d := time.Date(2026, time.March, 7, 15, 4, 5, 0, time.UTC)
	if got := formatProposalDate(d); got != "03/07/2026" {
		t.Errorf("formatProposalDate = %q, want %q", got, "03/07/2026")
	}
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{"html date input", "2026-10-18", "10/18/2026"},
		{"already formatted", "10/18/2026", "10/18/2026"},
		{"empty", "", ""},
		{"free text", "ASAP", "ASAP"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeDate(tt.input); got != tt.expect {
				t.Errorf("normalizeDate(%q) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}

func TestFormatQuantity(t *testing.T) {
	if got := formatQuantity(1200); got != "1200" {
		t.Errorf("formatQuantity(1200) = %q, want %q", got, "1200")
	}
}
