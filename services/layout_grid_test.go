package services

import "testing"

func TestNewLayoutGrid_A4(t *testing.T) {
	g := NewLayoutGrid(PageA4Portrait, pageMargin)

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"content width", g.ContentWidth, 182},
		{"half width", g.HalfWidth, 91},
		{"top", g.Top(), 15},
		{"bottom", g.Bottom(), 282},
		{"right x", g.RightX(), 196},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestLayoutGrid_Fits(t *testing.T) {
	g := NewLayoutGrid(PageA4Portrait, pageMargin)

	tests := []struct {
		name string
		y, h float64
		want bool
	}{
		{"well inside", 50, 100, true},
		{"touches bottom", 270, 12, true},
		{"crosses bottom", 270, 12.5, false},
		{"taller than page", 15, 300, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.Fits(tt.y, tt.h); got != tt.want {
				t.Errorf("Fits(%v, %v) = %v, want %v", tt.y, tt.h, got, tt.want)
			}
		})
	}
}
