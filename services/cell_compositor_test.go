package services

import "testing"

func TestDrawLabelValue(t *testing.T) {
	tests := []struct {
		name      string
		boldLabel bool
		wantStyle FontStyle
	}{
		{"bold label", true, FontBold},
		{"plain label", false, FontNormal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &recordingCanvas{pages: 1}
			DrawLabelValue(c, 17, 40, "POC:", "Maria Delgado", tt.boldLabel)

			if len(c.texts) != 2 {
				t.Fatalf("expected 2 text runs, got %d", len(c.texts))
			}
			label, value := c.texts[0], c.texts[1]
			if label.S != "POC:" || label.X != 17 || label.Y != 40 || label.Font.Style != tt.wantStyle {
				t.Errorf("label drawn as %+v", label)
			}
			wantX := 17 + c.StringWidth("POC:", label.Font) + labelGap
			if value.S != "Maria Delgado" || !approx(value.X, wantX) || value.Y != 40 {
				t.Errorf("value drawn as %+v, want x=%v", value, wantX)
			}
			if value.Font.Style != FontNormal {
				t.Errorf("value font style = %q, want normal", value.Font.Style)
			}
		})
	}
}

func TestDrawLabelValue_EmptyLabel(t *testing.T) {
	c := &recordingCanvas{pages: 1}
	DrawLabelValue(c, 17, 40, "", "Gulf Coast Compressors", true)

	if len(c.texts) != 1 {
		t.Fatalf("expected 1 text run, got %d", len(c.texts))
	}
	if c.texts[0].X != 17 {
		t.Errorf("value x = %v, want 17", c.texts[0].X)
	}
}

func TestDrawLabelValueRight(t *testing.T) {
	c := &recordingCanvas{pages: 1}
	DrawLabelValueRight(c, 193, 75, "Valid Until:", "11/02/2026")

	value, ok := c.find("11/02/2026")
	if !ok {
		t.Fatal("value not drawn")
	}
	if right := value.X + c.StringWidth(value.S, value.Font); !approx(right, 193) {
		t.Errorf("value right edge = %v, want 193", right)
	}

	label, ok := c.find("Valid Until:")
	if !ok {
		t.Fatal("label not drawn")
	}
	if right := label.X + c.StringWidth(label.S, label.Font) + labelGap; !approx(right, value.X) {
		t.Errorf("label ends at %v, want %v", right, value.X)
	}
	if label.Font.Style != FontBold {
		t.Errorf("label font style = %q, want bold", label.Font.Style)
	}
}
