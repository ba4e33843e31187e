package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"forgeestimates/testhelpers"
)

func TestStatusBadgeClass(t *testing.T) {
	tests := []struct {
		status string
		want   string
	}{
		{"draft", "badge-ghost"},
		{"quoted", "badge-info"},
		{"ordered", "badge-success"},
		{"closed", "badge-neutral"},
		{"", "badge-ghost"},
	}
	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			if got := statusBadgeClass(tt.status); got != tt.want {
				t.Errorf("statusBadgeClass(%q) = %q, want %q", tt.status, got, tt.want)
			}
		})
	}
}

func TestHandleEstimationList_Empty(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleEstimationList(app, testDocuments())

	req := httptest.NewRequest(http.MethodGet, "/estimations", nil)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(), "No estimations yet.")
}

func TestHandleEstimationList_WithEstimations(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	seedEstimation(t, app)
	testhelpers.CreateTestEstimation(t, app, "Pump Base", "Bayou Pumps")

	handler := HandleEstimationList(app, testDocuments())

	req := httptest.NewRequest(http.MethodGet, "/estimations", nil)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(),
		"<!doctype html>",
		"Skid Brackets",
		"Pump Base",
		"Bayou Pumps",
		"$ 5,820.00",
		"badge-ghost",
	)
}

func TestHandleEstimationList_HTMXPartial(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	seedEstimation(t, app)
	handler := HandleEstimationList(app, testDocuments())

	req := httptest.NewRequest(http.MethodGet, "/estimations", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	body := rec.Body.String()
	if strings.Contains(body, "<!doctype html>") {
		t.Error("HTMX request should get the partial without the page shell")
	}
	testhelpers.AssertHTMLContains(t, body, `id="estimation-list"`, "Skid Brackets")
}
