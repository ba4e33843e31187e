package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"forgeestimates/services"
	"forgeestimates/testhelpers"
)

func TestHandleEstimationView(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	id := seedEstimation(t, app)
	handler := HandleEstimationView(app, testDocuments())

	req := httptest.NewRequest(http.MethodGet, "/estimations/"+id, nil)
	req.SetPathValue("id", id)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	testhelpers.AssertHTMLContains(t, rec.Body.String(),
		"<!doctype html>",
		"Skid Brackets",
		`value="Mounting bracket"`,
		services.AutoNumberPlaceholder,
		"$ 4,452.00",
		"$ 1,368.00",
		"$ 5,820.00",
		`action="/estimations/`+id+`/save"`,
	)
}

func TestHandleEstimationView_HTMXPartial(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	id := seedEstimation(t, app)
	handler := HandleEstimationView(app, testDocuments())

	req := httptest.NewRequest(http.MethodGet, "/estimations/"+id, nil)
	req.Header.Set("HX-Request", "true")
	req.SetPathValue("id", id)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	body := rec.Body.String()
	if strings.Contains(body, "<!doctype html>") {
		t.Error("HTMX request should get the partial without the page shell")
	}
	testhelpers.AssertHTMLContains(t, body, `id="estimation"`)
}

func TestHandleEstimationView_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleEstimationView(app, testDocuments())

	req := httptest.NewRequest(http.MethodGet, "/estimations/nope", nil)
	req.SetPathValue("id", "nope")
	rec := httptest.NewRecorder()
	_ = handler(newTestRequestEvent(app, req, rec))

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestHandleEstimationSave(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	id := seedEstimation(t, app)
	handler := HandleEstimationSave(app)

	form := url.Values{
		"project_name":    {"Skid Brackets Rev B"},
		"client_name":     {"Gulf Coast Compressors"},
		"delivery_time":   {"4 weeks"},
		"part_id":         {""},
		"job_description": {"Base plate"},
		"quantity":        {"3"},
		"job_cost_unit":   {"120"},
	}
	req := httptest.NewRequest(http.MethodPost, "/estimations/"+id+"/save", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetPathValue("id", id)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Location"); got != "/estimations/"+id {
		t.Errorf("expected redirect to the editor, got %q", got)
	}

	saved, err := services.BuildEstimationForm(app, id)
	if err != nil {
		t.Fatalf("BuildEstimationForm: %v", err)
	}
	if saved.Basic.ProjectName != "Skid Brackets Rev B" {
		t.Errorf("ProjectName = %q", saved.Basic.ProjectName)
	}
	if saved.Quotation.DeliveryTime != "4 weeks" {
		t.Errorf("DeliveryTime = %q", saved.Quotation.DeliveryTime)
	}
	if len(saved.Parts) != 1 || saved.Parts[0].JobDescription != "Base plate" {
		t.Errorf("parts were not replaced: %+v", saved.Parts)
	}
	if saved.GrandTotal() != 360 {
		t.Errorf("GrandTotal = %v, want 360", saved.GrandTotal())
	}
}

func TestHandleEstimationSave_Errors(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	id := seedEstimation(t, app)
	handler := HandleEstimationSave(app)

	tests := []struct {
		name string
		id   string
		body string
		want int
	}{
		{"not found", "nope", "project_name=x", http.StatusNotFound},
		{"ragged parts", id, "job_description=a&job_description=b&quantity=1", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/estimations/"+tt.id+"/save", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			req.SetPathValue("id", tt.id)
			rec := httptest.NewRecorder()
			_ = handler(newTestRequestEvent(app, req, rec))
			if rec.Code != tt.want {
				t.Errorf("expected %d, got %d", tt.want, rec.Code)
			}
		})
	}
}
