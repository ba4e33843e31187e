package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"forgeestimates/services"
)

func postForm(vals url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/estimations/e1/save", strings.NewReader(vals.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func baseForm() services.EstimationForm {
	f := services.NewEstimationForm()
	f.ID = "e1"
	f.Basic.ClientName = "Gulf Coast Compressors"
	f.Basic.ProjectName = "Skid Brackets"
	f.Basic.SameAsBilling = true
	f.Quotation.Number = "TPS_26001"
	return f.UpdatePart(0, services.Part{ID: "p1", JobDescription: "Mounting bracket", Quantity: "24", JobCostUnit: "185.50"})
}

func TestFormFromRequest_KeepsAbsentFields(t *testing.T) {
	base := baseForm()
	got, err := formFromRequest(postForm(url.Values{"delivery_time": {"3 weeks"}}), base)
	if err != nil {
		t.Fatalf("formFromRequest: %v", err)
	}

	if got.Quotation.DeliveryTime != "3 weeks" {
		t.Errorf("DeliveryTime = %q, want %q", got.Quotation.DeliveryTime, "3 weeks")
	}
	if got.Basic != base.Basic {
		t.Errorf("basic details changed: %+v", got.Basic)
	}
	if len(got.Parts) != 1 || got.Parts[0] != base.Parts[0] {
		t.Errorf("parts changed: %+v", got.Parts)
	}
	if got.Quotation.Number != "TPS_26001" {
		t.Errorf("assigned number must survive, got %q", got.Quotation.Number)
	}
	if base.Quotation.DeliveryTime != "" {
		t.Error("base form was mutated")
	}
}

func TestFormFromRequest_SameAsBilling(t *testing.T) {
	tests := []struct {
		name string
		vals url.Values
		want bool
	}{
		{"basic section posted without checkbox", url.Values{"project_name": {"Skid Brackets"}}, false},
		{"checkbox posted", url.Values{"project_name": {"Skid Brackets"}, "same_as_billing": {"on"}}, true},
		{"basic section absent", url.Values{"wo_note": {"rush"}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := formFromRequest(postForm(tt.vals), baseForm())
			if err != nil {
				t.Fatalf("formFromRequest: %v", err)
			}
			if got.Basic.SameAsBilling != tt.want {
				t.Errorf("SameAsBilling = %v, want %v", got.Basic.SameAsBilling, tt.want)
			}
		})
	}
}

func TestFormFromRequest_Parts(t *testing.T) {
	vals := url.Values{
		"part_id":         {"p1", ""},
		"job_description": {" Mounting bracket ", "Gusset"},
		"material":        {"A36", "A36"},
		"quantity":        {"24", "96"},
		"job_cost_unit":   {"185.50", "14.25"},
	}
	got, err := formFromRequest(postForm(vals), baseForm())
	if err != nil {
		t.Fatalf("formFromRequest: %v", err)
	}
	if len(got.Parts) != 2 {
		t.Fatalf("expected 2 parts, got %d", len(got.Parts))
	}
	if got.Parts[0].ID != "p1" || got.Parts[1].ID != "" {
		t.Errorf("unexpected part IDs %q, %q", got.Parts[0].ID, got.Parts[1].ID)
	}
	if got.Parts[0].JobDescription != "Mounting bracket" {
		t.Errorf("description not trimmed: %q", got.Parts[0].JobDescription)
	}
	if got.Parts[1].HeatNumber != "" {
		t.Errorf("unposted column should be empty, got %q", got.Parts[1].HeatNumber)
	}
	if total := got.GrandTotal(); total != 5820 {
		t.Errorf("GrandTotal = %v, want 5820", total)
	}
}

func TestFormFromRequest_CertChecks(t *testing.T) {
	vals := url.Values{
		"cert_check_label": {"Dimensional Verification", "MTR"},
		"cert_check_value": {"No", "Yes"},
		"cert_note":        {"Certified."},
	}
	got, err := formFromRequest(postForm(vals), baseForm())
	if err != nil {
		t.Fatalf("formFromRequest: %v", err)
	}
	want := []services.CertCheck{{Label: "Dimensional Verification", Value: "No"}, {Label: "MTR", Value: "Yes"}}
	if len(got.Certificate.Checks) != len(want) {
		t.Fatalf("expected %d checks, got %d", len(want), len(got.Certificate.Checks))
	}
	for i := range want {
		if got.Certificate.Checks[i] != want[i] {
			t.Errorf("check %d = %+v, want %+v", i, got.Certificate.Checks[i], want[i])
		}
	}
	if got.Certificate.Note != "Certified." {
		t.Errorf("Note = %q", got.Certificate.Note)
	}
}

func TestFormFromRequest_Malformed(t *testing.T) {
	tests := []struct {
		name string
		vals url.Values
	}{
		{"ragged part columns", url.Values{"job_description": {"a", "b"}, "quantity": {"1"}}},
		{"cert labels without values", url.Values{"cert_check_label": {"MTR"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := formFromRequest(postForm(tt.vals), baseForm()); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
