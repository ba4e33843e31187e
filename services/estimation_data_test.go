package services

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"forgeestimates/testhelpers"

	"github.com/pocketbase/pocketbase/core"
)

func TestBuildEstimationForm(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	est := testhelpers.CreateTestEstimation(t, app, "Skid Brackets", "Gulf Coast Compressors")
	testhelpers.CreateTestPart(t, app, est.Id, 2, "Gusset", "96", "14.25")
	testhelpers.CreateTestPart(t, app, est.Id, 1, "Mounting bracket", "24", "185.50")

	form, err := BuildEstimationForm(app, est.Id)
	if err != nil {
		t.Fatalf("BuildEstimationForm() error = %v", err)
	}

	if form.ID != est.Id || form.Basic.ProjectName != "Skid Brackets" || form.Basic.ClientName != "Gulf Coast Compressors" {
		t.Errorf("basic details = %+v", form.Basic)
	}
	if form.Basic.PreparedBy != "Test Estimator" || form.Basic.POCEmail != "estimator@example.com" {
		t.Errorf("seller column = %+v", form.Basic)
	}
	if len(form.Parts) != 2 {
		t.Fatalf("expected 2 parts, got %d", len(form.Parts))
	}
	if form.Parts[0].JobDescription != "Mounting bracket" || form.Parts[1].JobDescription != "Gusset" {
		t.Errorf("parts not in sort order: %q, %q", form.Parts[0].JobDescription, form.Parts[1].JobDescription)
	}
	if form.Parts[0].Material != "Aluminium 6061" || form.Parts[0].ID == "" {
		t.Errorf("part 0 = %+v", form.Parts[0])
	}
	if form.GrandTotal() != 4452+1368 {
		t.Errorf("GrandTotal = %v, want 5820", form.GrandTotal())
	}
	if len(form.Certificate.Checks) != len(DefaultCertChecks) || form.Certificate.Note != DefaultCertNote {
		t.Error("certificate section did not fall back to the defaults")
	}
}

func TestBuildEstimationForm_NoPartsAndPlaceholderNumber(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	est := testhelpers.CreateTestEstimation(t, app, "Empty Job", "Acme")
	est.Set("quotation_no", AutoNumberPlaceholder)
	est.Set("cert_checks", []CertCheck{{Label: "MTR", Value: "No"}})
	if err := app.Save(est); err != nil {
		t.Fatalf("save estimation: %v", err)
	}

	form, err := BuildEstimationForm(app, est.Id)
	if err != nil {
		t.Fatalf("BuildEstimationForm() error = %v", err)
	}
	if len(form.Parts) != 1 {
		t.Errorf("expected 1 blank part, got %d", len(form.Parts))
	}
	if form.Quotation.Number != "" {
		t.Errorf("placeholder number kept: %q", form.Quotation.Number)
	}
	if len(form.Certificate.Checks) != 1 || form.Certificate.Checks[0].Label != "MTR" {
		t.Errorf("cert checks = %+v", form.Certificate.Checks)
	}
}

func TestBuildEstimationForm_FillsFromClient(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	clientsCol, _ := app.FindCollectionByNameOrId("clients")
	client := core.NewRecord(clientsCol)
	client.Set("name", "Gulf Coast Compressors Inc.")
	client.Set("address", "4100 Clinton Dr, Houston, TX")
	client.Set("poc", "Maria Delgado")
	client.Set("phone", "713-555-0142")
	if err := app.Save(client); err != nil {
		t.Fatalf("save client: %v", err)
	}

	est := testhelpers.CreateTestEstimation(t, app, "Skid Brackets", "")
	est.Set("client", client.Id)
	est.Set("poc_name", "")
	if err := app.Save(est); err != nil {
		t.Fatalf("save estimation: %v", err)
	}

	form, err := BuildEstimationForm(app, est.Id)
	if err != nil {
		t.Fatalf("BuildEstimationForm() error = %v", err)
	}
	if form.Basic.ClientName != "Gulf Coast Compressors Inc." || form.Basic.POC != "Maria Delgado" {
		t.Errorf("client fields = %+v", form.Basic)
	}
	if form.Basic.BillingAddress != "4100 Clinton Dr, Houston, TX" {
		t.Errorf("billing address = %q", form.Basic.BillingAddress)
	}
	if form.Basic.POCPhone != "555-0100" {
		t.Errorf("estimation phone should win over the client's, got %q", form.Basic.POCPhone)
	}
}

func TestBuildEstimationForm_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	if _, err := BuildEstimationForm(app, "missing"); err == nil {
		t.Error("expected an error for a missing estimation")
	}
}

func TestLoadIssuer(t *testing.T) {
	cfg := DefaultQuotationConfig()

	t.Run("falls back to config", func(t *testing.T) {
		app := testhelpers.NewTestApp(t)
		if got := LoadIssuer(app, cfg); got != cfg.Issuer {
			t.Errorf("LoadIssuer() = %+v, want %+v", got, cfg.Issuer)
		}
	})

	t.Run("company record wins", func(t *testing.T) {
		app := testhelpers.NewTestApp(t)
		testhelpers.CreateTestCompany(t, app, "Acme Machining")
		got := LoadIssuer(app, cfg)
		want := Issuer{Name: "Acme Machining", Address: "Tulsa, Oklahoma, US", Email: "quotes@example.com", Phone: "918-555-0100"}
		if got != want {
			t.Errorf("LoadIssuer() = %+v, want %+v", got, want)
		}
	})
}

func TestEnsureQuotationNumber(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	now := time.Date(2026, time.October, 18, 0, 0, 0, 0, time.UTC)
	est := testhelpers.CreateTestEstimation(t, app, "Skid Brackets", "Gulf Coast Compressors")

	n, err := EnsureQuotationNumber(app, est.Id, now)
	if err != nil {
		t.Fatalf("EnsureQuotationNumber() error = %v", err)
	}
	if n != "TPS_26001" {
		t.Errorf("assigned number = %q, want TPS_26001", n)
	}

	again, err := EnsureQuotationNumber(app, est.Id, now)
	if err != nil || again != n {
		t.Errorf("second call = %q, %v; want the stored %q", again, err, n)
	}

	saved, _ := app.FindRecordById("estimations", est.Id)
	if saved.GetString("quotation_no") != n {
		t.Errorf("stored quotation_no = %q", saved.GetString("quotation_no"))
	}
}

func TestEnsureWorkOrderNumber(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	now := time.Date(2026, time.October, 18, 0, 0, 0, 0, time.UTC)
	est := testhelpers.CreateTestEstimation(t, app, "Skid Brackets", "Gulf Coast Compressors")

	n, err := EnsureWorkOrderNumber(app, est.Id, now)
	if err != nil {
		t.Fatalf("EnsureWorkOrderNumber() error = %v", err)
	}
	if n != "WO-2026-001" {
		t.Errorf("assigned number = %q, want WO-2026-001", n)
	}
}

func TestEnsureQuotationNumber_ConcurrentExportsGetDistinctNumbers(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	now := time.Date(2026, time.October, 18, 0, 0, 0, 0, time.UTC)

	const n = 4
	ids := make([]string, n)
	for i := range ids {
		ids[i] = testhelpers.CreateTestEstimation(t, app, fmt.Sprintf("Job %d", i), "Gulf Coast Compressors").Id
	}

	numbers := make([]string, n)
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			numbers[i], errs[i] = EnsureQuotationNumber(app, ids[i], now)
		}(i)
	}
	wg.Wait()

	seen := map[string]bool{}
	for i, num := range numbers {
		if errs[i] != nil {
			t.Fatalf("EnsureQuotationNumber(%d) error = %v", i, errs[i])
		}
		if seen[num] {
			t.Errorf("number %s assigned twice: %v", num, numbers)
		}
		seen[num] = true
	}
	for _, want := range []string{"TPS_26001", "TPS_26002", "TPS_26003", "TPS_26004"} {
		if !seen[want] {
			t.Errorf("expected %s among %v", want, numbers)
		}
	}
}

func TestSaveEstimationForm_RoundTrip(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	est := testhelpers.CreateTestEstimation(t, app, "Skid Brackets", "Gulf Coast Compressors")
	keep := testhelpers.CreateTestPart(t, app, est.Id, 1, "Mounting bracket", "24", "185.50")
	drop := testhelpers.CreateTestPart(t, app, est.Id, 2, "Gusset", "96", "14.25")

	form, err := BuildEstimationForm(app, est.Id)
	if err != nil {
		t.Fatalf("BuildEstimationForm() error = %v", err)
	}

	b := form.Basic
	b.ProjectName = "Skid Brackets Rev C"
	b.SameAsBilling = true
	form = form.WithBasic(b).RemovePart(1).AddPart()
	form = form.UpdatePart(1, Part{JobDescription: "Base plate", Quantity: "2", JobCostUnit: "300"})
	form = form.WithCertificate(CertificateDetails{Checks: []CertCheck{{Label: "MTR", Value: "No"}}, Note: "Certified."})

	if err := SaveEstimationForm(app, form); err != nil {
		t.Fatalf("SaveEstimationForm() error = %v", err)
	}

	reloaded, err := BuildEstimationForm(app, est.Id)
	if err != nil {
		t.Fatalf("BuildEstimationForm() after save error = %v", err)
	}
	if reloaded.Basic.ProjectName != "Skid Brackets Rev C" || !reloaded.Basic.SameAsBilling {
		t.Errorf("basic details not saved: %+v", reloaded.Basic)
	}
	if len(reloaded.Parts) != 2 {
		t.Fatalf("expected 2 parts, got %d", len(reloaded.Parts))
	}
	if reloaded.Parts[0].ID != keep.Id || reloaded.Parts[1].JobDescription != "Base plate" {
		t.Errorf("parts = %+v", reloaded.Parts)
	}
	if _, err := app.FindRecordById("estimation_parts", drop.Id); err == nil {
		t.Error("removed part still stored")
	}
	if len(reloaded.Certificate.Checks) != 1 || reloaded.Certificate.Note != "Certified." {
		t.Errorf("certificate = %+v", reloaded.Certificate)
	}
	if reloaded.GrandTotal() != 4452+600 {
		t.Errorf("GrandTotal = %v, want 5052", reloaded.GrandTotal())
	}
}

func TestCreateEstimation(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	id, err := CreateEstimation(app, "New Enquiry")
	if err != nil {
		t.Fatalf("CreateEstimation() error = %v", err)
	}

	form, err := BuildEstimationForm(app, id)
	if err != nil {
		t.Fatalf("BuildEstimationForm() error = %v", err)
	}
	if form.Basic.ProjectName != "New Enquiry" || form.Basic.Revision != "A" {
		t.Errorf("basic = %+v", form.Basic)
	}
	if len(form.Parts) != 1 || form.Parts[0].ID == "" {
		t.Errorf("expected one stored blank part, got %+v", form.Parts)
	}
	if form.Quotation.Shipment != "Pickup / Courier" || form.Quotation.Note != "1. 100% inspection" {
		t.Errorf("quotation defaults = %+v", form.Quotation)
	}
}
