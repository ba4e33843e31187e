package collections_test

import (
	"testing"

	"forgeestimates/collections"
	"forgeestimates/testhelpers"
)

func TestSeed_CreatesData(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	companyCol, _ := app.FindCollectionByNameOrId("company")
	companies, _ := app.FindAllRecords(companyCol)
	if len(companies) != 1 {
		t.Fatalf("expected 1 company, got %d", len(companies))
	}
	if companies[0].GetString("name") != "J3M Fabrication LLC" {
		t.Errorf("company name = %q, want %q", companies[0].GetString("name"), "J3M Fabrication LLC")
	}

	estCol, _ := app.FindCollectionByNameOrId("estimations")
	ests, err := app.FindAllRecords(estCol)
	if err != nil {
		t.Fatalf("query estimations error: %v", err)
	}
	if len(ests) != 1 {
		t.Fatalf("expected 1 estimation, got %d", len(ests))
	}
	if ests[0].GetString("quotation_no") != "TPS_26001" {
		t.Errorf("quotation_no = %q, want %q", ests[0].GetString("quotation_no"), "TPS_26001")
	}

	clientsCol, _ := app.FindCollectionByNameOrId("clients")
	clients, _ := app.FindAllRecords(clientsCol)
	if len(clients) != 1 {
		t.Fatalf("expected 1 client, got %d", len(clients))
	}
	if ests[0].GetString("client") != clients[0].Id {
		t.Errorf("estimation client = %q, want %q", ests[0].GetString("client"), clients[0].Id)
	}

	parts, _ := app.FindRecordsByFilter("estimation_parts", "estimation = {:id}", "sort_order", 0, 0, map[string]any{"id": ests[0].Id})
	if len(parts) != 3 {
		t.Errorf("expected 3 parts, got %d", len(parts))
	}
}

func TestSeed_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("first Seed() error: %v", err)
	}
	if err := collections.Seed(app); err != nil {
		t.Fatalf("second Seed() error: %v", err)
	}

	estCol, _ := app.FindCollectionByNameOrId("estimations")
	ests, _ := app.FindAllRecords(estCol)
	if len(ests) != 1 {
		t.Errorf("expected 1 estimation after idempotent seed, got %d", len(ests))
	}

	partsCol, _ := app.FindCollectionByNameOrId("estimation_parts")
	parts, _ := app.FindAllRecords(partsCol)
	if len(parts) != 3 {
		t.Errorf("expected 3 parts after idempotent seed, got %d", len(parts))
	}
}

func TestSeed_KeepsExistingCompany(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestCompany(t, app, "Acme Machining")

	if err := collections.Seed(app); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	companyCol, _ := app.FindCollectionByNameOrId("company")
	companies, _ := app.FindAllRecords(companyCol)
	if len(companies) != 1 {
		t.Fatalf("expected 1 company, got %d", len(companies))
	}
	if got := companies[0].GetString("name"); got != "Acme Machining" {
		t.Errorf("company name = %q, want %q", got, "Acme Machining")
	}
}
