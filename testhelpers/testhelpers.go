// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"forgeestimates/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestCompany creates the issuer company record.
func CreateTestCompany(t *testing.T, app *pocketbase.PocketBase, name string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("company")
	if err != nil {
		t.Fatalf("failed to find company collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("address", "Tulsa, Oklahoma, US")
	record.Set("email", "quotes@example.com")
	record.Set("phone", "918-555-0100")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test company: %v", err)
	}

	return record
}

// CreateTestEstimation creates an estimation record with the given project
// and client names and returns it.
func CreateTestEstimation(t *testing.T, app *pocketbase.PocketBase, projectName, clientName string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("estimations")
	if err != nil {
		t.Fatalf("failed to find estimations collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("project_name", projectName)
	record.Set("client_name", clientName)
	record.Set("poc_name", "Test Contact")
	record.Set("poc_phone", "555-0100")
	record.Set("prepared_by", "Test Estimator")
	record.Set("poc_email", "estimator@example.com")
	record.Set("revision", "A")
	record.Set("shipment", "Pickup / Courier")
	record.Set("quotation_note", "1. 100% inspection")
	record.Set("status", "draft")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test estimation: %v", err)
	}

	return record
}

// CreateTestPart creates an estimation part record.
func CreateTestPart(t *testing.T, app *pocketbase.PocketBase, estimationID string, sortOrder int, description, quantity, unitCost string) *core.Record {
	t.Helper()
	col, err := app.FindCollectionByNameOrId("estimation_parts")
	if err != nil {
		t.Fatalf("failed to find estimation_parts collection: %v", err)
	}
	record := core.NewRecord(col)
	record.Set("estimation", estimationID)
	record.Set("sort_order", sortOrder)
	record.Set("job_description", description)
	record.Set("material", "Aluminium 6061")
	record.Set("drawing_given_by_client", "Yes")
	record.Set("raw_material_supplied_by", "Client")
	record.Set("quantity", quantity)
	record.Set("job_cost_unit", unitCost)
	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test part: %v", err)
	}
	return record
}

// AssertHTMLContains checks that body contains all specified fragments.
func AssertHTMLContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected HTML to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
