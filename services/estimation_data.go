package services

import (
	"fmt"
	"log"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// AutoNumberPlaceholder is what the form shows before a number is assigned.
const AutoNumberPlaceholder = "Auto Generated in sequence"

// BuildEstimationForm assembles the form state of an estimation from its
// record and its parts. An estimation without parts gets one blank part.
func BuildEstimationForm(app *pocketbase.PocketBase, id string) (EstimationForm, error) {
	est, err := app.FindRecordById("estimations", id)
	if err != nil {
		return EstimationForm{}, fmt.Errorf("estimation not found: %w", err)
	}

	form := NewEstimationForm()
	form.ID = est.Id
	form.Basic = BasicDetails{
		ClientName:     est.GetString("client_name"),
		BillingAddress: est.GetString("billing_address"),
		ShipToAddress:  est.GetString("ship_to_address"),
		SameAsBilling:  est.GetBool("same_as_billing"),
		POC:            est.GetString("poc_name"),
		POCPhone:       est.GetString("poc_phone"),
		PreparedBy:     est.GetString("prepared_by"),
		POCDesignation: est.GetString("poc_designation"),
		POCEmail:       est.GetString("poc_email"),
		ProjectName:    est.GetString("project_name"),
		Revision:       orPlaceholder(est.GetString("revision"), "A"),
	}

	// Fill client fields left blank on the estimation from the linked client.
	if clientID := est.GetString("client"); clientID != "" {
		if c, err := app.FindRecordById("clients", clientID); err == nil {
			form.Basic.ClientName = orPlaceholder(form.Basic.ClientName, c.GetString("name"))
			form.Basic.BillingAddress = orPlaceholder(form.Basic.BillingAddress, c.GetString("address"))
			form.Basic.POC = orPlaceholder(form.Basic.POC, c.GetString("poc"))
			form.Basic.POCPhone = orPlaceholder(form.Basic.POCPhone, c.GetString("phone"))
		} else {
			log.Printf("estimation_export: could not find client %s: %v", clientID, err)
		}
	}

	form.Quotation = QuotationDetails{
		Number:       assignedNumber(est.GetString("quotation_no")),
		Date:         est.GetString("quotation_date"),
		ValidTill:    est.GetString("quotation_valid_till"),
		DeliveryTime: est.GetString("delivery_time"),
		PaymentTerms: est.GetString("payment_terms"),
		Shipment:     orPlaceholder(est.GetString("shipment"), form.Quotation.Shipment),
		Note:         est.GetString("quotation_note"),
	}
	form.WorkOrder = WorkOrderDetails{
		CustomerPONo: est.GetString("customer_po_no"),
		Number:       assignedNumber(est.GetString("work_order_no")),
		DeliveryTime: est.GetString("wo_delivery_time"),
		Note:         est.GetString("wo_note"),
	}

	var checks []CertCheck
	if raw := est.GetString("cert_checks"); raw != "" && raw != "null" {
		if err := est.UnmarshalJSONField("cert_checks", &checks); err != nil {
			log.Printf("estimation_export: invalid cert_checks on %s: %v", id, err)
		}
	}
	if len(checks) > 0 {
		form.Certificate.Checks = checks
	}
	if note := est.GetString("cert_note"); note != "" {
		form.Certificate.Note = note
	}

	partRecords, err := app.FindRecordsByFilter(
		"estimation_parts",
		"estimation = {:id}",
		"sort_order",
		0,
		0,
		map[string]any{"id": id},
	)
	if err != nil {
		log.Printf("estimation_export: could not fetch parts for %s: %v", id, err)
		partRecords = nil
	}
	if len(partRecords) > 0 {
		form.Parts = make([]Part, len(partRecords))
		for i, r := range partRecords {
			form.Parts[i] = partFromRecord(r)
		}
	}

	return form, nil
}

// SaveEstimationForm writes the form back to its estimation record and
// replaces the stored parts with form.Parts, in order. Assigned numbers are
// left untouched.
func SaveEstimationForm(app *pocketbase.PocketBase, form EstimationForm) error {
	est, err := app.FindRecordById("estimations", form.ID)
	if err != nil {
		return fmt.Errorf("estimation not found: %w", err)
	}
	partsCol, err := app.FindCollectionByNameOrId("estimation_parts")
	if err != nil {
		return fmt.Errorf("estimation_parts collection not found: %w", err)
	}

	b := form.Basic
	est.Set("client_name", b.ClientName)
	est.Set("billing_address", b.BillingAddress)
	est.Set("ship_to_address", b.ShipToAddress)
	est.Set("same_as_billing", b.SameAsBilling)
	est.Set("poc_name", b.POC)
	est.Set("poc_phone", b.POCPhone)
	est.Set("prepared_by", b.PreparedBy)
	est.Set("poc_designation", b.POCDesignation)
	est.Set("poc_email", b.POCEmail)
	est.Set("project_name", b.ProjectName)
	est.Set("revision", b.Revision)

	q := form.Quotation
	est.Set("quotation_date", q.Date)
	est.Set("quotation_valid_till", q.ValidTill)
	est.Set("delivery_time", q.DeliveryTime)
	est.Set("payment_terms", q.PaymentTerms)
	est.Set("shipment", q.Shipment)
	est.Set("quotation_note", q.Note)

	est.Set("customer_po_no", form.WorkOrder.CustomerPONo)
	est.Set("wo_delivery_time", form.WorkOrder.DeliveryTime)
	est.Set("wo_note", form.WorkOrder.Note)
	est.Set("cert_checks", form.Certificate.Checks)
	est.Set("cert_note", form.Certificate.Note)

	return app.RunInTransaction(func(txApp core.App) error {
		if err := txApp.Save(est); err != nil {
			return fmt.Errorf("save estimation: %w", err)
		}

		existing, err := txApp.FindRecordsByFilter(partsCol, "estimation = {:id}", "", 0, 0, map[string]any{"id": form.ID})
		if err != nil {
			existing = nil
		}
		byID := make(map[string]*core.Record, len(existing))
		for _, r := range existing {
			byID[r.Id] = r
		}

		keep := make(map[string]bool, len(form.Parts))
		for i, p := range form.Parts {
			r, ok := byID[p.ID]
			if !ok {
				r = core.NewRecord(partsCol)
				r.Set("estimation", form.ID)
			}
			setPartFields(r, p, i+1)
			if err := txApp.Save(r); err != nil {
				return fmt.Errorf("save part %d: %w", i+1, err)
			}
			keep[r.Id] = true
		}

		for _, r := range existing {
			if keep[r.Id] {
				continue
			}
			if err := txApp.Delete(r); err != nil {
				return fmt.Errorf("delete part %s: %w", r.Id, err)
			}
		}
		return nil
	})
}

func setPartFields(r *core.Record, p Part, sortOrder int) {
	r.Set("sort_order", sortOrder)
	r.Set("job_description", p.JobDescription)
	r.Set("material", p.Material)
	r.Set("heat_number", p.HeatNumber)
	r.Set("drawing_given_by_client", p.DrawingGivenByClient)
	r.Set("material_grade", p.MaterialGrade)
	r.Set("quantity", p.Quantity)
	r.Set("drawing_part_no", p.DrawingPartNo)
	r.Set("raw_material_supplied_by", p.RawMaterialSuppliedBy)
	r.Set("job_cost_unit", p.JobCostUnit)
	r.Set("raw_material_dimension", p.RawMaterialDimension)
}

// CreateEstimation stores a fresh estimation with the form defaults and one
// blank part, and returns its id.
func CreateEstimation(app *pocketbase.PocketBase, projectName string) (string, error) {
	col, err := app.FindCollectionByNameOrId("estimations")
	if err != nil {
		return "", fmt.Errorf("estimations collection not found: %w", err)
	}
	est := core.NewRecord(col)
	est.Set("project_name", projectName)
	est.Set("status", "draft")
	if err := app.Save(est); err != nil {
		return "", fmt.Errorf("save estimation: %w", err)
	}

	form := NewEstimationForm()
	form.ID = est.Id
	form.Basic.ProjectName = projectName
	if err := SaveEstimationForm(app, form); err != nil {
		return "", err
	}
	return est.Id, nil
}

func partFromRecord(r *core.Record) Part {
	return Part{
		ID:                    r.Id,
		JobDescription:        r.GetString("job_description"),
		Material:              r.GetString("material"),
		HeatNumber:            r.GetString("heat_number"),
		DrawingGivenByClient:  r.GetString("drawing_given_by_client"),
		MaterialGrade:         r.GetString("material_grade"),
		Quantity:              r.GetString("quantity"),
		DrawingPartNo:         r.GetString("drawing_part_no"),
		RawMaterialSuppliedBy: r.GetString("raw_material_supplied_by"),
		JobCostUnit:           r.GetString("job_cost_unit"),
		RawMaterialDimension:  r.GetString("raw_material_dimension"),
	}
}

func assignedNumber(n string) string {
	if n == AutoNumberPlaceholder {
		return ""
	}
	return n
}

// LoadIssuer returns the issuer from the company record, falling back to the
// configured values for every empty field.
func LoadIssuer(app *pocketbase.PocketBase, cfg QuotationConfig) Issuer {
	issuer := cfg.Issuer

	col, err := app.FindCollectionByNameOrId("company")
	if err != nil {
		return issuer
	}
	records, err := app.FindAllRecords(col)
	if err != nil || len(records) == 0 {
		return issuer
	}

	c := records[0]
	return Issuer{
		Name:    orPlaceholder(c.GetString("name"), issuer.Name),
		Address: orPlaceholder(c.GetString("address"), issuer.Address),
		Email:   orPlaceholder(c.GetString("email"), issuer.Email),
		Phone:   orPlaceholder(c.GetString("phone"), issuer.Phone),
	}
}

// EnsureQuotationNumber assigns and saves the next proposal number when the
// estimation has none yet. The existing or new number is returned.
func EnsureQuotationNumber(app *pocketbase.PocketBase, id string, now time.Time) (string, error) {
	return ensureNumber(app, id, "quotation_no", now, GenerateProposalNumber)
}

// EnsureWorkOrderNumber is EnsureQuotationNumber for the work order number.
func EnsureWorkOrderNumber(app *pocketbase.PocketBase, id string, now time.Time) (string, error) {
	return ensureNumber(app, id, "work_order_no", now, GenerateWorkOrderNumber)
}

// ensureNumber reads, numbers and saves the estimation in one transaction so
// two first exports cannot both take the same sequence.
func ensureNumber(app *pocketbase.PocketBase, id, field string, now time.Time, next func(core.App, time.Time) (string, error)) (string, error) {
	var number string
	err := app.RunInTransaction(func(txApp core.App) error {
		est, err := txApp.FindRecordById("estimations", id)
		if err != nil {
			return fmt.Errorf("estimation not found: %w", err)
		}
		if n := assignedNumber(est.GetString(field)); n != "" {
			number = n
			return nil
		}

		n, err := next(txApp, now)
		if err != nil {
			return err
		}
		est.Set(field, n)
		if err := txApp.Save(est); err != nil {
			return fmt.Errorf("save %s: %w", field, err)
		}
		number = n
		return nil
	})
	if err != nil {
		return "", err
	}
	return number, nil
}
