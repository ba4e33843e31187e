package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// ── Definition structs ───────────────────────────────────────────────────

type partDef struct {
	jobDescription string
	material       string
	materialGrade  string
	drawingPartNo  string
	heatNumber     string
	quantity       string
	jobCostUnit    string
	dimension      string
	suppliedBy     string
}

type estimationDef struct {
	projectName  string
	clientName   string
	billing      string
	pocName      string
	pocPhone     string
	preparedBy   string
	pocEmail     string
	quotationNo  string
	deliveryTime string
	paymentTerms string
	note         string
	parts        []partDef
}

// Seed inserts a demo company, client, project and estimation when the
// estimations collection is empty.
func Seed(app *pocketbase.PocketBase) error {
	// ── idempotency: skip if estimations already exist ───────────────
	estimationsCol, err := app.FindCollectionByNameOrId("estimations")
	if err != nil {
		return fmt.Errorf("seed: could not find estimations collection: %w", err)
	}
	existing, err := app.FindAllRecords(estimationsCol)
	if err != nil {
		return fmt.Errorf("seed: could not query estimations: %w", err)
	}
	if len(existing) > 0 {
		return nil // already seeded
	}

	log.Println("seed: estimations collection is empty – inserting seed data …")

	companyCol, err := app.FindCollectionByNameOrId("company")
	if err != nil {
		return fmt.Errorf("seed: could not find company collection: %w", err)
	}
	clientsCol, err := app.FindCollectionByNameOrId("clients")
	if err != nil {
		return fmt.Errorf("seed: could not find clients collection: %w", err)
	}
	projectsCol, err := app.FindCollectionByNameOrId("projects")
	if err != nil {
		return fmt.Errorf("seed: could not find projects collection: %w", err)
	}
	partsCol, err := app.FindCollectionByNameOrId("estimation_parts")
	if err != nil {
		return fmt.Errorf("seed: could not find estimation_parts collection: %w", err)
	}

	// ── company (single record) ──────────────────────────────────────
	companies, err := app.FindAllRecords(companyCol)
	if err != nil {
		return fmt.Errorf("seed: could not query company: %w", err)
	}
	if len(companies) == 0 {
		c := core.NewRecord(companyCol)
		c.Set("name", "J3M Fabrication LLC")
		c.Set("address", "Houston, Texas, US")
		c.Set("email", "admin@j3mfabrication.com")
		c.Set("phone", "480-900-8401")
		if err := app.Save(c); err != nil {
			return fmt.Errorf("seed: save company: %w", err)
		}
	}

	// ── client ───────────────────────────────────────────────────────
	client := core.NewRecord(clientsCol)
	client.Set("name", "Gulf Coast Compressors Inc.")
	client.Set("client_id", "CL-0001")
	client.Set("address", "8450 Westpark Dr, Houston, TX 77063")
	client.Set("poc", "Maria Delgado")
	client.Set("phone", "713-555-0142")
	client.Set("email", "purchasing@gulfcoastcompressors.com")
	if err := app.Save(client); err != nil {
		return fmt.Errorf("seed: save client: %w", err)
	}

	def := estimationDef{
		projectName:  "Compressor Skid Brackets",
		clientName:   "Gulf Coast Compressors Inc.",
		billing:      "8450 Westpark Dr, Houston, TX 77063",
		pocName:      "Maria Delgado",
		pocPhone:     "713-555-0142",
		preparedBy:   "Sam Ortiz | Sales Engineer",
		pocEmail:     "sam.ortiz@j3mfabrication.com",
		quotationNo:  "TPS_26001",
		deliveryTime: "4 weeks ARO",
		paymentTerms: "Net 30",
		note:         "1. 100% inspection\n2. Material certs included",
		parts: []partDef{
			{jobDescription: "CNC Milling - mounting bracket", material: "Carbon steel plate", materialGrade: "A36", drawingPartNo: "GCC-BR-101", quantity: "24", jobCostUnit: "185.50", dimension: "12 x 8 x 0.75 in", suppliedBy: "J3M"},
			{jobDescription: "Laser Cutting - gusset", material: "Carbon steel sheet", materialGrade: "A36", drawingPartNo: "GCC-GS-220", quantity: "96", jobCostUnit: "14.25", dimension: "6 x 6 x 0.25 in", suppliedBy: "J3M"},
			{jobDescription: "Fabrication / Welding - skid frame", material: "W8x18 beam", materialGrade: "A992", drawingPartNo: "GCC-SK-001", heatNumber: "H-55120", quantity: "2", jobCostUnit: "4650", suppliedBy: "Client"},
		},
	}

	// ── project ──────────────────────────────────────────────────────
	project := core.NewRecord(projectsCol)
	project.Set("name", def.projectName)
	project.Set("quotation_no", def.quotationNo)
	project.Set("status", "active")
	project.Set("poc_phone", def.pocPhone)
	if err := app.Save(project); err != nil {
		return fmt.Errorf("seed: save project: %w", err)
	}

	// ── estimation + parts ───────────────────────────────────────────
	est := core.NewRecord(estimationsCol)
	est.Set("client", client.Id)
	est.Set("client_name", def.clientName)
	est.Set("billing_address", def.billing)
	est.Set("same_as_billing", true)
	est.Set("poc_name", def.pocName)
	est.Set("poc_phone", def.pocPhone)
	est.Set("prepared_by", def.preparedBy)
	est.Set("poc_email", def.pocEmail)
	est.Set("project_name", def.projectName)
	est.Set("revision", "A")
	est.Set("quotation_no", def.quotationNo)
	est.Set("delivery_time", def.deliveryTime)
	est.Set("payment_terms", def.paymentTerms)
	est.Set("shipment", "Pickup / Courier")
	est.Set("quotation_note", def.note)
	est.Set("status", "draft")
	if err := app.Save(est); err != nil {
		return fmt.Errorf("seed: save estimation: %w", err)
	}

	for i, p := range def.parts {
		r := core.NewRecord(partsCol)
		r.Set("estimation", est.Id)
		r.Set("sort_order", i+1)
		r.Set("job_description", p.jobDescription)
		r.Set("material", p.material)
		r.Set("material_grade", p.materialGrade)
		r.Set("drawing_part_no", p.drawingPartNo)
		r.Set("heat_number", p.heatNumber)
		r.Set("drawing_given_by_client", "Yes")
		r.Set("quantity", p.quantity)
		r.Set("job_cost_unit", p.jobCostUnit)
		r.Set("raw_material_dimension", p.dimension)
		r.Set("raw_material_supplied_by", p.suppliedBy)
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: save part %q: %w", p.jobDescription, err)
		}
	}

	log.Printf("seed: all seed data inserted successfully (1 client, 1 project, 1 estimation, %d parts)", len(def.parts))
	return nil
}
