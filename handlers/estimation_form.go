package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"forgeestimates/services"
)

// partFields are the per-row inputs of the parts table, in column order.
var partFields = []string{
	"part_id",
	"job_description",
	"material",
	"material_grade",
	"heat_number",
	"drawing_part_no",
	"drawing_given_by_client",
	"raw_material_supplied_by",
	"raw_material_dimension",
	"quantity",
	"job_cost_unit",
}

// formFromRequest overlays the posted estimation form onto base. Scalar
// fields absent from the post keep their base value. Parts and certificate
// checks are replaced as a whole when their rows are posted.
func formFromRequest(r *http.Request, base services.EstimationForm) (services.EstimationForm, error) {
	if err := r.ParseForm(); err != nil {
		return base, err
	}
	pf := r.PostForm

	str := func(key, cur string) string {
		if vals, ok := pf[key]; ok && len(vals) > 0 {
			return strings.TrimSpace(vals[0])
		}
		return cur
	}

	b := base.Basic
	// An unchecked checkbox is not posted, so its absence only counts when
	// the rest of the basic section was submitted.
	if _, ok := pf["project_name"]; ok {
		b.SameAsBilling = pf.Get("same_as_billing") != ""
	}
	b.ClientName = str("client_name", b.ClientName)
	b.ProjectName = str("project_name", b.ProjectName)
	b.BillingAddress = str("billing_address", b.BillingAddress)
	b.ShipToAddress = str("ship_to_address", b.ShipToAddress)
	b.POC = str("poc_name", b.POC)
	b.POCPhone = str("poc_phone", b.POCPhone)
	b.PreparedBy = str("prepared_by", b.PreparedBy)
	b.POCDesignation = str("poc_designation", b.POCDesignation)
	b.POCEmail = str("poc_email", b.POCEmail)
	b.Revision = str("revision", b.Revision)
	form := base.WithBasic(b)

	q := form.Quotation
	q.Date = str("quotation_date", q.Date)
	q.ValidTill = str("quotation_valid_till", q.ValidTill)
	q.DeliveryTime = str("delivery_time", q.DeliveryTime)
	q.PaymentTerms = str("payment_terms", q.PaymentTerms)
	q.Shipment = str("shipment", q.Shipment)
	q.Note = str("quotation_note", q.Note)
	form = form.WithQuotation(q)

	wo := form.WorkOrder
	wo.CustomerPONo = str("customer_po_no", wo.CustomerPONo)
	wo.DeliveryTime = str("wo_delivery_time", wo.DeliveryTime)
	wo.Note = str("wo_note", wo.Note)
	form = form.WithWorkOrder(wo)

	parts, err := partsFromForm(pf)
	if err != nil {
		return base, err
	}
	if parts != nil {
		form = form.WithParts(parts)
	}

	cert := form.Certificate
	labels, values := pf["cert_check_label"], pf["cert_check_value"]
	if len(labels) != len(values) {
		return base, fmt.Errorf("%d certificate labels for %d values", len(labels), len(values))
	}
	if len(labels) > 0 {
		cert.Checks = make([]services.CertCheck, len(labels))
		for i := range labels {
			cert.Checks[i] = services.CertCheck{Label: labels[i], Value: values[i]}
		}
	}
	cert.Note = str("cert_note", cert.Note)
	form = form.WithCertificate(cert)

	return form, nil
}

// partsFromForm reads the parts table by row index. It returns nil when no
// part rows were posted.
func partsFromForm(pf map[string][]string) ([]services.Part, error) {
	rows := 0
	for _, f := range partFields {
		if n := len(pf[f]); n > rows {
			rows = n
		}
	}
	if rows == 0 {
		return nil, nil
	}
	for _, f := range partFields {
		if n := len(pf[f]); n != 0 && n != rows {
			return nil, fmt.Errorf("part column %s has %d rows, want %d", f, n, rows)
		}
	}

	at := func(key string, i int) string {
		if vals := pf[key]; i < len(vals) {
			return strings.TrimSpace(vals[i])
		}
		return ""
	}
	parts := make([]services.Part, rows)
	for i := range parts {
		parts[i] = services.Part{
			ID:                    at("part_id", i),
			JobDescription:        at("job_description", i),
			Material:              at("material", i),
			MaterialGrade:         at("material_grade", i),
			HeatNumber:            at("heat_number", i),
			DrawingPartNo:         at("drawing_part_no", i),
			DrawingGivenByClient:  at("drawing_given_by_client", i),
			RawMaterialSuppliedBy: at("raw_material_supplied_by", i),
			RawMaterialDimension:  at("raw_material_dimension", i),
			Quantity:              at("quantity", i),
			JobCostUnit:           at("job_cost_unit", i),
		}
	}
	return parts, nil
}
