package services

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// JobType identifies an entry in the job catalog.
type JobType string

const (
	JobCustom             JobType = "custom"
	JobCNCMilling         JobType = "cnc-milling"
	JobCNCTurning         JobType = "cnc-turning"
	JobLaserCutting       JobType = "laser-cutting"
	JobTurningLathe       JobType = "turning-lathe"
	JobFabricationWelding JobType = "fabrication-welding"
	JobSurfaceTreatment   JobType = "surface-treatment"
)

// JobTypeInfo is a catalog entry shown in the "Add Jobs" picker.
type JobTypeInfo struct {
	Key   JobType
	Label string
}

// JobTypes is the catalog in display order.
var JobTypes = []JobTypeInfo{
	{Key: JobCustom, Label: "Custom Part"},
	{Key: JobCNCMilling, Label: "CNC Milling Job pricing calculator"},
	{Key: JobCNCTurning, Label: "CNC Turning Job pricing calculator"},
	{Key: JobLaserCutting, Label: "Laser Cutting Job pricing calculator"},
	{Key: JobTurningLathe, Label: "Turning / Lathe Module Job pricing calculator"},
	{Key: JobFabricationWelding, Label: "Fabrication / Welding Module Job pricing calculator"},
	{Key: JobSurfaceTreatment, Label: "Surface Treatment / Heat Treatment Job pricing calculator"},
}

// PartDescription is the job description a new part of this type starts with.
// Custom parts start blank.
func (j JobTypeInfo) PartDescription() string {
	if j.Key == JobCustom {
		return ""
	}
	return strings.TrimSuffix(j.Label, " Job pricing calculator")
}

// BasicDetails are the client and seller columns of the estimation form.
type BasicDetails struct {
	ClientName     string
	BillingAddress string
	ShipToAddress  string
	SameAsBilling  bool
	POC            string
	POCPhone       string
	PreparedBy     string
	POCDesignation string
	POCEmail       string
	ProjectName    string
	Revision       string
}

// Part is one custom part row. Numeric fields hold the text as typed.
type Part struct {
	ID                    string
	JobDescription        string
	Material              string
	HeatNumber            string
	DrawingGivenByClient  string
	MaterialGrade         string
	Quantity              string
	DrawingPartNo         string
	RawMaterialSuppliedBy string
	JobCostUnit           string
	RawMaterialDimension  string
}

// NewPart returns a blank part with the form defaults.
func NewPart() Part {
	return Part{
		DrawingGivenByClient:  "Yes",
		RawMaterialSuppliedBy: "Client",
	}
}

// UnitCost parses JobCostUnit, reading a leading number like a browser
// number field does. Unparseable text is 0.
func (p Part) UnitCost() float64 {
	m := leadingFloat.FindString(strings.TrimSpace(p.JobCostUnit))
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return v
}

// Qty parses Quantity as a leading integer. Missing, unparseable, or zero
// quantities count as 1.
func (p Part) Qty() int {
	m := leadingInt.FindString(strings.TrimSpace(p.Quantity))
	v, err := strconv.Atoi(m)
	if err != nil || v == 0 {
		return 1
	}
	return v
}

// Total is UnitCost * Qty.
func (p Part) Total() float64 {
	return p.UnitCost() * float64(p.Qty())
}

var (
	leadingFloat = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)
	leadingInt   = regexp.MustCompile(`^[+-]?\d+`)
)

// QuotationDetails are the quotation section fields.
type QuotationDetails struct {
	Number       string
	Date         string
	ValidTill    string
	DeliveryTime string
	PaymentTerms string
	Shipment     string
	Note         string
}

// WorkOrderDetails are the work order section fields.
type WorkOrderDetails struct {
	CustomerPONo string
	Number       string
	DeliveryTime string
	Note         string
}

// CertCheck is one inspection line of the certificate of conformance.
type CertCheck struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// CertificateDetails are the certificate section fields.
type CertificateDetails struct {
	Checks []CertCheck
	Note   string
}

// Shipment options offered by the form.
var ShipmentOptions = []string{"Pickup / Courier", "Pickup", "Courier"}

// DefaultCertChecks are the inspection lines of a new estimation.
var DefaultCertChecks = []CertCheck{
	{Label: "Dimensional Verification", Value: "Yes"},
	{Label: "Visual Inspection", Value: "Yes"},
	{Label: "Hardness Testing", Value: "No"},
	{Label: "Non - Destructive Examination", Value: "No"},
	{Label: "Pressure Testing", Value: "No"},
	{Label: "MTR", Value: "Yes"},
	{Label: "Dim. Inspection Report", Value: "No"},
}

// DefaultCertNote is the certification statement of a new estimation.
const DefaultCertNote = "This report is to certify that the above parts have been:\n" +
	"• Manufactured in accordance with all in-house policies and procedures and in compliance with the customer's requirements and/or specifications. (Procedures available upon request)\n" +
	"• Inspected in accordance with our Inspection and Test procedure and found to be acceptable."

// EstimationForm is the full editable state of one estimation. It is a value:
// every edit returns a new form and leaves the receiver untouched.
type EstimationForm struct {
	ID          string
	Basic       BasicDetails
	Parts       []Part
	Quotation   QuotationDetails
	WorkOrder   WorkOrderDetails
	Certificate CertificateDetails
}

// NewEstimationForm returns the state of a fresh estimation: one blank part
// and the section defaults.
func NewEstimationForm() EstimationForm {
	return EstimationForm{
		Basic: BasicDetails{Revision: "A"},
		Parts: []Part{NewPart()},
		Quotation: QuotationDetails{
			Shipment: ShipmentOptions[0],
			Note:     "1. 100% inspection",
		},
		Certificate: CertificateDetails{
			Checks: append([]CertCheck(nil), DefaultCertChecks...),
			Note:   DefaultCertNote,
		},
	}
}

func (f EstimationForm) clone() EstimationForm {
	f.Parts = append([]Part(nil), f.Parts...)
	f.Certificate.Checks = append([]CertCheck(nil), f.Certificate.Checks...)
	return f
}

func (f EstimationForm) WithBasic(b BasicDetails) EstimationForm {
	f = f.clone()
	f.Basic = b
	return f
}

func (f EstimationForm) WithQuotation(q QuotationDetails) EstimationForm {
	f = f.clone()
	f.Quotation = q
	return f
}

func (f EstimationForm) WithWorkOrder(w WorkOrderDetails) EstimationForm {
	f = f.clone()
	f.WorkOrder = w
	return f
}

func (f EstimationForm) WithCertificate(c CertificateDetails) EstimationForm {
	f = f.clone()
	f.Certificate = c
	f.Certificate.Checks = append([]CertCheck(nil), c.Checks...)
	return f
}

// WithParts replaces all parts. An empty list leaves one blank part.
func (f EstimationForm) WithParts(parts []Part) EstimationForm {
	f = f.clone()
	if len(parts) == 0 {
		f.Parts = []Part{NewPart()}
		return f
	}
	f.Parts = append([]Part(nil), parts...)
	return f
}

// AddPart appends a blank part.
func (f EstimationForm) AddPart() EstimationForm {
	f = f.clone()
	f.Parts = append(f.Parts, NewPart())
	return f
}

// UpdatePart replaces the part at index i. Out of range indexes are ignored.
func (f EstimationForm) UpdatePart(i int, p Part) EstimationForm {
	if i < 0 || i >= len(f.Parts) {
		return f
	}
	f = f.clone()
	f.Parts[i] = p
	return f
}

// RemovePart drops the part at index i. The last remaining part is never removed.
func (f EstimationForm) RemovePart(i int) EstimationForm {
	if len(f.Parts) <= 1 || i < 0 || i >= len(f.Parts) {
		return f
	}
	parts := make([]Part, 0, len(f.Parts)-1)
	parts = append(parts, f.Parts[:i]...)
	parts = append(parts, f.Parts[i+1:]...)
	f = f.clone()
	f.Parts = parts
	return f
}

// DuplicatePart appends a copy of the part at index i. The copy is unsaved.
func (f EstimationForm) DuplicatePart(i int) EstimationForm {
	if i < 0 || i >= len(f.Parts) {
		return f
	}
	p := f.Parts[i]
	p.ID = ""
	f = f.clone()
	f.Parts = append(f.Parts, p)
	return f
}

// AddJobs appends counts[key] new parts per catalog entry, in catalog order.
func (f EstimationForm) AddJobs(counts map[JobType]int) EstimationForm {
	f = f.clone()
	for _, jt := range JobTypes {
		for n := 0; n < counts[jt.Key]; n++ {
			p := NewPart()
			p.JobDescription = jt.PartDescription()
			f.Parts = append(f.Parts, p)
		}
	}
	return f
}

// GrandTotal sums the part totals.
func (f EstimationForm) GrandTotal() float64 {
	var total float64
	for _, p := range f.Parts {
		total += p.Total()
	}
	return total
}

// NoteLines splits the quotation note into trimmed, non-empty lines.
func (f EstimationForm) NoteLines() []string {
	var lines []string
	for _, l := range strings.Split(strings.ReplaceAll(f.Quotation.Note, "\r\n", "\n"), "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

// QuotationRecord maps the form onto the compositor input. The seller column
// supplies the preparer contact; issuer supplies the company identity.
func (f EstimationForm) QuotationRecord(issuer Issuer, now time.Time) QuotationRecord {
	items := make([]LineItem, len(f.Parts))
	for i, p := range f.Parts {
		desc := p.JobDescription
		if desc == "" {
			desc = "Item - " + strconv.Itoa(i+1)
		}
		items[i] = LineItem{
			Description: desc,
			UnitPrice:   p.UnitCost(),
			Quantity:    p.Qty(),
			TotalPrice:  p.Total(),
		}
	}

	date := normalizeDate(f.Quotation.Date)
	if date == "" {
		date = formatProposalDate(now)
	}
	valid := normalizeDate(f.Quotation.ValidTill)
	if valid == "" {
		valid = formatProposalDate(now.AddDate(0, 0, validityDays))
	}

	email := f.Basic.POCEmail
	if email == "" {
		email = issuer.Email
	}

	return QuotationRecord{
		Client: ClientIdentity{
			Name:           f.Basic.ClientName,
			PointOfContact: f.Basic.POC,
			Phone:          f.Basic.POCPhone,
		},
		Preparer: PreparerIdentity{
			CompanyName:    issuer.Name,
			PointOfContact: f.Basic.PreparedBy,
			Email:          email,
			Phone:          issuer.Phone,
		},
		Proposal: Proposal{
			Number:       f.Quotation.Number,
			Date:         date,
			ProjectName:  f.Basic.ProjectName,
			ValidThrough: valid,
		},
		LineItems: items,
		Notes:     f.NoteLines(),
	}
}

// WorkOrderData maps the form onto the work order document.
func (f EstimationForm) WorkOrderData(issuer Issuer, now time.Time) WorkOrderData {
	return WorkOrderData{
		Issuer:       issuer,
		Number:       f.WorkOrder.Number,
		CustomerPONo: f.WorkOrder.CustomerPONo,
		QuotationNo:  f.Quotation.Number,
		Date:         formatProposalDate(now),
		DeliveryTime: f.WorkOrder.DeliveryTime,
		ClientName:   f.Basic.ClientName,
		ProjectName:  f.Basic.ProjectName,
		Revision:     f.Basic.Revision,
		ShipTo:       f.shipTo(),
		Parts:        f.Parts,
		Note:         f.WorkOrder.Note,
	}
}

// CertificateData maps the form onto the certificate of conformance.
func (f EstimationForm) CertificateData(issuer Issuer, now time.Time) CertificateData {
	return CertificateData{
		Issuer:       issuer,
		WorkOrderNo:  f.WorkOrder.Number,
		CustomerPONo: f.WorkOrder.CustomerPONo,
		Date:         formatProposalDate(now),
		ClientName:   f.Basic.ClientName,
		ProjectName:  f.Basic.ProjectName,
		Parts:        f.Parts,
		Checks:       f.Certificate.Checks,
		Note:         f.Certificate.Note,
		PreparedBy:   f.Basic.PreparedBy,
	}
}

func (f EstimationForm) shipTo() string {
	if f.Basic.SameAsBilling {
		return f.Basic.BillingAddress
	}
	return f.Basic.ShipToAddress
}
