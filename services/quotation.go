package services

import (
	"fmt"
	"time"
)

// ClientIdentity is the "To" block of a quotation.
type ClientIdentity struct {
	Name           string
	PointOfContact string
	Email          string
	Phone          string
}

// PreparerIdentity is the "Prepared By" block of a quotation.
type PreparerIdentity struct {
	CompanyName    string
	PointOfContact string
	Email          string
	Phone          string
}

// Issuer is the company issuing every document.
type Issuer struct {
	Name    string
	Address string
	Email   string
	Phone   string
}

// Proposal holds the quotation metadata. Dates are MM/DD/YYYY strings.
type Proposal struct {
	Number       string
	Date         string
	ProjectName  string
	ValidThrough string
}

// LineItem is one priced row. TotalPrice is supplied by the producer and is
// expected to equal UnitPrice * Quantity; it is summed, never recomputed.
type LineItem struct {
	Description string
	UnitPrice   float64
	Quantity    int
	TotalPrice  float64
}

// ScheduleEntry is a delivery milestone.
type ScheduleEntry struct {
	Description string
	Date        string
}

// QuotationRecord is the immutable input of one quotation generation.
type QuotationRecord struct {
	Client          ClientIdentity
	Preparer        PreparerIdentity
	Proposal        Proposal
	LineItems       []LineItem
	ScheduleEntries []ScheduleEntry
	Notes           []string
}

// validityDays is how long a proposal stays valid when no date is given.
const validityDays = 15

// DefaultScheduleEntries is printed when a record carries no schedule.
var DefaultScheduleEntries = []ScheduleEntry{
	{Description: "Purchase order receipt and order acknowledgement", Date: "PO + 2 days"},
	{Description: "Drawing submission for client approval", Date: "PO + 1 week"},
	{Description: "Raw material procurement", Date: "Approval + 2 weeks"},
	{Description: "Machining and fabrication", Date: "Approval + 4 weeks"},
	{Description: "Final inspection and documentation", Date: "Approval + 5 weeks"},
	{Description: "Packing and dispatch", Date: "Approval + 6 weeks"},
}

// DefaultNotes is printed when a record carries no notes.
var DefaultNotes = []string{
	"· Commodity Price Escalation Clause: In the event of an increase in the costs of copper and sheet metal exceeding 8% from one year to the next, an additional charge will be applied. This additional charge, or \"adder,\" will be calculated based on the percentage increase above the 8% threshold.",
	"· Freight Not Included.",
	"· Every day not approved by client delays ship date by a minimum of one day.",
	"· Send purchase orders to email: TPS-SalesPM@TierPowerSystems.com",
}

// Placeholder strings substituted for empty identity and proposal fields.
const (
	placeholderClientName    = "(Company Name Here)"
	placeholderClientPOC     = "(Contact Person Name)"
	placeholderNA            = "(N/A)"
	placeholderPreparerName  = "J3M Fabrication LLC"
	placeholderPreparerPOC   = "TPS_Admin | Sales Engineer"
	placeholderPreparerEmail = "admin@j3mfabrication.com"
	placeholderPreparerPhone = "480-900-8401"
	placeholderProposalNo    = "TPS_23XXX"
	placeholderProject       = "PROJECT NAME"
	placeholderDate          = "MM/DD/YYYY"
)

// Normalized returns a copy with missing proposal dates set to now and
// now+15 days. Slices are shared; the record is never mutated.
func (r QuotationRecord) Normalized(now time.Time) QuotationRecord {
	if r.Proposal.Date == "" {
		r.Proposal.Date = formatProposalDate(now)
	}
	if r.Proposal.ValidThrough == "" {
		r.Proposal.ValidThrough = formatProposalDate(now.AddDate(0, 0, validityDays))
	}
	return r
}

// GrandTotal sums TotalPrice over all line items.
func (r QuotationRecord) GrandTotal() float64 {
	var total float64
	for _, item := range r.LineItems {
		total += item.TotalPrice
	}
	return total
}

// Schedule returns the record's entries or the built-in defaults.
func (r QuotationRecord) Schedule() []ScheduleEntry {
	if len(r.ScheduleEntries) == 0 {
		return DefaultScheduleEntries
	}
	return r.ScheduleEntries
}

// NoteLines returns the record's notes or the built-in defaults.
func (r QuotationRecord) NoteLines() []string {
	if len(r.Notes) == 0 {
		return DefaultNotes
	}
	return r.Notes
}

// withPlaceholders fills every empty identity/proposal field with its placeholder.
func (r QuotationRecord) withPlaceholders() QuotationRecord {
	r.Client = ClientIdentity{
		Name:           orPlaceholder(r.Client.Name, placeholderClientName),
		PointOfContact: orPlaceholder(r.Client.PointOfContact, placeholderClientPOC),
		Email:          orPlaceholder(r.Client.Email, placeholderNA),
		Phone:          orPlaceholder(r.Client.Phone, placeholderNA),
	}
	r.Preparer = PreparerIdentity{
		CompanyName:    orPlaceholder(r.Preparer.CompanyName, placeholderPreparerName),
		PointOfContact: orPlaceholder(r.Preparer.PointOfContact, placeholderPreparerPOC),
		Email:          orPlaceholder(r.Preparer.Email, placeholderPreparerEmail),
		Phone:          orPlaceholder(r.Preparer.Phone, placeholderPreparerPhone),
	}
	r.Proposal = Proposal{
		Number:       orPlaceholder(r.Proposal.Number, placeholderProposalNo),
		Date:         orPlaceholder(r.Proposal.Date, placeholderDate),
		ProjectName:  orPlaceholder(r.Proposal.ProjectName, placeholderProject),
		ValidThrough: orPlaceholder(r.Proposal.ValidThrough, placeholderDate),
	}
	return r
}

func orPlaceholder(v, placeholder string) string {
	if v == "" {
		return placeholder
	}
	return v
}

// documentFilename builds "<kind>_<number|Draft>_<YYYY-MM-DD>.pdf".
func documentFilename(kind, number string, generated time.Time) string {
	if number == "" {
		number = "Draft"
	}
	return fmt.Sprintf("%s_%s_%s.pdf", kind, number, generated.Format(time.DateOnly))
}

// QuotationFilename returns "Quotation_<proposalNo|Draft>_<YYYY-MM-DD>.pdf".
func QuotationFilename(proposalNo string, generated time.Time) string {
	return documentFilename("Quotation", proposalNo, generated)
}
