package templates

// EstimationListItem is one row of the estimation list.
type EstimationListItem struct {
	ID               string
	ProjectName      string
	ClientName       string
	QuotationNo      string
	Status           string
	StatusBadgeClass string
	PartCount        int
	GrandTotal       string
	CreatedDate      string
}

// EstimationListData is the model of the estimation list page.
type EstimationListData struct {
	Items      []EstimationListItem
	TotalCount int
}
