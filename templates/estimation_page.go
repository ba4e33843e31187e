package templates

import (
	"fmt"

	"forgeestimates/services"
)

// EstimationPageData is the model of the estimation editor.
type EstimationPageData struct {
	Form        services.EstimationForm
	Status      string
	QuotationNo string
	WorkOrderNo string
	PartTotals  []string
	GrandTotal  string
}

var certAnswers = []string{"Yes", "No"}

// JobCountField names the "Add Jobs" input for a catalog entry.
func JobCountField(key services.JobType) string {
	return "job_count_" + string(key)
}

func partAction(estimationID string, i int, op string) string {
	return fmt.Sprintf("/estimations/%s/parts/%d/%s", estimationID, i, op)
}

type partCell struct {
	Name  string
	Value string
}

// partCells lists the editable columns of a part row in display order.
func partCells(p services.Part) []partCell {
	return []partCell{
		{"job_description", p.JobDescription},
		{"material", p.Material},
		{"material_grade", p.MaterialGrade},
		{"heat_number", p.HeatNumber},
		{"drawing_part_no", p.DrawingPartNo},
		{"drawing_given_by_client", p.DrawingGivenByClient},
		{"raw_material_supplied_by", p.RawMaterialSuppliedBy},
		{"raw_material_dimension", p.RawMaterialDimension},
		{"quantity", p.Quantity},
		{"job_cost_unit", p.JobCostUnit},
	}
}

func partTotal(totals []string, i int) string {
	if i < len(totals) {
		return totals[i]
	}
	return ""
}

func pageTitle(data EstimationPageData) string {
	if data.Form.Basic.ProjectName == "" {
		return "Estimation"
	}
	return data.Form.Basic.ProjectName
}
