package handlers

import (
	"log"
	"net/http"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"forgeestimates/services"
	"forgeestimates/templates"
)

func orAutoNumber(n string) string {
	if n == "" {
		return services.AutoNumberPlaceholder
	}
	return n
}

func buildEstimationPageData(form services.EstimationForm, status string, money services.CurrencyFormatter) templates.EstimationPageData {
	totals := make([]string, len(form.Parts))
	for i, p := range form.Parts {
		totals[i] = money.Format(p.Total())
	}
	return templates.EstimationPageData{
		Form:        form,
		Status:      status,
		QuotationNo: orAutoNumber(form.Quotation.Number),
		WorkOrderNo: orAutoNumber(form.WorkOrder.Number),
		PartTotals:  totals,
		GrandTotal:  money.Format(form.GrandTotal()),
	}
}

// HandleEstimationView renders the estimation editor.
func HandleEstimationView(app *pocketbase.PocketBase, docs Documents) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return ErrorToast(e, http.StatusBadRequest, "Missing estimation ID")
		}

		est, err := app.FindRecordById("estimations", id)
		if err != nil {
			log.Printf("estimation_view: estimation %s not found: %v", id, err)
			return ErrorToast(e, http.StatusNotFound, "Estimation not found")
		}
		form, err := services.BuildEstimationForm(app, id)
		if err != nil {
			log.Printf("estimation_view: could not build form for %s: %v", id, err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		data := buildEstimationPageData(form, est.GetString("status"), docs.money())

		var component templ.Component
		if e.Request.Header.Get("HX-Request") == "true" {
			component = templates.EstimationContent(data)
		} else {
			component = templates.EstimationPage(data, GetHeaderData(e.Request))
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}

// HandleEstimationSave stores the posted form and redirects back to the editor.
func HandleEstimationSave(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return ErrorToast(e, http.StatusBadRequest, "Missing estimation ID")
		}

		base, err := services.BuildEstimationForm(app, id)
		if err != nil {
			log.Printf("estimation_save: estimation %s not found: %v", id, err)
			return ErrorToast(e, http.StatusNotFound, "Estimation not found")
		}

		form, err := formFromRequest(e.Request, base)
		if err != nil {
			log.Printf("estimation_save: bad form for %s: %v", id, err)
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		if err := services.SaveEstimationForm(app, form); err != nil {
			log.Printf("estimation_save: could not save %s: %v", id, err)
			return ErrorToast(e, http.StatusInternalServerError, "Failed to save estimation")
		}

		SetToast(e, "success", "Estimation saved")
		return redirectTo(e, "/estimations/"+id)
	}
}
