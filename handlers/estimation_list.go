package handlers

import (
	"log"
	"net/http"
	"sort"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"forgeestimates/services"
	"forgeestimates/templates"
)

func statusBadgeClass(status string) string {
	switch status {
	case "quoted":
		return "badge-info"
	case "ordered":
		return "badge-success"
	case "closed":
		return "badge-neutral"
	default:
		return "badge-ghost"
	}
}

// HandleEstimationList renders all estimations, newest first.
func HandleEstimationList(app *pocketbase.PocketBase, docs Documents) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		records, err := app.FindAllRecords("estimations")
		if err != nil {
			log.Printf("estimation_list: could not query estimations: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		sort.SliceStable(records, func(i, j int) bool {
			return records[i].GetDateTime("created").Time().After(records[j].GetDateTime("created").Time())
		})

		money := docs.money()
		items := make([]templates.EstimationListItem, 0, len(records))
		for _, rec := range records {
			form, err := services.BuildEstimationForm(app, rec.Id)
			if err != nil {
				log.Printf("estimation_list: skipping %s: %v", rec.Id, err)
				continue
			}

			createdDate := "—"
			if dt := rec.GetDateTime("created"); !dt.IsZero() {
				createdDate = dt.Time().Format("02 Jan 2006")
			}

			status := rec.GetString("status")
			items = append(items, templates.EstimationListItem{
				ID:               rec.Id,
				ProjectName:      form.Basic.ProjectName,
				ClientName:       form.Basic.ClientName,
				QuotationNo:      form.Quotation.Number,
				Status:           status,
				StatusBadgeClass: statusBadgeClass(status),
				PartCount:        len(form.Parts),
				GrandTotal:       money.Format(form.GrandTotal()),
				CreatedDate:      createdDate,
			})
		}

		data := templates.EstimationListData{
			Items:      items,
			TotalCount: len(items),
		}

		var component templ.Component
		if e.Request.Header.Get("HX-Request") == "true" {
			component = templates.EstimationListContent(data)
		} else {
			component = templates.EstimationListPage(data, GetHeaderData(e.Request))
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}
