package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"forgeestimates/services"
)

const defaultProjectName = "New Estimation"

// HandleEstimationCreate creates a draft estimation with the form defaults
// and opens it in the editor.
func HandleEstimationCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		name := strings.TrimSpace(e.Request.FormValue("project_name"))
		if name == "" {
			name = defaultProjectName
		}

		id, err := services.CreateEstimation(app, name)
		if err != nil {
			log.Printf("estimation_create: could not create %q: %v", name, err)
			return ErrorToast(e, http.StatusInternalServerError, "Failed to create estimation")
		}

		SetToast(e, "success", "Estimation created")
		return redirectTo(e, "/estimations/"+id)
	}
}
