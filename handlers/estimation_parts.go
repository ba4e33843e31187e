package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"forgeestimates/services"
	"forgeestimates/templates"
)

// maxJobsPerType caps a single "Add Jobs" request per catalog entry.
const maxJobsPerType = 50

var errBadPartIndex = errors.New("part index out of range")

// partEdit applies one editor operation to the posted form.
type partEdit func(e *core.RequestEvent, form services.EstimationForm) (services.EstimationForm, error)

// handlePartEdit overlays the posted fields on the stored estimation, applies
// edit, saves the result and redirects back to the editor. Unsaved edits in
// the posted form are kept.
func handlePartEdit(app *pocketbase.PocketBase, area, done string, edit partEdit) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return ErrorToast(e, http.StatusBadRequest, "Missing estimation ID")
		}

		base, err := services.BuildEstimationForm(app, id)
		if err != nil {
			log.Printf("%s: estimation %s not found: %v", area, id, err)
			return ErrorToast(e, http.StatusNotFound, "Estimation not found")
		}

		form, err := formFromRequest(e.Request, base)
		if err != nil {
			log.Printf("%s: bad form for %s: %v", area, id, err)
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		form, err = edit(e, form)
		if err != nil {
			log.Printf("%s: %s: %v", area, id, err)
			return ErrorToast(e, http.StatusBadRequest, "Invalid request")
		}

		if err := services.SaveEstimationForm(app, form); err != nil {
			log.Printf("%s: could not save %s: %v", area, id, err)
			return ErrorToast(e, http.StatusInternalServerError, "Failed to save estimation")
		}

		SetToast(e, "success", done)
		return redirectTo(e, "/estimations/"+id)
	}
}

// partIndex reads the {index} path value and checks it against the form.
func partIndex(e *core.RequestEvent, form services.EstimationForm) (int, error) {
	raw := e.Request.PathValue("index")
	i, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("part index %q: %w", raw, err)
	}
	if i < 0 || i >= len(form.Parts) {
		return 0, fmt.Errorf("%w: %d of %d", errBadPartIndex, i, len(form.Parts))
	}
	return i, nil
}

// HandlePartAdd appends a blank part.
func HandlePartAdd(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return handlePartEdit(app, "part_add", "Part added",
		func(_ *core.RequestEvent, form services.EstimationForm) (services.EstimationForm, error) {
			return form.AddPart(), nil
		})
}

// HandlePartDuplicate appends a copy of the part at {index}.
func HandlePartDuplicate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return handlePartEdit(app, "part_duplicate", "Part duplicated",
		func(e *core.RequestEvent, form services.EstimationForm) (services.EstimationForm, error) {
			i, err := partIndex(e, form)
			if err != nil {
				return form, err
			}
			return form.DuplicatePart(i), nil
		})
}

// HandlePartDelete removes the part at {index}. The last part stays.
func HandlePartDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return handlePartEdit(app, "part_delete", "Part removed",
		func(e *core.RequestEvent, form services.EstimationForm) (services.EstimationForm, error) {
			i, err := partIndex(e, form)
			if err != nil {
				return form, err
			}
			return form.RemovePart(i), nil
		})
}

// HandleJobsAdd appends parts for the requested catalog job counts.
func HandleJobsAdd(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return handlePartEdit(app, "jobs_add", "Jobs added",
		func(e *core.RequestEvent, form services.EstimationForm) (services.EstimationForm, error) {
			counts, err := jobCounts(e.Request)
			if err != nil {
				return form, err
			}
			return form.AddJobs(counts), nil
		})
}

// jobCounts reads one count per catalog entry. Blank fields count as zero.
func jobCounts(r *http.Request) (map[services.JobType]int, error) {
	counts := make(map[services.JobType]int, len(services.JobTypes))
	for _, jt := range services.JobTypes {
		raw := strings.TrimSpace(r.FormValue(templates.JobCountField(jt.Key)))
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 || n > maxJobsPerType {
			return nil, fmt.Errorf("job count %s = %q", jt.Key, raw)
		}
		counts[jt.Key] = n
	}
	return counts, nil
}
