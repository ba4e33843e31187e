package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"forgeestimates/services"
)

const (
	contentTypePDF  = "application/pdf"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Documents carries what every document handler needs besides the app.
type Documents struct {
	Config services.QuotationConfig
	Logo   services.LogoSource
	// Now is the clock; nil means time.Now.
	Now func() time.Time
}

func (d Documents) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// issuer prefers the issuer resolved by IssuerMiddleware.
func (d Documents) issuer(e *core.RequestEvent, app *pocketbase.PocketBase) services.Issuer {
	if issuer, ok := GetIssuer(e.Request); ok {
		return issuer
	}
	return services.LoadIssuer(app, d.Config)
}

func (d Documents) money() services.CurrencyFormatter {
	return services.CurrencyFormatter{Symbol: d.Config.CurrencySymbol}
}

// sanitizeFilename removes characters that are unsafe for filenames.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, ":", "-")
	s = strings.ReplaceAll(s, `"`, "")
	return s
}

// sendAttachment writes body as a file download.
func sendAttachment(e *core.RequestEvent, contentType, filename string, body []byte) error {
	filename = sanitizeFilename(filename)
	log.Printf("estimation_export: sending %s (%s)", filename, humanize.Bytes(uint64(len(body))))

	e.Response.Header().Set("Content-Type", contentType)
	e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	e.Response.WriteHeader(http.StatusOK)
	_, err := e.Response.Write(body)
	return err
}

// loadNumberedForm assigns the document number when missing and then loads
// the form, so the number printed is the one stored.
func loadNumberedForm(app *pocketbase.PocketBase, id string, assign func(*pocketbase.PocketBase, string, time.Time) (string, error), now time.Time) (services.EstimationForm, int, error) {
	if _, err := app.FindRecordById("estimations", id); err != nil {
		return services.EstimationForm{}, http.StatusNotFound, err
	}
	if assign != nil {
		if _, err := assign(app, id, now); err != nil {
			return services.EstimationForm{}, http.StatusInternalServerError, err
		}
	}
	form, err := services.BuildEstimationForm(app, id)
	if err != nil {
		return services.EstimationForm{}, http.StatusNotFound, err
	}
	return form, http.StatusOK, nil
}

func (d Documents) sendQuotationPDF(e *core.RequestEvent, app *pocketbase.PocketBase, form services.EstimationForm) error {
	now := d.now()
	issuer := d.issuer(e, app)
	rec := form.QuotationRecord(issuer, now)

	doc, err := services.GenerateQuotationPDF(e.Request.Context(), rec, d.Config.QuotationOptions(now, issuer, d.Logo))
	if err != nil {
		log.Printf("estimation_export: quotation PDF for %s failed: %v", form.ID, err)
		return ErrorToast(e, http.StatusInternalServerError, "Failed to generate quotation PDF")
	}
	return sendAttachment(e, contentTypePDF, doc.Filename, doc.Bytes)
}

// HandleQuotationPDF returns a handler that downloads the stored estimation
// as a quotation PDF, assigning the next proposal number on first export.
func HandleQuotationPDF(app *pocketbase.PocketBase, docs Documents) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return ErrorToast(e, http.StatusBadRequest, "Missing estimation ID")
		}

		form, status, err := loadNumberedForm(app, id, services.EnsureQuotationNumber, docs.now())
		if err != nil {
			log.Printf("estimation_export: quotation %s: %v", id, err)
			if status == http.StatusNotFound {
				return ErrorToast(e, status, "Estimation not found")
			}
			return ErrorToast(e, status, "Failed to assign quotation number")
		}
		return docs.sendQuotationPDF(e, app, form)
	}
}

// HandleQuotationPDFFromForm renders the quotation from the posted form
// state without saving it. Fields missing from the post keep their stored
// values, and no number is assigned.
func HandleQuotationPDFFromForm(app *pocketbase.PocketBase, docs Documents) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return ErrorToast(e, http.StatusBadRequest, "Missing estimation ID")
		}

		base, err := services.BuildEstimationForm(app, id)
		if err != nil {
			log.Printf("estimation_export: quotation preview %s: %v", id, err)
			return ErrorToast(e, http.StatusNotFound, "Estimation not found")
		}

		form, err := formFromRequest(e.Request, base)
		if err != nil {
			log.Printf("estimation_export: quotation preview %s: bad form: %v", id, err)
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}
		return docs.sendQuotationPDF(e, app, form)
	}
}

// HandleQuotationExcel returns a handler that downloads the quotation as a
// spreadsheet. The proposal number is assigned like for the PDF.
func HandleQuotationExcel(app *pocketbase.PocketBase, docs Documents) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return ErrorToast(e, http.StatusBadRequest, "Missing estimation ID")
		}

		now := docs.now()
		form, status, err := loadNumberedForm(app, id, services.EnsureQuotationNumber, now)
		if err != nil {
			log.Printf("estimation_export: quotation excel %s: %v", id, err)
			if status == http.StatusNotFound {
				return ErrorToast(e, status, "Estimation not found")
			}
			return ErrorToast(e, status, "Failed to assign quotation number")
		}

		issuer := docs.issuer(e, app)
		rec := form.QuotationRecord(issuer, now)
		xlsxBytes, err := services.GenerateQuotationExcel(rec, issuer.Name, docs.money(), now)
		if err != nil {
			log.Printf("estimation_export: quotation excel %s failed: %v", id, err)
			return ErrorToast(e, http.StatusInternalServerError, "Failed to generate Excel file")
		}
		return sendAttachment(e, contentTypeXLSX, services.QuotationExcelFilename(rec.Proposal.Number, now), xlsxBytes)
	}
}

// HandleWorkOrderPDF returns a handler that downloads the work order,
// assigning the next work order number on first export.
func HandleWorkOrderPDF(app *pocketbase.PocketBase, docs Documents) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return ErrorToast(e, http.StatusBadRequest, "Missing estimation ID")
		}

		now := docs.now()
		form, status, err := loadNumberedForm(app, id, services.EnsureWorkOrderNumber, now)
		if err != nil {
			log.Printf("estimation_export: work order %s: %v", id, err)
			if status == http.StatusNotFound {
				return ErrorToast(e, status, "Estimation not found")
			}
			return ErrorToast(e, status, "Failed to assign work order number")
		}

		data := form.WorkOrderData(docs.issuer(e, app), now)
		pdfBytes, err := services.GenerateWorkOrderPDF(data)
		if err != nil {
			log.Printf("estimation_export: work order %s failed: %v", id, err)
			return ErrorToast(e, http.StatusInternalServerError, "Failed to generate work order PDF")
		}
		return sendAttachment(e, contentTypePDF, services.WorkOrderFilename(data.Number, now), pdfBytes)
	}
}

// HandleCertificatePDF returns a handler that downloads the certificate of
// conformance. It prints the work order number if one was assigned.
func HandleCertificatePDF(app *pocketbase.PocketBase, docs Documents) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return ErrorToast(e, http.StatusBadRequest, "Missing estimation ID")
		}

		now := docs.now()
		form, status, err := loadNumberedForm(app, id, nil, now)
		if err != nil {
			log.Printf("estimation_export: certificate %s: %v", id, err)
			return ErrorToast(e, status, "Estimation not found")
		}

		data := form.CertificateData(docs.issuer(e, app), now)
		pdfBytes, err := services.GenerateCertificatePDF(data)
		if err != nil {
			log.Printf("estimation_export: certificate %s failed: %v", id, err)
			return ErrorToast(e, http.StatusInternalServerError, "Failed to generate certificate PDF")
		}
		return sendAttachment(e, contentTypePDF, services.CertificateFilename(data.WorkOrderNo, now), pdfBytes)
	}
}
