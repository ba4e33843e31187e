package handlers

import (
	"context"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"forgeestimates/services"
	"forgeestimates/templates"
)

type contextKey string

const IssuerKey contextKey = "issuer"
const HeaderDataKey contextKey = "headerData"

// GetIssuer extracts the issuer loaded by IssuerMiddleware. The bool is false
// when the middleware did not run.
func GetIssuer(r *http.Request) (services.Issuer, bool) {
	val, ok := r.Context().Value(IssuerKey).(services.Issuer)
	return val, ok
}

// GetHeaderData extracts the pre-built HeaderData from the request context.
func GetHeaderData(r *http.Request) templates.HeaderData {
	if val, ok := r.Context().Value(HeaderDataKey).(templates.HeaderData); ok {
		return val
	}
	return templates.HeaderData{}
}

// IssuerMiddleware resolves the issuer company once per request, from the
// company record with cfg as fallback, and stores it together with the page
// header data in the request context.
func IssuerMiddleware(app *pocketbase.PocketBase, cfg services.QuotationConfig) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		issuer := services.LoadIssuer(app, cfg)

		headerData := templates.HeaderData{
			IssuerName: issuer.Name,
			ActivePath: e.Request.URL.Path,
		}

		ctx := context.WithValue(e.Request.Context(), IssuerKey, issuer)
		ctx = context.WithValue(ctx, HeaderDataKey, headerData)
		e.Request = e.Request.WithContext(ctx)

		return e.Next()
	}
}
