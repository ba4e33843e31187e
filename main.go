package main

import (
	"log"
	"net/http"
	"os"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"forgeestimates/collections"
	"forgeestimates/handlers"
	"forgeestimates/services"
)

func main() {
	app := pocketbase.New()

	cfg := services.DefaultQuotationConfig()
	cfg.RegisterFlags(app.RootCmd.PersistentFlags())

	// Create collections and seed data on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		staticFS := os.DirFS("./static")
		se.Router.GET("/static/{path...}", apis.Static(staticFS, false))

		docs := handlers.Documents{
			Config: cfg,
			Logo:   cfg.NewLogoSource(staticFS),
		}

		se.Router.BindFunc(handlers.IssuerMiddleware(app, cfg))

		// ── Estimations ──────────────────────────────────────────
		se.Router.GET("/estimations", handlers.HandleEstimationList(app, docs))
		se.Router.POST("/estimations", handlers.HandleEstimationCreate(app))
		se.Router.GET("/estimations/{id}", handlers.HandleEstimationView(app, docs))
		se.Router.POST("/estimations/{id}/save", handlers.HandleEstimationSave(app))
		se.Router.POST("/estimations/{id}/parts", handlers.HandlePartAdd(app))
		se.Router.POST("/estimations/{id}/parts/{index}/duplicate", handlers.HandlePartDuplicate(app))
		se.Router.POST("/estimations/{id}/parts/{index}/delete", handlers.HandlePartDelete(app))
		se.Router.POST("/estimations/{id}/jobs", handlers.HandleJobsAdd(app))

		// ── Documents ────────────────────────────────────────────
		se.Router.GET("/estimations/{id}/quotation.pdf", handlers.HandleQuotationPDF(app, docs))
		se.Router.POST("/estimations/{id}/quotation", handlers.HandleQuotationPDFFromForm(app, docs))
		se.Router.GET("/estimations/{id}/quotation.xlsx", handlers.HandleQuotationExcel(app, docs))
		se.Router.GET("/estimations/{id}/workorder.pdf", handlers.HandleWorkOrderPDF(app, docs))
		se.Router.GET("/estimations/{id}/certificate.pdf", handlers.HandleCertificatePDF(app, docs))

		// Redirect home to estimations list
		se.Router.GET("/", func(e *core.RequestEvent) error {
			return e.Redirect(http.StatusFound, "/estimations")
		})

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
