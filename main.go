package main

import (
	"log"
	"net/http"
	"os"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"siteledger/collections"
	"siteledger/commands"
	"siteledger/config"
	"siteledger/handlers"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	app := pocketbase.New()
	commands.Register(app.RootCmd, cfg)

	// Create collections, optional demo data and missing progress rows on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if cfg.Seed {
			if err := collections.Seed(app); err != nil {
				log.Printf("Warning: seed data failed: %v", err)
			}
		}
		if err := collections.MigrateFlatWorkItems(app); err != nil {
			log.Printf("Warning: flat work item migration failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		se.Router.GET("/static/{path...}", apis.Static(os.DirFS("./static"), false))

		// ── Tools ────────────────────────────────────────────────
		se.Router.GET("/api/tools/amount-in-words", handlers.HandleAmountInWords())
		se.Router.GET("/api/tools/gst", handlers.HandleGSTSplit(cfg))

		// ── Project-scoped routes ────────────────────────────────
		p := se.Router.Group("/projects/{projectId}")
		p.BindFunc(handlers.ProjectMiddleware(app))

		p.GET("/dashboard", handlers.HandleDashboard(app))

		// Progress
		p.GET("/progress", handlers.HandleProgressReport(app))
		p.GET("/progress/export", handlers.HandleProgressExport(app))
		p.POST("/progress/import", handlers.HandleProgressImport(app))
		p.POST("/progress/{flatWorkItemId}", handlers.HandleProgressUpdate(app))
		p.POST("/checks/{checkId}/toggle", handlers.HandleCheckToggle(app))

		// Labour
		p.GET("/workers", handlers.HandleWorkerList(app))
		p.POST("/workers", handlers.HandleWorkerCreate(app))
		p.POST("/workers/{workerId}/attendance", handlers.HandleAttendance(app))
		p.POST("/workers/{workerId}/kharci", handlers.HandleKharci(app))

		// Payroll
		p.GET("/payroll", handlers.HandlePayroll(app))
		p.GET("/payroll/export", handlers.HandlePayrollExport(app))
		p.POST("/payroll/{workerId}/settle", handlers.HandleSettle(app))
		p.GET("/payroll/{workerId}/slip", handlers.HandleSettlementSlip(app, cfg))

		// Invoices
		p.POST("/invoices", handlers.HandleInvoiceCreate(app, cfg))
		p.GET("/invoices/{id}", handlers.HandleInvoiceView(app, cfg))
		p.POST("/invoices/{id}/line-items", handlers.HandleInvoiceAddLineItem(app))
		p.GET("/invoices/{id}/export/pdf", handlers.HandleInvoiceExportPDF(app, cfg))

		// Redirect home to the most recent project's dashboard
		se.Router.GET("/{$}", func(e *core.RequestEvent) error {
			var projects []*core.Record
			err := app.RecordQuery("projects").OrderBy("created DESC").Limit(1).All(&projects)
			if err != nil || len(projects) == 0 {
				return e.String(http.StatusOK, "No projects yet. Create one from the admin dashboard at /_/")
			}
			return e.Redirect(http.StatusFound, "/projects/"+projects[0].Id+"/dashboard")
		})

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
