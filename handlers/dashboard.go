package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"golang.org/x/sync/errgroup"

	"siteledger/services"
	"siteledger/templates"
)

// HandleDashboard handles GET /projects/{projectId}/dashboard. Progress,
// payroll and invoice figures load concurrently.
func HandleDashboard(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		project, err := requireProject(app, e)
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "Project not found")
		}

		now := time.Now()
		data := templates.DashboardData{
			ProjectID:   project.Id,
			ProjectName: project.GetString("name"),
			Now:         now,
		}

		g, _ := errgroup.WithContext(e.Request.Context())
		g.Go(func() error {
			report, err := services.BuildProgressReport(app, project.Id)
			if err != nil {
				return err
			}
			data.Progress = report
			return nil
		})
		g.Go(func() error {
			payroll, err := services.BuildMonthlyPayroll(app, project.Id, services.CurrentMonth(now))
			if err != nil {
				return err
			}
			data.Payroll = payroll
			return nil
		})
		g.Go(func() error {
			summary, err := services.SummarizeInvoices(app, project.Id)
			if err != nil {
				return err
			}
			data.Invoices = summary
			return nil
		})
		g.Go(func() error {
			if at, ok := services.LastProgressAt(app, project.Id); ok {
				data.LastProgress = at
			}
			return nil
		})
		if err := g.Wait(); err != nil {
			log.Printf("dashboard: project %s: %v", project.Id, err)
			return ErrorToast(e, http.StatusInternalServerError, "Could not load dashboard")
		}

		var component = templates.DashboardPage(data)
		if isHTMX(e) {
			component = templates.DashboardContent(data)
		}
		e.Response.Header().Set("Content-Type", "text/html; charset=utf-8")
		return component.Render(e.Request.Context(), e.Response)
	}
}
