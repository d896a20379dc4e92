package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"siteledger/config"
	"siteledger/services"
)

// HandlePayroll handles GET /projects/{projectId}/payroll?month=
func HandlePayroll(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		report, err := services.BuildMonthlyPayroll(app, projectID, monthParam(e, time.Now()))
		if err != nil {
			return serviceError(e, "payroll: HandlePayroll", err)
		}
		return e.JSON(http.StatusOK, report)
	}
}

// HandlePayrollExport handles GET /projects/{projectId}/payroll/export?month=
func HandlePayrollExport(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		project, err := requireProject(app, e)
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "Project not found")
		}

		report, err := services.BuildMonthlyPayroll(app, project.Id, monthParam(e, time.Now()))
		if err != nil {
			return serviceError(e, "payroll: HandlePayrollExport", err)
		}

		data, err := services.GeneratePayrollExcel(project.GetString("name"), report)
		if err != nil {
			log.Printf("payroll: HandlePayrollExport: generate: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Failed to generate Excel file")
		}

		filename := fmt.Sprintf("%s-payroll-%s.xlsx", project.GetString("name"), report.Month)
		return download(e, mimeXLSX, filename, data)
	}
}

// HandleSettle handles POST /projects/{projectId}/payroll/{workerId}/settle?month=
// It recomputes the worker's month and stores it. Form field paid=true marks
// it paid on paid_on, or today.
func HandleSettle(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		workerID := e.Request.PathValue("workerId")

		worker, err := services.FindProjectWorker(app, projectID, workerID)
		if err != nil {
			return serviceError(e, "payroll: HandleSettle", err)
		}

		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		now := time.Now()
		month := monthParam(e, now)
		row, _, err := services.WorkerMonth(app, worker, month)
		if err != nil {
			return serviceError(e, "payroll: HandleSettle", err)
		}

		// Recomputing without a paid field leaves the payment status alone.
		var paid *bool
		paidOn := ""
		if _, ok := e.Request.Form["paid"]; ok {
			p := e.Request.FormValue("paid") == "true"
			paid = &p
			if p {
				d, err := formDate(e, "paid_on", now)
				if err != nil {
					return ValidationFailed(e, map[string]string{"paid_on": "must be a date (YYYY-MM-DD)"})
				}
				paidOn = d.Format("2006-01-02")
			}
		}

		record, err := services.SaveSettlement(app, worker.Id, month, row.Settlement, paid, paidOn)
		if err != nil {
			return serviceError(e, "payroll: HandleSettle", err)
		}

		SetToast(e, toastSuccess, fmt.Sprintf("%s settled for %s", worker.GetString("name"), month))
		return e.JSON(http.StatusOK, map[string]any{
			"id":         record.Id,
			"worker":     worker.Id,
			"month":      month,
			"settlement": row.Settlement,
			"paid":       record.GetBool("paid"),
			"paid_on":    record.GetString("paid_on"),
		})
	}
}

// HandleSettlementSlip handles GET /projects/{projectId}/payroll/{workerId}/slip?month=
func HandleSettlementSlip(app *pocketbase.PocketBase, cfg *config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		workerID := e.Request.PathValue("workerId")
		month := monthParam(e, time.Now())

		slip, err := services.BuildSettlementSlip(app, cfg.Company(), projectID, workerID, month)
		if err != nil {
			return serviceError(e, "payroll: HandleSettlementSlip", err)
		}

		data, err := services.GenerateSettlementSlipPDF(slip)
		if err != nil {
			log.Printf("payroll: HandleSettlementSlip: generate: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Failed to generate PDF")
		}

		filename := fmt.Sprintf("slip-%s-%s.pdf", strings.ToLower(slip.Row.Name), slip.Month.Month)
		return download(e, mimePDF, filename, data)
	}
}
