package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"siteledger/config"
	"siteledger/services"
	"siteledger/templates"
)

// findProjectInvoice returns the invoice only if it belongs to the project.
func findProjectInvoice(app *pocketbase.PocketBase, projectID, invoiceID string) (*core.Record, error) {
	inv, err := app.FindFirstRecordByFilter(
		"invoices",
		"id = {:id} && project = {:projectId}",
		dbx.Params{"id": invoiceID, "projectId": projectID},
	)
	if err != nil {
		return nil, services.ErrNotFound
	}
	return inv, nil
}

// getNextSortOrder returns the sort_order for a new line on an invoice.
func getNextSortOrder(app *pocketbase.PocketBase, invoiceID string) int {
	existing, err := app.FindRecordsByFilter(
		"invoice_line_items",
		"invoice = {:invoiceId}",
		"-sort_order",
		1,
		0,
		map[string]any{"invoiceId": invoiceID},
	)
	if err != nil || len(existing) == 0 {
		return 1
	}
	return existing[0].GetInt("sort_order") + 1
}

// HandleInvoiceCreate handles POST /projects/{projectId}/invoices
// Blank GST rates take the configured defaults and a blank date is today.
func HandleInvoiceCreate(app *pocketbase.PocketBase, cfg *config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		project, err := requireProject(app, e)
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "Project not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		now := time.Now()
		values, errs := formDecimals(e, "cgst_rate", "sgst_rate", "inclusive_total")
		cgst, sgst := values["cgst_rate"], values["sgst_rate"]
		if strings.TrimSpace(e.Request.FormValue("cgst_rate")) == "" {
			cgst = cfg.DefaultCGST
		}
		if strings.TrimSpace(e.Request.FormValue("sgst_rate")) == "" {
			sgst = cfg.DefaultSGST
		}

		invoiceDate := strings.TrimSpace(e.Request.FormValue("invoice_date"))
		if invoiceDate == "" {
			invoiceDate = now.Format("2006-01-02")
		}

		form := services.InvoiceForm{
			InvoiceType:    strings.TrimSpace(e.Request.FormValue("invoice_type")),
			InvoiceDate:    invoiceDate,
			ClientName:     strings.TrimSpace(e.Request.FormValue("client_name")),
			ClientAddress:  strings.TrimSpace(e.Request.FormValue("client_address")),
			ClientGSTIN:    strings.ToUpper(strings.TrimSpace(e.Request.FormValue("client_gstin"))),
			AmountBasis:    strings.TrimSpace(e.Request.FormValue("amount_basis")),
			CGSTRate:       cgst,
			SGSTRate:       sgst,
			InclusiveTotal: values["inclusive_total"],
			ProformaRef:    strings.TrimSpace(e.Request.FormValue("proforma_ref")),
			Notes:          strings.TrimSpace(e.Request.FormValue("notes")),
		}
		if err := services.ValidateInvoiceInput(&form); err != nil {
			mergeErrors(errs, services.FieldErrors(err))
		}
		if len(errs) > 0 {
			return ValidationFailed(e, errs)
		}

		invoiceType := services.InvoiceType(form.InvoiceType)
		number, err := services.GenerateInvoiceNumber(app, cfg.InvoicePrefix, project.Id, invoiceType, now)
		if err != nil {
			log.Printf("invoices: HandleInvoiceCreate: invoice number: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		col, err := app.FindCollectionByNameOrId("invoices")
		if err != nil {
			log.Printf("invoices: HandleInvoiceCreate: could not find invoices collection: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(col)
		record.Set("project", project.Id)
		record.Set("invoice_type", form.InvoiceType)
		record.Set("invoice_number", number)
		record.Set("invoice_date", form.InvoiceDate)
		record.Set("client_name", form.ClientName)
		record.Set("client_address", form.ClientAddress)
		record.Set("client_gstin", form.ClientGSTIN)
		record.Set("amount_basis", form.AmountBasis)
		record.Set("cgst_rate", form.CGSTRate.InexactFloat64())
		record.Set("sgst_rate", form.SGSTRate.InexactFloat64())
		record.Set("inclusive_total", services.RoundPaise(form.InclusiveTotal).InexactFloat64())
		record.Set("proforma_ref", form.ProformaRef)
		record.Set("notes", form.Notes)

		if err := app.Save(record); err != nil {
			log.Printf("invoices: HandleInvoiceCreate: could not save invoice: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		SetToast(e, toastSuccess, "Invoice "+number+" created")
		e.Response.Header().Set("HX-Redirect", "/projects/"+project.Id+"/invoices/"+record.Id)
		return e.JSON(http.StatusCreated, map[string]any{
			"id":             record.Id,
			"invoice_number": number,
			"invoice_type":   form.InvoiceType,
			"amount_basis":   form.AmountBasis,
		})
	}
}

// HandleInvoiceAddLineItem handles POST /projects/{projectId}/invoices/{id}/line-items
func HandleInvoiceAddLineItem(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		inv, err := findProjectInvoice(app, projectID, e.Request.PathValue("id"))
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "Invoice not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		values, errs := formDecimals(e, "qty", "rate")
		form := services.LineItemForm{
			Description: strings.TrimSpace(e.Request.FormValue("description")),
			HSNCode:     strings.TrimSpace(e.Request.FormValue("hsn_code")),
			Qty:         values["qty"],
			UoM:         strings.TrimSpace(e.Request.FormValue("uom")),
			Rate:        values["rate"],
		}
		if err := services.ValidateLineItem(&form); err != nil {
			mergeErrors(errs, services.FieldErrors(err))
		}
		if len(errs) > 0 {
			return ValidationFailed(e, errs)
		}

		col, err := app.FindCollectionByNameOrId("invoice_line_items")
		if err != nil {
			log.Printf("invoices: HandleInvoiceAddLineItem: could not find invoice_line_items collection: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(col)
		record.Set("invoice", inv.Id)
		record.Set("sort_order", getNextSortOrder(app, inv.Id))
		record.Set("description", form.Description)
		record.Set("hsn_code", form.HSNCode)
		record.Set("qty", form.Qty.InexactFloat64())
		record.Set("uom", form.UoM)
		record.Set("rate", form.Rate.InexactFloat64())

		if err := app.Save(record); err != nil {
			log.Printf("invoices: HandleInvoiceAddLineItem: could not save line item: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		SetToast(e, toastSuccess, "Line item added")
		return e.JSON(http.StatusCreated, map[string]any{
			"id":         record.Id,
			"sort_order": record.GetInt("sort_order"),
			"amount":     services.RoundPaise(form.Qty.Mul(form.Rate)),
		})
	}
}

// HandleInvoiceView handles GET /projects/{projectId}/invoices/{id}. It
// renders the preview, or the export data as JSON for Accept: application/json.
func HandleInvoiceView(app *pocketbase.PocketBase, cfg *config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		inv, err := findProjectInvoice(app, projectID, e.Request.PathValue("id"))
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "Invoice not found")
		}

		data, err := services.BuildInvoiceExportData(app, cfg.Company(), inv.Id)
		if err != nil {
			log.Printf("invoices: HandleInvoiceView: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Could not load invoice")
		}

		if wantsJSON(e) {
			return e.JSON(http.StatusOK, data)
		}

		component := templates.InvoicePage(projectID, data)
		if isHTMX(e) {
			component = templates.InvoiceContent(projectID, data)
		}
		e.Response.Header().Set("Content-Type", "text/html; charset=utf-8")
		return component.Render(e.Request.Context(), e.Response)
	}
}

// HandleInvoiceExportPDF handles GET /projects/{projectId}/invoices/{id}/export/pdf
func HandleInvoiceExportPDF(app *pocketbase.PocketBase, cfg *config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		inv, err := findProjectInvoice(app, projectID, e.Request.PathValue("id"))
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "Invoice not found")
		}

		data, err := services.BuildInvoiceExportData(app, cfg.Company(), inv.Id)
		if err != nil {
			log.Printf("invoices: HandleInvoiceExportPDF: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Could not load invoice")
		}

		pdf, err := services.GenerateInvoicePDF(data)
		if err != nil {
			log.Printf("invoices: HandleInvoiceExportPDF: generate: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Failed to generate PDF")
		}

		return download(e, mimePDF, data.InvoiceNumber+".pdf", pdf)
	}
}
