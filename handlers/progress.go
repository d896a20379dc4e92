package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"siteledger/services"
)

const maxImportSize = 10 << 20

// HandleProgressReport handles GET /projects/{projectId}/progress
func HandleProgressReport(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		report, err := services.BuildProgressReport(app, projectID)
		if err != nil {
			return serviceError(e, "progress: HandleProgressReport", err)
		}
		return e.JSON(http.StatusOK, report)
	}
}

// HandleProgressUpdate handles POST /projects/{projectId}/progress/{flatWorkItemId}
// with form fields completed_qty, note and log_date.
func HandleProgressUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		fwiID := e.Request.PathValue("flatWorkItemId")

		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		errs := map[string]string{}
		if strings.TrimSpace(e.Request.FormValue("completed_qty")) == "" {
			errs["completed_qty"] = "cannot be blank"
		}
		values, parseErrs := formDecimals(e, "completed_qty")
		mergeErrors(errs, parseErrs)
		logDate, err := formDate(e, "log_date", time.Now())
		if err != nil {
			errs["log_date"] = "must be a date (YYYY-MM-DD)"
		}
		if len(errs) > 0 {
			return ValidationFailed(e, errs)
		}

		completed := values["completed_qty"].InexactFloat64()
		note := strings.TrimSpace(e.Request.FormValue("note"))

		record, err := services.UpdateProgress(app, projectID, fwiID, completed, note, logDate)
		if err != nil {
			return serviceError(e, "progress: HandleProgressUpdate", err)
		}

		SetToast(e, toastSuccess, "Progress updated")
		return e.JSON(http.StatusOK, map[string]any{
			"id":            record.Id,
			"completed_qty": record.GetFloat("completed_qty"),
			"total_qty":     record.GetFloat("total_qty"),
			"percent":       services.CompletionPercent(record.GetFloat("completed_qty"), record.GetFloat("total_qty")),
		})
	}
}

// HandleCheckToggle handles POST /projects/{projectId}/checks/{checkId}/toggle
func HandleCheckToggle(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		checkID := e.Request.PathValue("checkId")

		record, err := services.ToggleCheck(app, projectID, checkID)
		if err != nil {
			return serviceError(e, "progress: HandleCheckToggle", err)
		}
		return e.JSON(http.StatusOK, map[string]any{
			"id":   record.Id,
			"done": record.GetBool("done"),
		})
	}
}

// HandleProgressImport handles POST /projects/{projectId}/progress/import.
// The upload is always validated; commit=true applies it when no row has an
// error. errors=xlsx downloads the error report instead of JSON.
func HandleProgressImport(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")

		if err := e.Request.ParseMultipartForm(maxImportSize); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "File too large or invalid form")
		}

		file, header, err := e.Request.FormFile("file")
		if err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Please select a file to upload")
		}
		defer file.Close()

		result, err := services.ValidateProgressFile(app, projectID, file, header.Filename)
		if err != nil {
			log.Printf("progress: HandleProgressImport: %s: %v", header.Filename, err)
			return ErrorToast(e, http.StatusBadRequest, "Could not read file: "+err.Error())
		}

		if len(result.Errors) > 0 && e.Request.FormValue("errors") == "xlsx" {
			data, err := services.GenerateErrorReport(result.Errors)
			if err != nil {
				log.Printf("progress: HandleProgressImport: error report: %v", err)
				return ErrorToast(e, http.StatusInternalServerError, "Could not build error report")
			}
			return download(e, mimeXLSX, "import-errors.xlsx", data)
		}

		applied := 0
		commit := e.Request.FormValue("commit") == "true"
		if commit && len(result.Errors) == 0 {
			applied, err = services.ApplyProgressImport(app, result, time.Now())
			if err != nil {
				log.Printf("progress: HandleProgressImport: apply: %v", err)
				return ErrorToast(e, http.StatusInternalServerError, "Import failed. No changes were saved.")
			}
			SetToast(e, toastSuccess, fmt.Sprintf("Imported %d progress updates", applied))
		} else if len(result.Errors) > 0 {
			SetToast(e, toastWarning, fmt.Sprintf("%d rows have errors", result.ErrorRows))
		}

		return e.JSON(http.StatusOK, map[string]any{
			"result":    result,
			"committed": commit && len(result.Errors) == 0,
			"applied":   applied,
		})
	}
}

// HandleProgressExport handles GET /projects/{projectId}/progress/export
func HandleProgressExport(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		project, err := requireProject(app, e)
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "Project not found")
		}

		report, err := services.BuildProgressReport(app, project.Id)
		if err != nil {
			return serviceError(e, "progress: HandleProgressExport", err)
		}

		data, err := services.GenerateProgressExcel(project.GetString("name"), report)
		if err != nil {
			log.Printf("progress: HandleProgressExport: generate: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Failed to generate Excel file")
		}

		filename := fmt.Sprintf("%s-progress-%s.xlsx", project.GetString("name"), time.Now().Format("2006-01-02"))
		return download(e, mimeXLSX, filename, data)
	}
}
