package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"siteledger/services"
)

// HandleWorkerList handles GET /projects/{projectId}/workers
func HandleWorkerList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")

		records, err := app.FindRecordsByFilter(
			"workers",
			"project = {:projectId}",
			"name",
			0,
			0,
			map[string]any{"projectId": projectID},
		)
		if err != nil {
			log.Printf("workers: HandleWorkerList: query failed: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		workers := make([]map[string]any, 0, len(records))
		for _, r := range records {
			workers = append(workers, workerJSON(r))
		}
		return e.JSON(http.StatusOK, map[string]any{"workers": workers})
	}
}

// HandleWorkerCreate handles POST /projects/{projectId}/workers
func HandleWorkerCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")

		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		values, errs := formDecimals(e, "daily_wage", "overtime_rate")
		form := services.WorkerForm{
			Name:         strings.TrimSpace(e.Request.FormValue("name")),
			Skill:        strings.TrimSpace(e.Request.FormValue("skill")),
			DailyWage:    values["daily_wage"],
			OvertimeRate: values["overtime_rate"],
			Phone:        strings.TrimSpace(e.Request.FormValue("phone")),
		}
		if err := services.ValidateWorker(&form); err != nil {
			mergeErrors(errs, services.FieldErrors(err))
		}
		if len(errs) > 0 {
			return ValidationFailed(e, errs)
		}

		col, err := app.FindCollectionByNameOrId("workers")
		if err != nil {
			log.Printf("workers: HandleWorkerCreate: could not find workers collection: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(col)
		record.Set("project", projectID)
		record.Set("name", form.Name)
		record.Set("skill", form.Skill)
		record.Set("daily_wage", form.DailyWage.InexactFloat64())
		record.Set("overtime_rate", form.OvertimeRate.InexactFloat64())
		record.Set("phone", form.Phone)
		record.Set("active", true)

		if err := app.Save(record); err != nil {
			log.Printf("workers: HandleWorkerCreate: could not save worker: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		SetToast(e, toastSuccess, "Worker added")
		return e.JSON(http.StatusCreated, workerJSON(record))
	}
}

// HandleAttendance handles POST /projects/{projectId}/workers/{workerId}/attendance.
// Marking a day twice overwrites the earlier mark.
func HandleAttendance(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		workerID := e.Request.PathValue("workerId")

		worker, err := services.FindProjectWorker(app, projectID, workerID)
		if err != nil {
			return serviceError(e, "workers: HandleAttendance", err)
		}

		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		values, errs := formDecimals(e, "overtime_hours")
		form := services.AttendanceForm{
			Date:          strings.TrimSpace(e.Request.FormValue("date")),
			Status:        strings.TrimSpace(e.Request.FormValue("status")),
			OvertimeHours: values["overtime_hours"],
		}
		if err := services.ValidateAttendance(&form); err != nil {
			mergeErrors(errs, services.FieldErrors(err))
		}
		if len(errs) > 0 {
			return ValidationFailed(e, errs)
		}

		record, err := app.FindFirstRecordByFilter(
			"attendance",
			"worker = {:workerId} && date = {:date}",
			dbx.Params{"workerId": worker.Id, "date": form.Date},
		)
		status := http.StatusOK
		if err != nil {
			col, err := app.FindCollectionByNameOrId("attendance")
			if err != nil {
				log.Printf("workers: HandleAttendance: could not find attendance collection: %v", err)
				return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
			}
			record = core.NewRecord(col)
			record.Set("worker", worker.Id)
			record.Set("date", form.Date)
			status = http.StatusCreated
		}
		record.Set("status", form.Status)
		record.Set("overtime_hours", form.OvertimeHours.InexactFloat64())

		if err := app.Save(record); err != nil {
			log.Printf("workers: HandleAttendance: could not save attendance: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		SetToast(e, toastSuccess, "Attendance saved")
		return e.JSON(status, map[string]any{
			"id":             record.Id,
			"worker":         worker.Id,
			"date":           form.Date,
			"status":         form.Status,
			"overtime_hours": record.GetFloat("overtime_hours"),
		})
	}
}

// HandleKharci handles POST /projects/{projectId}/workers/{workerId}/kharci
func HandleKharci(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		workerID := e.Request.PathValue("workerId")

		worker, err := services.FindProjectWorker(app, projectID, workerID)
		if err != nil {
			return serviceError(e, "workers: HandleKharci", err)
		}

		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		values, errs := formDecimals(e, "amount")
		form := services.KharciForm{
			Date:   strings.TrimSpace(e.Request.FormValue("date")),
			Amount: values["amount"],
			Note:   strings.TrimSpace(e.Request.FormValue("note")),
		}
		if err := services.ValidateKharci(&form); err != nil {
			mergeErrors(errs, services.FieldErrors(err))
		}
		if len(errs) > 0 {
			return ValidationFailed(e, errs)
		}

		col, err := app.FindCollectionByNameOrId("kharci")
		if err != nil {
			log.Printf("workers: HandleKharci: could not find kharci collection: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(col)
		record.Set("worker", worker.Id)
		record.Set("date", form.Date)
		record.Set("amount", services.RoundPaise(form.Amount).InexactFloat64())
		record.Set("note", form.Note)

		if err := app.Save(record); err != nil {
			log.Printf("workers: HandleKharci: could not save kharci: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		SetToast(e, toastSuccess, "Kharci of "+services.FormatRupees(form.Amount)+" recorded")
		return e.JSON(http.StatusCreated, map[string]any{
			"id":     record.Id,
			"worker": worker.Id,
			"date":   form.Date,
			"amount": record.GetFloat("amount"),
			"note":   form.Note,
		})
	}
}

func workerJSON(r *core.Record) map[string]any {
	return map[string]any{
		"id":            r.Id,
		"name":          r.GetString("name"),
		"skill":         r.GetString("skill"),
		"daily_wage":    r.GetFloat("daily_wage"),
		"overtime_rate": r.GetFloat("overtime_rate"),
		"phone":         r.GetString("phone"),
		"active":        r.GetBool("active"),
	}
}
