package services

import (
	"fmt"
	"time"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// findProjectRecord loads a record only if filter (which must reference
// {:id} and {:projectId}) matches it within the project.
func findProjectRecord(app core.App, collection, filter, id, projectID string) (*core.Record, error) {
	rec, err := app.FindFirstRecordByFilter(collection, filter, dbx.Params{"id": id, "projectId": projectID})
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", collection, id, ErrNotFound)
	}
	return rec, nil
}

// FindProjectFlatWorkItem returns a flat work item only if its flat belongs
// to the project.
func FindProjectFlatWorkItem(app core.App, projectID, id string) (*core.Record, error) {
	return findProjectRecord(app, "flat_work_items", "id = {:id} && flat.project = {:projectId}", id, projectID)
}

// setProgress writes completed_qty and logs the change. It reports false
// when the quantity was already at completed.
func setProgress(txApp core.App, logs *core.Collection, fwi *core.Record, completed float64, note string, logDate time.Time) (bool, error) {
	delta := completed - fwi.GetFloat("completed_qty")
	if delta == 0 {
		return false, nil
	}
	fwi.Set("completed_qty", completed)
	if err := txApp.Save(fwi); err != nil {
		return false, err
	}

	entry := core.NewRecord(logs)
	entry.Set("flat_work_item", fwi.Id)
	entry.Set("log_date", logDate.Format(dateLayout))
	entry.Set("qty_done", delta)
	entry.Set("note", note)
	if err := txApp.Save(entry); err != nil {
		return false, fmt.Errorf("log: %w", err)
	}
	return true, nil
}

// UpdateProgress sets a flat work item's completed quantity and logs the
// delta. Quantities above the item's total are rejected when a total is set.
func UpdateProgress(app *pocketbase.PocketBase, projectID, flatWorkItemID string, completed float64, note string, logDate time.Time) (*core.Record, error) {
	if completed < 0 {
		return nil, fmt.Errorf("%w: completed qty %v is negative", ErrInvalidAmount, completed)
	}
	fwi, err := FindProjectFlatWorkItem(app, projectID, flatWorkItemID)
	if err != nil {
		return nil, err
	}
	if total := fwi.GetFloat("total_qty"); total > 0 && completed > total {
		return nil, fmt.Errorf("%w: completed qty %s exceeds total %s", ErrInvalidAmount, FormatQty(Money(completed)), FormatQty(Money(total)))
	}

	logs, err := app.FindCollectionByNameOrId("progress_logs")
	if err != nil {
		return nil, fmt.Errorf("progress: could not find progress_logs collection: %w", err)
	}

	err = app.RunInTransaction(func(txApp core.App) error {
		_, err := setProgress(txApp, logs, fwi, completed, note, logDate)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("progress: %w", err)
	}
	return fwi, nil
}

// ToggleCheck flips a checklist check of the project.
func ToggleCheck(app *pocketbase.PocketBase, projectID, checkID string) (*core.Record, error) {
	check, err := findProjectRecord(app, "checklist_checks", "id = {:id} && flat_work_item.flat.project = {:projectId}", checkID, projectID)
	if err != nil {
		return nil, err
	}
	check.Set("done", !check.GetBool("done"))
	if err := app.Save(check); err != nil {
		return nil, fmt.Errorf("check: save: %w", err)
	}
	return check, nil
}
