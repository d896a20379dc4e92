package services

import (
	"fmt"
	"time"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase"
)

type checkCount struct {
	FlatWorkItem string `db:"flat_work_item"`
	Total        int    `db:"total"`
	Done         int    `db:"done"`
}

// LoadFlatWorkProgress reads one row per flat × work item of a project,
// with checklist counts aggregated in SQL.
func LoadFlatWorkProgress(app *pocketbase.PocketBase, projectID string) ([]FlatWorkProgress, error) {
	params := dbx.Params{"projectId": projectID}

	flats, err := app.FindRecordsByFilter("flats", "project = {:projectId}", "wing,floor,flat_number", 0, 0, params)
	if err != nil {
		return nil, fmt.Errorf("progress: query flats: %w", err)
	}
	workItems, err := app.FindRecordsByFilter("work_items", "project = {:projectId}", "sort_order,name", 0, 0, params)
	if err != nil {
		return nil, fmt.Errorf("progress: query work items: %w", err)
	}
	fwis, err := app.FindRecordsByFilter("flat_work_items", "flat.project = {:projectId}", "", 0, 0, params)
	if err != nil {
		return nil, fmt.Errorf("progress: query flat work items: %w", err)
	}
	if len(fwis) == 0 {
		return []FlatWorkProgress{}, nil
	}

	ids := make([]any, len(fwis))
	for i, r := range fwis {
		ids[i] = r.Id
	}
	var counts []checkCount
	err = app.DB().
		Select("flat_work_item", "COUNT(*) AS total", "COALESCE(SUM(CASE WHEN done THEN 1 ELSE 0 END), 0) AS done").
		From("checklist_checks").
		Where(dbx.In("flat_work_item", ids...)).
		GroupBy("flat_work_item").
		All(&counts)
	if err != nil {
		return nil, fmt.Errorf("progress: count checks: %w", err)
	}
	checks := make(map[string]checkCount, len(counts))
	for _, c := range counts {
		checks[c.FlatWorkItem] = c
	}

	type flatInfo struct {
		number, wing string
		floor        int
	}
	flatByID := make(map[string]flatInfo, len(flats))
	for _, f := range flats {
		flatByID[f.Id] = flatInfo{f.GetString("flat_number"), f.GetString("wing"), f.GetInt("floor")}
	}
	itemNames := make(map[string]string, len(workItems))
	for _, w := range workItems {
		itemNames[w.Id] = w.GetString("name")
	}

	rows := make([]FlatWorkProgress, 0, len(fwis))
	for _, r := range fwis {
		flat, ok := flatByID[r.GetString("flat")]
		if !ok {
			continue
		}
		c := checks[r.Id]
		rows = append(rows, FlatWorkProgress{
			FlatWorkItemID: r.Id,
			FlatID:         r.GetString("flat"),
			FlatNumber:     flat.number,
			Wing:           flat.wing,
			Floor:          flat.floor,
			WorkItemID:     r.GetString("work_item"),
			WorkItemName:   itemNames[r.GetString("work_item")],
			TotalQty:       r.GetFloat("total_qty"),
			CompletedQty:   r.GetFloat("completed_qty"),
			ChecksDone:     c.Done,
			ChecksTotal:    c.Total,
		})
	}
	return rows, nil
}

// BuildProgressReport loads and rolls up a project's progress.
func BuildProgressReport(app *pocketbase.PocketBase, projectID string) (*ProgressReport, error) {
	rows, err := LoadFlatWorkProgress(app, projectID)
	if err != nil {
		return nil, err
	}
	report := RollupProgress(rows)
	return &report, nil
}

// LastProgressAt is when progress was last logged for a project. ok is false
// when nothing has been logged yet.
func LastProgressAt(app *pocketbase.PocketBase, projectID string) (t time.Time, ok bool) {
	logs, err := app.FindRecordsByFilter(
		"progress_logs",
		"flat_work_item.flat.project = {:projectId}",
		"-created",
		1,
		0,
		dbx.Params{"projectId": projectID},
	)
	if err != nil || len(logs) == 0 {
		return time.Time{}, false
	}
	return logs[0].GetDateTime("created").Time(), true
}
