package services

import (
	"errors"
	"testing"
	"time"

	"siteledger/testhelpers"
)

func TestUpdateProgress(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Skyline")
	other := testhelpers.CreateTestProject(t, app, "Other")
	flat := testhelpers.CreateTestFlat(t, app, project.Id, "A", 0, "A-001")
	item := testhelpers.CreateTestWorkItem(t, app, project.Id, "Floor Tiling", 650, "")
	fwi := testhelpers.CreateTestFlatWorkItem(t, app, flat.Id, item.Id, 650, 100)
	day := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

	updated, err := UpdateProgress(app, project.Id, fwi.Id, 300, "second coat", day)
	if err != nil {
		t.Fatalf("UpdateProgress() error = %v", err)
	}
	if got := updated.GetFloat("completed_qty"); got != 300 {
		t.Errorf("completed_qty = %v, want 300", got)
	}

	logs, err := app.FindRecordsByFilter("progress_logs", "flat_work_item = {:id}", "", 0, 0, map[string]any{"id": fwi.Id})
	if err != nil {
		t.Fatalf("query logs: %v", err)
	}
	if len(logs) != 1 || logs[0].GetFloat("qty_done") != 200 || logs[0].GetString("note") != "second coat" {
		t.Fatalf("logs = %d, want one +200 entry", len(logs))
	}

	// Same quantity again writes no log.
	if _, err := UpdateProgress(app, project.Id, fwi.Id, 300, "", day); err != nil {
		t.Fatalf("UpdateProgress() error = %v", err)
	}
	if n, _ := app.CountRecords("progress_logs"); n != 1 {
		t.Errorf("progress_logs = %d, want 1", n)
	}

	tests := []struct {
		name      string
		projectID string
		qty       float64
		wantErr   error
	}{
		{"exceeds total", project.Id, 651, ErrInvalidAmount},
		{"negative", project.Id, -1, ErrInvalidAmount},
		{"other project", other.Id, 10, ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := UpdateProgress(app, tt.projectID, fwi.Id, tt.qty, "", day); !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestToggleCheck(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Skyline")
	other := testhelpers.CreateTestProject(t, app, "Other")
	flat := testhelpers.CreateTestFlat(t, app, project.Id, "A", 0, "A-001")
	item := testhelpers.CreateTestWorkItem(t, app, project.Id, "Floor Tiling", 650, "")
	fwi := testhelpers.CreateTestFlatWorkItem(t, app, flat.Id, item.Id, 650, 0)
	check := testhelpers.CreateTestCheck(t, app, fwi.Id, "Grouting", false)

	toggled, err := ToggleCheck(app, project.Id, check.Id)
	if err != nil {
		t.Fatalf("ToggleCheck() error = %v", err)
	}
	if !toggled.GetBool("done") {
		t.Error("expected done after first toggle")
	}
	toggled, err = ToggleCheck(app, project.Id, check.Id)
	if err != nil {
		t.Fatalf("ToggleCheck() error = %v", err)
	}
	if toggled.GetBool("done") {
		t.Error("expected not done after second toggle")
	}

	if _, err := ToggleCheck(app, other.Id, check.Id); !errors.Is(err, ErrNotFound) {
		t.Errorf("cross-project toggle error = %v, want ErrNotFound", err)
	}
}
