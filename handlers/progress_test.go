package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"siteledger/testhelpers"
)

func newUploadRequest(t *testing.T, target, filename, content string, fields map[string]string, pathValues map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("write file part: %v", err)
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("WriteField: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	for k, v := range pathValues {
		req.SetPathValue(k, v)
	}
	return req
}

func TestHandleProgressReport(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Skyline")
	flat := testhelpers.CreateTestFlat(t, app, project.Id, "A", 0, "A-001")
	item := testhelpers.CreateTestWorkItem(t, app, project.Id, "Floor Tiling", 100, "")
	testhelpers.CreateTestFlatWorkItem(t, app, flat.Id, item.Id, 100, 25)

	req := newGetRequest("/projects/"+project.Id+"/progress", map[string]string{"projectId": project.Id})
	rec := httptest.NewRecorder()
	if err := HandleProgressReport(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "A-001") {
		t.Errorf("report does not mention the flat: %s", rec.Body.String())
	}
}

func TestHandleProgressUpdate(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Skyline")
	other := testhelpers.CreateTestProject(t, app, "Other")
	flat := testhelpers.CreateTestFlat(t, app, project.Id, "A", 0, "A-001")
	item := testhelpers.CreateTestWorkItem(t, app, project.Id, "Floor Tiling", 200, "")
	fwi := testhelpers.CreateTestFlatWorkItem(t, app, flat.Id, item.Id, 200, 50)

	tests := []struct {
		name       string
		projectID  string
		form       url.Values
		wantStatus int
		wantQty    float64
	}{
		{"valid", project.Id, url.Values{"completed_qty": {"120"}, "note": {"east side"}, "log_date": {"2026-10-19"}}, http.StatusOK, 120},
		{"blank qty", project.Id, url.Values{"completed_qty": {""}}, http.StatusBadRequest, 120},
		{"not a number", project.Id, url.Values{"completed_qty": {"lots"}}, http.StatusBadRequest, 120},
		{"bad date", project.Id, url.Values{"completed_qty": {"130"}, "log_date": {"19/10/2026"}}, http.StatusBadRequest, 120},
		{"exceeds total", project.Id, url.Values{"completed_qty": {"201"}}, http.StatusBadRequest, 120},
		{"negative", project.Id, url.Values{"completed_qty": {"-1"}}, http.StatusBadRequest, 120},
		{"other project", other.Id, url.Values{"completed_qty": {"150"}}, http.StatusNotFound, 120},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newFormRequest("/projects/"+tt.projectID+"/progress/"+fwi.Id, tt.form,
				map[string]string{"projectId": tt.projectID, "flatWorkItemId": fwi.Id})
			rec := httptest.NewRecorder()

			if err := HandleProgressUpdate(app)(newTestRequestEvent(app, req, rec)); err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}

			updated, err := app.FindRecordById("flat_work_items", fwi.Id)
			if err != nil {
				t.Fatalf("FindRecordById: %v", err)
			}
			if got := updated.GetFloat("completed_qty"); got != tt.wantQty {
				t.Errorf("completed_qty = %v, want %v", got, tt.wantQty)
			}
		})
	}

	logs, err := app.FindRecordsByFilter("progress_logs", "flat_work_item = {:id}", "", 0, 0, map[string]any{"id": fwi.Id})
	if err != nil {
		t.Fatalf("query logs: %v", err)
	}
	if len(logs) != 1 || logs[0].GetFloat("qty_done") != 70 || logs[0].GetString("note") != "east side" {
		t.Errorf("logs = %d, want one +70 entry", len(logs))
	}
}

func TestHandleCheckToggle(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Skyline")
	other := testhelpers.CreateTestProject(t, app, "Other")
	flat := testhelpers.CreateTestFlat(t, app, project.Id, "A", 0, "A-001")
	item := testhelpers.CreateTestWorkItem(t, app, project.Id, "Floor Tiling", 100, "")
	fwi := testhelpers.CreateTestFlatWorkItem(t, app, flat.Id, item.Id, 100, 0)
	check := testhelpers.CreateTestCheck(t, app, fwi.Id, "Levelling", false)

	req := newFormRequest("/", nil, map[string]string{"projectId": project.Id, "checkId": check.Id})
	rec := httptest.NewRecorder()
	if err := HandleCheckToggle(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if body := decodeJSON(t, rec); body["done"] != true {
		t.Errorf("done = %v, want true", body["done"])
	}

	req = newFormRequest("/", nil, map[string]string{"projectId": other.Id, "checkId": check.Id})
	rec = httptest.NewRecorder()
	if err := HandleCheckToggle(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("cross-project status = %d, want 404", rec.Code)
	}
}

func TestHandleProgressImport(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Skyline")
	flat := testhelpers.CreateTestFlat(t, app, project.Id, "A", 0, "A-001")
	item := testhelpers.CreateTestWorkItem(t, app, project.Id, "Floor Tiling", 650, "")
	fwi := testhelpers.CreateTestFlatWorkItem(t, app, flat.Id, item.Id, 650, 100)
	paths := map[string]string{"projectId": project.Id}

	good := "Wing,Flat,Work Item,Completed Qty\nA,A-001,Floor Tiling,300\n"
	bad := "Wing,Flat,Work Item,Completed Qty\nA,A-001,Floor Tiling,900\n"

	t.Run("preview does not write", func(t *testing.T) {
		req := newUploadRequest(t, "/", "site.csv", good, nil, paths)
		rec := httptest.NewRecorder()
		if err := HandleProgressImport(app)(newTestRequestEvent(app, req, rec)); err != nil {
			t.Fatalf("handler returned error: %v", err)
		}
		body := decodeJSON(t, rec)
		if body["committed"] != false {
			t.Errorf("committed = %v, want false", body["committed"])
		}
		assertCompleted(t, app, fwi.Id, 100)
	})

	t.Run("errors block commit", func(t *testing.T) {
		req := newUploadRequest(t, "/", "site.csv", bad, map[string]string{"commit": "true"}, paths)
		rec := httptest.NewRecorder()
		if err := HandleProgressImport(app)(newTestRequestEvent(app, req, rec)); err != nil {
			t.Fatalf("handler returned error: %v", err)
		}
		body := decodeJSON(t, rec)
		if body["committed"] != false {
			t.Errorf("committed = %v, want false", body["committed"])
		}
		assertCompleted(t, app, fwi.Id, 100)
	})

	t.Run("error report download", func(t *testing.T) {
		req := newUploadRequest(t, "/", "site.csv", bad, map[string]string{"errors": "xlsx"}, paths)
		rec := httptest.NewRecorder()
		if err := HandleProgressImport(app)(newTestRequestEvent(app, req, rec)); err != nil {
			t.Fatalf("handler returned error: %v", err)
		}
		if ct := rec.Header().Get("Content-Type"); ct != mimeXLSX {
			t.Errorf("Content-Type = %q", ct)
		}
		f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
		if err != nil {
			t.Fatalf("error report is not valid Excel: %v", err)
		}
		f.Close()
	})

	t.Run("unsupported file", func(t *testing.T) {
		req := newUploadRequest(t, "/", "site.pdf", good, nil, paths)
		rec := httptest.NewRecorder()
		if err := HandleProgressImport(app)(newTestRequestEvent(app, req, rec)); err != nil {
			t.Fatalf("handler returned error: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("commit applies", func(t *testing.T) {
		req := newUploadRequest(t, "/", "site.csv", good, map[string]string{"commit": "true"}, paths)
		rec := httptest.NewRecorder()
		if err := HandleProgressImport(app)(newTestRequestEvent(app, req, rec)); err != nil {
			t.Fatalf("handler returned error: %v", err)
		}
		body := decodeJSON(t, rec)
		if body["committed"] != true || body["applied"] != float64(1) {
			t.Errorf("committed = %v, applied = %v", body["committed"], body["applied"])
		}
		assertCompleted(t, app, fwi.Id, 300)
	})
}

func TestHandleProgressImport_NoFile(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Skyline")

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	_ = w.WriteField("commit", "true")
	_ = w.Close()
	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.SetPathValue("projectId", project.Id)
	rec := httptest.NewRecorder()

	if err := HandleProgressImport(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleProgressExport(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Skyline Towers")
	flat := testhelpers.CreateTestFlat(t, app, project.Id, "A", 0, "A-001")
	item := testhelpers.CreateTestWorkItem(t, app, project.Id, "Floor Tiling", 100, "")
	testhelpers.CreateTestFlatWorkItem(t, app, flat.Id, item.Id, 100, 25)

	req := newGetRequest("/", map[string]string{"projectId": project.Id})
	rec := httptest.NewRecorder()
	if err := HandleProgressExport(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "Skyline-Towers-progress-") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("export is not valid Excel: %v", err)
	}
	defer f.Close()
	if len(f.GetSheetList()) != 3 {
		t.Errorf("sheets = %v", f.GetSheetList())
	}
}
