package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"siteledger/testhelpers"
)

func TestProjectMiddleware_LoadsProject(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Skyline")

	req := newGetRequest("/projects/"+project.Id+"/dashboard", map[string]string{"projectId": project.Id})
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := ProjectMiddleware(app)(e); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}

	got := GetProject(e.Request)
	if got == nil {
		t.Fatal("expected project in request context")
	}
	if got.Id != project.Id || got.GetString("name") != "Skyline" {
		t.Errorf("project = %s %q", got.Id, got.GetString("name"))
	}

	loaded, err := requireProject(app, e)
	if err != nil || loaded.Id != project.Id {
		t.Errorf("requireProject() = %v, %v", loaded, err)
	}
}

func TestProjectMiddleware_UnknownProject(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	req := newGetRequest("/projects/missing/dashboard", map[string]string{"projectId": "missing"})
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := ProjectMiddleware(app)(e); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	if GetProject(e.Request) != nil {
		t.Error("unknown project must not be stored in context")
	}
}

func TestRequireProject_WithoutMiddleware(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Skyline")

	req := newGetRequest("/", map[string]string{"projectId": project.Id})
	e := newTestRequestEvent(app, req, httptest.NewRecorder())
	if p, err := requireProject(app, e); err != nil || p.Id != project.Id {
		t.Errorf("requireProject() = %v, %v", p, err)
	}

	req = newGetRequest("/", map[string]string{"projectId": "missing"})
	e = newTestRequestEvent(app, req, httptest.NewRecorder())
	if _, err := requireProject(app, e); err == nil {
		t.Error("expected error for missing project")
	}
}
