package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

type contextKey string

const ProjectKey contextKey = "project"

// GetProject returns the project loaded by ProjectMiddleware, or nil.
func GetProject(r *http.Request) *core.Record {
	if val, ok := r.Context().Value(ProjectKey).(*core.Record); ok {
		return val
	}
	return nil
}

// ProjectMiddleware loads the {projectId} path project into the request
// context and responds 404 when it does not exist.
func ProjectMiddleware(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		if projectID == "" {
			return e.Next()
		}

		project, err := app.FindRecordById("projects", projectID)
		if err != nil {
			log.Printf("middleware: project %s not found: %v", projectID, err)
			return ErrorToast(e, http.StatusNotFound, "Project not found")
		}

		ctx := context.WithValue(e.Request.Context(), ProjectKey, project)
		e.Request = e.Request.WithContext(ctx)
		return e.Next()
	}
}

// requireProject returns the request's project, loading it when the
// middleware did not run.
func requireProject(app *pocketbase.PocketBase, e *core.RequestEvent) (*core.Record, error) {
	if p := GetProject(e.Request); p != nil {
		return p, nil
	}
	return app.FindRecordById("projects", e.Request.PathValue("projectId"))
}
