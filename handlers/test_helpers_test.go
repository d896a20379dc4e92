package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/shopspring/decimal"

	"siteledger/config"
)

// newTestRequestEvent creates a RequestEvent suitable for handler tests.
func newTestRequestEvent(app *pocketbase.PocketBase, req *http.Request, rec *httptest.ResponseRecorder) *core.RequestEvent {
	e := &core.RequestEvent{}
	e.App = app
	e.Request = req
	e.Response = rec
	return e
}

func testConfig() *config.Config {
	return &config.Config{
		CompanyName:   "SiteLedger Contractors",
		CompanyGSTIN:  "27AAPFU0939F1ZV",
		DefaultCGST:   decimal.NewFromInt(9),
		DefaultSGST:   decimal.NewFromInt(9),
		InvoicePrefix: "SL",
	}
}

// newFormRequest builds a form POST with the given path values.
func newFormRequest(target string, form url.Values, pathValues map[string]string) *http.Request {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(http.MethodPost, target, body)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for k, v := range pathValues {
		req.SetPathValue(k, v)
	}
	return req
}

func newGetRequest(target string, pathValues map[string]string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range pathValues {
		req.SetPathValue(k, v)
	}
	return req
}

// decodeJSON decodes a recorder body into a map.
func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("response is not JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return out
}

func assertCompleted(t *testing.T, app *pocketbase.PocketBase, fwiID string, want float64) {
	t.Helper()
	rec, err := app.FindRecordById("flat_work_items", fwiID)
	if err != nil {
		t.Fatalf("FindRecordById: %v", err)
	}
	if got := rec.GetFloat("completed_qty"); got != want {
		t.Errorf("completed_qty = %v, want %v", got, want)
	}
}
