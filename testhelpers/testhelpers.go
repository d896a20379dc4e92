// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"siteledger/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

func save(t *testing.T, app *pocketbase.PocketBase, collection string, fields map[string]any) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId(collection)
	if err != nil {
		t.Fatalf("failed to find %s collection: %v", collection, err)
	}

	record := core.NewRecord(col)
	for k, v := range fields {
		record.Set(k, v)
	}
	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test %s record: %v", collection, err)
	}
	return record
}

// CreateTestProject creates a project record with the given name and returns it.
func CreateTestProject(t *testing.T, app *pocketbase.PocketBase, name string) *core.Record {
	t.Helper()
	return save(t, app, "projects", map[string]any{
		"name":             name,
		"client_name":      "Test Builder",
		"reference_number": "TST",
		"status":           "active",
	})
}

// CreateTestFlat creates a flat in a project.
func CreateTestFlat(t *testing.T, app *pocketbase.PocketBase, projectID, wing string, floor int, flatNumber string) *core.Record {
	t.Helper()
	return save(t, app, "flats", map[string]any{
		"project":     projectID,
		"wing":        wing,
		"floor":       floor,
		"flat_number": flatNumber,
	})
}

// CreateTestWorkItem creates a work item with a default per-flat quantity and
// newline separated checklist.
func CreateTestWorkItem(t *testing.T, app *pocketbase.PocketBase, projectID, name string, defaultQty float64, checklist string) *core.Record {
	t.Helper()
	return save(t, app, "work_items", map[string]any{
		"project":     projectID,
		"name":        name,
		"uom":         "Sqft",
		"default_qty": defaultQty,
		"checklist":   checklist,
	})
}

// CreateTestFlatWorkItem links a flat to a work item with the given quantities.
func CreateTestFlatWorkItem(t *testing.T, app *pocketbase.PocketBase, flatID, workItemID string, totalQty, completedQty float64) *core.Record {
	t.Helper()
	return save(t, app, "flat_work_items", map[string]any{
		"flat":          flatID,
		"work_item":     workItemID,
		"total_qty":     totalQty,
		"completed_qty": completedQty,
	})
}

// CreateTestCheck adds a checklist check under a flat work item.
func CreateTestCheck(t *testing.T, app *pocketbase.PocketBase, flatWorkItemID, label string, done bool) *core.Record {
	t.Helper()
	return save(t, app, "checklist_checks", map[string]any{
		"flat_work_item": flatWorkItemID,
		"label":          label,
		"done":           done,
	})
}

// CreateTestWorker creates an active worker in a project.
func CreateTestWorker(t *testing.T, app *pocketbase.PocketBase, projectID, name string, dailyWage, overtimeRate float64) *core.Record {
	t.Helper()
	return save(t, app, "workers", map[string]any{
		"project":       projectID,
		"name":          name,
		"skill":         "mason",
		"daily_wage":    dailyWage,
		"overtime_rate": overtimeRate,
		"active":        true,
	})
}

// CreateTestAttendance marks a worker's day.
func CreateTestAttendance(t *testing.T, app *pocketbase.PocketBase, workerID, date, status string, overtimeHours float64) *core.Record {
	t.Helper()
	return save(t, app, "attendance", map[string]any{
		"worker":         workerID,
		"date":           date,
		"status":         status,
		"overtime_hours": overtimeHours,
	})
}

// CreateTestKharci records an advance paid to a worker.
func CreateTestKharci(t *testing.T, app *pocketbase.PocketBase, workerID, date string, amount float64) *core.Record {
	t.Helper()
	return save(t, app, "kharci", map[string]any{
		"worker": workerID,
		"date":   date,
		"amount": amount,
	})
}

// CreateTestInvoice creates an invoice record linked to a project.
func CreateTestInvoice(t *testing.T, app *pocketbase.PocketBase, projectID, invoiceType, invoiceNumber string) *core.Record {
	t.Helper()
	basis := "base"
	if invoiceType == "tax" {
		basis = "inclusive"
	}
	return save(t, app, "invoices", map[string]any{
		"project":        projectID,
		"invoice_type":   invoiceType,
		"invoice_number": invoiceNumber,
		"invoice_date":   "2026-10-06",
		"client_name":    "Test Builder",
		"client_gstin":   "27AABCS1234F1Z5",
		"cgst_rate":      9,
		"sgst_rate":      9,
		"amount_basis":   basis,
	})
}

// CreateTestInvoiceLineItem creates an invoice line item record.
func CreateTestInvoiceLineItem(t *testing.T, app *pocketbase.PocketBase, invoiceID string, sortOrder int, description string, qty, rate float64) *core.Record {
	t.Helper()
	return save(t, app, "invoice_line_items", map[string]any{
		"invoice":     invoiceID,
		"sort_order":  sortOrder,
		"description": description,
		"hsn_code":    "995454",
		"qty":         qty,
		"uom":         "Sqft",
		"rate":        rate,
	})
}

// AssertHTMLContains checks that body contains all specified fragments.
func AssertHTMLContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected HTML to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
