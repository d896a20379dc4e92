package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// Setup programmatically creates/ensures every SiteLedger collection exists.
// Safe to call on every startup.
func Setup(app *pocketbase.PocketBase) {
	projects := ensureCollection(app, "projects", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "client_name"})
		c.Fields.Add(&core.TextField{Name: "reference_number"})
		c.Fields.Add(&core.TextField{Name: "site_address"})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  true,
			Values:    []string{"active", "completed", "on_hold"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	setupProgress(app, projects)
	setupLabour(app, projects)
	setupInvoices(app, projects)
}

func setupProgress(app *pocketbase.PocketBase, projects *core.Collection) {
	flats := ensureCollection(app, "flats", func(c *core.Collection) {
		c.Fields.Add(projectRelation(projects))
		c.Fields.Add(&core.TextField{Name: "wing", Required: true})
		c.Fields.Add(&core.NumberField{Name: "floor", OnlyInt: true})
		c.Fields.Add(&core.TextField{Name: "flat_number", Required: true})
		c.Fields.Add(&core.TextField{Name: "flat_type"})
		c.AddIndex("idx_flats_unique", true, "project, wing, flat_number", "")
	})

	workItems := ensureCollection(app, "work_items", func(c *core.Collection) {
		c.Fields.Add(projectRelation(projects))
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "uom", Required: true})
		c.Fields.Add(&core.NumberField{Name: "sort_order"})
		c.Fields.Add(&core.NumberField{Name: "default_qty"})
		// newline separated sub-check labels copied to every flat
		c.Fields.Add(&core.TextField{Name: "checklist"})
	})

	flatWorkItems := ensureCollection(app, "flat_work_items", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "flat",
			Required:      true,
			CollectionId:  flats.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.RelationField{
			Name:          "work_item",
			Required:      true,
			CollectionId:  workItems.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.NumberField{Name: "total_qty"})
		c.Fields.Add(&core.NumberField{Name: "completed_qty"})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
		c.AddIndex("idx_flat_work_items_unique", true, "flat, work_item", "")
	})

	ensureCollection(app, "checklist_checks", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "flat_work_item",
			Required:      true,
			CollectionId:  flatWorkItems.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.NumberField{Name: "sort_order"})
		c.Fields.Add(&core.TextField{Name: "label", Required: true})
		c.Fields.Add(&core.BoolField{Name: "done"})
	})

	ensureCollection(app, "progress_logs", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "flat_work_item",
			Required:      true,
			CollectionId:  flatWorkItems.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "log_date", Required: true})
		c.Fields.Add(&core.NumberField{Name: "qty_done"})
		c.Fields.Add(&core.TextField{Name: "note"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
	})
}

func setupLabour(app *pocketbase.PocketBase, projects *core.Collection) {
	workers := ensureCollection(app, "workers", func(c *core.Collection) {
		c.Fields.Add(projectRelation(projects))
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.SelectField{
			Name:      "skill",
			Values:    []string{"mason", "helper", "supervisor"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.NumberField{Name: "daily_wage", Required: true})
		c.Fields.Add(&core.NumberField{Name: "overtime_rate"})
		c.Fields.Add(&core.TextField{Name: "phone"})
		c.Fields.Add(&core.BoolField{Name: "active"})
	})

	workerRelation := func() *core.RelationField {
		return &core.RelationField{
			Name:          "worker",
			Required:      true,
			CollectionId:  workers.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		}
	}

	ensureCollection(app, "attendance", func(c *core.Collection) {
		c.Fields.Add(workerRelation())
		c.Fields.Add(&core.TextField{Name: "date", Required: true})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  true,
			Values:    []string{"present", "half_day", "absent"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.NumberField{Name: "overtime_hours"})
		c.AddIndex("idx_attendance_unique", true, "worker, date", "")
	})

	ensureCollection(app, "kharci", func(c *core.Collection) {
		c.Fields.Add(workerRelation())
		c.Fields.Add(&core.TextField{Name: "date", Required: true})
		c.Fields.Add(&core.NumberField{Name: "amount", Required: true})
		c.Fields.Add(&core.TextField{Name: "note"})
	})

	ensureCollection(app, "settlements", func(c *core.Collection) {
		c.Fields.Add(workerRelation())
		c.Fields.Add(&core.TextField{Name: "month", Required: true})
		c.Fields.Add(&core.NumberField{Name: "days_worked"})
		c.Fields.Add(&core.NumberField{Name: "gross_wages"})
		c.Fields.Add(&core.NumberField{Name: "overtime_pay"})
		c.Fields.Add(&core.NumberField{Name: "kharci_total"})
		c.Fields.Add(&core.NumberField{Name: "net_payable"})
		c.Fields.Add(&core.NumberField{Name: "advance_balance"})
		c.Fields.Add(&core.BoolField{Name: "paid"})
		c.Fields.Add(&core.TextField{Name: "paid_on"})
		c.AddIndex("idx_settlements_unique", true, "worker, month", "")
	})
}

func setupInvoices(app *pocketbase.PocketBase, projects *core.Collection) {
	invoices := ensureCollection(app, "invoices", func(c *core.Collection) {
		c.Fields.Add(projectRelation(projects))
		c.Fields.Add(&core.SelectField{
			Name:      "invoice_type",
			Required:  true,
			Values:    []string{"proforma", "tax"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "invoice_number", Required: true})
		c.Fields.Add(&core.TextField{Name: "invoice_date"})
		c.Fields.Add(&core.TextField{Name: "client_name", Required: true})
		c.Fields.Add(&core.TextField{Name: "client_address"})
		c.Fields.Add(&core.TextField{Name: "client_gstin"})
		c.Fields.Add(&core.NumberField{Name: "cgst_rate"})
		c.Fields.Add(&core.NumberField{Name: "sgst_rate"})
		c.Fields.Add(&core.SelectField{
			Name:      "amount_basis",
			Values:    []string{"base", "inclusive"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.NumberField{Name: "inclusive_total"})
		c.Fields.Add(&core.TextField{Name: "proforma_ref"})
		c.Fields.Add(&core.TextField{Name: "notes"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
		c.AddIndex("idx_invoices_number", true, "invoice_number", "")
	})

	ensureCollection(app, "invoice_line_items", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "invoice",
			Required:      true,
			CollectionId:  invoices.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.NumberField{Name: "sort_order"})
		c.Fields.Add(&core.TextField{Name: "description", Required: true})
		c.Fields.Add(&core.TextField{Name: "hsn_code"})
		c.Fields.Add(&core.NumberField{Name: "qty"})
		c.Fields.Add(&core.TextField{Name: "uom"})
		c.Fields.Add(&core.NumberField{Name: "rate"})
	})
}

func projectRelation(projects *core.Collection) *core.RelationField {
	return &core.RelationField{
		Name:          "project",
		Required:      true,
		CollectionId:  projects.Id,
		CascadeDelete: true,
		MaxSelect:     1,
	}
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Printf("Collection %q already exists, skipping creation.\n", name)
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}
