package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// ── Definition structs ───────────────────────────────────────────────────

type workItemDef struct {
	sortOrder  int
	name       string
	uom        string
	defaultQty float64
	checklist  string
}

type workerDef struct {
	name         string
	skill        string
	dailyWage    float64
	overtimeRate float64
	phone        string
}

type attendanceDef struct {
	date          string
	status        string
	overtimeHours float64
}

type kharciDef struct {
	date   string
	amount float64
	note   string
}

type invoiceLineDef struct {
	description string
	hsnCode     string
	qty         float64
	uom         string
	rate        float64
}

// progressDef marks seeded progress on one flat × work item.
type progressDef struct {
	wing       string
	flatNumber string
	workItem   string
	completed  float64
	checksDone int
}

// Seed populates all collections with a demo residential tiling project.
// It is safe to call on every startup because it returns early if any
// project records already exist.
func Seed(app *pocketbase.PocketBase) error {
	// ── idempotency: skip if projects already exist ──────────────────
	projectsCol, err := app.FindCollectionByNameOrId("projects")
	if err != nil {
		return fmt.Errorf("seed: could not find projects collection: %w", err)
	}
	existing, err := app.FindAllRecords(projectsCol)
	if err != nil {
		return fmt.Errorf("seed: could not query projects: %w", err)
	}
	if len(existing) > 0 {
		return nil // already seeded
	}

	log.Println("seed: projects collection is empty – inserting seed data …")

	cols := map[string]*core.Collection{}
	for _, name := range []string{
		"flats", "work_items", "workers", "attendance", "kharci",
		"invoices", "invoice_line_items",
	} {
		c, err := app.FindCollectionByNameOrId(name)
		if err != nil {
			return fmt.Errorf("seed: could not find %s collection: %w", name, err)
		}
		cols[name] = c
	}

	// ── project ──────────────────────────────────────────────────────
	project := core.NewRecord(projectsCol)
	project.Set("name", "Skyline Residency — Tiling")
	project.Set("client_name", "Skyline Developers Pvt Ltd")
	project.Set("reference_number", "SKY")
	project.Set("site_address", "Plot 14, Sector 21, Kharghar, Navi Mumbai 410210")
	project.Set("status", "active")
	if err := app.Save(project); err != nil {
		return fmt.Errorf("seed: save project: %w", err)
	}

	// ── flats: two wings, ground + 3 floors, two flats per floor ─────
	for _, wing := range []string{"A", "B"} {
		for floor := 0; floor <= 3; floor++ {
			for unit := 1; unit <= 2; unit++ {
				r := core.NewRecord(cols["flats"])
				r.Set("project", project.Id)
				r.Set("wing", wing)
				r.Set("floor", floor)
				r.Set("flat_number", fmt.Sprintf("%s-%d%02d", wing, floor, unit))
				if unit == 1 {
					r.Set("flat_type", "2BHK")
				} else {
					r.Set("flat_type", "1BHK")
				}
				if err := app.Save(r); err != nil {
					return fmt.Errorf("seed: save flat %s: %w", r.GetString("flat_number"), err)
				}
			}
		}
	}

	// ── work items ───────────────────────────────────────────────────
	workItems := []workItemDef{
		{1, "Floor Tiling", "Sqft", 650, "Levelling\nTile laying\nGrouting\nCleaning"},
		{2, "Bathroom Dado", "Sqft", 180, "Waterproofing\nDado tiles\nGrouting"},
		{3, "Kitchen Platform", "Rft", 12, "Granite top\nSkirting"},
		{4, "Skirting", "Rft", 140, ""},
	}
	for _, d := range workItems {
		r := core.NewRecord(cols["work_items"])
		r.Set("project", project.Id)
		r.Set("sort_order", d.sortOrder)
		r.Set("name", d.name)
		r.Set("uom", d.uom)
		r.Set("default_qty", d.defaultQty)
		r.Set("checklist", d.checklist)
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: save work item %q: %w", d.name, err)
		}
	}

	if _, err := EnsureFlatWorkItems(app, project.Id); err != nil {
		return fmt.Errorf("seed: flat work items: %w", err)
	}

	progress := []progressDef{
		{"A", "A-001", "Floor Tiling", 650, 4},
		{"A", "A-001", "Bathroom Dado", 180, 3},
		{"A", "A-001", "Skirting", 140, 0},
		{"A", "A-002", "Floor Tiling", 420, 2},
		{"A", "A-002", "Bathroom Dado", 60, 1},
		{"A", "A-101", "Floor Tiling", 120, 1},
		{"B", "B-001", "Floor Tiling", 650, 3},
	}
	for _, p := range progress {
		if err := seedProgress(app, project.Id, p); err != nil {
			return err
		}
	}

	// ── workers, attendance and kharci ───────────────────────────────
	workers := []struct {
		def        workerDef
		attendance []attendanceDef
		kharci     []kharciDef
	}{
		{
			workerDef{"Ramesh Yadav", "mason", 900, 125, "9820012345"},
			[]attendanceDef{
				{"2026-10-01", "present", 2},
				{"2026-10-02", "present", 0},
				{"2026-10-03", "half_day", 0},
				{"2026-10-05", "present", 1.5},
			},
			[]kharciDef{{"2026-10-02", 500, "Ration"}, {"2026-10-05", 300, "Travel"}},
		},
		{
			workerDef{"Suresh Pal", "mason", 850, 110, "9820023456"},
			[]attendanceDef{
				{"2026-10-01", "present", 0},
				{"2026-10-02", "absent", 0},
				{"2026-10-03", "present", 2},
			},
			[]kharciDef{{"2026-10-01", 1000, "Advance"}},
		},
		{
			workerDef{"Manoj Kumar", "helper", 600, 75, ""},
			[]attendanceDef{
				{"2026-10-01", "present", 0},
				{"2026-10-02", "present", 0},
				{"2026-10-03", "present", 0},
			},
			nil,
		},
	}
	for _, w := range workers {
		r := core.NewRecord(cols["workers"])
		r.Set("project", project.Id)
		r.Set("name", w.def.name)
		r.Set("skill", w.def.skill)
		r.Set("daily_wage", w.def.dailyWage)
		r.Set("overtime_rate", w.def.overtimeRate)
		r.Set("phone", w.def.phone)
		r.Set("active", true)
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: save worker %q: %w", w.def.name, err)
		}

		for _, a := range w.attendance {
			ar := core.NewRecord(cols["attendance"])
			ar.Set("worker", r.Id)
			ar.Set("date", a.date)
			ar.Set("status", a.status)
			ar.Set("overtime_hours", a.overtimeHours)
			if err := app.Save(ar); err != nil {
				return fmt.Errorf("seed: save attendance %s for %q: %w", a.date, w.def.name, err)
			}
		}
		for _, k := range w.kharci {
			kr := core.NewRecord(cols["kharci"])
			kr.Set("worker", r.Id)
			kr.Set("date", k.date)
			kr.Set("amount", k.amount)
			kr.Set("note", k.note)
			if err := app.Save(kr); err != nil {
				return fmt.Errorf("seed: save kharci %s for %q: %w", k.date, w.def.name, err)
			}
		}
	}

	// ── proforma invoice ─────────────────────────────────────────────
	inv := core.NewRecord(cols["invoices"])
	inv.Set("project", project.Id)
	inv.Set("invoice_type", "proforma")
	inv.Set("invoice_number", "SL-PI-SKY-26-27-001")
	inv.Set("invoice_date", "2026-10-06")
	inv.Set("client_name", "Skyline Developers Pvt Ltd")
	inv.Set("client_address", "Office 302, Cyber One, Vashi, Navi Mumbai 400703")
	inv.Set("client_gstin", "27AABCS1234F1Z5")
	inv.Set("cgst_rate", 9)
	inv.Set("sgst_rate", 9)
	inv.Set("amount_basis", "base")
	inv.Set("notes", "Running bill 1 for Wing A ground floor.")
	if err := app.Save(inv); err != nil {
		return fmt.Errorf("seed: save invoice: %w", err)
	}

	lines := []invoiceLineDef{
		{"Vitrified floor tiling (labour)", "995454", 1720, "Sqft", 28},
		{"Bathroom dado tiling (labour)", "995454", 240, "Sqft", 35},
		{"Skirting (labour)", "995454", 140, "Rft", 18},
	}
	for i, l := range lines {
		r := core.NewRecord(cols["invoice_line_items"])
		r.Set("invoice", inv.Id)
		r.Set("sort_order", i+1)
		r.Set("description", l.description)
		r.Set("hsn_code", l.hsnCode)
		r.Set("qty", l.qty)
		r.Set("uom", l.uom)
		r.Set("rate", l.rate)
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: save invoice line %q: %w", l.description, err)
		}
	}

	log.Println("seed: all seed data inserted successfully (1 project, 16 flats, 4 work items, 3 workers, 1 invoice)")
	return nil
}

func seedProgress(app *pocketbase.PocketBase, projectID string, p progressDef) error {
	fwi, err := app.FindFirstRecordByFilter(
		"flat_work_items",
		"flat.project = {:projectId} && flat.wing = {:wing} && flat.flat_number = {:flat} && work_item.name = {:item}",
		map[string]any{"projectId": projectID, "wing": p.wing, "flat": p.flatNumber, "item": p.workItem},
	)
	if err != nil {
		return fmt.Errorf("seed: find %s %s: %w", p.flatNumber, p.workItem, err)
	}
	fwi.Set("completed_qty", p.completed)
	if err := app.Save(fwi); err != nil {
		return fmt.Errorf("seed: save progress %s %s: %w", p.flatNumber, p.workItem, err)
	}

	if p.checksDone == 0 {
		return nil
	}
	checks, err := app.FindRecordsByFilter(
		"checklist_checks",
		"flat_work_item = {:id}",
		"sort_order", p.checksDone, 0,
		map[string]any{"id": fwi.Id},
	)
	if err != nil {
		return fmt.Errorf("seed: checks for %s %s: %w", p.flatNumber, p.workItem, err)
	}
	for _, c := range checks {
		c.Set("done", true)
		if err := app.Save(c); err != nil {
			return fmt.Errorf("seed: save check: %w", err)
		}
	}
	return nil
}
