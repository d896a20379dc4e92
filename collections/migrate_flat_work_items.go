package collections

import (
	"fmt"
	"log"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// MigrateFlatWorkItems back-fills a flat_work_items row, with its checklist
// rows, for every flat × work item pair of the same project that is missing
// one. Safe to call on every startup -- returns early if nothing is missing.
func MigrateFlatWorkItems(app *pocketbase.PocketBase) error {
	projectsCol, err := app.FindCollectionByNameOrId("projects")
	if err != nil {
		return fmt.Errorf("migrate: could not find projects collection: %w", err)
	}
	projects, err := app.FindAllRecords(projectsCol)
	if err != nil {
		return fmt.Errorf("migrate: could not query projects: %w", err)
	}

	total := 0
	for _, p := range projects {
		created, err := EnsureFlatWorkItems(app, p.Id)
		if err != nil {
			log.Printf("migrate: project %s: %v\n", p.Id, err)
			continue
		}
		total += created
	}
	if total > 0 {
		log.Printf("migrate: created %d flat work item(s).\n", total)
	}
	return nil
}

// EnsureFlatWorkItems creates the missing flat × work item rows of one
// project and returns how many were created.
func EnsureFlatWorkItems(app *pocketbase.PocketBase, projectID string) (int, error) {
	fwiCol, err := app.FindCollectionByNameOrId("flat_work_items")
	if err != nil {
		return 0, fmt.Errorf("could not find flat_work_items collection: %w", err)
	}
	checksCol, err := app.FindCollectionByNameOrId("checklist_checks")
	if err != nil {
		return 0, fmt.Errorf("could not find checklist_checks collection: %w", err)
	}

	params := map[string]any{"projectId": projectID}
	flats, err := app.FindRecordsByFilter("flats", "project = {:projectId}", "wing,floor,flat_number", 0, 0, params)
	if err != nil {
		return 0, fmt.Errorf("could not query flats: %w", err)
	}
	workItems, err := app.FindRecordsByFilter("work_items", "project = {:projectId}", "sort_order", 0, 0, params)
	if err != nil {
		return 0, fmt.Errorf("could not query work items: %w", err)
	}
	if len(flats) == 0 || len(workItems) == 0 {
		return 0, nil
	}

	existing, err := app.FindRecordsByFilter(fwiCol, "flat.project = {:projectId}", "", 0, 0, params)
	if err != nil {
		return 0, fmt.Errorf("could not query flat work items: %w", err)
	}
	have := make(map[string]bool, len(existing))
	for _, r := range existing {
		have[r.GetString("flat")+"|"+r.GetString("work_item")] = true
	}

	created := 0
	for _, flat := range flats {
		for _, wi := range workItems {
			if have[flat.Id+"|"+wi.Id] {
				continue
			}

			fwi := core.NewRecord(fwiCol)
			fwi.Set("flat", flat.Id)
			fwi.Set("work_item", wi.Id)
			fwi.Set("total_qty", wi.GetFloat("default_qty"))
			fwi.Set("completed_qty", 0)
			if err := app.Save(fwi); err != nil {
				return created, fmt.Errorf("save flat work item %s/%s: %w", flat.GetString("flat_number"), wi.GetString("name"), err)
			}

			for i, label := range ChecklistLabels(wi.GetString("checklist")) {
				c := core.NewRecord(checksCol)
				c.Set("flat_work_item", fwi.Id)
				c.Set("sort_order", i+1)
				c.Set("label", label)
				c.Set("done", false)
				if err := app.Save(c); err != nil {
					return created, fmt.Errorf("save check %q: %w", label, err)
				}
			}
			created++
		}
	}
	return created, nil
}

// ChecklistLabels splits a work item's checklist text into trimmed,
// non-empty labels.
func ChecklistLabels(text string) []string {
	var labels []string
	for _, l := range strings.Split(text, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			labels = append(labels, l)
		}
	}
	return labels
}
