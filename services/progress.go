package services

import (
	"math"
	"sort"
	"strconv"
)

// FlatWorkProgress is the completion state of one work item in one flat.
type FlatWorkProgress struct {
	FlatWorkItemID string
	FlatID         string
	FlatNumber     string
	Wing           string
	Floor          int
	WorkItemID     string
	WorkItemName   string
	TotalQty       float64
	CompletedQty   float64
	ChecksDone     int
	ChecksTotal    int
}

// Applicable reports whether the work item applies to the flat at all.
func (p FlatWorkProgress) Applicable() bool {
	return p.TotalQty > 0 || p.ChecksTotal > 0
}

// Started reports whether any work has been recorded.
func (p FlatWorkProgress) Started() bool {
	return p.CompletedQty > 0 || p.ChecksDone > 0
}

// Percent is the quantity completion of this flat's work item.
func (p FlatWorkProgress) Percent() float64 {
	return CompletionPercent(p.CompletedQty, p.TotalQty)
}

// Ratio is a count-based percentage.
type Ratio struct {
	Done    int     `json:"done"`
	Total   int     `json:"total"`
	Percent float64 `json:"percent"`
}

func newRatio(done, total int) Ratio {
	r := Ratio{Done: done, Total: total}
	if total > 0 {
		r.Percent = float64(done) / float64(total) * 100
	}
	return r
}

// CompletionPercent returns completed/total as a percentage clamped to [0,100].
// A non-positive total yields 0.
func CompletionPercent(completed, total float64) float64 {
	if total <= 0 || math.IsNaN(completed) || math.IsNaN(total) {
		return 0
	}
	pct := completed / total * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// FlatCoverageRatio is the share of applicable flats with any recorded progress.
// A flat counts once no matter how many of its work items are in rows.
func FlatCoverageRatio(rows []FlatWorkProgress) Ratio {
	applicable := make(map[string]bool)
	started := make(map[string]bool)
	for _, r := range rows {
		if !r.Applicable() {
			continue
		}
		applicable[r.FlatID] = true
		if r.Started() {
			started[r.FlatID] = true
		}
	}
	return newRatio(len(started), len(applicable))
}

// ChecklistCompletionRatio is completed sub-checks over all sub-checks.
func ChecklistCompletionRatio(rows []FlatWorkProgress) Ratio {
	var done, total int
	for _, r := range rows {
		done += min(r.ChecksDone, r.ChecksTotal)
		total += r.ChecksTotal
	}
	return newRatio(done, total)
}

// QuantityPercent is Σ clamped completed quantity over Σ total quantity.
// Only meaningful for rows that share a unit of measure.
func QuantityPercent(rows []FlatWorkProgress) float64 {
	var done, total float64
	for _, r := range rows {
		if r.TotalQty <= 0 {
			continue
		}
		done += math.Max(0, math.Min(r.CompletedQty, r.TotalQty))
		total += r.TotalQty
	}
	return CompletionPercent(done, total)
}

// ProgressSummary carries both rollup modes for one group of rows.
type ProgressSummary struct {
	Key               string `json:"key"`
	Label             string `json:"label"`
	FlatCoverage      Ratio  `json:"flat_coverage"`
	ChecklistProgress Ratio  `json:"checklist_completion"`
}

// WorkItemSummary adds the quantity rollup, which only makes sense per work item.
type WorkItemSummary struct {
	ProgressSummary
	CompletedQty    float64 `json:"completed_qty"`
	TotalQty        float64 `json:"total_qty"`
	QuantityPercent float64 `json:"quantity_percent"`
}

// FlatItemPercent is one cell of the flat × work item grid.
type FlatItemPercent struct {
	FlatWorkItemID string  `json:"flat_work_item_id"`
	WorkItemID     string  `json:"work_item_id"`
	WorkItemName   string  `json:"work_item_name"`
	CompletedQty   float64 `json:"completed_qty"`
	TotalQty       float64 `json:"total_qty"`
	Percent        float64 `json:"percent"`
	ChecksDone     int     `json:"checks_done"`
	ChecksTotal    int     `json:"checks_total"`
}

// FlatSummary is the per-flat checklist view.
type FlatSummary struct {
	FlatID     string            `json:"flat_id"`
	FlatNumber string            `json:"flat_number"`
	Wing       string            `json:"wing"`
	Floor      int               `json:"floor"`
	Items      []FlatItemPercent `json:"items"`
	Checklist  Ratio             `json:"checklist_completion"`
}

// ProgressReport is the full rollup for a project.
type ProgressReport struct {
	Project   ProgressSummary   `json:"project"`
	Wings     []ProgressSummary `json:"wings"`
	Floors    []ProgressSummary `json:"floors"`
	WorkItems []WorkItemSummary `json:"work_items"`
	Flats     []FlatSummary     `json:"flats"`
}

// RollupProgress aggregates flat-level rows into project, wing, floor and
// work-item summaries.
func RollupProgress(rows []FlatWorkProgress) ProgressReport {
	report := ProgressReport{
		Project: summarize("project", "Project", rows),
	}

	byWing := groupRows(rows, func(r FlatWorkProgress) string { return r.Wing })
	for _, wing := range sortedKeys(byWing) {
		report.Wings = append(report.Wings, summarize(wing, "Wing "+wing, byWing[wing]))
	}

	byFloor := groupRows(rows, func(r FlatWorkProgress) string { return FloorKey(r.Wing, r.Floor) })
	floorKeys := sortedKeys(byFloor)
	sort.SliceStable(floorKeys, func(i, j int) bool {
		a, b := byFloor[floorKeys[i]][0], byFloor[floorKeys[j]][0]
		if a.Wing != b.Wing {
			return a.Wing < b.Wing
		}
		return a.Floor < b.Floor
	})
	for _, key := range floorKeys {
		first := byFloor[key][0]
		report.Floors = append(report.Floors, summarize(key, FloorLabel(first.Wing, first.Floor), byFloor[key]))
	}

	byItem := groupRows(rows, func(r FlatWorkProgress) string { return r.WorkItemID })
	for _, id := range sortedKeys(byItem) {
		group := byItem[id]
		s := WorkItemSummary{
			ProgressSummary: summarize(id, group[0].WorkItemName, group),
			QuantityPercent: QuantityPercent(group),
		}
		for _, r := range group {
			s.CompletedQty += math.Max(0, math.Min(r.CompletedQty, r.TotalQty))
			s.TotalQty += math.Max(0, r.TotalQty)
		}
		report.WorkItems = append(report.WorkItems, s)
	}
	sort.SliceStable(report.WorkItems, func(i, j int) bool {
		return report.WorkItems[i].Label < report.WorkItems[j].Label
	})

	byFlat := groupRows(rows, func(r FlatWorkProgress) string { return r.FlatID })
	for _, id := range sortedKeys(byFlat) {
		group := byFlat[id]
		fs := FlatSummary{
			FlatID:     id,
			FlatNumber: group[0].FlatNumber,
			Wing:       group[0].Wing,
			Floor:      group[0].Floor,
			Checklist:  ChecklistCompletionRatio(group),
		}
		for _, r := range group {
			fs.Items = append(fs.Items, FlatItemPercent{
				FlatWorkItemID: r.FlatWorkItemID,
				WorkItemID:     r.WorkItemID,
				WorkItemName:   r.WorkItemName,
				CompletedQty:   r.CompletedQty,
				TotalQty:       r.TotalQty,
				Percent:        r.Percent(),
				ChecksDone:     r.ChecksDone,
				ChecksTotal:    r.ChecksTotal,
			})
		}
		report.Flats = append(report.Flats, fs)
	}
	sort.SliceStable(report.Flats, func(i, j int) bool {
		a, b := report.Flats[i], report.Flats[j]
		if a.Wing != b.Wing {
			return a.Wing < b.Wing
		}
		if a.Floor != b.Floor {
			return a.Floor < b.Floor
		}
		return a.FlatNumber < b.FlatNumber
	})

	return report
}

// FloorKey identifies a floor within a wing.
func FloorKey(wing string, floor int) string {
	return wing + "/" + strconv.Itoa(floor)
}

// FloorLabel renders "Wing A - Floor 3", with floor 0 shown as Ground.
func FloorLabel(wing string, floor int) string {
	if floor == 0 {
		return "Wing " + wing + " - Ground"
	}
	return "Wing " + wing + " - Floor " + strconv.Itoa(floor)
}

func summarize(key, label string, rows []FlatWorkProgress) ProgressSummary {
	return ProgressSummary{
		Key:               key,
		Label:             label,
		FlatCoverage:      FlatCoverageRatio(rows),
		ChecklistProgress: ChecklistCompletionRatio(rows),
	}
}

func groupRows(rows []FlatWorkProgress, key func(FlatWorkProgress) string) map[string][]FlatWorkProgress {
	groups := make(map[string][]FlatWorkProgress)
	for _, r := range rows {
		k := key(r)
		groups[k] = append(groups[k], r)
	}
	return groups
}

func sortedKeys(m map[string][]FlatWorkProgress) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
