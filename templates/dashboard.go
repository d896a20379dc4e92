package templates

import (
	"context"
	"time"

	"github.com/a-h/templ"
	"github.com/dustin/go-humanize"

	"siteledger/services"
)

// DashboardData is everything the project dashboard shows.
type DashboardData struct {
	ProjectID   string
	ProjectName string
	Progress    *services.ProgressReport
	Payroll     *services.PayrollReport
	Invoices    services.InvoiceSummary
	// LastProgress is zero when nothing has been logged.
	LastProgress time.Time
	Now          time.Time
}

// DashboardContent is the dashboard body, also returned alone for HTMX
// requests.
func DashboardContent(d DashboardData) templ.Component {
	return component(func(ctx context.Context, h *html) error {
		h.rawf(`<section class="dashboard" data-project="%s">`, d.ProjectID)
		h.rawf(`<h1>%s</h1>`, d.ProjectName)

		if d.LastProgress.IsZero() {
			h.raw(`<p class="muted">No progress logged yet</p>`)
		} else {
			h.rawf(`<p class="muted">Progress updated %s</p>`, humanize.RelTime(d.LastProgress, d.Now, "ago", "from now"))
		}

		if p := d.Progress; p != nil {
			h.raw(`<div class="cards">`)
			ratioCard(h, "Flats started", p.Project.FlatCoverage)
			ratioCard(h, "Checklist done", p.Project.ChecklistProgress)
			h.raw(`</div>`)

			h.raw(`<h2>Wings</h2><table class="table"><thead><tr><th>Wing</th><th>Flats started</th><th>Checklist</th></tr></thead><tbody>`)
			for _, w := range p.Wings {
				h.rawf(`<tr><td>%s</td><td>%s</td><td>%s</td></tr>`, w.Label, ratioText(w.FlatCoverage), ratioText(w.ChecklistProgress))
			}
			h.raw(`</tbody></table>`)

			h.raw(`<h2>Work items</h2><table class="table"><thead><tr><th>Work item</th><th>Quantity</th><th>Qty %</th><th>Checklist</th></tr></thead><tbody>`)
			for _, wi := range p.WorkItems {
				h.rawf(`<tr><td>%s</td><td>%s / %s</td><td>%s</td><td>%s</td></tr>`,
					wi.Label,
					humanize.FormatFloat("#,###.##", wi.CompletedQty),
					humanize.FormatFloat("#,###.##", wi.TotalQty),
					percentText(wi.QuantityPercent),
					ratioText(wi.ChecklistProgress))
			}
			h.raw(`</tbody></table>`)
		}

		if pr := d.Payroll; pr != nil {
			h.rawf(`<h2>Payroll %s</h2>`, pr.Month)
			h.rawf(`<p>%s workers · %s days · net payable <strong>%s</strong></p>`,
				humanize.Comma(int64(pr.Totals.Workers)),
				pr.Totals.DaysWorked.String(),
				services.FormatRupees(pr.Totals.NetPayable))
			if pr.Totals.AdvanceBalance.IsPositive() {
				h.rawf(`<p class="warning">Advances outstanding: %s</p>`, services.FormatRupees(pr.Totals.AdvanceBalance))
			}
		}

		inv := d.Invoices
		h.raw(`<h2>Invoices</h2>`)
		h.rawf(`<p>%s proforma (%s) · %s tax (%s)</p>`,
			humanize.Comma(int64(inv.Proforma)), services.FormatRupees(inv.ProformaTotal),
			humanize.Comma(int64(inv.Tax)), services.FormatRupees(inv.TaxTotal))

		h.raw(`</section>`)
		return nil
	})
}

// DashboardPage is the full dashboard document.
func DashboardPage(d DashboardData) templ.Component {
	return Page(d.ProjectName, DashboardContent(d))
}

func ratioCard(h *html, label string, r services.Ratio) {
	h.rawf(`<div class="card"><div class="card-label">%s</div><div class="card-value">%s</div><div class="card-sub">%s</div></div>`,
		label, percentText(r.Percent), ratioText(r))
}

func ratioText(r services.Ratio) string {
	return humanize.Comma(int64(r.Done)) + " / " + humanize.Comma(int64(r.Total))
}

func percentText(p float64) string {
	return humanize.FormatFloat("#.#", p) + "%"
}
