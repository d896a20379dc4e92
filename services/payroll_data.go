package services

import (
	"fmt"
	"sort"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/shopspring/decimal"
)

// PayrollRow is one worker's month.
type PayrollRow struct {
	WorkerID     string            `json:"worker_id"`
	Name         string            `json:"name"`
	Skill        string            `json:"skill"`
	DailyWage    decimal.Decimal   `json:"daily_wage"`
	OvertimeRate decimal.Decimal   `json:"overtime_rate"`
	Attendance   []AttendanceEntry `json:"-"`
	Settlement   Settlement        `json:"settlement"`
	Settled      bool              `json:"settled"`
	Paid         bool              `json:"paid"`
}

// PayrollReport is a project's payroll for one month.
type PayrollReport struct {
	Month  string        `json:"month"`
	From   string        `json:"from"`
	To     string        `json:"to"`
	Rows   []PayrollRow  `json:"rows"`
	Totals PayrollTotals `json:"totals"`
}

type kharciSum struct {
	Worker string  `db:"worker"`
	Total  float64 `db:"total"`
}

// BuildMonthlyPayroll computes a settlement for every active worker of a
// project from the month's attendance and kharci.
func BuildMonthlyPayroll(app *pocketbase.PocketBase, projectID, month string) (*PayrollReport, error) {
	mr, err := ParseMonth(month)
	if err != nil {
		return nil, err
	}

	workers, err := app.FindRecordsByFilter(
		"workers",
		"project = {:projectId} && active = true",
		"name",
		0,
		0,
		map[string]any{"projectId": projectID},
	)
	if err != nil {
		return nil, fmt.Errorf("payroll: query workers: %w", err)
	}

	rows, err := loadPayrollRows(app, workers, mr)
	if err != nil {
		return nil, err
	}

	settlements := make([]Settlement, len(rows))
	for i, r := range rows {
		settlements[i] = r.Settlement
	}

	return &PayrollReport{
		Month:  mr.Month,
		From:   mr.From,
		To:     mr.To,
		Rows:   rows,
		Totals: CalcPayrollTotals(settlements),
	}, nil
}

// loadPayrollRows loads attendance by date range and kharci sums for the
// given workers and computes their settlements.
func loadPayrollRows(app *pocketbase.PocketBase, workers []*core.Record, mr MonthRange) ([]PayrollRow, error) {
	if len(workers) == 0 {
		return []PayrollRow{}, nil
	}

	ids := make([]any, len(workers))
	for i, w := range workers {
		ids[i] = w.Id
	}

	var attendance []*core.Record
	err := app.RecordQuery("attendance").
		AndWhere(dbx.In("worker", ids...)).
		AndWhere(dbx.Between("date", mr.From, mr.To)).
		OrderBy("date ASC").
		All(&attendance)
	if err != nil {
		return nil, fmt.Errorf("payroll: query attendance: %w", err)
	}

	var sums []kharciSum
	err = app.DB().
		Select("worker", "COALESCE(SUM(amount), 0) AS total").
		From("kharci").
		Where(dbx.In("worker", ids...)).
		AndWhere(dbx.Between("date", mr.From, mr.To)).
		GroupBy("worker").
		All(&sums)
	if err != nil {
		return nil, fmt.Errorf("payroll: sum kharci: %w", err)
	}

	var saved []*core.Record
	err = app.RecordQuery("settlements").
		AndWhere(dbx.In("worker", ids...)).
		AndWhere(dbx.HashExp{"month": mr.Month}).
		All(&saved)
	if err != nil {
		return nil, fmt.Errorf("payroll: query settlements: %w", err)
	}

	byWorker := make(map[string][]AttendanceEntry, len(workers))
	for _, a := range attendance {
		w := a.GetString("worker")
		byWorker[w] = append(byWorker[w], AttendanceEntry{
			Date:          a.GetString("date"),
			Status:        AttendanceStatus(a.GetString("status")),
			OvertimeHours: Money(a.GetFloat("overtime_hours")),
		})
	}
	kharci := make(map[string]decimal.Decimal, len(sums))
	for _, s := range sums {
		kharci[s.Worker] = Money(s.Total)
	}
	paid := make(map[string]bool, len(saved))
	settled := make(map[string]bool, len(saved))
	for _, s := range saved {
		settled[s.GetString("worker")] = true
		paid[s.GetString("worker")] = s.GetBool("paid")
	}

	rows := make([]PayrollRow, 0, len(workers))
	for _, w := range workers {
		wage := WageTerms{
			DailyWage:    Money(w.GetFloat("daily_wage")),
			OvertimeRate: Money(w.GetFloat("overtime_rate")),
		}
		var advances []decimal.Decimal
		if k, ok := kharci[w.Id]; ok {
			advances = []decimal.Decimal{k}
		}
		rows = append(rows, PayrollRow{
			WorkerID:     w.Id,
			Name:         w.GetString("name"),
			Skill:        w.GetString("skill"),
			DailyWage:    wage.DailyWage,
			OvertimeRate: wage.OvertimeRate,
			Attendance:   byWorker[w.Id],
			Settlement:   CalcSettlement(wage, byWorker[w.Id], advances),
			Settled:      settled[w.Id],
			Paid:         paid[w.Id],
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
	return rows, nil
}

// FindProjectWorker returns a worker only if it belongs to the project.
func FindProjectWorker(app *pocketbase.PocketBase, projectID, workerID string) (*core.Record, error) {
	w, err := app.FindRecordById("workers", workerID)
	if err != nil || w.GetString("project") != projectID {
		return nil, fmt.Errorf("worker %s: %w", workerID, ErrNotFound)
	}
	return w, nil
}

// WorkerMonth computes one worker's payroll row for a month.
func WorkerMonth(app *pocketbase.PocketBase, worker *core.Record, month string) (PayrollRow, MonthRange, error) {
	mr, err := ParseMonth(month)
	if err != nil {
		return PayrollRow{}, MonthRange{}, err
	}
	rows, err := loadPayrollRows(app, []*core.Record{worker}, mr)
	if err != nil {
		return PayrollRow{}, MonthRange{}, err
	}
	return rows[0], mr, nil
}

// SaveSettlement upserts the settlements row for a worker and month. A nil
// paid keeps the stored paid state and paid_on; a new row starts unpaid.
func SaveSettlement(app *pocketbase.PocketBase, workerID, month string, s Settlement, paid *bool, paidOn string) (*core.Record, error) {
	if _, err := ParseMonth(month); err != nil {
		return nil, err
	}

	record, err := app.FindFirstRecordByFilter(
		"settlements",
		"worker = {:workerId} && month = {:month}",
		dbx.Params{"workerId": workerID, "month": month},
	)
	if err != nil {
		col, err := app.FindCollectionByNameOrId("settlements")
		if err != nil {
			return nil, fmt.Errorf("settlement: could not find settlements collection: %w", err)
		}
		record = core.NewRecord(col)
		record.Set("worker", workerID)
		record.Set("month", month)
	}

	record.Set("days_worked", s.DaysWorked.InexactFloat64())
	record.Set("gross_wages", s.GrossWages.InexactFloat64())
	record.Set("overtime_pay", s.OvertimePay.InexactFloat64())
	record.Set("kharci_total", s.KharciTotal.InexactFloat64())
	record.Set("net_payable", s.NetPayable.InexactFloat64())
	record.Set("advance_balance", s.AdvanceBalance.InexactFloat64())
	if paid != nil {
		record.Set("paid", *paid)
		if *paid {
			record.Set("paid_on", paidOn)
		} else {
			record.Set("paid_on", "")
		}
	}

	if err := app.Save(record); err != nil {
		return nil, fmt.Errorf("settlement: save: %w", err)
	}
	return record, nil
}
