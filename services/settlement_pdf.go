package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/pocketbase/pocketbase"
)

// SettlementSlip is a worker's printable month-end payout.
type SettlementSlip struct {
	Company       CompanyInfo
	ProjectName   string
	Month         MonthRange
	Row           PayrollRow
	AmountInWords string
}

// BuildSettlementSlip loads a project worker's month and words the net payable.
func BuildSettlementSlip(app *pocketbase.PocketBase, company CompanyInfo, projectID, workerID, month string) (*SettlementSlip, error) {
	worker, err := FindProjectWorker(app, projectID, workerID)
	if err != nil {
		return nil, err
	}
	r, mr, err := WorkerMonth(app, worker, month)
	if err != nil {
		return nil, err
	}

	var projectName string
	if p, err := app.FindRecordById("projects", projectID); err == nil {
		projectName = p.GetString("name")
	}

	words, err := AmountToWords(r.Settlement.NetPayable)
	if err != nil {
		return nil, fmt.Errorf("settlement slip: %w", err)
	}

	return &SettlementSlip{
		Company:       company,
		ProjectName:   projectName,
		Month:         mr,
		Row:           r,
		AmountInWords: words,
	}, nil
}

// GenerateSettlementSlipPDF renders a settlement slip with the day-by-day
// attendance and the payout summary.
func GenerateSettlementSlipPDF(slip *SettlementSlip) ([]byte, error) {
	m := newA4Document()

	addCompanyHeader(m, slip.Company, "SETTLEMENT SLIP", "Month: "+slip.Month.Month)
	addSlipWorkerBlock(m, slip)
	addSlipAttendanceTable(m, slip.Row.Attendance)

	s := slip.Row.Settlement
	addSummaryRow(m, fmt.Sprintf("Wages (%s days × %s)", s.DaysWorked.String(), FormatRupees(slip.Row.DailyWage)), FormatRupees(s.GrossWages))
	addSummaryRow(m, fmt.Sprintf("Overtime (%s hrs × %s)", s.OvertimeHours.String(), FormatRupees(slip.Row.OvertimeRate)), FormatRupees(s.OvertimePay))
	addSummaryRow(m, "Less: Kharci", FormatRupees(s.KharciTotal))
	if s.AdvanceBalance.IsPositive() {
		addSummaryRow(m, "Advance carried forward", FormatRupees(s.AdvanceBalance))
	}
	addGrandRow(m, "Net Payable", FormatRupees(s.NetPayable))
	m.AddRows(row.New(3))

	addAmountInWords(m, slip.AmountInWords)
	addSignatures(m, "Worker's Signature / Thumb", "Site Supervisor")

	return generatePDF(m, "settlement slip")
}

func addSlipWorkerBlock(m core.Maroto, slip *SettlementSlip) {
	labelStyle := props.Text{Size: 7, Style: fontstyle.Bold, Align: align.Left, Color: greyColor}
	valueStyle := props.Text{Size: 9, Align: align.Left}

	m.AddRows(
		row.New(6).Add(
			col.New(4).Add(text.New("WORKER", labelStyle)),
			col.New(4).Add(text.New("SKILL", labelStyle)),
			col.New(4).Add(text.New("PROJECT", labelStyle)),
		),
		row.New(7).Add(
			col.New(4).Add(text.New(slip.Row.Name, props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Left})),
			col.New(4).Add(text.New(slip.Row.Skill, valueStyle)),
			col.New(4).Add(text.New(slip.ProjectName, valueStyle)),
		),
		row.New(7).Add(
			col.New(12).Add(text.New(fmt.Sprintf("Period: %s to %s", slip.Month.From, slip.Month.To), valueStyle)),
		),
	)
	m.AddRows(row.New(3))
}

func addSlipAttendanceTable(m core.Maroto, days []AttendanceEntry) {
	headerText := props.Text{Size: 7, Style: fontstyle.Bold, Align: align.Center, Color: whiteColor}
	headerCell := props.Cell{BackgroundColor: darkColor}
	m.AddRows(
		row.New(8).Add(
			col.New(4).Add(text.New("Date", headerText)).WithStyle(&headerCell),
			col.New(4).Add(text.New("Status", headerText)).WithStyle(&headerCell),
			col.New(4).Add(text.New("Overtime (hrs)", headerText)).WithStyle(&headerCell),
		),
	)

	bodyText := props.Text{Size: 7, Align: align.Center}
	for i, d := range days {
		cols := []core.Col{
			col.New(4).Add(text.New(d.Date, bodyText)),
			col.New(4).Add(text.New(statusLabel(d.Status), bodyText)),
			col.New(4).Add(text.New(d.OvertimeHours.String(), bodyText)),
		}
		if i%2 == 1 {
			for j := range cols {
				cols[j] = cols[j].WithStyle(&props.Cell{BackgroundColor: altBg})
			}
		}
		m.AddRows(row.New(6).Add(cols...))
	}
	if len(days) == 0 {
		m.AddRows(row.New(6).Add(col.New(12).Add(text.New("No attendance marked", bodyText))))
	}
	m.AddRows(row.New(2))
}

func statusLabel(s AttendanceStatus) string {
	switch s {
	case StatusPresent:
		return "Present"
	case StatusHalfDay:
		return "Half Day"
	case StatusAbsent:
		return "Absent"
	}
	return string(s)
}
