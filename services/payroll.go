package services

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// AttendanceStatus is one day's attendance mark.
type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "present"
	StatusHalfDay AttendanceStatus = "half_day"
	StatusAbsent  AttendanceStatus = "absent"
)

// Days is the wage-day weight of the status.
func (s AttendanceStatus) Days() decimal.Decimal {
	switch s {
	case StatusPresent:
		return decimal.NewFromInt(1)
	case StatusHalfDay:
		return decimal.NewFromFloat(0.5)
	default:
		return decimal.Zero
	}
}

// AttendanceStatuses lists the values accepted by the attendance collection.
var AttendanceStatuses = []string{string(StatusPresent), string(StatusHalfDay), string(StatusAbsent)}

// AttendanceEntry is one marked day.
type AttendanceEntry struct {
	Date          string
	Status        AttendanceStatus
	OvertimeHours decimal.Decimal
}

// WageTerms are a worker's pay rates.
type WageTerms struct {
	DailyWage    decimal.Decimal
	OvertimeRate decimal.Decimal // per hour
}

// Settlement is a worker's month-end payout.
type Settlement struct {
	DaysWorked     decimal.Decimal `json:"days_worked"`
	GrossWages     decimal.Decimal `json:"gross_wages"`
	OvertimeHours  decimal.Decimal `json:"overtime_hours"`
	OvertimePay    decimal.Decimal `json:"overtime_pay"`
	KharciTotal    decimal.Decimal `json:"kharci_total"`
	NetPayable     decimal.Decimal `json:"net_payable"`
	AdvanceBalance decimal.Decimal `json:"advance_balance"`
}

// Earned is gross wages plus overtime.
func (s Settlement) Earned() decimal.Decimal {
	return s.GrossWages.Add(s.OvertimePay)
}

// CalcSettlement computes a month-end settlement. Kharci advances are
// deducted from earnings; if they exceed earnings nothing is payable and the
// excess is reported as AdvanceBalance.
func CalcSettlement(wage WageTerms, attendance []AttendanceEntry, kharci []decimal.Decimal) Settlement {
	s := Settlement{
		DaysWorked:    decimal.Zero,
		OvertimeHours: decimal.Zero,
		KharciTotal:   decimal.Zero,
	}
	for _, a := range attendance {
		s.DaysWorked = s.DaysWorked.Add(a.Status.Days())
		if a.Status != StatusAbsent && a.OvertimeHours.IsPositive() {
			s.OvertimeHours = s.OvertimeHours.Add(a.OvertimeHours)
		}
	}
	for _, k := range kharci {
		if k.IsPositive() {
			s.KharciTotal = s.KharciTotal.Add(k)
		}
	}

	s.GrossWages = RoundPaise(s.DaysWorked.Mul(wage.DailyWage))
	s.OvertimePay = RoundPaise(s.OvertimeHours.Mul(wage.OvertimeRate))
	s.KharciTotal = RoundPaise(s.KharciTotal)

	balance := s.Earned().Sub(s.KharciTotal)
	if balance.IsNegative() {
		s.NetPayable = decimal.Zero
		s.AdvanceBalance = balance.Neg()
	} else {
		s.NetPayable = balance
		s.AdvanceBalance = decimal.Zero
	}
	return s
}

// PayrollTotals sums settlements across workers.
type PayrollTotals struct {
	Workers        int             `json:"workers"`
	DaysWorked     decimal.Decimal `json:"days_worked"`
	GrossWages     decimal.Decimal `json:"gross_wages"`
	OvertimePay    decimal.Decimal `json:"overtime_pay"`
	KharciTotal    decimal.Decimal `json:"kharci_total"`
	NetPayable     decimal.Decimal `json:"net_payable"`
	AdvanceBalance decimal.Decimal `json:"advance_balance"`
}

// CalcPayrollTotals aggregates a month's settlements.
func CalcPayrollTotals(settlements []Settlement) PayrollTotals {
	t := PayrollTotals{
		Workers:        len(settlements),
		DaysWorked:     decimal.Zero,
		GrossWages:     decimal.Zero,
		OvertimePay:    decimal.Zero,
		KharciTotal:    decimal.Zero,
		NetPayable:     decimal.Zero,
		AdvanceBalance: decimal.Zero,
	}
	for _, s := range settlements {
		t.DaysWorked = t.DaysWorked.Add(s.DaysWorked)
		t.GrossWages = t.GrossWages.Add(s.GrossWages)
		t.OvertimePay = t.OvertimePay.Add(s.OvertimePay)
		t.KharciTotal = t.KharciTotal.Add(s.KharciTotal)
		t.NetPayable = t.NetPayable.Add(s.NetPayable)
		t.AdvanceBalance = t.AdvanceBalance.Add(s.AdvanceBalance)
	}
	return t
}

// MonthRange is the inclusive date span of a calendar month, as stored
// (YYYY-MM-DD text).
type MonthRange struct {
	Month string
	From  string
	To    string
	Days  int
}

// ParseMonth parses "2026-10" into its first and last day.
func ParseMonth(month string) (MonthRange, error) {
	start, err := time.Parse("2006-01", month)
	if err != nil {
		return MonthRange{}, fmt.Errorf("%w: %q", ErrInvalidMonth, month)
	}
	end := start.AddDate(0, 1, -1)
	return MonthRange{
		Month: start.Format("2006-01"),
		From:  start.Format("2006-01-02"),
		To:    end.Format("2006-01-02"),
		Days:  end.Day(),
	}, nil
}

// CurrentMonth returns the YYYY-MM string for t.
func CurrentMonth(t time.Time) string {
	return t.Format("2006-01")
}
