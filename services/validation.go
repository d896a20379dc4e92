package services

import (
	"errors"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

// Validation regex patterns
var (
	gstinPattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z]{1}[1-9A-Z]{1}Z[0-9A-Z]{1}$`)
	phonePattern = regexp.MustCompile(`^[6-9][0-9]{9}$`)
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

const dateLayout = "2006-01-02"

// ValidateGSTIN validates a GSTIN (15-character alphanumeric).
func ValidateGSTIN(gstin string) bool {
	gstin = strings.TrimSpace(strings.ToUpper(gstin))
	if gstin == "" {
		return true
	}
	return len(gstin) == 15 && gstinPattern.MatchString(gstin)
}

// ValidatePhone validates an Indian mobile number (10 digits starting with 6-9).
func ValidatePhone(phone string) bool {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return true
	}
	return len(phone) == 10 && phonePattern.MatchString(phone)
}

// ValidateEmail validates an email address format.
func ValidateEmail(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return true
	}
	return emailPattern.MatchString(email)
}

// nonNegative is an ozzo rule for decimal amounts and rates.
var nonNegative = validation.By(func(v interface{}) error {
	if d, ok := v.(decimal.Decimal); ok && d.IsNegative() {
		return errors.New("must not be negative")
	}
	return nil
})

// positive rejects zero and negative decimals.
var positive = validation.By(func(v interface{}) error {
	if d, ok := v.(decimal.Decimal); ok && !d.IsPositive() {
		return errors.New("must be greater than zero")
	}
	return nil
})

var gstinRule = validation.By(func(v interface{}) error {
	if s, _ := v.(string); !ValidateGSTIN(s) {
		return errors.New("invalid GSTIN format (expected: 15-character, e.g., 27AAPFU0939F1ZV)")
	}
	return nil
})

var phoneRule = validation.By(func(v interface{}) error {
	if s, _ := v.(string); !ValidatePhone(s) {
		return errors.New("invalid phone number (expected: 10 digits starting with 6-9)")
	}
	return nil
})

// InvoiceForm is the header of an invoice as submitted.
type InvoiceForm struct {
	InvoiceType    string          `json:"invoice_type"`
	InvoiceDate    string          `json:"invoice_date"`
	ClientName     string          `json:"client_name"`
	ClientAddress  string          `json:"client_address"`
	ClientGSTIN    string          `json:"client_gstin"`
	AmountBasis    string          `json:"amount_basis"`
	CGSTRate       decimal.Decimal `json:"cgst_rate"`
	SGSTRate       decimal.Decimal `json:"sgst_rate"`
	InclusiveTotal decimal.Decimal `json:"inclusive_total"`
	ProformaRef    string          `json:"proforma_ref"`
	Notes          string          `json:"notes"`
}

// ValidateInvoiceInput checks an invoice header. An empty basis is filled
// with the type's default before the check.
func ValidateInvoiceInput(f *InvoiceForm) error {
	if f.AmountBasis == "" {
		f.AmountBasis = string(DefaultBasis(InvoiceType(f.InvoiceType)))
	}
	return validation.ValidateStruct(f,
		validation.Field(&f.InvoiceType, validation.Required,
			validation.In(string(InvoiceTypeProforma), string(InvoiceTypeTax))),
		validation.Field(&f.InvoiceDate, validation.Date(dateLayout)),
		validation.Field(&f.ClientName, validation.Required, validation.Length(1, 200)),
		validation.Field(&f.ClientGSTIN, gstinRule),
		validation.Field(&f.AmountBasis, validation.In(string(BasisBase), string(BasisInclusive))),
		validation.Field(&f.CGSTRate, nonNegative),
		validation.Field(&f.SGSTRate, nonNegative),
		validation.Field(&f.InclusiveTotal,
			validation.When(f.AmountBasis == string(BasisInclusive), positive).Else(nonNegative)),
	)
}

// LineItemForm is one invoice line as submitted.
type LineItemForm struct {
	Description string          `json:"description"`
	HSNCode     string          `json:"hsn_code"`
	Qty         decimal.Decimal `json:"qty"`
	UoM         string          `json:"uom"`
	Rate        decimal.Decimal `json:"rate"`
}

// ValidateLineItem checks an invoice line.
func ValidateLineItem(f *LineItemForm) error {
	return validation.ValidateStruct(f,
		validation.Field(&f.Description, validation.Required),
		validation.Field(&f.HSNCode, validation.Length(0, 8)),
		validation.Field(&f.UoM, validation.In(stringOptions(UOMOptions)...)),
		validation.Field(&f.Qty, nonNegative),
		validation.Field(&f.Rate, nonNegative),
	)
}

// WorkerForm is a labourer as submitted.
type WorkerForm struct {
	Name         string          `json:"name"`
	Skill        string          `json:"skill"`
	DailyWage    decimal.Decimal `json:"daily_wage"`
	OvertimeRate decimal.Decimal `json:"overtime_rate"`
	Phone        string          `json:"phone"`
}

// WorkerSkills lists the values accepted by the workers collection.
var WorkerSkills = []string{"mason", "helper", "supervisor"}

// ValidateWorker checks a worker form.
func ValidateWorker(f *WorkerForm) error {
	return validation.ValidateStruct(f,
		validation.Field(&f.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&f.Skill, validation.In(stringOptions(WorkerSkills)...)),
		validation.Field(&f.DailyWage, positive),
		validation.Field(&f.OvertimeRate, nonNegative),
		validation.Field(&f.Phone, phoneRule),
	)
}

// AttendanceForm marks one worker day.
type AttendanceForm struct {
	Date          string          `json:"date"`
	Status        string          `json:"status"`
	OvertimeHours decimal.Decimal `json:"overtime_hours"`
}

// ValidateAttendance checks an attendance mark. Overtime is capped at one
// full extra shift.
func ValidateAttendance(f *AttendanceForm) error {
	return validation.ValidateStruct(f,
		validation.Field(&f.Date, validation.Required, validation.Date(dateLayout)),
		validation.Field(&f.Status, validation.Required, validation.In(stringOptions(AttendanceStatuses)...)),
		validation.Field(&f.OvertimeHours, nonNegative, validation.By(func(v interface{}) error {
			if d, _ := v.(decimal.Decimal); d.GreaterThan(decimal.NewFromInt(12)) {
				return errors.New("must be at most 12 hours")
			}
			return nil
		})),
	)
}

// KharciForm records an advance paid to a worker.
type KharciForm struct {
	Date   string          `json:"date"`
	Amount decimal.Decimal `json:"amount"`
	Note   string          `json:"note"`
}

// ValidateKharci checks a kharci entry.
func ValidateKharci(f *KharciForm) error {
	return validation.ValidateStruct(f,
		validation.Field(&f.Date, validation.Required, validation.Date(dateLayout)),
		validation.Field(&f.Amount, positive),
		validation.Field(&f.Note, validation.Length(0, 200)),
	)
}

// FieldErrors flattens an ozzo validation error into field -> message.
// Other errors are reported under "_".
func FieldErrors(err error) map[string]string {
	out := map[string]string{}
	if err == nil {
		return out
	}
	var errs validation.Errors
	if errors.As(err, &errs) {
		for field, e := range errs {
			out[field] = e.Error()
		}
		return out
	}
	out["_"] = err.Error()
	return out
}
