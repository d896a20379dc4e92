package services

import (
	"errors"
	"testing"
)

func TestValidateGSTIN(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"empty is valid", "", true},
		{"whitespace only is valid", "   ", true},
		{"valid GSTIN", "27AAPFU0939F1ZV", true},
		{"valid GSTIN lowercase auto-uppercased", "27aapfu0939f1zv", true},
		{"too short", "27AAPFU0939F1Z", false},
		{"too long", "27AAPFU0939F1ZVX", false},
		{"wrong structure - missing Z", "27AAPFU0939F1AV", false},
		{"first two not digits", "AAAAPFU0939F1ZV", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateGSTIN(tt.input); got != tt.want {
				t.Errorf("ValidateGSTIN(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidatePhone(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"9876543210", true},
		{"5876543210", false},
		{"987654321", false},
		{"98765 43210", false},
	}
	for _, tt := range tests {
		if got := ValidatePhone(tt.input); got != tt.want {
			t.Errorf("ValidatePhone(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestValidateEmail(t *testing.T) {
	if !ValidateEmail("accounts@example.in") {
		t.Error("expected valid email")
	}
	if ValidateEmail("accounts@") {
		t.Error("expected invalid email")
	}
}

func validInvoiceForm() InvoiceForm {
	return InvoiceForm{
		InvoiceType: "proforma",
		InvoiceDate: "2026-10-06",
		ClientName:  "Skyline Developers",
		ClientGSTIN: "27AAPFU0939F1ZV",
		CGSTRate:    dec("9"),
		SGSTRate:    dec("9"),
	}
}

func TestValidateInvoiceInput(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(f *InvoiceForm)
		wantField string
	}{
		{"valid proforma", func(f *InvoiceForm) {}, ""},
		{"valid tax invoice", func(f *InvoiceForm) {
			f.InvoiceType = "tax"
			f.InclusiveTotal = dec("1000")
		}, ""},
		{"missing client", func(f *InvoiceForm) { f.ClientName = "" }, "client_name"},
		{"bad type", func(f *InvoiceForm) { f.InvoiceType = "credit" }, "invoice_type"},
		{"bad date", func(f *InvoiceForm) { f.InvoiceDate = "06/10/2026" }, "invoice_date"},
		{"bad gstin", func(f *InvoiceForm) { f.ClientGSTIN = "27AAPFU" }, "client_gstin"},
		{"negative cgst", func(f *InvoiceForm) { f.CGSTRate = dec("-1") }, "cgst_rate"},
		{"bad basis", func(f *InvoiceForm) { f.AmountBasis = "gross" }, "amount_basis"},
		{"inclusive needs total", func(f *InvoiceForm) {
			f.InvoiceType = "tax"
			f.InclusiveTotal = dec("0")
		}, "inclusive_total"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validInvoiceForm()
			tt.mutate(&f)
			errs := FieldErrors(ValidateInvoiceInput(&f))
			if tt.wantField == "" {
				if len(errs) != 0 {
					t.Errorf("expected no errors, got %v", errs)
				}
				return
			}
			if _, ok := errs[tt.wantField]; !ok {
				t.Errorf("expected error on %q, got %v", tt.wantField, errs)
			}
		})
	}
}

func TestValidateInvoiceInput_DefaultsBasis(t *testing.T) {
	f := validInvoiceForm()
	f.InvoiceType = "tax"
	f.InclusiveTotal = dec("500")
	if err := ValidateInvoiceInput(&f); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.AmountBasis != "inclusive" {
		t.Errorf("AmountBasis = %q, want inclusive", f.AmountBasis)
	}
}

func TestValidateLineItem(t *testing.T) {
	ok := LineItemForm{Description: "Floor tiling", Qty: dec("10"), Rate: dec("28")}
	if err := ValidateLineItem(&ok); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	bad := LineItemForm{Qty: dec("-1"), UoM: "Furlong", Rate: dec("28")}
	errs := FieldErrors(ValidateLineItem(&bad))
	for _, field := range []string{"description", "qty", "uom"} {
		if _, found := errs[field]; !found {
			t.Errorf("expected error on %q, got %v", field, errs)
		}
	}
}

func TestValidateWorker(t *testing.T) {
	ok := WorkerForm{Name: "Ramesh", Skill: "mason", DailyWage: dec("900"), Phone: "9820012345"}
	if err := ValidateWorker(&ok); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	bad := WorkerForm{Skill: "painter", DailyWage: dec("0"), OvertimeRate: dec("-5"), Phone: "12345"}
	errs := FieldErrors(ValidateWorker(&bad))
	for _, field := range []string{"name", "skill", "daily_wage", "overtime_rate", "phone"} {
		if _, found := errs[field]; !found {
			t.Errorf("expected error on %q, got %v", field, errs)
		}
	}
}

func TestValidateAttendance(t *testing.T) {
	tests := []struct {
		name      string
		form      AttendanceForm
		wantField string
	}{
		{"present", AttendanceForm{Date: "2026-10-01", Status: "present", OvertimeHours: dec("2")}, ""},
		{"half day", AttendanceForm{Date: "2026-10-01", Status: "half_day"}, ""},
		{"missing date", AttendanceForm{Status: "present"}, "date"},
		{"bad status", AttendanceForm{Date: "2026-10-01", Status: "leave"}, "status"},
		{"negative overtime", AttendanceForm{Date: "2026-10-01", Status: "present", OvertimeHours: dec("-1")}, "overtime_hours"},
		{"too much overtime", AttendanceForm{Date: "2026-10-01", Status: "present", OvertimeHours: dec("13")}, "overtime_hours"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := FieldErrors(ValidateAttendance(&tt.form))
			if tt.wantField == "" && len(errs) != 0 {
				t.Errorf("expected no errors, got %v", errs)
			}
			if tt.wantField != "" {
				if _, ok := errs[tt.wantField]; !ok {
					t.Errorf("expected error on %q, got %v", tt.wantField, errs)
				}
			}
		})
	}
}

func TestValidateKharci(t *testing.T) {
	ok := KharciForm{Date: "2026-10-02", Amount: dec("500")}
	if err := ValidateKharci(&ok); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	bad := KharciForm{Date: "2026-10-02", Amount: dec("0")}
	if _, found := FieldErrors(ValidateKharci(&bad))["amount"]; !found {
		t.Error("expected error on amount")
	}
}

func TestFieldErrors_NonValidation(t *testing.T) {
	errs := FieldErrors(errors.New("boom"))
	if errs["_"] != "boom" {
		t.Errorf("FieldErrors = %v", errs)
	}
	if len(FieldErrors(nil)) != 0 {
		t.Error("expected empty map for nil error")
	}
}
