package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"siteledger/services"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("worker x: %w", services.ErrNotFound), http.StatusNotFound},
		{services.ErrInvalidAmount, http.StatusBadRequest},
		{services.ErrInvalidRate, http.StatusBadRequest},
		{services.ErrDivisionByZero, http.StatusBadRequest},
		{services.ErrInvalidMonth, http.StatusBadRequest},
		{fmt.Errorf("read: %w", services.ErrUnsupportedFile), http.StatusBadRequest},
		{errors.New("disk full"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Skyline Towers-progress.xlsx", "Skyline-Towers-progress.xlsx"},
		{"A/B\\C:D", "A-B-C-D"},
		{`say "hi"`, "say-hi"},
	}
	for _, tt := range tests {
		if got := sanitizeFilename(tt.in); got != tt.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormDecimals(t *testing.T) {
	form := url.Values{}
	form.Set("qty", "1,250.5")
	form.Set("rate", "₹99")
	form.Set("bad", "ten")
	req := newFormRequest("/", form, nil)
	e := newTestRequestEvent(nil, req, httptest.NewRecorder())

	values, errs := formDecimals(e, "qty", "rate", "bad", "blank")
	if !values["qty"].Equal(services.Money(1250.5)) {
		t.Errorf("qty = %s", values["qty"])
	}
	if !values["rate"].Equal(services.Money(99)) {
		t.Errorf("rate = %s", values["rate"])
	}
	if !values["blank"].IsZero() {
		t.Errorf("blank = %s, want 0", values["blank"])
	}
	if len(errs) != 1 || errs["bad"] == "" {
		t.Errorf("errs = %v, want only bad", errs)
	}
}

func TestFormDateAndMonthParam(t *testing.T) {
	now := time.Date(2026, time.October, 19, 10, 0, 0, 0, time.UTC)

	req := newFormRequest("/?month=2026-09", nil, nil)
	e := newTestRequestEvent(nil, req, httptest.NewRecorder())
	if got, err := formDate(e, "log_date", now); err != nil || !got.Equal(now) {
		t.Errorf("blank log_date = %v, %v; want now", got, err)
	}
	if got := monthParam(e, now); got != "2026-09" {
		t.Errorf("monthParam = %q, want 2026-09", got)
	}

	form := url.Values{"log_date": {"2026-10-01"}}
	e = newTestRequestEvent(nil, newFormRequest("/", form, nil), httptest.NewRecorder())
	got, err := formDate(e, "log_date", now)
	if err != nil || got.Format("2006-01-02") != "2026-10-01" {
		t.Errorf("log_date = %v, %v", got, err)
	}
	if m := monthParam(e, now); m != "2026-10" {
		t.Errorf("default month = %q, want 2026-10", m)
	}

	form = url.Values{"log_date": {"01/10/2026"}}
	e = newTestRequestEvent(nil, newFormRequest("/", form, nil), httptest.NewRecorder())
	if _, err := formDate(e, "log_date", now); err == nil {
		t.Error("expected error for non ISO date")
	}
}
