package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase/core"
	"github.com/shopspring/decimal"

	"siteledger/services"
)

const (
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimePDF  = "application/pdf"
)

func isHTMX(e *core.RequestEvent) bool {
	return e.Request.Header.Get("HX-Request") == "true"
}

// wantsJSON reports whether the client asked for JSON rather than HTML.
func wantsJSON(e *core.RequestEvent) bool {
	return e.Request != nil && strings.Contains(e.Request.Header.Get("Accept"), "application/json")
}

// sanitizeFilename replaces characters that are unsafe in a download name.
func sanitizeFilename(s string) string {
	return strings.NewReplacer(" ", "-", "/", "-", "\\", "-", ":", "-", `"`, "").Replace(s)
}

// download writes data as an attachment.
func download(e *core.RequestEvent, contentType, filename string, data []byte) error {
	e.Response.Header().Set("Content-Type", contentType)
	e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, sanitizeFilename(filename)))
	e.Response.WriteHeader(http.StatusOK)
	_, err := e.Response.Write(data)
	return err
}

// formDecimals parses the named form values. Empty values are zero; values
// that are not numbers are reported per field.
func formDecimals(e *core.RequestEvent, names ...string) (map[string]decimal.Decimal, map[string]string) {
	values := make(map[string]decimal.Decimal, len(names))
	errs := map[string]string{}
	for _, name := range names {
		raw := strings.TrimSpace(e.Request.FormValue(name))
		if raw == "" {
			values[name] = decimal.Zero
			continue
		}
		d, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimPrefix(raw, "₹"), ",", ""))
		if err != nil {
			errs[name] = "must be a number"
			continue
		}
		values[name] = d
	}
	return values, errs
}

// formDate returns the named YYYY-MM-DD form value, or today when empty.
func formDate(e *core.RequestEvent, name string, now time.Time) (time.Time, error) {
	raw := strings.TrimSpace(e.Request.FormValue(name))
	if raw == "" {
		return now, nil
	}
	return time.Parse("2006-01-02", raw)
}

// monthParam is the ?month= query value, defaulting to the current month.
func monthParam(e *core.RequestEvent, now time.Time) string {
	if m := strings.TrimSpace(e.Request.URL.Query().Get("month")); m != "" {
		return m
	}
	return services.CurrentMonth(now)
}

func mergeErrors(dst, src map[string]string) map[string]string {
	for k, v := range src {
		if _, exists := dst[k]; !exists {
			dst[k] = v
		}
	}
	return dst
}

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrInvalidAmount),
		errors.Is(err, services.ErrInvalidRate),
		errors.Is(err, services.ErrDivisionByZero),
		errors.Is(err, services.ErrInvalidMonth),
		errors.Is(err, services.ErrUnsupportedFile):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// serviceError logs err under area and responds with a status derived from
// it. Internal errors get a generic message.
func serviceError(e *core.RequestEvent, area string, err error) error {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Printf("%s: %v", area, err)
		return ErrorToast(e, status, "Something went wrong. Please try again.")
	}
	return ErrorToast(e, status, err.Error())
}
