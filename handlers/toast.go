package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"net/url"

	"github.com/pocketbase/pocketbase/core"
)

// Toast levels understood by static/toast.js.
const (
	toastSuccess = "success"
	toastWarning = "warning"
	toastError   = "error"
)

const flashCookie = "siteledger_toast"

// SetToast adds a showToast event to the HX-Trigger response header, keeping
// any events already set, and mirrors it in a short-lived flash cookie so
// the toast survives a non-HTMX redirect.
func SetToast(e *core.RequestEvent, toastType string, message string) {
	payload := map[string]string{"message": message, "type": toastType}

	events := map[string]any{}
	if existing := e.Response.Header().Get("HX-Trigger"); existing != "" {
		if err := json.Unmarshal([]byte(existing), &events); err != nil {
			log.Printf("toast: existing HX-Trigger is not valid JSON, overwriting: %v", err)
			events = map[string]any{}
		}
	}
	events["showToast"] = payload

	data, err := json.Marshal(events)
	if err != nil {
		log.Printf("toast: failed to marshal HX-Trigger JSON: %v", err)
		return
	}
	e.Response.Header().Set("HX-Trigger", string(data))

	if cookieVal, err := json.Marshal(payload); err == nil {
		http.SetCookie(e.Response, &http.Cookie{
			Name:     flashCookie,
			Value:    url.QueryEscape(string(cookieVal)),
			Path:     "/",
			MaxAge:   10,
			HttpOnly: false, // read by toast.js
			SameSite: http.SameSiteLaxMode,
		})
	}
}

// ErrorToast sets an error toast and responds with message. HX-Reswap: none
// keeps HTMX from swapping the error text into the page.
func ErrorToast(e *core.RequestEvent, statusCode int, message string) error {
	SetToast(e, toastError, message)
	e.Response.Header().Set("HX-Reswap", "none")
	if wantsJSON(e) {
		return e.JSON(statusCode, map[string]string{"error": message})
	}
	return e.String(statusCode, message)
}

// ValidationFailed responds 400 with per-field messages.
func ValidationFailed(e *core.RequestEvent, fields map[string]string) error {
	SetToast(e, toastWarning, "Please fix the errors below")
	e.Response.Header().Set("HX-Reswap", "none")
	return e.JSON(http.StatusBadRequest, map[string]any{"errors": fields})
}
