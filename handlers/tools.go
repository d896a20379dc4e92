package handlers

import (
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase/core"
	"github.com/shopspring/decimal"

	"siteledger/config"
	"siteledger/services"
)

// HandleAmountInWords handles GET /api/tools/amount-in-words?amount=
func HandleAmountInWords() func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		raw := strings.TrimSpace(e.Request.URL.Query().Get("amount"))
		amount, err := services.ParseAmount(raw)
		if err != nil {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		words, err := services.AmountToWords(amount)
		if err != nil {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return e.JSON(http.StatusOK, map[string]string{
			"amount": services.RoundPaise(amount).StringFixed(2),
			"words":  words,
		})
	}
}

// HandleGSTSplit handles GET /api/tools/gst?mode=&amount=&cgst=&sgst=
// Missing rates fall back to the configured defaults.
func HandleGSTSplit(cfg *config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		q := e.Request.URL.Query()

		mode := q.Get("mode")
		if mode == "" {
			mode = services.SplitModeBase
		}
		amount, err := services.ParseAmount(q.Get("amount"))
		if err != nil {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		cgst, err := rateParam(q.Get("cgst"), cfg.DefaultCGST)
		if err != nil {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "cgst: " + err.Error()})
		}
		sgst, err := rateParam(q.Get("sgst"), cfg.DefaultSGST)
		if err != nil {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "sgst: " + err.Error()})
		}

		split, err := services.SplitByMode(mode, amount, cgst, sgst)
		if err != nil {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return e.JSON(http.StatusOK, split.Rounded())
	}
}

func rateParam(raw string, fallback decimal.Decimal) (decimal.Decimal, error) {
	raw = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(raw), "%"))
	if raw == "" {
		return fallback, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, services.ErrInvalidRate
	}
	return d, nil
}
