// Package config reads SiteLedger settings from the environment and an
// optional .env file.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"

	"siteledger/services"
)

type Config struct {
	// Issuing contractor, printed on invoices and slips
	CompanyName    string
	CompanyAddress string
	CompanyEmail   string
	CompanyPhone   string
	CompanyGSTIN   string

	// Invoice defaults
	DefaultCGST   decimal.Decimal
	DefaultSGST   decimal.Decimal
	InvoicePrefix string

	// Seed demo data on serve
	Seed bool

	// Environment values that could not be parsed
	parseErrors []string
}

// Load reads .env (if present) and the process environment.
func Load() *Config {
	_ = godotenv.Load()

	var parseErrors []string
	cfg := &Config{
		CompanyName:    getEnv("SITELEDGER_COMPANY_NAME", "SiteLedger Contractors"),
		CompanyAddress: getEnv("SITELEDGER_COMPANY_ADDRESS", ""),
		CompanyEmail:   getEnv("SITELEDGER_COMPANY_EMAIL", ""),
		CompanyPhone:   getEnv("SITELEDGER_COMPANY_PHONE", ""),
		CompanyGSTIN:   strings.ToUpper(getEnv("SITELEDGER_COMPANY_GSTIN", "")),

		DefaultCGST:   getEnvDecimal("SITELEDGER_DEFAULT_CGST", decimal.NewFromInt(9), &parseErrors),
		DefaultSGST:   getEnvDecimal("SITELEDGER_DEFAULT_SGST", decimal.NewFromInt(9), &parseErrors),
		InvoicePrefix: getEnv("SITELEDGER_INVOICE_PREFIX", "SL"),

		Seed: getEnvBool("SITELEDGER_SEED", false, &parseErrors),
	}
	cfg.parseErrors = parseErrors
	return cfg
}

// Company is the issuer block for generated documents.
func (c *Config) Company() services.CompanyInfo {
	return services.CompanyInfo{
		Name:    c.CompanyName,
		Address: c.CompanyAddress,
		Email:   c.CompanyEmail,
		Phone:   c.CompanyPhone,
		GSTIN:   c.CompanyGSTIN,
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	errors := append([]string(nil), c.parseErrors...)

	if strings.TrimSpace(c.CompanyName) == "" {
		errors = append(errors, "company name cannot be empty")
	}
	if c.CompanyGSTIN != "" && !services.ValidateGSTIN(c.CompanyGSTIN) {
		errors = append(errors, fmt.Sprintf("invalid company GSTIN '%s'", c.CompanyGSTIN))
	}
	if c.CompanyEmail != "" && !services.ValidateEmail(c.CompanyEmail) {
		errors = append(errors, fmt.Sprintf("invalid company email '%s'", c.CompanyEmail))
	}
	if c.CompanyPhone != "" && !services.ValidatePhone(c.CompanyPhone) {
		errors = append(errors, fmt.Sprintf("invalid company phone '%s'", c.CompanyPhone))
	}

	if c.DefaultCGST.IsNegative() {
		errors = append(errors, fmt.Sprintf("invalid default CGST %s: must not be negative", c.DefaultCGST))
	}
	if c.DefaultSGST.IsNegative() {
		errors = append(errors, fmt.Sprintf("invalid default SGST %s: must not be negative", c.DefaultSGST))
	}

	if c.InvoicePrefix == "" {
		errors = append(errors, "invoice prefix cannot be empty")
	} else if strings.ContainsAny(c.InvoicePrefix, " /\\") {
		errors = append(errors, fmt.Sprintf("invalid invoice prefix '%s': must not contain spaces or slashes", c.InvoicePrefix))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvDecimal returns defaultValue when key is unset. A value that does not
// parse is reported in errs and also falls back to defaultValue.
func getEnvDecimal(key string, defaultValue decimal.Decimal, errs *[]string) decimal.Decimal {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("invalid %s '%s': must be a number", key, value))
		return defaultValue
	}
	return d
}

func getEnvBool(key string, defaultValue bool, errs *[]string) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := cast.ToBoolE(strings.TrimSpace(value))
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("invalid %s '%s': must be true or false", key, value))
		return defaultValue
	}
	return b
}
