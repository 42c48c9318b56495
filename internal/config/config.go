package config

import (
	"fmt"
	"os"
	"strconv"
)

type PricingMode string

const (
	// PricingCatalog looks the unit price up by productId.
	PricingCatalog PricingMode = "catalog"
	// PricingDirect takes the unit price from the request body.
	PricingDirect PricingMode = "direct"
)

type Config struct {
	Port               int
	BaseURL            string
	InvoiceDir         string
	InvoiceTokenSecret string
	RazorpayKeyID      string
	RazorpayKeySecret  string
	Mode               PricingMode
}

// Load reads service configuration from the environment. The gateway
// key pair is a hard requirement; without it neither endpoint can do
// anything useful, so startup fails with a descriptive error.
func Load() (Config, error) {
	cfg := Config{
		Port:               8080,
		BaseURL:            "http://localhost:8080",
		InvoiceDir:         "./invoices",
		RazorpayKeyID:      os.Getenv("RAZORPAY_KEY_ID"),
		RazorpayKeySecret:  os.Getenv("RAZORPAY_KEY_SECRET"),
		InvoiceTokenSecret: os.Getenv("INVOICE_TOKEN_SECRET"),
		Mode:               PricingCatalog,
	}
	if v := os.Getenv("PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("PORT %q is not a number", v)
		}
		cfg.Port = p
	}
	if v := os.Getenv("BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("INVOICE_DIR"); v != "" {
		cfg.InvoiceDir = v
	}
	if v := os.Getenv("PRICING_MODE"); v != "" {
		switch PricingMode(v) {
		case PricingCatalog, PricingDirect:
			cfg.Mode = PricingMode(v)
		default:
			return Config{}, fmt.Errorf("PRICING_MODE must be %q or %q, got %q", PricingCatalog, PricingDirect, v)
		}
	}
	if cfg.RazorpayKeyID == "" || cfg.RazorpayKeySecret == "" {
		return Config{}, fmt.Errorf("RAZORPAY_KEY_ID and RAZORPAY_KEY_SECRET must be set")
	}
	if cfg.InvoiceTokenSecret == "" {
		// download tokens are signed with the gateway secret when no
		// dedicated secret is configured
		cfg.InvoiceTokenSecret = cfg.RazorpayKeySecret
	}
	return cfg, nil
}
