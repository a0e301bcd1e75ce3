package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config carries everything the service needs at construction time.
// There is deliberately no package-level state; main loads one of these
// and passes it down.
type Config struct {
	ListenAddr string
	BaseURL    string // public base URL used for redirect construction
	DBDSN      string

	GatewayName         string
	SupportedCurrencies []string

	// Gateway fee charged to the payer, in currency minor units.
	FeeBase      int64
	FeePercentBP int64 // basis points, 290 = 2.9%
	FeeStep      int64 // percentage portion truncated to a multiple of this

	ProviderBaseURL     string
	ProviderAPIKey      string
	InvoiceDurationSecs int

	MailAPIURL   string
	MailAPIToken string
	MailFrom     string
	MailFromName string
}

func Load() (*Config, error) {
	cfg := &Config{
		ListenAddr: envOr("LISTEN_ADDR", ":8080"),
		BaseURL:    os.Getenv("BASE_URL"),
		DBDSN:      os.Getenv("DB_DSN"),

		GatewayName:         envOr("GATEWAY_NAME", "Xendit"),
		SupportedCurrencies: splitList(envOr("SUPPORTED_CURRENCIES", "IDR")),

		FeeBase:      envInt64("FEE_BASE", 2000),
		FeePercentBP: envInt64("FEE_PERCENT_BP", 290),
		FeeStep:      envInt64("FEE_STEP", 1000),

		ProviderBaseURL:     envOr("PROVIDER_BASE_URL", "https://api.xendit.co"),
		ProviderAPIKey:      os.Getenv("PROVIDER_API_KEY"),
		InvoiceDurationSecs: int(envInt64("INVOICE_DURATION_SECS", 600)),

		MailAPIURL:   os.Getenv("MAIL_API_URL"),
		MailAPIToken: os.Getenv("MAIL_API_TOKEN"),
		MailFrom:     os.Getenv("MAIL_FROM"),
		MailFromName: envOr("MAIL_FROM_NAME", "Payments"),
	}
	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	var missing []string
	if c.DBDSN == "" {
		missing = append(missing, "DB_DSN")
	}
	if c.BaseURL == "" {
		missing = append(missing, "BASE_URL")
	}
	if c.ProviderAPIKey == "" {
		missing = append(missing, "PROVIDER_API_KEY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt64(key string, def int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return def
	}
	return n
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToUpper(strings.TrimSpace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
