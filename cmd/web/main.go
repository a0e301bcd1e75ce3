package main

import (
	"context"
	"log"
	"os"
	"time"

	"log/slog"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/heinja/payments/internal/config"
	apphttp "github.com/heinja/payments/internal/http"
	"github.com/heinja/payments/internal/modules/checkout"
	"github.com/heinja/payments/internal/modules/email"
	"github.com/heinja/payments/internal/modules/orders"
	"github.com/heinja/payments/internal/modules/provider"
)

func main() {
	// Load .env file (ignore error if not found - prod uses real env vars)
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	db, err := gorm.Open(mysql.Open(cfg.DBDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	redirects, err := checkout.NewRedirectBuilder(cfg.BaseURL)
	if err != nil {
		log.Fatalf("invalid BASE_URL: %v", err)
	}

	orderSvc := orders.NewService(db)
	orderSvc.SetLogger(logger)

	providerClient := provider.NewHTTPClient(cfg.ProviderBaseURL, cfg.ProviderAPIKey)

	svc := checkout.NewService(checkout.Config{
		GatewayName:         cfg.GatewayName,
		BaseURL:             cfg.BaseURL,
		SupportedCurrencies: cfg.SupportedCurrencies,
		Fees: checkout.FeeSchedule{
			Base:      cfg.FeeBase,
			PercentBP: cfg.FeePercentBP,
			Step:      cfg.FeeStep,
		},
		InvoiceDurationSecs: cfg.InvoiceDurationSecs,
		SendProviderEmail:   true,
	}, checkout.NewGormTokenStore(db), orderSvc, providerClient, redirects)
	svc.SetLogger(logger)

	if cfg.MailAPIURL != "" {
		mailer := email.NewMailtrapProvider(email.MailtrapConfig{
			APIURL:   cfg.MailAPIURL,
			APIToken: cfg.MailAPIToken,
			From:     cfg.MailFrom,
			FromName: cfg.MailFromName,
		})
		svc.SetReceiptNotifier(email.NewReceiptNotifier(mailer))
	}

	// Startup credential probe; a failure is worth knowing about but must not
	// keep the service from serving confirms for already-issued invoices.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := svc.ValidateCredentials(ctx); err != nil {
		logger.Warn("gateway credential validation failed", "gateway", cfg.GatewayName, "err", err)
	}
	cancel()

	r := apphttp.NewRouter(logger, svc)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
