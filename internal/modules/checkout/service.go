package checkout

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"gorm.io/datatypes"

	"github.com/heinja/payments/internal/modules/provider"
)

// CheckoutRequest is the caller's input. Amounts are in currency minor units.
type CheckoutRequest struct {
	Amount        int64
	Currency      string
	PayerName     string
	PayerEmail    string
	PayerMobile   string // optional
	Title         string
	Description   string
	ReferenceType string
	ReferenceID   string
}

// ReferenceDetails is the resolved business object being paid for.
type ReferenceDetails struct {
	Type     string
	ID       string
	Amount   int64
	Currency string

	CustomerName   string
	CustomerEmail  string
	CustomerMobile string // empty when the customer has none

	Items []LineItem
}

type LineItem struct {
	Name     string
	Price    int64
	Quantity int
}

// RedirectHints is what a notified reference record owner may return to steer
// the final browser redirect.
type RedirectHints struct {
	RedirectTo      string
	RedirectMessage string
}

// ReferenceResolver is implemented by the record store that owns the business
// objects payments settle against.
type ReferenceResolver interface {
	Resolve(ctx context.Context, refType, refID string) (*ReferenceDetails, error)
	PaymentAuthorized(ctx context.Context, refType, refID, status string) (*RedirectHints, error)
}

// ReceiptNotifier sends the payer a settlement receipt. Optional; failures
// never block settlement.
type ReceiptNotifier interface {
	SendReceipt(ctx context.Context, r Receipt) error
}

type Receipt struct {
	Email       string
	Name        string
	ReferenceID string
	Amount      int64
	Currency    string
}

// Config for the orchestrator. Passed in explicitly; no process-wide state.
type Config struct {
	GatewayName         string
	BaseURL             string
	SupportedCurrencies []string
	Fees                FeeSchedule
	SuccessTarget       string
	FailureTarget       string
	InvoiceDurationSecs int
	SendProviderEmail   bool
}

func (c Config) supportsCurrency(currency string) bool {
	for _, cur := range c.SupportedCurrencies {
		if strings.EqualFold(cur, currency) {
			return true
		}
	}
	return false
}

// Service drives the checkout lifecycle: token issuance, invoice creation and
// confirmation-time reconciliation.
type Service struct {
	cfg       Config
	tokens    TokenStore
	refs      ReferenceResolver
	provider  provider.Client
	redirects *RedirectBuilder
	notifier  ReceiptNotifier
	logger    *slog.Logger
}

func NewService(cfg Config, tokens TokenStore, refs ReferenceResolver, pc provider.Client, rb *RedirectBuilder) *Service {
	if cfg.SuccessTarget == "" {
		cfg.SuccessTarget = "payment-success"
	}
	if cfg.FailureTarget == "" {
		cfg.FailureTarget = "payment-failed"
	}
	return &Service{
		cfg:       cfg,
		tokens:    tokens,
		refs:      refs,
		provider:  pc,
		redirects: rb,
		logger:    slog.Default(),
	}
}

func (s *Service) SetLogger(logger *slog.Logger) { s.logger = logger }

// SetReceiptNotifier enables payer receipt mail on settlement.
func (s *Service) SetReceiptNotifier(n ReceiptNotifier) { s.notifier = n }

func (s *Service) GatewayName() string { return s.cfg.GatewayName }

// RequestCheckout creates a provider invoice for the amount owed against the
// request's reference record and returns the hosted checkout URL. The token
// equals the reference id, so a repeated request supersedes the earlier one.
// On provider failure nothing is persisted.
func (s *Service) RequestCheckout(ctx context.Context, req CheckoutRequest) (string, error) {
	if !s.cfg.supportsCurrency(req.Currency) {
		return "", &UnsupportedCurrencyError{Currency: req.Currency}
	}

	ref, err := s.refs.Resolve(ctx, req.ReferenceType, req.ReferenceID)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidReference, err)
	}

	customer := provider.Customer{
		GivenNames: req.PayerName,
		Email:      req.PayerEmail,
	}
	// Mobile number is optional on the customer record; absence must not
	// fail the request.
	if ref.CustomerMobile != "" {
		customer.MobileNumber = ref.CustomerMobile
	} else if req.PayerMobile != "" {
		customer.MobileNumber = req.PayerMobile
	}

	items := make([]provider.InvoiceItem, 0, len(ref.Items))
	for _, it := range ref.Items {
		items = append(items, provider.InvoiceItem{
			Name:     it.Name,
			Price:    it.Price,
			Quantity: it.Quantity,
		})
	}

	// One active checkout per reference: the token is the reference id.
	token := ref.ID
	confirmURL := s.confirmURL(token)

	inv, err := s.provider.CreateInvoice(ctx, provider.CreateInvoiceRequest{
		ExternalID:  token,
		PayerEmail:  req.PayerEmail,
		Description: req.Description,
		Amount:      req.Amount,
		Currency:    req.Currency,
		Customer:    customer,
		Fees: []provider.InvoiceFee{
			{Type: "GATEWAY", Value: s.cfg.Fees.Compute(ref.Amount)},
		},
		Items: items,
		// Both redirects hit the same confirmation endpoint: the outcome is
		// always re-queried from the provider, never read off the URL.
		SuccessRedirectURL: confirmURL,
		FailureRedirectURL: confirmURL,
		ShouldSendEmail:    s.cfg.SendProviderEmail,
		InvoiceDuration:    s.cfg.InvoiceDurationSecs,
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "invoice creation failed",
			"gateway", s.cfg.GatewayName, "reference_id", ref.ID, "err", err)
		return "", &ProviderUnavailableError{Op: "create invoice", Err: err}
	}

	tok := &CheckoutToken{
		Token:             token,
		ProviderInvoiceID: inv.ID,
		Status:            StatusPending,
		RawOutput:         datatypes.JSON(append([]byte(nil), inv.Raw...)),
		ReferenceType:     ref.Type,
		ReferenceID:       ref.ID,
	}
	if err := s.tokens.Save(ctx, tok); err != nil {
		return "", err
	}

	s.logger.InfoContext(ctx, "checkout created",
		"gateway", s.cfg.GatewayName, "token", token, "invoice_id", inv.ID)
	return inv.InvoiceURL, nil
}

// ValidateCredentials is a cheap "can we talk to the provider" probe used by
// the settings surface, not part of the checkout path.
func (s *Service) ValidateCredentials(ctx context.Context) error {
	if _, err := s.provider.ListInvoices(ctx); err != nil {
		return &ProviderUnavailableError{Op: "credential validation", Err: err}
	}
	return nil
}

func (s *Service) confirmURL(token string) string {
	return strings.TrimRight(s.cfg.BaseURL, "/") + "/confirm_payment?token=" + url.QueryEscape(token)
}
