package provider

import (
	"context"
	"encoding/json"
	"fmt"
)

// Provider-side invoice statuses we care about. Anything the mapping does not
// recognize is treated as not-paid, never as paid.
const (
	InvoiceStatusPaid    = "PAID"
	InvoiceStatusExpired = "EXPIRED"
)

type Invoice struct {
	ID         string `json:"id"`
	ExternalID string `json:"external_id"`
	Status     string `json:"status"`
	InvoiceURL string `json:"invoice_url"`
	Amount     int64  `json:"amount"`
	Currency   string `json:"currency"`

	// Raw is the provider payload exactly as received, kept for audit.
	Raw json.RawMessage `json:"-"`
}

type Customer struct {
	GivenNames   string `json:"given_names"`
	Email        string `json:"email"`
	MobileNumber string `json:"mobile_number,omitempty"`
}

type InvoiceItem struct {
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
}

type InvoiceFee struct {
	Type  string `json:"type"`
	Value int64  `json:"value"`
}

type CreateInvoiceRequest struct {
	ExternalID         string        `json:"external_id"`
	PayerEmail         string        `json:"payer_email"`
	Description        string        `json:"description"`
	Amount             int64         `json:"amount"`
	Currency           string        `json:"currency"`
	Customer           Customer      `json:"customer"`
	Fees               []InvoiceFee  `json:"fees,omitempty"`
	Items              []InvoiceItem `json:"items,omitempty"`
	SuccessRedirectURL string        `json:"success_redirect_url"`
	FailureRedirectURL string        `json:"failure_redirect_url"`
	ShouldSendEmail    bool          `json:"should_send_email"`
	InvoiceDuration    int           `json:"invoice_duration,omitempty"`
}

// Client is the synchronous facade over the remote invoice API. No call is
// retried; an error means the operation did not happen from this service's
// point of view.
type Client interface {
	CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (*Invoice, error)
	GetInvoice(ctx context.Context, invoiceID string) (*Invoice, error)
	ListInvoices(ctx context.Context) ([]Invoice, error)
}

// Error is a failure reported by the remote side (auth, validation, 5xx).
type Error struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("provider error %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("provider error %d: %s", e.StatusCode, e.Message)
}
