package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/heinja/payments/internal/http/middleware"
	"github.com/heinja/payments/internal/http/validation"
	"github.com/heinja/payments/internal/modules/checkout"
	"github.com/heinja/payments/internal/shared/apperr"
)

// CheckoutRequester is the slice of the orchestrator this handler needs.
type CheckoutRequester interface {
	RequestCheckout(ctx context.Context, req checkout.CheckoutRequest) (string, error)
}

type CheckoutHandler struct {
	Logger   *slog.Logger
	Checkout CheckoutRequester
}

func NewCheckoutHandler(logger *slog.Logger, svc CheckoutRequester) *CheckoutHandler {
	return &CheckoutHandler{Logger: logger, Checkout: svc}
}

type checkoutInput struct {
	Amount      int64  `json:"amount" binding:"required,gt=0"`
	Currency    string `json:"currency" binding:"required,len=3"`
	PayerName   string `json:"payer_name" binding:"required,min=2,max=140"`
	PayerEmail  string `json:"payer_email" binding:"required,email,max=255"`
	PayerMobile string `json:"payer_mobile" binding:"omitempty,max=32"`
	Title       string `json:"title" binding:"required,max=140"`
	Description string `json:"description" binding:"omitempty,max=500"`

	ReferenceType string `json:"reference_type" binding:"required,max=64"`
	ReferenceID   string `json:"reference_id" binding:"required,max=64"`
}

// POST /api/checkout
func (h *CheckoutHandler) Create(c *gin.Context) {
	var in checkoutInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fields := validation.FromBindError(err, &in)
		middleware.Fail(c, apperr.InvalidErr("Invalid checkout request.", fields))
		return
	}

	invoiceURL, err := h.Checkout.RequestCheckout(c.Request.Context(), checkout.CheckoutRequest{
		Amount:        in.Amount,
		Currency:      in.Currency,
		PayerName:     in.PayerName,
		PayerEmail:    in.PayerEmail,
		PayerMobile:   in.PayerMobile,
		Title:         in.Title,
		Description:   in.Description,
		ReferenceType: in.ReferenceType,
		ReferenceID:   in.ReferenceID,
	})
	if err != nil {
		middleware.Fail(c, mapCheckoutError(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"invoice_url": invoiceURL})
}

func mapCheckoutError(err error) error {
	var unsupported *checkout.UnsupportedCurrencyError
	if errors.As(err, &unsupported) {
		return apperr.InvalidErr(
			"Please select another payment method. This gateway does not support transactions in currency '"+unsupported.Currency+"'.",
			nil,
		)
	}
	if errors.Is(err, checkout.ErrInvalidReference) {
		return apperr.NotFoundErr("Referenced record for checkout was not found.")
	}
	var unavailable *checkout.ProviderUnavailableError
	if errors.As(err, &unavailable) {
		return apperr.UnavailableErr("Failed to create the payment invoice, please try again later.", err)
	}
	return apperr.Wrap(err)
}
