package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/heinja/payments/internal/http/middleware"
	"github.com/heinja/payments/internal/shared/apperr"
)

type CredentialValidator interface {
	ValidateCredentials(ctx context.Context) error
	GatewayName() string
}

type GatewayHandler struct {
	Logger   *slog.Logger
	Checkout CredentialValidator
}

func NewGatewayHandler(logger *slog.Logger, svc CredentialValidator) *GatewayHandler {
	return &GatewayHandler{Logger: logger, Checkout: svc}
}

// POST /api/gateway/validate
// Cheap credential probe against the provider, used by the settings surface.
func (h *GatewayHandler) Validate(c *gin.Context) {
	if err := h.Checkout.ValidateCredentials(c.Request.Context()); err != nil {
		middleware.Fail(c, apperr.UnavailableErr("Something went wrong in validating gateway credentials.", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "gateway": h.Checkout.GatewayName()})
}
