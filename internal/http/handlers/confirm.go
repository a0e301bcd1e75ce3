package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Confirmer reconciles a token against the provider and returns the redirect
// location. It never fails; errors are handled and logged inside.
type Confirmer interface {
	Confirm(ctx context.Context, token string) string
}

type ConfirmHandler struct {
	Logger   *slog.Logger
	Checkout Confirmer
}

func NewConfirmHandler(logger *slog.Logger, svc Confirmer) *ConfirmHandler {
	return &ConfirmHandler{Logger: logger, Checkout: svc}
}

// GET /confirm_payment?token=...
// Guest-accessible. Always answers a redirect; a payer must never see a raw
// error page at this boundary.
func (h *ConfirmHandler) Handle(c *gin.Context) {
	token := c.Query("token")
	location := h.Checkout.Confirm(c.Request.Context(), token)
	c.Redirect(http.StatusSeeOther, location)
}
