package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/heinja/payments/internal/http/handlers"
	"github.com/heinja/payments/internal/http/middleware"
	"github.com/heinja/payments/internal/modules/checkout"
)

func NewRouter(logger *slog.Logger, svc *checkout.Service) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.ErrorHandler(logger),
	)

	checkoutH := handlers.NewCheckoutHandler(logger, svc)
	confirmH := handlers.NewConfirmHandler(logger, svc)
	gatewayH := handlers.NewGatewayHandler(logger, svc)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	// Guest-facing redirect-back endpoint from the hosted checkout page.
	r.GET("/confirm_payment", confirmH.Handle)

	api := r.Group("/api")
	{
		api.POST("/checkout", checkoutH.Create)
		api.POST("/gateway/validate", gatewayH.Validate)
	}

	return r
}
