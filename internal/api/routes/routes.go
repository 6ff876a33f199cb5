package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/oneride/ride-gateway/internal/api/handlers"
)

// Options carries optional cross-cutting middleware.
type Options struct {
	NewRelic     *newrelic.Application
	GeneralLimit gin.HandlerFunc
	SearchLimit  gin.HandlerFunc
}

// SetupRoutes configures all API routes
func SetupRoutes(r *gin.Engine, h *handlers.Handlers, opts Options) {
	if opts.NewRelic != nil {
		r.Use(nrgin.Middleware(opts.NewRelic))
	}
	if opts.GeneralLimit != nil {
		r.Use(opts.GeneralLimit)
	}

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy"})
	})

	// Provider account endpoints
	boltGroup := r.Group("/bolt")
	{
		boltGroup.POST("/login", h.Login)
		boltGroup.POST("/confirm", h.ConfirmLogin)
	}

	r.POST("/payment-data", h.GetPaymentData)
	r.POST("/favorite-addresses", h.GetFavoriteAddresses)
	r.POST("/check-connection-status", h.CheckConnectionStatus)

	if opts.SearchLimit != nil {
		r.POST("/search-rides", opts.SearchLimit, h.SearchRides)
	} else {
		r.POST("/search-rides", h.SearchRides)
	}
}
