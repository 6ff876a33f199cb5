package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oneride/ride-gateway/internal/provider/bolt"
	"github.com/oneride/ride-gateway/pkg/logger"
)

// Login handles POST /bolt/login
func (h *Handlers) Login(c *gin.Context) {
	var req bolt.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	h.Logger.Info("login requested",
		logger.String("device_id", req.DeviceID),
		logger.String("country", req.Country),
	)

	env := h.Bolt.Login(c.Request.Context(), req)
	h.Monitor.RecordProviderCall("login", env.Success, env.Code)
	c.JSON(http.StatusOK, env)
}

// ConfirmLogin handles POST /bolt/confirm
func (h *Handlers) ConfirmLogin(c *gin.Context) {
	var req bolt.ConfirmLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	env := h.Bolt.ConfirmLogin(c.Request.Context(), req)
	h.Monitor.RecordProviderCall("confirm_login", env.Success, env.Code)
	if !env.Success {
		h.Logger.Warn("login confirmation failed",
			logger.String("device_id", req.DeviceID),
			logger.Int("code", env.Code),
		)
	}
	c.JSON(http.StatusOK, env)
}

// GetPaymentData handles POST /payment-data
func (h *Handlers) GetPaymentData(c *gin.Context) {
	var req bolt.PaymentDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	env := h.Bolt.GetPaymentInstruments(c.Request.Context(), req)
	h.Monitor.RecordProviderCall("payment_instruments", env.Success, env.Code)
	c.JSON(http.StatusOK, env)
}

// GetFavoriteAddresses handles POST /favorite-addresses
func (h *Handlers) GetFavoriteAddresses(c *gin.Context) {
	var req bolt.FavoriteAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	env := h.Bolt.GetFavoriteAddresses(c.Request.Context(), req)
	h.Monitor.RecordProviderCall("favorite_addresses", env.Success, env.Code)
	c.JSON(http.StatusOK, env)
}
