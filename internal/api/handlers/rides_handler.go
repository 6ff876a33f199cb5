package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oneride/ride-gateway/internal/api/dto"
	"github.com/oneride/ride-gateway/internal/provider/bolt"
	"github.com/oneride/ride-gateway/pkg/logger"
)

// SearchRides handles POST /search-rides
func (h *Handlers) SearchRides(c *gin.Context) {
	var req bolt.SearchRidesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	env := h.Bolt.SearchRideOptions(c.Request.Context(), req)
	h.Monitor.RecordProviderCall("ride_search", env.Success, env.Code)

	resp := dto.SimplifiedRideResponse{}
	if env.Success {
		rides := h.Bolt.TransformRideOptions(env.Data, req)
		resp.Success = true
		resp.Message = "Ride options retrieved successfully"
		resp.Data = rides
		h.Monitor.RecordRideSearch(len(rides))
		if len(rides) > 0 {
			h.Monitor.RecordDeeplinkGenerated(h.Bolt.DeeplinkScheme(), len(rides))
		}

		h.Logger.Info("ride search completed",
			logger.String("user_id", req.UserID),
			logger.Int("options", len(rides)),
		)
	} else {
		resp.Message = env.Message
		if resp.Message == "" {
			resp.Message = "Failed to retrieve ride options"
		}
		resp.Error = env.Details
		if resp.Error == "" {
			resp.Error = "An error occurred while searching for ride options"
		}
	}
	c.JSON(http.StatusOK, resp)
}

// CheckConnectionStatus handles POST /check-connection-status. It probes the
// bolt account link through the favorite-address listing; uber and lyft are
// not integrated and always report false.
func (h *Handlers) CheckConnectionStatus(c *gin.Context) {
	var req bolt.FavoriteAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	status := dto.ConnectionStatusResponse{}
	status.Bolt = h.Bolt.CheckConnection(c.Request.Context(), req)

	c.JSON(http.StatusOK, status)
}
