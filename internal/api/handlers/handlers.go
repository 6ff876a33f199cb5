package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/oneride/ride-gateway/internal/api/dto"
	"github.com/oneride/ride-gateway/internal/provider/bolt"
	"github.com/oneride/ride-gateway/pkg/errors"
	"github.com/oneride/ride-gateway/pkg/logger"
	"github.com/oneride/ride-gateway/pkg/monitoring"
)

// Handlers holds all handler dependencies
type Handlers struct {
	Bolt    *bolt.Service
	Logger  *logger.Logger
	Monitor *monitoring.NewRelicApp
}

// NewHandlers creates a new Handlers instance
func NewHandlers(boltSvc *bolt.Service, log *logger.Logger, monitor *monitoring.NewRelicApp) *Handlers {
	return &Handlers{
		Bolt:    boltSvc,
		Logger:  log,
		Monitor: monitor,
	}
}

// bindError rejects a request whose payload failed binding.
func bindError(c *gin.Context, err error) {
	appErr := errors.ErrInvalidPayload
	c.JSON(appErr.Status, dto.ErrorResponse{Code: appErr.Code, Message: err.Error()})
}
