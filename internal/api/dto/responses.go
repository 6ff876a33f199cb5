package dto

import "github.com/oneride/ride-gateway/internal/provider/bolt"

// ConnectionStatusResponse reports which provider accounts are currently
// linked and reachable. Only bolt is integrated today.
type ConnectionStatusResponse struct {
	Bolt bool `json:"bolt"`
	Uber bool `json:"uber"`
	Lyft bool `json:"lyft"`
}

// SimplifiedRideResponse wraps the flattened ride list for the client app.
type SimplifiedRideResponse struct {
	Success bool                  `json:"success"`
	Message string                `json:"message"`
	Data    []bolt.SimplifiedRide `json:"data,omitempty"`
	Error   string                `json:"error,omitempty"`
}

// ErrorResponse is the boundary-level error shape
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
