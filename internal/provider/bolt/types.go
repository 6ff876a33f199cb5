package bolt

import "encoding/json"

// DeviceContext carries the client device/app metadata the provider expects on
// every call. The JSON field names match the provider's mobile client exactly;
// the caller supplies them on each request and nothing is persisted.
type DeviceContext struct {
	Version         string `json:"version" binding:"required"`
	DeviceID        string `json:"deviceId" binding:"required"`
	DeviceName      string `json:"device_name" binding:"required"`
	DeviceOSVersion string `json:"device_os_version" binding:"required"`
	Channel         string `json:"channel" binding:"required"`
	Brand           string `json:"brand" binding:"required"`
	DeviceType      string `json:"deviceType" binding:"required"`
	Country         string `json:"country" binding:"required"`
	GpsLat          string `json:"gps_lat" binding:"required"`
	GpsLng          string `json:"gps_lng" binding:"required"`
	UserAgent       string `json:"userAgent" binding:"required"`
	Timezone        string `json:"timezone" binding:"required"`
}

// AuthContext identifies an already logged-in user. The AuthHeader is the
// authorization_header value returned by ConfirmLogin.
type AuthContext struct {
	UserID     string `json:"userId" binding:"required"`
	AuthHeader string `json:"authHeader" binding:"required"`
}

// LoginRequest starts SMS verification for a phone number.
type LoginRequest struct {
	DeviceContext
	PhoneNumber       string `json:"phone_number" binding:"required"`
	Password          string `json:"password" binding:"required"`
	AndroidHashString string `json:"android_hash_string"`
}

// ConfirmLoginRequest completes SMS verification with the received code.
type ConfirmLoginRequest struct {
	DeviceContext
	PhoneNumber string `json:"phone_number" binding:"required"`
	Password    string `json:"password" binding:"required"`
	Code        string `json:"code" binding:"required"`
}

// PaymentDataRequest lists the user's payment instruments.
type PaymentDataRequest struct {
	DeviceContext
	AuthContext
}

// FavoriteAddressRequest lists the user's saved addresses. Also reused as the
// connectivity probe for the provider account link.
type FavoriteAddressRequest struct {
	DeviceContext
	AuthContext
}

// SearchRidesRequest asks for ride options between two points. The address and
// title fields are display strings used only for deep link generation.
type SearchRidesRequest struct {
	DeviceContext
	AuthContext
	OriginLat               float64 `json:"originLat" binding:"required"`
	OriginLng               float64 `json:"originLng" binding:"required"`
	DestinationLat          float64 `json:"destinationLat" binding:"required"`
	DestinationLng          float64 `json:"destinationLng" binding:"required"`
	PaymentTokenID          string  `json:"paymentTokenId" binding:"required"`
	PickupFormattedAddress  string  `json:"pickupFormattedAddress"`
	PickupTitle             string  `json:"pickupTitle"`
	DropoffFormattedAddress string  `json:"dropoffFormattedAddress"`
	DropoffTitle            string  `json:"dropoffTitle"`
}

// Envelope is the uniform outcome of any provider call. Exactly one of the
// success/failure branches is populated. Extra holds provider payload fields
// that are merged into the top level of the serialized envelope (login and
// confirm responses are flattened this way so callers can read fields such as
// resend_confirmation_interval_ms directly).
type Envelope struct {
	Success   bool
	Message   string
	Details   string
	Error     string
	Code      int
	Data      any
	ErrorData any
	Extra     map[string]any
}

// MarshalJSON inlines Extra at the top level next to the fixed fields.
func (e Envelope) MarshalJSON() ([]byte, error) {
	m := map[string]any{"success": e.Success}
	if e.Message != "" {
		m["message"] = e.Message
	}
	if e.Details != "" {
		m["details"] = e.Details
	}
	if e.Error != "" {
		m["error"] = e.Error
	}
	if e.Code != 0 {
		m["code"] = e.Code
	}
	if e.Data != nil {
		m["data"] = e.Data
	}
	if e.ErrorData != nil {
		m["errorData"] = e.ErrorData
	}
	for k, v := range e.Extra {
		if _, taken := m[k]; !taken {
			m[k] = v
		}
	}
	return json.Marshal(m)
}

// PaymentData is the normalized payment-instrument lookup result. A nil id
// means the account has no instrument on file, which is not an error.
type PaymentData struct {
	PaymentInstrumentID *string `json:"paymentInstrumentId"`
}

// SimplifiedRide is one flattened ride option from a search response.
type SimplifiedRide struct {
	RideName        string `json:"ride_name"`
	Price           string `json:"price"`
	RideDescription string `json:"ride_description"`
	CategoryID      string `json:"category_id"`
	Eta             string `json:"eta"`
	IconURL         string `json:"icon_url"`
	Type            string `json:"type"`
	Deeplink        string `json:"deeplink,omitempty"`
}
