package bolt

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// opMode describes how one provider operation shapes its request. The five
// operations differ only in method/path, the anonymous vs authenticated
// identifier scheme, the literal gps_age the official client reports for that
// screen, and whether a JSON body is sent.
type opMode struct {
	label         string // used in failure envelope messages
	method        string
	path          string
	gpsAge        string
	authenticated bool
	jsonBody      bool
}

var (
	opLoginStart   = opMode{label: "Login", method: http.MethodPost, path: "/profile/verification/start/v2", gpsAge: "32", jsonBody: true}
	opLoginConfirm = opMode{label: "Authentication", method: http.MethodPost, path: "/profile/verification/confirm/v3", gpsAge: "114", jsonBody: true}
	opPaymentList  = opMode{label: "Payment instrument", method: http.MethodGet, path: "/payment/instrument/list", gpsAge: "0", authenticated: true}
	opFavoriteList = opMode{label: "Favorite address", method: http.MethodGet, path: "/profile/favorites/list", gpsAge: "0", authenticated: true}
	opRideSearch   = opMode{label: "Ride search", method: http.MethodPost, path: "/search/rideOptions", gpsAge: "0", authenticated: true, jsonBody: true}
)

// queryParam preserves the official client's parameter order; values are
// stored wire-ready (already percent-encoded where needed).
type queryParam struct {
	Key   string
	Value string
}

// providerRequest is the full synthesized request triple, ready to hand to the
// HTTP transport.
type providerRequest struct {
	Method  string
	Path    string
	Query   []queryParam
	Headers map[string]string
	Body    any
}

// rawQuery joins the parameters verbatim. Values are not re-encoded here;
// distinct_id in particular is already carried in its encoded form.
func (r providerRequest) rawQuery() string {
	var b strings.Builder
	for i, p := range r.Query {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(p.Key)
		b.WriteByte('=')
		b.WriteString(p.Value)
	}
	return b.String()
}

func escape(v string) string {
	return url.QueryEscape(v)
}

// queryParams builds the shared parameter set. A fresh identifier triple is
// derived on every call; userID is empty for anonymous operations.
func (s *Service) queryParams(op opMode, device DeviceContext, userID string) []queryParam {
	ids := s.ids.identifiers(device.DeviceID, userID)

	q := []queryParam{
		{"version", escape(device.Version)},
		{"deviceId", escape(device.DeviceID)},
		{"device_name", escape(device.DeviceName)},
		{"device_os_version", escape(device.DeviceOSVersion)},
		{"channel", escape(device.Channel)},
		{"brand", escape(device.Brand)},
		{"deviceType", escape(device.DeviceType)},
		{"signup_session_id", ""},
		{"country", escape(device.Country)},
		{"is_local_authentication_available", "false"},
		{"language", "en"},
		{"gps_lat", device.GpsLat},
		{"gps_lng", device.GpsLng},
		{"gps_accuracy_m", "10.0"},
		{"gps_age", op.gpsAge},
		{"session_id", ids.sessionID},
		{"distinct_id", ids.distinctID},
		{"rh_session_id", ids.rhSessionID},
	}
	if op.authenticated {
		q = append(q, queryParam{"user_id", escape(userID)})
	}
	return q
}

// headers builds the header set the provider's edge accepts as the official
// Android client: a sentry baggage/trace pair with fresh trace and span ids,
// the client's own User-Agent, and gzip keep-alive transport hints.
func (s *Service) headers(op opMode, device DeviceContext, authHeader string) map[string]string {
	traceID := s.ids.traceID()
	spanID := s.ids.spanID()

	h := map[string]string{
		"Accept-Encoding": "gzip",
		"Connection":      "Keep-Alive",
		"Host":            s.cfg.Host,
		"User-Agent":      device.UserAgent,
		"baggage": fmt.Sprintf(
			"sentry-environment=production,sentry-public_key=%s,sentry-release=%s%%40%s%%2B%s,sentry-trace_id=%s",
			s.cfg.SentryPublicKey, s.cfg.ReleasePackage, device.Version, s.cfg.VersionCode, traceID,
		),
		"sentry-trace": traceID + "-" + spanID,
	}
	if op.jsonBody {
		h["Content-Type"] = "application/json; charset=UTF-8"
	}
	if op.authenticated {
		h["Authorization"] = authHeader
	}
	return h
}

func (s *Service) buildRequest(op opMode, device DeviceContext, userID, authHeader string, body any) providerRequest {
	return providerRequest{
		Method:  op.method,
		Path:    op.path,
		Query:   s.queryParams(op, device, userID),
		Headers: s.headers(op, device, authHeader),
		Body:    body,
	}
}

func lastKnownState() map[string]any {
	return map[string]any{
		"opened_product": map[string]any{
			"product": "taxi",
		},
	}
}

func (s *Service) loginBody(req LoginRequest) map[string]any {
	return map[string]any{
		"type":             "phone",
		"phone_number":     req.PhoneNumber,
		"password":         req.Password,
		"last_known_state": lastKnownState(),
		"timezone":         req.Timezone,
		"app_store_verification_result": map[string]any{
			"integrity_token": "",
			"version_code":    s.cfg.VersionCode,
			"type":            "google",
		},
		"method":              "sms",
		"android_hash_string": req.AndroidHashString,
		"alternative_channel": "sms",
	}
}

func confirmBody(req ConfirmLoginRequest) map[string]any {
	return map[string]any{
		"type":             "phone",
		"phone_number":     req.PhoneNumber,
		"password":         req.Password,
		"code":             req.Code,
		"timezone":         req.Timezone,
		"last_known_state": lastKnownState(),
	}
}

func searchBody(req SearchRidesRequest) map[string]any {
	return map[string]any{
		"pickup_stop": map[string]any{
			"lat": req.OriginLat,
			"lng": req.OriginLng,
		},
		"destination_stops": []map[string]any{
			{
				"lat": req.DestinationLat,
				"lng": req.DestinationLng,
			},
		},
		"payment_method": map[string]any{
			"id":   req.PaymentTokenID,
			"type": "processout",
		},
		"timezone":         req.Timezone,
		"last_known_state": lastKnownState(),
	}
}
