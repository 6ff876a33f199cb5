package bolt

import (
	"encoding/base64"
	"strconv"
	"strings"
)

const processoutPrefix = "processout/"

// failureEnvelope maps a transport failure to the uniform envelope shape.
func failureEnvelope(op opMode, callErr *callError) Envelope {
	return Envelope{
		Success:   false,
		Message:   op.label + " request failed",
		Details:   callErr.message,
		Code:      callErr.status,
		ErrorData: callErr.data,
	}
}

// mergedEnvelope flattens the provider payload's top-level fields into the
// envelope instead of nesting them under data. Login responses are shaped this
// way so the confirm flow can read resend_confirmation_interval_ms directly.
func mergedEnvelope(payload any) Envelope {
	env := Envelope{Success: true}
	if m, ok := payload.(map[string]any); ok {
		env.Extra = m
	} else if payload != nil {
		env.Data = payload
	}
	return env
}

// normalizeConfirm validates that the confirm payload carries data.auth. A
// missing auth object is an authentication failure even when the HTTP call
// itself succeeded. On success the auth fields are merged into the envelope
// together with the synthesized Basic authorization header.
func normalizeConfirm(payload any, password string) Envelope {
	body, _ := payload.(map[string]any)
	auth := asMap(asMap(body, "data"), "auth")
	if auth == nil {
		env := Envelope{
			Success: false,
			Message: "Authentication failed",
			Details: "Invalid verification code or credentials",
		}
		if msg := asString(body, "message"); msg != "" {
			env.Details = msg
		}
		if code, ok := asNumber(body, "code"); ok {
			env.Code = int(code)
		}
		return env
	}

	merged := make(map[string]any, len(auth)+1)
	for k, v := range auth {
		merged[k] = v
	}
	merged["authorization_header"] = authorizationHeader(asString(auth, "auth_username"), password)
	return Envelope{Success: true, Extra: merged}
}

// authorizationHeader builds the Basic credential all authenticated provider
// calls expect: base64 of "<auth_username>:<password>".
func authorizationHeader(username, password string) string {
	encoded := base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
	return "Basic " + encoded
}

// normalizePaymentInstruments picks the first instrument and strips the
// payment-processor prefix the provider stores in the id. Zero instruments is
// a success with a null id, not an error.
func normalizePaymentInstruments(payload any) Envelope {
	data := PaymentData{}
	body, _ := payload.(map[string]any)
	instruments := asSlice(asMap(body, "data"), "payment_instruments")
	if len(instruments) > 0 {
		if first, ok := instruments[0].(map[string]any); ok {
			id := StripProcessoutPrefix(asString(first, "id"))
			data.PaymentInstrumentID = &id
		}
	}
	return Envelope{Success: true, Data: data}
}

// StripProcessoutPrefix removes the literal "processout/" prefix the provider
// prepends to tokenized instrument ids.
func StripProcessoutPrefix(id string) string {
	return strings.TrimPrefix(id, processoutPrefix)
}

// probeOK defines connectivity for the favorite-address liveness check:
// transport success and data.message exactly "OK".
func probeOK(env Envelope) bool {
	if !env.Success {
		return false
	}
	data, _ := env.Data.(map[string]any)
	return asString(data, "message") == "OK"
}

// TransformRideOptions flattens the nested ride-search payload into the
// simplified ride list, generating one deep link per option from the
// originating search request.
func (s *Service) TransformRideOptions(payload any, req SearchRidesRequest) []SimplifiedRide {
	body, _ := payload.(map[string]any)
	categories := asSlice(asMap(body, "data"), "categories")

	rides := make([]SimplifiedRide, 0, len(categories))
	for _, entry := range categories {
		option, ok := entry.(map[string]any)
		if !ok {
			continue
		}

		rawPrice := asString(option, "price_str")
		etaStr := asString(option, "eta_str")
		categoryID := asID(option, "id")

		etaSeconds := ParseEtaSeconds(etaStr)
		currency := ExtractCurrency(rawPrice)

		rides = append(rides, SimplifiedRide{
			RideName:        asString(option, "name"),
			Price:           CleanPrice(rawPrice),
			RideDescription: asString(option, "description"),
			CategoryID:      categoryID,
			Eta:             etaStr,
			IconURL:         asString(option, "icon_url"),
			Type:            asString(option, "type"),
			Deeplink:        s.deeplink.Generate(req, categoryID, rawPrice, etaSeconds, currency),
		})
	}
	return rides
}

// Tolerant accessors for the provider's loosely typed JSON. Missing keys and
// wrong types read as zero values; the provider reshapes these payloads often
// enough that hard failures on unexpected fields are not worth it.

func asMap(m map[string]any, key string) map[string]any {
	if m == nil {
		return nil
	}
	child, _ := m[key].(map[string]any)
	return child
}

func asSlice(m map[string]any, key string) []any {
	if m == nil {
		return nil
	}
	child, _ := m[key].([]any)
	return child
}

func asString(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return s
}

func asNumber(m map[string]any, key string) (float64, bool) {
	if m == nil {
		return 0, false
	}
	n, ok := m[key].(float64)
	return n, ok
}

// asID reads an identifier that the provider serializes sometimes as a string
// and sometimes as a bare number.
func asID(m map[string]any, key string) string {
	if s := asString(m, key); s != "" {
		return s
	}
	if n, ok := asNumber(m, key); ok {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	return ""
}
