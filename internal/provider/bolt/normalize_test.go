package bolt

import (
	"encoding/json"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFailureEnvelope(t *testing.T) {
	env := failureEnvelope(opLoginStart, &callError{
		status:  403,
		message: "provider returned status 403 Forbidden",
		data:    map[string]any{"code": float64(299)},
	})

	assert.False(t, env.Success)
	assert.Equal(t, "Login request failed", env.Message)
	assert.Equal(t, 403, env.Code)
	assert.NotNil(t, env.ErrorData)
}

func TestMergedEnvelope_FlattensPayload(t *testing.T) {
	env := mergedEnvelope(map[string]any{
		"resend_confirmation_interval_ms": float64(30000),
		"message":                         "OK",
	})

	require.True(t, env.Success)

	raw, err := json.Marshal(env)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, true, out["success"])
	assert.Equal(t, float64(30000), out["resend_confirmation_interval_ms"])
	assert.Equal(t, "OK", out["message"])
}

func TestEnvelope_MarshalFixedFieldsWin(t *testing.T) {
	env := Envelope{
		Success: false,
		Message: "Authentication failed",
		Extra:   map[string]any{"message": "provider says otherwise"},
	}

	raw, err := json.Marshal(env)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, "Authentication failed", out["message"])
}

func TestNormalizeConfirm_MissingAuth(t *testing.T) {
	payload := map[string]any{
		"message": "Invalid code",
		"code":    float64(293),
		"data":    map[string]any{},
	}

	env := normalizeConfirm(payload, "secret")

	assert.False(t, env.Success)
	assert.Equal(t, "Authentication failed", env.Message)
	assert.Equal(t, "Invalid code", env.Details)
	assert.Equal(t, 293, env.Code)
}

func TestNormalizeConfirm_NilPayload(t *testing.T) {
	env := normalizeConfirm(nil, "secret")

	assert.False(t, env.Success)
	assert.Equal(t, "Authentication failed", env.Message)
	assert.Equal(t, "Invalid verification code or credentials", env.Details)
}

func TestNormalizeConfirm_SynthesizesAuthorizationHeader(t *testing.T) {
	payload := map[string]any{
		"data": map[string]any{
			"auth": map[string]any{
				"auth_username": "rider-77",
				"user_id":       float64(77),
			},
		},
	}

	env := normalizeConfirm(payload, "secret")

	require.True(t, env.Success)
	// base64("rider-77:secret")
	assert.Equal(t, "Basic cmlkZXItNzc6c2VjcmV0", env.Extra["authorization_header"])
	assert.Equal(t, float64(77), env.Extra["user_id"])
}

func TestAuthorizationHeader(t *testing.T) {
	assert.Equal(t, "Basic dXNlcjpwYXNz", authorizationHeader("user", "pass"))
}

func TestStripProcessoutPrefix(t *testing.T) {
	assert.Equal(t, "abc123", StripProcessoutPrefix("processout/abc123"))
	assert.Equal(t, "abc123", StripProcessoutPrefix("abc123"))
	assert.Equal(t, "", StripProcessoutPrefix(""))
}

func TestNormalizePaymentInstruments_FirstEntry(t *testing.T) {
	payload := map[string]any{
		"data": map[string]any{
			"payment_instruments": []any{
				map[string]any{"id": "processout/card_1"},
				map[string]any{"id": "processout/card_2"},
			},
		},
	}

	env := normalizePaymentInstruments(payload)

	require.True(t, env.Success)
	data := env.Data.(PaymentData)
	require.NotNil(t, data.PaymentInstrumentID)
	assert.Equal(t, "card_1", *data.PaymentInstrumentID)
}

// An account without instruments is a success with a null id, not an error.
func TestNormalizePaymentInstruments_Empty(t *testing.T) {
	payload := map[string]any{
		"data": map[string]any{"payment_instruments": []any{}},
	}

	env := normalizePaymentInstruments(payload)

	require.True(t, env.Success)
	data := env.Data.(PaymentData)
	assert.Nil(t, data.PaymentInstrumentID)

	raw, err := json.Marshal(env)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"paymentInstrumentId":null`)
}

func TestProbeOK(t *testing.T) {
	tests := []struct {
		name string
		env  Envelope
		want bool
	}{
		{
			name: "message OK",
			env:  Envelope{Success: true, Data: map[string]any{"message": "OK"}},
			want: true,
		},
		{
			name: "message SLOW with HTTP 200",
			env:  Envelope{Success: true, Data: map[string]any{"message": "SLOW"}},
			want: false,
		},
		{
			name: "transport failure",
			env:  Envelope{Success: false},
			want: false,
		},
		{
			name: "missing message",
			env:  Envelope{Success: true, Data: map[string]any{}},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, probeOK(tt.env))
		})
	}
}

func TestTransformRideOptions(t *testing.T) {
	svc := newTestService()
	payload := map[string]any{
		"data": map[string]any{
			"categories": []any{
				map[string]any{
					"id":          float64(1120),
					"name":        "Bolt",
					"price_str":   "17",
					"description": "Everyday rides",
					"eta_str":     "7 min",
					"icon_url":    "https://images.bolt.eu/bolt.png",
					"type":        "standard",
				},
				map[string]any{
					"id":        "1125",
					"name":      "XL",
					"price_str": "$24.5",
					"eta_str":   "5-10 min",
					"type":      "xl",
				},
			},
		},
	}

	req := deeplinkRequest()
	rides := svc.TransformRideOptions(payload, req)
	require.Len(t, rides, 2)

	first := rides[0]
	assert.Equal(t, "Bolt", first.RideName)
	assert.Equal(t, "17.00", first.Price)
	assert.Equal(t, "Everyday rides", first.RideDescription)
	assert.Equal(t, "1120", first.CategoryID)
	assert.Equal(t, "7 min", first.Eta)
	assert.Equal(t, "https://images.bolt.eu/bolt.png", first.IconURL)
	assert.Equal(t, "standard", first.Type)

	link, err := url.Parse(first.Deeplink)
	require.NoError(t, err)
	q := link.Query()
	assert.Equal(t, "420", q.Get("eta_seconds"))
	assert.Equal(t, "RON", q.Get("fare_currency"))
	assert.Equal(t, "17.00", q.Get("fare_high"))
	assert.Equal(t, "1120", q.Get("product_id"))

	second := rides[1]
	assert.Equal(t, "1125", second.CategoryID)
	assert.Equal(t, "24.50", second.Price)

	link2, err := url.Parse(second.Deeplink)
	require.NoError(t, err)
	q2 := link2.Query()
	assert.Equal(t, "300", q2.Get("eta_seconds"))
	assert.Equal(t, "USD", q2.Get("fare_currency"))
}

func TestTransformRideOptions_UnexpectedShapes(t *testing.T) {
	svc := newTestService()

	assert.Empty(t, svc.TransformRideOptions(nil, SearchRidesRequest{}))
	assert.Empty(t, svc.TransformRideOptions("not a map", SearchRidesRequest{}))
	assert.Empty(t, svc.TransformRideOptions(map[string]any{"data": map[string]any{}}, SearchRidesRequest{}))

	// Non-map entries are skipped, not fatal.
	payload := map[string]any{
		"data": map[string]any{
			"categories": []any{"garbage", map[string]any{"name": "Bolt", "price_str": "17"}},
		},
	}
	rides := svc.TransformRideOptions(payload, SearchRidesRequest{})
	require.Len(t, rides, 1)
	assert.Equal(t, "Bolt", rides[0].RideName)
}
