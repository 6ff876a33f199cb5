package bolt

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/oneride/ride-gateway/pkg/logger"
	"github.com/oneride/ride-gateway/pkg/requestlog"
)

const (
	defaultBaseURL = "https://user.live.boltsvc.net"
	defaultHost    = "user.live.boltsvc.net"

	// Sentry envelope constants the official Android client ships with.
	defaultSentryPublicKey = "fb5f34fc26a081ff4100b68d3c9c1a42"
	defaultReleasePackage  = "ee.mtakso.client"
	defaultVersionCode     = "3240"

	defaultTimeout = 30 * time.Second
)

// Config holds provider connection settings. Zero values fall back to the
// production endpoints and the release identifiers of the client build the
// request shapes were captured from.
type Config struct {
	BaseURL         string
	Host            string
	SentryPublicKey string
	ReleasePackage  string
	VersionCode     string
	Timeout         time.Duration
}

func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = defaultBaseURL
	}
	if c.Host == "" {
		c.Host = defaultHost
	}
	if c.SentryPublicKey == "" {
		c.SentryPublicKey = defaultSentryPublicKey
	}
	if c.ReleasePackage == "" {
		c.ReleasePackage = defaultReleasePackage
	}
	if c.VersionCode == "" {
		c.VersionCode = defaultVersionCode
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	return c
}

// Service synthesizes provider-faithful requests, performs the transport call
// and normalizes the result. It is stateless across calls: every request gets
// a freshly derived identifier set and nothing is cached or retried.
type Service struct {
	cfg        Config
	httpClient *http.Client
	log        *logger.Logger
	deeplink   *DeeplinkBuilder
	sink       requestlog.Sink
	ids        idSource
}

// NewService creates a provider service. sink may be nil, in which case
// request diagnostics are discarded.
func NewService(cfg Config, deeplink *DeeplinkBuilder, log *logger.Logger, sink requestlog.Sink) *Service {
	cfg = cfg.withDefaults()
	if sink == nil {
		sink = requestlog.Nop()
	}
	if deeplink == nil {
		deeplink = NewDeeplinkBuilder(DeeplinkConfig{})
	}
	return &Service{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        log,
		deeplink:   deeplink,
		sink:       sink,
		ids:        defaultIDSource(),
	}
}

// DeeplinkScheme reports which parameter scheme generated deep links use.
func (s *Service) DeeplinkScheme() string {
	return string(s.deeplink.Scheme())
}

// callError is a transport-level failure: a network error or a non-2xx status.
type callError struct {
	status  int
	message string
	data    any
}

// call executes one synthesized request and decodes the JSON payload. A nil
// callError means transport success; payload shape validation happens in the
// normalizers, not here.
func (s *Service) call(ctx context.Context, op opMode, prq providerRequest) (any, *callError) {
	endpoint := s.cfg.BaseURL + prq.Path + "?" + prq.rawQuery()

	var reqBody io.Reader
	if prq.Body != nil {
		encoded, err := json.Marshal(prq.Body)
		if err != nil {
			return nil, &callError{status: http.StatusInternalServerError, message: err.Error()}
		}
		reqBody = bytes.NewReader(encoded)
	}

	httpReq, err := http.NewRequestWithContext(ctx, prq.Method, endpoint, reqBody)
	if err != nil {
		return nil, &callError{status: http.StatusInternalServerError, message: err.Error()}
	}
	for k, v := range prq.Headers {
		if k == "Host" {
			httpReq.Host = v
			continue
		}
		httpReq.Header.Set(k, v)
	}

	s.sink.Log(ctx, "bolt", op.label, map[string]any{
		"url":     endpoint,
		"method":  prq.Method,
		"headers": prq.Headers,
		"body":    prq.Body,
	})

	start := time.Now()
	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		s.log.Warn("provider call failed",
			logger.String("operation", op.label),
			logger.Err(err),
		)
		return nil, &callError{status: http.StatusInternalServerError, message: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &callError{status: http.StatusInternalServerError, message: err.Error()}
	}

	var payload any
	if len(raw) > 0 {
		// Tolerate non-JSON bodies on error statuses; the raw text still
		// travels in the failure envelope for diagnostics.
		_ = json.Unmarshal(raw, &payload)
	}

	s.log.Debug("provider call completed",
		logger.String("operation", op.label),
		logger.Int("status", resp.StatusCode),
		logger.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errData := payload
		if errData == nil && len(raw) > 0 {
			errData = string(raw)
		}
		return nil, &callError{
			status:  resp.StatusCode,
			message: "provider returned status " + resp.Status,
			data:    errData,
		}
	}
	return payload, nil
}

// Login starts phone verification. On success the provider payload's top-level
// fields are merged into the envelope.
func (s *Service) Login(ctx context.Context, req LoginRequest) Envelope {
	prq := s.buildRequest(opLoginStart, req.DeviceContext, "", "", s.loginBody(req))
	payload, callErr := s.call(ctx, opLoginStart, prq)
	if callErr != nil {
		return failureEnvelope(opLoginStart, callErr)
	}
	return mergedEnvelope(payload)
}

// ConfirmLogin completes phone verification. Transport success alone is not
// enough: the payload must carry data.auth, from which the Basic authorization
// header for all subsequent authenticated calls is synthesized.
func (s *Service) ConfirmLogin(ctx context.Context, req ConfirmLoginRequest) Envelope {
	prq := s.buildRequest(opLoginConfirm, req.DeviceContext, "", "", confirmBody(req))
	payload, callErr := s.call(ctx, opLoginConfirm, prq)
	if callErr != nil {
		return failureEnvelope(opLoginConfirm, callErr)
	}
	return normalizeConfirm(payload, req.Password)
}

// GetPaymentInstruments returns the user's default payment instrument id, with
// the payment processor prefix stripped. No instrument on file is a success
// with a null id.
func (s *Service) GetPaymentInstruments(ctx context.Context, req PaymentDataRequest) Envelope {
	prq := s.buildRequest(opPaymentList, req.DeviceContext, req.UserID, req.AuthHeader, nil)
	payload, callErr := s.call(ctx, opPaymentList, prq)
	if callErr != nil {
		return failureEnvelope(opPaymentList, callErr)
	}
	return normalizePaymentInstruments(payload)
}

// GetFavoriteAddresses lists the user's saved addresses.
func (s *Service) GetFavoriteAddresses(ctx context.Context, req FavoriteAddressRequest) Envelope {
	prq := s.buildRequest(opFavoriteList, req.DeviceContext, req.UserID, req.AuthHeader, nil)
	payload, callErr := s.call(ctx, opFavoriteList, prq)
	if callErr != nil {
		return failureEnvelope(opFavoriteList, callErr)
	}
	return Envelope{Success: true, Data: payload}
}

// CheckConnection reuses the favorite-address listing as a liveness probe for
// the provider account link. An HTTP 200 with anything other than
// data.message == "OK" still counts as down.
func (s *Service) CheckConnection(ctx context.Context, req FavoriteAddressRequest) bool {
	env := s.GetFavoriteAddresses(ctx, req)
	return probeOK(env)
}

// SearchRideOptions queries ride options between the request's two stops.
func (s *Service) SearchRideOptions(ctx context.Context, req SearchRidesRequest) Envelope {
	prq := s.buildRequest(opRideSearch, req.DeviceContext, req.UserID, req.AuthHeader, searchBody(req))
	payload, callErr := s.call(ctx, opRideSearch, prq)
	if callErr != nil {
		return failureEnvelope(opRideSearch, callErr)
	}
	return Envelope{Success: true, Data: payload}
}
