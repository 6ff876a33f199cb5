package monitoring

import (
	"fmt"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
)

// Config holds New Relic configuration
type Config struct {
	LicenseKey string
	AppName    string
	Enabled    bool
}

// NewRelicApp wraps the New Relic application
type NewRelicApp struct {
	*newrelic.Application
	enabled bool
}

// New creates a new New Relic application
func New(cfg Config) (*NewRelicApp, error) {
	if !cfg.Enabled || cfg.LicenseKey == "" {
		// Return disabled app
		return &NewRelicApp{nil, false}, nil
	}

	app, err := newrelic.NewApplication(
		newrelic.ConfigAppName(cfg.AppName),
		newrelic.ConfigLicense(cfg.LicenseKey),
		newrelic.ConfigDistributedTracerEnabled(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create New Relic application: %w", err)
	}

	return &NewRelicApp{app, true}, nil
}

// RecordCustomEvent records a custom event
func (nr *NewRelicApp) RecordCustomEvent(eventType string, params map[string]interface{}) {
	if !nr.enabled || nr.Application == nil {
		return
	}
	nr.Application.RecordCustomEvent(eventType, params)
}

// RecordCustomMetric records a custom metric
func (nr *NewRelicApp) RecordCustomMetric(name string, value float64) {
	if !nr.enabled || nr.Application == nil {
		return
	}
	nr.Application.RecordCustomMetric(name, value)
}

// Shutdown gracefully shuts down the New Relic application
func (nr *NewRelicApp) Shutdown(timeout time.Duration) {
	if !nr.enabled || nr.Application == nil {
		return
	}
	nr.Application.Shutdown(timeout)
}

// Custom event helpers

// RecordProviderCall records one upstream provider call outcome
func (nr *NewRelicApp) RecordProviderCall(operation string, success bool, code int) {
	nr.RecordCustomEvent("ProviderCall", map[string]interface{}{
		"provider":  "bolt",
		"operation": operation,
		"success":   success,
		"code":      code,
		"timestamp": time.Now().Unix(),
	})
}

// RecordRideSearch records a ride search and how many options came back
func (nr *NewRelicApp) RecordRideSearch(optionCount int) {
	nr.RecordCustomEvent("RideSearch", map[string]interface{}{
		"provider":     "bolt",
		"option_count": optionCount,
	})
	nr.RecordCustomMetric("custom/rides/options_returned", float64(optionCount))
}

// RecordDeeplinkGenerated counts generated provider deep links per scheme
func (nr *NewRelicApp) RecordDeeplinkGenerated(scheme string, count int) {
	nr.RecordCustomMetric(fmt.Sprintf("custom/deeplink/generated/%s", scheme), float64(count))
}

// IsEnabled returns whether New Relic is enabled
func (nr *NewRelicApp) IsEnabled() bool {
	return nr.enabled
}
