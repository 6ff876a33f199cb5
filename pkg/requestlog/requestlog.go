// Package requestlog captures outbound provider requests for offline
// diagnostics. It is an optional sink: the default implementation discards
// everything, and failures to record never affect the call being logged.
package requestlog

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Sink receives a snapshot of each outbound request before it is sent.
type Sink interface {
	Log(ctx context.Context, service, method string, request any)
}

type nopSink struct{}

func (nopSink) Log(context.Context, string, string, any) {}

// Nop returns a sink that discards everything.
func Nop() Sink {
	return nopSink{}
}

// FileSink writes one timestamped JSON file per request into a directory.
type FileSink struct {
	dir string
}

// NewFileSink creates the log directory if needed.
func NewFileSink(dir string) (*FileSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileSink{dir: dir}, nil
}

type entry struct {
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Method    string    `json:"method"`
	Request   any       `json:"request"`
}

// Log writes the request snapshot. Errors are swallowed: diagnostics must
// never fail the provider call they describe.
func (s *FileSink) Log(_ context.Context, service, method string, request any) {
	now := time.Now().UTC()
	stamp := strings.NewReplacer(":", "-", ".", "-").Replace(now.Format("2006-01-02T15:04:05.000Z07:00"))
	name := service + "_" + method + "_" + stamp + ".json"

	data, err := json.MarshalIndent(entry{
		Timestamp: now,
		Service:   service,
		Method:    method,
		Request:   request,
	}, "", "  ")
	if err != nil {
		return
	}
	_ = os.WriteFile(filepath.Join(s.dir, sanitize(name)), data, 0o644)
}

func sanitize(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_' || r == '.':
			return r
		}
		return '-'
	}, name)
}
