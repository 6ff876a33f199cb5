package bolt

import (
	"crypto/rand"
	"encoding/hex"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// sessionIdentifiers is the per-request identifier triple the provider expects
// on every call. The values are derived from the caller's context and the wall
// clock at call time and are never reused; the provider flags reused session
// ids as bot traffic.
type sessionIdentifiers struct {
	sessionID   string
	distinctID  string
	rhSessionID string
}

// idSource bundles the random and clock inputs of identifier generation so
// tests can swap them for deterministic ones.
type idSource struct {
	randHex func(n int) string
	newUUID func() string
	now     func() time.Time
}

func defaultIDSource() idSource {
	return idSource{
		randHex: randHex,
		newUUID: uuid.NewString,
		now:     time.Now,
	}
}

// randHex returns n random lowercase hex digits.
func randHex(n int) string {
	buf := make([]byte, (n+1)/2)
	if _, err := rand.Read(buf); err != nil {
		panic("bolt: crypto/rand unavailable: " + err.Error())
	}
	return hex.EncodeToString(buf)[:n]
}

func (g idSource) traceID() string {
	return g.randHex(32)
}

func (g idSource) spanID() string {
	return g.randHex(16)
}

// identifiers derives a fresh triple. Anonymous calls (empty userID) key the
// session on the device id and use a mixpanel-style "$device:<uuid>" distinct
// id, pre-encoded the way the provider's mobile client sends it. Authenticated
// calls key on the user id and use the "client-<userId>" scheme.
func (g idSource) identifiers(deviceID, userID string) sessionIdentifiers {
	owner := deviceID
	distinct := "%24device%3A" + g.newUUID()
	if userID != "" {
		owner = userID
		distinct = "client-" + userID
	}

	now := g.now()
	return sessionIdentifiers{
		sessionID:   owner + "u" + strconv.FormatInt(now.UnixMilli(), 10),
		distinctID:  distinct,
		rhSessionID: owner + "u" + strconv.FormatInt(now.Unix(), 10),
	}
}
