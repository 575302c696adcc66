package metrics

import (
	"sync/atomic"
	"time"
)

// ID identifies one counter.
type ID uint8

const (
	RegisterSuccess ID = iota
	RegisterValidationFailure
	RegisterDuplicate
	LoginSuccess
	LoginFailure
	LoginRateLimited
	SessionCreated
	SessionRefreshed
	SessionExpired
	SessionInvalidated
	VerifyAuthenticated
	VerifyUnauthenticated
	Logout
	LogoutAll
	PasswordChangeSuccess
	PasswordChangeFailure
	StoreUnavailable

	IDCount
)

var names = [IDCount]string{
	RegisterSuccess:           "register_success",
	RegisterValidationFailure: "register_validation_failure",
	RegisterDuplicate:         "register_duplicate",
	LoginSuccess:              "login_success",
	LoginFailure:              "login_failure",
	LoginRateLimited:          "login_rate_limited",
	SessionCreated:            "session_created",
	SessionRefreshed:          "session_refreshed",
	SessionExpired:            "session_expired",
	SessionInvalidated:        "session_invalidated",
	VerifyAuthenticated:       "verify_authenticated",
	VerifyUnauthenticated:     "verify_unauthenticated",
	Logout:                    "logout",
	LogoutAll:                 "logout_all",
	PasswordChangeSuccess:     "password_change_success",
	PasswordChangeFailure:     "password_change_failure",
	StoreUnavailable:          "store_unavailable",
}

// Name returns the stable wire name of a counter. Unknown IDs map to
// "unknown".
func Name(id ID) string {
	if id >= IDCount {
		return "unknown"
	}
	return names[id]
}

// latencyBucketCount matches the fixed bucket layout below.
const latencyBucketCount = 8

// LatencyBoundsMillis are the upper bounds (inclusive) of the verify
// latency buckets, in milliseconds. Samples above the last bound only
// count toward the total.
var LatencyBoundsMillis = [latencyBucketCount]uint64{1, 2, 5, 10, 25, 50, 100, 250}

// Config controls which instruments are live.
type Config struct {
	Enabled       bool
	EnableLatency bool
}

// Metrics holds the counters. A nil or disabled Metrics accepts all calls
// as no-ops.
type Metrics struct {
	enabled    bool
	latEnabled bool

	counters [IDCount]atomic.Uint64

	latBuckets [latencyBucketCount]atomic.Uint64
	latCount   atomic.Uint64
}

// New creates a Metrics instance per cfg.
func New(cfg Config) *Metrics {
	return &Metrics{
		enabled:    cfg.Enabled,
		latEnabled: cfg.Enabled && cfg.EnableLatency,
	}
}

// Inc increments the counter for id.
func (m *Metrics) Inc(id ID) {
	if m == nil || !m.enabled || id >= IDCount {
		return
	}
	m.counters[id].Add(1)
}

// ObserveVerifyLatency records one request-verification duration.
func (m *Metrics) ObserveVerifyLatency(d time.Duration) {
	if m == nil || !m.latEnabled {
		return
	}
	ms := uint64(d.Milliseconds())
	for i, bound := range LatencyBoundsMillis {
		if ms <= bound {
			m.latBuckets[i].Add(1)
			break
		}
	}
	m.latCount.Add(1)
}

// Snapshot is a point-in-time copy of all instruments.
type Snapshot struct {
	Counters             map[ID]uint64
	VerifyLatencyBuckets [latencyBucketCount]uint64
	VerifyLatencyCount   uint64
}

// Snapshot deep-copies the current values. Safe to call concurrently with
// updates; values are individually atomic, not mutually consistent.
func (m *Metrics) Snapshot() Snapshot {
	snap := Snapshot{Counters: make(map[ID]uint64, IDCount)}
	if m == nil || !m.enabled {
		return snap
	}
	for id := ID(0); id < IDCount; id++ {
		snap.Counters[id] = m.counters[id].Load()
	}
	for i := range m.latBuckets {
		snap.VerifyLatencyBuckets[i] = m.latBuckets[i].Load()
	}
	snap.VerifyLatencyCount = m.latCount.Load()
	return snap
}
