package cookieauth

import (
	"context"
	"log/slog"
	"time"

	"github.com/finchrelia/cookieauth/internal/audit"
	"github.com/finchrelia/cookieauth/internal/metrics"
	"github.com/finchrelia/cookieauth/internal/rate"
	"github.com/finchrelia/cookieauth/password"
	"github.com/finchrelia/cookieauth/session"
)

// sessionIDPrefixLen bounds how much of a session token audit events may
// carry.
const sessionIDPrefixLen = 8

// Engine is the authentication facade. Construct it with [Builder]; all
// methods are safe for concurrent use.
type Engine struct {
	config    Config
	directory UserDirectory
	sessions  *session.Manager
	hasher    *password.Hasher
	dummyHash string
	limiter   *rate.Limiter
	audit     *audit.Dispatcher
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

// Close flushes the audit queue. The engine must not be used afterwards.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	e.audit.Close()
	if dropped := e.audit.Dropped(); dropped > 0 {
		e.logger.Warn("audit events dropped under backpressure", slog.Uint64("dropped", dropped))
	}
}

// MetricsSnapshot returns a copy of all engine counters. With metrics
// disabled the counters map is empty.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil {
		return MetricsSnapshot{Counters: map[MetricID]uint64{}}
	}
	return e.metrics.Snapshot()
}

// AuditDropped reports how many audit events were shed under
// backpressure since the engine was built.
func (e *Engine) AuditDropped() uint64 {
	if e == nil {
		return 0
	}
	return e.audit.Dropped()
}

// BlankCookie returns the cookie that clears the session cookie on the
// client. Handlers use it when they need to force a sign-out response
// without going through Logout.
func (e *Engine) BlankCookie() session.Cookie {
	return e.sessions.BlankCookie()
}

func (e *Engine) ready() bool {
	return e != nil && e.sessions != nil && e.directory != nil && e.hasher != nil
}

func (e *Engine) inc(id metrics.ID) {
	e.metrics.Inc(id)
}

// emit queues one audit event, filling in timestamp and caller IP.
func (e *Engine) emit(ctx context.Context, eventType, userID, sessionToken string, success bool, failure error) {
	if e.audit == nil {
		return
	}
	event := audit.Event{
		Timestamp: time.Now().UTC(),
		EventType: eventType,
		UserID:    userID,
		SessionID: tokenPrefix(sessionToken),
		IP:        clientIPFromContext(ctx),
		Success:   success,
	}
	if failure != nil {
		event.Error = failure.Error()
	}
	e.audit.Emit(ctx, event)
}

func tokenPrefix(token string) string {
	if len(token) <= sessionIDPrefixLen {
		return token
	}
	return token[:sessionIDPrefixLen]
}
