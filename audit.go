package cookieauth

import (
	"io"

	"github.com/finchrelia/cookieauth/internal/audit"
)

// AuditEvent is one security-relevant engine event. SessionID carries a
// truncated token prefix only; the full token never leaves the engine.
type AuditEvent = audit.Event

// AuditSink receives audit events from the engine's dispatcher, one at
// a time on a dedicated goroutine. Sinks must tolerate delivery after
// the originating request has completed.
type AuditSink = audit.Sink

// Audit event type names, as they appear in AuditEvent.EventType.
const (
	AuditRegister       = "register"
	AuditLogin          = "login"
	AuditLogout         = "logout"
	AuditLogoutAll      = "logout_all"
	AuditPasswordChange = "password_change"
)

// NewChannelSink returns a sink backed by a buffered channel the host
// drains via Events().
func NewChannelSink(buffer int) *audit.ChannelSink {
	return audit.NewChannelSink(buffer)
}

// NewJSONWriterSink returns a sink that writes one JSON object per line
// to w.
func NewJSONWriterSink(w io.Writer) *audit.JSONWriterSink {
	return audit.NewJSONWriterSink(w)
}

// NoOpAuditSink discards every event.
type NoOpAuditSink = audit.NoOpSink
