package internaldefs

import (
	cookieauth "github.com/finchrelia/cookieauth"
)

// CounterDef binds one engine counter to its exported name.
type CounterDef struct {
	ID   cookieauth.MetricID
	Name string
	Help string
}

var CounterDefs = []CounterDef{
	{ID: cookieauth.MetricRegisterSuccess, Name: "cookieauth_register_success_total", Help: "Successful registrations."},
	{ID: cookieauth.MetricRegisterValidationFailure, Name: "cookieauth_register_validation_failure_total", Help: "Registrations rejected by input validation."},
	{ID: cookieauth.MetricRegisterDuplicate, Name: "cookieauth_register_duplicate_total", Help: "Registrations rejected for a taken email."},
	{ID: cookieauth.MetricLoginSuccess, Name: "cookieauth_login_success_total", Help: "Successful logins."},
	{ID: cookieauth.MetricLoginFailure, Name: "cookieauth_login_failure_total", Help: "Failed logins, unknown email and wrong password combined."},
	{ID: cookieauth.MetricLoginRateLimited, Name: "cookieauth_login_rate_limited_total", Help: "Rate-limited login attempts."},
	{ID: cookieauth.MetricSessionCreated, Name: "cookieauth_session_created_total", Help: "Created sessions."},
	{ID: cookieauth.MetricSessionRefreshed, Name: "cookieauth_session_refreshed_total", Help: "Sessions with expiry extended by sliding renewal."},
	{ID: cookieauth.MetricSessionExpired, Name: "cookieauth_session_expired_total", Help: "Presented tokens rejected as expired or unknown."},
	{ID: cookieauth.MetricSessionInvalidated, Name: "cookieauth_session_invalidated_total", Help: "Sessions removed before natural expiry."},
	{ID: cookieauth.MetricVerifyAuthenticated, Name: "cookieauth_verify_authenticated_total", Help: "Request verifications that resolved a user."},
	{ID: cookieauth.MetricVerifyUnauthenticated, Name: "cookieauth_verify_unauthenticated_total", Help: "Request verifications that did not resolve a user."},
	{ID: cookieauth.MetricLogout, Name: "cookieauth_logout_total", Help: "Single-session logout operations."},
	{ID: cookieauth.MetricLogoutAll, Name: "cookieauth_logout_all_total", Help: "Logout-all operations."},
	{ID: cookieauth.MetricPasswordChangeSuccess, Name: "cookieauth_password_change_success_total", Help: "Successful password changes."},
	{ID: cookieauth.MetricPasswordChangeFailure, Name: "cookieauth_password_change_failure_total", Help: "Rejected password change attempts."},
	{ID: cookieauth.MetricStoreUnavailable, Name: "cookieauth_store_unavailable_total", Help: "Operations failed by a backing-store fault."},
}

// VerifyLatencyName is the exported name of the single engine histogram.
const VerifyLatencyName = "cookieauth_verify_latency_seconds"

// VerifyLatencyHelp documents the histogram.
const VerifyLatencyHelp = "VerifyRequest latency histogram."

// HistogramBounds are the le label values, aligned with the engine's
// millisecond buckets.
var HistogramBounds = []string{
	"0.001",
	"0.002",
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
}

// HistogramBoundSuffix mirrors HistogramBounds with characters legal in
// instrument names.
var HistogramBoundSuffix = []string{
	"0_001",
	"0_002",
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
}

// CumulativeBuckets converts per-bucket counts to the running totals the
// exposition formats expect.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i, v := range raw {
		running += v
		out[i] = running
	}
	return out
}
