package cookieauth

import "github.com/finchrelia/cookieauth/internal/metrics"

// MetricID identifies one engine counter. The set is fixed at compile
// time; exporters under metrics/export iterate it with MetricIDCount.
type MetricID = metrics.ID

const (
	MetricRegisterSuccess           = metrics.RegisterSuccess
	MetricRegisterValidationFailure = metrics.RegisterValidationFailure
	MetricRegisterDuplicate         = metrics.RegisterDuplicate
	MetricLoginSuccess              = metrics.LoginSuccess
	MetricLoginFailure              = metrics.LoginFailure
	MetricLoginRateLimited          = metrics.LoginRateLimited
	MetricSessionCreated            = metrics.SessionCreated
	MetricSessionRefreshed          = metrics.SessionRefreshed
	MetricSessionExpired            = metrics.SessionExpired
	MetricSessionInvalidated        = metrics.SessionInvalidated
	MetricVerifyAuthenticated       = metrics.VerifyAuthenticated
	MetricVerifyUnauthenticated     = metrics.VerifyUnauthenticated
	MetricLogout                    = metrics.Logout
	MetricLogoutAll                 = metrics.LogoutAll
	MetricPasswordChangeSuccess     = metrics.PasswordChangeSuccess
	MetricPasswordChangeFailure     = metrics.PasswordChangeFailure
	MetricStoreUnavailable          = metrics.StoreUnavailable

	// MetricIDCount is one past the highest MetricID.
	MetricIDCount = metrics.IDCount
)

// MetricsSnapshot is a point-in-time copy of all engine counters, safe
// to read without further synchronization.
type MetricsSnapshot = metrics.Snapshot

// MetricName returns the stable wire name of a counter, e.g.
// "login_success". Exporters use it as the label or suffix.
func MetricName(id MetricID) string {
	return metrics.Name(id)
}
