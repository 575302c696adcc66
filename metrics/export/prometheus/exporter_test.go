package prometheus

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	cookieauth "github.com/finchrelia/cookieauth"
)

type fakeSource struct {
	snapshot cookieauth.MetricsSnapshot
	dropped  uint64
}

func (f fakeSource) MetricsSnapshot() cookieauth.MetricsSnapshot { return f.snapshot }
func (f fakeSource) AuditDropped() uint64                        { return f.dropped }

func TestRenderIncludesCountersAndHistogram(t *testing.T) {
	exp := NewExporterFromSource(fakeSource{
		snapshot: cookieauth.MetricsSnapshot{
			Counters: map[cookieauth.MetricID]uint64{
				cookieauth.MetricLoginSuccess:     7,
				cookieauth.MetricStoreUnavailable: 1,
			},
			VerifyLatencyBuckets: [8]uint64{1, 2, 3, 4, 5, 6, 7, 8},
			VerifyLatencyCount:   40,
		},
		dropped: 2,
	})

	out := exp.Render()
	if !strings.Contains(out, "cookieauth_login_success_total 7") {
		t.Fatalf("expected login_success counter in output, got:\n%s", out)
	}
	if !strings.Contains(out, "cookieauth_store_unavailable_total 1") {
		t.Fatalf("expected store_unavailable counter in output, got:\n%s", out)
	}
	if !strings.Contains(out, "cookieauth_verify_latency_seconds_bucket{le=\"0.001\"} 1") {
		t.Fatalf("expected first histogram bucket in output, got:\n%s", out)
	}
	if !strings.Contains(out, "cookieauth_verify_latency_seconds_bucket{le=\"0.25\"} 36") {
		t.Fatalf("expected last finite bucket cumulative in output, got:\n%s", out)
	}
	if !strings.Contains(out, "cookieauth_verify_latency_seconds_bucket{le=\"+Inf\"} 40") {
		t.Fatalf("expected +Inf bucket equal to count, got:\n%s", out)
	}
	if !strings.Contains(out, "cookieauth_audit_dropped_total 2") {
		t.Fatalf("expected audit dropped counter in output, got:\n%s", out)
	}
}

func TestRenderZeroSnapshotStillExposesNames(t *testing.T) {
	exp := NewExporterFromSource(fakeSource{
		snapshot: cookieauth.MetricsSnapshot{
			Counters: map[cookieauth.MetricID]uint64{},
		},
	})

	out := exp.Render()
	if !strings.Contains(out, "cookieauth_register_success_total 0") {
		t.Fatalf("expected zero-valued counters to stay visible, got:\n%s", out)
	}
}

func TestHandlerWritesPrometheusContentType(t *testing.T) {
	exp := NewExporterFromSource(fakeSource{
		snapshot: cookieauth.MetricsSnapshot{
			Counters: map[cookieauth.MetricID]uint64{cookieauth.MetricLoginSuccess: 1},
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	exp.Handler().ServeHTTP(rec, req)

	if got := rec.Header().Get("Content-Type"); !strings.Contains(got, "text/plain") {
		t.Fatalf("expected prometheus content type, got %q", got)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func BenchmarkRender(b *testing.B) {
	exp := NewExporterFromSource(fakeSource{
		snapshot: cookieauth.MetricsSnapshot{
			Counters: map[cookieauth.MetricID]uint64{
				cookieauth.MetricLoginSuccess:       1000,
				cookieauth.MetricLoginFailure:       40,
				cookieauth.MetricSessionCreated:     800,
				cookieauth.MetricSessionInvalidated: 20,
			},
			VerifyLatencyBuckets: [8]uint64{10, 20, 30, 40, 50, 60, 70, 80},
			VerifyLatencyCount:   360,
		},
	})

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = exp.Render()
	}
}
