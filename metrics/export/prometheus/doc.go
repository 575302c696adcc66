// Package prometheus renders cookieauth engine metrics in Prometheus
// text exposition format.
//
// [NewExporter] accepts a cookieauth.Engine and exposes an http.Handler
// suitable for mounting at /metrics. Counter names are prefixed
// cookieauth_*_total; the single histogram is
// cookieauth_verify_latency_seconds.
//
// # What this package must NOT do
//
//   - Register anything in a global Prometheus registry — callers mount
//     the Handler.
//   - Mutate engine state.
package prometheus
