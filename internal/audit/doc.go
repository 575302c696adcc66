// Package audit defines the engine's audit event model, delivery sinks,
// and the asynchronous dispatcher that decouples authentication latency
// from sink latency.
//
// Events never carry plaintext credentials or full session tokens; the
// engine records a truncated token prefix at most.
package audit
