// Package metrics implements the engine's in-process counters and the
// verify-latency histogram. Everything is lock-free atomics; a disabled
// instance is a no-op so call sites never branch.
package metrics
