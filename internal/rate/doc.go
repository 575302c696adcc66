// Package rate enforces the login-attempt budget with fixed-window Redis
// counters, keyed per normalized email and optionally per client IP.
// Counters only ever grow on failure and are cleared on success, so the
// limiter cannot lock out an account that is being used correctly.
package rate
