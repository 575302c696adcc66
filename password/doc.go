// Package password implements one-way password hashing and verification
// with Argon2id.
//
// # Output format
//
// Hash emits the PHC string format:
//
//	$argon2id$v=19$m=<memoryKB>,t=<time>,p=<parallelism>$<salt-b64>$<key-b64>
//
// The encoded string embeds the cost parameters and the per-call random
// salt, so stored hashes remain verifiable after the active parameters
// change. NeedsRehash reports when a stored hash was produced with weaker
// parameters than the hasher's current configuration.
//
// Key derivation is intentionally expensive (tens to hundreds of
// milliseconds). Callers decide where that work runs; the hasher never
// spawns goroutines of its own.
package password
