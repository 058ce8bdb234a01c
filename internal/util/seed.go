// Package util provides identifier formatting and deterministic
// random-stream derivation for dataset generation.
package util

import (
	"crypto/sha256"
	"encoding/binary"
	"math/rand/v2"
)

// DeriveSeed derives a reproducible 32-bit seed from a stable string key.
//
// The key is hashed with SHA-256 and the digest is truncated to its low
// 32 bits (big-endian tail), which matches interpreting the full digest
// as an integer modulo 2^32. Same key always yields the same seed,
// independent of generation order or concurrency.
func DeriveSeed(key string) uint32 {
	sum := sha256.Sum256([]byte(key))
	return binary.BigEndian.Uint32(sum[len(sum)-4:])
}

// NewStream returns an isolated PCG random stream keyed to the given
// string. Distinct keys yield effectively independent streams.
func NewStream(key string) *rand.Rand {
	seed := uint64(DeriveSeed(key))
	return rand.New(rand.NewPCG(seed, seed))
}

// NewSeededStream returns an isolated PCG random stream for a numeric
// seed. Used for the global label-generation stream.
func NewSeededStream(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
}
