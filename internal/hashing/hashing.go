package hashing

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/zeebo/xxh3"
)

const (
	AlgoSHA256 = "sha256"
	AlgoXXH3   = "xxh3"
)

// Hasher returns the hex-encoded digest of data.
type Hasher func(data []byte) string

// SHA256 hashes data with SHA-256.
func SHA256(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// XXH3 hashes data with xxh3-128.
func XXH3(data []byte) string {
	sum := xxh3.Hash128(data).Bytes()
	return hex.EncodeToString(sum[:])
}

// New returns the hasher registered under algo ("sha256" or "xxh3").
func New(algo string) (Hasher, error) {
	switch algo {
	case "", AlgoSHA256:
		return SHA256, nil
	case AlgoXXH3:
		return XXH3, nil
	}
	return nil, fmt.Errorf("unknown hash algorithm %q", algo)
}
