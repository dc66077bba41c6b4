package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
)

// Digest hashes a profile PIN with the profile id as salt. The same
// (pin, profileID) pair must always produce the same string so the stored
// hash can be compared on later unlock attempts.
//
// The strategy is selected once at startup, not re-checked per call.
type Digest interface {
	// Hash returns the digest of the PIN salted with the profile id.
	Hash(pin, profileID string) string
}

// SHA256Digest is the standard Digest: lowercase hex SHA-256 of
// "pin:profileID". This matches the digest the web client computes with
// WebCrypto, so hashes migrated from it verify unchanged.
type SHA256Digest struct{}

// Ensure SHA256Digest implements the Digest interface.
var _ Digest = SHA256Digest{}

// Hash implements Digest.Hash.
func (SHA256Digest) Hash(pin, profileID string) string {
	sum := sha256.Sum256([]byte(pin + ":" + profileID))
	return hex.EncodeToString(sum[:])
}

// ChecksumDigest is a weak fallback Digest kept only to verify PIN hashes
// written by web clients whose environment lacked a cryptographic digest.
// It is NOT a security control: it replicates the client's 32-bit additive
// checksum and renders it as a decimal string.
type ChecksumDigest struct{}

// Ensure ChecksumDigest implements the Digest interface.
var _ Digest = ChecksumDigest{}

// Hash implements Digest.Hash.
func (ChecksumDigest) Hash(pin, profileID string) string {
	data := []byte(pin + ":" + profileID)
	var h int32
	for _, b := range data {
		h = (h << 5) - h + int32(b)
	}
	return strconv.FormatInt(int64(h), 10)
}

// NewDigest returns the digest strategy for this process. SHA-256 is part
// of the Go standard library and therefore always available; the weak
// checksum remains reachable only for verifying legacy hashes.
func NewDigest() Digest {
	return SHA256Digest{}
}
