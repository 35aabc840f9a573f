package phone

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

// ErrHashInput marks an attempt to hash something that is not a
// canonical phone number. This is a programming error on the caller's
// side, not bad user input.
var ErrHashInput = errors.New("hash input is not a canonical phone number")

// Hash returns the SHA-256 digest of a canonical E.164 phone string as
// 64 lowercase hex characters. The digest is deliberately unsalted:
// two users must derive the identical key for the identical number
// without any coordination, that is what makes hash-equality a join
// key. The flip side is that the phone number space is small enough to
// brute force, so hashes must never be handed out to clients in bulk.
// That restriction belongs to the API layer, it can not be enforced
// here.
func Hash(canonical string) (string, error) {
	if !IsCanonical(canonical) {
		return "", ErrHashInput
	}
	sum := sha256.Sum256([]byte(canonical))
	return hex.EncodeToString(sum[:]), nil
}

// NormalizeAndHash is the one-call path used by the import pipeline.
func NormalizeAndHash(raw string, defaultRegion string) (canonical string, hash string, err error) {
	canonical, err = Normalize(raw, defaultRegion)
	if err != nil {
		return "", "", err
	}
	hash, err = Hash(canonical)
	if err != nil {
		return "", "", err
	}
	return canonical, hash, nil
}
