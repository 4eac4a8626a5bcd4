package services

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// TokenDigester derives the stored form of bearer credentials.
// Session rows keep digests only; raw tokens are returned to the client once.
type TokenDigester interface {
	Digest(plainToken string) string
	Matches(plainToken, digest string) bool
}

type sha256Digester struct{}

// NewTokenDigester returns the SHA-256 hex digester.
func NewTokenDigester() TokenDigester {
	return sha256Digester{}
}

func (sha256Digester) Digest(plainToken string) string {
	sum := sha256.Sum256([]byte(plainToken))
	return hex.EncodeToString(sum[:])
}

func (d sha256Digester) Matches(plainToken, digest string) bool {
	return subtle.ConstantTimeCompare([]byte(d.Digest(plainToken)), []byte(digest)) == 1
}
