package session

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
)

// tokenBytes is the entropy of a session token. 256 bits keeps the
// collision probability negligible across any realistic session count.
const tokenBytes = 32

// ErrTokenGeneration is returned when the system entropy source fails.
var ErrTokenGeneration = errors.New("session token generation failed")

// NewToken returns a fresh unguessable session token, base64url without
// padding.
func NewToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Join(ErrTokenGeneration, err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
