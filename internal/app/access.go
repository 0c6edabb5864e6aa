package app

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// AccessGate checks the shared access key presented with every request.
type AccessGate struct {
	secret string
	hash   []byte
}

// NewAccessGate creates a gate for a plain secret, a bcrypt hash of it, or
// both. With neither, every check fails with ErrServerMisconfigured.
func NewAccessGate(secret, bcryptHash string) *AccessGate {
	g := &AccessGate{secret: secret}
	if bcryptHash != "" {
		g.hash = []byte(bcryptHash)
	}
	return g
}

// Configured reports whether a secret is available.
func (g *AccessGate) Configured() bool {
	return g != nil && (g.secret != "" || len(g.hash) > 0)
}

// Authorize returns nil when presented matches the configured secret.
func (g *AccessGate) Authorize(presented string) error {
	if !g.Configured() {
		return fmt.Errorf("%w: Missing ACCESS_KEY", ErrServerMisconfigured)
	}
	if presented == "" {
		return ErrUnauthorized
	}
	if g.secret != "" && ConstantTimeCompare(presented, g.secret) {
		return nil
	}
	if len(g.hash) > 0 && bcrypt.CompareHashAndPassword(g.hash, []byte(presented)) == nil {
		return nil
	}
	return ErrUnauthorized
}

// HashAccessKey returns the bcrypt hash to configure instead of a plain key.
func HashAccessKey(key string) (string, error) {
	if key == "" {
		return "", invalid("access key cannot be empty")
	}
	b, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ConstantTimeCompare performs a constant-time comparison of two strings.
func ConstantTimeCompare(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
