package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/spec-kit/social-service/internal/config"
)

// TokenIssuer mints opaque bearer tokens. Tokens carry no claims; they are
// random strings resolved against stored sessions, which is what makes
// per-token revocation possible.
type TokenIssuer struct {
	ttl        time.Duration
	tokenBytes int
}

// NewTokenIssuer builds an issuer from auth configuration.
func NewTokenIssuer(cfg config.AuthConfig) *TokenIssuer {
	tokenBytes := cfg.TokenBytes
	if tokenBytes < 16 {
		tokenBytes = 32
	}
	return &TokenIssuer{ttl: cfg.TokenTTL(), tokenBytes: tokenBytes}
}

// Issue generates a fresh token. The plaintext goes to the client; only the
// digest is meant for storage.
func (ti *TokenIssuer) Issue(now time.Time) (plaintext, digest string, expiresAt time.Time, err error) {
	buf := make([]byte, ti.tokenBytes)
	if _, err = rand.Read(buf); err != nil {
		return "", "", time.Time{}, err
	}
	plaintext = hex.EncodeToString(buf)
	return plaintext, Digest(plaintext), now.Add(ti.ttl), nil
}

// TTL returns the configured session lifetime.
func (ti *TokenIssuer) TTL() time.Duration {
	return ti.ttl
}

// Digest maps a plaintext token to its storage form.
func Digest(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}
