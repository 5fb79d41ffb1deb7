// Package domain defines the identity contracts the API and tools share
package domain

import "time"

// DefaultAudience is the aud claim the hosted auth platform stamps on user tokens
const DefaultAudience = "authenticated"

// Options configure token verification and signing
type Options struct {
	// Secret is the shared HS256 key; required
	Secret []byte

	// Audience must appear in aud; empty skips the check
	Audience string

	// Issuer must equal iss when set
	Issuer string

	// TTL is the lifetime Issue stamps, default 1h
	TTL time.Duration

	// Now is swapped in tests
	Now func() time.Time
}

// Verifier turns a bearer token into a user id
type Verifier interface {
	Verify(token string) (userID string, err error)
}

// Issuer signs tokens for a user id; dev tooling and tests only
type Issuer interface {
	Issue(userID string) (string, error)
}
