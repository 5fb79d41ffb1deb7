package httpkit

import (
	"net/http"
	"strings"

	perr "babyfood/internal/platform/errors"
)

// TokenFunc verifies a bearer token and returns the user it was issued to
type TokenFunc func(token string) (userID string, err error)

// Port implements middleware.AuthPort over a TokenFunc
type Port struct {
	parse TokenFunc
}

// NewPortFunc builds a Port from a verifier
func NewPortFunc(fn TokenFunc) *Port {
	return &Port{parse: fn}
}

// Parse reads the Authorization header; verifier errors are not echoed to the caller
func (p *Port) Parse(r *http.Request) (string, error) {
	raw, err := JWT(r)
	if err != nil {
		return "", err
	}
	if p.parse == nil {
		return "", perr.Unauthorizedf("invalid bearer token")
	}
	uid, err := p.parse(raw)
	if err != nil || strings.TrimSpace(uid) == "" {
		return "", perr.Unauthorizedf("invalid bearer token")
	}
	return uid, nil
}
