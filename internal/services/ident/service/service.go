// Package service verifies and signs HS256 user tokens
package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"babyfood/internal/platform/config"
	"babyfood/internal/services/ident/domain"
)

// ErrNoSecret is returned by New when the signing key is empty
var ErrNoSecret = errors.New("ident: empty jwt secret")

// Svc implements domain.Verifier and domain.Issuer
type Svc struct {
	opt domain.Options
}

var (
	_ domain.Verifier = (*Svc)(nil)
	_ domain.Issuer   = (*Svc)(nil)
)

// FromConfig reads JWT_SECRET, JWT_AUDIENCE, JWT_ISSUER and JWT_TTL from c
func FromConfig(c config.Conf) domain.Options {
	return domain.Options{
		Secret:   []byte(c.MayString("JWT_SECRET", "")),
		Audience: c.MayString("JWT_AUDIENCE", domain.DefaultAudience),
		Issuer:   c.MayString("JWT_ISSUER", ""),
		TTL:      c.MayDuration("JWT_TTL", time.Hour),
	}
}

// New validates opt and fills defaults
func New(opt domain.Options) (*Svc, error) {
	if len(opt.Secret) == 0 {
		return nil, ErrNoSecret
	}
	if opt.TTL <= 0 {
		opt.TTL = time.Hour
	}
	if opt.Now == nil {
		opt.Now = time.Now
	}
	return &Svc{opt: opt}, nil
}

func (s *Svc) parserOptions() []jwt.ParserOption {
	po := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.opt.Now),
	}
	if s.opt.Audience != "" {
		po = append(po, jwt.WithAudience(s.opt.Audience))
	}
	if s.opt.Issuer != "" {
		po = append(po, jwt.WithIssuer(s.opt.Issuer))
	}
	return po
}

// Verify checks signature, expiry, audience and issuer and returns the uuid subject
func (s *Svc) Verify(raw string) (string, error) {
	if raw == "" {
		return "", fmt.Errorf("token is empty")
	}
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.opt.Secret, nil
	}, s.parserOptions()...)
	if err != nil {
		return "", fmt.Errorf("parse token: %w", err)
	}
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return "", fmt.Errorf("invalid subject uuid: %w", err)
	}
	return id.String(), nil
}

// Issue signs a token for userID with the configured audience and issuer
func (s *Svc) Issue(userID string) (string, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return "", fmt.Errorf("invalid user id: %w", err)
	}
	now := s.opt.Now()
	claims := jwt.RegisteredClaims{
		Subject:   id.String(),
		Issuer:    s.opt.Issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.opt.TTL)),
	}
	if s.opt.Audience != "" {
		claims.Audience = jwt.ClaimStrings{s.opt.Audience}
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.opt.Secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
