// Package domain holds invitation types
package domain

import (
	"context"
	"time"
)

// Status is an invitation's lifecycle state; only pending ever changes
type Status string

// Invitation states
const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRevoked  Status = "revoked"
	StatusExpired  Status = "expired"
)

// Invitation asks an email address to join a baby as a member
type Invitation struct {
	ID        string    `json:"id"`
	BabyID    string    `json:"baby_id"`
	BabyName  string    `json:"baby_name,omitempty" example:"Ada"`
	Email     string    `json:"email" example:"grandma@example.com"`
	InvitedBy *string   `json:"invited_by,omitempty"`
	Token     string    `json:"token,omitempty"`
	Status    Status    `json:"status" example:"pending"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
	AcceptURL string    `json:"accept_url,omitempty" example:"http://localhost:3000/invite/accept?token=..."`
}

// Open reports whether the invitation can still be accepted at now
func (i Invitation) Open(now time.Time) bool {
	return i.Status == StatusPending && now.Before(i.ExpiresAt)
}

// Lapsed reports a pending invitation whose expiry has passed
func (i Invitation) Lapsed(now time.Time) bool {
	return i.Status == StatusPending && !now.Before(i.ExpiresAt)
}

// Preview is what an invitee sees before accepting
type Preview struct {
	BabyName  string    `json:"baby_name" example:"Ada"`
	Email     string    `json:"email" example:"grandma@example.com"`
	Status    Status    `json:"status" example:"pending"`
	ExpiresAt time.Time `json:"expires_at"`
}

// CreateInput invites one email address
type CreateInput struct {
	Email string `json:"email" validate:"required,email,max=254" example:"grandma@example.com"`
}

// Accepted is returned once the caller joined the baby
type Accepted struct {
	BabyID string `json:"baby_id"`
}

// ServicePort is consumed by handlers
type ServicePort interface {
	Create(ctx context.Context, babyID, userID string, in CreateInput) (Invitation, error)
	List(ctx context.Context, babyID, userID string) ([]Invitation, error)
	Revoke(ctx context.Context, babyID, userID, invitationID string) error

	Lookup(ctx context.Context, token string) (Preview, error)
	Accept(ctx context.Context, token, userID string) (Accepted, error)
}

// Sweeper expires lapsed invitations in bulk
type Sweeper interface {
	ExpireStale(ctx context.Context) (int64, error)
}
