package domain

import (
	"context"
	"time"
)

// Access answers whether a user may act on a baby
// a non-member gets NotFound so ids cannot be probed; a member lacking min gets Forbidden
type Access interface {
	Require(ctx context.Context, babyID, userID string, min Role) (Role, error)
}

// Zones resolves a baby's calendar zone; nil means the baby has none set
type Zones interface {
	Zone(ctx context.Context, babyID string) (*time.Location, error)
}

// ServicePort is consumed by handlers
type ServicePort interface {
	Access
	Zones

	Create(ctx context.Context, userID string, in CreateInput) (Baby, error)
	List(ctx context.Context, userID string) ([]Baby, error)
	Get(ctx context.Context, babyID, userID string) (Baby, error)
	Update(ctx context.Context, babyID, userID string, in UpdateInput) (Baby, error)
	Delete(ctx context.Context, babyID, userID string) error

	Members(ctx context.Context, babyID, userID string) ([]Member, error)
	RemoveMember(ctx context.Context, babyID, userID, memberID string) error
	Leave(ctx context.Context, babyID, userID string) error
}
