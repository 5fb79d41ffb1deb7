// Package domain holds the baby and membership types shared by http, service and other modules
package domain

import "time"

// Role is a caregiver's standing on a baby
type Role string

const (
	// RoleOwner created the baby and manages members and invitations
	RoleOwner Role = "owner"
	// RoleMember logs feedings and edits the food library
	RoleMember Role = "member"
)

// Covers reports whether r grants at least min
func (r Role) Covers(min Role) bool {
	switch r {
	case RoleOwner:
		return true
	case RoleMember:
		return min == RoleMember
	}
	return false
}

// Baby is a baby profile as seen by one caregiver
type Baby struct {
	ID          string    `json:"id" example:"5f0c6a5e-8a51-4b8f-9d43-2f1f6c1b0a77"`
	Name        string    `json:"name" example:"Ada"`
	DateOfBirth string    `json:"date_of_birth" example:"2024-01-15"`
	TimeZone    string    `json:"time_zone,omitempty" example:"Europe/Berlin"`
	CreatedBy   *string   `json:"created_by,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	Role        Role      `json:"role" example:"owner"`
}

// Member is a caregiver of a baby with their profile
type Member struct {
	UserID    string  `json:"user_id"`
	Role      Role    `json:"role" example:"member"`
	FullName  *string `json:"full_name,omitempty" example:"Sam Rivera"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

// CreateInput creates a baby owned by the caller
type CreateInput struct {
	Name        string `json:"name" validate:"required,min=1,max=100" example:"Ada"`
	DateOfBirth string `json:"date_of_birth" validate:"required,date_only" example:"2024-01-15"`
	TimeZone    string `json:"time_zone,omitempty" validate:"omitempty,iana_tz" example:"Europe/Berlin"`
}

// UpdateInput renames a baby or changes its zone; an empty time_zone clears it
type UpdateInput struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=1,max=100" example:"Ada Lovelace"`
	TimeZone *string `json:"time_zone,omitempty" validate:"omitempty,iana_tz" example:"America/New_York"`
}
