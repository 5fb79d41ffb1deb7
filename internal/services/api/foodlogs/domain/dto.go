// Package domain holds feeding log types
package domain

import (
	"context"
	"strings"
	"time"
)

// Reaction is how the baby took a food
type Reaction string

// Reactions; a log may also carry none
const (
	Loved    Reaction = "loved"
	Okay     Reaction = "okay"
	Disliked Reaction = "disliked"

	// NoReaction selects logs without a reaction in filters; it is never stored
	NoReaction Reaction = "none"
)

// ParseReaction accepts a stored reaction, case-insensitively
func ParseReaction(s string) (Reaction, bool) {
	switch r := Reaction(strings.ToLower(strings.TrimSpace(s))); r {
	case Loved, Okay, Disliked:
		return r, true
	}
	return "", false
}

// Log is one feeding with its food's name and categories
type Log struct {
	ID         string    `json:"id"`
	BabyID     string    `json:"baby_id"`
	FoodItemID string    `json:"food_item_id"`
	FoodName   string    `json:"food_name" example:"Sweet potato"`
	Categories []string  `json:"categories" example:"veggie"`
	FedAt      time.Time `json:"fed_at"`
	LoggedBy   *string   `json:"logged_by,omitempty"`
	Notes      *string   `json:"notes,omitempty" example:"ate half"`
	Reaction   *Reaction `json:"reaction,omitempty" example:"loved"`
}

// At is the instant used for ordering and clustering
func (l Log) At() time.Time { return l.FedAt }

// CreateInput records a feeding
type CreateInput struct {
	FoodItemID string    `json:"food_item_id" validate:"required,uuid" example:"5f0c6a5e-8a51-4b8f-9d43-2f1f6c1b0a77"`
	FedAt      time.Time `json:"fed_at" validate:"required" example:"2024-03-06T08:30:00Z"`
	Notes      *string   `json:"notes,omitempty" validate:"omitempty,max=1000" example:"ate half"`
	Reaction   *string   `json:"reaction,omitempty" validate:"omitempty,oneof=loved okay disliked" example:"loved"`
}

// UpdateInput edits a feeding; clear_reaction removes a stored reaction
type UpdateInput struct {
	FedAt         *time.Time `json:"fed_at,omitempty" example:"2024-03-06T08:45:00Z"`
	Notes         *string    `json:"notes,omitempty" validate:"omitempty,max=1000" example:"ate all of it"`
	Reaction      *string    `json:"reaction,omitempty" validate:"omitempty,oneof=loved okay disliked" example:"okay"`
	ClearReaction bool       `json:"clear_reaction,omitempty"`
}

// Filter narrows a range read; both bounds are inclusive
type Filter struct {
	Start     time.Time
	End       time.Time
	FoodID    string
	Reactions []Reaction
}

// Reader reads feedings for other modules, which do their own access checks
type Reader interface {
	Range(ctx context.Context, babyID string, start, end time.Time) ([]Log, error)
}

// ServicePort is consumed by handlers
type ServicePort interface {
	Reader

	Create(ctx context.Context, babyID, userID string, in CreateInput) (Log, error)
	Update(ctx context.Context, babyID, userID, logID string, in UpdateInput) (Log, error)
	Delete(ctx context.Context, babyID, userID, logID string) error
	List(ctx context.Context, babyID, userID string, f Filter) ([]Log, error)
}
