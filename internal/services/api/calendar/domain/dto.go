// Package domain holds the calendar view types
package domain

import (
	"context"
	"time"

	"babyfood/internal/services/api/foodlogs/domain"
)

// Query selects a window; empty fields fall back to week, today and the baby's zone
type Query struct {
	View string `query:"view" example:"week"`
	Date string `query:"date" validate:"omitempty,date_only" example:"2024-03-06"`
	TZ   string `query:"tz" validate:"omitempty,iana_tz" example:"Europe/Berlin"`
}

// Day is one grid cell with its feedings grouped into sittings
type Day struct {
	Date     string         `json:"date" example:"2024-03-06"`
	InMonth  bool           `json:"in_month"`
	Clusters [][]domain.Log `json:"clusters"`
}

// Calendar is a resolved window laid out as a grid
type Calendar struct {
	View  string    `json:"view" example:"week"`
	Label string    `json:"label" example:"Mar 3 - Mar 9, 2024"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Zone  string    `json:"zone" example:"Europe/Berlin"`
	Prev  string    `json:"prev" example:"2024-02-28"`
	Next  string    `json:"next" example:"2024-03-13"`
	Days  []Day     `json:"days"`
}

// ServicePort is consumed by handlers
type ServicePort interface {
	Build(ctx context.Context, babyID, userID string, q Query) (Calendar, error)
	ICS(ctx context.Context, babyID, userID string, q Query) ([]byte, error)
}
