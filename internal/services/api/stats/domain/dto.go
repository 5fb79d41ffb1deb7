// Package domain holds DTOs for stats http and service contracts
package domain

import (
	"context"
	"time"

	logs "babyfood/internal/services/api/foodlogs/domain"
)

// FoodStat is a library entry with its feeding history summarized
type FoodStat struct {
	ID               string         `json:"id"`
	Name             string         `json:"name" example:"Sweet potato"`
	Categories       []string       `json:"categories" example:"veggie"`
	StatsDismissed   bool           `json:"stats_dismissed"`
	TimesFed         int64          `json:"times_fed" example:"4"`
	LastFedAt        *time.Time     `json:"last_fed_at,omitempty"`
	DaysSinceLastFed *int           `json:"days_since_last_fed" example:"2"`
	LastReaction     *logs.Reaction `json:"last_reaction,omitempty" example:"loved"`
}

// FoodsInput filters on each food's latest reaction; none selects foods whose latest feeding had none
type FoodsInput struct {
	Reactions        []logs.Reaction
	IncludeDismissed bool
}

// HeatmapInput is an inclusive range of local days
type HeatmapInput struct {
	Start string `query:"start" validate:"required,date_only" example:"2024-03-01"`
	End   string `query:"end" validate:"required,date_only" example:"2024-03-31"`
}

// HeatCell is one day of feeding activity
type HeatCell struct {
	Day      string `json:"day" example:"2024-03-06"`
	Feedings int64  `json:"feedings" example:"5"`
	Foods    int64  `json:"foods" example:"3"`
}

// ServicePort is consumed by handlers
type ServicePort interface {
	Foods(ctx context.Context, babyID, userID string, in FoodsInput) ([]FoodStat, error)
	Heatmap(ctx context.Context, babyID, userID string, in HeatmapInput) ([]HeatCell, error)
}
