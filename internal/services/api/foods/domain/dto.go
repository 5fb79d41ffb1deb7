// Package domain holds the food library types
package domain

import (
	"context"
	"strings"
	"time"
)

// Category groups foods; a food may belong to several
type Category string

// Known categories
const (
	Fruit   Category = "fruit"
	Veggie  Category = "veggie"
	Grain   Category = "grain"
	Protein Category = "protein"
	Dairy   Category = "dairy"
	Snack   Category = "snack"
	Other   Category = "other"
)

// Categories lists every known category in display order
var Categories = []Category{Fruit, Veggie, Grain, Protein, Dairy, Snack, Other}

// ParseCategory reports whether s names a known category, ignoring case
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, k := range Categories {
		if c == k {
			return c, true
		}
	}
	return "", false
}

// NormalizeCategories lower-cases and de-duplicates in first-seen order
// unknown names become other; an empty result is [other]
func NormalizeCategories(in []string) []string {
	seen := make(map[Category]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if strings.TrimSpace(s) == "" {
			continue
		}
		c, ok := ParseCategory(s)
		if !ok {
			c = Other
		}
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, string(c))
	}
	if len(out) == 0 {
		return []string{string(Other)}
	}
	return out
}

// Food is a library entry with how recently it was fed
type Food struct {
	ID               string     `json:"id"`
	BabyID           string     `json:"baby_id"`
	Name             string     `json:"name" example:"Sweet potato"`
	Categories       []string   `json:"categories" example:"veggie"`
	StatsDismissed   bool       `json:"stats_dismissed"`
	CreatedBy        *string    `json:"created_by,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	LastFedAt        *time.Time `json:"last_fed_at,omitempty"`
	DaysSinceLastFed *int       `json:"days_since_last_fed" example:"3"`
}

// CreateInput adds a food to a baby's library
type CreateInput struct {
	Name       string   `json:"name" validate:"required,min=1,max=100" example:"Sweet potato"`
	Categories []string `json:"categories,omitempty" validate:"omitempty,max=7,dive,max=32" example:"veggie"`
}

// ListInput filters the library
type ListInput struct {
	Category string `query:"category" validate:"omitempty,food_category" example:"fruit"`
}

// DismissInput hides or restores a food in statistics
type DismissInput struct {
	Dismissed bool `json:"dismissed" example:"true"`
}

// Belongs answers whether a food is in a baby's library
type Belongs interface {
	Belongs(ctx context.Context, babyID, foodID string) (bool, error)
}

// ServicePort is consumed by handlers
type ServicePort interface {
	Belongs

	Create(ctx context.Context, babyID, userID string, in CreateInput) (Food, error)
	List(ctx context.Context, babyID, userID string, in ListInput) ([]Food, error)
	Delete(ctx context.Context, babyID, userID, foodID string) error
	SetDismissed(ctx context.Context, babyID, userID, foodID string, dismissed bool) error
}
