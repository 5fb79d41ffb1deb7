// Package service implements the food library
package service

import (
	"context"
	"time"

	"babyfood/internal/core/normalize"
	"babyfood/internal/modkit/repokit"
	perr "babyfood/internal/platform/errors"
	ptime "babyfood/internal/platform/time"
	babies "babyfood/internal/services/api/babies/domain"
	"babyfood/internal/services/api/foods/domain"
	"babyfood/internal/services/api/foods/repo"
)

// Service is the foods service contract
type Service interface {
	domain.ServicePort
}

// Svc implements Service
type Svc struct {
	Repo   repo.Repo
	access babies.Access
	now    func() time.Time
}

// New constructs the service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], access babies.Access, now func() time.Time) *Svc {
	if db == nil {
		panic("foods.Service requires a non nil TxRunner")
	}
	if now == nil {
		now = time.Now
	}
	return &Svc{Repo: binder.Bind(db), access: access, now: now}
}

var _ Service = (*Svc)(nil)

// Create adds a food; names collide within a baby when their normalize.Key matches
func (s *Svc) Create(ctx context.Context, babyID, userID string, in domain.CreateInput) (domain.Food, error) {
	if _, err := s.access.Require(ctx, babyID, userID, babies.RoleMember); err != nil {
		return domain.Food{}, err
	}
	name := normalize.Name(in.Name)
	if name == "" {
		return domain.Food{}, perr.WithField(perr.Validationf("name is required"), "name")
	}
	names, err := s.Repo.Names(ctx, babyID)
	if err != nil {
		return domain.Food{}, err
	}
	key := normalize.Key(name)
	for _, n := range names {
		if normalize.Key(n) == key {
			return domain.Food{}, perr.WithField(perr.Conflictf("a food with this name already exists"), "name")
		}
	}
	return s.Repo.Insert(ctx, babyID, userID, name, domain.NormalizeCategories(in.Categories))
}

// List returns the library by name with days since each food was last fed
func (s *Svc) List(ctx context.Context, babyID, userID string, in domain.ListInput) ([]domain.Food, error) {
	if _, err := s.access.Require(ctx, babyID, userID, babies.RoleMember); err != nil {
		return nil, err
	}
	var category string
	if in.Category != "" {
		c, ok := domain.ParseCategory(in.Category)
		if !ok {
			return nil, perr.WithField(perr.InvalidArgf("unknown category %q", in.Category), "category")
		}
		category = string(c)
	}
	out, err := s.Repo.List(ctx, babyID, category)
	if err != nil {
		return nil, err
	}
	now := s.now()
	for i := range out {
		out[i].DaysSinceLastFed = ptime.DaysSince(out[i].LastFedAt, now)
	}
	return out, nil
}

// Delete removes a food and, by cascade, its logs
func (s *Svc) Delete(ctx context.Context, babyID, userID, foodID string) error {
	if _, err := s.access.Require(ctx, babyID, userID, babies.RoleMember); err != nil {
		return err
	}
	return s.Repo.Delete(ctx, babyID, foodID)
}

// SetDismissed hides or restores a food in statistics
func (s *Svc) SetDismissed(ctx context.Context, babyID, userID, foodID string, dismissed bool) error {
	if _, err := s.access.Require(ctx, babyID, userID, babies.RoleMember); err != nil {
		return err
	}
	return s.Repo.SetDismissed(ctx, babyID, foodID, dismissed)
}

// Belongs reports whether foodID is in babyID's library
func (s *Svc) Belongs(ctx context.Context, babyID, foodID string) (bool, error) {
	return s.Repo.Exists(ctx, babyID, foodID)
}
