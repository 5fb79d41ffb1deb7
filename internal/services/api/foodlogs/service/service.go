// Package service implements feeding logs
package service

import (
	"context"
	"time"

	"babyfood/internal/core/normalize"
	"babyfood/internal/modkit/repokit"
	perr "babyfood/internal/platform/errors"
	babies "babyfood/internal/services/api/babies/domain"
	"babyfood/internal/services/api/foodlogs/domain"
	"babyfood/internal/services/api/foodlogs/repo"
	foods "babyfood/internal/services/api/foods/domain"
)

// MaxRange bounds a single range read
const MaxRange = 366 * 24 * time.Hour

// Service is the food logs service contract
type Service interface {
	domain.ServicePort
}

// Svc implements Service
type Svc struct {
	Repo   repo.Repo
	access babies.Access
	foods  foods.Belongs
}

// New constructs the service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], access babies.Access, belongs foods.Belongs) *Svc {
	if db == nil {
		panic("foodlogs.Service requires a non nil TxRunner")
	}
	return &Svc{Repo: binder.Bind(db), access: access, foods: belongs}
}

var _ Service = (*Svc)(nil)

func cleanNotes(p *string) *string {
	if p == nil {
		return nil
	}
	n := normalize.Notes(*p)
	return &n
}

// Create records a feeding of a food from the baby's own library
func (s *Svc) Create(ctx context.Context, babyID, userID string, in domain.CreateInput) (domain.Log, error) {
	if _, err := s.access.Require(ctx, babyID, userID, babies.RoleMember); err != nil {
		return domain.Log{}, err
	}
	ok, err := s.foods.Belongs(ctx, babyID, in.FoodItemID)
	if err != nil {
		return domain.Log{}, err
	}
	if !ok {
		return domain.Log{}, perr.WithField(perr.InvalidArgf("food is not in this baby's library"), "food_item_id")
	}
	in.Notes = cleanNotes(in.Notes)
	if in.Notes != nil && *in.Notes == "" {
		in.Notes = nil
	}
	id, err := s.Repo.Insert(ctx, babyID, userID, in)
	if err != nil {
		return domain.Log{}, err
	}
	return s.Repo.Get(ctx, babyID, id)
}

// Update edits a feeding; an empty notes string clears the notes
func (s *Svc) Update(ctx context.Context, babyID, userID, logID string, in domain.UpdateInput) (domain.Log, error) {
	if _, err := s.access.Require(ctx, babyID, userID, babies.RoleMember); err != nil {
		return domain.Log{}, err
	}
	if in.ClearReaction && in.Reaction != nil {
		return domain.Log{}, perr.WithField(perr.InvalidArgf("reaction and clear_reaction are exclusive"), "clear_reaction")
	}
	if in.FedAt != nil && in.FedAt.IsZero() {
		return domain.Log{}, perr.WithField(perr.InvalidArgf("fed_at must be set"), "fed_at")
	}
	in.Notes = cleanNotes(in.Notes)
	if in.FedAt == nil && in.Notes == nil && in.Reaction == nil && !in.ClearReaction {
		return s.Repo.Get(ctx, babyID, logID)
	}
	if err := s.Repo.Update(ctx, babyID, logID, in); err != nil {
		return domain.Log{}, err
	}
	return s.Repo.Get(ctx, babyID, logID)
}

// Delete removes a feeding
func (s *Svc) Delete(ctx context.Context, babyID, userID, logID string) error {
	if _, err := s.access.Require(ctx, babyID, userID, babies.RoleMember); err != nil {
		return err
	}
	return s.Repo.Delete(ctx, babyID, logID)
}

// List returns feedings in the inclusive range, oldest first
func (s *Svc) List(ctx context.Context, babyID, userID string, f domain.Filter) ([]domain.Log, error) {
	if _, err := s.access.Require(ctx, babyID, userID, babies.RoleMember); err != nil {
		return nil, err
	}
	if err := checkRange(f.Start, f.End); err != nil {
		return nil, err
	}
	return s.Repo.Range(ctx, babyID, f)
}

// Range reads every feeding in the inclusive range without an access check
func (s *Svc) Range(ctx context.Context, babyID string, start, end time.Time) ([]domain.Log, error) {
	if err := checkRange(start, end); err != nil {
		return nil, err
	}
	return s.Repo.Range(ctx, babyID, domain.Filter{Start: start, End: end})
}

func checkRange(start, end time.Time) error {
	switch {
	case start.IsZero():
		return perr.WithField(perr.InvalidArgf("start is required"), "start")
	case end.IsZero():
		return perr.WithField(perr.InvalidArgf("end is required"), "end")
	case end.Before(start):
		return perr.WithField(perr.InvalidArgf("end must not be before start"), "end")
	case end.Sub(start) > MaxRange:
		return perr.WithField(perr.InvalidArgf("range must not exceed 366 days"), "end")
	}
	return nil
}
