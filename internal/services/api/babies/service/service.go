// Package service implements baby profiles, membership and the access checks other modules rely on
package service

import (
	"context"
	"strings"
	"time"

	"babyfood/internal/modkit/repokit"
	perr "babyfood/internal/platform/errors"
	"babyfood/internal/services/api/babies/domain"
	"babyfood/internal/services/api/babies/repo"
)

// Service is the babies service contract
type Service interface {
	domain.ServicePort
}

// Svc implements Service
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
}

// New constructs the service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Svc {
	if db == nil {
		panic("babies.Service requires a non nil TxRunner")
	}
	return &Svc{
		Repo:   binder.Bind(db),
		binder: binder,
		db:     db,
	}
}

var _ Service = (*Svc)(nil)

// Require returns the caller's role when it covers min
func (s *Svc) Require(ctx context.Context, babyID, userID string, min domain.Role) (domain.Role, error) {
	if userID == "" {
		return "", perr.Unauthorizedf("authentication required")
	}
	role, ok, err := s.Repo.RoleOf(ctx, babyID, userID)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", perr.NotFoundf("baby not found")
	}
	if !role.Covers(min) {
		return role, perr.Forbiddenf("requires %s role", min)
	}
	return role, nil
}

// Zone loads the baby's zone; a baby without one yields nil
func (s *Svc) Zone(ctx context.Context, babyID string) (*time.Location, error) {
	name, err := s.Repo.ZoneName(ctx, babyID)
	if err != nil || name == "" {
		return nil, err
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "baby time zone %q", name)
	}
	return loc, nil
}

// Create inserts the baby and makes the caller its owner in one transaction
func (s *Svc) Create(ctx context.Context, userID string, in domain.CreateInput) (domain.Baby, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return domain.Baby{}, perr.WithField(perr.Validationf("name is required"), "name")
	}
	var out domain.Baby
	err := s.db.Tx(ctx, func(q repokit.Queryer) error {
		r := s.binder.Bind(q)
		b, err := r.Insert(ctx, userID, in)
		if err != nil {
			return err
		}
		if err := r.AddMember(ctx, b.ID, userID, domain.RoleOwner); err != nil {
			return err
		}
		out = b
		return nil
	})
	if err != nil {
		return domain.Baby{}, err
	}
	out.Role = domain.RoleOwner
	return out, nil
}

// List returns every baby the caller belongs to
func (s *Svc) List(ctx context.Context, userID string) ([]domain.Baby, error) {
	return s.Repo.ListForUser(ctx, userID)
}

// Get returns one baby with the caller's role
func (s *Svc) Get(ctx context.Context, babyID, userID string) (domain.Baby, error) {
	if _, err := s.Require(ctx, babyID, userID, domain.RoleMember); err != nil {
		return domain.Baby{}, err
	}
	return s.Repo.Get(ctx, babyID, userID)
}

// Update is owner-only
func (s *Svc) Update(ctx context.Context, babyID, userID string, in domain.UpdateInput) (domain.Baby, error) {
	if _, err := s.Require(ctx, babyID, userID, domain.RoleOwner); err != nil {
		return domain.Baby{}, err
	}
	if in.Name != nil {
		n := strings.TrimSpace(*in.Name)
		if n == "" {
			return domain.Baby{}, perr.WithField(perr.Validationf("name must not be blank"), "name")
		}
		in.Name = &n
	}
	if in.Name != nil || in.TimeZone != nil {
		if err := s.Repo.Update(ctx, babyID, in); err != nil {
			return domain.Baby{}, err
		}
	}
	return s.Repo.Get(ctx, babyID, userID)
}

// Delete is owner-only and cascades to members, foods and logs
func (s *Svc) Delete(ctx context.Context, babyID, userID string) error {
	if _, err := s.Require(ctx, babyID, userID, domain.RoleOwner); err != nil {
		return err
	}
	return s.Repo.Delete(ctx, babyID)
}

// Members lists caregivers, owner first
func (s *Svc) Members(ctx context.Context, babyID, userID string) ([]domain.Member, error) {
	if _, err := s.Require(ctx, babyID, userID, domain.RoleMember); err != nil {
		return nil, err
	}
	return s.Repo.Members(ctx, babyID)
}

// RemoveMember is owner-only; the owner cannot remove themselves
func (s *Svc) RemoveMember(ctx context.Context, babyID, userID, memberID string) error {
	if _, err := s.Require(ctx, babyID, userID, domain.RoleOwner); err != nil {
		return err
	}
	if memberID == userID {
		return perr.InvalidArgf("owner cannot remove themselves")
	}
	return s.Repo.RemoveMember(ctx, babyID, memberID)
}

// Leave drops the caller's own membership; owners must delete the baby instead
func (s *Svc) Leave(ctx context.Context, babyID, userID string) error {
	role, err := s.Require(ctx, babyID, userID, domain.RoleMember)
	if err != nil {
		return err
	}
	if role == domain.RoleOwner {
		return perr.InvalidArgf("owner cannot leave; delete the baby instead")
	}
	return s.Repo.RemoveMember(ctx, babyID, userID)
}
