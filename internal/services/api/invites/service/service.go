// Package service implements the invitation lifecycle
package service

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"babyfood/internal/modkit/repokit"
	perr "babyfood/internal/platform/errors"
	babies "babyfood/internal/services/api/babies/domain"
	"babyfood/internal/services/api/invites/domain"
	"babyfood/internal/services/api/invites/repo"
)

// DefaultTTL is how long an invitation stays acceptable
const DefaultTTL = 7 * 24 * time.Hour

// Service is the invites service contract
type Service interface {
	domain.ServicePort
	domain.Sweeper
}

// Options tunes the service
type Options struct {
	// PublicURL is the web app origin accept links point at
	PublicURL string
	TTL       time.Duration
	Now       func() time.Time
	NewToken  func() string
}

// Svc implements Service
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
	access babies.Access
	opt    Options
}

// New constructs the service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], access babies.Access, opt Options) *Svc {
	if db == nil {
		panic("invites.Service requires a non nil TxRunner")
	}
	if opt.TTL <= 0 {
		opt.TTL = DefaultTTL
	}
	if opt.Now == nil {
		opt.Now = time.Now
	}
	if opt.NewToken == nil {
		opt.NewToken = uuid.NewString
	}
	opt.PublicURL = strings.TrimRight(opt.PublicURL, "/")
	return &Svc{
		Repo:   binder.Bind(db),
		binder: binder,
		db:     db,
		access: access,
		opt:    opt,
	}
}

var _ Service = (*Svc)(nil)

func (s *Svc) acceptURL(token string) string {
	return s.opt.PublicURL + "/invite/accept?token=" + url.QueryEscape(token)
}

// Create issues a pending invitation; one pending invitation per email per baby
func (s *Svc) Create(ctx context.Context, babyID, userID string, in domain.CreateInput) (domain.Invitation, error) {
	if _, err := s.access.Require(ctx, babyID, userID, babies.RoleOwner); err != nil {
		return domain.Invitation{}, err
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	pending, err := s.Repo.HasPending(ctx, babyID, email)
	if err != nil {
		return domain.Invitation{}, err
	}
	if pending {
		return domain.Invitation{}, perr.WithField(perr.Conflictf("a pending invitation already exists for this email"), "email")
	}
	inv, err := s.Repo.Insert(ctx, domain.Invitation{
		BabyID:    babyID,
		Email:     email,
		InvitedBy: &userID,
		Token:     s.opt.NewToken(),
		ExpiresAt: s.opt.Now().Add(s.opt.TTL).UTC(),
	})
	if err != nil {
		return domain.Invitation{}, err
	}
	inv.AcceptURL = s.acceptURL(inv.Token)
	return inv, nil
}

// List returns pending invitations, owner-only
func (s *Svc) List(ctx context.Context, babyID, userID string) ([]domain.Invitation, error) {
	if _, err := s.access.Require(ctx, babyID, userID, babies.RoleOwner); err != nil {
		return nil, err
	}
	out, err := s.Repo.ListPending(ctx, babyID)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].AcceptURL = s.acceptURL(out[i].Token)
	}
	return out, nil
}

// Revoke withdraws a pending invitation
func (s *Svc) Revoke(ctx context.Context, babyID, userID, invitationID string) error {
	if _, err := s.access.Require(ctx, babyID, userID, babies.RoleOwner); err != nil {
		return err
	}
	return s.Repo.Revoke(ctx, babyID, invitationID)
}

// Lookup shows an invitation to anyone holding its token
// a lapsed invitation is marked expired and answers Gone
func (s *Svc) Lookup(ctx context.Context, token string) (domain.Preview, error) {
	inv, err := s.Repo.ByToken(ctx, token, false)
	if err != nil {
		return domain.Preview{}, err
	}
	if inv.Lapsed(s.opt.Now()) {
		if err := s.Repo.SetStatus(ctx, inv.ID, domain.StatusPending, domain.StatusExpired); err != nil && !perr.IsCode(err, perr.ErrorCodeNotFound) {
			return domain.Preview{}, err
		}
		return domain.Preview{}, perr.Gonef("invitation expired")
	}
	return domain.Preview{
		BabyName:  inv.BabyName,
		Email:     inv.Email,
		Status:    inv.Status,
		ExpiresAt: inv.ExpiresAt,
	}, nil
}

// Accept joins the caller to the baby and consumes the invitation in one transaction
func (s *Svc) Accept(ctx context.Context, token, userID string) (domain.Accepted, error) {
	if userID == "" {
		return domain.Accepted{}, perr.Unauthorizedf("authentication required")
	}
	var (
		out    domain.Accepted
		lapsed bool
	)
	err := s.db.Tx(ctx, func(q repokit.Queryer) error {
		r := s.binder.Bind(q)
		inv, err := r.ByToken(ctx, token, true)
		if err != nil {
			return err
		}
		now := s.opt.Now()
		if inv.Lapsed(now) {
			// commit the expiry, then report Gone
			lapsed = true
			return r.SetStatus(ctx, inv.ID, domain.StatusPending, domain.StatusExpired)
		}
		if !inv.Open(now) {
			return perr.Gonef("invitation is %s", inv.Status)
		}
		if err := r.AddMember(ctx, inv.BabyID, userID); err != nil {
			return err
		}
		if err := r.SetStatus(ctx, inv.ID, domain.StatusPending, domain.StatusAccepted); err != nil {
			return err
		}
		out.BabyID = inv.BabyID
		return nil
	})
	if err != nil {
		return domain.Accepted{}, err
	}
	if lapsed {
		return domain.Accepted{}, perr.Gonef("invitation expired")
	}
	return out, nil
}

// ExpireStale marks every lapsed pending invitation expired
func (s *Svc) ExpireStale(ctx context.Context) (int64, error) {
	return s.Repo.ExpireStale(ctx, s.opt.Now())
}
