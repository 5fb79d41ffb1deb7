package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"babyfood/internal/modkit/repokit/repotest"
	perr "babyfood/internal/platform/errors"
	"babyfood/internal/services/api/babies/babiestest"
	babies "babyfood/internal/services/api/babies/domain"
	"babyfood/internal/services/api/invites/domain"
	"babyfood/internal/services/api/invites/repo"
)

type memRepo struct {
	rows    map[string]*domain.Invitation
	members map[string]bool
	seq     int
}

func newMem() *memRepo {
	return &memRepo{rows: map[string]*domain.Invitation{}, members: map[string]bool{}}
}

var _ repo.Repo = (*memRepo)(nil)

func (m *memRepo) Insert(_ context.Context, inv domain.Invitation) (domain.Invitation, error) {
	m.seq++
	inv.ID = fmt.Sprintf("inv-%d", m.seq)
	inv.BabyName = "Ada"
	inv.Status = domain.StatusPending
	m.rows[inv.ID] = &inv
	return inv, nil
}

func (m *memRepo) HasPending(_ context.Context, babyID, email string) (bool, error) {
	for _, r := range m.rows {
		if r.BabyID == babyID && strings.EqualFold(r.Email, email) && r.Status == domain.StatusPending {
			return true, nil
		}
	}
	return false, nil
}

func (m *memRepo) ListPending(_ context.Context, babyID string) ([]domain.Invitation, error) {
	out := []domain.Invitation{}
	for _, r := range m.rows {
		if r.BabyID == babyID && r.Status == domain.StatusPending {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *memRepo) Revoke(_ context.Context, babyID, id string) error {
	r, ok := m.rows[id]
	if !ok || r.BabyID != babyID || r.Status != domain.StatusPending {
		return perr.ErrNotFound
	}
	r.Status = domain.StatusRevoked
	return nil
}

func (m *memRepo) ByToken(_ context.Context, token string, _ bool) (domain.Invitation, error) {
	for _, r := range m.rows {
		if r.Token == token {
			return *r, nil
		}
	}
	return domain.Invitation{}, perr.ErrNotFound
}

func (m *memRepo) SetStatus(_ context.Context, id string, from, to domain.Status) error {
	r, ok := m.rows[id]
	if !ok || r.Status != from {
		return perr.ErrNotFound
	}
	r.Status = to
	return nil
}

func (m *memRepo) AddMember(_ context.Context, babyID, userID string) error {
	m.members[babyID+"/"+userID] = true
	return nil
}

func (m *memRepo) ExpireStale(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for _, r := range m.rows {
		if r.Lapsed(now) {
			r.Status = domain.StatusExpired
			n++
		}
	}
	return n, nil
}

const (
	baby    = "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa"
	owner   = "11111111-1111-1111-1111-111111111111"
	member  = "22222222-2222-2222-2222-222222222222"
	invitee = "33333333-3333-3333-3333-333333333333"
)

type fixture struct {
	svc *Svc
	mem *memRepo
	tx  *repotest.Tx
	now time.Time
}

func setup(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{mem: newMem(), tx: &repotest.Tx{}, now: time.Date(2024, 3, 6, 12, 0, 0, 0, time.UTC)}
	tokens := 0
	f.svc = New(f.tx, repotest.Binder[repo.Repo](f.mem), babiestest.Access{owner: babies.RoleOwner, member: babies.RoleMember}, Options{
		PublicURL: "https://babyfood.example/",
		Now:       func() time.Time { return f.now },
		NewToken: func() string {
			tokens++
			return fmt.Sprintf("tok-%d", tokens)
		},
	})
	return f
}

func TestCreate(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	inv, err := f.svc.Create(ctx, baby, owner, domain.CreateInput{Email: "  Grandma@Example.com "})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if inv.Email != "grandma@example.com" || inv.Status != domain.StatusPending {
		t.Fatalf("inv = %+v", inv)
	}
	if want := f.now.Add(DefaultTTL); !inv.ExpiresAt.Equal(want) {
		t.Fatalf("expires = %v, want %v", inv.ExpiresAt, want)
	}
	if inv.AcceptURL != "https://babyfood.example/invite/accept?token=tok-1" {
		t.Fatalf("accept url = %q", inv.AcceptURL)
	}

	_, err = f.svc.Create(ctx, baby, owner, domain.CreateInput{Email: "GRANDMA@example.com"})
	if !perr.IsCode(err, perr.ErrorCodeConflict) {
		t.Fatalf("duplicate err = %v", err)
	}
	_, err = f.svc.Create(ctx, baby, member, domain.CreateInput{Email: "x@example.com"})
	if !perr.IsCode(err, perr.ErrorCodeForbidden) {
		t.Fatalf("member create err = %v", err)
	}
}

func TestRevokeThenLookup(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	inv, _ := f.svc.Create(ctx, baby, owner, domain.CreateInput{Email: "a@example.com"})

	if err := f.svc.Revoke(ctx, baby, owner, inv.ID); err != nil {
		t.Fatalf("Revoke: %v", err)
	}
	if err := f.svc.Revoke(ctx, baby, owner, inv.ID); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("second revoke err = %v", err)
	}
	p, err := f.svc.Lookup(ctx, inv.Token)
	if err != nil || p.Status != domain.StatusRevoked || p.BabyName != "Ada" {
		t.Fatalf("Lookup = %+v, %v", p, err)
	}
	if _, err := f.svc.Accept(ctx, inv.Token, invitee); !perr.IsCode(err, perr.ErrorCodeGone) {
		t.Fatalf("accept revoked err = %v", err)
	}
	if f.mem.members[baby+"/"+invitee] {
		t.Fatalf("revoked invitation added a member")
	}
}

func TestLookup_ExpiresLapsed(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	inv, _ := f.svc.Create(ctx, baby, owner, domain.CreateInput{Email: "a@example.com"})

	f.now = f.now.Add(DefaultTTL)
	if _, err := f.svc.Lookup(ctx, inv.Token); !perr.IsCode(err, perr.ErrorCodeGone) {
		t.Fatalf("Lookup err = %v", err)
	}
	if got := f.mem.rows[inv.ID].Status; got != domain.StatusExpired {
		t.Fatalf("status = %s", got)
	}
}

func TestAccept(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	inv, _ := f.svc.Create(ctx, baby, owner, domain.CreateInput{Email: "a@example.com"})

	if _, err := f.svc.Accept(ctx, inv.Token, ""); !perr.IsCode(err, perr.ErrorCodeUnauthorized) {
		t.Fatalf("anonymous accept err = %v", err)
	}
	got, err := f.svc.Accept(ctx, inv.Token, invitee)
	if err != nil || got.BabyID != baby {
		t.Fatalf("Accept = %+v, %v", got, err)
	}
	if !f.mem.members[baby+"/"+invitee] || f.mem.rows[inv.ID].Status != domain.StatusAccepted {
		t.Fatalf("accept did not apply: %+v", f.mem.rows[inv.ID])
	}
	if _, err := f.svc.Accept(ctx, inv.Token, invitee); !perr.IsCode(err, perr.ErrorCodeGone) {
		t.Fatalf("reuse err = %v", err)
	}
	if _, err := f.svc.Accept(ctx, "nope", invitee); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("unknown token err = %v", err)
	}
}

func TestAccept_LapsedCommitsExpiry(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	inv, _ := f.svc.Create(ctx, baby, owner, domain.CreateInput{Email: "a@example.com"})

	f.now = f.now.Add(DefaultTTL + time.Minute)
	if _, err := f.svc.Accept(ctx, inv.Token, invitee); !perr.IsCode(err, perr.ErrorCodeGone) {
		t.Fatalf("Accept err = %v", err)
	}
	if f.tx.Commits != 1 {
		t.Fatalf("expiry not committed: commits = %d", f.tx.Commits)
	}
	if f.mem.rows[inv.ID].Status != domain.StatusExpired || f.mem.members[baby+"/"+invitee] {
		t.Fatalf("state = %+v", f.mem.rows[inv.ID])
	}
}

func TestExpireStale(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	_, _ = f.svc.Create(ctx, baby, owner, domain.CreateInput{Email: "a@example.com"})
	f.now = f.now.Add(time.Hour)
	_, _ = f.svc.Create(ctx, baby, owner, domain.CreateInput{Email: "b@example.com"})

	f.now = f.now.Add(DefaultTTL - 30*time.Minute)
	n, err := f.svc.ExpireStale(ctx)
	if err != nil || n != 1 {
		t.Fatalf("ExpireStale = %d, %v", n, err)
	}
	if list, _ := f.svc.List(ctx, baby, owner); len(list) != 1 || list[0].Email != "b@example.com" {
		t.Fatalf("pending = %+v", list)
	}
}
