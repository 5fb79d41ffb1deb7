// Package repo provides postgres access for invitations
package repo

import (
	"context"
	"time"

	"babyfood/internal/modkit/repokit"
	perr "babyfood/internal/platform/errors"
	"babyfood/internal/platform/store"
	"babyfood/internal/services/api/invites/domain"
)

// Repo is the persistence surface for invitations
type Repo interface {
	Insert(ctx context.Context, inv domain.Invitation) (domain.Invitation, error)
	HasPending(ctx context.Context, babyID, email string) (bool, error)
	ListPending(ctx context.Context, babyID string) ([]domain.Invitation, error)
	Revoke(ctx context.Context, babyID, id string) error

	// ByToken locks the row when forUpdate is set
	ByToken(ctx context.Context, token string, forUpdate bool) (domain.Invitation, error)
	SetStatus(ctx context.Context, id string, from, to domain.Status) error
	AddMember(ctx context.Context, babyID, userID string) error

	ExpireStale(ctx context.Context, now time.Time) (int64, error)
}

type (
	// PG binds Repo to a Queryer
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

var _ Repo = (*queries)(nil)

// NewPG returns the postgres binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind implements repokit.Binder
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

const invCols = `i.id::text, i.baby_id::text, b.name, i.email, i.invited_by::text, i.token::text, i.status, i.expires_at, i.created_at`

func scanInvitation(r store.Row) (domain.Invitation, error) {
	var inv domain.Invitation
	var status string
	err := r.Scan(&inv.ID, &inv.BabyID, &inv.BabyName, &inv.Email, &inv.InvitedBy, &inv.Token, &status, &inv.ExpiresAt, &inv.CreatedAt)
	inv.Status = domain.Status(status)
	return inv, err
}

func (r *queries) Insert(ctx context.Context, inv domain.Invitation) (domain.Invitation, error) {
	const sql = `
with i as (
  insert into baby_invitations (baby_id, email, invited_by, token, status, expires_at)
  values ($1, $2, $3, $4, 'pending', $5)
  returning *
)
select ` + invCols + `
from i join babies b on b.id = i.baby_id
`
	out, err := store.One(ctx, r.q, scanInvitation, sql, inv.BabyID, inv.Email, inv.InvitedBy, inv.Token, inv.ExpiresAt)
	if perr.IsDuplicateKey(err) {
		return domain.Invitation{}, perr.WithField(perr.Conflictf("a pending invitation already exists for this email"), "email")
	}
	if err != nil {
		return domain.Invitation{}, perr.FromPostgres(err, "create invitation")
	}
	return out, nil
}

func (r *queries) HasPending(ctx context.Context, babyID, email string) (bool, error) {
	const sql = `
select exists(
  select 1 from baby_invitations
  where baby_id = $1 and lower(email) = lower($2) and status = 'pending'
)`
	ok, err := store.Scalar[bool](ctx, r.q, sql, babyID, email)
	return ok, perr.FromPostgres(err, "check pending invitation")
}

func (r *queries) ListPending(ctx context.Context, babyID string) ([]domain.Invitation, error) {
	const sql = `
select ` + invCols + `
from baby_invitations i join babies b on b.id = i.baby_id
where i.baby_id = $1 and i.status = 'pending'
order by i.created_at desc
`
	out, err := store.Many(ctx, r.q, scanInvitation, sql, babyID)
	return out, perr.FromPostgres(err, "list invitations")
}

func (r *queries) Revoke(ctx context.Context, babyID, id string) error {
	const sql = `
update baby_invitations set status = 'revoked'
where id = $1 and baby_id = $2 and status = 'pending'
`
	return perr.FromPostgres(store.ExecOne(ctx, r.q, sql, id, babyID), "invitation not found")
}

func (r *queries) ByToken(ctx context.Context, token string, forUpdate bool) (domain.Invitation, error) {
	sql := `
select ` + invCols + `
from baby_invitations i join babies b on b.id = i.baby_id
where i.token = $1::uuid
`
	if forUpdate {
		sql += ` for update of i`
	}
	inv, err := store.One(ctx, r.q, scanInvitation, sql, token)
	if err != nil {
		return domain.Invitation{}, perr.FromPostgres(err, "invitation not found")
	}
	return inv, nil
}

func (r *queries) SetStatus(ctx context.Context, id string, from, to domain.Status) error {
	b := repokit.SQL.Update("baby_invitations").
		Set("status", string(to)).
		Where(repokit.Eq{"id": id, "status": string(from)})
	return perr.FromPostgres(repokit.ExecOne(ctx, r.q, b), "invitation not found")
}

func (r *queries) AddMember(ctx context.Context, babyID, userID string) error {
	const sql = `
insert into baby_members (baby_id, user_id, role)
values ($1, $2, 'member')
on conflict (baby_id, user_id) do nothing
`
	_, err := r.q.Exec(ctx, sql, babyID, userID)
	return perr.FromPostgres(err, "add member")
}

func (r *queries) ExpireStale(ctx context.Context, now time.Time) (int64, error) {
	const sql = `
update baby_invitations set status = 'expired'
where status = 'pending' and expires_at <= $1
`
	tag, err := r.q.Exec(ctx, sql, now)
	if err != nil {
		return 0, perr.FromPostgres(err, "expire invitations")
	}
	return tag.RowsAffected(), nil
}
