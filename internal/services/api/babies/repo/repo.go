// Package repo provides postgres access for babies and their members
package repo

import (
	"context"

	"babyfood/internal/modkit/repokit"
	perr "babyfood/internal/platform/errors"
	"babyfood/internal/platform/store"
	"babyfood/internal/services/api/babies/domain"
)

// Repo is the persistence surface for babies
type Repo interface {
	Insert(ctx context.Context, userID string, in domain.CreateInput) (domain.Baby, error)
	AddMember(ctx context.Context, babyID, userID string, role domain.Role) error
	ListForUser(ctx context.Context, userID string) ([]domain.Baby, error)
	Get(ctx context.Context, babyID, userID string) (domain.Baby, error)
	Update(ctx context.Context, babyID string, in domain.UpdateInput) error
	Delete(ctx context.Context, babyID string) error

	RoleOf(ctx context.Context, babyID, userID string) (domain.Role, bool, error)
	Members(ctx context.Context, babyID string) ([]domain.Member, error)
	RemoveMember(ctx context.Context, babyID, userID string) error
	ZoneName(ctx context.Context, babyID string) (string, error)
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

const babyCols = `b.id::text, b.name, b.date_of_birth::text, coalesce(b.time_zone, ''), b.created_by::text, b.created_at`

func scanBaby(r store.Row) (domain.Baby, error) {
	var b domain.Baby
	var role string
	err := r.Scan(&b.ID, &b.Name, &b.DateOfBirth, &b.TimeZone, &b.CreatedBy, &b.CreatedAt, &role)
	b.Role = domain.Role(role)
	return b, err
}

func (r *queries) Insert(ctx context.Context, userID string, in domain.CreateInput) (domain.Baby, error) {
	const sql = `
insert into babies (name, date_of_birth, time_zone, created_by)
values ($1, $2::date, nullif($3, ''), $4)
returning id::text, name, date_of_birth::text, coalesce(time_zone, ''), created_by::text, created_at, 'owner'
`
	b, err := store.One(ctx, r.q, scanBaby, sql, in.Name, in.DateOfBirth, in.TimeZone, userID)
	if err != nil {
		return domain.Baby{}, perr.FromPostgres(err, "create baby")
	}
	return b, nil
}

func (r *queries) AddMember(ctx context.Context, babyID, userID string, role domain.Role) error {
	const sql = `
insert into baby_members (baby_id, user_id, role)
values ($1, $2, $3)
on conflict (baby_id, user_id) do nothing
`
	if _, err := r.q.Exec(ctx, sql, babyID, userID, string(role)); err != nil {
		return perr.FromPostgres(err, "add member")
	}
	return nil
}

func (r *queries) ListForUser(ctx context.Context, userID string) ([]domain.Baby, error) {
	const sql = `
select ` + babyCols + `, m.role
from babies b
join baby_members m on m.baby_id = b.id
where m.user_id = $1
order by b.created_at desc
`
	out, err := store.Many(ctx, r.q, scanBaby, sql, userID)
	return out, perr.FromPostgres(err, "list babies")
}

func (r *queries) Get(ctx context.Context, babyID, userID string) (domain.Baby, error) {
	const sql = `
select ` + babyCols + `, m.role
from babies b
join baby_members m on m.baby_id = b.id and m.user_id = $2
where b.id = $1
`
	b, err := store.One(ctx, r.q, scanBaby, sql, babyID, userID)
	if err != nil {
		return domain.Baby{}, perr.FromPostgres(err, "baby not found")
	}
	return b, nil
}

func (r *queries) Update(ctx context.Context, babyID string, in domain.UpdateInput) error {
	b := repokit.SQL.Update("babies").Where(repokit.Eq{"id": babyID})
	if in.Name != nil {
		b = b.Set("name", *in.Name)
	}
	if in.TimeZone != nil {
		var tz any
		if *in.TimeZone != "" {
			tz = *in.TimeZone
		}
		b = b.Set("time_zone", tz)
	}
	return perr.FromPostgres(repokit.ExecOne(ctx, r.q, b), "baby not found")
}

func (r *queries) Delete(ctx context.Context, babyID string) error {
	err := store.ExecOne(ctx, r.q, `delete from babies where id = $1`, babyID)
	return perr.FromPostgres(err, "baby not found")
}

func (r *queries) RoleOf(ctx context.Context, babyID, userID string) (domain.Role, bool, error) {
	const sql = `select role from baby_members where baby_id = $1 and user_id = $2`
	role, err := store.One(ctx, r.q, func(row store.Row) (string, error) {
		var s string
		return s, row.Scan(&s)
	}, sql, babyID, userID)
	if perr.IsCode(err, perr.ErrorCodeNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, perr.FromPostgres(err, "member lookup")
	}
	return domain.Role(role), true, nil
}

func (r *queries) Members(ctx context.Context, babyID string) ([]domain.Member, error) {
	const sql = `
select m.user_id::text, m.role, p.full_name, p.avatar_url
from baby_members m
left join profiles p on p.id = m.user_id
where m.baby_id = $1
order by (m.role = 'owner') desc, p.full_name nulls last
`
	out, err := store.Many(ctx, r.q, func(row store.Row) (domain.Member, error) {
		var m domain.Member
		var role string
		err := row.Scan(&m.UserID, &role, &m.FullName, &m.AvatarURL)
		m.Role = domain.Role(role)
		return m, err
	}, sql, babyID)
	return out, perr.FromPostgres(err, "list members")
}

func (r *queries) RemoveMember(ctx context.Context, babyID, userID string) error {
	err := store.ExecOne(ctx, r.q, `delete from baby_members where baby_id = $1 and user_id = $2`, babyID, userID)
	return perr.FromPostgres(err, "member not found")
}

func (r *queries) ZoneName(ctx context.Context, babyID string) (string, error) {
	tz, err := store.Scalar[string](ctx, r.q, `select coalesce(time_zone, '') from babies where id = $1`, babyID)
	if err != nil {
		return "", perr.FromPostgres(err, "baby not found")
	}
	return tz, nil
}
