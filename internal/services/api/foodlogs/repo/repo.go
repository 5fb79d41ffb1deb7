// Package repo provides postgres access for feeding logs
package repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"babyfood/internal/modkit/repokit"
	perr "babyfood/internal/platform/errors"
	"babyfood/internal/platform/store"
	"babyfood/internal/services/api/foodlogs/domain"
)

// Repo is the persistence surface for feeding logs
type Repo interface {
	Insert(ctx context.Context, babyID, userID string, in domain.CreateInput) (string, error)
	Get(ctx context.Context, babyID, logID string) (domain.Log, error)
	Update(ctx context.Context, babyID, logID string, in domain.UpdateInput) error
	Delete(ctx context.Context, babyID, logID string) error
	Range(ctx context.Context, babyID string, f domain.Filter) ([]domain.Log, error)
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

func selectLogs() squirrel.SelectBuilder {
	return repokit.SQL.
		Select(
			"l.id::text", "l.baby_id::text", "l.food_item_id::text", "f.name", "f.category",
			"l.fed_at", "l.logged_by::text", "l.notes", "l.reaction",
		).
		From("food_logs l").
		Join("food_items f on f.id = l.food_item_id")
}

func scanLog(row store.Row) (domain.Log, error) {
	var l domain.Log
	var reaction *string
	err := row.Scan(&l.ID, &l.BabyID, &l.FoodItemID, &l.FoodName, &l.Categories, &l.FedAt, &l.LoggedBy, &l.Notes, &reaction)
	if reaction != nil {
		r := domain.Reaction(*reaction)
		l.Reaction = &r
	}
	return l, err
}

func (r *queries) Insert(ctx context.Context, babyID, userID string, in domain.CreateInput) (string, error) {
	const sql = `
insert into food_logs (baby_id, food_item_id, fed_at, logged_by, notes, reaction)
values ($1, $2, $3, $4, $5, $6)
returning id::text
`
	id, err := store.Scalar[string](ctx, r.q, sql, babyID, in.FoodItemID, in.FedAt, userID, in.Notes, in.Reaction)
	if err != nil {
		return "", perr.FromPostgres(err, "create log")
	}
	return id, nil
}

func (r *queries) Get(ctx context.Context, babyID, logID string) (domain.Log, error) {
	b := selectLogs().Where(repokit.Eq{"l.baby_id": babyID, "l.id": logID})
	l, err := repokit.One(ctx, r.q, b, scanLog)
	if err != nil {
		return domain.Log{}, perr.FromPostgres(err, "log not found")
	}
	return l, nil
}

func (r *queries) Update(ctx context.Context, babyID, logID string, in domain.UpdateInput) error {
	b := repokit.SQL.Update("food_logs").Where(repokit.Eq{"baby_id": babyID, "id": logID})
	if in.FedAt != nil {
		b = b.Set("fed_at", *in.FedAt)
	}
	if in.Notes != nil {
		var notes any
		if *in.Notes != "" {
			notes = *in.Notes
		}
		b = b.Set("notes", notes)
	}
	switch {
	case in.ClearReaction:
		b = b.Set("reaction", nil)
	case in.Reaction != nil:
		b = b.Set("reaction", *in.Reaction)
	}
	return perr.FromPostgres(repokit.ExecOne(ctx, r.q, b), "log not found")
}

func (r *queries) Delete(ctx context.Context, babyID, logID string) error {
	err := store.ExecOne(ctx, r.q, `delete from food_logs where id = $1 and baby_id = $2`, logID, babyID)
	return perr.FromPostgres(err, "log not found")
}

func (r *queries) Range(ctx context.Context, babyID string, f domain.Filter) ([]domain.Log, error) {
	out, err := repokit.Many(ctx, r.q, rangeQuery(babyID, f), scanLog)
	return out, perr.FromPostgres(err, "list logs")
}

func rangeQuery(babyID string, f domain.Filter) squirrel.SelectBuilder {
	b := selectLogs().
		Where(repokit.Eq{"l.baby_id": babyID}).
		Where(squirrel.GtOrEq{"l.fed_at": f.Start}).
		Where(squirrel.LtOrEq{"l.fed_at": f.End}).
		OrderBy("l.fed_at", "l.id")
	if f.FoodID != "" {
		b = b.Where(repokit.Eq{"l.food_item_id": f.FoodID})
	}
	if len(f.Reactions) > 0 {
		b = b.Where(reactionIn(f.Reactions))
	}
	return b
}

// reactionIn matches any of rs, where NoReaction matches a null reaction
func reactionIn(rs []domain.Reaction) squirrel.Sqlizer {
	var named []string
	or := squirrel.Or{}
	for _, r := range rs {
		if r == domain.NoReaction {
			or = append(or, squirrel.Eq{"l.reaction": nil})
			continue
		}
		named = append(named, string(r))
	}
	if len(named) > 0 {
		or = append(or, squirrel.Eq{"l.reaction": named})
	}
	return or
}
