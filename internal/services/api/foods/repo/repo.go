// Package repo provides postgres access for the food library
package repo

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"

	"babyfood/internal/modkit/repokit"
	perr "babyfood/internal/platform/errors"
	"babyfood/internal/platform/store"
	"babyfood/internal/services/api/foods/domain"
)

// Repo is the persistence surface for foods
type Repo interface {
	Insert(ctx context.Context, babyID, userID, name string, categories []string) (domain.Food, error)
	List(ctx context.Context, babyID string, category string) ([]domain.Food, error)
	Exists(ctx context.Context, babyID, foodID string) (bool, error)
	Names(ctx context.Context, babyID string) ([]string, error)
	Delete(ctx context.Context, babyID, foodID string) error
	SetDismissed(ctx context.Context, babyID, foodID string, dismissed bool) error
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

func (r *queries) Insert(ctx context.Context, babyID, userID, name string, categories []string) (domain.Food, error) {
	const sql = `
insert into food_items (baby_id, name, category, created_by)
values ($1, $2, $3, $4)
returning id::text, baby_id::text, name, category, stats_dismissed, created_by::text, created_at
`
	f, err := store.One(ctx, r.q, func(row store.Row) (domain.Food, error) {
		var f domain.Food
		err := row.Scan(&f.ID, &f.BabyID, &f.Name, &f.Categories, &f.StatsDismissed, &f.CreatedBy, &f.CreatedAt)
		return f, err
	}, sql, babyID, name, categories, userID)
	if perr.IsDuplicateKey(err) {
		return domain.Food{}, perr.WithField(perr.Conflictf("a food with this name already exists"), "name")
	}
	if err != nil {
		return domain.Food{}, perr.FromPostgres(err, "create food")
	}
	return f, nil
}

func (r *queries) List(ctx context.Context, babyID string, category string) ([]domain.Food, error) {
	out, err := repokit.Many(ctx, r.q, listQuery(babyID, category), func(row store.Row) (domain.Food, error) {
		var f domain.Food
		var last *time.Time
		err := row.Scan(&f.ID, &f.BabyID, &f.Name, &f.Categories, &f.StatsDismissed, &f.CreatedBy, &f.CreatedAt, &last)
		f.LastFedAt = last
		return f, err
	})
	return out, perr.FromPostgres(err, "list foods")
}

func listQuery(babyID, category string) squirrel.SelectBuilder {
	b := repokit.SQL.
		Select(
			"f.id::text", "f.baby_id::text", "f.name", "f.category", "f.stats_dismissed",
			"f.created_by::text", "f.created_at", "max(l.fed_at)",
		).
		From("food_items f").
		LeftJoin("food_logs l on l.food_item_id = f.id").
		Where(repokit.Eq{"f.baby_id": babyID}).
		GroupBy("f.id").
		OrderBy("lower(f.name)")
	if category != "" {
		b = b.Where("? = any(f.category)", category)
	}
	return b
}

func (r *queries) Names(ctx context.Context, babyID string) ([]string, error) {
	out, err := store.Many(ctx, r.q, func(row store.Row) (string, error) {
		var n string
		return n, row.Scan(&n)
	}, `select name from food_items where baby_id = $1`, babyID)
	return out, perr.FromPostgres(err, "food names")
}

func (r *queries) Exists(ctx context.Context, babyID, foodID string) (bool, error) {
	ok, err := store.Scalar[bool](ctx, r.q,
		`select exists(select 1 from food_items where id = $1 and baby_id = $2)`, foodID, babyID)
	return ok, perr.FromPostgres(err, "food lookup")
}

func (r *queries) Delete(ctx context.Context, babyID, foodID string) error {
	err := store.ExecOne(ctx, r.q, `delete from food_items where id = $1 and baby_id = $2`, foodID, babyID)
	return perr.FromPostgres(err, "food not found")
}

func (r *queries) SetDismissed(ctx context.Context, babyID, foodID string, dismissed bool) error {
	b := repokit.SQL.Update("food_items").
		Set("stats_dismissed", dismissed).
		Where(repokit.Eq{"baby_id": babyID, "id": foodID})
	return perr.FromPostgres(repokit.ExecOne(ctx, r.q, b), "food not found")
}
