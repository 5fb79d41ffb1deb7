package repokit

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"babyfood/internal/platform/store"
)

// SQL builds Postgres statements with $n placeholders
var SQL = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Sqlizer renders a statement and its args
type Sqlizer = squirrel.Sqlizer

// Eq is squirrel's equality map, e.g. Eq{"baby_id": id}
type Eq = squirrel.Eq

func render(b Sqlizer) (string, []any, error) {
	sql, args, err := b.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("build sql: %w", err)
	}
	return sql, args, nil
}

// ExecOne renders b and requires exactly one affected row
func ExecOne(ctx context.Context, q Queryer, b Sqlizer) error {
	sql, args, err := render(b)
	if err != nil {
		return err
	}
	return store.ExecOne(ctx, q, sql, args...)
}

// One renders b and maps its single row with scan
func One[T any](ctx context.Context, q Queryer, b Sqlizer, scan func(Row) (T, error)) (T, error) {
	sql, args, err := render(b)
	if err != nil {
		var zero T
		return zero, err
	}
	return store.One(ctx, q, scan, sql, args...)
}

// Many renders b and maps every row with scan
func Many[T any](ctx context.Context, q Queryer, b Sqlizer, scan func(Row) (T, error)) ([]T, error) {
	sql, args, err := render(b)
	if err != nil {
		return nil, err
	}
	return store.Many(ctx, q, scan, sql, args...)
}
