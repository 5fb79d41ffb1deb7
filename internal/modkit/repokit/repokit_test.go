package repokit

import (
	"context"
	"errors"
	"strings"
	"testing"

	"babyfood/internal/platform/store"
	kit "babyfood/internal/platform/testkit"
)

type fakeRow struct{ err error }

func (r fakeRow) Scan(dest ...any) error {
	if s, ok := dest[0].(*string); ok {
		*s = "ok"
	}
	return r.err
}

type fakeTx struct {
	calls []string
	txErr error
}

func (f *fakeTx) Exec(_ context.Context, sql string, _ ...any) (CommandTag, error) {
	f.calls = append(f.calls, "exec:"+sql)
	return nil, nil
}

func (f *fakeTx) Query(_ context.Context, sql string, _ ...any) (Rows, error) {
	f.calls = append(f.calls, "query:"+sql)
	return nil, nil
}

func (f *fakeTx) QueryRow(_ context.Context, sql string, _ ...any) Row {
	f.calls = append(f.calls, "row:"+sql)
	return fakeRow{}
}

func (f *fakeTx) Tx(_ context.Context, fn func(Queryer) error) error {
	f.calls = append(f.calls, "begin")
	if f.txErr != nil {
		return f.txErr
	}
	return fn(f)
}

type foodsRepo struct{ q Queryer }

func TestBinder(t *testing.T) {
	b := BindFunc[foodsRepo](func(q Queryer) foodsRepo { return foodsRepo{q: q} })
	q := &fakeTx{}
	if r := MustBind[foodsRepo](b, q); r.q != q {
		t.Fatalf("repo bound to wrong queryer")
	}
	kit.MustPanic(t, func() { MustBind[foodsRepo](b, nil) })
}

func TestWithBeginHooks_Order(t *testing.T) {
	inner := &fakeTx{}
	hook := func(name string) BeginHook {
		return func(ctx context.Context, q Queryer) error {
			_, err := q.Exec(ctx, name)
			return err
		}
	}
	tx := WithBeginHooks(inner, hook("h1"), hook("h2"))

	err := WithTx(context.Background(), tx, func(q Queryer) error {
		_, err := q.Exec(context.Background(), "work")
		return err
	})
	if err != nil {
		t.Fatalf("tx: %v", err)
	}
	if got := strings.Join(inner.calls, ","); got != "begin,exec:h1,exec:h2,exec:work" {
		t.Fatalf("calls = %s", got)
	}

	inner.calls = nil
	_, _ = tx.Exec(context.Background(), "plain")
	if got := strings.Join(inner.calls, ","); got != "exec:plain" {
		t.Fatalf("plain exec ran hooks: %s", got)
	}
}

func TestWithBeginHooks_HookErrorStopsWork(t *testing.T) {
	boom := errors.New("boom")
	ran := false
	tx := WithBeginHooks(&fakeTx{}, func(context.Context, Queryer) error { return boom })
	err := tx.Tx(context.Background(), func(Queryer) error { ran = true; return nil })
	if !errors.Is(err, boom) || ran {
		t.Fatalf("err=%v ran=%v", err, ran)
	}
}

func TestWithBeginHooks_NoHooksIsIdentity(t *testing.T) {
	inner := &fakeTx{}
	if WithBeginHooks(inner) != TxRunner(inner) {
		t.Fatalf("expected inner runner back")
	}
}

func TestActorHook(t *testing.T) {
	inner := &fakeTx{}
	tx := WithBeginHooks(inner, ActorHook())

	ctx := store.WithActor(context.Background(), "u-1")
	if err := tx.Tx(ctx, func(Queryer) error { return nil }); err != nil {
		t.Fatalf("tx: %v", err)
	}
	if len(inner.calls) != 2 || inner.calls[1] != "row:"+store.SetActorSQL {
		t.Fatalf("actor not set: %v", inner.calls)
	}

	inner.calls = nil
	_ = tx.Tx(context.Background(), func(Queryer) error { return nil })
	if len(inner.calls) != 1 {
		t.Fatalf("anonymous tx should not set actor: %v", inner.calls)
	}
}

type fakeGuard struct{ err error }

func (g fakeGuard) Guard(ctx context.Context) error {
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("no deadline")
	}
	return g.err
}

func TestMustGuard(t *testing.T) {
	kit.MustNotPanic(t, func() { MustGuard(context.Background(), fakeGuard{}) })
	kit.MustPanic(t, func() { MustGuard(context.Background(), fakeGuard{err: errors.New("pg down")}) })
}

type capture struct {
	fakeTx
	sql  string
	args []any
}

func (c *capture) Exec(_ context.Context, sql string, args ...any) (CommandTag, error) {
	c.sql, c.args = sql, args
	return tag(1), nil
}

type tag int64

func (t tag) String() string      { return "UPDATE 1" }
func (t tag) RowsAffected() int64 { return int64(t) }

func TestSQLBuilder_DollarPlaceholders(t *testing.T) {
	c := &capture{}
	b := SQL.Update("food_items").Set("stats_dismissed", true).Where(Eq{"id": "f-1", "baby_id": "b-1"})
	if err := ExecOne(context.Background(), c, b); err != nil {
		t.Fatalf("exec: %v", err)
	}
	if c.sql != "UPDATE food_items SET stats_dismissed = $1 WHERE baby_id = $2 AND id = $3" {
		t.Fatalf("sql = %s", c.sql)
	}
	if len(c.args) != 3 || c.args[1] != "b-1" {
		t.Fatalf("args = %v", c.args)
	}

	bad := SQL.Update("food_items")
	if err := ExecOne(context.Background(), c, bad); err == nil {
		t.Fatalf("update without set should fail to render")
	}
}
