package store

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"babyfood/internal/platform/config"
	perr "babyfood/internal/platform/errors"
	kit "babyfood/internal/platform/testkit"
)

type fakeTag int64

func (f fakeTag) String() string      { return "UPDATE" }
func (f fakeTag) RowsAffected() int64 { return int64(f) }

type fakeRows struct {
	data [][]any
	i    int
	err  error
}

func (f *fakeRows) Next() bool {
	if f.i >= len(f.data) {
		return false
	}
	f.i++
	return true
}

func (f *fakeRows) Scan(dest ...any) error {
	row := f.data[f.i-1]
	for i, d := range dest {
		switch p := d.(type) {
		case *string:
			*p = row[i].(string)
		case *int:
			*p = row[i].(int)
		}
	}
	return nil
}
func (f *fakeRows) Err() error        { return f.err }
func (f *fakeRows) Close()            {}
func (f *fakeRows) Columns() []string { return nil }

type fakeRow struct{ rows *fakeRows }

func (r fakeRow) Scan(dest ...any) error {
	if !r.rows.Next() {
		return errors.New("no rows")
	}
	return r.rows.Scan(dest...)
}

// fakeQ records statements and serves canned rows
type fakeQ struct {
	sqls     []string
	args     [][]any
	rows     [][]any
	affected int64
	err      error
	pingErr  error
	closed   bool
	inTx     bool
}

func (f *fakeQ) Exec(_ context.Context, sql string, args ...any) (CommandTag, error) {
	f.sqls, f.args = append(f.sqls, sql), append(f.args, args)
	return fakeTag(f.affected), f.err
}

func (f *fakeQ) Query(_ context.Context, sql string, args ...any) (Rows, error) {
	f.sqls, f.args = append(f.sqls, sql), append(f.args, args)
	if f.err != nil {
		return nil, f.err
	}
	return &fakeRows{data: f.rows}, nil
}

func (f *fakeQ) QueryRow(_ context.Context, sql string, args ...any) Row {
	f.sqls, f.args = append(f.sqls, sql), append(f.args, args)
	return fakeRow{rows: &fakeRows{data: f.rows}}
}

func (f *fakeQ) Tx(_ context.Context, fn func(RowQuerier) error) error {
	f.inTx = true
	defer func() { f.inTx = false }()
	return fn(f)
}

func (f *fakeQ) Ping(context.Context) error { return f.pingErr }
func (f *fakeQ) Close() error               { f.closed = true; return nil }

type fakeCH struct {
	pingErr error
	closed  bool
}

func (f *fakeCH) Insert(context.Context, string, []string, [][]any) error { return nil }
func (f *fakeCH) Query(context.Context, string, ...any) (Rows, error)     { return &fakeRows{}, nil }
func (f *fakeCH) Exec(context.Context, string, ...any) error              { return nil }
func (f *fakeCH) Ping(context.Context) error                              { return f.pingErr }
func (f *fakeCH) Close() error                                            { f.closed = true; return nil }

func TestExecOne(t *testing.T) {
	ctx := context.Background()
	if err := ExecOne(ctx, &fakeQ{affected: 1}, "UPDATE x"); err != nil {
		t.Fatalf("one row: %v", err)
	}
	if err := ExecOne(ctx, &fakeQ{affected: 0}, "UPDATE x"); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("zero rows should be not found, got %v", err)
	}
	if err := ExecOne(ctx, &fakeQ{affected: 3}, "UPDATE x"); err == nil {
		t.Fatalf("three rows should fail")
	}
	boom := errors.New("boom")
	if err := ExecOne(ctx, &fakeQ{err: boom}, "UPDATE x"); !errors.Is(err, boom) {
		t.Fatalf("exec error lost: %v", err)
	}
}

func scanName(r Row) (string, error) {
	var s string
	err := r.Scan(&s)
	return s, err
}

func TestOneManyScalar(t *testing.T) {
	ctx := context.Background()

	got, err := Many(ctx, &fakeQ{rows: [][]any{{"apple"}, {"pear"}}}, scanName, "SELECT name")
	if err != nil || strings.Join(got, ",") != "apple,pear" {
		t.Fatalf("Many = %v, %v", got, err)
	}
	empty, err := Many(ctx, &fakeQ{}, scanName, "SELECT name")
	if err != nil || empty == nil || len(empty) != 0 {
		t.Fatalf("Many empty = %#v, %v", empty, err)
	}

	one, err := One(ctx, &fakeQ{rows: [][]any{{"apple"}}}, scanName, "SELECT name")
	if err != nil || one != "apple" {
		t.Fatalf("One = %q, %v", one, err)
	}
	if _, err := One(ctx, &fakeQ{}, scanName, "SELECT name"); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("One none = %v", err)
	}
	if _, err := One(ctx, &fakeQ{rows: [][]any{{"a"}, {"b"}}}, scanName, "SELECT name"); err == nil {
		t.Fatalf("One with two rows should fail")
	}

	n, err := Scalar[int](ctx, &fakeQ{rows: [][]any{{42}}}, "SELECT count(*)")
	if err != nil || n != 42 {
		t.Fatalf("Scalar = %d, %v", n, err)
	}
}

func TestRunAs_TagsActorInsideTx(t *testing.T) {
	q := &fakeQ{rows: [][]any{{"u-1"}}}
	var sawTx bool
	err := RunAs(context.Background(), q, "u-1", func(ctx context.Context, rq RowQuerier) error {
		sawTx = q.inTx
		if uid, ok := Actor(ctx); !ok || uid != "u-1" {
			t.Fatalf("actor=%q", uid)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("RunAs: %v", err)
	}
	if !sawTx {
		t.Fatalf("fn did not run inside the transaction")
	}
	if len(q.sqls) != 1 || q.sqls[0] != SetActorSQL || q.args[0][0] != "u-1" {
		t.Fatalf("actor not tagged: %v %v", q.sqls, q.args)
	}
}

func TestTagActor_NoActorIsNoop(t *testing.T) {
	q := &fakeQ{}
	if err := TagActor(context.Background(), q); err != nil || len(q.sqls) != 0 {
		t.Fatalf("err=%v sqls=%v", err, q.sqls)
	}
	if ctx := WithActor(context.Background(), ""); ctx != context.Background() {
		t.Fatalf("empty actor should not wrap ctx")
	}
}

func TestGuardAndClose(t *testing.T) {
	ctx := context.Background()
	pgq, chc := &fakeQ{}, &fakeCH{}
	s := &Store{PG: pgq, CH: chc}
	if err := s.Guard(ctx); err != nil {
		t.Fatalf("guard healthy: %v", err)
	}

	pgq.pingErr, chc.pingErr = errors.New("pg down"), errors.New("ch down")
	err := s.Guard(ctx)
	if err == nil {
		t.Fatalf("expected guard error")
	}
	kit.MustContain(t, err.Error(), "pg: pg down")
	kit.MustContain(t, err.Error(), "ch: ch down")

	if err := s.Close(ctx); err != nil || !pgq.closed || !chc.closed {
		t.Fatalf("close err=%v pg=%v ch=%v", err, pgq.closed, chc.closed)
	}

	var nilStore *Store
	if nilStore.Guard(ctx) == nil {
		t.Fatalf("nil store guard should fail")
	}
	if err := nilStore.Close(ctx); err != nil {
		t.Fatalf("nil store close: %v", err)
	}
	if err := (&Store{}).Guard(ctx); err != nil {
		t.Fatalf("empty store guard: %v", err)
	}
}

func TestOpen_UsesOpeners(t *testing.T) {
	pgq, chc := &fakeQ{}, &fakeCH{}
	kit.Swap(t, &openPGFn, func(context.Context, Config, *Store) (TxRunner, error) { return pgq, nil })
	kit.Swap(t, &openCHFn, func(context.Context, Config, *Store) (Clickhouse, error) { return chc, nil })

	s, err := Open(context.Background(), Config{PG: PGConfig{Enabled: true}})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if s.PG != pgq || s.CH != nil {
		t.Fatalf("backends = %v %v", s.PG, s.CH)
	}

	s, err = Open(context.Background(), Config{PG: PGConfig{Enabled: true}, CH: CHConfig{Enabled: true}})
	if err != nil || s.CH != chc {
		t.Fatalf("ch not opened: %v", err)
	}
}

func TestOpen_CHFailureClosesPG(t *testing.T) {
	pgq := &fakeQ{}
	kit.Swap(t, &openPGFn, func(context.Context, Config, *Store) (TxRunner, error) { return pgq, nil })
	kit.Swap(t, &openCHFn, func(context.Context, Config, *Store) (Clickhouse, error) {
		return nil, errors.New("ch refused")
	})
	if _, err := Open(context.Background(), Config{PG: PGConfig{Enabled: true}, CH: CHConfig{Enabled: true}}); err == nil {
		t.Fatalf("expected error")
	}
	if !pgq.closed {
		t.Fatalf("pg left open after ch failure")
	}
}

func TestOpen_OptionError(t *testing.T) {
	bad := func(*Store) error { return errors.New("bad option") }
	if _, err := Open(context.Background(), Config{}, bad); err == nil {
		t.Fatalf("expected option error")
	}
}

func TestFromConfig(t *testing.T) {
	root := config.New().Prefix("STORETEST_")
	t.Setenv("STORETEST_SERVICE_PGSQL_DBURL", "postgres://localhost/babyfood")
	t.Setenv("STORETEST_SERVICE_PGSQL_MAX_CONNS", "9")

	cfg := FromConfig(root, "api")
	if !cfg.PG.Enabled || cfg.PG.URL != "postgres://localhost/babyfood" || cfg.PG.MaxConns != 9 {
		t.Fatalf("pg = %+v", cfg.PG)
	}
	if cfg.CH.Enabled {
		t.Fatalf("ch enabled without DSN")
	}
	if cfg.AppName != "babyfood-api" || cfg.PG.PingTimeout != 3*time.Second {
		t.Fatalf("cfg = %+v", cfg)
	}

	t.Setenv("STORETEST_SERVICE_CLICKHOUSE_DBURL", "clickhouse://localhost:9000/babyfood")
	if cfg := FromConfig(root, "worker"); !cfg.CH.Enabled {
		t.Fatalf("ch should be enabled with a DSN")
	}
	t.Setenv("STORETEST_SERVICE_CLICKHOUSE_ENABLED", "false")
	if cfg := FromConfig(root, "worker"); cfg.CH.Enabled {
		t.Fatalf("ch should honour ENABLED=false")
	}
}

func TestBackoff(t *testing.T) {
	d := backoffStart
	for i := 0; i < 10; i++ {
		d = nextBackoff(d)
	}
	if d != backoffCeiling {
		t.Fatalf("backoff=%v", d)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := sleep(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Fatalf("sleep ignored cancel: %v", err)
	}
}
