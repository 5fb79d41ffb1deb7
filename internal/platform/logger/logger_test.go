package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"

	kit "babyfood/internal/platform/testkit"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"DEBUG":   zerolog.DebugLevel,
		"info":    zerolog.InfoLevel,
		"warning": zerolog.WarnLevel,
		" error ": zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"loud":    zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "WARN")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_SERVICE", "babyfood-worker")
	t.Setenv("LOG_CALLER", "yes")
	t.Setenv("LOG_SAMPLE_EVERY", "4")

	opt := FromEnv()
	if opt.Level != "warn" || opt.Format != "json" || opt.Service != "babyfood-worker" {
		t.Fatalf("FromEnv = %+v", opt)
	}
	if !opt.WithCaller || opt.SampleEvery != 4 {
		t.Fatalf("FromEnv caller/sample = %+v", opt)
	}
}

func TestInit_ContextFields(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{
		Level:        "debug",
		Format:       "json",
		Service:      "babyfood-api",
		Writer:       &buf,
		StaticFields: map[string]string{"env": "test"},
	})

	ctx := WithRequest(context.Background(), "req-1", "user-9")
	ctx = WithBaby(ctx, "baby-3")
	C(ctx).Info().Msg("scoped")
	Named("calendar").Info().Msg("named")
	C(WithRequest(context.Background(), "", "")).Info().Msg("bare")

	out := buf.String()
	if out == "" {
		t.Skip("root logger was initialised by an earlier test")
	}
	for _, want := range []string{
		`"request_id":"req-1"`,
		`"user_id":"user-9"`,
		`"baby_id":"baby-3"`,
		`"component":"calendar"`,
		`"service":"babyfood-api"`,
		`"env":"test"`,
		"bare",
	} {
		kit.MustContain(t, out, want)
	}
}

func TestWithBaby_EmptyIsNoop(t *testing.T) {
	ctx := context.Background()
	if WithBaby(ctx, "") != ctx {
		t.Fatalf("WithBaby with empty id should return ctx unchanged")
	}
}
