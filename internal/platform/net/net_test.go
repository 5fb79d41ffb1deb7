package net

import (
	"context"
	"net/http"
	"testing"

	perr "babyfood/internal/platform/errors"
)

func TestContextRoundTrip(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-7")
	ctx = WithUser(ctx, "u-1")
	ctx = WithBaby(ctx, "b-2")

	if RequestID(ctx) != "req-7" || UserID(ctx) != "u-1" || BabyID(ctx) != "b-2" {
		t.Fatalf("got req=%q user=%q baby=%q", RequestID(ctx), UserID(ctx), BabyID(ctx))
	}
}

func TestContextEmptyIsNoop(t *testing.T) {
	ctx := context.Background()
	if WithRequestID(ctx, "") != ctx || WithUser(ctx, "") != ctx || WithBaby(ctx, "") != ctx {
		t.Fatalf("empty ids should not wrap the context")
	}
	if UserID(ctx) != "" || BabyID(ctx) != "" || RequestID(ctx) != "" {
		t.Fatalf("empty context should have no ids")
	}
}

func TestErrorEnvelope(t *testing.T) {
	status, w := Error(perr.WithField(perr.Gonef("invitation expired"), "token"), "req-1")
	if status != http.StatusGone || w.StatusCode != http.StatusGone {
		t.Fatalf("status = %d/%d", status, w.StatusCode)
	}
	if w.Reason != "gone" || w.Error != "invitation expired" || w.Field != "token" || w.RequestID != "req-1" {
		t.Fatalf("wire = %+v", w)
	}

	status, w = Error(nil, "req-2")
	if status != http.StatusOK || w.Status != "OK" {
		t.Fatalf("nil error envelope = %d %+v", status, w)
	}
}
