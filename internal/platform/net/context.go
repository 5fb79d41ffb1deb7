// Package net carries request-scoped identity through contexts and shapes transport envelopes
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"

	"babyfood/internal/platform/logger"
)

type ctxKey uint8

const (
	keyUserID ctxKey = iota
	keyBabyID
)

// WithRequestID stores the request id where chi's RequestID middleware would
func WithRequestID(ctx context.Context, reqID string) context.Context {
	if reqID == "" {
		return ctx
	}
	ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	return logger.WithRequest(ctx, reqID, "")
}

// WithUser stores the authenticated user id and tags request logs with it
func WithUser(ctx context.Context, userID string) context.Context {
	if userID == "" {
		return ctx
	}
	ctx = context.WithValue(ctx, keyUserID, userID)
	return logger.WithRequest(ctx, "", userID)
}

// WithBaby stores the baby the request operates on and tags request logs with it
func WithBaby(ctx context.Context, babyID string) context.Context {
	if babyID == "" {
		return ctx
	}
	ctx = context.WithValue(ctx, keyBabyID, babyID)
	return logger.WithBaby(ctx, babyID)
}

// RequestID returns the request id, or ""
func RequestID(ctx context.Context) string { return chimw.GetReqID(ctx) }

// UserID returns the authenticated user id, or ""
func UserID(ctx context.Context) string {
	s, _ := ctx.Value(keyUserID).(string)
	return s
}

// BabyID returns the baby scope, or ""
func BabyID(ctx context.Context) string {
	s, _ := ctx.Value(keyBabyID).(string)
	return s
}
