package server

import (
	"context"

	"github.com/jrsteele09/go-care-portal/routing"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// ContextKeyResolution stores the locale resolution of the request path
	ContextKeyResolution ContextKey = "resolution"
)

func WithResolution(ctx context.Context, res routing.Resolution) context.Context {
	return context.WithValue(ctx, ContextKeyResolution, res)
}

func ResolutionFromContext(ctx context.Context) (routing.Resolution, bool) {
	res, ok := ctx.Value(ContextKeyResolution).(routing.Resolution)
	return res, ok
}
