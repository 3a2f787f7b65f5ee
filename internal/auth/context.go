package auth

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
)

type callerKey struct{}

func WithCaller(ctx context.Context, caller *Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, caller)
}

// CallerFromContext returns the authenticated caller, or nil outside an
// authenticated request.
func CallerFromContext(ctx context.Context) *Caller {
	caller, _ := ctx.Value(callerKey{}).(*Caller)
	return caller
}

// RequireCaller returns the authenticated caller or a 401 huma error.
func RequireCaller(ctx context.Context) (*Caller, error) {
	caller := CallerFromContext(ctx)
	if caller == nil {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}
	return caller, nil
}
