// Package tenancy enforces company scoping for the deliveries backend.
// Every entity is owned by exactly one company; the only exception is the
// MASTER role, which operates platform-wide.
package tenancy

import "context"

// ctxKey is an unexported type used as the context key for CompanyScope.
type ctxKey struct{}

// CompanyScope carries the resolved tenant boundary through request context.
// Bypass is only set for MASTER actors.
type CompanyScope struct {
	CompanyID int64
	Bypass    bool
}

// WithScope returns a new context with the given CompanyScope attached.
func WithScope(ctx context.Context, s CompanyScope) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// ScopeFromContext retrieves the CompanyScope from the context.
// Returns the zero value and false if no scope is set.
func ScopeFromContext(ctx context.Context) (CompanyScope, bool) {
	s, ok := ctx.Value(ctxKey{}).(CompanyScope)
	return s, ok
}

// CompanyFromContext is a convenience function that returns the company id
// from the context, or 0 if no scope is set.
func CompanyFromContext(ctx context.Context) int64 {
	s, ok := ScopeFromContext(ctx)
	if !ok {
		return 0
	}
	return s.CompanyID
}
