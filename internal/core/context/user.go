// Package context provides request-scoped values extraction.
package context

import (
	"context"
)

// Role is a named capability group.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleOperator Role = "operator"
	RoleViewer   Role = "viewer"
)

// CanWrite reports whether the role carries write capability.
// Admin subsumes operator; viewer is read-only.
func (r Role) CanWrite() bool {
	return r == RoleAdmin || r == RoleOperator
}

// Valid reports whether the role is one of the known groups.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleOperator, RoleViewer:
		return true
	}
	return false
}

// UserContext contains authenticated user information.
// The surrounding layer resolves identity; the core only consumes the
// user id for audit fields and the role's write capability.
type UserContext struct {
	UserID   string
	Username string
	Role     Role
}

// CanWrite reports the user's write capability.
func (u *UserContext) CanWrite() bool {
	return u != nil && u.Role.CanWrite()
}

type userContextKey struct{}

// WithUser adds UserContext to context.
func WithUser(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// GetUser returns UserContext from context.
func GetUser(ctx context.Context) *UserContext {
	if v, ok := ctx.Value(userContextKey{}).(*UserContext); ok {
		return v
	}
	return nil
}

// GetUserID returns user ID from context or empty string.
func GetUserID(ctx context.Context) string {
	if u := GetUser(ctx); u != nil {
		return u.UserID
	}
	return ""
}

// GetUsername returns the display name from context or empty string.
func GetUsername(ctx context.Context) string {
	if u := GetUser(ctx); u != nil {
		return u.Username
	}
	return ""
}
