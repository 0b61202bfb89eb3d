/*
Package identity carries who is acting.

PURPOSE:
  The leave domain never consults a global session holder; every operation
  receives the acting User explicitly. This package defines the user record
  the platform's identity provider returns, the role taxonomy, and the
  context plumbing the HTTP layer uses to hand the user to handlers.

ROLES:
  platform_admin  cross-tenant operator
  company_admin   tenant manager; approves and rejects requests
  staff           regular employee
  client          external read-only account

SEE ALSO:
  - jwt.go: token-backed Provider implementation
  - api/middleware.go: extracts the bearer token and resolves the User
*/
package identity

import (
	"context"
)

// Role is a user's permission level within a tenant.
type Role string

const (
	RolePlatformAdmin Role = "platform_admin"
	RoleCompanyAdmin  Role = "company_admin"
	RoleStaff         Role = "staff"
	RoleClient        Role = "client"
)

// User is the identity record the provider returns for a valid credential.
type User struct {
	ID       string
	TenantID string
	Email    string
	FullName string
	Role     Role
	IsActive bool
}

// CanApprove reports whether the user may approve or reject leave requests.
func (u User) CanApprove() bool {
	return u.Role == RoleCompanyAdmin || u.Role == RolePlatformAdmin
}

// Provider resolves a credential into a user record.
type Provider interface {
	// UserFromToken validates the token and returns the user it identifies.
	UserFromToken(ctx context.Context, token string) (*User, error)
}

// =============================================================================
// CONTEXT PLUMBING
// =============================================================================

type contextKey struct{}

// WithUser stores the acting user on the context.
func WithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, contextKey{}, u)
}

// FromContext returns the acting user, or nil when unauthenticated.
func FromContext(ctx context.Context) *User {
	u, _ := ctx.Value(contextKey{}).(*User)
	return u
}
