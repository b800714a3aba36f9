package auth

import (
	"context"
	"errors"
	"time"
)

// ErrAccessDenied signals a role or ownership violation. It is distinct from
// not-found so callers can tell authorization failure from absence.
var ErrAccessDenied = errors.New("access denied")

type Role string

const (
	RoleCustomer Role = "customer"
	RoleStaff    Role = "staff"
	RoleAdmin    Role = "admin"
)

// Session is the resolved caller identity for one request. It is read-only
// for everything downstream of the auth middleware.
type Session struct {
	UserID    string
	Role      Role
	Token     string
	ExpiresAt time.Time
}

func (s Session) IsStaff() bool {
	return s.Role == RoleStaff || s.Role == RoleAdmin
}

func (s Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

type sessionKey struct{}

func WithSession(ctx context.Context, sess Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, sess)
}

func SessionFrom(ctx context.Context) (Session, bool) {
	sess, ok := ctx.Value(sessionKey{}).(Session)
	return sess, ok
}
