package auth

import "context"

// Session is the authenticated identity of a request.
type Session struct {
	UserID string
	Email  string
	Name   string
	Role   string
}

// HasRole reports whether the session carries one of roles.
func (s Session) HasRole(roles ...string) bool {
	for _, r := range roles {
		if s.Role == r {
			return true
		}
	}
	return false
}

type contextKey struct{}

// WithSession returns a context carrying s.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the session stored by the auth gate.
func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(contextKey{}).(Session)
	return s, ok
}
