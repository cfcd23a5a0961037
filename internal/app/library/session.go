// Package library orchestrates playlist persistence: every mutation is
// confirmed against the repository first and only then mirrored into
// the playback store.
package library

import "context"

// Session identifies the authenticated user behind a request.
type Session struct {
	UserID string
}

type sessionKey struct{}

// ContextWithSession attaches a session to the context.
func ContextWithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFromContext returns the session attached to the context, if
// any.
func SessionFromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(Session)
	return s, ok && s.UserID != ""
}
