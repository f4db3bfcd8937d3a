package shared

import "context"

type sessionContextKey struct{}

// ContextWithSession stores the session in context. The session
// middleware is the only writer; handlers read the principal back
// through SessionFromContext.
func ContextWithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, sess)
}

// SessionFromContext extracts the session from context, or nil when
// the request never passed the session middleware.
func SessionFromContext(ctx context.Context) *Session {
	sess, _ := ctx.Value(sessionContextKey{}).(*Session)
	return sess
}
