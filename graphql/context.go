package graphql

import (
	"context"
	"net/http"
)

type contextKey string

const ctxKeySession contextKey = "session"

// HeaderSession selects the view cache session, as on the REST view routes.
const HeaderSession = "X-Session-ID"

// WithSession attaches a cache session id to ctx.
func WithSession(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKeySession, id)
}

// SessionFromContext returns the session id, or "" when the request had none.
func SessionFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKeySession).(string); ok {
		return v
	}
	return ""
}

// SessionMiddleware copies the session header into the request context.
func SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := r.Header.Get(HeaderSession); id != "" {
			r = r.WithContext(WithSession(r.Context(), id))
		}
		next.ServeHTTP(w, r)
	})
}
