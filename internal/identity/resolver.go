// Package identity reads the signed-in user from the session cookie written by
// the external auth provider. It never issues or mutates sessions itself.
package identity

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/sessions"

	"github.com/venkatajanapareddy/sarkarijobs.cc/pkg/logging"
)

const (
	DefaultSessionName = "sarkarijobs-session"

	userIDKey = "user_id"
)

type ctxKey struct{}

// Resolver maps a request to the user id stored in its session
type Resolver struct {
	store *sessions.CookieStore
	name  string
	log   *logging.Logger
}

// NewResolver builds a cookie-backed resolver. key authenticates the cookie
// and must match the one the auth provider signs with.
func NewResolver(key []byte, sessionName string, log *logging.Logger) (*Resolver, error) {
	if len(key) == 0 {
		return nil, fmt.Errorf("identity: session key is required")
	}
	if sessionName == "" {
		sessionName = DefaultSessionName
	}
	if log == nil {
		log = logging.NewNop()
	}
	return &Resolver{
		store: sessions.NewCookieStore(key),
		name:  sessionName,
		log:   log,
	}, nil
}

// Store exposes the underlying cookie store, mostly for tests that need to
// mint a session.
func (r *Resolver) Store() *sessions.CookieStore {
	return r.store
}

// SessionName is the cookie name the resolver reads
func (r *Resolver) SessionName() string {
	return r.name
}

// UserID returns the session's user id, or false for anonymous requests
func (r *Resolver) UserID(req *http.Request) (string, bool) {
	sess, err := r.store.Get(req, r.name)
	if err != nil {
		// a tampered or stale cookie is treated as signed out
		r.log.Debug("session decode failed", "err", err)
		return "", false
	}
	id, _ := sess.Values[userIDKey].(string)
	id = strings.TrimSpace(id)
	return id, id != ""
}

// Middleware stores the resolved user id in the request context
func (r *Resolver) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if id, ok := r.UserID(req); ok {
			req = req.WithContext(WithUserID(req.Context(), id))
		}
		next.ServeHTTP(w, req)
	})
}

// WithUserID returns a context carrying id
func WithUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// UserIDFrom returns the user id placed by Middleware
func UserIDFrom(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxKey{}).(string)
	return id, ok && id != ""
}
