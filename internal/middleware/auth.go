package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"clinic-booking-api/internal/auth"
	"clinic-booking-api/internal/model"
	"clinic-booking-api/internal/store"
)

type ctxKey string

const userKey ctxKey = "user"

// SessionCookie is the name of the browser session cookie.
const SessionCookie = "session"

// Gate resolves each request to Anonymous or Authenticated(user). Any
// resolution failure (revoked or expired session, deleted user, garbage
// token) leaves the request Anonymous.
type Gate struct {
	store      *store.Store
	secret     string
	sessionTTL time.Duration
}

func NewGate(st *store.Store, secret string, sessionTTL time.Duration) *Gate {
	return &Gate{store: st, secret: secret, sessionTTL: sessionTTL}
}

// CurrentUser returns the authenticated user, or nil for Anonymous.
func CurrentUser(ctx context.Context) *model.User {
	u, _ := ctx.Value(userKey).(*model.User)
	return u
}

// Resolve attaches the user to the request context when a session
// cookie or bearer token checks out. It never rejects.
func (g *Gate) Resolve(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if u := g.resolve(r); u != nil {
			r = r.WithContext(context.WithValue(r.Context(), userKey, u))
		}
		next.ServeHTTP(w, r)
	})
}

func (g *Gate) resolve(r *http.Request) *model.User {
	ctx := r.Context()

	if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
		sess, err := g.store.SessionByTokenHash(ctx, auth.HashSessionToken(c.Value))
		if err != nil || !sess.Valid(time.Now()) {
			return nil
		}
		u, err := g.store.UserByID(ctx, sess.UserID)
		if err != nil {
			return nil
		}
		// sliding window
		_ = g.store.TouchSession(ctx, sess.ID, time.Now().Add(g.sessionTTL))
		return u
	}

	// token from Authorization: Bearer <jwt>
	if authz := r.Header.Get("Authorization"); strings.HasPrefix(authz, "Bearer ") {
		claims, err := auth.ParseToken(strings.TrimPrefix(authz, "Bearer "), g.secret)
		if err != nil {
			return nil
		}
		u, err := g.store.UserByID(ctx, claims.UserID)
		if err != nil {
			return nil
		}
		return u
	}

	return nil
}

// RequireUser rejects Anonymous requests. Browser requests are sent to
// the login page; API requests get a 401.
func (g *Gate) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if CurrentUser(r.Context()) == nil {
			unauthorized(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects Anonymous with 401 and non-admin users with 403.
func (g *Gate) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u := CurrentUser(r.Context())
		if u == nil {
			unauthorized(w, r)
			return
		}
		if !u.IsAdmin {
			jsonError(w, http.StatusForbidden, "not authorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func unauthorized(w http.ResponseWriter, r *http.Request) {
	if strings.Contains(r.Header.Get("Accept"), "text/html") {
		http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
		return
	}
	jsonError(w, http.StatusUnauthorized, "authentication required")
}

func jsonError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	fmt.Fprintf(w, `{"message":%q}`, msg)
}
