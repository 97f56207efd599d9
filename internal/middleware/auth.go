package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/karyakarta/karyakarta-api/internal/pkg/response"
	"github.com/karyakarta/karyakarta-api/internal/pkg/session"
)

type contextKey string

const AdminIDKey contextKey = "admin_id"

// Gate guards admin routes behind the session cookie. Requests without a
// valid cookie are redirected to the login route (browser navigations) or
// answered 401 (API calls). The login route itself is exempt. Session
// issuance lives with the external auth service; this is a boundary check
// only.
func Gate(sessions *session.Service, cookieName, loginPath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == loginPath {
				next.ServeHTTP(w, r)
				return
			}

			cookie, err := r.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				deny(w, r, loginPath, "Missing admin session")
				return
			}

			claims, err := sessions.Verify(cookie.Value)
			if err != nil {
				if err == session.ErrExpiredSession {
					deny(w, r, loginPath, "Session expired")
				} else {
					deny(w, r, loginPath, "Invalid session")
				}
				return
			}

			ctx := context.WithValue(r.Context(), AdminIDKey, claims.AdminID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func deny(w http.ResponseWriter, r *http.Request, loginPath, message string) {
	if wantsHTML(r) {
		http.Redirect(w, r, loginPath, http.StatusFound)
		return
	}
	response.Unauthorized(w, message)
}

func wantsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}

// GetAdminID extracts the admin id from context
func GetAdminID(ctx context.Context) string {
	if id, ok := ctx.Value(AdminIDKey).(string); ok {
		return id
	}
	return ""
}
