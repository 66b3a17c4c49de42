package middleware

import (
	"net/http"

	"edusite/internal/session"

	"github.com/casbin/casbin/v2"
)

// Authorizer creates a new middleware for authorization.
// It resolves the user's subject from the session and checks the
// request against the Casbin policy. An anonymous user hitting a
// protected route gets 401; an authenticated user without the required
// role gets 403. The capability check runs before any handler logic.
func Authorizer(e casbin.IEnforcer, sm session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			subject := sm.GetString(r.Context(), "user_subject")
			if subject == "" {
				subject = "anonymous"
			}

			// Add user info to the request context for downstream handlers.
			userInfo := &UserInfo{Subject: subject, Role: sm.GetString(r.Context(), "user_role")}
			r = r.WithContext(SetUserInfo(r.Context(), userInfo))

			allowed, err := e.Enforce(subject, r.URL.Path, r.Method)
			if err != nil {
				writeError(w, http.StatusInternalServerError, CodeInternal, "Authorization error")
				return
			}

			if !allowed {
				if subject == "anonymous" {
					writeError(w, http.StatusUnauthorized, CodeAuthRequired, "Authentication required")
					return
				}
				writeError(w, http.StatusForbidden, CodeForbidden, "Forbidden")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
