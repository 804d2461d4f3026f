package http

import (
	"context"
	"net/http"

	"github.com/cardfolio/cardfolio/internal/api/service"
	"github.com/cardfolio/cardfolio/pkg/api"
	"github.com/cardfolio/cardfolio/pkg/httpx"
)

type userIDKey struct{}

// UserID returns the authenticated user's id, or "" outside a session.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey{}).(string)
	return id
}

// SessionMiddleware authenticates requests via the session cookie. Any
// failure, from a missing cookie to a tampered or expired token, is a plain
// 401; the client cannot tell which check tripped. A session past its refresh
// threshold gets a replacement cookie on the way out.
func SessionMiddleware(sessions *service.SessionService, cookies CookieWriter) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				writeUnauthorized(w)
				return
			}

			claims, err := sessions.Verify(cookie.Value)
			if err != nil {
				writeUnauthorized(w)
				return
			}

			if sessions.ShouldRefresh(claims) {
				if token, _, err := sessions.Refresh(claims); err == nil {
					cookies.Set(w, token)
				}
			}

			ctx := context.WithValue(r.Context(), userIDKey{}, claims.Sub)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter) {
	httpx.WriteJSON(w, http.StatusUnauthorized, api.ErrorResponse{
		Error:            "unauthorized",
		ErrorDescription: "Authentication required",
	})
}
