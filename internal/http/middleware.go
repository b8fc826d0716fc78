package http

import (
	"net/http"
	"strings"

	"github.com/Flarenzy/subnetcalc/internal/auth"
)

const sessionCookieName = "subnet_session"

func isPublicPath(path string) bool {
	return path == "/healthz" || path == "/readyz" || strings.HasPrefix(path, "/swagger/")
}

// sessionMiddleware attaches a session to every API request, minting a fresh
// one when the cookie is missing, expired, or forged.
func (a *API) sessionMiddleware(next http.Handler) http.Handler {
	if a.Sessions == nil {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isPublicPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		var session auth.Session
		fresh := true
		if cookie, err := r.Cookie(sessionCookieName); err == nil {
			if existing, err := a.Sessions.Verify(cookie.Value); err == nil {
				session = existing
				fresh = false
			}
		}

		if fresh {
			session = a.Sessions.New()
			token, err := a.Sessions.Issue(session)
			if err != nil {
				a.Logger.ErrorContext(r.Context(), "issuing session token", "err", err.Error())
				http.Error(w, "internal server error", http.StatusInternalServerError)
				return
			}
			http.SetCookie(w, a.sessionCookie(token, int(a.Sessions.TTL().Seconds())))
		}

		next.ServeHTTP(w, r.WithContext(auth.WithSession(r.Context(), session)))
	})
}

func (a *API) sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     sessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// bearerMiddleware verifies an Authorization header when one is present.
// Requests without a token stay anonymous; only forged tokens are rejected.
func (a *API) bearerMiddleware(next http.Handler) http.Handler {
	if a.Authenticator == nil {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isPublicPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		authz := r.Header.Get("Authorization")
		if authz == "" {
			next.ServeHTTP(w, r)
			return
		}
		if !strings.HasPrefix(authz, "Bearer ") {
			http.Error(w, "malformed authorization header", http.StatusUnauthorized)
			return
		}

		principal, err := a.Authenticator.Authenticate(r.Context(), strings.TrimPrefix(authz, "Bearer "))
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), principal)))
	})
}
