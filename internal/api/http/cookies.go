package http

import (
	"net/http"
	"time"
)

// SessionCookieName is the cookie the browser holds the session token in.
// The frontend never reads it; it is HttpOnly and rides along automatically.
const SessionCookieName = "session"

// CookieWriter centralises the session cookie attributes so the login,
// refresh, and logout paths can never drift apart.
type CookieWriter struct {
	// Secure marks the cookie HTTPS-only. Off in local development so the
	// cookie still works over plain http://localhost.
	Secure bool

	// MaxAge matches the session lifetime.
	MaxAge time.Duration
}

// Set writes the session cookie carrying token.
func (c CookieWriter) Set(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(c.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// Clear expires the session cookie. Attributes must match Set or the browser
// treats it as a different cookie and keeps the old one.
func (c CookieWriter) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}
