package auth

import "net/http"

// CookieName is the session cookie name expected by the frontend.
const CookieName = "token"

// SessionCookie builds the session cookie under one consistent policy, so
// login and logout cannot drift apart. Production serves the frontend from
// another origin and needs Secure + SameSite=None; development runs over
// plain HTTP and uses Lax.
func SessionCookie(value string, maxAgeSeconds int, production bool) *http.Cookie {
	cookie := &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAgeSeconds,
		HttpOnly: true,
		Secure:   production,
		SameSite: http.SameSiteLaxMode,
	}
	if production {
		cookie.SameSite = http.SameSiteNoneMode
	}
	return cookie
}

// ClearSessionCookie returns an already-expired cookie of the same name and
// path, instructing the browser to drop the session.
func ClearSessionCookie(production bool) *http.Cookie {
	return SessionCookie("", -1, production)
}
