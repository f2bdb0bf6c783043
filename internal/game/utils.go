package game

import (
	"fmt"
	"net/http"
	"net/url"
)

// SessionCookie builds the session cookie for a session id
func SessionCookie(sessionID string) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		// Secure: true, // enable when serving over HTTPS
	}
}

// AbsoluteURL resolves ref against base. Absolute refs are returned as-is;
// a relative ref with no base is an error.
func AbsoluteURL(base, ref string) (string, error) {
	u, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("parsing %q: %w", ref, err)
	}
	if u.IsAbs() {
		return u.String(), nil
	}
	if base == "" {
		return "", fmt.Errorf("relative url %q needs a public base url", ref)
	}
	b, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parsing base %q: %w", base, err)
	}
	return b.ResolveReference(u).String(), nil
}
