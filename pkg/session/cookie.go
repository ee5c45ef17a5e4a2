package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"strings"
	"time"
)

const (
	CookieName = "booking_session"

	// Client-visible expiry. The store entry outlives the cookie; a
	// request presenting an expired cookie is simply unauthenticated.
	cookieMaxAge = 24 * time.Hour
)

// Transport carries the session id in a signed cookie: the value is
// "<id>.<HMAC-SHA256(id)>", so a tampered id fails verification before it
// ever reaches the store.
type Transport struct {
	secret []byte
	secure bool
}

// NewTransport builds the cookie codec. secure selects the production
// attributes (Secure, SameSite=None for a cross-site frontend); local
// development gets SameSite=Lax over plain HTTP.
func NewTransport(secret string, secure bool) *Transport {
	return &Transport{secret: []byte(secret), secure: secure}
}

func (t *Transport) sign(id string) string {
	mac := hmac.New(sha256.New, t.secret)
	mac.Write([]byte(id))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func (t *Transport) sameSite() http.SameSite {
	if t.secure {
		return http.SameSiteNoneMode
	}
	return http.SameSiteLaxMode
}

func (t *Transport) Issue(w http.ResponseWriter, sess *Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    sess.ID + "." + t.sign(sess.ID),
		Path:     "/",
		MaxAge:   int(cookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   t.secure,
		SameSite: t.sameSite(),
	})
}

func (t *Transport) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   t.secure,
		SameSite: t.sameSite(),
	})
}

// Resolve returns the session id presented by the request, or "" when the
// cookie is absent, malformed, or carries a bad signature.
func (t *Transport) Resolve(r *http.Request) string {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}

	id, sig, ok := strings.Cut(c.Value, ".")
	if !ok || id == "" {
		return ""
	}
	if !hmac.Equal([]byte(sig), []byte(t.sign(id))) {
		return ""
	}
	return id
}
