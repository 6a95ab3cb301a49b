package web

import (
	"net/http"

	"github.com/google/uuid"
)

const sessionCookie = "kasir_session"

// sessionID returns the browsing session's cart key, minting a new
// cookie on first contact. The value is opaque; carts live only in
// memory, so an expired or restarted server simply starts fresh.
func sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		return c.Value
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}
