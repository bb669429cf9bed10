// internal/gate/gate.go
//
// Constant-time basic-auth gate for the admin listing.
//
// Context
// -------
// One operator credential pair, configured at boot, guards read access to
// the raw signup data.  Username and password are compared independently
// with crypto/subtle so an attacker cannot time their way into learning
// that one field matched.  Both comparisons always run; the middleware
// reports any failure identically and emits the Basic challenge so
// browsers prompt for credentials.
//
// Notes
// -----
// • No sessions, no tokens.  The admin surface is one read-only endpoint;
//   basic auth over HTTPS is enough.
// • Oxford commas, two spaces after periods.

package gate

import (
	"crypto/subtle"
	"net/http"

	"github.com/yanizio/showcase/internal/metrics"
)

// Gate holds the configured admin credentials.  Zero value rejects
// everything; construct with New.
type Gate struct {
	username []byte
	password []byte
}

// New returns a Gate for the given credential pair.
func New(username, password string) *Gate {
	return &Gate{username: []byte(username), password: []byte(password)}
}

// Authenticate reports whether both supplied credentials match.  Both
// comparisons execute regardless of the first result, so a username miss
// costs the same time as a password miss.
func (g *Gate) Authenticate(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), g.username) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), g.password) == 1
	return userOK && passOK
}

// Require wraps next with a basic-auth check.  Missing or wrong
// credentials get 401 plus the Basic challenge header; the response never
// says which field was wrong.  The body carries the same {"error": …}
// shape the API handlers use, so admin tooling parses one format.
func (g *Gate) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || !g.Authenticate(user, pass) {
			metrics.AdminAuthFailTotal.Inc()
			w.Header().Set("WWW-Authenticate", `Basic realm="showcase admin"`)
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"unauthorized"}` + "\n"))
			return
		}
		next.ServeHTTP(w, r)
	})
}
