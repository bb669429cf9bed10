// internal/server/timeouts.go
//
// Hardened *http.Server constructor for the Showcase API.
//
// Every endpoint here returns a small JSON body, so the limits are
// deliberately tight:
//
//   • ReadTimeout   – 10 s, bounds slow-loris header dribble on intake
//   • WriteTimeout  – 15 s, well above the worst gallery or admin query
//   • IdleTimeout   – 60 s, recycles keep-alives from the marketing site
//
// cmd/web builds its listener through New so the limits live in one place.

package server

import (
	"net/http"
	"time"
)

// New constructs an *http.Server with the Showcase timeout profile.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
		// TLSConfig may be injected by callers (e.g., autocert).
	}
}
