// internal/middleware/cors.go
//
// Cross-origin allow-list middleware.
//
// Context
// -------
// The marketing frontend is served from its own origin (Vite dev server or
// a CDN), so the JSON endpoints must answer pre-flight checks.  Only the
// origins handed to the constructor are ever echoed back; everything else
// gets no CORS headers and the browser blocks the call.  Methods are
// limited to GET and POST—the service exposes nothing else.
//
// Notes
// -----
// • Origin matching is exact (scheme + host + port), no wildcards.
// • Credentials are allowed so the admin page can send basic auth.
// • Oxford commas, two spaces after periods.

package middleware

import "net/http"

// CORS wraps next with allow-list pre-flight handling.
func CORS(origins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[o] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if _, ok := allowed[origin]; ok {
				h := w.Header()
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
				h.Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
				h.Set("Access-Control-Allow-Credentials", "true")
				h.Add("Vary", "Origin")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
