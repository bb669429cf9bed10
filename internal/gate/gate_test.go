// internal/gate/gate_test.go
//
// Unit-tests for the basic-auth gate.
//
// Run: go test ./internal/gate -v

package gate

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestAuthenticate(t *testing.T) {
	g := New("admin", "change-me")

	cases := []struct {
		name string
		user string
		pass string
		want bool
	}{
		{"both correct", "admin", "change-me", true},
		{"wrong username only", "root", "change-me", false},
		{"wrong password only", "admin", "hunter2", false},
		{"both wrong", "root", "hunter2", false},
		{"empty credentials", "", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := g.Authenticate(tc.user, tc.pass); got != tc.want {
				t.Fatalf("Authenticate(%q, %q) = %v, want %v", tc.user, tc.pass, got, tc.want)
			}
		})
	}
}

func TestRequireChallenge(t *testing.T) {
	g := New("admin", "change-me")
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	h := g.Require(next)

	// Missing credentials → 401 plus the Basic challenge.
	req := httptest.NewRequest(http.MethodGet, "/api/admin/emails", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("missing creds: status = %d, want 401", rr.Code)
	}
	if got := rr.Header().Get("WWW-Authenticate"); got == "" {
		t.Fatalf("missing creds: no WWW-Authenticate challenge")
	}

	// The failure body is the API-wide {"error": …} shape.
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("missing creds: Content-Type = %q, want JSON", ct)
	}
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("missing creds: body not JSON: %v", err)
	}
	if body.Error != "unauthorized" {
		t.Fatalf("missing creds: error = %q, want %q", body.Error, "unauthorized")
	}

	// Wrong password → same 401, no hint which field failed.
	req = httptest.NewRequest(http.MethodGet, "/api/admin/emails", nil)
	req.SetBasicAuth("admin", "wrong")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("wrong pass: status = %d, want 401", rr.Code)
	}

	// Correct pair passes through.
	req = httptest.NewRequest(http.MethodGet, "/api/admin/emails", nil)
	req.SetBasicAuth("admin", "change-me")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("good creds: status = %d, want 200", rr.Code)
	}
}
