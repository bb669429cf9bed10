// internal/web/handlers_test.go
//
// Handler tests: full router, sqlmock-backed services, httptest requests.
//
// Run: go test ./internal/web -v

package web

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"

	"github.com/yanizio/showcase/internal/content"
	"github.com/yanizio/showcase/internal/gate"
	"github.com/yanizio/showcase/internal/signup"
)

const (
	selectEmailQ = `SELECT id, email, name, message, created_at FROM email_record WHERE email = ? LIMIT 1`
	insertEmailQ = `INSERT INTO email_record (email, name, message, created_at) VALUES (?, ?, ?, ?)`
	listEmailQ   = `SELECT id, email, name, message, created_at FROM email_record ORDER BY created_at DESC, id DESC LIMIT ?`
	sectionQ     = `SELECT id, section_key, locale, is_enabled, created_at, updated_at FROM image_section WHERE section_key = ? AND locale = ? AND is_enabled = TRUE LIMIT 1`
	itemsQ       = `SELECT id, section_id, image_url, alt_text, link_url, is_hidden, sort_order, created_at, updated_at FROM image_item WHERE section_id = ? AND is_hidden = FALSE ORDER BY sort_order ASC, id ASC`
)

func newTestRouter(t *testing.T) (http.Handler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	sdb := sqlx.NewDb(db, "mysql")
	h := &Handlers{
		Signups: signup.NewService(sdb),
		Content: content.NewService(sdb),
	}
	g := gate.New("admin", "change-me")
	return NewRouter(h, g, []string{"http://localhost:5173"}), mock
}

func doJSON(t *testing.T, h http.Handler, method, target, body string, auth func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if auth != nil {
		auth(req)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestHealth(t *testing.T) {
	h, _ := newTestRouter(t)

	rr := doJSON(t, h, http.MethodGet, "/health", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	var body map[string]bool
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body["ok"] {
		t.Fatalf("want {\"ok\": true}, got %s", rr.Body.String())
	}
}

func TestCreateEmail(t *testing.T) {
	h, mock := newTestRouter(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectEmailQ)).
		WithArgs("ada@example.com").
		WillReturnError(errNoRows())
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(insertEmailQ)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	rr := doJSON(t, h, http.MethodPost, "/api/emails",
		`{"email":"Ada@Example.com","name":"Ada","message":"hi"}`, nil)
	if rr.Code != http.StatusCreated {
		t.Fatalf("first insert: status = %d, want 201 (%s)", rr.Code, rr.Body.String())
	}

	var first map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &first); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if first["email"] != "ada@example.com" {
		t.Fatalf("email not normalized in response: %v", first["email"])
	}

	// Duplicate submission: 200, same record id, same body shape.
	stamp := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(selectEmailQ)).
		WithArgs("ada@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name", "message", "created_at"}).
			AddRow(1, "ada@example.com", "Ada", "hi", stamp))

	rr = doJSON(t, h, http.MethodPost, "/api/emails",
		`{"email":"ada@example.com","name":"Someone Else","message":"other"}`, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("duplicate: status = %d, want 200", rr.Code)
	}

	var dup map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &dup); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if dup["id"] != first["id"] || dup["name"] != "Ada" {
		t.Fatalf("duplicate did not return original record: %v", dup)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestCreateEmailBadInput(t *testing.T) {
	h, mock := newTestRouter(t)

	for _, body := range []string{
		`{"email":"not-an-email"}`,
		`{"email":""}`,
		`{not json`,
	} {
		rr := doJSON(t, h, http.MethodPost, "/api/emails", body, nil)
		if rr.Code != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want 400", body, rr.Code)
		}
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("store was touched for invalid input: %v", err)
	}
}

func TestGetSection(t *testing.T) {
	h, mock := newTestRouter(t)

	stamp := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(sectionQ)).
		WithArgs("our_business", "en").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "section_key", "locale", "is_enabled", "created_at", "updated_at",
		}).AddRow(5, "our_business", "en", true, stamp, stamp))
	mock.ExpectQuery(regexp.QuoteMeta(itemsQ)).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "section_id", "image_url", "alt_text", "link_url",
			"is_hidden", "sort_order", "created_at", "updated_at",
		}).AddRow(10, 5, "https://cdn.example.com/a.jpg", "alt", nil, false, 1, stamp, stamp))

	rr := doJSON(t, h, http.MethodGet, "/api/content/en/our_business", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (%s)", rr.Code, rr.Body.String())
	}

	var view struct {
		Locale string `json:"locale"`
		Key    string `json:"section_key"`
		Images []map[string]any
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if view.Locale != "en" || view.Key != "our_business" || len(view.Images) != 1 {
		t.Fatalf("unexpected view: %s", rr.Body.String())
	}

	// Internal flags must not leak into the wire shape.
	for _, forbidden := range []string{"is_hidden", "is_enabled", "created_at", "updated_at"} {
		if _, ok := view.Images[0][forbidden]; ok {
			t.Errorf("field %q leaked into image view", forbidden)
		}
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestGetSectionNotFound(t *testing.T) {
	h, mock := newTestRouter(t)

	mock.ExpectQuery(regexp.QuoteMeta(sectionQ)).
		WithArgs("ghost", "en").
		WillReturnError(errNoRows())

	rr := doJSON(t, h, http.MethodGet, "/api/content/en/ghost", "", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
}

func TestAdminEmails(t *testing.T) {
	h, mock := newTestRouter(t)

	// No credentials → 401 plus challenge, no query issued.
	rr := doJSON(t, h, http.MethodGet, "/api/admin/emails", "", nil)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("no creds: status = %d, want 401", rr.Code)
	}
	if rr.Header().Get("WWW-Authenticate") == "" {
		t.Fatalf("no creds: missing WWW-Authenticate challenge")
	}

	// Insert emails A (t=1), B (t=2), C (t=3); limit=2 returns [C, B].
	t3 := time.Date(2025, 6, 1, 0, 0, 3, 0, time.UTC)
	t2 := time.Date(2025, 6, 1, 0, 0, 2, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(listEmailQ)).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name", "message", "created_at"}).
			AddRow(3, "c@example.com", "", "", t3).
			AddRow(2, "b@example.com", "", "", t2))

	rr = doJSON(t, h, http.MethodGet, "/api/admin/emails?limit=2", "",
		func(r *http.Request) { r.SetBasicAuth("admin", "change-me") })
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (%s)", rr.Code, rr.Body.String())
	}

	var rows []map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &rows); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rows) != 2 || rows[0]["email"] != "c@example.com" || rows[1]["email"] != "b@example.com" {
		t.Fatalf("want [C, B], got %s", rr.Body.String())
	}

	// Optional fields surface as empty strings, never null.
	if rows[0]["name"] != "" || rows[0]["message"] != "" {
		t.Fatalf("optional fields not empty strings: %v", rows[0])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestCORSPreflight(t *testing.T) {
	h, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/emails", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Fatalf("allow-origin = %q, want the configured origin", got)
	}

	// Unlisted origins get nothing back.
	req = httptest.NewRequest(http.MethodOptions, "/api/emails", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("allow-origin leaked to unlisted origin: %q", got)
	}
}

func errNoRows() error { return sql.ErrNoRows }
