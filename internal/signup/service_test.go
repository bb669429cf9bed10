// internal/signup/service_test.go
//
// Unit-tests for the intake service using sqlmock.
//
// Run: go test ./internal/signup -v

package signup

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

const (
	selectQ = `SELECT id, email, name, message, created_at FROM email_record WHERE email = ? LIMIT 1`
	insertQ = `INSERT INTO email_record (email, name, message, created_at) VALUES (?, ?, ?, ?)`
	listQ   = `SELECT id, email, name, message, created_at FROM email_record ORDER BY created_at DESC, id DESC LIMIT ?`
)

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	s := NewService(sqlx.NewDb(db, "mysql"))
	s.now = func() time.Time { return fixedNow }
	return s, mock
}

func recordRow(id int64, email, name, message string, at time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "email", "name", "message", "created_at"}).
		AddRow(id, email, name, message, at)
}

func TestSubmitNew(t *testing.T) {
	s, mock := newTestService(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectQ)).
		WithArgs("ada@example.com").
		WillReturnError(errNoRows())

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(insertQ)).
		WithArgs("ada@example.com", "Ada", "hello", fixedNow).
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectCommit()

	rec, created, err := s.Submit(context.Background(), "ada@example.com", "Ada", "hello")
	if err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	if !created {
		t.Fatalf("expected created = true")
	}
	if rec.ID != 7 || rec.Email != "ada@example.com" || rec.CreatedAt != fixedNow {
		t.Fatalf("unexpected record: %#v", rec)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

// Email is lowercased and trimmed before any store access; name and
// message are trimmed.
func TestSubmitNormalization(t *testing.T) {
	s, mock := newTestService(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectQ)).
		WithArgs("foo@bar.com").
		WillReturnError(errNoRows())

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(insertQ)).
		WithArgs("foo@bar.com", "Foo", "", fixedNow).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	rec, _, err := s.Submit(context.Background(), "  Foo@Bar.COM ", " Foo ", "  ")
	if err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	if rec.Email != "foo@bar.com" {
		t.Fatalf("email not normalized: %q", rec.Email)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

/// First write wins: a second submission returns the original row verbatim,
// ignoring the new name and message.
func TestSubmitIdempotentDuplicate(t *testing.T) {
	s, mock := newTestService(t)

	orig := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(selectQ)).
		WithArgs("ada@example.com").
		WillReturnRows(recordRow(3, "ada@example.com", "Ada", "first message", orig))

	rec, created, err := s.Submit(context.Background(), "ada@example.com", "Different Name", "new message")
	if err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	if created {
		t.Fatalf("expected created = false on duplicate")
	}
	if rec.ID != 3 || rec.Name != "Ada" || rec.Message != "first message" || rec.CreatedAt != orig {
		t.Fatalf("duplicate did not return original row: %#v", rec)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

// Two intakes race past the existence check; the loser's INSERT trips the
// unique constraint and must resolve to the winner's row, not an error.
func TestSubmitRaceRecovered(t *testing.T) {
	s, mock := newTestService(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectQ)).
		WithArgs("ada@example.com").
		WillReturnError(errNoRows())

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(insertQ)).
		WithArgs("ada@example.com", "", "", fixedNow).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
	mock.ExpectRollback()

	mock.ExpectQuery(regexp.QuoteMeta(selectQ)).
		WithArgs("ada@example.com").
		WillReturnRows(recordRow(9, "ada@example.com", "Winner", "", fixedNow))

	rec, created, err := s.Submit(context.Background(), "ada@example.com", "", "")
	if err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	if created {
		t.Fatalf("expected created = false after race recovery")
	}
	if rec.ID != 9 || rec.Name != "Winner" {
		t.Fatalf("expected winning row, got: %#v", rec)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

// Malformed input fails before any store access.
func TestSubmitInvalidEmail(t *testing.T) {
	s, mock := newTestService(t)

	for _, bad := range []string{"", "not-an-email", "missing@tld@twice", "spaces in@addr.com"} {
		if _, _, err := s.Submit(context.Background(), bad, "", ""); !errors.Is(err, ErrInvalidEmail) {
			t.Errorf("Submit(%q): want ErrInvalidEmail, got %v", bad, err)
		}
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("store was touched for invalid input: %v", err)
	}
}

func TestRecentLimitDefaults(t *testing.T) {
	s, mock := newTestService(t)

	// Zero limit falls back to the default.
	mock.ExpectQuery(regexp.QuoteMeta(listQ)).
		WithArgs(DefaultListLimit).
		WillReturnRows(recordRow(1, "a@example.com", "", "", fixedNow))

	if _, err := s.Recent(context.Background(), 0); err != nil {
		t.Fatalf("Recent error: %v", err)
	}

	// Explicit limit passes through.
	mock.ExpectQuery(regexp.QuoteMeta(listQ)).
		WithArgs(2).
		WillReturnRows(recordRow(2, "b@example.com", "", "", fixedNow))

	if _, err := s.Recent(context.Background(), 2); err != nil {
		t.Fatalf("Recent error: %v", err)
	}

	// Oversized limit is clamped to the ceiling.
	mock.ExpectQuery(regexp.QuoteMeta(listQ)).
		WithArgs(maxListLimit).
		WillReturnRows(recordRow(3, "c@example.com", "", "", fixedNow))

	if _, err := s.Recent(context.Background(), 5000); err != nil {
		t.Fatalf("Recent error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func errNoRows() error { return sql.ErrNoRows }
