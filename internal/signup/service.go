// internal/signup/service.go
//
// Idempotent email intake and admin listing.
//
/*
Context
--------
`Submit` implements first-write-wins capture: the first submission of an
address stores name and message; every later submission of the same
normalized address returns the original row untouched.  Deliberately not
an upsert—re-submitting with a different name must not rewrite history.

The duplicate race is handled at the constraint, not the check.  Two
concurrent submissions can both pass the existence lookup; the loser's
INSERT then fails on `uq_email_record_email` (MySQL error 1062), is rolled
back, and is resolved by a compensating re-read of the winning row.  The
caller can never tell it lost the race, which is the point: a public
signup form must not leak whether an address was already captured.

`Recent` backs the basic-auth admin page: newest captures first, limit-only
pagination.

Notes
-----
  • Email is lowercased and trimmed before any store access; name and
    message are trimmed.
  • Length caps mirror the column sizes so the driver never truncates.
  • Oxford commas, two spaces after periods.
*/
package signup

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/yanizio/showcase/internal/metrics"
)

// Sentinel errors.  The HTTP layer maps these with errors.Is; anything
// else is a storage failure.
var (
	ErrInvalidEmail = errors.New("signup: invalid email address")
	ErrInputTooLong = errors.New("signup: field exceeds stored length")
)

// Column limits from the email_record schema.
const (
	maxEmailLen   = 320
	maxNameLen    = 100
	maxMessageLen = 1000
)

// Listing bounds.
const (
	DefaultListLimit = 200
	maxListLimit     = 1000
)

const mysqlErrDupEntry = 1062

// Service owns the email intake and listing logic.  Safe for concurrent
// use; all state lives in the store.
type Service struct {
	db       *sqlx.DB
	validate *validator.Validate
	now      func() time.Time // swap in tests
}

// NewService wires a Service to the shared pool.
func NewService(db *sqlx.DB) *Service {
	return &Service{
		db:       db,
		validate: validator.New(),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Submit normalizes and validates the input, then stores a record unless
// the address is already captured.  The bool reports whether a new row was
// created; on an idempotent duplicate it is false and the original record
// comes back verbatim.
func (s *Service) Submit(ctx context.Context, email, name, message string) (*Record, bool, error) {
	email = normalizeEmail(email)
	name = strings.TrimSpace(name)
	message = strings.TrimSpace(message)

	if err := s.validate.Var(email, "required,email"); err != nil || len(email) > maxEmailLen {
		return nil, false, ErrInvalidEmail
	}
	if len(name) > maxNameLen || len(message) > maxMessageLen {
		return nil, false, ErrInputTooLong
	}

	// Fast path: address already captured.
	existing, err := recordByEmail(ctx, s.db, email)
	switch {
	case err == nil:
		metrics.SignupDuplicateTotal.Inc()
		return existing, false, nil
	case !errors.Is(err, sql.ErrNoRows):
		return nil, false, err
	}

	rec := &Record{
		Email:     email,
		Name:      name,
		Message:   message,
		CreatedAt: s.now(),
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, false, err
	}

	if err := insertRecord(ctx, tx, rec); err != nil {
		_ = tx.Rollback()

		if !isDupEntry(err) {
			return nil, false, err
		}

		// Lost the insert race; the winning row exists now.  Resolve to
		// it instead of surfacing the constraint violation.
		metrics.SignupRaceTotal.Inc()
		winner, rerr := recordByEmail(ctx, s.db, email)
		if rerr != nil {
			return nil, false, rerr
		}
		zap.S().Infow("signup race recovered", "email", email, "id", winner.ID)
		return winner, false, nil
	}

	if err := tx.Commit(); err != nil {
		return nil, false, err
	}

	metrics.SignupTotal.Inc()
	zap.S().Infow("signup stored", "email", rec.Email, "id", rec.ID)
	return rec, true, nil
}

// Recent returns the newest records for the admin listing.  A zero or
// negative limit falls back to DefaultListLimit; the cap keeps one request
// from dragging the whole table over the wire.
func (s *Service) Recent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return recentRecords(ctx, s.db, limit)
}

/*──────────────────────────── helpers ─────────────────────────────────────*/

func normalizeEmail(e string) string {
	return strings.ToLower(strings.TrimSpace(e))
}

func isDupEntry(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlErrDupEntry
}
