// internal/signup/store.go
//
// Small query helpers for the email_record table.
//
// Context
// -------
// The signup service needs three primitives:
//
//  1. Look up a record by normalized email.   → `recordByEmail()`
//  2. Insert a new record inside a tx.        → `insertRecord()`
//  3. List recent records for the admin page. → `recentRecords()`
//
// These helpers accept sqlx handles and perform simple parameterised
// queries.  They are thin; errors come back verbatim so the service layer
// can classify them (duplicate key vs. everything else).
//
// Notes
// -----
// • Column list matches the fields in `Record`; update both together.
// • Oxford commas, two spaces after periods.
// • Max line length 100 columns.
package signup

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// recordByEmail fetches the record for one normalized email, or
// sql.ErrNoRows when the address has never been captured.
func recordByEmail(ctx context.Context, q sqlx.QueryerContext, email string) (*Record, error) {
	const query = `SELECT id, email, name, message, created_at
                     FROM email_record
                    WHERE email = ?
                    LIMIT 1`

	var rec Record
	if err := sqlx.GetContext(ctx, q, &rec, query, email); err != nil {
		return nil, err
	}
	return &rec, nil
}

// insertRecord writes rec inside the supplied transaction and fills in the
// generated surrogate key on success.
func insertRecord(ctx context.Context, tx *sqlx.Tx, rec *Record) error {
	const query = `INSERT INTO email_record (email, name, message, created_at)
                   VALUES (?, ?, ?, ?)`

	res, err := tx.ExecContext(ctx, query, rec.Email, rec.Name, rec.Message, rec.CreatedAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rec.ID = id
	return nil
}

// recentRecords returns up to limit records, most recent capture first.
// Ties on created_at fall back to id so the order is total.
func recentRecords(ctx context.Context, q sqlx.QueryerContext, limit int) ([]Record, error) {
	const query = `SELECT id, email, name, message, created_at
                     FROM email_record
                    ORDER BY created_at DESC, id DESC
                    LIMIT ?`

	rows := make([]Record, 0, limit)
	if err := sqlx.SelectContext(ctx, q, &rows, query, limit); err != nil {
		return nil, err
	}
	return rows, nil
}
