// Package database centralises sqlx connection helpers.  The default driver
// is go-sql-driver/mysql, which also works with MariaDB and Cockroach when
// configured for the MySQL wire protocol.
//
// Public entry points:
//
//	Open(ctx, dsn)                    – helper with conservative pool sizes.
//	OpenWithOptions(ctx, dsn, opts)   – fine-grained control plus retries.
//	BuildDSN(template, password)      – fills the single %s password verb.
//
// Both open helpers Ping the database before returning so callers can fail
// fast during bootstrap.  Callers should Close() the returned *sqlx.DB when
// no longer needed.
package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

// Options tunes the connection pool and bootstrap retry behaviour.
type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	Retries         int           // extra attempts after the first failure
	RetryBackoff    time.Duration // pause between attempts
}

// defaults returns sane pool settings: 15 max open, 5 idle, 30-minute
// connection lifetime, and two quick retries to ride out container races.
func defaults() Options {
	return Options{
		MaxOpenConns:    15,
		MaxIdleConns:    5,
		ConnMaxLifetime: 30 * time.Minute,
		Retries:         2,
		RetryBackoff:    500 * time.Millisecond,
	}
}

// Open returns a *sqlx.DB with the default Options.  Suitable for the
// process-wide pool or for test setups.
func Open(ctx context.Context, dsn string) (*sqlx.DB, error) {
	return OpenWithOptions(ctx, dsn, defaults())
}

// OpenWithOptions lets callers tune the pool per connection.  The DSN is
// never included in returned errors; it carries the password.
func OpenWithOptions(ctx context.Context, dsn string, opts Options) (*sqlx.DB, error) {
	var lastErr error
	for attempt := 0; attempt <= opts.Retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(opts.RetryBackoff):
			}
		}

		db, err := sqlx.Open("mysql", dsn)
		if err != nil {
			lastErr = err
			continue
		}

		db.SetMaxOpenConns(opts.MaxOpenConns)
		db.SetMaxIdleConns(opts.MaxIdleConns)
		db.SetConnMaxLifetime(opts.ConnMaxLifetime)

		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			lastErr = err
			continue
		}
		return db, nil
	}
	return nil, fmt.Errorf("database open (after %d attempts): %w", opts.Retries+1, lastErr)
}

// BuildDSN substitutes password into the single %s verb of template.  The
// count check catches the classic misconfiguration where the verb was lost
// during an edit and the literal template would be sent to the server.
func BuildDSN(template, password string) (string, error) {
	if strings.Count(template, "%s") != 1 {
		return "", fmt.Errorf("dsn template must contain exactly one %%s verb")
	}
	return fmt.Sprintf(template, password), nil
}
