// internal/database/schema.go
//
// Embedded schema for the three Showcase tables.
//
// Context
// -------
// The dataset is small enough that a migration tool would be overkill;
// `EnsureSchema` runs idempotent CREATE TABLE IF NOT EXISTS statements at
// boot, mirroring how the tables were first provisioned.  Any storage
// engine substitution must preserve the two uniqueness constraints (email;
// (section_key, locale)) and the delete-cascade foreign key—callers rely
// on all three.
//
// Notes
// -----
//   • The section key column is `section_key` because KEY is reserved in
//     MySQL.
//   • DATETIME(6) keeps microsecond capture order for the admin listing.
package database

import (
	"context"

	"github.com/jmoiron/sqlx"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS email_record (
	    id          BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
	    email       VARCHAR(320)  NOT NULL,
	    name        VARCHAR(100)  NOT NULL DEFAULT '',
	    message     VARCHAR(1000) NOT NULL DEFAULT '',
	    created_at  DATETIME(6)   NOT NULL,
	    PRIMARY KEY (id),
	    UNIQUE KEY uq_email_record_email (email)
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS image_section (
	    id           BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
	    section_key  VARCHAR(64) NOT NULL,
	    locale       CHAR(2)     NOT NULL,
	    is_enabled   TINYINT(1)  NOT NULL DEFAULT 1,
	    created_at   DATETIME(6) NOT NULL,
	    updated_at   DATETIME(6) NOT NULL,
	    PRIMARY KEY (id),
	    UNIQUE KEY uq_image_section_key_locale (section_key, locale)
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS image_item (
	    id          BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
	    section_id  BIGINT UNSIGNED NOT NULL,
	    image_url   VARCHAR(1000) NOT NULL,
	    alt_text    VARCHAR(255)  NULL,
	    link_url    VARCHAR(1000) NULL,
	    is_hidden   TINYINT(1)    NOT NULL DEFAULT 0,
	    sort_order  INT           NOT NULL DEFAULT 0,
	    created_at  DATETIME(6)   NOT NULL,
	    updated_at  DATETIME(6)   NOT NULL,
	    PRIMARY KEY (id),
	    KEY idx_image_item_section_sort (section_id, sort_order),
	    CONSTRAINT fk_image_item_section FOREIGN KEY (section_id)
	        REFERENCES image_section (id) ON DELETE CASCADE
	) ENGINE=InnoDB`,
}

// EnsureSchema creates the Showcase tables when absent.  Statements run
// one at a time; the MySQL driver rejects multi-statement Exec by default.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
