package signup

import "time"

// Record mirrors one row in the persistent `email_record` table.  Name and
// Message are stored as empty strings rather than NULLs so the admin
// listing keeps a stable output shape.  A record is written once on first
// intake of a given email and never mutated afterwards.
type Record struct {
	ID        int64     `db:"id"         json:"id"`
	Email     string    `db:"email"      json:"email"`
	Name      string    `db:"name"       json:"name"`
	Message   string    `db:"message"    json:"message"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
