package content

import (
	"database/sql"
	"time"
)

// Section mirrors one row in the `image_section` table.  A section is a
// locale-scoped content slot identified by its key, e.g. ("our_business",
// "en").  The (section_key, locale) pair is unique.  Disabled sections are
// filtered at SQL level, so readers never see them.
type Section struct {
	ID        int64     `db:"id"`
	Key       string    `db:"section_key"`
	Locale    string    `db:"locale"`
	IsEnabled bool      `db:"is_enabled"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Item mirrors one row in the `image_item` table.  Items exist only under
// a parent section; deleting the section cascades to them.
type Item struct {
	ID        int64          `db:"id"`
	SectionID int64          `db:"section_id"`
	ImageURL  string         `db:"image_url"`
	AltText   sql.NullString `db:"alt_text"`
	LinkURL   sql.NullString `db:"link_url"`
	IsHidden  bool           `db:"is_hidden"`
	SortOrder int            `db:"sort_order"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

// SectionView is the caller-facing projection.  Internal flags (is_hidden,
// is_enabled) and timestamps stay out of the wire shape.
type SectionView struct {
	Locale string      `json:"locale"`
	Key    string      `json:"section_key"`
	Images []ImageView `json:"images"`
}

// ImageView is one ordered image within a SectionView.
type ImageView struct {
	ID        int64  `json:"id"`
	ImageURL  string `json:"image_url"`
	AltText   string `json:"alt_text"`
	LinkURL   string `json:"link_url"`
	SortOrder int    `json:"sort_order"`
}
