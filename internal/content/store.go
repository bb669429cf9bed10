// internal/content/store.go
//
// Image-section query helpers.
//
// Context
// -------
// Two read-only primitives back the content endpoint:
//
//   - `sectionByKeyLocale` — resolve the unique (section_key, locale) slot.
//   - `itemsBySection`     — ordered images for one section.
//
// Disabled sections are excluded at SQL level so a disabled slot is
// indistinguishable from one that never existed—callers cannot probe
// configuration state through the public API.
//
// Notes
// -----
//   - The ORDER BY carries an id tiebreak.  Without it, items sharing a
//     sort_order come back in whatever order the engine feels like, and
//     the gallery reshuffles between calls.
//   - Column list matches the fields in `Section` / `Item`; update both
//     together.
//   - Oxford commas, two spaces after periods, no m-dash.
package content

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// sectionByKeyLocale fetches a single enabled section, or sql.ErrNoRows
// when the slot is absent or disabled.
func sectionByKeyLocale(ctx context.Context, q sqlx.QueryerContext, key, locale string) (*Section, error) {
	const query = `
        SELECT id, section_key, locale, is_enabled, created_at, updated_at
        FROM   image_section
        WHERE  section_key = ?
          AND  locale      = ?
          AND  is_enabled  = TRUE
        LIMIT  1`

	var sec Section
	if err := sqlx.GetContext(ctx, q, &sec, query, key, locale); err != nil {
		return nil, err
	}
	return &sec, nil
}

// itemsBySection returns the section's images in display order:
// sort_order ascending, then id ascending.  Hidden items are filtered
// unless includeHidden is set.
func itemsBySection(ctx context.Context, q sqlx.QueryerContext, sectionID int64, includeHidden bool) ([]Item, error) {
	query := `
        SELECT id, section_id, image_url, alt_text, link_url,
               is_hidden, sort_order, created_at, updated_at
        FROM   image_item
        WHERE  section_id = ?`
	if !includeHidden {
		query += `
          AND  is_hidden = FALSE`
	}
	query += `
        ORDER BY sort_order ASC, id ASC`

	var items []Item
	if err := sqlx.SelectContext(ctx, q, &items, query, sectionID); err != nil {
		return nil, err
	}
	return items, nil
}
