// internal/content/service.go
//
// Locale/key-scoped gallery resolution.
//
/*
Context
--------
`Section` turns a (locale, sectionKey) pair into an ordered, filtered view
of gallery images.  The section lookup and the item fetch are two separate
store reads; a section toggled off between them simply yields an empty
gallery for that one response.  Accepted race—content administration
happens out of band and the next request sees the new state.

Concurrent identical lookups are collapsed through a singleflight.Group so
a traffic spike on the home page costs one pair of queries instead of
hundreds.  Results are not cached beyond the in-flight window; the data
set is small and the store is authoritative.

Notes
-----
  • ErrNotFound covers both "no such section" and "section disabled".
    The flattening is deliberate (see store.go).
  • The collapsed load runs on a detached context.  A canceled leader
    request must not poison the result handed to its followers.
  • Oxford commas, two spaces after periods.
*/
package content

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"golang.org/x/sync/singleflight"

	"github.com/yanizio/showcase/internal/metrics"
)

// ErrNotFound is returned for absent and disabled sections alike.
var ErrNotFound = errors.New("content: section not found")

// Service resolves section views.  Safe for concurrent use.
type Service struct {
	db  *sqlx.DB
	sfg singleflight.Group
}

// NewService wires a Service to the shared pool.
func NewService(db *sqlx.DB) *Service {
	return &Service{db: db}
}

// Section returns the ordered gallery for one (locale, sectionKey) slot.
// Hidden items are excluded unless includeHidden is set.
func (s *Service) Section(ctx context.Context, locale, key string, includeHidden bool) (*SectionView, error) {
	locale = strings.ToLower(strings.TrimSpace(locale))
	key = strings.TrimSpace(key)

	metrics.ContentQueryTotal.Inc()

	sfKey := fmt.Sprintf("%s|%s|%t", locale, key, includeHidden)
	v, err, _ := s.sfg.Do(sfKey, func() (any, error) {
		// The flight serves every collapsed caller, so it must not die
		// with whichever request happened to lead it.
		return s.load(context.Background(), locale, key, includeHidden)
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			metrics.ContentNotFoundTotal.Inc()
		}
		return nil, err
	}
	return v.(*SectionView), nil
}

// load performs the two store reads and builds the view.
func (s *Service) load(ctx context.Context, locale, key string, includeHidden bool) (*SectionView, error) {
	sec, err := sectionByKeyLocale(ctx, s.db, key, locale)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	items, err := itemsBySection(ctx, s.db, sec.ID, includeHidden)
	if err != nil {
		return nil, err
	}

	view := &SectionView{
		Locale: sec.Locale,
		Key:    sec.Key,
		Images: make([]ImageView, 0, len(items)),
	}
	for _, it := range items {
		view.Images = append(view.Images, ImageView{
			ID:        it.ID,
			ImageURL:  it.ImageURL,
			AltText:   it.AltText.String,
			LinkURL:   it.LinkURL.String,
			SortOrder: it.SortOrder,
		})
	}
	return view, nil
}
