// internal/web/handlers.go
//
// HTTP handlers for the public and admin JSON endpoints.
//
/*
Context
--------
Thin translation layer: decode, call the service, map the error taxonomy
onto status codes.

  • signup.ErrInvalidEmail, ErrInputTooLong → 400
  • content.ErrNotFound                     → 404
  • anything else                           → storage failure

A storage failure during intake answers 400 with a generic body, matching
the public contract; storage failures on the read paths answer 500.  The
intake response shape is identical for a fresh insert and an idempotent
duplicate—only the status (201 vs. 200) differs—so the endpoint does not
confirm whether an address was already known.

Notes
-----
  • Request bodies are capped at 64 KiB; the largest legal payload is
    under 2 KiB.
  • Oxford commas, two spaces after periods.
*/
package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/yanizio/showcase/internal/content"
	"github.com/yanizio/showcase/internal/requestinfo"
	"github.com/yanizio/showcase/internal/signup"
)

const maxBodyBytes = 64 << 10

// Handlers bundles the services the routes need.
type Handlers struct {
	Signups *signup.Service
	Content *content.Service
}

/*──────────────────────────── POST /api/emails ─────────────────────────────*/

type emailPayload struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

// HandleCreateEmail captures one visitor sign-up.  201 on first insert,
// 200 when the address was already captured (same body either way).
func (h *Handlers) HandleCreateEmail(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var in emailPayload
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, created, err := h.Signups.Submit(r.Context(), in.Email, in.Name, in.Message)
	switch {
	case errors.Is(err, signup.ErrInvalidEmail):
		respondError(w, http.StatusBadRequest, "invalid email address")
		return
	case errors.Is(err, signup.ErrInputTooLong):
		respondError(w, http.StatusBadRequest, "field too long")
		return
	case err != nil:
		zap.S().Errorw("signup store failed", "err", err)
		respondError(w, http.StatusBadRequest, "could not save email")
		return
	}

	// Marketing analytics: where the signup came from and on what.
	if info := requestinfo.FromContext(r.Context()); info != nil {
		zap.S().Infow("signup source",
			"country", info.Geo.CountryISO,
			"device", info.UA.Device,
			"browser", info.UA.Browser,
			"lang", info.UA.PrimaryLang,
			"bot", info.UA.IsBot,
		)
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	respondJSON(w, status, rec)
}

/*───────────────── GET /api/content/{locale}/{sectionKey} ──────────────────*/

// HandleSection serves one ordered, filtered gallery.  Absent and disabled
// sections both answer 404.
func (h *Handlers) HandleSection(w http.ResponseWriter, r *http.Request) {
	locale := chi.URLParam(r, "locale")
	key := chi.URLParam(r, "sectionKey")
	includeHidden, _ := strconv.ParseBool(r.URL.Query().Get("include_hidden"))

	view, err := h.Content.Section(r.Context(), locale, key, includeHidden)
	switch {
	case errors.Is(err, content.ErrNotFound):
		respondError(w, http.StatusNotFound, "section not found")
		return
	case err != nil:
		zap.S().Errorw("section query failed", "locale", locale, "key", key, "err", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	respondJSON(w, http.StatusOK, view)
}

/*──────────────────────── GET /api/admin/emails ────────────────────────────*/

// HandleAdminEmails lists captured sign-ups, newest first.  Reached only
// through the basic-auth gate.
func (h *Handlers) HandleAdminEmails(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	rows, err := h.Signups.Recent(r.Context(), limit)
	if err != nil {
		zap.S().Errorw("admin listing failed", "err", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	respondJSON(w, http.StatusOK, rows)
}

/*──────────────────────────── GET /health ──────────────────────────────────*/

// HandleHealth is a liveness probe.  No store access on purpose—a dead
// database should not fail the container.
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
