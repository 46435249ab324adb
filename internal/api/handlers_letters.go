package api

import (
	"net/http"
	"strconv"

	"github.com/ignite/letterdesk/internal/auth"
	"github.com/ignite/letterdesk/internal/domain"
	"github.com/ignite/letterdesk/internal/genai"
	"github.com/ignite/letterdesk/internal/pkg/httputil"
	"github.com/ignite/letterdesk/internal/prompt"
	"github.com/ignite/letterdesk/internal/service/letter"
)

// Handlers holds the API handler dependencies.
type Handlers struct {
	letters *letter.Service
	prompts *prompt.Builder
	gen     genai.Client
}

// NewHandlers creates the handler set.
func NewHandlers(letters *letter.Service, prompts *prompt.Builder, gen genai.Client) *Handlers {
	return &Handlers{letters: letters, prompts: prompts, gen: gen}
}

// letterID parses the required id query parameter. Writes an INVALID_ID
// response and returns false when missing or non-numeric.
func letterID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := r.URL.Query().Get("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "INVALID_ID", "Valid ID is required")
		return 0, false
	}
	return id, true
}

// CreateLetter persists a new letter owned by the caller.
//
//	POST /api/letters
func (h *Handlers) CreateLetter(w http.ResponseWriter, r *http.Request) {
	var payload map[string]any
	if !httputil.Decode(w, r, &payload) {
		return
	}

	l, err := h.letters.Create(r.Context(), auth.UserID(r), payload)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	httputil.Created(w, l)
}

// GetLetters returns a single letter when ?id= is present, otherwise the
// caller's letters with pagination and search.
//
//	GET /api/letters
//	GET /api/letters?id=7
//	GET /api/letters?limit=10&offset=0&search=jane
func (h *Handlers) GetLetters(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if q.Get("id") != "" {
		id, ok := letterID(w, r)
		if !ok {
			return
		}
		l, err := h.letters.Get(r.Context(), auth.UserID(r), id)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		httputil.OK(w, l)
		return
	}

	f := letter.ListFilter{Search: q.Get("search")}
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			httputil.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid limit parameter")
			return
		}
		f.Limit = n
	}
	if raw := q.Get("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			httputil.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid offset parameter")
			return
		}
		f.Offset = n
	}

	ls, err := h.letters.List(r.Context(), auth.UserID(r), f)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if ls == nil {
		ls = []domain.Letter{}
	}
	httputil.OK(w, ls)
}

// UpdateLetter applies a partial update to an owned letter and returns the
// updated record.
//
//	PUT /api/letters?id=7
func (h *Handlers) UpdateLetter(w http.ResponseWriter, r *http.Request) {
	id, ok := letterID(w, r)
	if !ok {
		return
	}

	var payload map[string]any
	if !httputil.Decode(w, r, &payload) {
		return
	}

	l, err := h.letters.Update(r.Context(), auth.UserID(r), id, payload)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	httputil.OK(w, l)
}

// DeleteLetter removes an owned letter.
//
//	DELETE /api/letters?id=7
func (h *Handlers) DeleteLetter(w http.ResponseWriter, r *http.Request) {
	id, ok := letterID(w, r)
	if !ok {
		return
	}

	if err := h.letters.Delete(r.Context(), auth.UserID(r), id); err != nil {
		respondServiceError(w, err)
		return
	}
	httputil.OK(w, map[string]any{
		"message": "Letter deleted successfully",
		"id":      id,
	})
}
