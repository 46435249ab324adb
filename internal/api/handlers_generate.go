package api

import (
	"net/http"

	"github.com/ignite/letterdesk/internal/auth"
	"github.com/ignite/letterdesk/internal/pkg/httputil"
	"github.com/ignite/letterdesk/internal/pkg/logger"
	"github.com/ignite/letterdesk/internal/service/letter"
)

// GenerateLetter validates the submitted form fields, renders the prompt and
// returns the drafted letter text. Nothing is persisted; the client decides
// whether to save the draft.
//
//	POST /api/generate
func (h *Handlers) GenerateLetter(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r)
	if userID == "" {
		httputil.Error(w, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized")
		return
	}

	var payload map[string]any
	if !httputil.Decode(w, r, &payload) {
		return
	}

	fields, err := letter.ValidateCreate(payload)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	p, err := h.prompts.Build(fields)
	if err != nil {
		respondInternalError(w, err)
		return
	}

	content, err := h.gen.GenerateLetter(r.Context(), p)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	logger.Info("letter generated", "user_id", userID, "applicant", fields.ApplicantName, "chars", len(content))
	httputil.OK(w, map[string]string{"content": content})
}
