package api

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/ignite/letterdesk/internal/auth"
	"github.com/ignite/letterdesk/internal/export"
	"github.com/ignite/letterdesk/internal/pkg/httputil"
)

const exportFilename = "letter_of_recommendation"

// ExportLetter streams an owned letter's content as a PDF or DOCX download.
// A letter with no content yet cannot be exported.
//
//	GET /api/letters/export?id=7&format=pdf
func (h *Handlers) ExportLetter(w http.ResponseWriter, r *http.Request) {
	id, ok := letterID(w, r)
	if !ok {
		return
	}

	format := r.URL.Query().Get("format")
	if format != "pdf" && format != "docx" {
		httputil.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "format must be pdf or docx")
		return
	}

	l, err := h.letters.Get(r.Context(), auth.UserID(r), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if l.Content == nil || *l.Content == "" {
		httputil.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "letter has no content to export")
		return
	}

	// Render into memory first so a mid-render failure can still produce a
	// clean error response.
	var buf bytes.Buffer
	var contentType string
	switch format {
	case "pdf":
		contentType = "application/pdf"
		err = export.WritePDF(&buf, *l.Content)
	case "docx":
		contentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
		err = export.WriteDOCX(&buf, *l.Content)
	}
	if err != nil {
		respondInternalError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.%s", exportFilename, format))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", buf.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
