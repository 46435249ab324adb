package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ignite/letterdesk/internal/genai"
	"github.com/ignite/letterdesk/internal/pkg/httputil"
	"github.com/ignite/letterdesk/internal/pkg/logger"
	"github.com/ignite/letterdesk/internal/service/letter"
)

// respondServiceError translates service and provider errors into the API
// error envelope. Anything unrecognized becomes a sanitized 500.
func respondServiceError(w http.ResponseWriter, err error) {
	var verr *letter.ValidationError
	var uerr *genai.UpstreamError

	switch {
	case errors.Is(err, letter.ErrUnauthorized):
		httputil.Error(w, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized")

	case errors.Is(err, letter.ErrUserIDNotAllowed):
		httputil.Error(w, http.StatusBadRequest, "USER_ID_NOT_ALLOWED", "User ID cannot be provided in request body")

	case errors.As(err, &verr):
		httputil.ErrorDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", verr.Error(), verr.Fields)

	case errors.Is(err, letter.ErrNotFound):
		httputil.Error(w, http.StatusNotFound, "NOT_FOUND", "Letter not found")

	case errors.Is(err, genai.ErrAPIKeyMissing):
		httputil.Error(w, http.StatusInternalServerError, "API_KEY_MISSING", "Generation API key not configured")

	case errors.As(err, &uerr):
		logger.Error("generation upstream error", "status", uerr.Status)
		httputil.ErrorDetails(w, http.StatusBadGateway, "GENERATION_ERROR", "Failed to generate letter", uerr.Payload)

	default:
		respondInternalError(w, err)
	}
}

// respondInternalError logs the full error and sends a sanitized 500.
// Internal details (SQL, file paths, hostnames) never reach the client.
func respondInternalError(w http.ResponseWriter, err error) {
	logger.Error("internal error", "error", err.Error())
	httputil.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", safeErrorMessage(err))
}

// safeErrorMessage maps common internal error patterns to public-safe
// messages for 5xx responses.
func safeErrorMessage(err error) string {
	if err == nil {
		return "An internal error occurred"
	}

	errStr := strings.ToLower(err.Error())

	switch {
	case strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "dial tcp"):
		return "Service temporarily unavailable"

	case strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "deadline exceeded") ||
		strings.Contains(errStr, "context canceled"):
		return "Request timed out"

	case strings.Contains(errStr, "sql") ||
		strings.Contains(errStr, "pq:") ||
		strings.Contains(errStr, "query") ||
		strings.Contains(errStr, "scan") ||
		strings.Contains(errStr, "transaction") ||
		strings.Contains(errStr, "database"):
		return "A database error occurred"

	case strings.Contains(errStr, "json") ||
		strings.Contains(errStr, "unmarshal") ||
		strings.Contains(errStr, "marshal") ||
		strings.Contains(errStr, "decode") ||
		strings.Contains(errStr, "parse"):
		return "Invalid request format"

	default:
		return "An internal error occurred"
	}
}
