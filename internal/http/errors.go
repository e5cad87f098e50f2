package http

import (
	"errors"
	"log/slog"
	"net/http"

	"bookshelf/internal/httpx"
	"bookshelf/internal/repository"
)

const internalErrorMessage = "An internal error occurred"

// writeError maps a repository or lending error onto the response envelope.
// Unclassified errors are logged and hidden behind a generic message.
func writeError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, repository.ErrInvalidQuery):
		httpx.WriteError(w, r, http.StatusBadRequest, httpx.CodeBadRequest, err.Error(), nil)
	case errors.Is(err, repository.ErrNotFound):
		httpx.WriteError(w, r, http.StatusNotFound, httpx.CodeNotFound, err.Error(), nil)
	case errors.Is(err, repository.ErrConflict):
		var details []httpx.ErrorDetail
		if name := repository.ConstraintName(err); name != "" {
			details = []httpx.ErrorDetail{{Field: name, Message: "constraint violated"}}
		}
		httpx.WriteError(w, r, http.StatusConflict, httpx.CodeConflict, "request conflicts with existing data", details)
	case errors.Is(err, repository.ErrBusinessRule):
		httpx.WriteError(w, r, http.StatusUnprocessableEntity, httpx.CodeBusinessRule, err.Error(), nil)
	default:
		logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", httpx.RequestIDFrom(r),
			"error", err,
		)
		httpx.WriteError(w, r, http.StatusInternalServerError, httpx.CodeInternal, internalErrorMessage, nil)
	}
}
