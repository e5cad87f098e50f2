package httpx

import (
	"encoding/json"
	"net/http"
)

const (
	CodeBadRequest      = "BAD_REQUEST"
	CodeValidation      = "VALIDATION_ERROR"
	CodeNotFound        = "NOT_FOUND"
	CodeConflict        = "CONFLICT"
	CodeBusinessRule    = "BUSINESS_RULE_VIOLATION"
	CodeInternal        = "INTERNAL_ERROR"
	CodeRateLimited     = "RATE_LIMIT_EXCEEDED"
	CodePayloadTooLarge = "PAYLOAD_TOO_LARGE"
	CodeUnavailable     = "SERVICE_UNAVAILABLE"
)

type SuccessResponse struct {
	Success bool  `json:"success"`
	Data    any   `json:"data,omitempty"`
	Meta    *Meta `json:"meta,omitempty"`
}

type ErrorResponse struct {
	Success bool              `json:"success"`
	Error   ErrorResponseBody `json:"error"`
	Meta    *Meta             `json:"meta,omitempty"`
}

type ErrorResponseBody struct {
	Code    string        `json:"code"`
	Message string        `json:"message"`
	Details []ErrorDetail `json:"details,omitempty"`
}

type ErrorDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Meta is the envelope metadata. Listing fields are set only on list
// responses.
type Meta struct {
	RequestID string `json:"request_id,omitempty"`
	Skip      *int   `json:"skip,omitempty"`
	Limit     *int   `json:"limit,omitempty"`
	Total     *int   `json:"total,omitempty"`
}

// PageMeta describes one page of a listing.
func PageMeta(skip, limit, total int) *Meta {
	return &Meta{Skip: &skip, Limit: &limit, Total: &total}
}

func withRequestID(r *http.Request, meta *Meta) *Meta {
	requestID := RequestIDFrom(r)
	if requestID == "" {
		return meta
	}
	if meta == nil {
		meta = &Meta{}
	}
	meta.RequestID = requestID
	return meta
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// WriteData writes a success envelope with the given status.
func WriteData(w http.ResponseWriter, r *http.Request, status int, data any, meta *Meta) {
	writeJSON(w, status, SuccessResponse{
		Success: true,
		Data:    data,
		Meta:    withRequestID(r, meta),
	})
}

func WriteOK(w http.ResponseWriter, r *http.Request, data any, meta *Meta) {
	WriteData(w, r, http.StatusOK, data, meta)
}

func WriteCreated(w http.ResponseWriter, r *http.Request, data any) {
	WriteData(w, r, http.StatusCreated, data, nil)
}

func WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string, details []ErrorDetail) {
	writeJSON(w, status, ErrorResponse{
		Success: false,
		Error: ErrorResponseBody{
			Code:    code,
			Message: message,
			Details: details,
		},
		Meta: withRequestID(r, nil),
	})
}
