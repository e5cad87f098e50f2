package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"bookshelf/internal/httpx"
	"bookshelf/internal/repository"
)

// Reader is the read side of an entity store.
type Reader[E any] interface {
	Get(ctx context.Context, code uuid.UUID) (E, error)
	List(ctx context.Context, params repository.ListParams) ([]E, error)
	Count(ctx context.Context, search *repository.Search) (int, error)
}

// Store is everything a resource handler needs. *repository.Repository[E]
// satisfies it directly.
type Store[E any] interface {
	Reader[E]
	Create(ctx context.Context, fields repository.Fields) (E, error)
	Update(ctx context.Context, code uuid.UUID, fields repository.Fields) (E, error)
	Delete(ctx context.Context, code uuid.UUID) (E, error)
}

// ResourceHandler serves the five CRUD routes of one entity. C and U are the
// create and update request bodies.
type ResourceHandler[E any, C, U Payload] struct {
	name   string
	store  Store[E]
	logger *slog.Logger
}

func NewResourceHandler[E any, C, U Payload](name string, store Store[E], logger *slog.Logger) *ResourceHandler[E, C, U] {
	return &ResourceHandler[E, C, U]{name: name, store: store, logger: logger}
}

// Register mounts the handler under prefix, e.g. /v1/books.
func (h *ResourceHandler[E, C, U]) Register(mux *http.ServeMux, prefix string) {
	mux.HandleFunc("GET "+prefix, h.List)
	mux.HandleFunc("POST "+prefix, h.Create)
	mux.HandleFunc("GET "+prefix+"/{code}", h.Get)
	mux.HandleFunc("PATCH "+prefix+"/{code}", h.Update)
	mux.HandleFunc("DELETE "+prefix+"/{code}", h.Delete)
}

// @Summary List entities
// @Description Filter on one field, sort on one field and page with skip/limit
// @Param search_by query string false "Field to search on"
// @Param search_mode query string false "equal, less_than, greater_than, less_than_or_equal, greater_than_or_equal, similar"
// @Param search_value query string false "Value to compare with"
// @Param sort_by query string false "Field to sort on"
// @Param sort_order query string false "asc or desc"
// @Param skip query int false "Rows to skip" default(0)
// @Param limit query int false "Page size" default(50)
// @Success 200 {object} httpx.SuccessResponse
func (h *ResourceHandler[E, C, U]) List(w http.ResponseWriter, r *http.Request) {
	params, err := parseListParams(r.URL.Query())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	items, err := h.store.List(r.Context(), params)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	total, err := h.store.Count(r.Context(), params.Search)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if items == nil {
		items = []E{}
	}

	httpx.WriteOK(w, r, items, httpx.PageMeta(params.Page.Skip, params.Page.Limit, total))
}

// @Summary Get an entity by code
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
func (h *ResourceHandler[E, C, U]) Get(w http.ResponseWriter, r *http.Request) {
	code, err := pathCode(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	item, err := h.store.Get(r.Context(), code)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	httpx.WriteOK(w, r, item, nil)
}

// @Summary Create an entity
// @Success 201 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 409 {object} httpx.ErrorResponse
func (h *ResourceHandler[E, C, U]) Create(w http.ResponseWriter, r *http.Request) {
	var req C
	if !h.decode(w, r, &req) {
		return
	}

	item, err := h.store.Create(r.Context(), req.Fields())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	httpx.WriteCreated(w, r, item)
}

// @Summary Update some fields of an entity
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
func (h *ResourceHandler[E, C, U]) Update(w http.ResponseWriter, r *http.Request) {
	code, err := pathCode(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var req U
	if !h.decode(w, r, &req) {
		return
	}

	item, err := h.store.Update(r.Context(), code, req.Fields())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	httpx.WriteOK(w, r, item, nil)
}

// @Summary Delete an entity
// @Description Returns the deleted entity
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
func (h *ResourceHandler[E, C, U]) Delete(w http.ResponseWriter, r *http.Request) {
	code, err := pathCode(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	item, err := h.store.Delete(r.Context(), code)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	httpx.WriteOK(w, r, item, nil)
}

// decode reads a JSON body into dst and validates it. It writes the error
// response itself and reports whether the handler may continue.
func (h *ResourceHandler[E, C, U]) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			httpx.WriteError(w, r, http.StatusRequestEntityTooLarge, httpx.CodePayloadTooLarge, "request body too large", nil)
		case errors.Is(err, io.EOF):
			httpx.WriteError(w, r, http.StatusBadRequest, httpx.CodeBadRequest, "request body is empty", nil)
		default:
			httpx.WriteError(w, r, http.StatusBadRequest, httpx.CodeBadRequest, fmt.Sprintf("invalid %s body: %v", h.name, err), nil)
		}
		return false
	}

	if details := ValidateStruct(dst); len(details) > 0 {
		httpx.WriteError(w, r, http.StatusBadRequest, httpx.CodeValidation, "validation failed", details)
		return false
	}
	return true
}
