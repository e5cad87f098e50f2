package http

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"bookshelf/internal/repository"
)

// parseListParams reads the listing query parameters. HTTP listings are always
// paginated; limit defaults to repository.DefaultLimit.
func parseListParams(q url.Values) (repository.ListParams, error) {
	var params repository.ListParams

	if field := q.Get("search_by"); field != "" {
		mode, err := repository.ParseSearchMode(q.Get("search_mode"))
		if err != nil {
			return params, err
		}
		params.Search = &repository.Search{
			Field: field,
			Mode:  mode,
			Value: q.Get("search_value"),
		}
	} else if q.Has("search_value") || q.Has("search_mode") {
		return params, fmt.Errorf("%w: search_by is required to search", repository.ErrInvalidQuery)
	}

	if field := q.Get("sort_by"); field != "" {
		order, err := repository.ParseSortOrder(q.Get("sort_order"))
		if err != nil {
			return params, err
		}
		params.Sort = &repository.Sort{Field: field, Order: order}
	}

	skip, err := intParam(q, "skip", 0)
	if err != nil {
		return params, err
	}
	limit, err := intParam(q, "limit", repository.DefaultLimit)
	if err != nil {
		return params, err
	}
	page := repository.Page{Skip: skip, Limit: limit}
	if err := page.Validate(); err != nil {
		return params, err
	}
	params.Page = &page
	return params, nil
}

func intParam(q url.Values, name string, def int) (int, error) {
	raw := q.Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got %q", repository.ErrInvalidQuery, name, raw)
	}
	return v, nil
}

func pathCode(r *http.Request) (uuid.UUID, error) {
	raw := r.PathValue("code")
	code, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: code must be a UUID, got %q", repository.ErrInvalidQuery, raw)
	}
	return code, nil
}
