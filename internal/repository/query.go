package repository

import (
	"math"
	"strconv"
	"time"
)

const (
	DefaultLimit = 50
	MaxLimit     = 200
)

// SearchMode is the comparison applied by a search.
type SearchMode string

const (
	ModeEqual              SearchMode = "equal"
	ModeLessThan           SearchMode = "less_than"
	ModeGreaterThan        SearchMode = "greater_than"
	ModeLessThanOrEqual    SearchMode = "less_than_or_equal"
	ModeGreaterThanOrEqual SearchMode = "greater_than_or_equal"
	ModeSimilar            SearchMode = "similar"

	// modeSimilarLegacy is the spelling older clients send.
	modeSimilarLegacy = "simmilar"
)

// ParseSearchMode accepts the wire names of the search modes. An empty string
// means equal.
func ParseSearchMode(s string) (SearchMode, error) {
	switch s {
	case "":
		return ModeEqual, nil
	case modeSimilarLegacy:
		return ModeSimilar, nil
	}
	m := SearchMode(s)
	if !m.valid() {
		return "", invalidQuery("unknown search mode %q", s)
	}
	return m, nil
}

func (m SearchMode) valid() bool {
	switch m {
	case ModeEqual, ModeLessThan, ModeGreaterThan, ModeLessThanOrEqual, ModeGreaterThanOrEqual, ModeSimilar:
		return true
	}
	return false
}

func (m SearchMode) ranged() bool {
	return m != ModeEqual && m != ModeSimilar
}

type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// ParseSortOrder accepts asc or desc. An empty string means asc.
func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(s) {
	case "", OrderAsc:
		return OrderAsc, nil
	case OrderDesc:
		return OrderDesc, nil
	}
	return "", invalidQuery("unknown sort order %q", s)
}

// Search filters a listing on a single field.
type Search struct {
	Field string
	Mode  SearchMode
	Value string
}

type Sort struct {
	Field string
	Order SortOrder
}

// Page is an offset window over a listing.
type Page struct {
	Skip  int
	Limit int
}

func (p Page) Validate() error {
	if p.Skip < 0 {
		return invalidQuery("skip must be >= 0, got %d", p.Skip)
	}
	if p.Limit < 1 || p.Limit > MaxLimit {
		return invalidQuery("limit must be between 1 and %d, got %d", MaxLimit, p.Limit)
	}
	return nil
}

// ListParams groups the optional listing parameters. A nil Page lists every
// matching row.
type ListParams struct {
	Search *Search
	Sort   *Sort
	Page   *Page
}

// ValueKind is the representation a raw search value was coerced to.
type ValueKind int

const (
	ValueInt ValueKind = iota
	ValueDecimal
	ValueDate
	ValueText
)

func (k ValueKind) String() string {
	switch k {
	case ValueInt:
		return "integer"
	case ValueDecimal:
		return "decimal"
	case ValueDate:
		return "date"
	default:
		return "text"
	}
}

// Value is a search value coerced once per query.
type Value struct {
	Raw     string
	Kind    ValueKind
	Int     int64
	Decimal float64
	Date    time.Time
}

// CoerceValue tries integer, then decimal, then YYYY-MM-DD date and falls
// back to the raw text.
func CoerceValue(raw string) Value {
	v := Value{Raw: raw, Kind: ValueText}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		v.Kind, v.Int = ValueInt, n
		return v
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		v.Kind, v.Decimal = ValueDecimal, f
		return v
	}
	if d, err := time.Parse(time.DateOnly, raw); err == nil {
		v.Kind, v.Date = ValueDate, d
		return v
	}
	return v
}
