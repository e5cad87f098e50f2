package repository

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

const colCode = "code"

// Kind is the column type a filter compares against.
type Kind int

const (
	KindText Kind = iota + 1
	KindInt
	KindDecimal
	KindDate
	KindUUID
)

func (k Kind) ordered() bool {
	return k == KindInt || k == KindDecimal || k == KindDate
}

// Fields carries already validated column values for create and update.
type Fields map[string]any

// Entity is a row type addressed by a generated code.
type Entity interface {
	GetCode() uuid.UUID
}

// Schema describes how an entity is stored and which of its columns may be
// filtered and sorted on.
type Schema struct {
	Entity string
	Table  string

	// Columns are the writable columns. The code column is implicit.
	Columns []string
	Filters map[string]Kind
	Sorts   []string

	// Defaults fills in create-time values the caller left out.
	Defaults func(f Fields, now time.Time)
}

func (s Schema) selectColumns() []any {
	cols := make([]any, 0, len(s.Columns)+1)
	cols = append(cols, colCode)
	for _, c := range s.Columns {
		cols = append(cols, c)
	}
	return cols
}

func (s Schema) checkFields(f Fields) error {
	for name := range f {
		if !slices.Contains(s.Columns, name) {
			return invalidQuery("%s has no writable field %q", s.Entity, name)
		}
	}
	return nil
}

func (s Schema) sortable(field string) bool {
	return field == colCode || slices.Contains(s.Sorts, field)
}
