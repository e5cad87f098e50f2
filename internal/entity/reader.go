package entity

import (
	"regexp"

	"github.com/google/uuid"

	"bookshelf/internal/repository"
)

// PhonePattern is the accepted reader phone format, e.g. +7(912)345-67-89.
var PhonePattern = regexp.MustCompile(`^\+\d{1,3}\(\d{1,4}\)\d{3}-\d{2}-\d{2}$`)

type Reader struct {
	Code     uuid.UUID `db:"code" json:"code"`
	FullName string    `db:"full_name" json:"full_name"`
	Phone    string    `db:"phone" json:"phone"`
	Address  *string   `db:"address" json:"address"`
}

func (r Reader) GetCode() uuid.UUID { return r.Code }

var ReaderSchema = repository.Schema{
	Entity:  "reader",
	Table:   "readers",
	Columns: []string{"full_name", "phone", "address"},
	Filters: map[string]repository.Kind{
		"full_name": repository.KindText,
		"address":   repository.KindText,
		"phone":     repository.KindText,
	},
	Sorts: []string{"full_name", "address"},
}
