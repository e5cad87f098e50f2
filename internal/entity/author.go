package entity

import (
	"github.com/google/uuid"

	"bookshelf/internal/repository"
)

type Author struct {
	Code uuid.UUID `db:"code" json:"code"`
	Name string    `db:"name" json:"name"`
}

func (a Author) GetCode() uuid.UUID { return a.Code }

var AuthorSchema = repository.Schema{
	Entity:  "author",
	Table:   "authors",
	Columns: []string{"name"},
	Filters: map[string]repository.Kind{
		"name": repository.KindText,
	},
	Sorts: []string{"name"},
}
