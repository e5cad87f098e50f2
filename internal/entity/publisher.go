package entity

import (
	"github.com/google/uuid"

	"bookshelf/internal/repository"
)

type Publisher struct {
	Code uuid.UUID `db:"code" json:"code"`
	Name string    `db:"name" json:"name"`
	City *string   `db:"city" json:"city"`
}

func (p Publisher) GetCode() uuid.UUID { return p.Code }

var PublisherSchema = repository.Schema{
	Entity:  "publisher",
	Table:   "publishers",
	Columns: []string{"name", "city"},
	Filters: map[string]repository.Kind{
		"name": repository.KindText,
		"city": repository.KindText,
	},
	Sorts: []string{"name", "city"},
}
