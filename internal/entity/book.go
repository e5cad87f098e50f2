package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"bookshelf/internal/repository"
)

// DefaultBookAmount is the stock of a book created without an amount.
const DefaultBookAmount = 1

// Book is a catalog title. Amount is the number of copies on the shelf.
type Book struct {
	Code           uuid.UUID      `db:"code" json:"code"`
	PublisherCode  uuid.UUID      `db:"publisher_code" json:"publisher_code"`
	AuthorCode     uuid.UUID      `db:"author_code" json:"author_code"`
	Title          string         `db:"title" json:"title"`
	PublishingYear *int           `db:"publishing_year" json:"publishing_year"`
	Price          pgtype.Numeric `db:"price" json:"price"`
	Amount         int            `db:"amount" json:"amount"`
}

func (b Book) GetCode() uuid.UUID { return b.Code }

// ParsePrice reads a decimal price such as "1234.56" without going through a
// float.
func ParsePrice(s string) (pgtype.Numeric, error) {
	var n pgtype.Numeric
	if err := n.Scan(s); err != nil {
		return pgtype.Numeric{}, fmt.Errorf("invalid price %q: %w", s, err)
	}
	return n, nil
}

var BookSchema = repository.Schema{
	Entity:  "book",
	Table:   "books",
	Columns: []string{"publisher_code", "author_code", "title", "publishing_year", "price", "amount"},
	Filters: map[string]repository.Kind{
		"author_code":     repository.KindUUID,
		"publisher_code":  repository.KindUUID,
		"publishing_year": repository.KindInt,
		"title":           repository.KindText,
		"price":           repository.KindDecimal,
		"amount":          repository.KindInt,
	},
	Sorts: []string{"title", "publishing_year", "price", "amount"},
	Defaults: func(f repository.Fields, _ time.Time) {
		if _, ok := f["amount"]; !ok {
			f["amount"] = DefaultBookAmount
		}
	},
}
