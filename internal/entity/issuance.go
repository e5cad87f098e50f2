package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"bookshelf/internal/repository"
)

// LoanPeriod is how long a book is lent when no expiry date is given.
const LoanPeriod = 21 * 24 * time.Hour

// Issuance records one copy of a book lent to a reader.
type Issuance struct {
	Code       uuid.UUID `db:"code" json:"code"`
	BookCode   uuid.UUID `db:"book_code" json:"book_code"`
	ReaderCode uuid.UUID `db:"reader_code" json:"reader_code"`
	IssuedAt   time.Time `db:"issued_at" json:"issued_at"`
	ExpiresAt  time.Time `db:"expires_at" json:"expires_at"`
}

func (i Issuance) GetCode() uuid.UUID { return i.Code }

// MarshalJSON writes the dates as YYYY-MM-DD.
func (i Issuance) MarshalJSON() ([]byte, error) {
	type alias Issuance
	return json.Marshal(struct {
		alias
		IssuedAt  string `json:"issued_at"`
		ExpiresAt string `json:"expires_at"`
	}{
		alias:     alias(i),
		IssuedAt:  i.IssuedAt.Format(time.DateOnly),
		ExpiresAt: i.ExpiresAt.Format(time.DateOnly),
	})
}

var IssuanceSchema = repository.Schema{
	Entity:  "issuance",
	Table:   "issuances",
	Columns: []string{"book_code", "reader_code", "issued_at", "expires_at"},
	Filters: map[string]repository.Kind{
		"issued_at":   repository.KindDate,
		"expires_at":  repository.KindDate,
		"reader_code": repository.KindUUID,
		"book_code":   repository.KindUUID,
	},
	Sorts:    []string{"issued_at", "expires_at"},
	Defaults: issuanceDefaults,
}

func issuanceDefaults(f repository.Fields, now time.Time) {
	issued, ok := f["issued_at"].(time.Time)
	if !ok {
		issued = Day(now)
		f["issued_at"] = issued
	}
	if _, ok := f["expires_at"]; !ok {
		f["expires_at"] = issued.Add(LoanPeriod)
	}
}

// Day truncates t to midnight UTC of its calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
