package http

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"bookshelf/internal/repository"
)

// Payload is a decoded request body that can be handed to a store.
type Payload interface {
	Fields() repository.Fields
}

// Date is a calendar day in YYYY-MM-DD form.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return fmt.Errorf("date must be YYYY-MM-DD, got %q", s)
	}
	d.Time = t
	return nil
}

type fieldSet repository.Fields

func (f fieldSet) set(name string, v any) {
	f[name] = v
}

func setIf[T any](f fieldSet, name string, v *T) {
	if v != nil {
		f[name] = *v
	}
}

func setDateIf(f fieldSet, name string, d *Date) {
	if d != nil {
		f[name] = d.Time
	}
}

type CreatePublisherRequest struct {
	Name string  `json:"name" validate:"required,notblank,max=255"`
	City *string `json:"city" validate:"omitempty,max=60"`
}

func (req CreatePublisherRequest) Fields() repository.Fields {
	f := fieldSet{}
	f.set("name", req.Name)
	setIf(f, "city", req.City)
	return repository.Fields(f)
}

type UpdatePublisherRequest struct {
	Name *string `json:"name" validate:"omitempty,notblank,max=255"`
	City *string `json:"city" validate:"omitempty,max=60"`
}

func (req UpdatePublisherRequest) Fields() repository.Fields {
	f := fieldSet{}
	setIf(f, "name", req.Name)
	setIf(f, "city", req.City)
	return repository.Fields(f)
}

type CreateAuthorRequest struct {
	Name string `json:"name" validate:"required,notblank,max=255"`
}

func (req CreateAuthorRequest) Fields() repository.Fields {
	return repository.Fields{"name": req.Name}
}

type UpdateAuthorRequest struct {
	Name *string `json:"name" validate:"omitempty,notblank,max=255"`
}

func (req UpdateAuthorRequest) Fields() repository.Fields {
	f := fieldSet{}
	setIf(f, "name", req.Name)
	return repository.Fields(f)
}

type CreateBookRequest struct {
	PublisherCode  uuid.UUID `json:"publisher_code" validate:"required"`
	AuthorCode     uuid.UUID `json:"author_code" validate:"required"`
	Title          string    `json:"title" validate:"required,notblank,max=255"`
	PublishingYear *int      `json:"publishing_year" validate:"omitempty,gte=0,lte=10000"`
	Price          *float64  `json:"price" validate:"required,gte=0,lt=100000000,money"`
	Amount         *int      `json:"amount" validate:"omitempty,gte=0"`
}

func (req CreateBookRequest) Fields() repository.Fields {
	f := fieldSet{}
	f.set("publisher_code", req.PublisherCode)
	f.set("author_code", req.AuthorCode)
	f.set("title", req.Title)
	setIf(f, "publishing_year", req.PublishingYear)
	setIf(f, "price", req.Price)
	setIf(f, "amount", req.Amount)
	return repository.Fields(f)
}

// UpdateBookRequest accepts amount only so the lending service can refuse it
// with a clear message; stock moves through issuances.
type UpdateBookRequest struct {
	PublisherCode  *uuid.UUID `json:"publisher_code"`
	AuthorCode     *uuid.UUID `json:"author_code"`
	Title          *string    `json:"title" validate:"omitempty,notblank,max=255"`
	PublishingYear *int       `json:"publishing_year" validate:"omitempty,gte=0,lte=10000"`
	Price          *float64   `json:"price" validate:"omitempty,gte=0,lt=100000000,money"`
	Amount         *int       `json:"amount"`
}

func (req UpdateBookRequest) Fields() repository.Fields {
	f := fieldSet{}
	setIf(f, "publisher_code", req.PublisherCode)
	setIf(f, "author_code", req.AuthorCode)
	setIf(f, "title", req.Title)
	setIf(f, "publishing_year", req.PublishingYear)
	setIf(f, "price", req.Price)
	setIf(f, "amount", req.Amount)
	return repository.Fields(f)
}

type CreateReaderRequest struct {
	FullName string  `json:"full_name" validate:"required,notblank,max=255"`
	Phone    string  `json:"phone" validate:"required,max=20,phone"`
	Address  *string `json:"address"`
}

func (req CreateReaderRequest) Fields() repository.Fields {
	f := fieldSet{}
	f.set("full_name", req.FullName)
	f.set("phone", req.Phone)
	setIf(f, "address", req.Address)
	return repository.Fields(f)
}

type UpdateReaderRequest struct {
	FullName *string `json:"full_name" validate:"omitempty,notblank,max=255"`
	Phone    *string `json:"phone" validate:"omitempty,max=20,phone"`
	Address  *string `json:"address"`
}

func (req UpdateReaderRequest) Fields() repository.Fields {
	f := fieldSet{}
	setIf(f, "full_name", req.FullName)
	setIf(f, "phone", req.Phone)
	setIf(f, "address", req.Address)
	return repository.Fields(f)
}

type CreateIssuanceRequest struct {
	BookCode   uuid.UUID `json:"book_code" validate:"required"`
	ReaderCode uuid.UUID `json:"reader_code" validate:"required"`
	IssuedAt   *Date     `json:"issued_at"`
	ExpiresAt  *Date     `json:"expires_at"`
}

func (req CreateIssuanceRequest) Fields() repository.Fields {
	f := fieldSet{}
	f.set("book_code", req.BookCode)
	f.set("reader_code", req.ReaderCode)
	setDateIf(f, "issued_at", req.IssuedAt)
	setDateIf(f, "expires_at", req.ExpiresAt)
	return repository.Fields(f)
}

type UpdateIssuanceRequest struct {
	BookCode   *uuid.UUID `json:"book_code"`
	ReaderCode *uuid.UUID `json:"reader_code"`
	IssuedAt   *Date      `json:"issued_at"`
	ExpiresAt  *Date      `json:"expires_at"`
}

func (req UpdateIssuanceRequest) Fields() repository.Fields {
	f := fieldSet{}
	setIf(f, "book_code", req.BookCode)
	setIf(f, "reader_code", req.ReaderCode)
	setDateIf(f, "issued_at", req.IssuedAt)
	setDateIf(f, "expires_at", req.ExpiresAt)
	return repository.Fields(f)
}
