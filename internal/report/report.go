// Package report builds the overdue-loans report: every issuance due on or
// before a date, grouped per reader, rendered as an xlsx workbook.
package report

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"bookshelf/internal/entity"
	"bookshelf/internal/repository"
)

// IssuanceLister lists issuances.
type IssuanceLister interface {
	List(ctx context.Context, params repository.ListParams) ([]entity.Issuance, error)
}

// Fetcher resolves related entities by code.
type Fetcher[E any] interface {
	GetMany(ctx context.Context, codes []uuid.UUID) (map[uuid.UUID]E, error)
}

// Line is one overdue book.
type Line struct {
	Phone          string
	Author         string
	Title          string
	PriceThousands float64
	IssuedAt       time.Time
}

// ReaderGroup holds the overdue books of one reader.
type ReaderGroup struct {
	ReaderCode uuid.UUID
	FullName   string
	Lines      []Line
}

type Report struct {
	Date    time.Time
	Readers []ReaderGroup
	Total   int
}

type Generator struct {
	issuances IssuanceLister
	readers   Fetcher[entity.Reader]
	books     Fetcher[entity.Book]
	authors   Fetcher[entity.Author]
}

func NewGenerator(issuances IssuanceLister, readers Fetcher[entity.Reader], books Fetcher[entity.Book], authors Fetcher[entity.Author]) *Generator {
	return &Generator{
		issuances: issuances,
		readers:   readers,
		books:     books,
		authors:   authors,
	}
}

// Build collects the issuances expiring on or before date. Readers appear in
// the order of their earliest expiring loan.
func (g *Generator) Build(ctx context.Context, date time.Time) (Report, error) {
	date = entity.Day(date)
	rep := Report{Date: date}

	issuances, err := g.issuances.List(ctx, repository.ListParams{
		Search: &repository.Search{
			Field: "expires_at",
			Mode:  repository.ModeLessThanOrEqual,
			Value: date.Format(time.DateOnly),
		},
		Sort: &repository.Sort{Field: "expires_at", Order: repository.OrderAsc},
	})
	if err != nil {
		return rep, fmt.Errorf("list overdue issuances: %w", err)
	}
	if len(issuances) == 0 {
		return rep, nil
	}

	readerCodes := make([]uuid.UUID, 0, len(issuances))
	bookCodes := make([]uuid.UUID, 0, len(issuances))
	for _, i := range issuances {
		readerCodes = append(readerCodes, i.ReaderCode)
		bookCodes = append(bookCodes, i.BookCode)
	}

	readers, err := g.readers.GetMany(ctx, readerCodes)
	if err != nil {
		return rep, fmt.Errorf("fetch readers: %w", err)
	}
	books, err := g.books.GetMany(ctx, bookCodes)
	if err != nil {
		return rep, fmt.Errorf("fetch books: %w", err)
	}
	authorCodes := make([]uuid.UUID, 0, len(books))
	for _, b := range books {
		authorCodes = append(authorCodes, b.AuthorCode)
	}
	authors, err := g.authors.GetMany(ctx, authorCodes)
	if err != nil {
		return rep, fmt.Errorf("fetch authors: %w", err)
	}

	index := make(map[uuid.UUID]int)
	for _, i := range issuances {
		reader, ok := readers[i.ReaderCode]
		if !ok {
			continue
		}
		book, ok := books[i.BookCode]
		if !ok {
			continue
		}

		pos, ok := index[reader.Code]
		if !ok {
			pos = len(rep.Readers)
			index[reader.Code] = pos
			rep.Readers = append(rep.Readers, ReaderGroup{ReaderCode: reader.Code, FullName: reader.FullName})
		}
		rep.Readers[pos].Lines = append(rep.Readers[pos].Lines, Line{
			Phone:          reader.Phone,
			Author:         authors[book.AuthorCode].Name,
			Title:          book.Title,
			PriceThousands: thousands(book.Price),
			IssuedAt:       i.IssuedAt,
		})
		rep.Total++
	}
	return rep, nil
}

// thousands converts a price to thousands rounded to three decimals.
func thousands(price pgtype.Numeric) float64 {
	f, err := price.Float64Value()
	if err != nil || !f.Valid {
		return 0
	}
	return math.Round(f.Float64) / 1000
}
