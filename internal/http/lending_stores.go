package http

import (
	"context"

	"github.com/google/uuid"

	"bookshelf/internal/entity"
	"bookshelf/internal/repository"
)

//go:generate mockgen -destination=mocks/mock_lending_service.go -package=mocks bookshelf/internal/http LendingService

// LendingService owns every write that moves stock or may leave an author,
// publisher or reader without dependents.
type LendingService interface {
	CreateBook(ctx context.Context, fields repository.Fields) (entity.Book, error)
	UpdateBook(ctx context.Context, code uuid.UUID, fields repository.Fields) (entity.Book, error)
	DeleteBook(ctx context.Context, code uuid.UUID) (entity.Book, error)
	CreateIssuance(ctx context.Context, fields repository.Fields) (entity.Issuance, error)
	UpdateIssuance(ctx context.Context, code uuid.UUID, fields repository.Fields) (entity.Issuance, error)
	DeleteIssuance(ctx context.Context, code uuid.UUID) (entity.Issuance, error)
}

// bookStore reads books straight from the repository and writes them
// through the lending service.
type bookStore struct {
	Reader[entity.Book]
	lending LendingService
}

func (s bookStore) Create(ctx context.Context, fields repository.Fields) (entity.Book, error) {
	return s.lending.CreateBook(ctx, fields)
}

func (s bookStore) Update(ctx context.Context, code uuid.UUID, fields repository.Fields) (entity.Book, error) {
	return s.lending.UpdateBook(ctx, code, fields)
}

func (s bookStore) Delete(ctx context.Context, code uuid.UUID) (entity.Book, error) {
	return s.lending.DeleteBook(ctx, code)
}

type issuanceStore struct {
	Reader[entity.Issuance]
	lending LendingService
}

func (s issuanceStore) Create(ctx context.Context, fields repository.Fields) (entity.Issuance, error) {
	return s.lending.CreateIssuance(ctx, fields)
}

func (s issuanceStore) Update(ctx context.Context, code uuid.UUID, fields repository.Fields) (entity.Issuance, error) {
	return s.lending.UpdateIssuance(ctx, code, fields)
}

func (s issuanceStore) Delete(ctx context.Context, code uuid.UUID) (entity.Issuance, error) {
	return s.lending.DeleteIssuance(ctx, code)
}
