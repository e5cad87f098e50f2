package lending

import (
	"github.com/jackc/pgx/v5"

	"bookshelf/internal/entity"
	"bookshelf/internal/platform/postgres"
	"bookshelf/internal/repository"
)

// Repositories bundles one repository per catalog entity.
type Repositories struct {
	Publishers *repository.Repository[entity.Publisher]
	Authors    *repository.Repository[entity.Author]
	Books      *repository.Repository[entity.Book]
	Readers    *repository.Repository[entity.Reader]
	Issuances  *repository.Repository[entity.Issuance]
}

func NewRepositories(db postgres.Conn, opts ...repository.Option) Repositories {
	return Repositories{
		Publishers: repository.New[entity.Publisher](db, entity.PublisherSchema, opts...),
		Authors:    repository.New[entity.Author](db, entity.AuthorSchema, opts...),
		Books:      repository.New[entity.Book](db, entity.BookSchema, opts...),
		Readers:    repository.New[entity.Reader](db, entity.ReaderSchema, opts...),
		Issuances:  repository.New[entity.Issuance](db, entity.IssuanceSchema, opts...),
	}
}

// WithTx binds every repository to tx.
func (r Repositories) WithTx(tx pgx.Tx) Repositories {
	return Repositories{
		Publishers: r.Publishers.WithTx(tx),
		Authors:    r.Authors.WithTx(tx),
		Books:      r.Books.WithTx(tx),
		Readers:    r.Readers.WithTx(tx),
		Issuances:  r.Issuances.WithTx(tx),
	}
}
