// Package lending enforces the rules that span several catalog entities:
// stock tracking on checkout and return, the per-reader borrow limit and the
// removal of authors, publishers and readers left without dependents.
package lending

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"bookshelf/internal/entity"
	"bookshelf/internal/platform/postgres"
	"bookshelf/internal/repository"
)

// MaxOpenIssuances is how many books a reader may hold at once.
const MaxOpenIssuances = 5

var (
	ErrBorrowLimitExceeded = fmt.Errorf("%w: reader already holds %d books", repository.ErrBusinessRule, MaxOpenIssuances)
	ErrOutOfStock          = fmt.Errorf("%w: no copies of the book are available", repository.ErrBusinessRule)
)

type Service struct {
	db     postgres.Conn
	repos  Repositories
	logger repository.Logger
	retry  []postgres.RetryOption
}

type Option func(*Service)

func WithLogger(l repository.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithRetry tunes how conflicting units of work are retried.
func WithRetry(opts ...postgres.RetryOption) Option {
	return func(s *Service) { s.retry = opts }
}

func NewService(db postgres.Conn, repos Repositories, opts ...Option) *Service {
	s := &Service{db: db, repos: repos}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Repositories() Repositories {
	return s.repos
}

// run executes fn as one unit of work with the repositories bound to it.
func (s *Service) run(ctx context.Context, fn func(r Repositories) error) error {
	return postgres.RetryTx(ctx, s.db, func(tx pgx.Tx) error {
		return fn(s.repos.WithTx(tx))
	}, s.retry...)
}

// CreateIssuance checks a book out to a reader.
func (s *Service) CreateIssuance(ctx context.Context, fields repository.Fields) (entity.Issuance, error) {
	var created entity.Issuance
	readerCode, err := codeField(fields, "reader_code")
	if err != nil {
		return created, err
	}
	bookCode, err := codeField(fields, "book_code")
	if err != nil {
		return created, err
	}

	err = s.run(ctx, func(r Repositories) error {
		if _, err := r.Readers.Lock(ctx, readerCode); err != nil {
			return err
		}
		book, err := r.Books.Lock(ctx, bookCode)
		if err != nil {
			return err
		}
		if err := checkBorrowLimit(ctx, r, readerCode); err != nil {
			return err
		}
		if err := takeCopy(ctx, r, book); err != nil {
			return err
		}

		created, err = r.Issuances.Create(ctx, fields)
		return err
	})
	if err != nil {
		s.logRejected("checkout", err, "reader_code", readerCode, "book_code", bookCode)
		return entity.Issuance{}, err
	}
	return created, nil
}

// UpdateIssuance changes the dates of a loan or moves it to another book or
// reader. Moving it to another book returns the copy of the old one.
func (s *Service) UpdateIssuance(ctx context.Context, code uuid.UUID, fields repository.Fields) (entity.Issuance, error) {
	var updated entity.Issuance
	newReader, readerChanged, err := optionalCodeField(fields, "reader_code")
	if err != nil {
		return updated, err
	}
	newBook, bookChanged, err := optionalCodeField(fields, "book_code")
	if err != nil {
		return updated, err
	}

	err = s.run(ctx, func(r Repositories) error {
		current, err := r.Issuances.Lock(ctx, code)
		if err != nil {
			return err
		}
		if readerChanged && newReader != current.ReaderCode {
			if _, err := r.Readers.Lock(ctx, newReader); err != nil {
				return err
			}
			if err := checkBorrowLimit(ctx, r, newReader); err != nil {
				return err
			}
		}
		if bookChanged && newBook != current.BookCode {
			if err := returnCopy(ctx, r, current.BookCode); err != nil {
				return err
			}
			book, err := r.Books.Lock(ctx, newBook)
			if err != nil {
				return err
			}
			if err := takeCopy(ctx, r, book); err != nil {
				return err
			}
		}

		updated, err = r.Issuances.Update(ctx, code, fields)
		return err
	})
	if err != nil {
		s.logRejected("update issuance", err, "code", code)
		return entity.Issuance{}, err
	}
	return updated, nil
}

// DeleteIssuance returns a book. The reader is removed once they hold no
// more books.
func (s *Service) DeleteIssuance(ctx context.Context, code uuid.UUID) (entity.Issuance, error) {
	var deleted entity.Issuance
	err := s.run(ctx, func(r Repositories) error {
		issuance, err := r.Issuances.Get(ctx, code)
		if err != nil {
			return err
		}
		// reader before book, the order checkouts lock in
		if _, err := r.Readers.Lock(ctx, issuance.ReaderCode); err != nil {
			return err
		}
		locked, err := r.Issuances.Lock(ctx, code)
		if err != nil {
			return err
		}
		if locked.ReaderCode != issuance.ReaderCode {
			// moved to another reader after the first read
			if _, err := r.Readers.Lock(ctx, locked.ReaderCode); err != nil {
				return err
			}
		}
		issuance = locked

		if deleted, err = r.Issuances.Delete(ctx, code); err != nil {
			return err
		}
		if err := returnCopy(ctx, r, issuance.BookCode); err != nil {
			return err
		}

		remaining, err := r.Issuances.Count(ctx, byCode("reader_code", issuance.ReaderCode))
		if err != nil {
			return err
		}
		if remaining == 0 {
			if _, err := r.Readers.Delete(ctx, issuance.ReaderCode); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logRejected("return", err, "code", code)
		return entity.Issuance{}, err
	}
	return deleted, nil
}

// CreateBook adds a book to the catalog. Its author and publisher must exist.
func (s *Service) CreateBook(ctx context.Context, fields repository.Fields) (entity.Book, error) {
	var created entity.Book
	authorCode, err := codeField(fields, "author_code")
	if err != nil {
		return created, err
	}
	publisherCode, err := codeField(fields, "publisher_code")
	if err != nil {
		return created, err
	}

	err = s.run(ctx, func(r Repositories) error {
		if _, err := r.Authors.Lock(ctx, authorCode); err != nil {
			return err
		}
		if _, err := r.Publishers.Lock(ctx, publisherCode); err != nil {
			return err
		}
		var err error
		created, err = r.Books.Create(ctx, fields)
		return err
	})
	if err != nil {
		s.logRejected("create book", err, "author_code", authorCode, "publisher_code", publisherCode)
		return entity.Book{}, err
	}
	return created, nil
}

// UpdateBook changes catalog data of a book. Stock is only changed by
// checkouts and returns.
func (s *Service) UpdateBook(ctx context.Context, code uuid.UUID, fields repository.Fields) (entity.Book, error) {
	var updated entity.Book
	if _, ok := fields["amount"]; ok {
		return updated, fmt.Errorf("%w: book amount changes only through checkouts and returns", repository.ErrInvalidQuery)
	}
	authorCode, authorChanged, err := optionalCodeField(fields, "author_code")
	if err != nil {
		return updated, err
	}
	publisherCode, publisherChanged, err := optionalCodeField(fields, "publisher_code")
	if err != nil {
		return updated, err
	}

	err = s.run(ctx, func(r Repositories) error {
		if authorChanged {
			if _, err := r.Authors.Lock(ctx, authorCode); err != nil {
				return err
			}
		}
		if publisherChanged {
			if _, err := r.Publishers.Lock(ctx, publisherCode); err != nil {
				return err
			}
		}
		var err error
		updated, err = r.Books.Update(ctx, code, fields)
		return err
	})
	if err != nil {
		s.logRejected("update book", err, "code", code)
		return entity.Book{}, err
	}
	return updated, nil
}

// DeleteBook removes a book, then its author and publisher if no other book
// refers to them.
func (s *Service) DeleteBook(ctx context.Context, code uuid.UUID) (entity.Book, error) {
	var deleted entity.Book
	err := s.run(ctx, func(r Repositories) error {
		book, err := r.Books.Get(ctx, code)
		if err != nil {
			return err
		}
		// author and publisher first so concurrent deletes see each other
		if _, err := r.Authors.Lock(ctx, book.AuthorCode); err != nil {
			return err
		}
		if _, err := r.Publishers.Lock(ctx, book.PublisherCode); err != nil {
			return err
		}
		if deleted, err = r.Books.Delete(ctx, code); err != nil {
			return err
		}

		n, err := r.Books.Count(ctx, byCode("author_code", deleted.AuthorCode))
		if err != nil {
			return err
		}
		if n == 0 {
			if _, err := r.Authors.Delete(ctx, deleted.AuthorCode); err != nil {
				return err
			}
		}

		n, err = r.Books.Count(ctx, byCode("publisher_code", deleted.PublisherCode))
		if err != nil {
			return err
		}
		if n == 0 {
			if _, err := r.Publishers.Delete(ctx, deleted.PublisherCode); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logRejected("delete book", err, "code", code)
		return entity.Book{}, err
	}
	return deleted, nil
}

func checkBorrowLimit(ctx context.Context, r Repositories, readerCode uuid.UUID) error {
	open, err := r.Issuances.Count(ctx, byCode("reader_code", readerCode))
	if err != nil {
		return err
	}
	if open >= MaxOpenIssuances {
		return ErrBorrowLimitExceeded
	}
	return nil
}

// takeCopy removes one copy of a book the caller has locked.
func takeCopy(ctx context.Context, r Repositories, book entity.Book) error {
	if book.Amount < 1 {
		return ErrOutOfStock
	}
	_, err := r.Books.Update(ctx, book.Code, repository.Fields{"amount": book.Amount - 1})
	return err
}

func returnCopy(ctx context.Context, r Repositories, bookCode uuid.UUID) error {
	book, err := r.Books.Lock(ctx, bookCode)
	if err != nil {
		return err
	}
	_, err = r.Books.Update(ctx, bookCode, repository.Fields{"amount": book.Amount + 1})
	return err
}

func byCode(field string, code uuid.UUID) *repository.Search {
	return &repository.Search{Field: field, Mode: repository.ModeEqual, Value: code.String()}
}

func codeField(fields repository.Fields, name string) (uuid.UUID, error) {
	code, ok, err := optionalCodeField(fields, name)
	if err != nil {
		return uuid.Nil, err
	}
	if !ok {
		return uuid.Nil, fmt.Errorf("%w: %s is required", repository.ErrInvalidQuery, name)
	}
	return code, nil
}

func optionalCodeField(fields repository.Fields, name string) (uuid.UUID, bool, error) {
	v, ok := fields[name]
	if !ok {
		return uuid.Nil, false, nil
	}
	code, ok := v.(uuid.UUID)
	if !ok {
		return uuid.Nil, false, fmt.Errorf("%w: %s must be a code", repository.ErrInvalidQuery, name)
	}
	return code, true, nil
}

func (s *Service) logRejected(op string, err error, args ...any) {
	if s.logger == nil {
		return
	}
	args = append([]any{"op", op, "error", err}, args...)
	if errors.Is(err, repository.ErrOperationFailed) {
		s.logger.Error("lending operation failed", args...)
		return
	}
	s.logger.Info("lending operation rejected", args...)
}
