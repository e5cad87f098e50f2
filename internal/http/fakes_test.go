package http

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/google/uuid"

	"bookshelf/internal/entity"
	"bookshelf/internal/repository"
	"bookshelf/internal/testutil"
)

var errUnexpectedCall = errors.New("unexpected call")

// fakeStore serves whichever operations a test stubs and fails the rest.
type fakeStore[E any] struct {
	get    func(code uuid.UUID) (E, error)
	list   func(params repository.ListParams) ([]E, error)
	count  func(search *repository.Search) (int, error)
	create func(fields repository.Fields) (E, error)
	update func(code uuid.UUID, fields repository.Fields) (E, error)
	delete func(code uuid.UUID) (E, error)
}

func (s *fakeStore[E]) Get(_ context.Context, code uuid.UUID) (E, error) {
	if s.get == nil {
		var zero E
		return zero, errUnexpectedCall
	}
	return s.get(code)
}

func (s *fakeStore[E]) List(_ context.Context, params repository.ListParams) ([]E, error) {
	if s.list == nil {
		return nil, errUnexpectedCall
	}
	return s.list(params)
}

func (s *fakeStore[E]) Count(_ context.Context, search *repository.Search) (int, error) {
	if s.count == nil {
		return 0, errUnexpectedCall
	}
	return s.count(search)
}

func (s *fakeStore[E]) Create(_ context.Context, fields repository.Fields) (E, error) {
	if s.create == nil {
		var zero E
		return zero, errUnexpectedCall
	}
	return s.create(fields)
}

func (s *fakeStore[E]) Update(_ context.Context, code uuid.UUID, fields repository.Fields) (E, error) {
	if s.update == nil {
		var zero E
		return zero, errUnexpectedCall
	}
	return s.update(code, fields)
}

func (s *fakeStore[E]) Delete(_ context.Context, code uuid.UUID) (E, error) {
	if s.delete == nil {
		var zero E
		return zero, errUnexpectedCall
	}
	return s.delete(code)
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testDeps fills every dependency with an empty fake so a test only stubs
// what it exercises.
func testDeps() Deps {
	return Deps{
		Publishers: &fakeStore[entity.Publisher]{},
		Authors:    &fakeStore[entity.Author]{},
		Readers:    &fakeStore[entity.Reader]{},
		Books:      &fakeStore[entity.Book]{},
		Issuances:  &fakeStore[entity.Issuance]{},
		DB:         fakePinger{},
		Logger:     discardLogger(),
		Now:        func() time.Time { return time.Date(2026, 3, 1, 15, 4, 5, 0, time.UTC) },
	}
}

func serve(d Deps, r *http.Request) testutil.RecordResponse {
	w := httptest.NewRecorder()
	NewRouter(d).ServeHTTP(w, r)
	return testutil.RecordHTTPResponse(w)
}
