package http

import (
	"fmt"
	"math/big"
	"net/http"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookshelf/internal/entity"
	"bookshelf/internal/http/mocks"
	"bookshelf/internal/httpx"
	"bookshelf/internal/lending"
	"bookshelf/internal/repository"
	"bookshelf/internal/testutil"
)

var (
	authorCode   = uuid.MustParse("0190a1b2-0000-7000-8000-0000000000a1")
	bookCode     = uuid.MustParse("0190a1b2-0000-7000-8000-0000000000b1")
	readerCode   = uuid.MustParse("0190a1b2-0000-7000-8000-0000000000c1")
	issuanceCode = uuid.MustParse("0190a1b2-0000-7000-8000-0000000000d1")

	warAndPeace = entity.Book{
		Code:          bookCode,
		PublisherCode: penguinCode,
		AuthorCode:    authorCode,
		Title:         "War and Peace",
		Price:         pgtype.Numeric{Int: big.NewInt(1250), Exp: -2, Valid: true},
		Amount:        1,
	}
	loan = entity.Issuance{
		Code:       issuanceCode,
		BookCode:   bookCode,
		ReaderCode: readerCode,
		IssuedAt:   time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
		ExpiresAt:  time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
	}
)

func TestBookRoutes(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		path           string
		body           any
		setupMock      func(ctrl *gomock.Controller) *mocks.MockLendingService
		expectedStatus int
		expectedCode   string
	}{
		{
			name:   "create - success",
			method: http.MethodPost,
			path:   "/v1/books",
			body: map[string]any{
				"publisher_code": penguinCode,
				"author_code":    authorCode,
				"title":          "War and Peace",
				"price":          12.5,
			},
			setupMock: func(ctrl *gomock.Controller) *mocks.MockLendingService {
				m := mocks.NewMockLendingService(ctrl)
				m.EXPECT().
					CreateBook(gomock.Any(), repository.Fields{
						"publisher_code": penguinCode,
						"author_code":    authorCode,
						"title":          "War and Peace",
						"price":          12.5,
					}).
					Return(warAndPeace, nil)
				return m
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:   "create - price required",
			method: http.MethodPost,
			path:   "/v1/books",
			body: map[string]any{
				"publisher_code": penguinCode,
				"author_code":    authorCode,
				"title":          "War and Peace",
			},
			setupMock:      mocks.NewMockLendingService,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   httpx.CodeValidation,
		},
		{
			name:   "create - publishing year out of range",
			method: http.MethodPost,
			path:   "/v1/books",
			body: map[string]any{
				"publisher_code":  penguinCode,
				"author_code":     authorCode,
				"title":           "War and Peace",
				"price":           1,
				"publishing_year": 10001,
			},
			setupMock:      mocks.NewMockLendingService,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   httpx.CodeValidation,
		},
		{
			name:   "create - missing author",
			method: http.MethodPost,
			path:   "/v1/books",
			body: map[string]any{
				"publisher_code": penguinCode,
				"author_code":    authorCode,
				"title":          "War and Peace",
				"price":          1,
			},
			setupMock: func(ctrl *gomock.Controller) *mocks.MockLendingService {
				m := mocks.NewMockLendingService(ctrl)
				m.EXPECT().
					CreateBook(gomock.Any(), gomock.Any()).
					Return(entity.Book{}, fmt.Errorf("author lock: %w", repository.ErrNotFound))
				return m
			},
			expectedStatus: http.StatusNotFound,
			expectedCode:   httpx.CodeNotFound,
		},
		{
			name:   "update - amount refused",
			method: http.MethodPatch,
			path:   "/v1/books/" + bookCode.String(),
			body:   map[string]any{"amount": 3},
			setupMock: func(ctrl *gomock.Controller) *mocks.MockLendingService {
				m := mocks.NewMockLendingService(ctrl)
				m.EXPECT().
					UpdateBook(gomock.Any(), bookCode, repository.Fields{"amount": 3}).
					Return(entity.Book{}, fmt.Errorf("%w: amount changes only through issuances", repository.ErrInvalidQuery))
				return m
			},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   httpx.CodeBadRequest,
		},
		{
			name:   "update - title",
			method: http.MethodPatch,
			path:   "/v1/books/" + bookCode.String(),
			body:   map[string]any{"title": "Anna Karenina"},
			setupMock: func(ctrl *gomock.Controller) *mocks.MockLendingService {
				m := mocks.NewMockLendingService(ctrl)
				m.EXPECT().
					UpdateBook(gomock.Any(), bookCode, repository.Fields{"title": "Anna Karenina"}).
					Return(warAndPeace, nil)
				return m
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "delete - success",
			method: http.MethodDelete,
			path:   "/v1/books/" + bookCode.String(),
			setupMock: func(ctrl *gomock.Controller) *mocks.MockLendingService {
				m := mocks.NewMockLendingService(ctrl)
				m.EXPECT().DeleteBook(gomock.Any(), bookCode).Return(warAndPeace, nil)
				return m
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "delete - not found",
			method: http.MethodDelete,
			path:   "/v1/books/" + bookCode.String(),
			setupMock: func(ctrl *gomock.Controller) *mocks.MockLendingService {
				m := mocks.NewMockLendingService(ctrl)
				m.EXPECT().
					DeleteBook(gomock.Any(), bookCode).
					Return(entity.Book{}, fmt.Errorf("book get: %w", repository.ErrNotFound))
				return m
			},
			expectedStatus: http.StatusNotFound,
			expectedCode:   httpx.CodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			d := testDeps()
			d.Lending = tt.setupMock(ctrl)

			resp := serve(d, testutil.NewRequest(tt.method, tt.path, tt.body))

			assert.Equal(t, tt.expectedStatus, resp.Code)
			assert.Equal(t, tt.expectedCode, resp.ErrorCode())
		})
	}
}

func TestIssuanceRoutes(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		path           string
		body           any
		setupMock      func(ctrl *gomock.Controller) *mocks.MockLendingService
		expectedStatus int
		expectedCode   string
	}{
		{
			name:   "checkout - success with dates",
			method: http.MethodPost,
			path:   "/v1/issuances",
			body: map[string]any{
				"book_code":   bookCode,
				"reader_code": readerCode,
				"issued_at":   "2026-01-10",
				"expires_at":  "2026-01-31",
			},
			setupMock: func(ctrl *gomock.Controller) *mocks.MockLendingService {
				m := mocks.NewMockLendingService(ctrl)
				m.EXPECT().
					CreateIssuance(gomock.Any(), repository.Fields{
						"book_code":   bookCode,
						"reader_code": readerCode,
						"issued_at":   loan.IssuedAt,
						"expires_at":  loan.ExpiresAt,
					}).
					Return(loan, nil)
				return m
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:   "checkout - borrow limit",
			method: http.MethodPost,
			path:   "/v1/issuances",
			body:   map[string]any{"book_code": bookCode, "reader_code": readerCode},
			setupMock: func(ctrl *gomock.Controller) *mocks.MockLendingService {
				m := mocks.NewMockLendingService(ctrl)
				m.EXPECT().
					CreateIssuance(gomock.Any(), repository.Fields{"book_code": bookCode, "reader_code": readerCode}).
					Return(entity.Issuance{}, lending.ErrBorrowLimitExceeded)
				return m
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedCode:   httpx.CodeBusinessRule,
		},
		{
			name:   "checkout - out of stock",
			method: http.MethodPost,
			path:   "/v1/issuances",
			body:   map[string]any{"book_code": bookCode, "reader_code": readerCode},
			setupMock: func(ctrl *gomock.Controller) *mocks.MockLendingService {
				m := mocks.NewMockLendingService(ctrl)
				m.EXPECT().
					CreateIssuance(gomock.Any(), gomock.Any()).
					Return(entity.Issuance{}, lending.ErrOutOfStock)
				return m
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedCode:   httpx.CodeBusinessRule,
		},
		{
			name:           "checkout - reader required",
			method:         http.MethodPost,
			path:           "/v1/issuances",
			body:           map[string]any{"book_code": bookCode},
			setupMock:      mocks.NewMockLendingService,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   httpx.CodeValidation,
		},
		{
			name:           "checkout - malformed date",
			method:         http.MethodPost,
			path:           "/v1/issuances",
			body:           map[string]any{"book_code": bookCode, "reader_code": readerCode, "issued_at": "10.01.2026"},
			setupMock:      mocks.NewMockLendingService,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   httpx.CodeBadRequest,
		},
		{
			name:   "move to another book",
			method: http.MethodPatch,
			path:   "/v1/issuances/" + issuanceCode.String(),
			body:   map[string]any{"book_code": bookCode},
			setupMock: func(ctrl *gomock.Controller) *mocks.MockLendingService {
				m := mocks.NewMockLendingService(ctrl)
				m.EXPECT().
					UpdateIssuance(gomock.Any(), issuanceCode, repository.Fields{"book_code": bookCode}).
					Return(loan, nil)
				return m
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "return - success",
			method: http.MethodDelete,
			path:   "/v1/issuances/" + issuanceCode.String(),
			setupMock: func(ctrl *gomock.Controller) *mocks.MockLendingService {
				m := mocks.NewMockLendingService(ctrl)
				m.EXPECT().DeleteIssuance(gomock.Any(), issuanceCode).Return(loan, nil)
				return m
			},
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			d := testDeps()
			d.Lending = tt.setupMock(ctrl)

			resp := serve(d, testutil.NewRequest(tt.method, tt.path, tt.body))

			assert.Equal(t, tt.expectedStatus, resp.Code)
			assert.Equal(t, tt.expectedCode, resp.ErrorCode())
		})
	}
}

func TestIssuanceDatesAreDays(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := mocks.NewMockLendingService(ctrl)
	m.EXPECT().DeleteIssuance(gomock.Any(), issuanceCode).Return(loan, nil)

	d := testDeps()
	d.Lending = m
	resp := serve(d, testutil.NewRequest(http.MethodDelete, "/v1/issuances/"+issuanceCode.String(), nil))

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "2026-01-10", resp.Data()["issued_at"])
	assert.Equal(t, "2026-01-31", resp.Data()["expires_at"])
}

func TestBookReadsSkipLendingService(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	d := testDeps()
	d.Lending = mocks.NewMockLendingService(ctrl)
	d.Books = &fakeStore[entity.Book]{
		get: func(code uuid.UUID) (entity.Book, error) {
			assert.Equal(t, bookCode, code)
			return warAndPeace, nil
		},
	}

	resp := serve(d, testutil.NewRequest(http.MethodGet, "/v1/books/"+bookCode.String(), nil))

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "War and Peace", resp.Data()["title"])
	assert.EqualValues(t, 12.5, resp.Data()["price"])
}
