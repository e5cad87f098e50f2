package http

import (
	"log/slog"
	"net/http"
	"time"

	"bookshelf/internal/entity"
)

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Publishers Store[entity.Publisher]
	Authors    Store[entity.Author]
	Readers    Store[entity.Reader]
	Books      Reader[entity.Book]
	Issuances  Reader[entity.Issuance]
	Lending    LendingService
	Reports    ReportBuilder
	DB         Pinger
	Logger     *slog.Logger
	Now        func() time.Time
}

// NewRouter registers every route. Middlewares are applied by the caller.
func NewRouter(d Deps) *http.ServeMux {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()

	NewResourceHandler[entity.Publisher, CreatePublisherRequest, UpdatePublisherRequest]("publisher", d.Publishers, logger).
		Register(mux, "/v1/publishers")
	NewResourceHandler[entity.Author, CreateAuthorRequest, UpdateAuthorRequest]("author", d.Authors, logger).
		Register(mux, "/v1/authors")
	NewResourceHandler[entity.Reader, CreateReaderRequest, UpdateReaderRequest]("reader", d.Readers, logger).
		Register(mux, "/v1/readers")
	NewResourceHandler[entity.Book, CreateBookRequest, UpdateBookRequest]("book", bookStore{Reader: d.Books, lending: d.Lending}, logger).
		Register(mux, "/v1/books")
	NewResourceHandler[entity.Issuance, CreateIssuanceRequest, UpdateIssuanceRequest]("issuance", issuanceStore{Reader: d.Issuances, lending: d.Lending}, logger).
		Register(mux, "/v1/issuances")

	reports := NewReportHandler(d.Reports, d.Now, logger)
	mux.HandleFunc("GET /v1/reports", reports.Download)

	health := NewHealthHandler(d.DB)
	mux.HandleFunc("GET /health", health.Health)
	mux.HandleFunc("GET /readyz", health.Ready)

	return mux
}
