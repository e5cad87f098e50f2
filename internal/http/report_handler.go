package http

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"bookshelf/internal/httpx"
	"bookshelf/internal/report"
	"bookshelf/internal/repository"
)

//go:generate mockgen -destination=mocks/mock_report_builder.go -package=mocks bookshelf/internal/http ReportBuilder

type ReportBuilder interface {
	Build(ctx context.Context, date time.Time) (report.Report, error)
}

type ReportHandler struct {
	builder ReportBuilder
	now     func() time.Time
	logger  *slog.Logger
}

func NewReportHandler(builder ReportBuilder, now func() time.Time, logger *slog.Logger) *ReportHandler {
	if now == nil {
		now = time.Now
	}
	return &ReportHandler{builder: builder, now: now, logger: logger}
}

// @Summary Download the due-for-return report
// @Description Every loan expiring on or before the date, grouped per reader
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param date query string false "YYYY-MM-DD, defaults to today"
// @Success 200 {file} file
// @Failure 400 {object} httpx.ErrorResponse
// @Router /v1/reports [get]
func (h *ReportHandler) Download(w http.ResponseWriter, r *http.Request) {
	date := h.now()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			writeError(w, r, h.logger, fmt.Errorf("%w: date must be YYYY-MM-DD, got %q", repository.ErrInvalidQuery, raw))
			return
		}
		date = parsed
	}

	rep, err := h.builder.Build(r.Context(), date)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var buf bytes.Buffer
	if err := rep.Render(&buf); err != nil {
		writeError(w, r, h.logger, fmt.Errorf("render report: %w", err))
		return
	}

	w.Header().Set("Content-Type", report.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", rep.Filename()))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Warn("write report", "request_id", httpx.RequestIDFrom(r), "error", err)
	}
}
