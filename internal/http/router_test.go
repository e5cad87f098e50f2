package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"bookshelf/internal/testutil"
)

func TestRouter_Methods(t *testing.T) {
	tests := []struct {
		method         string
		path           string
		expectedStatus int
	}{
		{http.MethodPut, "/v1/books/0190a1b2-0000-7000-8000-0000000000b1", http.StatusMethodNotAllowed},
		{http.MethodPost, "/v1/reports", http.StatusMethodNotAllowed},
		{http.MethodDelete, "/v1/publishers", http.StatusMethodNotAllowed},
		{http.MethodGet, "/v1/shelves", http.StatusNotFound},
		{http.MethodGet, "/books", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			resp := serve(testDeps(), testutil.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.expectedStatus, resp.Code)
		})
	}
}
