package http

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type validationSample struct {
	Name  string  `json:"name" validate:"required,notblank,max=10"`
	Phone string  `json:"phone" validate:"omitempty,phone"`
	Year  *int    `json:"year" validate:"omitempty,gte=0,lte=10000"`
	City  *string `json:"city" validate:"omitempty,max=5"`
}

type priceSample struct {
	Price *float64 `json:"price" validate:"omitempty,gte=0,lt=100000000,money"`
}

func floatPtr(v float64) *float64 { return &v }

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name      string
		in        any
		wantField string
		wantMsg   string
	}{
		{
			name: "valid",
			in:   validationSample{Name: "Tolstoy", Phone: "+7(900)123-45-67", Year: intPtr(1869)},
		},
		{
			name:      "required uses json name",
			in:        validationSample{},
			wantField: "name",
			wantMsg:   "name is required",
		},
		{
			name:      "blank",
			in:        validationSample{Name: "   "},
			wantField: "name",
			wantMsg:   "name must not be blank",
		},
		{
			name:      "too long",
			in:        validationSample{Name: "abcdefghijk"},
			wantField: "name",
			wantMsg:   "name must be at most 10 characters",
		},
		{
			name:      "bad phone",
			in:        validationSample{Name: "x", Phone: "89001234567"},
			wantField: "phone",
			wantMsg:   "phone must look like +7(900)123-45-67",
		},
		{
			name:      "year out of range",
			in:        validationSample{Name: "x", Year: intPtr(10001)},
			wantField: "year",
			wantMsg:   "year must be less than or equal to 10000",
		},
		{
			name:      "optional pointer checked when set",
			in:        validationSample{Name: "x", City: strPtr("Moscow")},
			wantField: "city",
			wantMsg:   "city must be at most 5 characters",
		},
		{
			name: "price with cents",
			in:   priceSample{Price: floatPtr(99999999.99)},
		},
		{
			name:      "price too large for the column",
			in:        priceSample{Price: floatPtr(1e9)},
			wantField: "price",
			wantMsg:   "price must be less than 100000000",
		},
		{
			name:      "price with fractions of a cent",
			in:        priceSample{Price: floatPtr(10.555)},
			wantField: "price",
			wantMsg:   "price must have at most two decimal places",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			details := ValidateStruct(tt.in)
			if tt.wantField == "" {
				assert.Empty(t, details)
				return
			}
			if assert.Len(t, details, 1) {
				assert.Equal(t, tt.wantField, details[0].Field)
				assert.Equal(t, tt.wantMsg, details[0].Message)
			}
		})
	}
}

func TestValidateStruct_BookPrice(t *testing.T) {
	req := CreateBookRequest{
		PublisherCode: uuid.Must(uuid.NewV7()),
		AuthorCode:    uuid.Must(uuid.NewV7()),
		Title:         "War and Peace",
		Price:         floatPtr(1234567890.555),
	}

	details := ValidateStruct(req)
	if assert.Len(t, details, 1) {
		assert.Equal(t, "price", details[0].Field)
	}

	update := UpdateBookRequest{Price: floatPtr(0.001)}
	details = ValidateStruct(update)
	if assert.Len(t, details, 1) {
		assert.Equal(t, "price must have at most two decimal places", details[0].Message)
	}
}
