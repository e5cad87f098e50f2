package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSchema = Schema{
	Entity:  "book",
	Table:   "books",
	Columns: []string{"author_code", "title", "price", "amount", "published_on"},
	Filters: map[string]Kind{
		"author_code":  KindUUID,
		"title":        KindText,
		"price":        KindDecimal,
		"amount":       KindInt,
		"published_on": KindDate,
	},
	Sorts: []string{"title", "amount"},
}

func TestSchema_Condition(t *testing.T) {
	author := uuid.MustParse("0190b6a4-7e2c-7c3e-9a51-3c2b1d0e4f5a")

	tests := []struct {
		name     string
		search   Search
		fragment string
		arg      any
	}{
		{"similar escapes wildcards", Search{"title", ModeSimilar, "50%_off"}, `"title" ILIKE $1`, `%50\%\_off%`},
		{"similar on text", Search{"title", ModeSimilar, "War"}, `"title" ILIKE $1`, "%War%"},
		{"equal on text keeps raw token", Search{"title", ModeEqual, "1984"}, `"title" = $1`, "1984"},
		{"empty mode is equal", Search{"amount", "", "3"}, `"amount" = $1`, int64(3)},
		{"greater than on int", Search{"amount", ModeGreaterThan, "2"}, `"amount" > $1`, int64(2)},
		{"largest int", Search{"amount", ModeLessThanOrEqual, "2147483647"}, `"amount" <= $1`, int64(2147483647)},
		{"less than or equal on decimal", Search{"price", ModeLessThanOrEqual, "10.5"}, `"price" <= $1`, 10.5},
		{"int value on decimal", Search{"price", ModeGreaterThanOrEqual, "10"}, `"price" >= $1`, int64(10)},
		{"date range", Search{"published_on", ModeLessThan, "2024-01-31"}, `"published_on" < $1`, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)},
		{"uuid equal", Search{"author_code", ModeEqual, author.String()}, `"author_code" = $1`, author.String()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := testSchema.countQuery(&tt.search)
			require.NoError(t, err)

			query, args, err := ds.ToSQL()
			require.NoError(t, err)
			assert.Contains(t, query, tt.fragment)
			require.Len(t, args, 1)
			assert.Equal(t, tt.arg, args[0])
		})
	}
}

func TestSchema_Condition_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		search Search
	}{
		{"unknown field", Search{"isbn", ModeEqual, "1"}},
		{"unknown mode", Search{"title", SearchMode("like"), "War"}},
		{"similar on numeric field", Search{"amount", ModeSimilar, "1"}},
		{"range with text value", Search{"amount", ModeGreaterThan, "abc"}},
		{"range on text field", Search{"title", ModeLessThan, "5"}},
		{"range on uuid field", Search{"author_code", ModeGreaterThan, "1"}},
		{"text equal on int field", Search{"amount", ModeEqual, "many"}},
		{"decimal on int field", Search{"amount", ModeEqual, "1.5"}},
		{"int field overflow", Search{"amount", ModeEqual, "3000000000"}},
		{"int field underflow", Search{"amount", ModeLessThan, "-2147483649"}},
		{"number on date field", Search{"published_on", ModeGreaterThan, "2024"}},
		{"bad uuid", Search{"author_code", ModeEqual, "nope"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := testSchema.condition(tt.search)
			assert.ErrorIs(t, err, ErrInvalidQuery)
		})
	}
}

func TestSchema_SelectQuery(t *testing.T) {
	t.Run("sort with tie breaker and page", func(t *testing.T) {
		ds, err := testSchema.selectQuery(ListParams{
			Sort: &Sort{Field: "title", Order: OrderDesc},
			Page: &Page{Skip: 20, Limit: 10},
		})
		require.NoError(t, err)

		query, args, err := ds.ToSQL()
		require.NoError(t, err)
		assert.Contains(t, query, `SELECT "code", "author_code", "title", "price", "amount", "published_on" FROM "books"`)
		assert.Contains(t, query, `ORDER BY "title" DESC, "code" ASC`)
		assert.Contains(t, query, "LIMIT")
		assert.Contains(t, query, "OFFSET")
		assert.ElementsMatch(t, []any{int64(10), int64(20)}, args)
	})

	t.Run("defaults to code order and no page", func(t *testing.T) {
		ds, err := testSchema.selectQuery(ListParams{})
		require.NoError(t, err)

		query, args, err := ds.ToSQL()
		require.NoError(t, err)
		assert.Contains(t, query, `ORDER BY "code" ASC`)
		assert.NotContains(t, query, "LIMIT")
		assert.Empty(t, args)
	})

	t.Run("rejects unsortable field", func(t *testing.T) {
		_, err := testSchema.selectQuery(ListParams{Sort: &Sort{Field: "price", Order: OrderAsc}})
		assert.ErrorIs(t, err, ErrInvalidQuery)
	})

	t.Run("rejects unknown sort order", func(t *testing.T) {
		_, err := testSchema.selectQuery(ListParams{Sort: &Sort{Field: "title", Order: "sideways"}})
		assert.ErrorIs(t, err, ErrInvalidQuery)
	})

	t.Run("rejects bad page", func(t *testing.T) {
		_, err := testSchema.selectQuery(ListParams{Page: &Page{Skip: 0, Limit: 500}})
		assert.ErrorIs(t, err, ErrInvalidQuery)
	})
}

func TestSchema_LockQuery(t *testing.T) {
	code := uuid.MustParse("0190b6a4-7e2c-7c3e-9a51-3c2b1d0e4f5a")

	query, args, err := testSchema.lockQuery(code).ToSQL()
	require.NoError(t, err)
	assert.Contains(t, query, `WHERE ("code" = $1)`)
	assert.Contains(t, query, "FOR UPDATE")
	assert.Equal(t, []any{code.String()}, args)
}

func TestSchema_CheckFields(t *testing.T) {
	assert.NoError(t, testSchema.checkFields(Fields{"title": "Dune", "amount": 2}))
	assert.ErrorIs(t, testSchema.checkFields(Fields{"code": uuid.New()}), ErrInvalidQuery)
	assert.ErrorIs(t, testSchema.checkFields(Fields{"isbn": "123"}), ErrInvalidQuery)
}
