package repository

import (
	"math"
	"strings"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"
)

const dialectPostgres = "postgres"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type sqlBuilder interface {
	ToSQL() (string, []any, error)
}

func builder() goqu.DialectWrapper {
	return goqu.Dialect(dialectPostgres)
}

// condition turns a search into a WHERE expression, rejecting fields that are
// not filterable and modes the column kind cannot support.
func (s Schema) condition(search Search) (exp.Expression, error) {
	kind, ok := s.Filters[search.Field]
	if !ok {
		return nil, invalidQuery("%s cannot be searched by %q", s.Entity, search.Field)
	}
	mode := search.Mode
	if mode == "" {
		mode = ModeEqual
	}
	if !mode.valid() {
		return nil, invalidQuery("unknown search mode %q", mode)
	}

	col := goqu.C(search.Field)
	if mode == ModeSimilar {
		if kind != KindText {
			return nil, invalidQuery("mode %s is only valid on text fields, %q is not one", ModeSimilar, search.Field)
		}
		return col.ILike("%" + likeEscaper.Replace(search.Value) + "%"), nil
	}

	value := CoerceValue(search.Value)
	if mode.ranged() {
		if !kind.ordered() {
			return nil, invalidQuery("mode %s is not valid on field %q", mode, search.Field)
		}
		if value.Kind == ValueText {
			return nil, invalidQuery("mode %s needs a number or a date, got %q", mode, search.Value)
		}
	}

	operand, err := operandFor(search.Field, kind, value)
	if err != nil {
		return nil, err
	}

	switch mode {
	case ModeLessThan:
		return col.Lt(operand), nil
	case ModeGreaterThan:
		return col.Gt(operand), nil
	case ModeLessThanOrEqual:
		return col.Lte(operand), nil
	case ModeGreaterThanOrEqual:
		return col.Gte(operand), nil
	default:
		return col.Eq(operand), nil
	}
}

// operandFor picks the representation of value that matches the column kind.
func operandFor(field string, kind Kind, value Value) (any, error) {
	switch kind {
	case KindText:
		return value.Raw, nil
	case KindUUID:
		id, err := uuid.Parse(value.Raw)
		if err != nil {
			return nil, invalidQuery("%q is not a valid code for %q", value.Raw, field)
		}
		return id.String(), nil
	case KindInt:
		if value.Kind == ValueInt {
			if value.Int < math.MinInt32 || value.Int > math.MaxInt32 {
				return nil, invalidQuery("%s is out of range for %q", value.Raw, field)
			}
			return value.Int, nil
		}
	case KindDecimal:
		switch value.Kind {
		case ValueInt:
			return value.Int, nil
		case ValueDecimal:
			return value.Decimal, nil
		}
	case KindDate:
		if value.Kind == ValueDate {
			return value.Date, nil
		}
	}
	return nil, invalidQuery("field %q cannot be compared with %s value %q", field, value.Kind, value.Raw)
}

func (s Schema) ordering(sort *Sort) ([]exp.OrderedExpression, error) {
	tieBreaker := goqu.C(colCode).Asc()
	if sort == nil {
		return []exp.OrderedExpression{tieBreaker}, nil
	}
	if !s.sortable(sort.Field) {
		return nil, invalidQuery("%s cannot be sorted by %q", s.Entity, sort.Field)
	}

	col := goqu.C(sort.Field)
	var ordered exp.OrderedExpression
	switch sort.Order {
	case "", OrderAsc:
		ordered = col.Asc()
	case OrderDesc:
		ordered = col.Desc()
	default:
		return nil, invalidQuery("unknown sort order %q", sort.Order)
	}
	if sort.Field == colCode {
		return []exp.OrderedExpression{ordered}, nil
	}
	return []exp.OrderedExpression{ordered, tieBreaker}, nil
}

func (s Schema) where(ds *goqu.SelectDataset, search *Search) (*goqu.SelectDataset, error) {
	if search == nil {
		return ds, nil
	}
	cond, err := s.condition(*search)
	if err != nil {
		return nil, err
	}
	return ds.Where(cond), nil
}

func (s Schema) selectQuery(params ListParams) (*goqu.SelectDataset, error) {
	ds := builder().From(s.Table).Prepared(true).Select(s.selectColumns()...)

	ds, err := s.where(ds, params.Search)
	if err != nil {
		return nil, err
	}

	order, err := s.ordering(params.Sort)
	if err != nil {
		return nil, err
	}
	ds = ds.Order(order...)

	if params.Page != nil {
		if err := params.Page.Validate(); err != nil {
			return nil, err
		}
		ds = ds.Offset(uint(params.Page.Skip)).Limit(uint(params.Page.Limit))
	}
	return ds, nil
}

func (s Schema) countQuery(search *Search) (*goqu.SelectDataset, error) {
	ds := builder().From(s.Table).Prepared(true).Select(goqu.COUNT(goqu.Star()))
	return s.where(ds, search)
}

func (s Schema) byCodeQuery(code uuid.UUID) *goqu.SelectDataset {
	return builder().From(s.Table).Prepared(true).
		Select(s.selectColumns()...).
		Where(goqu.C(colCode).Eq(code.String()))
}

func (s Schema) lockQuery(code uuid.UUID) *goqu.SelectDataset {
	return s.byCodeQuery(code).ForUpdate(goqu.Wait)
}

func (s Schema) byCodesQuery(codes []uuid.UUID) *goqu.SelectDataset {
	vals := make([]any, len(codes))
	for i, c := range codes {
		vals[i] = c.String()
	}
	return builder().From(s.Table).Prepared(true).
		Select(s.selectColumns()...).
		Where(goqu.C(colCode).In(vals...))
}

func (s Schema) insertQuery(values Fields) *goqu.InsertDataset {
	return builder().Insert(s.Table).Prepared(true).
		Rows(goqu.Record(values)).
		Returning(s.selectColumns()...)
}

func (s Schema) updateQuery(code uuid.UUID, values Fields) *goqu.UpdateDataset {
	return builder().Update(s.Table).Prepared(true).
		Set(goqu.Record(values)).
		Where(goqu.C(colCode).Eq(code.String())).
		Returning(s.selectColumns()...)
}

func (s Schema) deleteQuery(code uuid.UUID) *goqu.DeleteDataset {
	return builder().Delete(s.Table).Prepared(true).
		Where(goqu.C(colCode).Eq(code.String())).
		Returning(s.selectColumns()...)
}
