// Package repository provides generic persistence for entities addressed by a
// code: CRUD plus parameterized listing (search, sort, pagination).
package repository

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"bookshelf/internal/platform/postgres"
)

// Logger is the logging surface the repository needs. *slog.Logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type settings struct {
	timeout time.Duration
	logger  Logger
	now     func() time.Time
}

// Option configures a Repository.
type Option func(*settings)

// WithTimeout bounds every statement the repository runs.
func WithTimeout(d time.Duration) Option {
	return func(s *settings) { s.timeout = d }
}

func WithLogger(l Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithClock replaces time.Now for create-time defaults.
func WithClock(now func() time.Time) Option {
	return func(s *settings) { s.now = now }
}

// Repository persists entities of type E described by a Schema.
type Repository[E Entity] struct {
	db     postgres.Conn
	schema Schema
	settings
}

func New[E Entity](db postgres.Conn, schema Schema, opts ...Option) *Repository[E] {
	r := &Repository[E]{
		db:     db,
		schema: schema,
		settings: settings{
			timeout: 5 * time.Second,
			now:     time.Now,
		},
	}
	for _, opt := range opts {
		opt(&r.settings)
	}
	return r
}

// WithTx returns a copy of the repository bound to tx. Mutations on the copy
// run in savepoints of tx.
func (r *Repository[E]) WithTx(tx pgx.Tx) *Repository[E] {
	c := *r
	c.db = tx
	return &c
}

func (r *Repository[E]) Schema() Schema {
	return r.schema
}

func (r *Repository[E]) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

// Get returns the entity with the given code or ErrNotFound.
func (r *Repository[E]) Get(ctx context.Context, code uuid.UUID) (E, error) {
	e, found, err := r.Find(ctx, code)
	if err != nil {
		return e, err
	}
	if !found {
		return e, fmt.Errorf("%s %s: %w", r.schema.Entity, code, ErrNotFound)
	}
	return e, nil
}

// Find is Get without the not-found error.
func (r *Repository[E]) Find(ctx context.Context, code uuid.UUID) (E, bool, error) {
	e, err := r.queryOne(ctx, r.schema.byCodeQuery(code))
	if errors.Is(err, pgx.ErrNoRows) {
		var zero E
		return zero, false, nil
	}
	if err != nil {
		return e, false, r.fail("find", err)
	}
	return e, true, nil
}

// Lock reads the entity and holds a row lock until the enclosing transaction
// ends.
func (r *Repository[E]) Lock(ctx context.Context, code uuid.UUID) (E, error) {
	e, err := r.queryOne(ctx, r.schema.lockQuery(code))
	if errors.Is(err, pgx.ErrNoRows) {
		return e, fmt.Errorf("%s %s: %w", r.schema.Entity, code, ErrNotFound)
	}
	if err != nil {
		return e, r.fail("lock", err)
	}
	return e, nil
}

// List returns the entities matching params. Invalid parameters are rejected
// before any statement runs.
func (r *Repository[E]) List(ctx context.Context, params ListParams) ([]E, error) {
	ds, err := r.schema.selectQuery(params)
	if err != nil {
		return nil, err
	}
	out, err := r.queryMany(ctx, ds)
	if err != nil {
		return nil, r.fail("list", err)
	}
	return out, nil
}

// Count returns how many entities match search. A nil search counts all.
func (r *Repository[E]) Count(ctx context.Context, search *Search) (int, error) {
	ds, err := r.schema.countQuery(search)
	if err != nil {
		return 0, err
	}
	query, args, err := ds.ToSQL()
	if err != nil {
		return 0, r.fail("count", err)
	}
	r.debug(query, args)

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var n int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, r.fail("count", err)
	}
	return int(n), nil
}

// GetMany fetches the entities with the given codes keyed by code. Unknown
// codes are absent from the result.
func (r *Repository[E]) GetMany(ctx context.Context, codes []uuid.UUID) (map[uuid.UUID]E, error) {
	out := make(map[uuid.UUID]E, len(codes))
	if len(codes) == 0 {
		return out, nil
	}

	seen := make(map[uuid.UUID]struct{}, len(codes))
	unique := make([]uuid.UUID, 0, len(codes))
	for _, c := range codes {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		unique = append(unique, c)
	}

	rows, err := r.queryMany(ctx, r.schema.byCodesQuery(unique))
	if err != nil {
		return nil, r.fail("get many", err)
	}
	for _, e := range rows {
		out[e.GetCode()] = e
	}
	return out, nil
}

// Create applies the schema defaults, assigns a fresh code and stores the
// entity. The stored row is returned.
func (r *Repository[E]) Create(ctx context.Context, fields Fields) (E, error) {
	var created E
	if err := r.schema.checkFields(fields); err != nil {
		return created, err
	}

	values := maps.Clone(fields)
	if values == nil {
		values = Fields{}
	}
	if r.schema.Defaults != nil {
		r.schema.Defaults(values, r.now())
	}
	code, err := uuid.NewV7()
	if err != nil {
		return created, r.fail("create", err)
	}
	values[colCode] = code

	err = postgres.InTx(ctx, r.db, func(tx pgx.Tx) error {
		var err error
		created, err = r.WithTx(tx).queryOne(ctx, r.schema.insertQuery(values))
		return err
	})
	if err != nil {
		return created, r.fail("create", err)
	}
	return created, nil
}

// Update changes the given fields and keeps every other one.
func (r *Repository[E]) Update(ctx context.Context, code uuid.UUID, fields Fields) (E, error) {
	var updated E
	if err := r.schema.checkFields(fields); err != nil {
		return updated, err
	}

	err := postgres.InTx(ctx, r.db, func(tx pgx.Tx) error {
		txRepo := r.WithTx(tx)
		current, err := txRepo.Get(ctx, code)
		if err != nil {
			return err
		}
		if len(fields) == 0 {
			updated = current
			return nil
		}
		updated, err = txRepo.queryOne(ctx, r.schema.updateQuery(code, fields))
		return err
	})
	if err != nil {
		return updated, r.fail("update", err)
	}
	return updated, nil
}

// Delete removes the entity and returns its last state.
func (r *Repository[E]) Delete(ctx context.Context, code uuid.UUID) (E, error) {
	var deleted E
	err := postgres.InTx(ctx, r.db, func(tx pgx.Tx) error {
		txRepo := r.WithTx(tx)
		if _, err := txRepo.Get(ctx, code); err != nil {
			return err
		}
		var err error
		deleted, err = txRepo.queryOne(ctx, r.schema.deleteQuery(code))
		return err
	})
	if err != nil {
		return deleted, r.fail("delete", err)
	}
	return deleted, nil
}

func (r *Repository[E]) queryOne(ctx context.Context, b sqlBuilder) (E, error) {
	var zero E
	query, args, err := b.ToSQL()
	if err != nil {
		return zero, err
	}
	r.debug(query, args)

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return zero, err
	}
	return pgx.CollectOneRow(rows, pgx.RowToStructByName[E])
}

func (r *Repository[E]) queryMany(ctx context.Context, b sqlBuilder) ([]E, error) {
	query, args, err := b.ToSQL()
	if err != nil {
		return nil, err
	}
	r.debug(query, args)

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[E])
}

func (r *Repository[E]) debug(query string, args []any) {
	if r.logger != nil {
		r.logger.Debug("sql", "entity", r.schema.Entity, "query", query, "args", len(args))
	}
}

// fail classifies err and logs store faults.
func (r *Repository[E]) fail(op string, err error) error {
	err = classify(r.schema.Entity, op, err)
	if r.logger == nil {
		return err
	}
	switch {
	case errors.Is(err, ErrOperationFailed):
		r.logger.Error("repository operation failed", "entity", r.schema.Entity, "op", op, "error", err)
	case errors.Is(err, ErrConflict):
		r.logger.Warn("repository constraint violated", "entity", r.schema.Entity, "op", op, "constraint", ConstraintName(err))
	}
	return err
}
