package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"restaurant-ops/internal/domain"
	"restaurant-ops/internal/service"

	"github.com/lib/pq"
)

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type PostgresRepository struct {
	DB   *sql.DB
	q    querier
	inTx bool
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db, q: db}
}

var _ service.Store = (*PostgresRepository)(nil)

func (r *PostgresRepository) Atomically(ctx context.Context, readOnly bool, fn func(repo service.Repository) error) error {
	return r.withTx(ctx, readOnly, func(tx *PostgresRepository) error {
		return fn(tx)
	})
}

// withTx joins the surrounding transaction when r is already bound to one.
func (r *PostgresRepository) withTx(ctx context.Context, readOnly bool, fn func(tx *PostgresRepository) error) error {
	if r.inTx {
		return fn(r)
	}

	tx, err := r.DB.BeginTx(ctx, &sql.TxOptions{ReadOnly: readOnly})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(&PostgresRepository{DB: r.DB, q: tx, inTx: true}); err != nil {
		return err
	}
	return tx.Commit()
}

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case uniqueViolation, foreignKeyViolation:
			return fmt.Errorf("%w: %s", domain.ErrConflict, pqErr.Detail)
		}
	}
	return err
}

func rowsAffected(result sql.Result, err error) (int64, error) {
	if err != nil {
		return 0, mapError(err)
	}
	return result.RowsAffected()
}

func expectOneRow(result sql.Result, err error) error {
	n, err := rowsAffected(result, err)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
