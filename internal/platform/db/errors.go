package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned by repository lookups that match no row.
var ErrNotFound = errors.New("record not found")

// ForeignKeyViolation means a referenced row does not exist.
type ForeignKeyViolation struct {
	Table      string
	Constraint string
	Cause      error
}

func (e *ForeignKeyViolation) Error() string {
	return fmt.Sprintf("foreign key violation on %s (%s): %v", e.Table, e.Constraint, e.Cause)
}

func (e *ForeignKeyViolation) Unwrap() error { return e.Cause }

// StorageConstraintError covers rows the database refused for any other
// structural reason: NOT NULL, CHECK, length, numeric range, bad enum text.
type StorageConstraintError struct {
	Code       string
	Table      string
	Column     string
	Constraint string
	Cause      error
}

func (e *StorageConstraintError) Error() string {
	return fmt.Sprintf("constraint violation %s on %s: %v", e.Code, e.Table, e.Cause)
}

func (e *StorageConstraintError) Unwrap() error { return e.Cause }

// SQLSTATE codes mapped to StorageConstraintError.
var constraintCodes = map[string]bool{
	"23502": true, // not_null_violation
	"23505": true, // unique_violation
	"23514": true, // check_violation
	"22001": true, // string_data_right_truncation
	"22003": true, // numeric_value_out_of_range
	"22007": true, // invalid_datetime_format
	"22008": true, // datetime_field_overflow
	"22P02": true, // invalid_text_representation
}

// Classify turns driver errors into the package's error categories.
// Errors it does not recognise are returned unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	if pgErr.Code == "23503" {
		return &ForeignKeyViolation{Table: pgErr.TableName, Constraint: pgErr.ConstraintName, Cause: err}
	}
	if constraintCodes[pgErr.Code] {
		return &StorageConstraintError{
			Code:       pgErr.Code,
			Table:      pgErr.TableName,
			Column:     pgErr.ColumnName,
			Constraint: pgErr.ConstraintName,
			Cause:      err,
		}
	}
	return err
}

// Queryable is the subset of pgx shared by pools, connections and transactions.
type Queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

// Conn prefers a transaction carried by ctx over the pool.
func Conn(ctx context.Context, pool *pgxpool.Pool) Queryable {
	if tx := TxFromContext(ctx); tx != nil {
		return tx
	}
	return pool
}
