package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrConflict          = errors.New("conflict")
)

type NotFoundError struct {
	Entity string
	ID     int
}

func (e *NotFoundError) Error() string { return fmt.Sprintf("%s %d not found", e.Entity, e.ID) }
func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// StockError names the item whose stock could not cover a sale.
type StockError struct {
	Entity    string
	ID        int
	Requested float64
}

func (e *StockError) Error() string {
	return fmt.Sprintf("%s %d: insufficient stock for %g", e.Entity, e.ID, e.Requested)
}
func (e *StockError) Unwrap() error { return ErrInsufficientStock }

// ConflictError is a write the stored data refuses: deleting a row that
// sales still reference, or reusing a unique usuario.
type ConflictError struct {
	Entity string
	ID     int
	Reason string
}

func (e *ConflictError) Error() string {
	if e.ID == 0 {
		return fmt.Sprintf("%s: %s", e.Entity, e.Reason)
	}
	return fmt.Sprintf("%s %d: %s", e.Entity, e.ID, e.Reason)
}
func (e *ConflictError) Unwrap() error { return ErrConflict }

const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
