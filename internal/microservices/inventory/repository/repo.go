package repository

import (
	"context"
	"database/sql"
)

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Repository struct {
	CatalogRepo CatalogRepositoryInterface
	SalesRepo   SalesRepositoryInterface
	ReportsRepo ReportsRepositoryInterface
	StaffRepo   StaffRepositoryInterface
}

func New(db *sql.DB) *Repository {
	return &Repository{
		CatalogRepo: NewCatalogRepository(db),
		SalesRepo:   NewSalesRepository(db),
		ReportsRepo: NewReportsRepository(db),
		StaffRepo:   NewStaffRepository(db),
	}
}
