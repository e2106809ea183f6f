package repository

import (
	"context"

	"pos-system/internal/domain"
	"pos-system/internal/microservices/billing/models"
)

type CatalogRepositoryInterface interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	ListBeverages(ctx context.Context) ([]models.Beverage, error)
	ListIngredients(ctx context.Context) ([]models.Ingredient, error)
	ListEmployees(ctx context.Context) ([]models.Employee, error)
}

type SalesRepositoryInterface interface {
	CreateSale(ctx context.Context, req domain.SaleRequest) (models.SaleReceipt, error)
	ListSales(ctx context.Context) ([]domain.SaleRecord, error)
	GetSale(ctx context.Context, id int) (domain.SaleRecord, error)
}

type StockRepositoryInterface interface {
	UpdateIngredientStock(ctx context.Context, id int, stock float64) error
	UpdateBeverageStock(ctx context.Context, id int, stock int) error
}

// InventoryAdminRepositoryInterface edits the backend catalog.
type InventoryAdminRepositoryInterface interface {
	CreateProduct(ctx context.Context, in domain.ProductInput) (domain.ProductRecord, error)
	UpdateProduct(ctx context.Context, id int, in domain.ProductInput) (domain.ProductRecord, error)
	DeleteProduct(ctx context.Context, id int) error

	CreateBeverage(ctx context.Context, in domain.BeverageInput) (domain.BeverageRecord, error)
	UpdateBeverage(ctx context.Context, id int, upd domain.ItemUpdate) (domain.BeverageRecord, error)
	DeleteBeverage(ctx context.Context, id int) error

	CreateIngredients(ctx context.Context, batch domain.IngredientBatch) ([]domain.IngredientRecord, error)
	UpdateIngredient(ctx context.Context, id int, upd domain.ItemUpdate) (domain.IngredientRecord, error)
	DeleteIngredient(ctx context.Context, id int) error
}

type StaffRepositoryInterface interface {
	ListStaff(ctx context.Context) ([]domain.EmployeeRecord, error)
	CreateEmployee(ctx context.Context, in domain.EmployeeInput) (domain.EmployeeRecord, error)
	UpdateEmployee(ctx context.Context, id int, in domain.EmployeeInput) (domain.EmployeeRecord, error)
	DeleteEmployee(ctx context.Context, id int) error
}

type ReportsRepositoryInterface interface {
	BestSelling(ctx context.Context, kind, period string) ([]domain.BestSellingRow, error)
	TotalSales(ctx context.Context, period string) (domain.TotalSales, error)
}

type Repository struct {
	CatalogRepo CatalogRepositoryInterface
	SalesRepo   SalesRepositoryInterface
	StockRepo   StockRepositoryInterface
	ReportsRepo ReportsRepositoryInterface
	AdminRepo   InventoryAdminRepositoryInterface
	StaffRepo   StaffRepositoryInterface
}

func New(client *BackendClient) *Repository {
	return &Repository{
		CatalogRepo: client,
		SalesRepo:   client,
		StockRepo:   client,
		ReportsRepo: client,
		AdminRepo:   client,
		StaffRepo:   client,
	}
}
