package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"pos-system/internal/common/logger"
	"pos-system/internal/domain"
	"pos-system/internal/microservices/billing/models"
	"pos-system/internal/microservices/billing/repository"
)

// fakeBackend is an in-memory stand-in for the REST client.
type fakeBackend struct {
	mu sync.Mutex

	products    []models.Product
	beverages   []models.Beverage
	ingredients []models.Ingredient
	employees   []models.Employee

	failProducts  error
	failBeverages error
	failSale      error

	sales      []domain.SaleRequest
	saleCtxErr error
	stored     map[int]domain.SaleRecord

	// when set, CreateSale signals saleEntered and waits for saleRelease
	saleEntered, saleRelease chan struct{}

	ingredientStock map[int]float64
	beverageStock   map[int]int

	reportKind, reportPeriod string

	writes    []string
	failWrite error
}

var errBackendDown = &models.NetworkError{Op: "create venta", Status: 500, Detail: "boom"}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		products: []models.Product{
			{ID: 1, Name: "Arepa de queso", Price: 5000, Ingredients: []models.ProductIngredient{
				{IngredientID: 1, Name: "Queso", DefaultAmount: 2},
				{IngredientID: 2, Name: "Mantequilla", DefaultAmount: 1},
			}},
			{ID: 2, Name: "Arepa sola", Price: 2000, Ingredients: []models.ProductIngredient{}},
		},
		beverages: []models.Beverage{{ID: 9, Name: "Gaseosa", Price: 3000, Stock: 12}},
		ingredients: []models.Ingredient{
			{ID: 1, Name: "Queso", StockCurrent: 10, StockMinimum: 2},
			{ID: 2, Name: "Mantequilla", StockCurrent: 4, StockMinimum: 1},
			{ID: 3, Name: "Huevo", StockCurrent: 30, StockMinimum: 6},
		},
		employees:       []models.Employee{{ID: 7, FirstName: "Luis", LastName: "Pérez", Role: "Cajero"}},
		stored:          map[int]domain.SaleRecord{},
		ingredientStock: map[int]float64{},
		beverageStock:   map[int]int{},
	}
}

func (f *fakeBackend) ListProducts(context.Context) ([]models.Product, error) {
	if f.failProducts != nil {
		return nil, f.failProducts
	}
	return f.products, nil
}

func (f *fakeBackend) ListBeverages(context.Context) ([]models.Beverage, error) {
	if f.failBeverages != nil {
		return nil, f.failBeverages
	}
	return f.beverages, nil
}

func (f *fakeBackend) ListIngredients(context.Context) ([]models.Ingredient, error) {
	return f.ingredients, nil
}

func (f *fakeBackend) ListEmployees(context.Context) ([]models.Employee, error) {
	return f.employees, nil
}

func (f *fakeBackend) CreateSale(ctx context.Context, req domain.SaleRequest) (models.SaleReceipt, error) {
	if f.saleEntered != nil {
		f.saleEntered <- struct{}{}
		<-f.saleRelease
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saleCtxErr = ctx.Err()
	if f.failSale != nil {
		return models.SaleReceipt{}, f.failSale
	}
	f.sales = append(f.sales, req)
	return models.SaleReceipt{SaleID: len(f.sales), Date: time.Date(2024, 5, 17, 19, 30, 0, 0, time.UTC), Total: req.Total}, nil
}

func (f *fakeBackend) ListSales(context.Context) ([]domain.SaleRecord, error) {
	out := make([]domain.SaleRecord, 0, len(f.stored))
	for _, s := range f.stored {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeBackend) GetSale(_ context.Context, id int) (domain.SaleRecord, error) {
	s, ok := f.stored[id]
	if !ok {
		return domain.SaleRecord{}, &models.NotFoundError{Entity: "venta", ID: id}
	}
	return s, nil
}

func (f *fakeBackend) UpdateIngredientStock(_ context.Context, id int, stock float64) error {
	f.ingredientStock[id] = stock
	return nil
}

func (f *fakeBackend) UpdateBeverageStock(_ context.Context, id int, stock int) error {
	f.beverageStock[id] = stock
	return nil
}

func (f *fakeBackend) BestSelling(_ context.Context, kind, period string) ([]domain.BestSellingRow, error) {
	f.reportKind, f.reportPeriod = kind, period
	return []domain.BestSellingRow{{Name: "Gaseosa", CantidadVendida: 40}}, nil
}

func (f *fakeBackend) TotalSales(_ context.Context, period string) (domain.TotalSales, error) {
	f.reportPeriod = period
	return domain.TotalSales{domain.MetodoEfectivo: 120000}, nil
}

func (f *fakeBackend) write(op string, id int) error {
	if f.failWrite != nil {
		return f.failWrite
	}
	f.writes = append(f.writes, fmt.Sprintf("%s %d", op, id))
	return nil
}

func (f *fakeBackend) CreateProduct(_ context.Context, in domain.ProductInput) (domain.ProductRecord, error) {
	if err := f.write("create producto", 0); err != nil {
		return domain.ProductRecord{}, err
	}
	f.products = append(f.products, models.Product{ID: len(f.products) + 1, Name: in.Name, Price: in.Price})
	return domain.ProductRecord{ProductoID: len(f.products), Name: in.Name, Price: in.Price}, nil
}

func (f *fakeBackend) UpdateProduct(_ context.Context, id int, in domain.ProductInput) (domain.ProductRecord, error) {
	return domain.ProductRecord{ProductoID: id, Name: in.Name, Price: in.Price}, f.write("update producto", id)
}

func (f *fakeBackend) DeleteProduct(_ context.Context, id int) error {
	return f.write("delete producto", id)
}

func (f *fakeBackend) CreateBeverage(_ context.Context, in domain.BeverageInput) (domain.BeverageRecord, error) {
	return domain.BeverageRecord{BebidaID: 10, Name: in.Name, Price: in.Price, Stock: in.Stock}, f.write("create bebida", 0)
}

func (f *fakeBackend) UpdateBeverage(_ context.Context, id int, _ domain.ItemUpdate) (domain.BeverageRecord, error) {
	return domain.BeverageRecord{BebidaID: id}, f.write("update bebida", id)
}

func (f *fakeBackend) DeleteBeverage(_ context.Context, id int) error {
	return f.write("delete bebida", id)
}

func (f *fakeBackend) CreateIngredients(_ context.Context, batch domain.IngredientBatch) ([]domain.IngredientRecord, error) {
	out := make([]domain.IngredientRecord, len(batch.Ingredientes))
	for i, in := range batch.Ingredientes {
		out[i] = domain.IngredientRecord{IngredientID: 10 + i, Name: in.Name, StockCurrent: in.StockCurrent}
	}
	return out, f.write("create ingredientes", 0)
}

func (f *fakeBackend) UpdateIngredient(_ context.Context, id int, _ domain.ItemUpdate) (domain.IngredientRecord, error) {
	return domain.IngredientRecord{IngredientID: id}, f.write("update ingrediente", id)
}

func (f *fakeBackend) DeleteIngredient(_ context.Context, id int) error {
	return f.write("delete ingrediente", id)
}

func (f *fakeBackend) ListStaff(context.Context) ([]domain.EmployeeRecord, error) {
	out := make([]domain.EmployeeRecord, len(f.employees))
	for i, e := range f.employees {
		out[i] = domain.EmployeeRecord{EmpleadoID: e.ID, Nombre: e.FirstName, Apellido: e.LastName, Rol: e.Role, Usuario: e.Username}
	}
	return out, nil
}

func (f *fakeBackend) CreateEmployee(_ context.Context, in domain.EmployeeInput) (domain.EmployeeRecord, error) {
	if err := f.write("create empleado", 0); err != nil {
		return domain.EmployeeRecord{}, err
	}
	e := models.Employee{ID: 20 + len(f.employees), FirstName: in.Nombre, LastName: in.Apellido, Role: in.Rol, Username: in.Usuario}
	f.employees = append(f.employees, e)
	return domain.EmployeeRecord{EmpleadoID: e.ID, Nombre: e.FirstName, Apellido: e.LastName, Rol: e.Role, Usuario: e.Username}, nil
}

func (f *fakeBackend) UpdateEmployee(_ context.Context, id int, in domain.EmployeeInput) (domain.EmployeeRecord, error) {
	return domain.EmployeeRecord{EmpleadoID: id, Nombre: in.Nombre, Apellido: in.Apellido, Rol: in.Rol}, f.write("update empleado", id)
}

func (f *fakeBackend) DeleteEmployee(_ context.Context, id int) error {
	return f.write("delete empleado", id)
}

func (f *fakeBackend) repository() *repository.Repository {
	return &repository.Repository{CatalogRepo: f, SalesRepo: f, StockRepo: f, ReportsRepo: f, AdminRepo: f, StaffRepo: f}
}

func testLogger() *logger.Logger { return logger.NewWithWriter("test", io.Discard, "debug") }

func isNetwork(err error) bool { return errors.Is(err, models.ErrNetwork) }

func loadedBilling(t *testing.T, f *fakeBackend) *BillingService {
	t.Helper()
	s := NewBillingService(f, f, testLogger())
	s.now = func() time.Time { return time.Date(2024, 5, 17, 14, 30, 0, 0, time.FixedZone("COT", -5*3600)) }
	if _, err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	return s
}
