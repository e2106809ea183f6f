package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pos-system/internal/common/logger"
	"pos-system/internal/domain"
	"pos-system/internal/microservices/billing/models"
	"pos-system/internal/microservices/billing/repository"
	"pos-system/internal/microservices/billing/service"
)

type stubBackend struct {
	saleErr  error
	sales    []domain.SaleRequest
	period   string
	writeErr error
	writes   []string
}

func (s *stubBackend) ListProducts(context.Context) ([]models.Product, error) {
	return []models.Product{{ID: 1, Name: "Arepa de queso", Price: 5000, Ingredients: []models.ProductIngredient{
		{IngredientID: 1, Name: "Queso", DefaultAmount: 2},
	}}}, nil
}

func (s *stubBackend) ListBeverages(context.Context) ([]models.Beverage, error) {
	return []models.Beverage{{ID: 9, Name: "Gaseosa", Price: 3000, Stock: 12}}, nil
}

func (s *stubBackend) ListIngredients(context.Context) ([]models.Ingredient, error) {
	return []models.Ingredient{{ID: 1, Name: "Queso", StockCurrent: 1, StockMinimum: 2}}, nil
}

func (s *stubBackend) ListEmployees(context.Context) ([]models.Employee, error) {
	return []models.Employee{{ID: 7, FirstName: "Luis", LastName: "Pérez"}}, nil
}

func (s *stubBackend) CreateSale(_ context.Context, req domain.SaleRequest) (models.SaleReceipt, error) {
	if s.saleErr != nil {
		return models.SaleReceipt{}, s.saleErr
	}
	s.sales = append(s.sales, req)
	return models.SaleReceipt{SaleID: 31, Total: req.Total}, nil
}

func (s *stubBackend) ListSales(context.Context) ([]domain.SaleRecord, error) {
	return []domain.SaleRecord{{VentasID: 31}}, nil
}

func (s *stubBackend) GetSale(_ context.Context, id int) (domain.SaleRecord, error) {
	if id != 31 {
		return domain.SaleRecord{}, &models.NotFoundError{Entity: "venta", ID: id}
	}
	return domain.SaleRecord{VentasID: 31, Total: 3000, Fecha: time.Date(2024, 5, 17, 0, 0, 0, 0, time.UTC)}, nil
}

func (s *stubBackend) UpdateIngredientStock(context.Context, int, float64) error { return nil }
func (s *stubBackend) UpdateBeverageStock(context.Context, int, int) error       { return nil }

func (s *stubBackend) BestSelling(_ context.Context, _, period string) ([]domain.BestSellingRow, error) {
	s.period = period
	return []domain.BestSellingRow{}, nil
}

func (s *stubBackend) TotalSales(_ context.Context, period string) (domain.TotalSales, error) {
	s.period = period
	return domain.TotalSales{}, nil
}

type testServer struct {
	t       *testing.T
	h       http.Handler
	backend *stubBackend
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	b := &stubBackend{}
	repo := &repository.Repository{CatalogRepo: b, SalesRepo: b, StockRepo: b, ReportsRepo: b, AdminRepo: b, StaffRepo: b}
	lg := logger.NewWithWriter("test", io.Discard, "debug")
	svc := service.New(repo, time.UTC, lg)
	_, err := svc.BillingService.Refresh(context.Background())
	require.NoError(t, err)
	return &testServer{t: t, h: Router(New(svc, lg)), backend: b}
}

func (s *testServer) do(role, method, path, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if role != "" {
		req.Header.Set(HeaderUser, "ana")
		req.Header.Set(HeaderRole, role)
	}
	rec := httptest.NewRecorder()
	s.h.ServeHTTP(rec, req)
	return rec
}

func problem(t *testing.T, rec *httptest.ResponseRecorder) domain.ProblemResponse {
	t.Helper()
	var p domain.ProblemResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	return p
}

func TestGuard(t *testing.T) {
	s := newTestServer(t)

	rec := s.do("", http.MethodGet, "/billing/cart", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do("Mesero", http.MethodGet, "/billing/cart", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "forbidden", problem(t, rec).Type)

	rec = s.do("Empleado", http.MethodPost, "/backoffice/restock/beverages/9", `{"cantidad": 1}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do("cajero", http.MethodGet, "/billing/cart", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(HeaderRequestID))

	rec = s.do("", http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCartFlow(t *testing.T) {
	s := newTestServer(t)

	rec := s.do("Cajero", http.MethodPost, "/billing/cart/products",
		`{"producto_id": 1, "ingredientes": [{"ingredient_id": 1, "name": "Queso", "amount": 2}]}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do("Cajero", http.MethodPost, "/billing/cart/beverages", `{"bebida_id": 9}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var cart cartResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cart))
	assert.Equal(t, 8000.0, cart.Total)
	require.Len(t, cart.Items, 2)
	assert.Equal(t, "bebida", cart.Items[1].TipoProducto)
	assert.Nil(t, cart.Items[1].ProductoID)

	rec = s.do("Cajero", http.MethodDelete, "/billing/cart/items/5", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "index_out_of_range", problem(t, rec).Type)

	rec = s.do("Cajero", http.MethodDelete, "/billing/cart/items/0", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cart))
	assert.Equal(t, 3000.0, cart.Total)

	rec = s.do("Cajero", http.MethodPost, "/billing/cart/beverages", `{"bebida_id": 77}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do("Cajero", http.MethodPost, "/billing/cart/beverages", `{bad`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_json", problem(t, rec).Type)
}

func TestSelectionRoutes(t *testing.T) {
	s := newTestServer(t)

	rec := s.do("Administrador", http.MethodPost, "/billing/selections", `{"producto_id": 1, "policy": "prefilled"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var sel selectionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sel))
	require.Len(t, sel.Entries, 1)
	assert.True(t, sel.Entries[0].Checked)

	rec = s.do("Administrador", http.MethodPatch, "/billing/selections/1", `{"amount": -2}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_amount", problem(t, rec).Type)

	rec = s.do("Administrador", http.MethodPatch, "/billing/selections/1", `{"amount": 4}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do("Administrador", http.MethodPost, "/billing/selections/confirm", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	var cart cartResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cart))
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 4.0, cart.Items[0].Ingredientes[0].Amount)

	rec = s.do("Administrador", http.MethodDelete, "/billing/selections", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "no_selection", problem(t, rec).Type)
}

func TestCheckoutRoute(t *testing.T) {
	s := newTestServer(t)

	rec := s.do("Cajero", http.MethodPost, "/billing/checkout", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "empty_cart", problem(t, rec).Type)

	s.do("Cajero", http.MethodPost, "/billing/cart/beverages", `{"bebida_id": 9}`)
	rec = s.do("Cajero", http.MethodPut, "/billing/form", `{"cliente": "Ana", "metodo_pago": "", "vendedor_id": "7"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var f formDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &f))
	assert.Equal(t, "Efectivo", f.MetodoPago)

	s.backend.saleErr = &models.NetworkError{Op: "create venta", Status: 500}
	rec = s.do("Cajero", http.MethodPost, "/billing/checkout", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "backend_error", problem(t, rec).Type)

	s.backend.saleErr = nil
	rec = s.do("Cajero", http.MethodPost, "/billing/checkout", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	var out checkoutResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, 31, out.VentasID)
	assert.Equal(t, 3000.0, out.Total)
	assert.Len(t, s.backend.sales, 1)

	rec = s.do("Cajero", http.MethodGet, "/billing/cart", "")
	var cart cartResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cart))
	assert.Empty(t, cart.Items)
	assert.Equal(t, formDTO{MetodoPago: "Efectivo"}, cart.Form)
}

func TestBackofficeRoutes(t *testing.T) {
	s := newTestServer(t)

	rec := s.do("Cajero", http.MethodGet, "/billing/sales/31/receipt", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
	assert.Contains(t, rec.Body.String(), "Factura de venta: 31")

	rec = s.do("Cajero", http.MethodGet, "/billing/sales/4/receipt", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do("Cajero", http.MethodGet, "/billing/sales/abc/receipt", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do("Cajero", http.MethodGet, "/backoffice/reports/total-sales?period=mes", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var rep reportResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rep))
	assert.Equal(t, "dia", rep.Period)
	assert.Equal(t, "dia", s.backend.period)

	rec = s.do("Superadmin", http.MethodGet, "/backoffice/reports/best-selling?type=bebida&period=mes", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "mes", s.backend.period)

	rec = s.do("Cajero", http.MethodPost, "/backoffice/restock/ingredients/1", `{"cantidad": 2.5}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var rs restockResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rs))
	assert.Equal(t, 3.5, rs.Stock)

	rec = s.do("Cajero", http.MethodPost, "/backoffice/restock/beverages/9", `{"cantidad": 2.5}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "beverage stock is counted in units")
}

func TestCatalogRoute(t *testing.T) {
	s := newTestServer(t)
	rec := s.do("Cajero", http.MethodGet, "/billing/catalog", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var cat catalogResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cat))
	assert.Len(t, cat.Productos, 1)
	assert.Len(t, cat.Bebidas, 1)
	require.Len(t, cat.Ingredientes, 1)
	assert.True(t, cat.Ingredientes[0].Low)
	assert.Equal(t, domain.PaymentMethods, cat.Metodos)
}
