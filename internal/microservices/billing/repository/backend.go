package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"pos-system/internal/common/logger"
	"pos-system/internal/domain"
	"pos-system/internal/microservices/billing/models"
)

// BackendClient talks to the sales backend REST API.
type BackendClient struct {
	baseURL string
	http    *http.Client
	lg      *logger.Logger
}

func NewBackendClient(baseURL string, timeout time.Duration, lg *logger.Logger) *BackendClient {
	return &BackendClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		lg: lg,
	}
}

func (c *BackendClient) do(ctx context.Context, op, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: marshal request: %w", op, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &models.NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &models.NetworkError{Op: op, Status: resp.StatusCode, Detail: problemDetail(resp.Body)}
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &models.NetworkError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// problemDetail pulls a message out of an error body, which may be problem
// JSON, {"error": "..."} or plain text.
func problemDetail(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, 4<<10))
	var p struct {
		Detail string `json:"detail"`
		Error  string `json:"error"`
	}
	if json.Unmarshal(b, &p) == nil {
		if p.Detail != "" {
			return p.Detail
		}
		if p.Error != "" {
			return p.Error
		}
	}
	return strings.TrimSpace(string(b))
}

// --- catalog ---

func (c *BackendClient) ListProducts(ctx context.Context) ([]models.Product, error) {
	var recs []domain.ProductRecord
	if err := c.do(ctx, "list productos", http.MethodGet, "/api/productos", nil, &recs); err != nil {
		return nil, err
	}
	out := make([]models.Product, 0, len(recs))
	for _, r := range recs {
		p, err := toProduct(r)
		if err != nil {
			c.reject("producto", r.ProductoID, err)
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (c *BackendClient) ListBeverages(ctx context.Context) ([]models.Beverage, error) {
	var recs []domain.BeverageRecord
	if err := c.do(ctx, "list bebidas", http.MethodGet, "/api/bebidas", nil, &recs); err != nil {
		return nil, err
	}
	out := make([]models.Beverage, 0, len(recs))
	for _, r := range recs {
		b, err := toBeverage(r)
		if err != nil {
			c.reject("bebida", r.BebidaID, err)
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (c *BackendClient) ListIngredients(ctx context.Context) ([]models.Ingredient, error) {
	var recs []domain.IngredientRecord
	if err := c.do(ctx, "list ingredientes", http.MethodGet, "/api/ingredientes", nil, &recs); err != nil {
		return nil, err
	}
	out := make([]models.Ingredient, 0, len(recs))
	for _, r := range recs {
		if r.IngredientID <= 0 || strings.TrimSpace(r.Name) == "" {
			c.reject("ingrediente", r.IngredientID, errors.New("missing id or name"))
			continue
		}
		out = append(out, models.Ingredient{
			ID: r.IngredientID, Name: r.Name,
			StockCurrent: r.StockCurrent, StockMinimum: r.StockMinimum,
		})
	}
	return out, nil
}

func (c *BackendClient) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	var recs []domain.EmployeeRecord
	if err := c.do(ctx, "list empleados", http.MethodGet, "/api/empleados", nil, &recs); err != nil {
		return nil, err
	}
	out := make([]models.Employee, 0, len(recs))
	for _, r := range recs {
		if r.EmpleadoID <= 0 {
			c.reject("empleado", r.EmpleadoID, errors.New("missing id"))
			continue
		}
		out = append(out, models.Employee{
			ID: r.EmpleadoID, FirstName: r.Nombre, LastName: r.Apellido,
			Role: r.Rol, Username: r.Usuario,
		})
	}
	return out, nil
}

func (c *BackendClient) reject(entity string, id int, err error) {
	if c.lg == nil {
		return
	}
	c.lg.Warn("catalog_record_rejected", err, map[string]any{"entity": entity, "id": id})
}

func toProduct(r domain.ProductRecord) (models.Product, error) {
	if r.ProductoID <= 0 {
		return models.Product{}, errors.New("missing producto_id")
	}
	if strings.TrimSpace(r.Name) == "" {
		return models.Product{}, errors.New("missing name")
	}
	if r.Price < 0 {
		return models.Product{}, fmt.Errorf("negative price %v", r.Price)
	}
	p := models.Product{ID: r.ProductoID, Name: r.Name, Price: r.Price, Ingredients: []models.ProductIngredient{}}
	for _, ing := range r.Ingredientes {
		if ing.IngredientID <= 0 {
			return models.Product{}, errors.New("ingredient association without ingredient_id")
		}
		if ing.Amount < 0 {
			return models.Product{}, fmt.Errorf("ingredient %d: negative amount", ing.IngredientID)
		}
		p.Ingredients = append(p.Ingredients, models.ProductIngredient{
			IngredientID: ing.IngredientID, Name: ing.Name, DefaultAmount: ing.Amount,
		})
	}
	return p, nil
}

func toBeverage(r domain.BeverageRecord) (models.Beverage, error) {
	if r.BebidaID <= 0 {
		return models.Beverage{}, errors.New("missing bebida_id")
	}
	if strings.TrimSpace(r.Name) == "" {
		return models.Beverage{}, errors.New("missing name")
	}
	if r.Price < 0 {
		return models.Beverage{}, fmt.Errorf("negative price %v", r.Price)
	}
	return models.Beverage{ID: r.BebidaID, Name: r.Name, Price: r.Price, Stock: r.Stock}, nil
}

// --- sales ---

func (c *BackendClient) CreateSale(ctx context.Context, req domain.SaleRequest) (models.SaleReceipt, error) {
	var rec domain.SaleRecord
	if err := c.do(ctx, "create venta", http.MethodPost, "/api/ventas", req, &rec); err != nil {
		return models.SaleReceipt{}, err
	}
	return models.SaleReceipt{SaleID: rec.VentasID, Date: rec.Fecha, Total: rec.Total}, nil
}

func (c *BackendClient) ListSales(ctx context.Context) ([]domain.SaleRecord, error) {
	var recs []domain.SaleRecord
	if err := c.do(ctx, "list ventas", http.MethodGet, "/api/ventas", nil, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

func (c *BackendClient) GetSale(ctx context.Context, id int) (domain.SaleRecord, error) {
	var rec domain.SaleRecord
	err := c.do(ctx, "get venta", http.MethodGet, "/api/ventas/"+strconv.Itoa(id), nil, &rec)
	var nerr *models.NetworkError
	if errors.As(err, &nerr) && nerr.Status == http.StatusNotFound {
		return domain.SaleRecord{}, &models.NotFoundError{Entity: "venta", ID: id}
	}
	return rec, err
}

// --- stock ---

func (c *BackendClient) UpdateIngredientStock(ctx context.Context, id int, stock float64) error {
	return c.do(ctx, "update ingrediente", http.MethodPut, "/api/ingredientes/"+strconv.Itoa(id),
		domain.ItemUpdate{StockCurrent: &stock}, nil)
}

func (c *BackendClient) UpdateBeverageStock(ctx context.Context, id int, stock int) error {
	return c.do(ctx, "update bebida", http.MethodPut, "/api/bebidas/"+strconv.Itoa(id),
		domain.ItemUpdate{Stock: &stock}, nil)
}

// --- reports ---

func (c *BackendClient) BestSelling(ctx context.Context, kind, period string) ([]domain.BestSellingRow, error) {
	q := url.Values{"type": {kind}, "period": {period}}
	var rows []domain.BestSellingRow
	if err := c.do(ctx, "best-selling", http.MethodGet, "/api/reportes/best-selling?"+q.Encode(), nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *BackendClient) TotalSales(ctx context.Context, period string) (domain.TotalSales, error) {
	q := url.Values{"period": {period}}
	out := domain.TotalSales{}
	if err := c.do(ctx, "total-sales", http.MethodGet, "/api/reportes/total-sales?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
