package repository

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"pos-system/internal/domain"
	"pos-system/internal/microservices/billing/models"
)

// adminError turns the statuses the write endpoints answer with into model
// errors. id 0 means the request named no single row.
func adminError(err error, entity string, id int) error {
	var nerr *models.NetworkError
	if !errors.As(err, &nerr) {
		return err
	}
	switch nerr.Status {
	case http.StatusBadRequest:
		return models.Invalid("", models.ErrRejected, nerr.Detail)
	case http.StatusNotFound:
		return &models.NotFoundError{Entity: entity, ID: id, Detail: nerr.Detail}
	case http.StatusConflict:
		return &models.ConflictError{Entity: entity, ID: id, Detail: nerr.Detail}
	}
	return err
}

func itemPath(base string, id int) string { return base + "/" + strconv.Itoa(id) }

// --- products ---

func (c *BackendClient) CreateProduct(ctx context.Context, in domain.ProductInput) (domain.ProductRecord, error) {
	var rec domain.ProductRecord
	err := c.do(ctx, "create producto", http.MethodPost, "/api/productos", in, &rec)
	return rec, adminError(err, "producto", 0)
}

func (c *BackendClient) UpdateProduct(ctx context.Context, id int, in domain.ProductInput) (domain.ProductRecord, error) {
	var rec domain.ProductRecord
	err := c.do(ctx, "update producto", http.MethodPut, itemPath("/api/productos", id), in, &rec)
	return rec, adminError(err, "producto", id)
}

func (c *BackendClient) DeleteProduct(ctx context.Context, id int) error {
	return adminError(c.do(ctx, "delete producto", http.MethodDelete, itemPath("/api/productos", id), nil, nil), "producto", id)
}

// --- beverages ---

func (c *BackendClient) CreateBeverage(ctx context.Context, in domain.BeverageInput) (domain.BeverageRecord, error) {
	var rec domain.BeverageRecord
	err := c.do(ctx, "create bebida", http.MethodPost, "/api/bebidas", in, &rec)
	return rec, adminError(err, "bebida", 0)
}

func (c *BackendClient) UpdateBeverage(ctx context.Context, id int, upd domain.ItemUpdate) (domain.BeverageRecord, error) {
	var rec domain.BeverageRecord
	err := c.do(ctx, "update bebida", http.MethodPut, itemPath("/api/bebidas", id), upd, &rec)
	return rec, adminError(err, "bebida", id)
}

func (c *BackendClient) DeleteBeverage(ctx context.Context, id int) error {
	return adminError(c.do(ctx, "delete bebida", http.MethodDelete, itemPath("/api/bebidas", id), nil, nil), "bebida", id)
}

// --- ingredients ---

func (c *BackendClient) CreateIngredients(ctx context.Context, batch domain.IngredientBatch) ([]domain.IngredientRecord, error) {
	var recs []domain.IngredientRecord
	err := c.do(ctx, "create ingredientes", http.MethodPost, "/api/ingredientes", batch, &recs)
	return recs, adminError(err, "ingrediente", 0)
}

func (c *BackendClient) UpdateIngredient(ctx context.Context, id int, upd domain.ItemUpdate) (domain.IngredientRecord, error) {
	var rec domain.IngredientRecord
	err := c.do(ctx, "update ingrediente", http.MethodPut, itemPath("/api/ingredientes", id), upd, &rec)
	return rec, adminError(err, "ingrediente", id)
}

func (c *BackendClient) DeleteIngredient(ctx context.Context, id int) error {
	return adminError(c.do(ctx, "delete ingrediente", http.MethodDelete, itemPath("/api/ingredientes", id), nil, nil), "ingrediente", id)
}

// --- staff ---

const staffPath = "/api/empleados/empleados"

func (c *BackendClient) ListStaff(ctx context.Context) ([]domain.EmployeeRecord, error) {
	var recs []domain.EmployeeRecord
	if err := c.do(ctx, "list empleados", http.MethodGet, staffPath, nil, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

func (c *BackendClient) CreateEmployee(ctx context.Context, in domain.EmployeeInput) (domain.EmployeeRecord, error) {
	var rec domain.EmployeeRecord
	err := c.do(ctx, "create empleado", http.MethodPost, staffPath, in, &rec)
	return rec, adminError(err, "empleado", 0)
}

func (c *BackendClient) UpdateEmployee(ctx context.Context, id int, in domain.EmployeeInput) (domain.EmployeeRecord, error) {
	var rec domain.EmployeeRecord
	err := c.do(ctx, "update empleado", http.MethodPut, itemPath(staffPath, id), in, &rec)
	return rec, adminError(err, "empleado", id)
}

func (c *BackendClient) DeleteEmployee(ctx context.Context, id int) error {
	return adminError(c.do(ctx, "delete empleado", http.MethodDelete, itemPath(staffPath, id), nil, nil), "empleado", id)
}
