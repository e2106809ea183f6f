package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"pos-system/internal/domain"
)

type CatalogRepositoryInterface interface {
	ListProducts(ctx context.Context) ([]domain.ProductRecord, error)
	ListBeverages(ctx context.Context) ([]domain.BeverageRecord, error)
	ListIngredients(ctx context.Context) ([]domain.IngredientRecord, error)
	ListEmployees(ctx context.Context) ([]domain.EmployeeRecord, error)

	CreateProduct(ctx context.Context, in domain.ProductInput) (domain.ProductRecord, error)
	UpdateProduct(ctx context.Context, id int, in domain.ProductInput) (domain.ProductRecord, error)
	DeleteProduct(ctx context.Context, id int) error

	CreateBeverage(ctx context.Context, in domain.BeverageInput) (domain.BeverageRecord, error)
	UpdateBeverage(ctx context.Context, id int, upd domain.ItemUpdate) (domain.BeverageRecord, error)
	DeleteBeverage(ctx context.Context, id int) error

	CreateIngredients(ctx context.Context, in []domain.IngredientInput) ([]domain.IngredientRecord, error)
	UpdateIngredient(ctx context.Context, id int, upd domain.ItemUpdate) (domain.IngredientRecord, error)
	DeleteIngredient(ctx context.Context, id int) error
}

type CatalogRepository struct {
	db *sql.DB
}

func NewCatalogRepository(db *sql.DB) CatalogRepositoryInterface {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) ListProducts(ctx context.Context) ([]domain.ProductRecord, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT producto_id, name, price FROM productos ORDER BY producto_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list productos: %w", err)
	}
	defer rows.Close()

	var out []domain.ProductRecord
	index := map[int]int{}
	for rows.Next() {
		var p domain.ProductRecord
		if err := rows.Scan(&p.ProductoID, &p.Name, &p.Price); err != nil {
			return nil, fmt.Errorf("failed to scan producto: %w", err)
		}
		p.Ingredientes = []domain.ProductIngredientRecord{}
		index[p.ProductoID] = len(out)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	assoc, err := r.db.QueryContext(ctx, `
		SELECT pi.producto_id, pi.ingredient_id, i.name, pi.amount
		FROM producto_ingredientes pi
		JOIN ingredientes i ON i.ingredient_id = pi.ingredient_id
		ORDER BY pi.producto_id, pi.ingredient_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list producto ingredientes: %w", err)
	}
	defer assoc.Close()
	for assoc.Next() {
		var productID int
		var ing domain.ProductIngredientRecord
		if err := assoc.Scan(&productID, &ing.IngredientID, &ing.Name, &ing.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan producto ingrediente: %w", err)
		}
		if i, ok := index[productID]; ok {
			out[i].Ingredientes = append(out[i].Ingredientes, ing)
		}
	}
	return out, assoc.Err()
}

func (r *CatalogRepository) ListBeverages(ctx context.Context) ([]domain.BeverageRecord, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT bebida_id, name, price, stock FROM bebidas ORDER BY bebida_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list bebidas: %w", err)
	}
	defer rows.Close()

	var out []domain.BeverageRecord
	for rows.Next() {
		var b domain.BeverageRecord
		if err := rows.Scan(&b.BebidaID, &b.Name, &b.Price, &b.Stock); err != nil {
			return nil, fmt.Errorf("failed to scan bebida: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *CatalogRepository) ListIngredients(ctx context.Context) ([]domain.IngredientRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT ingredient_id, name, stock_current, stock_minimum
		FROM ingredientes ORDER BY ingredient_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list ingredientes: %w", err)
	}
	defer rows.Close()

	var out []domain.IngredientRecord
	for rows.Next() {
		var i domain.IngredientRecord
		if err := rows.Scan(&i.IngredientID, &i.Name, &i.StockCurrent, &i.StockMinimum); err != nil {
			return nil, fmt.Errorf("failed to scan ingrediente: %w", err)
		}
		out = append(out, i)
	}
	return out, rows.Err()
}

func (r *CatalogRepository) ListEmployees(ctx context.Context) ([]domain.EmployeeRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT empleado_id, nombre, apellido, rol, COALESCE(usuario, '')
		FROM empleados ORDER BY empleado_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list empleados: %w", err)
	}
	defer rows.Close()

	var out []domain.EmployeeRecord
	for rows.Next() {
		var e domain.EmployeeRecord
		if err := rows.Scan(&e.EmpleadoID, &e.Nombre, &e.Apellido, &e.Rol, &e.Usuario); err != nil {
			return nil, fmt.Errorf("failed to scan empleado: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// CreateProduct inserts the product with its ingredient associations. An
// unknown ingredient id is a NotFoundError.
func (r *CatalogRepository) CreateProduct(ctx context.Context, in domain.ProductInput) (rec domain.ProductRecord, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.ProductRecord{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var id int
	if err = tx.QueryRowContext(ctx, `
		INSERT INTO productos (name, price) VALUES ($1, $2) RETURNING producto_id
	`, in.Name, in.Price).Scan(&id); err != nil {
		return domain.ProductRecord{}, fmt.Errorf("failed to insert producto: %w", err)
	}
	if err = insertAssociations(ctx, tx, id, in.Ingredientes); err != nil {
		return domain.ProductRecord{}, err
	}
	if rec, err = getProduct(ctx, tx, id); err != nil {
		return domain.ProductRecord{}, err
	}
	if err = tx.Commit(); err != nil {
		return domain.ProductRecord{}, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return rec, nil
}

// UpdateProduct replaces name and price, and the associations when
// in.Ingredientes is not nil.
func (r *CatalogRepository) UpdateProduct(ctx context.Context, id int, in domain.ProductInput) (rec domain.ProductRecord, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.ProductRecord{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx, `UPDATE productos SET name = $2, price = $3 WHERE producto_id = $1`, id, in.Name, in.Price)
	if err != nil {
		return domain.ProductRecord{}, fmt.Errorf("failed to update producto %d: %w", id, err)
	}
	if err = requireRow(res, "producto", id); err != nil {
		return domain.ProductRecord{}, err
	}
	if in.Ingredientes != nil {
		if _, err = tx.ExecContext(ctx, `DELETE FROM producto_ingredientes WHERE producto_id = $1`, id); err != nil {
			return domain.ProductRecord{}, fmt.Errorf("failed to clear producto %d ingredientes: %w", id, err)
		}
		if err = insertAssociations(ctx, tx, id, in.Ingredientes); err != nil {
			return domain.ProductRecord{}, err
		}
	}
	if rec, err = getProduct(ctx, tx, id); err != nil {
		return domain.ProductRecord{}, err
	}
	if err = tx.Commit(); err != nil {
		return domain.ProductRecord{}, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return rec, nil
}

func insertAssociations(ctx context.Context, tx *sql.Tx, productID int, ings []domain.ProductIngredientInput) error {
	for _, ing := range ings {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO producto_ingredientes (producto_id, ingredient_id, amount) VALUES ($1, $2, $3)
		`, productID, ing.ID, ing.Amount)
		if pgCode(err) == pgForeignKeyViolation {
			return &NotFoundError{Entity: "ingrediente", ID: ing.ID}
		}
		if err != nil {
			return fmt.Errorf("failed to insert producto ingrediente %d: %w", ing.ID, err)
		}
	}
	return nil
}

func getProduct(ctx context.Context, q querier, id int) (domain.ProductRecord, error) {
	p := domain.ProductRecord{Ingredientes: []domain.ProductIngredientRecord{}}
	err := q.QueryRowContext(ctx, `SELECT producto_id, name, price FROM productos WHERE producto_id = $1`, id).
		Scan(&p.ProductoID, &p.Name, &p.Price)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ProductRecord{}, &NotFoundError{Entity: "producto", ID: id}
	}
	if err != nil {
		return domain.ProductRecord{}, fmt.Errorf("failed to get producto %d: %w", id, err)
	}

	rows, err := q.QueryContext(ctx, `
		SELECT pi.ingredient_id, i.name, pi.amount
		FROM producto_ingredientes pi
		JOIN ingredientes i ON i.ingredient_id = pi.ingredient_id
		WHERE pi.producto_id = $1
		ORDER BY pi.ingredient_id
	`, id)
	if err != nil {
		return domain.ProductRecord{}, fmt.Errorf("failed to list producto %d ingredientes: %w", id, err)
	}
	defer rows.Close()
	for rows.Next() {
		var ing domain.ProductIngredientRecord
		if err := rows.Scan(&ing.IngredientID, &ing.Name, &ing.Amount); err != nil {
			return domain.ProductRecord{}, fmt.Errorf("failed to scan producto ingrediente: %w", err)
		}
		p.Ingredientes = append(p.Ingredientes, ing)
	}
	return p, rows.Err()
}

func (r *CatalogRepository) DeleteProduct(ctx context.Context, id int) error {
	return deleteRow(ctx, r.db, "producto", id, `DELETE FROM productos WHERE producto_id = $1`)
}

func (r *CatalogRepository) CreateBeverage(ctx context.Context, in domain.BeverageInput) (domain.BeverageRecord, error) {
	var b domain.BeverageRecord
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO bebidas (name, price, stock) VALUES ($1, $2, $3)
		RETURNING bebida_id, name, price, stock
	`, in.Name, in.Price, in.Stock).Scan(&b.BebidaID, &b.Name, &b.Price, &b.Stock)
	if err != nil {
		return domain.BeverageRecord{}, fmt.Errorf("failed to insert bebida: %w", err)
	}
	return b, nil
}

// UpdateBeverage writes the non-nil fields of upd.
func (r *CatalogRepository) UpdateBeverage(ctx context.Context, id int, upd domain.ItemUpdate) (domain.BeverageRecord, error) {
	var b domain.BeverageRecord
	err := r.db.QueryRowContext(ctx, `
		UPDATE bebidas SET
			name  = COALESCE($2::text, name),
			price = COALESCE($3::double precision, price),
			stock = COALESCE($4::int, stock)
		WHERE bebida_id = $1
		RETURNING bebida_id, name, price, stock
	`, id, upd.Name, upd.Price, upd.Stock).Scan(&b.BebidaID, &b.Name, &b.Price, &b.Stock)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.BeverageRecord{}, &NotFoundError{Entity: "bebida", ID: id}
	}
	if err != nil {
		return domain.BeverageRecord{}, fmt.Errorf("failed to update bebida %d: %w", id, err)
	}
	return b, nil
}

func (r *CatalogRepository) DeleteBeverage(ctx context.Context, id int) error {
	return deleteRow(ctx, r.db, "bebida", id, `DELETE FROM bebidas WHERE bebida_id = $1`)
}

// CreateIngredients inserts the batch in one transaction.
func (r *CatalogRepository) CreateIngredients(ctx context.Context, in []domain.IngredientInput) (out []domain.IngredientRecord, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	out = make([]domain.IngredientRecord, 0, len(in))
	for _, ing := range in {
		var rec domain.IngredientRecord
		if err = tx.QueryRowContext(ctx, `
			INSERT INTO ingredientes (name, stock_current, stock_minimum) VALUES ($1, $2, $3)
			RETURNING ingredient_id, name, stock_current, stock_minimum
		`, ing.Name, ing.StockCurrent, ing.StockMinimum).Scan(&rec.IngredientID, &rec.Name, &rec.StockCurrent, &rec.StockMinimum); err != nil {
			return nil, fmt.Errorf("failed to insert ingrediente %q: %w", ing.Name, err)
		}
		out = append(out, rec)
	}
	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return out, nil
}

// UpdateIngredient writes the non-nil fields of upd.
func (r *CatalogRepository) UpdateIngredient(ctx context.Context, id int, upd domain.ItemUpdate) (domain.IngredientRecord, error) {
	var i domain.IngredientRecord
	err := r.db.QueryRowContext(ctx, `
		UPDATE ingredientes SET
			name          = COALESCE($2::text, name),
			stock_current = COALESCE($3::double precision, stock_current),
			stock_minimum = COALESCE($4::double precision, stock_minimum)
		WHERE ingredient_id = $1
		RETURNING ingredient_id, name, stock_current, stock_minimum
	`, id, upd.Name, upd.StockCurrent, upd.StockMinimum).Scan(&i.IngredientID, &i.Name, &i.StockCurrent, &i.StockMinimum)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.IngredientRecord{}, &NotFoundError{Entity: "ingrediente", ID: id}
	}
	if err != nil {
		return domain.IngredientRecord{}, fmt.Errorf("failed to update ingrediente %d: %w", id, err)
	}
	return i, nil
}

func (r *CatalogRepository) DeleteIngredient(ctx context.Context, id int) error {
	return deleteRow(ctx, r.db, "ingrediente", id, `DELETE FROM ingredientes WHERE ingredient_id = $1`)
}

// deleteRow removes one row. A row still referenced by sales or products is
// a ConflictError.
func deleteRow(ctx context.Context, q querier, entity string, id int, query string) error {
	res, err := q.ExecContext(ctx, query, id)
	if pgCode(err) == pgForeignKeyViolation {
		return &ConflictError{Entity: entity, ID: id, Reason: "still referenced"}
	}
	if err != nil {
		return fmt.Errorf("failed to delete %s %d: %w", entity, id, err)
	}
	return requireRow(res, entity, id)
}

func requireRow(res sql.Result, entity string, id int) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return &NotFoundError{Entity: entity, ID: id}
	}
	return nil
}
