package repository

import (
	"context"
	"database/sql"
	"fmt"

	"pos-system/internal/domain"
	"pos-system/internal/microservices/inventory/domain/dao"
)

type SalesRepositoryInterface interface {
	CreateSale(ctx context.Context, sale dao.NewSale) (domain.SaleRecord, error)
	ListSales(ctx context.Context) ([]domain.SaleRecord, error)
	GetSale(ctx context.Context, id int) (domain.SaleRecord, error)
}

type SalesRepository struct {
	db *sql.DB
}

func NewSalesRepository(db *sql.DB) SalesRepositoryInterface {
	return &SalesRepository{db: db}
}

// CreateSale stores the sale with its details and consumes the stock it
// sold, all in one transaction. Beverages lose cantidad units; ingredients
// lose amount*cantidad. Any shortage rolls the whole sale back.
func (r *SalesRepository) CreateSale(ctx context.Context, sale dao.NewSale) (rec domain.SaleRecord, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.SaleRecord{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// 1. Seller
	var exists bool
	if err = tx.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM empleados WHERE empleado_id = $1)`,
		sale.VendedorID).Scan(&exists); err != nil {
		return domain.SaleRecord{}, fmt.Errorf("failed to check empleado: %w", err)
	}
	if !exists {
		err = &NotFoundError{Entity: "empleado", ID: sale.VendedorID}
		return domain.SaleRecord{}, err
	}

	// 2. Sale header
	var saleID int
	if err = tx.QueryRowContext(ctx, `
		INSERT INTO ventas (fecha, cliente, metodo_pago, total, vendedor_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ventas_id
	`, sale.Fecha, sale.Cliente, sale.MetodoPago, sale.Total, sale.VendedorID).Scan(&saleID); err != nil {
		return domain.SaleRecord{}, fmt.Errorf("failed to insert venta: %w", err)
	}

	// 3. Details and stock
	for _, d := range sale.Details {
		var detailID int
		if err = tx.QueryRowContext(ctx, `
			INSERT INTO venta_detalles (ventas_id, tipo_producto, producto_id, bebida_id, cantidad, precio)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING detalle_id
		`, saleID, d.TipoProducto, d.ProductoID, d.BebidaID, d.Cantidad, d.Precio).Scan(&detailID); err != nil {
			err = mapDetailError(err, d)
			return domain.SaleRecord{}, err
		}

		if d.BebidaID != nil {
			if err = consume(ctx, tx, "bebida", *d.BebidaID, float64(d.Cantidad),
				`UPDATE bebidas SET stock = stock - $2 WHERE bebida_id = $1 AND stock >= $2`,
				`SELECT EXISTS (SELECT 1 FROM bebidas WHERE bebida_id = $1)`, d.Cantidad); err != nil {
				return domain.SaleRecord{}, err
			}
		}

		for _, ing := range d.Ingredients {
			used := ing.Amount * float64(d.Cantidad)
			if err = consume(ctx, tx, "ingrediente", ing.IngredientID, used,
				`UPDATE ingredientes SET stock_current = stock_current - $2 WHERE ingredient_id = $1 AND stock_current >= $2`,
				`SELECT EXISTS (SELECT 1 FROM ingredientes WHERE ingredient_id = $1)`, used); err != nil {
				return domain.SaleRecord{}, err
			}
			if _, err = tx.ExecContext(ctx, `
				INSERT INTO venta_detalle_ingredientes (detalle_id, ingredient_id, name, amount)
				VALUES ($1, $2, $3, $4)
			`, detailID, ing.IngredientID, ing.Name, ing.Amount); err != nil {
				return domain.SaleRecord{}, fmt.Errorf("failed to insert detalle ingrediente %d: %w", ing.IngredientID, err)
			}
		}
	}

	// 4. Response, read inside the transaction so a stored sale always
	// comes back to the caller.
	sales, err := loadSales(ctx, tx, saleID)
	if err != nil {
		return domain.SaleRecord{}, err
	}
	if len(sales) != 1 {
		err = fmt.Errorf("venta %d not readable after insert", saleID)
		return domain.SaleRecord{}, err
	}

	if err = tx.Commit(); err != nil {
		return domain.SaleRecord{}, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return sales[0], nil
}

// consume decrements one stock row. When no row changed it tells a missing
// item apart from a shortage.
func consume(ctx context.Context, tx *sql.Tx, entity string, id int, requested float64, update, exists string, qty any) error {
	res, err := tx.ExecContext(ctx, update, id, qty)
	if err != nil {
		return fmt.Errorf("failed to update %s %d stock: %w", entity, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	var found bool
	if err := tx.QueryRowContext(ctx, exists, id).Scan(&found); err != nil {
		return fmt.Errorf("failed to check %s %d: %w", entity, id, err)
	}
	if !found {
		return &NotFoundError{Entity: entity, ID: id}
	}
	return &StockError{Entity: entity, ID: id, Requested: requested}
}

func mapDetailError(err error, d dao.NewSaleDetail) error {
	if pgCode(err) == pgForeignKeyViolation {
		if d.ProductoID != nil {
			return &NotFoundError{Entity: "producto", ID: *d.ProductoID}
		}
		if d.BebidaID != nil {
			return &NotFoundError{Entity: "bebida", ID: *d.BebidaID}
		}
	}
	return fmt.Errorf("failed to insert venta detalle: %w", err)
}

func (r *SalesRepository) ListSales(ctx context.Context) ([]domain.SaleRecord, error) {
	return loadSales(ctx, r.db, 0)
}

func (r *SalesRepository) GetSale(ctx context.Context, id int) (domain.SaleRecord, error) {
	sales, err := loadSales(ctx, r.db, id)
	if err != nil {
		return domain.SaleRecord{}, err
	}
	if len(sales) == 0 {
		return domain.SaleRecord{}, &NotFoundError{Entity: "venta", ID: id}
	}
	return sales[0], nil
}

// loadSales reads sales newest first with seller, details and detail
// ingredients. id 0 loads every sale.
func loadSales(ctx context.Context, q querier, id int) ([]domain.SaleRecord, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT v.ventas_id, v.fecha, v.cliente, v.metodo_pago, v.total, v.vendedor_id, e.nombre, e.apellido
		FROM ventas v
		LEFT JOIN empleados e ON e.empleado_id = v.vendedor_id
		WHERE $1 = 0 OR v.ventas_id = $1
		ORDER BY v.fecha DESC, v.ventas_id DESC
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list ventas: %w", err)
	}
	defer rows.Close()

	var (
		sales []domain.SaleRecord
		ids   []int64
		byID  = map[int]int{}
	)
	for rows.Next() {
		var s domain.SaleRecord
		var nombre, apellido sql.NullString
		if err := rows.Scan(&s.VentasID, &s.Fecha, &s.Cliente, &s.MetodoPago, &s.Total, &s.VendedorID, &nombre, &apellido); err != nil {
			return nil, fmt.Errorf("failed to scan venta: %w", err)
		}
		if nombre.Valid {
			s.Vendedor = &domain.SellerRecord{Nombre: nombre.String, Apellido: apellido.String}
		}
		s.VentaDetalles = []domain.SaleDetailRecord{}
		byID[s.VentasID] = len(sales)
		sales = append(sales, s)
		ids = append(ids, int64(s.VentasID))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(sales) == 0 {
		return sales, nil
	}

	details, err := q.QueryContext(ctx, `
		SELECT d.detalle_id, d.ventas_id, d.tipo_producto, d.producto_id, d.bebida_id, d.cantidad, d.precio, p.name, b.name
		FROM venta_detalles d
		LEFT JOIN productos p ON p.producto_id = d.producto_id
		LEFT JOIN bebidas b ON b.bebida_id = d.bebida_id
		WHERE d.ventas_id = ANY($1)
		ORDER BY d.detalle_id
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list venta detalles: %w", err)
	}
	defer details.Close()

	type pos struct{ sale, detail int }
	detailPos := map[int]pos{}
	for details.Next() {
		var (
			detailID, saleID     int
			d                    domain.SaleDetailRecord
			productID, bevID     sql.NullInt64
			productName, bevName sql.NullString
		)
		if err := details.Scan(&detailID, &saleID, &d.TipoProducto, &productID, &bevID, &d.Cantidad, &d.Precio, &productName, &bevName); err != nil {
			return nil, fmt.Errorf("failed to scan venta detalle: %w", err)
		}
		if productID.Valid {
			v := int(productID.Int64)
			d.ProductoID = &v
		}
		if bevID.Valid {
			v := int(bevID.Int64)
			d.BebidaID = &v
		}
		if productName.Valid {
			d.Producto = &domain.NamedRecord{Name: productName.String}
		}
		if bevName.Valid {
			d.Bebida = &domain.NamedRecord{Name: bevName.String}
		}
		si := byID[saleID]
		detailPos[detailID] = pos{sale: si, detail: len(sales[si].VentaDetalles)}
		sales[si].VentaDetalles = append(sales[si].VentaDetalles, d)
	}
	if err := details.Err(); err != nil {
		return nil, err
	}

	ings, err := q.QueryContext(ctx, `
		SELECT di.detalle_id, di.ingredient_id, di.name, di.amount
		FROM venta_detalle_ingredientes di
		JOIN venta_detalles d ON d.detalle_id = di.detalle_id
		WHERE d.ventas_id = ANY($1)
		ORDER BY di.id
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list detalle ingredientes: %w", err)
	}
	defer ings.Close()
	for ings.Next() {
		var detailID int
		var ing domain.SaleIngredient
		if err := ings.Scan(&detailID, &ing.IngredientID, &ing.Name, &ing.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan detalle ingrediente: %w", err)
		}
		if p, ok := detailPos[detailID]; ok {
			det := &sales[p.sale].VentaDetalles[p.detail]
			det.Ingredientes = append(det.Ingredientes, ing)
		}
	}
	return sales, ings.Err()
}
