package repository

import (
	"context"
	"database/sql"
	"fmt"

	"pos-system/internal/domain"
	"pos-system/internal/microservices/inventory/domain/dao"
)

type ReportsRepositoryInterface interface {
	BestSelling(ctx context.Context, kind string, w dao.Window, limit int) ([]domain.BestSellingRow, error)
	TotalSales(ctx context.Context, w dao.Window) (domain.TotalSales, error)
}

type ReportsRepository struct {
	db *sql.DB
}

func NewReportsRepository(db *sql.DB) ReportsRepositoryInterface {
	return &ReportsRepository{db: db}
}

var bestSellingQueries = map[string]string{
	domain.TipoProducto: `
		SELECT p.name, SUM(d.cantidad)
		FROM venta_detalles d
		JOIN ventas v ON v.ventas_id = d.ventas_id
		JOIN productos p ON p.producto_id = d.producto_id
		WHERE d.tipo_producto = 'producto' AND v.fecha >= $1 AND v.fecha < $2
		GROUP BY p.name
		ORDER BY 2 DESC, 1
		LIMIT $3`,
	domain.TipoBebida: `
		SELECT b.name, SUM(d.cantidad)
		FROM venta_detalles d
		JOIN ventas v ON v.ventas_id = d.ventas_id
		JOIN bebidas b ON b.bebida_id = d.bebida_id
		WHERE d.tipo_producto = 'bebida' AND v.fecha >= $1 AND v.fecha < $2
		GROUP BY b.name
		ORDER BY 2 DESC, 1
		LIMIT $3`,
}

func (r *ReportsRepository) BestSelling(ctx context.Context, kind string, w dao.Window, limit int) ([]domain.BestSellingRow, error) {
	q, ok := bestSellingQueries[kind]
	if !ok {
		return nil, fmt.Errorf("unknown tipo_producto %q", kind)
	}
	rows, err := r.db.QueryContext(ctx, q, w.From, w.To, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query best-selling: %w", err)
	}
	defer rows.Close()

	out := []domain.BestSellingRow{}
	for rows.Next() {
		var row domain.BestSellingRow
		if err := rows.Scan(&row.Name, &row.CantidadVendida); err != nil {
			return nil, fmt.Errorf("failed to scan best-selling row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *ReportsRepository) TotalSales(ctx context.Context, w dao.Window) (domain.TotalSales, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT metodo_pago, SUM(total)
		FROM ventas
		WHERE fecha >= $1 AND fecha < $2
		GROUP BY metodo_pago
	`, w.From, w.To)
	if err != nil {
		return nil, fmt.Errorf("failed to query total-sales: %w", err)
	}
	defer rows.Close()

	out := domain.TotalSales{}
	for rows.Next() {
		var method string
		var total float64
		if err := rows.Scan(&method, &total); err != nil {
			return nil, fmt.Errorf("failed to scan total-sales row: %w", err)
		}
		out[method] = total
	}
	return out, rows.Err()
}
