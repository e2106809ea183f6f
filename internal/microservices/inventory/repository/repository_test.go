package repository

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pos-system/internal/domain"
	"pos-system/internal/microservices/inventory/domain/dao"
)

// EnvTestDSN points the repository tests at a disposable PostgreSQL
// database. Without it they are skipped.
const EnvTestDSN = "POS_TEST_DSN"

// newTestDB migrates and reseeds the database:
// empleado 1 Luis Pérez, ingredientes 1 Queso (10) and 2 Mantequilla (5),
// producto 1 Arepa de queso (Queso 2), bebida 1 Gaseosa (stock 3).
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := os.Getenv(EnvTestDSN)
	if dsn == "" {
		t.Skipf("%s not set", EnvTestDSN)
	}
	db, err := sql.Open("pgx", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	require.NoError(t, Migrate(ctx, db))
	_, err = db.ExecContext(ctx, `
		TRUNCATE venta_detalle_ingredientes, venta_detalles, ventas, producto_ingredientes,
			productos, bebidas, ingredientes, empleados RESTART IDENTITY CASCADE;
		INSERT INTO empleados (nombre, apellido, rol, usuario) VALUES ('Luis', 'Pérez', 'Cajero', 'luis.perez');
		INSERT INTO ingredientes (name, stock_current, stock_minimum) VALUES ('Queso', 10, 2), ('Mantequilla', 5, 1);
		INSERT INTO productos (name, price) VALUES ('Arepa de queso', 5000);
		INSERT INTO producto_ingredientes (producto_id, ingredient_id, amount) VALUES (1, 1, 2);
		INSERT INTO bebidas (name, price, stock) VALUES ('Gaseosa', 3000, 3);
	`)
	require.NoError(t, err)
	return db
}

func intp(v int) *int { return &v }

func count(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM `+table).Scan(&n))
	return n
}

func ingredientStock(t *testing.T, db *sql.DB, id int) float64 {
	t.Helper()
	var v float64
	require.NoError(t, db.QueryRow(`SELECT stock_current FROM ingredientes WHERE ingredient_id = $1`, id).Scan(&v))
	return v
}

func beverageStock(t *testing.T, db *sql.DB, id int) int {
	t.Helper()
	var v int
	require.NoError(t, db.QueryRow(`SELECT stock FROM bebidas WHERE bebida_id = $1`, id).Scan(&v))
	return v
}

func sale(details ...dao.NewSaleDetail) dao.NewSale {
	var total float64
	for _, d := range details {
		total += float64(d.Cantidad) * d.Precio
	}
	return dao.NewSale{
		Fecha: time.Date(2024, 5, 17, 19, 30, 0, 0, time.UTC), Cliente: "Ana",
		MetodoPago: domain.MetodoEfectivo, VendedorID: 1, Total: total, Details: details,
	}
}

func TestCreateSale_ConsumesStock(t *testing.T) {
	db := newTestDB(t)
	repo := NewSalesRepository(db)

	rec, err := repo.CreateSale(context.Background(), sale(
		dao.NewSaleDetail{TipoProducto: domain.TipoProducto, ProductoID: intp(1), Cantidad: 2, Precio: 5000,
			Ingredients: []dao.NewSaleIngredient{{IngredientID: 1, Name: "Queso", Amount: 1.5}, {IngredientID: 2, Name: "Mantequilla", Amount: 1}}},
		dao.NewSaleDetail{TipoProducto: domain.TipoBebida, BebidaID: intp(1), Cantidad: 2, Precio: 3000},
	))
	require.NoError(t, err)

	assert.Equal(t, 1, rec.VentasID)
	assert.Equal(t, 16000.0, rec.Total)
	require.NotNil(t, rec.Vendedor)
	assert.Equal(t, "Luis", rec.Vendedor.Nombre)
	require.Len(t, rec.VentaDetalles, 2)
	assert.Equal(t, "Arepa de queso", rec.VentaDetalles[0].Producto.Name)
	assert.Len(t, rec.VentaDetalles[0].Ingredientes, 2)
	assert.Equal(t, "Gaseosa", rec.VentaDetalles[1].Bebida.Name)

	// amount * cantidad
	assert.Equal(t, 7.0, ingredientStock(t, db, 1))
	assert.Equal(t, 3.0, ingredientStock(t, db, 2))
	assert.Equal(t, 1, beverageStock(t, db, 1))

	got, err := repo.GetSale(context.Background(), rec.VentasID)
	require.NoError(t, err)
	assert.Equal(t, rec.VentaDetalles, got.VentaDetalles)
}

func TestCreateSale_ShortageRollsBack(t *testing.T) {
	db := newTestDB(t)
	repo := NewSalesRepository(db)

	_, err := repo.CreateSale(context.Background(), sale(
		dao.NewSaleDetail{TipoProducto: domain.TipoProducto, ProductoID: intp(1), Cantidad: 1, Precio: 5000,
			Ingredients: []dao.NewSaleIngredient{{IngredientID: 1, Name: "Queso", Amount: 2}}},
		dao.NewSaleDetail{TipoProducto: domain.TipoBebida, BebidaID: intp(1), Cantidad: 4, Precio: 3000},
	))
	require.ErrorIs(t, err, ErrInsufficientStock)
	var serr *StockError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "bebida", serr.Entity)
	assert.Equal(t, 4.0, serr.Requested)

	assert.Zero(t, count(t, db, "ventas"))
	assert.Zero(t, count(t, db, "venta_detalles"))
	assert.Zero(t, count(t, db, "venta_detalle_ingredientes"))
	assert.Equal(t, 10.0, ingredientStock(t, db, 1))
	assert.Equal(t, 3, beverageStock(t, db, 1))
}

func TestCreateSale_IngredientShortage(t *testing.T) {
	db := newTestDB(t)

	_, err := NewSalesRepository(db).CreateSale(context.Background(), sale(
		dao.NewSaleDetail{TipoProducto: domain.TipoProducto, ProductoID: intp(1), Cantidad: 3, Precio: 5000,
			Ingredients: []dao.NewSaleIngredient{{IngredientID: 2, Name: "Mantequilla", Amount: 2}}},
	))
	var serr *StockError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, StockError{Entity: "ingrediente", ID: 2, Requested: 6}, *serr)
	assert.Equal(t, 5.0, ingredientStock(t, db, 2))
}

func TestCreateSale_UnknownReferences(t *testing.T) {
	db := newTestDB(t)
	repo := NewSalesRepository(db)
	ctx := context.Background()

	cases := map[string]struct {
		sale   dao.NewSale
		entity string
		id     int
	}{
		"bebida": {
			sale:   sale(dao.NewSaleDetail{TipoProducto: domain.TipoBebida, BebidaID: intp(999), Cantidad: 1, Precio: 3000}),
			entity: "bebida", id: 999,
		},
		"producto": {
			sale:   sale(dao.NewSaleDetail{TipoProducto: domain.TipoProducto, ProductoID: intp(42), Cantidad: 1, Precio: 5000}),
			entity: "producto", id: 42,
		},
		"ingrediente": {
			sale: sale(dao.NewSaleDetail{TipoProducto: domain.TipoProducto, ProductoID: intp(1), Cantidad: 1, Precio: 5000,
				Ingredients: []dao.NewSaleIngredient{{IngredientID: 77, Amount: 1}}}),
			entity: "ingrediente", id: 77,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := repo.CreateSale(ctx, tc.sale)
			var nf *NotFoundError
			require.ErrorAs(t, err, &nf)
			assert.Equal(t, NotFoundError{Entity: tc.entity, ID: tc.id}, *nf)
		})
	}

	unknownSeller := sale(dao.NewSaleDetail{TipoProducto: domain.TipoBebida, BebidaID: intp(1), Cantidad: 1, Precio: 3000})
	unknownSeller.VendedorID = 8
	_, err := repo.CreateSale(ctx, unknownSeller)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Zero(t, count(t, db, "ventas"))
	assert.Equal(t, 3, beverageStock(t, db, 1))
}

func TestCatalogWrites(t *testing.T) {
	db := newTestDB(t)
	repo := NewCatalogRepository(db)
	ctx := context.Background()

	p, err := repo.CreateProduct(ctx, domain.ProductInput{Name: "Arepa mixta", Price: 7000,
		Ingredientes: []domain.ProductIngredientInput{{ID: 1, Amount: 1}, {ID: 2, Amount: 0.5}}})
	require.NoError(t, err)
	assert.Equal(t, 2, p.ProductoID)
	assert.Equal(t, []domain.ProductIngredientRecord{
		{IngredientID: 1, Name: "Queso", Amount: 1},
		{IngredientID: 2, Name: "Mantequilla", Amount: 0.5},
	}, p.Ingredientes)

	_, err = repo.CreateProduct(ctx, domain.ProductInput{Name: "Fantasma", Price: 1,
		Ingredientes: []domain.ProductIngredientInput{{ID: 99, Amount: 1}}})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 2, count(t, db, "productos"))

	p, err = repo.UpdateProduct(ctx, 2, domain.ProductInput{Name: "Arepa mixta grande", Price: 8000})
	require.NoError(t, err)
	assert.Equal(t, 8000.0, p.Price)
	assert.Len(t, p.Ingredientes, 2, "nil ingredientes keeps associations")

	p, err = repo.UpdateProduct(ctx, 2, domain.ProductInput{Name: "Arepa mixta", Price: 7000,
		Ingredientes: []domain.ProductIngredientInput{{ID: 2, Amount: 1}}})
	require.NoError(t, err)
	assert.Equal(t, []domain.ProductIngredientRecord{{IngredientID: 2, Name: "Mantequilla", Amount: 1}}, p.Ingredientes)

	_, err = repo.UpdateProduct(ctx, 50, domain.ProductInput{Name: "x"})
	assert.ErrorIs(t, err, ErrNotFound)

	stock := 20
	b, err := repo.UpdateBeverage(ctx, 1, domain.ItemUpdate{Stock: &stock})
	require.NoError(t, err)
	assert.Equal(t, domain.BeverageRecord{BebidaID: 1, Name: "Gaseosa", Price: 3000, Stock: 20}, b)

	name := "Queso costeño"
	i, err := repo.UpdateIngredient(ctx, 1, domain.ItemUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, domain.IngredientRecord{IngredientID: 1, Name: name, StockCurrent: 10, StockMinimum: 2}, i)

	ings, err := repo.CreateIngredients(ctx, []domain.IngredientInput{{Name: "Jamón", StockCurrent: 4, StockMinimum: 1}, {Name: "Pollo"}})
	require.NoError(t, err)
	require.Len(t, ings, 2)
	assert.Equal(t, 3, ings[0].IngredientID)

	nb, err := repo.CreateBeverage(ctx, domain.BeverageInput{Name: "Jugo", Price: 4000, Stock: 6})
	require.NoError(t, err)
	require.NoError(t, repo.DeleteBeverage(ctx, nb.BebidaID))
	assert.ErrorIs(t, repo.DeleteBeverage(ctx, nb.BebidaID), ErrNotFound)

	// Queso is used by producto 1
	assert.ErrorIs(t, repo.DeleteIngredient(ctx, 1), ErrConflict)
	require.NoError(t, repo.DeleteIngredient(ctx, 4))
}

func TestDeleteSoldItemsConflict(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	_, err := NewSalesRepository(db).CreateSale(ctx, sale(
		dao.NewSaleDetail{TipoProducto: domain.TipoProducto, ProductoID: intp(1), Cantidad: 1, Precio: 5000},
	))
	require.NoError(t, err)

	assert.ErrorIs(t, NewCatalogRepository(db).DeleteProduct(ctx, 1), ErrConflict)
	assert.ErrorIs(t, NewStaffRepository(db).DeleteEmployee(ctx, 1), ErrConflict)
	assert.Equal(t, 1, count(t, db, "productos"))
}

func TestStaffWrites(t *testing.T) {
	db := newTestDB(t)
	repo := NewStaffRepository(db)
	ctx := context.Background()

	e, err := repo.CreateEmployee(ctx, domain.EmployeeInput{Nombre: "Ana", Apellido: "Ruiz", Rol: "Mesero", Usuario: "ana.ruiz"})
	require.NoError(t, err)
	assert.Equal(t, domain.EmployeeRecord{EmpleadoID: 2, Nombre: "Ana", Apellido: "Ruiz", Rol: "Mesero", Usuario: "ana.ruiz"}, e)

	_, err = repo.CreateEmployee(ctx, domain.EmployeeInput{Nombre: "Luis", Apellido: "Pérez", Rol: "Cajero", Usuario: "luis.perez"})
	assert.ErrorIs(t, err, ErrConflict)

	e, err = repo.UpdateEmployee(ctx, 2, domain.EmployeeInput{Nombre: "Ana", Apellido: "Ruiz", Rol: "Administrador", Usuario: "ana.ruiz"})
	require.NoError(t, err)
	assert.Equal(t, "Administrador", e.Rol)

	_, err = repo.UpdateEmployee(ctx, 9, domain.EmployeeInput{Nombre: "X", Apellido: "Y", Rol: "Cajero", Usuario: "x.y"})
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.DeleteEmployee(ctx, 2))
	assert.Equal(t, 1, count(t, db, "empleados"))
}
