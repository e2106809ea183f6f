package domain

import "time"

// GET /api/productos
type ProductRecord struct {
	ProductoID   int                       `json:"producto_id"`
	Name         string                    `json:"name"`
	Price        float64                   `json:"price"`
	Ingredientes []ProductIngredientRecord `json:"Ingredientes,omitempty"`
}

type ProductIngredientRecord struct {
	IngredientID int     `json:"ingredient_id"`
	Name         string  `json:"name"`
	Amount       float64 `json:"amount"`
}

// GET /api/bebidas
type BeverageRecord struct {
	BebidaID int     `json:"bebida_id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Stock    int     `json:"stock"`
}

// GET /api/ingredientes
type IngredientRecord struct {
	IngredientID int     `json:"ingredient_id"`
	Name         string  `json:"name"`
	StockCurrent float64 `json:"stock_current"`
	StockMinimum float64 `json:"stock_minimum"`
}

// GET /api/empleados
type EmployeeRecord struct {
	EmpleadoID int    `json:"empleado_id"`
	Nombre     string `json:"nombre"`
	Apellido   string `json:"apellido"`
	Rol        string `json:"rol"`
	Usuario    string `json:"usuario,omitempty"`
}

// POST /api/ventas
type SaleRequest struct {
	Cliente    string              `json:"cliente"`
	MetodoPago string              `json:"metodo_pago"`
	VendedorID string              `json:"vendedor_id"`
	Fecha      string              `json:"fecha"`
	Total      float64             `json:"total"`
	Detalles   []SaleDetailRequest `json:"detalles"`
}

// SaleDetailRequest carries exactly one of ProductoID / BebidaID; the other
// is serialized as null.
type SaleDetailRequest struct {
	TipoProducto string           `json:"tipo_producto"`
	ProductoID   *int             `json:"producto_id"`
	BebidaID     *int             `json:"bebida_id"`
	Cantidad     int              `json:"cantidad"`
	Precio       float64          `json:"precio"`
	Ingredientes []SaleIngredient `json:"ingredientes,omitempty"`
}

type SaleIngredient struct {
	IngredientID int     `json:"ingredient_id"`
	Name         string  `json:"name"`
	Amount       float64 `json:"amount"`
}

// GET /api/ventas, GET /api/ventas/{id}, POST /api/ventas response
type SaleRecord struct {
	VentasID      int                `json:"ventas_id"`
	Fecha         time.Time          `json:"fecha"`
	Cliente       string             `json:"cliente"`
	MetodoPago    string             `json:"metodo_pago"`
	Total         float64            `json:"total"`
	VendedorID    int                `json:"vendedor_id"`
	Vendedor      *SellerRecord      `json:"vendedor,omitempty"`
	VentaDetalles []SaleDetailRecord `json:"VentaDetalles"`
}

type SellerRecord struct {
	Nombre   string `json:"nombre"`
	Apellido string `json:"apellido"`
}

type SaleDetailRecord struct {
	TipoProducto string           `json:"tipo_producto"`
	ProductoID   *int             `json:"producto_id"`
	BebidaID     *int             `json:"bebida_id"`
	Cantidad     int              `json:"cantidad"`
	Precio       float64          `json:"precio"`
	Producto     *NamedRecord     `json:"producto,omitempty"`
	Bebida       *NamedRecord     `json:"bebida,omitempty"`
	Ingredientes []SaleIngredient `json:"ingredientes,omitempty"`
}

type NamedRecord struct {
	Name string `json:"name"`
}

// PUT /api/ingredientes/{id} and PUT /api/bebidas/{id}. Nil fields are
// left unchanged, so the purchases screen can send only the stock while the
// inventory screen sends the whole row.
type ItemUpdate struct {
	Name         *string  `json:"name,omitempty"`
	Price        *float64 `json:"price,omitempty"`
	Stock        *int     `json:"stock,omitempty"`
	StockCurrent *float64 `json:"stock_current,omitempty"`
	StockMinimum *float64 `json:"stock_minimum,omitempty"`
}

// POST /api/productos and PUT /api/productos/{id}. On update a nil
// Ingredientes keeps the stored associations.
type ProductInput struct {
	Name         string                   `json:"name"`
	Price        float64                  `json:"price"`
	Ingredientes []ProductIngredientInput `json:"ingredientes"`
}

type ProductIngredientInput struct {
	ID     int     `json:"id"`
	Amount float64 `json:"amount"`
}

// POST /api/bebidas
type BeverageInput struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Stock int     `json:"stock"`
}

// POST /api/ingredientes takes a batch, as the inventory screen sends it.
type IngredientBatch struct {
	Ingredientes []IngredientInput `json:"ingredientes"`
}

type IngredientInput struct {
	Name         string  `json:"name"`
	StockCurrent float64 `json:"stock_current"`
	StockMinimum float64 `json:"stock_minimum"`
}

// POST /api/empleados/empleados and PUT /api/empleados/empleados/{id}.
// Credentials are not part of this contract.
type EmployeeInput struct {
	Nombre   string `json:"nombre"`
	Apellido string `json:"apellido"`
	Rol      string `json:"rol"`
	Usuario  string `json:"usuario,omitempty"`
}

// GET /api/reportes/best-selling
type BestSellingRow struct {
	Name            string `json:"name"`
	CantidadVendida int    `json:"cantidad_vendida"`
}

// GET /api/reportes/total-sales, keyed by metodo_pago
type TotalSales map[string]float64

// ProblemResponse is the error body every service writes.
type ProblemResponse struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
}
