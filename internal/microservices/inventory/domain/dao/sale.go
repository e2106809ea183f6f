package dao

import "time"

// NewSale is a validated sale ready to be stored.
type NewSale struct {
	Fecha      time.Time
	Cliente    string
	MetodoPago string
	VendedorID int
	Total      float64
	Details    []NewSaleDetail
}

// NewSaleDetail has exactly one of ProductoID / BebidaID set, matching
// TipoProducto.
type NewSaleDetail struct {
	TipoProducto string
	ProductoID   *int
	BebidaID     *int
	Cantidad     int
	Precio       float64
	Ingredients  []NewSaleIngredient
}

type NewSaleIngredient struct {
	IngredientID int
	Name         string
	Amount       float64
}

// Window is a half-open [From, To) time range for reports.
type Window struct {
	From time.Time
	To   time.Time
}
