package handlers

import (
	"time"

	"pos-system/internal/domain"
	"pos-system/internal/microservices/billing/models"
	"pos-system/internal/microservices/billing/service"
)

type addProductRequest struct {
	ProductoID   int                     `json:"producto_id"`
	Ingredientes []domain.SaleIngredient `json:"ingredientes"`
}

type addBeverageRequest struct {
	BebidaID int `json:"bebida_id"`
}

type formDTO struct {
	Cliente    string `json:"cliente"`
	MetodoPago string `json:"metodo_pago"`
	VendedorID string `json:"vendedor_id"`
}

type beginSelectionRequest struct {
	ProductoID int    `json:"producto_id"`
	Policy     string `json:"policy"`
}

type updateSelectionRequest struct {
	Checked *bool    `json:"checked"`
	Amount  *float64 `json:"amount"`
}

type restockIngredientRequest struct {
	Cantidad float64 `json:"cantidad"`
}

type restockBeverageRequest struct {
	Cantidad int `json:"cantidad"`
}

type catalogResponse struct {
	Productos    []domain.ProductRecord  `json:"productos"`
	Bebidas      []domain.BeverageRecord `json:"bebidas"`
	Ingredientes []ingredientResponse    `json:"ingredientes"`
	Empleados    []domain.EmployeeRecord `json:"empleados"`
	Metodos      []string                `json:"metodos_pago"`
}

type ingredientResponse struct {
	domain.IngredientRecord
	Low bool `json:"low_stock"`
}

type lineItemResponse struct {
	Index        int                     `json:"index"`
	TipoProducto string                  `json:"tipo_producto"`
	ProductoID   *int                    `json:"producto_id"`
	BebidaID     *int                    `json:"bebida_id"`
	Name         string                  `json:"name"`
	Precio       float64                 `json:"precio"`
	Ingredientes []domain.SaleIngredient `json:"ingredientes,omitempty"`
}

type cartResponse struct {
	Items []lineItemResponse `json:"items"`
	Total float64            `json:"total"`
	Form  formDTO            `json:"form"`
}

type selectionEntryResponse struct {
	IngredientID int     `json:"ingredient_id"`
	Name         string  `json:"name"`
	Checked      bool    `json:"checked"`
	Amount       float64 `json:"amount"`
}

type selectionResponse struct {
	ProductoID int                      `json:"producto_id"`
	Name       string                   `json:"name"`
	Policy     string                   `json:"policy"`
	Entries    []selectionEntryResponse `json:"ingredientes"`
}

type checkoutResponse struct {
	VentasID int       `json:"ventas_id"`
	Fecha    time.Time `json:"fecha"`
	Total    float64   `json:"total"`
}

type restockResponse struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Stock float64 `json:"stock"`
}

type dashboardResponse struct {
	Usuario   string               `json:"usuario"`
	Rol       string               `json:"rol"`
	Permisos  []string             `json:"permisos"`
	VentasHoy domain.TotalSales    `json:"ventas_hoy,omitempty"`
	StockBajo []ingredientResponse `json:"stock_bajo,omitempty"`
}

type inventoryResponse struct {
	Productos    []domain.ProductRecord  `json:"productos"`
	Bebidas      []domain.BeverageRecord `json:"bebidas"`
	Ingredientes []ingredientResponse    `json:"ingredientes"`
}

type reportResponse struct {
	Period string `json:"period"`
	Rows   any    `json:"rows"`
}

func toCatalogResponse(c models.Catalog) catalogResponse {
	out := catalogResponse{
		Productos:    make([]domain.ProductRecord, 0, len(c.Products)),
		Bebidas:      make([]domain.BeverageRecord, 0, len(c.Beverages)),
		Ingredientes: make([]ingredientResponse, 0, len(c.Ingredients)),
		Empleados:    make([]domain.EmployeeRecord, 0, len(c.Employees)),
		Metodos:      domain.PaymentMethods,
	}
	for _, p := range c.Products {
		rec := domain.ProductRecord{ProductoID: p.ID, Name: p.Name, Price: p.Price}
		for _, pi := range p.Ingredients {
			rec.Ingredientes = append(rec.Ingredientes, domain.ProductIngredientRecord{
				IngredientID: pi.IngredientID, Name: pi.Name, Amount: pi.DefaultAmount,
			})
		}
		out.Productos = append(out.Productos, rec)
	}
	for _, b := range c.Beverages {
		out.Bebidas = append(out.Bebidas, domain.BeverageRecord{BebidaID: b.ID, Name: b.Name, Price: b.Price, Stock: b.Stock})
	}
	for _, i := range c.Ingredients {
		out.Ingredientes = append(out.Ingredientes, ingredientResponse{
			IngredientRecord: domain.IngredientRecord{
				IngredientID: i.ID, Name: i.Name, StockCurrent: i.StockCurrent, StockMinimum: i.StockMinimum,
			},
			Low: i.Low(),
		})
	}
	for _, e := range c.Employees {
		out.Empleados = append(out.Empleados, domain.EmployeeRecord{
			EmpleadoID: e.ID, Nombre: e.FirstName, Apellido: e.LastName, Rol: e.Role, Usuario: e.Username,
		})
	}
	return out
}

func toDashboardResponse(d service.Dashboard) dashboardResponse {
	out := dashboardResponse{
		Usuario:   d.User,
		Rol:       d.Role.String(),
		Permisos:  make([]string, len(d.Permissions)),
		VentasHoy: d.TodayTotals,
	}
	for i, p := range d.Permissions {
		out.Permisos[i] = p.String()
	}
	if d.LowStock != nil {
		out.StockBajo = toCatalogResponse(models.Catalog{Ingredients: d.LowStock}).Ingredientes
	}
	return out
}

func toCartResponse(v service.CartView) cartResponse {
	out := cartResponse{
		Items: make([]lineItemResponse, len(v.Items)),
		Total: v.Total,
		Form:  toFormDTO(v.Form),
	}
	for i, it := range v.Items {
		li := lineItemResponse{
			Index:        i,
			TipoProducto: string(it.Kind()),
			Name:         it.Name,
			Precio:       it.UnitPrice,
		}
		if id, ok := it.Ref.ProductID(); ok {
			li.ProductoID = &id
		}
		if id, ok := it.Ref.BeverageID(); ok {
			li.BebidaID = &id
		}
		for _, s := range it.Ingredients {
			li.Ingredientes = append(li.Ingredientes, domain.SaleIngredient{IngredientID: s.IngredientID, Name: s.Name, Amount: s.Amount})
		}
		out.Items[i] = li
	}
	return out
}

func toFormDTO(f models.Form) formDTO {
	return formDTO{Cliente: f.Customer, MetodoPago: f.PaymentMethod, VendedorID: f.SellerID}
}

func (f formDTO) model() models.Form {
	return models.Form{Customer: f.Cliente, PaymentMethod: f.MetodoPago, SellerID: f.VendedorID}
}

func toSelections(in []domain.SaleIngredient) []models.IngredientSelection {
	out := make([]models.IngredientSelection, len(in))
	for i, s := range in {
		out[i] = models.IngredientSelection{IngredientID: s.IngredientID, Name: s.Name, Amount: s.Amount}
	}
	return out
}

func toSelectionResponse(v service.SelectionView) selectionResponse {
	out := selectionResponse{
		ProductoID: v.ProductID,
		Name:       v.ProductName,
		Policy:     string(v.Policy),
		Entries:    make([]selectionEntryResponse, len(v.Entries)),
	}
	for i, e := range v.Entries {
		out.Entries[i] = selectionEntryResponse(e)
	}
	return out
}
