// Package order turns the cart and checkout form into the sale submitted to
// the backend.
package order

import (
	"strings"
	"time"

	"pos-system/internal/domain"
	"pos-system/internal/microservices/billing/cart"
	"pos-system/internal/microservices/billing/models"
)

// Build maps every cart line to one detail with quantity 1 and the price
// captured on the line. It does not touch the cart.
func Build(c *cart.Cart, f models.Form, now time.Time) (models.OrderRequest, error) {
	if c == nil || c.Len() == 0 {
		return models.OrderRequest{}, models.Invalid("", models.ErrEmptyCart, "")
	}
	customer := strings.TrimSpace(f.Customer)
	if customer == "" {
		return models.OrderRequest{}, models.Invalid("cliente", models.ErrMissingField, "")
	}
	seller := strings.TrimSpace(f.SellerID)
	if seller == "" {
		return models.OrderRequest{}, models.Invalid("vendedor_id", models.ErrMissingField, "")
	}
	method := f.PaymentMethod
	if method == "" {
		method = domain.DefaultPaymentMethod
	}
	if !domain.ValidPaymentMethod(method) {
		return models.OrderRequest{}, models.Invalid("metodo_pago", models.ErrPaymentMethod, method)
	}

	items := c.Items()
	details := make([]models.OrderDetail, len(items))
	for i, it := range items {
		details[i] = models.OrderDetail{
			Ref:         it.Ref,
			Quantity:    1,
			UnitPrice:   it.UnitPrice,
			Ingredients: it.Ingredients,
		}
	}

	return models.OrderRequest{
		Customer:      customer,
		PaymentMethod: method,
		SellerID:      seller,
		Date:          now.UTC(),
		Total:         c.Total(),
		Details:       details,
	}, nil
}

// isoMillis matches what browsers emit for Date.toISOString.
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// Wire serializes the request into the POST /api/ventas body, splitting the
// item reference into the two nullable id fields.
func Wire(r models.OrderRequest) domain.SaleRequest {
	out := domain.SaleRequest{
		Cliente:    r.Customer,
		MetodoPago: r.PaymentMethod,
		VendedorID: r.SellerID,
		Fecha:      r.Date.UTC().Format(isoMillis),
		Total:      r.Total,
		Detalles:   make([]domain.SaleDetailRequest, len(r.Details)),
	}
	for i, d := range r.Details {
		det := domain.SaleDetailRequest{
			TipoProducto: string(d.Ref.Kind()),
			Cantidad:     d.Quantity,
			Precio:       d.UnitPrice,
		}
		if id, ok := d.Ref.ProductID(); ok {
			det.ProductoID = &id
			for _, s := range d.Ingredients {
				det.Ingredientes = append(det.Ingredientes, domain.SaleIngredient{
					IngredientID: s.IngredientID,
					Name:         s.Name,
					Amount:       s.Amount,
				})
			}
		}
		if id, ok := d.Ref.BeverageID(); ok {
			det.BebidaID = &id
		}
		out.Detalles[i] = det
	}
	return out
}
