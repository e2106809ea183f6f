// Package receipt renders a stored sale as the plain-text ticket printed at
// the counter.
package receipt

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"pos-system/internal/domain"
)

// Header is the fixed business block printed on every ticket.
type Header struct {
	NIT     string
	Phone   string
	Regimen string
}

var DefaultHeader = Header{
	NIT:     "1027520378-9",
	Phone:   "3229614209",
	Regimen: "No responsable de IVA",
}

const (
	separator   = "- - - - - - - - - - - - - - - - - - - -"
	unspecified = "No especificado"
	unknownItem = "Producto desconocido"
	nameWidth   = 20
)

// Render formats sale. loc sets the timezone the date is printed in.
func Render(h Header, sale domain.SaleRecord, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	var b strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format, args...)
		b.WriteByte('\n')
	}

	line("NIT: %s", h.NIT)
	line("Factura de venta: %d", sale.VentasID)
	line("Fecha de venta: %s", sale.Fecha.In(loc).Format("02/01/2006 15:04:05"))
	line("Cliente: %s", orUnspecified(sale.Cliente))
	line("Método de pago: %s", orUnspecified(sale.MetodoPago))
	line("%s", separator)
	line("%-*s %5s %10s %10s", nameWidth, "Producto", "Cant.", "Vlr. Und.", "Total")
	for _, d := range sale.VentaDetalles {
		line("%-*s %5d %10s %10s", nameWidth, truncate(ItemName(d), nameWidth), d.Cantidad,
			Pesos(d.Precio), Pesos(float64(d.Cantidad)*d.Precio))
	}
	line("%s", separator)
	line("Total: %s", Pesos(sale.Total))
	line("¡¡Gracias por su compra!!")
	seller := unspecified
	if sale.Vendedor != nil {
		if n := strings.TrimSpace(sale.Vendedor.Nombre + " " + sale.Vendedor.Apellido); n != "" {
			seller = n
		}
	}
	line("Atendido por: %s", seller)
	line("Teléfono: %s", h.Phone)
	line("Régimen: %s", h.Regimen)
	return b.String()
}

// ItemName picks the product or beverage name by tipo_producto.
func ItemName(d domain.SaleDetailRecord) string {
	var item *domain.NamedRecord
	switch d.TipoProducto {
	case domain.TipoProducto:
		item = d.Producto
	case domain.TipoBebida:
		item = d.Bebida
	}
	if item == nil || item.Name == "" {
		return unknownItem
	}
	return item.Name
}

// Pesos formats v rounded to whole pesos with '.' thousands grouping,
// e.g. 8000 -> "$ 8.000".
func Pesos(v float64) string {
	n := int64(math.Round(v))
	neg := n < 0
	if neg {
		n = -n
	}
	digits := strconv.FormatInt(n, 10)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	if neg {
		return "$ -" + b.String()
	}
	return "$ " + b.String()
}

func orUnspecified(s string) string {
	if strings.TrimSpace(s) == "" {
		return unspecified
	}
	return s
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
