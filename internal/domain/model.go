// Package domain holds the REST and message contract shared by the billing
// terminal, the inventory service and the sales notifier.
package domain

// tipo_producto values
const (
	TipoProducto = "producto"
	TipoBebida   = "bebida"
)

// metodo_pago values offered at the counter
const (
	MetodoEfectivo      = "Efectivo"
	MetodoTarjeta       = "Tarjeta"
	MetodoTransferencia = "Transferencia"
)

// DefaultPaymentMethod is what the billing form resets to.
const DefaultPaymentMethod = MetodoEfectivo

var PaymentMethods = []string{MetodoEfectivo, MetodoTarjeta, MetodoTransferencia}

func ValidPaymentMethod(m string) bool {
	for _, p := range PaymentMethods {
		if p == m {
			return true
		}
	}
	return false
}

// empleados.rol values
var Roles = []string{"Superadmin", "Administrador", "Cajero", "Mesero", "Empleado"}

func ValidRole(r string) bool {
	for _, v := range Roles {
		if v == r {
			return true
		}
	}
	return false
}

// report periods
const (
	PeriodDay   = "dia"
	PeriodWeek  = "semana"
	PeriodMonth = "mes"
	PeriodYear  = "anio"
)

func ValidPeriod(p string) bool {
	switch p {
	case PeriodDay, PeriodWeek, PeriodMonth, PeriodYear:
		return true
	}
	return false
}
