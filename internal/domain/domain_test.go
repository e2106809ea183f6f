package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaleRoutingKey(t *testing.T) {
	assert.Equal(t, "sale.created.efectivo", SaleRoutingKey(MetodoEfectivo))
	assert.Equal(t, "sale.created.transferencia", SaleRoutingKey(MetodoTransferencia))
	assert.Equal(t, "sale.created.unknown", SaleRoutingKey(""))
	assert.Equal(t, "sale.created.nequi", SaleRoutingKey("Ne.qui #"))
}

func TestValidPaymentMethod(t *testing.T) {
	for _, m := range PaymentMethods {
		assert.True(t, ValidPaymentMethod(m), m)
	}
	assert.False(t, ValidPaymentMethod("efectivo"))
	assert.False(t, ValidPaymentMethod(""))
}

func TestValidPeriod(t *testing.T) {
	assert.True(t, ValidPeriod(PeriodWeek))
	assert.False(t, ValidPeriod("quincena"))
	assert.False(t, ValidPeriod(""))
}

func ptr[T any](v T) *T { return &v }

func TestInputValidation(t *testing.T) {
	var fe *FieldError

	assert.NoError(t, ProductInput{Name: "Arepa de queso", Price: 5000,
		Ingredientes: []ProductIngredientInput{{ID: 1, Amount: 2}}}.Validate())

	err := ProductInput{Name: "Arepa", Price: 5000,
		Ingredientes: []ProductIngredientInput{{ID: 1, Amount: 2}, {ID: 1, Amount: 1}}}.Validate()
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "ingredientes[1].id", fe.Field)

	assert.Error(t, ProductInput{Name: " ", Price: 1}.Validate())
	assert.Error(t, ProductInput{Name: "Arepa", Price: -1}.Validate())
	assert.Error(t, ProductInput{Name: "Arepa", Ingredientes: []ProductIngredientInput{{ID: 1}}}.Validate())

	assert.NoError(t, BeverageInput{Name: "Gaseosa", Price: 3000, Stock: 12}.Validate())
	assert.Error(t, BeverageInput{Name: "Gaseosa", Stock: -1}.Validate())

	err = IngredientBatch{Ingredientes: []IngredientInput{{Name: "Queso"}, {Name: "", StockCurrent: 1}}}.Validate()
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "ingredientes[1].name", fe.Field)
	assert.Error(t, IngredientBatch{}.Validate())

	assert.NoError(t, EmployeeInput{Nombre: "Luis", Apellido: "Pérez", Rol: "Cajero"}.Validate())
	assert.Error(t, EmployeeInput{Nombre: "Luis", Apellido: "Pérez", Rol: "Gerente"}.Validate())
}

func TestItemUpdateValidation(t *testing.T) {
	assert.NoError(t, ItemUpdate{Stock: ptr(30)}.ValidateBeverage())
	assert.NoError(t, ItemUpdate{Name: ptr("Jugo"), Price: ptr(4000.0)}.ValidateBeverage())
	assert.Error(t, ItemUpdate{}.ValidateBeverage())
	assert.Error(t, ItemUpdate{StockCurrent: ptr(1.0)}.ValidateBeverage())
	assert.Error(t, ItemUpdate{Stock: ptr(-1)}.ValidateBeverage())

	assert.NoError(t, ItemUpdate{StockCurrent: ptr(12.5)}.ValidateIngredient())
	assert.Error(t, ItemUpdate{Price: ptr(1.0)}.ValidateIngredient())
	assert.Error(t, ItemUpdate{StockMinimum: ptr(-0.5)}.ValidateIngredient())
	assert.Error(t, ItemUpdate{Name: ptr("  ")}.ValidateIngredient())
}

func TestEmployeeUsername(t *testing.T) {
	assert.Equal(t, "luis.perezgomez", EmployeeInput{Nombre: "Luis", Apellido: "Perez Gomez"}.Username())
	assert.Equal(t, "lp", EmployeeInput{Nombre: "Luis", Usuario: " lp "}.Username())
}
