package domain

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// FieldError names the input field that failed validation.
type FieldError struct {
	Field string
	Msg   string
}

func (e *FieldError) Error() string { return e.Field + ": " + e.Msg }

func fieldErr(field, format string, args ...any) error {
	return &FieldError{Field: field, Msg: fmt.Sprintf(format, args...)}
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

func badAmount(v float64) bool { return v < 0 || math.IsNaN(v) || math.IsInf(v, 0) }

func (p ProductInput) Validate() error {
	if blank(p.Name) {
		return fieldErr("name", "must not be blank")
	}
	if badAmount(p.Price) {
		return fieldErr("price", "must not be negative")
	}
	seen := make(map[int]bool, len(p.Ingredientes))
	for i, ing := range p.Ingredientes {
		field := fmt.Sprintf("ingredientes[%d]", i)
		switch {
		case ing.ID <= 0:
			return fieldErr(field+".id", "must be a positive id")
		case ing.Amount <= 0 || badAmount(ing.Amount):
			return fieldErr(field+".amount", "must be positive")
		case seen[ing.ID]:
			return fieldErr(field+".id", "ingredient %d listed twice", ing.ID)
		}
		seen[ing.ID] = true
	}
	return nil
}

func (b BeverageInput) Validate() error {
	switch {
	case blank(b.Name):
		return fieldErr("name", "must not be blank")
	case badAmount(b.Price):
		return fieldErr("price", "must not be negative")
	case b.Stock < 0:
		return fieldErr("stock", "must not be negative")
	}
	return nil
}

func (i IngredientInput) Validate() error {
	switch {
	case blank(i.Name):
		return fieldErr("name", "must not be blank")
	case badAmount(i.StockCurrent):
		return fieldErr("stock_current", "must not be negative")
	case badAmount(i.StockMinimum):
		return fieldErr("stock_minimum", "must not be negative")
	}
	return nil
}

func (b IngredientBatch) Validate() error {
	if len(b.Ingredientes) == 0 {
		return fieldErr("ingredientes", "must not be empty")
	}
	for i, ing := range b.Ingredientes {
		var fe *FieldError
		if err := ing.Validate(); errors.As(err, &fe) {
			return fieldErr(fmt.Sprintf("ingredientes[%d].%s", i, fe.Field), "%s", fe.Msg)
		}
	}
	return nil
}

// ValidateBeverage accepts name, price and stock.
func (u ItemUpdate) ValidateBeverage() error {
	if u.StockCurrent != nil || u.StockMinimum != nil {
		return fieldErr("stock_current", "not a beverage field")
	}
	if u.Name == nil && u.Price == nil && u.Stock == nil {
		return fieldErr("stock", "nothing to update")
	}
	return u.validateCommon()
}

// ValidateIngredient accepts name, stock_current and stock_minimum.
func (u ItemUpdate) ValidateIngredient() error {
	if u.Price != nil || u.Stock != nil {
		return fieldErr("stock", "not an ingredient field")
	}
	if u.Name == nil && u.StockCurrent == nil && u.StockMinimum == nil {
		return fieldErr("stock_current", "nothing to update")
	}
	return u.validateCommon()
}

func (u ItemUpdate) validateCommon() error {
	switch {
	case u.Name != nil && blank(*u.Name):
		return fieldErr("name", "must not be blank")
	case u.Price != nil && badAmount(*u.Price):
		return fieldErr("price", "must not be negative")
	case u.Stock != nil && *u.Stock < 0:
		return fieldErr("stock", "must not be negative")
	case u.StockCurrent != nil && badAmount(*u.StockCurrent):
		return fieldErr("stock_current", "must not be negative")
	case u.StockMinimum != nil && badAmount(*u.StockMinimum):
		return fieldErr("stock_minimum", "must not be negative")
	}
	return nil
}

func (e EmployeeInput) Validate() error {
	switch {
	case blank(e.Nombre):
		return fieldErr("nombre", "must not be blank")
	case blank(e.Apellido):
		return fieldErr("apellido", "must not be blank")
	case !ValidRole(e.Rol):
		return fieldErr("rol", "unknown role %q", e.Rol)
	}
	return nil
}

// Username is Usuario when set, otherwise "nombre.apellido" in lower case
// without spaces.
func (e EmployeeInput) Username() string {
	if u := strings.TrimSpace(e.Usuario); u != "" {
		return u
	}
	compact := func(s string) string { return strings.ToLower(strings.Join(strings.Fields(s), "")) }
	return compact(e.Nombre) + "." + compact(e.Apellido)
}
