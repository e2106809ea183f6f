package models

import "pos-system/internal/domain"

type Kind string

const (
	KindProduct  Kind = domain.TipoProducto
	KindBeverage Kind = domain.TipoBebida
)

func (k Kind) Valid() bool { return k == KindProduct || k == KindBeverage }

// CatalogItem is either a Product or a Beverage.
type CatalogItem interface {
	Kind() Kind
	Ref() ItemRef
	DisplayName() string
	UnitPrice() float64
	catalogItem()
}

type ProductIngredient struct {
	IngredientID  int
	Name          string
	DefaultAmount float64
}

type Product struct {
	ID          int
	Name        string
	Price       float64
	Ingredients []ProductIngredient
}

func (p Product) Kind() Kind          { return KindProduct }
func (p Product) Ref() ItemRef        { return ProductRef(p.ID) }
func (p Product) DisplayName() string { return p.Name }
func (p Product) UnitPrice() float64  { return p.Price }
func (Product) catalogItem()          {}

type Beverage struct {
	ID    int
	Name  string
	Price float64
	Stock int
}

func (b Beverage) Kind() Kind          { return KindBeverage }
func (b Beverage) Ref() ItemRef        { return BeverageRef(b.ID) }
func (b Beverage) DisplayName() string { return b.Name }
func (b Beverage) UnitPrice() float64  { return b.Price }
func (Beverage) catalogItem()          {}

type Ingredient struct {
	ID           int
	Name         string
	StockCurrent float64
	StockMinimum float64
}

// Low reports whether stock has fallen to or below the minimum.
func (i Ingredient) Low() bool { return i.StockCurrent <= i.StockMinimum }

type Employee struct {
	ID        int
	FirstName string
	LastName  string
	Role      string
	Username  string
}

func (e Employee) FullName() string {
	switch {
	case e.FirstName == "":
		return e.LastName
	case e.LastName == "":
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}

// Catalog is the snapshot the terminal sells from. Lookups never cache
// across refreshes; callers hold the service lock while reading.
type Catalog struct {
	Products    []Product
	Beverages   []Beverage
	Ingredients []Ingredient
	Employees   []Employee
}

func (c *Catalog) Product(id int) (Product, error) {
	for _, p := range c.Products {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, &NotFoundError{Entity: "producto", ID: id}
}

func (c *Catalog) Beverage(id int) (Beverage, error) {
	for _, b := range c.Beverages {
		if b.ID == id {
			return b, nil
		}
	}
	return Beverage{}, &NotFoundError{Entity: "bebida", ID: id}
}

func (c *Catalog) Ingredient(id int) (Ingredient, error) {
	for _, i := range c.Ingredients {
		if i.ID == id {
			return i, nil
		}
	}
	return Ingredient{}, &NotFoundError{Entity: "ingrediente", ID: id}
}

func (c *Catalog) Employee(id int) (Employee, error) {
	for _, e := range c.Employees {
		if e.ID == id {
			return e, nil
		}
	}
	return Employee{}, &NotFoundError{Entity: "empleado", ID: id}
}
