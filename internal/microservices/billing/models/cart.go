package models

import (
	"strconv"
	"time"
)

// ItemRef points at exactly one catalog item. The zero value points at
// nothing and is never produced by the cart.
type ItemRef struct {
	kind Kind
	id   int
}

func ProductRef(id int) ItemRef  { return ItemRef{kind: KindProduct, id: id} }
func BeverageRef(id int) ItemRef { return ItemRef{kind: KindBeverage, id: id} }

func (r ItemRef) Kind() Kind  { return r.kind }
func (r ItemRef) ID() int     { return r.id }
func (r ItemRef) Valid() bool { return r.kind.Valid() }

func (r ItemRef) ProductID() (int, bool) {
	if r.kind != KindProduct {
		return 0, false
	}
	return r.id, true
}

func (r ItemRef) BeverageID() (int, bool) {
	if r.kind != KindBeverage {
		return 0, false
	}
	return r.id, true
}

func (r ItemRef) String() string { return string(r.kind) + ":" + strconv.Itoa(r.id) }

type IngredientSelection struct {
	IngredientID int
	Name         string
	Amount       float64
}

// LineItem is one entry of the cart. UnitPrice is captured when the item is
// added and never refreshed from the catalog.
type LineItem struct {
	Ref         ItemRef
	Name        string
	UnitPrice   float64
	Ingredients []IngredientSelection
}

func (l LineItem) Kind() Kind { return l.Ref.Kind() }

func (l LineItem) clone() LineItem {
	if l.Ingredients != nil {
		l.Ingredients = append([]IngredientSelection(nil), l.Ingredients...)
	}
	return l
}

// CloneLineItems deep-copies items so callers can't alias cart state.
func CloneLineItems(items []LineItem) []LineItem {
	out := make([]LineItem, len(items))
	for i, it := range items {
		out[i] = it.clone()
	}
	return out
}

// Form holds the transient checkout fields of the billing screen.
type Form struct {
	Customer      string
	PaymentMethod string
	SellerID      string
}

type OrderDetail struct {
	Ref         ItemRef
	Quantity    int
	UnitPrice   float64
	Ingredients []IngredientSelection
}

// OrderRequest is the sale about to be submitted.
type OrderRequest struct {
	Customer      string
	PaymentMethod string
	SellerID      string
	Date          time.Time
	Total         float64
	Details       []OrderDetail
}

// SaleReceipt is what the backend returned for a recorded sale.
type SaleReceipt struct {
	SaleID int
	Date   time.Time
	Total  float64
}
