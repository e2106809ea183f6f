// Package cart holds the in-progress order of the billing screen.
//
// A Cart is not safe for concurrent use; the billing service serializes
// every call.
package cart

import "pos-system/internal/microservices/billing/models"

type Cart struct {
	items []models.LineItem
	total float64
}

func New() *Cart { return &Cart{} }

// Add appends item as a new line. Selections with a non-positive amount are
// dropped; selections on a beverage are rejected.
func (c *Cart) Add(item models.CatalogItem, kind models.Kind, sel []models.IngredientSelection) (models.LineItem, error) {
	if item == nil {
		return models.LineItem{}, models.Invalid("item", models.ErrMissingField, "")
	}
	if !kind.Valid() || item.Kind() != kind {
		return models.LineItem{}, models.Invalid("tipo_producto", models.ErrKindMismatch,
			"item is "+string(item.Kind())+", requested "+string(kind))
	}

	line := models.LineItem{
		Ref:       item.Ref(),
		Name:      item.DisplayName(),
		UnitPrice: item.UnitPrice(),
	}
	if kind == models.KindProduct {
		line.Ingredients = positive(sel)
	} else if len(sel) > 0 {
		return models.LineItem{}, models.Invalid("ingredientes", models.ErrKindMismatch,
			"ingredient selections only apply to products")
	}

	c.items = append(c.items, line)
	c.recompute()
	return cloneLine(line), nil
}

// Remove drops the line at index. An out-of-range index leaves the cart
// untouched and returns an *models.IndexError.
func (c *Cart) Remove(index int) (models.LineItem, error) {
	if index < 0 || index >= len(c.items) {
		return models.LineItem{}, &models.IndexError{Index: index, Len: len(c.items)}
	}
	removed := c.items[index]
	c.items = append(c.items[:index:index], c.items[index+1:]...)
	c.recompute()
	return removed, nil
}

func (c *Cart) Clear() {
	c.items = nil
	c.total = 0
}

func (c *Cart) Len() int { return len(c.items) }

func (c *Cart) Total() float64 { return c.total }

// Items returns a copy of the lines in insertion order.
func (c *Cart) Items() []models.LineItem { return models.CloneLineItems(c.items) }

// recompute keeps total equal to the sum of the line prices, summed in line
// order so the value matches any caller recomputing it the same way.
func (c *Cart) recompute() {
	var sum float64
	for _, it := range c.items {
		sum += it.UnitPrice
	}
	c.total = sum
}

func positive(sel []models.IngredientSelection) []models.IngredientSelection {
	out := make([]models.IngredientSelection, 0, len(sel))
	for _, s := range sel {
		if s.Amount > 0 {
			out = append(out, s)
		}
	}
	return out
}

func cloneLine(l models.LineItem) models.LineItem {
	return models.CloneLineItems([]models.LineItem{l})[0]
}
