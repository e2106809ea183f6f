// Package selection builds the editable ingredient list the operator fills in
// before a product line is added to the cart.
package selection

import (
	"fmt"
	"strconv"

	"pos-system/internal/microservices/billing/models"
)

type Policy string

const (
	// PolicyOpen lists every known ingredient unchecked with amount 0.
	PolicyOpen Policy = "open"
	// PolicyPrefilled starts from the product's own ingredients, checked,
	// with their default amounts.
	PolicyPrefilled Policy = "prefilled"
)

func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case PolicyOpen, PolicyPrefilled:
		return Policy(s), nil
	case "":
		return PolicyPrefilled, nil
	}
	return "", models.Invalid("policy", models.ErrValidation, fmt.Sprintf("unknown policy %q", s))
}

type Entry struct {
	IngredientID int
	Name         string
	Checked      bool
	Amount       float64
}

// Set is the state of one selection dialog. The confirmed result depends
// only on the final Checked/Amount of each entry.
type Set struct {
	product models.Product
	policy  Policy
	entries []Entry
}

func New(policy Policy, p models.Product, candidates []models.Ingredient) (*Set, error) {
	switch policy {
	case PolicyOpen:
		return Open(p, candidates), nil
	case PolicyPrefilled:
		return Prefilled(p), nil
	}
	return nil, models.Invalid("policy", models.ErrValidation, fmt.Sprintf("unknown policy %q", policy))
}

func Open(p models.Product, candidates []models.Ingredient) *Set {
	s := &Set{product: p, policy: PolicyOpen, entries: make([]Entry, 0, len(candidates))}
	for _, c := range candidates {
		s.entries = append(s.entries, Entry{IngredientID: c.ID, Name: c.Name})
	}
	return s
}

func Prefilled(p models.Product) *Set {
	s := &Set{product: p, policy: PolicyPrefilled, entries: make([]Entry, 0, len(p.Ingredients))}
	for _, pi := range p.Ingredients {
		s.entries = append(s.entries, Entry{
			IngredientID: pi.IngredientID,
			Name:         pi.Name,
			Checked:      true,
			Amount:       pi.DefaultAmount,
		})
	}
	return s
}

func (s *Set) Product() models.Product { return s.product }
func (s *Set) Policy() Policy          { return s.policy }

func (s *Set) Entries() []Entry { return append([]Entry(nil), s.entries...) }

func (s *Set) Check(id int) error   { return s.setChecked(id, true) }
func (s *Set) Uncheck(id int) error { return s.setChecked(id, false) }

func (s *Set) setChecked(id int, v bool) error {
	e, err := s.find(id)
	if err != nil {
		return err
	}
	e.Checked = v
	return nil
}

// SetAmount edits the amount of one entry. Zero is accepted and means the
// entry won't be kept; negative amounts are rejected.
func (s *Set) SetAmount(id int, amount float64) error {
	if amount < 0 {
		return models.Invalid("amount", models.ErrInvalidAmount, strconv.FormatFloat(amount, 'f', -1, 64))
	}
	e, err := s.find(id)
	if err != nil {
		return err
	}
	e.Amount = amount
	return nil
}

// Confirm returns the checked entries with a positive amount, in list order.
func (s *Set) Confirm() []models.IngredientSelection {
	out := make([]models.IngredientSelection, 0, len(s.entries))
	for _, e := range s.entries {
		if e.Checked && e.Amount > 0 {
			out = append(out, models.IngredientSelection{IngredientID: e.IngredientID, Name: e.Name, Amount: e.Amount})
		}
	}
	return out
}

func (s *Set) find(id int) (*Entry, error) {
	for i := range s.entries {
		if s.entries[i].IngredientID == id {
			return &s.entries[i], nil
		}
	}
	return nil, &models.NotFoundError{Entity: "ingrediente", ID: id}
}
