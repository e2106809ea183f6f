package selection

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pos-system/internal/microservices/billing/models"
)

var (
	ingredients = []models.Ingredient{
		{ID: 1, Name: "Queso"},
		{ID: 2, Name: "Jamón"},
		{ID: 3, Name: "Pollo"},
	}
	mixta = models.Product{ID: 4, Name: "Arepa mixta", Price: 8000, Ingredients: []models.ProductIngredient{
		{IngredientID: 1, Name: "Queso", DefaultAmount: 2},
		{IngredientID: 3, Name: "Pollo", DefaultAmount: 1.5},
	}}
)

func TestOpen_StartsUnchecked(t *testing.T) {
	s := Open(mixta, ingredients)
	entries := s.Entries()
	require.Len(t, entries, 3)
	for _, e := range entries {
		assert.False(t, e.Checked)
		assert.Zero(t, e.Amount)
	}
	assert.Empty(t, s.Confirm())

	require.NoError(t, s.Check(2))
	assert.Empty(t, s.Confirm(), "checked with zero amount is not kept")

	require.NoError(t, s.SetAmount(2, 1))
	assert.Equal(t, []models.IngredientSelection{{IngredientID: 2, Name: "Jamón", Amount: 1}}, s.Confirm())
}

func TestPrefilled_StartsFromProduct(t *testing.T) {
	s := Prefilled(mixta)
	assert.Equal(t, PolicyPrefilled, s.Policy())
	assert.Equal(t, []models.IngredientSelection{
		{IngredientID: 1, Name: "Queso", Amount: 2},
		{IngredientID: 3, Name: "Pollo", Amount: 1.5},
	}, s.Confirm())

	require.NoError(t, s.Uncheck(1))
	require.NoError(t, s.SetAmount(3, 3))
	assert.Equal(t, []models.IngredientSelection{{IngredientID: 3, Name: "Pollo", Amount: 3}}, s.Confirm())
}

func TestPrefilled_ProductWithoutIngredients(t *testing.T) {
	s := Prefilled(models.Product{ID: 5, Name: "Arepa sola", Price: 2000})
	assert.Empty(t, s.Entries())
	assert.Empty(t, s.Confirm())
}

func TestSet_Errors(t *testing.T) {
	s := Open(mixta, ingredients)

	err := s.SetAmount(1, -2)
	assert.ErrorIs(t, err, models.ErrInvalidAmount)
	assert.ErrorIs(t, err, models.ErrValidation)

	err = s.Check(99)
	var nf *models.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, 99, nf.ID)

	assert.ErrorIs(t, s.SetAmount(99, 1), models.ErrNotFound)
}

// The confirmed result must depend on the final state only, not on how the
// operator got there.
func TestConfirm_IndependentOfHistory(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for round := 0; round < 50; round++ {
		noisy := Open(mixta, ingredients)
		for i := 0; i < 40; i++ {
			id := ingredients[rng.Intn(len(ingredients))].ID
			switch rng.Intn(3) {
			case 0:
				require.NoError(t, noisy.Check(id))
			case 1:
				require.NoError(t, noisy.Uncheck(id))
			default:
				require.NoError(t, noisy.SetAmount(id, float64(rng.Intn(4))))
			}
		}

		direct := Open(mixta, ingredients)
		for _, e := range noisy.Entries() {
			if e.Checked {
				require.NoError(t, direct.Check(e.IngredientID))
			}
			require.NoError(t, direct.SetAmount(e.IngredientID, e.Amount))
		}

		var want []models.IngredientSelection
		for _, e := range noisy.Entries() {
			if e.Checked && e.Amount > 0 {
				want = append(want, models.IngredientSelection{IngredientID: e.IngredientID, Name: e.Name, Amount: e.Amount})
			}
		}

		got := noisy.Confirm()
		assert.ElementsMatch(t, want, got)
		assert.Equal(t, direct.Confirm(), got)
		assert.Equal(t, got, noisy.Confirm(), "confirm is repeatable")
	}
}

func TestNewAndParsePolicy(t *testing.T) {
	p, err := ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, PolicyPrefilled, p)

	p, err = ParsePolicy("open")
	require.NoError(t, err)
	s, err := New(p, mixta, ingredients)
	require.NoError(t, err)
	assert.Len(t, s.Entries(), 3)

	_, err = ParsePolicy("random")
	assert.ErrorIs(t, err, models.ErrValidation)
	_, err = New("random", mixta, ingredients)
	assert.ErrorIs(t, err, models.ErrValidation)
}
