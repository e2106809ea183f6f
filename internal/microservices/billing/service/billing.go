package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"pos-system/internal/common/logger"
	"pos-system/internal/domain"
	"pos-system/internal/microservices/billing/cart"
	"pos-system/internal/microservices/billing/models"
	"pos-system/internal/microservices/billing/order"
	"pos-system/internal/microservices/billing/repository"
	"pos-system/internal/microservices/billing/selection"
)

type BillingServiceInterface interface {
	Refresh(ctx context.Context) (models.Catalog, error)
	Catalog() models.Catalog

	Cart() CartView
	AddProduct(productID int, sel []models.IngredientSelection) (models.LineItem, error)
	AddBeverage(beverageID int) (models.LineItem, error)
	RemoveItem(index int) (models.LineItem, error)
	SetForm(f models.Form) (models.Form, error)

	BeginSelection(productID int, policy selection.Policy) (SelectionView, error)
	UpdateSelection(ingredientID int, u SelectionUpdate) (SelectionView, error)
	ConfirmSelection() (models.LineItem, error)
	CancelSelection() error

	Checkout(ctx context.Context) (models.SaleReceipt, error)
}

// CartView is a copy of the billing screen state.
type CartView struct {
	Items []models.LineItem
	Total float64
	Form  models.Form
}

type SelectionView struct {
	ProductID   int
	ProductName string
	Policy      selection.Policy
	Entries     []selection.Entry
}

// SelectionUpdate edits one entry; nil fields are left as they are.
type SelectionUpdate struct {
	Checked *bool
	Amount  *float64
}

func defaultForm() models.Form {
	return models.Form{PaymentMethod: domain.DefaultPaymentMethod}
}

// BillingService owns one terminal's cart. Every method holds mu, so cart
// mutations, form edits and the sale submission never interleave.
type BillingService struct {
	catalogRepo repository.CatalogRepositoryInterface
	salesRepo   repository.SalesRepositoryInterface
	lg          *logger.Logger
	now         func() time.Time

	mu      sync.Mutex
	catalog models.Catalog
	cart    *cart.Cart
	form    models.Form
	pending *selection.Set
}

func NewBillingService(catalogRepo repository.CatalogRepositoryInterface, salesRepo repository.SalesRepositoryInterface, lg *logger.Logger) *BillingService {
	return &BillingService{
		catalogRepo: catalogRepo,
		salesRepo:   salesRepo,
		lg:          lg,
		now:         time.Now,
		cart:        cart.New(),
		form:        defaultForm(),
	}
}

// Refresh fetches the four catalogs concurrently. A failed fetch keeps the
// previous snapshot for that catalog; the others are still applied. The
// group does not cancel on the first failure, so every fetch reports.
func (s *BillingService) Refresh(ctx context.Context) (models.Catalog, error) {
	var (
		products    []models.Product
		beverages   []models.Beverage
		ingredients []models.Ingredient
		employees   []models.Employee

		errProducts, errBeverages, errIngredients, errEmployees error
	)

	var g errgroup.Group
	g.Go(func() error {
		products, errProducts = s.catalogRepo.ListProducts(ctx)
		return errProducts
	})
	g.Go(func() error {
		beverages, errBeverages = s.catalogRepo.ListBeverages(ctx)
		return errBeverages
	})
	g.Go(func() error {
		ingredients, errIngredients = s.catalogRepo.ListIngredients(ctx)
		return errIngredients
	})
	g.Go(func() error {
		employees, errEmployees = s.catalogRepo.ListEmployees(ctx)
		return errEmployees
	})
	failed := g.Wait() != nil

	s.mu.Lock()
	defer s.mu.Unlock()
	if errProducts == nil {
		s.catalog.Products = products
	}
	if errBeverages == nil {
		s.catalog.Beverages = beverages
	}
	if errIngredients == nil {
		s.catalog.Ingredients = ingredients
	}
	if errEmployees == nil {
		s.catalog.Employees = employees
	}

	var err error
	if failed {
		err = errors.Join(errProducts, errBeverages, errIngredients, errEmployees)
		s.lg.Error("catalog_refresh_failed", err, nil)
	} else {
		s.lg.Info("catalog_refreshed", map[string]any{
			"products": len(products), "beverages": len(beverages),
			"ingredients": len(ingredients), "employees": len(employees),
		})
	}
	return s.catalog, err
}

func (s *BillingService) Catalog() models.Catalog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog
}

func (s *BillingService) Cart() CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

func (s *BillingService) viewLocked() CartView {
	return CartView{Items: s.cart.Items(), Total: s.cart.Total(), Form: s.form}
}

func (s *BillingService) AddProduct(productID int, sel []models.IngredientSelection) (models.LineItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.catalog.Product(productID)
	if err != nil {
		return models.LineItem{}, err
	}
	sel, err = s.resolveLocked(sel)
	if err != nil {
		s.lg.Warn("cart_add_rejected", err, map[string]any{"item": p.Ref().String()})
		return models.LineItem{}, err
	}
	return s.addLocked(p, models.KindProduct, sel)
}

// resolveLocked checks every selection against the loaded ingredients and
// takes the name from the catalog. It returns a copy.
func (s *BillingService) resolveLocked(sel []models.IngredientSelection) ([]models.IngredientSelection, error) {
	if len(sel) == 0 {
		return nil, nil
	}
	out := make([]models.IngredientSelection, len(sel))
	for i, is := range sel {
		ing, err := s.catalog.Ingredient(is.IngredientID)
		if err != nil {
			return nil, err
		}
		is.Name = ing.Name
		out[i] = is
	}
	return out, nil
}

func (s *BillingService) AddBeverage(beverageID int) (models.LineItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.catalog.Beverage(beverageID)
	if err != nil {
		return models.LineItem{}, err
	}
	return s.addLocked(b, models.KindBeverage, nil)
}

func (s *BillingService) addLocked(item models.CatalogItem, kind models.Kind, sel []models.IngredientSelection) (models.LineItem, error) {
	line, err := s.cart.Add(item, kind, sel)
	if err != nil {
		s.lg.Warn("cart_add_rejected", err, map[string]any{"item": item.Ref().String()})
		return models.LineItem{}, err
	}
	s.lg.Debug("cart_item_added", map[string]any{
		"item": line.Ref.String(), "price": line.UnitPrice, "total": s.cart.Total(),
	})
	return line, nil
}

func (s *BillingService) RemoveItem(index int) (models.LineItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	line, err := s.cart.Remove(index)
	if err != nil {
		s.lg.Warn("cart_remove_out_of_range", err, map[string]any{"index": index, "len": s.cart.Len()})
		return models.LineItem{}, err
	}
	s.lg.Debug("cart_item_removed", map[string]any{"item": line.Ref.String(), "total": s.cart.Total()})
	return line, nil
}

// SetForm replaces the checkout fields. An empty payment method falls back
// to the default; a seller must name a loaded employee when employees are
// known.
func (s *BillingService) SetForm(f models.Form) (models.Form, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if f.PaymentMethod == "" {
		f.PaymentMethod = domain.DefaultPaymentMethod
	}
	if !domain.ValidPaymentMethod(f.PaymentMethod) {
		return s.form, models.Invalid("metodo_pago", models.ErrPaymentMethod, f.PaymentMethod)
	}
	f.SellerID = strings.TrimSpace(f.SellerID)
	if f.SellerID != "" {
		id, err := strconv.Atoi(f.SellerID)
		if err != nil || id <= 0 {
			return s.form, models.Invalid("vendedor_id", models.ErrValidation, "not an employee id: "+f.SellerID)
		}
		if len(s.catalog.Employees) > 0 {
			if _, err := s.catalog.Employee(id); err != nil {
				return s.form, err
			}
		}
	}
	s.form = f
	return s.form, nil
}

func (s *BillingService) BeginSelection(productID int, policy selection.Policy) (SelectionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.catalog.Product(productID)
	if err != nil {
		return SelectionView{}, err
	}
	set, err := selection.New(policy, p, s.catalog.Ingredients)
	if err != nil {
		return SelectionView{}, err
	}
	s.pending = set
	return selectionView(set), nil
}

func (s *BillingService) UpdateSelection(ingredientID int, u SelectionUpdate) (SelectionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending == nil {
		return SelectionView{}, models.Invalid("", models.ErrNoSelection, "")
	}
	if u.Amount != nil {
		if err := s.pending.SetAmount(ingredientID, *u.Amount); err != nil {
			return SelectionView{}, err
		}
	}
	if u.Checked != nil {
		var err error
		if *u.Checked {
			err = s.pending.Check(ingredientID)
		} else {
			err = s.pending.Uncheck(ingredientID)
		}
		if err != nil {
			return SelectionView{}, err
		}
	}
	return selectionView(s.pending), nil
}

// ConfirmSelection adds the pending product with its confirmed ingredients
// and closes the dialog. The product is re-read from the current snapshot.
func (s *BillingService) ConfirmSelection() (models.LineItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending == nil {
		return models.LineItem{}, models.Invalid("", models.ErrNoSelection, "")
	}
	p, err := s.catalog.Product(s.pending.Product().ID)
	if err != nil {
		return models.LineItem{}, err
	}
	line, err := s.addLocked(p, models.KindProduct, s.pending.Confirm())
	if err != nil {
		return models.LineItem{}, err
	}
	s.pending = nil
	return line, nil
}

func (s *BillingService) CancelSelection() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending == nil {
		return models.Invalid("", models.ErrNoSelection, "")
	}
	s.pending = nil
	return nil
}

// Checkout submits the cart as one sale. The cart and form are reset only
// after the backend accepted it. The backend call ignores cancellation of
// ctx so an abandoned request can't leave a half-known sale behind.
//
// mu is held for the whole backend call, bounded only by api.timeout.
// Until it returns, cart reads, edits and Refresh on this terminal block.
func (s *BillingService) Checkout(ctx context.Context) (models.SaleReceipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, err := order.Build(s.cart, s.form, s.now())
	if err != nil {
		return models.SaleReceipt{}, err
	}

	rec, err := s.salesRepo.CreateSale(context.WithoutCancel(ctx), order.Wire(req))
	if err != nil {
		s.lg.Error("sale_failed", err, map[string]any{"items": len(req.Details), "total": req.Total})
		return models.SaleReceipt{}, err
	}

	s.cart.Clear()
	s.form = defaultForm()
	s.lg.Info("sale_recorded", map[string]any{
		"sale_id": rec.SaleID, "items": len(req.Details), "total": req.Total,
		"payment_method": req.PaymentMethod,
	})
	return rec, nil
}

func selectionView(set *selection.Set) SelectionView {
	p := set.Product()
	return SelectionView{ProductID: p.ID, ProductName: p.Name, Policy: set.Policy(), Entries: set.Entries()}
}
