package service

import (
	"context"
	"strconv"
	"time"

	"pos-system/internal/common/logger"
	"pos-system/internal/domain"
	"pos-system/internal/microservices/billing/models"
	"pos-system/internal/microservices/billing/repository"
	"pos-system/internal/receipt"
	"pos-system/internal/session"
)

type BackofficeServiceInterface interface {
	ListSales(ctx context.Context) ([]domain.SaleRecord, error)
	Receipt(ctx context.Context, saleID int) (string, error)
	RestockIngredient(ctx context.Context, id int, delta float64) (models.Ingredient, error)
	RestockBeverage(ctx context.Context, id int, delta int) (models.Beverage, error)
	BestSelling(ctx context.Context, role session.Role, kind, period string) (Report[[]domain.BestSellingRow], error)
	TotalSales(ctx context.Context, role session.Role, period string) (Report[domain.TotalSales], error)
}

// Report carries the period actually queried, which differs from the
// requested one when the role is limited to today's figures.
type Report[T any] struct {
	Period string
	Rows   T
}

type BackofficeService struct {
	catalogRepo repository.CatalogRepositoryInterface
	salesRepo   repository.SalesRepositoryInterface
	stockRepo   repository.StockRepositoryInterface
	reportsRepo repository.ReportsRepositoryInterface
	header      receipt.Header
	loc         *time.Location
	lg          *logger.Logger
}

func NewBackofficeService(repo *repository.Repository, loc *time.Location, lg *logger.Logger) *BackofficeService {
	if loc == nil {
		loc = time.Local
	}
	return &BackofficeService{
		catalogRepo: repo.CatalogRepo,
		salesRepo:   repo.SalesRepo,
		stockRepo:   repo.StockRepo,
		reportsRepo: repo.ReportsRepo,
		header:      receipt.DefaultHeader,
		loc:         loc,
		lg:          lg,
	}
}

func (s *BackofficeService) ListSales(ctx context.Context) ([]domain.SaleRecord, error) {
	return s.salesRepo.ListSales(ctx)
}

func (s *BackofficeService) Receipt(ctx context.Context, saleID int) (string, error) {
	sale, err := s.salesRepo.GetSale(ctx, saleID)
	if err != nil {
		return "", err
	}
	return receipt.Render(s.header, sale, s.loc), nil
}

// RestockIngredient adds delta purchased units to the stored stock. The
// current level is read fresh from the backend.
func (s *BackofficeService) RestockIngredient(ctx context.Context, id int, delta float64) (models.Ingredient, error) {
	if delta <= 0 {
		return models.Ingredient{}, models.Invalid("cantidad", models.ErrInvalidAmount, strconv.FormatFloat(delta, 'f', -1, 64))
	}
	list, err := s.catalogRepo.ListIngredients(ctx)
	if err != nil {
		return models.Ingredient{}, err
	}
	c := models.Catalog{Ingredients: list}
	ing, err := c.Ingredient(id)
	if err != nil {
		return models.Ingredient{}, err
	}
	ing.StockCurrent += delta
	if err := s.stockRepo.UpdateIngredientStock(ctx, id, ing.StockCurrent); err != nil {
		return models.Ingredient{}, err
	}
	s.lg.Info("ingredient_restocked", map[string]any{"ingredient_id": id, "delta": delta, "stock": ing.StockCurrent})
	return ing, nil
}

func (s *BackofficeService) RestockBeverage(ctx context.Context, id int, delta int) (models.Beverage, error) {
	if delta <= 0 {
		return models.Beverage{}, models.Invalid("cantidad", models.ErrInvalidAmount, strconv.Itoa(delta))
	}
	list, err := s.catalogRepo.ListBeverages(ctx)
	if err != nil {
		return models.Beverage{}, err
	}
	c := models.Catalog{Beverages: list}
	bev, err := c.Beverage(id)
	if err != nil {
		return models.Beverage{}, err
	}
	bev.Stock += delta
	if err := s.stockRepo.UpdateBeverageStock(ctx, id, bev.Stock); err != nil {
		return models.Beverage{}, err
	}
	s.lg.Info("beverage_restocked", map[string]any{"bebida_id": id, "delta": delta, "stock": bev.Stock})
	return bev, nil
}

func (s *BackofficeService) BestSelling(ctx context.Context, role session.Role, kind, period string) (Report[[]domain.BestSellingRow], error) {
	if kind == "" {
		kind = domain.TipoProducto
	}
	if !models.Kind(kind).Valid() {
		return Report[[]domain.BestSellingRow]{}, models.Invalid("type", models.ErrKindMismatch, kind)
	}
	period, err := effectivePeriod(role, period)
	if err != nil {
		return Report[[]domain.BestSellingRow]{}, err
	}
	rows, err := s.reportsRepo.BestSelling(ctx, kind, period)
	if err != nil {
		return Report[[]domain.BestSellingRow]{}, err
	}
	return Report[[]domain.BestSellingRow]{Period: period, Rows: rows}, nil
}

func (s *BackofficeService) TotalSales(ctx context.Context, role session.Role, period string) (Report[domain.TotalSales], error) {
	period, err := effectivePeriod(role, period)
	if err != nil {
		return Report[domain.TotalSales]{}, err
	}
	totals, err := s.reportsRepo.TotalSales(ctx, period)
	if err != nil {
		return Report[domain.TotalSales]{}, err
	}
	return Report[domain.TotalSales]{Period: period, Rows: totals}, nil
}

// effectivePeriod defaults to today and pins roles without the any-period
// permission to today.
func effectivePeriod(role session.Role, period string) (string, error) {
	if period == "" {
		period = domain.PeriodDay
	}
	if !domain.ValidPeriod(period) {
		return "", models.Invalid("period", models.ErrValidation, "unknown period "+strconv.Quote(period))
	}
	if !session.Can(role, session.PermReportsAnyPeriod) {
		return domain.PeriodDay, nil
	}
	return period, nil
}
