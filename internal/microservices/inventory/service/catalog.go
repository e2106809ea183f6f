package service

import (
	"context"
	"strings"

	"pos-system/internal/common/logger"
	"pos-system/internal/domain"
	"pos-system/internal/microservices/inventory/repository"
)

// CatalogServiceInterface edits the menu and the stock lists the terminal
// sells from.
type CatalogServiceInterface interface {
	CreateProduct(ctx context.Context, in domain.ProductInput) (domain.ProductRecord, error)
	UpdateProduct(ctx context.Context, id int, in domain.ProductInput) (domain.ProductRecord, error)
	DeleteProduct(ctx context.Context, id int) error

	CreateBeverage(ctx context.Context, in domain.BeverageInput) (domain.BeverageRecord, error)
	UpdateBeverage(ctx context.Context, id int, upd domain.ItemUpdate) (domain.BeverageRecord, error)
	DeleteBeverage(ctx context.Context, id int) error

	CreateIngredients(ctx context.Context, batch domain.IngredientBatch) ([]domain.IngredientRecord, error)
	UpdateIngredient(ctx context.Context, id int, upd domain.ItemUpdate) (domain.IngredientRecord, error)
	DeleteIngredient(ctx context.Context, id int) error
}

type CatalogService struct {
	catalog repository.CatalogRepositoryInterface
	lg      *logger.Logger
}

func NewCatalogService(repo *repository.Repository, lg *logger.Logger) *CatalogService {
	return &CatalogService{catalog: repo.CatalogRepo, lg: lg}
}

func (s *CatalogService) CreateProduct(ctx context.Context, in domain.ProductInput) (domain.ProductRecord, error) {
	if err := in.Validate(); err != nil {
		return domain.ProductRecord{}, rejected(err)
	}
	in.Name = strings.TrimSpace(in.Name)
	p, err := s.catalog.CreateProduct(ctx, in)
	if err != nil {
		return domain.ProductRecord{}, err
	}
	s.lg.Info("product_created", map[string]any{"producto_id": p.ProductoID, "ingredientes": len(p.Ingredientes)})
	return p, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id int, in domain.ProductInput) (domain.ProductRecord, error) {
	if err := in.Validate(); err != nil {
		return domain.ProductRecord{}, rejected(err)
	}
	in.Name = strings.TrimSpace(in.Name)
	p, err := s.catalog.UpdateProduct(ctx, id, in)
	if err != nil {
		return domain.ProductRecord{}, err
	}
	s.lg.Info("product_updated", map[string]any{"producto_id": id})
	return p, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id int) error {
	if err := s.catalog.DeleteProduct(ctx, id); err != nil {
		return err
	}
	s.lg.Info("product_deleted", map[string]any{"producto_id": id})
	return nil
}

func (s *CatalogService) CreateBeverage(ctx context.Context, in domain.BeverageInput) (domain.BeverageRecord, error) {
	if err := in.Validate(); err != nil {
		return domain.BeverageRecord{}, rejected(err)
	}
	in.Name = strings.TrimSpace(in.Name)
	b, err := s.catalog.CreateBeverage(ctx, in)
	if err != nil {
		return domain.BeverageRecord{}, err
	}
	s.lg.Info("beverage_created", map[string]any{"bebida_id": b.BebidaID})
	return b, nil
}

// UpdateBeverage patches name, price and stock. The purchases screen sends
// only the stock.
func (s *CatalogService) UpdateBeverage(ctx context.Context, id int, upd domain.ItemUpdate) (domain.BeverageRecord, error) {
	if err := upd.ValidateBeverage(); err != nil {
		return domain.BeverageRecord{}, rejected(err)
	}
	b, err := s.catalog.UpdateBeverage(ctx, id, upd)
	if err != nil {
		return domain.BeverageRecord{}, err
	}
	s.lg.Info("beverage_updated", map[string]any{"bebida_id": id, "stock": b.Stock})
	return b, nil
}

func (s *CatalogService) DeleteBeverage(ctx context.Context, id int) error {
	if err := s.catalog.DeleteBeverage(ctx, id); err != nil {
		return err
	}
	s.lg.Info("beverage_deleted", map[string]any{"bebida_id": id})
	return nil
}

func (s *CatalogService) CreateIngredients(ctx context.Context, batch domain.IngredientBatch) ([]domain.IngredientRecord, error) {
	if err := batch.Validate(); err != nil {
		return nil, rejected(err)
	}
	for i := range batch.Ingredientes {
		batch.Ingredientes[i].Name = strings.TrimSpace(batch.Ingredientes[i].Name)
	}
	out, err := s.catalog.CreateIngredients(ctx, batch.Ingredientes)
	if err != nil {
		return nil, err
	}
	s.lg.Info("ingredients_created", map[string]any{"count": len(out)})
	return out, nil
}

// UpdateIngredient patches name, stock_current and stock_minimum.
func (s *CatalogService) UpdateIngredient(ctx context.Context, id int, upd domain.ItemUpdate) (domain.IngredientRecord, error) {
	if err := upd.ValidateIngredient(); err != nil {
		return domain.IngredientRecord{}, rejected(err)
	}
	i, err := s.catalog.UpdateIngredient(ctx, id, upd)
	if err != nil {
		return domain.IngredientRecord{}, err
	}
	s.lg.Info("ingredient_updated", map[string]any{"ingredient_id": id, "stock_current": i.StockCurrent})
	return i, nil
}

func (s *CatalogService) DeleteIngredient(ctx context.Context, id int) error {
	if err := s.catalog.DeleteIngredient(ctx, id); err != nil {
		return err
	}
	s.lg.Info("ingredient_deleted", map[string]any{"ingredient_id": id})
	return nil
}
