package service

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"pos-system/internal/common/logger"
	"pos-system/internal/domain"
	"pos-system/internal/microservices/billing/models"
	"pos-system/internal/microservices/billing/repository"
	"pos-system/internal/session"
)

type AdminServiceInterface interface {
	Dashboard(ctx context.Context, s session.Session) (Dashboard, error)
	Inventory(ctx context.Context) (models.Catalog, error)

	CreateProduct(ctx context.Context, in domain.ProductInput) (domain.ProductRecord, error)
	UpdateProduct(ctx context.Context, id int, in domain.ProductInput) (domain.ProductRecord, error)
	DeleteProduct(ctx context.Context, id int) error
	CreateBeverage(ctx context.Context, in domain.BeverageInput) (domain.BeverageRecord, error)
	UpdateBeverage(ctx context.Context, id int, upd domain.ItemUpdate) (domain.BeverageRecord, error)
	DeleteBeverage(ctx context.Context, id int) error
	CreateIngredients(ctx context.Context, batch domain.IngredientBatch) ([]domain.IngredientRecord, error)
	UpdateIngredient(ctx context.Context, id int, upd domain.ItemUpdate) (domain.IngredientRecord, error)
	DeleteIngredient(ctx context.Context, id int) error

	ListEmployees(ctx context.Context) ([]domain.EmployeeRecord, error)
	CreateEmployee(ctx context.Context, in domain.EmployeeInput) (domain.EmployeeRecord, error)
	UpdateEmployee(ctx context.Context, id int, in domain.EmployeeInput) (domain.EmployeeRecord, error)
	DeleteEmployee(ctx context.Context, id int) error
}

// Refresher reloads the billing snapshot after a catalog write.
type Refresher interface {
	Refresh(ctx context.Context) (models.Catalog, error)
}

// Dashboard is the landing screen. Figures the role may not see stay nil.
type Dashboard struct {
	User        string
	Role        session.Role
	Permissions []session.Permission
	TodayTotals domain.TotalSales
	LowStock    []models.Ingredient
}

type AdminService struct {
	catalogRepo repository.CatalogRepositoryInterface
	adminRepo   repository.InventoryAdminRepositoryInterface
	staffRepo   repository.StaffRepositoryInterface
	reportsRepo repository.ReportsRepositoryInterface
	refresher   Refresher
	lg          *logger.Logger
}

func NewAdminService(repo *repository.Repository, refresher Refresher, lg *logger.Logger) *AdminService {
	return &AdminService{
		catalogRepo: repo.CatalogRepo,
		adminRepo:   repo.AdminRepo,
		staffRepo:   repo.StaffRepo,
		reportsRepo: repo.ReportsRepo,
		refresher:   refresher,
		lg:          lg,
	}
}

func (s *AdminService) Dashboard(ctx context.Context, sess session.Session) (Dashboard, error) {
	d := Dashboard{User: sess.User, Role: sess.Role, Permissions: session.Permissions(sess.Role)}

	g, gctx := errgroup.WithContext(ctx)
	if sess.Can(session.PermReports) {
		g.Go(func() (err error) {
			d.TodayTotals, err = s.reportsRepo.TotalSales(gctx, domain.PeriodDay)
			return err
		})
	}
	if sess.Can(session.PermViewInventory) {
		g.Go(func() error {
			list, err := s.catalogRepo.ListIngredients(gctx)
			if err != nil {
				return err
			}
			d.LowStock = []models.Ingredient{}
			for _, ing := range list {
				if ing.Low() {
					d.LowStock = append(d.LowStock, ing)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Dashboard{}, err
	}
	return d, nil
}

// Inventory reads the backend catalog live, bypassing the billing snapshot.
func (s *AdminService) Inventory(ctx context.Context) (models.Catalog, error) {
	var c models.Catalog
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		c.Products, err = s.catalogRepo.ListProducts(gctx)
		return err
	})
	g.Go(func() (err error) {
		c.Beverages, err = s.catalogRepo.ListBeverages(gctx)
		return err
	})
	g.Go(func() (err error) {
		c.Ingredients, err = s.catalogRepo.ListIngredients(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return models.Catalog{}, err
	}
	return c, nil
}

func (s *AdminService) CreateProduct(ctx context.Context, in domain.ProductInput) (domain.ProductRecord, error) {
	if err := invalidInput(in.Validate()); err != nil {
		return domain.ProductRecord{}, err
	}
	p, err := s.adminRepo.CreateProduct(ctx, in)
	return p, s.written(ctx, "product_created", "producto", p.ProductoID, err)
}

func (s *AdminService) UpdateProduct(ctx context.Context, id int, in domain.ProductInput) (domain.ProductRecord, error) {
	if err := invalidInput(in.Validate()); err != nil {
		return domain.ProductRecord{}, err
	}
	p, err := s.adminRepo.UpdateProduct(ctx, id, in)
	return p, s.written(ctx, "product_updated", "producto", id, err)
}

func (s *AdminService) DeleteProduct(ctx context.Context, id int) error {
	return s.written(ctx, "product_deleted", "producto", id, s.adminRepo.DeleteProduct(ctx, id))
}

func (s *AdminService) CreateBeverage(ctx context.Context, in domain.BeverageInput) (domain.BeverageRecord, error) {
	if err := invalidInput(in.Validate()); err != nil {
		return domain.BeverageRecord{}, err
	}
	b, err := s.adminRepo.CreateBeverage(ctx, in)
	return b, s.written(ctx, "beverage_created", "bebida", b.BebidaID, err)
}

func (s *AdminService) UpdateBeverage(ctx context.Context, id int, upd domain.ItemUpdate) (domain.BeverageRecord, error) {
	if err := invalidInput(upd.ValidateBeverage()); err != nil {
		return domain.BeverageRecord{}, err
	}
	b, err := s.adminRepo.UpdateBeverage(ctx, id, upd)
	return b, s.written(ctx, "beverage_updated", "bebida", id, err)
}

func (s *AdminService) DeleteBeverage(ctx context.Context, id int) error {
	return s.written(ctx, "beverage_deleted", "bebida", id, s.adminRepo.DeleteBeverage(ctx, id))
}

func (s *AdminService) CreateIngredients(ctx context.Context, batch domain.IngredientBatch) ([]domain.IngredientRecord, error) {
	if err := invalidInput(batch.Validate()); err != nil {
		return nil, err
	}
	out, err := s.adminRepo.CreateIngredients(ctx, batch)
	return out, s.written(ctx, "ingredients_created", "ingrediente", 0, err)
}

func (s *AdminService) UpdateIngredient(ctx context.Context, id int, upd domain.ItemUpdate) (domain.IngredientRecord, error) {
	if err := invalidInput(upd.ValidateIngredient()); err != nil {
		return domain.IngredientRecord{}, err
	}
	i, err := s.adminRepo.UpdateIngredient(ctx, id, upd)
	return i, s.written(ctx, "ingredient_updated", "ingrediente", id, err)
}

func (s *AdminService) DeleteIngredient(ctx context.Context, id int) error {
	return s.written(ctx, "ingredient_deleted", "ingrediente", id, s.adminRepo.DeleteIngredient(ctx, id))
}

func (s *AdminService) ListEmployees(ctx context.Context) ([]domain.EmployeeRecord, error) {
	list, err := s.staffRepo.ListStaff(ctx)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []domain.EmployeeRecord{}
	}
	return list, nil
}

func (s *AdminService) CreateEmployee(ctx context.Context, in domain.EmployeeInput) (domain.EmployeeRecord, error) {
	if err := invalidInput(in.Validate()); err != nil {
		return domain.EmployeeRecord{}, err
	}
	e, err := s.staffRepo.CreateEmployee(ctx, in)
	return e, s.written(ctx, "employee_created", "empleado", e.EmpleadoID, err)
}

func (s *AdminService) UpdateEmployee(ctx context.Context, id int, in domain.EmployeeInput) (domain.EmployeeRecord, error) {
	if err := invalidInput(in.Validate()); err != nil {
		return domain.EmployeeRecord{}, err
	}
	e, err := s.staffRepo.UpdateEmployee(ctx, id, in)
	return e, s.written(ctx, "employee_updated", "empleado", id, err)
}

func (s *AdminService) DeleteEmployee(ctx context.Context, id int) error {
	return s.written(ctx, "employee_deleted", "empleado", id, s.staffRepo.DeleteEmployee(ctx, id))
}

// written logs a backend write and reloads the billing snapshot. A failed
// reload is only logged; the write already happened.
func (s *AdminService) written(ctx context.Context, action, entity string, id int, err error) error {
	if err != nil {
		s.lg.Warn(action+"_rejected", err, map[string]any{"entity": entity, "id": id})
		return err
	}
	s.lg.Info(action, map[string]any{"entity": entity, "id": id})
	if s.refresher == nil {
		return nil
	}
	if _, rerr := s.refresher.Refresh(ctx); rerr != nil {
		s.lg.Warn("catalog_reload_failed", rerr, map[string]any{"after": action})
	}
	return nil
}

// invalidInput maps a domain field error onto the terminal's validation
// error.
func invalidInput(err error) error {
	if err == nil {
		return nil
	}
	var fe *domain.FieldError
	if errors.As(err, &fe) {
		return models.Invalid(fe.Field, models.ErrValidation, fe.Msg)
	}
	return models.Invalid("", models.ErrValidation, err.Error())
}
