package service

import (
	"context"
	"strings"

	"pos-system/internal/common/logger"
	"pos-system/internal/domain"
	"pos-system/internal/microservices/inventory/repository"
)

type StaffServiceInterface interface {
	ListEmployees(ctx context.Context) ([]domain.EmployeeRecord, error)
	CreateEmployee(ctx context.Context, in domain.EmployeeInput) (domain.EmployeeRecord, error)
	UpdateEmployee(ctx context.Context, id int, in domain.EmployeeInput) (domain.EmployeeRecord, error)
	DeleteEmployee(ctx context.Context, id int) error
}

type StaffService struct {
	catalog repository.CatalogRepositoryInterface
	staff   repository.StaffRepositoryInterface
	lg      *logger.Logger
}

func NewStaffService(repo *repository.Repository, lg *logger.Logger) *StaffService {
	return &StaffService{catalog: repo.CatalogRepo, staff: repo.StaffRepo, lg: lg}
}

func (s *StaffService) ListEmployees(ctx context.Context) ([]domain.EmployeeRecord, error) {
	return nonNil(s.catalog.ListEmployees(ctx))
}

func (s *StaffService) CreateEmployee(ctx context.Context, in domain.EmployeeInput) (domain.EmployeeRecord, error) {
	in, err := normalizeEmployee(in)
	if err != nil {
		return domain.EmployeeRecord{}, err
	}
	e, err := s.staff.CreateEmployee(ctx, in)
	if err != nil {
		return domain.EmployeeRecord{}, err
	}
	s.lg.Info("employee_created", map[string]any{"empleado_id": e.EmpleadoID, "rol": e.Rol, "usuario": e.Usuario})
	return e, nil
}

func (s *StaffService) UpdateEmployee(ctx context.Context, id int, in domain.EmployeeInput) (domain.EmployeeRecord, error) {
	in, err := normalizeEmployee(in)
	if err != nil {
		return domain.EmployeeRecord{}, err
	}
	e, err := s.staff.UpdateEmployee(ctx, id, in)
	if err != nil {
		return domain.EmployeeRecord{}, err
	}
	s.lg.Info("employee_updated", map[string]any{"empleado_id": id, "rol": e.Rol})
	return e, nil
}

func (s *StaffService) DeleteEmployee(ctx context.Context, id int) error {
	if err := s.staff.DeleteEmployee(ctx, id); err != nil {
		return err
	}
	s.lg.Info("employee_deleted", map[string]any{"empleado_id": id})
	return nil
}

func normalizeEmployee(in domain.EmployeeInput) (domain.EmployeeInput, error) {
	if err := in.Validate(); err != nil {
		return in, rejected(err)
	}
	in.Nombre = strings.TrimSpace(in.Nombre)
	in.Apellido = strings.TrimSpace(in.Apellido)
	in.Usuario = in.Username()
	return in, nil
}
