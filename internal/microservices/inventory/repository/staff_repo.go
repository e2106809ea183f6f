package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"pos-system/internal/domain"
)

// StaffRepositoryInterface manages empleados; listing goes through the
// catalog repository, which the terminal already reads.
type StaffRepositoryInterface interface {
	CreateEmployee(ctx context.Context, in domain.EmployeeInput) (domain.EmployeeRecord, error)
	UpdateEmployee(ctx context.Context, id int, in domain.EmployeeInput) (domain.EmployeeRecord, error)
	DeleteEmployee(ctx context.Context, id int) error
}

type StaffRepository struct {
	db *sql.DB
}

func NewStaffRepository(db *sql.DB) StaffRepositoryInterface {
	return &StaffRepository{db: db}
}

func (r *StaffRepository) CreateEmployee(ctx context.Context, in domain.EmployeeInput) (domain.EmployeeRecord, error) {
	var e domain.EmployeeRecord
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO empleados (nombre, apellido, rol, usuario) VALUES ($1, $2, $3, $4)
		RETURNING empleado_id, nombre, apellido, rol, COALESCE(usuario, '')
	`, in.Nombre, in.Apellido, in.Rol, in.Usuario).Scan(&e.EmpleadoID, &e.Nombre, &e.Apellido, &e.Rol, &e.Usuario)
	if pgCode(err) == pgUniqueViolation {
		return domain.EmployeeRecord{}, &ConflictError{Entity: "empleado", Reason: fmt.Sprintf("usuario %q already taken", in.Usuario)}
	}
	if err != nil {
		return domain.EmployeeRecord{}, fmt.Errorf("failed to insert empleado: %w", err)
	}
	return e, nil
}

func (r *StaffRepository) UpdateEmployee(ctx context.Context, id int, in domain.EmployeeInput) (domain.EmployeeRecord, error) {
	var e domain.EmployeeRecord
	err := r.db.QueryRowContext(ctx, `
		UPDATE empleados SET nombre = $2, apellido = $3, rol = $4, usuario = $5
		WHERE empleado_id = $1
		RETURNING empleado_id, nombre, apellido, rol, COALESCE(usuario, '')
	`, id, in.Nombre, in.Apellido, in.Rol, in.Usuario).Scan(&e.EmpleadoID, &e.Nombre, &e.Apellido, &e.Rol, &e.Usuario)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return domain.EmployeeRecord{}, &NotFoundError{Entity: "empleado", ID: id}
	case pgCode(err) == pgUniqueViolation:
		return domain.EmployeeRecord{}, &ConflictError{Entity: "empleado", ID: id, Reason: fmt.Sprintf("usuario %q already taken", in.Usuario)}
	case err != nil:
		return domain.EmployeeRecord{}, fmt.Errorf("failed to update empleado %d: %w", id, err)
	}
	return e, nil
}

// DeleteEmployee refuses sellers with recorded sales.
func (r *StaffRepository) DeleteEmployee(ctx context.Context, id int) error {
	return deleteRow(ctx, r.db, "empleado", id, `DELETE FROM empleados WHERE empleado_id = $1`)
}
