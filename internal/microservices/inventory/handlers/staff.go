package handlers

import (
	"net/http"

	"pos-system/internal/common/logger"
	"pos-system/internal/domain"
	"pos-system/internal/microservices/inventory/service"
)

type StaffHandler struct {
	service service.StaffServiceInterface
	lg      *logger.Logger
}

func NewStaffHandler(s service.StaffServiceInterface, lg *logger.Logger) *StaffHandler {
	return &StaffHandler{service: s, lg: lg}
}

func (h *StaffHandler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	v, err := h.service.ListEmployees(r.Context())
	respond(w, h.lg, "list_empleados", http.StatusOK, v, err)
}

func (h *StaffHandler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var in domain.EmployeeInput
	if !decode(w, r, &in) {
		return
	}
	v, err := h.service.CreateEmployee(r.Context(), in)
	respond(w, h.lg, "create_empleado", http.StatusCreated, v, err)
}

func (h *StaffHandler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in domain.EmployeeInput
	if !decode(w, r, &in) {
		return
	}
	v, err := h.service.UpdateEmployee(r.Context(), id, in)
	respond(w, h.lg, "update_empleado", http.StatusOK, v, err)
}

func (h *StaffHandler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteEmployee(r.Context(), id); err != nil {
		fail(w, h.lg, "delete_empleado", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
