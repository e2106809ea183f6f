package handlers

import (
	"context"
	"net/http"

	"pos-system/internal/common/logger"
	"pos-system/internal/domain"
	"pos-system/internal/microservices/billing/service"
	"pos-system/internal/session"
)

// AdminHandler serves the dashboard, inventory and user screens.
type AdminHandler struct {
	service service.AdminServiceInterface
	lg      *logger.Logger
}

func NewAdminHandler(s service.AdminServiceInterface, lg *logger.Logger) *AdminHandler {
	return &AdminHandler{service: s, lg: lg}
}

func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	s, _ := session.FromContext(r.Context())
	d, err := h.service.Dashboard(r.Context(), s)
	if err != nil {
		writeError(w, requestLogger(r, h.lg), "dashboard", err)
		return
	}
	writeJSON(w, http.StatusOK, toDashboardResponse(d))
}

func (h *AdminHandler) Inventory(w http.ResponseWriter, r *http.Request) {
	c, err := h.service.Inventory(r.Context())
	if err != nil {
		writeError(w, requestLogger(r, h.lg), "inventory", err)
		return
	}
	out := toCatalogResponse(c)
	writeJSON(w, http.StatusOK, inventoryResponse{Productos: out.Productos, Bebidas: out.Bebidas, Ingredientes: out.Ingredientes})
}

func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var in domain.ProductInput
	if !decode(w, r, &in) {
		return
	}
	v, err := h.service.CreateProduct(r.Context(), in)
	h.reply(w, r, "create_product", http.StatusCreated, v, err)
}

func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(w, r, "id")
	if !ok {
		return
	}
	var in domain.ProductInput
	if !decode(w, r, &in) {
		return
	}
	v, err := h.service.UpdateProduct(r.Context(), id, in)
	h.reply(w, r, "update_product", http.StatusOK, v, err)
}

func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	h.remove(w, r, "delete_product", h.service.DeleteProduct)
}

func (h *AdminHandler) CreateBeverage(w http.ResponseWriter, r *http.Request) {
	var in domain.BeverageInput
	if !decode(w, r, &in) {
		return
	}
	v, err := h.service.CreateBeverage(r.Context(), in)
	h.reply(w, r, "create_beverage", http.StatusCreated, v, err)
}

func (h *AdminHandler) UpdateBeverage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(w, r, "id")
	if !ok {
		return
	}
	var upd domain.ItemUpdate
	if !decode(w, r, &upd) {
		return
	}
	v, err := h.service.UpdateBeverage(r.Context(), id, upd)
	h.reply(w, r, "update_beverage", http.StatusOK, v, err)
}

func (h *AdminHandler) DeleteBeverage(w http.ResponseWriter, r *http.Request) {
	h.remove(w, r, "delete_beverage", h.service.DeleteBeverage)
}

func (h *AdminHandler) CreateIngredients(w http.ResponseWriter, r *http.Request) {
	var batch domain.IngredientBatch
	if !decode(w, r, &batch) {
		return
	}
	v, err := h.service.CreateIngredients(r.Context(), batch)
	h.reply(w, r, "create_ingredients", http.StatusCreated, v, err)
}

func (h *AdminHandler) UpdateIngredient(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(w, r, "id")
	if !ok {
		return
	}
	var upd domain.ItemUpdate
	if !decode(w, r, &upd) {
		return
	}
	v, err := h.service.UpdateIngredient(r.Context(), id, upd)
	h.reply(w, r, "update_ingredient", http.StatusOK, v, err)
}

func (h *AdminHandler) DeleteIngredient(w http.ResponseWriter, r *http.Request) {
	h.remove(w, r, "delete_ingredient", h.service.DeleteIngredient)
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	v, err := h.service.ListEmployees(r.Context())
	h.reply(w, r, "list_users", http.StatusOK, v, err)
}

func (h *AdminHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var in domain.EmployeeInput
	if !decode(w, r, &in) {
		return
	}
	v, err := h.service.CreateEmployee(r.Context(), in)
	h.reply(w, r, "create_user", http.StatusCreated, v, err)
}

func (h *AdminHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(w, r, "id")
	if !ok {
		return
	}
	var in domain.EmployeeInput
	if !decode(w, r, &in) {
		return
	}
	v, err := h.service.UpdateEmployee(r.Context(), id, in)
	h.reply(w, r, "update_user", http.StatusOK, v, err)
}

func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	h.remove(w, r, "delete_user", h.service.DeleteEmployee)
}

func (h *AdminHandler) reply(w http.ResponseWriter, r *http.Request, action string, code int, v any, err error) {
	if err != nil {
		writeError(w, requestLogger(r, h.lg), action, err)
		return
	}
	writeJSON(w, code, v)
}

func (h *AdminHandler) remove(w http.ResponseWriter, r *http.Request, action string, del func(ctx context.Context, id int) error) {
	id, ok := pathInt(w, r, "id")
	if !ok {
		return
	}
	if err := del(r.Context(), id); err != nil {
		writeError(w, requestLogger(r, h.lg), action, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
