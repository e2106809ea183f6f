package handlers

import (
	"net/http"

	"pos-system/internal/common/logger"
	"pos-system/internal/domain"
	"pos-system/internal/microservices/inventory/service"
)

type InventoryHandler struct {
	service service.InventoryServiceInterface
	lg      *logger.Logger
}

func NewInventoryHandler(s service.InventoryServiceInterface, lg *logger.Logger) *InventoryHandler {
	return &InventoryHandler{service: s, lg: lg}
}

func (h *InventoryHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	v, err := h.service.ListProducts(r.Context())
	h.respond(w, "list_productos", v, err)
}

func (h *InventoryHandler) ListBeverages(w http.ResponseWriter, r *http.Request) {
	v, err := h.service.ListBeverages(r.Context())
	h.respond(w, "list_bebidas", v, err)
}

func (h *InventoryHandler) ListIngredients(w http.ResponseWriter, r *http.Request) {
	v, err := h.service.ListIngredients(r.Context())
	h.respond(w, "list_ingredientes", v, err)
}

func (h *InventoryHandler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	v, err := h.service.ListEmployees(r.Context())
	h.respond(w, "list_empleados", v, err)
}

func (h *InventoryHandler) CreateSale(w http.ResponseWriter, r *http.Request) {
	var req domain.SaleRequest
	if !decode(w, r, &req) {
		return
	}
	rec, err := h.service.CreateSale(r.Context(), req)
	if err != nil {
		h.fail(w, "create_venta", err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (h *InventoryHandler) ListSales(w http.ResponseWriter, r *http.Request) {
	v, err := h.service.ListSales(r.Context())
	h.respond(w, "list_ventas", v, err)
}

func (h *InventoryHandler) GetSale(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	v, err := h.service.GetSale(r.Context(), id)
	h.respond(w, "get_venta", v, err)
}

func (h *InventoryHandler) BestSelling(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	v, err := h.service.BestSelling(r.Context(), q.Get("type"), q.Get("period"))
	h.respond(w, "report_best_selling", v, err)
}

func (h *InventoryHandler) TotalSales(w http.ResponseWriter, r *http.Request) {
	v, err := h.service.TotalSales(r.Context(), r.URL.Query().Get("period"))
	h.respond(w, "report_total_sales", v, err)
}

func (h *InventoryHandler) respond(w http.ResponseWriter, action string, v any, err error) {
	respond(w, h.lg, action, http.StatusOK, v, err)
}

func (h *InventoryHandler) fail(w http.ResponseWriter, action string, err error) {
	fail(w, h.lg, action, err)
}
