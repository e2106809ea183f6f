package handlers

import (
	"context"
	"net/http"

	"pos-system/internal/common/logger"
	"pos-system/internal/domain"
	"pos-system/internal/microservices/inventory/service"
)

type CatalogHandler struct {
	service service.CatalogServiceInterface
	lg      *logger.Logger
}

func NewCatalogHandler(s service.CatalogServiceInterface, lg *logger.Logger) *CatalogHandler {
	return &CatalogHandler{service: s, lg: lg}
}

func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var in domain.ProductInput
	if !decode(w, r, &in) {
		return
	}
	v, err := h.service.CreateProduct(r.Context(), in)
	respond(w, h.lg, "create_producto", http.StatusCreated, v, err)
}

func (h *CatalogHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in domain.ProductInput
	if !decode(w, r, &in) {
		return
	}
	v, err := h.service.UpdateProduct(r.Context(), id, in)
	respond(w, h.lg, "update_producto", http.StatusOK, v, err)
}

func (h *CatalogHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	h.delete(w, r, "delete_producto", h.service.DeleteProduct)
}

func (h *CatalogHandler) CreateBeverage(w http.ResponseWriter, r *http.Request) {
	var in domain.BeverageInput
	if !decode(w, r, &in) {
		return
	}
	v, err := h.service.CreateBeverage(r.Context(), in)
	respond(w, h.lg, "create_bebida", http.StatusCreated, v, err)
}

func (h *CatalogHandler) UpdateBeverage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var upd domain.ItemUpdate
	if !decode(w, r, &upd) {
		return
	}
	v, err := h.service.UpdateBeverage(r.Context(), id, upd)
	respond(w, h.lg, "update_bebida", http.StatusOK, v, err)
}

func (h *CatalogHandler) DeleteBeverage(w http.ResponseWriter, r *http.Request) {
	h.delete(w, r, "delete_bebida", h.service.DeleteBeverage)
}

func (h *CatalogHandler) CreateIngredients(w http.ResponseWriter, r *http.Request) {
	var batch domain.IngredientBatch
	if !decode(w, r, &batch) {
		return
	}
	v, err := h.service.CreateIngredients(r.Context(), batch)
	respond(w, h.lg, "create_ingredientes", http.StatusCreated, v, err)
}

func (h *CatalogHandler) UpdateIngredient(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var upd domain.ItemUpdate
	if !decode(w, r, &upd) {
		return
	}
	v, err := h.service.UpdateIngredient(r.Context(), id, upd)
	respond(w, h.lg, "update_ingrediente", http.StatusOK, v, err)
}

func (h *CatalogHandler) DeleteIngredient(w http.ResponseWriter, r *http.Request) {
	h.delete(w, r, "delete_ingrediente", h.service.DeleteIngredient)
}

func (h *CatalogHandler) delete(w http.ResponseWriter, r *http.Request, action string, del func(ctx context.Context, id int) error) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := del(r.Context(), id); err != nil {
		fail(w, h.lg, action, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
