package handlers

import (
	"net/http"

	"pos-system/internal/common/logger"
	"pos-system/internal/microservices/billing/selection"
	"pos-system/internal/microservices/billing/service"
)

type BillingHandler struct {
	service service.BillingServiceInterface
	lg      *logger.Logger
}

func NewBillingHandler(s service.BillingServiceInterface, lg *logger.Logger) *BillingHandler {
	return &BillingHandler{service: s, lg: lg}
}

func (h *BillingHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toCatalogResponse(h.service.Catalog()))
}

func (h *BillingHandler) RefreshCatalog(w http.ResponseWriter, r *http.Request) {
	cat, err := h.service.Refresh(r.Context())
	if err != nil {
		writeError(w, requestLogger(r, h.lg), "catalog_refresh", err)
		return
	}
	writeJSON(w, http.StatusOK, toCatalogResponse(cat))
}

func (h *BillingHandler) Cart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toCartResponse(h.service.Cart()))
}

func (h *BillingHandler) AddProduct(w http.ResponseWriter, r *http.Request) {
	var req addProductRequest
	if !decode(w, r, &req) {
		return
	}
	if _, err := h.service.AddProduct(req.ProductoID, toSelections(req.Ingredientes)); err != nil {
		writeError(w, requestLogger(r, h.lg), "cart_add_product", err)
		return
	}
	writeJSON(w, http.StatusCreated, toCartResponse(h.service.Cart()))
}

func (h *BillingHandler) AddBeverage(w http.ResponseWriter, r *http.Request) {
	var req addBeverageRequest
	if !decode(w, r, &req) {
		return
	}
	if _, err := h.service.AddBeverage(req.BebidaID); err != nil {
		writeError(w, requestLogger(r, h.lg), "cart_add_beverage", err)
		return
	}
	writeJSON(w, http.StatusCreated, toCartResponse(h.service.Cart()))
}

func (h *BillingHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	index, ok := pathInt(w, r, "index")
	if !ok {
		return
	}
	if _, err := h.service.RemoveItem(index); err != nil {
		writeError(w, requestLogger(r, h.lg), "cart_remove", err)
		return
	}
	writeJSON(w, http.StatusOK, toCartResponse(h.service.Cart()))
}

func (h *BillingHandler) SetForm(w http.ResponseWriter, r *http.Request) {
	var req formDTO
	if !decode(w, r, &req) {
		return
	}
	f, err := h.service.SetForm(req.model())
	if err != nil {
		writeError(w, requestLogger(r, h.lg), "form_update", err)
		return
	}
	writeJSON(w, http.StatusOK, toFormDTO(f))
}

func (h *BillingHandler) BeginSelection(w http.ResponseWriter, r *http.Request) {
	var req beginSelectionRequest
	if !decode(w, r, &req) {
		return
	}
	policy, err := selection.ParsePolicy(req.Policy)
	if err != nil {
		writeError(w, requestLogger(r, h.lg), "selection_begin", err)
		return
	}
	v, err := h.service.BeginSelection(req.ProductoID, policy)
	if err != nil {
		writeError(w, requestLogger(r, h.lg), "selection_begin", err)
		return
	}
	writeJSON(w, http.StatusCreated, toSelectionResponse(v))
}

func (h *BillingHandler) UpdateSelection(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(w, r, "ingredient_id")
	if !ok {
		return
	}
	var req updateSelectionRequest
	if !decode(w, r, &req) {
		return
	}
	v, err := h.service.UpdateSelection(id, service.SelectionUpdate{Checked: req.Checked, Amount: req.Amount})
	if err != nil {
		writeError(w, requestLogger(r, h.lg), "selection_update", err)
		return
	}
	writeJSON(w, http.StatusOK, toSelectionResponse(v))
}

func (h *BillingHandler) ConfirmSelection(w http.ResponseWriter, r *http.Request) {
	if _, err := h.service.ConfirmSelection(); err != nil {
		writeError(w, requestLogger(r, h.lg), "selection_confirm", err)
		return
	}
	writeJSON(w, http.StatusCreated, toCartResponse(h.service.Cart()))
}

func (h *BillingHandler) CancelSelection(w http.ResponseWriter, r *http.Request) {
	if err := h.service.CancelSelection(); err != nil {
		writeError(w, requestLogger(r, h.lg), "selection_cancel", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *BillingHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	rec, err := h.service.Checkout(r.Context())
	if err != nil {
		writeError(w, requestLogger(r, h.lg), "checkout", err)
		return
	}
	writeJSON(w, http.StatusCreated, checkoutResponse{VentasID: rec.SaleID, Fecha: rec.Date, Total: rec.Total})
}
