package handlers

import (
	"io"
	"net/http"

	"pos-system/internal/common/logger"
	"pos-system/internal/microservices/billing/service"
	"pos-system/internal/session"
)

type BackofficeHandler struct {
	service service.BackofficeServiceInterface
	lg      *logger.Logger
}

func NewBackofficeHandler(s service.BackofficeServiceInterface, lg *logger.Logger) *BackofficeHandler {
	return &BackofficeHandler{service: s, lg: lg}
}

func (h *BackofficeHandler) ListSales(w http.ResponseWriter, r *http.Request) {
	sales, err := h.service.ListSales(r.Context())
	if err != nil {
		writeError(w, requestLogger(r, h.lg), "sales_list", err)
		return
	}
	writeJSON(w, http.StatusOK, sales)
}

// Receipt writes the printable ticket as plain text.
func (h *BackofficeHandler) Receipt(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(w, r, "id")
	if !ok {
		return
	}
	text, err := h.service.Receipt(r.Context(), id)
	if err != nil {
		writeError(w, requestLogger(r, h.lg), "sale_receipt", err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, text)
}

func (h *BackofficeHandler) RestockIngredient(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(w, r, "id")
	if !ok {
		return
	}
	var req restockIngredientRequest
	if !decode(w, r, &req) {
		return
	}
	ing, err := h.service.RestockIngredient(r.Context(), id, req.Cantidad)
	if err != nil {
		writeError(w, requestLogger(r, h.lg), "restock_ingredient", err)
		return
	}
	writeJSON(w, http.StatusOK, restockResponse{ID: ing.ID, Name: ing.Name, Stock: ing.StockCurrent})
}

func (h *BackofficeHandler) RestockBeverage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(w, r, "id")
	if !ok {
		return
	}
	var req restockBeverageRequest
	if !decode(w, r, &req) {
		return
	}
	bev, err := h.service.RestockBeverage(r.Context(), id, req.Cantidad)
	if err != nil {
		writeError(w, requestLogger(r, h.lg), "restock_beverage", err)
		return
	}
	writeJSON(w, http.StatusOK, restockResponse{ID: bev.ID, Name: bev.Name, Stock: float64(bev.Stock)})
}

func (h *BackofficeHandler) BestSelling(w http.ResponseWriter, r *http.Request) {
	s, _ := session.FromContext(r.Context())
	q := r.URL.Query()
	rep, err := h.service.BestSelling(r.Context(), s.Role, q.Get("type"), q.Get("period"))
	if err != nil {
		writeError(w, requestLogger(r, h.lg), "report_best_selling", err)
		return
	}
	writeJSON(w, http.StatusOK, reportResponse{Period: rep.Period, Rows: rep.Rows})
}

func (h *BackofficeHandler) TotalSales(w http.ResponseWriter, r *http.Request) {
	s, _ := session.FromContext(r.Context())
	rep, err := h.service.TotalSales(r.Context(), s.Role, r.URL.Query().Get("period"))
	if err != nil {
		writeError(w, requestLogger(r, h.lg), "report_total_sales", err)
		return
	}
	writeJSON(w, http.StatusOK, reportResponse{Period: rep.Period, Rows: rep.Rows})
}
