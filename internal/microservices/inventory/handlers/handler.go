package handlers

import (
	"net/http"

	"pos-system/internal/common/logger"
	"pos-system/internal/microservices/inventory/service"
)

type Handler struct {
	InventoryHandler *InventoryHandler
	CatalogHandler   *CatalogHandler
	StaffHandler     *StaffHandler
}

func New(s *service.Service, lg *logger.Logger) *Handler {
	return &Handler{
		InventoryHandler: NewInventoryHandler(s.InventoryService, lg),
		CatalogHandler:   NewCatalogHandler(s.CatalogService, lg),
		StaffHandler:     NewStaffHandler(s.StaffService, lg),
	}
}

func Router(h *Handler) *http.ServeMux {
	ih, ch, sh := h.InventoryHandler, h.CatalogHandler, h.StaffHandler
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	mux.HandleFunc("GET /api/productos", ih.ListProducts)
	mux.HandleFunc("POST /api/productos", ch.CreateProduct)
	mux.HandleFunc("PUT /api/productos/{id}", ch.UpdateProduct)
	mux.HandleFunc("DELETE /api/productos/{id}", ch.DeleteProduct)

	mux.HandleFunc("GET /api/bebidas", ih.ListBeverages)
	mux.HandleFunc("POST /api/bebidas", ch.CreateBeverage)
	mux.HandleFunc("PUT /api/bebidas/{id}", ch.UpdateBeverage)
	mux.HandleFunc("DELETE /api/bebidas/{id}", ch.DeleteBeverage)

	mux.HandleFunc("GET /api/ingredientes", ih.ListIngredients)
	mux.HandleFunc("POST /api/ingredientes", ch.CreateIngredients)
	mux.HandleFunc("PUT /api/ingredientes/{id}", ch.UpdateIngredient)
	mux.HandleFunc("DELETE /api/ingredientes/{id}", ch.DeleteIngredient)

	mux.HandleFunc("GET /api/empleados", ih.ListEmployees)
	mux.HandleFunc("GET /api/empleados/empleados", sh.ListEmployees)
	mux.HandleFunc("POST /api/empleados/empleados", sh.CreateEmployee)
	mux.HandleFunc("PUT /api/empleados/empleados/{id}", sh.UpdateEmployee)
	mux.HandleFunc("DELETE /api/empleados/empleados/{id}", sh.DeleteEmployee)

	mux.HandleFunc("POST /api/ventas", ih.CreateSale)
	mux.HandleFunc("GET /api/ventas", ih.ListSales)
	mux.HandleFunc("GET /api/ventas/historial", ih.ListSales)
	mux.HandleFunc("GET /api/ventas/{id}", ih.GetSale)

	mux.HandleFunc("GET /api/reportes/best-selling", ih.BestSelling)
	mux.HandleFunc("GET /api/reportes/total-sales", ih.TotalSales)
	return mux
}
