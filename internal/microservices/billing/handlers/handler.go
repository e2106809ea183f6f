package handlers

import (
	"net/http"

	"pos-system/internal/common/logger"
	"pos-system/internal/microservices/billing/service"
	"pos-system/internal/session"
)

type Handler struct {
	BillingHandler    *BillingHandler
	BackofficeHandler *BackofficeHandler
	AdminHandler      *AdminHandler
	lg                *logger.Logger
}

func New(s *service.Service, lg *logger.Logger) *Handler {
	return &Handler{
		BillingHandler:    NewBillingHandler(s.BillingService, lg),
		BackofficeHandler: NewBackofficeHandler(s.BackofficeService, lg),
		AdminHandler:      NewAdminHandler(s.AdminService, lg),
		lg:                lg,
	}
}

// Router wires every terminal route behind its permission.
func Router(h *Handler) http.Handler {
	b, o, a := h.BillingHandler, h.BackofficeHandler, h.AdminHandler
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	mux.HandleFunc("GET /billing/catalog", guard(session.PermBilling, b.Catalog))
	mux.HandleFunc("POST /billing/catalog/refresh", guard(session.PermBilling, b.RefreshCatalog))
	mux.HandleFunc("GET /billing/cart", guard(session.PermBilling, b.Cart))
	mux.HandleFunc("POST /billing/cart/products", guard(session.PermBilling, b.AddProduct))
	mux.HandleFunc("POST /billing/cart/beverages", guard(session.PermBilling, b.AddBeverage))
	mux.HandleFunc("DELETE /billing/cart/items/{index}", guard(session.PermBilling, b.RemoveItem))
	mux.HandleFunc("PUT /billing/form", guard(session.PermBilling, b.SetForm))
	mux.HandleFunc("POST /billing/selections", guard(session.PermBilling, b.BeginSelection))
	mux.HandleFunc("PATCH /billing/selections/{ingredient_id}", guard(session.PermBilling, b.UpdateSelection))
	mux.HandleFunc("POST /billing/selections/confirm", guard(session.PermBilling, b.ConfirmSelection))
	mux.HandleFunc("DELETE /billing/selections", guard(session.PermBilling, b.CancelSelection))
	mux.HandleFunc("POST /billing/checkout", guard(session.PermBilling, b.Checkout))

	mux.HandleFunc("GET /billing/sales", guard(session.PermPrintReceipt, o.ListSales))
	mux.HandleFunc("GET /billing/sales/{id}/receipt", guard(session.PermPrintReceipt, o.Receipt))

	mux.HandleFunc("POST /backoffice/restock/ingredients/{id}", guard(session.PermPurchases, o.RestockIngredient))
	mux.HandleFunc("POST /backoffice/restock/beverages/{id}", guard(session.PermPurchases, o.RestockBeverage))
	mux.HandleFunc("GET /backoffice/reports/best-selling", guard(session.PermReports, o.BestSelling))
	mux.HandleFunc("GET /backoffice/reports/total-sales", guard(session.PermReports, o.TotalSales))

	mux.HandleFunc("GET /backoffice/dashboard", guard(session.PermDashboard, a.Dashboard))

	mux.HandleFunc("GET /backoffice/inventory", guard(session.PermViewInventory, a.Inventory))
	mux.HandleFunc("POST /backoffice/inventory/products", guard(session.PermEditInventory, a.CreateProduct))
	mux.HandleFunc("PUT /backoffice/inventory/products/{id}", guard(session.PermEditInventory, a.UpdateProduct))
	mux.HandleFunc("DELETE /backoffice/inventory/products/{id}", guard(session.PermEditInventory, a.DeleteProduct))
	mux.HandleFunc("POST /backoffice/inventory/beverages", guard(session.PermEditInventory, a.CreateBeverage))
	mux.HandleFunc("PUT /backoffice/inventory/beverages/{id}", guard(session.PermEditInventory, a.UpdateBeverage))
	mux.HandleFunc("DELETE /backoffice/inventory/beverages/{id}", guard(session.PermEditInventory, a.DeleteBeverage))
	mux.HandleFunc("POST /backoffice/inventory/ingredients", guard(session.PermEditInventory, a.CreateIngredients))
	mux.HandleFunc("PUT /backoffice/inventory/ingredients/{id}", guard(session.PermEditInventory, a.UpdateIngredient))
	mux.HandleFunc("DELETE /backoffice/inventory/ingredients/{id}", guard(session.PermEditInventory, a.DeleteIngredient))

	mux.HandleFunc("GET /backoffice/users", guard(session.PermManageUsers, a.ListUsers))
	mux.HandleFunc("POST /backoffice/users", guard(session.PermManageUsers, a.CreateUser))
	mux.HandleFunc("PUT /backoffice/users/{id}", guard(session.PermManageUsers, a.UpdateUser))
	mux.HandleFunc("DELETE /backoffice/users/{id}", guard(session.PermManageUsers, a.DeleteUser))

	return withRequest(h.lg, withSession(mux))
}
