package billing

import (
	"context"
	"fmt"

	"pos-system/internal/common/httpx"
	"pos-system/internal/common/logger"
	"pos-system/internal/config"
	"pos-system/internal/microservices/billing/handlers"
	"pos-system/internal/microservices/billing/repository"
	"pos-system/internal/microservices/billing/service"
)

// Run serves the billing terminal API until ctx is done. The catalog is
// loaded once at startup; a failed first load is logged and the terminal
// starts with whatever did load.
func Run(ctx context.Context, cfg *config.Config, lg *logger.Logger) error {
	if err := cfg.ValidateAPI(); err != nil {
		return err
	}
	loc, err := cfg.Terminal.Location()
	if err != nil {
		lg.Warn("timezone_fallback", err, map[string]any{"timezone": cfg.Terminal.Timezone})
	}

	client := repository.NewBackendClient(cfg.API.BaseURL, cfg.API.Timeout, lg)
	repo := repository.New(client)
	svc := service.New(repo, loc, lg)
	h := handlers.New(svc, lg)

	if _, err := svc.BillingService.Refresh(ctx); err != nil {
		lg.Warn("initial_catalog_incomplete", err, map[string]any{"api": cfg.API.BaseURL})
	}

	addr := fmt.Sprintf(":%d", cfg.Terminal.Port)
	lg.Info("service_started", map[string]any{"addr": addr, "api": cfg.API.BaseURL})
	return httpx.New(addr, "billing-terminal", handlers.Router(h)).Run(ctx)
}
