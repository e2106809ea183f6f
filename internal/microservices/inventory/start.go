package inventory

import (
	"context"
	"fmt"

	"pos-system/internal/common/httpx"
	"pos-system/internal/common/logger"
	"pos-system/internal/config"
	"pos-system/internal/connections/database"
	"pos-system/internal/connections/rabbitmq"
	"pos-system/internal/domain"
	"pos-system/internal/microservices/inventory/handlers"
	"pos-system/internal/microservices/inventory/repository"
	"pos-system/internal/microservices/inventory/service"
)

// Run serves the sales backend until ctx is done. Sale events are published
// only when RabbitMQ is configured and reachable.
func Run(ctx context.Context, cfg *config.Config, lg *logger.Logger) error {
	if err := cfg.ValidateDatabase(); err != nil {
		return err
	}
	loc, err := cfg.Terminal.Location()
	if err != nil {
		lg.Warn("timezone_fallback", err, map[string]any{"timezone": cfg.Terminal.Timezone})
	}

	db, err := database.ConnectDB(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := repository.Migrate(ctx, db); err != nil {
		return err
	}
	lg.Info("db_connected", map[string]any{"host": cfg.Database.Host, "database": cfg.Database.Database})

	var publisher service.Publisher
	if client, err := connectBroker(cfg); err != nil {
		lg.Warn("sale_events_disabled", err, nil)
	} else {
		defer client.Close()
		publisher = client
		lg.Info("rabbitmq_connected", map[string]any{"exchange": domain.SalesExchange})
	}

	svc := service.New(repository.New(db), publisher, loc, lg)
	h := handlers.New(svc, lg)

	addr := fmt.Sprintf(":%d", cfg.Inventory.Port)
	lg.Info("service_started", map[string]any{"addr": addr})
	return httpx.New(addr, "inventory-service", handlers.Router(h)).Run(ctx)
}

func connectBroker(cfg *config.Config) (*rabbitmq.Client, error) {
	if err := cfg.ValidateRabbitMQ(); err != nil {
		return nil, err
	}
	client, err := rabbitmq.Dial(cfg.RabbitMQ)
	if err != nil {
		return nil, err
	}
	if err := client.DeclareSalesTopology(); err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}
