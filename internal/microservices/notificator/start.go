package notificator

import (
	"context"

	"pos-system/internal/common/logger"
	"pos-system/internal/config"
	"pos-system/internal/connections/rabbitmq"
	"pos-system/internal/domain"
	"pos-system/internal/microservices/notificator/service"
)

// Run consumes sale events and logs a printed receipt for each one.
func Run(ctx context.Context, cfg *config.Config, lg *logger.Logger) error {
	if err := cfg.ValidateRabbitMQ(); err != nil {
		return err
	}
	loc, err := cfg.Terminal.Location()
	if err != nil {
		lg.Warn("timezone_fallback", err, map[string]any{"timezone": cfg.Terminal.Timezone})
	}

	client, err := rabbitmq.Dial(cfg.RabbitMQ)
	if err != nil {
		return err
	}
	defer client.Close()
	if err := client.DeclareSalesTopology(); err != nil {
		return err
	}

	deliveries, err := client.Consume(domain.SaleNotifyQueue, "sales-notifier", cfg.RabbitMQ.Prefetch)
	if err != nil {
		return err
	}
	lg.Info("service_started", map[string]any{"queue": domain.SaleNotifyQueue, "prefetch": cfg.RabbitMQ.Prefetch})

	svc := service.New(loc, lg)
	return svc.NotificatorService.Notify(ctx, deliveries)
}
