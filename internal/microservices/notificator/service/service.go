package service

import (
	"time"

	"pos-system/internal/common/logger"
	"pos-system/internal/receipt"
)

type Service struct {
	NotificatorService NotificatorServiceInterface
}

func New(loc *time.Location, lg *logger.Logger) *Service {
	return &Service{NotificatorService: NewNotificatorService(receipt.DefaultHeader, loc, lg)}
}
