package service

import (
	"time"

	"pos-system/internal/common/logger"
	"pos-system/internal/microservices/billing/repository"
)

type Service struct {
	BillingService    BillingServiceInterface
	BackofficeService BackofficeServiceInterface
	AdminService      AdminServiceInterface
}

func New(repo *repository.Repository, loc *time.Location, lg *logger.Logger) *Service {
	billing := NewBillingService(repo.CatalogRepo, repo.SalesRepo, lg)
	return &Service{
		BillingService:    billing,
		BackofficeService: NewBackofficeService(repo, loc, lg),
		AdminService:      NewAdminService(repo, billing, lg),
	}
}
