package service

import (
	"time"

	"pos-system/internal/common/logger"
	"pos-system/internal/microservices/inventory/repository"
)

type Service struct {
	InventoryService InventoryServiceInterface
	CatalogService   CatalogServiceInterface
	StaffService     StaffServiceInterface
}

func New(repo *repository.Repository, publisher Publisher, loc *time.Location, lg *logger.Logger) *Service {
	return &Service{
		InventoryService: NewInventoryService(repo, publisher, loc, lg),
		CatalogService:   NewCatalogService(repo, lg),
		StaffService:     NewStaffService(repo, lg),
	}
}
