package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"pos-system/internal/common/logger"
	"pos-system/internal/domain"
	"pos-system/internal/microservices/inventory/domain/dao"
	"pos-system/internal/microservices/inventory/repository"
)

var ErrInvalidRequest = errors.New("invalid request")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}

// rejected wraps a domain validation error so handlers answer 400.
func rejected(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
}

// Publisher is satisfied by the RabbitMQ client.
type Publisher interface {
	Publish(ctx context.Context, exchange, key string, msg amqp.Publishing) error
}

type InventoryServiceInterface interface {
	ListProducts(ctx context.Context) ([]domain.ProductRecord, error)
	ListBeverages(ctx context.Context) ([]domain.BeverageRecord, error)
	ListIngredients(ctx context.Context) ([]domain.IngredientRecord, error)
	ListEmployees(ctx context.Context) ([]domain.EmployeeRecord, error)

	CreateSale(ctx context.Context, req domain.SaleRequest) (domain.SaleRecord, error)
	ListSales(ctx context.Context) ([]domain.SaleRecord, error)
	GetSale(ctx context.Context, id int) (domain.SaleRecord, error)

	BestSelling(ctx context.Context, kind, period string) ([]domain.BestSellingRow, error)
	TotalSales(ctx context.Context, period string) (domain.TotalSales, error)
}

const (
	bestSellingLimit = 10
	publishTimeout   = 5 * time.Second
	// totals are compared at cent precision
	totalTolerance = 0.005
)

type InventoryService struct {
	catalog   repository.CatalogRepositoryInterface
	sales     repository.SalesRepositoryInterface
	reports   repository.ReportsRepositoryInterface
	publisher Publisher
	lg        *logger.Logger
	loc       *time.Location
	now       func() time.Time
}

// NewInventoryService builds the service. A nil publisher disables sale
// events.
func NewInventoryService(repo *repository.Repository, publisher Publisher, loc *time.Location, lg *logger.Logger) *InventoryService {
	if loc == nil {
		loc = time.Local
	}
	return &InventoryService{
		catalog:   repo.CatalogRepo,
		sales:     repo.SalesRepo,
		reports:   repo.ReportsRepo,
		publisher: publisher,
		lg:        lg,
		loc:       loc,
		now:       time.Now,
	}
}

func (s *InventoryService) ListProducts(ctx context.Context) ([]domain.ProductRecord, error) {
	return nonNil(s.catalog.ListProducts(ctx))
}

func (s *InventoryService) ListBeverages(ctx context.Context) ([]domain.BeverageRecord, error) {
	return nonNil(s.catalog.ListBeverages(ctx))
}

func (s *InventoryService) ListIngredients(ctx context.Context) ([]domain.IngredientRecord, error) {
	return nonNil(s.catalog.ListIngredients(ctx))
}

func (s *InventoryService) ListEmployees(ctx context.Context) ([]domain.EmployeeRecord, error) {
	return nonNil(s.catalog.ListEmployees(ctx))
}

// CreateSale validates and stores the sale, then announces it. The sale is
// committed before publishing; a failed publish is logged and does not fail
// the request.
func (s *InventoryService) CreateSale(ctx context.Context, req domain.SaleRequest) (domain.SaleRecord, error) {
	sale, err := s.validateSale(req)
	if err != nil {
		return domain.SaleRecord{}, err
	}

	rec, err := s.sales.CreateSale(ctx, sale)
	if err != nil {
		return domain.SaleRecord{}, err
	}
	s.lg.Info("sale_created", map[string]any{
		"ventas_id": rec.VentasID, "total": rec.Total, "details": len(rec.VentaDetalles),
		"metodo_pago": rec.MetodoPago,
	})

	if err := s.publish(ctx, rec); err != nil {
		s.lg.Error("sale_event_publish_failed", err, map[string]any{"ventas_id": rec.VentasID})
	}
	return rec, nil
}

func (s *InventoryService) validateSale(req domain.SaleRequest) (dao.NewSale, error) {
	if len(req.Detalles) == 0 {
		return dao.NewSale{}, invalid("detalles must not be empty")
	}
	if !domain.ValidPaymentMethod(req.MetodoPago) {
		return dao.NewSale{}, invalid("unknown metodo_pago %q", req.MetodoPago)
	}
	seller, err := strconv.Atoi(strings.TrimSpace(req.VendedorID))
	if err != nil || seller <= 0 {
		return dao.NewSale{}, invalid("vendedor_id must be an employee id, got %q", req.VendedorID)
	}

	fecha := s.now().UTC()
	if req.Fecha != "" {
		fecha, err = time.Parse(time.RFC3339Nano, req.Fecha)
		if err != nil {
			return dao.NewSale{}, invalid("fecha: %v", err)
		}
	}

	sale := dao.NewSale{
		Fecha:      fecha,
		Cliente:    strings.TrimSpace(req.Cliente),
		MetodoPago: req.MetodoPago,
		VendedorID: seller,
		Total:      req.Total,
		Details:    make([]dao.NewSaleDetail, 0, len(req.Detalles)),
	}

	var sum float64
	for i, d := range req.Detalles {
		det, err := validateDetail(d)
		if err != nil {
			return dao.NewSale{}, fmt.Errorf("detalles[%d]: %w", i, err)
		}
		sum += float64(det.Cantidad) * det.Precio
		sale.Details = append(sale.Details, det)
	}
	if math.Abs(sum-req.Total) > totalTolerance {
		return dao.NewSale{}, invalid("total %v does not match detail sum %v", req.Total, sum)
	}
	return sale, nil
}

func validateDetail(d domain.SaleDetailRequest) (dao.NewSaleDetail, error) {
	if d.Cantidad <= 0 {
		return dao.NewSaleDetail{}, invalid("cantidad must be positive")
	}
	if d.Precio < 0 {
		return dao.NewSaleDetail{}, invalid("precio must not be negative")
	}
	det := dao.NewSaleDetail{
		TipoProducto: d.TipoProducto,
		ProductoID:   d.ProductoID,
		BebidaID:     d.BebidaID,
		Cantidad:     d.Cantidad,
		Precio:       d.Precio,
	}
	switch d.TipoProducto {
	case domain.TipoProducto:
		if d.ProductoID == nil || d.BebidaID != nil {
			return dao.NewSaleDetail{}, invalid("producto detail needs producto_id and a null bebida_id")
		}
		for _, ing := range d.Ingredientes {
			if ing.IngredientID <= 0 || ing.Amount <= 0 {
				return dao.NewSaleDetail{}, invalid("ingredient %d: amount must be positive", ing.IngredientID)
			}
			det.Ingredients = append(det.Ingredients, dao.NewSaleIngredient{
				IngredientID: ing.IngredientID, Name: ing.Name, Amount: ing.Amount,
			})
		}
	case domain.TipoBebida:
		if d.BebidaID == nil || d.ProductoID != nil {
			return dao.NewSaleDetail{}, invalid("bebida detail needs bebida_id and a null producto_id")
		}
		if len(d.Ingredientes) > 0 {
			return dao.NewSaleDetail{}, invalid("bebida detail can't carry ingredientes")
		}
	default:
		return dao.NewSaleDetail{}, invalid("unknown tipo_producto %q", d.TipoProducto)
	}
	return det, nil
}

func (s *InventoryService) publish(ctx context.Context, rec domain.SaleRecord) error {
	if s.publisher == nil {
		return nil
	}
	body, err := json.Marshal(domain.SaleCreatedMessage{
		EventType:  domain.SaleCreatedEvent,
		OccurredAt: s.now().UTC(),
		Sale:       rec,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal sale event: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	return s.publisher.Publish(ctx, domain.SalesExchange, domain.SaleRoutingKey(rec.MetodoPago), amqp.Publishing{
		DeliveryMode:  amqp.Persistent,
		ContentType:   "application/json",
		MessageId:     uuid.NewString(),
		CorrelationId: strconv.Itoa(rec.VentasID),
		Timestamp:     s.now().UTC(),
		Headers:       amqp.Table{"x-source": "inventory-service"},
		Body:          body,
	})
}

func (s *InventoryService) ListSales(ctx context.Context) ([]domain.SaleRecord, error) {
	return nonNil(s.sales.ListSales(ctx))
}

func (s *InventoryService) GetSale(ctx context.Context, id int) (domain.SaleRecord, error) {
	return s.sales.GetSale(ctx, id)
}

func (s *InventoryService) BestSelling(ctx context.Context, kind, period string) ([]domain.BestSellingRow, error) {
	if kind == "" {
		kind = domain.TipoProducto
	}
	if kind != domain.TipoProducto && kind != domain.TipoBebida {
		return nil, invalid("unknown type %q", kind)
	}
	w, err := PeriodWindow(period, s.now(), s.loc)
	if err != nil {
		return nil, err
	}
	return nonNil(s.reports.BestSelling(ctx, kind, w, bestSellingLimit))
}

func (s *InventoryService) TotalSales(ctx context.Context, period string) (domain.TotalSales, error) {
	w, err := PeriodWindow(period, s.now(), s.loc)
	if err != nil {
		return nil, err
	}
	totals, err := s.reports.TotalSales(ctx, w)
	if err != nil {
		return nil, err
	}
	if totals == nil {
		totals = domain.TotalSales{}
	}
	return totals, nil
}

// nonNil keeps list endpoints answering [] instead of null.
func nonNil[T any](v []T, err error) ([]T, error) {
	if err != nil {
		return nil, err
	}
	if v == nil {
		v = []T{}
	}
	return v, nil
}
