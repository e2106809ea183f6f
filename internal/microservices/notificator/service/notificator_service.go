package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"pos-system/internal/common/logger"
	"pos-system/internal/domain"
	"pos-system/internal/receipt"
)

var ErrMalformed = errors.New("malformed sale event")

type NotificatorServiceInterface interface {
	Notify(ctx context.Context, deliveries <-chan amqp.Delivery) error
	Handle(d amqp.Delivery) error
}

// NotificatorService prints a receipt for every committed sale it receives.
type NotificatorService struct {
	header receipt.Header
	loc    *time.Location
	lg     *logger.Logger
}

func NewNotificatorService(header receipt.Header, loc *time.Location, lg *logger.Logger) *NotificatorService {
	return &NotificatorService{header: header, loc: loc, lg: lg}
}

// Notify drains deliveries until ctx is done or the channel closes.
func (ns *NotificatorService) Notify(ctx context.Context, deliveries <-chan amqp.Delivery) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return errors.New("delivery channel closed")
			}
			_ = ns.Handle(d)
		}
	}
}

// Handle acks a rendered sale and drops a message that cannot be parsed.
func (ns *NotificatorService) Handle(d amqp.Delivery) error {
	msg, err := parse(d.Body)
	if err != nil {
		ns.lg.Warn("sale_event_rejected", err, map[string]any{"message_id": d.MessageId, "routing_key": d.RoutingKey})
		if nerr := d.Nack(false, false); nerr != nil {
			ns.lg.Error("nack_failed", nerr, nil)
		}
		return err
	}

	ns.lg.Info("sale_notification", map[string]any{
		"ventas_id":   msg.Sale.VentasID,
		"metodo_pago": msg.Sale.MetodoPago,
		"total":       msg.Sale.Total,
		"routing_key": d.RoutingKey,
		"receipt":     receipt.Render(ns.header, msg.Sale, ns.loc),
	})
	if err := d.Ack(false); err != nil {
		ns.lg.Error("ack_failed", err, map[string]any{"ventas_id": msg.Sale.VentasID})
		return err
	}
	return nil
}

func parse(body []byte) (domain.SaleCreatedMessage, error) {
	var msg domain.SaleCreatedMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return msg, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if msg.EventType != domain.SaleCreatedEvent {
		return msg, fmt.Errorf("%w: event_type %q", ErrMalformed, msg.EventType)
	}
	if msg.Sale.VentasID <= 0 {
		return msg, fmt.Errorf("%w: missing ventas_id", ErrMalformed)
	}
	return msg, nil
}
