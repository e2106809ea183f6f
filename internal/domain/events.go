package domain

import "time"

const (
	SalesExchange      = "sales_topic"
	SaleNotifyQueue    = "notifications.sales.q"
	SaleCreatedEvent   = "sale.created"
	SaleRoutingPattern = "sale.#"
)

// SaleCreatedMessage is published once a sale has been committed.
type SaleCreatedMessage struct {
	EventType  string     `json:"event_type"`
	OccurredAt time.Time  `json:"occurred_at"`
	Sale       SaleRecord `json:"sale"`
}

// SaleRoutingKey routes by payment method, e.g. "sale.created.efectivo".
func SaleRoutingKey(method string) string {
	return SaleCreatedEvent + "." + routingWord(method)
}

func routingWord(s string) string {
	b := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'A' && c <= 'Z':
			b = append(b, c+('a'-'A'))
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9', c == '_', c == '-':
			b = append(b, c)
		}
	}
	if len(b) == 0 {
		return "unknown"
	}
	return string(b)
}
