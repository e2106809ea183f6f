package rabbitmq

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pos-system/internal/config"
)

func TestURL(t *testing.T) {
	cfg := config.RabbitMQConfig{Host: "mq", Port: 5672, User: "guest", Password: "guest"}
	assert.Equal(t, "amqp://guest:guest@mq:5672/%2F", URL(cfg))

	cfg.VHost = "pos"
	assert.Equal(t, "amqp://guest:guest@mq:5672/pos", URL(cfg))
}

func TestPing_Closed(t *testing.T) {
	c := &Client{}
	assert.Error(t, c.Ping())
}
