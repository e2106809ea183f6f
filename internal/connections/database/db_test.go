package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pos-system/internal/config"
)

func TestDSN(t *testing.T) {
	cfg := config.DatabaseConfig{Host: "db", Port: 5432, User: "pos", Password: "secret", Database: "ventas"}
	assert.Equal(t, "host=db port=5432 user=pos password=secret dbname=ventas sslmode=disable", DSN(cfg))

	cfg.SSLMode = "require"
	assert.Contains(t, DSN(cfg), "sslmode=require")
}

func TestConnectDB_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ConnectDB(ctx, config.DatabaseConfig{Host: "127.0.0.1", Port: 1, User: "pos", Database: "ventas"})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
