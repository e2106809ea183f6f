package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"pos-system/internal/common/logger"
	"pos-system/internal/config"
	"pos-system/internal/microservices/billing"
	"pos-system/internal/microservices/inventory"
	"pos-system/internal/microservices/notificator"
)

const modes = "billing-terminal | inventory-service | sales-notifier"

type runFunc func(context.Context, *config.Config, *logger.Logger) error

var services = map[string]runFunc{
	"billing-terminal":  billing.Run,
	"inventory-service": inventory.Run,
	"sales-notifier":    notificator.Run,
}

func main() {
	mode := flag.String("mode", "", modes)
	cfgPath := flag.String("config", "config.yaml", "path to YAML config")
	port := flag.Int("port", 0, "override the HTTP port of billing-terminal or inventory-service")
	flag.Parse()

	run, ok := services[*mode]
	if !ok {
		fmt.Fprintln(os.Stderr, "--mode is required:", modes)
		os.Exit(2)
	}

	cfg, err := config.LoadConfig(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *port > 0 {
		cfg.Terminal.Port = *port
		cfg.Inventory.Port = *port
	}

	lg := logger.NewWithWriter(*mode, os.Stdout, cfg.Log.Level)
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, lg); err != nil {
		lg.Error("fatal", err, nil)
		cancel()
		os.Exit(1)
	}
	lg.Info("service_stopped", nil)
}
