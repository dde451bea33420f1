package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"posbackend/configs"
	"posbackend/remote"
	"posbackend/repository"
	"posbackend/routes"
	"posbackend/services"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func init() {
	log.SetFormatter(&log.JSONFormatter{})
	log.SetLevel(log.InfoLevel)
}

func main() {
	cfg := configs.LoadConfig()

	// Local store (the terminal's client storage)
	configs.ConnectionDB(cfg.DBSource)
	db := configs.DB()
	configs.SetupDatabase()

	if err := configs.SeedAdmin(); err != nil {
		log.Fatalf("seed admin failed: %v", err)
	}
	if err := configs.SeedLookups(); err != nil {
		log.Fatalf("seed lookups failed: %v", err)
	}

	// Upstream order/table service
	rc := remote.NewClient(cfg.RemoteBaseURL, cfg.RemoteToken, cfg.RemoteTimeout)

	// Background order sync, stopped on shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	menuRepo := repository.NewMenuRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	sync := services.NewSyncService(orderRepo, menuRepo, rc, cfg.SyncInterval)
	go sync.Run(ctx)

	// HTTP
	r := gin.Default()
	routes.RegisterRoutes(r, db, cfg, rc)

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.WithFields(log.Fields{
		"addr":     addr,
		"upstream": cfg.RemoteBaseURL,
	}).Info("POS backend starting")
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
