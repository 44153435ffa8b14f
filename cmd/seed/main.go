package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	authrepo "travelnest_backend/internal/auth/repository"
	catalogrepo "travelnest_backend/internal/catalog/repository"
	"travelnest_backend/platform/config"
	"travelnest_backend/platform/db"
	"travelnest_backend/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	file, err := loadCatalog(os.Getenv("SEED_FILE"))
	if err != nil {
		log.Error("failed to load seed catalog", "error", err)
		os.Exit(1)
	}

	client, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	database := db.Database(client, cfg)
	if err := db.EnsureIndexes(ctx, database); err != nil {
		log.Error("failed to create database indexes", "error", err)
		os.Exit(1)
	}

	counts, err := seedCatalog(ctx, catalogrepo.New(database), file)
	if err != nil {
		log.Error("seeding catalog failed", "error", err)
		os.Exit(1)
	}
	log.Info("catalog seeded",
		"destinations", counts.Destinations,
		"packages", counts.Packages,
		"blogs", counts.Blogs,
	)

	created, err := ensureAdmin(ctx, authrepo.New(database), adminAccount{
		Name:     os.Getenv("SEED_ADMIN_NAME"),
		Email:    os.Getenv("SEED_ADMIN_EMAIL"),
		Password: os.Getenv("SEED_ADMIN_PASSWORD"),
	})
	if err != nil {
		log.Error("seeding admin failed", "error", err)
		os.Exit(1)
	}
	if created {
		log.Info("admin account created", "email", os.Getenv("SEED_ADMIN_EMAIL"))
	}
}
