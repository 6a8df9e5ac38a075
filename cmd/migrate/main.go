package main

import (
	"context"
	"time"

	"consultpay/internal/bookings/repository"
	mongoMigration "consultpay/internal/migrations/mongo"
	"consultpay/pkg/config"
)

const (
	JobName          = "booking-migration"
	migrationTimeout = 120 * time.Second
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), migrationTimeout)
	defer cancel()

	cfg := config.Load(JobName)
	cfg.SetStore()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting migration job", "store_driver", cfg.StoreDriver)

	var err error
	switch cfg.StoreDriver {
	case config.StoreDriverPostgres:
		err = repository.AutoMigrate(cfg.Client.Postgres.WithContext(ctx))
	default:
		err = mongoMigration.RunMigration(ctx, cfg.Client.Mongo.Database(cfg.MongoDatabaseName), cfg.Log)
	}
	if err != nil {
		cfg.Log.Error("Migration failed", "error", err)
		cfg.GracefulShutdown()
		cfg.Log.Fatal("Migration job aborted")
	}

	cfg.Log.Info("Migration completed successfully")
}
