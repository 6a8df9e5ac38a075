package testutil

import (
	"context"
	"testing"

	"consultpay/internal/bookings/repository"
	"consultpay/pkg/client"
	"consultpay/pkg/logger"
)

// PostgresHelper mirrors MongoHelper for the relational store
type PostgresHelper struct {
	Client *client.Client
}

// NewPostgresHelper connects through the service client and migrates the bookings table
func NewPostgresHelper(t *testing.T, databaseURL string) *PostgresHelper {
	t.Helper()

	c := client.NewClient()
	c.SetPostgres(logger.Discard(), databaseURL)

	sqlDB, err := c.Postgres.DB()
	if err != nil {
		t.Fatalf("failed to get Postgres handle: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), ConnectionTimeout)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		t.Fatalf("failed to ping Postgres: %v", err)
	}
	if err := repository.AutoMigrate(c.Postgres); err != nil {
		t.Fatalf("failed to migrate bookings table: %v", err)
	}

	h := &PostgresHelper{Client: c}
	h.CleanTable(t)
	return h
}

// CleanTable removes every booking row
func (p *PostgresHelper) CleanTable(t *testing.T) {
	t.Helper()
	if err := p.Client.Postgres.Exec("DELETE FROM " + repository.BookingRecord{}.TableName()).Error; err != nil {
		t.Fatalf("failed to clean bookings table: %v", err)
	}
}

// Close closes the Postgres connection pool
func (p *PostgresHelper) Close(t *testing.T) {
	t.Helper()
	sqlDB, err := p.Client.Postgres.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		t.Logf("warning: failed to close Postgres: %v", err)
	}
}
