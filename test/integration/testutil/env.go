package testutil

import (
	"os"
	"testing"
	"time"
)

const (
	EnvMongoURI     = "TEST_MONGO_URI"
	EnvDatabaseURL  = "TEST_DATABASE_URL"
	EnvDatabaseName = "TEST_DB_NAME"

	DefaultDatabaseName = "consultpay_test"
	ConnectionTimeout   = 10 * time.Second
)

type TestEnv struct {
	MongoURI     string
	DatabaseURL  string
	DatabaseName string
}

func NewTestEnv() *TestEnv {
	return &TestEnv{
		MongoURI:     os.Getenv(EnvMongoURI),
		DatabaseURL:  os.Getenv(EnvDatabaseURL),
		DatabaseName: getEnv(EnvDatabaseName, DefaultDatabaseName),
	}
}

// RequireMongo skips t unless a test MongoDB is configured.
func (e *TestEnv) RequireMongo(t *testing.T) {
	t.Helper()
	if e.MongoURI == "" {
		t.Skipf("%s not set, skipping MongoDB integration tests", EnvMongoURI)
	}
}

// RequirePostgres skips t unless a test Postgres is configured.
func (e *TestEnv) RequirePostgres(t *testing.T) {
	t.Helper()
	if e.DatabaseURL == "" {
		t.Skipf("%s not set, skipping Postgres integration tests", EnvDatabaseURL)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
