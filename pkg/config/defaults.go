package config

import (
	"time"

	"consultpay/pkg/logger"
)

const (
	StoreDriverMongo    = "mongo"
	StoreDriverPostgres = "postgres"

	CashfreeSandbox    = "sandbox"
	CashfreeProduction = "production"
)

const (
	DefaultAppEnv   = "development"
	DefaultLogLevel = logger.INFO

	DefaultStoreDriver       = StoreDriverMongo
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "consultpay"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort = "8080"

	DefaultCashfreeEnvironment = CashfreeSandbox
	DefaultCashfreeAPIVersion  = "2023-08-01"
	DefaultProviderTimeout     = 10 * time.Second

	DefaultPublicBaseURL      = "http://localhost:8080"
	DefaultBookingAmount      = 500.00
	DefaultBookingCurrency    = "INR"
	DefaultDefaultPhoneRegion = "IN"

	DefaultKafkaBookingEventsTopic = "booking-events"

	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
)
