package config

const (
	EnvAppEnv   = "APP_ENV"
	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvStoreDriver       = "STORE_DRIVER"
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"
	EnvDatabaseURL       = "DATABASE_URL"

	EnvCashfreeAppID         = "CASHFREE_APP_ID"
	EnvCashfreeSecretKey     = "CASHFREE_SECRET_KEY"
	EnvCashfreeEnvironment   = "CASHFREE_ENVIRONMENT"
	EnvCashfreeAPIVersion    = "CASHFREE_API_VERSION"
	EnvCashfreeWebhookVerify = "CASHFREE_WEBHOOK_VERIFY"
	EnvProviderTimeout       = "PROVIDER_TIMEOUT"

	EnvPublicBaseURL      = "PUBLIC_BASE_URL"
	EnvBookingAmount      = "BOOKING_AMOUNT"
	EnvBookingCurrency    = "BOOKING_CURRENCY"
	EnvDefaultPhoneRegion = "DEFAULT_PHONE_REGION"

	EnvKafkaEnabled            = "KAFKA_ENABLED"
	EnvKafkaBookingEventsTopic = "KAFKA_BOOKING_EVENTS_TOPIC"

	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"
)
