package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"consultpay/pkg/client"
	"consultpay/pkg/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv string
	Port   string

	StoreDriver       string
	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration
	DatabaseURL       string

	CashfreeAppID         string
	CashfreeSecretKey     string
	CashfreeEnvironment   string
	CashfreeAPIVersion    string
	CashfreeWebhookVerify bool
	ProviderTimeout       time.Duration

	PublicBaseURL      string
	BookingAmount      float64
	BookingCurrency    string
	DefaultPhoneRegion string

	KafkaEnabled            bool
	KafkaBookingEventsTopic string

	MaxRequestSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	Log    *logger.Logger
	Client *client.Client
}

func Load(serviceName string) *Config {
	dotenvErr := godotenv.Load()

	cfg := &Config{
		AppEnv: getEnvStr(EnvAppEnv, DefaultAppEnv),
		Port:   getEnvStr(EnvPort, DefaultPort),

		StoreDriver:       strings.ToLower(getEnvStr(EnvStoreDriver, DefaultStoreDriver)),
		MongoURI:          getEnvStr(EnvMongoURI, DefaultMongoURI),
		MongoDatabaseName: getEnvStr(EnvMongoDatabaseName, DefaultMongoDatabaseName),
		MongoConnTimeout:  getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),
		DatabaseURL:       getEnvStr(EnvDatabaseURL, ""),

		CashfreeAppID:         getEnvStr(EnvCashfreeAppID, ""),
		CashfreeSecretKey:     getEnvStr(EnvCashfreeSecretKey, ""),
		CashfreeEnvironment:   strings.ToLower(getEnvStr(EnvCashfreeEnvironment, DefaultCashfreeEnvironment)),
		CashfreeAPIVersion:    getEnvStr(EnvCashfreeAPIVersion, DefaultCashfreeAPIVersion),
		CashfreeWebhookVerify: getEnvBool(EnvCashfreeWebhookVerify, false),
		ProviderTimeout:       getEnvDuration(EnvProviderTimeout, DefaultProviderTimeout),

		PublicBaseURL:      strings.TrimSuffix(getEnvStr(EnvPublicBaseURL, DefaultPublicBaseURL), "/"),
		BookingAmount:      getEnvFloat(EnvBookingAmount, DefaultBookingAmount),
		BookingCurrency:    getEnvStr(EnvBookingCurrency, DefaultBookingCurrency),
		DefaultPhoneRegion: strings.ToUpper(getEnvStr(EnvDefaultPhoneRegion, DefaultDefaultPhoneRegion)),

		KafkaEnabled:            getEnvBool(EnvKafkaEnabled, false),
		KafkaBookingEventsTopic: getEnvStr(EnvKafkaBookingEventsTopic, DefaultKafkaBookingEventsTopic),

		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		Log: logger.New(logger.Config{
			Level:     getEnvStr(EnvLogLevel, DefaultLogLevel),
			Format:    logger.JSON,
			AddSource: true,
			Service:   serviceName,
		}),
		Client: client.NewClient(),
	}

	if dotenvErr != nil && !errors.Is(dotenvErr, fs.ErrNotExist) {
		cfg.Log.Warn("Failed to load .env file", "error", dotenvErr)
	}

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

// SetStore opens the connection for the configured booking store driver.
func (cfg *Config) SetStore() {
	switch cfg.StoreDriver {
	case StoreDriverPostgres:
		cfg.Client.SetPostgres(cfg.Log, cfg.DatabaseURL)
	default:
		cfg.Client.SetMongo(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
	}
}

// ProviderConfigured reports whether payment provider credentials are present.
func (cfg *Config) ProviderConfigured() bool {
	return cfg.CashfreeAppID != "" && cfg.CashfreeSecretKey != ""
}

func (cfg *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	switch cfg.StoreDriver {
	case StoreDriverMongo:
		if cfg.MongoURI == "" {
			errors = append(errors, "MongoURI cannot be empty")
		} else if len(cfg.MongoURI) < 10 || !regexp.MustCompile(`^mongodb(\+srv)?://`).MatchString(cfg.MongoURI) {
			errors = append(errors, fmt.Sprintf("MongoURI must start with 'mongodb://' or 'mongodb+srv://', got: %s", redactURI(cfg.MongoURI)))
		}
		if cfg.MongoDatabaseName == "" {
			errors = append(errors, "MongoDatabaseName cannot be empty")
		}
		if cfg.MongoConnTimeout <= 0 {
			errors = append(errors, fmt.Sprintf("MongoConnTimeout must be positive, got: %s", cfg.MongoConnTimeout))
		}
	case StoreDriverPostgres:
		if cfg.DatabaseURL == "" {
			errors = append(errors, "DatabaseURL cannot be empty when StoreDriver is postgres")
		}
	default:
		errors = append(errors, fmt.Sprintf("StoreDriver must be one of [mongo, postgres], got: %s", cfg.StoreDriver))
	}

	if cfg.CashfreeEnvironment != CashfreeSandbox && cfg.CashfreeEnvironment != CashfreeProduction {
		errors = append(errors, fmt.Sprintf("CashfreeEnvironment must be one of [sandbox, production], got: %s", cfg.CashfreeEnvironment))
	}
	if cfg.CashfreeAPIVersion == "" {
		errors = append(errors, "CashfreeAPIVersion cannot be empty")
	}
	if cfg.CashfreeWebhookVerify && cfg.CashfreeSecretKey == "" {
		errors = append(errors, "CashfreeSecretKey is required when webhook signature verification is enabled")
	}
	if cfg.ProviderTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ProviderTimeout must be positive, got: %s", cfg.ProviderTimeout))
	}

	if u, err := url.Parse(cfg.PublicBaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errors = append(errors, fmt.Sprintf("PublicBaseURL must be an absolute URL, got: %s", cfg.PublicBaseURL))
	}
	if cfg.BookingAmount <= 0 {
		errors = append(errors, fmt.Sprintf("BookingAmount must be positive, got: %.2f", cfg.BookingAmount))
	}
	if len(cfg.BookingCurrency) != 3 {
		errors = append(errors, fmt.Sprintf("BookingCurrency must be a 3-letter ISO code, got: %s", cfg.BookingCurrency))
	}
	if len(cfg.DefaultPhoneRegion) != 2 {
		errors = append(errors, fmt.Sprintf("DefaultPhoneRegion must be a 2-letter region code, got: %s", cfg.DefaultPhoneRegion))
	}

	if cfg.KafkaEnabled && cfg.KafkaBookingEventsTopic == "" {
		errors = append(errors, "KafkaBookingEventsTopic cannot be empty when Kafka is enabled")
	}

	if cfg.ReadTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ReadTimeout must be positive, got: %s", cfg.ReadTimeout))
	}
	if cfg.WriteTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("WriteTimeout must be positive, got: %s", cfg.WriteTimeout))
	}
	if cfg.IdleTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("IdleTimeout must be positive, got: %s", cfg.IdleTimeout))
	}
	if cfg.ShutdownTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ShutdownTimeout must be positive, got: %s", cfg.ShutdownTimeout))
	}
	if cfg.MaxRequestSize <= 0 {
		errors = append(errors, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}

	if len(errors) > 0 {
		errMsg := "Configuration validation failed:\n"
		for i, err := range errors {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, err)
		}
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"app_env", cfg.AppEnv,
		"port", cfg.Port,
		"store_driver", cfg.StoreDriver,
		"mongo_uri", redactURI(cfg.MongoURI),
		"mongo_database", cfg.MongoDatabaseName,
		"mongo_conn_timeout", cfg.MongoConnTimeout,
		"database_url", redactURI(cfg.DatabaseURL),
		"cashfree_environment", cfg.CashfreeEnvironment,
		"cashfree_api_version", cfg.CashfreeAPIVersion,
		"cashfree_credentials_set", cfg.ProviderConfigured(),
		"cashfree_webhook_verify", cfg.CashfreeWebhookVerify,
		"provider_timeout", cfg.ProviderTimeout,
		"public_base_url", cfg.PublicBaseURL,
		"booking_amount", cfg.BookingAmount,
		"booking_currency", cfg.BookingCurrency,
		"default_phone_region", cfg.DefaultPhoneRegion,
		"kafka_enabled", cfg.KafkaEnabled,
		"kafka_booking_events_topic", cfg.KafkaBookingEventsTopic,
		"max_request_size", cfg.MaxRequestSize,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
	)
}

var credentialRegex = regexp.MustCompile(`(^[a-zA-Z][a-zA-Z0-9+.-]*://)[^:/@]+:[^@]+@`)

func redactURI(uri string) string {
	return credentialRegex.ReplaceAllString(uri, "${1}***:***@")
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func (cfg *Config) GracefulShutdown() {
	cfg.Client.GracefulShutdown(cfg.Log)
}
