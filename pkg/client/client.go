package client

import (
	"context"
	"time"

	"consultpay/pkg/logger"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const disconnectTimeout = 10 * time.Second

type Client struct {
	Mongo    *mongo.Client
	Postgres *gorm.DB
}

func NewClient() *Client {
	return &Client{}
}

// SetMongo connects lazily: an unreachable server is logged and surfaces later through
// store calls and the health check. Only an unusable URI is fatal.
func (c *Client) SetMongo(log *logger.Logger, mongoURI string, mongoConnTimeout time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), mongoConnTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}

	c.Mongo = client
	if err := client.Ping(ctx, nil); err != nil {
		log.Error("MongoDB is unreachable, store requests will fail until it recovers", "error", err)
		return
	}

	log.Info("Successfully connected to MongoDB")
}

// SetPostgres follows SetMongo: an unreachable server is logged, an unparsable URL is fatal.
func (c *Client) SetPostgres(log *logger.Logger, databaseURL string) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
		DisableAutomaticPing:   true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", "error", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("Failed to obtain PostgreSQL connection pool", "error", err)
	}
	c.Postgres = db
	if err := sqlDB.Ping(); err != nil {
		log.Error("PostgreSQL is unreachable, store requests will fail until it recovers", "error", err)
		return
	}

	log.Info("Successfully connected to PostgreSQL")
}

func (c *Client) GracefulShutdown(log *logger.Logger) {
	if c.Mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), disconnectTimeout)
		defer cancel()
		if err := c.Mongo.Disconnect(ctx); err != nil {
			log.Error("Failed to disconnect from MongoDB", "error", err)
		} else {
			log.Info("Disconnected from MongoDB")
		}
	}

	if c.Postgres != nil {
		sqlDB, err := c.Postgres.DB()
		if err == nil {
			err = sqlDB.Close()
		}
		if err != nil {
			log.Error("Failed to close PostgreSQL connection", "error", err)
		} else {
			log.Info("Disconnected from PostgreSQL")
		}
	}
}
