package database

import (
	"context"
	"fmt"
	"time"

	"github.com/deppfellow/wtwr-backend/internal/config"
	loggerConfig "github.com/deppfellow/wtwr-backend/internal/logger"
	"github.com/newrelic/go-agent/v3/integrations/nrmongo"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/event"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names, as the original Mongoose models pluralized them.
const (
	ItemsCollection = "clothingitems"
	UsersCollection = "users"
)

// Mongo wraps the Mongo client and the application database handle.
type Mongo struct {
	Client *mongo.Client
	DB     *mongo.Database
	log    *zerolog.Logger
}

// commandLogger returns the request logger stored on ctx by the HTTP
// middleware, so command logs carry the request id. Commands issued
// outside a request fall back to the monitor's own logger.
func commandLogger(ctx context.Context, fallback *zerolog.Logger) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return fallback
}

// commandMonitor logs slow commands always and every command when verbose
// (local env). Failed commands are logged at warn level.
func commandMonitor(logger zerolog.Logger, slowThreshold time.Duration, verbose bool) *event.CommandMonitor {
	return &event.CommandMonitor{
		Started: func(_ context.Context, evt *event.CommandStartedEvent) {
			if !verbose {
				return
			}
			logger.Debug().
				Str("command", evt.CommandName).
				Str("database", evt.DatabaseName).
				Int64("request_id", evt.RequestID).
				Str("body", evt.Command.String()).
				Msg("mongo command started")
		},
		Succeeded: func(ctx context.Context, evt *event.CommandSucceededEvent) {
			switch {
			case slowThreshold > 0 && evt.Duration > slowThreshold:
				commandLogger(ctx, &logger).Warn().
					Str("command", evt.CommandName).
					Dur("duration", evt.Duration).
					Dur("threshold", slowThreshold).
					Msg("slow mongo command")
			case verbose:
				logger.Debug().
					Str("command", evt.CommandName).
					Int64("request_id", evt.RequestID).
					Dur("duration", evt.Duration).
					Msg("mongo command succeeded")
			}
		},
		Failed: func(ctx context.Context, evt *event.CommandFailedEvent) {
			commandLogger(ctx, &logger).Warn().
				Str("command", evt.CommandName).
				Int64("request_id", evt.RequestID).
				Dur("duration", evt.Duration).
				Str("failure", evt.Failure).
				Msg("mongo command failed")
		},
	}
}

// NewMongo connects to MongoDB, attaches monitoring and pings the primary.
func NewMongo(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) (*Mongo, error) {
	monitorLogger := loggerConfig.NewMongoLogger(logger.GetLevel())
	monitor := commandMonitor(
		monitorLogger,
		cfg.Observability.Logging.SlowQueryThreshold,
		cfg.Primary.Env == "local",
	)

	// nrmongo wraps our monitor so both see every command.
	if loggerService.GetApplication() != nil {
		monitor = nrmongo.NewCommandMonitor(monitor)
	}

	clientOpts := options.Client().
		ApplyURI(cfg.Database.MongoURI).
		SetMonitor(monitor)

	if cfg.Database.MaxOpenConns > 0 {
		clientOpts.SetMaxPoolSize(uint64(cfg.Database.MaxOpenConns))
	}
	if cfg.Database.MaxIdleConns > 0 {
		clientOpts.SetMinPoolSize(uint64(cfg.Database.MaxIdleConns))
	}
	if cfg.Database.ConnMaxIdleTime > 0 {
		clientOpts.SetMaxConnIdleTime(time.Duration(cfg.Database.ConnMaxIdleTime) * time.Second)
	}

	ctx, cancel := context.WithTimeout(context.Background(), DatabasePingTimeout*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	m := &Mongo{
		Client: client,
		DB:     client.Database(cfg.Database.Name),
		log:    logger,
	}

	if err := m.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	logger.Info().
		Str("driver", config.DriverMongo).
		Str("database", cfg.Database.Name).
		Msg("connected to the database")

	return m, nil
}

// EnsureIndexes creates the secondary indexes the repositories rely on.
// CreateOne is a no-op when an identical index already exists.
func (m *Mongo) EnsureIndexes(ctx context.Context) error {
	_, err := m.DB.Collection(ItemsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "owner", Value: 1}},
		Options: options.Index().SetName("owner_1"),
	})
	if err != nil {
		return fmt.Errorf("creating %s indexes: %w", ItemsCollection, err)
	}
	return nil
}

// Ping checks the primary is reachable.
func (m *Mongo) Ping(ctx context.Context) error {
	return m.Client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client, waiting for in-flight operations until ctx ends.
func (m *Mongo) Close(ctx context.Context) error {
	m.log.Info().Msg("closing mongo client")
	return m.Client.Disconnect(ctx)
}
