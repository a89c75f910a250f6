// Package app wires configuration, storage, messaging, and handlers into
// a single container consumed by the CLI and the worker.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	habitCommands "github.com/tendhq/tend/internal/habits/application/commands"
	habitQueries "github.com/tendhq/tend/internal/habits/application/queries"
	habitsDomain "github.com/tendhq/tend/internal/habits/domain"
	habitPersistence "github.com/tendhq/tend/internal/habits/infrastructure/persistence"
	insightQueries "github.com/tendhq/tend/internal/insights/application/queries"
	insightCache "github.com/tendhq/tend/internal/insights/infrastructure/cache"
	journalCommands "github.com/tendhq/tend/internal/journal/application/commands"
	journalDomain "github.com/tendhq/tend/internal/journal/domain"
	journalPersistence "github.com/tendhq/tend/internal/journal/infrastructure/persistence"
	sharedApplication "github.com/tendhq/tend/internal/shared/application"
	sharedDomain "github.com/tendhq/tend/internal/shared/domain"
	"github.com/tendhq/tend/internal/shared/infrastructure/database"
	"github.com/tendhq/tend/internal/shared/infrastructure/eventbus"
	"github.com/tendhq/tend/internal/shared/infrastructure/migrations"
	"github.com/tendhq/tend/internal/shared/infrastructure/outbox"
	sharedPersistence "github.com/tendhq/tend/internal/shared/infrastructure/persistence"
	"github.com/tendhq/tend/pkg/config"
)

// Container holds all application dependencies.
type Container struct {
	Config *config.Config
	Logger *slog.Logger
	Clock  sharedDomain.Clock

	// Storage
	SQLiteDB    *sql.DB
	PostgresDB  *pgxpool.Pool
	RedisClient *redis.Client

	// Repositories
	HabitRepo      habitsDomain.Repository
	GoalRepo       journalDomain.GoalRepository
	DeedRepo       journalDomain.DeedRepository
	ReflectionRepo journalDomain.ReflectionRepository
	OutboxRepo     outbox.Repository

	// Messaging
	EventPublisher  eventbus.Publisher
	OutboxProcessor *outbox.Processor

	// Unit of Work
	UnitOfWork sharedApplication.UnitOfWork

	// Habit command handlers
	CreateHabitHandler    *habitCommands.CreateHabitHandler
	SetStatusHandler      *habitCommands.SetStatusHandler
	UpdateReminderHandler *habitCommands.UpdateReminderHandler
	ArchiveHabitHandler   *habitCommands.ArchiveHabitHandler

	// Habit query handlers
	ListHabitsHandler *habitQueries.ListHabitsHandler
	GetHabitHandler   *habitQueries.GetHabitHandler

	// Journal command handlers
	AddGoalHandler         *journalCommands.AddGoalHandler
	CompleteGoalHandler    *journalCommands.CompleteGoalHandler
	RecordDeedHandler      *journalCommands.RecordDeedHandler
	WriteReflectionHandler *journalCommands.WriteReflectionHandler

	// Insight query handlers
	GetHabitStatsHandler    *insightQueries.GetHabitStatsHandler
	GetPeriodSummaryHandler *insightQueries.GetPeriodSummaryHandler
}

// NewContainer builds the container for the configured driver.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	if cfg.UsesPostgres() {
		return NewServerContainer(ctx, cfg, logger)
	}
	return NewLocalContainer(ctx, cfg, logger)
}

// NewLocalContainer creates a container backed by SQLite. This provides
// zero-config operation without PostgreSQL, Redis, or RabbitMQ.
func NewLocalContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	c := &Container{
		Config: cfg,
		Logger: logger,
		Clock:  sharedDomain.SystemClock{},
	}

	db, err := database.OpenSQLite(ctx, cfg.SQLitePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite: %w", err)
	}
	c.SQLiteDB = db

	if err := migrations.RunSQLiteMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	c.HabitRepo = habitPersistence.NewSQLiteHabitRepository(db)
	c.GoalRepo = journalPersistence.NewSQLiteGoalRepository(db)
	c.DeedRepo = journalPersistence.NewSQLiteDeedRepository(db)
	c.ReflectionRepo = journalPersistence.NewSQLiteReflectionRepository(db)
	c.OutboxRepo = outbox.NewSQLiteRepository(db)
	c.UnitOfWork = sharedPersistence.NewSQLiteUnitOfWork(db)

	// Events stay in the outbox table in local mode.
	c.EventPublisher = eventbus.NewNoopPublisher(logger)

	c.wireHandlers(nil)
	return c, nil
}

// NewServerContainer creates a container backed by PostgreSQL with Redis
// caching and a RabbitMQ event publisher.
func NewServerContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	c := &Container{
		Config: cfg,
		Logger: logger,
		Clock:  sharedDomain.SystemClock{},
	}

	pool, err := database.NewPostgresPool(ctx, cfg.DatabaseURL, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	c.PostgresDB = pool
	logger.Info("connected to database")

	if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Redis is optional in development.
	var summaryCache insightQueries.SummaryCache
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			if !cfg.IsDevelopment() {
				pool.Close()
				return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
			}
			logger.Warn("invalid Redis URL, summaries will not be cached", "error", err)
		} else {
			client := redis.NewClient(opt)
			if err := client.Ping(ctx).Err(); err != nil {
				if !cfg.IsDevelopment() {
					pool.Close()
					return nil, fmt.Errorf("failed to connect to Redis: %w", err)
				}
				logger.Warn("Redis not available, summaries will not be cached", "error", err)
			} else {
				c.RedisClient = client
				summaryCache = insightCache.NewRedisSummaryCache(client, cfg.SummaryCacheTTL, logger)
				logger.Info("connected to Redis")
			}
		}
	}

	c.HabitRepo = habitPersistence.NewPostgresHabitRepository(pool)
	c.GoalRepo = journalPersistence.NewPostgresGoalRepository(pool)
	c.DeedRepo = journalPersistence.NewPostgresDeedRepository(pool)
	c.ReflectionRepo = journalPersistence.NewPostgresReflectionRepository(pool)
	c.OutboxRepo = outbox.NewPostgresRepository(pool)
	c.UnitOfWork = sharedPersistence.NewPostgresUnitOfWork(pool)

	publisher, err := eventbus.NewRabbitMQPublisher(cfg.RabbitMQURL, logger)
	if err != nil {
		// Fall back to noop publisher in development.
		if cfg.IsDevelopment() {
			logger.Warn("RabbitMQ not available, using noop publisher")
			c.EventPublisher = eventbus.NewNoopPublisher(logger)
		} else {
			pool.Close()
			return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
		}
	} else {
		c.EventPublisher = publisher
	}

	c.wireHandlers(summaryCache)
	return c, nil
}

func (c *Container) wireHandlers(summaryCache insightQueries.SummaryCache) {
	c.CreateHabitHandler = habitCommands.NewCreateHabitHandler(c.HabitRepo, c.OutboxRepo, c.UnitOfWork)
	c.SetStatusHandler = habitCommands.NewSetStatusHandler(c.HabitRepo, c.OutboxRepo, c.UnitOfWork, c.Clock)
	c.UpdateReminderHandler = habitCommands.NewUpdateReminderHandler(c.HabitRepo, c.OutboxRepo, c.UnitOfWork)
	c.ArchiveHabitHandler = habitCommands.NewArchiveHabitHandler(c.HabitRepo, c.OutboxRepo, c.UnitOfWork)

	c.ListHabitsHandler = habitQueries.NewListHabitsHandler(c.HabitRepo)
	c.GetHabitHandler = habitQueries.NewGetHabitHandler(c.HabitRepo)

	c.AddGoalHandler = journalCommands.NewAddGoalHandler(c.GoalRepo, c.OutboxRepo, c.UnitOfWork)
	c.CompleteGoalHandler = journalCommands.NewCompleteGoalHandler(c.GoalRepo, c.OutboxRepo, c.UnitOfWork, c.Clock)
	c.RecordDeedHandler = journalCommands.NewRecordDeedHandler(c.DeedRepo, c.OutboxRepo, c.UnitOfWork, c.Clock)
	c.WriteReflectionHandler = journalCommands.NewWriteReflectionHandler(c.ReflectionRepo, c.OutboxRepo, c.UnitOfWork, c.Clock)

	c.GetHabitStatsHandler = insightQueries.NewGetHabitStatsHandler(c.HabitRepo)
	c.GetPeriodSummaryHandler = insightQueries.NewGetPeriodSummaryHandler(
		c.HabitRepo,
		c.GoalRepo,
		c.DeedRepo,
		c.ReflectionRepo,
		summaryCache,
		c.Clock,
		c.Logger,
	)
}

// StartOutboxProcessor creates and starts the outbox processor.
func (c *Container) StartOutboxProcessor(ctx context.Context) {
	processorConfig := outbox.ProcessorConfig{
		PollInterval:     c.Config.OutboxPollInterval,
		BatchSize:        c.Config.OutboxBatchSize,
		MaxRetries:       c.Config.OutboxMaxRetries,
		RetryBackoffBase: outbox.DefaultProcessorConfig().RetryBackoffBase,
		RetryBackoffMax:  outbox.DefaultProcessorConfig().RetryBackoffMax,
	}
	c.OutboxProcessor = outbox.NewProcessor(c.OutboxRepo, c.EventPublisher, processorConfig, c.Logger)
	c.OutboxProcessor.Start(ctx)
}

// Close cleans up all resources.
func (c *Container) Close() {
	if c.OutboxProcessor != nil {
		c.OutboxProcessor.Stop()
	}

	if c.EventPublisher != nil {
		if err := c.EventPublisher.Close(); err != nil {
			c.Logger.Warn("error closing event publisher", "error", err)
		}
	}

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			c.Logger.Warn("error closing Redis connection", "error", err)
		}
	}

	if c.PostgresDB != nil {
		c.PostgresDB.Close()
		c.Logger.Info("PostgreSQL connection closed")
	}

	if c.SQLiteDB != nil {
		if err := c.SQLiteDB.Close(); err != nil {
			c.Logger.Warn("error closing SQLite connection", "error", err)
		}
	}
}
