package app

import (
	"context"
	"fmt"
	"time"

	"hireflow/internal/config"
	"hireflow/internal/database"
	"hireflow/internal/database/migration"
	dbpostgres "hireflow/internal/database/postgres"
	"hireflow/internal/infrastructure/cache"
	"hireflow/internal/notification"
	"hireflow/internal/ws"

	"go.uber.org/zap"
)

// Container holds the process-wide infrastructure: everything that has
// a lifecycle beyond a single request.
type Container struct {
	Config     config.Config
	Logger     *zap.Logger
	DB         database.DB
	Cache      *cache.Redis
	Dispatcher *notification.Dispatcher
	Hub        *ws.Hub
}

func NewContainer(cfg config.Config, log *zap.Logger) (*Container, error) {
	if log == nil {
		log = zap.NewNop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	if cfg.Database.MigrationsDir != "" {
		runner := migration.Runner{Dir: cfg.Database.MigrationsDir}
		if err := runner.Run(ctx, db.SQLDB()); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
	}

	redisCache := cache.NewRedis(cfg.Redis, log)

	sink := notification.NewSMTPSink(cfg.SMTP)
	dispatcher := notification.NewDispatcher(sink, redisCache, log)

	hub := ws.NewHub(log)

	return &Container{
		Config:     cfg,
		Logger:     log,
		DB:         db,
		Cache:      redisCache,
		Dispatcher: dispatcher,
		Hub:        hub,
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
