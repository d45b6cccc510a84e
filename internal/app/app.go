// Package app wires configuration, database, cache and services for the
// server and the CLI.
package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/iasolb/EdgewaterInventoryManager/config"
	"github.com/iasolb/EdgewaterInventoryManager/core/cache"
	"github.com/iasolb/EdgewaterInventoryManager/core/logger"
	"github.com/iasolb/EdgewaterInventoryManager/service/backup"
	"github.com/iasolb/EdgewaterInventoryManager/service/farm"
)

type App struct {
	Config   *config.Config
	Log      *logger.Logger
	DB       *gorm.DB
	Redis    *redis.Client
	Sessions *cache.Sessions
	Farm     *farm.Service

	bus cache.Bus
}

// Open connects to the database and, when REDIS_ADDR is set and reachable,
// to the invalidation bus.
func Open(ctx context.Context) (*App, error) {
	cfg := config.LoadAppConfig()
	log := logger.New(cfg.LoggerConfig())
	logger.SetDefault(log)

	db, err := config.NewDB()
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}
	return New(ctx, cfg, db, log), nil
}

// New builds an App over an open database.
func New(ctx context.Context, cfg *config.Config, db *gorm.DB, log *logger.Logger) *App {
	a := &App{Config: cfg, Log: log, DB: db, Sessions: cache.NewSessions(log), bus: cache.NopBus{}}
	if client := config.InitRedis(); client != nil {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Warn("redis configured but not reachable, invalidations stay local", "error", err)
			_ = client.Close()
		} else {
			a.Redis = client
			a.bus = cache.NewRedisBus(client, cfg.CacheChannel, log)
			log.Info("redis connection successful")
		}
	}
	a.Farm = farm.New(db, log, &cache.Invalidator{Sessions: a.Sessions, Bus: a.bus, Log: log})
	return a
}

// Subscribe applies invalidations published by other processes until ctx is done.
func (a *App) Subscribe(ctx context.Context) error {
	rb, ok := a.bus.(*cache.RedisBus)
	if !ok {
		return nil
	}
	return rb.Subscribe(ctx, a.Sessions)
}

// Backup returns the backup service for the configured blob driver.
func (a *App) Backup(ctx context.Context) (*backup.Service, error) {
	var blob backup.Blob
	switch strings.ToLower(a.Config.BackupDriver) {
	case "", "fs":
		fsb, err := backup.NewFSBlob(a.Config.BackupPath)
		if err != nil {
			return nil, err
		}
		blob = fsb
	case "s3":
		s3b, err := backup.NewS3Blob(ctx, backup.S3Config{
			Bucket:    a.Config.S3Bucket,
			Region:    a.Config.S3Region,
			Endpoint:  a.Config.S3Endpoint,
			PathStyle: a.Config.S3PathStyle,
		})
		if err != nil {
			return nil, err
		}
		blob = s3b
	default:
		return nil, fmt.Errorf("unsupported BACKUP_DRIVER %q", a.Config.BackupDriver)
	}
	return backup.New(a.DB, blob, backup.Options{
		Prefix:    a.Config.BackupPrefix,
		Retention: a.Config.BackupRetention(),
		Log:       a.Log,
	}), nil
}

func (a *App) Close() {
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
