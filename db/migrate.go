// Package db creates the schema: versioned SQL migrations on MySQL,
// AutoMigrate elsewhere, then the v_ views.
package db

import (
	"context"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/gorm"

	"github.com/iasolb/EdgewaterInventoryManager/core/logger"
	"github.com/iasolb/EdgewaterInventoryManager/model/entity"
	"github.com/iasolb/EdgewaterInventoryManager/model/view"
)

//go:embed migrations/mysql/*.sql
var mysqlMigrations embed.FS

// Migrate brings the schema up to date and recreates the views.
func Migrate(ctx context.Context, db *gorm.DB, log *logger.Logger) error {
	if log == nil {
		log = logger.Default()
	}
	log = log.WithComponent("migrate")
	dialect := db.Dialector.Name()
	if dialect == "mysql" {
		if err := migrateMySQL(db, log); err != nil {
			return err
		}
	} else {
		if err := db.WithContext(ctx).AutoMigrate(entity.Schema()...); err != nil {
			return fmt.Errorf("auto migrate: %w", err)
		}
		log.Info("tables migrated", "dialect", dialect, "tables", len(entity.Schema()))
	}
	if err := view.NewBuilder(db).CreateViews(ctx); err != nil {
		return err
	}
	log.Info("views created", "views", len(entity.All())-len(entity.Tables()))
	return nil
}

func migrateMySQL(db *gorm.DB, log *logger.Logger) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	src, err := iofs.New(mysqlMigrations, "migrations/mysql")
	if err != nil {
		return fmt.Errorf("migration source: %w", err)
	}
	driver, err := migratemysql.WithInstance(sqlDB, &migratemysql.Config{})
	if err != nil {
		return fmt.Errorf("migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "mysql", driver)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}
	version, dirty, _ := m.Version()
	log.Info("mysql migrations applied", "version", version, "dirty", dirty)
	return nil
}
