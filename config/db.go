package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Dialector picks the gorm driver for DB_DRIVER.
func Dialector(driver string) (gorm.Dialector, error) {
	switch strings.ToLower(driver) {
	case "", "mysql":
		return mysql.Open(MySQLDSN()), nil
	case "postgres", "postgresql":
		dsn := os.Getenv("POSTGRES_DSN")
		if dsn == "" {
			dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
				GetEnv("DB_HOST", "localhost"), GetEnv("DB_PORT", "5432"), os.Getenv("POSTGRES_USER"),
				os.Getenv("POSTGRES_PASSWORD"), os.Getenv("POSTGRES_DB"), GetEnv("POSTGRES_SSLMODE", "disable"))
		}
		return postgres.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(GetEnv("SQLITE_PATH", "edgewater.db")), nil
	}
	return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
}

// MySQLDSN returns MYSQL_DSN or builds one from the split variables.
func MySQLDSN() string {
	if dsn := os.Getenv("MYSQL_DSN"); dsn != "" {
		return dsn
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&charset=%s&loc=Local&multiStatements=true",
		os.Getenv("MYSQL_USER"), os.Getenv("MYSQL_PASSWORD"), GetEnv("DB_HOST", "localhost"),
		GetEnv("DB_PORT", "3306"), os.Getenv("MYSQL_DATABASE"), GetEnv("DB_CHARSET", "utf8mb4"))
}

func NewDB() (*gorm.DB, error) {
	dialector, err := Dialector(LoadAppConfig().DBDriver)
	if err != nil {
		return nil, err
	}

	logMode := logger.Info
	if os.Getenv("GORM_LOG") == "off" {
		logMode = logger.Silent
	}
	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logMode,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, err
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
	}
	return db, nil
}
