package config

import (
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"

	"github.com/iasolb/EdgewaterInventoryManager/core/logger"
)

// AppConfig holds the process configuration after LoadAppConfig.
var AppConfig *Config
var once sync.Once

type Config struct {
	AppName string `mapstructure:"app_name"`
	Port    string `mapstructure:"port"`
	Env     string `mapstructure:"app_env"`
	Debug   bool   `mapstructure:"debug"`

	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
	LogFile   string `mapstructure:"log_file"`

	DBDriver   string `mapstructure:"db_driver"`
	SQLitePath string `mapstructure:"sqlite_path"`

	RedisAddr    string `mapstructure:"redis_addr"`
	RedisPass    string `mapstructure:"redis_pass"`
	CacheChannel string `mapstructure:"cache_channel"`
	// SessionIdle is how long an unused view cache session is kept.
	SessionIdle time.Duration `mapstructure:"session_idle"`

	AuthType string `mapstructure:"auth_type"`

	BackupDriver        string `mapstructure:"backup_driver"`
	BackupPath          string `mapstructure:"backup_path"`
	BackupPrefix        string `mapstructure:"backup_prefix"`
	BackupRetentionDays int    `mapstructure:"backup_retention_days"`
	S3Bucket            string `mapstructure:"s3_bucket"`
	S3Region            string `mapstructure:"s3_region"`
	S3Endpoint          string `mapstructure:"s3_endpoint"`
	S3PathStyle         bool   `mapstructure:"s3_path_style"`
}

var defaults = map[string]any{
	"app_name":              "Edgewater Inventory",
	"port":                  "8080",
	"app_env":               "development",
	"debug":                 false,
	"log_level":             "info",
	"log_format":            "text",
	"log_file":              "stdout",
	"db_driver":             "mysql",
	"sqlite_path":           "edgewater.db",
	"cache_channel":         "edgewater:invalidate",
	"session_idle":          "2h",
	"auth_type":             "basic",
	"backup_driver":         "fs",
	"backup_path":           "backups",
	"backup_prefix":         "edgewater",
	"backup_retention_days": 30,
	"s3_region":             "us-east-1",
}

// Load reads defaults, an optional CONFIG_FILE and the environment
// (upper-case keys, e.g. DB_DRIVER).
func Load() (*Config, error) {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
		_ = v.BindEnv(k, strings.ToUpper(k))
	}
	_ = v.BindEnv("redis_addr", "REDIS_ADDR")
	_ = v.BindEnv("redis_pass", "REDIS_PASS")
	_ = v.BindEnv("s3_bucket", "S3_BUCKET")
	_ = v.BindEnv("s3_endpoint", "S3_ENDPOINT")
	_ = v.BindEnv("s3_path_style", "S3_PATH_STYLE")
	if file := GetEnv("CONFIG_FILE", ""); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadAppConfig initializes AppConfig once. A broken config file is logged
// and the defaults are used.
func LoadAppConfig() *Config {
	once.Do(func() {
		cfg, err := Load()
		if err != nil {
			logger.Default().Error("load config failed, using defaults", "error", err)
			cfg = &Config{}
			_ = viperDefaults().Unmarshal(cfg)
		}
		AppConfig = cfg
	})
	return AppConfig
}

func viperDefaults() *viper.Viper {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	return v
}

// LoggerConfig maps the logging keys onto a logger.Config.
func (c *Config) LoggerConfig() logger.Config {
	return logger.Config{Level: logger.Level(c.LogLevel), Format: c.LogFormat, Output: c.LogFile}
}

// BackupRetention is the configured retention as a duration.
func (c *Config) BackupRetention() time.Duration {
	return time.Duration(c.BackupRetentionDays) * 24 * time.Hour
}
