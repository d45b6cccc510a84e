package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_DRIVER", "BACKUP_DRIVER", "SESSION_IDLE", "BACKUP_RETENTION_DAYS", "CONFIG_FILE"} {
		t.Setenv(k, "")
	}
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != "8080" || cfg.DBDriver != "mysql" || cfg.BackupDriver != "fs" {
		t.Errorf("defaults = %+v", cfg)
	}
	if cfg.SessionIdle != 2*time.Hour {
		t.Errorf("SessionIdle = %v", cfg.SessionIdle)
	}
	if cfg.BackupRetention() != 30*24*time.Hour {
		t.Errorf("BackupRetention = %v", cfg.BackupRetention())
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SESSION_IDLE", "15m")
	t.Setenv("S3_BUCKET", "farm-backups")
	t.Setenv("BACKUP_RETENTION_DAYS", "7")
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != "9090" || cfg.DBDriver != "sqlite" || cfg.S3Bucket != "farm-backups" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.SessionIdle != 15*time.Minute || cfg.BackupRetentionDays != 7 {
		t.Errorf("SessionIdle = %v, retention = %d", cfg.SessionIdle, cfg.BackupRetentionDays)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edgewater.yaml")
	if err := os.WriteFile(path, []byte("app_name: Greenhouse\nauth_type: key\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_FILE", path)
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.AppName != "Greenhouse" || cfg.AuthType != "key" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestDialector(t *testing.T) {
	for _, driver := range []string{"", "mysql", "postgres", "sqlite"} {
		if _, err := Dialector(driver); err != nil {
			t.Errorf("Dialector(%q): %v", driver, err)
		}
	}
	if _, err := Dialector("oracle"); err == nil {
		t.Error("Dialector(oracle): want error")
	}
}

func TestMySQLDSN(t *testing.T) {
	t.Setenv("MYSQL_DSN", "")
	t.Setenv("MYSQL_USER", "farm")
	t.Setenv("MYSQL_PASSWORD", "pw")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "")
	t.Setenv("MYSQL_DATABASE", "edgewater")
	want := "farm:pw@tcp(db:3306)/edgewater?parseTime=true&charset=utf8mb4&loc=Local&multiStatements=true"
	if got := MySQLDSN(); got != want {
		t.Errorf("MySQLDSN = %s", got)
	}
}

func TestSchedule(t *testing.T) {
	if got := Schedule("backup"); got != "@daily" {
		t.Errorf("Schedule(backup) = %s", got)
	}
	t.Setenv("CRON_BACKUP", "0 2 * * *")
	if got := Schedule("backup"); got != "0 2 * * *" {
		t.Errorf("override = %s", got)
	}
}
