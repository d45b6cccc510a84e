package cron

import (
	"context"
	"time"

	"github.com/iasolb/EdgewaterInventoryManager/config"
	"github.com/iasolb/EdgewaterInventoryManager/core/cache"
	"github.com/iasolb/EdgewaterInventoryManager/core/logger"
	"github.com/iasolb/EdgewaterInventoryManager/service/backup"
	"github.com/iasolb/EdgewaterInventoryManager/service/farm"
)

// Job names.
const (
	JobPruneSessions = "prune_sessions"
	JobBackup        = "backup"
	JobTableStats    = "table_stats"
)

// Deps is what the built-in jobs operate on. A nil Backup skips the backup job.
type Deps struct {
	Farm        *farm.Service
	Sessions    *cache.Sessions
	Backup      *backup.Service
	SessionIdle time.Duration
	Log         *logger.Logger
}

// RegisterBuiltins registers the session, backup and stats jobs with their
// configured schedules.
func RegisterBuiltins(d Deps) {
	log := d.Log
	if log == nil {
		log = logger.Default()
	}
	log = log.WithComponent("cron")
	if d.Sessions != nil {
		Register(JobPruneSessions, config.Schedule(JobPruneSessions), func(context.Context) error {
			PruneSessions(d.Sessions, d.SessionIdle, log)
			return nil
		})
	}
	if d.Backup != nil {
		Register(JobBackup, config.Schedule(JobBackup), func(ctx context.Context) error {
			return RunBackup(ctx, d.Backup, log)
		})
	}
	if d.Farm != nil {
		Register(JobTableStats, config.Schedule(JobTableStats), func(ctx context.Context) error {
			LogTableStats(ctx, d.Farm, log)
			return nil
		})
	}
}

func PruneSessions(sessions *cache.Sessions, idle time.Duration, log *logger.Logger) int {
	if idle <= 0 {
		idle = 2 * time.Hour
	}
	n := sessions.Prune(idle)
	log.Debug("sessions pruned", "pruned", n, "live", sessions.Len())
	return n
}

// RunBackup takes a snapshot and then applies retention.
func RunBackup(ctx context.Context, svc *backup.Service, log *logger.Logger) error {
	snap, err := svc.Run(ctx)
	if err != nil {
		log.Error("backup failed", "error", err)
		return err
	}
	pruned, err := svc.Prune(ctx)
	if err != nil {
		log.Error("backup prune failed", "stamp", snap.Stamp, "error", err)
		return err
	}
	log.Info("backup complete", "stamp", snap.Stamp, "tables", len(snap.Tables), "pruned", len(pruned))
	return nil
}

func LogTableStats(ctx context.Context, svc *farm.Service, log *logger.Logger) {
	var total int64
	for _, s := range svc.Stats(ctx) {
		if s.Err != "" {
			log.Warn("table stat failed", "table", s.Table, "error", s.Err)
			continue
		}
		total += s.Rows
	}
	log.Info("table stats", "rows", total)
}
