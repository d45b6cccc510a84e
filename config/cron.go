package config

import "strings"

// CronSchedules maps job names to their schedule. CRON_<NAME> overrides.
var CronSchedules = map[string]string{
	"prune_sessions": "@every 10m",
	"backup":         "@daily",
	"table_stats":    "@hourly",
}

// Schedule returns the schedule for job, honouring the environment override.
func Schedule(job string) string {
	return GetEnv("CRON_"+strings.ToUpper(job), CronSchedules[job])
}
