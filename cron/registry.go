package cron

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/iasolb/EdgewaterInventoryManager/core/registry"
)

// Job is one named maintenance task. Run receives a context that is cancelled
// when the scheduler stops.
type Job struct {
	Name     string
	Schedule string
	Run      func(ctx context.Context) error
}

var mu sync.Mutex

// Register adds a job under a lower-case name. The schedule is parsed here so
// a bad CRON_* override fails at startup rather than when Start runs.
// Panics if the registry is locked, the name is taken or the schedule is invalid.
func Register(name, schedule string, run func(ctx context.Context) error) {
	mu.Lock()
	defer mu.Unlock()
	name = strings.ToLower(strings.TrimSpace(name))
	if registry.GlobalRegistry.IsLocked(registry.KeyRegistryCron) {
		panic("cron: register after the scheduler started: " + name)
	}
	if _, err := cron.ParseStandard(schedule); err != nil {
		panic("cron: job " + name + ": " + err.Error())
	}
	jobs := jobMap()
	if _, ok := jobs[name]; ok {
		panic("cron: duplicate job " + name)
	}
	jobs[name] = Job{Name: name, Schedule: schedule, Run: run}
	registry.GlobalRegistry.SetGlobal(registry.KeyRegistryCron, jobs)
}

// Unregister removes a job and reopens the registry.
func Unregister(name string) {
	mu.Lock()
	defer mu.Unlock()
	registry.GlobalRegistry.UnlockForTesting(registry.KeyRegistryCron)
	jobs := jobMap()
	delete(jobs, strings.ToLower(name))
	registry.GlobalRegistry.SetGlobal(registry.KeyRegistryCron, jobs)
}

func jobMap() map[string]Job {
	if v, ok := registry.GlobalRegistry.GetGlobal(registry.KeyRegistryCron); ok && v != nil {
		return v.(map[string]Job)
	}
	return make(map[string]Job)
}

// Lookup finds a job by name, ignoring case.
func Lookup(name string) (Job, bool) {
	mu.Lock()
	defer mu.Unlock()
	j, ok := jobMap()[strings.ToLower(strings.TrimSpace(name))]
	return j, ok
}

// Jobs returns the registered jobs sorted by name and locks the registry.
func Jobs() []Job {
	mu.Lock()
	defer mu.Unlock()
	jobs := jobMap()
	out := make([]Job, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, j)
	}
	sort.Slice(out, func(i, k int) bool { return out[i].Name < out[k].Name })
	registry.GlobalRegistry.Lock(registry.KeyRegistryCron)
	return out
}
