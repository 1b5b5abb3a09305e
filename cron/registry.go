package cron

import (
	"sync"

	"productimport.GO/core/registry"
)

// Job is a named schedule. Run gets the extra arguments of cron:start --job.
type Job struct {
	Name     string
	Schedule string
	Run      func(...string)
}

var mu sync.Mutex

// Register adds a job. Call from init(); panics on a duplicate name or once
// the jobs were read.
func Register(name string, schedule string, run func(...string)) {
	mu.Lock()
	defer mu.Unlock()
	for _, j := range registry.List[Job](registry.GlobalRegistry, registry.KeyRegistryCron) {
		if j.Name == name {
			panic("cron: duplicate job " + name)
		}
	}
	if err := registry.Append(registry.GlobalRegistry, registry.KeyRegistryCron, Job{Name: name, Schedule: schedule, Run: run}); err != nil {
		panic("cron: " + err.Error())
	}
}

// Unregister removes a job and reopens the registry.
func Unregister(name string) {
	mu.Lock()
	defer mu.Unlock()
	registry.GlobalRegistry.UnlockForTesting(registry.KeyRegistryCron)
	registry.Remove(registry.GlobalRegistry, registry.KeyRegistryCron, func(j Job) bool { return j.Name == name })
}

// Jobs returns the registered jobs by name. Registration is closed after the
// first call.
func Jobs() map[string]Job {
	out := map[string]Job{}
	for _, j := range registry.Seal[Job](registry.GlobalRegistry, registry.KeyRegistryCron) {
		out[j.Name] = j
	}
	return out
}
