package dispatch

import (
	"sync"
	"time"
)

// Timer is a pending one-shot callback.
type Timer interface {
	// Stop prevents the callback from firing. It returns false if the
	// callback already fired or was already stopped.
	Stop() bool
}

// Scheduler runs callbacks after a delay. The default implementation uses
// system timers. Tests inject a fake scheduler to fire timers deterministically.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// systemScheduler uses time.AfterFunc and posts the callback through Run.
type systemScheduler struct{}

func (systemScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, func() { Run(f) })
}

var (
	schedulerMu sync.RWMutex
	scheduler   Scheduler = systemScheduler{}
)

// System returns the scheduler backed by system timers.
func System() Scheduler { return systemScheduler{} }

// SetDefault replaces the package-level scheduler used when a caller does not
// supply one. Returns the previous scheduler so callers can restore it during
// cleanup. Passing nil restores the system scheduler.
func SetDefault(s Scheduler) Scheduler {
	schedulerMu.Lock()
	defer schedulerMu.Unlock()
	prev := scheduler
	if s == nil {
		s = systemScheduler{}
	}
	scheduler = s
	return prev
}

// Default returns the active package-level scheduler.
func Default() Scheduler {
	schedulerMu.RLock()
	defer schedulerMu.RUnlock()
	return scheduler
}
