package sim

import (
	"fmt"
	"strings"
)

// Config selects kernel policies. The zero value is a valid FCFS kernel.
type Config struct {
	Scheduler string // "fcfs" (default), "priority", "priority-preemptive", "rr"
}

// Validate checks that the scheduler name is recognized.
func (c Config) Validate() error {
	if !IsValidScheduler(c.Scheduler) {
		return fmt.Errorf("unknown scheduler %q; valid schedulers: %s", c.Scheduler, strings.Join(SchedulerNames(), ", "))
	}
	return nil
}
