package jobs

import (
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/robfig/cron/v3"
)

// PendingCounter reports bookings held only by the fallback store, per
// enterprise.
type PendingCounter interface {
	PendingLocal() map[string]int
}

// Scheduler runs the periodic maintenance jobs.
type Scheduler struct {
	cron *cron.Cron
}

// NewScheduler registers the fallback backlog report on schedule, a standard
// five-field cron expression. An empty schedule disables the report.
func NewScheduler(schedule string, pending PendingCounter) (*Scheduler, error) {
	c := cron.New()
	if strings.TrimSpace(schedule) != "" {
		if _, err := c.AddFunc(schedule, func() { ReportFallbackBacklog(pending) }); err != nil {
			return nil, fmt.Errorf("invalid fallback report schedule %q: %w", schedule, err)
		}
	}
	return &Scheduler{cron: c}, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// Entries returns the number of registered jobs.
func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}

// ReportFallbackBacklog logs one line per enterprise that has bookings which
// exist only in memory and would be lost on restart. It returns the total.
func ReportFallbackBacklog(pending PendingCounter) int {
	counts := pending.PendingLocal()
	if len(counts) == 0 {
		return 0
	}

	enterprises := make([]string, 0, len(counts))
	for e := range counts {
		enterprises = append(enterprises, e)
	}
	sort.Strings(enterprises)

	total := 0
	for _, e := range enterprises {
		total += counts[e]
		log.Printf("WARN fallback: %d booking(s) for %s held in memory only", counts[e], e)
	}
	return total
}
