// Package scheduler runs Hearth's background jobs: the fixed-interval
// reminder tick and the daily cooking pre-generation.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// JobHandler is the function executed for a job. Errors are recorded
// in the job's counters and never propagate out of the scheduler.
type JobHandler func(ctx context.Context) error

// ScheduleType is how a job's next run is computed
type ScheduleType string

const (
	ScheduleInterval ScheduleType = "interval" // Every fixed duration
	ScheduleDaily    ScheduleType = "daily"    // Once a day at HH:MM local
)

// Schedule defines when a job runs
type Schedule struct {
	Type     ScheduleType  `json:"type"`
	Interval time.Duration `json:"interval,omitempty"` // For interval jobs
	At       string        `json:"at,omitempty"`       // "HH:MM" for daily jobs
}

// Job is a registered background job
type Job struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Schedule  Schedule      `json:"schedule"`
	Handler   JobHandler    `json:"-"`
	Timeout   time.Duration `json:"timeout"`
	LastRun   *time.Time    `json:"last_run,omitempty"`
	NextRun   *time.Time    `json:"next_run,omitempty"`
	RunCount  int64         `json:"run_count"`
	ErrCount  int64         `json:"error_count"`
	LastError string        `json:"last_error,omitempty"`
}

// Scheduler drives registered jobs, one goroutine per job
type Scheduler struct {
	jobs    map[string]*Job
	mu      sync.RWMutex
	wg      sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc
	started bool
	loc     *time.Location
}

// New creates a scheduler in the given timezone ("Local" or an IANA
// name). An unknown timezone falls back to time.Local.
func New(timezone string) *Scheduler {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.Local
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		jobs:   make(map[string]*Job),
		ctx:    ctx,
		cancel: cancel,
		loc:    loc,
	}
}

// Register adds a job. Registering after Start launches it immediately.
func (s *Scheduler) Register(job *Job) error {
	if job.ID == "" {
		return fmt.Errorf("job ID is required")
	}
	if job.Handler == nil {
		return fmt.Errorf("job handler is required")
	}
	if job.Timeout == 0 {
		job.Timeout = 5 * time.Minute
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[job.ID]; exists {
		return fmt.Errorf("job already registered: %s", job.ID)
	}

	next := s.nextRun(job.Schedule, time.Now())
	job.NextRun = &next
	s.jobs[job.ID] = job

	if s.started {
		s.launch(job)
	}
	return nil
}

// Start launches every registered job
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return fmt.Errorf("scheduler already started")
	}
	s.started = true

	for _, job := range s.jobs {
		s.launch(job)
	}
	return nil
}

// Stop cancels all jobs and waits for in-flight runs to finish
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.cancel()
	s.started = false
	s.mu.Unlock()

	s.wg.Wait()
}

// RunNow executes a job immediately, outside its schedule
func (s *Scheduler) RunNow(jobID string) error {
	s.mu.RLock()
	job, ok := s.jobs[jobID]
	s.mu.RUnlock()

	if !ok {
		return fmt.Errorf("job not found: %s", jobID)
	}

	go s.execute(s.ctx, job)
	return nil
}

func (s *Scheduler) launch(job *Job) {
	s.wg.Add(1)
	go s.loop(s.ctx, job)
}

func (s *Scheduler) loop(ctx context.Context, job *Job) {
	defer s.wg.Done()

	for {
		s.mu.RLock()
		var wait time.Duration
		if job.NextRun != nil {
			wait = time.Until(*job.NextRun)
		}
		s.mu.RUnlock()
		if wait < 0 {
			wait = 0
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(wait):
			s.execute(ctx, job)
		}
	}
}

func (s *Scheduler) execute(ctx context.Context, job *Job) {
	execCtx, cancel := context.WithTimeout(ctx, job.Timeout)
	defer cancel()

	now := time.Now()
	s.mu.Lock()
	job.LastRun = &now
	job.RunCount++
	s.mu.Unlock()

	err := job.Handler(execCtx)

	s.mu.Lock()
	if err != nil {
		job.ErrCount++
		job.LastError = err.Error()
	} else {
		job.LastError = ""
	}
	next := s.nextRun(job.Schedule, time.Now())
	job.NextRun = &next
	s.mu.Unlock()
}

// nextRun computes the next run time after now
func (s *Scheduler) nextRun(schedule Schedule, now time.Time) time.Time {
	now = now.In(s.loc)

	switch schedule.Type {
	case ScheduleInterval:
		return now.Add(schedule.Interval)

	case ScheduleDaily:
		hour, minute := 0, 0
		fmt.Sscanf(schedule.At, "%d:%d", &hour, &minute)

		next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, s.loc)
		if !next.After(now) {
			next = next.AddDate(0, 0, 1)
		}
		return next

	default:
		return now.Add(time.Hour)
	}
}

// Stats is a snapshot of scheduler state for the ops API
type Stats struct {
	Started     bool   `json:"started"`
	Jobs        []*Job `json:"jobs"`
	TotalRuns   int64  `json:"total_runs"`
	TotalErrors int64  `json:"total_errors"`
	Timezone    string `json:"timezone"`
}

// GetStats returns scheduler statistics
func (s *Scheduler) GetStats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Stats{
		Started:  s.started,
		Timezone: s.loc.String(),
	}
	for _, job := range s.jobs {
		snapshot := *job
		stats.Jobs = append(stats.Jobs, &snapshot)
		stats.TotalRuns += job.RunCount
		stats.TotalErrors += job.ErrCount
	}
	return stats
}

// IntervalJob creates a job that runs every interval
func IntervalJob(id, name string, interval time.Duration, handler JobHandler) *Job {
	return &Job{
		ID:       id,
		Name:     name,
		Schedule: Schedule{Type: ScheduleInterval, Interval: interval},
		Handler:  handler,
	}
}

// DailyJob creates a job that runs daily at "HH:MM"
func DailyJob(id, name, at string, handler JobHandler) *Job {
	return &Job{
		ID:       id,
		Name:     name,
		Schedule: Schedule{Type: ScheduleDaily, At: at},
		Handler:  handler,
	}
}
