// Package scheduler runs the daily slate simulation on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/diamond-odds/internal/config"
	"github.com/yourusername/diamond-odds/internal/metrics"
	"github.com/yourusername/diamond-odds/internal/service"
)

const slateJob = "slate"

// SlateRunner simulates every game on a date
type SlateRunner interface {
	RunSlate(ctx context.Context, date time.Time, count int) (*service.SlateReport, error)
}

// Scheduler manages scheduled slate simulation jobs
type Scheduler struct {
	cron       *cron.Cron
	slate      SlateRunner
	count      int
	jobTimeout time.Duration
	logger     *logrus.Entry
	now        func() time.Time

	mu        sync.RWMutex
	isRunning bool
	jobIDs    []cron.EntryID
}

// NewScheduler creates a new scheduler evaluating specs in UTC
func NewScheduler(slate SlateRunner, count int, logger *logrus.Logger) *Scheduler {
	if logger == nil {
		logger = logrus.New()
		logger.SetLevel(logrus.PanicLevel)
	}
	return &Scheduler{
		cron:       cron.New(cron.WithLocation(time.UTC), cron.WithParser(config.CronParser)),
		slate:      slate,
		count:      count,
		jobTimeout: time.Hour,
		logger:     logger.WithField("component", "scheduler"),
		now:        time.Now,
		jobIDs:     make([]cron.EntryID, 0),
	}
}

// ScheduleSlate schedules the daily slate simulation with a six-field cron spec
func (s *Scheduler) ScheduleSlate(spec string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}

	entryID, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.jobTimeout)
		defer cancel()
		_, _ = s.RunSlate(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to add job: %w", err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.logger.WithField("spec", spec).Info("Scheduled slate simulation job")

	return nil
}

// RunSlate simulates today's UTC slate once
func (s *Scheduler) RunSlate(ctx context.Context) (*service.SlateReport, error) {
	today := s.now().UTC()
	s.logger.WithField("date", today.Format("2006-01-02")).Info("Starting slate simulation")

	report, err := s.slate.RunSlate(ctx, today, s.count)
	if err != nil {
		metrics.RecordSchedulerRun(slateJob, "error")
		s.logger.WithError(err).Error("Slate simulation failed")
		return nil, err
	}

	status := "success"
	if report.Failed > 0 {
		status = "partial"
	}
	metrics.RecordSchedulerRun(slateJob, status)
	return report, nil
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("scheduler is already running")
	}
	if len(s.jobIDs) == 0 {
		return fmt.Errorf("no jobs scheduled")
	}

	s.cron.Start()
	s.isRunning = true
	s.logger.WithField("jobs", len(s.jobIDs)).Info("Scheduler started")

	return nil
}

// Stop stops the scheduler, waiting for a running job until ctx ends
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return nil
	}

	s.isRunning = false
	select {
	case <-s.cron.Stop().Done():
		s.logger.Info("Scheduler stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("scheduler stop: %w", ctx.Err())
	}
}

// IsRunning returns whether the scheduler is currently running
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRun returns the time of the next scheduled job run
func (s *Scheduler) GetNextRun() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning || len(s.jobIDs) == 0 {
		return time.Time{}
	}

	nextRun := time.Time{}
	for _, jobID := range s.jobIDs {
		entry := s.cron.Entry(jobID)
		if entry.Valid() && (nextRun.IsZero() || entry.Next.Before(nextRun)) {
			nextRun = entry.Next
		}
	}

	return nextRun
}

// Entries returns information about scheduled entries
func (s *Scheduler) Entries() []cron.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]cron.Entry, 0, len(s.jobIDs))
	for _, jobID := range s.jobIDs {
		if entry := s.cron.Entry(jobID); entry.Valid() {
			entries = append(entries, entry)
		}
	}

	return entries
}
