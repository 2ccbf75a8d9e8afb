package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/pierrel/linkpulse/internal/domain/calendar/policy"
)

// DueScheduledPostProcessor defines the interface for firing due publish jobs
type DueScheduledPostProcessor interface {
	ProcessDueScheduledPosts(ctx context.Context) (policy.BatchResult, error)
}

// Scheduler is the worker that promotes due scheduled posts into actual
// LinkedIn publishes
type Scheduler struct {
	processor DueScheduledPostProcessor
	interval  time.Duration
	logger    *slog.Logger
	stopCh    chan struct{}
	wg        sync.WaitGroup
	running   bool
	mu        sync.Mutex
}

// New creates a new scheduler
func New(processor DueScheduledPostProcessor, interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		processor: processor,
		interval:  interval,
		logger:    logger,
		stopCh:    make(chan struct{}),
	}
}

// Start starts the scheduler
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.mu.Unlock()

	s.logger.Info("scheduled post worker started", "interval", s.interval)

	s.wg.Add(1)
	go s.run(ctx)
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	close(s.stopCh)
	s.wg.Wait()
	s.logger.Info("scheduled post worker stopped")
}

// run is the main scheduler loop
func (s *Scheduler) run(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// Run immediately on start
	s.process(ctx)

	for {
		select {
		case <-ticker.C:
			s.process(ctx)
		case <-s.stopCh:
			return
		case <-ctx.Done():
			return
		}
	}
}

// process fires one batch of due publish jobs. Quiet passes are not logged.
func (s *Scheduler) process(ctx context.Context) {
	start := time.Now()

	res, err := s.processor.ProcessDueScheduledPosts(ctx)
	if err != nil {
		s.logger.Error("failed to process due scheduled posts", "error", err)
		return
	}

	if res.Published == 0 && res.Failed == 0 {
		return
	}

	s.logger.Info("scheduled post batch processed",
		"published", res.Published,
		"failed", res.Failed,
		"elapsed", time.Since(start))
}
