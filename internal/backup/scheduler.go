package backup

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/julianstephens/weekboard/internal/logger"
)

// Scheduler takes periodic backups while a session is open.
type Scheduler struct {
	scheduler gocron.Scheduler
	manager   *Manager
	onBackup  func(path string, err error)
}

// NewScheduler creates a stopped scheduler. onBackup is optional and runs on
// the scheduler's goroutine after every attempt.
func NewScheduler(manager *Manager, onBackup func(path string, err error)) (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}
	return &Scheduler{
		scheduler: s,
		manager:   manager,
		onBackup:  onBackup,
	}, nil
}

// Every registers the periodic backup job and returns its ID.
func (s *Scheduler) Every(interval time.Duration) (string, error) {
	if interval <= 0 {
		return "", fmt.Errorf("backup interval must be > 0")
	}
	job, err := s.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(s.run),
		gocron.WithName("periodic-backup"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create periodic backup job: %w", err)
	}
	return job.ID().String(), nil
}

func (s *Scheduler) Start() {
	logger.Debug("Starting backup scheduler")
	s.scheduler.Start()
}

func (s *Scheduler) Stop() error {
	logger.Debug("Stopping backup scheduler")
	return s.scheduler.Shutdown()
}

func (s *Scheduler) run() {
	path, err := s.manager.CreateBackup()
	if err != nil {
		logger.Warn("Scheduled backup failed", "error", err)
	} else {
		logger.Info("Scheduled backup created", "path", path)
	}
	if s.onBackup != nil {
		s.onBackup(path, err)
	}
}
