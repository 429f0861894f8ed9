package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/tweet-weather/internal/weather"
)

// Publisher is the part of weather.Publisher the scheduler drives.
type Publisher interface {
	PublishDailyWeather(ctx context.Context, cities []string) (weather.Result, error)
}

// Scheduler periodically publishes the weather summary for the configured cities.
type Scheduler struct {
	scheduler *gocron.Scheduler
	publisher Publisher
	cities    []string
	cron      string
	logger    *slog.Logger

	// ctx is handed to every run and cancelled by Stop, so a publish in
	// flight gives up when the service shuts down.
	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a new Scheduler. cron is a standard five-field expression evaluated in UTC.
func New(cities []string, cron string, publisher Publisher, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	s := gocron.NewScheduler(time.UTC)
	// A slow run must not overlap with the next tick.
	s.SingletonModeAll()
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		scheduler: s,
		publisher: publisher,
		cities:    cities,
		cron:      cron,
		logger:    logger,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Start schedules the publish job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if len(s.cities) == 0 {
		s.logger.Warn("scheduler: no cities configured; nothing to schedule")
		return nil
	}
	if s.cron == "" {
		return errors.New("scheduler: empty cron expression")
	}

	if _, err := s.scheduler.Cron(s.cron).Do(s.run); err != nil {
		return err
	}

	s.scheduler.StartAsync()
	s.logger.Info("scheduler started", "cron", s.cron)
	return nil
}

// run performs one scheduled publish. Failures are logged; nothing is retried.
func (s *Scheduler) run() {
	s.logger.Info("scheduler: running weather publish job")

	res, err := s.publisher.PublishDailyWeather(s.ctx, s.cities)
	if err != nil {
		s.logger.Error("scheduler: publish failed", "err", err)
		return
	}
	s.logger.Info("scheduler: completed weather publish job", "status_id", res.StatusID)
}

// Stop cancels a publish that is still running and stops future jobs.
func (s *Scheduler) Stop() {
	s.cancel()
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
