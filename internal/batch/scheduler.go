package batch

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/wb-go/wbf/zlog"
)

// Scheduler runs the recurring maintenance tasks: the pending-notification
// sweep and the daily cleanup enqueue.
type Scheduler struct {
	cron gocron.Scheduler
}

// NewScheduler creates an idle scheduler. Jobs added before Start run on
// their own schedules once started.
func NewScheduler() (*Scheduler, error) {
	cron, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("creating gocron scheduler: %w", err)
	}

	return &Scheduler{cron: cron}, nil
}

// AddInterval runs task every d, first run one interval after Start.
func (s *Scheduler) AddInterval(name string, d time.Duration, task func()) error {
	if _, err := s.cron.NewJob(gocron.DurationJob(d), gocron.NewTask(task)); err != nil {
		return fmt.Errorf("scheduling %s: %w", name, err)
	}

	zlog.Logger.Info().Str("job", name).Dur("interval", d).Msg("scheduled")

	return nil
}

// AddDailyAt runs task once a day at the given "HH:MM" local time.
func (s *Scheduler) AddDailyAt(name, at string, task func()) error {
	hour, minute, err := parseAtTime(at)
	if err != nil {
		return fmt.Errorf("scheduling %s: %w", name, err)
	}

	def := gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(hour, minute, 0)))
	if _, err := s.cron.NewJob(def, gocron.NewTask(task)); err != nil {
		return fmt.Errorf("scheduling %s: %w", name, err)
	}

	zlog.Logger.Info().Str("job", name).Str("at", at).Msg("scheduled daily")

	return nil
}

// Start launches all scheduled jobs.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop waits for running jobs and shuts the scheduler down.
func (s *Scheduler) Stop() error {
	return s.cron.Shutdown()
}

// parseAtTime parses an "HH:MM" string.
func parseAtTime(at string) (uint, uint, error) {
	parts := strings.Split(at, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid at time format: %s", at)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("parsing hour: %w", err)
	}

	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("parsing minute: %w", err)
	}

	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("at time out of range: %s", at)
	}

	return uint(hour), uint(minute), nil
}
