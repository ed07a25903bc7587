package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"droneport/internal/service"
)

// Scheduler enqueues the periodic archive sweep so uploads that missed their
// best-effort archival still make it to the object store.
type Scheduler struct {
	cron  *cron.Cron
	tasks *service.TaskService
	log   zerolog.Logger
}

func NewScheduler(tasks *service.TaskService, log zerolog.Logger) *Scheduler {
	c := cron.New(cron.WithSeconds())
	return &Scheduler{
		cron:  c,
		tasks: tasks,
		log:   log,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("0 0 3 * * *", s.enqueueSweep); err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

// Stop waits for any running job, bounded by a short timeout.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
	}
}

func (s *Scheduler) enqueueSweep() {
	if _, err := s.tasks.SubmitSweep(context.Background()); err != nil {
		s.log.Error().Err(err).Msg("enqueue sweep failed")
	}
}
