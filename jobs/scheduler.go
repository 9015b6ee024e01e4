package jobs

import (
	"context"
	"time"

	"gamewallet/services"
	tasks "gamewallet/task"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const (
	BonusExpirySpec     = "@every 5m"
	SessionPurgeSpec    = "0 * * * *"
	CallbackCleanupSpec = "0 3 * * *"
)

type Scheduler struct {
	Bonuses           *services.BonusService
	Sessions          *services.SessionService
	Audit             *services.CallbackAuditor
	CallbackRetention time.Duration

	cron *cron.Cron
}

// Register adds the maintenance jobs to c without starting it.
func (s *Scheduler) Register(c *cron.Cron) error {
	if s.CallbackRetention <= 0 {
		s.CallbackRetention = 30 * 24 * time.Hour
	}

	jobs := []struct {
		name string
		spec string
		run  func(ctx context.Context)
	}{
		{"bonus expiry", BonusExpirySpec, func(ctx context.Context) { tasks.ExpireBonuses(ctx, s.Bonuses) }},
		{"session purge", SessionPurgeSpec, func(ctx context.Context) { tasks.CleanupExpiredSessions(ctx, s.Sessions) }},
		{"callback log cleanup", CallbackCleanupSpec, func(ctx context.Context) {
			tasks.CleanupOldCallbackLogs(ctx, s.Audit, s.CallbackRetention)
		}},
	}

	for _, j := range jobs {
		j := j
		if _, err := c.AddFunc(j.spec, func() {
			logrus.WithField("job", j.name).Debug("running scheduled job")
			j.run(context.Background())
		}); err != nil {
			return err
		}
	}
	return nil
}

// Start runs the scheduler in the background.
func (s *Scheduler) Start() error {
	s.cron = cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger)))
	if err := s.Register(s.cron); err != nil {
		return err
	}
	s.cron.Start()
	logrus.Info("maintenance scheduler started")
	return nil
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
}
