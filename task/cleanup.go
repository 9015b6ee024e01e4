package tasks

import (
	"context"
	"time"

	"gamewallet/services"

	"github.com/sirupsen/logrus"
)

// CleanupOldCallbackLogs removes callback logs older than the retention window.
func CleanupOldCallbackLogs(ctx context.Context, audit *services.CallbackAuditor, retention time.Duration) {
	cutoff := time.Now().Add(-retention)
	deleted, err := audit.PurgeOlderThan(ctx, cutoff)
	if err != nil {
		logrus.WithError(err).Error("failed to delete old callback logs")
		return
	}
	logrus.WithFields(logrus.Fields{
		"deleted": deleted,
		"cutoff":  cutoff.Format(time.RFC3339),
	}).Info("deleted old callback logs")
}

func CleanupExpiredSessions(ctx context.Context, sessions *services.SessionService) {
	deleted, err := sessions.PurgeExpired(ctx)
	if err != nil {
		logrus.WithError(err).Error("failed to delete expired game sessions")
		return
	}
	if deleted > 0 {
		logrus.WithField("deleted", deleted).Info("deleted expired game sessions")
	}
}

func ExpireBonuses(ctx context.Context, bonuses *services.BonusService) {
	expired, err := bonuses.ExpireBonuses(ctx)
	if err != nil {
		logrus.WithError(err).Error("failed to expire bonuses")
		return
	}
	if expired > 0 {
		logrus.WithField("expired", expired).Info("expired bonuses")
	}
}
