package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gamewallet/models"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CallbackEntry struct {
	Provider      string
	Action        string
	PlayerID      string
	TransactionID string
	Code          int
	Request       any
	Response      any
	Duration      time.Duration
}

// CallbackAuditor persists the raw exchange of provider callbacks.
type CallbackAuditor struct {
	db *gorm.DB
}

func NewCallbackAuditor(db *gorm.DB) *CallbackAuditor {
	return &CallbackAuditor{db: db}
}

func (a *CallbackAuditor) Record(ctx context.Context, e CallbackEntry) {
	if a == nil {
		return
	}

	entry := logrus.WithFields(logrus.Fields{
		"provider":       e.Provider,
		"action":         e.Action,
		"user_id":        e.PlayerID,
		"transaction_id": e.TransactionID,
		"code":           e.Code,
		"duration":       e.Duration.String(),
	})
	if e.Code == 0 {
		entry.Info("seamless callback")
	} else {
		entry.Warn("seamless callback rejected")
	}

	row := models.CallbackLog{
		Provider:      e.Provider,
		Action:        e.Action,
		PlayerID:      e.PlayerID,
		TransactionID: e.TransactionID,
		Code:          e.Code,
		Request:       toJSON(e.Request),
		Response:      toJSON(e.Response),
		DurationMs:    e.Duration.Milliseconds(),
	}
	if err := a.db.WithContext(ctx).Create(&row).Error; err != nil {
		logrus.WithError(err).Error("failed to store callback log")
	}
}

// PurgeOlderThan hard-deletes callback logs created before cutoff.
func (a *CallbackAuditor) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res := a.db.WithContext(ctx).Unscoped().Where("created_at < ?", cutoff).Delete(&models.CallbackLog{})
	if res.Error != nil {
		return 0, fmt.Errorf("purge callback logs: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func toJSON(v any) datatypes.JSON {
	if v == nil {
		return datatypes.JSON("null")
	}
	b, err := json.Marshal(v)
	if err != nil {
		return datatypes.JSON("null")
	}
	return datatypes.JSON(b)
}
