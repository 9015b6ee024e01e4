package tasks

import (
	"context"
	"testing"
	"time"

	"gamewallet/database/dbtest"
	"gamewallet/models"
	"gamewallet/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanupOldCallbackLogs(t *testing.T) {
	db := dbtest.New(t)
	audit := services.NewCallbackAuditor(db)
	ctx := context.Background()

	audit.Record(ctx, services.CallbackEntry{Provider: "GITSLOTPARK", Action: "balance"})
	old := models.CallbackLog{Provider: "GITSLOTPARK", Action: "withdraw"}
	require.NoError(t, db.Create(&old).Error)
	require.NoError(t, db.Model(&old).UpdateColumn("created_at", time.Now().Add(-72*time.Hour)).Error)

	CleanupOldCallbackLogs(ctx, audit, 24*time.Hour)

	var remaining []models.CallbackLog
	require.NoError(t, db.Unscoped().Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, "balance", remaining[0].Action)
}

func TestCleanupExpiredSessions(t *testing.T) {
	db := dbtest.New(t)
	sessions := services.NewSessionService(db, services.NewWalletService(db, nil), time.Hour)
	ctx := context.Background()

	require.NoError(t, db.Create(&models.GameSession{PlayerID: "p1", ExpiresAt: time.Now().Add(-time.Minute)}).Error)
	require.NoError(t, db.Create(&models.GameSession{PlayerID: "p2", ExpiresAt: time.Now().Add(time.Hour)}).Error)

	CleanupExpiredSessions(ctx, sessions)

	var left []models.GameSession
	require.NoError(t, db.Unscoped().Find(&left).Error)
	require.Len(t, left, 1)
	assert.Equal(t, "p2", left[0].PlayerID)
}
