package services

import (
	"context"
	"testing"
	"time"

	"gamewallet/database/dbtest"
	"gamewallet/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAgentRegisterAndAuthenticate(t *testing.T) {
	agents := NewAgentService(dbtest.New(t))
	ctx := context.Background()

	agent, err := agents.Register(ctx, "alpha", "idr", 0)
	require.NoError(t, err)
	assert.Equal(t, "IDR", agent.Currency)
	assert.Equal(t, 15.0, agent.GGR)
	assert.NotEmpty(t, agent.AgentCode)
	assert.NotEmpty(t, agent.SecretKey)

	_, err = agents.Register(ctx, "alpha", "IDR", 10)
	assert.ErrorIs(t, err, ErrAgentExists)

	got, err := agents.Authenticate(ctx, agent.AgentCode, agent.SecretKey)
	require.NoError(t, err)
	assert.Equal(t, agent.ID, got.ID)

	_, err = agents.Authenticate(ctx, agent.AgentCode, "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = agents.Authenticate(ctx, "missing", agent.SecretKey)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestCallbackAuditorPurge(t *testing.T) {
	db := dbtest.New(t)
	audit := NewCallbackAuditor(db)
	ctx := context.Background()

	audit.Record(ctx, CallbackEntry{Provider: "GITSLOTPARK", Action: "balance", PlayerID: "p1", Request: map[string]string{"a": "b"}})
	audit.Record(ctx, CallbackEntry{Provider: "GITSLOTPARK", Action: "withdraw", PlayerID: "p1", Code: 3001})

	var row models.CallbackLog
	require.NoError(t, db.Where("action = ?", "balance").First(&row).Error)
	assert.JSONEq(t, `{"a":"b"}`, string(row.Request))

	purged, err := audit.PurgeOlderThan(ctx, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Zero(t, purged)

	purged, err = audit.PurgeOlderThan(ctx, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 2, purged)

	var nilAuditor *CallbackAuditor
	nilAuditor.Record(ctx, CallbackEntry{})
}
