package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/shopspring/decimal"
)

// Task Types
const (
	TypeBonusWager = "bonus:wager"
)

const QueueDefault = "default"

type BonusWagerPayload struct {
	PlayerID string          `json:"player_id"`
	Stake    decimal.Decimal `json:"stake"`
}

func NewBonusWagerTask(payload BonusWagerPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeBonusWager, data, asynq.MaxRetry(5)), nil
}

// Enqueuer hands settled stakes to the worker instead of updating bonuses inline.
type Enqueuer struct {
	Client *asynq.Client
	Queue  string
}

func NewEnqueuer(client *asynq.Client) *Enqueuer {
	return &Enqueuer{Client: client, Queue: QueueDefault}
}

func (e *Enqueuer) RecordWager(ctx context.Context, playerID string, stake decimal.Decimal) error {
	task, err := NewBonusWagerTask(BonusWagerPayload{PlayerID: playerID, Stake: stake})
	if err != nil {
		return err
	}
	if _, err := e.Client.EnqueueContext(ctx, task, asynq.Queue(e.Queue)); err != nil {
		return fmt.Errorf("enqueue %s: %w", TypeBonusWager, err)
	}
	return nil
}
