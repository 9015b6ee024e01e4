package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"gamewallet/services"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"
)

type Worker struct {
	Bonuses services.WagerRecorder
}

func NewWorker(bonuses services.WagerRecorder) *Worker {
	return &Worker{Bonuses: bonuses}
}

func (w *Worker) HandleBonusWager(ctx context.Context, t *asynq.Task) error {
	var p BonusWagerPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("json.Unmarshal failed: %v: %w", err, asynq.SkipRetry)
	}
	if p.PlayerID == "" || !p.Stake.IsPositive() {
		return fmt.Errorf("invalid wager payload: %w", asynq.SkipRetry)
	}

	if err := w.Bonuses.RecordWager(ctx, p.PlayerID, p.Stake); err != nil {
		logrus.WithError(err).WithField("player_id", p.PlayerID).Warn("bonus wager failed, will retry")
		return err
	}
	return nil
}

func (w *Worker) Mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeBonusWager, w.HandleBonusWager)
	return mux
}

// serverConfig consumes the single queue the Enqueuer publishes to.
func serverConfig(concurrency int) asynq.Config {
	if concurrency <= 0 {
		concurrency = 10
	}
	return asynq.Config{
		Concurrency: concurrency,
		Queues:      map[string]int{QueueDefault: 1},
		Logger:      logrus.StandardLogger(),
	}
}

func StartWorker(redisOpt asynq.RedisConnOpt, bonuses services.WagerRecorder, concurrency int) error {
	srv := asynq.NewServer(redisOpt, serverConfig(concurrency))

	if err := srv.Run(NewWorker(bonuses).Mux()); err != nil {
		return fmt.Errorf("could not run worker: %w", err)
	}
	return nil
}
