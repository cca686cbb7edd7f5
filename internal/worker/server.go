package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"settlement-service/internal/consumers"

	"github.com/hibiken/asynq"
)

type Worker struct {
	Processor *consumers.NoticeProcessor
}

func NewWorker(processor *consumers.NoticeProcessor) *Worker {
	return &Worker{
		Processor: processor,
	}
}

func (w *Worker) HandleClaimRevoked(ctx context.Context, t *asynq.Task) error {
	var p consumers.ClaimRevokedDTO
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("json.Unmarshal failed: %v: %w", err, asynq.SkipRetry)
	}
	return w.Processor.ProcessClaimRevoked(p)
}

func StartWorker(redisOpt asynq.RedisClientOpt, processor *consumers.NoticeProcessor) {
	srv := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
		},
	)

	worker := NewWorker(processor)
	mux := asynq.NewServeMux()

	mux.HandleFunc(TypeClaimRevoked, worker.HandleClaimRevoked)

	if err := srv.Run(mux); err != nil {
		log.Fatalf("could not run server: %v", err)
	}
}
