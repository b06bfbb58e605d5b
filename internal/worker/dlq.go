package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const DLQPrefix = "dlq:"

// DeadLetter wraps a failed job with enough context to triage it later.
// Attempts counts redrive rounds, not the in-process retries that led
// here.
type DeadLetter struct {
	Queue    string          `json:"queue"`
	Payload  json.RawMessage `json:"payload"`
	Reason   string          `json:"reason"`
	Attempts int             `json:"attempts"`
	FailedAt time.Time       `json:"failed_at"`
}

// SendToDLQ parks a failed payload on the queue's dead-letter list.
// DLQ writes are best-effort: a Redis failure here is logged, not
// propagated, so a broken job can never wedge the worker loop.
func SendToDLQ(ctx context.Context, rdb *redis.Client, queue string, payload json.RawMessage, reason string, attempts int) {
	letter := DeadLetter{
		Queue:    queue,
		Payload:  payload,
		Reason:   reason,
		Attempts: attempts,
		FailedAt: time.Now().UTC(),
	}
	encoded, err := json.Marshal(letter)
	if err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("failed to encode dead letter")
		return
	}
	if err := rdb.LPush(ctx, DLQPrefix+queue, encoded).Err(); err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("failed to push dead letter")
		return
	}
	log.Warn().Str("queue", queue).Str("reason", reason).Msg("job sent to dead-letter queue")
}

// requeueDeadLetter puts a letter back at the head of its dead-letter
// list so a later redrive tick sees it again.
func requeueDeadLetter(ctx context.Context, rdb *redis.Client, letter DeadLetter) {
	encoded, err := json.Marshal(letter)
	if err != nil {
		log.Error().Err(err).Str("queue", letter.Queue).Msg("failed to re-encode dead letter")
		return
	}
	if err := rdb.LPush(ctx, DLQPrefix+letter.Queue, encoded).Err(); err != nil {
		log.Error().Err(err).Str("queue", letter.Queue).Msg("failed to requeue dead letter")
	}
}

// DLQLength reports how many jobs are parked for a queue.
func DLQLength(ctx context.Context, rdb *redis.Client, queue string) (int64, error) {
	return rdb.LLen(ctx, DLQPrefix+queue).Result()
}
