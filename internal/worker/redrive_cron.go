package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Fineboy94449/smoke/internal/infra"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	redriveTickInterval = 2 * time.Minute
	redriveBatchSize    = 10
	maxRedrives         = 5
)

// StartDLQRedrive launches a background loop that re-attempts
// dead-lettered email jobs once the SMTP relay recovers, going through
// the worker's circuit breaker to avoid hammering a relay that is still
// down. Statement jobs are not redriven: they dead-letter only on data
// problems that need an operator to look at them.
func StartDLQRedrive(ctx context.Context, rdb *redis.Client, emails *EmailWorker) {
	go func() {
		ticker := time.NewTicker(redriveTickInterval)
		defer ticker.Stop()

		log.Info().Msg("dlq redrive: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("dlq redrive: shutting down")
				return
			case <-ticker.C:
				redriveEmails(ctx, rdb, emails)
			}
		}
	}()
}

func redriveEmails(ctx context.Context, rdb *redis.Client, w *EmailWorker) {
	if w.mailer == nil {
		return
	}
	if w.breaker.State() == infra.BreakerOpen {
		log.Debug().Msg("dlq redrive: breaker open, skipping tick")
		return
	}

	for i := 0; i < redriveBatchSize; i++ {
		// The breaker may trip mid-batch.
		if w.breaker.State() == infra.BreakerOpen {
			return
		}

		raw, err := rdb.RPop(ctx, DLQPrefix+QueueEmail).Result()
		if err != nil {
			return // queue empty or redis unreachable
		}

		var letter DeadLetter
		if err := json.Unmarshal([]byte(raw), &letter); err != nil {
			log.Error().Err(err).Msg("dlq redrive: corrupt dead letter dropped")
			continue
		}
		var job EmailJobPayload
		if err := json.Unmarshal(letter.Payload, &job); err != nil {
			log.Error().Err(err).Msg("dlq redrive: unreadable email payload dropped")
			continue
		}

		err = w.breaker.Execute(func() error {
			return w.mailer.Send(job.To, job.Subject, job.Body, job.Attachment)
		})
		if err == nil {
			log.Info().Str("to", job.To).Int("redrives", letter.Attempts).
				Msg("dlq redrive: email delivered")
			continue
		}

		letter.Attempts++
		if letter.Attempts >= maxRedrives {
			log.Error().Str("to", job.To).Err(err).Int("redrives", letter.Attempts).
				Msg("dlq redrive: giving up on email")
			continue
		}
		requeueDeadLetter(ctx, rdb, letter)
	}
}
