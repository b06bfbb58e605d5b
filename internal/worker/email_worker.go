package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Fineboy94449/smoke/internal/infra"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const emailMaxAttempts = 3

type EmailJobPayload struct {
	To         string `json:"to"`
	Subject    string `json:"subject"`
	Body       string `json:"body"`
	Attachment string `json:"attachment,omitempty"`
}

// EmailWorker delivers outbound mail. A nil mailer (SMTP unconfigured)
// drops jobs with a warning instead of dead-lettering them. Sends go
// through a circuit breaker so a downed relay fails fast; dead-lettered
// jobs are picked up again by the DLQ redrive loop.
type EmailWorker struct {
	mailer  *infra.Mailer
	breaker *infra.CircuitBreaker
}

func NewEmailWorker(mailer *infra.Mailer) *EmailWorker {
	return &EmailWorker{
		mailer:  mailer,
		breaker: infra.NewCircuitBreaker(5, 2, time.Minute),
	}
}

func (w *EmailWorker) Process(ctx context.Context, rdb *redis.Client, payload json.RawMessage) {
	var job EmailJobPayload
	if err := json.Unmarshal(payload, &job); err != nil {
		log.Error().Err(err).Msg("email worker: bad payload")
		SendToDLQ(ctx, rdb, QueueEmail, payload, err.Error(), 0)
		return
	}

	if w.mailer == nil {
		log.Warn().Str("to", job.To).Msg("smtp not configured, dropping email job")
		return
	}

	err := withRetry(ctx, emailMaxAttempts, func(attempt int) error {
		return w.breaker.Execute(func() error {
			return w.mailer.Send(job.To, job.Subject, job.Body, job.Attachment)
		})
	})
	if err != nil {
		log.Error().Str("to", job.To).Err(err).Msg("email delivery exhausted retries")
		SendToDLQ(ctx, rdb, QueueEmail, payload, err.Error(), 0)
		return
	}
	log.Info().Str("to", job.To).Str("subject", job.Subject).Msg("email sent")
}
