package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Fineboy94449/smoke/internal/infra"
	"github.com/Fineboy94449/smoke/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	statementMaxAttempts = 3
	statementSaleLimit   = 200
)

// StatementJobPayload identifies the debtor whose statement to render
// and where to send it. An empty email keeps the PDF on disk only.
type StatementJobPayload struct {
	Debtor string `json:"debtor"`
	Email  string `json:"email"`
}

// StatementWorker renders debtor statement PDFs off the request path.
type StatementWorker struct {
	debtors     repository.DebtorRepository
	sales       repository.SaleRepository
	payments    repository.PaymentRepository
	dispatcher  *Dispatcher
	storagePath string
}

func NewStatementWorker(
	debtors repository.DebtorRepository,
	sales repository.SaleRepository,
	payments repository.PaymentRepository,
	dispatcher *Dispatcher,
	storagePath string,
) *StatementWorker {
	return &StatementWorker{
		debtors:     debtors,
		sales:       sales,
		payments:    payments,
		dispatcher:  dispatcher,
		storagePath: storagePath,
	}
}

func (w *StatementWorker) Process(ctx context.Context, rdb *redis.Client, payload json.RawMessage) {
	var job StatementJobPayload
	if err := json.Unmarshal(payload, &job); err != nil {
		log.Error().Err(err).Msg("statement worker: bad payload")
		SendToDLQ(ctx, rdb, QueueStatement, payload, err.Error(), 0)
		return
	}

	err := withRetry(ctx, statementMaxAttempts, func(attempt int) error {
		if attempt > 0 {
			log.Warn().Str("debtor", job.Debtor).Int("attempt", attempt+1).
				Msg("retrying statement generation")
		}
		return w.generate(ctx, job)
	})
	if err != nil {
		log.Error().Str("debtor", job.Debtor).Err(err).
			Msg("statement generation exhausted retries")
		SendToDLQ(ctx, rdb, QueueStatement, payload, err.Error(), 0)
	}
}

func (w *StatementWorker) generate(ctx context.Context, job StatementJobPayload) error {
	debtor, err := w.debtors.Find(ctx, job.Debtor)
	if err != nil {
		return fmt.Errorf("load debtor: %w", err)
	}
	sales, err := w.sales.ListByCustomer(ctx, job.Debtor, statementSaleLimit)
	if err != nil {
		return fmt.Errorf("load sales: %w", err)
	}
	payments, err := w.payments.ListByCustomer(ctx, job.Debtor, statementSaleLimit)
	if err != nil {
		return fmt.Errorf("load payments: %w", err)
	}

	path, err := infra.GenerateStatementPDF(infra.StatementData{
		Debtor:   debtor,
		Sales:    sales,
		Payments: payments,
	}, w.storagePath)
	if err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	log.Info().Str("debtor", job.Debtor).Str("path", path).Msg("statement generated")

	if job.Email == "" {
		return nil
	}
	return w.dispatcher.EnqueueEmail(ctx, EmailJobPayload{
		To:         job.Email,
		Subject:    fmt.Sprintf("Account statement for %s", job.Debtor),
		Body:       fmt.Sprintf("Hi %s,\n\nPlease find your account statement attached.\n\nOutstanding balance: R%s\n", job.Debtor, debtor.Balance.Round(2).StringFixed(2)),
		Attachment: path,
	})
}
