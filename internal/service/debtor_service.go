package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Fineboy94449/smoke/internal/dto"
	"github.com/Fineboy94449/smoke/internal/model"
	"github.com/Fineboy94449/smoke/internal/pricing"
	"github.com/Fineboy94449/smoke/internal/repository"
	"github.com/Fineboy94449/smoke/internal/worker"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DebtorService interface {
	List(ctx context.Context) (*dto.DebtorListResponse, error)
	// RecordPayment pays down a debtor's balance, floored at zero. Paying
	// to exactly zero deletes the debtor row. Registered accounts get a
	// flat loyalty bonus and a fresh overdue baseline.
	RecordPayment(ctx context.Context, req dto.RecordPaymentRequest) (*dto.PaymentResponse, error)
	// RequestStatement queues async PDF statement generation for a debtor.
	RequestStatement(ctx context.Context, name, email string) error
}

type debtorService struct {
	repo       repository.DebtorRepository
	payments   repository.PaymentRepository
	customers  repository.CustomerRepository
	loyalty    LoyaltyService
	dispatcher *worker.Dispatcher
	db         *gorm.DB

	now func() time.Time
}

func NewDebtorService(
	repo repository.DebtorRepository,
	payments repository.PaymentRepository,
	customers repository.CustomerRepository,
	loyalty LoyaltyService,
	dispatcher *worker.Dispatcher,
	db *gorm.DB,
	now func() time.Time,
) DebtorService {
	if now == nil {
		now = time.Now
	}
	return &debtorService{
		repo:       repo,
		payments:   payments,
		customers:  customers,
		loyalty:    loyalty,
		dispatcher: dispatcher,
		db:         db,
		now:        now,
	}
}

func (s *debtorService) List(ctx context.Context) (*dto.DebtorListResponse, error) {
	debtors, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.TotalOwed(ctx)
	if err != nil {
		return nil, err
	}
	resp := &dto.DebtorListResponse{
		Debtors:   make([]dto.DebtorResponse, 0, len(debtors)),
		TotalOwed: total.Round(2),
	}
	for _, d := range debtors {
		resp.Debtors = append(resp.Debtors, debtorToResponse(&d))
	}
	return resp, nil
}

func debtorToResponse(d *model.Debtor) dto.DebtorResponse {
	resp := dto.DebtorResponse{
		Name:       d.Name,
		Balance:    d.Balance.Round(2),
		TrustScore: d.TrustScore,
	}
	if d.LastPurchase != nil {
		v := d.LastPurchase.Format(time.RFC3339)
		resp.LastPurchase = &v
	}
	if d.LastPayment != nil {
		v := d.LastPayment.Format(time.RFC3339)
		resp.LastPayment = &v
	}
	return resp
}

func (s *debtorService) RecordPayment(ctx context.Context, req dto.RecordPaymentRequest) (*dto.PaymentResponse, error) {
	debtor, err := s.repo.Find(ctx, req.Name)
	if err != nil {
		return nil, fmt.Errorf("%w: debtor %q", ErrNotFound, req.Name)
	}

	now := s.now()
	newBalance := debtor.Balance.Sub(req.Amount)
	if newBalance.IsNegative() {
		newBalance = decimal.Zero
	}

	txErr := runTx(ctx, s.db, func(tx *gorm.DB) error {
		// "No debt" means "no debtor": zero balance deletes the row.
		if newBalance.IsZero() {
			if err := s.repo.Delete(ctx, tx, req.Name); err != nil {
				return err
			}
		} else if err := s.repo.SetBalance(ctx, tx, req.Name, newBalance, &now); err != nil {
			return err
		}

		if err := s.payments.Create(ctx, tx, &model.Payment{
			Customer:        req.Name,
			Amount:          req.Amount,
			PreviousBalance: debtor.Balance,
			NewBalance:      newBalance,
			CreatedAt:       now,
		}); err != nil {
			return err
		}

		acct, err := s.customers.FindByName(ctx, req.Name)
		if err != nil {
			return nil // walk-in debtor, no account to update
		}
		newDebt := acct.CurrentDebt.Sub(req.Amount)
		if newDebt.IsNegative() {
			newDebt = decimal.Zero
		}
		if err := s.customers.UpdateFields(ctx, tx, acct.Phone, map[string]interface{}{
			"current_debt":       newDebt,
			"debt_at_last_check": newDebt,
			"last_debt_check":    now,
		}); err != nil {
			return err
		}
		// Flat bonus per payment regardless of amount.
		return s.loyalty.AdjustPoints(ctx, tx, acct.Phone, pricing.PaymentBonusPoints, "debt payment", now)
	})
	if txErr != nil {
		return nil, txErr
	}

	return &dto.PaymentResponse{
		NewBalance: newBalance.Round(2),
		PaidInFull: newBalance.IsZero(),
	}, nil
}

func (s *debtorService) RequestStatement(ctx context.Context, name, email string) error {
	if _, err := s.repo.Find(ctx, name); err != nil {
		return fmt.Errorf("%w: debtor %q", ErrNotFound, name)
	}
	if s.dispatcher == nil {
		return fmt.Errorf("statement queue unavailable")
	}
	return s.dispatcher.EnqueueStatement(ctx, worker.StatementJobPayload{
		Debtor: name,
		Email:  email,
	})
}
