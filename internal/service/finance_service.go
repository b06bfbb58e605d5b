package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Fineboy94449/smoke/internal/dto"
	"github.com/Fineboy94449/smoke/internal/model"
	"github.com/Fineboy94449/smoke/internal/repository"
)

// FinanceService records expenses and personal cash injections.
type FinanceService interface {
	AddExpense(ctx context.Context, req dto.AddExpenseRequest) error
	AddInjection(ctx context.Context, req dto.AddInjectionRequest) error
}

type financeService struct {
	repo repository.FinanceRepository

	now func() time.Time
	loc *time.Location
}

func NewFinanceService(repo repository.FinanceRepository, now func() time.Time, loc *time.Location) FinanceService {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.UTC
	}
	return &financeService{repo: repo, now: now, loc: loc}
}

func (s *financeService) AddExpense(ctx context.Context, req dto.AddExpenseRequest) error {
	at, err := s.parseDate(req.Date)
	if err != nil {
		return err
	}
	source := req.Source
	if source == "" {
		source = "business"
	}
	return s.repo.CreateExpense(ctx, &model.Expense{
		Amount:      req.Amount,
		Description: req.Description,
		Source:      source,
		SpentAt:     at,
		CreatedAt:   s.now(),
	})
}

func (s *financeService) AddInjection(ctx context.Context, req dto.AddInjectionRequest) error {
	at, err := s.parseDate(req.Date)
	if err != nil {
		return err
	}
	return s.repo.CreateInjection(ctx, &model.Injection{
		Amount:      req.Amount,
		Description: req.Description,
		InjectedAt:  at,
		CreatedAt:   s.now(),
	})
}

func (s *financeService) parseDate(date string) (time.Time, error) {
	if date == "" {
		return s.now(), nil
	}
	at, err := time.ParseInLocation("2006-01-02", date, s.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q, want YYYY-MM-DD", ErrInvalid, date)
	}
	return at, nil
}
