package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Fineboy94449/smoke/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// FinanceRepository covers expenses, personal injections and the goals
// singleton. They share a repository because they only ever appear
// together on the monthly report.
type FinanceRepository interface {
	CreateExpense(ctx context.Context, e *model.Expense) error
	CreateInjection(ctx context.Context, i *model.Injection) error
	ListExpenses(ctx context.Context, from, to time.Time) ([]model.Expense, error)
	ListInjections(ctx context.Context, from, to time.Time) ([]model.Injection, error)
	SumExpenses(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
	SumInjections(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
	GetSettings(ctx context.Context) (*model.Settings, error)
	SaveSettings(ctx context.Context, s *model.Settings) error
}

type financeRepo struct{ db *gorm.DB }

func NewFinanceRepository(db *gorm.DB) FinanceRepository { return &financeRepo{db: db} }

func (r *financeRepo) CreateExpense(ctx context.Context, e *model.Expense) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *financeRepo) CreateInjection(ctx context.Context, i *model.Injection) error {
	return r.db.WithContext(ctx).Create(i).Error
}

func (r *financeRepo) ListExpenses(ctx context.Context, from, to time.Time) ([]model.Expense, error) {
	var expenses []model.Expense
	err := r.db.WithContext(ctx).
		Where("spent_at >= ? AND spent_at < ?", from, to).
		Order("spent_at DESC").
		Find(&expenses).Error
	return expenses, err
}

func (r *financeRepo) ListInjections(ctx context.Context, from, to time.Time) ([]model.Injection, error) {
	var injections []model.Injection
	err := r.db.WithContext(ctx).
		Where("injected_at >= ? AND injected_at < ?", from, to).
		Order("injected_at DESC").
		Find(&injections).Error
	return injections, err
}

func (r *financeRepo) SumExpenses(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).Model(&model.Expense{}).
		Select("COALESCE(SUM(amount),0)").
		Where("spent_at >= ? AND spent_at < ?", from, to).
		Scan(&total).Error
	return total, err
}

func (r *financeRepo) SumInjections(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).Model(&model.Injection{}).
		Select("COALESCE(SUM(amount),0)").
		Where("injected_at >= ? AND injected_at < ?", from, to).
		Scan(&total).Error
	return total, err
}

func (r *financeRepo) GetSettings(ctx context.Context) (*model.Settings, error) {
	var s model.Settings
	err := r.db.WithContext(ctx).First(&s, "id = 1").Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &model.Settings{ID: 1}, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *financeRepo) SaveSettings(ctx context.Context, s *model.Settings) error {
	s.ID = 1
	return r.db.WithContext(ctx).Save(s).Error
}
