package repository

import (
	"context"

	"github.com/Fineboy94449/smoke/internal/model"

	"gorm.io/gorm"
)

// PaymentRepository stores the append-only repayment log.
type PaymentRepository interface {
	Create(ctx context.Context, tx *gorm.DB, p *model.Payment) error
	ListByCustomer(ctx context.Context, customer string, n int) ([]model.Payment, error)
}

type paymentRepo struct{ db *gorm.DB }

func NewPaymentRepository(db *gorm.DB) PaymentRepository { return &paymentRepo{db: db} }

func (r *paymentRepo) Create(ctx context.Context, tx *gorm.DB, p *model.Payment) error {
	return tx.WithContext(ctx).Create(p).Error
}

func (r *paymentRepo) ListByCustomer(ctx context.Context, customer string, n int) ([]model.Payment, error) {
	var payments []model.Payment
	err := r.db.WithContext(ctx).
		Where("customer = ?", customer).
		Order("created_at DESC").
		Limit(n).
		Find(&payments).Error
	return payments, err
}

// PointHistoryRepository stores the append-only loyalty point log.
type PointHistoryRepository interface {
	Create(ctx context.Context, tx *gorm.DB, e *model.PointHistory) error
	ListByCustomer(ctx context.Context, customer string, n int) ([]model.PointHistory, error)
}

type pointHistoryRepo struct{ db *gorm.DB }

func NewPointHistoryRepository(db *gorm.DB) PointHistoryRepository {
	return &pointHistoryRepo{db: db}
}

func (r *pointHistoryRepo) Create(ctx context.Context, tx *gorm.DB, e *model.PointHistory) error {
	return tx.WithContext(ctx).Create(e).Error
}

func (r *pointHistoryRepo) ListByCustomer(ctx context.Context, customer string, n int) ([]model.PointHistory, error) {
	var entries []model.PointHistory
	err := r.db.WithContext(ctx).
		Where("customer = ?", customer).
		Order("created_at DESC").
		Limit(n).
		Find(&entries).Error
	return entries, err
}
