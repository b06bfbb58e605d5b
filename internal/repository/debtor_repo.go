package repository

import (
	"context"
	"time"

	"github.com/Fineboy94449/smoke/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DebtorRepository interface {
	Find(ctx context.Context, name string) (*model.Debtor, error)
	Create(ctx context.Context, tx *gorm.DB, d *model.Debtor) error
	// IncrementBalance adds amount atomically and stamps last_purchase.
	IncrementBalance(ctx context.Context, tx *gorm.DB, name string, amount decimal.Decimal, at time.Time) error
	SetBalance(ctx context.Context, tx *gorm.DB, name string, balance decimal.Decimal, paidAt *time.Time) error
	Delete(ctx context.Context, tx *gorm.DB, name string) error
	// List returns all debtors ordered by balance, highest first.
	List(ctx context.Context) ([]model.Debtor, error)
	TotalOwed(ctx context.Context) (decimal.Decimal, error)
}

type debtorRepo struct{ db *gorm.DB }

func NewDebtorRepository(db *gorm.DB) DebtorRepository { return &debtorRepo{db: db} }

func (r *debtorRepo) Find(ctx context.Context, name string) (*model.Debtor, error) {
	var d model.Debtor
	err := r.db.WithContext(ctx).First(&d, "name = ?", name).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *debtorRepo) Create(ctx context.Context, tx *gorm.DB, d *model.Debtor) error {
	return tx.WithContext(ctx).Create(d).Error
}

func (r *debtorRepo) IncrementBalance(ctx context.Context, tx *gorm.DB, name string, amount decimal.Decimal, at time.Time) error {
	return tx.WithContext(ctx).Model(&model.Debtor{}).
		Where("name = ?", name).
		Updates(map[string]interface{}{
			"balance":       gorm.Expr("balance + ?", amount),
			"last_purchase": at,
		}).Error
}

func (r *debtorRepo) SetBalance(ctx context.Context, tx *gorm.DB, name string, balance decimal.Decimal, paidAt *time.Time) error {
	updates := map[string]interface{}{"balance": balance}
	if paidAt != nil {
		updates["last_payment"] = *paidAt
	}
	return tx.WithContext(ctx).Model(&model.Debtor{}).
		Where("name = ?", name).
		Updates(updates).Error
}

func (r *debtorRepo) Delete(ctx context.Context, tx *gorm.DB, name string) error {
	return tx.WithContext(ctx).Delete(&model.Debtor{}, "name = ?", name).Error
}

func (r *debtorRepo) List(ctx context.Context) ([]model.Debtor, error) {
	var debtors []model.Debtor
	err := r.db.WithContext(ctx).Order("balance DESC").Find(&debtors).Error
	return debtors, err
}

func (r *debtorRepo) TotalOwed(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).Model(&model.Debtor{}).
		Select("COALESCE(SUM(balance),0)").
		Scan(&total).Error
	return total, err
}
