package repository

import (
	"context"

	"github.com/Fineboy94449/smoke/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type StockRepository interface {
	Create(ctx context.Context, e *model.StockEntry) error
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns all entries, newest purchase first.
	List(ctx context.Context) ([]model.StockEntry, error)
	// OpenEntries returns entries with unsold capacity, oldest purchase
	// first, locked for the duration of tx (FIFO allocation).
	OpenEntries(ctx context.Context, tx *gorm.DB) ([]model.StockEntry, error)
	// Allocate adds sold sticks and revenue to one entry atomically.
	Allocate(ctx context.Context, tx *gorm.DB, id uuid.UUID, sticks int, revenue decimal.Decimal, method string) error
	TotalSticks(ctx context.Context) (int64, error)
}

type stockRepo struct{ db *gorm.DB }

func NewStockRepository(db *gorm.DB) StockRepository { return &stockRepo{db: db} }

func (r *stockRepo) Create(ctx context.Context, e *model.StockEntry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *stockRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.StockEntry{}, "id = ?", id).Error
}

func (r *stockRepo) List(ctx context.Context) ([]model.StockEntry, error) {
	var entries []model.StockEntry
	err := r.db.WithContext(ctx).Order("purchased_at DESC").Find(&entries).Error
	return entries, err
}

func (r *stockRepo) OpenEntries(ctx context.Context, tx *gorm.DB) ([]model.StockEntry, error) {
	var entries []model.StockEntry
	err := tx.WithContext(ctx).
		Where("sticks_sold < sticks").
		Order("purchased_at ASC").
		Find(&entries).Error
	return entries, err
}

func (r *stockRepo) Allocate(ctx context.Context, tx *gorm.DB, id uuid.UUID, sticks int, revenue decimal.Decimal, method string) error {
	revenueCol := "revenue_cash"
	if method == "credit" {
		revenueCol = "revenue_credit"
	}
	return tx.WithContext(ctx).Model(&model.StockEntry{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"sticks_sold": gorm.Expr("sticks_sold + ?", sticks),
			revenueCol:    gorm.Expr(revenueCol+" + ?", revenue),
		}).Error
}

func (r *stockRepo) TotalSticks(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.StockEntry{}).
		Select("COALESCE(SUM(sticks),0)").
		Scan(&total).Error
	return total, err
}
