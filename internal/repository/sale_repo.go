package repository

import (
	"context"
	"time"

	"github.com/Fineboy94449/smoke/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BreakdownRow is one cell of the method × item-type partition.
type BreakdownRow struct {
	Method   string
	ItemType string
	Total    decimal.Decimal
	Sticks   int64
	Count    int64
}

// DailyRevenueRow is one day's bucket of the trailing revenue series.
type DailyRevenueRow struct {
	Day   time.Time
	Total decimal.Decimal
}

type SaleRepository interface {
	Create(ctx context.Context, tx *gorm.DB, s *model.Sale) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error)
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	Recent(ctx context.Context, n int) ([]model.Sale, error)
	ListByCustomer(ctx context.Context, customer string, n int) ([]model.Sale, error)
	// Breakdown aggregates sales grouped by method and item type over the
	// half-open interval [from, to). Nil bounds are unbounded.
	Breakdown(ctx context.Context, from, to *time.Time) ([]BreakdownRow, error)
	DailyRevenue(ctx context.Context, from time.Time) ([]DailyRevenueRow, error)
	SticksSoldBetween(ctx context.Context, from, to *time.Time) (int64, error)
	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type saleRepo struct{ db *gorm.DB }

func NewSaleRepository(db *gorm.DB) SaleRepository { return &saleRepo{db: db} }

func (r *saleRepo) DB() *gorm.DB { return r.db }

func (r *saleRepo) Create(ctx context.Context, tx *gorm.DB, s *model.Sale) error {
	return tx.WithContext(ctx).Create(s).Error
}

func (r *saleRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error) {
	var s model.Sale
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *saleRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	return tx.WithContext(ctx).Delete(&model.Sale{}, "id = ?", id).Error
}

func (r *saleRepo) Recent(ctx context.Context, n int) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(n).
		Find(&sales).Error
	return sales, err
}

func (r *saleRepo) ListByCustomer(ctx context.Context, customer string, n int) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.WithContext(ctx).
		Where("customer = ?", customer).
		Order("created_at DESC").
		Limit(n).
		Find(&sales).Error
	return sales, err
}

func (r *saleRepo) Breakdown(ctx context.Context, from, to *time.Time) ([]BreakdownRow, error) {
	var rows []BreakdownRow
	q := r.db.WithContext(ctx).Model(&model.Sale{}).
		Select("method, item_type, COALESCE(SUM(price),0) AS total, COALESCE(SUM(qty),0) AS sticks, COUNT(*) AS count").
		Group("method, item_type")
	if from != nil {
		q = q.Where("created_at >= ?", *from)
	}
	if to != nil {
		q = q.Where("created_at < ?", *to)
	}
	err := q.Scan(&rows).Error
	return rows, err
}

func (r *saleRepo) DailyRevenue(ctx context.Context, from time.Time) ([]DailyRevenueRow, error) {
	var rows []DailyRevenueRow
	err := r.db.WithContext(ctx).Model(&model.Sale{}).
		Select("DATE(created_at) AS day, COALESCE(SUM(price),0) AS total").
		Where("created_at >= ?", from).
		Group("DATE(created_at)").
		Order("day ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *saleRepo) SticksSoldBetween(ctx context.Context, from, to *time.Time) (int64, error) {
	var total int64
	q := r.db.WithContext(ctx).Model(&model.Sale{}).Select("COALESCE(SUM(qty),0)")
	if from != nil {
		q = q.Where("created_at >= ?", *from)
	}
	if to != nil {
		q = q.Where("created_at < ?", *to)
	}
	err := q.Scan(&total).Error
	return total, err
}
