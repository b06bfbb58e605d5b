package repository

import (
	"context"

	"github.com/Fineboy94449/smoke/internal/model"

	"gorm.io/gorm"
)

type CustomerRepository interface {
	Create(ctx context.Context, c *model.Customer) error
	FindByPhone(ctx context.Context, phone string) (*model.Customer, error)
	// FindByPhoneTx reads through tx so uncommitted writes are visible.
	FindByPhoneTx(ctx context.Context, tx *gorm.DB, phone string) (*model.Customer, error)
	// FindByName links free-text sale/debtor names back to an account.
	// Returns gorm.ErrRecordNotFound when no approved account matches.
	FindByName(ctx context.Context, name string) (*model.Customer, error)
	List(ctx context.Context, approvedOnly bool) ([]model.Customer, error)
	Save(ctx context.Context, c *model.Customer) error
	// UpdateFields applies a partial update inside tx.
	UpdateFields(ctx context.Context, tx *gorm.DB, phone string, fields map[string]interface{}) error
	// AddPoints adds delta to the points balance atomically, floored at 0.
	AddPoints(ctx context.Context, tx *gorm.DB, phone string, delta int) error
	// ListForSweep returns approved customers with nonzero debt.
	ListForSweep(ctx context.Context) ([]model.Customer, error)
}

type customerRepo struct{ db *gorm.DB }

func NewCustomerRepository(db *gorm.DB) CustomerRepository { return &customerRepo{db: db} }

func (r *customerRepo) Create(ctx context.Context, c *model.Customer) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *customerRepo) FindByPhone(ctx context.Context, phone string) (*model.Customer, error) {
	var c model.Customer
	err := r.db.WithContext(ctx).First(&c, "phone = ?", phone).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *customerRepo) FindByPhoneTx(ctx context.Context, tx *gorm.DB, phone string) (*model.Customer, error) {
	var c model.Customer
	err := tx.WithContext(ctx).First(&c, "phone = ?", phone).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *customerRepo) FindByName(ctx context.Context, name string) (*model.Customer, error) {
	var c model.Customer
	err := r.db.WithContext(ctx).First(&c, "name = ? AND approved = true", name).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *customerRepo) List(ctx context.Context, approvedOnly bool) ([]model.Customer, error) {
	var customers []model.Customer
	q := r.db.WithContext(ctx).Order("created_at ASC")
	if approvedOnly {
		q = q.Where("approved = true")
	}
	err := q.Find(&customers).Error
	return customers, err
}

func (r *customerRepo) Save(ctx context.Context, c *model.Customer) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *customerRepo) UpdateFields(ctx context.Context, tx *gorm.DB, phone string, fields map[string]interface{}) error {
	return tx.WithContext(ctx).Model(&model.Customer{}).
		Where("phone = ?", phone).
		Updates(fields).Error
}

func (r *customerRepo) AddPoints(ctx context.Context, tx *gorm.DB, phone string, delta int) error {
	return tx.WithContext(ctx).Model(&model.Customer{}).
		Where("phone = ?", phone).
		Update("points", gorm.Expr("GREATEST(points + ?, 0)", delta)).Error
}

func (r *customerRepo) ListForSweep(ctx context.Context) ([]model.Customer, error) {
	var customers []model.Customer
	err := r.db.WithContext(ctx).
		Where("approved = true AND current_debt > 0").
		Find(&customers).Error
	return customers, err
}
