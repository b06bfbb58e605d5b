package service

import (
	"context"
	"time"

	"github.com/Fineboy94449/smoke/internal/model"
	"github.com/Fineboy94449/smoke/internal/pricing"
	"github.com/Fineboy94449/smoke/internal/repository"

	"gorm.io/gorm"
)

// LoyaltyService is the single write path for loyalty points. Every change
// goes through AdjustPoints so the history log and tier classification can
// never drift from the balance.
type LoyaltyService interface {
	// AdjustPoints applies delta (floored at 0 in the store), appends a
	// point-history entry and reclassifies the tier, all inside tx.
	AdjustPoints(ctx context.Context, tx *gorm.DB, phone string, delta int, reason string, at time.Time) error
}

type loyaltyService struct {
	customers repository.CustomerRepository
	points    repository.PointHistoryRepository
}

func NewLoyaltyService(customers repository.CustomerRepository, points repository.PointHistoryRepository) LoyaltyService {
	return &loyaltyService{customers: customers, points: points}
}

func (s *loyaltyService) AdjustPoints(ctx context.Context, tx *gorm.DB, phone string, delta int, reason string, at time.Time) error {
	if delta == 0 {
		return nil
	}
	if err := s.customers.AddPoints(ctx, tx, phone, delta); err != nil {
		return err
	}
	if err := s.points.Create(ctx, tx, &model.PointHistory{
		Customer:  phone,
		Delta:     delta,
		Reason:    reason,
		CreatedAt: at,
	}); err != nil {
		return err
	}
	return s.reclassify(ctx, tx, phone)
}

// reclassify re-derives tier and credit limit from the stored point
// balance. A TierOverride account keeps its manually fixed limit; the
// tier label still tracks points so the operator sees where the account
// would sit.
func (s *loyaltyService) reclassify(ctx context.Context, tx *gorm.DB, phone string) error {
	c, err := s.customers.FindByPhoneTx(ctx, tx, phone)
	if err != nil {
		return err
	}
	tier, limit := pricing.TierFor(c.Points)
	fields := map[string]interface{}{"tier": tier}
	if !c.TierOverride {
		fields["credit_limit"] = limit
	}
	return s.customers.UpdateFields(ctx, tx, phone, fields)
}
