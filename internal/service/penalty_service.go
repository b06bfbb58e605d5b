package service

import (
	"context"
	"time"

	"github.com/Fineboy94449/smoke/internal/model"
	"github.com/Fineboy94449/smoke/internal/repository"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	// staleDebtWindow is how long a debt may sit without a payment before
	// the staleness penalty fires.
	staleDebtWindow = 4 * 7 * 24 * time.Hour

	// debtGrowthThreshold fires the growth penalty when debt has grown by
	// at least 10% over its baseline.
	penaltyPoints = 2
)

var debtGrowthThreshold = decimal.NewFromFloat(0.10)

// PenaltyService runs the overdue sweep over approved customers carrying
// debt. It is invoked at the start of every dashboard load; there is no
// guard against running twice in a window beyond the baseline resets the
// sweep itself performs.
type PenaltyService interface {
	// RunSweep returns the total points deducted across all customers.
	RunSweep(ctx context.Context) (int, error)
}

type penaltyService struct {
	customers repository.CustomerRepository
	loyalty   LoyaltyService
	db        *gorm.DB

	now func() time.Time
}

func NewPenaltyService(customers repository.CustomerRepository, loyalty LoyaltyService, db *gorm.DB, now func() time.Time) PenaltyService {
	if now == nil {
		now = time.Now
	}
	return &penaltyService{customers: customers, loyalty: loyalty, db: db, now: now}
}

func (s *penaltyService) RunSweep(ctx context.Context) (int, error) {
	customers, err := s.customers.ListForSweep(ctx)
	if err != nil {
		return 0, err
	}

	now := s.now()
	total := 0
	for i := range customers {
		deducted, err := s.sweepOne(ctx, &customers[i], now)
		if err != nil {
			// One bad account must not abort the whole sweep.
			log.Error().Err(err).Str("customer", customers[i].Phone).Msg("overdue sweep: customer skipped")
			continue
		}
		total += deducted
	}
	if total > 0 {
		log.Info().Int("points_deducted", total).Msg("overdue sweep completed")
	}
	return total, nil
}

// sweepOne applies both penalty checks independently; a customer can lose
// up to 4 points in a single sweep.
func (s *penaltyService) sweepOne(ctx context.Context, c *model.Customer, now time.Time) (int, error) {
	deducted := 0

	err := runTx(ctx, s.db, func(tx *gorm.DB) error {
		// Check 1: debt untouched for 4+ weeks.
		if c.LastDebtCheck != nil && now.Sub(*c.LastDebtCheck) >= staleDebtWindow {
			if err := s.loyalty.AdjustPoints(ctx, tx, c.Phone, -penaltyPoints, "overdue debt (4+ weeks)", now); err != nil {
				return err
			}
			if err := s.customers.UpdateFields(ctx, tx, c.Phone, map[string]interface{}{
				"last_debt_check": now,
			}); err != nil {
				return err
			}
			deducted += penaltyPoints
		}

		// Check 2: debt grown ≥ 10% over the baseline. Zero baselines are
		// skipped — no meaningful growth ratio exists.
		if c.DebtAtLastCheck.IsPositive() {
			growth := c.CurrentDebt.Sub(c.DebtAtLastCheck).Div(c.DebtAtLastCheck)
			if growth.GreaterThanOrEqual(debtGrowthThreshold) {
				if err := s.loyalty.AdjustPoints(ctx, tx, c.Phone, -penaltyPoints, "debt growing", now); err != nil {
					return err
				}
				if err := s.customers.UpdateFields(ctx, tx, c.Phone, map[string]interface{}{
					"debt_at_last_check": c.CurrentDebt,
				}); err != nil {
					return err
				}
				deducted += penaltyPoints
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deducted, nil
}
