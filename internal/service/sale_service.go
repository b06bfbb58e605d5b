package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Fineboy94449/smoke/internal/dto"
	"github.com/Fineboy94449/smoke/internal/model"
	"github.com/Fineboy94449/smoke/internal/pricing"
	"github.com/Fineboy94449/smoke/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// walkInCustomer is the name recorded on cash sales with no account.
const walkInCustomer = "Cash Customer"

type SaleService interface {
	// RecordSale prices and persists a sale. Credit sales also run the
	// ledger flow: debtor balance, customer debt and loyalty points.
	// orderID is non-nil when the sale comes from completing an order.
	RecordSale(ctx context.Context, req dto.RecordSaleRequest, orderID *uuid.UUID) (*dto.SaleResponse, error)
	// ReverseSale deletes a transaction, unwinding credit from the debtor
	// balance. Loyalty points already awarded stay awarded.
	ReverseSale(ctx context.Context, id uuid.UUID) error
	History(ctx context.Context) ([]dto.SaleHistoryItem, error)
	Recent(ctx context.Context) ([]dto.RecentTransaction, error)
}

type saleService struct {
	repo      repository.SaleRepository
	debtors   repository.DebtorRepository
	customers repository.CustomerRepository
	stock     repository.StockRepository
	loyalty   LoyaltyService

	now func() time.Time
}

func NewSaleService(
	repo repository.SaleRepository,
	debtors repository.DebtorRepository,
	customers repository.CustomerRepository,
	stock repository.StockRepository,
	loyalty LoyaltyService,
	now func() time.Time,
) SaleService {
	if now == nil {
		now = time.Now
	}
	return &saleService{
		repo:      repo,
		debtors:   debtors,
		customers: customers,
		stock:     stock,
		loyalty:   loyalty,
		now:       now,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

func (s *saleService) RecordSale(ctx context.Context, req dto.RecordSaleRequest, orderID *uuid.UUID) (*dto.SaleResponse, error) {
	quote := pricing.Price(req.Item, req.Qty, req.Method)

	customer := req.Customer
	if customer == "" {
		customer = walkInCustomer
	}
	if req.Method == pricing.MethodCredit && req.Customer == "" {
		return nil, fmt.Errorf("%w: credit sales require a customer name", ErrInvalid)
	}

	now := s.now()
	sale := model.Sale{
		Qty:       quote.Sticks,
		Price:     quote.Price,
		Method:    req.Method,
		Customer:  customer,
		ItemType:  req.Item,
		OrderID:   orderID,
		CreatedAt: now,
	}
	newBalance := decimal.Zero

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.Create(ctx, tx, &sale); err != nil {
			return err
		}

		if err := s.allocateToBundles(ctx, tx, quote, req.Method); err != nil {
			return err
		}

		if req.Method != pricing.MethodCredit {
			return nil
		}

		// Credit ledger: bump or create the debtor row.
		debtor, err := s.debtors.Find(ctx, customer)
		switch {
		case err == nil:
			if err := s.debtors.IncrementBalance(ctx, tx, customer, quote.Price, now); err != nil {
				return err
			}
			newBalance = debtor.Balance.Add(quote.Price)
		default:
			d := &model.Debtor{
				Name:         customer,
				Balance:      quote.Price,
				TrustScore:   50,
				LastPurchase: &now,
				CreatedAt:    now,
			}
			if err := s.debtors.Create(ctx, tx, d); err != nil {
				return err
			}
			newBalance = quote.Price
		}

		// Registered accounts also carry debt and earn points. Walk-in
		// debtors with no account only exist in the debtors table.
		acct, err := s.customers.FindByName(ctx, customer)
		if err != nil {
			return nil
		}
		fields := map[string]interface{}{
			"current_debt": gorm.Expr("current_debt + ?", quote.Price),
		}
		// Debt starting from zero (first ever, or after full repayment)
		// also starts the overdue clock and the growth baseline; without
		// a stamp here neither sweep check can reach a customer who buys
		// on credit and never pays.
		if acct.LastDebtCheck == nil || !acct.CurrentDebt.IsPositive() {
			fields["last_debt_check"] = now
			fields["debt_at_last_check"] = acct.CurrentDebt.Add(quote.Price)
		}
		if err := s.customers.UpdateFields(ctx, tx, acct.Phone, fields); err != nil {
			return err
		}
		pts := pricing.PointsForSale(quote.Sticks)
		return s.loyalty.AdjustPoints(ctx, tx, acct.Phone, pts,
			fmt.Sprintf("credit sale of %d sticks", quote.Sticks), now)
	})
	if txErr != nil {
		return nil, txErr
	}

	return &dto.SaleResponse{
		ID:         sale.ID.String(),
		Item:       req.Item,
		Qty:        req.Qty,
		Sticks:     quote.Sticks,
		Method:     req.Method,
		Customer:   customer,
		Price:      quote.Price.Round(2),
		ProfitMade: quote.Profit.Round(2),
		NewBalance: newBalance.Round(2),
		CreatedAt:  now.Format(time.RFC3339),
	}, nil
}

// allocateToBundles spreads the sold sticks over open stock entries FIFO,
// splitting each entry's revenue by payment method. Sales beyond recorded
// stock simply stop allocating; the stock page shows the mismatch.
func (s *saleService) allocateToBundles(ctx context.Context, tx *gorm.DB, quote pricing.Quote, method string) error {
	entries, err := s.stock.OpenEntries(ctx, tx)
	if err != nil {
		return err
	}
	remaining := quote.Sticks
	perStick := decimal.Zero
	if quote.Sticks > 0 {
		perStick = quote.Price.Div(decimal.NewFromInt(int64(quote.Sticks)))
	}
	for _, e := range entries {
		if remaining <= 0 {
			break
		}
		capacity := e.Sticks - e.SticksSold
		take := remaining
		if take > capacity {
			take = capacity
		}
		revenue := perStick.Mul(decimal.NewFromInt(int64(take)))
		if err := s.stock.Allocate(ctx, tx, e.ID, take, revenue, method); err != nil {
			return err
		}
		remaining -= take
	}
	return nil
}

func (s *saleService) ReverseSale(ctx context.Context, id uuid.UUID) error {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: transaction", ErrNotFound)
	}

	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if sale.Method == pricing.MethodCredit {
			if err := s.unwindCredit(ctx, tx, sale); err != nil {
				return err
			}
		}
		return s.repo.Delete(ctx, tx, id)
	})
}

// unwindCredit subtracts a reversed sale's price from the debtor balance,
// floored at zero, deleting the debtor at exactly zero. Points stay.
func (s *saleService) unwindCredit(ctx context.Context, tx *gorm.DB, sale *model.Sale) error {
	debtor, err := s.debtors.Find(ctx, sale.Customer)
	if err != nil {
		return nil // debtor already settled and deleted
	}
	newBalance := debtor.Balance.Sub(sale.Price)
	if newBalance.IsNegative() {
		newBalance = decimal.Zero
	}
	if newBalance.IsZero() {
		if err := s.debtors.Delete(ctx, tx, sale.Customer); err != nil {
			return err
		}
	} else if err := s.debtors.SetBalance(ctx, tx, sale.Customer, newBalance, nil); err != nil {
		return err
	}

	if acct, err := s.customers.FindByName(ctx, sale.Customer); err == nil {
		return s.customers.UpdateFields(ctx, tx, acct.Phone, map[string]interface{}{
			"current_debt": gorm.Expr("GREATEST(current_debt - ?, 0)", sale.Price),
		})
	}
	return nil
}

const historyLimit = 50

func (s *saleService) History(ctx context.Context) ([]dto.SaleHistoryItem, error) {
	sales, err := s.repo.Recent(ctx, historyLimit)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleHistoryItem, 0, len(sales))
	for _, sale := range sales {
		items = append(items, dto.SaleHistoryItem{
			ID:        sale.ID.String(),
			Item:      sale.ItemType,
			Qty:       sale.Qty,
			Method:    sale.Method,
			Customer:  sale.Customer,
			Price:     sale.Price.Round(2),
			CreatedAt: sale.CreatedAt.Format(time.RFC3339),
		})
	}
	return items, nil
}

const recentLimit = 10

func (s *saleService) Recent(ctx context.Context) ([]dto.RecentTransaction, error) {
	sales, err := s.repo.Recent(ctx, recentLimit)
	if err != nil {
		return nil, err
	}
	now := s.now()
	items := make([]dto.RecentTransaction, 0, len(sales))
	for _, sale := range sales {
		items = append(items, dto.RecentTransaction{
			ID:       sale.ID.String(),
			Customer: sale.Customer,
			Method:   sale.Method,
			ItemType: sale.ItemType,
			Price:    sale.Price.Round(2),
			Qty:      sale.Qty,
			Profit:   pricing.Profit(sale.Price, sale.Qty).Round(2),
			TimeAgo:  timeAgo(now, sale.CreatedAt),
		})
	}
	return items, nil
}

// timeAgo humanizes a sale timestamp relative to now.
func timeAgo(now, t time.Time) string {
	diff := now.Sub(t)
	switch {
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return fmt.Sprintf("%d min ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		hours := int(diff.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	default:
		return t.Format("02 Jan, 3:04 PM")
	}
}
