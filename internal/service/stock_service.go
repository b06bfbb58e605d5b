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
)

type StockService interface {
	// AddPurchase records a bundle purchase; cost is bundles × R145.
	AddPurchase(ctx context.Context, req dto.AddStockRequest) (*dto.StockEntryResponse, error)
	DeleteEntry(ctx context.Context, id uuid.UUID) error
	// Overview lists all entries with monthly grouping and the remaining
	// stick count derived from total purchased minus total sold.
	Overview(ctx context.Context) (*dto.StockOverviewResponse, error)
}

type stockService struct {
	repo  repository.StockRepository
	sales repository.SaleRepository

	now func() time.Time
	loc *time.Location
}

func NewStockService(repo repository.StockRepository, sales repository.SaleRepository, now func() time.Time, loc *time.Location) StockService {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.UTC
	}
	return &stockService{repo: repo, sales: sales, now: now, loc: loc}
}

func (s *stockService) AddPurchase(ctx context.Context, req dto.AddStockRequest) (*dto.StockEntryResponse, error) {
	purchasedAt := s.now()
	if req.Date != "" {
		d, err := time.ParseInLocation("2006-01-02", req.Date, s.loc)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid date %q, want YYYY-MM-DD", ErrInvalid, req.Date)
		}
		purchasedAt = d
	}
	source := req.Source
	if source == "" {
		source = "business"
	}

	entry := &model.StockEntry{
		Bundles:     req.Bundles,
		Sticks:      req.Bundles * pricing.SticksPerBundle,
		Cost:        pricing.BundleCost.Mul(decimal.NewFromInt(int64(req.Bundles))),
		Source:      source,
		Note:        req.Note,
		PurchasedAt: purchasedAt,
		CreatedAt:   s.now(),
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, err
	}
	resp := stockEntryToResponse(entry)
	return &resp, nil
}

func (s *stockService) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *stockService) Overview(ctx context.Context) (*dto.StockOverviewResponse, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	sticksSold, err := s.sales.SticksSoldBetween(ctx, nil, nil)
	if err != nil {
		return nil, err
	}

	resp := &dto.StockOverviewResponse{
		Entries:    make([]dto.StockEntryResponse, 0, len(entries)),
		TotalSpent: decimal.Zero,
		SticksSold: sticksSold,
	}

	// Group purchases by calendar month, newest month first. Entries come
	// back already ordered by purchase date descending.
	groupIdx := make(map[string]int)
	for i := range entries {
		e := &entries[i]
		er := stockEntryToResponse(e)
		resp.Entries = append(resp.Entries, er)
		resp.TotalBundles += e.Bundles
		resp.TotalSpent = resp.TotalSpent.Add(e.Cost)
		resp.TotalSticks += int64(e.Sticks)

		month := e.PurchasedAt.In(s.loc).Format("January 2006")
		idx, ok := groupIdx[month]
		if !ok {
			resp.Monthly = append(resp.Monthly, dto.MonthlyStockGroup{Month: month, Cost: decimal.Zero})
			idx = len(resp.Monthly) - 1
			groupIdx[month] = idx
		}
		resp.Monthly[idx].Bundles += e.Bundles
		resp.Monthly[idx].Cost = resp.Monthly[idx].Cost.Add(e.Cost)
		resp.Monthly[idx].Entries = append(resp.Monthly[idx].Entries, er)
	}

	resp.TotalSpent = resp.TotalSpent.Round(2)
	resp.SticksRemaining = resp.TotalSticks - sticksSold
	resp.AlertLevel = pricing.StockAlert(int(resp.SticksRemaining))
	return resp, nil
}

func stockEntryToResponse(e *model.StockEntry) dto.StockEntryResponse {
	return dto.StockEntryResponse{
		ID:            e.ID.String(),
		Bundles:       e.Bundles,
		Sticks:        e.Sticks,
		Cost:          e.Cost.Round(2),
		SticksSold:    e.SticksSold,
		RevenueCash:   e.RevenueCash.Round(2),
		RevenueCredit: e.RevenueCredit.Round(2),
		Source:        e.Source,
		Note:          e.Note,
		PurchasedAt:   e.PurchasedAt.Format("2006-01-02"),
	}
}
