package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/Fineboy94449/smoke/internal/dto"
	"github.com/Fineboy94449/smoke/internal/model"
	"github.com/Fineboy94449/smoke/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stockFixture struct {
	svc   service.StockService
	stock *stubStockRepo
	sales *stubSaleRepo
}

func buildStockSvc() *stockFixture {
	stock := newStubStockRepo()
	sales := newStubSaleRepo()
	svc := service.NewStockService(stock, sales, fixedNow, time.UTC)
	return &stockFixture{svc: svc, stock: stock, sales: sales}
}

func TestAddPurchase_Defaults(t *testing.T) {
	f := buildStockSvc()

	resp, err := f.svc.AddPurchase(context.Background(), dto.AddStockRequest{Bundles: 2})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Bundles)
	assert.Equal(t, 400, resp.Sticks)
	assert.True(t, resp.Cost.Equal(decimal.NewFromInt(290)), "2 bundles at R145, got %s", resp.Cost)
	assert.Equal(t, "business", resp.Source)
	assert.Equal(t, "2026-03-15", resp.PurchasedAt)

	require.Len(t, f.stock.entries, 1)
}

func TestAddPurchase_BackdatedPersonal(t *testing.T) {
	f := buildStockSvc()

	resp, err := f.svc.AddPurchase(context.Background(), dto.AddStockRequest{
		Bundles: 1,
		Source:  "personal",
		Note:    "topped up from home",
		Date:    "2026-02-28",
	})
	require.NoError(t, err)

	assert.Equal(t, "personal", resp.Source)
	assert.Equal(t, "2026-02-28", resp.PurchasedAt)
	assert.Equal(t, "topped up from home", resp.Note)
}

func TestAddPurchase_BadDate(t *testing.T) {
	f := buildStockSvc()

	_, err := f.svc.AddPurchase(context.Background(), dto.AddStockRequest{Bundles: 1, Date: "28-02-2026"})
	require.Error(t, err)
	assert.Empty(t, f.stock.entries)
}

func TestDeleteEntry(t *testing.T) {
	f := buildStockSvc()
	entry := &model.StockEntry{ID: uuid.New(), Bundles: 1, Sticks: 200, Cost: decimal.NewFromInt(145), PurchasedAt: testNow}
	f.stock.entries = append(f.stock.entries, entry)

	require.NoError(t, f.svc.DeleteEntry(context.Background(), entry.ID))
	assert.Empty(t, f.stock.entries)

	err := f.svc.DeleteEntry(context.Background(), uuid.New())
	assert.Error(t, err)
}

func TestOverview_MonthlyGrouping(t *testing.T) {
	f := buildStockSvc()
	f.stock.entries = append(f.stock.entries,
		&model.StockEntry{ID: uuid.New(), Bundles: 1, Sticks: 200, Cost: decimal.NewFromInt(145), PurchasedAt: testNow},
		&model.StockEntry{ID: uuid.New(), Bundles: 2, Sticks: 400, Cost: decimal.NewFromInt(290), PurchasedAt: testNow.AddDate(0, 0, -10)},
		&model.StockEntry{ID: uuid.New(), Bundles: 1, Sticks: 200, Cost: decimal.NewFromInt(145), PurchasedAt: testNow.AddDate(0, -1, 0)},
	)

	resp, err := f.svc.Overview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, resp.TotalBundles)
	assert.True(t, resp.TotalSpent.Equal(decimal.NewFromInt(580)))
	assert.Equal(t, int64(800), resp.TotalSticks)

	require.Len(t, resp.Monthly, 2)
	assert.Equal(t, "March 2026", resp.Monthly[0].Month)
	assert.Equal(t, 3, resp.Monthly[0].Bundles)
	assert.True(t, resp.Monthly[0].Cost.Equal(decimal.NewFromInt(435)))
	assert.Equal(t, "February 2026", resp.Monthly[1].Month)
	require.Len(t, resp.Monthly[1].Entries, 1)
}

func TestOverview_RemainingAndAlert(t *testing.T) {
	f := buildStockSvc()
	f.stock.entries = append(f.stock.entries, &model.StockEntry{
		ID: uuid.New(), Bundles: 1, Sticks: 200, Cost: decimal.NewFromInt(145), PurchasedAt: testNow,
	})
	f.sales.sales = append(f.sales.sales, &model.Sale{
		ID: uuid.New(), Qty: 150, Price: decimal.NewFromInt(225), Method: "cash",
		Customer: "Cash Customer", ItemType: "loose", CreatedAt: testNow,
	})

	resp, err := f.svc.Overview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(150), resp.SticksSold)
	assert.Equal(t, int64(50), resp.SticksRemaining)
	assert.Equal(t, "low", resp.AlertLevel)
}
