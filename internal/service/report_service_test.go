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

type reportFixture struct {
	svc       service.ReportService
	sales     *stubSaleRepo
	debtors   *stubDebtorRepo
	customers *stubCustomerRepo
	stock     *stubStockRepo
	finance   *stubFinanceRepo
}

func buildReportSvc() *reportFixture {
	sales := newStubSaleRepo()
	debtors := newStubDebtorRepo()
	customers := newStubCustomerRepo()
	stock := newStubStockRepo()
	finance := &stubFinanceRepo{}
	points := &stubPointRepo{}
	loyalty := service.NewLoyaltyService(customers, points)
	penalty := service.NewPenaltyService(customers, loyalty, nil, fixedNow)
	svc := service.NewReportService(sales, debtors, stock, finance, penalty, fixedNow, time.UTC)
	return &reportFixture{svc: svc, sales: sales, debtors: debtors, customers: customers, stock: stock, finance: finance}
}

func seedSale(f *reportFixture, method, item string, sticks int, price float64, at time.Time) {
	f.sales.sales = append(f.sales.sales, &model.Sale{
		ID:        uuid.New(),
		Qty:       sticks,
		Price:     decimal.NewFromFloat(price),
		Method:    method,
		Customer:  "Cash Customer",
		ItemType:  item,
		CreatedAt: at,
	})
}

func TestDashboard_RiskHigh(t *testing.T) {
	f := buildReportSvc()
	seedSale(f, "cash", "pack", 200, 300, testNow)
	seedSale(f, "credit", "pack", 140, 210, testNow)

	resp, err := f.svc.Dashboard(context.Background())
	require.NoError(t, err)

	// credit/cash ratio 0.7 crosses the 0.6 line.
	assert.Equal(t, "HIGH", resp.Risk)
	assert.True(t, resp.Cash.Equal(decimal.NewFromInt(300)))
	assert.True(t, resp.Credit.Equal(decimal.NewFromInt(210)))
	assert.Equal(t, int64(340), resp.SticksSold)
}

func TestDashboard_RiskSafeAndProfit(t *testing.T) {
	f := buildReportSvc()
	seedSale(f, "cash", "pack", 20, 30, testNow)

	resp, err := f.svc.Dashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "SAFE", resp.Risk)
	// 30 revenue − 20 sticks × 0.725 cost.
	assert.True(t, resp.Profit.Equal(decimal.NewFromFloat(15.5)), "got %s", resp.Profit)
}

func TestDashboard_StockRunway(t *testing.T) {
	f := buildReportSvc()
	f.stock.entries = append(f.stock.entries, &model.StockEntry{
		ID: uuid.New(), Bundles: 2, Sticks: 400, Cost: decimal.NewFromInt(290), PurchasedAt: testNow,
	})
	seedSale(f, "cash", "pack", 100, 150, testNow.AddDate(0, 0, -5))

	resp, err := f.svc.Dashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(300), resp.Remaining)
	assert.Equal(t, "safe", resp.StockAlert)
	// testNow is the 15th: 100 sticks / 15 days.
	assert.True(t, resp.Forecast.AvgDailySticks.Equal(decimal.NewFromFloat(6.67)), "got %s", resp.Forecast.AvgDailySticks)
}

func TestDashboard_RunsSweepFirst(t *testing.T) {
	f := buildReportSvc()
	fiveWeeksAgo := testNow.AddDate(0, 0, -35)
	f.customers.customers["1"] = &model.Customer{
		Phone: "1", Name: "Thabo", Approved: true, Points: 10,
		Tier: model.TierNew, CreditLimit: decimal.NewFromInt(80),
		CurrentDebt:     decimal.NewFromInt(50),
		DebtAtLastCheck: decimal.NewFromInt(50),
		LastDebtCheck:   &fiveWeeksAgo,
	}

	resp, err := f.svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, resp.SweptPoints)
	assert.Equal(t, 8, f.customers.customers["1"].Points)
}

func TestDashboard_GoalStatus(t *testing.T) {
	f := buildReportSvc()
	f.finance.settings = &model.Settings{ID: 1, DailyGoal: decimal.NewFromInt(200), MonthlyGoal: decimal.NewFromInt(5000)}
	seedSale(f, "cash", "pack", 20, 30, testNow)                   // today
	seedSale(f, "cash", "pack", 20, 30, testNow.AddDate(0, 0, -3)) // earlier this month

	resp, err := f.svc.Dashboard(context.Background())
	require.NoError(t, err)

	assert.True(t, resp.GoalStatus.DailyGoal.Equal(decimal.NewFromInt(200)))
	assert.True(t, resp.GoalStatus.DailyActual.Equal(decimal.NewFromInt(30)))
	assert.True(t, resp.GoalStatus.MonthlyActual.Equal(decimal.NewFromInt(60)))
}

func TestPeriods_Buckets(t *testing.T) {
	f := buildReportSvc()
	// testNow is Sunday 2026-03-15; the week started Monday the 9th.
	seedSale(f, "cash", "pack", 20, 30, testNow)                      // today
	seedSale(f, "credit", "loose", 2, 3, testNow.AddDate(0, 0, -1))   // yesterday
	seedSale(f, "cash", "pack", 20, 30, testNow.AddDate(0, 0, -8))    // last week
	seedSale(f, "cash", "pack", 20, 30, testNow.AddDate(0, -1, 0))    // last month

	resp, err := f.svc.Periods(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.Periods, 6)

	byName := make(map[string]dto.PeriodSummary)
	for _, p := range resp.Periods {
		byName[p.Period] = p
	}

	assert.True(t, byName["today"].Total.Equal(decimal.NewFromInt(30)))
	assert.True(t, byName["yesterday"].Credit.Equal(decimal.NewFromInt(3)))
	assert.True(t, byName["this_week"].Total.Equal(decimal.NewFromInt(33)), "today + yesterday, got %s", byName["this_week"].Total)
	assert.True(t, byName["last_week"].Total.Equal(decimal.NewFromInt(30)))
	assert.True(t, byName["this_month"].Total.Equal(decimal.NewFromInt(63)))
	assert.True(t, byName["last_month"].Total.Equal(decimal.NewFromInt(30)))
}

func TestDailySeries_FillsGaps(t *testing.T) {
	f := buildReportSvc()
	seedSale(f, "cash", "pack", 20, 30, testNow)
	seedSale(f, "cash", "pack", 20, 30, testNow.AddDate(0, 0, -2))

	resp, err := f.svc.DailySeries(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.Series, 30)

	last := resp.Series[len(resp.Series)-1]
	assert.Equal(t, testNow.Format("2006-01-02"), last.Day)
	assert.True(t, last.Total.Equal(decimal.NewFromInt(30)))

	gap := resp.Series[len(resp.Series)-2]
	assert.True(t, gap.Total.IsZero(), "missing days appear as zero")
}

func TestMonthlyFinance_Net(t *testing.T) {
	f := buildReportSvc()
	seedSale(f, "cash", "pack", 20, 30, testNow)
	f.finance.expenses = append(f.finance.expenses, model.Expense{
		Amount: decimal.NewFromInt(10), SpentAt: testNow,
	})
	f.finance.injections = append(f.finance.injections, model.Injection{
		Amount: decimal.NewFromInt(100), InjectedAt: testNow,
	})

	resp, err := f.svc.MonthlyFinance(context.Background())
	require.NoError(t, err)

	assert.True(t, resp.Revenue.Equal(decimal.NewFromInt(30)))
	assert.True(t, resp.Net.Equal(decimal.NewFromInt(120)), "30 − 10 + 100, got %s", resp.Net)
}

func TestGoals_RoundTrip(t *testing.T) {
	f := buildReportSvc()

	updated, err := f.svc.UpdateGoals(context.Background(), dto.GoalsRequest{
		DailyGoal:   decimal.NewFromInt(250),
		MonthlyGoal: decimal.NewFromInt(6000),
	})
	require.NoError(t, err)
	assert.True(t, updated.DailyGoal.Equal(decimal.NewFromInt(250)))

	read, err := f.svc.Goals(context.Background())
	require.NoError(t, err)
	assert.True(t, read.MonthlyGoal.Equal(decimal.NewFromInt(6000)))
}
