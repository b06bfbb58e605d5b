package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/Fineboy94449/smoke/internal/model"
	"github.com/Fineboy94449/smoke/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type penaltyFixture struct {
	svc       service.PenaltyService
	customers *stubCustomerRepo
	points    *stubPointRepo
}

func buildPenaltySvc() *penaltyFixture {
	customers := newStubCustomerRepo()
	points := &stubPointRepo{}
	loyalty := service.NewLoyaltyService(customers, points)
	svc := service.NewPenaltyService(customers, loyalty, nil, fixedNow)
	return &penaltyFixture{svc: svc, customers: customers, points: points}
}

func seedSweepCustomer(f *penaltyFixture, phone string, points int, debt, baseline decimal.Decimal, lastCheck *time.Time) *model.Customer {
	c := &model.Customer{
		Phone:           phone,
		Name:            "c-" + phone,
		Approved:        true,
		Points:          points,
		Tier:            model.TierNew,
		CreditLimit:     decimal.NewFromInt(80),
		CurrentDebt:     debt,
		DebtAtLastCheck: baseline,
		LastDebtCheck:   lastCheck,
	}
	f.customers.customers[phone] = c
	return c
}

func TestSweep_StaleDebt(t *testing.T) {
	f := buildPenaltySvc()
	fiveWeeksAgo := testNow.AddDate(0, 0, -35)
	seedSweepCustomer(f, "1", 10, decimal.NewFromInt(50), decimal.NewFromInt(50), &fiveWeeksAgo)

	swept, err := f.svc.RunSweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, swept)

	c, _ := f.customers.FindByPhone(context.Background(), "1")
	assert.Equal(t, 8, c.Points)
	require.NotNil(t, c.LastDebtCheck)
	assert.Equal(t, testNow, *c.LastDebtCheck, "stale penalty restamps the check time")

	require.Len(t, f.points.entries, 1)
	assert.Equal(t, -2, f.points.entries[0].Delta)
}

func TestSweep_RecentDebtUntouched(t *testing.T) {
	f := buildPenaltySvc()
	twoWeeksAgo := testNow.AddDate(0, 0, -14)
	seedSweepCustomer(f, "1", 10, decimal.NewFromInt(50), decimal.NewFromInt(50), &twoWeeksAgo)

	swept, err := f.svc.RunSweep(context.Background())
	require.NoError(t, err)
	assert.Zero(t, swept)
}

func TestSweep_DebtGrowth(t *testing.T) {
	f := buildPenaltySvc()
	justNow := testNow.Add(-time.Hour)
	seedSweepCustomer(f, "1", 10, decimal.NewFromInt(110), decimal.NewFromInt(100), &justNow)

	swept, err := f.svc.RunSweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, swept, "10% growth fires the penalty")

	c, _ := f.customers.FindByPhone(context.Background(), "1")
	assert.Equal(t, 8, c.Points)
	assert.True(t, c.DebtAtLastCheck.Equal(decimal.NewFromInt(110)), "baseline moves to current debt")
}

func TestSweep_GrowthBelowThreshold(t *testing.T) {
	f := buildPenaltySvc()
	justNow := testNow.Add(-time.Hour)
	seedSweepCustomer(f, "1", 10, decimal.NewFromInt(109), decimal.NewFromInt(100), &justNow)

	swept, err := f.svc.RunSweep(context.Background())
	require.NoError(t, err)
	assert.Zero(t, swept, "9% growth is under the threshold")
}

func TestSweep_ZeroBaselineSkipped(t *testing.T) {
	f := buildPenaltySvc()
	justNow := testNow.Add(-time.Hour)
	seedSweepCustomer(f, "1", 10, decimal.NewFromInt(50), decimal.Zero, &justNow)

	swept, err := f.svc.RunSweep(context.Background())
	require.NoError(t, err)
	assert.Zero(t, swept, "no growth ratio exists over a zero baseline")
}

func TestSweep_BothPenaltiesStack(t *testing.T) {
	f := buildPenaltySvc()
	fiveWeeksAgo := testNow.AddDate(0, 0, -35)
	seedSweepCustomer(f, "1", 10, decimal.NewFromInt(200), decimal.NewFromInt(100), &fiveWeeksAgo)

	swept, err := f.svc.RunSweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, swept)

	c, _ := f.customers.FindByPhone(context.Background(), "1")
	assert.Equal(t, 6, c.Points)
	assert.Len(t, f.points.entries, 2)
}

func TestSweep_PointsFloorAtZero(t *testing.T) {
	f := buildPenaltySvc()
	fiveWeeksAgo := testNow.AddDate(0, 0, -35)
	seedSweepCustomer(f, "1", 1, decimal.NewFromInt(200), decimal.NewFromInt(100), &fiveWeeksAgo)

	swept, err := f.svc.RunSweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, swept)

	c, _ := f.customers.FindByPhone(context.Background(), "1")
	assert.Zero(t, c.Points, "balance never goes negative")
}

func TestSweep_SkipsDebtFree(t *testing.T) {
	f := buildPenaltySvc()
	fiveWeeksAgo := testNow.AddDate(0, 0, -35)
	c := seedSweepCustomer(f, "1", 10, decimal.Zero, decimal.NewFromInt(100), &fiveWeeksAgo)
	c.CurrentDebt = decimal.Zero

	swept, err := f.svc.RunSweep(context.Background())
	require.NoError(t, err)
	assert.Zero(t, swept, "debt-free customers are not swept")
}

func TestSweep_MultipleCustomers(t *testing.T) {
	f := buildPenaltySvc()
	fiveWeeksAgo := testNow.AddDate(0, 0, -35)
	justNow := testNow.Add(-time.Hour)
	seedSweepCustomer(f, "1", 10, decimal.NewFromInt(50), decimal.NewFromInt(50), &fiveWeeksAgo)
	seedSweepCustomer(f, "2", 10, decimal.NewFromInt(120), decimal.NewFromInt(100), &justNow)
	seedSweepCustomer(f, "3", 10, decimal.NewFromInt(50), decimal.NewFromInt(50), &justNow)

	swept, err := f.svc.RunSweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, swept, "one stale + one growth penalty")
}
