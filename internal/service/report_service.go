package service

import (
	"context"
	"time"

	"github.com/Fineboy94449/smoke/internal/dto"
	"github.com/Fineboy94449/smoke/internal/model"
	"github.com/Fineboy94449/smoke/internal/pricing"
	"github.com/Fineboy94449/smoke/internal/repository"

	"github.com/shopspring/decimal"
)

type ReportService interface {
	// Dashboard runs the overdue sweep, then aggregates the financial
	// overview: totals, risk, debtors, stock runway and goal progress.
	Dashboard(ctx context.Context) (*dto.DashboardResponse, error)
	// Periods buckets sales into today/yesterday/this week/last week/
	// this month/last month using half-open [start, end) intervals.
	Periods(ctx context.Context) (*dto.PeriodReportResponse, error)
	// DailySeries is the trailing 30-day revenue chart.
	DailySeries(ctx context.Context) (*dto.DailySeriesResponse, error)
	MonthlyFinance(ctx context.Context) (*dto.MonthlyFinanceResponse, error)
	Goals(ctx context.Context) (*dto.GoalsResponse, error)
	UpdateGoals(ctx context.Context, req dto.GoalsRequest) (*dto.GoalsResponse, error)
}

type reportService struct {
	sales   repository.SaleRepository
	debtors repository.DebtorRepository
	stock   repository.StockRepository
	finance repository.FinanceRepository
	penalty PenaltyService

	now func() time.Time
	loc *time.Location
}

func NewReportService(
	sales repository.SaleRepository,
	debtors repository.DebtorRepository,
	stock repository.StockRepository,
	finance repository.FinanceRepository,
	penalty PenaltyService,
	now func() time.Time,
	loc *time.Location,
) ReportService {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.UTC
	}
	return &reportService{
		sales:   sales,
		debtors: debtors,
		stock:   stock,
		finance: finance,
		penalty: penalty,
		now:     now,
		loc:     loc,
	}
}

func (s *reportService) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	// The sweep runs before aggregation so the dashboard reflects
	// freshly applied penalties.
	swept, err := s.penalty.RunSweep(ctx)
	if err != nil {
		return nil, err
	}

	allTime, err := s.sales.Breakdown(ctx, nil, nil)
	if err != nil {
		return nil, err
	}
	cash, credit, sticks := sumBreakdown(allTime)
	revenue := cash.Add(credit)
	profit := revenue.Sub(pricing.CostPerStick.Mul(decimal.NewFromInt(sticks)))

	now := s.now().In(s.loc)
	dayStart := startOfDay(now)
	dayEnd := dayStart.AddDate(0, 0, 1)
	today, err := s.sales.Breakdown(ctx, &dayStart, &dayEnd)
	if err != nil {
		return nil, err
	}
	todayCash, todayCredit, _ := sumBreakdown(today)

	monthStart := startOfMonth(now)
	monthEnd := monthStart.AddDate(0, 1, 0)
	month, err := s.sales.Breakdown(ctx, &monthStart, &monthEnd)
	if err != nil {
		return nil, err
	}
	monthCash, monthCredit, monthSticks := sumBreakdown(month)

	debtors, err := s.debtors.List(ctx)
	if err != nil {
		return nil, err
	}
	debtorList := make([]dto.DebtorResponse, 0, len(debtors))
	for i := range debtors {
		debtorList = append(debtorList, debtorToResponse(&debtors[i]))
	}

	totalSticks, err := s.stock.TotalSticks(ctx)
	if err != nil {
		return nil, err
	}
	remaining := totalSticks - sticks

	daysElapsed := now.Day()
	forecast := pricing.ForecastStock(int(remaining), int(monthSticks), daysElapsed)

	settings, err := s.finance.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.DashboardResponse{
		Cash:       cash.Round(2),
		Credit:     credit.Round(2),
		Profit:     profit.Round(2),
		Daily:      todayCash.Add(todayCredit).Round(2),
		Risk:       pricing.RiskLevel(cash, credit),
		SticksSold: sticks,
		Remaining:  remaining,
		StockAlert: pricing.StockAlert(int(remaining)),
		Debtors:    debtorList,
		Forecast: dto.ForecastResponse{
			AvgDailySticks: forecast.AvgDailySticks.Round(2),
			DaysUntilOut:   forecast.DaysUntilOut.Round(2),
			WeeklyBundles:  forecast.WeeklyBundles,
		},
		GoalStatus: dto.GoalStatus{
			DailyGoal:     settings.DailyGoal.Round(2),
			DailyActual:   todayCash.Add(todayCredit).Round(2),
			MonthlyGoal:   settings.MonthlyGoal.Round(2),
			MonthlyActual: monthCash.Add(monthCredit).Round(2),
		},
		SweptPoints: swept,
	}, nil
}

// period is a named half-open interval [from, to).
type period struct {
	name     string
	from, to time.Time
}

func (s *reportService) Periods(ctx context.Context) (*dto.PeriodReportResponse, error) {
	now := s.now().In(s.loc)
	dayStart := startOfDay(now)
	weekStart := startOfWeek(now)
	monthStart := startOfMonth(now)

	periods := []period{
		{"today", dayStart, dayStart.AddDate(0, 0, 1)},
		{"yesterday", dayStart.AddDate(0, 0, -1), dayStart},
		{"this_week", weekStart, weekStart.AddDate(0, 0, 7)},
		{"last_week", weekStart.AddDate(0, 0, -7), weekStart},
		{"this_month", monthStart, monthStart.AddDate(0, 1, 0)},
		{"last_month", monthStart.AddDate(0, -1, 0), monthStart},
	}

	resp := &dto.PeriodReportResponse{Periods: make([]dto.PeriodSummary, 0, len(periods))}
	for _, p := range periods {
		rows, err := s.sales.Breakdown(ctx, &p.from, &p.to)
		if err != nil {
			return nil, err
		}
		resp.Periods = append(resp.Periods, summarize(p.name, rows))
	}
	return resp, nil
}

func summarize(name string, rows []repository.BreakdownRow) dto.PeriodSummary {
	sum := dto.PeriodSummary{
		Period: name,
		Cash:   decimal.Zero, Credit: decimal.Zero,
		Loose: decimal.Zero, Pack: decimal.Zero,
		Total: decimal.Zero, Profit: decimal.Zero,
	}
	for _, r := range rows {
		if r.Method == pricing.MethodCash {
			sum.Cash = sum.Cash.Add(r.Total)
		} else {
			sum.Credit = sum.Credit.Add(r.Total)
		}
		if r.ItemType == pricing.ItemLoose {
			sum.Loose = sum.Loose.Add(r.Total)
		} else {
			sum.Pack = sum.Pack.Add(r.Total)
		}
		sum.Total = sum.Total.Add(r.Total)
		sum.Sticks += r.Sticks
		sum.Count += r.Count
	}
	sum.Profit = sum.Total.Sub(pricing.CostPerStick.Mul(decimal.NewFromInt(sum.Sticks))).Round(2)
	sum.Cash = sum.Cash.Round(2)
	sum.Credit = sum.Credit.Round(2)
	sum.Loose = sum.Loose.Round(2)
	sum.Pack = sum.Pack.Round(2)
	sum.Total = sum.Total.Round(2)
	return sum
}

const seriesDays = 30

func (s *reportService) DailySeries(ctx context.Context) (*dto.DailySeriesResponse, error) {
	now := s.now().In(s.loc)
	from := startOfDay(now).AddDate(0, 0, -(seriesDays - 1))
	rows, err := s.sales.DailyRevenue(ctx, from)
	if err != nil {
		return nil, err
	}

	byDay := make(map[string]decimal.Decimal, len(rows))
	for _, r := range rows {
		byDay[r.Day.Format("2006-01-02")] = r.Total
	}

	// Emit every day of the window so the chart has no gaps.
	resp := &dto.DailySeriesResponse{Series: make([]dto.DailyPoint, 0, seriesDays)}
	for d := from; !d.After(startOfDay(now)); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		total, ok := byDay[key]
		if !ok {
			total = decimal.Zero
		}
		resp.Series = append(resp.Series, dto.DailyPoint{Day: key, Total: total.Round(2)})
	}
	return resp, nil
}

func (s *reportService) MonthlyFinance(ctx context.Context) (*dto.MonthlyFinanceResponse, error) {
	now := s.now().In(s.loc)
	from := startOfMonth(now)
	to := from.AddDate(0, 1, 0)

	rows, err := s.sales.Breakdown(ctx, &from, &to)
	if err != nil {
		return nil, err
	}
	cash, credit, _ := sumBreakdown(rows)
	revenue := cash.Add(credit)

	expenses, err := s.finance.SumExpenses(ctx, from, to)
	if err != nil {
		return nil, err
	}
	injections, err := s.finance.SumInjections(ctx, from, to)
	if err != nil {
		return nil, err
	}

	return &dto.MonthlyFinanceResponse{
		Month:      from.Format("January 2006"),
		Revenue:    revenue.Round(2),
		Expenses:   expenses.Round(2),
		Injections: injections.Round(2),
		Net:        revenue.Sub(expenses).Add(injections).Round(2),
	}, nil
}

func (s *reportService) Goals(ctx context.Context) (*dto.GoalsResponse, error) {
	settings, err := s.finance.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.GoalsResponse{
		DailyGoal:   settings.DailyGoal.Round(2),
		MonthlyGoal: settings.MonthlyGoal.Round(2),
	}, nil
}

func (s *reportService) UpdateGoals(ctx context.Context, req dto.GoalsRequest) (*dto.GoalsResponse, error) {
	if err := s.finance.SaveSettings(ctx, &model.Settings{
		DailyGoal:   req.DailyGoal,
		MonthlyGoal: req.MonthlyGoal,
	}); err != nil {
		return nil, err
	}
	return &dto.GoalsResponse{
		DailyGoal:   req.DailyGoal.Round(2),
		MonthlyGoal: req.MonthlyGoal.Round(2),
	}, nil
}

func sumBreakdown(rows []repository.BreakdownRow) (cash, credit decimal.Decimal, sticks int64) {
	cash, credit = decimal.Zero, decimal.Zero
	for _, r := range rows {
		if r.Method == pricing.MethodCash {
			cash = cash.Add(r.Total)
		} else {
			credit = credit.Add(r.Total)
		}
		sticks += r.Sticks
	}
	return cash, credit, sticks
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// startOfWeek returns the Monday 00:00 of t's week.
func startOfWeek(t time.Time) time.Time {
	day := startOfDay(t)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
