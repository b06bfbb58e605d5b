package dto

import "github.com/shopspring/decimal"

type DashboardResponse struct {
	Cash        decimal.Decimal  `json:"cash"`
	Credit      decimal.Decimal  `json:"credit"`
	Profit      decimal.Decimal  `json:"profit"`
	Daily       decimal.Decimal  `json:"daily"`
	Risk        string           `json:"risk"`
	SticksSold  int64            `json:"sticks_sold"`
	Remaining   int64            `json:"sticks_remaining"`
	StockAlert  string           `json:"stock_alert"`
	Debtors     []DebtorResponse `json:"debtors"`
	Forecast    ForecastResponse `json:"forecast"`
	GoalStatus  GoalStatus       `json:"goal_status"`
	SweptPoints int              `json:"swept_points"` // points deducted by this load's overdue sweep
}

type ForecastResponse struct {
	AvgDailySticks decimal.Decimal `json:"avg_daily_sticks"`
	DaysUntilOut   decimal.Decimal `json:"days_until_out"`
	WeeklyBundles  int             `json:"weekly_restock_bundles"`
}

type GoalStatus struct {
	DailyGoal     decimal.Decimal `json:"daily_goal"`
	DailyActual   decimal.Decimal `json:"daily_actual"`
	MonthlyGoal   decimal.Decimal `json:"monthly_goal"`
	MonthlyActual decimal.Decimal `json:"monthly_actual"`
}

// PeriodSummary is the cash/credit × loose/pack partition of one calendar
// bucket.
type PeriodSummary struct {
	Period  string          `json:"period"`
	Cash    decimal.Decimal `json:"cash"`
	Credit  decimal.Decimal `json:"credit"`
	Loose   decimal.Decimal `json:"loose"`
	Pack    decimal.Decimal `json:"pack"`
	Total   decimal.Decimal `json:"total"`
	Sticks  int64           `json:"sticks"`
	Count   int64           `json:"count"`
	Profit  decimal.Decimal `json:"profit"`
}

type PeriodReportResponse struct {
	Periods []PeriodSummary `json:"periods"`
}

type DailyPoint struct {
	Day   string          `json:"day"`
	Total decimal.Decimal `json:"total"`
}

type DailySeriesResponse struct {
	Series []DailyPoint `json:"series"`
}

type MonthlyFinanceResponse struct {
	Month      string          `json:"month"`
	Revenue    decimal.Decimal `json:"revenue"`
	Expenses   decimal.Decimal `json:"expenses"`
	Injections decimal.Decimal `json:"injections"`
	Net        decimal.Decimal `json:"net"`
}
