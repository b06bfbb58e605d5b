package dto

import "github.com/shopspring/decimal"

type AddExpenseRequest struct {
	Amount      decimal.Decimal `json:"amount" validate:"required,gt=0"`
	Description string          `json:"description" validate:"required"`
	Source      string          `json:"source" validate:"omitempty,oneof=business personal"`
	Date        string          `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

type AddInjectionRequest struct {
	Amount      decimal.Decimal `json:"amount" validate:"required,gt=0"`
	Description string          `json:"description" validate:"required"`
	Date        string          `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

type GoalsRequest struct {
	DailyGoal   decimal.Decimal `json:"daily_goal" validate:"gte=0"`
	MonthlyGoal decimal.Decimal `json:"monthly_goal" validate:"gte=0"`
}

type GoalsResponse struct {
	DailyGoal   decimal.Decimal `json:"daily_goal"`
	MonthlyGoal decimal.Decimal `json:"monthly_goal"`
}
