// Package pricing holds the pure business rules of the shop: the price
// table, cost basis, loyalty tier bands, credit-risk classification, stock
// alerts and the restock forecast. Nothing here touches the database.
package pricing

import (
	"math"

	"github.com/shopspring/decimal"
)

// Item kinds and payment methods.
const (
	ItemLoose = "loose"
	ItemPack  = "pack"

	MethodCash   = "cash"
	MethodCredit = "credit"
)

// Physical units: 20 sticks to a pack, 200 sticks to a wholesale bundle.
const (
	SticksPerPack   = 20
	SticksPerBundle = 200
)

var (
	// Price table. Packs sold on credit carry a markup.
	LoosePrice      = decimal.NewFromFloat(1.50)
	PackPriceCash   = decimal.NewFromInt(30)
	PackPriceCredit = decimal.NewFromInt(40)

	// BundleCost is the wholesale cost of one bundle of 200 sticks.
	BundleCost = decimal.NewFromFloat(145.00)

	// CostPerStick = 145.00 / 200 = 0.725
	CostPerStick = BundleCost.Div(decimal.NewFromInt(SticksPerBundle))
)

// Quote is the priced result of a sale request.
type Quote struct {
	Price  decimal.Decimal
	Sticks int
	Profit decimal.Decimal
}

// Price computes price, stick count and profit for qty units of the given
// item kind. qty is packs for "pack" and sticks for "loose". Quantity
// validation happens at the request boundary; this function prices whatever
// it is given.
func Price(itemType string, qty int, method string) Quote {
	var unit decimal.Decimal
	sticks := qty
	if itemType == ItemPack {
		sticks = qty * SticksPerPack
		unit = PackPriceCash
		if method == MethodCredit {
			unit = PackPriceCredit
		}
	} else {
		unit = LoosePrice
	}

	price := unit.Mul(decimal.NewFromInt(int64(qty)))
	cost := CostPerStick.Mul(decimal.NewFromInt(int64(sticks)))
	return Quote{
		Price:  price,
		Sticks: sticks,
		Profit: price.Sub(cost),
	}
}

// Profit returns price minus cost basis for an already-priced sale.
func Profit(price decimal.Decimal, sticks int) decimal.Decimal {
	return price.Sub(CostPerStick.Mul(decimal.NewFromInt(int64(sticks))))
}

// PointsForSale returns the loyalty points a credit sale earns: one point
// per full pack of sticks. Loose sales under 20 sticks earn nothing.
func PointsForSale(sticks int) int {
	return sticks / SticksPerPack
}

// PaymentBonusPoints is the flat award for any debt repayment.
const PaymentBonusPoints = 5

// Tier bands. Thresholds are inclusive lower bounds.
const (
	trustedMinPoints = 100
	regularMinPoints = 50
)

var (
	limitTrusted = decimal.NewFromInt(120)
	limitRegular = decimal.NewFromInt(100)
	limitNew     = decimal.NewFromInt(80)
)

// TierFor classifies accumulated points into a tier name and the credit
// limit that tier carries. Monotonic in points.
func TierFor(points int) (tier string, creditLimit decimal.Decimal) {
	switch {
	case points >= trustedMinPoints:
		return "trusted", limitTrusted
	case points >= regularMinPoints:
		return "regular", limitRegular
	default:
		return "new", limitNew
	}
}

// Risk levels for the credit/cash exposure ratio.
const (
	RiskHigh   = "HIGH"
	RiskMedium = "MEDIUM"
	RiskSafe   = "SAFE"
)

// RiskLevel classifies credit exposure: ratio = credit/cash, HIGH above
// 0.6, MEDIUM above 0.3. With no cash sales at all, any credit is HIGH.
func RiskLevel(cashTotal, creditTotal decimal.Decimal) string {
	if cashTotal.IsZero() {
		if creditTotal.IsPositive() {
			return RiskHigh
		}
		return RiskSafe
	}
	ratio := creditTotal.Div(cashTotal)
	switch {
	case ratio.GreaterThan(decimal.NewFromFloat(0.6)):
		return RiskHigh
	case ratio.GreaterThan(decimal.NewFromFloat(0.3)):
		return RiskMedium
	default:
		return RiskSafe
	}
}

// Stock alert levels.
const (
	StockOut  = "out"
	StockLow  = "low"
	StockSafe = "safe"

	lowStockSticks = 200
)

// StockAlert classifies remaining stick count.
func StockAlert(remaining int) string {
	switch {
	case remaining <= 0:
		return StockOut
	case remaining < lowStockSticks:
		return StockLow
	default:
		return StockSafe
	}
}

// Forecast is the cash-flow / stockout projection.
type Forecast struct {
	AvgDailySticks  decimal.Decimal
	DaysUntilOut    decimal.Decimal
	WeeklyBundles   int
	RemainingSticks int
}

// ForecastStock projects stock runway from average daily consumption since
// the start of the month. daysElapsed includes today (minimum 1). The
// weekly restock estimate rounds up and is never below one bundle.
func ForecastStock(remaining, sticksSoldThisMonth, daysElapsed int) Forecast {
	if daysElapsed < 1 {
		daysElapsed = 1
	}
	avg := decimal.NewFromInt(int64(sticksSoldThisMonth)).Div(decimal.NewFromInt(int64(daysElapsed)))

	f := Forecast{
		AvgDailySticks:  avg,
		RemainingSticks: remaining,
		WeeklyBundles:   1,
	}
	if avg.IsZero() {
		return f
	}
	f.DaysUntilOut = decimal.NewFromInt(int64(remaining)).Div(avg)

	weeklyNeed, _ := avg.Mul(decimal.NewFromInt(7)).Float64()
	bundles := int(math.Ceil(weeklyNeed / SticksPerBundle))
	if bundles < 1 {
		bundles = 1
	}
	f.WeeklyBundles = bundles
	return f
}
