package service_test

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/Fineboy94449/smoke/internal/model"
	"github.com/Fineboy94449/smoke/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

// stubSaleRepo is an in-memory SaleRepository for testing.
type stubSaleRepo struct {
	sales []*model.Sale
}

func newStubSaleRepo() *stubSaleRepo { return &stubSaleRepo{} }

func (r *stubSaleRepo) Create(_ context.Context, _ *gorm.DB, s *model.Sale) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.sales = append(r.sales, s)
	return nil
}

func (r *stubSaleRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Sale, error) {
	for _, s := range r.sales {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubSaleRepo) Delete(_ context.Context, _ *gorm.DB, id uuid.UUID) error {
	for i, s := range r.sales {
		if s.ID == id {
			r.sales = append(r.sales[:i], r.sales[i+1:]...)
			return nil
		}
	}
	return errors.New("not found")
}

func (r *stubSaleRepo) Recent(_ context.Context, n int) ([]model.Sale, error) {
	out := make([]model.Sale, 0, n)
	for i := len(r.sales) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, *r.sales[i])
	}
	return out, nil
}

func (r *stubSaleRepo) ListByCustomer(_ context.Context, customer string, n int) ([]model.Sale, error) {
	out := make([]model.Sale, 0, n)
	for i := len(r.sales) - 1; i >= 0 && len(out) < n; i-- {
		if r.sales[i].Customer == customer {
			out = append(out, *r.sales[i])
		}
	}
	return out, nil
}

func (r *stubSaleRepo) inWindow(s *model.Sale, from, to *time.Time) bool {
	if from != nil && s.CreatedAt.Before(*from) {
		return false
	}
	if to != nil && !s.CreatedAt.Before(*to) {
		return false
	}
	return true
}

func (r *stubSaleRepo) Breakdown(_ context.Context, from, to *time.Time) ([]repository.BreakdownRow, error) {
	type key struct{ method, item string }
	agg := make(map[key]*repository.BreakdownRow)
	for _, s := range r.sales {
		if !r.inWindow(s, from, to) {
			continue
		}
		k := key{s.Method, s.ItemType}
		row, ok := agg[k]
		if !ok {
			row = &repository.BreakdownRow{Method: s.Method, ItemType: s.ItemType, Total: decimal.Zero}
			agg[k] = row
		}
		row.Total = row.Total.Add(s.Price)
		row.Sticks += int64(s.Qty)
		row.Count++
	}
	rows := make([]repository.BreakdownRow, 0, len(agg))
	for _, row := range agg {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Method != rows[j].Method {
			return rows[i].Method < rows[j].Method
		}
		return rows[i].ItemType < rows[j].ItemType
	})
	return rows, nil
}

func (r *stubSaleRepo) DailyRevenue(_ context.Context, from time.Time) ([]repository.DailyRevenueRow, error) {
	agg := make(map[string]*repository.DailyRevenueRow)
	for _, s := range r.sales {
		if s.CreatedAt.Before(from) {
			continue
		}
		day := time.Date(s.CreatedAt.Year(), s.CreatedAt.Month(), s.CreatedAt.Day(), 0, 0, 0, 0, s.CreatedAt.Location())
		k := day.Format("2006-01-02")
		row, ok := agg[k]
		if !ok {
			row = &repository.DailyRevenueRow{Day: day, Total: decimal.Zero}
			agg[k] = row
		}
		row.Total = row.Total.Add(s.Price)
	}
	rows := make([]repository.DailyRevenueRow, 0, len(agg))
	for _, row := range agg {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Day.Before(rows[j].Day) })
	return rows, nil
}

func (r *stubSaleRepo) SticksSoldBetween(_ context.Context, from, to *time.Time) (int64, error) {
	var total int64
	for _, s := range r.sales {
		if r.inWindow(s, from, to) {
			total += int64(s.Qty)
		}
	}
	return total, nil
}

func (r *stubSaleRepo) DB() *gorm.DB { return nil }

var _ repository.SaleRepository = (*stubSaleRepo)(nil)

// stubDebtorRepo is an in-memory DebtorRepository keyed by name.
type stubDebtorRepo struct {
	debtors map[string]*model.Debtor
}

func newStubDebtorRepo() *stubDebtorRepo {
	return &stubDebtorRepo{debtors: make(map[string]*model.Debtor)}
}

func (r *stubDebtorRepo) Find(_ context.Context, name string) (*model.Debtor, error) {
	d, ok := r.debtors[name]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *d
	return &cp, nil
}

func (r *stubDebtorRepo) Create(_ context.Context, _ *gorm.DB, d *model.Debtor) error {
	r.debtors[d.Name] = d
	return nil
}

func (r *stubDebtorRepo) IncrementBalance(_ context.Context, _ *gorm.DB, name string, amount decimal.Decimal, at time.Time) error {
	d, ok := r.debtors[name]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	d.Balance = d.Balance.Add(amount)
	d.LastPurchase = &at
	return nil
}

func (r *stubDebtorRepo) SetBalance(_ context.Context, _ *gorm.DB, name string, balance decimal.Decimal, paidAt *time.Time) error {
	d, ok := r.debtors[name]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	d.Balance = balance
	if paidAt != nil {
		d.LastPayment = paidAt
	}
	return nil
}

func (r *stubDebtorRepo) Delete(_ context.Context, _ *gorm.DB, name string) error {
	delete(r.debtors, name)
	return nil
}

func (r *stubDebtorRepo) List(_ context.Context) ([]model.Debtor, error) {
	out := make([]model.Debtor, 0, len(r.debtors))
	for _, d := range r.debtors {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Balance.GreaterThan(out[j].Balance) })
	return out, nil
}

func (r *stubDebtorRepo) TotalOwed(_ context.Context) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, d := range r.debtors {
		total = total.Add(d.Balance)
	}
	return total, nil
}

var _ repository.DebtorRepository = (*stubDebtorRepo)(nil)

// stubCustomerRepo is an in-memory CustomerRepository keyed by phone.
type stubCustomerRepo struct {
	customers map[string]*model.Customer
}

func newStubCustomerRepo() *stubCustomerRepo {
	return &stubCustomerRepo{customers: make(map[string]*model.Customer)}
}

func (r *stubCustomerRepo) Create(_ context.Context, c *model.Customer) error {
	if _, ok := r.customers[c.Phone]; ok {
		return errors.New("duplicate")
	}
	r.customers[c.Phone] = c
	return nil
}

func (r *stubCustomerRepo) FindByPhone(_ context.Context, phone string) (*model.Customer, error) {
	c, ok := r.customers[phone]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *stubCustomerRepo) FindByPhoneTx(ctx context.Context, _ *gorm.DB, phone string) (*model.Customer, error) {
	return r.FindByPhone(ctx, phone)
}

func (r *stubCustomerRepo) FindByName(_ context.Context, name string) (*model.Customer, error) {
	for _, c := range r.customers {
		if c.Name == name && c.Approved {
			cp := *c
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCustomerRepo) List(_ context.Context, approvedOnly bool) ([]model.Customer, error) {
	out := make([]model.Customer, 0, len(r.customers))
	for _, c := range r.customers {
		if approvedOnly && !c.Approved {
			continue
		}
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Phone < out[j].Phone })
	return out, nil
}

func (r *stubCustomerRepo) Save(_ context.Context, c *model.Customer) error {
	r.customers[c.Phone] = c
	return nil
}

// UpdateFields mimics the SQL expressions the real repository issues for
// debt columns so service flows can be asserted end to end.
func (r *stubCustomerRepo) UpdateFields(_ context.Context, _ *gorm.DB, phone string, fields map[string]interface{}) error {
	c, ok := r.customers[phone]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for k, v := range fields {
		switch k {
		case "current_debt":
			c.CurrentDebt = applyDecimalField(c.CurrentDebt, v)
		case "debt_at_last_check":
			c.DebtAtLastCheck = applyDecimalField(c.DebtAtLastCheck, v)
		case "last_debt_check":
			t := v.(time.Time)
			c.LastDebtCheck = &t
		case "tier":
			c.Tier = v.(string)
		case "credit_limit":
			c.CreditLimit = applyDecimalField(c.CreditLimit, v)
		}
	}
	return nil
}

func applyDecimalField(cur decimal.Decimal, v interface{}) decimal.Decimal {
	switch val := v.(type) {
	case decimal.Decimal:
		return val
	case clause.Expr:
		amt := val.Vars[0].(decimal.Decimal)
		if strings.Contains(val.SQL, "-") {
			next := cur.Sub(amt)
			if strings.Contains(val.SQL, "GREATEST") && next.IsNegative() {
				return decimal.Zero
			}
			return next
		}
		return cur.Add(amt)
	default:
		return cur
	}
}

func (r *stubCustomerRepo) AddPoints(_ context.Context, _ *gorm.DB, phone string, delta int) error {
	c, ok := r.customers[phone]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.Points += delta
	if c.Points < 0 {
		c.Points = 0
	}
	return nil
}

func (r *stubCustomerRepo) ListForSweep(_ context.Context) ([]model.Customer, error) {
	out := make([]model.Customer, 0)
	for _, c := range r.customers {
		if c.Approved && c.CurrentDebt.IsPositive() {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Phone < out[j].Phone })
	return out, nil
}

var _ repository.CustomerRepository = (*stubCustomerRepo)(nil)

// stubPaymentRepo captures created payments for assertion.
type stubPaymentRepo struct {
	payments []model.Payment
}

func (r *stubPaymentRepo) Create(_ context.Context, _ *gorm.DB, p *model.Payment) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.payments = append(r.payments, *p)
	return nil
}

func (r *stubPaymentRepo) ListByCustomer(_ context.Context, customer string, n int) ([]model.Payment, error) {
	out := make([]model.Payment, 0, n)
	for i := len(r.payments) - 1; i >= 0 && len(out) < n; i-- {
		if r.payments[i].Customer == customer {
			out = append(out, r.payments[i])
		}
	}
	return out, nil
}

var _ repository.PaymentRepository = (*stubPaymentRepo)(nil)

// stubPointRepo captures the point history log.
type stubPointRepo struct {
	entries []model.PointHistory
}

func (r *stubPointRepo) Create(_ context.Context, _ *gorm.DB, e *model.PointHistory) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	r.entries = append(r.entries, *e)
	return nil
}

func (r *stubPointRepo) ListByCustomer(_ context.Context, customer string, n int) ([]model.PointHistory, error) {
	out := make([]model.PointHistory, 0, n)
	for i := len(r.entries) - 1; i >= 0 && len(out) < n; i-- {
		if r.entries[i].Customer == customer {
			out = append(out, r.entries[i])
		}
	}
	return out, nil
}

var _ repository.PointHistoryRepository = (*stubPointRepo)(nil)

// stubStockRepo is an in-memory StockRepository with FIFO open entries.
type stubStockRepo struct {
	entries []*model.StockEntry
}

func newStubStockRepo() *stubStockRepo { return &stubStockRepo{} }

func (r *stubStockRepo) Create(_ context.Context, e *model.StockEntry) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	r.entries = append(r.entries, e)
	return nil
}

func (r *stubStockRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, e := range r.entries {
		if e.ID == id {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubStockRepo) List(_ context.Context) ([]model.StockEntry, error) {
	out := make([]model.StockEntry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PurchasedAt.After(out[j].PurchasedAt) })
	return out, nil
}

func (r *stubStockRepo) OpenEntries(_ context.Context, _ *gorm.DB) ([]model.StockEntry, error) {
	out := make([]model.StockEntry, 0)
	for _, e := range r.entries {
		if e.SticksSold < e.Sticks {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PurchasedAt.Before(out[j].PurchasedAt) })
	return out, nil
}

func (r *stubStockRepo) Allocate(_ context.Context, _ *gorm.DB, id uuid.UUID, sticks int, revenue decimal.Decimal, method string) error {
	for _, e := range r.entries {
		if e.ID != id {
			continue
		}
		e.SticksSold += sticks
		if method == "credit" {
			e.RevenueCredit = e.RevenueCredit.Add(revenue)
		} else {
			e.RevenueCash = e.RevenueCash.Add(revenue)
		}
		return nil
	}
	return gorm.ErrRecordNotFound
}

func (r *stubStockRepo) TotalSticks(_ context.Context) (int64, error) {
	var total int64
	for _, e := range r.entries {
		total += int64(e.Sticks)
	}
	return total, nil
}

var _ repository.StockRepository = (*stubStockRepo)(nil)

// stubOrderRepo is an in-memory OrderRepository.
type stubOrderRepo struct {
	orders map[uuid.UUID]*model.Order
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{orders: make(map[uuid.UUID]*model.Order)}
}

func (r *stubOrderRepo) Create(_ context.Context, o *model.Order) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	r.orders[o.ID] = o
	return nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *stubOrderRepo) List(_ context.Context, status string) ([]model.Order, error) {
	out := make([]model.Order, 0, len(r.orders))
	for _, o := range r.orders {
		if status != "" && o.Status != status {
			continue
		}
		out = append(out, *o)
	}
	return out, nil
}

func (r *stubOrderRepo) ListByCustomer(_ context.Context, phone string) ([]model.Order, error) {
	out := make([]model.Order, 0)
	for _, o := range r.orders {
		if o.CustomerPhone == phone {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *stubOrderRepo) UpdateStatus(_ context.Context, _ *gorm.DB, id uuid.UUID, status string) error {
	o, ok := r.orders[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	o.Status = status
	return nil
}

func (r *stubOrderRepo) DB() *gorm.DB { return nil }

var _ repository.OrderRepository = (*stubOrderRepo)(nil)

// stubFinanceRepo holds expenses, injections and goal settings in memory.
type stubFinanceRepo struct {
	expenses   []model.Expense
	injections []model.Injection
	settings   *model.Settings
}

func (r *stubFinanceRepo) CreateExpense(_ context.Context, e *model.Expense) error {
	r.expenses = append(r.expenses, *e)
	return nil
}

func (r *stubFinanceRepo) CreateInjection(_ context.Context, i *model.Injection) error {
	r.injections = append(r.injections, *i)
	return nil
}

func (r *stubFinanceRepo) ListExpenses(_ context.Context, from, to time.Time) ([]model.Expense, error) {
	out := make([]model.Expense, 0)
	for _, e := range r.expenses {
		if !e.SpentAt.Before(from) && e.SpentAt.Before(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *stubFinanceRepo) ListInjections(_ context.Context, from, to time.Time) ([]model.Injection, error) {
	out := make([]model.Injection, 0)
	for _, i := range r.injections {
		if !i.InjectedAt.Before(from) && i.InjectedAt.Before(to) {
			out = append(out, i)
		}
	}
	return out, nil
}

func (r *stubFinanceRepo) SumExpenses(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	list, _ := r.ListExpenses(ctx, from, to)
	total := decimal.Zero
	for _, e := range list {
		total = total.Add(e.Amount)
	}
	return total, nil
}

func (r *stubFinanceRepo) SumInjections(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	list, _ := r.ListInjections(ctx, from, to)
	total := decimal.Zero
	for _, i := range list {
		total = total.Add(i.Amount)
	}
	return total, nil
}

func (r *stubFinanceRepo) GetSettings(_ context.Context) (*model.Settings, error) {
	if r.settings == nil {
		return &model.Settings{ID: 1}, nil
	}
	return r.settings, nil
}

func (r *stubFinanceRepo) SaveSettings(_ context.Context, s *model.Settings) error {
	s.ID = 1
	r.settings = s
	return nil
}

var _ repository.FinanceRepository = (*stubFinanceRepo)(nil)
