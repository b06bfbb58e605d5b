package service_test

import (
	"context"
	"testing"

	"github.com/Fineboy94449/smoke/internal/dto"
	"github.com/Fineboy94449/smoke/internal/model"
	"github.com/Fineboy94449/smoke/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type orderFixture struct {
	svc    service.OrderService
	orders *stubOrderRepo
	sale   *saleFixture
}

func buildOrderSvc() *orderFixture {
	sale := buildSaleSvc()
	orders := newStubOrderRepo()
	svc := service.NewOrderService(orders, sale.customers, sale.svc, fixedNow)
	return &orderFixture{svc: svc, orders: orders, sale: sale}
}

func seedOrderCustomer(f *orderFixture, creditEnabled bool, debt int64) *model.Customer {
	c := &model.Customer{
		Phone:         "0821234567",
		Name:          "Thabo",
		Approved:      true,
		CreditEnabled: creditEnabled,
		CreditLimit:   decimal.NewFromInt(80),
		CurrentDebt:   decimal.NewFromInt(debt),
		Tier:          model.TierNew,
	}
	f.sale.customers.customers[c.Phone] = c
	return c
}

func TestPlaceOrder_ServerSideTotals(t *testing.T) {
	f := buildOrderSvc()
	seedOrderCustomer(f, true, 0)

	resp, err := f.svc.Place(context.Background(), "0821234567", dto.PlaceOrderRequest{
		Method: "credit",
		Items: []dto.OrderItemRequest{
			{Item: "pack", Qty: 1},
			{Item: "loose", Qty: 10},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, model.OrderPending, resp.Status)
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(55)), "40 + 15, got %s", resp.Total)
	require.Len(t, resp.Items, 2)
	assert.True(t, resp.Items[0].UnitPrice.Equal(decimal.NewFromInt(40)))
	assert.True(t, resp.Items[1].UnitPrice.Equal(decimal.NewFromFloat(1.5)))
}

func TestPlaceOrder_UnapprovedAccount(t *testing.T) {
	f := buildOrderSvc()
	c := seedOrderCustomer(f, true, 0)
	c.Approved = false

	_, err := f.svc.Place(context.Background(), "0821234567", dto.PlaceOrderRequest{
		Method: "cash",
		Items:  []dto.OrderItemRequest{{Item: "pack", Qty: 1}},
	})
	assert.ErrorContains(t, err, "approval")
}

func TestPlaceOrder_CreditDisabled(t *testing.T) {
	f := buildOrderSvc()
	seedOrderCustomer(f, false, 0)

	_, err := f.svc.Place(context.Background(), "0821234567", dto.PlaceOrderRequest{
		Method: "credit",
		Items:  []dto.OrderItemRequest{{Item: "pack", Qty: 1}},
	})
	assert.ErrorContains(t, err, "credit is not enabled")
	assert.ErrorIs(t, err, service.ErrInvalid, "credit checks answer 400, not 500")
}

func TestPlaceOrder_ExceedsCreditLimit(t *testing.T) {
	f := buildOrderSvc()
	seedOrderCustomer(f, true, 50) // limit 80, debt 50, room for 30

	_, err := f.svc.Place(context.Background(), "0821234567", dto.PlaceOrderRequest{
		Method: "credit",
		Items:  []dto.OrderItemRequest{{Item: "pack", Qty: 1}}, // R40 on credit
	})
	assert.ErrorContains(t, err, "credit limit")
}

func TestPlaceOrder_CashSkipsLimitCheck(t *testing.T) {
	f := buildOrderSvc()
	seedOrderCustomer(f, false, 79)

	resp, err := f.svc.Place(context.Background(), "0821234567", dto.PlaceOrderRequest{
		Method: "cash",
		Items:  []dto.OrderItemRequest{{Item: "pack", Qty: 5}},
	})
	require.NoError(t, err)
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(150)))
}

func TestOrderLifecycle_ApproveComplete(t *testing.T) {
	f := buildOrderSvc()
	seedOrderCustomer(f, true, 0)

	placed, err := f.svc.Place(context.Background(), "0821234567", dto.PlaceOrderRequest{
		Method: "credit",
		Items:  []dto.OrderItemRequest{{Item: "pack", Qty: 1}},
	})
	require.NoError(t, err)
	id := uuid.MustParse(placed.ID)

	approved, err := f.svc.Approve(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, model.OrderApproved, approved.Status)

	completed, err := f.svc.Complete(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, model.OrderCompleted, completed.Status)

	// Completion records the sale and runs the full credit ledger flow.
	require.Len(t, f.sale.sales.sales, 1)
	d, err := f.sale.debtors.Find(context.Background(), "Thabo")
	require.NoError(t, err)
	assert.True(t, d.Balance.Equal(decimal.NewFromInt(40)))
	acct, _ := f.sale.customers.FindByPhone(context.Background(), "0821234567")
	assert.True(t, acct.CurrentDebt.Equal(decimal.NewFromInt(40)))
	assert.Equal(t, 1, acct.Points)
}

func TestOrder_ApproveNonPending(t *testing.T) {
	f := buildOrderSvc()
	seedOrderCustomer(f, true, 0)

	placed, _ := f.svc.Place(context.Background(), "0821234567", dto.PlaceOrderRequest{
		Method: "cash",
		Items:  []dto.OrderItemRequest{{Item: "pack", Qty: 1}},
	})
	id := uuid.MustParse(placed.ID)
	_, err := f.svc.Approve(context.Background(), id)
	require.NoError(t, err)

	_, err = f.svc.Approve(context.Background(), id)
	assert.Error(t, err, "approving twice must fail")
}

func TestOrder_CompleteRequiresApproval(t *testing.T) {
	f := buildOrderSvc()
	seedOrderCustomer(f, true, 0)

	placed, _ := f.svc.Place(context.Background(), "0821234567", dto.PlaceOrderRequest{
		Method: "cash",
		Items:  []dto.OrderItemRequest{{Item: "pack", Qty: 1}},
	})
	_, err := f.svc.Complete(context.Background(), uuid.MustParse(placed.ID))
	assert.ErrorContains(t, err, "only approved orders")
}

func TestOrder_RejectApprovedOrder(t *testing.T) {
	f := buildOrderSvc()
	seedOrderCustomer(f, true, 0)

	placed, _ := f.svc.Place(context.Background(), "0821234567", dto.PlaceOrderRequest{
		Method: "cash",
		Items:  []dto.OrderItemRequest{{Item: "pack", Qty: 1}},
	})
	id := uuid.MustParse(placed.ID)
	_, err := f.svc.Approve(context.Background(), id)
	require.NoError(t, err)

	rejected, err := f.svc.Reject(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, model.OrderRejected, rejected.Status)

	_, err = f.svc.Reject(context.Background(), id)
	assert.Error(t, err, "rejecting a rejected order must fail")
}

func TestListMine_FiltersByPhone(t *testing.T) {
	f := buildOrderSvc()
	seedOrderCustomer(f, true, 0)
	other := &model.Customer{Phone: "0837654321", Name: "Lindiwe", Approved: true}
	f.sale.customers.customers[other.Phone] = other

	_, err := f.svc.Place(context.Background(), "0821234567", dto.PlaceOrderRequest{
		Method: "cash", Items: []dto.OrderItemRequest{{Item: "pack", Qty: 1}},
	})
	require.NoError(t, err)
	_, err = f.svc.Place(context.Background(), "0837654321", dto.PlaceOrderRequest{
		Method: "cash", Items: []dto.OrderItemRequest{{Item: "loose", Qty: 2}},
	})
	require.NoError(t, err)

	mine, err := f.svc.ListMine(context.Background(), "0821234567")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Thabo", mine[0].CustomerName)
}
