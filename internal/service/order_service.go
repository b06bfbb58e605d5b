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

type OrderService interface {
	// Place submits an order for the authenticated customer. Totals are
	// computed server-side; credit orders are checked against the limit.
	Place(ctx context.Context, phone string, req dto.PlaceOrderRequest) (*dto.OrderResponse, error)
	Approve(ctx context.Context, id uuid.UUID) (*dto.OrderResponse, error)
	Reject(ctx context.Context, id uuid.UUID) (*dto.OrderResponse, error)
	// Complete records one sale per line item and marks the order done.
	Complete(ctx context.Context, id uuid.UUID) (*dto.OrderResponse, error)
	List(ctx context.Context, status string) ([]dto.OrderResponse, error)
	ListMine(ctx context.Context, phone string) ([]dto.OrderResponse, error)
}

type orderService struct {
	repo      repository.OrderRepository
	customers repository.CustomerRepository
	sales     SaleService

	now func() time.Time
}

func NewOrderService(repo repository.OrderRepository, customers repository.CustomerRepository, sales SaleService, now func() time.Time) OrderService {
	if now == nil {
		now = time.Now
	}
	return &orderService{repo: repo, customers: customers, sales: sales, now: now}
}

func (s *orderService) Place(ctx context.Context, phone string, req dto.PlaceOrderRequest) (*dto.OrderResponse, error) {
	c, err := s.customers.FindByPhone(ctx, phone)
	if err != nil {
		return nil, fmt.Errorf("%w: customer", ErrNotFound)
	}
	if !c.Approved {
		return nil, fmt.Errorf("%w: account pending operator approval", ErrInvalid)
	}

	order := &model.Order{
		CustomerPhone: c.Phone,
		CustomerName:  c.Name,
		Method:        req.Method,
		Status:        model.OrderPending,
		Total:         decimal.Zero,
		CreatedAt:     s.now(),
	}
	for _, item := range req.Items {
		quote := pricing.Price(item.Item, item.Qty, req.Method)
		unit := quote.Price.Div(decimal.NewFromInt(int64(item.Qty)))
		order.Items = append(order.Items, model.OrderItem{
			ItemType:  item.Item,
			Qty:       item.Qty,
			UnitPrice: unit,
			Subtotal:  quote.Price,
		})
		order.Total = order.Total.Add(quote.Price)
	}

	if req.Method == pricing.MethodCredit {
		if !c.CreditEnabled {
			return nil, fmt.Errorf("%w: credit is not enabled for this account", ErrInvalid)
		}
		if c.CurrentDebt.Add(order.Total).GreaterThan(c.CreditLimit) {
			return nil, fmt.Errorf("%w: order would exceed credit limit of %s", ErrInvalid, c.CreditLimit.StringFixed(2))
		}
	}

	if err := s.repo.Create(ctx, order); err != nil {
		return nil, err
	}
	return orderToResponse(order), nil
}

func (s *orderService) Approve(ctx context.Context, id uuid.UUID) (*dto.OrderResponse, error) {
	return s.transition(ctx, id, model.OrderPending, model.OrderApproved)
}

func (s *orderService) Reject(ctx context.Context, id uuid.UUID) (*dto.OrderResponse, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: order", ErrNotFound)
	}
	if order.Status != model.OrderPending && order.Status != model.OrderApproved {
		return nil, fmt.Errorf("%w: cannot reject a %s order", ErrInvalid, order.Status)
	}
	if err := s.repo.UpdateStatus(ctx, s.repo.DB(), id, model.OrderRejected); err != nil {
		return nil, err
	}
	order.Status = model.OrderRejected
	return orderToResponse(order), nil
}

func (s *orderService) Complete(ctx context.Context, id uuid.UUID) (*dto.OrderResponse, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: order", ErrNotFound)
	}
	if order.Status != model.OrderApproved {
		return nil, fmt.Errorf("%w: only approved orders can be completed (status: %s)", ErrInvalid, order.Status)
	}

	for _, item := range order.Items {
		_, err := s.sales.RecordSale(ctx, dto.RecordSaleRequest{
			Item:     item.ItemType,
			Qty:      item.Qty,
			Method:   order.Method,
			Customer: order.CustomerName,
		}, &order.ID)
		if err != nil {
			return nil, fmt.Errorf("completing order: %w", err)
		}
	}

	if err := s.repo.UpdateStatus(ctx, s.repo.DB(), id, model.OrderCompleted); err != nil {
		return nil, err
	}
	order.Status = model.OrderCompleted
	return orderToResponse(order), nil
}

func (s *orderService) transition(ctx context.Context, id uuid.UUID, from, to string) (*dto.OrderResponse, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: order", ErrNotFound)
	}
	if order.Status != from {
		return nil, fmt.Errorf("%w: cannot move a %s order to %s", ErrInvalid, order.Status, to)
	}
	if err := s.repo.UpdateStatus(ctx, s.repo.DB(), id, to); err != nil {
		return nil, err
	}
	order.Status = to
	return orderToResponse(order), nil
}

func (s *orderService) List(ctx context.Context, status string) ([]dto.OrderResponse, error) {
	orders, err := s.repo.List(ctx, status)
	if err != nil {
		return nil, err
	}
	return ordersToResponse(orders), nil
}

func (s *orderService) ListMine(ctx context.Context, phone string) ([]dto.OrderResponse, error) {
	orders, err := s.repo.ListByCustomer(ctx, phone)
	if err != nil {
		return nil, err
	}
	return ordersToResponse(orders), nil
}

func ordersToResponse(orders []model.Order) []dto.OrderResponse {
	resp := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		resp = append(resp, *orderToResponse(&orders[i]))
	}
	return resp
}

func orderToResponse(o *model.Order) *dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, dto.OrderItemResponse{
			Item:      item.ItemType,
			Qty:       item.Qty,
			UnitPrice: item.UnitPrice.Round(2),
			Subtotal:  item.Subtotal.Round(2),
		})
	}
	return &dto.OrderResponse{
		ID:            o.ID.String(),
		CustomerPhone: o.CustomerPhone,
		CustomerName:  o.CustomerName,
		Method:        o.Method,
		Status:        o.Status,
		Total:         o.Total.Round(2),
		Items:         items,
		CreatedAt:     o.CreatedAt.Format(time.RFC3339),
	}
}
