package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Fineboy94449/smoke/internal/dto"
	"github.com/Fineboy94449/smoke/internal/model"
	"github.com/Fineboy94449/smoke/internal/pricing"
	"github.com/Fineboy94449/smoke/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

type CustomerService interface {
	// Register creates an unapproved account from self-registration.
	Register(ctx context.Context, req dto.RegisterCustomerRequest) (*dto.CustomerResponse, error)
	Approve(ctx context.Context, phone string) (*dto.CustomerResponse, error)
	// UpdateCreditSettings is the operator's credit panel: enable/disable
	// credit, pin a manual limit via tier override.
	UpdateCreditSettings(ctx context.Context, phone string, req dto.CreditSettingsRequest) (*dto.CustomerResponse, error)
	List(ctx context.Context, approvedOnly bool) ([]dto.CustomerResponse, error)
	Detail(ctx context.Context, phone string) (*dto.CustomerDetailResponse, error)
}

type customerService struct {
	repo   repository.CustomerRepository
	points repository.PointHistoryRepository

	now func() time.Time
}

func NewCustomerService(repo repository.CustomerRepository, points repository.PointHistoryRepository, now func() time.Time) CustomerService {
	if now == nil {
		now = time.Now
	}
	return &customerService{repo: repo, points: points, now: now}
}

func (s *customerService) Register(ctx context.Context, req dto.RegisterCustomerRequest) (*dto.CustomerResponse, error) {
	if _, err := s.repo.FindByPhone(ctx, req.Phone); err == nil {
		return nil, fmt.Errorf("%w: phone already registered", ErrConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, err
	}
	_, limit := pricing.TierFor(0)
	c := &model.Customer{
		Phone:        req.Phone,
		Name:         req.Name,
		HouseNumber:  req.HouseNumber,
		Email:        req.Email,
		PasswordHash: string(hash),
		Tier:         model.TierNew,
		CreditLimit:  limit,
		CreatedAt:    s.now(),
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	resp := customerToResponse(c)
	return &resp, nil
}

func (s *customerService) Approve(ctx context.Context, phone string) (*dto.CustomerResponse, error) {
	c, err := s.repo.FindByPhone(ctx, phone)
	if err != nil {
		return nil, fmt.Errorf("%w: customer", ErrNotFound)
	}
	c.Approved = true
	if err := s.repo.Save(ctx, c); err != nil {
		return nil, err
	}
	resp := customerToResponse(c)
	return &resp, nil
}

func (s *customerService) UpdateCreditSettings(ctx context.Context, phone string, req dto.CreditSettingsRequest) (*dto.CustomerResponse, error) {
	c, err := s.repo.FindByPhone(ctx, phone)
	if err != nil {
		return nil, fmt.Errorf("%w: customer", ErrNotFound)
	}
	if req.CreditEnabled != nil {
		c.CreditEnabled = *req.CreditEnabled
	}
	if req.TierOverride != nil {
		c.TierOverride = *req.TierOverride
	}
	if req.CreditLimit != nil {
		if !c.TierOverride {
			return nil, fmt.Errorf("%w: a manual credit limit requires tier_override", ErrInvalid)
		}
		c.CreditLimit = *req.CreditLimit
	}
	if !c.TierOverride {
		// Dropping the override re-derives the limit from points.
		_, c.CreditLimit = pricing.TierFor(c.Points)
	}
	if err := s.repo.Save(ctx, c); err != nil {
		return nil, err
	}
	resp := customerToResponse(c)
	return &resp, nil
}

func (s *customerService) List(ctx context.Context, approvedOnly bool) ([]dto.CustomerResponse, error) {
	customers, err := s.repo.List(ctx, approvedOnly)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.CustomerResponse, 0, len(customers))
	for i := range customers {
		resp = append(resp, customerToResponse(&customers[i]))
	}
	return resp, nil
}

const pointHistoryLimit = 50

func (s *customerService) Detail(ctx context.Context, phone string) (*dto.CustomerDetailResponse, error) {
	c, err := s.repo.FindByPhone(ctx, phone)
	if err != nil {
		return nil, fmt.Errorf("%w: customer", ErrNotFound)
	}
	history, err := s.points.ListByCustomer(ctx, phone, pointHistoryLimit)
	if err != nil {
		return nil, err
	}
	resp := &dto.CustomerDetailResponse{
		CustomerResponse: customerToResponse(c),
		PointHistory:     make([]dto.PointHistoryEntry, 0, len(history)),
	}
	for _, e := range history {
		resp.PointHistory = append(resp.PointHistory, dto.PointHistoryEntry{
			Delta:     e.Delta,
			Reason:    e.Reason,
			CreatedAt: e.CreatedAt.Format(time.RFC3339),
		})
	}
	return resp, nil
}

func customerToResponse(c *model.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		Phone:         c.Phone,
		Name:          c.Name,
		HouseNumber:   c.HouseNumber,
		Email:         c.Email,
		Approved:      c.Approved,
		CreditEnabled: c.CreditEnabled,
		CreditLimit:   c.CreditLimit.Round(2),
		TierOverride:  c.TierOverride,
		Points:        c.Points,
		Tier:          c.Tier,
		CurrentDebt:   c.CurrentDebt.Round(2),
		CreatedAt:     c.CreatedAt.Format(time.RFC3339),
	}
}
