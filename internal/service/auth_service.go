package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Fineboy94449/smoke/internal/config"
	"github.com/Fineboy94449/smoke/internal/dto"
	"github.com/Fineboy94449/smoke/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

// Roles embedded in the JWT role claim.
const (
	RoleOperator = "operator"
	RoleCustomer = "customer"
)

type AuthService interface {
	// OperatorLogin authenticates shop staff by username.
	OperatorLogin(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	// CustomerLogin authenticates a registered, approved customer by
	// phone number.
	CustomerLogin(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)
}

type authService struct {
	operators repository.OperatorRepository
	customers repository.CustomerRepository
	rdb       *redis.Client
	cfg       *config.Config
}

func NewAuthService(operators repository.OperatorRepository, customers repository.CustomerRepository, rdb *redis.Client, cfg *config.Config) AuthService {
	return &authService{operators: operators, customers: customers, rdb: rdb, cfg: cfg}
}

func (s *authService) OperatorLogin(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	op, err := s.operators.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, errors.New("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(op.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errors.New("invalid credentials")
	}
	return s.issueTokens(ctx, op.ID.String(), op.Name, RoleOperator)
}

func (s *authService) CustomerLogin(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	c, err := s.customers.FindByPhone(ctx, req.Username)
	if err != nil {
		return nil, errors.New("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errors.New("invalid credentials")
	}
	if !c.Approved {
		return nil, errors.New("account pending operator approval")
	}
	return s.issueTokens(ctx, c.Phone, c.Name, RoleCustomer)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("refresh token invalid or expired")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("malformed token")
	}
	sub, _ := claims["sub"].(string)
	name, _ := claims["name"].(string)
	role, _ := claims["role"].(string)
	if sub == "" || role == "" {
		return nil, errors.New("malformed token")
	}
	return s.issueTokens(ctx, sub, name, role)
}

func (s *authService) issueTokens(ctx context.Context, subject, name, role string) (*dto.LoginResponse, error) {
	access, err := s.signToken(subject, name, role, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	refresh, err := s.signToken(subject, name, role, time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, err
	}

	// Seed the inactivity session marker; the middleware refreshes it on
	// every authenticated request.
	if s.rdb != nil {
		idle := time.Duration(s.cfg.SessionIdleMinutes) * time.Minute
		if err := s.rdb.Set(ctx, SessionKey(subject), "1", idle).Err(); err != nil {
			return nil, fmt.Errorf("session store: %w", err)
		}
	}

	return &dto.LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
		Role:         role,
		Name:         name,
	}, nil
}

func (s *authService) signToken(subject, name, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  subject,
		"name": name,
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// SessionKey is the redis key tracking a subject's last activity. Shared
// with the session-expiry middleware.
func SessionKey(subject string) string { return "session:" + subject }
