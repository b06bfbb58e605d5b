package router

import (
	"time"

	"github.com/Fineboy94449/smoke/internal/config"
	"github.com/Fineboy94449/smoke/internal/handler"
	"github.com/Fineboy94449/smoke/internal/middleware"
	"github.com/Fineboy94449/smoke/internal/repository"
	"github.com/Fineboy94449/smoke/internal/service"
	"github.com/Fineboy94449/smoke/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	loc, err := time.LoadLocation(cfg.ShopTimezone)
	if err != nil {
		log.Warn().Str("timezone", cfg.ShopTimezone).Msg("unknown timezone, falling back to UTC")
		loc = time.UTC
	}
	shopNow := func() time.Time { return time.Now().In(loc) }

	// ── Repositories ─────────────────────────────────────────────────────────
	saleRepo := repository.NewSaleRepository(db)
	debtorRepo := repository.NewDebtorRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	pointRepo := repository.NewPointHistoryRepository(db)
	stockRepo := repository.NewStockRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	financeRepo := repository.NewFinanceRepository(db)
	operatorRepo := repository.NewOperatorRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	loyaltySvc := service.NewLoyaltyService(customerRepo, pointRepo)
	saleSvc := service.NewSaleService(saleRepo, debtorRepo, customerRepo, stockRepo, loyaltySvc, shopNow)
	debtorSvc := service.NewDebtorService(debtorRepo, paymentRepo, customerRepo, loyaltySvc, dispatcher, db, shopNow)
	penaltySvc := service.NewPenaltyService(customerRepo, loyaltySvc, db, shopNow)
	customerSvc := service.NewCustomerService(customerRepo, pointRepo, shopNow)
	orderSvc := service.NewOrderService(orderRepo, customerRepo, saleSvc, shopNow)
	stockSvc := service.NewStockService(stockRepo, saleRepo, shopNow, loc)
	financeSvc := service.NewFinanceService(financeRepo, shopNow, loc)
	reportSvc := service.NewReportService(saleRepo, debtorRepo, stockRepo, financeRepo, penaltySvc, shopNow, loc)
	authSvc := service.NewAuthService(operatorRepo, customerRepo, rdb, cfg)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	salesH := handler.NewSalesHandler(saleSvc)
	debtorsH := handler.NewDebtorsHandler(debtorSvc)
	customersH := handler.NewCustomersHandler(customerSvc)
	ordersH := handler.NewOrdersHandler(orderSvc)
	stockH := handler.NewStockHandler(stockSvc)
	reportsH := handler.NewReportsHandler(reportSvc)
	financeH := handler.NewFinanceHandler(financeSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/customer-login", middleware.LoginRateLimiter(), authH.CustomerLogin)
		auth.POST("/refresh", authH.Refresh)
	}

	// Self-registration — no auth required, accounts start unapproved
	r.POST("/v1/customers/register", middleware.LoginRateLimiter(), customersH.Register)

	// Protected routes. SessionActivity enforces the idle timeout on top
	// of JWT validity and slides the window on every request.
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	sessionMW := middleware.SessionActivity(rdb, cfg.SessionIdleMinutes)
	operatorOnly := middleware.RequireRole(service.RoleOperator)
	customerOnly := middleware.RequireRole(service.RoleCustomer)

	v1 := r.Group("/v1", jwtMW, sessionMW)
	{
		sales := v1.Group("/sales", operatorOnly)
		{
			sales.POST("", salesH.RecordSale)
			sales.DELETE("/:id", salesH.ReverseSale)
			sales.GET("/history", salesH.History)
			sales.GET("/recent", salesH.Recent)
		}

		debtors := v1.Group("/debtors", operatorOnly)
		{
			debtors.GET("", debtorsH.List)
			debtors.POST("/payments", debtorsH.RecordPayment)
			debtors.POST("/:name/statement", debtorsH.RequestStatement)
		}

		v1.GET("/customers", operatorOnly, customersH.List)
		v1.GET("/customers/:phone", operatorOnly, customersH.Detail)
		v1.POST("/customers/:phone/approve", operatorOnly, customersH.Approve)
		v1.PUT("/customers/:phone/credit", operatorOnly, customersH.UpdateCreditSettings)

		// Customer self-service
		v1.GET("/me", customerOnly, customersH.Me)
		v1.POST("/orders", customerOnly, ordersH.Place)
		v1.GET("/orders/mine", customerOnly, ordersH.ListMine)

		// Order management
		v1.GET("/orders", operatorOnly, ordersH.List)
		v1.POST("/orders/:id/approve", operatorOnly, ordersH.Approve)
		v1.POST("/orders/:id/reject", operatorOnly, ordersH.Reject)
		v1.POST("/orders/:id/complete", operatorOnly, ordersH.Complete)

		stock := v1.Group("/stock", operatorOnly)
		{
			stock.POST("", stockH.AddPurchase)
			stock.GET("", stockH.Overview)
			stock.DELETE("/:id", stockH.DeleteEntry)
		}

		reports := v1.Group("/reports", operatorOnly)
		{
			reports.GET("/dashboard", reportsH.Dashboard)
			reports.GET("/periods", reportsH.Periods)
			reports.GET("/daily", reportsH.DailySeries)
			reports.GET("/finance", reportsH.MonthlyFinance)
		}

		v1.GET("/goals", operatorOnly, reportsH.Goals)
		v1.PUT("/goals", operatorOnly, reportsH.UpdateGoals)

		finance := v1.Group("/finance", operatorOnly)
		{
			finance.POST("/expenses", financeH.AddExpense)
			finance.POST("/injections", financeH.AddInjection)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
