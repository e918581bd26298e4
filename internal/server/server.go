package server

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"gold-ledger/internal/config"
	"gold-ledger/internal/database"
	"gold-ledger/internal/handlers"
	"gold-ledger/internal/middleware"
	"gold-ledger/internal/repositories"
	"gold-ledger/internal/services"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

const (
	shutdownTimeout       = 10 * time.Second
	visitorSweepInterval  = time.Minute
	tokenCleanupInterval  = time.Hour
	defaultServerTimeouts = 15 * time.Second
)

// Server is the ledger API: every repository, service and handler mounted on one echo instance.
type Server struct {
	cfg         *config.Config
	db          *database.DB
	echo        *echo.Echo
	rateLimiter *middleware.RateLimiter
	blacklist   repositories.BlacklistedTokenRepositoryInterface
	metrics     *services.PrometheusMetrics
	logger      *slog.Logger
}

// New builds the API. Collectors are registered with reg; production passes
// prometheus.DefaultRegisterer so they show up on /metrics.
func New(cfg *config.Config, db *database.DB, reg prometheus.Registerer, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		cfg:         cfg,
		db:          db,
		echo:        echo.New(),
		rateLimiter: middleware.NewRateLimiter(cfg.Security.RateLimitPerSecond, cfg.Security.RateLimitBurst),
		blacklist:   repositories.NewBlacklistedTokenRepository(db.DB),
		metrics:     services.NewPrometheusMetrics(reg),
		logger:      logger,
	}

	s.echo.HideBanner = true
	s.echo.HidePort = true
	s.echo.HTTPErrorHandler = middleware.CustomHTTPErrorHandler
	s.echo.Validator = handlers.NewValidator()

	s.echo.Use(middleware.RequestID())
	s.echo.Use(middleware.PanicRecovery(s.logger))
	s.echo.Use(middleware.SecurityHeaders())
	s.echo.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.Server.CORSAllowOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization, middleware.TraceIDHeader},
		ExposeHeaders:    []string{middleware.TraceIDHeader},
		AllowCredentials: true,
	}))
	s.echo.Use(s.rateLimiter.Middleware())

	s.registerRoutes()
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) registerRoutes() {
	customerRepo := repositories.NewCustomerRepository(s.db.DB)
	storeRepo := repositories.NewStoreRepository(s.db.DB)
	transactionRepo := repositories.NewTransactionRepository(s.db.DB)
	adminRepo := repositories.NewAdminRepository(s.db.DB)

	passwordService := services.NewPasswordService(s.cfg.Security.BCryptCost, s.cfg.Security.PasswordMinLength)
	tokenService := services.NewTokenService(&s.cfg.JWT)
	authService := services.NewAuthService(adminRepo, s.blacklist, passwordService, tokenService, s.logger)
	transactionService := services.NewTransactionService(transactionRepo, s.metrics, s.logger)
	customerService := services.NewCustomerService(customerRepo, s.logger)
	storeService := services.NewStoreService(storeRepo, s.logger)
	dashboardService := services.NewDashboardService(transactionRepo, s.metrics)

	healthHandler := handlers.NewHealthCheckHandler(s.db.DB)
	authHandler := handlers.NewAuthHandler(authService, handlers.CookieSettings{
		Name:   s.cfg.JWT.CookieName,
		Secure: s.cfg.JWT.CookieSecure,
	})
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	customerHandler := handlers.NewCustomerHandler(customerService)
	storeHandler := handlers.NewStoreHandler(storeService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	requireAuth := middleware.RequireAuth(tokenService, s.blacklist, s.cfg.JWT.CookieName)

	s.echo.GET("/health", healthHandler.HealthCheck)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	auth := s.echo.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout, requireAuth)
	auth.GET("/me", authHandler.Me, requireAuth)

	transactions := s.echo.Group("/transactions", requireAuth)
	transactions.POST("/", transactionHandler.CreateTransaction)
	transactions.POST("/filter", transactionHandler.FilterTransactions)

	customers := s.echo.Group("/customers", requireAuth)
	customers.GET("/", customerHandler.ListCustomers)
	customers.POST("/", customerHandler.CreateCustomer)

	stores := s.echo.Group("/stores", requireAuth)
	stores.GET("/", storeHandler.ListStores)
	stores.POST("", storeHandler.CreateStore)

	dashboard := s.echo.Group("/dashboard", requireAuth)
	dashboard.GET("/", dashboardHandler.GetWindow)

	if s.cfg.IsDevelopment() {
		devHandler := handlers.NewDevHandler(customerRepo, storeRepo, transactionRepo, services.NewTransactionGenerator(), s.logger)
		dev := s.echo.Group("/dev", requireAuth)
		dev.POST("/generate-test-data", devHandler.GenerateTestData)
		s.logger.Warn("Development routes enabled", "path", "/dev/generate-test-data")
	}
}

// Run serves until ctx is cancelled or the listener fails, then shuts down gracefully.
// The rate limiter sweep and the blacklist cleanup run alongside the listener.
func (s *Server) Run(ctx context.Context) error {
	addr := net.JoinHostPort(s.cfg.Server.Host, s.cfg.Server.Port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.echo,
		ReadTimeout:       orDefault(s.cfg.Server.ReadTimeout, defaultServerTimeouts),
		ReadHeaderTimeout: orDefault(s.cfg.Server.ReadTimeout, defaultServerTimeouts),
		WriteTimeout:      orDefault(s.cfg.Server.WriteTimeout, defaultServerTimeouts),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.rateLimiter.Run(gctx, visitorSweepInterval)
		return nil
	})

	g.Go(func() error {
		s.runTokenCleanup(gctx, tokenCleanupInterval)
		return nil
	})

	g.Go(func() error {
		s.logger.Info("API server listening", "addr", addr, "environment", s.cfg.Server.Environment)
		if err := httpServer.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("api server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("Shutting down API server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return nil
	})

	return g.Wait()
}

func (s *Server) runTokenCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.purgeExpiredTokens()
		}
	}
}

// purgeExpiredTokens drops blacklist rows for tokens that have expired anyway.
func (s *Server) purgeExpiredTokens() {
	purged, err := s.blacklist.DeleteExpired()
	if err != nil {
		s.logger.Error("Failed to purge expired blacklisted tokens", "error", err)
		return
	}
	s.metrics.RecordGauge("token.blacklist.purged", float64(purged), nil)
	if purged > 0 {
		s.logger.Info("Purged expired blacklisted tokens", "count", purged)
	}
}

func orDefault(d, fallback time.Duration) time.Duration {
	if d <= 0 {
		return fallback
	}
	return d
}
