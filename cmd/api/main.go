// Package main is the entrypoint for the finintel API server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"google.golang.org/genai"

	"github.com/finintel/finintel/internal/advice"
	"github.com/finintel/finintel/internal/cache"
	"github.com/finintel/finintel/internal/config"
	"github.com/finintel/finintel/internal/handler"
	"github.com/finintel/finintel/internal/market"
	"github.com/finintel/finintel/internal/metrics"
	"github.com/finintel/finintel/internal/middleware"
	"github.com/finintel/finintel/internal/repository"
	"github.com/finintel/finintel/internal/server"
	"github.com/finintel/finintel/internal/service"
)

func main() {
	ctx := context.Background()

	// Local development convenience; in production the environment is
	// already populated.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

	repo, err := repository.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error(
			"failed to connect to database",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	defer repo.Close()
	logger.Info("connected to database")

	cacheClient, err := cache.New(ctx, cfg.RedisURL)
	if err != nil {
		logger.Error(
			"failed to connect to Redis",
			slog.String("error", sanitizeError(err, cfg.RedisURL)),
			slog.String("redis_url", redactURL(cfg.RedisURL)),
		)
		os.Exit(1)
	}
	defer cacheClient.Close()
	logger.Info("connected to Redis")

	recorder := metrics.NewInMemory()

	quoteClient := market.NewClient(cfg.QuoteAPIBaseURL, cfg.QuoteAPIToken)

	var geminiClient *genai.Client
	if cfg.GeminiAPIKey != "" {
		geminiClient, err = genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cfg.GeminiAPIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			logger.Error("failed to create Gemini client", "error", err)
			os.Exit(1)
		}
		logger.Info("advice service enabled", "model", cfg.GeminiModel)
	} else {
		logger.Warn("GEMINI_API_KEY not set; advice endpoints disabled")
	}

	accountService := service.NewAccountService(repo, cacheClient, cfg.SessionTTL, recorder)
	expenseService := service.NewExpenseService(repo, recorder)
	budgetService := service.NewBudgetService(repo, recorder)
	goalService := service.NewGoalService(repo)
	marketService := service.NewMarketService(repo, cacheClient, quoteClient, cfg.MarketIndex, cfg.QuoteCacheTTL, recorder)
	adviceService := advice.NewService(geminiClient, cfg.GeminiModel, recorder)

	healthHandler := handler.NewHealthHandler(repo, cacheClient)
	metricsHandler := handler.NewMetricsHandler(recorder)
	authHandler := handler.NewAuthHandler(accountService, logger, cfg.SessionCookie, cfg.CookieSecure)
	expenseHandler := handler.NewExpenseHandler(expenseService, logger)
	budgetHandler := handler.NewBudgetHandler(budgetService, logger)
	goalHandler := handler.NewGoalHandler(goalService, logger)
	calculatorHandler := handler.NewCalculatorHandler(logger)
	marketHandler := handler.NewMarketHandler(marketService, logger)
	adviceHandler := handler.NewAdviceHandler(adviceService, repo, logger)

	r := setupRouter(routerDeps{
		cfg:        cfg,
		logger:     logger,
		cache:      cacheClient,
		health:     healthHandler,
		metrics:    metricsHandler,
		auth:       authHandler,
		expense:    expenseHandler,
		budget:     budgetHandler,
		goal:       goalHandler,
		calculator: calculatorHandler,
		market:     marketHandler,
		advice:     adviceHandler,
	})

	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// routerDeps bundles everything setupRouter needs.
type routerDeps struct {
	cfg        *config.Config
	logger     *slog.Logger
	cache      *cache.Cache
	health     *handler.HealthHandler
	metrics    *handler.MetricsHandler
	auth       *handler.AuthHandler
	expense    *handler.ExpenseHandler
	budget     *handler.BudgetHandler
	goal       *handler.GoalHandler
	calculator *handler.CalculatorHandler
	market     *handler.MarketHandler
	advice     *handler.AdviceHandler
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(deps routerDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(deps.logger))
	r.Use(middleware.Recoverer(deps.logger))
	r.Use(middleware.Security(deps.cfg.IsDevelopment()))
	r.Use(middleware.CORS(deps.cfg.GetCORSAllowedOrigins()))
	r.Use(middleware.MaxBodySize(deps.cfg.MaxRequestBodySize))

	r.Get("/healthz", deps.health.Healthz)
	r.Get("/readyz", deps.health.Readyz)
	r.Get("/metrics", deps.metrics.Metrics)

	sessionAuth := middleware.Auth(middleware.AuthConfig{
		Logger:     deps.logger,
		Cache:      deps.cache,
		CookieName: deps.cfg.SessionCookie,
		SessionTTL: deps.cfg.SessionTTL,
	})

	quoteRateLimit := middleware.RateLimitIP(middleware.RateLimitConfig{
		Logger:  deps.logger,
		Cache:   deps.cache,
		Enabled: deps.cfg.RateLimitQuoteEnabled,
		RPS:     deps.cfg.RateLimitQuoteRPS,
		Burst:   deps.cfg.RateLimitQuoteBurst,
	})

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", deps.auth.Register)
		r.Post("/login", deps.auth.Login)
		r.Post("/logout", deps.auth.Logout)
		r.With(sessionAuth).Get("/me", deps.auth.Me)
	})

	r.Route("/finance", func(r chi.Router) {
		// Public market data, IP rate limited.
		r.With(quoteRateLimit).Get("/market-data", deps.market.MarketData)
		r.With(quoteRateLimit).Get("/stock/{ticker}", deps.market.StockInfo)

		// Calculators are stateless and public.
		r.Get("/sip-calculator", deps.calculator.SIP)
		r.Post("/sip-calculator", deps.calculator.SIP)

		// Everything else needs a session.
		r.Group(func(r chi.Router) {
			r.Use(sessionAuth)

			r.Route("/expenses", func(r chi.Router) {
				r.Get("/", deps.expense.List)
				r.Post("/", deps.expense.Create)
				r.Get("/analysis", deps.expense.Analysis)
				r.Put("/{id}", deps.expense.Update)
				r.Delete("/{id}", deps.expense.Delete)
			})

			r.Route("/budgets", func(r chi.Router) {
				r.Get("/", deps.budget.List)
				r.Post("/", deps.budget.Create)
				r.Put("/{id}", deps.budget.Update)
				r.Delete("/{id}", deps.budget.Delete)
			})
			r.Get("/budget/alerts", deps.budget.Alerts)

			r.Route("/goals", func(r chi.Router) {
				r.Get("/", deps.goal.List)
				r.Post("/", deps.goal.Create)
				r.Put("/{id}", deps.goal.Update)
				r.Delete("/{id}", deps.goal.Delete)
			})

			r.Route("/watchlist", func(r chi.Router) {
				r.Get("/", deps.market.Watchlist)
				r.Post("/", deps.market.AddToWatchlist)
				r.Post("/{ticker}", deps.market.AddToWatchlist)
				r.Delete("/{ticker}", deps.market.RemoveFromWatchlist)
			})

			r.Get("/advice", deps.advice.Advice)
			r.Get("/advice_info/{topic}", deps.advice.Advice)
			r.Get("/chat", deps.advice.Chat)
		})
	})

	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.MethodNotAllowed)

	return r
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
