package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/ardiputra/expense-portal/internal"
	"github.com/ardiputra/expense-portal/internal/category"
	categorystore "github.com/ardiputra/expense-portal/internal/category/postgres"
	"github.com/ardiputra/expense-portal/internal/chat"
	"github.com/ardiputra/expense-portal/internal/expense"
	expensestore "github.com/ardiputra/expense-portal/internal/expense/postgres"
	"github.com/ardiputra/expense-portal/internal/fallback"
	"github.com/ardiputra/expense-portal/internal/health"
	"github.com/ardiputra/expense-portal/internal/transport/rest"
	"github.com/ardiputra/expense-portal/internal/user"
	userstore "github.com/ardiputra/expense-portal/internal/user/postgres"
	"github.com/ardiputra/expense-portal/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	Health *health.State
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	server := newHTTPServer(deps.Config.Server, deps.Router)
	deps.Logger.Info("starting HTTP server", "address", server.Addr)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if deps.DB != nil {
			if err := deps.DB.Close(); err != nil {
				deps.Logger.Error("database close error", "error", err)
			}
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Observability.Logging.Level, config.Observability.Logging.Format)
	lg := logger.L()

	db, gormDB, err := openDB(config.Database)
	if err != nil {
		// An unreachable or unconfigured store is a degraded start, not a
		// fatal one; the service runs on the sample set until a re-probe
		// finds the store again.
		lg.Warn("expense store unavailable at startup, serving sample data", "error", err)
	}

	var pinger health.Pinger
	if db != nil {
		pinger = db.DB
	}
	state := health.NewState(pinger, lg)

	ctx, cancel := internal.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if state.Reprobe(ctx) {
		lg.Info("expense store reachable, running in live mode")
	} else {
		lg.Warn("expense store unreachable, running in fallback mode")
	}

	sample := fallback.NewProvider()

	var (
		expenseRepo  expense.Repository
		categoryRepo category.RepositoryAPI
		userRepo     user.RepositoryAPI
	)
	if gormDB != nil {
		expenseRepo = expensestore.NewExpenseRepository(gormDB)
		categoryRepo = categorystore.NewCategoryRepository(gormDB)
		userRepo = userstore.NewUserRepository(gormDB)
	}

	expenseService := expense.NewService(expenseRepo, sample, state, lg)
	categoryService := category.NewService(categoryRepo, sample, state, lg)
	userService := user.NewService(userRepo, sample, state, lg)

	expenseHandler := expense.NewHandler(expenseService)
	categoryHandler := category.NewHandler(categoryService)
	userHandler := user.NewHandler(userService)

	// The chat route is always mounted; without configuration the service has
	// no client and answers every message with the unavailable response.
	var chatClient chat.CompletionClient
	if config.OpenAI.Configured() {
		chatClient = chat.NewOpenAIClient(config.OpenAI)
	} else {
		lg.Info("chat assistant not configured, /api/chat will report unavailable")
	}
	chatService := chat.NewService(chatClient, config.OpenAI.Model, expenseService, categoryService, lg)
	chatHandler := chat.NewHandler(chatService)

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, state, expenseHandler, categoryHandler, userHandler, chatHandler, config.Server.AllowedOrigins, lg)

	return &Dependencies{
		Config: config,
		DB:     db,
		Health: state,
		Router: router,
		Logger: lg,
	}, nil
}

// newHTTPServer builds the server with every configured timeout applied.
func newHTTPServer(cfg internal.ServerConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
}

// openDB opens the store without pinging it, so a down database does not
// prevent startup. Connectivity is decided by the health probe.
func openDB(cfg internal.DatabaseConfig) (*sqlx.DB, *gorm.DB, error) {
	if cfg.Source == "" {
		return nil, nil, fmt.Errorf("no database source configured")
	}

	db, err := sqlx.Open("pgx", cfg.Source)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db.DB}), &gorm.Config{
		DisableAutomaticPing: true,
	})
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	return db, gormDB, nil
}
