package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/ulule/limiter/v3"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	pgxv5 "github.com/jackc/pgx/v5"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/orgfin/org_finance_app/internal/core/domain"
	portsrepo "github.com/orgfin/org_finance_app/internal/core/ports/repositories"
	"github.com/orgfin/org_finance_app/internal/core/services"
	"github.com/orgfin/org_finance_app/internal/handlers"
	"github.com/orgfin/org_finance_app/internal/middleware"
	"github.com/orgfin/org_finance_app/internal/platform/config"
	"github.com/orgfin/org_finance_app/internal/platform/mail"
	"github.com/orgfin/org_finance_app/internal/repositories/database/pgsql"
	"github.com/orgfin/org_finance_app/internal/workers"
	"github.com/orgfin/org_finance_app/pkg/database"
	pkgredis "github.com/orgfin/org_finance_app/pkg/redis"
)

// @title Org Finance App API
// @version 1.0
// @description Entry lifecycle and remittance computation API.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := runMigrations(cfg.DatabaseURL, logger); err != nil {
		logger.Error("Failed to run migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established")

	rdb, err := pkgredis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		logger.Error("Failed to connect to redis", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer rdb.Close()

	repos := pgsql.NewRepositoryProvider(dbPool)

	var mailer mail.Mailer
	if len(cfg.SMTPAccounts) > 0 {
		accounts := make([]mail.Account, len(cfg.SMTPAccounts))
		for i, a := range cfg.SMTPAccounts {
			port, err := strconv.Atoi(a.Port)
			if err != nil {
				logger.Error("Invalid SMTP port", slog.String("port", a.Port), slog.String("error", err.Error()))
				os.Exit(1)
			}
			accounts[i] = mail.Account{Host: a.Host, Port: port, Username: a.Username, Password: a.Password, From: a.From}
		}
		sender, err := mail.NewSender(accounts, rdb)
		if err != nil {
			logger.Error("Failed to build mail sender", slog.String("error", err.Error()))
			os.Exit(1)
		}
		mailer = sender
	} else {
		logger.Warn("No SMTP accounts configured; notifications will only be logged")
		mailer = mail.NewLogMailer(logger)
	}

	riverClient, err := newRiverClient(dbPool, repos, mailer, logger)
	if err != nil {
		logger.Error("Failed to build job queue client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := riverClient.Start(ctx); err != nil {
		logger.Error("Failed to start job queue client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := riverClient.Stop(stopCtx); err != nil {
			logger.Error("Failed to stop job queue client", slog.String("error", err.Error()))
		}
	}()

	insertAuditTx := func(ctx context.Context, tx pgxv5.Tx, args workers.AuditRecordArgs) error {
		_, err := riverClient.InsertTx(ctx, tx, args, nil)
		return err
	}
	insertAudit := func(ctx context.Context, args workers.AuditRecordArgs) error {
		_, err := riverClient.Insert(ctx, args, nil)
		return err
	}
	insertEmailTx := func(ctx context.Context, tx pgxv5.Tx, args workers.EmailSendArgs) error {
		_, err := riverClient.InsertTx(ctx, tx, args, nil)
		return err
	}

	serviceContainer := services.NewServiceContainer(cfg, repos, insertAuditTx, insertAudit, insertEmailTx)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	registerBindingValidators(logger)

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.Default())

	rateStore, err := sredis.NewStoreWithOptions(rdb, limiter.StoreOptions{Prefix: "ofa:ratelimit"})
	if err != nil {
		logger.Error("Failed to create rate limit store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid rate limit format", slog.String("error", err.Error()))
		os.Exit(1)
	}
	r.Use(middleware.RateLimit(limiter.New(rateStore, rate)))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", slog.String("error", err.Error()))
	}
}

// runMigrations applies all pending schema migrations over a temporary
// database/sql connection using the pgx stdlib driver.
func runMigrations(databaseURL string, logger *slog.Logger) error {
	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}
	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply")
	} else {
		logger.Info("Database migrations applied")
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	return dbErr
}

// newRiverClient wires the background workers and periodic jobs.
func newRiverClient(dbPool *pgxpool.Pool, repos portsrepo.RepositoryProvider, mailer mail.Mailer, logger *slog.Logger) (*river.Client[pgxv5.Tx], error) {
	riverWorkers := river.NewWorkers()
	river.AddWorker(riverWorkers, workers.NewAuditRecordWorker(repos.AuditRepo, logger))
	river.AddWorker(riverWorkers, workers.NewAuditPurgeWorker(repos.AuditRepo, logger))
	river.AddWorker(riverWorkers, workers.NewEmailSendWorker(repos.UserRepo, mailer, logger))

	return river.NewClient(riverpgxv5.New(dbPool), &river.Config{
		Logger: logger,
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: 10},
		},
		Workers: riverWorkers,
		PeriodicJobs: []*river.PeriodicJob{
			river.NewPeriodicJob(
				river.PeriodicInterval(time.Hour),
				func() (river.JobArgs, *river.InsertOpts) {
					return workers.AuditPurgeArgs{}, nil
				},
				&river.PeriodicJobOpts{RunOnStart: true},
			),
		},
	})
}

// registerBindingValidators installs custom request validations used by the
// DTO binding tags.
func registerBindingValidators(logger *slog.Logger) {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		logger.Warn("Unexpected binding validator engine; custom validations disabled")
		return
	}
	_ = v.RegisterValidation("entrytype", func(fl validator.FieldLevel) bool {
		switch domain.EntryType(fl.Field().String()) {
		case domain.EntryIncome, domain.EntryDisbursement, domain.EntryRemittance,
			domain.EntryWorkspaceExp, domain.EntryOrgExp:
			return true
		}
		return false
	})
	_ = v.RegisterValidation("entrystatus", func(fl validator.FieldLevel) bool {
		switch domain.EntryStatus(fl.Field().String()) {
		case domain.EntryPending, domain.EntryApproved, domain.EntryRejected, domain.EntryFlagged:
			return true
		}
		return false
	})
}
