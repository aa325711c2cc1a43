package main

import (
	"context"
	"fmt"
	"time"

	"github.com/bukusaku/bukusaku-api/internal/application/service"
	"github.com/bukusaku/bukusaku-api/internal/config"
	domainRepo "github.com/bukusaku/bukusaku-api/internal/domain/repository"
	"github.com/bukusaku/bukusaku-api/internal/infrastructure/cartstore"
	"github.com/bukusaku/bukusaku-api/internal/infrastructure/database"
	"github.com/bukusaku/bukusaku-api/internal/infrastructure/repository"
	"github.com/bukusaku/bukusaku-api/internal/presentation/http/handler"
	"github.com/bukusaku/bukusaku-api/internal/presentation/http/middleware"
	"github.com/bukusaku/bukusaku-api/internal/presentation/http/routes"
	"github.com/bukusaku/bukusaku-api/pkg/logger"
	"github.com/bukusaku/bukusaku-api/pkg/metrics"
	"github.com/bukusaku/bukusaku-api/pkg/printer"
	"github.com/bukusaku/bukusaku-api/pkg/storage"
	"github.com/bukusaku/bukusaku-api/pkg/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// app is the wired server with the jobs that run beside it.
type app struct {
	cfg    *config.Config
	log    *zap.Logger
	db     *gorm.DB
	router *gin.Engine

	catalog         *service.Catalog
	idempotencyRepo domainRepo.IdempotencyRepository
	loginLimiter    *middleware.IPRateLimiter
	memoryCarts     *cartstore.MemoryStore // nil when carts live in Redis
	closers         []func() error
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Environment: cfg.App.Env,
		ServiceName: cfg.App.Name,
	})
}

func openDatabase(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	db, err := database.Open(&cfg.Database, log, cfg.App.Debug)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := database.AutoMigrate(db, log); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

func newCartStore(ctx context.Context, cfg *config.CartConfig, log *zap.Logger) (domainRepo.CartStore, *cartstore.MemoryStore, func() error, error) {
	switch cfg.Store {
	case "", "memory":
		store := cartstore.NewMemoryStore(cfg.TTL)
		return store, store, nil, nil
	case "redis":
		store, err := cartstore.NewRedisStore(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.TTL)
		if err != nil {
			return nil, nil, nil, err
		}
		log.Info("carts stored in redis", zap.String("addr", cfg.RedisAddr))
		return store, nil, store.Close, nil
	default:
		return nil, nil, nil, fmt.Errorf("unknown cart store %q (use memory or redis)", cfg.Store)
	}
}

func buildApp(ctx context.Context, cfg *config.Config, log *zap.Logger) (*app, error) {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	loc := cfg.App.Location()

	db, err := openDatabase(cfg, log)
	if err != nil {
		return nil, err
	}
	if err := database.SeedDefaultData(ctx, db, &cfg.Store, log); err != nil {
		log.Warn("seeding default data failed", zap.Error(err))
	}

	a := &app{cfg: cfg, log: log, db: db}

	// Repositories
	productRepo := repository.NewProductRepository(db)
	txRepo := repository.NewTransactionRepository(db)
	itemRepo := repository.NewTransactionItemRepository(db)
	noteRepo := repository.NewNoteRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	a.idempotencyRepo = repository.NewIdempotencyRepository(db)

	carts, memoryCarts, closeCarts, err := newCartStore(ctx, &cfg.Cart, log)
	if err != nil {
		return nil, fmt.Errorf("cart store: %w", err)
	}
	a.memoryCarts = memoryCarts
	if closeCarts != nil {
		a.closers = append(a.closers, closeCarts)
	}

	var disk storage.Disk
	if cfg.Storage.ArchiveExports {
		disk, err = storage.New(ctx, storage.Config{
			Driver:     cfg.Storage.Driver,
			LocalRoot:  cfg.Storage.LocalRoot,
			BaseURL:    cfg.Storage.BaseURL,
			S3Bucket:   cfg.Storage.S3Bucket,
			S3Region:   cfg.Storage.S3Region,
			S3Key:      cfg.Storage.S3Key,
			S3Secret:   cfg.Storage.S3Secret,
			S3Endpoint: cfg.Storage.S3Endpoint,
		})
		if err != nil {
			return nil, fmt.Errorf("storage: %w", err)
		}
	}

	thermalPrinter, err := printer.New(cfg.Printer.Type, cfg.Printer.USBPath, cfg.Printer.Address)
	if err != nil {
		log.Warn("printer unavailable, printing disabled", zap.Error(err))
		thermalPrinter = printer.NewNullPrinter()
	}

	m := metrics.New(cfg.App.Name)
	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.Expiry)

	// Services
	authService, err := service.NewAuthService(cfg.Auth, jwtManager)
	if err != nil {
		return nil, err
	}
	a.catalog = service.NewCatalog(productRepo, log)
	productService := service.NewProductService(productRepo, a.catalog)
	transactionService := service.NewTransactionService(txRepo, itemRepo, log)
	settingsService := service.NewSettingsService(settingsRepo, cfg.Store)
	receiptService := service.NewReceiptService(transactionService, settingsService, disk, m, log, loc)
	printerService := service.NewPrinterService(thermalPrinter, receiptService, transactionService, m, log)
	cashierService := service.NewCashierService(a.catalog, carts, txRepo, itemRepo, productRepo, m, log)
	noteService := service.NewNoteService(noteRepo)
	dashboardService := service.NewDashboardService(txRepo, productRepo, loc)

	handlers := &routes.Handlers{
		Auth:        handler.NewAuthHandler(authService),
		Dashboard:   handler.NewDashboardHandler(dashboardService),
		Product:     handler.NewProductHandler(productService),
		Transaction: handler.NewTransactionHandler(transactionService, receiptService, printerService, loc),
		Note:        handler.NewNoteHandler(noteService),
		Cashier:     handler.NewCashierHandler(cashierService),
		Settings:    handler.NewSettingsHandler(settingsService),
		Printer:     handler.NewPrinterHandler(printerService),
	}
	if disk != nil {
		handlers.File = handler.NewFileHandler(disk)
	}

	a.loginLimiter = middleware.NewIPRateLimiter(middleware.RateLimiterConfig{
		RequestsPerMinute: cfg.RateLimit.LoginPerMinute,
		BurstSize:         cfg.RateLimit.LoginBurst,
	})

	a.router = routes.Setup(handlers, &routes.Deps{
		Cfg:             cfg,
		Log:             log,
		Metrics:         m,
		Sessions:        authService,
		IdempotencyRepo: a.idempotencyRepo,
		LoginLimiter:    a.loginLimiter,
	})
	return a, nil
}

// housekeeping drops expired idempotency keys, idle rate limiter entries
// and abandoned in-memory carts until ctx is done.
func (a *app) housekeeping(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := a.idempotencyRepo.DeleteExpired(ctx)
			if err != nil && ctx.Err() == nil {
				a.log.Warn("idempotency cleanup failed", zap.Error(err))
			}
			fields := []zap.Field{
				zap.Int64("idempotency_keys", n),
				zap.Int("rate_limiter_entries", a.loginLimiter.Cleanup()),
			}
			if a.memoryCarts != nil {
				fields = append(fields, zap.Int("carts", a.memoryCarts.Sweep()))
			}
			a.log.Debug("housekeeping done", fields...)
		}
	}
}

func (a *app) close() {
	for _, c := range a.closers {
		if err := c(); err != nil {
			a.log.Warn("close failed", zap.Error(err))
		}
	}
	if sqlDB, err := a.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
