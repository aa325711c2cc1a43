package routes

import (
	"github.com/bukusaku/bukusaku-api/internal/config"
	domainRepo "github.com/bukusaku/bukusaku-api/internal/domain/repository"
	"github.com/bukusaku/bukusaku-api/internal/presentation/http/handler"
	"github.com/bukusaku/bukusaku-api/internal/presentation/http/middleware"
	"github.com/bukusaku/bukusaku-api/pkg/metrics"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth        *handler.AuthHandler
	Dashboard   *handler.DashboardHandler
	Product     *handler.ProductHandler
	Transaction *handler.TransactionHandler
	Note        *handler.NoteHandler
	Cashier     *handler.CashierHandler
	Settings    *handler.SettingsHandler
	Printer     *handler.PrinterHandler
	File        *handler.FileHandler // nil when archiving is off
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg             *config.Config
	Log             *zap.Logger
	Metrics         *metrics.Metrics
	Sessions        middleware.SessionValidator
	IdempotencyRepo domainRepo.IdempotencyRepository
	LoginLimiter    *middleware.IPRateLimiter
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(middleware.LoggerMiddleware(deps.Log))
	router.Use(middleware.Recovery(deps.Log))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))
	if deps.Metrics != nil {
		router.Use(deps.Metrics.Middleware())
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	v1 := router.Group("/api/v1")
	{
		login := []gin.HandlerFunc{h.Auth.Login}
		if deps.LoginLimiter != nil {
			login = append([]gin.HandlerFunc{deps.LoginLimiter.Middleware()}, login...)
		}
		v1.POST("/auth/login", login...)

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.Sessions))
		protected.Use(middleware.Idempotency(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
			Log:  deps.Log,
		}))

		registerProtectedRoutes(protected, h)
	}

	return router
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers) {
	protected.POST("/auth/logout", h.Auth.Logout)

	// Dashboard
	protected.GET("/dashboard", h.Dashboard.GetStats)

	// Settings
	protected.GET("/settings", h.Settings.GetSettings)
	protected.PUT("/settings", h.Settings.UpdateSettings)

	registerProductRoutes(protected, h)
	registerTransactionRoutes(protected, h)
	registerNoteRoutes(protected, h)
	registerCashierRoutes(protected, h)

	// Printer
	printer := protected.Group("/printer")
	{
		printer.GET("/status", h.Printer.GetStatus)
		printer.POST("/test", h.Printer.TestPrint)
	}

	if h.File != nil {
		protected.GET("/files/*path", h.File.Get)
	}
}

func registerProductRoutes(protected *gin.RouterGroup, h *Handlers) {
	products := protected.Group("/products")
	{
		products.GET("", h.Product.List)
		products.POST("", h.Product.Create)
		products.POST("/import", h.Product.Import)
		products.GET("/import/template", h.Product.ImportTemplate)
		products.GET("/:id", h.Product.Get)
		products.PUT("/:id", h.Product.Update)
		products.DELETE("/:id", h.Product.Delete)
	}
}

func registerTransactionRoutes(protected *gin.RouterGroup, h *Handlers) {
	transactions := protected.Group("/transactions")
	{
		transactions.GET("", h.Transaction.List)
		transactions.POST("", h.Transaction.Create)
		transactions.GET("/export", h.Transaction.Export)
		transactions.GET("/:id", h.Transaction.Get)
		transactions.PUT("/:id", h.Transaction.Update)
		transactions.DELETE("/:id", h.Transaction.Delete)
		transactions.GET("/:id/items", h.Transaction.Items)
		transactions.GET("/:id/receipt", h.Transaction.Receipt)
		transactions.POST("/:id/receipt/print", h.Transaction.Print)
	}
}

func registerNoteRoutes(protected *gin.RouterGroup, h *Handlers) {
	notes := protected.Group("/notes")
	{
		notes.GET("", h.Note.List)
		notes.POST("", h.Note.Create)
		notes.GET("/:id", h.Note.Get)
		notes.PUT("/:id", h.Note.Update)
		notes.DELETE("/:id", h.Note.Delete)
	}
}

func registerCashierRoutes(protected *gin.RouterGroup, h *Handlers) {
	cashier := protected.Group("/cashier")
	{
		cashier.GET("/catalog", h.Cashier.Catalog)
		cashier.POST("/carts", h.Cashier.OpenCart)
		cashier.GET("/carts/:id", h.Cashier.GetCart)
		cashier.DELETE("/carts/:id", h.Cashier.ClearCart)
		cashier.POST("/carts/:id/items", h.Cashier.AddItem)
		cashier.PATCH("/carts/:id/items/:product_id", h.Cashier.UpdateItem)
		cashier.DELETE("/carts/:id/items/:product_id", h.Cashier.RemoveItem)
		cashier.POST("/carts/:id/checkout", h.Cashier.Checkout)
	}
}

// List returns every route the server registers, with every optional
// group switched on.
func List() gin.RoutesInfo {
	router := Setup(&Handlers{File: &handler.FileHandler{}}, &Deps{
		Cfg:     &config.Config{},
		Log:     zap.NewNop(),
		Metrics: metrics.New("routes"),
	})
	return router.Routes()
}
