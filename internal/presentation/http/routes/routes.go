package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jeneeldumasia/mp/internal/config"
	domainRepo "github.com/jeneeldumasia/mp/internal/domain/repository"
	"github.com/jeneeldumasia/mp/internal/presentation/http/handler"
	"github.com/jeneeldumasia/mp/internal/presentation/http/middleware"
	"github.com/jeneeldumasia/mp/pkg/logger"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Bill     *handler.BillHandler
	Sales    *handler.SalesHandler
	Report   *handler.ReportHandler
	Settings *handler.SettingsHandler
	Menu     *handler.MenuHandler
	Printer  *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg             *config.Config
	Authorizer      middleware.TokenAuthorizer
	IdempotencyRepo domainRepo.IdempotencyRepository
	RateLimiter     *middleware.ClientRateLimiter
	Log             *logger.Logger
}

// NewRateLimiter builds the per-client limiter from RATE_LIMIT_* settings
func NewRateLimiter(cfg *config.RateLimitConfig) *middleware.ClientRateLimiter {
	rlCfg := middleware.DefaultRateLimiterConfig()
	if cfg.Requests > 0 && cfg.Duration > 0 {
		rlCfg.RequestsPerSecond = float64(cfg.Requests) / float64(cfg.Duration)
		rlCfg.BurstSize = cfg.Requests
	}
	return middleware.NewClientRateLimiter(rlCfg)
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Log))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	v1 := router.Group("/api/v1")
	if deps.RateLimiter != nil {
		v1.Use(deps.RateLimiter.Middleware())
	}

	unlocked := v1.Group("")
	unlocked.Use(middleware.SettingsAuth(deps.Authorizer))

	registerBillRoutes(v1, h, deps)
	registerSalesRoutes(v1, h)
	registerReportRoutes(v1, h)
	registerSettingsRoutes(v1, unlocked, h)
	registerMenuRoutes(v1, unlocked, h)
	v1.GET("/printer/status", h.Printer.GetStatus)

	return router
}

func registerBillRoutes(v1 *gin.RouterGroup, h *Handlers, deps *Deps) {
	bill := v1.Group("/bill")
	{
		bill.GET("", h.Bill.Get)
		bill.DELETE("", h.Bill.Clear)
		bill.POST("/items", h.Bill.AddItem)
		bill.PATCH("/items/:name", h.Bill.UpdateQuantity)
		bill.PUT("/options", h.Bill.SetOptions)
		bill.POST("/complete", middleware.Idempotency(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
			Log:  deps.Log,
		}), h.Bill.Complete)
	}
}

func registerSalesRoutes(v1 *gin.RouterGroup, h *Handlers) {
	sales := v1.Group("/sales")
	{
		sales.GET("", h.Sales.ListByDate)
		sales.GET("/history", h.Sales.History)
		sales.GET("/:id", h.Sales.Get)
		sales.POST("/:id/reprint", h.Sales.Reprint)
	}
}

func registerReportRoutes(v1 *gin.RouterGroup, h *Handlers) {
	reports := v1.Group("/reports")
	{
		reports.GET("/daily", h.Report.Daily)
		reports.GET("/daily/export", h.Report.ExportDaily)
		reports.GET("/weekly", h.Report.Weekly)
		reports.GET("/range", h.Report.Range)
	}
}

func registerSettingsRoutes(v1, unlocked *gin.RouterGroup, h *Handlers) {
	v1.GET("/settings", h.Settings.GetSettings)
	v1.POST("/settings/unlock", h.Settings.Unlock)
	unlocked.PUT("/settings", h.Settings.UpdateSettings)
	unlocked.PUT("/settings/password", h.Settings.ChangePassword)
}

func registerMenuRoutes(v1, unlocked *gin.RouterGroup, h *Handlers) {
	v1.GET("/menu", h.Menu.List)
	unlocked.PUT("/menu", h.Menu.Replace)
	unlocked.POST("/menu/import", h.Menu.Import)
	unlocked.PUT("/menu/:name", h.Menu.Upsert)
	unlocked.DELETE("/menu/:name", h.Menu.Delete)
}
