// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"locafest/internal/config"
	"locafest/internal/domain/activity"
	"locafest/internal/domain/cashflow"
	"locafest/internal/domain/client"
	"locafest/internal/domain/event"
	"locafest/internal/domain/kit"
	"locafest/internal/domain/material"
	"locafest/internal/domain/pricelist"
	"locafest/internal/domain/quote"
	"locafest/internal/domain/report"
	"locafest/internal/domain/user"
	"locafest/internal/infrastructure/files"
	"locafest/internal/infrastructure/http/v1/handlers"
	"locafest/internal/infrastructure/http/v1/middleware"
	"locafest/internal/infrastructure/storage/postgres"
	"locafest/pkg/logger"
)

// RouterConfig holds everything the router wires together.
type RouterConfig struct {
	Config *config.Config
	Logger *logger.Logger
	Pool   *postgres.Pool

	Users     *user.Service
	JWT       *user.JWTService
	Materials *material.Service
	Kits      *kit.Service
	Clients   *client.Service
	Quotes    *quote.Service
	Events    *event.Service
	CashFlow  *cashflow.Service
	Prices    *pricelist.Service
	Activity  activity.Reader
	Reports   *report.Service
	Images    *files.Store
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())
	if cfg.Config.Metrics.Enabled {
		router.Use(middleware.Metrics())
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	base := handlers.NewBaseHandler()

	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
	}

	authHandler := handlers.NewAuthHandler(base, cfg.Users)
	materialHandler := handlers.NewMaterialHandler(base, cfg.Materials, cfg.Images)
	kitHandler := handlers.NewKitHandler(base, cfg.Kits, cfg.Images)
	clientHandler := handlers.NewClientHandler(base, cfg.Clients)
	quoteHandler := handlers.NewQuoteHandler(base, cfg.Quotes)
	eventHandler := handlers.NewEventHandler(base, cfg.Events)
	cashHandler := handlers.NewCashFlowHandler(base, cfg.CashFlow, cfg.Prices, cfg.Activity)
	reportHandler := handlers.NewReportHandler(base, cfg.Reports)

	// Approval links travel by email, so they carry no bearer token. The
	// single-use token in the path is the whole credential.
	router.GET("/approve/:token", quoteHandler.Approve)
	router.GET("/refuse/:token", quoteHandler.Refuse)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/auth/login", authHandler.Login)

		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.JWT))

		admin := protected.Group("")
		admin.Use(middleware.RequireRole(string(user.RoleAdmin)))
		{
			admin.POST("/users", authHandler.Register)
			admin.GET("/users", authHandler.List)
			admin.POST("/config/reload", func(c *gin.Context) {
				if err := cfg.Config.Reload(); err != nil {
					_ = c.Error(err)
					c.Abort()
					return
				}
				c.JSON(200, gin.H{"message": "configuration reloaded"})
			})
		}

		materials := protected.Group("/materials")
		{
			materials.POST("", materialHandler.Create)
			materials.GET("", materialHandler.List)
			materials.GET("/:id", materialHandler.Get)
			materials.PUT("/:id", materialHandler.Update)
			materials.DELETE("/:id", materialHandler.Delete)
			materials.POST("/:id/image", materialHandler.UploadImage)
		}

		kits := protected.Group("/kits")
		{
			kits.POST("", kitHandler.Create)
			kits.GET("", kitHandler.List)
			kits.GET("/:id", kitHandler.Get)
			kits.DELETE("/:id", kitHandler.Delete)
			kits.PATCH("/:id/maintenance", kitHandler.SetMaintenance)
			kits.POST("/:id/image", kitHandler.UploadImage)
		}

		clients := protected.Group("/clients")
		{
			clients.POST("", clientHandler.Create)
			clients.GET("", clientHandler.List)
			clients.GET("/:id", clientHandler.Get)
			clients.PUT("/:id", clientHandler.Update)
			clients.DELETE("/:id", clientHandler.Delete)
		}
		protected.GET("/cep/:cep", clientHandler.LookupCEP)

		quotes := protected.Group("/quotes")
		{
			quotes.POST("", quoteHandler.Create)
			quotes.GET("", quoteHandler.List)
			quotes.GET("/:id", quoteHandler.Get)
		}

		events := protected.Group("/events")
		{
			events.POST("", eventHandler.Create)
			events.GET("", eventHandler.List)
			events.GET("/:id", eventHandler.Get)
			events.PATCH("/:id/status", eventHandler.SetStatus)
			events.POST("/:id/payments", eventHandler.RegisterPayment)
			events.POST("/:id/finalize", eventHandler.Finalize)
			events.DELETE("/:id", eventHandler.Delete)
		}

		cash := protected.Group("/cashflow")
		{
			cash.POST("", cashHandler.Append)
			cash.GET("", cashHandler.List)
			cash.GET("/summary", cashHandler.Summary)
		}

		prices := protected.Group("/prices")
		{
			prices.POST("", cashHandler.CreatePrice)
			prices.GET("", cashHandler.ListPrices)
			prices.PUT("/:id", cashHandler.UpdatePrice)
			prices.DELETE("/:id", cashHandler.DeletePrice)
		}

		protected.GET("/activity", cashHandler.ListActivity)

		reports := protected.Group("/reports")
		{
			reports.GET("/dashboard", reportHandler.Dashboard)
			reports.GET("/cashflow.xlsx", reportHandler.ExportCashFlow)
			reports.GET("/inventory.xlsx", reportHandler.ExportInventory)
		}
	}

	return router
}
