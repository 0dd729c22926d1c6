package router

import (
	"net/http"

	"ledgerapi/api"
	"ledgerapi/config"
	_ "ledgerapi/docs"
	"ledgerapi/logging"
	"ledgerapi/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRouter wires every route onto a new engine backed by db
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	if err := api.RegisterValidators(); err != nil {
		logging.Component("router").WithError(err).Fatal("register validators")
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		authHandler := api.NewAuthHandler(cfg, db)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", middleware.LoginRateLimit(cfg.RateLimit.LoginAttempts, cfg.RateLimit.Window), authHandler.Login)
		}

		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth())
		{
			authorized.GET("/auth/profile", authHandler.Profile)
			authorized.DELETE("/auth/profile", authHandler.DeleteProfile)

			accountHandler := api.NewAccountHandler(db)
			accounts := authorized.Group("/accounts")
			{
				accounts.GET("", accountHandler.List)
				accounts.POST("", accountHandler.Create)
				accounts.GET("/:id", accountHandler.Get)
				accounts.PUT("/:id", accountHandler.Update)
				accounts.DELETE("/:id", accountHandler.Delete)
			}

			transactionHandler := api.NewTransactionHandler(db)
			transactions := authorized.Group("/transactions")
			{
				transactions.GET("", transactionHandler.List)
				transactions.POST("", transactionHandler.Create)
				transactions.GET("/:id", transactionHandler.Get)
				transactions.PUT("/:id", transactionHandler.Update)
				transactions.DELETE("/:id", transactionHandler.Delete)
			}

			transferHandler := api.NewTransferHandler(db)
			authorized.POST("/transfers", transferHandler.Create)

			categoryHandler := api.NewCategoryHandler(db)
			authorized.GET("/categories", categoryHandler.List)
			authorized.POST("/categories", categoryHandler.Create)

			debtHandler := api.NewDebtHandler(db)
			debts := authorized.Group("/debts")
			{
				debts.GET("", debtHandler.List)
				debts.POST("", debtHandler.Create)
				debts.GET("/:id", debtHandler.Get)
				debts.PUT("/:id", debtHandler.Update)
				debts.PATCH("/:id/close", debtHandler.Close)
				debts.DELETE("/:id", debtHandler.Delete)
			}

			budgetHandler := api.NewBudgetHandler(db)
			budgets := authorized.Group("/budgets")
			{
				budgets.GET("", budgetHandler.List)
				budgets.POST("", budgetHandler.Create)
				budgets.GET("/comparison", budgetHandler.Compare)
				budgets.PUT("/:id", budgetHandler.Update)
				budgets.DELETE("/:id", budgetHandler.Delete)
			}

			analyticsHandler := api.NewAnalyticsHandler(db)
			analytics := authorized.Group("/analytics")
			{
				analytics.GET("/summary", analyticsHandler.Summary)
				analytics.GET("/by-category", analyticsHandler.ByCategory)
				analytics.GET("/daily", analyticsHandler.Daily)
			}

			exportHandler := api.NewExportHandler(db)
			export := authorized.Group("/export")
			{
				export.GET("/csv", exportHandler.CSV)
				export.GET("/xlsx", exportHandler.XLSX)
			}
		}
	}

	return r
}
