package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ArowuTest/eventlottery-backend/internal/config"
	"github.com/ArowuTest/eventlottery-backend/internal/handlers"
	"github.com/ArowuTest/eventlottery-backend/internal/middleware"
	"github.com/ArowuTest/eventlottery-backend/internal/models"
)

// HandlerDependencies holds the handlers wired by main
type HandlerDependencies struct {
	EventHandler        *handlers.EventHandler
	WaitlistHandler     *handlers.WaitlistHandler
	LotteryHandler      *handlers.LotteryHandler
	LedgerHandler       *handlers.LedgerHandler
	NotificationHandler *handlers.NotificationHandler
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, deps HandlerDependencies, tokens middleware.TokenParser) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg.Server.AllowedHosts))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())

	// Public routes
	public := router.Group("/api/v1")
	{
		public.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})
	}

	// Protected routes
	protected := router.Group("/api/v1")
	protected.Use(middleware.JWTAuthMiddleware(tokens))
	{
		organizerOnly := middleware.RequireRole(models.RoleOrganizer)

		events := protected.Group("/events")
		{
			events.GET("", deps.EventHandler.ListEvents)
			events.POST("", organizerOnly, deps.EventHandler.CreateEvent)
			events.GET("/:id", deps.EventHandler.GetEvent)

			events.GET("/:id/waitlist", deps.WaitlistHandler.GetWaitlist)
			events.POST("/:id/waitlist", deps.WaitlistHandler.Join)
			events.DELETE("/:id/waitlist", deps.WaitlistHandler.Leave)

			events.POST("/:id/lottery", organizerOnly, deps.LotteryHandler.RunLottery)
			events.POST("/:id/lottery/retry-winners", organizerOnly, deps.LotteryHandler.RetryWinners)
			events.POST("/:id/lottery/retry-losers", organizerOnly, deps.LotteryHandler.RetryLosers)

			events.GET("/:id/ledger", organizerOnly, deps.LedgerHandler.GetLedger)
			events.GET("/:id/notifications", organizerOnly, deps.NotificationHandler.ListForEvent)
		}

		protected.GET("/me/notifications", deps.NotificationHandler.ListMine)
	}

	return router
}
