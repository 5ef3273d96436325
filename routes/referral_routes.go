package routes

import (
	"time"

	"mewayz/internal/handlers"
	"mewayz/internal/middleware"
	"mewayz/internal/utils"
	"mewayz/pkg/cache"
	"mewayz/pkg/websocket"

	"github.com/gin-gonic/gin"
)

// SetupReferralRoutes wires the public click endpoint, the member-facing
// referral API and the admin program surface.
func SetupReferralRoutes(
	r *gin.Engine,
	api *gin.RouterGroup,
	referralHandler *handlers.ReferralHandler,
	adminHandler *handlers.AdminHandler,
	wsHandler *websocket.Handler,
	redis *cache.RedisCache,
	jwtSecret string,
) {
	// Public referral link landing. No auth; visitors are anonymous.
	r.GET("/r/:code",
		middleware.RateLimitMiddleware(redis, "click", utils.ClickRateLimit, time.Minute),
		referralHandler.TrackClick,
	)

	referral := api.Group("/referral")
	referral.Use(middleware.AuthRequired(jwtSecret))
	{
		referral.POST("/codes", referralHandler.GenerateCode)
		referral.GET("/codes", referralHandler.ListCodes)
		referral.GET("/codes/:code", referralHandler.GetCode)

		referral.POST("/conversions", referralHandler.RecordConversion)
		referral.GET("/conversions", referralHandler.ListConversions)

		referral.POST("/payouts", referralHandler.RequestPayout)
		referral.GET("/payouts", referralHandler.ListPayouts)

		referral.GET("/analytics/summary", referralHandler.GetSummary)

		referral.GET("/events", wsHandler.HandleWebSocket)
	}

	admin := api.Group("/admin/referral")
	admin.Use(middleware.AuthRequired(jwtSecret), middleware.AdminRequired())
	{
		admin.POST("/programs", adminHandler.CreateProgram)
		admin.GET("/programs", adminHandler.ListPrograms)
		admin.GET("/programs/:id", adminHandler.GetProgram)
		admin.PUT("/programs/:id", adminHandler.UpdateProgram)
		admin.PUT("/programs/:id/status", adminHandler.SetProgramStatus)
		admin.GET("/programs/:id/summary", adminHandler.GetProgramSummary)
		admin.POST("/programs/:id/export", adminHandler.ExportConversions)

		admin.PUT("/codes/:id/status", adminHandler.SetCodeStatus)

		admin.PUT("/conversions/:id/approve", adminHandler.ApproveConversion)
		admin.PUT("/conversions/:id/cancel", adminHandler.CancelConversion)

		admin.POST("/payouts", adminHandler.CreatePayout)
		admin.POST("/payouts/:id/retry", adminHandler.RetryPayout)
	}
}
