package router

import (
	"github.com/cfc-orderdesk/internal/cache"
	"github.com/cfc-orderdesk/internal/config"
	publichandlers "github.com/cfc-orderdesk/internal/http/handlers/public"
	handlershared "github.com/cfc-orderdesk/internal/http/handlers/shared"
	staffhandlers "github.com/cfc-orderdesk/internal/http/handlers/staff"
	"github.com/cfc-orderdesk/internal/http/response"
	"github.com/cfc-orderdesk/internal/logger"
	"github.com/cfc-orderdesk/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	r := gin.New()

	publicHandler := publichandlers.New(c)
	staffHandler := staffhandlers.New(c)
	loginRule := RateLimitRule{
		Prefix:        "rate:login",
		WindowSeconds: cfg.RateLimit.LoginWindowSeconds,
		MaxRequests:   cfg.RateLimit.LoginMaxAttempts,
		BlockSeconds:  cfg.RateLimit.LoginBlockSeconds,
		MessageKey:    "error.login_too_many",
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(logger.Z()))
	r.Use(CORSMiddleware(cfg.CORS))

	r.GET("/health", publicHandler.Health)
	r.NoRoute(func(ctx *gin.Context) {
		response.NotFound(ctx, handlershared.Message("error.not_found"))
	})

	apiV1 := r.Group("/api/v1")
	{
		apiV1.POST("/auth/login", RateLimitMiddleware(cache.Client(), loginRule, KeyByIP), publicHandler.Login)

		staff := apiV1.Group("")
		staff.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.AuthService))
		{
			staff.GET("/catalog", staffHandler.GetCatalog)

			// 订单
			staff.GET("/orders", staffHandler.ListOrders)
			staff.POST("/orders/refresh", staffHandler.RefreshOrders)
			staff.GET("/orders/:id", staffHandler.GetOrder)
			staff.PATCH("/orders/:id/status", staffHandler.UpdateOrderStatus)
			staff.PATCH("/orders/:id/notes", staffHandler.UpdateOrderNotes)
			staff.POST("/orders/:id/cancel", staffHandler.CancelOrder)
			staff.POST("/orders/:id/summary", staffHandler.RegenerateOrderSummary)
			staff.GET("/orders/:id/clipboard", staffHandler.GetOrderClipboard)

			// 发货单
			staff.PATCH("/shipments/:id/status", staffHandler.UpdateShipmentStatus)
			staff.POST("/shipments/:id/tracking", staffHandler.SaveTracking)
			staff.GET("/shipments/:id/tracking-notice", staffHandler.GetTrackingNotice)
			staff.GET("/shipments/:id/method", staffHandler.GetShipMethod)
			staff.POST("/shipments/:id/method", staffHandler.SelectShipMethod)
			staff.POST("/shipments/:id/method/change", staffHandler.ChangeShipMethod)
			staff.POST("/shipments/:id/quote", staffHandler.SaveShipmentQuote)
			staff.GET("/shipments/:id/rl-quote", staffHandler.GetRLQuote)

			// 同步
			staff.POST("/sync/summaries", staffHandler.SyncSummaries)
			staff.POST("/sync/gmail", staffHandler.SyncGmail)
			staff.POST("/sync/b2bwave", staffHandler.SyncB2BWave)
			staff.POST("/sync/all", staffHandler.SyncAll)

			// 偏好与设置
			staff.GET("/preferences/snap-tip", staffHandler.GetSnapTip)
			staff.POST("/preferences/snap-tip/dismiss", staffHandler.DismissSnapTip)
			staff.GET("/settings/shipping", staffHandler.GetShippingSettings)
			staff.PUT("/settings/shipping", staffHandler.UpdateShippingSettings)

			// 审计
			staff.GET("/intents", staffHandler.ListIntents)
			staff.GET("/intents/stats", staffHandler.GetIntentStats)
		}
	}

	return r
}
