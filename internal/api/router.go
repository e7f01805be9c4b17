package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"keycontrol-backend/config"
	"keycontrol-backend/internal/auth"
	"keycontrol-backend/internal/mw"
	"keycontrol-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(cfg *config.Config, s store.Store, authSvc *auth.Service) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	guard := mw.NewLoginGuard(cfg.Login.MaxAttempts, cfg.Login.LockoutWindow())
	handler := NewHandler(s, authSvc, guard)

	rateLimiter := mw.RateLimiter(
		time.Duration(cfg.Server.RateLimitWindowSeconds)*time.Second,
		cfg.Server.RateLimitMaxRequests,
	)
	authed := mw.RequireAuth(authSvc)

	api := r.Group("/api")
	api.Use(rateLimiter, mw.RequestTimeout(cfg.Server.RequestTimeout()))
	{
		api.GET("/health", handler.Health)

		api.POST("/auth/login", handler.Login)
		api.POST("/auth/verify", authed, handler.Verify)
		api.POST("/auth/register", authed, mw.RequireAdmin(), handler.Register)

		api.GET("/rooms", authed, handler.ListRooms)
		api.POST("/rooms/:id/checkout", authed, handler.CheckoutKey)
		api.POST("/rooms/:id/checkin", authed, handler.CheckinKey)

		api.GET("/people", authed, handler.ListPeople)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"sucesso": false,
			"erro":    "Rota não encontrada",
			"caminho": c.Request.URL.Path,
			"metodo":  c.Request.Method,
		})
	})

	return r
}
