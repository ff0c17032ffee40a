package router

import (
	"net/http"
	"time"

	"dashflow/internal/auth"
	"dashflow/internal/confirm"
	"dashflow/internal/dashboard"
	"dashflow/internal/events"
	"dashflow/internal/logger"
	"dashflow/internal/middleware"
	"dashflow/internal/products"
	"dashflow/internal/settings"
	"dashflow/internal/users"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Deps is everything the routes are wired to.
type Deps struct {
	CORSOrigins []string
	RateLimiter *middleware.RateLimiter

	Tokens   *auth.TokenManager
	Sessions auth.SessionRepository

	Auth          *auth.Handler
	Users         *users.Handler
	Products      *products.Handler
	Confirmations *confirm.Handler
	Dashboard     *dashboard.Handler
	Settings      *settings.Handler
	Events        *events.Hub
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), logger.Middleware())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     d.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check route
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	if d.RateLimiter != nil {
		api.Use(d.RateLimiter.Middleware())
	}

	requireAuth := middleware.AuthMiddleware(d.Tokens, d.Sessions)
	adminOnly := middleware.RequireRole(auth.RoleAdmin)

	// ───────────────────────── AUTH ─────────────────────────
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", d.Auth.Login)
		authGroup.POST("/register", d.Auth.Register)
		authGroup.POST("/logout", requireAuth, d.Confirmations.ForgetOnSuccess, d.Auth.Logout)
		authGroup.GET("/me", requireAuth, d.Auth.Me)
	}

	// ───────────────────────── USERS ─────────────────────────
	usersGroup := api.Group("/users", requireAuth)
	{
		usersGroup.GET("", d.Users.List)
		usersGroup.GET("/:id", d.Users.Get)
		usersGroup.POST("", adminOnly, d.Users.Create)
		usersGroup.PUT("/:id", adminOnly, d.Users.Update)
		usersGroup.DELETE("/:id", adminOnly, d.Users.Delete)
	}

	// ───────────────────────── PRODUCTS ─────────────────────────
	productsGroup := api.Group("/products", requireAuth)
	{
		productsGroup.GET("", d.Products.List)
		productsGroup.GET("/categories", d.Products.Categories)
		productsGroup.GET("/:id", d.Products.Get)
		productsGroup.POST("", adminOnly, d.Products.Create)
		productsGroup.POST("/images", adminOnly, d.Products.UploadImage)
		productsGroup.PUT("/:id", adminOnly, d.Products.Update)
		productsGroup.DELETE("/:id", adminOnly, d.Products.Delete)
	}

	// ───────────────────────── CONFIRMATIONS ─────────────────────────
	confirmations := api.Group("/confirmations", requireAuth)
	{
		confirmations.GET("", d.Confirmations.Current)
		confirmations.POST("/:id", d.Confirmations.Confirm)
		confirmations.DELETE("", d.Confirmations.Cancel)
	}

	// ───────────────────────── DASHBOARD + SETTINGS ─────────────────────────
	api.GET("/dashboard", requireAuth, d.Dashboard.Get)
	api.GET("/settings", requireAuth, d.Settings.Get)
	api.PUT("/settings", requireAuth, d.Settings.Update)

	// ───────────────────────── LIVE EVENTS ─────────────────────────
	api.GET("/events/ws", middleware.TokenFromQuery(), requireAuth, d.Events.ServeWS)

	return r
}
