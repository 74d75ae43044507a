package handlers

import (
	"net/http"
	"slices"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

func (h *Handler) SetupRouter() *gin.Engine {
	r := gin.Default()

	// Middleware
	if origins := h.cfg.AllowedOrigins(); len(origins) > 0 {
		r.Use(cors.New(h.corsConfig(origins)))
	}

	store := cookie.NewStore([]byte(h.cfg.SessionSecret))
	store.Options(h.cookieOptions())
	r.Use(sessions.Sessions(h.cfg.SessionCookieName, store))

	// Routes
	r.GET("/health", h.Health)

	// Public Routes
	r.POST("/signup", h.Signup)
	r.POST("/login", h.Login)

	// Protected Routes
	r.DELETE("/logout", h.AuthRequired("No active session to log out from"), h.Logout)
	r.GET("/check_session", h.AuthRequired("No active session"), h.CheckSession)

	recipes := r.Group("/recipes")
	recipes.Use(h.AuthRequired("User not logged in"))
	{
		recipes.GET("", h.ListRecipes)
		recipes.POST("", h.CreateRecipe)
	}

	return r
}

// cookieOptions applies to the signed cookie that carries the session token.
// MaxAge 0 leaves it a browser-session cookie unless SESSION_TTL is set.
func (h *Handler) cookieOptions() sessions.Options {
	return sessions.Options{
		Path:     "/",
		MaxAge:   int(h.cfg.SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	}
}

func (h *Handler) corsConfig(origins []string) cors.Config {
	corsConfig := cors.DefaultConfig()
	if slices.Contains(origins, "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = origins
		corsConfig.AllowCredentials = true
	}
	corsConfig.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	return corsConfig
}

func (h *Handler) Health(c *gin.Context) {
	if err := h.store.Ping(c.Request.Context()); err != nil {
		h.logger.Error("Health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
