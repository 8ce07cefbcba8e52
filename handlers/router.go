package handlers

import (
	"net/http"

	"github.com/astraautomax/automax-backend/middleware"
	"github.com/gin-gonic/gin"
)

// RouterConfig selects the optional middleware around the API.
type RouterConfig struct {
	Origins     *middleware.OriginPolicy
	RateLimiter *middleware.RateLimiter // nil disables rate limiting
	BodyLimit   int64
	// RequireAuth guards write routes and the contact list. When nil those
	// routes stay open even though login issues tokens.
	RequireAuth gin.HandlerFunc
}

// NewRouter wires h into a gin engine.
func NewRouter(h *Handler, cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestLogger(), middleware.Recovery())
	router.Use(middleware.CORS(cfg.Origins)...)
	if cfg.RateLimiter != nil {
		router.Use(cfg.RateLimiter.Middleware())
	}
	router.Use(middleware.BodyLimit(cfg.BodyLimit))

	guard := func(handler gin.HandlerFunc) []gin.HandlerFunc {
		if cfg.RequireAuth == nil {
			return []gin.HandlerFunc{handler}
		}
		return []gin.HandlerFunc{cfg.RequireAuth, handler}
	}

	router.GET("/", h.Root)

	api := router.Group("/api")
	{
		api.GET("/health", h.Health)

		api.GET("/contacts", guard(h.ListContacts)...)
		api.POST("/contact", h.CreateContact)

		api.GET("/products", h.ListProducts)
		api.GET("/products/:id", h.GetProduct)
		api.POST("/products", guard(h.CreateProduct)...)
		api.PUT("/products/:id", guard(h.UpdateProduct)...)
		api.DELETE("/products/:id", guard(h.DeleteProduct)...)

		if h.auth != nil {
			api.POST("/login", h.Login)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
	})
	return router
}
