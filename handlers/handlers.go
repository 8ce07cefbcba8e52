package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/astraautomax/automax-backend/models"
	"github.com/astraautomax/automax-backend/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Context timeouts for store and media host calls.
const (
	dbTimeout      = 5 * time.Second
	uploadTimeout  = 30 * time.Second
	cleanupTimeout = 15 * time.Second
	healthTimeout  = 2 * time.Second
)

// ProductStore persists catalog products.
type ProductStore interface {
	CreateProduct(ctx context.Context, p *models.Product) error
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	UpdateProduct(ctx context.Context, id string, changes models.ProductChanges) (*models.Product, error)
	DeleteProduct(ctx context.Context, id string) (*models.Product, error)
}

// ContactStore persists contact-form submissions.
type ContactStore interface {
	CreateContact(ctx context.Context, c *models.Contact) error
	ListContacts(ctx context.Context) ([]models.Contact, error)
}

// Pinger reports store connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// LoginService exchanges credentials for a token.
type LoginService interface {
	Login(ctx context.Context, email, password string) (string, error)
}

// Deps are the collaborators a Handler delegates to.
type Deps struct {
	Products ProductStore
	Contacts ContactStore
	Images   services.ImageStorage
	Health   Pinger
	Auth     LoginService // nil disables login
}

// Handler serves the HTTP API.
type Handler struct {
	products ProductStore
	contacts ContactStore
	images   services.ImageStorage
	health   Pinger
	auth     LoginService
}

// New creates a Handler.
func New(deps Deps) *Handler {
	return &Handler{
		products: deps.Products,
		contacts: deps.Contacts,
		images:   deps.Images,
		health:   deps.Health,
		auth:     deps.Auth,
	}
}

// Root is the plain-text liveness probe.
func (h *Handler) Root(c *gin.Context) {
	c.String(http.StatusOK, "Automax API is running")
}

// Health reports liveness plus store connectivity.
func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	connected := true
	if err := h.health.Ping(ctx); err != nil {
		zap.L().Warn("health check: database unreachable", zap.Error(err))
		connected = false
	}
	c.JSON(http.StatusOK, gin.H{"status": "UP", "database": connected})
}

// bindJSON decodes the request body into dst, answering 400 or 413 on failure.
func bindJSON(c *gin.Context, dst interface{}) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Request body too large"})
		return false
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
	return false
}

func missingFields(c *gin.Context, fields []string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required", "missingFields": fields})
}

func internalError(c *gin.Context, msg string, err error) {
	zap.L().Error(msg, zap.String("path", c.Request.URL.Path), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
}
