package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/astraautomax/automax-backend/database"
	"github.com/astraautomax/automax-backend/models"
	"github.com/astraautomax/automax-backend/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ListProducts godoc
// @Summary List all products
// @Tags products
// @Produce json
// @Success 200 {array} models.ProductView
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /products [get]
func (h *Handler) ListProducts(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	products, err := h.products.ListProducts(ctx)
	if err != nil {
		internalError(c, "error listing products", err)
		return
	}

	views := make([]models.ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, models.NewProductView(p))
	}
	c.JSON(http.StatusOK, views)
}

// GetProduct godoc
// @Summary Get a product by id
// @Tags products
// @Produce json
// @Param id path string true "Product id"
// @Success 200 {object} models.ProductView
// @Failure 404 {object} map[string]string "Product not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /products/{id} [get]
func (h *Handler) GetProduct(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	product, err := h.products.GetProduct(ctx, c.Param("id"))
	if err != nil {
		h.storeError(c, "error fetching product", err)
		return
	}
	c.JSON(http.StatusOK, models.NewProductView(*product))
}

// CreateProduct godoc
// @Summary Create a product
// @Description All seven fields are required; image must be a data URI.
// @Tags products
// @Accept json
// @Produce json
// @Param product body models.CreateProductRequest true "Product data"
// @Success 201 {object} map[string]interface{} "Product added"
// @Failure 400 {object} map[string]interface{} "Missing fields or invalid image"
// @Failure 409 {object} map[string]string "Duplicate part number"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /products [post]
func (h *Handler) CreateProduct(c *gin.Context) {
	var req models.CreateProductRequest
	if !bindJSON(c, &req) {
		return
	}
	if missing := models.ValidateProduct(req); len(missing) > 0 {
		missingFields(c, missing)
		return
	}
	if !models.IsImageDataURI(req.Image.String()) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image format"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), uploadTimeout)
	defer cancel()

	img, err := h.images.Store(ctx, req.Image.String())
	if err != nil {
		imageError(c, err)
		return
	}

	product := models.Product{
		Name:     req.Name.String(),
		Category: req.Category.String(),
		Volt:     req.Volt.String(),
		PartNo:   req.PartNo.String(),
		Color:    req.Color.String(),
		Stock:    req.Stock.String(),
	}
	product.SetImage(img)

	if err := h.products.CreateProduct(ctx, &product); err != nil {
		h.discard(ctx, img)
		h.storeError(c, "error adding product", err)
		return
	}

	zap.L().Info("product created", zap.String("id", product.ID.Hex()), zap.String("partNo", product.PartNo))
	c.JSON(http.StatusCreated, gin.H{
		"message": "Product added successfully",
		"product": models.NewProductView(product),
	})
}

// UpdateProduct godoc
// @Summary Update a product
// @Description Absent fields keep their value; the image is replaced only by a valid data URI.
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "Product id"
// @Param product body models.UpdateProductRequest true "Fields to change"
// @Success 200 {object} map[string]interface{} "Product updated"
// @Failure 404 {object} map[string]string "Product not found"
// @Failure 409 {object} map[string]string "Duplicate part number"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /products/{id} [put]
func (h *Handler) UpdateProduct(c *gin.Context) {
	id := c.Param("id")
	var req models.UpdateProductRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), uploadTimeout)
	defer cancel()

	// Look the product up first so a missing id never triggers an upload.
	existing, err := h.products.GetProduct(ctx, id)
	if err != nil {
		h.storeError(c, "error fetching product for update", err)
		return
	}

	changes := req.Changes()
	if req.HasNewImage() {
		img, err := h.images.Store(ctx, req.Image.String())
		if err != nil {
			imageError(c, err)
			return
		}
		changes.Image = &img
	}

	updated, err := h.products.UpdateProduct(ctx, id, changes)
	if err != nil {
		if changes.Image != nil {
			h.discard(ctx, *changes.Image)
		}
		h.storeError(c, "error updating product", err)
		return
	}
	if changes.Image != nil {
		h.discard(ctx, existing.StoredImage())
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product updated successfully",
		"product": models.NewProductView(*updated),
	})
}

// DeleteProduct godoc
// @Summary Delete a product
// @Tags products
// @Produce json
// @Param id path string true "Product id"
// @Success 200 {object} map[string]string "Product deleted"
// @Failure 404 {object} map[string]string "Product not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /products/{id} [delete]
func (h *Handler) DeleteProduct(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	removed, err := h.products.DeleteProduct(ctx, c.Param("id"))
	if err != nil {
		h.storeError(c, "error deleting product", err)
		return
	}
	h.discard(ctx, removed.StoredImage())

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// discard releases a stored image outside the request deadline, so cleanup
// still runs when the client has gone away.
func (h *Handler) discard(ctx context.Context, img models.ProductImage) {
	if img.IsZero() {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cleanupTimeout)
	defer cancel()
	h.images.Discard(ctx, img)
}

func (h *Handler) storeError(c *gin.Context, msg string, err error) {
	switch {
	case errors.Is(err, database.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
	case errors.Is(err, database.ErrDuplicatePartNo):
		c.JSON(http.StatusConflict, gin.H{"error": "Product with this part number already exists"})
	default:
		internalError(c, msg, err)
	}
}

func imageError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrInvalidImage) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image format"})
		return
	}
	internalError(c, "error storing product image", err)
}
