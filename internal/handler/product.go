package handler

import (
	"errors"
	"net/http"
	"strconv"

	"catalog/internal/models"
	"catalog/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ProductHandler interface {
	CreateProduct(c *gin.Context)
	ListProducts(c *gin.Context)
	GetProduct(c *gin.Context)
	UpdateProduct(c *gin.Context)
	DeleteProduct(c *gin.Context)
}

type productHandler struct {
	productRepo repository.ProductRepository
	logger      *zap.Logger
}

func NewProductHandler(productRepo repository.ProductRepository, logger *zap.Logger) ProductHandler {
	return &productHandler{productRepo: productRepo, logger: logger}
}

// ProductRequest is the body for create and update. All three fields are
// required and a zero value counts as missing, so price:0 or quantity:0 is
// rejected the same way as an absent field.
type ProductRequest struct {
	Name     string  `json:"name" binding:"required"`
	Price    float64 `json:"price" binding:"required"`
	Quantity int64   `json:"quantity" binding:"required"`
}

// CreateProduct handles POST /products
func (h *productHandler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Falta información del producto"})
		return
	}

	product := &models.Product{
		Name:     req.Name,
		Price:    req.Price,
		Quantity: req.Quantity,
	}

	if err := h.productRepo.Create(product); err != nil {
		h.logger.Error("Failed to create product", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Error al crear producto"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Producto creado"})
}

// ListProducts handles GET /products with page/limit query parameters.
// Defaults are page=1, limit=10; a non-integer value falls back to the
// default. A page beyond the last one is a 404, not an empty list.
func (h *productHandler) ListProducts(c *gin.Context) {
	page := intQuery(c, "page", 1)
	limit := intQuery(c, "limit", 10)

	items, total, err := h.productRepo.List(page, limit)
	if err != nil {
		if errors.Is(err, repository.ErrPageOutOfRange) {
			c.JSON(http.StatusNotFound, gin.H{"msg": "Página fuera de rango"})
			return
		}
		h.logger.Error("Failed to list products", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Error al obtener productos"})
		return
	}

	pages := 0
	if total > 0 {
		pages = (total + limit - 1) / limit
	}

	c.JSON(http.StatusOK, gin.H{
		"products": items,
		"total":    total,
		"page":     page,
		"pages":    pages,
	})
}

// GetProduct handles GET /products/:id
func (h *productHandler) GetProduct(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}

	product, err := h.productRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"msg": "Producto no encontrado"})
			return
		}
		h.logger.Error("Failed to get product", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Error al obtener producto"})
		return
	}

	c.JSON(http.StatusOK, product)
}

// UpdateProduct handles PUT /products/:id. The lookup runs before body
// validation, so an unknown id is a 404 even when the body is invalid.
// All three fields are replaced; there is no partial patch.
func (h *productHandler) UpdateProduct(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}

	if _, err := h.productRepo.GetByID(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"msg": "Producto no encontrado"})
			return
		}
		h.logger.Error("Failed to get product for update", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Error al actualizar producto"})
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Falta información del producto"})
		return
	}

	product := &models.Product{
		ID:       id,
		Name:     req.Name,
		Price:    req.Price,
		Quantity: req.Quantity,
	}

	if err := h.productRepo.Update(product); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"msg": "Producto no encontrado"})
			return
		}
		h.logger.Error("Failed to update product", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Error al actualizar producto"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Producto actualizado"})
}

// DeleteProduct handles DELETE /products/:id. Deletion is immediate and
// permanent.
func (h *productHandler) DeleteProduct(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}

	if err := h.productRepo.Delete(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"msg": "Producto no encontrado"})
			return
		}
		h.logger.Error("Failed to delete product", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Error al eliminar producto"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Producto eliminado"})
}

// productID parses the :id path parameter. A non-numeric id behaves like a
// missing record.
func productID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"msg": "Producto no encontrado"})
		return 0, false
	}
	return id, true
}

func intQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
