package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Ananth-NQI/storebot-backend/internal/storage"
)

// FileResolver turns a platform file id into a download URL
type FileResolver interface {
	FileURL(fileID string) (string, error)
}

// ProductHandler serves the catalog to the embedded web app
type ProductHandler struct {
	catalog storage.CatalogStore
	files   FileResolver
	log     *zap.SugaredLogger
}

func NewProductHandler(catalog storage.CatalogStore, files FileResolver, log *zap.SugaredLogger) *ProductHandler {
	return &ProductHandler{catalog: catalog, files: files, log: log}
}

// ListProducts handles GET /api/products
func (h *ProductHandler) ListProducts(c *fiber.Ctx) error {
	products, err := h.catalog.ListProducts(c.UserContext())
	if err != nil {
		h.log.Errorf("Failed to list products: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load products")
	}
	return c.JSON(products)
}

// Image handles GET /api/image/:id by redirecting to the file URL
func (h *ProductHandler) Image(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return fiber.NewError(fiber.StatusBadRequest, "image id is required")
	}

	url, err := h.files.FileURL(id)
	if err != nil {
		h.log.Warnf("Failed to resolve image %s: %v", id, err)
		return fiber.NewError(fiber.StatusNotFound, "image not found")
	}
	return c.Redirect(url, fiber.StatusFound)
}
