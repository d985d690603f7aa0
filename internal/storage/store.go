package storage

import (
	"context"

	"github.com/Ananth-NQI/storebot-backend/internal/models"
)

// CatalogStore persists products
type CatalogStore interface {
	CreateProduct(ctx context.Context, p *models.Product) (*models.Product, error)
	// GetProduct returns e.ErrProductNotFound when id is unknown
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	ListProducts(ctx context.Context) ([]*models.Product, error)
	// UpdateProduct overwrites name, description and image of p.ID.
	// It returns e.ErrProductNotFound when p.ID is unknown.
	UpdateProduct(ctx context.Context, p *models.Product) error
	// DeleteProduct is a no-op for unknown ids
	DeleteProduct(ctx context.Context, id string) error
}

// CartStore persists per-user cart lines, one per (user, product)
type CartStore interface {
	// UpsertCartLine creates the line or overwrites its quantity
	UpsertCartLine(ctx context.Context, line models.CartLine) error
	// GetCartLines returns the user's lines in creation order
	GetCartLines(ctx context.Context, userID int64) ([]models.CartLine, error)
	ClearCart(ctx context.Context, userID int64) error
}

// OrderStore persists placed orders
type OrderStore interface {
	CreateOrder(ctx context.Context, o *models.Order) (*models.Order, error)
	GetOrdersByUser(ctx context.Context, userID int64) ([]*models.Order, error)
}

// Store defines the interface for storage operations
type Store interface {
	CatalogStore
	CartStore
	OrderStore

	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
