package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Ananth-NQI/storebot-backend/internal/models"
	"github.com/Ananth-NQI/storebot-backend/pkg/e"
)

// MemoryStore holds all data in memory (tests and USE_MEMORY_STORE=true)
type MemoryStore struct {
	products map[string]*models.Product
	carts    map[int64][]models.CartLine
	orders   []*models.Order

	productMu sync.RWMutex
	cartMu    sync.RWMutex
	orderMu   sync.RWMutex

	now func() time.Time
}

// NewMemoryStore creates a new in-memory storage
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		products: make(map[string]*models.Product),
		carts:    make(map[int64][]models.CartLine),
		now:      time.Now,
	}
}

// Product operations
func (m *MemoryStore) CreateProduct(ctx context.Context, p *models.Product) (*models.Product, error) {
	m.productMu.Lock()
	defer m.productMu.Unlock()

	now := m.now()
	stored := *p
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	stored.CreatedAt = now
	stored.UpdatedAt = now

	m.products[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (m *MemoryStore) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	m.productMu.RLock()
	defer m.productMu.RUnlock()

	p, exists := m.products[id]
	if !exists {
		return nil, e.ErrProductNotFound
	}
	out := *p
	return &out, nil
}

func (m *MemoryStore) ListProducts(ctx context.Context) ([]*models.Product, error) {
	m.productMu.RLock()
	defer m.productMu.RUnlock()

	products := make([]*models.Product, 0, len(m.products))
	for _, p := range m.products {
		out := *p
		products = append(products, &out)
	}
	sort.Slice(products, func(i, j int) bool {
		if products[i].CreatedAt.Equal(products[j].CreatedAt) {
			return products[i].ID < products[j].ID
		}
		return products[i].CreatedAt.Before(products[j].CreatedAt)
	})
	return products, nil
}

func (m *MemoryStore) UpdateProduct(ctx context.Context, p *models.Product) error {
	m.productMu.Lock()
	defer m.productMu.Unlock()

	existing, exists := m.products[p.ID]
	if !exists {
		return e.ErrProductNotFound
	}
	existing.Name = p.Name
	existing.Description = p.Description
	existing.ImageID = p.ImageID
	existing.UpdatedAt = m.now()
	return nil
}

func (m *MemoryStore) DeleteProduct(ctx context.Context, id string) error {
	m.productMu.Lock()
	defer m.productMu.Unlock()

	delete(m.products, id)
	return nil
}

// Cart operations
func (m *MemoryStore) UpsertCartLine(ctx context.Context, line models.CartLine) error {
	m.cartMu.Lock()
	defer m.cartMu.Unlock()

	now := m.now()
	lines := m.carts[line.UserID]
	for i := range lines {
		if lines[i].ProductID == line.ProductID {
			lines[i].Quantity = line.Quantity
			lines[i].UpdatedAt = now
			return nil
		}
	}

	line.CreatedAt = now
	line.UpdatedAt = now
	m.carts[line.UserID] = append(lines, line)
	return nil
}

func (m *MemoryStore) GetCartLines(ctx context.Context, userID int64) ([]models.CartLine, error) {
	m.cartMu.RLock()
	defer m.cartMu.RUnlock()

	lines := make([]models.CartLine, len(m.carts[userID]))
	copy(lines, m.carts[userID])
	return lines, nil
}

func (m *MemoryStore) ClearCart(ctx context.Context, userID int64) error {
	m.cartMu.Lock()
	defer m.cartMu.Unlock()

	delete(m.carts, userID)
	return nil
}

// Order operations
func (m *MemoryStore) CreateOrder(ctx context.Context, o *models.Order) (*models.Order, error) {
	m.orderMu.Lock()
	defer m.orderMu.Unlock()

	stored := *o
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	stored.CreatedAt = m.now()

	m.orders = append(m.orders, &stored)
	out := stored
	return &out, nil
}

func (m *MemoryStore) GetOrdersByUser(ctx context.Context, userID int64) ([]*models.Order, error) {
	m.orderMu.RLock()
	defer m.orderMu.RUnlock()

	var orders []*models.Order
	for _, o := range m.orders {
		if o.UserID == userID {
			out := *o
			orders = append(orders, &out)
		}
	}
	return orders, nil
}

func (m *MemoryStore) Ping(ctx context.Context) error  { return nil }
func (m *MemoryStore) Close(ctx context.Context) error { return nil }
