package storage

import (
	"context"
	"errors"
	"time"

	"github.com/jimlawless/whereami"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Ananth-NQI/storebot-backend/internal/models"
	"github.com/Ananth-NQI/storebot-backend/pkg/e"
)

// DatabaseStore is the gorm-backed Store (PostgreSQL in production)
type DatabaseStore struct {
	db *gorm.DB
}

// NewDatabaseStore wraps an open gorm connection
func NewDatabaseStore(db *gorm.DB) *DatabaseStore {
	return &DatabaseStore{db: db}
}

// AutoMigrate creates or updates the tables used by the store
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Product{},
		&models.CartLine{},
		&models.Order{},
	)
}

// Product operations
func (s *DatabaseStore) CreateProduct(ctx context.Context, p *models.Product) (*models.Product, error) {
	stored := *p
	if err := s.db.WithContext(ctx).Create(&stored).Error; err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	return &stored, nil
}

func (s *DatabaseStore) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var p models.Product
	err := s.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, e.ErrProductNotFound
	}
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	return &p, nil
}

func (s *DatabaseStore) ListProducts(ctx context.Context) ([]*models.Product, error) {
	products := make([]*models.Product, 0)
	if err := s.db.WithContext(ctx).Order("created_at, id").Find(&products).Error; err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	return products, nil
}

func (s *DatabaseStore) UpdateProduct(ctx context.Context, p *models.Product) error {
	res := s.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"name":        p.Name,
			"description": p.Description,
			"image_id":    p.ImageID,
			"updated_at":  time.Now(),
		})
	if res.Error != nil {
		return e.Wrap(whereami.WhereAmI(), res.Error)
	}
	if res.RowsAffected == 0 {
		return e.ErrProductNotFound
	}
	return nil
}

func (s *DatabaseStore) DeleteProduct(ctx context.Context, id string) error {
	if err := s.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id).Error; err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	return nil
}

// Cart operations
func (s *DatabaseStore) UpsertCartLine(ctx context.Context, line models.CartLine) error {
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"quantity", "updated_at"}),
		}).
		Create(&line).Error
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	return nil
}

func (s *DatabaseStore) GetCartLines(ctx context.Context, userID int64) ([]models.CartLine, error) {
	var lines []models.CartLine
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at, product_id").
		Find(&lines).Error
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	return lines, nil
}

func (s *DatabaseStore) ClearCart(ctx context.Context, userID int64) error {
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.CartLine{}).Error; err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	return nil
}

// Order operations
func (s *DatabaseStore) CreateOrder(ctx context.Context, o *models.Order) (*models.Order, error) {
	stored := *o
	if err := s.db.WithContext(ctx).Create(&stored).Error; err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	return &stored, nil
}

func (s *DatabaseStore) GetOrdersByUser(ctx context.Context, userID int64) ([]*models.Order, error) {
	var orders []*models.Order
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at").Find(&orders).Error; err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	return orders, nil
}

func (s *DatabaseStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	return sqlDB.PingContext(ctx)
}

func (s *DatabaseStore) Close(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	return sqlDB.Close()
}
