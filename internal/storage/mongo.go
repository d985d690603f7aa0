package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jimlawless/whereami"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Ananth-NQI/storebot-backend/internal/models"
	"github.com/Ananth-NQI/storebot-backend/pkg/e"
)

const (
	productsCollection = "products"
	cartsCollection    = "carts"
	ordersCollection   = "orders"
)

// MongoStore is the document-store backed Store
type MongoStore struct {
	client   *mongo.Client
	products *mongo.Collection
	carts    *mongo.Collection
	orders   *mongo.Collection
}

// NewMongoStore uses database dbName of an already connected client and
// ensures the cart uniqueness index exists.
func NewMongoStore(ctx context.Context, client *mongo.Client, dbName string) (*MongoStore, error) {
	db := client.Database(dbName)
	s := &MongoStore{
		client:   client,
		products: db.Collection(productsCollection),
		carts:    db.Collection(cartsCollection),
		orders:   db.Collection(ordersCollection),
	}

	_, err := s.carts.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "productId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	_, err = s.orders.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}},
	})
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return s, nil
}

// Product operations
func (s *MongoStore) CreateProduct(ctx context.Context, p *models.Product) (*models.Product, error) {
	stored := *p
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	now := time.Now()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	if _, err := s.products.InsertOne(ctx, stored); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	return &stored, nil
}

func (s *MongoStore) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var p models.Product
	err := s.products.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, e.ErrProductNotFound
	}
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	return &p, nil
}

func (s *MongoStore) ListProducts(ctx context.Context) ([]*models.Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.products.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	products := make([]*models.Product, 0)
	if err := cur.All(ctx, &products); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	return products, nil
}

func (s *MongoStore) UpdateProduct(ctx context.Context, p *models.Product) error {
	res, err := s.products.UpdateOne(ctx, bson.M{"_id": p.ID}, bson.M{"$set": bson.M{
		"name":        p.Name,
		"description": p.Description,
		"imageId":     p.ImageID,
		"updatedAt":   time.Now(),
	}})
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	if res.MatchedCount == 0 {
		return e.ErrProductNotFound
	}
	return nil
}

func (s *MongoStore) DeleteProduct(ctx context.Context, id string) error {
	if _, err := s.products.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	return nil
}

// Cart operations
func (s *MongoStore) UpsertCartLine(ctx context.Context, line models.CartLine) error {
	now := time.Now()
	filter := bson.M{"userId": line.UserID, "productId": line.ProductID}
	update := bson.M{
		"$set":         bson.M{"quantity": line.Quantity, "updatedAt": now},
		"$setOnInsert": bson.M{"createdAt": now},
	}

	if _, err := s.carts.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	return nil
}

func (s *MongoStore) GetCartLines(ctx context.Context, userID int64) ([]models.CartLine, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "productId", Value: 1}})
	cur, err := s.carts.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	var lines []models.CartLine
	if err := cur.All(ctx, &lines); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	return lines, nil
}

func (s *MongoStore) ClearCart(ctx context.Context, userID int64) error {
	if _, err := s.carts.DeleteMany(ctx, bson.M{"userId": userID}); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	return nil
}

// Order operations
func (s *MongoStore) CreateOrder(ctx context.Context, o *models.Order) (*models.Order, error) {
	stored := *o
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	stored.CreatedAt = time.Now()

	if _, err := s.orders.InsertOne(ctx, stored); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	return &stored, nil
}

func (s *MongoStore) GetOrdersByUser(ctx context.Context, userID int64) ([]*models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cur, err := s.orders.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	var orders []*models.Order
	if err := cur.All(ctx, &orders); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	return orders, nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
