package repository

import (
	"context"

	"nexus-market/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// OrderRepo stores placed orders. Orders are immutable once inserted.
type OrderRepo struct {
	db         *mongo.Database
	collection *mongo.Collection
}

// NewOrderRepo creates a new OrderRepo
func NewOrderRepo(db *mongo.Database) *OrderRepo {
	return &OrderRepo{db: db, collection: db.Collection("orders")}
}

// Create inserts a new order, allocating its id
func (r *OrderRepo) Create(ctx context.Context, order *models.Order) error {
	id, err := nextID(ctx, r.db, "orders")
	if err != nil {
		return err
	}
	order.ID = id
	_, err = r.collection.InsertOne(ctx, order)
	return err
}

// ListByUserID returns the user's orders, newest first
func (r *OrderRepo) ListByUserID(ctx context.Context, userID int64) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}
