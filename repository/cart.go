package repository

import (
	"context"
	"time"

	"nexus-market/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// CartRepo stores per-user shopping carts
type CartRepo struct {
	db         *mongo.Database
	collection *mongo.Collection
}

// NewCartRepo creates a new CartRepo
func NewCartRepo(db *mongo.Database) *CartRepo {
	return &CartRepo{db: db, collection: db.Collection("carts")}
}

// FindByUserID returns the user's cart
func (r *CartRepo) FindByUserID(ctx context.Context, userID int64) (*models.Cart, error) {
	var cart models.Cart
	err := r.collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&cart)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// mergeItem folds a product into the line items: an existing line for the
// product grows by qty, otherwise a new line is appended.
func mergeItem(items []models.CartItem, productID int64, qty int, now time.Time) []models.CartItem {
	for i, item := range items {
		if item.ProductID == productID {
			items[i].Quantity += qty
			return items
		}
	}
	return append(items, models.CartItem{
		ProductID: productID,
		Quantity:  qty,
		AddedAt:   now,
	})
}

// AddItem adds qty of a product to the user's cart, creating the cart on
// first use, and returns the updated cart.
func (r *CartRepo) AddItem(ctx context.Context, userID, productID int64, qty int) (*models.Cart, error) {
	now := time.Now().UTC()

	cart, err := r.FindByUserID(ctx, userID)
	if err == ErrNotFound {
		id, err := nextID(ctx, r.db, "carts")
		if err != nil {
			return nil, err
		}
		cart = &models.Cart{
			ID:        id,
			UserID:    userID,
			Items:     mergeItem(nil, productID, qty, now),
			UpdatedAt: now,
		}
		if _, err := r.collection.InsertOne(ctx, cart); err != nil {
			return nil, err
		}
		return cart, nil
	}
	if err != nil {
		return nil, err
	}

	cart.Items = mergeItem(cart.Items, productID, qty, now)
	cart.UpdatedAt = now
	_, err = r.collection.UpdateOne(ctx,
		bson.M{"_id": cart.ID},
		bson.M{"$set": bson.M{"items": cart.Items, "updated_at": cart.UpdatedAt}},
	)
	if err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveItem drops a product's line from the user's cart and returns the
// updated cart.
func (r *CartRepo) RemoveItem(ctx context.Context, userID, productID int64) (*models.Cart, error) {
	cart, err := r.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	kept := cart.Items[:0]
	for _, item := range cart.Items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	cart.Items = kept
	cart.UpdatedAt = time.Now().UTC()

	_, err = r.collection.UpdateOne(ctx,
		bson.M{"_id": cart.ID},
		bson.M{"$set": bson.M{"items": cart.Items, "updated_at": cart.UpdatedAt}},
	)
	if err != nil {
		return nil, err
	}
	return cart, nil
}
