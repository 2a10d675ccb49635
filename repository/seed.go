package repository

import (
	"context"
	"time"

	"nexus-market/models"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

// EnsureIndexes creates the indexes the repositories rely on
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}
	_, err = db.Collection("carts").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// EnsureSeedData populates the demo accounts and catalog on first boot.
// An already-populated database is left untouched.
func EnsureSeedData(ctx context.Context, db *mongo.Database) error {
	users := db.Collection("users")
	count, err := users.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	now := time.Now().UTC()

	seedUsers := []interface{}{
		models.User{
			ID:        1,
			Email:     "john.seller@example.com",
			Password:  string(hash),
			Name:      "John Seller",
			Role:      models.RoleSeller,
			Phone:     "+1234567890",
			Address:   "123 Seller St, Commerce City",
			Avatar:    "/images/avatar1.png",
			CreatedAt: now,
		},
		models.User{
			ID:        2,
			Email:     "jane.buyer@example.com",
			Password:  string(hash),
			Name:      "Jane Buyer",
			Role:      models.RoleBuyer,
			Phone:     "+1234567891",
			Address:   "456 Buyer Ave, Shopping Town",
			Avatar:    "/images/avatar2.png",
			CreatedAt: now,
		},
	}
	if _, err := users.InsertMany(ctx, seedUsers); err != nil {
		return err
	}

	seedProducts := []interface{}{
		models.Product{ID: 1, Title: "Leather Jacket", Price: 120, Category: "Clothing", Image: "/images/jacket.jpeg", Rating: 4.5, Description: "Premium leather jacket with modern fit", SellerID: 1, Stock: 10, CreatedAt: now},
		models.Product{ID: 2, Title: "Running Shoes", Price: 80, Category: "Shoes", Image: "/images/shoes.jpeg", Rating: 4.2, Description: "Comfortable running shoes for daily workouts", SellerID: 2, Stock: 15, CreatedAt: now},
		models.Product{ID: 3, Title: "Wireless Headphones", Price: 150, Category: "Electronics", Image: "/images/headphones.jpeg", Rating: 4.8, Description: "Noise-cancelling wireless headphones", SellerID: 1, Stock: 8, CreatedAt: now},
		models.Product{ID: 4, Title: "Denim Jeans", Price: 60, Category: "Clothing", Image: "/images/jeans.jpeg", Rating: 4.0, Description: "Classic fit denim jeans", SellerID: 1, Stock: 20, CreatedAt: now},
		models.Product{ID: 5, Title: "Smartphone", Price: 699, Category: "Electronics", Image: "/images/phone.jpeg", Rating: 4.7, Description: "Latest smartphone with advanced features", SellerID: 2, Stock: 5, CreatedAt: now},
		models.Product{ID: 6, Title: "Sneakers", Price: 95, Category: "Shoes", Image: "/images/sneakers.jpeg", Rating: 4.3, Description: "Stylish casual sneakers for everyday wear", SellerID: 1, Stock: 12, CreatedAt: now},
	}
	if _, err := db.Collection("products").InsertMany(ctx, seedProducts); err != nil {
		return err
	}

	// Counters continue where the seed ids stop.
	counters := db.Collection("counters")
	for name, seq := range map[string]int64{"users": 2, "products": 6, "carts": 0, "orders": 0} {
		_, err := counters.UpdateOne(ctx,
			bson.M{"_id": name},
			bson.M{"$set": bson.M{"seq": seq}},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return err
		}
	}

	logrus.Info("Seed data created")
	return nil
}
