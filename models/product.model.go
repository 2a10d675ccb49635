package models

import "time"

// DefaultProductImage is used when a seller does not supply an image.
const DefaultProductImage = "/images/default-product.png"

// Product represents an item listed for sale by a seller
type Product struct {
	ID          int64     `bson:"_id" json:"id"`
	Title       string    `bson:"title" json:"title"`
	Price       float64   `bson:"price" json:"price"`
	Category    string    `bson:"category" json:"category"`
	Description string    `bson:"description" json:"description"`
	Image       string    `bson:"image" json:"image"`
	Stock       int       `bson:"stock" json:"stock"`
	SellerID    int64     `bson:"seller_id" json:"sellerId"`
	Rating      float64   `bson:"rating" json:"rating"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
}
