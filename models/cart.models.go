package models

import "time"

// CartItem represents a single line in a cart. Lines reference distinct
// products; adding a product twice grows the quantity of the existing line.
type CartItem struct {
	ProductID int64     `bson:"product_id" json:"productId"`
	Quantity  int       `bson:"quantity" json:"quantity"`
	AddedAt   time.Time `bson:"added_at" json:"addedAt"`
}

// Cart represents a user's shopping cart. A user has at most one cart,
// created lazily on the first add.
type Cart struct {
	ID        int64      `bson:"_id" json:"id"`
	UserID    int64      `bson:"user_id" json:"userId"`
	Items     []CartItem `bson:"items" json:"items"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updatedAt"`
}
