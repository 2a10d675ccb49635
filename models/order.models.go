package models

import "time"

// OrderStatusPending is the only status the server assigns. There is no
// transition logic; fulfilment states live outside this service.
const OrderStatusPending = "pending"

// ShippingAddress is where an order is delivered
type ShippingAddress struct {
	FullName string `bson:"full_name" json:"fullName"`
	Address  string `bson:"address" json:"address"`
	City     string `bson:"city" json:"city"`
	State    string `bson:"state" json:"state"`
	ZipCode  string `bson:"zip_code" json:"zipCode"`
	Phone    string `bson:"phone" json:"phone"`
}

// OrderItem is a line item frozen at checkout. Price and title are captured
// from the product at order time so later product edits never rewrite
// historical orders.
type OrderItem struct {
	ProductID int64   `bson:"product_id" json:"productId"`
	Quantity  int     `bson:"quantity" json:"quantity"`
	Price     float64 `bson:"price" json:"price"`
	Title     string  `bson:"title" json:"title"`
}

// Order represents a placed order
type Order struct {
	ID              int64           `bson:"_id" json:"id"`
	UserID          int64           `bson:"user_id" json:"userId"`
	Items           []OrderItem     `bson:"items" json:"items"`
	TotalAmount     float64         `bson:"total_amount" json:"totalAmount"`
	Status          string          `bson:"status" json:"status"`
	ShippingAddress ShippingAddress `bson:"shipping_address" json:"shippingAddress"`
	PaymentMethod   string          `bson:"payment_method" json:"paymentMethod"`
	CreatedAt       time.Time       `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time       `bson:"updated_at" json:"updatedAt"`
}
