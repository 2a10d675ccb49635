package repository

import (
	"context"

	"nexus-market/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProductRepo stores and lists catalog products
type ProductRepo struct {
	db         *mongo.Database
	collection *mongo.Collection
}

// NewProductRepo creates a new ProductRepo
func NewProductRepo(db *mongo.Database) *ProductRepo {
	return &ProductRepo{db: db, collection: db.Collection("products")}
}

// ListQuery describes a catalog listing request
type ListQuery struct {
	Category string // exact match; empty or "All" means no filter
	SortKey  string // bson field name; empty means natural order
	SortDesc bool
	Page     int // 1-based
	Limit    int
}

// Create inserts a new product, allocating its id
func (r *ProductRepo) Create(ctx context.Context, product *models.Product) error {
	id, err := nextID(ctx, r.db, "products")
	if err != nil {
		return err
	}
	product.ID = id
	_, err = r.collection.InsertOne(ctx, product)
	return err
}

// FindByID returns the product with the given id
func (r *ProductRepo) FindByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// List returns one page of products matching the query
func (r *ProductRepo) List(ctx context.Context, q ListQuery) ([]models.Product, error) {
	filter := bson.M{}
	if q.Category != "" && q.Category != "All" {
		filter["category"] = q.Category
	}

	opts := options.Find().
		SetSkip(int64((q.Page - 1) * q.Limit)).
		SetLimit(int64(q.Limit))
	if q.SortKey != "" {
		dir := 1
		if q.SortDesc {
			dir = -1
		}
		opts.SetSort(bson.D{{Key: q.SortKey, Value: dir}})
	}

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// ReserveStock atomically decrements a product's stock by qty. The filter
// requires stock >= qty, so two concurrent orders can never both take the
// last unit: the decrement either applies in full or not at all.
func (r *ProductRepo) ReserveStock(ctx context.Context, id int64, qty int) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "stock": bson.M{"$gte": qty}},
		bson.M{"$inc": bson.M{"stock": -qty}},
	)
	if err != nil {
		return err
	}
	if res.ModifiedCount == 0 {
		return ErrInsufficientStock
	}
	return nil
}

// ReleaseStock returns previously reserved stock. Used to roll back the
// already-reserved lines when a later line of the same order fails.
func (r *ProductRepo) ReleaseStock(ctx context.Context, id int64, qty int) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"stock": qty}},
	)
	return err
}
