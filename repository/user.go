package repository

import (
	"context"
	"fmt"
	"time"

	"nexus-market/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserRepo stores and looks up marketplace users
type UserRepo struct {
	db         *mongo.Database
	collection *mongo.Collection
}

// NewUserRepo creates a new UserRepo
func NewUserRepo(db *mongo.Database) *UserRepo {
	return &UserRepo{db: db, collection: db.Collection("users")}
}

// Create inserts a new user, allocating its id. The email must not be
// registered yet; the match is case-sensitive and exact.
func (r *UserRepo) Create(ctx context.Context, user *models.User) error {
	count, err := r.collection.CountDocuments(ctx, bson.M{"email": user.Email})
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateEmail
	}

	id, err := nextID(ctx, r.db, "users")
	if err != nil {
		return err
	}
	user.ID = id
	if user.Avatar == "" {
		user.Avatar = fmt.Sprintf("/images/avatar%d.png", id)
	}

	if _, err := r.collection.InsertOne(ctx, user); err != nil {
		// The unique index catches registrations racing past the count check.
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

// FindByEmail returns the user registered under email
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID returns the user with the given id
func (r *UserRepo) FindByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// List returns all users
func (r *UserRepo) List(ctx context.Context) ([]models.User, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ProfileUpdate carries the optional fields of a profile edit. Nil fields
// are left unchanged.
type ProfileUpdate struct {
	Name    *string
	Email   *string
	Phone   *string
	Address *string
}

// UpdateProfile applies a partial profile update and returns the updated
// user. Changing the email to one held by a different user fails with
// ErrDuplicateEmail.
func (r *UserRepo) UpdateProfile(ctx context.Context, id int64, update ProfileUpdate) (*models.User, error) {
	if update.Email != nil {
		count, err := r.collection.CountDocuments(ctx, bson.M{
			"email": *update.Email,
			"_id":   bson.M{"$ne": id},
		})
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrDuplicateEmail
		}
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Email != nil {
		set["email"] = *update.Email
	}
	if update.Phone != nil {
		set["phone"] = *update.Phone
	}
	if update.Address != nil {
		set["address"] = *update.Address
	}

	var user models.User
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
