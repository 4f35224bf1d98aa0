// internal/store/mongo/users.go
package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"ngo-management-api/internal/models"
	"ngo-management-api/internal/store"
)

type UserStore struct {
	collection *mongo.Collection
}

func (s *UserStore) Create(ctx context.Context, u *models.User) error {
	if err := u.Validate(); err != nil {
		return err
	}
	result, err := s.collection.InsertOne(ctx, u)
	if err != nil {
		return mapWriteError(err)
	}
	u.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *UserStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if err != nil {
		return nil, mapReadError(err)
	}
	return &u, nil
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.collection.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if err != nil {
		return nil, mapReadError(err)
	}
	return &u, nil
}

func (s *UserStore) FindAll(ctx context.Context) ([]models.User, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := s.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *UserStore) Update(ctx context.Context, u *models.User) error {
	if err := u.Validate(); err != nil {
		return err
	}
	result, err := s.collection.ReplaceOne(ctx, bson.M{"_id": u.ID}, u)
	if err != nil {
		return mapWriteError(err)
	}
	if result.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *UserStore) Delete(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	err := s.collection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&u)
	if err != nil {
		return nil, mapReadError(err)
	}
	return &u, nil
}
