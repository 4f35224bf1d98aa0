// internal/store/mongo/projects.go
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

type ProjectStore struct {
	collection *mongo.Collection
}

func (s *ProjectStore) Create(ctx context.Context, p *models.Project) error {
	if err := p.Validate(); err != nil {
		return err
	}
	result, err := s.collection.InsertOne(ctx, p)
	if err != nil {
		return mapWriteError(err)
	}
	p.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *ProjectStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	var p models.Project
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err != nil {
		return nil, mapReadError(err)
	}
	return &p, nil
}

func (s *ProjectStore) FindAll(ctx context.Context) ([]models.Project, error) {
	return s.find(ctx, bson.M{})
}

func (s *ProjectStore) FindByManager(ctx context.Context, managerID primitive.ObjectID) ([]models.Project, error) {
	return s.find(ctx, bson.M{"manager_id": managerID})
}

func (s *ProjectStore) find(ctx context.Context, filter bson.M) ([]models.Project, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := s.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	projects := []models.Project{}
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

func (s *ProjectStore) Update(ctx context.Context, p *models.Project) error {
	if err := p.Validate(); err != nil {
		return err
	}
	result, err := s.collection.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return mapWriteError(err)
	}
	if result.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *ProjectStore) Delete(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	var p models.Project
	err := s.collection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&p)
	if err != nil {
		return nil, mapReadError(err)
	}
	return &p, nil
}
