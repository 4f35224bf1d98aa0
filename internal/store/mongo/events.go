// internal/store/mongo/events.go
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

type EventStore struct {
	collection *mongo.Collection
}

func (s *EventStore) Create(ctx context.Context, e *models.Event) error {
	if err := e.Validate(); err != nil {
		return err
	}
	result, err := s.collection.InsertOne(ctx, e)
	if err != nil {
		return mapWriteError(err)
	}
	e.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *EventStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	var e models.Event
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&e)
	if err != nil {
		return nil, mapReadError(err)
	}
	return &e, nil
}

func (s *EventStore) FindAll(ctx context.Context) ([]models.Event, error) {
	return s.find(ctx, bson.M{})
}

func (s *EventStore) FindByOrganizer(ctx context.Context, organizerID primitive.ObjectID) ([]models.Event, error) {
	return s.find(ctx, bson.M{"organizer_id": organizerID})
}

func (s *EventStore) find(ctx context.Context, filter bson.M) ([]models.Event, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	cursor, err := s.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	events := []models.Event{}
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (s *EventStore) Update(ctx context.Context, e *models.Event) error {
	if err := e.Validate(); err != nil {
		return err
	}
	result, err := s.collection.ReplaceOne(ctx, bson.M{"_id": e.ID}, e)
	if err != nil {
		return mapWriteError(err)
	}
	if result.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *EventStore) Delete(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	var e models.Event
	err := s.collection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&e)
	if err != nil {
		return nil, mapReadError(err)
	}
	return &e, nil
}
