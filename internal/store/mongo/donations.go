// internal/store/mongo/donations.go
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

type DonationStore struct {
	collection *mongo.Collection
}

func (s *DonationStore) Create(ctx context.Context, d *models.Donation) error {
	if err := d.Validate(); err != nil {
		return err
	}
	result, err := s.collection.InsertOne(ctx, d)
	if err != nil {
		return mapWriteError(err)
	}
	d.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *DonationStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Donation, error) {
	var d models.Donation
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&d)
	if err != nil {
		return nil, mapReadError(err)
	}
	return &d, nil
}

func (s *DonationStore) FindAll(ctx context.Context) ([]models.Donation, error) {
	return s.find(ctx, bson.M{})
}

func (s *DonationStore) FindByDonor(ctx context.Context, donorID primitive.ObjectID) ([]models.Donation, error) {
	return s.find(ctx, bson.M{"donor_id": donorID})
}

func (s *DonationStore) find(ctx context.Context, filter bson.M) ([]models.Donation, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := s.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	donations := []models.Donation{}
	if err := cursor.All(ctx, &donations); err != nil {
		return nil, err
	}
	return donations, nil
}

func (s *DonationStore) Update(ctx context.Context, d *models.Donation) error {
	if err := d.Validate(); err != nil {
		return err
	}
	result, err := s.collection.ReplaceOne(ctx, bson.M{"_id": d.ID}, d)
	if err != nil {
		return mapWriteError(err)
	}
	if result.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *DonationStore) Delete(ctx context.Context, id primitive.ObjectID) (*models.Donation, error) {
	var d models.Donation
	err := s.collection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&d)
	if err != nil {
		return nil, mapReadError(err)
	}
	return &d, nil
}
