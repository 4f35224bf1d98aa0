// internal/database/mongodb.go
package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"ngo-management-api/internal/config"
)

type MongoDB struct {
	Client   *mongo.Client
	Database *mongo.Database
}

func NewMongoDB(cfg *config.Config) (*MongoDB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.MongoTimeout)*time.Second)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(cfg.MongoURI).
		SetMaxPoolSize(100).
		SetMinPoolSize(5).
		SetMaxConnIdleTime(30 * time.Second)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	return &MongoDB{
		Client:   client,
		Database: client.Database(cfg.DatabaseName),
	}, nil
}

// EnsureIndexes creates the unique email index and the foreign-key
// lookup indexes. Safe to call on every startup.
func (db *MongoDB) EnsureIndexes(ctx context.Context) error {
	users := db.Database.Collection("users")
	_, err := users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create users email index: %w", err)
	}

	lookups := []struct {
		collection string
		key        string
	}{
		{"donations", "donor_id"},
		{"projects", "manager_id"},
		{"events", "organizer_id"},
	}
	for _, l := range lookups {
		_, err := db.Database.Collection(l.collection).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{{Key: l.key, Value: 1}},
		})
		if err != nil {
			return fmt.Errorf("create %s.%s index: %w", l.collection, l.key, err)
		}
	}

	return nil
}

func (db *MongoDB) Disconnect(ctx context.Context) error {
	return db.Client.Disconnect(ctx)
}
