// internal/store/mongo/mongo.go

// Package mongo implements the store interfaces on top of a MongoDB
// database. Every write re-validates the document against the shared
// rule tables before it reaches the driver.
package mongo

import (
	"go.mongodb.org/mongo-driver/mongo"

	"ngo-management-api/internal/store"
)

const (
	usersCollection     = "users"
	donationsCollection = "donations"
	projectsCollection  = "projects"
	eventsCollection    = "events"
)

// NewStores wires one store per collection against the given database.
func NewStores(db *mongo.Database) store.Stores {
	return store.Stores{
		Users:     &UserStore{collection: db.Collection(usersCollection)},
		Donations: &DonationStore{collection: db.Collection(donationsCollection)},
		Projects:  &ProjectStore{collection: db.Collection(projectsCollection)},
		Events:    &EventStore{collection: db.Collection(eventsCollection)},
	}
}

// mapWriteError converts driver errors on writes into store sentinels.
func mapWriteError(err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsDuplicateKeyError(err) {
		return store.ErrDuplicate
	}
	return err
}

// mapReadError converts driver errors on reads into store sentinels.
func mapReadError(err error) error {
	if err == nil {
		return nil
	}
	if err == mongo.ErrNoDocuments {
		return store.ErrNotFound
	}
	return err
}
