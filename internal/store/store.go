// internal/store/store.go

// Package store defines the persistence contract the handlers depend
// on. Implementations live in the mongo and memory subpackages; the
// handlers only see these interfaces, so tests can swap in the
// in-memory store.
package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"ngo-management-api/internal/models"
)

var (
	// ErrNotFound reports that no document matched the lookup.
	ErrNotFound = errors.New("document not found")
	// ErrDuplicate reports a unique-index collision (user email).
	ErrDuplicate = errors.New("duplicate key")
)

type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindAll(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, u *models.User) error
	Delete(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

type DonationStore interface {
	Create(ctx context.Context, d *models.Donation) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Donation, error)
	FindAll(ctx context.Context) ([]models.Donation, error)
	FindByDonor(ctx context.Context, donorID primitive.ObjectID) ([]models.Donation, error)
	Update(ctx context.Context, d *models.Donation) error
	Delete(ctx context.Context, id primitive.ObjectID) (*models.Donation, error)
}

type ProjectStore interface {
	Create(ctx context.Context, p *models.Project) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error)
	FindAll(ctx context.Context) ([]models.Project, error)
	FindByManager(ctx context.Context, managerID primitive.ObjectID) ([]models.Project, error)
	Update(ctx context.Context, p *models.Project) error
	Delete(ctx context.Context, id primitive.ObjectID) (*models.Project, error)
}

type EventStore interface {
	Create(ctx context.Context, e *models.Event) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error)
	FindAll(ctx context.Context) ([]models.Event, error)
	FindByOrganizer(ctx context.Context, organizerID primitive.ObjectID) ([]models.Event, error)
	Update(ctx context.Context, e *models.Event) error
	Delete(ctx context.Context, id primitive.ObjectID) (*models.Event, error)
}

// Stores bundles the per-entity stores for dependency injection.
type Stores struct {
	Users     UserStore
	Donations DonationStore
	Projects  ProjectStore
	Events    EventStore
}
