package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"ngo-management-api/internal/models"
	"ngo-management-api/internal/store"
)

func newUser(email string) *models.User {
	now := time.Now()
	return &models.User{
		Name:      "Test User",
		Email:     email,
		Role:      models.RoleDonor,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestUserCreateAssignsID(t *testing.T) {
	stores := NewStores()
	u := newUser("a@example.org")
	require.NoError(t, stores.Users.Create(context.Background(), u))
	assert.False(t, u.ID.IsZero())
}

func TestUserEmailUnique(t *testing.T) {
	stores := NewStores()
	ctx := context.Background()
	require.NoError(t, stores.Users.Create(ctx, newUser("a@example.org")))

	err := stores.Users.Create(ctx, newUser("a@example.org"))
	assert.ErrorIs(t, err, store.ErrDuplicate)
}

func TestUserUpdateEmailCollision(t *testing.T) {
	stores := NewStores()
	ctx := context.Background()
	first := newUser("a@example.org")
	second := newUser("b@example.org")
	require.NoError(t, stores.Users.Create(ctx, first))
	require.NoError(t, stores.Users.Create(ctx, second))

	second.Email = "a@example.org"
	assert.ErrorIs(t, stores.Users.Update(ctx, second), store.ErrDuplicate)
}

func TestFindMissingUser(t *testing.T) {
	stores := NewStores()
	_, err := stores.Users.FindByID(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteReturnsDocumentThenNotFound(t *testing.T) {
	stores := NewStores()
	ctx := context.Background()
	u := newUser("a@example.org")
	require.NoError(t, stores.Users.Create(ctx, u))

	deleted, err := stores.Users.Delete(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Email, deleted.Email)

	_, err = stores.Users.Delete(ctx, u.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCreateRejectsInvalidDocument(t *testing.T) {
	stores := NewStores()
	u := newUser("a@example.org")
	u.Role = "superuser"
	err := stores.Users.Create(context.Background(), u)
	assert.Error(t, err, "store boundary re-checks the rule table")
}

func TestDonationFindByDonorFilters(t *testing.T) {
	stores := NewStores()
	ctx := context.Background()
	donor := primitive.NewObjectID()
	other := primitive.NewObjectID()

	for i, donorID := range []primitive.ObjectID{donor, donor, other} {
		d := &models.Donation{
			Amount:    float64(10 * (i + 1)),
			DonorID:   donorID,
			ProjectID: "p1",
			Status:    models.DonationStatusPending,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		require.NoError(t, stores.Donations.Create(ctx, d))
	}

	donations, err := stores.Donations.FindByDonor(ctx, donor)
	require.NoError(t, err)
	assert.Len(t, donations, 2)

	donations, err = stores.Donations.FindByDonor(ctx, primitive.NewObjectID())
	require.NoError(t, err)
	assert.Empty(t, donations)
}

func TestStoredDocumentsDropExpandedRefs(t *testing.T) {
	stores := NewStores()
	ctx := context.Background()
	d := &models.Donation{
		Amount:    25,
		DonorID:   primitive.NewObjectID(),
		ProjectID: "p1",
		Status:    models.DonationStatusPending,
		Donor:     &models.UserRef{Name: "should not persist"},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, stores.Donations.Create(ctx, d))

	stored, err := stores.Donations.FindByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.Donor)
}
