package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ngo-management-api/internal/models"
)

func TestCreateDonation(t *testing.T) {
	env := newTestEnv(t)
	donor := env.createUser(t, "Ann", "ann@x.com", models.RoleDonor)

	w := env.request(t, http.MethodPost, "/donations", map[string]any{
		"amount":    100.0,
		"donorId":   donor.ID.Hex(),
		"projectId": "p1",
	}, "")
	requireStatus(t, w, http.StatusCreated)

	body := decodeObject(t, w)
	assert.Equal(t, 100.0, body["amount"])
	assert.Equal(t, "pending", body["status"], "status defaults to pending")

	expanded, ok := body["donor"].(map[string]any)
	require.True(t, ok, "donor reference is expanded")
	assert.Equal(t, donor.ID.Hex(), expanded["_id"])
	assert.Equal(t, "Ann", expanded["name"])
	assert.Equal(t, "ann@x.com", expanded["email"])
}

func TestCreateDonationZeroAmount(t *testing.T) {
	env := newTestEnv(t)
	donor := env.createUser(t, "Ann", "ann@x.com", models.RoleDonor)

	w := env.request(t, http.MethodPost, "/donations", map[string]any{
		"amount":    0,
		"donorId":   donor.ID.Hex(),
		"projectId": "p1",
	}, "")
	requireStatus(t, w, http.StatusBadRequest)
	assert.Equal(t, "Amount must be greater than 0", errorMessage(t, w))
}

func TestCreateDonationUnknownDonor(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodPost, "/donations", map[string]any{
		"amount":    10.0,
		"donorId":   "64f1c0ffee0000000000aaaa",
		"projectId": "p1",
	}, "")
	requireStatus(t, w, http.StatusNotFound)
	assert.Equal(t, "Donor not found", errorMessage(t, w))
}

func TestCreateDonationMalformedDonorID(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodPost, "/donations", map[string]any{
		"amount":    10.0,
		"donorId":   "not-an-object-id",
		"projectId": "p1",
	}, "")
	requireStatus(t, w, http.StatusBadRequest)
	assert.Equal(t, "Invalid donor ID", errorMessage(t, w))
}

func TestUpdateDonationPartialKeepsOtherFields(t *testing.T) {
	env := newTestEnv(t)
	donor := env.createUser(t, "Ann", "ann@x.com", models.RoleDonor)

	w := env.request(t, http.MethodPost, "/donations", map[string]any{
		"amount":      75.0,
		"donorId":     donor.ID.Hex(),
		"projectId":   "p1",
		"description": "monthly gift",
	}, "")
	requireStatus(t, w, http.StatusCreated)
	created := decodeObject(t, w)
	id := created["_id"].(string)

	w = env.request(t, http.MethodPut, "/donations/"+id, map[string]any{
		"status": "completed",
	}, "")
	requireStatus(t, w, http.StatusOK)

	body := decodeObject(t, w)
	assert.Equal(t, "completed", body["status"])
	assert.Equal(t, 75.0, body["amount"], "omitted fields unchanged")
	assert.Equal(t, "monthly gift", body["description"])
	assert.Equal(t, created["createdAt"], body["createdAt"])

	createdAt := parseTime(t, body["createdAt"])
	updatedAt := parseTime(t, body["updatedAt"])
	assert.True(t, updatedAt.After(createdAt), "updatedAt strictly increases")
}

func TestUpdateMissingDonationBeforeValidation(t *testing.T) {
	env := newTestEnv(t)

	// The body is invalid too; the missing target wins.
	w := env.request(t, http.MethodPut, "/donations/64f1c0ffee0000000000aaaa", map[string]any{
		"amount": -5,
	}, "")
	requireStatus(t, w, http.StatusNotFound)
	assert.Equal(t, "Donation not found", errorMessage(t, w))
}

func TestDeleteDonationResponseShape(t *testing.T) {
	env := newTestEnv(t)
	donor := env.createUser(t, "Ann", "ann@x.com", models.RoleDonor)

	w := env.request(t, http.MethodPost, "/donations", map[string]any{
		"amount":    10.0,
		"donorId":   donor.ID.Hex(),
		"projectId": "p1",
	}, "")
	requireStatus(t, w, http.StatusCreated)
	id := decodeObject(t, w)["_id"].(string)

	w = env.request(t, http.MethodDelete, "/donations/"+id, nil, "")
	requireStatus(t, w, http.StatusOK)

	body := decodeObject(t, w)
	assert.Equal(t, "Donation deleted successfully", body["message"])
	_, ok := body["donation"].(map[string]any)
	assert.True(t, ok)

	w = env.request(t, http.MethodDelete, "/donations/"+id, nil, "")
	requireStatus(t, w, http.StatusNotFound)
}

func TestDonationsByDonorDistinguishesBadReference(t *testing.T) {
	env := newTestEnv(t)
	donor := env.createUser(t, "Ann", "ann@x.com", models.RoleDonor)

	// Well-formed but absent id: 404, not an empty list.
	w := env.request(t, http.MethodGet, "/donations/donor/64f1c0ffee0000000000aaaa", nil, "")
	requireStatus(t, w, http.StatusNotFound)
	assert.Equal(t, "Donor not found", errorMessage(t, w))

	// Existing donor with no donations: empty list, not 404.
	w = env.request(t, http.MethodGet, "/donations/donor/"+donor.ID.Hex(), nil, "")
	requireStatus(t, w, http.StatusOK)
	assert.Empty(t, decodeList(t, w))

	// Malformed id: 400 before any lookup.
	w = env.request(t, http.MethodGet, "/donations/donor/garbage", nil, "")
	requireStatus(t, w, http.StatusBadRequest)
	assert.Equal(t, "Invalid donor ID", errorMessage(t, w))
}

func TestListDonationsExpandsDonors(t *testing.T) {
	env := newTestEnv(t)
	donor := env.createUser(t, "Ann", "ann@x.com", models.RoleDonor)

	w := env.request(t, http.MethodPost, "/donations", map[string]any{
		"amount":    10.0,
		"donorId":   donor.ID.Hex(),
		"projectId": "p1",
	}, "")
	requireStatus(t, w, http.StatusCreated)

	w = env.request(t, http.MethodGet, "/donations", nil, "")
	requireStatus(t, w, http.StatusOK)

	list := decodeList(t, w)
	require.Len(t, list, 1)
	expanded, ok := list[0]["donor"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ann@x.com", expanded["email"])
}
