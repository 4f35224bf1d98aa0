package handlers_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ngo-management-api/internal/models"
)

func projectPayload(managerID string) map[string]any {
	return map[string]any{
		"name":         "Clean Water",
		"description":  "Wells for three villages",
		"startDate":    "2026-09-01T00:00:00Z",
		"endDate":      "2026-12-01T00:00:00Z",
		"budget":       10000,
		"targetAmount": 15000,
		"managerId":    managerID,
		"category":     "community",
	}
}

func (e *testEnv) seedProject(t *testing.T, manager models.User) models.Project {
	t.Helper()
	now := time.Now().Add(-time.Minute)
	p := models.Project{
		Name:         "Clean Water",
		Description:  "Wells for three villages",
		StartDate:    time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC),
		Budget:       10000,
		TargetAmount: 15000,
		ManagerID:    manager.ID,
		Category:     "community",
		Status:       models.ProjectStatusPlanning,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, e.stores.Projects.Create(context.Background(), &p))
	return p
}

func TestCreateProjectAuthLadder(t *testing.T) {
	env := newTestEnv(t)
	manager := env.createUser(t, "Mary", "mary@x.com", models.RoleVolunteer)
	donor := env.createUser(t, "Dan", "dan@x.com", models.RoleDonor)
	admin := env.createUser(t, "Ada", "ada@x.com", models.RoleAdmin)

	// No token.
	w := env.request(t, http.MethodPost, "/projects", projectPayload(manager.ID.Hex()), "")
	requireStatus(t, w, http.StatusUnauthorized)

	// Donor role.
	w = env.request(t, http.MethodPost, "/projects", projectPayload(manager.ID.Hex()), env.token(t, donor))
	requireStatus(t, w, http.StatusForbidden)
	assert.Equal(t, "Insufficient permissions", errorMessage(t, w))

	// Admin token but nonexistent manager.
	w = env.request(t, http.MethodPost, "/projects", projectPayload("64f1c0ffee0000000000aaaa"), env.token(t, admin))
	requireStatus(t, w, http.StatusNotFound)
	assert.Equal(t, "Manager not found", errorMessage(t, w))

	// Volunteer succeeds.
	w = env.request(t, http.MethodPost, "/projects", projectPayload(manager.ID.Hex()), env.token(t, manager))
	requireStatus(t, w, http.StatusCreated)

	body := decodeObject(t, w)
	assert.Equal(t, "planning", body["status"])
	expanded, ok := body["manager"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "mary@x.com", expanded["email"])
}

func TestCreateProjectEndDateBeforeStart(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "Ada", "ada@x.com", models.RoleAdmin)

	payload := projectPayload(admin.ID.Hex())
	payload["endDate"] = "2026-08-01T00:00:00Z"
	w := env.request(t, http.MethodPost, "/projects", payload, env.token(t, admin))
	requireStatus(t, w, http.StatusBadRequest)
	assert.Equal(t, "End date must be after start date", errorMessage(t, w))
}

func TestUpdateProjectCrossCheckUsesStoredStartDate(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "Ada", "ada@x.com", models.RoleAdmin)
	p := env.seedProject(t, admin)

	// endDate alone, earlier than the stored startDate.
	w := env.request(t, http.MethodPut, "/projects/"+p.ID.Hex(), map[string]any{
		"endDate": "2026-08-01T00:00:00Z",
	}, env.token(t, admin))
	requireStatus(t, w, http.StatusBadRequest)
	assert.Equal(t, "End date must be after start date", errorMessage(t, w))
}

func TestUpdateProjectPartial(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "Ada", "ada@x.com", models.RoleAdmin)
	p := env.seedProject(t, admin)

	w := env.request(t, http.MethodPut, "/projects/"+p.ID.Hex(), map[string]any{
		"status": "active",
	}, env.token(t, admin))
	requireStatus(t, w, http.StatusOK)

	body := decodeObject(t, w)
	assert.Equal(t, "active", body["status"])
	assert.Equal(t, "Clean Water", body["name"])
	assert.Equal(t, 10000.0, body["budget"])

	updatedAt := parseTime(t, body["updatedAt"])
	assert.True(t, updatedAt.After(p.UpdatedAt))
}

func TestProjectReadsArePublic(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "Ada", "ada@x.com", models.RoleAdmin)
	p := env.seedProject(t, admin)

	w := env.request(t, http.MethodGet, "/projects", nil, "")
	requireStatus(t, w, http.StatusOK)
	assert.Len(t, decodeList(t, w), 1)

	w = env.request(t, http.MethodGet, "/projects/"+p.ID.Hex(), nil, "")
	requireStatus(t, w, http.StatusOK)

	body := decodeObject(t, w)
	expanded, ok := body["manager"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ada@x.com", expanded["email"])
}

func TestProjectsByManager(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "Ada", "ada@x.com", models.RoleAdmin)
	env.seedProject(t, admin)

	w := env.request(t, http.MethodGet, "/projects/manager/"+admin.ID.Hex(), nil, "")
	requireStatus(t, w, http.StatusOK)
	assert.Len(t, decodeList(t, w), 1)

	w = env.request(t, http.MethodGet, "/projects/manager/64f1c0ffee0000000000aaaa", nil, "")
	requireStatus(t, w, http.StatusNotFound)
	assert.Equal(t, "Manager not found", errorMessage(t, w))
}

func TestDeleteProject(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "Ada", "ada@x.com", models.RoleAdmin)
	p := env.seedProject(t, admin)

	w := env.request(t, http.MethodDelete, "/projects/"+p.ID.Hex(), nil, "")
	requireStatus(t, w, http.StatusOK)

	body := decodeObject(t, w)
	assert.Equal(t, "Project deleted successfully", body["message"])
	_, ok := body["project"].(map[string]any)
	assert.True(t, ok)

	w = env.request(t, http.MethodDelete, "/projects/"+p.ID.Hex(), nil, "")
	requireStatus(t, w, http.StatusNotFound)
}
