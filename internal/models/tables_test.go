package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func donationBody() map[string]any {
	return map[string]any{
		"amount":    50.0,
		"donorId":   primitive.NewObjectID().Hex(),
		"projectId": "p1",
	}
}

func TestDonationDefaultsToPending(t *testing.T) {
	doc, errs := DonationTable.ValidateCreate(donationBody())
	require.Empty(t, errs)
	assert.Equal(t, DonationStatusPending, doc["status"])
}

func TestDonationAmountMessage(t *testing.T) {
	body := donationBody()
	body["amount"] = 0
	_, errs := DonationTable.ValidateCreate(body)
	require.Len(t, errs, 1)
	assert.Equal(t, "Amount must be greater than 0", errs[0])
}

func TestDonationDescriptionLimit(t *testing.T) {
	body := donationBody()
	long := make([]byte, 201)
	for i := range long {
		long[i] = 'x'
	}
	body["description"] = string(long)
	_, errs := DonationTable.ValidateCreate(body)
	require.Len(t, errs, 1)
	assert.Equal(t, "Description must be at most 200 characters", errs[0])
}

func projectBody() map[string]any {
	return map[string]any{
		"name":         "Clean Water",
		"description":  "Wells for three villages",
		"startDate":    "2026-09-01T00:00:00Z",
		"endDate":      "2026-12-01T00:00:00Z",
		"budget":       10000.0,
		"targetAmount": 15000.0,
		"managerId":    primitive.NewObjectID().Hex(),
		"category":     "community",
	}
}

func TestProjectDefaultsToPlanning(t *testing.T) {
	doc, errs := ProjectTable.ValidateCreate(projectBody())
	require.Empty(t, errs)
	assert.Equal(t, ProjectStatusPlanning, doc["status"])
}

func TestProjectEndDateMustFollowStartDate(t *testing.T) {
	body := projectBody()
	body["endDate"] = body["startDate"]
	_, errs := ProjectTable.ValidateCreate(body)
	require.Len(t, errs, 1)
	assert.Equal(t, "End date must be after start date", errs[0])
}

func TestProjectNegativeBudgetRejected(t *testing.T) {
	body := projectBody()
	body["budget"] = -1
	_, errs := ProjectTable.ValidateCreate(body)
	require.Len(t, errs, 1)
	assert.Equal(t, "Budget cannot be negative", errs[0])
}

func eventBody(date time.Time) map[string]any {
	return map[string]any{
		"name":        "Fundraising Gala",
		"description": "Annual fundraising dinner",
		"date":        date.Format(time.RFC3339),
		"location":    "City Hall",
		"organizerId": primitive.NewObjectID().Hex(),
		"type":        "fundraiser",
	}
}

func TestEventDefaults(t *testing.T) {
	doc, errs := EventTable.ValidateCreate(eventBody(time.Now().Add(48 * time.Hour)))
	require.Empty(t, errs)
	assert.Equal(t, EventStatusPlanned, doc["status"])
	assert.Equal(t, 0, doc["currentAttendees"])
	assert.Equal(t, 0.0, doc["entryFee"])
}

func TestEventDateMustBeFutureAtCreation(t *testing.T) {
	_, errs := EventTable.ValidateCreate(eventBody(time.Now().Add(-time.Hour)))
	require.Len(t, errs, 1)
	assert.Equal(t, "Event date must be in the future", errs[0])
}

func TestEventAttendeeBoundary(t *testing.T) {
	body := eventBody(time.Now().Add(48 * time.Hour))
	body["maxAttendees"] = 100
	body["currentAttendees"] = 100
	_, errs := EventTable.ValidateCreate(body)
	assert.Empty(t, errs, "currentAttendees equal to maxAttendees is accepted")

	body["currentAttendees"] = 101
	_, errs = EventTable.ValidateCreate(body)
	require.Len(t, errs, 1)
	assert.Equal(t, "Current attendees cannot exceed maximum attendees", errs[0])
}

func TestEventRegistrationDeadlineStrictlyBefore(t *testing.T) {
	date := time.Now().Add(48 * time.Hour).Truncate(time.Second)
	body := eventBody(date)
	body["registrationDeadline"] = date.Format(time.RFC3339)
	_, errs := EventTable.ValidateCreate(body)
	require.Len(t, errs, 1)
	assert.Equal(t, "Registration deadline must be before the event date", errs[0])

	body["registrationDeadline"] = date.Add(-time.Hour).Format(time.RFC3339)
	_, errs = EventTable.ValidateCreate(body)
	assert.Empty(t, errs)
}

func TestEventMaxAttendeesRange(t *testing.T) {
	body := eventBody(time.Now().Add(48 * time.Hour))
	body["maxAttendees"] = 0
	_, errs := EventTable.ValidateCreate(body)
	require.Len(t, errs, 1)
	assert.Equal(t, "Max attendees must be at least 1", errs[0])

	body["maxAttendees"] = 10001
	_, errs = EventTable.ValidateCreate(body)
	require.Len(t, errs, 1)
	assert.Equal(t, "Max attendees must be at most 10000", errs[0])
}

func TestEventValidateSkipsFutureRuleOnStoredDocuments(t *testing.T) {
	past := time.Now().Add(-48 * time.Hour)
	e := Event{
		Name:        "Past Gala",
		Description: "Already happened",
		Date:        past,
		Location:    "City Hall",
		OrganizerID: primitive.NewObjectID(),
		Type:        "fundraiser",
		Status:      EventStatusCompleted,
	}
	assert.NoError(t, e.Validate())
}
