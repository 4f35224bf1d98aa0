// internal/handlers/events.go
package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"ngo-management-api/internal/models"
	"ngo-management-api/internal/store"
)

type EventsHandler struct {
	events store.EventStore
	users  store.UserStore
	log    *logrus.Logger
}

func NewEventsHandler(events store.EventStore, users store.UserStore, log *logrus.Logger) *EventsHandler {
	return &EventsHandler{events: events, users: users, log: log}
}

// GetEvents handles GET /events.
func (h *EventsHandler) GetEvents(c *gin.Context) {
	ctx, cancel := storeCtx(c)
	defer cancel()

	events, err := h.events.FindAll(ctx)
	if err != nil {
		respondError(c, h.log, err, "Event not found")
		return
	}

	if err := h.expandOrganizers(ctx, events); err != nil {
		respondError(c, h.log, err, "Event not found")
		return
	}

	c.JSON(http.StatusOK, events)
}

// GetEvent handles GET /events/:id.
func (h *EventsHandler) GetEvent(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event ID"})
		return
	}

	ctx, cancel := storeCtx(c)
	defer cancel()

	event, err := h.events.FindByID(ctx, id)
	if err != nil {
		respondError(c, h.log, err, "Event not found")
		return
	}

	if organizer, err := h.users.FindByID(ctx, event.OrganizerID); err == nil {
		event.Organizer = organizer.Ref()
	}

	c.JSON(http.StatusOK, event)
}

// CreateEvent handles POST /events. Requires the events:manage
// permission; the organizer must exist and the date must be in the
// future.
func (h *EventsHandler) CreateEvent(c *gin.Context) {
	body, ok := bindBody(c)
	if !ok {
		return
	}

	doc, errs := models.EventTable.ValidateCreate(body)
	if len(errs) > 0 {
		respondValidation(c, errs)
		return
	}

	ctx, cancel := storeCtx(c)
	defer cancel()

	organizerID := doc["organizerId"].(primitive.ObjectID)
	organizer, err := h.users.FindByID(ctx, organizerID)
	if err != nil {
		respondError(c, h.log, err, "Organizer not found")
		return
	}

	now := time.Now()
	event := models.Event{
		Name:             doc["name"].(string),
		Description:      doc["description"].(string),
		Date:             doc["date"].(time.Time),
		Location:         doc["location"].(string),
		OrganizerID:      organizerID,
		Type:             doc["type"].(string),
		Status:           doc["status"].(string),
		CurrentAttendees: doc["currentAttendees"].(int),
		EntryFee:         doc["entryFee"].(float64),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if v, ok := doc["endDate"]; ok {
		endDate := v.(time.Time)
		event.EndDate = &endDate
	}
	if v, ok := doc["registrationDeadline"]; ok {
		deadline := v.(time.Time)
		event.RegistrationDeadline = &deadline
	}
	if v, ok := doc["maxAttendees"]; ok {
		maxAttendees := v.(int)
		event.MaxAttendees = &maxAttendees
	}

	if err := h.events.Create(ctx, &event); err != nil {
		respondError(c, h.log, err, "Event not found")
		return
	}

	event.Organizer = organizer.Ref()
	c.JSON(http.StatusCreated, event)
}

// UpdateEvent handles PUT /events/:id. The future-date rule applies
// only at creation, so past events can still be closed out; every
// other cross-field rule runs against the merged document.
func (h *EventsHandler) UpdateEvent(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event ID"})
		return
	}

	body, ok := bindBody(c)
	if !ok {
		return
	}

	ctx, cancel := storeCtx(c)
	defer cancel()

	event, err := h.events.FindByID(ctx, id)
	if err != nil {
		respondError(c, h.log, err, "Event not found")
		return
	}

	doc, errs := models.EventTable.ValidatePartial(body)
	if len(errs) > 0 {
		respondValidation(c, errs)
		return
	}

	if v, ok := doc["organizerId"]; ok {
		organizerID := v.(primitive.ObjectID)
		if _, err := h.users.FindByID(ctx, organizerID); err != nil {
			respondError(c, h.log, err, "Organizer not found")
			return
		}
		event.OrganizerID = organizerID
	}
	if v, ok := doc["name"]; ok {
		event.Name = v.(string)
	}
	if v, ok := doc["description"]; ok {
		event.Description = v.(string)
	}
	if v, ok := doc["date"]; ok {
		event.Date = v.(time.Time)
	}
	if v, ok := doc["endDate"]; ok {
		endDate := v.(time.Time)
		event.EndDate = &endDate
	}
	if v, ok := doc["registrationDeadline"]; ok {
		deadline := v.(time.Time)
		event.RegistrationDeadline = &deadline
	}
	if v, ok := doc["location"]; ok {
		event.Location = v.(string)
	}
	if v, ok := doc["type"]; ok {
		event.Type = v.(string)
	}
	if v, ok := doc["status"]; ok {
		event.Status = v.(string)
	}
	if v, ok := doc["maxAttendees"]; ok {
		maxAttendees := v.(int)
		event.MaxAttendees = &maxAttendees
	}
	if v, ok := doc["currentAttendees"]; ok {
		event.CurrentAttendees = v.(int)
	}
	if v, ok := doc["entryFee"]; ok {
		event.EntryFee = v.(float64)
	}
	event.UpdatedAt = time.Now()

	if err := event.Validate(); err != nil {
		respondError(c, h.log, err, "Event not found")
		return
	}

	if err := h.events.Update(ctx, event); err != nil {
		respondError(c, h.log, err, "Event not found")
		return
	}

	if organizer, err := h.users.FindByID(ctx, event.OrganizerID); err == nil {
		event.Organizer = organizer.Ref()
	}
	c.JSON(http.StatusOK, event)
}

// DeleteEvent handles DELETE /events/:id.
func (h *EventsHandler) DeleteEvent(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event ID"})
		return
	}

	ctx, cancel := storeCtx(c)
	defer cancel()

	event, err := h.events.Delete(ctx, id)
	if err != nil {
		respondError(c, h.log, err, "Event not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Event deleted successfully",
		"event":   event,
	})
}

// GetEventsByOrganizer handles GET /events/organizer/:organizerId.
func (h *EventsHandler) GetEventsByOrganizer(c *gin.Context) {
	organizerID, err := primitive.ObjectIDFromHex(c.Param("organizerId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid organizer ID"})
		return
	}

	ctx, cancel := storeCtx(c)
	defer cancel()

	organizer, err := h.users.FindByID(ctx, organizerID)
	if err != nil {
		respondError(c, h.log, err, "Organizer not found")
		return
	}

	events, err := h.events.FindByOrganizer(ctx, organizerID)
	if err != nil {
		respondError(c, h.log, err, "Event not found")
		return
	}

	ref := organizer.Ref()
	for i := range events {
		events[i].Organizer = ref
	}

	c.JSON(http.StatusOK, events)
}

func (h *EventsHandler) expandOrganizers(ctx context.Context, events []models.Event) error {
	refs := map[primitive.ObjectID]*models.UserRef{}
	for i := range events {
		organizerID := events[i].OrganizerID
		ref, ok := refs[organizerID]
		if !ok {
			organizer, err := h.users.FindByID(ctx, organizerID)
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					refs[organizerID] = nil
					continue
				}
				return err
			}
			ref = organizer.Ref()
			refs[organizerID] = ref
		}
		events[i].Organizer = ref
	}
	return nil
}
