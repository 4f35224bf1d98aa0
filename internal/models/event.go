// internal/models/event.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"ngo-management-api/internal/validation"
)

type Event struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name                 string             `bson:"name" json:"name"`
	Description          string             `bson:"description" json:"description"`
	Date                 time.Time          `bson:"date" json:"date"`
	EndDate              *time.Time         `bson:"end_date,omitempty" json:"endDate,omitempty"`
	RegistrationDeadline *time.Time         `bson:"registration_deadline,omitempty" json:"registrationDeadline,omitempty"`
	Location             string             `bson:"location" json:"location"`
	OrganizerID          primitive.ObjectID `bson:"organizer_id" json:"organizerId"`
	Type                 string             `bson:"type" json:"type"`
	Status               string             `bson:"status" json:"status"`
	MaxAttendees         *int               `bson:"max_attendees,omitempty" json:"maxAttendees,omitempty"`
	CurrentAttendees     int                `bson:"current_attendees" json:"currentAttendees"`
	EntryFee             float64            `bson:"entry_fee" json:"entryFee"`
	CreatedAt            time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt            time.Time          `bson:"updated_at" json:"updatedAt"`

	// Expanded reference, filled on responses only.
	Organizer *UserRef `bson:"-" json:"organizer,omitempty"`
}

const (
	EventStatusPlanned   = "planned"
	EventStatusActive    = "active"
	EventStatusCompleted = "completed"
	EventStatusCancelled = "cancelled"
	EventStatusPostponed = "postponed"
)

var eventStatuses = []string{
	EventStatusPlanned,
	EventStatusActive,
	EventStatusCompleted,
	EventStatusCancelled,
	EventStatusPostponed,
}

var eventTypes = []string{
	"fundraiser",
	"volunteer",
	"workshop",
	"conference",
	"community",
	"awareness",
	"other",
}

// EventTable is the shared validation rule set for events. The
// future-date rule runs only at creation so past events stay editable.
var EventTable = validation.Table{
	Entity: "event",
	Rules: []validation.Rule{
		{Name: "name", Kind: validation.String, Required: true, MaxLen: 100},
		{Name: "description", Kind: validation.String, Required: true, MaxLen: 500},
		{Name: "date", Label: "event date", Kind: validation.Date, Required: true},
		{Name: "endDate", Label: "end date", Kind: validation.Date},
		{Name: "registrationDeadline", Label: "registration deadline", Kind: validation.Date},
		{Name: "location", Kind: validation.String, Required: true, MaxLen: 200},
		{Name: "organizerId", Label: "organizer ID", Kind: validation.ObjectID, Required: true},
		{Name: "type", Kind: validation.String, Required: true, Enum: eventTypes},
		{Name: "status", Kind: validation.String, Enum: eventStatuses, Default: EventStatusPlanned},
		{Name: "maxAttendees", Label: "max attendees", Kind: validation.Integer,
			Min: validation.Float(1), Max: validation.Float(10000)},
		{Name: "currentAttendees", Label: "current attendees", Kind: validation.Integer,
			Min: validation.Float(0), Default: 0,
			Message: "Current attendees cannot be negative"},
		{Name: "entryFee", Label: "entry fee", Kind: validation.Number,
			Min: validation.Float(0), Default: float64(0),
			Message: "Entry fee cannot be negative"},
	},
	Cross: []validation.CrossRule{
		func(get validation.Getter) string {
			date, okD := get("date")
			end, okE := get("endDate")
			if !okD || !okE {
				return ""
			}
			dateT, _ := validation.Time(date)
			endT, _ := validation.Time(end)
			if !endT.After(dateT) {
				return "End date must be after event date"
			}
			return ""
		},
		func(get validation.Getter) string {
			date, okD := get("date")
			deadline, okR := get("registrationDeadline")
			if !okD || !okR {
				return ""
			}
			dateT, _ := validation.Time(date)
			deadlineT, _ := validation.Time(deadline)
			if !deadlineT.Before(dateT) {
				return "Registration deadline must be before the event date"
			}
			return ""
		},
		func(get validation.Getter) string {
			maxRaw, okM := get("maxAttendees")
			curRaw, okC := get("currentAttendees")
			if !okM || !okC {
				return ""
			}
			max, _ := validation.Num(maxRaw)
			cur, _ := validation.Num(curRaw)
			if cur > max {
				return "Current attendees cannot exceed maximum attendees"
			}
			return ""
		},
	},
	CrossCreate: []validation.CrossRule{
		func(get validation.Getter) string {
			date, ok := get("date")
			if !ok {
				return ""
			}
			dateT, _ := validation.Time(date)
			if !dateT.After(time.Now()) {
				return "Event date must be in the future"
			}
			return ""
		},
	},
}

func (e *Event) document() map[string]any {
	m := map[string]any{
		"name":             e.Name,
		"description":      e.Description,
		"date":             e.Date,
		"location":         e.Location,
		"organizerId":      e.OrganizerID,
		"type":             e.Type,
		"status":           e.Status,
		"currentAttendees": e.CurrentAttendees,
		"entryFee":         e.EntryFee,
	}
	if e.EndDate != nil {
		m["endDate"] = *e.EndDate
	}
	if e.RegistrationDeadline != nil {
		m["registrationDeadline"] = *e.RegistrationDeadline
	}
	if e.MaxAttendees != nil {
		m["maxAttendees"] = *e.MaxAttendees
	}
	return m
}

func (e *Event) Validate() error {
	if errs := EventTable.ValidateDocument(e.document()); len(errs) > 0 {
		return errs
	}
	return nil
}
