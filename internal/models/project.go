// internal/models/project.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"ngo-management-api/internal/validation"
)

type Project struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name         string             `bson:"name" json:"name"`
	Description  string             `bson:"description" json:"description"`
	StartDate    time.Time          `bson:"start_date" json:"startDate"`
	EndDate      time.Time          `bson:"end_date" json:"endDate"`
	Budget       float64            `bson:"budget" json:"budget"`
	TargetAmount float64            `bson:"target_amount" json:"targetAmount"`
	ManagerID    primitive.ObjectID `bson:"manager_id" json:"managerId"`
	Category     string             `bson:"category" json:"category"`
	Status       string             `bson:"status" json:"status"`
	CreatedAt    time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updatedAt"`

	// Expanded reference, filled on responses only.
	Manager *UserRef `bson:"-" json:"manager,omitempty"`
}

const (
	ProjectStatusPlanning  = "planning"
	ProjectStatusActive    = "active"
	ProjectStatusOnHold    = "on-hold"
	ProjectStatusCompleted = "completed"
	ProjectStatusCancelled = "cancelled"
)

var projectStatuses = []string{
	ProjectStatusPlanning,
	ProjectStatusActive,
	ProjectStatusOnHold,
	ProjectStatusCompleted,
	ProjectStatusCancelled,
}

var projectCategories = []string{
	"education",
	"healthcare",
	"environment",
	"community",
	"emergency",
	"other",
}

// ProjectTable is the shared validation rule set for projects.
var ProjectTable = validation.Table{
	Entity: "project",
	Rules: []validation.Rule{
		{Name: "name", Kind: validation.String, Required: true, MaxLen: 100},
		{Name: "description", Kind: validation.String, Required: true, MaxLen: 500},
		{Name: "startDate", Label: "start date", Kind: validation.Date, Required: true},
		{Name: "endDate", Label: "end date", Kind: validation.Date, Required: true},
		{Name: "budget", Kind: validation.Number, Required: true, Min: validation.Float(0),
			Message: "Budget cannot be negative"},
		{Name: "targetAmount", Label: "target amount", Kind: validation.Number, Required: true,
			Min: validation.Float(0), Message: "Target amount cannot be negative"},
		{Name: "managerId", Label: "manager ID", Kind: validation.ObjectID, Required: true},
		{Name: "category", Kind: validation.String, Required: true, Enum: projectCategories},
		{Name: "status", Kind: validation.String, Enum: projectStatuses, Default: ProjectStatusPlanning},
	},
	Cross: []validation.CrossRule{
		func(get validation.Getter) string {
			start, okS := get("startDate")
			end, okE := get("endDate")
			if !okS || !okE {
				return ""
			}
			startT, _ := validation.Time(start)
			endT, _ := validation.Time(end)
			if !endT.After(startT) {
				return "End date must be after start date"
			}
			return ""
		},
	},
}

func (p *Project) document() map[string]any {
	return map[string]any{
		"name":         p.Name,
		"description":  p.Description,
		"startDate":    p.StartDate,
		"endDate":      p.EndDate,
		"budget":       p.Budget,
		"targetAmount": p.TargetAmount,
		"managerId":    p.ManagerID,
		"category":     p.Category,
		"status":       p.Status,
	}
}

func (p *Project) Validate() error {
	if errs := ProjectTable.ValidateDocument(p.document()); len(errs) > 0 {
		return errs
	}
	return nil
}
