// internal/models/donation.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"ngo-management-api/internal/validation"
)

type Donation struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Amount      float64            `bson:"amount" json:"amount"`
	DonorID     primitive.ObjectID `bson:"donor_id" json:"donorId"`
	ProjectID   string             `bson:"project_id" json:"projectId"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Status      string             `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`

	// Expanded reference, filled on responses only.
	Donor *UserRef `bson:"-" json:"donor,omitempty"`
}

const (
	DonationStatusPending   = "pending"
	DonationStatusCompleted = "completed"
	DonationStatusCancelled = "cancelled"
)

var donationStatuses = []string{
	DonationStatusPending,
	DonationStatusCompleted,
	DonationStatusCancelled,
}

// DonationTable is the shared validation rule set for donations.
// projectId is a free-text identifier, not a strict foreign key.
var DonationTable = validation.Table{
	Entity: "donation",
	Rules: []validation.Rule{
		{Name: "amount", Kind: validation.Number, Required: true, GT: validation.Float(0),
			Message: "Amount must be greater than 0"},
		{Name: "donorId", Label: "donor ID", Kind: validation.ObjectID, Required: true},
		{Name: "projectId", Label: "project ID", Kind: validation.String, Required: true, MaxLen: 100},
		{Name: "description", Kind: validation.String, MaxLen: 200},
		{Name: "status", Kind: validation.String, Enum: donationStatuses, Default: DonationStatusPending},
	},
}

func (d *Donation) document() map[string]any {
	m := map[string]any{
		"amount":    d.Amount,
		"donorId":   d.DonorID,
		"projectId": d.ProjectID,
		"status":    d.Status,
	}
	if d.Description != "" {
		m["description"] = d.Description
	}
	return m
}

func (d *Donation) Validate() error {
	if errs := DonationTable.ValidateDocument(d.document()); len(errs) > 0 {
		return errs
	}
	return nil
}
