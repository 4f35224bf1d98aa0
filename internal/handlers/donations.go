// internal/handlers/donations.go
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

type DonationsHandler struct {
	donations store.DonationStore
	users     store.UserStore
	log       *logrus.Logger
}

func NewDonationsHandler(donations store.DonationStore, users store.UserStore, log *logrus.Logger) *DonationsHandler {
	return &DonationsHandler{donations: donations, users: users, log: log}
}

// GetDonations handles GET /donations with the donor reference
// expanded on every document.
func (h *DonationsHandler) GetDonations(c *gin.Context) {
	ctx, cancel := storeCtx(c)
	defer cancel()

	donations, err := h.donations.FindAll(ctx)
	if err != nil {
		respondError(c, h.log, err, "Donation not found")
		return
	}

	if err := h.expandDonors(ctx, donations); err != nil {
		respondError(c, h.log, err, "Donation not found")
		return
	}

	c.JSON(http.StatusOK, donations)
}

// CreateDonation handles POST /donations. The donor must exist before
// anything is written.
func (h *DonationsHandler) CreateDonation(c *gin.Context) {
	body, ok := bindBody(c)
	if !ok {
		return
	}

	doc, errs := models.DonationTable.ValidateCreate(body)
	if len(errs) > 0 {
		respondValidation(c, errs)
		return
	}

	ctx, cancel := storeCtx(c)
	defer cancel()

	donorID := doc["donorId"].(primitive.ObjectID)
	donor, err := h.users.FindByID(ctx, donorID)
	if err != nil {
		respondError(c, h.log, err, "Donor not found")
		return
	}

	now := time.Now()
	donation := models.Donation{
		Amount:    doc["amount"].(float64),
		DonorID:   donorID,
		ProjectID: doc["projectId"].(string),
		Status:    doc["status"].(string),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if v, ok := doc["description"]; ok {
		donation.Description = v.(string)
	}

	if err := h.donations.Create(ctx, &donation); err != nil {
		respondError(c, h.log, err, "Donation not found")
		return
	}

	donation.Donor = donor.Ref()
	c.JSON(http.StatusCreated, donation)
}

// UpdateDonation handles PUT /donations/:id. The target must exist
// before any of the new values are validated.
func (h *DonationsHandler) UpdateDonation(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid donation ID"})
		return
	}

	body, ok := bindBody(c)
	if !ok {
		return
	}

	ctx, cancel := storeCtx(c)
	defer cancel()

	donation, err := h.donations.FindByID(ctx, id)
	if err != nil {
		respondError(c, h.log, err, "Donation not found")
		return
	}

	doc, errs := models.DonationTable.ValidatePartial(body)
	if len(errs) > 0 {
		respondValidation(c, errs)
		return
	}

	if v, ok := doc["donorId"]; ok {
		donorID := v.(primitive.ObjectID)
		if _, err := h.users.FindByID(ctx, donorID); err != nil {
			respondError(c, h.log, err, "Donor not found")
			return
		}
		donation.DonorID = donorID
	}
	if v, ok := doc["amount"]; ok {
		donation.Amount = v.(float64)
	}
	if v, ok := doc["projectId"]; ok {
		donation.ProjectID = v.(string)
	}
	if v, ok := doc["description"]; ok {
		donation.Description = v.(string)
	}
	if v, ok := doc["status"]; ok {
		donation.Status = v.(string)
	}
	donation.UpdatedAt = time.Now()

	if err := h.donations.Update(ctx, donation); err != nil {
		respondError(c, h.log, err, "Donation not found")
		return
	}

	if donor, err := h.users.FindByID(ctx, donation.DonorID); err == nil {
		donation.Donor = donor.Ref()
	}
	c.JSON(http.StatusOK, donation)
}

// DeleteDonation handles DELETE /donations/:id.
func (h *DonationsHandler) DeleteDonation(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid donation ID"})
		return
	}

	ctx, cancel := storeCtx(c)
	defer cancel()

	donation, err := h.donations.Delete(ctx, id)
	if err != nil {
		respondError(c, h.log, err, "Donation not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Donation deleted successfully",
		"donation": donation,
	})
}

// GetDonationsByDonor handles GET /donations/donor/:donorId. The donor
// is resolved first so a bad reference reads as 404 instead of an
// empty list.
func (h *DonationsHandler) GetDonationsByDonor(c *gin.Context) {
	donorID, err := primitive.ObjectIDFromHex(c.Param("donorId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid donor ID"})
		return
	}

	ctx, cancel := storeCtx(c)
	defer cancel()

	donor, err := h.users.FindByID(ctx, donorID)
	if err != nil {
		respondError(c, h.log, err, "Donor not found")
		return
	}

	donations, err := h.donations.FindByDonor(ctx, donorID)
	if err != nil {
		respondError(c, h.log, err, "Donation not found")
		return
	}

	ref := donor.Ref()
	for i := range donations {
		donations[i].Donor = ref
	}

	c.JSON(http.StatusOK, donations)
}

// expandDonors fills the donor reference on each donation. Donations
// whose donor has since been deleted keep a bare donorId.
func (h *DonationsHandler) expandDonors(ctx context.Context, donations []models.Donation) error {
	refs := map[primitive.ObjectID]*models.UserRef{}
	for i := range donations {
		donorID := donations[i].DonorID
		ref, ok := refs[donorID]
		if !ok {
			donor, err := h.users.FindByID(ctx, donorID)
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					refs[donorID] = nil
					continue
				}
				return err
			}
			ref = donor.Ref()
			refs[donorID] = ref
		}
		donations[i].Donor = ref
	}
	return nil
}
