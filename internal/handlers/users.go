// internal/handlers/users.go
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"ngo-management-api/internal/models"
	"ngo-management-api/internal/store"
)

type UsersHandler struct {
	users store.UserStore
	log   *logrus.Logger
}

func NewUsersHandler(users store.UserStore, log *logrus.Logger) *UsersHandler {
	return &UsersHandler{users: users, log: log}
}

// GetUsers handles GET /users.
func (h *UsersHandler) GetUsers(c *gin.Context) {
	ctx, cancel := storeCtx(c)
	defer cancel()

	users, err := h.users.FindAll(ctx)
	if err != nil {
		respondError(c, h.log, err, "User not found")
		return
	}

	c.JSON(http.StatusOK, users)
}

// GetUser handles GET /users/:id.
func (h *UsersHandler) GetUser(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	ctx, cancel := storeCtx(c)
	defer cancel()

	user, err := h.users.FindByID(ctx, id)
	if err != nil {
		respondError(c, h.log, err, "User not found")
		return
	}

	c.JSON(http.StatusOK, user)
}

// CreateUser handles POST /users. The optional password field is
// hashed and never echoed back.
func (h *UsersHandler) CreateUser(c *gin.Context) {
	body, ok := bindBody(c)
	if !ok {
		return
	}

	doc, errs := models.UserTable.ValidateCreate(body)
	if len(errs) > 0 {
		respondValidation(c, errs)
		return
	}

	now := time.Now()
	user := models.User{
		Name:      doc["name"].(string),
		Email:     doc["email"].(string),
		Role:      models.Role(doc["role"].(string)),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if password, ok := doc["password"]; ok {
		hash, err := bcrypt.GenerateFromPassword([]byte(password.(string)), bcrypt.DefaultCost)
		if err != nil {
			respondError(c, h.log, err, "")
			return
		}
		user.PasswordHash = string(hash)
	}

	ctx, cancel := storeCtx(c)
	defer cancel()

	if err := h.users.Create(ctx, &user); err != nil {
		respondError(c, h.log, err, "User not found")
		return
	}

	c.JSON(http.StatusCreated, user)
}

// UpdateUser handles PUT /users/:id. Only the fields present in the
// body are validated and written.
func (h *UsersHandler) UpdateUser(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	body, ok := bindBody(c)
	if !ok {
		return
	}

	ctx, cancel := storeCtx(c)
	defer cancel()

	user, err := h.users.FindByID(ctx, id)
	if err != nil {
		respondError(c, h.log, err, "User not found")
		return
	}

	doc, errs := models.UserTable.ValidatePartial(body)
	if len(errs) > 0 {
		respondValidation(c, errs)
		return
	}

	if v, ok := doc["name"]; ok {
		user.Name = v.(string)
	}
	if v, ok := doc["email"]; ok {
		user.Email = v.(string)
	}
	if v, ok := doc["role"]; ok {
		user.Role = models.Role(v.(string))
	}
	if v, ok := doc["password"]; ok {
		hash, err := bcrypt.GenerateFromPassword([]byte(v.(string)), bcrypt.DefaultCost)
		if err != nil {
			respondError(c, h.log, err, "")
			return
		}
		user.PasswordHash = string(hash)
	}
	user.UpdatedAt = time.Now()

	if err := h.users.Update(ctx, user); err != nil {
		respondError(c, h.log, err, "User not found")
		return
	}

	c.JSON(http.StatusOK, user)
}

// DeleteUser handles DELETE /users/:id. Hard delete; references held
// by donations, projects or events are weak links and are not cascaded.
func (h *UsersHandler) DeleteUser(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	ctx, cancel := storeCtx(c)
	defer cancel()

	user, err := h.users.Delete(ctx, id)
	if err != nil {
		respondError(c, h.log, err, "User not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User deleted successfully",
		"user":    user,
	})
}
