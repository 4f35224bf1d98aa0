// internal/handlers/auth.go
package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"ngo-management-api/internal/middleware"
	"ngo-management-api/internal/models"
	"ngo-management-api/internal/store"
	"ngo-management-api/pkg/auth"
)

type AuthHandler struct {
	users      store.UserStore
	jwtManager *auth.JWTManager
	log        *logrus.Logger
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=100"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func NewAuthHandler(users store.UserStore, jwtManager *auth.JWTManager, log *logrus.Logger) *AuthHandler {
	return &AuthHandler{users: users, jwtManager: jwtManager, log: log}
}

// Register handles POST /auth/register. New accounts default to the
// donor role unless a valid role is supplied.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request data",
		})
		return
	}

	role := models.RoleDonor
	if req.Role != "" {
		r, ok := models.RoleFromString(req.Role)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Role must be one of: " + strings.Join(models.RoleNames(), ", "),
			})
			return
		}
		role = r
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, h.log, err, "")
		return
	}

	now := time.Now()
	user := models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Role:         role,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	ctx, cancel := storeCtx(c)
	defer cancel()

	if err := h.users.Create(ctx, &user); err != nil {
		respondError(c, h.log, err, "User not found")
		return
	}

	token, err := h.jwtManager.GenerateToken(user.ID.Hex(), user.Email, string(user.Role))
	if err != nil {
		respondError(c, h.log, err, "")
		return
	}

	c.JSON(http.StatusCreated, AuthResponse{Token: token, User: &user})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request data",
		})
		return
	}

	ctx, cancel := storeCtx(c)
	defer cancel()

	user, err := h.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid credentials",
			})
			return
		}
		respondError(c, h.log, err, "")
		return
	}

	// Accounts created without a password cannot log in.
	if user.PasswordHash == "" ||
		bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Invalid credentials",
		})
		return
	}

	token, err := h.jwtManager.GenerateToken(user.ID.Hex(), user.Email, string(user.Role))
	if err != nil {
		respondError(c, h.log, err, "")
		return
	}

	c.JSON(http.StatusOK, AuthResponse{Token: token, User: user})
}

// Me handles GET /auth/me and returns the authenticated principal's
// fresh user record.
func (h *AuthHandler) Me(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	ctx, cancel := storeCtx(c)
	defer cancel()

	user, err := h.users.FindByID(ctx, principal.ID)
	if err != nil {
		respondError(c, h.log, err, "User not found")
		return
	}

	c.JSON(http.StatusOK, user)
}
