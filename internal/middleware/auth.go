package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"ngo-management-api/internal/models"
	"ngo-management-api/internal/store"
	"ngo-management-api/pkg/auth"
)

const principalKey = "principal"

// Principal is the authenticated identity attached to the request
// after token verification.
type Principal struct {
	ID    primitive.ObjectID
	Email string
	Role  models.Role
}

// Authenticate verifies the bearer token and resolves its subject to a
// live user record. A token whose user has been deleted is rejected as
// unauthenticated, never trusted on its claims alone.
func Authenticate(jwtManager *auth.JWTManager, users store.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization header is required",
			})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid authorization header format",
			})
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateToken(parts[1])
		if err != nil {
			if errors.Is(err, auth.ErrTokenExpired) {
				c.JSON(http.StatusUnauthorized, gin.H{
					"error": "Token expired",
				})
			} else {
				c.JSON(http.StatusUnauthorized, gin.H{
					"error": "Invalid token",
				})
			}
			c.Abort()
			return
		}

		userID, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid token",
			})
			c.Abort()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		user, err := users.FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusUnauthorized, gin.H{
					"error": "User not found",
				})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
			}
			c.Abort()
			return
		}

		c.Set(principalKey, Principal{
			ID:    user.ID,
			Email: user.Email,
			Role:  user.Role,
		})

		c.Next()
	}
}

// GetPrincipal returns the principal Authenticate stored on the
// context.
func GetPrincipal(c *gin.Context) (Principal, bool) {
	v, exists := c.Get(principalKey)
	if !exists {
		return Principal{}, false
	}
	p, ok := v.(Principal)
	return p, ok
}
