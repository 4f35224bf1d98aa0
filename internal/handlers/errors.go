// internal/handlers/errors.go
package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"ngo-management-api/internal/store"
	"ngo-management-api/internal/validation"
)

// storeCtx bounds every store call. Nothing at this layer retries; a
// store failure surfaces immediately.
func storeCtx(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), 10*time.Second)
}

// bindBody decodes the request body into a raw map so the validation
// tables can tell absent fields from present ones.
func bindBody(c *gin.Context) (map[string]any, bool) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
		})
		return nil, false
	}
	return body, true
}

// respondError is the failure boundary every handler funnels through.
// It classifies the error into the fixed status table: validation
// aggregate and duplicate email are 400, a missing document is 404 with
// the caller's message, anything else is a logged 500 with a generic
// body.
func respondError(c *gin.Context, log *logrus.Logger, err error, notFoundMessage string) {
	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		c.JSON(http.StatusBadRequest, gin.H{"error": verrs.Error()})
	case errors.Is(err, store.ErrDuplicate):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email already exists"})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundMessage})
	default:
		log.WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
		}).WithError(err).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// respondValidation rejects the request with the aggregated per-field
// messages.
func respondValidation(c *gin.Context, errs validation.Errors) {
	c.JSON(http.StatusBadRequest, gin.H{"error": errs.Error()})
}
