package controllers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"mixtrip-api/services"
	"mixtrip-api/utils"
)

const dateLayout = "2006-01-02"

// identityFromContext builds the trusted caller identity set by the auth
// middleware. A zero identity means the request is unauthenticated.
func identityFromContext(c *gin.Context) services.Identity {
	return services.Identity{
		UserID: c.GetString("user_id"),
		Role:   c.GetString("user_role"),
	}
}

// respondServiceError maps the service error taxonomy onto HTTP statuses.
// Forbidden is never downgraded to not-found.
func respondServiceError(c *gin.Context, err error) {
	var (
		validationErr *services.ValidationError
		notFoundErr   *services.NotFoundError
		forbiddenErr  *services.ForbiddenError
		conflictErr   *services.ConflictError
	)

	switch {
	case errors.As(err, &validationErr):
		utils.SendError(c, http.StatusBadRequest, validationErr.Error())
	case errors.As(err, &notFoundErr):
		utils.SendError(c, http.StatusNotFound, notFoundErr.Error())
	case errors.As(err, &forbiddenErr):
		utils.SendError(c, http.StatusForbidden, forbiddenErr.Error())
	case errors.As(err, &conflictErr):
		utils.SendError(c, http.StatusConflict, conflictErr.Error())
	default:
		log.Printf("Request error: %v", err)
		utils.SendError(c, http.StatusInternalServerError, "Internal server error")
	}
}

// parseDate parses an optional "YYYY-MM-DD" request field.
func parseDate(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, services.NewValidationError(field, "must be a date in YYYY-MM-DD format")
	}
	return &t, nil
}
