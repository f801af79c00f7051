package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"aiptrack/backend/internal/handler/middleware"
	"aiptrack/backend/internal/service"
	"aiptrack/backend/pkg/response"
)

var ErrNoClaims = errors.New("claims not found in context")

func getUserIDFromContext(c *gin.Context) (uuid.UUID, error) {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		return uuid.Nil, ErrNoClaims
	}
	return claims.UserID()
}

// pathID parses a UUID path parameter. Malformed ids answer 404 because
// they cannot name an existing row.
func pathID(c *gin.Context, name, notFound string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.NotFound(c, notFound)
		return uuid.Nil, false
	}
	return id, true
}

// writeError maps service errors onto the HTTP error envelope. Anything
// unrecognised is attached to the gin context for logging and answered 500.
func writeError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		response.ErrorWithDetails(c, http.StatusBadRequest, "Validation failed", verr.Fields)
	case errors.Is(err, service.ErrEmailTaken):
		response.BadRequest(c, "Email already exists")
	case errors.Is(err, service.ErrMembershipExists),
		errors.Is(err, service.ErrCoachingExists):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Unauthorized(c, "Invalid credentials")
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(c, "Forbidden")
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, "User not found")
	case errors.Is(err, service.ErrGymNotFound):
		response.NotFound(c, "Gym not found")
	case errors.Is(err, service.ErrMembershipNotFound):
		response.NotFound(c, "Membership not found")
	case errors.Is(err, service.ErrRelationshipNotFound):
		response.NotFound(c, "Coaching relationship not found")
	default:
		_ = c.Error(err)
		response.InternalError(c, "Internal server error")
	}
}
