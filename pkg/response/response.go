package response

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// ErrorBody is the envelope for every non-2xx answer.
type ErrorBody struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

type Message struct {
	Message string `json:"message"`
}

func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func Error(c *gin.Context, httpStatus int, message string) {
	c.JSON(httpStatus, ErrorBody{Error: message})
}

func ErrorWithDetails(c *gin.Context, httpStatus int, message string, details interface{}) {
	c.JSON(httpStatus, ErrorBody{Error: message, Details: details})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message)
}

func Forbidden(c *gin.Context, message string) {
	Error(c, http.StatusForbidden, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

func NotImplemented(c *gin.Context, message string) {
	Error(c, http.StatusNotImplemented, message)
}

func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}

// ValidationFailed answers 400 with per-field reasons when err comes from
// the validator, and with the raw decode error otherwise.
func ValidationFailed(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			details[jsonFieldName(fe)] = describe(fe)
		}
		ErrorWithDetails(c, http.StatusBadRequest, "Validation failed", details)
		return
	}
	ErrorWithDetails(c, http.StatusBadRequest, "Validation failed", err.Error())
}

func jsonFieldName(fe validator.FieldError) string {
	return toSnake(fe.Field())
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "url":
		return "must be a valid URL"
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "uuid":
		return "must be a valid UUID"
	default:
		return "failed on " + fe.Tag()
	}
}

// toSnake maps Go field names (FirstName, GymID) to their JSON keys (first_name, gym_id).
func toSnake(s string) string {
	var b strings.Builder
	var prev rune
	for i, r := range s {
		upper := r >= 'A' && r <= 'Z'
		if upper {
			if i > 0 && !(prev >= 'A' && prev <= 'Z') {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
		} else {
			b.WriteRune(r)
		}
		prev = r
	}
	return b.String()
}
