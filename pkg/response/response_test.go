package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type signup struct {
	Email     string `validate:"required,email"`
	FirstName string `validate:"required"`
	Password  string `validate:"min=8"`
}

func TestValidationFailedListsFields(t *testing.T) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	err := validator.New().Struct(signup{Email: "nope", Password: "short"})
	require.Error(t, err)
	ValidationFailed(c, err)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body struct {
		Error   string            `json:"error"`
		Details map[string]string `json:"details"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Validation failed", body.Error)
	assert.Equal(t, "must be a valid email address", body.Details["email"])
	assert.Equal(t, "is required", body.Details["first_name"])
	assert.Equal(t, "must be at least 8 characters", body.Details["password"])
}

func TestValidationFailedWithDecodeError(t *testing.T) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	ValidationFailed(c, errors.New("unexpected EOF"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Validation failed","details":"unexpected EOF"}`, rec.Body.String())
}

func TestErrorEnvelopeOmitsEmptyDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	Unauthorized(c, "Invalid credentials")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid credentials"}`, rec.Body.String())
}

func TestToSnake(t *testing.T) {
	assert.Equal(t, "first_name", toSnake("FirstName"))
	assert.Equal(t, "email", toSnake("Email"))
	assert.Equal(t, "gym_id", toSnake("GymID"))
	assert.Equal(t, "profile_image_url", toSnake("ProfileImageURL"))
}
