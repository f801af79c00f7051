package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"aiptrack/backend/internal/handler/middleware"
	"aiptrack/backend/internal/service"
	"aiptrack/backend/pkg/response"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email,max=255"`
	Password  string `json:"password" binding:"required,min=8,max=72"`
	FirstName string `json:"first_name" binding:"required,max=100"`
	LastName  string `json:"last_name" binding:"required,max=100"`
	IsAthlete bool   `json:"is_athlete"`
	IsCoach   bool   `json:"is_coach"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	res, err := h.authService.Register(c.Request.Context(), service.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		IsAthlete: req.IsAthlete,
		IsCoach:   req.IsCoach,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	response.Created(c, res)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		response.BadRequest(c, "Email and password required")
		return
	}

	res, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, res)
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "missing authentication")
		return
	}

	user, err := h.authService.CurrentUser(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, gin.H{"user": user})
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "missing authentication")
		return
	}

	token, err := h.authService.Refresh(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, gin.H{"access_token": token})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		response.Unauthorized(c, "missing authentication")
		return
	}

	if err := h.authService.Logout(c.Request.Context(), claims); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Message{Message: "Successfully logged out"})
}
