package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"aiptrack/backend/internal/model"
	"aiptrack/backend/internal/service"
	"aiptrack/backend/pkg/response"
)

type MembershipHandler struct {
	membershipService service.MembershipService
}

func NewMembershipHandler(membershipService service.MembershipService) *MembershipHandler {
	return &MembershipHandler{membershipService: membershipService}
}

type RequestMembershipRequest struct {
	GymID uuid.UUID `json:"gym_id" binding:"required"`
	Role  string    `json:"role" binding:"required,oneof=athlete coach"`
}

type AssignCoachRequest struct {
	CoachID uuid.UUID `json:"coach_id" binding:"required"`
	GymID   uuid.UUID `json:"gym_id" binding:"required"`
}

func (h *MembershipHandler) ListGyms(c *gin.Context) {
	userID, ok := pathID(c, "id", "User not found")
	if !ok {
		return
	}
	rels, err := h.membershipService.ListMemberships(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, rels)
}

func (h *MembershipHandler) JoinGym(c *gin.Context) {
	userID, ok := pathID(c, "id", "User not found")
	if !ok {
		return
	}
	var req RequestMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	rel, err := h.membershipService.RequestMembership(c.Request.Context(), userID, req.GymID, model.GymRole(req.Role))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Created(c, rel)
}

func (h *MembershipHandler) ApproveGym(c *gin.Context) {
	approverID, err := getUserIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "missing authentication")
		return
	}
	userID, ok := pathID(c, "id", "User not found")
	if !ok {
		return
	}
	membershipID, ok := pathID(c, "membership_id", "Membership not found")
	if !ok {
		return
	}

	rel, err := h.membershipService.ApproveMembership(c.Request.Context(), approverID, userID, membershipID)
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, rel)
}

func (h *MembershipHandler) LeaveGym(c *gin.Context) {
	userID, ok := pathID(c, "id", "User not found")
	if !ok {
		return
	}
	membershipID, ok := pathID(c, "membership_id", "Membership not found")
	if !ok {
		return
	}

	rel, err := h.membershipService.DeactivateMembership(c.Request.Context(), userID, membershipID)
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, rel)
}

func (h *MembershipHandler) ListCoaches(c *gin.Context) {
	athleteID, ok := pathID(c, "id", "User not found")
	if !ok {
		return
	}
	rels, err := h.membershipService.ListCoaches(c.Request.Context(), athleteID)
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, rels)
}

func (h *MembershipHandler) AssignCoach(c *gin.Context) {
	athleteID, ok := pathID(c, "id", "User not found")
	if !ok {
		return
	}
	var req AssignCoachRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	rel, err := h.membershipService.AssignCoach(c.Request.Context(), athleteID, req.CoachID, req.GymID)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Created(c, rel)
}

func (h *MembershipHandler) EndCoaching(c *gin.Context) {
	athleteID, ok := pathID(c, "id", "User not found")
	if !ok {
		return
	}
	relID, ok := pathID(c, "relationship_id", "Coaching relationship not found")
	if !ok {
		return
	}

	rel, err := h.membershipService.EndCoaching(c.Request.Context(), athleteID, relID)
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, rel)
}

func (h *MembershipHandler) ListAthletes(c *gin.Context) {
	coachID, ok := pathID(c, "id", "User not found")
	if !ok {
		return
	}
	rels, err := h.membershipService.ListAthletes(c.Request.Context(), coachID)
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, rels)
}
