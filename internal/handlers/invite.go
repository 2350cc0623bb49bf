package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kawasemi/project-collab-api/internal/dto"
	apierrors "github.com/kawasemi/project-collab-api/internal/errors"
	"github.com/kawasemi/project-collab-api/internal/middleware"
	"github.com/kawasemi/project-collab-api/internal/services"
	"github.com/kawasemi/project-collab-api/internal/utils"
)

// InviteHandler coordinates invite lifecycle HTTP handlers.
type InviteHandler struct {
	inviteService *services.InviteService
}

// NewInviteHandler creates a new InviteHandler.
func NewInviteHandler(inviteService *services.InviteService) *InviteHandler {
	return &InviteHandler{
		inviteService: inviteService,
	}
}

// CreateInvite invites a user into a project.
func (h *InviteHandler) CreateInvite(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type CreateInviteRequest struct {
		UserID uint64 `json:"user_id" binding:"required"`
	}

	var req CreateInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	invite, err := h.inviteService.CreateInvite(userID, projectID, req.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToInviteDTO(*invite))
}

// ListProjectInvites returns a project's pending invites.
func (h *InviteHandler) ListProjectInvites(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)

	invites, total, err := h.inviteService.ListPendingForProject(userID, projectID, params.Page, params.Limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToInviteListResponse(invites, params.Page, params.Limit, total))
}

// ListMyInvites returns the current user's pending invites.
func (h *InviteHandler) ListMyInvites(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	params := utils.GetPaginationParams(c)

	invites, total, err := h.inviteService.ListPendingForUser(userID, params.Page, params.Limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToInviteListResponse(invites, params.Page, params.Limit, total))
}

// AcceptInvite accepts an invite on behalf of the invited user.
func (h *InviteHandler) AcceptInvite(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	inviteID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	invite, err := h.inviteService.AcceptInvite(userID, inviteID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToInviteDTO(*invite))
}

// DeclineInvite rejects an invite on behalf of the invited user.
func (h *InviteHandler) DeclineInvite(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	inviteID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	invite, err := h.inviteService.DeclineInvite(userID, inviteID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToInviteDTO(*invite))
}

// DeleteInvite retracts an invite. Only its creator may do this.
func (h *InviteHandler) DeleteInvite(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	inviteID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.inviteService.DeleteInvite(userID, inviteID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Invite deleted successfully",
	})
}
