package dto

import (
	"time"

	"github.com/kawasemi/project-collab-api/internal/models"
)

// InviteDTO represents a project invite in API responses
type InviteDTO struct {
	ID            uint64              `json:"id"`
	ProjectID     uint64              `json:"project_id"`
	InvitedUserID uint64              `json:"invited_user_id"`
	InvitedByID   uint64              `json:"invited_by_id"`
	Status        models.InviteStatus `json:"status"`
	CreatedAt     time.Time           `json:"created_at"`
	Project       *ProjectDTO         `json:"project,omitempty"`
	InvitedUser   *UserDTO            `json:"invited_user,omitempty"`
	InvitedBy     *UserDTO            `json:"invited_by,omitempty"`
}

// InviteListResponse represents a paginated list of invites
type InviteListResponse struct {
	Invites    []InviteDTO `json:"invites"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	TotalCount int64       `json:"total_count"`
}

// ToInviteDTO converts a ProjectInvite model to InviteDTO
func ToInviteDTO(invite models.ProjectInvite) InviteDTO {
	dto := InviteDTO{
		ID:            invite.ID,
		ProjectID:     invite.ProjectID,
		InvitedUserID: invite.InvitedUserID,
		InvitedByID:   invite.InvitedByID,
		Status:        invite.Status,
		CreatedAt:     invite.CreatedAt,
	}

	if invite.Project.ID != 0 {
		project := ToProjectDTO(invite.Project)
		dto.Project = &project
	}
	if invite.InvitedUser.ID != 0 {
		user := ToUserDTO(invite.InvitedUser)
		dto.InvitedUser = &user
	}
	if invite.InvitedBy.ID != 0 {
		user := ToUserDTO(invite.InvitedBy)
		dto.InvitedBy = &user
	}

	return dto
}

// ToInviteListResponse converts a slice of invites to InviteListResponse
func ToInviteListResponse(invites []models.ProjectInvite, page, pageSize int, totalCount int64) InviteListResponse {
	items := make([]InviteDTO, len(invites))
	for i, invite := range invites {
		items[i] = ToInviteDTO(invite)
	}

	return InviteListResponse{
		Invites:    items,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: totalCount,
	}
}
