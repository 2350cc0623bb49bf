package models

import "time"

type InviteStatus string

const (
	InviteStatusPending  InviteStatus = "pending"
	InviteStatusAccepted InviteStatus = "accepted"
	InviteStatusRejected InviteStatus = "rejected"
)

// ProjectInvite is the pending/accepted/rejected record of inviting a user
// into a project. At most one row may exist per (project, invited user);
// rows are removed with a hard delete so a retracted invite frees the slot.
type ProjectInvite struct {
	ID            uint64       `gorm:"primarykey" json:"id"`
	ProjectID     uint64       `gorm:"not null;uniqueIndex:idx_invites_project_user" json:"project_id"`
	InvitedUserID uint64       `gorm:"not null;uniqueIndex:idx_invites_project_user" json:"invited_user_id"`
	InvitedByID   uint64       `gorm:"not null" json:"invited_by_id"`
	Status        InviteStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`

	// Relations
	Project     Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	InvitedUser User    `gorm:"foreignKey:InvitedUserID" json:"invited_user,omitempty"`
	InvitedBy   User    `gorm:"foreignKey:InvitedByID" json:"invited_by,omitempty"`
}

// IsResolved indicates whether the invite has reached a terminal status.
func (i ProjectInvite) IsResolved() bool {
	return i.Status != InviteStatusPending
}
