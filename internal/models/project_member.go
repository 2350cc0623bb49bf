package models

import "time"

type ProjectRole string

const (
	RoleMember  ProjectRole = "member"
	RoleManager ProjectRole = "manager"
)

// ProjectMember ties a user to a project with a role. The project lead is
// not represented here; lead status is derived from Project.LeadID.
type ProjectMember struct {
	ProjectID uint64      `gorm:"primarykey" json:"project_id"`
	UserID    uint64      `gorm:"primarykey" json:"user_id"`
	Role      ProjectRole `gorm:"type:varchar(20);not null" json:"role"`
	CreatedAt time.Time   `json:"created_at"`

	// Relations
	Project Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	User    User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
