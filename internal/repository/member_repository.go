package repository

import (
	"github.com/kawasemi/project-collab-api/internal/models"
	"gorm.io/gorm"
)

// GormProjectMemberRepository is a GORM implementation of ProjectMemberRepository
type GormProjectMemberRepository struct {
	db *gorm.DB
}

// NewProjectMemberRepository creates a new ProjectMemberRepository
func NewProjectMemberRepository(db *gorm.DB) ProjectMemberRepository {
	return &GormProjectMemberRepository{db: db}
}

// Create adds a membership row
func (r *GormProjectMemberRepository) Create(member *models.ProjectMember) error {
	return r.db.Create(member).Error
}

// Update updates a membership row
func (r *GormProjectMemberRepository) Update(member *models.ProjectMember) error {
	return r.db.Model(&models.ProjectMember{}).
		Where("project_id = ? AND user_id = ?", member.ProjectID, member.UserID).
		Update("role", member.Role).Error
}

// Remove deletes a membership row
func (r *GormProjectMemberRepository) Remove(projectID, userID uint64) error {
	return r.db.Where("project_id = ? AND user_id = ?", projectID, userID).
		Delete(&models.ProjectMember{}).Error
}

// Find finds a specific membership row
func (r *GormProjectMemberRepository) Find(projectID, userID uint64) (*models.ProjectMember, error) {
	var member models.ProjectMember
	if err := r.db.Where("project_id = ? AND user_id = ?", projectID, userID).
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// Exists reports whether any membership row exists for the user
func (r *GormProjectMemberRepository) Exists(projectID, userID uint64) (bool, error) {
	var count int64
	err := r.db.Model(&models.ProjectMember{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Count(&count).Error
	return count > 0, err
}

// HasRole reports whether a membership row with the given role exists
func (r *GormProjectMemberRepository) HasRole(projectID, userID uint64, role models.ProjectRole) (bool, error) {
	var count int64
	err := r.db.Model(&models.ProjectMember{}).
		Where("project_id = ? AND user_id = ? AND role = ?", projectID, userID, role).
		Count(&count).Error
	return count > 0, err
}

// ListByProject lists all members of a project with user info
func (r *GormProjectMemberRepository) ListByProject(projectID uint64) ([]models.ProjectMember, error) {
	var members []models.ProjectMember
	if err := r.db.Preload("User").
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}
