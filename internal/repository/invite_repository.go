package repository

import (
	"errors"
	"fmt"

	"github.com/kawasemi/project-collab-api/internal/database"
	"github.com/kawasemi/project-collab-api/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrUpdateInvite is returned when flipping the invite status fails inside the accept transaction.
	ErrUpdateInvite = errors.New("invite repository: update invite failed")
	// ErrCreateMembership is returned when creating the membership row fails inside the accept transaction.
	ErrCreateMembership = errors.New("invite repository: create membership failed")
)

// GormProjectInviteRepository is a GORM implementation of ProjectInviteRepository
type GormProjectInviteRepository struct {
	db *gorm.DB
}

// NewProjectInviteRepository creates a new ProjectInviteRepository
func NewProjectInviteRepository(db *gorm.DB) ProjectInviteRepository {
	return &GormProjectInviteRepository{db: db}
}

// Create creates a new invite
func (r *GormProjectInviteRepository) Create(invite *models.ProjectInvite) error {
	return r.db.Create(invite).Error
}

// FindByID finds an invite by ID with optional preloading
func (r *GormProjectInviteRepository) FindByID(id uint64, preload ...string) (*models.ProjectInvite, error) {
	var invite models.ProjectInvite
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&invite, id).Error; err != nil {
		return nil, err
	}
	return &invite, nil
}

// ExistsForUser reports whether any invite exists for the pair, in any status
func (r *GormProjectInviteRepository) ExistsForUser(projectID, userID uint64) (bool, error) {
	var count int64
	err := r.db.Model(&models.ProjectInvite{}).
		Where("project_id = ? AND invited_user_id = ?", projectID, userID).
		Count(&count).Error
	return count > 0, err
}

// ListPendingForUser lists a user's pending invites
func (r *GormProjectInviteRepository) ListPendingForUser(userID uint64, page, pageSize int) ([]models.ProjectInvite, int64, error) {
	query := r.db.Model(&models.ProjectInvite{}).
		Where("invited_user_id = ? AND status = ?", userID, models.InviteStatusPending)

	return r.listPending(query, "Project", "InvitedBy", page, pageSize)
}

// ListPendingForProject lists a project's pending invites
func (r *GormProjectInviteRepository) ListPendingForProject(projectID uint64, page, pageSize int) ([]models.ProjectInvite, int64, error) {
	query := r.db.Model(&models.ProjectInvite{}).
		Where("project_id = ? AND status = ?", projectID, models.InviteStatusPending)

	return r.listPending(query, "InvitedUser", "InvitedBy", page, pageSize)
}

func (r *GormProjectInviteRepository) listPending(query *gorm.DB, preloadA, preloadB string, page, pageSize int) ([]models.ProjectInvite, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("created_at DESC").
		Scopes(database.Paginate(page, pageSize))

	var invites []models.ProjectInvite
	if err := listQuery.Preload(preloadA).Preload(preloadB).Find(&invites).Error; err != nil {
		return nil, 0, err
	}

	return invites, total, nil
}

// Update updates an invite
func (r *GormProjectInviteRepository) Update(invite *models.ProjectInvite) error {
	return r.db.Save(invite).Error
}

// Remove hard deletes an invite
func (r *GormProjectInviteRepository) Remove(id uint64) error {
	return r.db.Delete(&models.ProjectInvite{}, id).Error
}

// AcceptWithMembership flips the invite to accepted and creates the membership
// row atomically. Either both writes land or neither does.
func (r *GormProjectInviteRepository) AcceptWithMembership(invite *models.ProjectInvite, member *models.ProjectMember) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		invite.Status = models.InviteStatusAccepted
		if err := tx.Save(invite).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrUpdateInvite, err)
		}

		if err := tx.Create(member).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateMembership, err)
		}

		return nil
	})
}
