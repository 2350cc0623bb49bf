package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kawasemi/project-collab-api/internal/models"
	"github.com/kawasemi/project-collab-api/internal/repository"
	"gorm.io/gorm"
)

var ErrProjectTitleRequired = conflict("PROJECT_TITLE_REQUIRED", "project title cannot be empty")

// ProjectService handles project and membership business logic. The creator
// of a project becomes its lead; the lead is fixed for the project's
// lifetime and is the only one who may delete it or change member roles.
type ProjectService struct {
	projectRepo repository.ProjectRepository
	memberRepo  repository.ProjectMemberRepository
	userRepo    repository.UserRepository
	authorizer  *Authorizer
}

// NewProjectService creates a new ProjectService
func NewProjectService(
	projectRepo repository.ProjectRepository,
	memberRepo repository.ProjectMemberRepository,
	userRepo repository.UserRepository,
	authorizer *Authorizer,
) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		memberRepo:  memberRepo,
		userRepo:    userRepo,
		authorizer:  authorizer,
	}
}

// CreateProject creates a project with the actor as lead. Any authenticated
// user may create one.
func (s *ProjectService) CreateProject(actorID uint64, title string) (*models.Project, error) {
	if actorID == 0 {
		return nil, ErrUnauthenticated
	}

	if strings.TrimSpace(title) == "" {
		return nil, ErrProjectTitleRequired
	}

	project := &models.Project{
		Title:  title,
		LeadID: actorID,
	}

	if err := s.projectRepo.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return project, nil
}

// ListProjectsForUser returns projects where the actor is lead or member.
func (s *ProjectService) ListProjectsForUser(actorID uint64, page, pageSize int) ([]models.Project, int64, error) {
	if actorID == 0 {
		return nil, 0, ErrUnauthenticated
	}

	projects, total, err := s.projectRepo.ListForUser(actorID, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, total, nil
}

// GetProject returns a project. Any participant may view it.
func (s *ProjectService) GetProject(actorID, projectID uint64) (*models.Project, error) {
	if actorID == 0 {
		return nil, ErrUnauthenticated
	}

	project, err := s.findProject(projectID, "Lead")
	if err != nil {
		return nil, err
	}

	participant, err := s.authorizer.IsParticipant(project, actorID)
	if err != nil {
		return nil, err
	}
	if !participant {
		return nil, ErrAccessDenied
	}

	return project, nil
}

// GetMembers returns a project's membership rows with user info. Any
// participant may view them. The lead is not part of the list; lead status
// lives on the project record.
func (s *ProjectService) GetMembers(actorID, projectID uint64) ([]models.ProjectMember, error) {
	if actorID == 0 {
		return nil, ErrUnauthenticated
	}

	project, err := s.findProject(projectID)
	if err != nil {
		return nil, err
	}

	participant, err := s.authorizer.IsParticipant(project, actorID)
	if err != nil {
		return nil, err
	}
	if !participant {
		return nil, ErrAccessDenied
	}

	members, err := s.memberRepo.ListByProject(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return members, nil
}

// UpdateMemberRole promotes or demotes a member between member and manager.
// Only the lead may do this. Re-applying the current role is rejected.
func (s *ProjectService) UpdateMemberRole(actorID, projectID, targetUserID uint64, role models.ProjectRole) (*models.ProjectMember, error) {
	if actorID == 0 {
		return nil, ErrUnauthenticated
	}

	userExists, err := s.userRepo.Exists(targetUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to check user: %w", err)
	}
	if !userExists {
		return nil, ErrMemberNotFound
	}

	project, err := s.findProject(projectID)
	if err != nil {
		return nil, err
	}

	if !s.authorizer.IsLead(project, actorID) {
		return nil, ErrAccessDenied
	}

	member, err := s.memberRepo.Find(projectID, targetUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserIsNotAProjectMember
		}
		return nil, fmt.Errorf("failed to find member: %w", err)
	}

	if member.Role == role {
		return nil, ErrMemberAlreadyHasRole
	}

	member.Role = role
	if err := s.memberRepo.Update(member); err != nil {
		return nil, fmt.Errorf("failed to update member role: %w", err)
	}

	return member, nil
}

// DeleteProject removes a project and everything it owns. Only the lead may
// delete; the repository cascades to tasks, members and invites in one
// transaction.
func (s *ProjectService) DeleteProject(actorID, projectID uint64) error {
	if actorID == 0 {
		return ErrUnauthenticated
	}

	project, err := s.findProject(projectID)
	if err != nil {
		return err
	}

	if !s.authorizer.IsLead(project, actorID) {
		return ErrAccessDenied
	}

	if err := s.projectRepo.Delete(projectID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	return nil
}

func (s *ProjectService) findProject(id uint64, preload ...string) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(id, preload...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}
