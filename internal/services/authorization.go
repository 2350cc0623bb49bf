package services

import (
	"fmt"

	"github.com/kawasemi/project-collab-api/internal/models"
	"github.com/kawasemi/project-collab-api/internal/repository"
)

// Authorizer answers role questions for a user against a project. All checks
// are read-only predicates; callers are expected to have resolved the project
// before asking. Lead status comes from the project record itself and always
// implies manager-level capability.
type Authorizer struct {
	memberRepo repository.ProjectMemberRepository
}

// NewAuthorizer creates a new Authorizer
func NewAuthorizer(memberRepo repository.ProjectMemberRepository) *Authorizer {
	return &Authorizer{memberRepo: memberRepo}
}

// IsLead reports whether the user is the project's lead.
func (a *Authorizer) IsLead(project *models.Project, userID uint64) bool {
	return project.LeadID == userID
}

// IsManager reports whether the user holds a manager membership row.
func (a *Authorizer) IsManager(projectID, userID uint64) (bool, error) {
	ok, err := a.memberRepo.HasRole(projectID, userID, models.RoleManager)
	if err != nil {
		return false, fmt.Errorf("failed to check manager role: %w", err)
	}
	return ok, nil
}

// IsMember reports whether the user holds a plain member membership row.
// The lead and managers do not count here.
func (a *Authorizer) IsMember(projectID, userID uint64) (bool, error) {
	ok, err := a.memberRepo.HasRole(projectID, userID, models.RoleMember)
	if err != nil {
		return false, fmt.Errorf("failed to check member role: %w", err)
	}
	return ok, nil
}

// IsParticipant reports whether the user is the lead or holds any membership
// row. The lead never has a membership row of their own; participation is a
// derived fact, not a backfilled record.
func (a *Authorizer) IsParticipant(project *models.Project, userID uint64) (bool, error) {
	if a.IsLead(project, userID) {
		return true, nil
	}
	ok, err := a.memberRepo.Exists(project.ID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to check membership: %w", err)
	}
	return ok, nil
}

// CanManageProject reports whether the user is the lead or a manager. This
// gates task content mutations, invite creation, member role updates and
// viewing a project's pending invites.
func (a *Authorizer) CanManageProject(project *models.Project, userID uint64) (bool, error) {
	if a.IsLead(project, userID) {
		return true, nil
	}
	return a.IsManager(project.ID, userID)
}

// CanAccessTask reports whether the user can manage the project or is the
// task's assignee. Assignee access covers status changes only; content
// updates stay behind CanManageProject in the task service.
func (a *Authorizer) CanAccessTask(project *models.Project, task *models.Task, userID uint64) (bool, error) {
	if task.IsAssignedTo(userID) {
		return true, nil
	}
	return a.CanManageProject(project, userID)
}
