package services

import (
	"errors"
	"fmt"

	"github.com/kawasemi/project-collab-api/internal/models"
	"github.com/kawasemi/project-collab-api/internal/repository"
	"gorm.io/gorm"
)

// InviteService handles the project invite lifecycle: creation by a lead or
// manager, acceptance or decline by the invited user, and retraction by the
// inviter. Accepted and rejected are terminal; there is no way back to
// pending and no second resolution.
//
// Check order within each operation is part of the API contract:
// authentication, then existence, then terminal state, then access, then
// business rules.
type InviteService struct {
	inviteRepo  repository.ProjectInviteRepository
	projectRepo repository.ProjectRepository
	memberRepo  repository.ProjectMemberRepository
	userRepo    repository.UserRepository
	authorizer  *Authorizer
}

// NewInviteService creates a new InviteService
func NewInviteService(
	inviteRepo repository.ProjectInviteRepository,
	projectRepo repository.ProjectRepository,
	memberRepo repository.ProjectMemberRepository,
	userRepo repository.UserRepository,
	authorizer *Authorizer,
) *InviteService {
	return &InviteService{
		inviteRepo:  inviteRepo,
		projectRepo: projectRepo,
		memberRepo:  memberRepo,
		userRepo:    userRepo,
		authorizer:  authorizer,
	}
}

// CreateInvite invites a user into a project. Only the lead or a manager may
// invite. Any existing invite for the pair blocks a new one, no matter its
// status; a rejected invite keeps blocking until the inviter deletes it.
func (s *InviteService) CreateInvite(actorID, projectID, invitedUserID uint64) (*models.ProjectInvite, error) {
	if actorID == 0 {
		return nil, ErrUnauthenticated
	}

	project, err := s.findProject(projectID)
	if err != nil {
		return nil, err
	}

	canManage, err := s.authorizer.CanManageProject(project, actorID)
	if err != nil {
		return nil, err
	}
	if !canManage {
		return nil, ErrAccessDenied
	}

	userExists, err := s.userRepo.Exists(invitedUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to check invited user: %w", err)
	}
	if !userExists {
		return nil, ErrInvitedUserNotFound
	}

	inviteExists, err := s.inviteRepo.ExistsForUser(projectID, invitedUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing invites: %w", err)
	}
	if inviteExists {
		return nil, ErrUserAlreadyInvited
	}

	// Covers self-invites too: the lead and every member/manager is a
	// participant.
	participant, err := s.authorizer.IsParticipant(project, invitedUserID)
	if err != nil {
		return nil, err
	}
	if participant {
		return nil, ErrInvitedUserAlreadyMember
	}

	invite := &models.ProjectInvite{
		ProjectID:     projectID,
		InvitedUserID: invitedUserID,
		InvitedByID:   actorID,
		Status:        models.InviteStatusPending,
	}

	if err := s.inviteRepo.Create(invite); err != nil {
		return nil, fmt.Errorf("failed to create invite: %w", err)
	}

	return invite, nil
}

// AcceptInvite accepts a pending invite on behalf of the invited user and
// creates the member-role membership row. The status flip and the membership
// insert land in one transaction.
func (s *InviteService) AcceptInvite(actorID, inviteID uint64) (*models.ProjectInvite, error) {
	invite, err := s.resolvePendingInvite(actorID, inviteID)
	if err != nil {
		return nil, err
	}

	alreadyMember, err := s.memberRepo.Exists(invite.ProjectID, actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}
	if alreadyMember {
		return nil, ErrInvitedUserAlreadyMember
	}

	project, err := s.findProject(invite.ProjectID)
	if err != nil {
		return nil, err
	}
	if s.authorizer.IsLead(project, actorID) {
		return nil, ErrInvitedUserAlreadyMember
	}

	member := &models.ProjectMember{
		ProjectID: invite.ProjectID,
		UserID:    actorID,
		Role:      models.RoleMember,
	}

	if err := s.inviteRepo.AcceptWithMembership(invite, member); err != nil {
		return nil, fmt.Errorf("failed to accept invite: %w", err)
	}

	return invite, nil
}

// DeclineInvite rejects a pending invite on behalf of the invited user.
func (s *InviteService) DeclineInvite(actorID, inviteID uint64) (*models.ProjectInvite, error) {
	invite, err := s.resolvePendingInvite(actorID, inviteID)
	if err != nil {
		return nil, err
	}

	invite.Status = models.InviteStatusRejected
	if err := s.inviteRepo.Update(invite); err != nil {
		return nil, fmt.Errorf("failed to decline invite: %w", err)
	}

	return invite, nil
}

// DeleteInvite removes an invite. Only its creator may delete it, in any
// status. Deleting an accepted invite does not revoke the membership it
// produced.
func (s *InviteService) DeleteInvite(actorID, inviteID uint64) error {
	if actorID == 0 {
		return ErrUnauthenticated
	}

	invite, err := s.findInvite(inviteID)
	if err != nil {
		return err
	}

	if invite.InvitedByID != actorID {
		return ErrAccessDenied
	}

	if err := s.inviteRepo.Remove(invite.ID); err != nil {
		return fmt.Errorf("failed to delete invite: %w", err)
	}

	return nil
}

// ListPendingForUser returns the actor's own pending invites.
func (s *InviteService) ListPendingForUser(actorID uint64, page, pageSize int) ([]models.ProjectInvite, int64, error) {
	if actorID == 0 {
		return nil, 0, ErrUnauthenticated
	}

	invites, total, err := s.inviteRepo.ListPendingForUser(actorID, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list invites: %w", err)
	}
	return invites, total, nil
}

// ListPendingForProject returns a project's pending invites. Only the lead or
// a manager may view them.
func (s *InviteService) ListPendingForProject(actorID, projectID uint64, page, pageSize int) ([]models.ProjectInvite, int64, error) {
	if actorID == 0 {
		return nil, 0, ErrUnauthenticated
	}

	project, err := s.findProject(projectID)
	if err != nil {
		return nil, 0, err
	}

	canManage, err := s.authorizer.CanManageProject(project, actorID)
	if err != nil {
		return nil, 0, err
	}
	if !canManage {
		return nil, 0, ErrAccessDenied
	}

	invites, total, err := s.inviteRepo.ListPendingForProject(projectID, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list invites: %w", err)
	}
	return invites, total, nil
}

// resolvePendingInvite runs the shared accept/decline preamble: the actor is
// authenticated, the invite exists, is still pending, and belongs to the
// actor. Terminal state is reported before access so a stale caller learns
// the invite is spent rather than getting a misleading denial.
func (s *InviteService) resolvePendingInvite(actorID, inviteID uint64) (*models.ProjectInvite, error) {
	if actorID == 0 {
		return nil, ErrUnauthenticated
	}

	invite, err := s.findInvite(inviteID)
	if err != nil {
		return nil, err
	}

	switch invite.Status {
	case models.InviteStatusAccepted:
		return nil, ErrInviteAlreadyAccepted
	case models.InviteStatusRejected:
		return nil, ErrInviteAlreadyRejected
	}

	if invite.InvitedUserID != actorID {
		return nil, ErrAccessDenied
	}

	return invite, nil
}

func (s *InviteService) findInvite(id uint64) (*models.ProjectInvite, error) {
	invite, err := s.inviteRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInviteNotFound
		}
		return nil, fmt.Errorf("failed to find invite: %w", err)
	}
	return invite, nil
}

func (s *InviteService) findProject(id uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}
