package services

import (
	"testing"

	"github.com/kawasemi/project-collab-api/internal/models"
	"github.com/stretchr/testify/suite"
)

type ProjectServiceTestSuite struct {
	serviceSuite
}

func TestProjectServiceSuite(t *testing.T) {
	suite.Run(t, new(ProjectServiceTestSuite))
}

func (s *ProjectServiceTestSuite) TestCreateProject_ActorBecomesLead() {
	user := s.createUser("alice")

	project, err := s.projects.CreateProject(user.ID, "My Project")

	s.NoError(err)
	s.Equal(user.ID, project.LeadID)
	s.Equal("My Project", project.Title)
}

func (s *ProjectServiceTestSuite) TestCreateProject_EmptyTitle() {
	user := s.createUser("alice")

	_, err := s.projects.CreateProject(user.ID, "   ")
	s.ErrorIs(err, ErrProjectTitleRequired)
}

func (s *ProjectServiceTestSuite) TestCreateProject_Unauthenticated() {
	_, err := s.projects.CreateProject(0, "My Project")
	s.ErrorIs(err, ErrUnauthenticated)
}

func (s *ProjectServiceTestSuite) TestListProjectsForUser() {
	alice := s.createUser("alice")
	bob := s.createUser("bob")
	carol := s.createUser("carol")

	led := s.createProject("Led by Alice", alice.ID)
	joined := s.createProject("Led by Bob", bob.ID)
	s.addMember(joined.ID, alice.ID, models.RoleMember)
	s.createProject("Unrelated", carol.ID)

	projects, total, err := s.projects.ListProjectsForUser(alice.ID, 1, 20)

	s.NoError(err)
	s.EqualValues(2, total)
	s.Require().Len(projects, 2)
	ids := []uint64{projects[0].ID, projects[1].ID}
	s.Contains(ids, led.ID)
	s.Contains(ids, joined.ID)
}

func (s *ProjectServiceTestSuite) TestListProjectsForUser_Pagination() {
	alice := s.createUser("alice")
	for _, title := range []string{"One", "Two", "Three"} {
		s.createProject(title, alice.ID)
	}

	projects, total, err := s.projects.ListProjectsForUser(alice.ID, 2, 2)

	s.NoError(err)
	s.EqualValues(3, total)
	s.Len(projects, 1)
}

func (s *ProjectServiceTestSuite) TestGetProject_NonParticipantDenied() {
	lead := s.createUser("lead")
	outsider := s.createUser("outsider")
	project := s.createProject("Project", lead.ID)

	_, err := s.projects.GetProject(outsider.ID, project.ID)
	s.ErrorIs(err, ErrAccessDenied)

	got, err := s.projects.GetProject(lead.ID, project.ID)
	s.NoError(err)
	s.Equal(project.ID, got.ID)
}

// The lead never appears in the membership list; lead status lives on the
// project record itself.
func (s *ProjectServiceTestSuite) TestGetMembers_ExcludesLead() {
	lead := s.createUser("lead")
	member := s.createUser("member")
	project := s.createProject("Project", lead.ID)
	s.addMember(project.ID, member.ID, models.RoleMember)

	members, err := s.projects.GetMembers(lead.ID, project.ID)

	s.NoError(err)
	s.Require().Len(members, 1)
	s.Equal(member.ID, members[0].UserID)
}

func (s *ProjectServiceTestSuite) TestUpdateMemberRole_Promote() {
	lead := s.createUser("lead")
	member := s.createUser("member")
	project := s.createProject("Project", lead.ID)
	s.addMember(project.ID, member.ID, models.RoleMember)

	updated, err := s.projects.UpdateMemberRole(lead.ID, project.ID, member.ID, models.RoleManager)

	s.NoError(err)
	s.Equal(models.RoleManager, updated.Role)

	// The promotion unlocks management capabilities.
	canManage, err := s.authorizer.CanManageProject(project, member.ID)
	s.NoError(err)
	s.True(canManage)
}

// A missing target user reads as the member not being found, even when the
// project id is bogus too.
func (s *ProjectServiceTestSuite) TestUpdateMemberRole_UnknownUserBeforeProject() {
	lead := s.createUser("lead")

	_, err := s.projects.UpdateMemberRole(lead.ID, 999, 888, models.RoleManager)
	s.ErrorIs(err, ErrMemberNotFound)
}

func (s *ProjectServiceTestSuite) TestUpdateMemberRole_ProjectNotFound() {
	lead := s.createUser("lead")
	member := s.createUser("member")

	_, err := s.projects.UpdateMemberRole(lead.ID, 999, member.ID, models.RoleManager)
	s.ErrorIs(err, ErrProjectNotFound)
}

// Role changes are the lead's alone; even a manager may not promote.
func (s *ProjectServiceTestSuite) TestUpdateMemberRole_ManagerDenied() {
	lead := s.createUser("lead")
	manager := s.createUser("manager")
	member := s.createUser("member")
	project := s.createProject("Project", lead.ID)
	s.addMember(project.ID, manager.ID, models.RoleManager)
	s.addMember(project.ID, member.ID, models.RoleMember)

	_, err := s.projects.UpdateMemberRole(manager.ID, project.ID, member.ID, models.RoleManager)
	s.ErrorIs(err, ErrAccessDenied)
}

func (s *ProjectServiceTestSuite) TestUpdateMemberRole_NotAMember() {
	lead := s.createUser("lead")
	stranger := s.createUser("stranger")
	project := s.createProject("Project", lead.ID)

	_, err := s.projects.UpdateMemberRole(lead.ID, project.ID, stranger.ID, models.RoleManager)
	s.ErrorIs(err, ErrUserIsNotAProjectMember)
}

func (s *ProjectServiceTestSuite) TestUpdateMemberRole_SameRole() {
	lead := s.createUser("lead")
	member := s.createUser("member")
	project := s.createProject("Project", lead.ID)
	s.addMember(project.ID, member.ID, models.RoleMember)

	_, err := s.projects.UpdateMemberRole(lead.ID, project.ID, member.ID, models.RoleMember)
	s.ErrorIs(err, ErrMemberAlreadyHasRole)
}

func (s *ProjectServiceTestSuite) TestDeleteProject_LeadOnly() {
	lead := s.createUser("lead")
	manager := s.createUser("manager")
	project := s.createProject("Project", lead.ID)
	s.addMember(project.ID, manager.ID, models.RoleManager)

	err := s.projects.DeleteProject(manager.ID, project.ID)
	s.ErrorIs(err, ErrAccessDenied)

	s.NoError(s.projects.DeleteProject(lead.ID, project.ID))

	_, err = s.projects.GetProject(lead.ID, project.ID)
	s.ErrorIs(err, ErrProjectNotFound)
}

// Deleting a project takes its tasks, membership rows and invites with it.
func (s *ProjectServiceTestSuite) TestDeleteProject_Cascades() {
	lead := s.createUser("lead")
	member := s.createUser("member")
	invited := s.createUser("invited")
	project := s.createProject("Project", lead.ID)
	s.addMember(project.ID, member.ID, models.RoleMember)
	s.createPendingInvite(project.ID, invited.ID, lead.ID)
	s.createTask(project.ID, lead.ID, "Task")

	s.NoError(s.projects.DeleteProject(lead.ID, project.ID))

	var memberCount, inviteCount int64
	s.NoError(s.db.Model(&models.ProjectMember{}).Where("project_id = ?", project.ID).Count(&memberCount).Error)
	s.NoError(s.db.Model(&models.ProjectInvite{}).Where("project_id = ?", project.ID).Count(&inviteCount).Error)
	s.Zero(memberCount)
	s.Zero(inviteCount)

	var taskCount int64
	s.NoError(s.db.Model(&models.Task{}).Where("project_id = ?", project.ID).Count(&taskCount).Error)
	s.Zero(taskCount)
}
