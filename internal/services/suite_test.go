package services

import (
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/kawasemi/project-collab-api/internal/models"
	"github.com/kawasemi/project-collab-api/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// serviceSuite wires the services against real repositories on an in-memory
// SQLite database. Each test gets a fresh database.
type serviceSuite struct {
	suite.Suite
	db *gorm.DB

	userRepo    repository.UserRepository
	projectRepo repository.ProjectRepository
	memberRepo  repository.ProjectMemberRepository
	inviteRepo  repository.ProjectInviteRepository
	taskRepo    repository.TaskRepository

	authorizer *Authorizer
	invites    *InviteService
	tasks      *TaskService
	projects   *ProjectService
}

// SetupTest runs before each test
func (s *serviceSuite) SetupTest() {
	var err error

	s.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	s.Require().NoError(err)

	err = s.db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.ProjectMember{},
		&models.ProjectInvite{},
		&models.Task{},
	)
	s.Require().NoError(err)

	s.userRepo = repository.NewUserRepository(s.db)
	s.projectRepo = repository.NewProjectRepository(s.db)
	s.memberRepo = repository.NewProjectMemberRepository(s.db)
	s.inviteRepo = repository.NewProjectInviteRepository(s.db)
	s.taskRepo = repository.NewTaskRepository(s.db)

	s.authorizer = NewAuthorizer(s.memberRepo)
	s.invites = NewInviteService(s.inviteRepo, s.projectRepo, s.memberRepo, s.userRepo, s.authorizer)
	s.tasks = NewTaskService(s.taskRepo, s.projectRepo, s.authorizer)
	s.projects = NewProjectService(s.projectRepo, s.memberRepo, s.userRepo, s.authorizer)
}

// TearDownTest runs after each test
func (s *serviceSuite) TearDownTest() {
	sqlDB, err := s.db.DB()
	s.Require().NoError(err)
	sqlDB.Close()
}

// Helper functions to create test data

func (s *serviceSuite) createUser(username string) *models.User {
	user := &models.User{
		Username:     username,
		DisplayName:  username,
		PasswordHash: "hashedpassword",
	}
	s.Require().NoError(s.db.Create(user).Error)
	return user
}

func (s *serviceSuite) createProject(title string, leadID uint64) *models.Project {
	project := &models.Project{
		Title:  title,
		LeadID: leadID,
	}
	s.Require().NoError(s.db.Create(project).Error)
	return project
}

func (s *serviceSuite) addMember(projectID, userID uint64, role models.ProjectRole) *models.ProjectMember {
	member := &models.ProjectMember{
		ProjectID: projectID,
		UserID:    userID,
		Role:      role,
	}
	s.Require().NoError(s.db.Create(member).Error)
	return member
}

func (s *serviceSuite) createPendingInvite(projectID, invitedUserID, invitedByID uint64) *models.ProjectInvite {
	invite := &models.ProjectInvite{
		ProjectID:     projectID,
		InvitedUserID: invitedUserID,
		InvitedByID:   invitedByID,
		Status:        models.InviteStatusPending,
	}
	s.Require().NoError(s.db.Create(invite).Error)
	return invite
}

func (s *serviceSuite) createTask(projectID, createdByID uint64, title string) *models.Task {
	task := &models.Task{
		ProjectID:   projectID,
		Title:       title,
		Description: "Test Description",
		Status:      models.TaskStatusTodo,
		CreatedByID: createdByID,
	}
	s.Require().NoError(s.db.Create(task).Error)
	return task
}

func (s *serviceSuite) assignTask(task *models.Task, userID uint64) {
	task.AssigneeID = &userID
	s.Require().NoError(s.db.Save(task).Error)
}

func (s *serviceSuite) dueIn(d time.Duration) *time.Time {
	t := time.Now().Add(d)
	return &t
}
