package repository

import (
	"github.com/kawasemi/project-collab-api/internal/models"
)

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a new project
	Create(project *models.Project) error

	// FindByID finds a project by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Project, error)

	// ListForUser lists projects where the user is the lead or holds a
	// membership row
	ListForUser(userID uint64, page, pageSize int) ([]models.Project, int64, error)

	// Update updates a project
	Update(project *models.Project) error

	// Delete removes a project together with its tasks, members and invites
	Delete(id uint64) error
}

// ProjectMemberRepository defines the interface for membership data access
type ProjectMemberRepository interface {
	// Create adds a membership row
	Create(member *models.ProjectMember) error

	// Update updates a membership row
	Update(member *models.ProjectMember) error

	// Remove deletes a membership row
	Remove(projectID, userID uint64) error

	// Find finds a specific membership row
	Find(projectID, userID uint64) (*models.ProjectMember, error)

	// Exists reports whether any membership row exists for the user
	Exists(projectID, userID uint64) (bool, error)

	// HasRole reports whether a membership row with the given role exists
	HasRole(projectID, userID uint64, role models.ProjectRole) (bool, error)

	// ListByProject lists all members of a project with user info
	ListByProject(projectID uint64) ([]models.ProjectMember, error)
}

// ProjectInviteRepository defines the interface for invite data access
type ProjectInviteRepository interface {
	// Create creates a new invite
	Create(invite *models.ProjectInvite) error

	// FindByID finds an invite by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.ProjectInvite, error)

	// ExistsForUser reports whether any invite exists for the pair,
	// regardless of its status
	ExistsForUser(projectID, userID uint64) (bool, error)

	// ListPendingForUser lists a user's pending invites
	ListPendingForUser(userID uint64, page, pageSize int) ([]models.ProjectInvite, int64, error)

	// ListPendingForProject lists a project's pending invites
	ListPendingForProject(projectID uint64, page, pageSize int) ([]models.ProjectInvite, int64, error)

	// Update updates an invite
	Update(invite *models.ProjectInvite) error

	// Remove hard deletes an invite
	Remove(id uint64) error

	// AcceptWithMembership marks the invite accepted and creates the
	// membership row within a single transaction
	AcceptWithMembership(invite *models.ProjectInvite, member *models.ProjectMember) error
}

// TaskSortField selects the column task listings are ordered by.
type TaskSortField string

const (
	TaskSortByID      TaskSortField = "id"
	TaskSortByTitle   TaskSortField = "title"
	TaskSortByDueDate TaskSortField = "due_date"
)

// SortOrder selects ascending or descending ordering.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	ProjectID uint64
	Status    *models.TaskStatus
	SortBy    TaskSortField
	Order     SortOrder
	Page      int
	PageSize  int
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// FindInProject finds a task by ID scoped to a project; a task whose
	// project does not match is reported as not found
	FindInProject(projectID, taskID uint64, preload ...string) (*models.Task, error)

	// List retrieves tasks with filtering, sorting and pagination
	List(filter TaskFilter) ([]models.Task, int64, error)

	// Update updates a task
	Update(task *models.Task) error

	// Delete soft deletes a task
	Delete(id uint64) error
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// Exists reports whether a user with the given ID exists
	Exists(id uint64) (bool, error)
}
