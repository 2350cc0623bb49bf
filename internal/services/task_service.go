package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/kawasemi/project-collab-api/internal/models"
	"github.com/kawasemi/project-collab-api/internal/repository"
	"gorm.io/gorm"
)

// TaskService handles task business logic. Content mutations (create,
// update, delete) require lead or manager capability; status changes are
// open to the lead or the assignee, and to nobody else; reads are open to
// every participant.
type TaskService struct {
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
	authorizer  *Authorizer
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, projectRepo repository.ProjectRepository, authorizer *Authorizer) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		authorizer:  authorizer,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Description string
	DueDate     *time.Time
	AssigneeID  *uint64
}

// UpdateTaskInput represents input for updating task content
type UpdateTaskInput struct {
	Title        *string
	Description  *string
	DueDate      *time.Time
	ClearDueDate bool
	AssigneeID   *uint64
}

// ListTasksInput represents filters for listing a project's tasks
type ListTasksInput struct {
	Status   *models.TaskStatus
	SortBy   repository.TaskSortField
	Order    repository.SortOrder
	Page     int
	PageSize int
}

// CreateTask creates a new task in the project. New tasks always start in
// TODO.
func (s *TaskService) CreateTask(actorID, projectID uint64, input CreateTaskInput) (*models.Task, error) {
	if actorID == 0 {
		return nil, ErrUnauthenticated
	}

	project, err := s.findProject(projectID)
	if err != nil {
		return nil, err
	}

	if err := s.requireManage(project, actorID); err != nil {
		return nil, err
	}

	task := &models.Task{
		ProjectID:   projectID,
		Title:       input.Title,
		Description: input.Description,
		Status:      models.TaskStatusTodo,
		DueDate:     input.DueDate,
		CreatedByID: actorID,
		AssigneeID:  input.AssigneeID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, "CreatedBy", "Assignee")
}

// UpdateTask updates a task's content fields. Status is not touched here;
// see UpdateTaskStatus.
func (s *TaskService) UpdateTask(actorID, projectID, taskID uint64, input UpdateTaskInput) (*models.Task, error) {
	if actorID == 0 {
		return nil, ErrUnauthenticated
	}

	project, err := s.findProject(projectID)
	if err != nil {
		return nil, err
	}

	task, err := s.findTask(projectID, taskID)
	if err != nil {
		return nil, err
	}

	if err := s.requireManage(project, actorID); err != nil {
		return nil, err
	}

	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.ClearDueDate {
		task.DueDate = nil
	} else if input.DueDate != nil {
		task.DueDate = input.DueDate
	}
	if input.AssigneeID != nil {
		task.AssigneeID = input.AssigneeID
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, "CreatedBy", "Assignee")
}

// UpdateTaskStatus moves a task to a new status. Only the project lead or
// the task's assignee may do this; a manager role alone is not enough.
// Setting the status the task already has is rejected, not silently
// accepted.
func (s *TaskService) UpdateTaskStatus(actorID, projectID, taskID uint64, status models.TaskStatus) (*models.Task, error) {
	if actorID == 0 {
		return nil, ErrUnauthenticated
	}

	project, err := s.findProject(projectID)
	if err != nil {
		return nil, err
	}

	task, err := s.findTask(projectID, taskID)
	if err != nil {
		return nil, err
	}

	if !s.authorizer.IsLead(project, actorID) && !task.IsAssignedTo(actorID) {
		return nil, ErrAccessDenied
	}

	if task.Status == status {
		return nil, ErrStatusAlreadySet
	}

	task.Status = status
	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task status: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, "CreatedBy", "Assignee")
}

// DeleteTask removes a task. Only the lead or a manager may delete.
func (s *TaskService) DeleteTask(actorID, projectID, taskID uint64) error {
	if actorID == 0 {
		return ErrUnauthenticated
	}

	project, err := s.findProject(projectID)
	if err != nil {
		return err
	}

	task, err := s.findTask(projectID, taskID)
	if err != nil {
		return err
	}

	if err := s.requireManage(project, actorID); err != nil {
		return err
	}

	if err := s.taskRepo.Delete(task.ID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// GetTask returns a single task. Any participant may read.
func (s *TaskService) GetTask(actorID, projectID, taskID uint64) (*models.Task, error) {
	if actorID == 0 {
		return nil, ErrUnauthenticated
	}

	project, err := s.findProject(projectID)
	if err != nil {
		return nil, err
	}

	if err := s.requireParticipant(project, actorID); err != nil {
		return nil, err
	}

	return s.findTask(projectID, taskID, "CreatedBy", "Assignee")
}

// ListTasks returns a project's tasks with optional status filter, sorting
// and pagination. Any participant may read.
func (s *TaskService) ListTasks(actorID, projectID uint64, input ListTasksInput) ([]models.Task, int64, error) {
	if actorID == 0 {
		return nil, 0, ErrUnauthenticated
	}

	project, err := s.findProject(projectID)
	if err != nil {
		return nil, 0, err
	}

	if err := s.requireParticipant(project, actorID); err != nil {
		return nil, 0, err
	}

	tasks, total, err := s.taskRepo.List(repository.TaskFilter{
		ProjectID: projectID,
		Status:    input.Status,
		SortBy:    input.SortBy,
		Order:     input.Order,
		Page:      input.Page,
		PageSize:  input.PageSize,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, total, nil
}

func (s *TaskService) requireManage(project *models.Project, userID uint64) error {
	canManage, err := s.authorizer.CanManageProject(project, userID)
	if err != nil {
		return err
	}
	if !canManage {
		return ErrAccessDenied
	}
	return nil
}

func (s *TaskService) requireParticipant(project *models.Project, userID uint64) error {
	participant, err := s.authorizer.IsParticipant(project, userID)
	if err != nil {
		return err
	}
	if !participant {
		return ErrAccessDenied
	}
	return nil
}

func (s *TaskService) findProject(id uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

func (s *TaskService) findTask(projectID, taskID uint64, preload ...string) (*models.Task, error) {
	task, err := s.taskRepo.FindInProject(projectID, taskID, preload...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}
