package repository

import (
	"github.com/kawasemi/project-collab-api/internal/database"
	"github.com/kawasemi/project-collab-api/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// FindInProject finds a task scoped to a project. A task id that exists under
// a different project yields gorm.ErrRecordNotFound.
func (r *GormTaskRepository) FindInProject(projectID, taskID uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db.Where("project_id = ?", projectID)

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, taskID).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// List retrieves tasks with filtering, sorting and pagination
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, int64, error) {
	var tasks []models.Task

	query := r.db.Model(&models.Task{}).Where("tasks.project_id = ?", filter.ProjectID)

	if filter.Status != nil {
		query = query.Where("tasks.status = ?", *filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order(orderClause(filter.SortBy, filter.Order)).
		Scopes(database.Paginate(filter.Page, filter.PageSize))

	if err := listQuery.Preload("CreatedBy").Preload("Assignee").Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// orderClause maps the sort field and order to a whitelisted ORDER BY clause.
func orderClause(sortBy TaskSortField, order SortOrder) string {
	column := "tasks.id"
	switch sortBy {
	case TaskSortByTitle:
		column = "tasks.title"
	case TaskSortByDueDate:
		// NULL due dates sort last regardless of direction
		column = "CASE WHEN tasks.due_date IS NULL THEN 1 ELSE 0 END, tasks.due_date"
	}

	if order == SortDesc {
		return column + " DESC"
	}
	return column + " ASC"
}

// Update updates a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// Delete soft deletes a task
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Task{}, id).Error
}
