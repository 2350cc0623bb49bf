package services

import (
	"testing"
	"time"

	"github.com/kawasemi/project-collab-api/internal/models"
	"github.com/kawasemi/project-collab-api/internal/repository"
	"github.com/stretchr/testify/suite"
)

type TaskServiceTestSuite struct {
	serviceSuite
}

func TestTaskServiceSuite(t *testing.T) {
	suite.Run(t, new(TaskServiceTestSuite))
}

func (s *TaskServiceTestSuite) TestCreateTask_Success() {
	lead := s.createUser("lead")
	project := s.createProject("Project", lead.ID)

	task, err := s.tasks.CreateTask(lead.ID, project.ID, CreateTaskInput{
		Title:       "Write report",
		Description: "Quarterly numbers",
	})

	s.NoError(err)
	s.Equal(models.TaskStatusTodo, task.Status)
	s.Equal(lead.ID, task.CreatedByID)
	s.Nil(task.AssigneeID)
}

func (s *TaskServiceTestSuite) TestCreateTask_WithAssignee() {
	lead := s.createUser("lead")
	member := s.createUser("member")
	project := s.createProject("Project", lead.ID)
	s.addMember(project.ID, member.ID, models.RoleMember)

	task, err := s.tasks.CreateTask(lead.ID, project.ID, CreateTaskInput{
		Title:      "Write report",
		AssigneeID: &member.ID,
	})

	s.NoError(err)
	s.Require().NotNil(task.AssigneeID)
	s.Equal(member.ID, *task.AssigneeID)
	s.Equal(member.ID, task.Assignee.ID)
}

func (s *TaskServiceTestSuite) TestCreateTask_MemberDenied() {
	lead := s.createUser("lead")
	member := s.createUser("member")
	project := s.createProject("Project", lead.ID)
	s.addMember(project.ID, member.ID, models.RoleMember)

	_, err := s.tasks.CreateTask(member.ID, project.ID, CreateTaskInput{Title: "Nope"})
	s.ErrorIs(err, ErrAccessDenied)
}

func (s *TaskServiceTestSuite) TestCreateTask_ManagerAllowed() {
	lead := s.createUser("lead")
	manager := s.createUser("manager")
	project := s.createProject("Project", lead.ID)
	s.addMember(project.ID, manager.ID, models.RoleManager)

	task, err := s.tasks.CreateTask(manager.ID, project.ID, CreateTaskInput{Title: "Plan sprint"})
	s.NoError(err)
	s.Equal(manager.ID, task.CreatedByID)
}

func (s *TaskServiceTestSuite) TestCreateTask_ProjectNotFound() {
	lead := s.createUser("lead")

	_, err := s.tasks.CreateTask(lead.ID, 999, CreateTaskInput{Title: "Ghost"})
	s.ErrorIs(err, ErrProjectNotFound)
}

func (s *TaskServiceTestSuite) TestUpdateTask_Success() {
	lead := s.createUser("lead")
	project := s.createProject("Project", lead.ID)
	task := s.createTask(project.ID, lead.ID, "Old title")

	newTitle := "New title"
	due := s.dueIn(48 * time.Hour)
	updated, err := s.tasks.UpdateTask(lead.ID, project.ID, task.ID, UpdateTaskInput{
		Title:   &newTitle,
		DueDate: due,
	})

	s.NoError(err)
	s.Equal("New title", updated.Title)
	s.Require().NotNil(updated.DueDate)
	s.WithinDuration(*due, *updated.DueDate, time.Second)
}

func (s *TaskServiceTestSuite) TestUpdateTask_ClearDueDate() {
	lead := s.createUser("lead")
	project := s.createProject("Project", lead.ID)
	task := s.createTask(project.ID, lead.ID, "Task")
	task.DueDate = s.dueIn(24 * time.Hour)
	s.Require().NoError(s.db.Save(task).Error)

	updated, err := s.tasks.UpdateTask(lead.ID, project.ID, task.ID, UpdateTaskInput{ClearDueDate: true})

	s.NoError(err)
	s.Nil(updated.DueDate)
}

// Addressing a task through a project it does not belong to reads as the
// task not existing, never as a denial.
func (s *TaskServiceTestSuite) TestUpdateTask_CrossProjectMismatch() {
	lead := s.createUser("lead")
	projectA := s.createProject("Project A", lead.ID)
	projectB := s.createProject("Project B", lead.ID)
	task := s.createTask(projectA.ID, lead.ID, "Task in A")

	title := "Hijack"
	_, err := s.tasks.UpdateTask(lead.ID, projectB.ID, task.ID, UpdateTaskInput{Title: &title})
	s.ErrorIs(err, ErrTaskNotFound)
}

func (s *TaskServiceTestSuite) TestUpdateTask_MemberDenied() {
	lead := s.createUser("lead")
	member := s.createUser("member")
	project := s.createProject("Project", lead.ID)
	s.addMember(project.ID, member.ID, models.RoleMember)
	task := s.createTask(project.ID, lead.ID, "Task")

	title := "Changed"
	_, err := s.tasks.UpdateTask(member.ID, project.ID, task.ID, UpdateTaskInput{Title: &title})
	s.ErrorIs(err, ErrAccessDenied)
}

// The assignee may move their task through the lifecycle even without any
// management role.
func (s *TaskServiceTestSuite) TestUpdateTaskStatus_AssigneeAllowed() {
	lead := s.createUser("lead")
	member := s.createUser("member")
	project := s.createProject("Project", lead.ID)
	s.addMember(project.ID, member.ID, models.RoleMember)
	task := s.createTask(project.ID, lead.ID, "Task")
	s.assignTask(task, member.ID)

	updated, err := s.tasks.UpdateTaskStatus(member.ID, project.ID, task.ID, models.TaskStatusInProgress)
	s.NoError(err)
	s.Equal(models.TaskStatusInProgress, updated.Status)
}

func (s *TaskServiceTestSuite) TestUpdateTaskStatus_LeadAllowed() {
	lead := s.createUser("lead")
	project := s.createProject("Project", lead.ID)
	task := s.createTask(project.ID, lead.ID, "Task")

	updated, err := s.tasks.UpdateTaskStatus(lead.ID, project.ID, task.ID, models.TaskStatusComplete)
	s.NoError(err)
	s.Equal(models.TaskStatusComplete, updated.Status)
}

// Managing a project does not grant status changes; that right belongs to
// the lead and the assignee only.
func (s *TaskServiceTestSuite) TestUpdateTaskStatus_ManagerNotAssigneeDenied() {
	lead := s.createUser("lead")
	manager := s.createUser("manager")
	member := s.createUser("member")
	project := s.createProject("Project", lead.ID)
	s.addMember(project.ID, manager.ID, models.RoleManager)
	s.addMember(project.ID, member.ID, models.RoleMember)
	task := s.createTask(project.ID, lead.ID, "Task")
	s.assignTask(task, member.ID)

	_, err := s.tasks.UpdateTaskStatus(manager.ID, project.ID, task.ID, models.TaskStatusInProgress)
	s.ErrorIs(err, ErrAccessDenied)
}

func (s *TaskServiceTestSuite) TestUpdateTaskStatus_SameStatusRejected() {
	lead := s.createUser("lead")
	project := s.createProject("Project", lead.ID)
	task := s.createTask(project.ID, lead.ID, "Task")

	_, err := s.tasks.UpdateTaskStatus(lead.ID, project.ID, task.ID, models.TaskStatusTodo)
	s.ErrorIs(err, ErrStatusAlreadySet)
}

func (s *TaskServiceTestSuite) TestUpdateTaskStatus_TaskNotFoundBeforeAccess() {
	lead := s.createUser("lead")
	outsider := s.createUser("outsider")
	project := s.createProject("Project", lead.ID)

	_, err := s.tasks.UpdateTaskStatus(outsider.ID, project.ID, 999, models.TaskStatusComplete)
	s.ErrorIs(err, ErrTaskNotFound)
}

func (s *TaskServiceTestSuite) TestDeleteTask_Success() {
	lead := s.createUser("lead")
	project := s.createProject("Project", lead.ID)
	task := s.createTask(project.ID, lead.ID, "Task")

	s.NoError(s.tasks.DeleteTask(lead.ID, project.ID, task.ID))

	_, err := s.tasks.GetTask(lead.ID, project.ID, task.ID)
	s.ErrorIs(err, ErrTaskNotFound)
}

func (s *TaskServiceTestSuite) TestDeleteTask_AssigneeWithoutRoleDenied() {
	lead := s.createUser("lead")
	member := s.createUser("member")
	project := s.createProject("Project", lead.ID)
	s.addMember(project.ID, member.ID, models.RoleMember)
	task := s.createTask(project.ID, lead.ID, "Task")
	s.assignTask(task, member.ID)

	err := s.tasks.DeleteTask(member.ID, project.ID, task.ID)
	s.ErrorIs(err, ErrAccessDenied)
}

func (s *TaskServiceTestSuite) TestGetTask_MemberAllowed() {
	lead := s.createUser("lead")
	member := s.createUser("member")
	project := s.createProject("Project", lead.ID)
	s.addMember(project.ID, member.ID, models.RoleMember)
	task := s.createTask(project.ID, lead.ID, "Task")

	got, err := s.tasks.GetTask(member.ID, project.ID, task.ID)
	s.NoError(err)
	s.Equal(task.ID, got.ID)
}

func (s *TaskServiceTestSuite) TestGetTask_NonParticipantDenied() {
	lead := s.createUser("lead")
	outsider := s.createUser("outsider")
	project := s.createProject("Project", lead.ID)
	task := s.createTask(project.ID, lead.ID, "Task")

	_, err := s.tasks.GetTask(outsider.ID, project.ID, task.ID)
	s.ErrorIs(err, ErrAccessDenied)
}

func (s *TaskServiceTestSuite) TestListTasks_StatusFilter() {
	lead := s.createUser("lead")
	project := s.createProject("Project", lead.ID)
	s.createTask(project.ID, lead.ID, "First")
	second := s.createTask(project.ID, lead.ID, "Second")
	second.Status = models.TaskStatusComplete
	s.Require().NoError(s.db.Save(second).Error)

	status := models.TaskStatusComplete
	tasks, total, err := s.tasks.ListTasks(lead.ID, project.ID, ListTasksInput{
		Status:   &status,
		Page:     1,
		PageSize: 20,
	})

	s.NoError(err)
	s.EqualValues(1, total)
	s.Require().Len(tasks, 1)
	s.Equal("Second", tasks[0].Title)
}

// Due-date sort puts tasks without a due date after every dated task.
func (s *TaskServiceTestSuite) TestListTasks_SortByDueDateNullsLast() {
	lead := s.createUser("lead")
	project := s.createProject("Project", lead.ID)

	undated := s.createTask(project.ID, lead.ID, "Undated")
	later := s.createTask(project.ID, lead.ID, "Later")
	later.DueDate = s.dueIn(72 * time.Hour)
	s.Require().NoError(s.db.Save(later).Error)
	soon := s.createTask(project.ID, lead.ID, "Soon")
	soon.DueDate = s.dueIn(24 * time.Hour)
	s.Require().NoError(s.db.Save(soon).Error)

	tasks, total, err := s.tasks.ListTasks(lead.ID, project.ID, ListTasksInput{
		SortBy:   repository.TaskSortByDueDate,
		Order:    repository.SortAsc,
		Page:     1,
		PageSize: 20,
	})

	s.NoError(err)
	s.EqualValues(3, total)
	s.Require().Len(tasks, 3)
	s.Equal(soon.ID, tasks[0].ID)
	s.Equal(later.ID, tasks[1].ID)
	s.Equal(undated.ID, tasks[2].ID)
}

func (s *TaskServiceTestSuite) TestListTasks_SortByTitleDesc() {
	lead := s.createUser("lead")
	project := s.createProject("Project", lead.ID)
	s.createTask(project.ID, lead.ID, "Apple")
	s.createTask(project.ID, lead.ID, "Banana")

	tasks, _, err := s.tasks.ListTasks(lead.ID, project.ID, ListTasksInput{
		SortBy:   repository.TaskSortByTitle,
		Order:    repository.SortDesc,
		Page:     1,
		PageSize: 20,
	})

	s.NoError(err)
	s.Require().Len(tasks, 2)
	s.Equal("Banana", tasks[0].Title)
}

func (s *TaskServiceTestSuite) TestListTasks_Pagination() {
	lead := s.createUser("lead")
	project := s.createProject("Project", lead.ID)
	s.createTask(project.ID, lead.ID, "First")
	s.createTask(project.ID, lead.ID, "Second")
	s.createTask(project.ID, lead.ID, "Third")

	tasks, total, err := s.tasks.ListTasks(lead.ID, project.ID, ListTasksInput{
		SortBy:   repository.TaskSortByID,
		Order:    repository.SortAsc,
		Page:     2,
		PageSize: 2,
	})

	s.NoError(err)
	s.EqualValues(3, total)
	s.Require().Len(tasks, 1)
	s.Equal("Third", tasks[0].Title)
}

func (s *TaskServiceTestSuite) TestIsOverdue() {
	lead := s.createUser("lead")
	project := s.createProject("Project", lead.ID)

	now := time.Now()
	past := now.Add(-time.Hour)

	task := s.createTask(project.ID, lead.ID, "Late")
	task.DueDate = &past
	s.Require().NoError(s.db.Save(task).Error)

	s.True(task.IsOverdue(now))

	// Completed tasks are never overdue.
	task.Status = models.TaskStatusComplete
	s.False(task.IsOverdue(now))

	// Nor are tasks without a due date.
	undated := s.createTask(project.ID, lead.ID, "Undated")
	s.False(undated.IsOverdue(now))
}
