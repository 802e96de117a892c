package services

import (
	"errors"
	"time"

	"github.com/taskify/taskify/internal/models"
	"gorm.io/gorm"
)

// TaskService is plain data access for tasks. It assumes the caller (the
// access facade) has already checked capabilities.
type TaskService struct {
	db *gorm.DB
}

func NewTaskService(db *gorm.DB) *TaskService {
	return &TaskService{db: db}
}

type CreateTaskRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Priority    string     `json:"priority" binding:"omitempty,oneof=low medium high"`
	DueDate     *time.Time `json:"due_date"`
}

type UpdateTaskRequest struct {
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Priority    string     `json:"priority" binding:"omitempty,oneof=low medium high"`
	DueDate     *time.Time `json:"due_date"`
}

func (s *TaskService) Create(projectID, createdBy uint, req *CreateTaskRequest) (*models.Task, error) {
	task := models.Task{
		ProjectID:   projectID,
		Title:       req.Title,
		Description: req.Description,
		Status:      models.TaskStatusTodo,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
		CreatedBy:   createdBy,
	}
	if task.Priority == "" {
		task.Priority = models.TaskPriorityMedium
	}

	if err := s.db.Create(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *TaskService) GetByID(taskID uint) (*models.Task, error) {
	var task models.Task
	if err := s.db.First(&task, taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &task, nil
}

func (s *TaskService) List(projectID uint) ([]models.Task, error) {
	var tasks []models.Task
	err := s.db.Where("project_id = ?", projectID).
		Preload("Assignee").
		Order("created_at DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (s *TaskService) Update(taskID uint, req *UpdateTaskRequest) (*models.Task, error) {
	task, err := s.GetByID(taskID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Title != "" {
		updates["title"] = req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Priority != "" {
		updates["priority"] = req.Priority
	}
	if req.DueDate != nil {
		updates["due_date"] = req.DueDate
	}

	if len(updates) > 0 {
		if err := s.db.Model(task).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return task, nil
}

func (s *TaskService) Delete(taskID uint) error {
	result := s.db.Delete(&models.Task{}, taskID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Assign sets or clears (nil) the task assignee.
func (s *TaskService) Assign(taskID uint, assigneeID *uint) (*models.Task, error) {
	task, err := s.GetByID(taskID)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(task).Update("assignee_id", assigneeID).Error; err != nil {
		return nil, err
	}
	return task, nil
}

// ChangeStatus moves a task across the board columns.
func (s *TaskService) ChangeStatus(taskID uint, status string) (*models.Task, error) {
	switch status {
	case models.TaskStatusTodo, models.TaskStatusInProgress, models.TaskStatusDone:
	default:
		return nil, errors.New("invalid task status")
	}

	task, err := s.GetByID(taskID)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(task).Update("status", status).Error; err != nil {
		return nil, err
	}
	return task, nil
}

// ListDueInRange returns tasks of a project with a due date inside [from, to).
func (s *TaskService) ListDueInRange(projectID uint, from, to time.Time) ([]models.Task, error) {
	var tasks []models.Task
	err := s.db.Where("project_id = ? AND due_date >= ? AND due_date < ?", projectID, from, to).
		Preload("Assignee").
		Order("due_date ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}
