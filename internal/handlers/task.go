package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/taskify/taskify/internal/middleware"
	"github.com/taskify/taskify/internal/services"
	"github.com/taskify/taskify/pkg/response"
)

// TaskHandler exposes the project task board.
type TaskHandler struct {
	access *services.AccessService
}

func NewTaskHandler(access *services.AccessService) *TaskHandler {
	return &TaskHandler{access: access}
}

type AssignTaskRequest struct {
	AssigneeID *uint `json:"assignee_id"` // null clears the assignee
}

type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=todo in_progress done"`
}

// List returns all tasks of a project.
func (h *TaskHandler) List(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	tasks, err := h.access.ListTasks(projectID, middleware.GetUserID(c))
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, tasks)
}

// Create adds a task to the project board.
func (h *TaskHandler) Create(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	task, err := h.access.CreateTask(projectID, middleware.GetUserID(c), &req)
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Created(c, task)
}

// Update edits task fields.
func (h *TaskHandler) Update(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	taskID, ok := parseIDParam(c, "taskID")
	if !ok {
		return
	}

	var req services.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	task, err := h.access.UpdateTask(projectID, taskID, middleware.GetUserID(c), &req)
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, task)
}

// Delete removes a task.
func (h *TaskHandler) Delete(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	taskID, ok := parseIDParam(c, "taskID")
	if !ok {
		return
	}

	if err := h.access.DeleteTask(projectID, taskID, middleware.GetUserID(c)); err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "task deleted"})
}

// Assign sets or clears the task assignee.
func (h *TaskHandler) Assign(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	taskID, ok := parseIDParam(c, "taskID")
	if !ok {
		return
	}

	var req AssignTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	task, err := h.access.AssignTask(projectID, taskID, middleware.GetUserID(c), req.AssigneeID)
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, task)
}

// ChangeStatus moves a task between board columns.
func (h *TaskHandler) ChangeStatus(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	taskID, ok := parseIDParam(c, "taskID")
	if !ok {
		return
	}

	var req ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	task, err := h.access.ChangeTaskStatus(projectID, taskID, middleware.GetUserID(c), req.Status)
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, task)
}
