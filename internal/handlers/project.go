package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/taskify/taskify/internal/middleware"
	"github.com/taskify/taskify/internal/services"
	"github.com/taskify/taskify/pkg/response"
)

// ProjectHandler exposes project CRUD through the access facade.
type ProjectHandler struct {
	access *services.AccessService
}

func NewProjectHandler(access *services.AccessService) *ProjectHandler {
	return &ProjectHandler{access: access}
}

// List returns the caller's projects.
func (h *ProjectHandler) List(c *gin.Context) {
	projects, err := h.access.ListMyProjects(middleware.GetUserID(c))
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, projects)
}

// Create makes a new project owned by the caller.
func (h *ProjectHandler) Create(c *gin.Context) {
	var req services.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	project, err := h.access.CreateProject(req.Name, middleware.GetUserID(c))
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Created(c, project)
}

// GetByID returns one project the caller can view.
func (h *ProjectHandler) GetByID(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	project, err := h.access.GetProject(projectID, middleware.GetUserID(c))
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, project)
}

// Update changes project settings.
func (h *ProjectHandler) Update(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	project, err := h.access.UpdateProject(projectID, middleware.GetUserID(c), &req)
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, project)
}

// Delete removes a project and everything scoped to it. Owner only.
func (h *ProjectHandler) Delete(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.access.DeleteProject(projectID, middleware.GetUserID(c)); err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "project deleted"})
}

// MyRole returns the caller's role for UI-side conditional rendering. The
// server never trusts this back; every mutation re-checks.
func (h *ProjectHandler) MyRole(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	role, err := h.access.MyRole(projectID, middleware.GetUserID(c))
	if err != nil {
		serviceError(c, err)
		return
	}

	if role == "" {
		response.Success(c, gin.H{"role": nil})
		return
	}
	response.Success(c, gin.H{"role": role})
}
