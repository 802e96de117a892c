package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/taskify/taskify/internal/middleware"
	"github.com/taskify/taskify/internal/services"
	"github.com/taskify/taskify/pkg/response"
)

// MemberHandler exposes project membership endpoints.
type MemberHandler struct {
	access *services.AccessService
}

func NewMemberHandler(access *services.AccessService) *MemberHandler {
	return &MemberHandler{access: access}
}

// List returns all members of a project.
func (h *MemberHandler) List(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	members, err := h.access.ListMembers(projectID, middleware.GetUserID(c))
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, members)
}

// Remove removes a member from a project.
func (h *MemberHandler) Remove(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := parseIDParam(c, "userID")
	if !ok {
		return
	}

	if err := h.access.RemoveMember(projectID, userID, middleware.GetUserID(c)); err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "member removed"})
}

// Leave removes the caller's own membership.
func (h *MemberHandler) Leave(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.access.LeaveProject(projectID, middleware.GetUserID(c)); err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "left project"})
}
