package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/taskify/taskify/internal/services"
	"github.com/taskify/taskify/pkg/response"
)

// parseIDParam parses a uint path parameter.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// serviceError maps the service-layer error taxonomy onto HTTP responses.
// Anything outside the taxonomy is an infrastructure failure.
func serviceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrForbidden):
		response.Forbidden(c, "you do not have permission to perform this action")
	case errors.Is(err, services.ErrInvalidRole):
		response.BadRequest(c, "invalid role, must be 'admin', 'editor', or 'viewer'")
	case errors.Is(err, services.ErrDuplicateMembership):
		response.Conflict(c, "user is already a member of this project")
	case errors.Is(err, services.ErrCannotRemoveOwner):
		response.BadRequest(c, "project owner cannot be removed")
	case errors.Is(err, services.ErrNotFound):
		response.NotFound(c, "not found")
	default:
		response.ServerError(c, err.Error())
	}
}
