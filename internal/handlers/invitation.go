package handlers

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/taskify/taskify/internal/config"
	"github.com/taskify/taskify/internal/middleware"
	"github.com/taskify/taskify/internal/rbac"
	"github.com/taskify/taskify/internal/services"
	"github.com/taskify/taskify/pkg/response"
)

// InvitationHandler exposes the invitation lifecycle over HTTP, including
// the redirecting accept link sent in invite mail.
type InvitationHandler struct {
	access *services.AccessService
	app    *config.AppConfig
}

func NewInvitationHandler(access *services.AccessService, app *config.AppConfig) *InvitationHandler {
	return &InvitationHandler{access: access, app: app}
}

type InviteMemberRequest struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role" binding:"required"` // admin, editor, viewer
}

type AcceptInviteRequest struct {
	Token string `json:"token" binding:"required"`
}

type DeclineInviteRequest struct {
	Token string `json:"token" binding:"required"`
}

// Invite issues an invitation to join a project.
func (h *InvitationHandler) Invite(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req InviteMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	invite, err := h.access.InviteMember(projectID, req.Email, rbac.Role(req.Role), middleware.GetUserID(c))
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Created(c, invite)
}

// ListForProject returns a project's pending invitations.
func (h *InvitationHandler) ListForProject(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	invites, err := h.access.ListPendingInvites(projectID, middleware.GetUserID(c))
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, invites)
}

// MyInvites returns pending invitations addressed to the caller's email.
func (h *InvitationHandler) MyInvites(c *gin.Context) {
	invites, err := h.access.ListMyInvites(middleware.GetUserEmail(c))
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, invites)
}

// Accept consumes an invite token for the caller (SPA flow). An unknown or
// expired token is a soft failure, not a 5xx.
func (h *InvitationHandler) Accept(c *gin.Context) {
	var req AcceptInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	member, err := h.access.AcceptInvite(req.Token, middleware.GetUserID(c))
	if err != nil {
		serviceError(c, err)
		return
	}
	if member == nil {
		response.NotFound(c, "invitation not found or expired")
		return
	}
	response.Success(c, member)
}

// Decline dismisses a pending invitation.
func (h *InvitationHandler) Decline(c *gin.Context) {
	var req DeclineInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.access.DeclineInvite(req.Token); err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "invitation declined"})
}

// AcceptLink handles the GET link embedded in invitation mail. It always
// redirects: to sign-in (token preserved) when unauthenticated, to the
// dashboard with an error flag when the token is dead, into the project on
// success.
func (h *InvitationHandler) AcceptLink(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.Redirect(http.StatusFound, h.app.DashboardURL+"?invite=invalid")
		return
	}

	userID := middleware.GetUserID(c)
	if userID == 0 {
		signIn := fmt.Sprintf("%s?redirect=%s", h.app.SignInURL,
			url.QueryEscape("/api/accept-invite?token="+token))
		c.Redirect(http.StatusFound, signIn)
		return
	}

	member, err := h.access.AcceptInvite(token, userID)
	if err != nil || member == nil {
		c.Redirect(http.StatusFound, h.app.DashboardURL+"?invite=invalid")
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/projects/%d", member.ProjectID))
}
