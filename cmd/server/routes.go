package main

import (
	"github.com/gin-gonic/gin"
	"github.com/taskify/taskify/internal/config"
	"github.com/taskify/taskify/internal/handlers"
	"github.com/taskify/taskify/internal/middleware"
	"github.com/taskify/taskify/pkg/logger"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, cfg *config.Config, svc *appServices) {
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.CORS())

	// Brute-force protection on credential endpoints
	authLimiter := middleware.NewRateLimiter(5, 10)

	healthHandler := handlers.NewHealthHandler()
	r.GET("/health", healthHandler.Check)

	authHandler := handlers.NewAuthHandler(svc.auth)
	projectHandler := handlers.NewProjectHandler(svc.access)
	memberHandler := handlers.NewMemberHandler(svc.access)
	invitationHandler := handlers.NewInvitationHandler(svc.access, &cfg.App)
	taskHandler := handlers.NewTaskHandler(svc.access)
	calendarHandler := handlers.NewCalendarHandler(svc.access, svc.calendar)

	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth", authLimiter.Middleware())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		// The mailed invite link; handles its own redirect when unauthenticated
		api.GET("/accept-invite", middleware.OptionalAuth(), invitationHandler.AcceptLink)

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthRequired())
		{
			protected.GET("/auth/me", authHandler.Me)

			// Projects
			protected.GET("/projects", projectHandler.List)
			protected.POST("/projects", projectHandler.Create)
			protected.GET("/projects/:id", projectHandler.GetByID)
			protected.PUT("/projects/:id", projectHandler.Update)
			protected.DELETE("/projects/:id", projectHandler.Delete)
			protected.GET("/projects/:id/my-role", projectHandler.MyRole)

			// Members
			protected.GET("/projects/:id/members", memberHandler.List)
			protected.DELETE("/projects/:id/members/:userID", memberHandler.Remove)
			protected.POST("/projects/:id/leave", memberHandler.Leave)

			// Invitations
			protected.POST("/projects/:id/invites", invitationHandler.Invite)
			protected.GET("/projects/:id/invites", invitationHandler.ListForProject)
			protected.GET("/invites", invitationHandler.MyInvites)
			protected.POST("/invites/accept", invitationHandler.Accept)
			protected.POST("/invites/decline", invitationHandler.Decline)

			// Tasks
			protected.GET("/projects/:id/tasks", taskHandler.List)
			protected.POST("/projects/:id/tasks", taskHandler.Create)
			protected.PUT("/projects/:id/tasks/:taskID", taskHandler.Update)
			protected.DELETE("/projects/:id/tasks/:taskID", taskHandler.Delete)
			protected.PUT("/projects/:id/tasks/:taskID/assignee", taskHandler.Assign)
			protected.PUT("/projects/:id/tasks/:taskID/status", taskHandler.ChangeStatus)

			// Calendar feed
			protected.GET("/projects/:id/calendar", calendarHandler.MonthFeed)
		}
	}
}
