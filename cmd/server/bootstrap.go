package main

import (
	"github.com/robfig/cron/v3"
	"github.com/taskify/taskify/internal/config"
	"github.com/taskify/taskify/internal/models"
	"github.com/taskify/taskify/internal/services"
	"github.com/taskify/taskify/internal/utils"
	"github.com/taskify/taskify/pkg/logger"
)

// appServices holds the initialized services needed by the route layer.
type appServices struct {
	access     *services.AccessService
	auth       *services.AuthService
	calendar   *services.CalendarService
	mailQueue  services.MailQueue
	mailWorker *services.MailWorker
	sweeper    *cron.Cron
}

// bootstrap initializes database, mail delivery and the service graph.
func bootstrap(cfg *config.Config) *appServices {
	utils.SetJWTSecret(cfg.JWT.Secret)

	if err := models.InitDB(&cfg.Database); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	if err := models.AutoMigrate(); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	db := models.GetDB()

	emailService := services.NewEmailService(&cfg.Email)
	mailQueue := services.NewMailQueue(cfg, emailService)

	var mailWorker *services.MailWorker
	if mailQueue.IsAsync() {
		mailWorker = services.NewMailWorker(&cfg.Redis, emailService)
		if err := mailWorker.Start(); err != nil {
			logger.Errorf("Failed to start mail worker: %v", err)
			mailWorker = nil
		}
	}

	access := services.NewAccessService(db, mailQueue, cfg.App.BaseURL)
	sweeper := services.StartInviteSweeper(access.Invitations())

	return &appServices{
		access:     access,
		auth:       services.NewAuthService(db, &cfg.JWT),
		calendar:   services.NewCalendarService(services.NewTaskService(db), cfg.App.Region),
		mailQueue:  mailQueue,
		mailWorker: mailWorker,
		sweeper:    sweeper,
	}
}

func (s *appServices) shutdown() {
	if s.sweeper != nil {
		s.sweeper.Stop()
	}
	if s.mailWorker != nil {
		s.mailWorker.Stop()
	}
	if s.mailQueue != nil {
		s.mailQueue.Close()
	}
}
