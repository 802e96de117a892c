package services

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/taskify/taskify/pkg/logger"
)

// sweepGrace keeps expired rows around for a day so pending-invite UIs that
// just refreshed don't see tokens vanish mid-render. Expiry itself is
// enforced at read/accept time; the sweep is storage hygiene only.
const sweepGrace = 24 * time.Hour

// StartInviteSweeper schedules a nightly cleanup of long-expired invitation
// rows. Returns the scheduler so the caller can Stop() it on shutdown.
func StartInviteSweeper(invitations *InvitationService) *cron.Cron {
	c := cron.New()

	_, err := c.AddFunc("0 3 * * *", func() {
		removed, err := invitations.SweepExpired(sweepGrace)
		if err != nil {
			logger.Errorf("[InviteSweeper] Sweep failed: %v", err)
			return
		}
		if removed > 0 {
			logger.Infof("[InviteSweeper] Removed %d expired invitations", removed)
		}
	})
	if err != nil {
		logger.Errorf("[InviteSweeper] Failed to schedule sweep: %v", err)
		return c
	}

	c.Start()
	logger.Infof("[InviteSweeper] Scheduled daily at 03:00")
	return c
}
