package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/taskify/taskify/internal/models"
	"github.com/taskify/taskify/internal/rbac"
	"github.com/taskify/taskify/internal/utils"
	"github.com/taskify/taskify/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InviteTTL is how long an invitation stays acceptable after issuance.
const InviteTTL = 7 * 24 * time.Hour

// errInviteMiss is internal to Accept: unknown or expired tokens soft-fail
// as (nil, nil) rather than surfacing an error.
var errInviteMiss = errors.New("invite miss")

// InvitationService manages the invitation lifecycle: issue, accept, decline,
// pending views and the optional expiry sweep. Acceptance is the only path
// that turns an invitation into a membership, and it does so atomically.
type InvitationService struct {
	db      *gorm.DB
	mail    MailQueue
	baseURL string
}

// NewInvitationService creates the service. mail may be nil (no email sent,
// e.g. in tests); baseURL is used to build accept links.
func NewInvitationService(db *gorm.DB, mail MailQueue, baseURL string) *InvitationService {
	return &InvitationService{db: db, mail: mail, baseURL: baseURL}
}

// AcceptURL builds the accept link embedded in invitation mail.
func (s *InvitationService) AcceptURL(token string) string {
	return fmt.Sprintf("%s/api/accept-invite?token=%s", strings.TrimSuffix(s.baseURL, "/"), token)
}

// Issue creates an invitation for email at the given role and dispatches the
// invite mail. The mail is fire-and-forget: a delivery failure never rolls
// back or invalidates the invitation, which stays acceptable via its URL.
func (s *InvitationService) Issue(projectID uint, email string, role rbac.Role, invitedBy uint) (*models.Invitation, error) {
	if !rbac.InvitableRole(role) {
		return nil, ErrInvalidRole
	}

	token, err := utils.GenerateInviteToken()
	if err != nil {
		return nil, err
	}

	inv := models.Invitation{
		ProjectID: projectID,
		Email:     strings.ToLower(strings.TrimSpace(email)),
		Role:      string(role),
		Token:     token,
		InvitedBy: invitedBy,
		ExpiresAt: time.Now().Add(InviteTTL),
	}
	if err := s.db.Create(&inv).Error; err != nil {
		return nil, err
	}

	s.dispatchMail(&inv)

	return &inv, nil
}

func (s *InvitationService) dispatchMail(inv *models.Invitation) {
	if s.mail == nil {
		return
	}

	var project models.Project
	projectName := "a project"
	if err := s.db.First(&project, inv.ProjectID).Error; err == nil {
		projectName = project.Name
	}

	var inviter models.User
	inviterName := "A project owner"
	if err := s.db.First(&inviter, inv.InvitedBy).Error; err == nil && inviter.Name != "" {
		inviterName = inviter.Name
	}

	mail := &InviteMail{
		To:          inv.Email,
		ProjectName: projectName,
		InviterName: inviterName,
		Role:        inv.Role,
		AcceptURL:   s.AcceptURL(inv.Token),
	}
	if err := s.mail.Enqueue(mail); err != nil {
		logger.Warn().Err(err).Str("email", inv.Email).Msg("failed to enqueue invite mail")
	}
}

// Accept consumes an invitation token for userID. Returns (nil, nil) when the
// token is unknown or expired; ErrDuplicateMembership when the user already
// belongs to the project. On success the membership is created and the
// invitation row deleted in one transaction, so the token is single-use even
// under concurrent accepts: the row lock (or sqlite's writer serialization)
// makes the loser observe either the missing row or the duplicate member.
func (s *InvitationService) Accept(token string, userID uint) (*models.ProjectMember, error) {
	var member *models.ProjectMember

	err := s.db.Transaction(func(tx *gorm.DB) error {
		q := tx.Where("token = ?", token)
		if tx.Dialector.Name() != "sqlite" {
			// sqlite has no FOR UPDATE; its single-writer model already
			// serializes the read-check-act sequence.
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var inv models.Invitation
		if err := q.First(&inv).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errInviteMiss
			}
			return err
		}

		if inv.Expired(time.Now()) {
			return errInviteMiss
		}

		m := models.ProjectMember{
			ProjectID: inv.ProjectID,
			UserID:    userID,
			Role:      inv.Role,
		}
		if err := tx.Create(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateMembership
			}
			return err
		}

		if err := tx.Delete(&models.Invitation{}, inv.ID).Error; err != nil {
			return err
		}

		member = &m
		return nil
	})

	if errors.Is(err, errInviteMiss) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return member, nil
}

// Decline deletes the invitation for the given token without creating a
// membership. Declining an unknown token is a no-op.
func (s *InvitationService) Decline(token string) error {
	return s.db.Where("token = ?", token).Delete(&models.Invitation{}).Error
}

// ListForProject returns the pending (non-expired) invitations of a project.
// Expired rows may still exist but are never shown as pending.
func (s *InvitationService) ListForProject(projectID uint) ([]models.Invitation, error) {
	var invites []models.Invitation
	err := s.db.Where("project_id = ? AND expires_at > ?", projectID, time.Now()).
		Preload("Inviter").
		Order("created_at DESC").
		Find(&invites).Error
	if err != nil {
		return nil, err
	}
	return invites, nil
}

// ListForEmail returns the pending invitations addressed to an email,
// case-insensitively.
func (s *InvitationService) ListForEmail(email string) ([]models.Invitation, error) {
	var invites []models.Invitation
	err := s.db.Where("email = ? AND expires_at > ?", strings.ToLower(strings.TrimSpace(email)), time.Now()).
		Preload("Project").
		Preload("Inviter").
		Order("created_at DESC").
		Find(&invites).Error
	if err != nil {
		return nil, err
	}
	return invites, nil
}

// SweepExpired deletes invitation rows whose expiry passed more than grace
// ago. Pure hygiene: correctness never depends on this running, since expiry
// is enforced at read and accept time.
func (s *InvitationService) SweepExpired(grace time.Duration) (int64, error) {
	cutoff := time.Now().Add(-grace)
	result := s.db.Where("expires_at < ?", cutoff).Delete(&models.Invitation{})
	return result.RowsAffected, result.Error
}
