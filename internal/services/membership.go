package services

import (
	"errors"

	"github.com/taskify/taskify/internal/models"
	"github.com/taskify/taskify/internal/rbac"
	"gorm.io/gorm"
)

// MembershipService is the membership store: who belongs to which project and
// with what role. It enforces data-level invariants only (uniqueness, owner
// protection); capability checks live in AccessService.
type MembershipService struct {
	db *gorm.DB
}

func NewMembershipService(db *gorm.DB) *MembershipService {
	return &MembershipService{db: db}
}

// AddMember creates a membership. Fails with ErrDuplicateMembership if the
// (project, user) pair already exists.
func (s *MembershipService) AddMember(projectID, userID uint, role rbac.Role) (*models.ProjectMember, error) {
	if _, ok := rbac.ParseRole(string(role)); !ok {
		return nil, ErrInvalidRole
	}

	member := models.ProjectMember{
		ProjectID: projectID,
		UserID:    userID,
		Role:      string(role),
	}
	if err := s.db.Create(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateMembership
		}
		return nil, err
	}
	return &member, nil
}

// GetRole resolves a user's role in a project. A missing membership is not an
// error: it returns RoleNone, which maps to the zero capability set.
func (s *MembershipService) GetRole(projectID, userID uint) (rbac.Role, error) {
	var member models.ProjectMember
	err := s.db.Where("project_id = ? AND user_id = ?", projectID, userID).First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return rbac.RoleNone, nil
		}
		return rbac.RoleNone, err
	}

	role, ok := rbac.ParseRole(member.Role)
	if !ok {
		// A row with a role outside the closed set grants nothing.
		return rbac.RoleNone, nil
	}
	return role, nil
}

// ListMembers returns all memberships of a project with user info preloaded.
func (s *MembershipService) ListMembers(projectID uint) ([]models.ProjectMember, error) {
	var members []models.ProjectMember
	if err := s.db.Where("project_id = ?", projectID).
		Preload("User").
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// RemoveMember deletes a membership. Removing a non-member is a no-op.
// Removing the owner fails with ErrCannotRemoveOwner regardless of caller.
func (s *MembershipService) RemoveMember(projectID, userID uint) error {
	var member models.ProjectMember
	err := s.db.Where("project_id = ? AND user_id = ?", projectID, userID).First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	if member.Role == string(rbac.RoleOwner) {
		return ErrCannotRemoveOwner
	}

	return s.db.Delete(&member).Error
}

// CountMembers returns the number of members in a project.
func (s *MembershipService) CountMembers(projectID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.ProjectMember{}).Where("project_id = ?", projectID).Count(&count).Error
	return count, err
}
