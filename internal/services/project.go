package services

import (
	"errors"

	"github.com/google/uuid"
	"github.com/taskify/taskify/internal/models"
	"github.com/taskify/taskify/internal/rbac"
	"gorm.io/gorm"
)

// ProjectService owns project rows and the two operations that must be
// transactional: creation (project + owner membership) and deletion (full
// cascade over tasks, memberships and invitations).
type ProjectService struct {
	db *gorm.DB
}

func NewProjectService(db *gorm.DB) *ProjectService {
	return &ProjectService{db: db}
}

type CreateProjectRequest struct {
	Name string `json:"name" binding:"required"`
}

type UpdateProjectRequest struct {
	Name string `json:"name"`
}

// Create makes a project together with its owner membership in one
// transaction. A project never exists without exactly one owner.
func (s *ProjectService) Create(name string, ownerID uint) (*models.Project, error) {
	project := models.Project{
		TeamID:    uuid.NewString(),
		Name:      name,
		CreatedBy: ownerID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&project).Error; err != nil {
			return err
		}
		owner := models.ProjectMember{
			ProjectID: project.ID,
			UserID:    ownerID,
			Role:      string(rbac.RoleOwner),
		}
		return tx.Create(&owner).Error
	})
	if err != nil {
		return nil, err
	}

	return &project, nil
}

// GetByID returns a project by ID, or ErrNotFound.
func (s *ProjectService) GetByID(id uint) (*models.Project, error) {
	var project models.Project
	if err := s.db.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &project, nil
}

// GetByTeamID returns a project by its external team key.
func (s *ProjectService) GetByTeamID(teamID string) (*models.Project, error) {
	var project models.Project
	if err := s.db.Where("team_id = ?", teamID).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &project, nil
}

// ListForUser returns all projects the user is a member of.
func (s *ProjectService) ListForUser(userID uint) ([]models.Project, error) {
	var projects []models.Project
	err := s.db.
		Joins("JOIN project_members ON project_members.project_id = projects.id").
		Where("project_members.user_id = ?", userID).
		Order("projects.created_at DESC").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

// Update applies settings changes to a project.
func (s *ProjectService) Update(id uint, req *UpdateProjectRequest) (*models.Project, error) {
	project, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if len(updates) == 0 {
		return project, nil
	}

	if err := s.db.Model(project).Updates(updates).Error; err != nil {
		return nil, err
	}
	return project, nil
}

// Delete removes a project and everything scoped to it — tasks, memberships,
// invitations — in a single transaction. A partial cascade is a correctness
// bug, so any failure rolls back the whole deletion.
func (s *ProjectService) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("project_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.Invitation{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectMember{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.Project{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
