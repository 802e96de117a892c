package services

import (
	"github.com/taskify/taskify/internal/models"
	"github.com/taskify/taskify/internal/rbac"
	"gorm.io/gorm"
)

// AccessService is the single entry point for project and membership
// mutations. Every mutating call resolves the caller's role, consults the
// capability matrix and rejects with ErrForbidden before touching data.
// Handlers and UI-side role checks are advisory; this is the enforcement
// boundary.
type AccessService struct {
	projects    *ProjectService
	memberships *MembershipService
	invitations *InvitationService
	tasks       *TaskService
}

func NewAccessService(db *gorm.DB, mail MailQueue, baseURL string) *AccessService {
	return &AccessService{
		projects:    NewProjectService(db),
		memberships: NewMembershipService(db),
		invitations: NewInvitationService(db, mail, baseURL),
		tasks:       NewTaskService(db),
	}
}

// MyRole resolves the caller's role for UI-side conditional rendering.
// RoleNone means no membership.
func (s *AccessService) MyRole(projectID, userID uint) (rbac.Role, error) {
	return s.memberships.GetRole(projectID, userID)
}

func (s *AccessService) require(projectID, userID uint, cap rbac.Capability) error {
	role, err := s.memberships.GetRole(projectID, userID)
	if err != nil {
		return err
	}
	if !rbac.HasCapability(role, cap) {
		return ErrForbidden
	}
	return nil
}

// --- Projects ---

// CreateProject creates a project owned by the caller. No capability check:
// any authenticated user may start a project.
func (s *AccessService) CreateProject(name string, ownerID uint) (*models.Project, error) {
	return s.projects.Create(name, ownerID)
}

// GetProject returns a project the caller can view.
func (s *AccessService) GetProject(projectID, callerID uint) (*models.Project, error) {
	if err := s.require(projectID, callerID, rbac.CapViewProject); err != nil {
		return nil, err
	}
	return s.projects.GetByID(projectID)
}

// ListMyProjects returns the projects the caller belongs to.
func (s *AccessService) ListMyProjects(callerID uint) ([]models.Project, error) {
	return s.projects.ListForUser(callerID)
}

// UpdateProject applies settings changes; requires the edit-settings
// capability.
func (s *AccessService) UpdateProject(projectID, callerID uint, req *UpdateProjectRequest) (*models.Project, error) {
	if err := s.require(projectID, callerID, rbac.CapEditSettings); err != nil {
		return nil, err
	}
	return s.projects.Update(projectID, req)
}

// DeleteProject cascades the project away. Only the owner may delete; the
// check is against the role directly since delete-project is an owner-only
// capability and must stay that way even if the matrix widens.
func (s *AccessService) DeleteProject(projectID, callerID uint) error {
	role, err := s.memberships.GetRole(projectID, callerID)
	if err != nil {
		return err
	}
	if role != rbac.RoleOwner || !rbac.HasCapability(role, rbac.CapDeleteProject) {
		return ErrForbidden
	}
	return s.projects.Delete(projectID)
}

// --- Membership & invitations ---

// InviteMember issues an invitation. ErrForbidden unless the caller holds
// the invite capability (owner-only in the current matrix); ErrInvalidRole
// for owner or unknown roles.
func (s *AccessService) InviteMember(projectID uint, email string, role rbac.Role, callerID uint) (*models.Invitation, error) {
	if err := s.require(projectID, callerID, rbac.CapInviteMembers); err != nil {
		return nil, err
	}
	return s.invitations.Issue(projectID, email, role, callerID)
}

// AcceptInvite consumes a token for the caller. (nil, nil) for unknown or
// expired tokens; ErrDuplicateMembership when the caller already belongs.
func (s *AccessService) AcceptInvite(token string, userID uint) (*models.ProjectMember, error) {
	return s.invitations.Accept(token, userID)
}

// DeclineInvite dismisses a pending invitation; idempotent.
func (s *AccessService) DeclineInvite(token string) error {
	return s.invitations.Decline(token)
}

// RemoveMember removes a member from a project. Requires the remove
// capability; the owner-protection rule is enforced below in the store.
func (s *AccessService) RemoveMember(projectID, userID, callerID uint) error {
	if err := s.require(projectID, callerID, rbac.CapRemoveMembers); err != nil {
		return err
	}
	return s.memberships.RemoveMember(projectID, userID)
}

// LeaveProject is the self-service removal. No capability needed — members
// may always leave — but the owner cannot abandon the project.
func (s *AccessService) LeaveProject(projectID, userID uint) error {
	return s.memberships.RemoveMember(projectID, userID)
}

// ListMembers returns project members; caller must be able to view.
func (s *AccessService) ListMembers(projectID, callerID uint) ([]models.ProjectMember, error) {
	if err := s.require(projectID, callerID, rbac.CapViewProject); err != nil {
		return nil, err
	}
	return s.memberships.ListMembers(projectID)
}

// ListPendingInvites returns a project's pending invitations; caller must be
// able to view the project.
func (s *AccessService) ListPendingInvites(projectID, callerID uint) ([]models.Invitation, error) {
	if err := s.require(projectID, callerID, rbac.CapViewProject); err != nil {
		return nil, err
	}
	return s.invitations.ListForProject(projectID)
}

// ListMyInvites returns pending invitations addressed to the caller's email.
func (s *AccessService) ListMyInvites(email string) ([]models.Invitation, error) {
	return s.invitations.ListForEmail(email)
}

// --- Tasks ---

func (s *AccessService) CreateTask(projectID, callerID uint, req *CreateTaskRequest) (*models.Task, error) {
	if err := s.require(projectID, callerID, rbac.CapCreateTasks); err != nil {
		return nil, err
	}
	return s.tasks.Create(projectID, callerID, req)
}

func (s *AccessService) ListTasks(projectID, callerID uint) ([]models.Task, error) {
	if err := s.require(projectID, callerID, rbac.CapViewProject); err != nil {
		return nil, err
	}
	return s.tasks.List(projectID)
}

func (s *AccessService) UpdateTask(projectID, taskID, callerID uint, req *UpdateTaskRequest) (*models.Task, error) {
	if err := s.require(projectID, callerID, rbac.CapEditTasks); err != nil {
		return nil, err
	}
	return s.taskInProject(projectID, taskID, func(task *models.Task) (*models.Task, error) {
		return s.tasks.Update(taskID, req)
	})
}

func (s *AccessService) DeleteTask(projectID, taskID, callerID uint) error {
	if err := s.require(projectID, callerID, rbac.CapDeleteTasks); err != nil {
		return err
	}
	_, err := s.taskInProject(projectID, taskID, func(task *models.Task) (*models.Task, error) {
		return nil, s.tasks.Delete(taskID)
	})
	return err
}

func (s *AccessService) AssignTask(projectID, taskID, callerID uint, assigneeID *uint) (*models.Task, error) {
	if err := s.require(projectID, callerID, rbac.CapAssignTasks); err != nil {
		return nil, err
	}
	return s.taskInProject(projectID, taskID, func(task *models.Task) (*models.Task, error) {
		return s.tasks.Assign(taskID, assigneeID)
	})
}

func (s *AccessService) ChangeTaskStatus(projectID, taskID, callerID uint, status string) (*models.Task, error) {
	if err := s.require(projectID, callerID, rbac.CapChangeTaskStatus); err != nil {
		return nil, err
	}
	return s.taskInProject(projectID, taskID, func(task *models.Task) (*models.Task, error) {
		return s.tasks.ChangeStatus(taskID, status)
	})
}

// taskInProject guards against cross-tenant task access: the task must belong
// to the project the capability was checked on.
func (s *AccessService) taskInProject(projectID, taskID uint, fn func(*models.Task) (*models.Task, error)) (*models.Task, error) {
	task, err := s.tasks.GetByID(taskID)
	if err != nil {
		return nil, err
	}
	if task.ProjectID != projectID {
		return nil, ErrNotFound
	}
	return fn(task)
}

// Invitations exposes the invitation service for the sweeper and tests.
func (s *AccessService) Invitations() *InvitationService {
	return s.invitations
}
