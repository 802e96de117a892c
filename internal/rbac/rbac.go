package rbac

// Role is the closed set of project roles. Raw strings are validated at the
// system boundary with ParseRole and never cast downstream.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"

	// RoleNone marks the absence of a membership. It maps to the zero
	// capability set.
	RoleNone Role = ""
)

// Capability is one atomic permission derived from a role.
type Capability string

const (
	CapInviteMembers    Capability = "invite_members"
	CapRemoveMembers    Capability = "remove_members"
	CapDeleteProject    Capability = "delete_project"
	CapEditSettings     Capability = "edit_settings"
	CapCreateTasks      Capability = "create_tasks"
	CapEditTasks        Capability = "edit_tasks"
	CapDeleteTasks      Capability = "delete_tasks"
	CapAssignTasks      Capability = "assign_tasks"
	CapChangeTaskStatus Capability = "change_task_status"
	CapViewProject      Capability = "view_project"
)

// CapabilitySet enumerates what a role may do. Derived, never stored.
type CapabilitySet struct {
	InviteMembers    bool `json:"invite_members"`
	RemoveMembers    bool `json:"remove_members"`
	DeleteProject    bool `json:"delete_project"`
	EditSettings     bool `json:"edit_settings"`
	CreateTasks      bool `json:"create_tasks"`
	EditTasks        bool `json:"edit_tasks"`
	DeleteTasks      bool `json:"delete_tasks"`
	AssignTasks      bool `json:"assign_tasks"`
	ChangeTaskStatus bool `json:"change_task_status"`
	ViewProject      bool `json:"view_project"`
}

// ParseRole validates a raw role string. ok is false for anything outside the
// closed set, including "owner"-casing variants and the empty string.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleOwner, RoleAdmin, RoleEditor, RoleViewer:
		return Role(s), true
	}
	return RoleNone, false
}

// InvitableRole reports whether a role may be granted through an invitation.
// Owner is only ever created together with its project.
func InvitableRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleEditor, RoleViewer:
		return true
	}
	return false
}

// CapabilitiesOf maps a role to its capability set. Pure and total: unknown
// or empty roles yield the zero set. This table is the single source of truth
// for every authorization decision; nothing else may compare roles.
func CapabilitiesOf(r Role) CapabilitySet {
	switch r {
	case RoleOwner:
		return CapabilitySet{
			InviteMembers:    true,
			RemoveMembers:    true,
			DeleteProject:    true,
			EditSettings:     true,
			CreateTasks:      true,
			EditTasks:        true,
			DeleteTasks:      true,
			AssignTasks:      true,
			ChangeTaskStatus: true,
			ViewProject:      true,
		}
	case RoleAdmin, RoleEditor:
		// Admin and editor currently share a capability row. Kept distinct
		// as roles so they can diverge without a migration.
		return CapabilitySet{
			CreateTasks:      true,
			EditTasks:        true,
			DeleteTasks:      true,
			AssignTasks:      true,
			ChangeTaskStatus: true,
			ViewProject:      true,
		}
	case RoleViewer:
		return CapabilitySet{
			ViewProject: true,
		}
	}
	return CapabilitySet{}
}

// HasCapability projects a single capability out of the role's set.
func HasCapability(r Role, cap Capability) bool {
	set := CapabilitiesOf(r)
	switch cap {
	case CapInviteMembers:
		return set.InviteMembers
	case CapRemoveMembers:
		return set.RemoveMembers
	case CapDeleteProject:
		return set.DeleteProject
	case CapEditSettings:
		return set.EditSettings
	case CapCreateTasks:
		return set.CreateTasks
	case CapEditTasks:
		return set.EditTasks
	case CapDeleteTasks:
		return set.DeleteTasks
	case CapAssignTasks:
		return set.AssignTasks
	case CapChangeTaskStatus:
		return set.ChangeTaskStatus
	case CapViewProject:
		return set.ViewProject
	}
	return false
}
