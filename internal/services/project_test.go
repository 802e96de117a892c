package services

import (
	"errors"
	"testing"

	"github.com/taskify/taskify/internal/models"
	"github.com/taskify/taskify/internal/rbac"
)

func TestProjectCreate_AtomicWithOwner(t *testing.T) {
	db := newTestDB(t)
	svc := NewProjectService(db)
	owner := createTestUser(t, db, "")

	project, err := svc.Create("Roadmap", owner.ID)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if project.ID == 0 {
		t.Error("project should be persisted")
	}
	if project.TeamID == "" {
		t.Error("project should get a team key")
	}

	var members []models.ProjectMember
	if err := db.Where("project_id = ?", project.ID).Find(&members).Error; err != nil {
		t.Fatalf("failed to load members: %v", err)
	}
	if len(members) != 1 {
		t.Fatalf("len(members) = %d, expected 1", len(members))
	}
	if members[0].UserID != owner.ID || members[0].Role != string(rbac.RoleOwner) {
		t.Errorf("membership = %+v, expected owner row for creator", members[0])
	}
}

func TestProjectGetByID_NotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewProjectService(db)

	_, err := svc.GetByID(9999)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID(missing) = %v, expected ErrNotFound", err)
	}
}

func TestProjectGetByTeamID(t *testing.T) {
	db := newTestDB(t)
	svc := NewProjectService(db)
	owner := createTestUser(t, db, "")

	project, err := svc.Create("Roadmap", owner.ID)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	found, err := svc.GetByTeamID(project.TeamID)
	if err != nil {
		t.Fatalf("GetByTeamID() error = %v", err)
	}
	if found.ID != project.ID {
		t.Errorf("GetByTeamID() = project %d, expected %d", found.ID, project.ID)
	}

	if _, err := svc.GetByTeamID("not-a-team"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByTeamID(unknown) = %v, expected ErrNotFound", err)
	}
}

func TestProjectListForUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewProjectService(db)
	alice := createTestUser(t, db, "")
	bob := createTestUser(t, db, "")

	p1, err := svc.Create("Alpha", alice.ID)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := svc.Create("Beta", bob.ID); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := NewMembershipService(db).AddMember(p1.ID, bob.ID, rbac.RoleViewer); err != nil {
		t.Fatalf("AddMember() error = %v", err)
	}

	mine, err := svc.ListForUser(alice.ID)
	if err != nil {
		t.Fatalf("ListForUser() error = %v", err)
	}
	if len(mine) != 1 || mine[0].ID != p1.ID {
		t.Errorf("alice's projects = %v, expected only Alpha", mine)
	}

	theirs, err := svc.ListForUser(bob.ID)
	if err != nil {
		t.Fatalf("ListForUser() error = %v", err)
	}
	if len(theirs) != 2 {
		t.Errorf("bob's projects = %d, expected 2 (owned + joined)", len(theirs))
	}
}

func TestProjectUpdate(t *testing.T) {
	db := newTestDB(t)
	svc := NewProjectService(db)
	owner := createTestUser(t, db, "")

	project, err := svc.Create("Old", owner.ID)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	updated, err := svc.Update(project.ID, &UpdateProjectRequest{Name: "New"})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Name != "New" {
		t.Errorf("name = %q, expected New", updated.Name)
	}

	// Empty update leaves the row untouched
	same, err := svc.Update(project.ID, &UpdateProjectRequest{})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if same.Name != "New" {
		t.Errorf("name after empty update = %q", same.Name)
	}
}

func TestProjectDelete_MissingProject(t *testing.T) {
	db := newTestDB(t)
	svc := NewProjectService(db)

	if err := svc.Delete(424242); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete(missing) = %v, expected ErrNotFound", err)
	}
}
