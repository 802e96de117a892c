package services

import (
	"errors"
	"testing"
	"time"

	"github.com/taskify/taskify/internal/models"
	"github.com/taskify/taskify/internal/rbac"
	"gorm.io/gorm"
)

func newInviteService(db *gorm.DB) *InvitationService {
	return NewInvitationService(db, nil, "https://taskify.example.com")
}

func TestIssue_RejectsOwnerRole(t *testing.T) {
	db := newTestDB(t)
	svc := newInviteService(db)
	owner := createTestUser(t, db, "")
	project := createTestProject(t, db, "Board", owner)

	for _, role := range []rbac.Role{rbac.RoleOwner, rbac.RoleNone, rbac.Role("superuser")} {
		_, err := svc.Issue(project.ID, "someone@example.com", role, owner.ID)
		if !errors.Is(err, ErrInvalidRole) {
			t.Errorf("Issue(role=%q) should fail with ErrInvalidRole, got %v", role, err)
		}
	}
}

func TestIssue_NormalizesEmailAndSetsExpiry(t *testing.T) {
	db := newTestDB(t)
	svc := newInviteService(db)
	owner := createTestUser(t, db, "")
	project := createTestProject(t, db, "Board", owner)

	before := time.Now()
	inv, err := svc.Issue(project.ID, "  Bob.Smith@Example.COM ", rbac.RoleEditor, owner.ID)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if inv.Email != "bob.smith@example.com" {
		t.Errorf("email = %q, expected lowercased/trimmed", inv.Email)
	}
	if len(inv.Token) < 24 {
		t.Errorf("token %q is too short: %d chars", inv.Token, len(inv.Token))
	}

	want := before.Add(InviteTTL)
	if inv.ExpiresAt.Before(want.Add(-time.Minute)) || inv.ExpiresAt.After(want.Add(time.Minute)) {
		t.Errorf("expiry = %v, expected ~7 days from issuance", inv.ExpiresAt)
	}
}

func TestIssue_TokensAreUnique(t *testing.T) {
	db := newTestDB(t)
	svc := newInviteService(db)
	owner := createTestUser(t, db, "")
	project := createTestProject(t, db, "Board", owner)

	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		inv, err := svc.Issue(project.ID, "a@example.com", rbac.RoleViewer, owner.ID)
		if err != nil {
			t.Fatalf("Issue() error = %v", err)
		}
		if seen[inv.Token] {
			t.Fatal("duplicate invite token generated")
		}
		seen[inv.Token] = true
	}
}

func TestAccept_RoundTrip(t *testing.T) {
	db := newTestDB(t)
	svc := newInviteService(db)
	owner := createTestUser(t, db, "")
	invitee := createTestUser(t, db, "bob@example.com")
	project := createTestProject(t, db, "Board", owner)

	inv, err := svc.Issue(project.ID, "bob@example.com", rbac.RoleEditor, owner.ID)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	member, err := svc.Accept(inv.Token, invitee.ID)
	if err != nil {
		t.Fatalf("Accept() error = %v", err)
	}
	if member == nil {
		t.Fatal("Accept() returned nil for a valid token")
	}
	if member.Role != string(rbac.RoleEditor) {
		t.Errorf("membership role = %q, expected editor", member.Role)
	}
	if member.ProjectID != project.ID || member.UserID != invitee.ID {
		t.Errorf("membership scoped to (%d, %d), expected (%d, %d)",
			member.ProjectID, member.UserID, project.ID, invitee.ID)
	}

	// Invitation row must be gone
	var count int64
	db.Model(&models.Invitation{}).Where("token = ?", inv.Token).Count(&count)
	if count != 0 {
		t.Error("invitation row should be deleted after acceptance")
	}
}

func TestAccept_TokenIsSingleUse(t *testing.T) {
	db := newTestDB(t)
	svc := newInviteService(db)
	owner := createTestUser(t, db, "")
	first := createTestUser(t, db, "")
	second := createTestUser(t, db, "")
	project := createTestProject(t, db, "Board", owner)

	inv, err := svc.Issue(project.ID, "x@example.com", rbac.RoleViewer, owner.ID)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	m1, err := svc.Accept(inv.Token, first.ID)
	if err != nil || m1 == nil {
		t.Fatalf("first Accept() = (%v, %v), expected success", m1, err)
	}

	m2, err := svc.Accept(inv.Token, second.ID)
	if err != nil {
		t.Fatalf("second Accept() error = %v", err)
	}
	if m2 != nil {
		t.Error("second Accept() should return nil: token is single-use")
	}

	var count int64
	db.Model(&models.ProjectMember{}).Where("project_id = ?", project.ID).Count(&count)
	if count != 2 {
		t.Errorf("project has %d members, expected 2 (owner + first accepter)", count)
	}
}

func TestAccept_UnknownToken(t *testing.T) {
	db := newTestDB(t)
	svc := newInviteService(db)
	user := createTestUser(t, db, "")

	member, err := svc.Accept("no-such-token", user.ID)
	if err != nil {
		t.Fatalf("Accept() error = %v, expected soft failure", err)
	}
	if member != nil {
		t.Error("Accept() with unknown token should return nil")
	}
}

func TestAccept_ExpiredToken(t *testing.T) {
	db := newTestDB(t)
	svc := newInviteService(db)
	owner := createTestUser(t, db, "")
	invitee := createTestUser(t, db, "")
	project := createTestProject(t, db, "Board", owner)

	// Insert an already-expired row directly; the row exists but is invalid.
	inv := models.Invitation{
		ProjectID: project.ID,
		Email:     "late@example.com",
		Role:      string(rbac.RoleViewer),
		Token:     "expired-token-abcdefghijklmnop",
		InvitedBy: owner.ID,
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	if err := db.Create(&inv).Error; err != nil {
		t.Fatalf("failed to insert invitation: %v", err)
	}

	member, err := svc.Accept(inv.Token, invitee.ID)
	if err != nil {
		t.Fatalf("Accept() error = %v, expected soft failure", err)
	}
	if member != nil {
		t.Error("Accept() past expiry should return nil even though the row exists")
	}
	if role := memberRole(t, db, project.ID, invitee.ID); role != rbac.RoleNone {
		t.Error("no membership should be created from an expired invitation")
	}
}

func TestAccept_ExistingMember(t *testing.T) {
	db := newTestDB(t)
	svc := newInviteService(db)
	owner := createTestUser(t, db, "")
	project := createTestProject(t, db, "Board", owner)

	inv, err := svc.Issue(project.ID, "owner-again@example.com", rbac.RoleViewer, owner.ID)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	// The owner is already a member; accepting must surface the conflict,
	// not silently create a second row.
	_, err = svc.Accept(inv.Token, owner.ID)
	if !errors.Is(err, ErrDuplicateMembership) {
		t.Errorf("Accept() for an existing member should fail with ErrDuplicateMembership, got %v", err)
	}

	var count int64
	db.Model(&models.ProjectMember{}).
		Where("project_id = ? AND user_id = ?", project.ID, owner.ID).Count(&count)
	if count != 1 {
		t.Errorf("owner has %d membership rows, expected 1", count)
	}
}

func TestDecline_RemovesInvitation(t *testing.T) {
	db := newTestDB(t)
	svc := newInviteService(db)
	owner := createTestUser(t, db, "")
	invitee := createTestUser(t, db, "")
	project := createTestProject(t, db, "Board", owner)

	inv, err := svc.Issue(project.ID, "nope@example.com", rbac.RoleEditor, owner.ID)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if err := svc.Decline(inv.Token); err != nil {
		t.Fatalf("Decline() error = %v", err)
	}

	// Declining again is a no-op
	if err := svc.Decline(inv.Token); err != nil {
		t.Errorf("second Decline() should be a no-op, got %v", err)
	}

	member, err := svc.Accept(inv.Token, invitee.ID)
	if err != nil {
		t.Fatalf("Accept() error = %v", err)
	}
	if member != nil {
		t.Error("Accept() after decline should return nil")
	}
}

func TestListForProject_ExcludesExpired(t *testing.T) {
	db := newTestDB(t)
	svc := newInviteService(db)
	owner := createTestUser(t, db, "")
	project := createTestProject(t, db, "Board", owner)

	if _, err := svc.Issue(project.ID, "live@example.com", rbac.RoleViewer, owner.ID); err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	expired := models.Invitation{
		ProjectID: project.ID,
		Email:     "dead@example.com",
		Role:      string(rbac.RoleViewer),
		Token:     "stale-token-abcdefghijklmnopqrs",
		InvitedBy: owner.ID,
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	if err := db.Create(&expired).Error; err != nil {
		t.Fatalf("failed to insert invitation: %v", err)
	}

	pending, err := svc.ListForProject(project.ID)
	if err != nil {
		t.Fatalf("ListForProject() error = %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("len(pending) = %d, expected 1", len(pending))
	}
	if pending[0].Email != "live@example.com" {
		t.Errorf("pending invite = %q, expected the unexpired one", pending[0].Email)
	}
}

func TestListForEmail_CaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	svc := newInviteService(db)
	owner := createTestUser(t, db, "")
	project := createTestProject(t, db, "Board", owner)

	if _, err := svc.Issue(project.ID, "Carol@Example.com", rbac.RoleAdmin, owner.ID); err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	invites, err := svc.ListForEmail("CAROL@example.COM")
	if err != nil {
		t.Fatalf("ListForEmail() error = %v", err)
	}
	if len(invites) != 1 {
		t.Fatalf("len(invites) = %d, expected 1", len(invites))
	}
	if invites[0].Role != string(rbac.RoleAdmin) {
		t.Errorf("invite role = %q, expected admin", invites[0].Role)
	}
}

func TestSweepExpired(t *testing.T) {
	db := newTestDB(t)
	svc := newInviteService(db)
	owner := createTestUser(t, db, "")
	project := createTestProject(t, db, "Board", owner)

	if _, err := svc.Issue(project.ID, "keep@example.com", rbac.RoleViewer, owner.ID); err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	old := models.Invitation{
		ProjectID: project.ID,
		Email:     "old@example.com",
		Role:      string(rbac.RoleViewer),
		Token:     "old-token-abcdefghijklmnopqrstu",
		InvitedBy: owner.ID,
		ExpiresAt: time.Now().Add(-48 * time.Hour),
	}
	if err := db.Create(&old).Error; err != nil {
		t.Fatalf("failed to insert invitation: %v", err)
	}

	removed, err := svc.SweepExpired(24 * time.Hour)
	if err != nil {
		t.Fatalf("SweepExpired() error = %v", err)
	}
	if removed != 1 {
		t.Errorf("removed = %d, expected 1", removed)
	}

	var count int64
	db.Model(&models.Invitation{}).Count(&count)
	if count != 1 {
		t.Errorf("remaining invitations = %d, expected 1", count)
	}
}
