package services

import (
	"fmt"
	"testing"

	"github.com/taskify/taskify/internal/models"
	"github.com/taskify/taskify/internal/rbac"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory sqlite database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.ProjectMember{},
		&models.Invitation{},
		&models.Task{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func newTestAccess(t *testing.T) (*AccessService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewAccessService(db, nil, "http://localhost:8080"), db
}

var testUserSeq int

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	testUserSeq++
	if email == "" {
		email = fmt.Sprintf("user%d@example.com", testUserSeq)
	}
	user := models.User{Email: email, Name: fmt.Sprintf("User %d", testUserSeq), IsActive: true}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return &user
}

// createTestProject makes a project with its owner membership through the
// project service, returning both.
func createTestProject(t *testing.T, db *gorm.DB, name string, owner *models.User) *models.Project {
	t.Helper()
	project, err := NewProjectService(db).Create(name, owner.ID)
	if err != nil {
		t.Fatalf("failed to create test project: %v", err)
	}
	return project
}

func memberRole(t *testing.T, db *gorm.DB, projectID, userID uint) rbac.Role {
	t.Helper()
	role, err := NewMembershipService(db).GetRole(projectID, userID)
	if err != nil {
		t.Fatalf("GetRole() error = %v", err)
	}
	return role
}
