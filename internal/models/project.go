package models

import (
	"time"
)

// Project is a tenant-scoped workspace grouping tasks and members.
// TeamID is the external-facing grouping key handed to clients; the numeric
// ID stays internal.
type Project struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TeamID    string    `gorm:"uniqueIndex;size:36;not null" json:"team_id"`
	Name      string    `gorm:"size:200;not null" json:"name"`
	CreatedBy uint      `gorm:"not null" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Project) TableName() string { return "projects" }
