package models

import (
	"time"
)

// Invitation is a pending, tokenized, time-limited offer of membership at a
// specific role. Rows are hard-deleted on accept or decline; expiry is
// enforced lazily at read/accept time, so an expired row may linger until a
// sweep or the next touch.
type Invitation struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProjectID uint      `gorm:"index;not null" json:"project_id"`
	Project   *Project  `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Email     string    `gorm:"index;size:255;not null" json:"email"` // lowercased at issue time
	Role      string    `gorm:"size:50;not null" json:"role"`         // admin, editor, viewer (never owner)
	Token     string    `gorm:"uniqueIndex;size:64;not null" json:"-"`
	InvitedBy uint      `gorm:"not null" json:"invited_by"`
	Inviter   *User     `gorm:"foreignKey:InvitedBy" json:"inviter,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `gorm:"index;not null" json:"expires_at"`
}

func (Invitation) TableName() string { return "invitations" }

// Expired reports whether the invitation is past its expiry at the given time.
func (i *Invitation) Expired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}
