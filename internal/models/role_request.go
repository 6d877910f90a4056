package models

import "time"

// RoleChangeRequest is a queued request to move an account to another trust
// tier. Unique per user; a re-submission overwrites the tier fields in place.
type RoleChangeRequest struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	User          *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	CurrentRole   Role      `gorm:"type:varchar(20);not null" json:"current_role"`
	RequestedRole Role      `gorm:"type:varchar(20);not null" json:"requested_role"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
