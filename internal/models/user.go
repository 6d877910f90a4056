// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Role is the trust tier assigned to a user account.
type Role string

const (
	// RoleUser may browse and submit change requests for review.
	RoleUser Role = "user"
	// RoleEditor may apply dictionary changes directly and review content requests.
	RoleEditor Role = "editor"
	// RoleAdmin may additionally review role-change requests.
	RoleAdmin Role = "admin"
)

// User represents an account in the dictionary service.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:120;not null" json:"name"`
	Email     string    `gorm:"size:254;uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Role      Role      `gorm:"type:varchar(20);not null;default:'user';index" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
