package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleSeller  UserRole = "seller"
	RoleManager UserRole = "manager"
	RoleAdmin   UserRole = "admin"
)

// User mirrors the identity provider's record. The assessment service is not
// the owner of user data; rows are read-mostly and keyed by the provider id.
type User struct {
	ID          string   `json:"id" gorm:"primaryKey;size:255"`
	WorkspaceID string   `json:"workspace_id" gorm:"not null;size:255;index"`
	FullName    string   `json:"full_name" gorm:"not null;size:100"`
	Email       string   `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Role        UserRole `json:"role" gorm:"size:20;default:seller"`

	IsActive    bool       `json:"is_active" gorm:"default:true"`
	LastLoginAt *time.Time `json:"last_login_at"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (User) TableName() string {
	return "users"
}
