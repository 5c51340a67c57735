package models

import "time"

// Role is a locally managed role. Name is globally unique.
type Role struct {
	ID          string     `gorm:"column:id;primaryKey" json:"id"`
	Name        string     `gorm:"column:name;uniqueIndex" json:"name"`
	Description string     `gorm:"column:description" json:"description"`
	CreatedAt   time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   *time.Time `gorm:"column:updated_at" json:"updated_at,omitempty"`
}

func (Role) TableName() string { return "roles" }

// UserRole links a user (by external subject id) to a role.
type UserRole struct {
	ID        string    `gorm:"column:id;primaryKey"`
	UserID    string    `gorm:"column:user_id;index;uniqueIndex:idx_user_roles_pair"`
	RoleID    string    `gorm:"column:role_id;index;uniqueIndex:idx_user_roles_pair"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (UserRole) TableName() string { return "user_roles" }

// GroupRole grants a role to every member of a group.
type GroupRole struct {
	ID        string    `gorm:"column:id;primaryKey"`
	GroupID   string    `gorm:"column:group_id;index;uniqueIndex:idx_group_roles_pair"`
	RoleID    string    `gorm:"column:role_id;index;uniqueIndex:idx_group_roles_pair"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (GroupRole) TableName() string { return "group_roles" }
