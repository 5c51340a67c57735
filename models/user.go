package models

import "time"

// User is the locally stored identity record. UserID is the external
// provider's subject identifier and is the stable key shared between
// systems; ID is the local surrogate key.
type User struct {
	ID           string     `gorm:"column:id;primaryKey" json:"id"`
	UserID       string     `gorm:"column:user_id;uniqueIndex" json:"user_id"`
	Username     string     `gorm:"column:username;uniqueIndex" json:"username"`
	Email        string     `gorm:"column:email;index" json:"email"`
	FirstName    string     `gorm:"column:first_name" json:"first_name"`
	LastName     string     `gorm:"column:last_name" json:"last_name"`
	Organization string     `gorm:"column:organization" json:"organization"`
	PasswordHash string     `gorm:"column:password_hash" json:"-"`
	Enabled      bool       `gorm:"column:enabled" json:"enabled"`
	CreatedAt    time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    *time.Time `gorm:"column:updated_at" json:"updated_at,omitempty"`
	LastLoginAt  *time.Time `gorm:"column:last_login_at" json:"last_login_at,omitempty"`
}

func (User) TableName() string { return "users" }
