package models

import (
	"strings"
	"time"
)

// RootPath is the path of the implicit root all top-level groups hang off.
const RootPath = "/"

// Group is a locally managed hierarchical group. Path is globally unique
// and encodes the chain of ancestor names, e.g. "/staff/editors".
type Group struct {
	ID            string     `gorm:"column:id;primaryKey" json:"id"`
	Name          string     `gorm:"column:name" json:"name"`
	Path          string     `gorm:"column:path;uniqueIndex" json:"path"`
	ParentGroupID *string    `gorm:"column:parent_group_id;index" json:"parent_group_id,omitempty"`
	CreatedAt     time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt     *time.Time `gorm:"column:updated_at" json:"updated_at,omitempty"`
}

func (Group) TableName() string { return "groups" }

// ChildPath joins a parent path and a group name into the child's path.
func ChildPath(parentPath, name string) string {
	if parentPath == "" || parentPath == RootPath {
		return RootPath + name
	}
	return parentPath + "/" + name
}

// PathDepth counts the separators in a group path. Cascade deletes order
// by descending depth so children go before their parents.
func PathDepth(path string) int {
	return strings.Count(path, "/")
}

// UserGroup links a user (by external subject id) to a group.
type UserGroup struct {
	ID        string    `gorm:"column:id;primaryKey"`
	UserID    string    `gorm:"column:user_id;index;uniqueIndex:idx_user_groups_pair"`
	GroupID   string    `gorm:"column:group_id;index;uniqueIndex:idx_user_groups_pair"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (UserGroup) TableName() string { return "user_groups" }
