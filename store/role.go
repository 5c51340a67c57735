package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/blogms/blogms/models"
	"gorm.io/gorm"
)

// RoleStore provides operations for locally managed roles and their
// user and group associations.
type RoleStore struct {
	DB *gorm.DB
}

func NewRoleStore(db *gorm.DB) *RoleStore { return &RoleStore{DB: db} }

// Create inserts a new role. Role names are globally unique.
func (s *RoleStore) Create(ctx context.Context, role models.Role) (models.Role, error) {
	if strings.TrimSpace(role.Name) == "" {
		return models.Role{}, gorm.ErrInvalidData
	}
	role.ID = models.NewID()
	role.CreatedAt = time.Now().UTC()
	if err := s.DB.WithContext(ctx).Create(&role).Error; err != nil {
		return models.Role{}, err
	}
	return role, nil
}

// GetByID returns (nil, nil) when the role does not exist.
func (s *RoleStore) GetByID(ctx context.Context, id string) (*models.Role, error) {
	var role models.Role
	err := s.DB.WithContext(ctx).Where("id = ?", id).First(&role).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &role, nil
}

// GetByName returns (nil, nil) when the role does not exist.
func (s *RoleStore) GetByName(ctx context.Context, name string) (*models.Role, error) {
	var role models.Role
	err := s.DB.WithContext(ctx).Where("name = ?", name).First(&role).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &role, nil
}

// List returns all roles ordered by name.
func (s *RoleStore) List(ctx context.Context) ([]models.Role, error) {
	var roles []models.Role
	return roles, s.DB.WithContext(ctx).Order("name ASC").Find(&roles).Error
}

// Update saves the role and stamps UpdatedAt.
func (s *RoleStore) Update(ctx context.Context, role *models.Role) error {
	now := time.Now().UTC()
	role.UpdatedAt = &now
	return s.DB.WithContext(ctx).Save(role).Error
}

// Delete removes a role together with its user and group associations.
func (s *RoleStore) Delete(ctx context.Context, id string) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role_id = ?", id).Delete(&models.UserRole{}).Error; err != nil {
			return err
		}
		if err := tx.Where("role_id = ?", id).Delete(&models.GroupRole{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Role{}).Error
	})
}

// ByUserID returns the roles directly assigned to a subject id.
func (s *RoleStore) ByUserID(ctx context.Context, userID string) ([]models.Role, error) {
	var roles []models.Role
	err := s.DB.WithContext(ctx).Table("roles r").Select("r.*").
		Joins("JOIN user_roles ur ON ur.role_id = r.id").
		Where("ur.user_id = ?", userID).
		Order("r.name ASC").Scan(&roles).Error
	return roles, err
}

// ByGroupPath returns the roles granted to the group identified by path.
// Group-role inheritance is keyed by path, not group id.
func (s *RoleStore) ByGroupPath(ctx context.Context, groupPath string) ([]models.Role, error) {
	var roles []models.Role
	err := s.DB.WithContext(ctx).Table("roles r").Select("r.*").
		Joins("JOIN group_roles gr ON gr.role_id = r.id").
		Joins("JOIN groups g ON g.id = gr.group_id").
		Where("g.path = ?", groupPath).
		Order("r.name ASC").Scan(&roles).Error
	return roles, err
}

// UserIDsInRole returns the subject ids holding the role directly.
func (s *RoleStore) UserIDsInRole(ctx context.Context, roleID string) ([]string, error) {
	var ids []string
	err := s.DB.WithContext(ctx).Table("user_roles").Select("user_id").
		Where("role_id = ?", roleID).Scan(&ids).Error
	return ids, err
}

// AddUserToRole assigns a role to a subject id. Idempotent: a duplicate
// pair leaves exactly one association row.
func (s *RoleStore) AddUserToRole(ctx context.Context, userID, roleID string) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.UserRole{}).
			Where("user_id = ? AND role_id = ?", userID, roleID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		ur := models.UserRole{ID: models.NewID(), UserID: userID, RoleID: roleID, CreatedAt: time.Now().UTC()}
		return tx.Create(&ur).Error
	})
}

// RemoveUserFromRole drops the association; missing pairs are a no-op.
func (s *RoleStore) RemoveUserFromRole(ctx context.Context, userID, roleID string) error {
	return s.DB.WithContext(ctx).
		Where("user_id = ? AND role_id = ?", userID, roleID).
		Delete(&models.UserRole{}).Error
}

// AssignRoleToGroup grants a role to all members of a group. Idempotent.
func (s *RoleStore) AssignRoleToGroup(ctx context.Context, roleID, groupID string) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.GroupRole{}).
			Where("group_id = ? AND role_id = ?", groupID, roleID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		gr := models.GroupRole{ID: models.NewID(), GroupID: groupID, RoleID: roleID, CreatedAt: time.Now().UTC()}
		return tx.Create(&gr).Error
	})
}

// RemoveRoleFromGroup drops the association; missing pairs are a no-op.
func (s *RoleStore) RemoveRoleFromGroup(ctx context.Context, roleID, groupID string) error {
	return s.DB.WithContext(ctx).
		Where("group_id = ? AND role_id = ?", groupID, roleID).
		Delete(&models.GroupRole{}).Error
}
