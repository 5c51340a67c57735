package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/blogms/blogms/models"
	"gorm.io/gorm"
)

// ErrPathExists is returned when creating a group whose computed path
// collides with an existing one. Paths are globally unique.
var ErrPathExists = errors.New("group path already exists")

// GroupStore provides operations for locally managed hierarchical groups
// and their user associations.
type GroupStore struct {
	DB *gorm.DB
}

func NewGroupStore(db *gorm.DB) *GroupStore { return &GroupStore{DB: db} }

// Create inserts a new group. The caller supplies the already-computed
// path; a colliding path is rejected with ErrPathExists.
func (s *GroupStore) Create(ctx context.Context, group models.Group) (models.Group, error) {
	group.ID = models.NewID()
	group.CreatedAt = time.Now().UTC()
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Group{}).Where("path = ?", group.Path).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: %s", ErrPathExists, group.Path)
		}
		return tx.Create(&group).Error
	})
	if err != nil {
		return models.Group{}, err
	}
	return group, nil
}

// GetByID returns (nil, nil) when the group does not exist.
func (s *GroupStore) GetByID(ctx context.Context, id string) (*models.Group, error) {
	var group models.Group
	err := s.DB.WithContext(ctx).Where("id = ?", id).First(&group).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &group, nil
}

// GetByPath returns (nil, nil) when no group has the given path.
func (s *GroupStore) GetByPath(ctx context.Context, path string) (*models.Group, error) {
	var group models.Group
	err := s.DB.WithContext(ctx).Where("path = ?", path).First(&group).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &group, nil
}

// List returns every group ordered by path.
func (s *GroupStore) List(ctx context.Context) ([]models.Group, error) {
	var groups []models.Group
	return groups, s.DB.WithContext(ctx).Order("path ASC").Find(&groups).Error
}

// ByUserID returns the groups a subject id belongs to.
func (s *GroupStore) ByUserID(ctx context.Context, userID string) ([]models.Group, error) {
	var groups []models.Group
	err := s.DB.WithContext(ctx).Table("groups g").Select("g.*").
		Joins("JOIN user_groups ug ON ug.group_id = g.id").
		Where("ug.user_id = ?", userID).
		Order("g.path ASC").Scan(&groups).Error
	return groups, err
}

// UserIDsInGroup returns the subject ids belonging to the group.
func (s *GroupStore) UserIDsInGroup(ctx context.Context, groupID string) ([]string, error) {
	var ids []string
	err := s.DB.WithContext(ctx).Table("user_groups").Select("user_id").
		Where("group_id = ?", groupID).Scan(&ids).Error
	return ids, err
}

// Update saves the group and stamps UpdatedAt.
func (s *GroupStore) Update(ctx context.Context, group *models.Group) error {
	now := time.Now().UTC()
	group.UpdatedAt = &now
	return s.DB.WithContext(ctx).Save(group).Error
}

// Delete removes the group and its whole descendant subtree together with
// every user-group association in the subtree. The subtree is collected
// from one flat query (adjacency by parent id, no per-node queries) and
// groups are deleted deepest path first to satisfy parent references.
func (s *GroupStore) Delete(ctx context.Context, id string) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var all []models.Group
		if err := tx.Find(&all).Error; err != nil {
			return err
		}
		children := make(map[string][]models.Group, len(all))
		var root *models.Group
		for i := range all {
			g := all[i]
			if g.ID == id {
				root = &all[i]
			}
			if g.ParentGroupID != nil {
				children[*g.ParentGroupID] = append(children[*g.ParentGroupID], g)
			}
		}
		if root == nil {
			return nil
		}

		subtree := []models.Group{*root}
		for i := 0; i < len(subtree); i++ {
			subtree = append(subtree, children[subtree[i].ID]...)
		}

		ids := make([]string, len(subtree))
		for i, g := range subtree {
			ids[i] = g.ID
		}
		if err := tx.Where("group_id IN ?", ids).Delete(&models.UserGroup{}).Error; err != nil {
			return err
		}

		sort.Slice(subtree, func(i, j int) bool {
			return models.PathDepth(subtree[i].Path) > models.PathDepth(subtree[j].Path)
		})
		for _, g := range subtree {
			if err := tx.Where("id = ?", g.ID).Delete(&models.Group{}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// AddUserToGroup associates a subject id with a group. Idempotent.
func (s *GroupStore) AddUserToGroup(ctx context.Context, userID, groupID string) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.UserGroup{}).
			Where("user_id = ? AND group_id = ?", userID, groupID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		ug := models.UserGroup{ID: models.NewID(), UserID: userID, GroupID: groupID, CreatedAt: time.Now().UTC()}
		return tx.Create(&ug).Error
	})
}

// RemoveUserFromGroup drops the association; missing pairs are a no-op.
func (s *GroupStore) RemoveUserFromGroup(ctx context.Context, userID, groupID string) error {
	return s.DB.WithContext(ctx).
		Where("user_id = ? AND group_id = ?", userID, groupID).
		Delete(&models.UserGroup{}).Error
}
