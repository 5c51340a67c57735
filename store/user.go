package store

import (
	"context"
	"errors"
	"time"

	"github.com/blogms/blogms/models"
	"gorm.io/gorm"
)

// UserStore provides operations for locally stored user identities.
type UserStore struct {
	DB *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore { return &UserStore{DB: db} }

// GetByUserID looks a user up by the external subject identifier.
// Returns (nil, nil) when no user exists.
func (s *UserStore) GetByUserID(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	err := s.DB.WithContext(ctx).Where("user_id = ?", userID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByUsername looks a user up by unique username.
func (s *UserStore) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := s.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// List returns all locally stored users ordered by username.
func (s *UserStore) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	return users, s.DB.WithContext(ctx).Order("username ASC").Find(&users).Error
}

// Create inserts a new user record. A missing surrogate key is generated.
func (s *UserStore) Create(ctx context.Context, user models.User) (models.User, error) {
	if user.ID == "" {
		user.ID = models.NewID()
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.LastLoginAt = &now
	if err := s.DB.WithContext(ctx).Create(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Update saves the given record and stamps UpdatedAt.
func (s *UserStore) Update(ctx context.Context, user *models.User) error {
	now := time.Now().UTC()
	user.UpdatedAt = &now
	return s.DB.WithContext(ctx).Save(user).Error
}

// Delete removes a user by external subject id. Returns false when the
// user did not exist.
func (s *UserStore) Delete(ctx context.Context, userID string) (bool, error) {
	res := s.DB.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.User{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Upsert creates or refreshes the record keyed by external subject id and
// bumps the last-login timestamp. Used on every proxy-mode authentication.
func (s *UserStore) Upsert(ctx context.Context, user models.User) (models.User, error) {
	var out models.User
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.User
		err := tx.Where("user_id = ?", user.UserID).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			user.ID = models.NewID()
			now := time.Now().UTC()
			user.CreatedAt = now
			user.LastLoginAt = &now
			if err := tx.Create(&user).Error; err != nil {
				return err
			}
			out = user
			return nil
		} else if err != nil {
			return err
		}
		existing.Username = user.Username
		existing.Email = user.Email
		existing.FirstName = user.FirstName
		existing.LastName = user.LastName
		existing.Organization = user.Organization
		now := time.Now().UTC()
		existing.UpdatedAt = &now
		existing.LastLoginAt = &now
		if err := tx.Save(&existing).Error; err != nil {
			return err
		}
		out = existing
		return nil
	})
	if err != nil {
		return models.User{}, err
	}
	return out, nil
}

// SetPasswordHash stores a bcrypt hash for a locally managed user.
func (s *UserStore) SetPasswordHash(ctx context.Context, userID, hash string) (bool, error) {
	res := s.DB.WithContext(ctx).Model(&models.User{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{"password_hash": hash, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ByUserIDs fetches users for a set of subject ids, preserving no
// particular order. Unknown ids are silently skipped.
func (s *UserStore) ByUserIDs(ctx context.Context, userIDs []string) ([]models.User, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	var users []models.User
	return users, s.DB.WithContext(ctx).Where("user_id IN ?", userIDs).Find(&users).Error
}
