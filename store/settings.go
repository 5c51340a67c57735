package store

import (
	"context"
	"errors"
	"strconv"
	"time"

	"gorm.io/gorm"
)

// Setting keys used by the application.
const (
	// SettingUseProxy selects the proxy (local) identity manager when
	// "true"; the direct Keycloak manager otherwise.
	SettingUseProxy = "identity.use_proxy"
)

// AppSetting is a persisted key/value application setting.
type AppSetting struct {
	Key         string    `gorm:"column:key;primaryKey" json:"key"`
	Value       string    `gorm:"column:value" json:"value"`
	Description string    `gorm:"column:description" json:"description,omitempty"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (AppSetting) TableName() string { return "app_settings" }

// SettingsStore manages application settings in the database.
type SettingsStore struct {
	db *gorm.DB
}

// NewSettingsStore creates a new SettingsStore.
func NewSettingsStore(db *gorm.DB) *SettingsStore {
	return &SettingsStore{db: db}
}

// Get retrieves a single setting by key. Returns (nil, nil) when absent.
func (s *SettingsStore) Get(ctx context.Context, key string) (*AppSetting, error) {
	var setting AppSetting
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

// GetValue retrieves just the value, or defaultValue when absent.
func (s *SettingsStore) GetValue(ctx context.Context, key, defaultValue string) (string, error) {
	setting, err := s.Get(ctx, key)
	if err != nil {
		return defaultValue, err
	}
	if setting == nil || setting.Value == "" {
		return defaultValue, nil
	}
	return setting.Value, nil
}

// GetBool retrieves a boolean setting, or defaultValue when absent or
// unreadable.
func (s *SettingsStore) GetBool(ctx context.Context, key string, defaultValue bool) bool {
	value, err := s.GetValue(ctx, key, "")
	if err != nil || value == "" {
		return defaultValue
	}
	return value == "true" || value == "1"
}

// GetInt retrieves an integer setting.
func (s *SettingsStore) GetInt(ctx context.Context, key string, defaultValue int) int {
	value, err := s.GetValue(ctx, key, "")
	if err != nil || value == "" {
		return defaultValue
	}
	intVal, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return intVal
}

// Set creates or updates a setting.
func (s *SettingsStore) Set(ctx context.Context, key, value string) error {
	return s.setWithDescription(ctx, key, value, "")
}

// SetBool stores a boolean setting as "true"/"false".
func (s *SettingsStore) SetBool(ctx context.Context, key string, value bool) error {
	return s.Set(ctx, key, strconv.FormatBool(value))
}

// SetWithDescription creates or updates a setting and its description.
func (s *SettingsStore) SetWithDescription(ctx context.Context, key, value, description string) error {
	return s.setWithDescription(ctx, key, value, description)
}

func (s *SettingsStore) setWithDescription(ctx context.Context, key, value, description string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()
		var existing AppSetting
		err := tx.Where("key = ?", key).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(&AppSetting{
				Key:         key,
				Value:       value,
				Description: description,
				CreatedAt:   now,
				UpdatedAt:   now,
			}).Error
		} else if err != nil {
			return err
		}
		updates := map[string]interface{}{"value": value, "updated_at": now}
		if description != "" {
			updates["description"] = description
		}
		return tx.Model(&AppSetting{}).Where("key = ?", key).Updates(updates).Error
	})
}

// Delete removes a setting.
func (s *SettingsStore) Delete(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Delete(&AppSetting{}, "key = ?", key).Error
}

// ListAll retrieves all settings ordered by key.
func (s *SettingsStore) ListAll(ctx context.Context) ([]AppSetting, error) {
	var settings []AppSetting
	if err := s.db.WithContext(ctx).Order("key").Find(&settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}
