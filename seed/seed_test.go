package seed

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/blogms/blogms/models"
	"github.com/blogms/blogms/permission"
	"github.com/blogms/blogms/store"
)

func newTestStores(t *testing.T) (*store.RoleStore, *store.GroupStore, *store.SettingsStore) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&models.Role{},
		&models.UserRole{},
		&models.Group{},
		&models.UserGroup{},
		&models.GroupRole{},
		&store.AppSetting{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return store.NewRoleStore(db), store.NewGroupStore(db), store.NewSettingsStore(db)
}

func TestRunSeedsDefaults(t *testing.T) {
	roles, groups, settings := newTestStores(t)
	ctx := context.Background()

	if err := Run(ctx, roles, groups, settings, true); err != nil {
		t.Fatalf("seed: %v", err)
	}

	admin, err := roles.GetByName(ctx, permission.RoleAdmin)
	if err != nil || admin == nil {
		t.Fatalf("expected Admin role, got %v", err)
	}
	admins, err := groups.GetByPath(ctx, AdminsGroupPath)
	if err != nil || admins == nil {
		t.Fatalf("expected %s group, got %v", AdminsGroupPath, err)
	}
	granted, err := roles.ByGroupPath(ctx, AdminsGroupPath)
	if err != nil || len(granted) != 1 || granted[0].Name != permission.RoleAdmin {
		t.Fatalf("expected Admin granted to %s, got %+v (%v)", AdminsGroupPath, granted, err)
	}
	if got, err := settings.GetValue(ctx, store.SettingUseProxy, ""); err != nil || got != "true" {
		t.Fatalf("expected mode setting true, got %q (%v)", got, err)
	}
}

func TestRunSeedsConfiguredModeDefault(t *testing.T) {
	roles, groups, settings := newTestStores(t)
	ctx := context.Background()

	if err := Run(ctx, roles, groups, settings, false); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if got, err := settings.GetValue(ctx, store.SettingUseProxy, ""); err != nil || got != "false" {
		t.Fatalf("expected mode setting false, got %q (%v)", got, err)
	}

	// Re-running with a different default does not overwrite the
	// persisted setting.
	if err := Run(ctx, roles, groups, settings, true); err != nil {
		t.Fatalf("re-seed: %v", err)
	}
	if got, err := settings.GetValue(ctx, store.SettingUseProxy, ""); err != nil || got != "false" {
		t.Fatalf("expected persisted setting to survive re-seed, got %q (%v)", got, err)
	}
}
