package identity

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/blogms/blogms/dto"
	"github.com/blogms/blogms/models"
	"github.com/blogms/blogms/store"
)

type testStores struct {
	users    *store.UserStore
	roles    *store.RoleStore
	groups   *store.GroupStore
	settings *store.CachedSettings
}

func newTestStores(t *testing.T) testStores {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
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
	cached, err := store.NewCachedSettings(store.NewSettingsStore(db))
	if err != nil {
		t.Fatalf("settings cache: %v", err)
	}
	return testStores{
		users:    store.NewUserStore(db),
		roles:    store.NewRoleStore(db),
		groups:   store.NewGroupStore(db),
		settings: cached,
	}
}

func newTestFactory(t *testing.T) (*Factory, testStores) {
	t.Helper()
	ts := newTestStores(t)
	proxy := NewProxyManager(ts.users, ts.roles, ts.groups)
	// The adapter is wired against an unreachable server; tests only use
	// operations that never leave the process.
	adapter := NewKeycloakAdapter(NewKeycloakManager(nil))
	return NewFactory(ts.settings, proxy, adapter, ModeProxy), ts
}

func mustCreateRole(t *testing.T, m Manager, name string) string {
	t.Helper()
	role, err := m.CreateRole(context.Background(), dto.Role{Name: name})
	if err != nil {
		t.Fatalf("create role %s: %v", name, err)
	}
	return role.ID
}
