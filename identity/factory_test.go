package identity

import (
	"context"
	"testing"

	"github.com/blogms/blogms/store"
)

func TestFactoryDefaultsToProxy(t *testing.T) {
	f, _ := newTestFactory(t)
	ctx := context.Background()

	if mode := f.CurrentMode(ctx); mode != ModeProxy {
		t.Fatalf("expected proxy default, got %s", mode)
	}
	if _, ok := f.Current(ctx).(*ProxyManager); !ok {
		t.Fatalf("expected *ProxyManager, got %T", f.Current(ctx))
	}
}

func TestFactoryInitializeSwitchesCapabilities(t *testing.T) {
	f, _ := newTestFactory(t)
	ctx := context.Background()

	if err := f.Initialize(ctx, ModeKeycloak); err != nil {
		t.Fatalf("initialize keycloak: %v", err)
	}
	mgr := f.Current(ctx)
	if !mgr.SupportsUserCreation() {
		t.Fatal("direct mode must support user creation")
	}
	if mgr.SupportsDirectRoleCreation() || mgr.SupportsDirectGroupCreation() {
		t.Fatal("direct mode must not claim role/group creation")
	}

	if err := f.Initialize(ctx, ModeProxy); err != nil {
		t.Fatalf("initialize proxy: %v", err)
	}
	mgr = f.Current(ctx)
	if !mgr.SupportsDirectRoleCreation() || !mgr.SupportsDirectGroupCreation() {
		t.Fatal("proxy mode must support role and group creation")
	}
}

func TestFactoryInitializeIsIdempotent(t *testing.T) {
	f, _ := newTestFactory(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := f.Initialize(ctx, ModeKeycloak); err != nil {
			t.Fatalf("initialize attempt %d: %v", i, err)
		}
	}
	if mode := f.CurrentMode(ctx); mode != ModeKeycloak {
		t.Fatalf("expected keycloak, got %s", mode)
	}
}

func TestFactoryRejectsUnknownMode(t *testing.T) {
	f, _ := newTestFactory(t)
	if err := f.Initialize(context.Background(), Mode("ldap")); err == nil {
		t.Fatal("expected unknown mode to be rejected")
	}
	// The persisted mode is untouched by the failed switch.
	if mode := f.CurrentMode(context.Background()); mode != ModeProxy {
		t.Fatalf("expected proxy after rejected switch, got %s", mode)
	}
}

func TestFactoryConfiguredDefaultAppliesUntilPersisted(t *testing.T) {
	ts := newTestStores(t)
	proxy := NewProxyManager(ts.users, ts.roles, ts.groups)
	adapter := NewKeycloakAdapter(NewKeycloakManager(nil))
	f := NewFactory(ts.settings, proxy, adapter, ModeKeycloak)
	ctx := context.Background()

	if mode := f.CurrentMode(ctx); mode != ModeKeycloak {
		t.Fatalf("expected configured keycloak default, got %s", mode)
	}

	// Once the setting is persisted it supersedes the configured default.
	if err := ts.settings.SetBool(ctx, store.SettingUseProxy, true); err != nil {
		t.Fatalf("persist mode: %v", err)
	}
	if mode := f.CurrentMode(ctx); mode != ModeProxy {
		t.Fatalf("expected persisted proxy mode, got %s", mode)
	}
}

func TestParseMode(t *testing.T) {
	if ParseMode(true) != ModeProxy || ParseMode(false) != ModeKeycloak {
		t.Fatal("ParseMode mapping wrong")
	}
}
