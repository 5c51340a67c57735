package identity

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/blogms/blogms/store"
)

// Mode selects which identity backend serves the Manager contract.
type Mode string

const (
	// ModeProxy serves identity from local storage; the external
	// provider only authenticates.
	ModeProxy Mode = "proxy"
	// ModeKeycloak serves identity directly from the Keycloak admin
	// API, through the safe adapter.
	ModeKeycloak Mode = "keycloak"
)

// ParseMode maps a persisted use-proxy flag onto a Mode.
func ParseMode(useProxy bool) Mode {
	if useProxy {
		return ModeProxy
	}
	return ModeKeycloak
}

// Factory hands out the active identity Manager. The mode is persisted
// as an application setting so all instances agree; the built manager is
// cached and swapped atomically when the mode changes.
type Factory struct {
	settings     *store.CachedSettings
	proxy        *ProxyManager
	keycloak     *KeycloakAdapter
	defaultProxy bool

	mu      sync.Mutex
	current Manager
	mode    Mode
}

// NewFactory builds a factory whose defaultMode applies only until the
// mode setting has been persisted (normally at seed time).
func NewFactory(settings *store.CachedSettings, proxy *ProxyManager, keycloak *KeycloakAdapter, defaultMode Mode) *Factory {
	return &Factory{
		settings:     settings,
		proxy:        proxy,
		keycloak:     keycloak,
		defaultProxy: defaultMode == ModeProxy,
	}
}

// Manager returns the backend for an explicit mode without touching the
// persisted setting.
func (f *Factory) Manager(mode Mode) (Manager, error) {
	switch mode {
	case ModeProxy:
		return f.proxy, nil
	case ModeKeycloak:
		return f.keycloak, nil
	default:
		return nil, fmt.Errorf("unknown identity mode %q", mode)
	}
}

// Current returns the manager for the persisted mode, building and
// caching it on first use. The settings read is cheap (cached with a
// short TTL), so mode switches made elsewhere take effect within the
// cache window.
func (f *Factory) Current(ctx context.Context) Manager {
	mode := ParseMode(f.settings.GetBool(ctx, store.SettingUseProxy, f.defaultProxy))

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.current != nil && f.mode == mode {
		return f.current
	}
	mgr, err := f.Manager(mode)
	if err != nil {
		// Unreachable while ParseMode only emits known modes.
		log.Printf("identity: %v, falling back to proxy", err)
		mgr, mode = f.proxy, ModeProxy
	}
	f.current, f.mode = mgr, mode
	return mgr
}

// CurrentMode reports the persisted mode.
func (f *Factory) CurrentMode(ctx context.Context) Mode {
	return ParseMode(f.settings.GetBool(ctx, store.SettingUseProxy, f.defaultProxy))
}

// Initialize persists the mode and eagerly swaps the cached manager.
// Re-initializing with the active mode is a no-op beyond the write.
func (f *Factory) Initialize(ctx context.Context, mode Mode) error {
	mgr, err := f.Manager(mode)
	if err != nil {
		return err
	}
	if err := f.settings.SetBool(ctx, store.SettingUseProxy, mode == ModeProxy); err != nil {
		return err
	}

	f.mu.Lock()
	changed := f.mode != mode || f.current == nil
	f.current, f.mode = mgr, mode
	f.mu.Unlock()

	if changed {
		log.Printf("identity: mode switched to %s", mode)
	}
	return nil
}
