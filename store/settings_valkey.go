package store

import (
	"context"
	"time"

	valkey "github.com/valkey-io/valkey-go"
)

// valkeyCache is a shared settings-cache backend for deployments running
// more than one instance: a mode switch on one node becomes visible to
// the others within the TTL without waiting for their local caches.
type valkeyCache struct {
	client valkey.Client
	prefix string
	ttl    time.Duration
}

// NewValkeySettingsCache connects to a Valkey/Redis-compatible server and
// returns a cache backend for NewCachedSettingsWith.
// addr example: "127.0.0.1:6379"; prefix namespaces the keys.
func NewValkeySettingsCache(addr, prefix string) (settingsCache, error) {
	cli, err := valkey.NewClient(valkey.ClientOption{InitAddress: []string{addr}})
	if err != nil {
		return nil, err
	}
	if prefix == "" {
		prefix = "blogms:settings:"
	}
	return &valkeyCache{client: cli, prefix: prefix, ttl: settingsCacheTTL}, nil
}

func (v *valkeyCache) key(k string) string { return v.prefix + k }

func (v *valkeyCache) get(ctx context.Context, key string) (string, bool) {
	res, err := v.client.Do(ctx, v.client.B().Get().Key(v.key(key)).Build()).ToString()
	if err != nil {
		return "", false
	}
	return res, true
}

func (v *valkeyCache) put(ctx context.Context, key, value string) {
	_ = v.client.Do(ctx, v.client.B().Set().Key(v.key(key)).Value(value).Ex(v.ttl).Build()).Error()
}

func (v *valkeyCache) del(ctx context.Context, key string) {
	_ = v.client.Do(ctx, v.client.B().Del().Key(v.key(key)).Build()).Error()
}
