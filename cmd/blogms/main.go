package main

import (
	"context"
	"log"
	"os"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/blogms/blogms/identity"
	"github.com/blogms/blogms/keycloak"
	"github.com/blogms/blogms/migrate"
	"github.com/blogms/blogms/seed"
	"github.com/blogms/blogms/server"
	"github.com/blogms/blogms/store"
)

func main() {
	cfg := server.GetConfig()
	dsn := cfg.DatabaseDSN()
	if dsn == "" {
		log.Fatal("no database DSN configured (BLOGMS_DATABASE__DSN or DB_DSN)")
	}

	driver := "postgres"
	var dialector gorm.Dialector
	if strings.HasSuffix(dsn, ".db") || strings.HasPrefix(dsn, "file:") {
		driver = "sqlite"
		dialector = sqlite.Open(dsn)
	} else {
		dialector = postgres.Open(dsn)
	}

	if err := migrate.Run(migrate.Options{
		Driver: driver,
		DSN:    dsn,
		Logger: log.New(os.Stdout, "[migrate] ", log.LstdFlags),
	}); err != nil {
		log.Fatalf("migrations: %v", err)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		log.Fatalf("open database: %v", err)
	}

	users := store.NewUserStore(db)
	roles := store.NewRoleStore(db)
	groups := store.NewGroupStore(db)
	posts := store.NewPostStore(db)
	comments := store.NewCommentStore(db)
	settings := store.NewSettingsStore(db)

	ctx := context.Background()
	if err := seed.Run(ctx, roles, groups, settings, cfg.Identity.UseProxyDefault); err != nil {
		log.Fatalf("seed: %v", err)
	}

	var cached *store.CachedSettings
	if cfg.Cache.ValkeyAddr != "" {
		cache, err := store.NewValkeySettingsCache(cfg.Cache.ValkeyAddr, "")
		if err != nil {
			log.Fatalf("valkey cache: %v", err)
		}
		cached = store.NewCachedSettingsWith(settings, cache)
	} else {
		cached, err = store.NewCachedSettings(settings)
		if err != nil {
			log.Fatalf("settings cache: %v", err)
		}
	}

	kc := keycloak.NewClient(keycloak.Config{
		BaseURL:       cfg.Keycloak.BaseURL,
		Realm:         cfg.Keycloak.Realm,
		AdminUser:     cfg.Keycloak.AdminUser,
		AdminPassword: cfg.Keycloak.AdminPassword,
	})

	proxy := identity.NewProxyManager(users, roles, groups)
	adapter := identity.NewKeycloakAdapter(identity.NewKeycloakManager(kc))
	factory := identity.NewFactory(cached, proxy, adapter, identity.ParseMode(cfg.Identity.UseProxyDefault))
	enricher := identity.NewEnricher(factory, users, roles, groups)

	srv := server.NewServer(cfg, factory, enricher, cached, posts, comments)
	engine := server.NewGinEngine(srv)

	log.Printf("listening on %s (mode %s)", cfg.Addr, factory.CurrentMode(ctx))
	if err := engine.Run(cfg.Addr); err != nil {
		log.Fatalf("server: %v", err)
	}
}
