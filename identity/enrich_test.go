package identity

import (
	"context"
	"reflect"
	"testing"

	"github.com/golang-jwt/jwt/v5"

	"github.com/blogms/blogms/dto"
)

func newTestEnricher(t *testing.T) (*Enricher, *ProxyManager, *Factory) {
	t.Helper()
	f, ts := newTestFactory(t)
	proxy := NewProxyManager(ts.users, ts.roles, ts.groups)
	return NewEnricher(f, ts.users, ts.roles, ts.groups), proxy, f
}

func claims(sub string) jwt.MapClaims {
	return jwt.MapClaims{
		"sub":                sub,
		"preferred_username": "alice",
		"email":              "alice@example.com",
		"given_name":         "Alice",
		"family_name":        "Liddell",
	}
}

func TestEnrichUnionsDirectAndGroupRoles(t *testing.T) {
	e, proxy, _ := newTestEnricher(t)
	ctx := context.Background()

	authorID := mustCreateRole(t, proxy, "Author")
	editorID := mustCreateRole(t, proxy, "Editor")
	group, err := proxy.CreateGroup(ctx, dto.Group{Name: "editors"})
	if err != nil {
		t.Fatalf("create group: %v", err)
	}

	// Author both directly and through the group; Editor only via group.
	if ok, err := proxy.AssignRolesToUser(ctx, "sub-1", []string{authorID}); err != nil || !ok {
		t.Fatalf("assign user role: %v (%v)", ok, err)
	}
	if ok, err := proxy.AssignRolesToGroup(ctx, group.ID, []string{authorID, editorID}); err != nil || !ok {
		t.Fatalf("assign group roles: %v (%v)", ok, err)
	}
	if ok, err := proxy.AssignUserToGroups(ctx, "sub-1", []string{group.ID}); err != nil || !ok {
		t.Fatalf("assign membership: %v (%v)", ok, err)
	}

	out := e.Enrich(ctx, NewPrincipal(claims("sub-1")))
	want := []string{"Author", "Editor"}
	if got := out.Roles(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestEnrichUpsertsLocalUser(t *testing.T) {
	e, proxy, _ := newTestEnricher(t)
	ctx := context.Background()

	e.Enrich(ctx, NewPrincipal(claims("sub-1")))

	user, err := proxy.UserByID(ctx, "sub-1")
	if err != nil || user == nil {
		t.Fatalf("expected user upserted, got %v", err)
	}
	if user.Username != "alice" || user.FirstName != "Alice" {
		t.Fatalf("claims not mapped: %+v", user)
	}
}

func TestEnrichWithoutSubjectIsPassThrough(t *testing.T) {
	e, proxy, _ := newTestEnricher(t)
	ctx := context.Background()

	in := NewPrincipal(jwt.MapClaims{"preferred_username": "ghost"})
	out := e.Enrich(ctx, in)
	if !reflect.DeepEqual(out.Claims(), in.Claims()) {
		t.Fatalf("principal changed: %+v", out.Claims())
	}
	users, err := proxy.Users(ctx)
	if err != nil || len(users) != 0 {
		t.Fatalf("expected no storage writes, got %d users (%v)", len(users), err)
	}
}

func TestEnrichSkippedInDirectMode(t *testing.T) {
	e, proxy, f := newTestEnricher(t)
	ctx := context.Background()

	if err := f.Initialize(ctx, ModeKeycloak); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	in := NewPrincipal(claims("sub-1"))
	out := e.Enrich(ctx, in)
	if !reflect.DeepEqual(out.Claims(), in.Claims()) {
		t.Fatalf("principal changed in direct mode: %+v", out.Claims())
	}
	users, _ := proxy.Users(ctx)
	if len(users) != 0 {
		t.Fatalf("expected no upsert in direct mode, got %d users", len(users))
	}
}

func TestEnrichUsernamePrefersNameClaim(t *testing.T) {
	e, proxy, _ := newTestEnricher(t)
	ctx := context.Background()

	e.Enrich(ctx, NewPrincipal(jwt.MapClaims{
		"sub":                "sub-1",
		"name":               "Alice Liddell",
		"preferred_username": "alice",
	}))
	user, err := proxy.UserByID(ctx, "sub-1")
	if err != nil || user == nil {
		t.Fatalf("expected user upserted, got %v", err)
	}
	if user.Username != "Alice Liddell" {
		t.Fatalf("expected username from name claim, got %q", user.Username)
	}

	// With neither name nor preferred_username the subject is used.
	e.Enrich(ctx, NewPrincipal(jwt.MapClaims{"sub": "sub-2"}))
	user, err = proxy.UserByID(ctx, "sub-2")
	if err != nil || user == nil || user.Username != "sub-2" {
		t.Fatalf("expected subject fallback, got %+v (%v)", user, err)
	}
}

func TestEnrichUsesNameidFallback(t *testing.T) {
	e, proxy, _ := newTestEnricher(t)
	ctx := context.Background()

	e.Enrich(ctx, NewPrincipal(jwt.MapClaims{"nameid": "legacy-1", "preferred_username": "bob"}))
	user, err := proxy.UserByID(ctx, "legacy-1")
	if err != nil || user == nil {
		t.Fatalf("expected user keyed by nameid, got %v", err)
	}
}
