package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/blogms/blogms/keycloak"
)

// newFakeRealm stands up a minimal admin API: a token endpoint, a user
// list, and per-user role and group mappings.
func newFakeRealm(t *testing.T, routes map[string]interface{}) *KeycloakManager {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/realms/master/protocol/openid-connect/token" {
			json.NewEncoder(w).Encode(map[string]interface{}{
				"access_token": "test-token",
				"expires_in":   300,
			})
			return
		}
		body, ok := routes[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return NewKeycloakManager(keycloak.NewClient(keycloak.Config{
		BaseURL:       srv.URL,
		Realm:         "blog",
		AdminUser:     "admin",
		AdminPassword: "admin",
	}))
}

func TestKeycloakUsersInRoleProbesEachUser(t *testing.T) {
	m := newFakeRealm(t, map[string]interface{}{
		"/admin/realms/blog/roles": []keycloak.RoleRepresentation{
			{ID: "r1", Name: "Editor"},
		},
		"/admin/realms/blog/users": []keycloak.UserRepresentation{
			{ID: "u1", Username: "alice", Enabled: true},
			{ID: "u2", Username: "bob", Enabled: true},
		},
		"/admin/realms/blog/users/u1/role-mappings/realm": []keycloak.RoleRepresentation{
			{ID: "r1", Name: "Editor"},
		},
		"/admin/realms/blog/users/u2/role-mappings/realm": []keycloak.RoleRepresentation{},
	})

	users, err := m.UsersInRole(context.Background(), "r1")
	if err != nil {
		t.Fatalf("users in role: %v", err)
	}
	if len(users) != 1 || users[0].Username != "alice" {
		t.Fatalf("expected only alice, got %+v", users)
	}

	users, err = m.UsersInRole(context.Background(), "missing")
	if err != nil || users != nil {
		t.Fatalf("unknown role must resolve to nothing, got %+v (%v)", users, err)
	}
}

func TestKeycloakUsersInGroupProbesEachUser(t *testing.T) {
	m := newFakeRealm(t, map[string]interface{}{
		"/admin/realms/blog/users": []keycloak.UserRepresentation{
			{ID: "u1", Username: "alice", Enabled: true},
			{ID: "u2", Username: "bob", Enabled: true},
		},
		"/admin/realms/blog/users/u1/groups": []keycloak.GroupRepresentation{},
		"/admin/realms/blog/users/u2/groups": []keycloak.GroupRepresentation{
			{ID: "g1", Name: "staff", Path: "/staff"},
		},
	})

	users, err := m.UsersInGroup(context.Background(), "g1")
	if err != nil {
		t.Fatalf("users in group: %v", err)
	}
	if len(users) != 1 || users[0].Username != "bob" {
		t.Fatalf("expected only bob, got %+v", users)
	}
}

func TestKeycloakGroupByPathWalksHierarchy(t *testing.T) {
	m := newFakeRealm(t, map[string]interface{}{
		"/admin/realms/blog/groups": []keycloak.GroupRepresentation{
			{ID: "g1", Name: "staff", Path: "/staff", SubGroups: []keycloak.GroupRepresentation{
				{ID: "g2", Name: "editors", Path: "/staff/editors"},
			}},
		},
	})

	group, err := m.GroupByPath(context.Background(), "/staff/editors")
	if err != nil {
		t.Fatalf("group by path: %v", err)
	}
	if group == nil || group.ID != "g2" {
		t.Fatalf("expected nested group, got %+v", group)
	}

	group, err = m.GroupByPath(context.Background(), "/nowhere")
	if err != nil || group != nil {
		t.Fatalf("missing path must resolve to nil, got %+v (%v)", group, err)
	}
}
