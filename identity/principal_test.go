package identity

import (
	"reflect"
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

func TestPrincipalSubjectFallback(t *testing.T) {
	p := NewPrincipal(jwt.MapClaims{"sub": "s1", "nameid": "n1"})
	if p.Subject() != "s1" {
		t.Fatalf("expected sub to win, got %s", p.Subject())
	}
	p = NewPrincipal(jwt.MapClaims{"nameid": "n1"})
	if p.Subject() != "n1" {
		t.Fatalf("expected nameid fallback, got %s", p.Subject())
	}
	p = NewPrincipal(nil)
	if p.Subject() != "" {
		t.Fatalf("expected empty subject, got %s", p.Subject())
	}
}

func TestPrincipalDisplayName(t *testing.T) {
	p := NewPrincipal(jwt.MapClaims{"sub": "s1", "preferred_username": "alice", "name": "Alice L"})
	if p.DisplayName() != "Alice L" {
		t.Fatalf("expected name claim, got %s", p.DisplayName())
	}
	p = NewPrincipal(jwt.MapClaims{"sub": "s1", "preferred_username": "alice"})
	if p.DisplayName() != "alice" {
		t.Fatalf("expected preferred_username fallback, got %s", p.DisplayName())
	}
	p = NewPrincipal(jwt.MapClaims{"sub": "s1"})
	if p.DisplayName() != "s1" {
		t.Fatalf("expected subject fallback, got %s", p.DisplayName())
	}
}

func TestPrincipalRolesMergesBothClaims(t *testing.T) {
	p := NewPrincipal(jwt.MapClaims{
		"realm_access": map[string]interface{}{
			"roles": []interface{}{"Admin", "Author"},
		},
		"roles": []interface{}{"Author", "Editor"},
	})
	got := p.Roles()
	want := []string{"Admin", "Author", "Editor"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if !p.HasRole("Editor") || p.HasRole("Reader") {
		t.Fatal("HasRole mismatch")
	}
}

func TestPrincipalWithRolesWritesBothClaims(t *testing.T) {
	base := NewPrincipal(jwt.MapClaims{"sub": "s1"})
	enriched := base.WithRoles([]string{"Author", "Editor"})

	if got := enriched.Roles(); !reflect.DeepEqual(got, []string{"Author", "Editor"}) {
		t.Fatalf("roles: got %v", got)
	}
	realm, ok := enriched.Claims()["realm_access"].(map[string]interface{})
	if !ok {
		t.Fatal("realm_access claim missing")
	}
	if _, ok := realm["roles"].([]string); !ok {
		t.Fatalf("realm_access.roles missing: %+v", realm)
	}
	// The original principal stays untouched.
	if len(base.Roles()) != 0 {
		t.Fatalf("base principal mutated: %v", base.Roles())
	}
}
