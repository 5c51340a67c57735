package identity

import (
	"context"
	"testing"

	"github.com/blogms/blogms/dto"
)

func newTestAdapter() *KeycloakAdapter {
	// No requests reach the wire in these tests; only the adapter's
	// unsupported-operation handling runs.
	return NewKeycloakAdapter(NewKeycloakManager(nil))
}

func TestAdapterCreateGroupEchoesRequest(t *testing.T) {
	a := newTestAdapter()
	created, err := a.CreateGroup(context.Background(), dto.Group{Name: "editors", Path: "/staff/editors"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if created.ID != "" {
		t.Fatalf("expected empty id, got %q", created.ID)
	}
	if created.Name != "editors" || created.Path != "/staff/editors" {
		t.Fatalf("expected echoed name/path, got %+v", created)
	}
}

func TestAdapterCreateRoleEchoesRequest(t *testing.T) {
	a := newTestAdapter()
	created, err := a.CreateRole(context.Background(), dto.Role{Name: "Editor", Description: "reviews"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if created.ID != "" || created.Name != "Editor" {
		t.Fatalf("expected echoed role with empty id, got %+v", created)
	}
}

func TestAdapterMutationsReportFalse(t *testing.T) {
	a := newTestAdapter()
	ctx := context.Background()

	if ok, err := a.UpdateRole(ctx, "r1", dto.Role{Name: "x"}); err != nil || ok {
		t.Fatalf("update role: expected (false, nil), got %v (%v)", ok, err)
	}
	if ok, err := a.DeleteRole(ctx, "r1"); err != nil || ok {
		t.Fatalf("delete role: expected (false, nil), got %v (%v)", ok, err)
	}
	if ok, err := a.UpdateGroup(ctx, "g1", dto.Group{Name: "x"}); err != nil || ok {
		t.Fatalf("update group: expected (false, nil), got %v (%v)", ok, err)
	}
	if ok, err := a.DeleteGroup(ctx, "g1"); err != nil || ok {
		t.Fatalf("delete group: expected (false, nil), got %v (%v)", ok, err)
	}
	if ok, err := a.AssignRolesToGroup(ctx, "g1", []string{"r1"}); err != nil || ok {
		t.Fatalf("assign group roles: expected (false, nil), got %v (%v)", ok, err)
	}
	if ok, err := a.RemoveRolesFromGroup(ctx, "g1", []string{"r1"}); err != nil || ok {
		t.Fatalf("remove group roles: expected (false, nil), got %v (%v)", ok, err)
	}
}

func TestAdapterGroupRolesEmpty(t *testing.T) {
	a := newTestAdapter()
	roles, err := a.GroupRoles(context.Background(), "g1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(roles) != 0 {
		t.Fatalf("expected empty grants, got %+v", roles)
	}
}

func TestAdapterSynchronizeUsersSucceeds(t *testing.T) {
	a := newTestAdapter()
	ok, err := a.SynchronizeUsers(context.Background())
	if err != nil || !ok {
		t.Fatalf("expected (true, nil), got %v (%v)", ok, err)
	}
}
