package identity

import (
	"context"
	"testing"

	"github.com/blogms/blogms/dto"
)

func newTestProxy(t *testing.T) (*ProxyManager, testStores) {
	t.Helper()
	ts := newTestStores(t)
	return NewProxyManager(ts.users, ts.roles, ts.groups), ts
}

func TestProxyCapabilities(t *testing.T) {
	m, _ := newTestProxy(t)
	if !m.SupportsUserCreation() || !m.SupportsDirectRoleCreation() || !m.SupportsDirectGroupCreation() {
		t.Fatal("proxy backend must support every capability")
	}
}

func TestProxyUserLifecycle(t *testing.T) {
	m, _ := newTestProxy(t)
	ctx := context.Background()

	ok, err := m.CreateUser(ctx, dto.User{
		ID: "sub-1", Username: "alice", Email: "alice@example.com",
		FirstName: "Alice", Enabled: true,
	}, "s3cret")
	if err != nil || !ok {
		t.Fatalf("create: %v (%v)", ok, err)
	}

	user, err := m.UserByID(ctx, "sub-1")
	if err != nil || user == nil {
		t.Fatalf("get: %v", err)
	}
	if user.Username != "alice" || !user.Enabled {
		t.Fatalf("round-trip mismatch: %+v", user)
	}

	// Blank fields on update keep their stored values.
	ok, err = m.UpdateUser(ctx, "sub-1", dto.User{LastName: "Liddell", Enabled: true})
	if err != nil || !ok {
		t.Fatalf("update: %v (%v)", ok, err)
	}
	user, _ = m.UserByID(ctx, "sub-1")
	if user.Username != "alice" || user.Email != "alice@example.com" || user.LastName != "Liddell" {
		t.Fatalf("partial update clobbered fields: %+v", user)
	}

	ok, err = m.DeleteUser(ctx, "sub-1")
	if err != nil || !ok {
		t.Fatalf("delete: %v (%v)", ok, err)
	}
	if user, _ := m.UserByID(ctx, "sub-1"); user != nil {
		t.Fatalf("user survived delete: %+v", user)
	}
}

func TestProxyMalformedIDsAreNotFound(t *testing.T) {
	m, _ := newTestProxy(t)
	ctx := context.Background()

	role, err := m.RoleByID(ctx, "not-a-uuid")
	if err != nil || role != nil {
		t.Fatalf("expected (nil, nil), got %+v (%v)", role, err)
	}
	group, err := m.GroupByID(ctx, "also not one")
	if err != nil || group != nil {
		t.Fatalf("expected (nil, nil), got %+v (%v)", group, err)
	}
	ok, err := m.DeleteRole(ctx, "still-not-a-uuid")
	if err != nil || ok {
		t.Fatalf("expected (false, nil), got %v (%v)", ok, err)
	}
}

func TestProxyRoleRoundTrip(t *testing.T) {
	m, _ := newTestProxy(t)
	ctx := context.Background()

	created, err := m.CreateRole(ctx, dto.Role{Name: "Editor", Description: "reviews"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected generated id")
	}
	byID, err := m.RoleByID(ctx, created.ID)
	if err != nil || byID == nil {
		t.Fatalf("by id: %v", err)
	}
	byName, err := m.RoleByName(ctx, "Editor")
	if err != nil || byName == nil || byName.ID != created.ID {
		t.Fatalf("by name: %+v (%v)", byName, err)
	}
}

func TestProxyGroupPathDerivation(t *testing.T) {
	m, _ := newTestProxy(t)
	ctx := context.Background()

	staff, err := m.CreateGroup(ctx, dto.Group{Name: "staff"})
	if err != nil {
		t.Fatalf("create root: %v", err)
	}
	if staff.Path != "/staff" {
		t.Fatalf("root path: got %s", staff.Path)
	}

	editors, err := m.CreateGroup(ctx, dto.Group{Name: "editors", ParentGroupID: staff.ID})
	if err != nil {
		t.Fatalf("create child: %v", err)
	}
	if editors.Path != "/staff/editors" {
		t.Fatalf("child path: got %s", editors.Path)
	}

	byPath, err := m.GroupByPath(ctx, "/staff/editors")
	if err != nil || byPath == nil || byPath.ID != editors.ID {
		t.Fatalf("by path: %+v (%v)", byPath, err)
	}
}

func TestProxyGroupUnresolvedParentBecomesRoot(t *testing.T) {
	m, _ := newTestProxy(t)
	ctx := context.Background()

	// A parent id that does not resolve degrades to a root-level group.
	orphan, err := m.CreateGroup(ctx, dto.Group{
		Name:          "orphans",
		ParentGroupID: "2a9f1c55-7a08-4c18-9d2e-3b8f6cd0a111",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if orphan.Path != "/orphans" || orphan.ParentGroupID != "" {
		t.Fatalf("expected root placement, got %+v", orphan)
	}
}

func TestProxyGroupsReturnsHierarchy(t *testing.T) {
	m, _ := newTestProxy(t)
	ctx := context.Background()

	staff, _ := m.CreateGroup(ctx, dto.Group{Name: "staff"})
	if _, err := m.CreateGroup(ctx, dto.Group{Name: "editors", ParentGroupID: staff.ID}); err != nil {
		t.Fatalf("create child: %v", err)
	}
	if _, err := m.CreateGroup(ctx, dto.Group{Name: "readers"}); err != nil {
		t.Fatalf("create sibling: %v", err)
	}

	tree, err := m.Groups(ctx)
	if err != nil {
		t.Fatalf("groups: %v", err)
	}
	if len(tree) != 2 {
		t.Fatalf("expected two roots, got %d", len(tree))
	}
	var staffNode *dto.Group
	for i := range tree {
		if tree[i].Name == "staff" {
			staffNode = &tree[i]
		}
	}
	if staffNode == nil || len(staffNode.SubGroups) != 1 || staffNode.SubGroups[0].Path != "/staff/editors" {
		t.Fatalf("expected editors nested under staff, got %+v", tree)
	}
}

func TestProxyGroupRolesResolvedByPath(t *testing.T) {
	m, _ := newTestProxy(t)
	ctx := context.Background()

	editorID := mustCreateRole(t, m, "Editor")
	group, err := m.CreateGroup(ctx, dto.Group{Name: "editors"})
	if err != nil {
		t.Fatalf("create group: %v", err)
	}

	ok, err := m.AssignRolesToGroup(ctx, group.ID, []string{editorID})
	if err != nil || !ok {
		t.Fatalf("assign: %v (%v)", ok, err)
	}
	granted, err := m.GroupRoles(ctx, group.ID)
	if err != nil || len(granted) != 1 || granted[0].Name != "Editor" {
		t.Fatalf("expected [Editor], got %+v (%v)", granted, err)
	}

	ok, err = m.RemoveRolesFromGroup(ctx, group.ID, []string{editorID})
	if err != nil || !ok {
		t.Fatalf("remove: %v (%v)", ok, err)
	}
	granted, _ = m.GroupRoles(ctx, group.ID)
	if len(granted) != 0 {
		t.Fatalf("expected no grants, got %+v", granted)
	}
}

func TestProxyUsersInRoleAndGroup(t *testing.T) {
	m, _ := newTestProxy(t)
	ctx := context.Background()

	if _, err := m.CreateUser(ctx, dto.User{ID: "u1", Username: "alice", Enabled: true}, ""); err != nil {
		t.Fatalf("create user: %v", err)
	}
	roleID := mustCreateRole(t, m, "Author")
	group, err := m.CreateGroup(ctx, dto.Group{Name: "writers"})
	if err != nil {
		t.Fatalf("create group: %v", err)
	}

	if ok, err := m.AssignRolesToUser(ctx, "u1", []string{roleID}); err != nil || !ok {
		t.Fatalf("assign role: %v (%v)", ok, err)
	}
	if ok, err := m.AssignUserToGroups(ctx, "u1", []string{group.ID}); err != nil || !ok {
		t.Fatalf("assign group: %v (%v)", ok, err)
	}

	inRole, err := m.UsersInRole(ctx, roleID)
	if err != nil || len(inRole) != 1 || inRole[0].Username != "alice" {
		t.Fatalf("users in role: %+v (%v)", inRole, err)
	}
	inGroup, err := m.UsersInGroup(ctx, group.ID)
	if err != nil || len(inGroup) != 1 || inGroup[0].ID != "u1" {
		t.Fatalf("users in group: %+v (%v)", inGroup, err)
	}
	groupIDs, err := m.UserGroups(ctx, "u1")
	if err != nil || len(groupIDs) != 1 || groupIDs[0] != group.ID {
		t.Fatalf("user groups: %v (%v)", groupIDs, err)
	}
}

func TestProxyAssignUnknownRoleFails(t *testing.T) {
	m, _ := newTestProxy(t)
	ctx := context.Background()

	ok, err := m.AssignRolesToUser(ctx, "u1", []string{"5f0c1a33-68ef-4f4e-b7a5-0d4f6f8e9a22"})
	if err != nil || ok {
		t.Fatalf("expected (false, nil) for unknown role, got %v (%v)", ok, err)
	}
}

func TestProxySynchronizeUsersIsNoOp(t *testing.T) {
	m, _ := newTestProxy(t)
	ok, err := m.SynchronizeUsers(context.Background())
	if err != nil || !ok {
		t.Fatalf("expected (true, nil), got %v (%v)", ok, err)
	}
}
