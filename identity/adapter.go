package identity

import (
	"context"
	"errors"
	"log"

	"github.com/blogms/blogms/dto"
)

// KeycloakAdapter wraps the direct Keycloak manager and converts its
// unsupported operations into safe defaults so callers written against
// the full contract keep working in direct mode: unsupported mutations
// report false instead of erroring, unsupported reads come back empty.
type KeycloakAdapter struct {
	inner *KeycloakManager
}

var _ Manager = (*KeycloakAdapter)(nil)

func NewKeycloakAdapter(inner *KeycloakManager) *KeycloakAdapter {
	return &KeycloakAdapter{inner: inner}
}

func (a *KeycloakAdapter) SupportsUserCreation() bool        { return a.inner.SupportsUserCreation() }
func (a *KeycloakAdapter) SupportsDirectRoleCreation() bool  { return a.inner.SupportsDirectRoleCreation() }
func (a *KeycloakAdapter) SupportsDirectGroupCreation() bool { return a.inner.SupportsDirectGroupCreation() }

func (a *KeycloakAdapter) Users(ctx context.Context) ([]dto.User, error) {
	return a.inner.Users(ctx)
}

func (a *KeycloakAdapter) UserByID(ctx context.Context, userID string) (*dto.User, error) {
	return a.inner.UserByID(ctx, userID)
}

func (a *KeycloakAdapter) UserByUsername(ctx context.Context, username string) (*dto.User, error) {
	return a.inner.UserByUsername(ctx, username)
}

func (a *KeycloakAdapter) CreateUser(ctx context.Context, user dto.User, password string) (bool, error) {
	return a.inner.CreateUser(ctx, user, password)
}

func (a *KeycloakAdapter) UpdateUser(ctx context.Context, userID string, user dto.User) (bool, error) {
	return a.inner.UpdateUser(ctx, userID, user)
}

func (a *KeycloakAdapter) DeleteUser(ctx context.Context, userID string) (bool, error) {
	return a.inner.DeleteUser(ctx, userID)
}

func (a *KeycloakAdapter) ResetPassword(ctx context.Context, userID string, credential dto.Credential) (bool, error) {
	return a.inner.ResetPassword(ctx, userID, credential)
}

func (a *KeycloakAdapter) Roles(ctx context.Context) ([]dto.Role, error) {
	return a.inner.Roles(ctx)
}

func (a *KeycloakAdapter) RoleByID(ctx context.Context, roleID string) (*dto.Role, error) {
	return a.inner.RoleByID(ctx, roleID)
}

func (a *KeycloakAdapter) RoleByName(ctx context.Context, roleName string) (*dto.Role, error) {
	return a.inner.RoleByName(ctx, roleName)
}

// CreateRole echoes the requested role back with an empty id so callers
// that chain on the result see their input rather than an error.
func (a *KeycloakAdapter) CreateRole(ctx context.Context, role dto.Role) (dto.Role, error) {
	created, err := a.inner.CreateRole(ctx, role)
	if errors.Is(err, ErrUnsupported) {
		log.Printf("identity: create role %q skipped: managed by provider", role.Name)
		return dto.Role{Name: role.Name, Description: role.Description}, nil
	}
	return created, err
}

func (a *KeycloakAdapter) UpdateRole(ctx context.Context, roleID string, role dto.Role) (bool, error) {
	return boolDefault(a.inner.UpdateRole(ctx, roleID, role))
}

func (a *KeycloakAdapter) DeleteRole(ctx context.Context, roleID string) (bool, error) {
	return boolDefault(a.inner.DeleteRole(ctx, roleID))
}

func (a *KeycloakAdapter) AssignRolesToUser(ctx context.Context, userID string, roleIDs []string) (bool, error) {
	return a.inner.AssignRolesToUser(ctx, userID, roleIDs)
}

func (a *KeycloakAdapter) RemoveRolesFromUser(ctx context.Context, userID string, roleIDs []string) (bool, error) {
	return a.inner.RemoveRolesFromUser(ctx, userID, roleIDs)
}

func (a *KeycloakAdapter) UserRoles(ctx context.Context, userID string) ([]dto.Role, error) {
	return a.inner.UserRoles(ctx, userID)
}

func (a *KeycloakAdapter) UsersInRole(ctx context.Context, roleID string) ([]dto.User, error) {
	return a.inner.UsersInRole(ctx, roleID)
}

func (a *KeycloakAdapter) Groups(ctx context.Context) ([]dto.Group, error) {
	return a.inner.Groups(ctx)
}

func (a *KeycloakAdapter) GroupByID(ctx context.Context, groupID string) (*dto.Group, error) {
	return a.inner.GroupByID(ctx, groupID)
}

func (a *KeycloakAdapter) GroupByPath(ctx context.Context, groupPath string) (*dto.Group, error) {
	return a.inner.GroupByPath(ctx, groupPath)
}

// CreateGroup echoes the requested group back, path included, with an
// empty id.
func (a *KeycloakAdapter) CreateGroup(ctx context.Context, group dto.Group) (dto.Group, error) {
	created, err := a.inner.CreateGroup(ctx, group)
	if errors.Is(err, ErrUnsupported) {
		log.Printf("identity: create group %q skipped: managed by provider", group.Name)
		return dto.Group{Name: group.Name, Path: group.Path, ParentGroupID: group.ParentGroupID}, nil
	}
	return created, err
}

func (a *KeycloakAdapter) UpdateGroup(ctx context.Context, groupID string, group dto.Group) (bool, error) {
	return boolDefault(a.inner.UpdateGroup(ctx, groupID, group))
}

func (a *KeycloakAdapter) DeleteGroup(ctx context.Context, groupID string) (bool, error) {
	return boolDefault(a.inner.DeleteGroup(ctx, groupID))
}

func (a *KeycloakAdapter) AssignUserToGroups(ctx context.Context, userID string, groupIDs []string) (bool, error) {
	return a.inner.AssignUserToGroups(ctx, userID, groupIDs)
}

func (a *KeycloakAdapter) RemoveUserFromGroups(ctx context.Context, userID string, groupIDs []string) (bool, error) {
	return a.inner.RemoveUserFromGroups(ctx, userID, groupIDs)
}

func (a *KeycloakAdapter) UserGroups(ctx context.Context, userID string) ([]string, error) {
	return a.inner.UserGroups(ctx, userID)
}

func (a *KeycloakAdapter) UsersInGroup(ctx context.Context, groupID string) ([]dto.User, error) {
	return a.inner.UsersInGroup(ctx, groupID)
}

// GroupRoles reports no grants: group-to-role inheritance only exists in
// proxy mode.
func (a *KeycloakAdapter) GroupRoles(ctx context.Context, groupID string) ([]dto.Role, error) {
	roles, err := a.inner.GroupRoles(ctx, groupID)
	if errors.Is(err, ErrUnsupported) {
		return []dto.Role{}, nil
	}
	return roles, err
}

func (a *KeycloakAdapter) AssignRolesToGroup(ctx context.Context, groupID string, roleIDs []string) (bool, error) {
	return boolDefault(a.inner.AssignRolesToGroup(ctx, groupID, roleIDs))
}

func (a *KeycloakAdapter) RemoveRolesFromGroup(ctx context.Context, groupID string, roleIDs []string) (bool, error) {
	return boolDefault(a.inner.RemoveRolesFromGroup(ctx, groupID, roleIDs))
}

// SynchronizeUsers succeeds trivially: the provider is the source of
// truth in direct mode, so there is nothing to pull.
func (a *KeycloakAdapter) SynchronizeUsers(ctx context.Context) (bool, error) {
	ok, err := a.inner.SynchronizeUsers(ctx)
	if errors.Is(err, ErrUnsupported) {
		return true, nil
	}
	return ok, err
}

func boolDefault(ok bool, err error) (bool, error) {
	if errors.Is(err, ErrUnsupported) {
		return false, nil
	}
	return ok, err
}
