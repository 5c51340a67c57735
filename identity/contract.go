// Package identity provides the dual-mode identity abstraction: a unified
// manager contract implemented both against the Keycloak admin API and
// against local storage, selected at runtime by the Factory.
package identity

import (
	"context"

	"github.com/blogms/blogms/dto"
)

// UserManagement covers user CRUD and password reset.
type UserManagement interface {
	// SupportsUserCreation reports whether the backend can create users
	// directly.
	SupportsUserCreation() bool

	Users(ctx context.Context) ([]dto.User, error)
	// UserByID returns (nil, nil) when the user does not exist.
	UserByID(ctx context.Context, userID string) (*dto.User, error)
	// UserByUsername returns (nil, nil) when the user does not exist.
	UserByUsername(ctx context.Context, username string) (*dto.User, error)
	CreateUser(ctx context.Context, user dto.User, password string) (bool, error)
	UpdateUser(ctx context.Context, userID string, user dto.User) (bool, error)
	DeleteUser(ctx context.Context, userID string) (bool, error)
	ResetPassword(ctx context.Context, userID string, credential dto.Credential) (bool, error)
}

// RoleManagement covers role CRUD.
type RoleManagement interface {
	// SupportsDirectRoleCreation reports whether the backend can create,
	// update, and delete roles directly.
	SupportsDirectRoleCreation() bool

	Roles(ctx context.Context) ([]dto.Role, error)
	RoleByID(ctx context.Context, roleID string) (*dto.Role, error)
	RoleByName(ctx context.Context, roleName string) (*dto.Role, error)
	CreateRole(ctx context.Context, role dto.Role) (dto.Role, error)
	UpdateRole(ctx context.Context, roleID string, role dto.Role) (bool, error)
	DeleteRole(ctx context.Context, roleID string) (bool, error)
}

// UserRoleManagement covers direct user-to-role assignment.
type UserRoleManagement interface {
	AssignRolesToUser(ctx context.Context, userID string, roleIDs []string) (bool, error)
	RemoveRolesFromUser(ctx context.Context, userID string, roleIDs []string) (bool, error)
	UserRoles(ctx context.Context, userID string) ([]dto.Role, error)
	UsersInRole(ctx context.Context, roleID string) ([]dto.User, error)
}

// GroupManagement covers hierarchical group CRUD.
type GroupManagement interface {
	// SupportsDirectGroupCreation reports whether the backend can create,
	// update, and delete groups directly.
	SupportsDirectGroupCreation() bool

	Groups(ctx context.Context) ([]dto.Group, error)
	GroupByID(ctx context.Context, groupID string) (*dto.Group, error)
	GroupByPath(ctx context.Context, groupPath string) (*dto.Group, error)
	CreateGroup(ctx context.Context, group dto.Group) (dto.Group, error)
	UpdateGroup(ctx context.Context, groupID string, group dto.Group) (bool, error)
	DeleteGroup(ctx context.Context, groupID string) (bool, error)
}

// UserGroupManagement covers user-to-group membership.
type UserGroupManagement interface {
	AssignUserToGroups(ctx context.Context, userID string, groupIDs []string) (bool, error)
	RemoveUserFromGroups(ctx context.Context, userID string, groupIDs []string) (bool, error)
	// UserGroups returns the ids of the groups the user belongs to.
	UserGroups(ctx context.Context, userID string) ([]string, error)
	UsersInGroup(ctx context.Context, groupID string) ([]dto.User, error)
}

// GroupRoleManagement grants roles to all members of a group.
type GroupRoleManagement interface {
	GroupRoles(ctx context.Context, groupID string) ([]dto.Role, error)
	AssignRolesToGroup(ctx context.Context, groupID string, roleIDs []string) (bool, error)
	RemoveRolesFromGroup(ctx context.Context, groupID string, roleIDs []string) (bool, error)
}

// Synchronization covers bulk reconciliation with external providers.
type Synchronization interface {
	SynchronizeUsers(ctx context.Context) (bool, error)
}

// Manager is the unified identity contract: the union of the capability
// interfaces. It is the only surface the rest of the application sees;
// callers never depend on a concrete backend.
type Manager interface {
	UserManagement
	RoleManagement
	UserRoleManagement
	GroupManagement
	UserGroupManagement
	GroupRoleManagement
	Synchronization
}
