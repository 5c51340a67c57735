package identity

import (
	"context"

	"github.com/blogms/blogms/dto"
	"github.com/blogms/blogms/keycloak"
)

// KeycloakManager implements the Manager contract directly against the
// Keycloak admin API. Role and group definitions belong to realm
// administration there, so mutating them is reported unsupported; user
// management and membership assignment go through.
type KeycloakManager struct {
	client *keycloak.Client
}

var _ Manager = (*KeycloakManager)(nil)

func NewKeycloakManager(client *keycloak.Client) *KeycloakManager {
	return &KeycloakManager{client: client}
}

func (m *KeycloakManager) SupportsUserCreation() bool        { return true }
func (m *KeycloakManager) SupportsDirectRoleCreation() bool  { return false }
func (m *KeycloakManager) SupportsDirectGroupCreation() bool { return false }

func kcUserDTO(u keycloak.UserRepresentation) dto.User {
	return dto.User{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Organization: u.Organization(),
		Enabled:      u.Enabled,
	}
}

func kcRoleDTO(r keycloak.RoleRepresentation) dto.Role {
	return dto.Role{ID: r.ID, Name: r.Name, Description: r.Description}
}

func kcGroupDTO(g keycloak.GroupRepresentation) dto.Group {
	out := dto.Group{ID: g.ID, Name: g.Name, Path: g.Path}
	for _, sub := range g.SubGroups {
		out.SubGroups = append(out.SubGroups, kcGroupDTO(sub))
	}
	return out
}

func (m *KeycloakManager) Users(ctx context.Context) ([]dto.User, error) {
	users, err := m.client.Users(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.User, 0, len(users))
	for _, u := range users {
		out = append(out, kcUserDTO(u))
	}
	return out, nil
}

func (m *KeycloakManager) UserByID(ctx context.Context, userID string) (*dto.User, error) {
	user, err := m.client.UserByID(ctx, userID)
	if err != nil || user == nil {
		return nil, err
	}
	d := kcUserDTO(*user)
	return &d, nil
}

func (m *KeycloakManager) UserByUsername(ctx context.Context, username string) (*dto.User, error) {
	user, err := m.client.UserByUsername(ctx, username)
	if err != nil || user == nil {
		return nil, err
	}
	d := kcUserDTO(*user)
	return &d, nil
}

func (m *KeycloakManager) CreateUser(ctx context.Context, user dto.User, password string) (bool, error) {
	rep := keycloak.UserRepresentation{
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Enabled:   user.Enabled,
	}
	if user.Organization != "" {
		rep.Attributes = map[string][]string{"organization": {user.Organization}}
	}
	if password != "" {
		rep.Credentials = []keycloak.CredentialRepresentation{
			{Type: "password", Value: password, Temporary: false},
		}
	}
	if err := m.client.CreateUser(ctx, rep); err != nil {
		return false, err
	}
	return true, nil
}

func (m *KeycloakManager) UpdateUser(ctx context.Context, userID string, user dto.User) (bool, error) {
	existing, err := m.client.UserByID(ctx, userID)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, nil
	}
	rep := keycloak.UserRepresentation{
		Username:   existing.Username,
		Email:      user.Email,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		Enabled:    user.Enabled,
		Attributes: existing.Attributes,
	}
	if user.Organization != "" {
		if rep.Attributes == nil {
			rep.Attributes = map[string][]string{}
		}
		rep.Attributes["organization"] = []string{user.Organization}
	}
	if err := m.client.UpdateUser(ctx, userID, rep); err != nil {
		return false, err
	}
	return true, nil
}

func (m *KeycloakManager) DeleteUser(ctx context.Context, userID string) (bool, error) {
	err := m.client.DeleteUser(ctx, userID)
	if keycloak.IsNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (m *KeycloakManager) ResetPassword(ctx context.Context, userID string, credential dto.Credential) (bool, error) {
	cred := keycloak.CredentialRepresentation{
		Type:      "password",
		Value:     credential.Value,
		Temporary: credential.Temporary,
	}
	err := m.client.ResetPassword(ctx, userID, cred)
	if keycloak.IsNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (m *KeycloakManager) Roles(ctx context.Context) ([]dto.Role, error) {
	roles, err := m.client.Roles(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.Role, 0, len(roles))
	for _, r := range roles {
		out = append(out, kcRoleDTO(r))
	}
	return out, nil
}

// RoleByID scans the realm role list: the admin API keys role lookups by
// name, not id.
func (m *KeycloakManager) RoleByID(ctx context.Context, roleID string) (*dto.Role, error) {
	roles, err := m.client.Roles(ctx)
	if err != nil {
		return nil, err
	}
	for _, r := range roles {
		if r.ID == roleID {
			d := kcRoleDTO(r)
			return &d, nil
		}
	}
	return nil, nil
}

func (m *KeycloakManager) RoleByName(ctx context.Context, roleName string) (*dto.Role, error) {
	role, err := m.client.RoleByName(ctx, roleName)
	if err != nil || role == nil {
		return nil, err
	}
	d := kcRoleDTO(*role)
	return &d, nil
}

// Realm roles are administered in Keycloak itself.
func (m *KeycloakManager) CreateRole(context.Context, dto.Role) (dto.Role, error) {
	return dto.Role{}, unsupported("create role")
}

func (m *KeycloakManager) UpdateRole(context.Context, string, dto.Role) (bool, error) {
	return false, unsupported("update role")
}

func (m *KeycloakManager) DeleteRole(context.Context, string) (bool, error) {
	return false, unsupported("delete role")
}

func (m *KeycloakManager) AssignRolesToUser(ctx context.Context, userID string, roleIDs []string) (bool, error) {
	reps, ok, err := m.resolveRoles(ctx, roleIDs)
	if err != nil || !ok {
		return false, err
	}
	if err := m.client.AddUserRealmRoles(ctx, userID, reps); err != nil {
		return false, err
	}
	return true, nil
}

func (m *KeycloakManager) RemoveRolesFromUser(ctx context.Context, userID string, roleIDs []string) (bool, error) {
	reps, ok, err := m.resolveRoles(ctx, roleIDs)
	if err != nil || !ok {
		return false, err
	}
	if err := m.client.RemoveUserRealmRoles(ctx, userID, reps); err != nil {
		return false, err
	}
	return true, nil
}

// resolveRoles maps role ids onto full representations; role-mapping
// endpoints require id and name together. Any unknown id fails the batch.
func (m *KeycloakManager) resolveRoles(ctx context.Context, roleIDs []string) ([]keycloak.RoleRepresentation, bool, error) {
	all, err := m.client.Roles(ctx)
	if err != nil {
		return nil, false, err
	}
	byID := make(map[string]keycloak.RoleRepresentation, len(all))
	for _, r := range all {
		byID[r.ID] = r
	}
	reps := make([]keycloak.RoleRepresentation, 0, len(roleIDs))
	for _, id := range roleIDs {
		rep, ok := byID[id]
		if !ok {
			return nil, false, nil
		}
		reps = append(reps, rep)
	}
	return reps, true, nil
}

func (m *KeycloakManager) UserRoles(ctx context.Context, userID string) ([]dto.Role, error) {
	roles, err := m.client.UserRealmRoles(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.Role, 0, len(roles))
	for _, r := range roles {
		out = append(out, kcRoleDTO(r))
	}
	return out, nil
}

// UsersInRole probes every realm user's direct role mappings. There is
// no paginated membership listing on the admin surface this application
// is granted, so this walks the full user list; acceptable at the realm
// sizes this system manages.
func (m *KeycloakManager) UsersInRole(ctx context.Context, roleID string) ([]dto.User, error) {
	role, err := m.RoleByID(ctx, roleID)
	if err != nil || role == nil {
		return nil, err
	}
	users, err := m.client.Users(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.User, 0)
	for _, u := range users {
		roles, err := m.client.UserRealmRoles(ctx, u.ID)
		if err != nil {
			return nil, err
		}
		for _, r := range roles {
			if r.ID == role.ID {
				out = append(out, kcUserDTO(u))
				break
			}
		}
	}
	return out, nil
}

func (m *KeycloakManager) Groups(ctx context.Context) ([]dto.Group, error) {
	groups, err := m.client.Groups(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.Group, 0, len(groups))
	for _, g := range groups {
		out = append(out, kcGroupDTO(g))
	}
	return out, nil
}

func (m *KeycloakManager) GroupByID(ctx context.Context, groupID string) (*dto.Group, error) {
	group, err := m.client.GroupByID(ctx, groupID)
	if err != nil || group == nil {
		return nil, err
	}
	d := kcGroupDTO(*group)
	return &d, nil
}

// GroupByPath walks the hierarchy returned by the groups listing; the
// admin API has no path-keyed lookup.
func (m *KeycloakManager) GroupByPath(ctx context.Context, groupPath string) (*dto.Group, error) {
	groups, err := m.client.Groups(ctx)
	if err != nil {
		return nil, err
	}
	var find func(groups []keycloak.GroupRepresentation) *dto.Group
	find = func(groups []keycloak.GroupRepresentation) *dto.Group {
		for _, g := range groups {
			if g.Path == groupPath {
				d := kcGroupDTO(g)
				return &d
			}
			if hit := find(g.SubGroups); hit != nil {
				return hit
			}
		}
		return nil
	}
	return find(groups), nil
}

// Group definitions are administered in Keycloak itself.
func (m *KeycloakManager) CreateGroup(context.Context, dto.Group) (dto.Group, error) {
	return dto.Group{}, unsupported("create group")
}

func (m *KeycloakManager) UpdateGroup(context.Context, string, dto.Group) (bool, error) {
	return false, unsupported("update group")
}

func (m *KeycloakManager) DeleteGroup(context.Context, string) (bool, error) {
	return false, unsupported("delete group")
}

func (m *KeycloakManager) AssignUserToGroups(ctx context.Context, userID string, groupIDs []string) (bool, error) {
	for _, id := range groupIDs {
		if err := m.client.AddUserToGroup(ctx, userID, id); err != nil {
			return false, err
		}
	}
	return true, nil
}

func (m *KeycloakManager) RemoveUserFromGroups(ctx context.Context, userID string, groupIDs []string) (bool, error) {
	for _, id := range groupIDs {
		if err := m.client.RemoveUserFromGroup(ctx, userID, id); err != nil {
			return false, err
		}
	}
	return true, nil
}

func (m *KeycloakManager) UserGroups(ctx context.Context, userID string) ([]string, error) {
	groups, err := m.client.UserGroups(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(groups))
	for _, g := range groups {
		ids = append(ids, g.ID)
	}
	return ids, nil
}

// UsersInGroup probes group memberships the same way UsersInRole probes
// role mappings: one lookup per realm user.
func (m *KeycloakManager) UsersInGroup(ctx context.Context, groupID string) ([]dto.User, error) {
	users, err := m.client.Users(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.User, 0)
	for _, u := range users {
		groups, err := m.client.UserGroups(ctx, u.ID)
		if err != nil {
			return nil, err
		}
		for _, g := range groups {
			if g.ID == groupID {
				out = append(out, kcUserDTO(u))
				break
			}
		}
	}
	return out, nil
}

// Group-to-role grants are a proxy-mode construct; Keycloak models role
// inheritance on its own group role mappings, which this application
// does not administer.
func (m *KeycloakManager) GroupRoles(context.Context, string) ([]dto.Role, error) {
	return nil, unsupported("group roles")
}

func (m *KeycloakManager) AssignRolesToGroup(context.Context, string, []string) (bool, error) {
	return false, unsupported("assign roles to group")
}

func (m *KeycloakManager) RemoveRolesFromGroup(context.Context, string, []string) (bool, error) {
	return false, unsupported("remove roles from group")
}

// SynchronizeUsers has no meaning against the provider itself.
func (m *KeycloakManager) SynchronizeUsers(context.Context) (bool, error) {
	return false, unsupported("synchronize users")
}
