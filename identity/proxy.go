package identity

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/blogms/blogms/dto"
	"github.com/blogms/blogms/models"
	"github.com/blogms/blogms/store"
)

// ProxyManager implements the full Manager contract on local storage. It
// is authoritative for roles and groups when the application fronts an
// external provider that only authenticates: memberships live in the
// local database, enriched into the principal on each request.
type ProxyManager struct {
	users  *store.UserStore
	roles  *store.RoleStore
	groups *store.GroupStore
}

var _ Manager = (*ProxyManager)(nil)

func NewProxyManager(users *store.UserStore, roles *store.RoleStore, groups *store.GroupStore) *ProxyManager {
	return &ProxyManager{users: users, roles: roles, groups: groups}
}

// Every capability is available locally.
func (m *ProxyManager) SupportsUserCreation() bool        { return true }
func (m *ProxyManager) SupportsDirectRoleCreation() bool  { return true }
func (m *ProxyManager) SupportsDirectGroupCreation() bool { return true }

func userDTO(u models.User) dto.User {
	return dto.User{
		ID:           u.UserID,
		Username:     u.Username,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Organization: u.Organization,
		Enabled:      u.Enabled,
	}
}

func roleDTO(r models.Role) dto.Role {
	return dto.Role{ID: r.ID, Name: r.Name, Description: r.Description}
}

func groupDTO(g models.Group) dto.Group {
	out := dto.Group{ID: g.ID, Name: g.Name, Path: g.Path}
	if g.ParentGroupID != nil {
		out.ParentGroupID = *g.ParentGroupID
	}
	return out
}

func (m *ProxyManager) Users(ctx context.Context) ([]dto.User, error) {
	users, err := m.users.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.User, 0, len(users))
	for _, u := range users {
		out = append(out, userDTO(u))
	}
	return out, nil
}

func (m *ProxyManager) UserByID(ctx context.Context, userID string) (*dto.User, error) {
	user, err := m.users.GetByUserID(ctx, userID)
	if err != nil || user == nil {
		return nil, err
	}
	d := userDTO(*user)
	return &d, nil
}

func (m *ProxyManager) UserByUsername(ctx context.Context, username string) (*dto.User, error) {
	user, err := m.users.GetByUsername(ctx, username)
	if err != nil || user == nil {
		return nil, err
	}
	d := userDTO(*user)
	return &d, nil
}

// CreateUser stores a local user record. The password, when given, is
// bcrypt-hashed for local credential checks; external authentication is
// unaffected.
func (m *ProxyManager) CreateUser(ctx context.Context, user dto.User, password string) (bool, error) {
	record := models.User{
		UserID:       user.ID,
		Username:     user.Username,
		Email:        user.Email,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Organization: user.Organization,
		Enabled:      user.Enabled,
	}
	if record.UserID == "" {
		record.UserID = models.NewID()
	}
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return false, err
		}
		record.PasswordHash = string(hash)
	}
	if _, err := m.users.Create(ctx, record); err != nil {
		return false, err
	}
	return true, nil
}

// UpdateUser overwrites the mutable profile fields. Blank incoming fields
// keep their stored values so partial updates do not erase data.
func (m *ProxyManager) UpdateUser(ctx context.Context, userID string, user dto.User) (bool, error) {
	existing, err := m.users.GetByUserID(ctx, userID)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, nil
	}
	if user.Username != "" {
		existing.Username = user.Username
	}
	if user.Email != "" {
		existing.Email = user.Email
	}
	if user.FirstName != "" {
		existing.FirstName = user.FirstName
	}
	if user.LastName != "" {
		existing.LastName = user.LastName
	}
	if user.Organization != "" {
		existing.Organization = user.Organization
	}
	existing.Enabled = user.Enabled
	if err := m.users.Update(ctx, existing); err != nil {
		return false, err
	}
	return true, nil
}

func (m *ProxyManager) DeleteUser(ctx context.Context, userID string) (bool, error) {
	return m.users.Delete(ctx, userID)
}

func (m *ProxyManager) ResetPassword(ctx context.Context, userID string, credential dto.Credential) (bool, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(credential.Value), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}
	return m.users.SetPasswordHash(ctx, userID, string(hash))
}

func (m *ProxyManager) Roles(ctx context.Context) ([]dto.Role, error) {
	roles, err := m.roles.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.Role, 0, len(roles))
	for _, r := range roles {
		out = append(out, roleDTO(r))
	}
	return out, nil
}

// RoleByID treats a malformed id as not found.
func (m *ProxyManager) RoleByID(ctx context.Context, roleID string) (*dto.Role, error) {
	id, ok := models.ParseID(roleID)
	if !ok {
		return nil, nil
	}
	role, err := m.roles.GetByID(ctx, id)
	if err != nil || role == nil {
		return nil, err
	}
	d := roleDTO(*role)
	return &d, nil
}

func (m *ProxyManager) RoleByName(ctx context.Context, roleName string) (*dto.Role, error) {
	role, err := m.roles.GetByName(ctx, roleName)
	if err != nil || role == nil {
		return nil, err
	}
	d := roleDTO(*role)
	return &d, nil
}

func (m *ProxyManager) CreateRole(ctx context.Context, role dto.Role) (dto.Role, error) {
	created, err := m.roles.Create(ctx, models.Role{Name: role.Name, Description: role.Description})
	if err != nil {
		return dto.Role{}, err
	}
	return roleDTO(created), nil
}

func (m *ProxyManager) UpdateRole(ctx context.Context, roleID string, role dto.Role) (bool, error) {
	id, ok := models.ParseID(roleID)
	if !ok {
		return false, nil
	}
	existing, err := m.roles.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, nil
	}
	if role.Name != "" {
		existing.Name = role.Name
	}
	existing.Description = role.Description
	if err := m.roles.Update(ctx, existing); err != nil {
		return false, err
	}
	return true, nil
}

func (m *ProxyManager) DeleteRole(ctx context.Context, roleID string) (bool, error) {
	id, ok := models.ParseID(roleID)
	if !ok {
		return false, nil
	}
	existing, err := m.roles.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, nil
	}
	if err := m.roles.Delete(ctx, id); err != nil {
		return false, err
	}
	return true, nil
}

// AssignRolesToUser resolves every role first; any unknown or malformed
// id makes the whole call report false without assigning.
func (m *ProxyManager) AssignRolesToUser(ctx context.Context, userID string, roleIDs []string) (bool, error) {
	ids, ok, err := m.resolveRoleIDs(ctx, roleIDs)
	if err != nil || !ok {
		return false, err
	}
	for _, id := range ids {
		if err := m.roles.AddUserToRole(ctx, userID, id); err != nil {
			return false, err
		}
	}
	return true, nil
}

func (m *ProxyManager) RemoveRolesFromUser(ctx context.Context, userID string, roleIDs []string) (bool, error) {
	ids, ok, err := m.resolveRoleIDs(ctx, roleIDs)
	if err != nil || !ok {
		return false, err
	}
	for _, id := range ids {
		if err := m.roles.RemoveUserFromRole(ctx, userID, id); err != nil {
			return false, err
		}
	}
	return true, nil
}

func (m *ProxyManager) resolveRoleIDs(ctx context.Context, roleIDs []string) ([]string, bool, error) {
	ids := make([]string, 0, len(roleIDs))
	for _, raw := range roleIDs {
		id, ok := models.ParseID(raw)
		if !ok {
			return nil, false, nil
		}
		role, err := m.roles.GetByID(ctx, id)
		if err != nil {
			return nil, false, err
		}
		if role == nil {
			return nil, false, nil
		}
		ids = append(ids, id)
	}
	return ids, true, nil
}

func (m *ProxyManager) UserRoles(ctx context.Context, userID string) ([]dto.Role, error) {
	roles, err := m.roles.ByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.Role, 0, len(roles))
	for _, r := range roles {
		out = append(out, roleDTO(r))
	}
	return out, nil
}

func (m *ProxyManager) UsersInRole(ctx context.Context, roleID string) ([]dto.User, error) {
	id, ok := models.ParseID(roleID)
	if !ok {
		return nil, nil
	}
	userIDs, err := m.roles.UserIDsInRole(ctx, id)
	if err != nil {
		return nil, err
	}
	users, err := m.users.ByUserIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	out := make([]dto.User, 0, len(users))
	for _, u := range users {
		out = append(out, userDTO(u))
	}
	return out, nil
}

// Groups returns the hierarchy as trees: root groups with their
// descendants nested under SubGroups.
func (m *ProxyManager) Groups(ctx context.Context) ([]dto.Group, error) {
	groups, err := m.groups.List(ctx)
	if err != nil {
		return nil, err
	}
	children := make(map[string][]models.Group, len(groups))
	var roots []models.Group
	for _, g := range groups {
		if g.ParentGroupID == nil {
			roots = append(roots, g)
			continue
		}
		children[*g.ParentGroupID] = append(children[*g.ParentGroupID], g)
	}
	var build func(g models.Group) dto.Group
	build = func(g models.Group) dto.Group {
		node := groupDTO(g)
		for _, child := range children[g.ID] {
			node.SubGroups = append(node.SubGroups, build(child))
		}
		return node
	}
	out := make([]dto.Group, 0, len(roots))
	for _, g := range roots {
		out = append(out, build(g))
	}
	return out, nil
}

func (m *ProxyManager) GroupByID(ctx context.Context, groupID string) (*dto.Group, error) {
	id, ok := models.ParseID(groupID)
	if !ok {
		return nil, nil
	}
	group, err := m.groups.GetByID(ctx, id)
	if err != nil || group == nil {
		return nil, err
	}
	d := groupDTO(*group)
	return &d, nil
}

func (m *ProxyManager) GroupByPath(ctx context.Context, groupPath string) (*dto.Group, error) {
	group, err := m.groups.GetByPath(ctx, groupPath)
	if err != nil || group == nil {
		return nil, err
	}
	d := groupDTO(*group)
	return &d, nil
}

// CreateGroup computes the group's path from its parent. A parent id that
// does not resolve is treated as the root, so the group is still created
// as a top-level group rather than failing.
func (m *ProxyManager) CreateGroup(ctx context.Context, group dto.Group) (dto.Group, error) {
	parentPath := models.RootPath
	var parentID *string
	if group.ParentGroupID != "" {
		if id, ok := models.ParseID(group.ParentGroupID); ok {
			parent, err := m.groups.GetByID(ctx, id)
			if err != nil {
				return dto.Group{}, err
			}
			if parent != nil {
				parentPath = parent.Path
				parentID = &parent.ID
			}
		}
	}
	created, err := m.groups.Create(ctx, models.Group{
		Name:          group.Name,
		Path:          models.ChildPath(parentPath, group.Name),
		ParentGroupID: parentID,
	})
	if err != nil {
		return dto.Group{}, err
	}
	return groupDTO(created), nil
}

// UpdateGroup renames a group in place. The stored path is not rewritten;
// moving a group between parents is not supported.
func (m *ProxyManager) UpdateGroup(ctx context.Context, groupID string, group dto.Group) (bool, error) {
	id, ok := models.ParseID(groupID)
	if !ok {
		return false, nil
	}
	existing, err := m.groups.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, nil
	}
	if group.Name != "" {
		existing.Name = group.Name
	}
	if err := m.groups.Update(ctx, existing); err != nil {
		return false, err
	}
	return true, nil
}

func (m *ProxyManager) DeleteGroup(ctx context.Context, groupID string) (bool, error) {
	id, ok := models.ParseID(groupID)
	if !ok {
		return false, nil
	}
	existing, err := m.groups.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, nil
	}
	if err := m.groups.Delete(ctx, id); err != nil {
		return false, err
	}
	return true, nil
}

func (m *ProxyManager) AssignUserToGroups(ctx context.Context, userID string, groupIDs []string) (bool, error) {
	ids, ok, err := m.resolveGroupIDs(ctx, groupIDs)
	if err != nil || !ok {
		return false, err
	}
	for _, id := range ids {
		if err := m.groups.AddUserToGroup(ctx, userID, id); err != nil {
			return false, err
		}
	}
	return true, nil
}

func (m *ProxyManager) RemoveUserFromGroups(ctx context.Context, userID string, groupIDs []string) (bool, error) {
	ids, ok, err := m.resolveGroupIDs(ctx, groupIDs)
	if err != nil || !ok {
		return false, err
	}
	for _, id := range ids {
		if err := m.groups.RemoveUserFromGroup(ctx, userID, id); err != nil {
			return false, err
		}
	}
	return true, nil
}

func (m *ProxyManager) resolveGroupIDs(ctx context.Context, groupIDs []string) ([]string, bool, error) {
	ids := make([]string, 0, len(groupIDs))
	for _, raw := range groupIDs {
		id, ok := models.ParseID(raw)
		if !ok {
			return nil, false, nil
		}
		group, err := m.groups.GetByID(ctx, id)
		if err != nil {
			return nil, false, err
		}
		if group == nil {
			return nil, false, nil
		}
		ids = append(ids, id)
	}
	return ids, true, nil
}

func (m *ProxyManager) UserGroups(ctx context.Context, userID string) ([]string, error) {
	groups, err := m.groups.ByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(groups))
	for _, g := range groups {
		ids = append(ids, g.ID)
	}
	return ids, nil
}

func (m *ProxyManager) UsersInGroup(ctx context.Context, groupID string) ([]dto.User, error) {
	id, ok := models.ParseID(groupID)
	if !ok {
		return nil, nil
	}
	userIDs, err := m.groups.UserIDsInGroup(ctx, id)
	if err != nil {
		return nil, err
	}
	users, err := m.users.ByUserIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	out := make([]dto.User, 0, len(users))
	for _, u := range users {
		out = append(out, userDTO(u))
	}
	return out, nil
}

// GroupRoles resolves the roles granted through a group. The association
// is keyed by the group's path, matching how enrichment derives roles
// from group memberships.
func (m *ProxyManager) GroupRoles(ctx context.Context, groupID string) ([]dto.Role, error) {
	id, ok := models.ParseID(groupID)
	if !ok {
		return nil, nil
	}
	group, err := m.groups.GetByID(ctx, id)
	if err != nil || group == nil {
		return nil, err
	}
	roles, err := m.roles.ByGroupPath(ctx, group.Path)
	if err != nil {
		return nil, err
	}
	out := make([]dto.Role, 0, len(roles))
	for _, r := range roles {
		out = append(out, roleDTO(r))
	}
	return out, nil
}

func (m *ProxyManager) AssignRolesToGroup(ctx context.Context, groupID string, roleIDs []string) (bool, error) {
	gid, ok := models.ParseID(groupID)
	if !ok {
		return false, nil
	}
	group, err := m.groups.GetByID(ctx, gid)
	if err != nil {
		return false, err
	}
	if group == nil {
		return false, nil
	}
	ids, ok, err := m.resolveRoleIDs(ctx, roleIDs)
	if err != nil || !ok {
		return false, err
	}
	for _, id := range ids {
		if err := m.roles.AssignRoleToGroup(ctx, id, gid); err != nil {
			return false, err
		}
	}
	return true, nil
}

func (m *ProxyManager) RemoveRolesFromGroup(ctx context.Context, groupID string, roleIDs []string) (bool, error) {
	gid, ok := models.ParseID(groupID)
	if !ok {
		return false, nil
	}
	ids, ok, err := m.resolveRoleIDs(ctx, roleIDs)
	if err != nil || !ok {
		return false, err
	}
	for _, id := range ids {
		if err := m.roles.RemoveRoleFromGroup(ctx, id, gid); err != nil {
			return false, err
		}
	}
	return true, nil
}

// SynchronizeUsers is a no-op in proxy mode: local storage is already the
// source of truth, so there is nothing to reconcile.
func (m *ProxyManager) SynchronizeUsers(context.Context) (bool, error) {
	return true, nil
}
