// Package seed populates the baseline records a fresh installation
// needs: the built-in roles, the admins group, and default settings.
// Every step is idempotent so seeding can run on each startup.
package seed

import (
	"context"
	"log"
	"strconv"

	"github.com/blogms/blogms/models"
	"github.com/blogms/blogms/permission"
	"github.com/blogms/blogms/store"
)

var defaultRoles = []models.Role{
	{Name: permission.RoleAdmin, Description: "Full administrative access"},
	{Name: permission.RoleAuthor, Description: "Writes and submits posts"},
	{Name: permission.RoleEditor, Description: "Reviews, approves and publishes posts"},
	{Name: permission.RoleReader, Description: "Reads published content"},
}

// AdminsGroupPath is the built-in group whose members inherit the Admin
// role.
const AdminsGroupPath = "/admins"

// Run ensures the default roles, the admins group with its Admin role
// grant, and the identity mode setting all exist. useProxyDefault seeds
// the mode setting only when it does not exist yet; the persisted value
// always wins afterwards.
func Run(ctx context.Context, roles *store.RoleStore, groups *store.GroupStore, settings *store.SettingsStore, useProxyDefault bool) error {
	adminRoleID := ""
	for _, role := range defaultRoles {
		existing, err := roles.GetByName(ctx, role.Name)
		if err != nil {
			return err
		}
		if existing == nil {
			created, err := roles.Create(ctx, role)
			if err != nil {
				return err
			}
			log.Printf("seed: created role %s", created.Name)
			existing = &created
		}
		if role.Name == permission.RoleAdmin {
			adminRoleID = existing.ID
		}
	}

	admins, err := groups.GetByPath(ctx, AdminsGroupPath)
	if err != nil {
		return err
	}
	if admins == nil {
		created, err := groups.Create(ctx, models.Group{
			Name: "admins",
			Path: AdminsGroupPath,
		})
		if err != nil {
			return err
		}
		log.Printf("seed: created group %s", created.Path)
		admins = &created
	}
	if adminRoleID != "" {
		if err := roles.AssignRoleToGroup(ctx, adminRoleID, admins.ID); err != nil {
			return err
		}
	}

	existing, err := settings.Get(ctx, store.SettingUseProxy)
	if err != nil {
		return err
	}
	if existing == nil {
		value := strconv.FormatBool(useProxyDefault)
		if err := settings.SetWithDescription(ctx, store.SettingUseProxy, value,
			"Serve identity from local storage; Keycloak only authenticates"); err != nil {
			return err
		}
		log.Printf("seed: defaulted %s to %s", store.SettingUseProxy, value)
	}
	return nil
}
