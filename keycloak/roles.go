package keycloak

import (
	"context"
	"errors"
	"net/http"
	"net/url"
)

// Roles lists the realm roles.
func (c *Client) Roles(ctx context.Context) ([]RoleRepresentation, error) {
	var roles []RoleRepresentation
	if err := c.do(ctx, http.MethodGet, "/roles", nil, &roles); err != nil {
		return nil, err
	}
	return roles, nil
}

// RoleByName returns (nil, nil) when no realm role carries the name.
func (c *Client) RoleByName(ctx context.Context, name string) (*RoleRepresentation, error) {
	var role RoleRepresentation
	err := c.do(ctx, http.MethodGet, "/roles/"+url.PathEscape(name), nil, &role)
	if errors.Is(err, errNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &role, nil
}

// UserRealmRoles lists the realm roles mapped directly to a user.
func (c *Client) UserRealmRoles(ctx context.Context, userID string) ([]RoleRepresentation, error) {
	var roles []RoleRepresentation
	path := "/users/" + url.PathEscape(userID) + "/role-mappings/realm"
	if err := c.do(ctx, http.MethodGet, path, nil, &roles); err != nil {
		return nil, err
	}
	return roles, nil
}

// AddUserRealmRoles maps realm roles onto a user.
func (c *Client) AddUserRealmRoles(ctx context.Context, userID string, roles []RoleRepresentation) error {
	path := "/users/" + url.PathEscape(userID) + "/role-mappings/realm"
	return c.do(ctx, http.MethodPost, path, roles, nil)
}

// RemoveUserRealmRoles unmaps realm roles from a user.
func (c *Client) RemoveUserRealmRoles(ctx context.Context, userID string, roles []RoleRepresentation) error {
	path := "/users/" + url.PathEscape(userID) + "/role-mappings/realm"
	return c.do(ctx, http.MethodDelete, path, roles, nil)
}
