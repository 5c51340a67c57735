package keycloak

import (
	"context"
	"errors"
	"net/http"
	"net/url"
)

// Groups lists the realm's group hierarchy.
func (c *Client) Groups(ctx context.Context) ([]GroupRepresentation, error) {
	var groups []GroupRepresentation
	if err := c.do(ctx, http.MethodGet, "/groups", nil, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// GroupByID returns (nil, nil) when the group does not exist.
func (c *Client) GroupByID(ctx context.Context, id string) (*GroupRepresentation, error) {
	var group GroupRepresentation
	err := c.do(ctx, http.MethodGet, "/groups/"+url.PathEscape(id), nil, &group)
	if errors.Is(err, errNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &group, nil
}

// UserGroups lists the groups a user belongs to.
func (c *Client) UserGroups(ctx context.Context, userID string) ([]GroupRepresentation, error) {
	var groups []GroupRepresentation
	path := "/users/" + url.PathEscape(userID) + "/groups"
	if err := c.do(ctx, http.MethodGet, path, nil, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// AddUserToGroup adds a user to a group.
func (c *Client) AddUserToGroup(ctx context.Context, userID, groupID string) error {
	path := "/users/" + url.PathEscape(userID) + "/groups/" + url.PathEscape(groupID)
	return c.do(ctx, http.MethodPut, path, nil, nil)
}

// RemoveUserFromGroup removes a user from a group.
func (c *Client) RemoveUserFromGroup(ctx context.Context, userID, groupID string) error {
	path := "/users/" + url.PathEscape(userID) + "/groups/" + url.PathEscape(groupID)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}
