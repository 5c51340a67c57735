package keycloak

import (
	"context"
	"errors"
	"net/http"
	"net/url"
)

// errNotFound is internal: public lookups convert it to (nil, nil).
var errNotFound = errors.New("keycloak: not found")

// Users lists the realm's users.
func (c *Client) Users(ctx context.Context) ([]UserRepresentation, error) {
	var users []UserRepresentation
	if err := c.do(ctx, http.MethodGet, "/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// UserByID returns (nil, nil) when the user does not exist.
func (c *Client) UserByID(ctx context.Context, id string) (*UserRepresentation, error) {
	var user UserRepresentation
	err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(id), nil, &user)
	if errors.Is(err, errNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UserByUsername resolves an exact username match, (nil, nil) when absent.
func (c *Client) UserByUsername(ctx context.Context, username string) (*UserRepresentation, error) {
	path := "/users?exact=true&username=" + url.QueryEscape(username)
	var users []UserRepresentation
	if err := c.do(ctx, http.MethodGet, path, nil, &users); err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, nil
	}
	return &users[0], nil
}

// CreateUser creates a user in the realm.
func (c *Client) CreateUser(ctx context.Context, user UserRepresentation) error {
	return c.do(ctx, http.MethodPost, "/users", user, nil)
}

// UpdateUser overwrites the user's profile.
func (c *Client) UpdateUser(ctx context.Context, id string, user UserRepresentation) error {
	return c.do(ctx, http.MethodPut, "/users/"+url.PathEscape(id), user, nil)
}

// DeleteUser removes the user. Missing users return errNotFound.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/users/"+url.PathEscape(id), nil, nil)
}

// ResetPassword sets a new password credential for the user.
func (c *Client) ResetPassword(ctx context.Context, id string, cred CredentialRepresentation) error {
	return c.do(ctx, http.MethodPut, "/users/"+url.PathEscape(id)+"/reset-password", cred, nil)
}

// IsNotFound reports whether err marks a missing resource.
func IsNotFound(err error) bool { return errors.Is(err, errNotFound) }
