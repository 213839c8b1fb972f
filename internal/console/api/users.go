package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Aladdin-Biyabangard/updevic-console-sub000/internal/console/validate"
)

// SearchUsers queries the back-office users screen.
func (c *Client) SearchUsers(
	ctx context.Context,
	criteria validate.UserSearch,
	page validate.Pagination,
) (*Page[UserSummary], error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page.Page))
	query.Set("size", strconv.Itoa(page.Size))
	setIfPresent(query, "firstName", criteria.FirstName)
	setIfPresent(query, "email", criteria.Email)
	setIfPresent(query, "roles", criteria.Roles)
	setIfPresent(query, "status", criteria.Status)

	resp, err := c.do(ctx, http.MethodGet, "/admins/search", query, nil)
	if err != nil {
		return nil, err
	}

	var result Page[UserSummary]
	if err := decodeJSON(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetUser fetches one user's detailed record.
func (c *Client) GetUser(ctx context.Context, id string) (*UserDetail, error) {
	resp, err := c.do(ctx, http.MethodGet, "/admins/users/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return nil, err
	}

	var detail UserDetail
	if err := decodeJSON(resp, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// ActivateUser re-enables a deactivated account.
func (c *Client) ActivateUser(ctx context.Context, id string) error {
	return c.putUserAction(ctx, id, "activate")
}

// DeactivateUser disables an account without deleting it.
func (c *Client) DeactivateUser(ctx context.Context, id string) error {
	return c.putUserAction(ctx, id, "deactivate")
}

func (c *Client) putUserAction(ctx context.Context, id, action string) error {
	resp, err := c.do(ctx, http.MethodPut,
		"/admins/users/"+url.PathEscape(id)+"/"+action, nil, nil)
	if err != nil {
		return err
	}
	drain(resp)
	return nil
}

// AssignRole grants a role to a user. The role travels as a query
// parameter per the backend contract.
func (c *Client) AssignRole(ctx context.Context, id, role string) error {
	query := url.Values{"role": {role}}
	resp, err := c.do(ctx, http.MethodPut,
		"/admins/users/"+url.PathEscape(id)+"/assign/role", query, nil)
	if err != nil {
		return err
	}
	drain(resp)
	return nil
}

// RemoveRole revokes a role from a user.
func (c *Client) RemoveRole(ctx context.Context, id, role string) error {
	query := url.Values{"role": {role}}
	resp, err := c.do(ctx, http.MethodPut,
		"/admins/users/"+url.PathEscape(id)+"/role", query, nil)
	if err != nil {
		return err
	}
	drain(resp)
	return nil
}

// DeleteUser removes an account. Like every delete in the console this is
// server-confirmed; there is no local-only removal path.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	resp, err := c.do(ctx, http.MethodDelete, "/admins/users/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return err
	}
	drain(resp)
	return nil
}
