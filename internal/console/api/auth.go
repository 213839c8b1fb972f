package api

import (
	"context"
	"net/http"
)

// SignIn exchanges operator credentials for a bearer token. The payload is
// expected to have passed the login schema already; this wrapper is wire
// only.
func (c *Client) SignIn(ctx context.Context, req SignInRequest) (*SignInResponse, error) {
	resp, err := c.do(ctx, http.MethodPost, "/auth/sign-in", nil, req)
	if err != nil {
		return nil, err
	}

	var signIn SignInResponse
	if err := decodeJSON(resp, &signIn); err != nil {
		return nil, err
	}
	return &signIn, nil
}

// Profile fetches the signed-in operator's profile. A 401 here runs the
// standard teardown path like any other request.
func (c *Client) Profile(ctx context.Context) (*ProfileResponse, error) {
	resp, err := c.do(ctx, http.MethodGet, "/auth/profile", nil, nil)
	if err != nil {
		return nil, err
	}

	var profile ProfileResponse
	if err := decodeJSON(resp, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
