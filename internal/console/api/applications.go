package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Aladdin-Biyabangard/updevic-console-sub000/internal/console/validate"
)

// SearchApplications queries the teacher-applications screen. All criteria
// fields are optional and ANDed server-side.
func (c *Client) SearchApplications(
	ctx context.Context,
	criteria validate.ApplicationSearch,
	page validate.Pagination,
) (*Page[ApplicationSummary], error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page.Page))
	query.Set("size", strconv.Itoa(page.Size))
	setIfPresent(query, "fullName", criteria.FullName)
	setIfPresent(query, "email", criteria.Email)
	setIfPresent(query, "teachingField", criteria.TeachingField)
	setIfPresent(query, "status", criteria.Status)

	resp, err := c.do(ctx, http.MethodGet, "/applications/search", query, nil)
	if err != nil {
		return nil, err
	}

	var result Page[ApplicationSummary]
	if err := decodeJSON(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetApplication fetches the detailed variant of one application.
func (c *Client) GetApplication(ctx context.Context, id string) (*ApplicationDetail, error) {
	resp, err := c.do(ctx, http.MethodGet, "/applications/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return nil, err
	}

	var detail ApplicationDetail
	if err := decodeJSON(resp, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// MarkApplicationRead flags an application as seen by a reviewer.
func (c *Client) MarkApplicationRead(ctx context.Context, id string) error {
	resp, err := c.do(ctx, http.MethodPut, "/applications/"+url.PathEscape(id)+"/read", nil, nil)
	if err != nil {
		return err
	}
	drain(resp)
	return nil
}

type reviewMessage struct {
	Message string `json:"message"`
}

// ApproveApplication approves an application with an optional message to
// the applicant.
func (c *Client) ApproveApplication(ctx context.Context, id, message string) error {
	resp, err := c.do(ctx, http.MethodPut,
		"/applications/"+url.PathEscape(id)+"/approve", nil, reviewMessage{Message: message})
	if err != nil {
		return err
	}
	drain(resp)
	return nil
}

// RejectApplication rejects an application with a mandatory message.
func (c *Client) RejectApplication(ctx context.Context, id, message string) error {
	resp, err := c.do(ctx, http.MethodPut,
		"/applications/"+url.PathEscape(id)+"/reject", nil, reviewMessage{Message: message})
	if err != nil {
		return err
	}
	drain(resp)
	return nil
}

// DeleteApplication removes an application. Deletion is server-confirmed:
// callers splice the row out locally only after this returns nil.
func (c *Client) DeleteApplication(ctx context.Context, id string) error {
	resp, err := c.do(ctx, http.MethodDelete, "/applications/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return err
	}
	drain(resp)
	return nil
}

func setIfPresent(query url.Values, key, value string) {
	if value != "" {
		query.Set(key, value)
	}
}
