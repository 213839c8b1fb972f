package api

import (
	"context"
	"net/http"
)

// Dashboard fetches the headline counters for the landing screen.
func (c *Client) Dashboard(ctx context.Context) (*DashboardResponse, error) {
	resp, err := c.do(ctx, http.MethodGet, "/admins/dashboard", nil, nil)
	if err != nil {
		return nil, err
	}

	var dashboard DashboardResponse
	if err := decodeJSON(resp, &dashboard); err != nil {
		return nil, err
	}
	return &dashboard, nil
}

// Charts fetches the aggregated series behind the dashboard charts.
func (c *Client) Charts(ctx context.Context) (*ChartsResponse, error) {
	resp, err := c.do(ctx, http.MethodGet, "/admins/charts", nil, nil)
	if err != nil {
		return nil, err
	}

	var charts ChartsResponse
	if err := decodeJSON(resp, &charts); err != nil {
		return nil, err
	}
	return &charts, nil
}
