package resources

import (
	"context"
	"sync"

	"github.com/Aladdin-Biyabangard/updevic-console-sub000/internal/console/api"
)

// Dashboard drives the landing screen: aggregate counters plus the chart
// series. There is no pagination and no mutation, so it does not use the
// generic controller.
type Dashboard struct {
	client *api.Client

	mu      sync.Mutex
	summary *api.DashboardResponse
	charts  *api.ChartsResponse
}

func NewDashboard(client *api.Client) *Dashboard {
	return &Dashboard{client: client}
}

// Refresh fetches counters and charts. On failure the previously loaded
// data stays visible.
func (d *Dashboard) Refresh(ctx context.Context) error {
	summary, err := d.client.Dashboard(ctx)
	if err != nil {
		return err
	}
	charts, err := d.client.Charts(ctx)
	if err != nil {
		return err
	}

	d.mu.Lock()
	d.summary = summary
	d.charts = charts
	d.mu.Unlock()
	return nil
}

// Summary returns the loaded counters, if any.
func (d *Dashboard) Summary() (api.DashboardResponse, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.summary == nil {
		return api.DashboardResponse{}, false
	}
	return *d.summary, true
}

// Charts returns the loaded chart series, if any.
func (d *Dashboard) Charts() (api.ChartsResponse, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.charts == nil {
		return api.ChartsResponse{}, false
	}
	return *d.charts, true
}
