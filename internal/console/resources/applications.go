// Package resources instantiates the generic resource controller for every
// back-office screen and gives each its verb set. Each verb validates its
// payload before touching the wire and patches the listed rows only after
// the server confirms.
package resources

import (
	"context"

	"github.com/Aladdin-Biyabangard/updevic-console-sub000/internal/console/api"
	"github.com/Aladdin-Biyabangard/updevic-console-sub000/internal/console/domain"
	"github.com/Aladdin-Biyabangard/updevic-console-sub000/internal/console/state"
	"github.com/Aladdin-Biyabangard/updevic-console-sub000/internal/console/validate"
)

// Applications drives the teacher-applications screen.
type Applications struct {
	*state.Controller[api.ApplicationSummary, api.ApplicationDetail, validate.ApplicationSearch]
	client *api.Client
}

func NewApplications(client *api.Client) *Applications {
	return &Applications{
		Controller: state.NewController(
			func(ctx context.Context, c validate.ApplicationSearch, p validate.Pagination) (api.Page[api.ApplicationSummary], error) {
				page, err := client.SearchApplications(ctx, c, p)
				if err != nil {
					return api.Page[api.ApplicationSummary]{}, err
				}
				return *page, nil
			},
			func(ctx context.Context, id string) (api.ApplicationDetail, error) {
				detail, err := client.GetApplication(ctx, id)
				if err != nil {
					return api.ApplicationDetail{}, err
				}
				return *detail, nil
			},
			func(c *validate.ApplicationSearch) error { return c.ValidateAndSanitize() },
		),
		client: client,
	}
}

// MarkRead flags an application as seen by a reviewer.
func (a *Applications) MarkRead(ctx context.Context, id string) error {
	action := validate.ApplicationAction{ID: id, Action: validate.ActionRead}
	if err := action.ValidateAndSanitize(); err != nil {
		return err
	}
	return a.Mutate(ctx, action.ID,
		func(ctx context.Context) error { return a.client.MarkApplicationRead(ctx, action.ID) },
		patchApplication(action.ID, func(row *api.ApplicationSummary) {
			row.Read = true
		}))
}

// Approve approves an application with an optional message.
func (a *Applications) Approve(ctx context.Context, id, message string) error {
	action := validate.ApplicationAction{ID: id, Action: validate.ActionApprove, Message: message}
	if err := action.ValidateAndSanitize(); err != nil {
		return err
	}
	return a.Mutate(ctx, action.ID,
		func(ctx context.Context) error {
			return a.client.ApproveApplication(ctx, action.ID, action.Message)
		},
		patchApplication(action.ID, func(row *api.ApplicationSummary) {
			row.Status = domain.ApplicationApproved
			row.Read = true
		}))
}

// Reject rejects an application. The message is mandatory and travels to
// the applicant.
func (a *Applications) Reject(ctx context.Context, id, message string) error {
	action := validate.ApplicationAction{ID: id, Action: validate.ActionReject, Message: message}
	if err := action.ValidateAndSanitize(); err != nil {
		return err
	}
	return a.Mutate(ctx, action.ID,
		func(ctx context.Context) error {
			return a.client.RejectApplication(ctx, action.ID, action.Message)
		},
		patchApplication(action.ID, func(row *api.ApplicationSummary) {
			row.Status = domain.ApplicationRejected
			row.Read = true
		}))
}

// Delete removes an application. The row is spliced out only after the
// server confirms.
func (a *Applications) Delete(ctx context.Context, id string) error {
	action := validate.ApplicationAction{ID: id, Action: validate.ActionDelete}
	if err := action.ValidateAndSanitize(); err != nil {
		return err
	}
	return a.Mutate(ctx, action.ID,
		func(ctx context.Context) error { return a.client.DeleteApplication(ctx, action.ID) },
		func(items []api.ApplicationSummary) []api.ApplicationSummary {
			return splice(items, func(row api.ApplicationSummary) bool { return row.ID == action.ID })
		})
}

func patchApplication(id string, apply func(*api.ApplicationSummary)) func([]api.ApplicationSummary) []api.ApplicationSummary {
	return func(items []api.ApplicationSummary) []api.ApplicationSummary {
		for i := range items {
			if items[i].ID == id {
				apply(&items[i])
			}
		}
		return items
	}
}

// splice removes the rows matching drop, preserving order.
func splice[T any](items []T, drop func(T) bool) []T {
	out := items[:0]
	for _, item := range items {
		if !drop(item) {
			out = append(out, item)
		}
	}
	return out
}
