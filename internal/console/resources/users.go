package resources

import (
	"context"
	"slices"

	"github.com/Aladdin-Biyabangard/updevic-console-sub000/internal/console/api"
	"github.com/Aladdin-Biyabangard/updevic-console-sub000/internal/console/domain"
	"github.com/Aladdin-Biyabangard/updevic-console-sub000/internal/console/state"
	"github.com/Aladdin-Biyabangard/updevic-console-sub000/internal/console/validate"
)

// Users drives the back-office users screen.
type Users struct {
	*state.Controller[api.UserSummary, api.UserDetail, validate.UserSearch]
	client *api.Client
}

func NewUsers(client *api.Client) *Users {
	return &Users{
		Controller: state.NewController(
			func(ctx context.Context, c validate.UserSearch, p validate.Pagination) (api.Page[api.UserSummary], error) {
				page, err := client.SearchUsers(ctx, c, p)
				if err != nil {
					return api.Page[api.UserSummary]{}, err
				}
				return *page, nil
			},
			func(ctx context.Context, id string) (api.UserDetail, error) {
				detail, err := client.GetUser(ctx, id)
				if err != nil {
					return api.UserDetail{}, err
				}
				return *detail, nil
			},
			func(c *validate.UserSearch) error { return c.ValidateAndSanitize() },
		),
		client: client,
	}
}

// Activate re-enables a deactivated account.
func (u *Users) Activate(ctx context.Context, id string) error {
	return u.Mutate(ctx, id,
		func(ctx context.Context) error { return u.client.ActivateUser(ctx, id) },
		patchUser(id, func(row *api.UserSummary) { row.Status = domain.UserActive }))
}

// Deactivate disables an account without deleting it.
func (u *Users) Deactivate(ctx context.Context, id string) error {
	return u.Mutate(ctx, id,
		func(ctx context.Context) error { return u.client.DeactivateUser(ctx, id) },
		patchUser(id, func(row *api.UserSummary) { row.Status = domain.UserInactive }))
}

// AssignRole grants a role to a user.
func (u *Users) AssignRole(ctx context.Context, id, role string) error {
	assignment := validate.RoleAssignment{UserID: id, Role: role}
	if err := assignment.ValidateAndSanitize(); err != nil {
		return err
	}
	return u.Mutate(ctx, assignment.UserID,
		func(ctx context.Context) error {
			return u.client.AssignRole(ctx, assignment.UserID, assignment.Role)
		},
		patchUser(assignment.UserID, func(row *api.UserSummary) {
			if !slices.Contains(row.Roles, assignment.Role) {
				row.Roles = append(row.Roles, assignment.Role)
			}
		}))
}

// RemoveRole revokes a role from a user.
func (u *Users) RemoveRole(ctx context.Context, id, role string) error {
	assignment := validate.RoleAssignment{UserID: id, Role: role}
	if err := assignment.ValidateAndSanitize(); err != nil {
		return err
	}
	return u.Mutate(ctx, assignment.UserID,
		func(ctx context.Context) error {
			return u.client.RemoveRole(ctx, assignment.UserID, assignment.Role)
		},
		patchUser(assignment.UserID, func(row *api.UserSummary) {
			row.Roles = slices.DeleteFunc(row.Roles, func(r string) bool {
				return r == assignment.Role
			})
		}))
}

// Delete removes an account after server confirmation.
func (u *Users) Delete(ctx context.Context, id string) error {
	return u.Mutate(ctx, id,
		func(ctx context.Context) error { return u.client.DeleteUser(ctx, id) },
		func(items []api.UserSummary) []api.UserSummary {
			return splice(items, func(row api.UserSummary) bool { return row.ID == id })
		})
}

func patchUser(id string, apply func(*api.UserSummary)) func([]api.UserSummary) []api.UserSummary {
	return func(items []api.UserSummary) []api.UserSummary {
		for i := range items {
			if items[i].ID == id {
				apply(&items[i])
			}
		}
		return items
	}
}
