package resources

import (
	"context"

	"github.com/Aladdin-Biyabangard/updevic-console-sub000/internal/console/api"
	"github.com/Aladdin-Biyabangard/updevic-console-sub000/internal/console/state"
	"github.com/Aladdin-Biyabangard/updevic-console-sub000/internal/console/validate"
)

// Payments drives the student-payments screen.
type Payments struct {
	*state.Controller[api.PaymentSummary, api.PaymentDetail, validate.PaymentSearch]
	client *api.Client
}

func NewPayments(client *api.Client) *Payments {
	return &Payments{
		Controller: state.NewController(
			func(ctx context.Context, c validate.PaymentSearch, p validate.Pagination) (api.Page[api.PaymentSummary], error) {
				page, err := client.SearchPayments(ctx, c, p)
				if err != nil {
					return api.Page[api.PaymentSummary]{}, err
				}
				return *page, nil
			},
			func(ctx context.Context, id string) (api.PaymentDetail, error) {
				detail, err := client.GetPayment(ctx, id)
				if err != nil {
					return api.PaymentDetail{}, err
				}
				return *detail, nil
			},
			func(c *validate.PaymentSearch) error { return c.ValidateAndSanitize() },
		),
		client: client,
	}
}

// UpdateDescription rewrites the free-text description on a payment.
func (p *Payments) UpdateDescription(ctx context.Context, id, description string) error {
	text := validate.FreeText{Value: description}
	if err := text.ValidateAndSanitize(); err != nil {
		return err
	}
	return p.Mutate(ctx, id,
		func(ctx context.Context) error {
			return p.client.UpdatePaymentDescription(ctx, id, text.Value)
		},
		patchPayment(id, func(row *api.PaymentSummary) { row.Description = text.Value }))
}

func patchPayment(id string, apply func(*api.PaymentSummary)) func([]api.PaymentSummary) []api.PaymentSummary {
	return func(items []api.PaymentSummary) []api.PaymentSummary {
		for i := range items {
			if items[i].ID == id {
				apply(&items[i])
			}
		}
		return items
	}
}

// TeacherPayments drives the teacher-payouts screen. Payouts share the
// payment criteria but have no detail endpoint; detail fetches are not
// offered.
type TeacherPayments struct {
	*state.Controller[api.TeacherPaymentSummary, struct{}, validate.PaymentSearch]
	client *api.Client
}

func NewTeacherPayments(client *api.Client) *TeacherPayments {
	return &TeacherPayments{
		Controller: state.NewController(
			func(ctx context.Context, c validate.PaymentSearch, p validate.Pagination) (api.Page[api.TeacherPaymentSummary], error) {
				page, err := client.SearchTeacherPayments(ctx, c, p)
				if err != nil {
					return api.Page[api.TeacherPaymentSummary]{}, err
				}
				return *page, nil
			},
			func(ctx context.Context, id string) (struct{}, error) {
				return struct{}{}, nil
			},
			func(c *validate.PaymentSearch) error { return c.ValidateAndSanitize() },
		),
		client: client,
	}
}

// UpdateDescription rewrites the description on a payout.
func (t *TeacherPayments) UpdateDescription(ctx context.Context, id, description string) error {
	text := validate.FreeText{Value: description}
	if err := text.ValidateAndSanitize(); err != nil {
		return err
	}
	return t.Mutate(ctx, id,
		func(ctx context.Context) error {
			return t.client.UpdateTeacherPaymentDescription(ctx, id, text.Value)
		},
		patchTeacherPayment(id, func(row *api.TeacherPaymentSummary) { row.Description = text.Value }))
}

// Pay marks a payout as executed.
func (t *TeacherPayments) Pay(ctx context.Context, id string) error {
	return t.Mutate(ctx, id,
		func(ctx context.Context) error { return t.client.PayTeacherPayment(ctx, id) },
		patchTeacherPayment(id, func(row *api.TeacherPaymentSummary) { row.Paid = true }))
}

func patchTeacherPayment(id string, apply func(*api.TeacherPaymentSummary)) func([]api.TeacherPaymentSummary) []api.TeacherPaymentSummary {
	return func(items []api.TeacherPaymentSummary) []api.TeacherPaymentSummary {
		for i := range items {
			if items[i].ID == id {
				apply(&items[i])
			}
		}
		return items
	}
}
