package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Aladdin-Biyabangard/updevic-console-sub000/internal/console/validate"
)

func paymentQuery(criteria validate.PaymentSearch, page validate.Pagination) url.Values {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page.Page))
	query.Set("size", strconv.Itoa(page.Size))
	setIfPresent(query, "email", criteria.Email)
	setIfPresent(query, "status", criteria.Status)
	return query
}

// SearchPayments queries student payment transactions.
func (c *Client) SearchPayments(
	ctx context.Context,
	criteria validate.PaymentSearch,
	page validate.Pagination,
) (*Page[PaymentSummary], error) {
	resp, err := c.do(ctx, http.MethodGet, "/admins/payments", paymentQuery(criteria, page), nil)
	if err != nil {
		return nil, err
	}

	var result Page[PaymentSummary]
	if err := decodeJSON(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetPayment fetches one transaction's detailed record.
func (c *Client) GetPayment(ctx context.Context, id string) (*PaymentDetail, error) {
	resp, err := c.do(ctx, http.MethodGet, "/admins/payments/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return nil, err
	}

	var detail PaymentDetail
	if err := decodeJSON(resp, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// UpdatePaymentDescription rewrites the free-text description on a payment.
// The description travels as a query parameter per the backend contract.
func (c *Client) UpdatePaymentDescription(ctx context.Context, id, description string) error {
	query := url.Values{"description": {description}}
	resp, err := c.do(ctx, http.MethodPut, "/admins/payments/"+url.PathEscape(id), query, nil)
	if err != nil {
		return err
	}
	drain(resp)
	return nil
}

// SearchTeacherPayments queries teacher payout records.
func (c *Client) SearchTeacherPayments(
	ctx context.Context,
	criteria validate.PaymentSearch,
	page validate.Pagination,
) (*Page[TeacherPaymentSummary], error) {
	resp, err := c.do(ctx, http.MethodGet, "/admins/teacher-payments", paymentQuery(criteria, page), nil)
	if err != nil {
		return nil, err
	}

	var result Page[TeacherPaymentSummary]
	if err := decodeJSON(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateTeacherPaymentDescription rewrites the description on a payout.
func (c *Client) UpdateTeacherPaymentDescription(ctx context.Context, id, description string) error {
	query := url.Values{"description": {description}}
	resp, err := c.do(ctx, http.MethodPut, "/admins/teacher-payments/"+url.PathEscape(id), query, nil)
	if err != nil {
		return err
	}
	drain(resp)
	return nil
}

// PayTeacherPayment marks a payout as executed.
func (c *Client) PayTeacherPayment(ctx context.Context, id string) error {
	resp, err := c.do(ctx, http.MethodPost,
		"/admins/teacher-payments/"+url.PathEscape(id)+"/pay", nil, nil)
	if err != nil {
		return err
	}
	drain(resp)
	return nil
}
