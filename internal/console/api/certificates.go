package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Aladdin-Biyabangard/updevic-console-sub000/internal/console/validate"
)

// SearchCertificates queries issued certificates. The screen is read-only:
// there are no certificate mutations in the console.
func (c *Client) SearchCertificates(
	ctx context.Context,
	criteria validate.CertificateSearch,
	page validate.Pagination,
) (*Page[CertificateSummary], error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page.Page))
	query.Set("size", strconv.Itoa(page.Size))
	setIfPresent(query, "fullName", criteria.FullName)
	setIfPresent(query, "email", criteria.Email)
	setIfPresent(query, "courseName", criteria.CourseName)

	resp, err := c.do(ctx, http.MethodGet, "/admins/certificates", query, nil)
	if err != nil {
		return nil, err
	}

	var result Page[CertificateSummary]
	if err := decodeJSON(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetCertificate fetches one certificate's detailed record.
func (c *Client) GetCertificate(ctx context.Context, id string) (*CertificateDetail, error) {
	resp, err := c.do(ctx, http.MethodGet, "/admins/certificates/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return nil, err
	}

	var detail CertificateDetail
	if err := decodeJSON(resp, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}
