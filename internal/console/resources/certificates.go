package resources

import (
	"context"

	"github.com/Aladdin-Biyabangard/updevic-console-sub000/internal/console/api"
	"github.com/Aladdin-Biyabangard/updevic-console-sub000/internal/console/state"
	"github.com/Aladdin-Biyabangard/updevic-console-sub000/internal/console/validate"
)

// Certificates drives the certificates screen. The screen is read-only, so
// the controller carries no verbs beyond search and detail.
type Certificates struct {
	*state.Controller[api.CertificateSummary, api.CertificateDetail, validate.CertificateSearch]
}

func NewCertificates(client *api.Client) *Certificates {
	return &Certificates{
		Controller: state.NewController(
			func(ctx context.Context, c validate.CertificateSearch, p validate.Pagination) (api.Page[api.CertificateSummary], error) {
				page, err := client.SearchCertificates(ctx, c, p)
				if err != nil {
					return api.Page[api.CertificateSummary]{}, err
				}
				return *page, nil
			},
			func(ctx context.Context, id string) (api.CertificateDetail, error) {
				detail, err := client.GetCertificate(ctx, id)
				if err != nil {
					return api.CertificateDetail{}, err
				}
				return *detail, nil
			},
			func(c *validate.CertificateSearch) error { return c.ValidateAndSanitize() },
		),
	}
}
