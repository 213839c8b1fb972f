// Package api is the console's single request pipeline to the back-office
// REST API. Every outbound call goes through one configured Client that
// attaches the bearer token, merges the CSRF header pair on mutating verbs,
// tears the session down on any 401, and sanitizes every failure before it
// reaches calling code.
package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/Aladdin-Biyabangard/updevic-console-sub000/internal/console/security"
	"github.com/Aladdin-Biyabangard/updevic-console-sub000/internal/console/session"
	"github.com/Aladdin-Biyabangard/updevic-console-sub000/internal/console/store"
	"golang.org/x/time/rate"
)

// DefaultTimeout bounds every request. It is the only bound on a hung
// request: there is no retry and no per-call cancellation policy beyond the
// caller's context.
const DefaultTimeout = 5 * time.Second

// HeaderCorrelationID carries the per-request id that also tags the
// request's log lines.
const HeaderCorrelationID = "X-Correlation-ID"

// LogoutNotifier receives the logout broadcast emitted on any 401 response.
// It is injected at construction so the pipeline never calls into the auth
// state layer directly.
type LogoutNotifier interface {
	NotifyLogout(ctx context.Context)
}

// Config configures the request pipeline.
type Config struct {
	BaseURL string

	// Timeout defaults to DefaultTimeout when zero.
	Timeout time.Duration

	// RequestsPerMinute throttles outbound traffic so a misbehaving screen
	// cannot hammer the backend. Defaults to 120 when zero.
	RequestsPerMinute int
}

// Client is the configured request-dispatch pipeline.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter

	creds    store.Credentials
	guard    *session.Guard
	recorder *security.Recorder
	logout   LogoutNotifier
}

// NewClient wires the pipeline. creds is read on every request (the store
// stays the single source of truth for signing); guard supplies CSRF
// headers for mutating verbs; logout is notified on 401.
func NewClient(
	cfg Config,
	creds store.Credentials,
	guard *session.Guard,
	recorder *security.Recorder,
	logout LogoutNotifier,
) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	rpm := cfg.RequestsPerMinute
	if rpm <= 0 {
		rpm = 120
	}

	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(float64(rpm)/60.0), rpm),
		creds:      creds,
		guard:      guard,
		recorder:   recorder,
		logout:     logout,
	}
}
