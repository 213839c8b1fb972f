package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/Aladdin-Biyabangard/updevic-console-sub000/internal/console/domain"
	"github.com/Aladdin-Biyabangard/updevic-console-sub000/internal/console/store"
	"github.com/Aladdin-Biyabangard/updevic-console-sub000/pkg/idx"
	"github.com/Aladdin-Biyabangard/updevic-console-sub000/pkg/slogx"
)

// url builds a complete URL by appending the path and query to the base URL.
func (c *Client) url(path string, query url.Values) string {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch:
		return true
	}
	return false
}

// do runs one request through the full pipeline and returns the response
// only on a 2xx status. Every failure comes back as a typed, sanitized
// error; error response bodies are discarded unread.
func (c *Client) do(
	ctx context.Context,
	method, path string,
	query url.Values,
	body any,
) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, sanitizeStatus(0)
	}

	cid := idx.New()
	ctx = slogx.WithCorrelationID(ctx, cid.String())
	log := slogx.FromContext(ctx)

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path, query), reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderCorrelationID, cid.String())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	// The credential store is read per request; nothing above this layer
	// caches a signing copy.
	if token, ok := c.bearerToken(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	// Mutating verbs carry the CSRF header pair. A guard refusal is fatal
	// for this request: it must not be sent.
	if isMutating(method) {
		headers, err := c.guard.Headers()
		if err != nil {
			c.recorder.Record(ctx, domain.EventOriginRejected, method+" "+path)
			return nil, err
		}
		for k, v := range headers {
			req.Header.Set(k, v)
		}
	}

	log.Debug("dispatching request", "method", method, "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn("request transport failure", "method", method, "path", path, "error", err)
		return nil, sanitizeStatus(0)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.handleUnauthorized(ctx, method, path)
		drain(resp)
		return nil, sanitizeStatus(http.StatusUnauthorized)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Warn("request failed", "method", method, "path", path, "status", resp.StatusCode)
		drain(resp)
		return nil, sanitizeStatus(resp.StatusCode)
	}

	return resp, nil
}

// handleUnauthorized is the 401 interceptor: clear the stored credential,
// record the security event, and broadcast the logout signal. The broadcast
// goes through the injected notifier, never a direct call into the auth
// manager.
func (c *Client) handleUnauthorized(ctx context.Context, method, path string) {
	if err := c.creds.Remove(ctx); err != nil {
		slogx.FromContext(ctx).Error("failed to clear credential after 401", "error", err)
	}
	c.recorder.Record(ctx, domain.EventUnauthorized, method+" "+path)
	if c.logout != nil {
		c.logout.NotifyLogout(ctx)
	}
}

func (c *Client) bearerToken(ctx context.Context) (string, bool) {
	cred, err := c.creds.Get(ctx, time.Now())
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			c.recorder.Record(ctx, domain.EventStateCorrupted, "credential read failed")
		}
		return "", false
	}
	return cred.Token, true
}

// drain discards an error response body. Raw server error detail must never
// reach calling code, so nothing is ever parsed out of it.
func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	_ = resp.Body.Close()
}

// decodeJSON decodes a successful response into target and closes the body.
func decodeJSON(resp *http.Response, target any) error {
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
