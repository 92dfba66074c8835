// Package client is the HTTP client for the auction service's seller
// surface. The service is an opaque boundary: this package converts wire
// shapes, classifies failures, and nothing more. Lifecycle rules live in
// core and sequencing lives in dashboard.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/marketbay/auctiondesk/core"
)

const defaultTimeout = 10 * time.Second

// Client talks to the auction service with a cookie-based session.
type Client struct {
	baseURL *url.URL
	httpc   *http.Client
	log     zerolog.Logger

	sessionCookie *http.Cookie
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the request logger. The default discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithHTTPClient replaces the underlying HTTP client. The replacement keeps
// its own jar and timeout.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpc = h }
}

// WithTimeout sets the per-request deadline on the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpc.Timeout = d }
}

// WithSessionCookie seeds the jar with a session cookie, given as
// "name=value".
func WithSessionCookie(raw string) Option {
	return func(c *Client) {
		name, value, ok := strings.Cut(raw, "=")
		if !ok || name == "" {
			return
		}
		c.sessionCookie = &http.Cookie{Name: name, Value: value}
	}
}

// New builds a Client for the auction service at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base URL %q must be absolute", baseURL)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}

	c := &Client{
		baseURL: u,
		httpc:   &http.Client{Jar: jar, Timeout: defaultTimeout},
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.sessionCookie != nil && c.httpc.Jar != nil {
		c.httpc.Jar.SetCookies(u, []*http.Cookie{c.sessionCookie})
	}

	return c, nil
}

// ListMyAuctions fetches the seller's auctions, optionally filtered by
// status.
func (c *Client) ListMyAuctions(ctx context.Context, status string) ([]core.Auction, error) {
	query := url.Values{}
	if status != "" {
		query.Set("status", status)
	}

	var dtos []auctionDTO
	if err := c.do(ctx, http.MethodGet, "/auctions/seller/my-auctions", query, nil, &dtos); err != nil {
		return nil, fmt.Errorf("list auctions: %w", err)
	}

	auctions := make([]core.Auction, len(dtos))
	for i, d := range dtos {
		auctions[i] = d.toCore()
	}
	return auctions, nil
}

// GetAuction fetches a single auction, including its participants count.
func (c *Client) GetAuction(ctx context.Context, auctionID string) (core.Auction, error) {
	var dto auctionDTO
	if err := c.do(ctx, http.MethodGet, "/auctions/"+url.PathEscape(auctionID), nil, nil, &dto); err != nil {
		return core.Auction{}, fmt.Errorf("get auction %s: %w", auctionID, err)
	}
	return dto.toCore(), nil
}

// ListBids fetches the bid history of an auction. Deployments without bid
// history return 404, mapped to ErrUnsupported.
func (c *Client) ListBids(ctx context.Context, auctionID string) ([]core.Bid, error) {
	var dtos []bidDTO
	err := c.do(ctx, http.MethodGet, "/auctions/"+url.PathEscape(auctionID)+"/bids", nil, nil, &dtos)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("bid history: %w", ErrUnsupported)
		}
		return nil, fmt.Errorf("list bids for %s: %w", auctionID, err)
	}

	bids := make([]core.Bid, len(dtos))
	for i, d := range dtos {
		bids[i] = d.toCore()
	}
	return bids, nil
}

// UpdateAuction submits a validated seller edit and returns the updated
// record as the service stored it. Times are sent as ISO-8601.
func (c *Client) UpdateAuction(ctx context.Context, auctionID string, edit core.ValidatedEdit) (core.Auction, error) {
	body := updateRequest{
		StartPrice:   edit.StartPrice,
		ReservePrice: edit.ReservePrice,
		MinIncrement: edit.MinIncrement,
		StartAt:      edit.StartAt.Format(time.RFC3339),
		EndAt:        edit.EndAt.Format(time.RFC3339),
	}

	var dto auctionDTO
	if err := c.do(ctx, http.MethodPut, "/auctions/"+url.PathEscape(auctionID), nil, body, &dto); err != nil {
		return core.Auction{}, fmt.Errorf("update auction %s: %w", auctionID, err)
	}
	return dto.toCore(), nil
}

// Transition invokes one lifecycle endpoint (activate-now, pause, resume,
// cancel) for an auction. The caller resolves whether the transition is
// allowed before calling; the service remains the final authority.
func (c *Client) Transition(ctx context.Context, auctionID string, action core.Action) error {
	endpoint, err := endpointFor(action)
	if err != nil {
		return err
	}

	var res transitionResponse
	err = c.do(ctx, http.MethodPut, "/auctions/"+url.PathEscape(auctionID)+"/"+endpoint, nil, nil, &res)
	if err != nil {
		// Pause/resume may not exist on older deployments.
		if isNotFound(err) && (action == core.ActionPause || action == core.ActionResume) {
			return fmt.Errorf("%s: %w", endpoint, ErrUnsupported)
		}
		return fmt.Errorf("%s auction %s: %w", endpoint, auctionID, err)
	}
	if !res.Success {
		return &APIError{StatusCode: http.StatusOK, Message: res.Error}
	}
	return nil
}

func endpointFor(action core.Action) (string, error) {
	switch action {
	case core.ActionActivateNow, core.ActionPause, core.ActionResume, core.ActionCancel:
		return string(action), nil
	}
	return "", fmt.Errorf("%q is not a lifecycle transition", action)
}

func isNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// do issues one request and decodes the response into out. Non-2xx
// responses become *APIError with the server's message verbatim; a 409 is
// flagged as stale so callers refetch.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	started := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Warn().Err(cerr).Msg("close response body")
		}
	}()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(started)).
		Msg("auction service request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var env errorEnvelope
		_ = json.Unmarshal(raw, &env)
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    env.text(),
			Stale:      resp.StatusCode == http.StatusConflict,
		}
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
