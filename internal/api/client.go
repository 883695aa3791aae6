// Package api is the REST client for the marketplace admin service. The
// service is the source of truth for every entity; this side only proposes
// transitions and re-reads state.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"rentdesk/internal/model"
)

const defaultTimeout = 15 * time.Second

type Client struct {
	base  *url.URL
	token string
	http  *http.Client
}

// NewClient builds a client for the given base URL. A zero timeout gets the
// default; the timeout is the only cancellation mechanism besides the
// caller's context (a hung mutation must not leave an entity pending
// forever).
func NewClient(baseURL, token string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(strings.TrimSpace(baseURL), "/"))
	if err != nil {
		return nil, fmt.Errorf("parse api url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("api url %q must be absolute", baseURL)
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		base:  u,
		token: token,
		http:  &http.Client{Timeout: timeout},
	}, nil
}

func (c *Client) endpoint(parts ...string) string {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.Join(parts, "/")
	return u.String()
}

func (c *Client) do(ctx context.Context, method, rawURL string, body any) ([]byte, error) {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, rawURL, rd)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAPIError(resp.StatusCode, data)
	}
	return data, nil
}

// List fetches one page of a collection.
func (c *Client) List(ctx context.Context, resource model.Resource, filter ListFilter) (*model.ListResponse, error) {
	u := c.endpoint(string(resource)) + "?" + filter.Params().Encode()
	data, err := c.do(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	var out model.ListResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode %s list: %w", resource, err)
	}
	return &out, nil
}

// Get fetches a single entity as raw JSON; callers decode into the resource
// model.
func (c *Client) Get(ctx context.Context, resource model.Resource, id string) (json.RawMessage, error) {
	data, err := c.do(ctx, http.MethodGet, c.endpoint(string(resource), id), nil)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(data), nil
}

// StatusChange is the body of PUT /{resource}/{id}/status. Optional fields
// are omitted from the wire entirely when empty.
type StatusChange struct {
	Status          model.Status `json:"status"`
	RejectionReason string       `json:"rejectionReason,omitempty"`
	ModerationNotes string       `json:"moderationNotes,omitempty"`
}

func (c *Client) ChangeStatus(ctx context.Context, resource model.Resource, id string, change StatusChange) (*model.Envelope, error) {
	return c.mutate(ctx, http.MethodPut, c.endpoint(string(resource), id, "status"), change)
}

type featureChange struct {
	Featured      bool       `json:"featured"`
	FeaturedUntil *time.Time `json:"featuredUntil,omitempty"`
}

func (c *Client) SetFeatured(ctx context.Context, resource model.Resource, id string, featured bool, until *time.Time) (*model.Envelope, error) {
	return c.mutate(ctx, http.MethodPut, c.endpoint(string(resource), id, "feature"), featureChange{Featured: featured, FeaturedUntil: until})
}

type cancelRequest struct {
	CancellationReason string `json:"cancellationReason,omitempty"`
}

// CancelSubscription omits the reason field entirely when the operator left
// it blank.
func (c *Client) CancelSubscription(ctx context.Context, id, reason string) (*model.Envelope, error) {
	return c.mutate(ctx, http.MethodPost, c.endpoint(string(model.ResourceSubscriptions), id, "cancel"),
		cancelRequest{CancellationReason: strings.TrimSpace(reason)})
}

type renewRequest struct {
	BillingCycle model.BillingCycle `json:"billingCycle,omitempty"`
}

func (c *Client) RenewSubscription(ctx context.Context, id string, cycle model.BillingCycle) (*model.Envelope, error) {
	return c.mutate(ctx, http.MethodPost, c.endpoint(string(model.ResourceSubscriptions), id, "renew"),
		renewRequest{BillingCycle: cycle})
}

func (c *Client) mutate(ctx context.Context, method, rawURL string, body any) (*model.Envelope, error) {
	data, err := c.do(ctx, method, rawURL, body)
	if err != nil {
		return nil, err
	}
	var env model.Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	// Some deployments report failures with HTTP 200 + success=false.
	if !env.Success {
		msg := strings.TrimSpace(env.Message)
		if msg == "" {
			msg = "request failed"
		}
		return nil, &APIError{StatusCode: http.StatusOK, Message: msg}
	}
	return &env, nil
}

// DecodeItems decodes the raw items of a list response into a typed slice.
func DecodeItems[T any](raw []json.RawMessage) ([]T, error) {
	out := make([]T, 0, len(raw))
	for _, r := range raw {
		var v T
		if err := json.Unmarshal(r, &v); err != nil {
			return nil, fmt.Errorf("decode item: %w", err)
		}
		out = append(out, v)
	}
	return out, nil
}
