// Package geoapi reads the reference list of départements from the French
// government geographic API.
package geoapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/jbweber/homelab/territoire/internal/domain"
	"github.com/jbweber/homelab/territoire/internal/logger"
)

const DefaultURL = "https://geo.api.gouv.fr/departements"

// Client fetches départements over HTTP. Transport failures and 5xx answers
// are retried with exponential backoff; anything else fails at once.
type Client struct {
	url        string
	httpClient *http.Client
	maxRetries uint64
	initial    time.Duration
	log        *logger.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the default client, whose timeout is set by NewClient.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRetry sets how many times a failed call is retried and the first wait.
func WithRetry(maxRetries uint64, initial time.Duration) Option {
	return func(c *Client) {
		c.maxRetries = maxRetries
		c.initial = initial
	}
}

func WithLogger(log *logger.Logger) Option {
	return func(c *Client) { c.log = log }
}

func NewClient(url string, timeout time.Duration, opts ...Option) *Client {
	if url == "" {
		url = DefaultURL
	}
	c := &Client{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
		maxRetries: 3,
		initial:    500 * time.Millisecond,
		log:        logger.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// apiDepartement accepts both "nom" and "name" for the label.
type apiDepartement struct {
	Code *string `json:"code"`
	Nom  *string `json:"nom"`
	Name *string `json:"name"`
}

// FetchDepartements returns the list as served. Entries without a code are
// dropped; cleaning the rest is left to the caller.
func (c *Client) FetchDepartements(ctx context.Context) ([]domain.ExternalDepartement, error) {
	var body []byte
	op := func() error {
		b, err := c.get(ctx)
		if err != nil {
			return err
		}
		body = b
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.initial
	notify := func(err error, wait time.Duration) {
		c.log.Warn("geo api call failed, retrying", "url", c.url, "wait", wait, "error", err)
	}
	if err := backoff.RetryNotify(op, backoff.WithContext(backoff.WithMaxRetries(policy, c.maxRetries), ctx), notify); err != nil {
		return nil, err
	}

	var raw []apiDepartement
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("geo api returned an unexpected payload: %w", err)
	}

	out := make([]domain.ExternalDepartement, 0, len(raw))
	for _, r := range raw {
		if r.Code == nil {
			continue
		}
		nom := r.Nom
		if nom == nil {
			nom = r.Name
		}
		out = append(out, domain.ExternalDepartement{Code: *r.Code, Nom: domain.StringValue(nom)})
	}
	c.log.Debug("geo api departements fetched", "count", len(out))
	return out, nil
}

func (c *Client) get(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("failed to build geo api request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, backoff.Permanent(err)
		}
		return nil, fmt.Errorf("geo api request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read geo api response: %w", err)
	}

	switch {
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("geo api answered %s", resp.Status)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, backoff.Permanent(fmt.Errorf("geo api answered %s", resp.Status))
	case len(body) == 0:
		return nil, backoff.Permanent(errors.New("geo api returned an empty body"))
	}
	return body, nil
}
