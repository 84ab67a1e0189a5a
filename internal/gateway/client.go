package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"wukong/internal/api"
	"wukong/internal/config"
)

// Options is everything a Client needs to reach the backends.
type Options struct {
	APIURL        string
	LoggingURL    string
	MonitoringURL string
	SQLAdminURL   string
	TokenInfoURL  string

	IDToken      string
	RefreshToken string
	AccessToken  string

	HTTPClient *http.Client
	// Now is overridable for tests.
	Now func() time.Time
}

// OptionsFromConfig maps the loaded configuration onto client options.
func OptionsFromConfig(cfg config.WukongConfig) Options {
	return Options{
		APIURL:        cfg.API.URL,
		LoggingURL:    cfg.Gateway.LoggingURL,
		MonitoringURL: cfg.Gateway.MonitoringURL,
		SQLAdminURL:   cfg.Gateway.SQLAdminURL,
		TokenInfoURL:  cfg.Gateway.TokenInfoURL,
		IDToken:       cfg.Auth.Okta.IDToken,
		RefreshToken:  cfg.Auth.Okta.RefreshToken,
		AccessToken:   cfg.Auth.GCloud.AccessToken,
	}
}

// Client is the HTTP implementation of Gateway.
type Client struct {
	opts Options
	http *http.Client
	rel  *Reliability
}

var _ Gateway = (*Client)(nil)

// NewClient creates a gateway handle. rel may be shared between handles.
func NewClient(opts Options, rel *Reliability) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Client{opts: opts, http: hc, rel: rel}
}

// NewFactory returns a Factory producing cheap Client handles that share one
// Reliability wrapper.
func NewFactory(opts Options, rel *Reliability) Factory {
	return func() (Gateway, error) {
		if opts.APIURL == "" {
			return nil, fmt.Errorf("api url is not configured")
		}
		return NewClient(opts, rel), nil
	}
}

// call wraps one request with the reliability policy when configured.
func (c *Client) call(ctx context.Context, name string, fn func(ctx context.Context) error) error {
	if c.rel == nil {
		return fn(ctx)
	}
	return c.rel.Do(ctx, name, fn)
}

// doJSON sends req and decodes a JSON body into out. Non-2xx responses are
// returned as *api.HTTPError.
func (c *Client) doJSON(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &api.HTTPError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) bearerRequest(ctx context.Context, method, url, token string, body any) (*http.Request, error) {
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		r = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, r)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

func asHTTPError(err error) (*api.HTTPError, bool) {
	var he *api.HTTPError
	if errors.As(err, &he) {
		return he, true
	}
	return nil, false
}
