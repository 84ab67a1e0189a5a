package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/golang-jwt/jwt/v5"
)

// VerifyOktaToken checks the expiry of the Okta id token locally. The
// signature is not verified: the API does that on every request, this only
// tells the user early that a login is needed.
func (c *Client) VerifyOktaToken(ctx context.Context) (bool, error) {
	if c.opts.IDToken == "" {
		return false, nil
	}
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(c.opts.IDToken, &claims); err != nil {
		return false, fmt.Errorf("parse okta id token: %w", err)
	}
	if claims.ExpiresAt == nil {
		return false, nil
	}
	return c.opts.Now().Before(claims.ExpiresAt.Time), nil
}

type tokenInfo struct {
	IssuedTo  string `json:"issued_to"`
	Audience  string `json:"audience"`
	Scope     string `json:"scope"`
	ExpiresIn int64  `json:"expires_in"`
}

// VerifyGCloudToken asks Google whether the access token is still valid.
func (c *Client) VerifyGCloudToken(ctx context.Context) (bool, error) {
	if c.opts.AccessToken == "" {
		return false, nil
	}
	var info tokenInfo
	err := c.call(ctx, "tokeninfo", func(ctx context.Context) error {
		u := c.opts.TokenInfoURL + "?" + url.Values{"access_token": {c.opts.AccessToken}}.Encode()
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return err
		}
		return c.doJSON(req, &info)
	})
	if err != nil {
		// tokeninfo answers 400 for expired or revoked tokens
		if he, ok := asHTTPError(err); ok && he.StatusCode == http.StatusBadRequest {
			return false, nil
		}
		return false, fmt.Errorf("google tokeninfo: %w", err)
	}
	return info.ExpiresIn > 0, nil
}
