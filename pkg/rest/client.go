// Package rest is the JSON-over-HTTPS transport every service client calls
// through. It owns request construction, bearer injection, and the response
// schema gate; no resource client touches net/http directly.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/sockshoplabs/storefront-go/pkg/config"
	pkgerrors "github.com/sockshoplabs/storefront-go/pkg/errors"
	"github.com/sockshoplabs/storefront-go/pkg/logger"
	"github.com/sockshoplabs/storefront-go/pkg/types"
	"github.com/sockshoplabs/storefront-go/pkg/validators"
)

// TokenSource supplies the bearer token for the active session, or "" when
// the shopper is anonymous.
type TokenSource interface {
	Token(ctx context.Context) string
}

type Client struct {
	baseURL *url.URL
	http    *http.Client
	token   TokenSource
	logg    *logger.Logger
}

// NewClient builds the transport from config. token and logg may be nil.
func NewClient(cfg config.APIConfig, token TokenSource, logg *logger.Logger) (*Client, error) {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		return nil, fmt.Errorf("api base url is required")
	}
	parsed, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parsing api base url: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("api base url must be absolute")
	}
	return &Client{
		baseURL: parsed,
		http:    &http.Client{Timeout: cfg.Timeout},
		token:   token,
		logg:    logg,
	}, nil
}

// Get fetches a resource and decodes the enveloped payload into dest.
func (c *Client) Get(ctx context.Context, path string, query url.Values, dest any) error {
	return c.Do(ctx, http.MethodGet, path, query, nil, nil, dest)
}

// Post sends body and decodes the enveloped payload into dest.
func (c *Client) Post(ctx context.Context, path string, body, dest any) error {
	return c.Do(ctx, http.MethodPost, path, nil, nil, body, dest)
}

// Put sends body and decodes the enveloped payload into dest.
func (c *Client) Put(ctx context.Context, path string, body, dest any) error {
	return c.Do(ctx, http.MethodPut, path, nil, nil, body, dest)
}

// Delete removes a resource and decodes the enveloped payload into dest.
func (c *Client) Delete(ctx context.Context, path string, dest any) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil, nil, dest)
}

// Do performs one request. Any transport failure maps to CodeRequest, error
// statuses map to their client-side codes, and a 2xx body that fails the
// schema gate maps to CodeResponseValidation so malformed server payloads
// never leak into application state.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, headers http.Header, body, dest any) error {
	target := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		target.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode request body")
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != nil {
		if token := c.token.Token(ctx); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	for key, values := range headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	if c.logg != nil {
		c.logg.Debug(c.logg.WithFields(ctx, map[string]any{
			"method": method,
			"path":   path,
		}), "api request")
	}

	res, err := c.http.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeRequest, err, fmt.Sprintf("%s %s", method, path))
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeRequest, err, "read response body")
	}

	if res.StatusCode >= http.StatusBadRequest {
		return c.errorFromResponse(res.StatusCode, raw)
	}
	if dest == nil {
		return nil
	}
	return decodePayload(raw, dest)
}

func (c *Client) errorFromResponse(status int, raw []byte) error {
	var envelope types.ErrorEnvelope
	message := fmt.Sprintf("server returned status %d", status)
	details := map[string]any{"status": status}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Error.Message != "" {
		message = envelope.Error.Message
		details["server_code"] = envelope.Error.Code
	}

	code := pkgerrors.CodeRequest
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		code = pkgerrors.CodeUnauthorized
	case http.StatusNotFound:
		code = pkgerrors.CodeNotFound
	}
	return pkgerrors.New(code, message).WithDetails(details)
}

func decodePayload(raw []byte, dest any) error {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeResponseValidation, err, "response is not valid json")
	}
	if len(envelope.Data) == 0 {
		return pkgerrors.New(pkgerrors.CodeResponseValidation, "response envelope missing data")
	}
	if err := json.Unmarshal(envelope.Data, dest); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeResponseValidation, err, "response payload has unexpected shape")
	}
	if err := validators.Struct(dest); err != nil {
		var typed *pkgerrors.Error
		if errors.As(err, &typed) {
			return pkgerrors.Wrap(pkgerrors.CodeResponseValidation, err, "response payload failed validation").
				WithDetails(typed.Details())
		}
		return pkgerrors.Wrap(pkgerrors.CodeResponseValidation, err, "response payload failed validation")
	}
	return nil
}
