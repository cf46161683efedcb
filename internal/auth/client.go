package auth

import (
	"context"
	"fmt"

	pkgerrors "github.com/sockshoplabs/storefront-go/pkg/errors"
	"github.com/sockshoplabs/storefront-go/pkg/logger"
	"github.com/sockshoplabs/storefront-go/pkg/rest"
	"github.com/sockshoplabs/storefront-go/pkg/validators"
)

// Credentials is the login payload.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string `json:"token" validate:"required"`
}

// Client drives the login/logout boundary. Token issuance itself is the
// server's business; this side only stores the result.
type Client struct {
	rest     *rest.Client
	sessions *SessionStore
	logg     *logger.Logger
}

func NewClient(transport *rest.Client, sessions *SessionStore, logg *logger.Logger) (*Client, error) {
	if transport == nil {
		return nil, fmt.Errorf("transport required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session store required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Client{rest: transport, sessions: sessions, logg: logg}, nil
}

// Login exchanges credentials for a bearer token and persists the session.
func (c *Client) Login(ctx context.Context, creds Credentials) (*Session, error) {
	if err := validators.Struct(creds); err != nil {
		return nil, err
	}

	var res loginResponse
	if err := c.rest.Post(ctx, "/login", creds, &res); err != nil {
		return nil, err
	}

	session, err := c.sessions.save(ctx, res.Token)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store session")
	}
	c.logg.Info(c.logg.WithField(ctx, "expires_at", session.ExpiresAt), "logged in")
	return session, nil
}

// Logout drops the persisted session.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.sessions.clear(ctx); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear session")
	}
	return nil
}

// Current returns the active session, if any.
func (c *Client) Current(ctx context.Context) (*Session, error) {
	return c.sessions.Current(ctx)
}
