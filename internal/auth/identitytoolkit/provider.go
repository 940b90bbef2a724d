// Package identitytoolkit is an auth provider for the Identity Toolkit
// REST API (the email/password backend of Firebase Authentication).
package identitytoolkit

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/nhle/taskshop/internal/auth"
	"github.com/nhle/taskshop/internal/credential"
	"github.com/nhle/taskshop/internal/logging"
	"github.com/nhle/taskshop/internal/model"
)

const sessionKey = "identitytoolkit-session"

// Sessions persists the signed-in identity and its tokens.
type Sessions interface {
	GetJSON(key string, dst any) error
	SetJSON(key string, src any) error
	Delete(key string) error
}

// Provider implements auth.Provider over the REST API.
type Provider struct {
	auth.Broadcaster

	client   *Client
	sessions Sessions
	logger   logrus.FieldLogger
}

var _ auth.Provider = (*Provider)(nil)

// New returns a provider using client.
func New(client *Client, sessions Sessions, logger logrus.FieldLogger) *Provider {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Provider{
		client:   client,
		sessions: sessions,
		logger:   logger.WithField("provider", "identitytoolkit"),
	}
}

// Restore refreshes the stored session. Rejected refresh tokens end the
// session; transport failures keep the cached identity.
func (p *Provider) Restore(ctx context.Context) error {
	var cached model.Principal
	if err := p.sessions.GetJSON(sessionKey, &cached); err != nil {
		p.Publish(nil)
		if errors.Is(err, credential.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("loading session: %w", err)
	}

	tok, err := p.client.Refresh(ctx, cached.RefreshToken)
	if err != nil {
		var apiErr *auth.Error
		if errors.As(err, &apiErr) {
			p.logger.WithField("code", apiErr.Code).Info("stored session rejected")
			p.Publish(nil)
			return p.sessions.Delete(sessionKey)
		}
		p.Publish(&cached)
		return fmt.Errorf("refreshing session: %w", err)
	}

	cached.IDToken = tok.IDToken
	if tok.RefreshToken != "" {
		cached.RefreshToken = tok.RefreshToken
	}
	if tok.UserID != "" {
		cached.UID = tok.UserID
	}

	if info, err := p.client.Lookup(ctx, cached.IDToken); err != nil {
		p.logger.WithError(err).Debug("profile lookup failed")
	} else if len(info.Users) > 0 {
		u := info.Users[0]
		if u.Disabled {
			p.Publish(nil)
			return p.sessions.Delete(sessionKey)
		}
		cached.Email = u.Email
		cached.DisplayName = u.DisplayName
	}
	if err := p.sessions.SetJSON(sessionKey, cached); err != nil {
		p.logger.WithError(err).Warn("refreshed session not saved")
	}
	p.Publish(&cached)
	return nil
}

// Login signs in with email and password.
func (p *Provider) Login(ctx context.Context, email, password string) error {
	resp, err := p.client.SignInWithPassword(ctx, strings.TrimSpace(email), password)
	if err != nil {
		return err
	}
	return p.begin(resp)
}

// Signup creates the account, sets its display name if given, and signs in.
func (p *Provider) Signup(ctx context.Context, email, password, displayName string) error {
	resp, err := p.client.SignUp(ctx, strings.TrimSpace(email), password)
	if err != nil {
		return err
	}

	if name := strings.TrimSpace(displayName); name != "" {
		updated, err := p.client.UpdateDisplayName(ctx, resp.IDToken, name)
		if err != nil {
			p.logger.WithError(err).Warn("display name not set")
		} else {
			resp.DisplayName = updated.DisplayName
			if updated.IDToken != "" {
				resp.IDToken = updated.IDToken
				resp.RefreshToken = updated.RefreshToken
			}
		}
	}
	return p.begin(resp)
}

// Logout forgets the stored tokens.
func (p *Provider) Logout(_ context.Context) error {
	if err := p.sessions.Delete(sessionKey); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	p.Publish(nil)
	return nil
}

func (p *Provider) begin(resp *signInResponse) error {
	pr := &model.Principal{
		UID:          resp.LocalID,
		Email:        resp.Email,
		DisplayName:  resp.DisplayName,
		IDToken:      resp.IDToken,
		RefreshToken: resp.RefreshToken,
	}
	if err := p.sessions.SetJSON(sessionKey, pr); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	p.Publish(pr)
	return nil
}
