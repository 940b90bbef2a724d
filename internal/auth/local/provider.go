// Package local is an auth provider backed by the local database. Passwords
// are bcrypt hashes; the current session is kept in the system keyring so
// it survives restarts.
package local

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/nhle/taskshop/internal/auth"
	"github.com/nhle/taskshop/internal/credential"
	"github.com/nhle/taskshop/internal/logging"
	"github.com/nhle/taskshop/internal/model"
	"github.com/nhle/taskshop/internal/store"
)

const (
	sessionKey        = "local-session"
	minPasswordLength = 6
)

// Accounts is the account storage the provider needs.
type Accounts interface {
	CreateAccount(ctx context.Context, a model.Account) (model.Account, error)
	GetAccountByEmail(ctx context.Context, email string) (*model.Account, error)
	GetAccountByID(ctx context.Context, id string) (*model.Account, error)
}

// Sessions persists the signed-in identity.
type Sessions interface {
	GetJSON(key string, dst any) error
	SetJSON(key string, src any) error
	Delete(key string) error
}

type session struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
}

// Provider implements auth.Provider against local accounts.
type Provider struct {
	auth.Broadcaster

	accounts Accounts
	sessions Sessions
	logger   logrus.FieldLogger
	cost     int
}

var _ auth.Provider = (*Provider)(nil)

// New returns a provider over accounts and sessions.
func New(accounts Accounts, sessions Sessions, logger logrus.FieldLogger) *Provider {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Provider{
		accounts: accounts,
		sessions: sessions,
		logger:   logger.WithField("provider", "local"),
		cost:     bcrypt.DefaultCost,
	}
}

// Restore publishes the persisted session if its account still exists.
func (p *Provider) Restore(ctx context.Context) error {
	var s session
	if err := p.sessions.GetJSON(sessionKey, &s); err != nil {
		p.Publish(nil)
		if errors.Is(err, credential.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("loading session: %w", err)
	}

	a, err := p.accounts.GetAccountByID(ctx, s.UID)
	if err != nil {
		p.Publish(nil)
		if errors.Is(err, store.ErrNotFound) {
			p.logger.WithField("uid", s.UID).Info("dropping session for missing account")
			return p.sessions.Delete(sessionKey)
		}
		return fmt.Errorf("loading account: %w", err)
	}

	p.Publish(principal(a))
	return nil
}

// Login checks the password against the stored hash.
func (p *Provider) Login(ctx context.Context, email, password string) error {
	a, err := p.accounts.GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return auth.NewError(auth.CodeEmailNotFound)
		}
		return fmt.Errorf("looking up account: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return auth.NewError(auth.CodeInvalidPassword)
		}
		return fmt.Errorf("checking password: %w", err)
	}

	return p.begin(a)
}

// Signup registers a new account and signs it in.
func (p *Provider) Signup(ctx context.Context, email, password, displayName string) error {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return auth.NewError(auth.CodeInvalidEmail)
	}
	if len(password) < minPasswordLength {
		return auth.NewError(auth.CodeWeakPassword)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	a, err := p.accounts.CreateAccount(ctx, model.Account{
		Email:        email,
		DisplayName:  strings.TrimSpace(displayName),
		PasswordHash: string(hash),
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return auth.NewError(auth.CodeEmailExists)
		}
		return fmt.Errorf("creating account: %w", err)
	}

	return p.begin(&a)
}

// Logout forgets the session.
func (p *Provider) Logout(_ context.Context) error {
	if err := p.sessions.Delete(sessionKey); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	p.Publish(nil)
	return nil
}

func (p *Provider) begin(a *model.Account) error {
	if err := p.sessions.SetJSON(sessionKey, session{UID: a.ID, Email: a.Email}); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	p.Publish(principal(a))
	return nil
}

func principal(a *model.Account) *model.Principal {
	return &model.Principal{
		UID:         a.ID,
		Email:       a.Email,
		DisplayName: a.DisplayName,
	}
}
