package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nhle/taskshop/internal/model"
)

// CreateAccount inserts a new account. Generates a UUID if ID is empty.
// Returns ErrDuplicate when the email is already registered.
func (s *SQLiteStore) CreateAccount(ctx context.Context, a model.Account) (model.Account, error) {
	a.Email = strings.TrimSpace(a.Email)
	if a.Email == "" {
		return model.Account{}, fmt.Errorf("account email must not be empty")
	}
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	a.CreatedAt = time.Now().UTC()

	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO accounts (id, email, display_name, password_hash, created_at)
		VALUES (:id, :email, :display_name, :password_hash, :created_at)`, a)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return model.Account{}, fmt.Errorf("creating account %s: %w", a.Email, ErrDuplicate)
		}
		return model.Account{}, fmt.Errorf("creating account %s: %w", a.Email, err)
	}
	return a, nil
}

// GetAccountByEmail looks an account up by email, ignoring case.
func (s *SQLiteStore) GetAccountByEmail(ctx context.Context, email string) (*model.Account, error) {
	var a model.Account
	err := s.db.GetContext(ctx, &a,
		"SELECT * FROM accounts WHERE email = ? COLLATE NOCASE", strings.TrimSpace(email))
	if err != nil {
		return nil, fmt.Errorf("getting account %s: %w", email, notFound(err))
	}
	return &a, nil
}

// GetAccountByID looks an account up by id.
func (s *SQLiteStore) GetAccountByID(ctx context.Context, id string) (*model.Account, error) {
	var a model.Account
	if err := s.db.GetContext(ctx, &a, "SELECT * FROM accounts WHERE id = ?", id); err != nil {
		return nil, fmt.Errorf("getting account %s: %w", id, notFound(err))
	}
	return &a, nil
}
