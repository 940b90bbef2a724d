package store

import (
	"context"
	"errors"

	"github.com/nhle/taskshop/internal/model"
)

// ErrNotFound is returned when a key, account or checkout does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when a unique value (account email) is taken.
var ErrDuplicate = errors.New("already exists")

// Store defines the persistence interface for the local key-value
// snapshots, local accounts and the checkout log.
type Store interface {
	// === Key-value ===

	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error

	// === Accounts ===

	CreateAccount(ctx context.Context, a model.Account) (model.Account, error)
	GetAccountByEmail(ctx context.Context, email string) (*model.Account, error)
	GetAccountByID(ctx context.Context, id string) (*model.Account, error)

	// === Checkouts ===

	RecordCheckout(ctx context.Context, r model.Receipt) error
	GetCheckouts(ctx context.Context, email string, limit int) ([]model.Receipt, error)

	Close() error
}
