// Package testutil builds the storage fixtures shared by package tests.
package testutil

import (
	"testing"

	"github.com/99designs/keyring"
	"github.com/stretchr/testify/require"

	"github.com/nhle/taskshop/internal/credential"
	"github.com/nhle/taskshop/internal/store"
)

// NewTestStore opens an in-memory SQLiteStore with every migration applied
// and closes it when the test ends.
func NewTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	s, err := store.NewSQLiteStore(":memory:")
	require.NoError(t, err, "creating test store")

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})
	return s
}

// NewTestVault returns a credential vault over an in-memory keyring, so
// session tests never touch the system keychain.
func NewTestVault(t *testing.T) *credential.Vault {
	t.Helper()
	return credential.NewVault(keyring.NewArrayKeyring(nil))
}
